package consolidate

import (
	"sort"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/GSKumar1109/claimsreporter/internal/model"
)

// newID assigns ids to rows that arrive without one.
var newID = func() string {
	return uuid.New().String()
}

// Consolidate merges a depot's rows into one record per syndicate.
//
// Rows without a syndicate are skipped. The first row of a syndicate fixes the
// record id; later rows union their shop IDs into it and replace the product
// vector when their total value is greater than or equal to the accumulated one.
// Output is sorted by syndicate and every product vector has productCount slots.
func Consolidate(rows []Row, productCount int) []model.DepotRecord {
	groups := make(map[string]Row, len(rows))
	order := make([]string, 0, len(rows))

	for _, r := range rows {
		syn := strings.TrimSpace(r.Syndicate)
		if syn == "" {
			continue
		}
		next := Row{
			ID:        strings.TrimSpace(r.ID),
			Syndicate: syn,
			ShopIDs:   uniqueShopIDs(r.ShopIDs),
			Products:  truncate(r.Products, productCount),
		}

		acc, seen := groups[syn]
		if !seen {
			if next.ID == "" {
				next.ID = newID()
			}
			groups[syn] = next
			order = append(order, syn)
			continue
		}
		groups[syn] = merge(acc, next)
	}

	records := make([]model.DepotRecord, 0, len(order))
	for _, syn := range order {
		g := groups[syn]
		records = append(records, model.DepotRecord{
			ID:        g.ID,
			Syndicate: g.Syndicate,
			ShopIDs:   g.ShopIDs,
			Products:  model.ResizeProducts(g.Products, productCount),
		})
	}
	SortBySyndicate(records)
	return records
}

// ConsolidateRaw normalizes loosely typed rows and consolidates them.
func ConsolidateRaw(raws []any, productCount int) []model.DepotRecord {
	rows := make([]Row, 0, len(raws))
	for _, raw := range raws {
		if row, ok := Normalize(raw); ok {
			rows = append(rows, row)
		}
	}
	return Consolidate(rows, productCount)
}

// ConsolidateRecords re-canonicalizes typed records.
func ConsolidateRecords(records []model.DepotRecord, productCount int) []model.DepotRecord {
	rows := make([]Row, 0, len(records))
	for _, r := range records {
		rows = append(rows, FromRecord(r))
	}
	return Consolidate(rows, productCount)
}

// merge folds next into acc without touching either argument.
func merge(acc, next Row) Row {
	products := acc.Products
	if model.ProductsTotal(next.Products) >= model.ProductsTotal(acc.Products) {
		products = next.Products
	}
	return Row{
		ID:        acc.ID,
		Syndicate: acc.Syndicate,
		ShopIDs:   UnionShopIDs(acc.ShopIDs, next.ShopIDs),
		Products:  append([]model.ProductEntry(nil), products...),
	}
}

func truncate(entries []model.ProductEntry, n int) []model.ProductEntry {
	if n < 0 {
		n = 0
	}
	if len(entries) > n {
		entries = entries[:n]
	}
	return append([]model.ProductEntry(nil), entries...)
}

// SortBySyndicate orders records with locale-aware collation.
// Collation ties fall back to byte order so the result is deterministic.
func SortBySyndicate(records []model.DepotRecord) {
	c := collate.New(language.Und)
	sort.SliceStable(records, func(i, j int) bool {
		if cmp := c.CompareString(records[i].Syndicate, records[j].Syndicate); cmp != 0 {
			return cmp < 0
		}
		return records[i].Syndicate < records[j].Syndicate
	})
}
