package consolidate

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/GSKumar1109/claimsreporter/internal/model"
)

// ErrNotArray rows payload is not a JSON array
var ErrNotArray = errors.New("rows is not an array")

// Row canonical intermediate form of an input row.
// Every accepted legacy shape (single shopId, string numbers, missing products)
// is mapped onto it before consolidation.
type Row struct {
	ID        string
	Syndicate string
	ShopIDs   []string
	Products  []model.ProductEntry
}

// Normalize maps one decoded JSON value onto a Row.
// Non-object values are rejected; malformed fields are coerced, never reported.
func Normalize(raw any) (Row, bool) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return Row{}, false
	}

	var row Row
	if id, ok := toText(obj["id"]); ok {
		row.ID = strings.TrimSpace(id)
	}
	if syn, ok := toText(obj["syndicate"]); ok {
		row.Syndicate = strings.TrimSpace(syn)
	}

	var shops []string
	if arr, ok := obj["shopIds"].([]any); ok {
		for _, v := range arr {
			if s, ok := toText(v); ok {
				shops = append(shops, s)
			}
		}
	}
	if s, ok := toText(obj["shopId"]); ok {
		shops = append(shops, s)
	}
	row.ShopIDs = uniqueShopIDs(shops)

	if arr, ok := obj["products"].([]any); ok {
		row.Products = make([]model.ProductEntry, 0, len(arr))
		for _, v := range arr {
			p, _ := v.(map[string]any)
			row.Products = append(row.Products, model.ProductEntry{
				Cases: toNumber(p["cases"]),
				Rate:  toNumber(p["rate"]),
			})
		}
	}
	return row, true
}

// FromRecord lifts an already typed record into a Row.
func FromRecord(r model.DepotRecord) Row {
	return Row{
		ID:        r.ID,
		Syndicate: r.Syndicate,
		ShopIDs:   append([]string(nil), r.ShopIDs...),
		Products:  append([]model.ProductEntry(nil), r.Products...),
	}
}

// DecodeRows decodes a JSON array of rows.
// It fails when data is not an array; individual elements are not validated.
func DecodeRows(data []byte) ([]any, error) {
	var rows []any
	if err := json.Unmarshal(data, &rows); err != nil || rows == nil {
		return nil, ErrNotArray
	}
	return rows, nil
}

// ParseShopIDs splits comma separated shop IDs as typed into the entry form.
func ParseShopIDs(text string) []string {
	return uniqueShopIDs(strings.Split(text, ","))
}

// uniqueShopIDs trims, drops empties and dedupes, keeping first-seen order.
func uniqueShopIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// UnionShopIDs merges shop ID sets, first-seen order, no duplicates.
func UnionShopIDs(sets ...[]string) []string {
	var all []string
	for _, set := range sets {
		all = append(all, set...)
	}
	return uniqueShopIDs(all)
}
