// Package csvexport writes a depot in long format, one line per record and product.
package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/jszwec/csvutil"

	"github.com/GSKumar1109/claimsreporter/internal/model"
)

// Line one record × product
type Line struct {
	Syndicate string  `csv:"syndicate"`
	ShopIDs   string  `csv:"shop_ids"`
	Product   string  `csv:"product"`
	Cases     float64 `csv:"cases"`
	Rate      float64 `csv:"rate"`
	Amount    float64 `csv:"amount"`
}

// FileName download name for a depot CSV
func FileName(depot string) string {
	return depot + "_data.csv"
}

// Lines flattens records against the product names.
// Products beyond a record's vector are emitted as zero.
func Lines(products []string, records []model.DepotRecord) []Line {
	lines := make([]Line, 0, len(records)*len(products))
	for _, rec := range records {
		shops := strings.Join(rec.ShopIDs, ", ")
		for i, name := range products {
			var e model.ProductEntry
			if i < len(rec.Products) {
				e = rec.Products[i]
			}
			lines = append(lines, Line{
				Syndicate: rec.Syndicate,
				ShopIDs:   shops,
				Product:   name,
				Cases:     e.Cases,
				Rate:      e.Rate,
				Amount:    e.Amount(),
			})
		}
	}
	return lines
}

// Write encodes the depot with a header row.
func Write(w io.Writer, products []string, records []model.DepotRecord) error {
	cw := csv.NewWriter(w)
	enc := csvutil.NewEncoder(cw)

	lines := Lines(products, records)
	if len(lines) == 0 {
		if err := enc.EncodeHeader(Line{}); err != nil {
			return fmt.Errorf("write csv header: %w", err)
		}
	}
	for _, line := range lines {
		if err := enc.Encode(line); err != nil {
			return fmt.Errorf("write csv line: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
