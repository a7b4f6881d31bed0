package calculator

import (
	"math"

	"github.com/GSKumar1109/claimsreporter/internal/model"
)

// Line one product cell group (Cases / Rate / Amount)
type Line struct {
	Cases  float64 `json:"cases"`
	Rate   float64 `json:"rate"`
	Amount float64 `json:"amount"`
}

// Totals cases, per-case value and amount
type Totals struct {
	Cases   float64 `json:"cases"`
	PerCase float64 `json:"perCase"`
	Amount  float64 `json:"amount"`
}

// RowTotals one record with its per-product lines and row totals
type RowTotals struct {
	RecordID  string   `json:"id"`
	Syndicate string   `json:"syndicate"`
	ShopIDs   []string `json:"shopIds"`
	Products  []Line   `json:"products"`
	Totals    Totals   `json:"totals"`
}

// ColumnTotals depot-wide figures for one product slot
type ColumnTotals struct {
	Cases         float64 `json:"cases"`
	EffectiveRate float64 `json:"effectiveRate"`
	Amount        float64 `json:"amount"`
}

// Report aggregated view of one depot
type Report struct {
	Rows    []RowTotals    `json:"rows"`
	Columns []ColumnTotals `json:"columns"`
	Depot   Totals         `json:"depot"`
}

// Aggregate computes row, column and depot totals for a depot's records.
// Accumulation is unrounded; use Rounded for display.
func Aggregate(records []model.DepotRecord, productCount int) Report {
	if productCount < 0 {
		productCount = 0
	}
	report := Report{
		Rows:    make([]RowTotals, 0, len(records)),
		Columns: make([]ColumnTotals, productCount),
	}

	for _, r := range records {
		row := RowTotals{
			RecordID:  r.ID,
			Syndicate: r.Syndicate,
			ShopIDs:   append(make([]string, 0, len(r.ShopIDs)), r.ShopIDs...),
			Products:  make([]Line, productCount),
		}

		for i := 0; i < productCount && i < len(r.Products); i++ {
			p := r.Products[i]
			amount := p.Amount()
			row.Products[i] = Line{Cases: p.Cases, Rate: p.Rate, Amount: amount}

			report.Columns[i].Cases += p.Cases
			report.Columns[i].Amount += amount
			row.Totals.Cases += p.Cases
			row.Totals.Amount += amount
		}
		row.Totals.PerCase = perCase(row.Totals.Amount, row.Totals.Cases)

		report.Depot.Cases += row.Totals.Cases
		report.Depot.Amount += row.Totals.Amount
		report.Rows = append(report.Rows, row)
	}

	for i := range report.Columns {
		report.Columns[i].EffectiveRate = perCase(report.Columns[i].Amount, report.Columns[i].Cases)
	}
	report.Depot.PerCase = perCase(report.Depot.Amount, report.Depot.Cases)

	return report
}

// FormTotals live totals of an unsaved entry form
func FormTotals(entries []model.ProductEntry) Totals {
	var t Totals
	for _, p := range entries {
		t.Cases += p.Cases
		t.Amount += p.Amount()
	}
	t.PerCase = perCase(t.Amount, t.Cases)
	return t
}

// perCase amount per case; zero cases yields 0
func perCase(amount, cases float64) float64 {
	if cases <= 0 {
		return 0
	}
	return amount / cases
}

// Rounded returns a copy with every figure rounded to whole units.
func (r Report) Rounded() Report {
	out := Report{
		Rows:    make([]RowTotals, len(r.Rows)),
		Columns: make([]ColumnTotals, len(r.Columns)),
		Depot:   r.Depot.Rounded(),
	}
	for i, row := range r.Rows {
		row.ShopIDs = append(make([]string, 0, len(row.ShopIDs)), row.ShopIDs...)
		lines := make([]Line, len(row.Products))
		for j, l := range row.Products {
			lines[j] = Line{Cases: math.Round(l.Cases), Rate: math.Round(l.Rate), Amount: math.Round(l.Amount)}
		}
		row.Products = lines
		row.Totals = row.Totals.Rounded()
		out.Rows[i] = row
	}
	for i, c := range r.Columns {
		out.Columns[i] = ColumnTotals{
			Cases:         math.Round(c.Cases),
			EffectiveRate: math.Round(c.EffectiveRate),
			Amount:        math.Round(c.Amount),
		}
	}
	return out
}

// Rounded whole-unit copy
func (t Totals) Rounded() Totals {
	return Totals{
		Cases:   math.Round(t.Cases),
		PerCase: math.Round(t.PerCase),
		Amount:  math.Round(t.Amount),
	}
}
