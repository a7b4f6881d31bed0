package excel

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/GSKumar1109/claimsreporter/internal/model"
	"github.com/GSKumar1109/claimsreporter/internal/service/calculator"
)

// DepotSheet everything rendered into one depot's sheet
type DepotSheet struct {
	CompanyName string
	ReportTitle string
	Depot       string
	Period      model.Period
	Products    []string
	Report      calculator.Report
}

// Exporter Excel exporter for the depot claim table
type Exporter struct{}

// NewExporter creates an exporter.
func NewExporter() *Exporter {
	return &Exporter{}
}

// FileName download name for a depot workbook
func FileName(depot string) string {
	return depot + "_data.xlsx"
}

// Title second heading row, e.g. "Claim Report From — KNL for October 2026"
func Title(reportTitle, depot string, period model.Period) string {
	return fmt.Sprintf("%s — %s for %s", reportTitle, depot, period.Label())
}

const (
	headerRows   = 4
	leadingCols  = 2 // Syndicate, Shop IDs
	colsPerGroup = 3
)

// ExportDepot builds a single-sheet workbook mirroring the on-screen table:
// company row, title row, product-group header, Cases/Rate/Amount sub-header,
// one row per record and a trailing Depot Total row. Figures are whole units.
func (e *Exporter) ExportDepot(in DepotSheet) (*excelize.File, error) {
	if !model.IsDepot(in.Depot) {
		return nil, model.ErrUnknownDepot
	}
	if len(in.Products) == 0 {
		return nil, errors.New("no products configured")
	}

	report := in.Report.Rounded()
	sheet := in.Depot
	totalCols := leadingCols + len(in.Products)*colsPerGroup + colsPerGroup

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("name sheet: %w", err)
	}

	w := &sheetWriter{f: f, sheet: sheet}

	// row 1: company, row 2: report title, both spanning the table
	w.merged(1, 1, 1, totalCols, in.CompanyName)
	w.merged(2, 1, 2, totalCols, Title(in.ReportTitle, in.Depot, in.Period))

	// row 3: product groups
	w.set(1, 3, "Syndicate")
	w.set(2, 3, "Shop IDs")
	for i, name := range in.Products {
		col := groupCol(i)
		w.merged(3, col, 3, col+colsPerGroup-1, name)
	}
	totalsCol := groupCol(len(in.Products))
	w.merged(3, totalsCol, 3, totalsCol+colsPerGroup-1, "Row Totals")

	// row 4: sub-header
	for i := range in.Products {
		col := groupCol(i)
		w.set(col, 4, "Cases")
		w.set(col+1, 4, "Rate")
		w.set(col+2, 4, "Amount")
	}
	w.set(totalsCol, 4, "Cases")
	w.set(totalsCol+1, 4, "Per Case")
	w.set(totalsCol+2, 4, "Amount")

	// data rows
	row := headerRows
	for _, r := range report.Rows {
		row++
		w.set(1, row, r.Syndicate)
		w.set(2, row, strings.Join(r.ShopIDs, ", "))
		for i := range in.Products {
			var line calculator.Line
			if i < len(r.Products) {
				line = r.Products[i]
			}
			col := groupCol(i)
			w.set(col, row, line.Cases)
			w.set(col+1, row, line.Rate)
			w.set(col+2, row, line.Amount)
		}
		w.set(totalsCol, row, r.Totals.Cases)
		w.set(totalsCol+1, row, r.Totals.PerCase)
		w.set(totalsCol+2, row, r.Totals.Amount)
	}

	// depot total
	row++
	footerRow := row
	w.set(1, row, "Depot Total")
	for i := range in.Products {
		var c calculator.ColumnTotals
		if i < len(report.Columns) {
			c = report.Columns[i]
		}
		col := groupCol(i)
		w.set(col, row, c.Cases)
		w.set(col+1, row, c.EffectiveRate)
		w.set(col+2, row, c.Amount)
	}
	w.set(totalsCol, row, report.Depot.Cases)
	w.set(totalsCol+1, row, report.Depot.PerCase)
	w.set(totalsCol+2, row, report.Depot.Amount)

	w.styles(totalCols, footerRow)

	if w.err != nil {
		_ = f.Close()
		return nil, w.err
	}
	return f, nil
}

// groupCol first column (1-based) of product group i
func groupCol(i int) int {
	return leadingCols + i*colsPerGroup + 1
}

// sheetWriter keeps the first error so the layout code stays linear.
type sheetWriter struct {
	f     *excelize.File
	sheet string
	err   error
}

func (w *sheetWriter) cell(col, row int) string {
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil && w.err == nil {
		w.err = err
	}
	return name
}

func (w *sheetWriter) set(col, row int, value any) {
	if w.err != nil {
		return
	}
	if err := w.f.SetCellValue(w.sheet, w.cell(col, row), value); err != nil && w.err == nil {
		w.err = err
	}
}

func (w *sheetWriter) merged(row, fromCol, toRow, toCol int, value any) {
	w.set(fromCol, row, value)
	if w.err != nil || fromCol == toCol && row == toRow {
		return
	}
	if err := w.f.MergeCell(w.sheet, w.cell(fromCol, row), w.cell(toCol, toRow)); err != nil && w.err == nil {
		w.err = err
	}
}

func (w *sheetWriter) styles(totalCols, footerRow int) {
	if w.err != nil {
		return
	}
	f := w.f

	company, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 16},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		w.err = err
		return
	}
	title, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Size: 13},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#F0F0F0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		w.err = err
		return
	}
	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		w.err = err
		return
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		w.err = err
		return
	}

	last := w.cell(totalCols, 1)
	_ = f.SetCellStyle(w.sheet, "A1", last, company)
	_ = f.SetCellStyle(w.sheet, "A2", w.cell(totalCols, 2), title)
	_ = f.SetCellStyle(w.sheet, "A3", w.cell(totalCols, 4), header)
	_ = f.SetCellStyle(w.sheet, w.cell(1, footerRow), w.cell(totalCols, footerRow), bold)

	_ = f.SetColWidth(w.sheet, "A", "A", 24)
	_ = f.SetColWidth(w.sheet, "B", "B", 30)
	lastCol, _ := excelize.ColumnNumberToName(totalCols)
	_ = f.SetColWidth(w.sheet, "C", lastCol, 11)
}
