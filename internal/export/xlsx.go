// Package export renders computed workbook results as an XLSX spreadsheet.
package export

import (
	"io"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/incubazar/venture-calc/internal/workbook"
)

// Sheet names, in the order they are written.
const (
	SheetSummary       = "Summary"
	SheetRunway        = "Runway"
	SheetUnitEconomics = "Unit Economics"
	SheetEquity        = "Equity"
	SheetDilution      = "Dilution"
	SheetValuation     = "Valuation"
)

const (
	moneyFormat   = "$#,##0"
	percentFormat = "0.00"
	ratioFormat   = "0.00"
)

// WriteWorkbook writes res to w. The Summary sheet is always present; the
// others only when the matching calculator ran.
func WriteWorkbook(w io.Writer, res workbook.Results) error {
	f, err := Build(res)
	if err != nil {
		return err
	}
	if err := f.Write(w); err != nil {
		return eris.Wrap(err, "export: write xlsx")
	}
	return nil
}

// Build assembles the spreadsheet for res.
func Build(res workbook.Results) (*xlsx.File, error) {
	f := xlsx.NewFile()

	writers := []struct {
		name  string
		skip  bool
		write func(*xlsx.Sheet, workbook.Results)
	}{
		{SheetSummary, false, writeSummary},
		{SheetRunway, res.Runway == nil, writeRunway},
		{SheetUnitEconomics, res.LTVCAC == nil && res.Retention == nil, writeUnitEconomics},
		{SheetEquity, res.EquitySplit == nil, writeEquity},
		{SheetDilution, res.Dilution == nil, writeDilution},
		{SheetValuation, res.Valuation == nil, writeValuation},
	}
	for _, sw := range writers {
		if sw.skip {
			continue
		}
		sheet, err := f.AddSheet(sw.name)
		if err != nil {
			return nil, eris.Wrapf(err, "export: add sheet %s", sw.name)
		}
		sw.write(sheet, res)
	}
	return f, nil
}

func header(sheet *xlsx.Sheet, names ...string) {
	row := sheet.AddRow()
	for _, n := range names {
		cell := row.AddCell()
		cell.SetString(n)
		style := xlsx.NewStyle()
		style.Font.Bold = true
		style.ApplyFont = true
		cell.SetStyle(style)
	}
}

// cellValue is a single typed cell.
type cellValue struct {
	s      string
	n      float64
	format string
	num    bool
}

func text(s string) cellValue                   { return cellValue{s: s} }
func money(v float64) cellValue                 { return cellValue{n: v, format: moneyFormat, num: true} }
func pct(v float64) cellValue                   { return cellValue{n: v, format: percentFormat, num: true} }
func number(v float64, format string) cellValue { return cellValue{n: v, format: format, num: true} }

func addRow(sheet *xlsx.Sheet, values ...cellValue) {
	row := sheet.AddRow()
	for _, v := range values {
		cell := row.AddCell()
		switch {
		case !v.num:
			cell.SetString(v.s)
		case v.format != "":
			cell.SetFloatWithFormat(v.n, v.format)
		default:
			cell.SetFloat(v.n)
		}
	}
}
