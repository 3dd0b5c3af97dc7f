package main

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/incubazar/venture-calc/internal/export"
	"github.com/incubazar/venture-calc/internal/format"
	"github.com/incubazar/venture-calc/internal/model"
	"github.com/incubazar/venture-calc/internal/workbook"
)

var workbookOut string

var workbookCmd = &cobra.Command{
	Use:   "workbook <state-file>",
	Short: "Run every calculator over a saved workbook state",
	Long: "Reads a workbook state (YAML or JSON) holding the company basics and each calculator's\n" +
		"inputs, runs every calculator whose inputs are present and prints the dashboard.\n" +
		"With --out ending in .xlsx the results are written as a spreadsheet.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := workbook.LoadState(args[0])
		if err != nil {
			return err
		}
		res := engine.Compute(st)

		if _, err := recordCalculation(cmd.Context(), model.KindWorkbook, st.Company.CompanyName, st, res); err != nil {
			return err
		}

		if workbookOut == "" {
			return render(os.Stdout, outputFormat, res, func(w io.Writer) {
				formatDashboard(w, res.Dashboard)
			})
		}
		if err := writeResults(workbookOut, outputFormat, res); err != nil {
			return err
		}
		zap.L().Info("wrote workbook", zap.String("path", workbookOut))
		return nil
	},
}

func init() {
	workbookCmd.Flags().StringVar(&workbookOut, "out", "", "write results to this file (.xlsx for a spreadsheet)")
	addSaveFlags(workbookCmd)
	rootCmd.AddCommand(workbookCmd)
}

// writeResults writes res to path. A .xlsx extension selects the
// spreadsheet; otherwise outFormat applies, with text treated as JSON.
func writeResults(path, outFormat string, res workbook.Results) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "create %s", path)
	}

	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		err = export.WriteWorkbook(f, res)
	} else {
		if outFormat == formatText {
			outFormat = formatJSON
		}
		err = render(f, outFormat, res, nil)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return eris.Wrapf(err, "write %s", path)
}

func formatDashboard(w io.Writer, d workbook.Dashboard) {
	if d.CompanyName != "" {
		line(w, "Company", d.CompanyName)
		line(w)
	}
	if len(d.Cards) == 0 {
		line(w, format.NotAvailable)
		return
	}
	line(w, "METRIC", "VALUE", "STATUS", "DETAIL")
	for _, c := range d.Cards {
		line(w, c.Title, c.Value, c.Status, c.Detail)
	}
}
