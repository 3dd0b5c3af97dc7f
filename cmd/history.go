package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/incubazar/venture-calc/internal/model"
	"github.com/incubazar/venture-calc/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect saved calculations",
	Long:  "Commands for listing, viewing, deleting and importing saved calculations.",
}

// -- history list --

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved calculations, newest first",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		kind, _ := cmd.Flags().GetString("kind")
		label, _ := cmd.Flags().GetString("label")
		limit, _ := cmd.Flags().GetInt("limit")
		offset, _ := cmd.Flags().GetInt("offset")

		calcs, err := st.ListCalculations(ctx, store.CalculationFilter{
			Kind:   model.CalculationKind(kind),
			Label:  label,
			Limit:  limit,
			Offset: offset,
		})
		if err != nil {
			return eris.Wrap(err, "history list")
		}

		if len(calcs) == 0 && outputFormat == formatText {
			fmt.Fprintln(os.Stderr, "No calculations found.")
			return nil
		}
		return render(os.Stdout, outputFormat, calcs, func(w io.Writer) {
			formatHistoryList(w, calcs)
		})
	},
}

// -- history show --

var historyShowCmd = &cobra.Command{
	Use:   "show <calculation-id>",
	Short: "Show a saved calculation's input and output",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		c, err := st.GetCalculation(ctx, args[0])
		if err != nil {
			return eris.Wrap(err, "history show")
		}

		f := outputFormat
		if f == formatText {
			f = formatJSON
		}
		return render(os.Stdout, f, c, nil)
	},
}

// -- history delete --

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <calculation-id>",
	Short: "Delete a saved calculation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		if err := st.DeleteCalculation(ctx, args[0]); err != nil {
			return eris.Wrap(err, "history delete")
		}
		zap.L().Info("deleted calculation", zap.String("id", args[0]))
		return nil
	},
}

// -- history import --

var historyImportCmd = &cobra.Command{
	Use:   "import <file.json>",
	Short: "Import calculations exported with 'history list -o json'",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		calcs, err := readCalculations(args[0])
		if err != nil {
			return err
		}

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		n, err := st.ImportCalculations(ctx, calcs)
		if err != nil {
			return eris.Wrap(err, "history import")
		}
		zap.L().Info("import complete",
			zap.Int64("imported", n),
			zap.Int("records", len(calcs)),
			zap.String("file", args[0]),
		)
		return nil
	},
}

func init() {
	historyListCmd.Flags().String("kind", "", "filter by kind (runway, whatif, equity_split, dilution, valuation, unit_economics, sensitivity, retention, workbook)")
	historyListCmd.Flags().String("label", "", "filter by label")
	historyListCmd.Flags().Int("limit", 50, "max number of calculations to display")
	historyListCmd.Flags().Int("offset", 0, "number of calculations to skip")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyDeleteCmd)
	historyCmd.AddCommand(historyImportCmd)
	rootCmd.AddCommand(historyCmd)
}

func readCalculations(path string) ([]model.Calculation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "read %s", path)
	}
	var calcs []model.Calculation
	if err := json.Unmarshal(data, &calcs); err != nil {
		return nil, eris.Wrapf(err, "parse %s", path)
	}
	return calcs, nil
}

// formatHistoryList writes a tabular list of calculations to out.
func formatHistoryList(out io.Writer, calcs []model.Calculation) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tKIND\tLABEL\tCREATED")
	for _, c := range calcs {
		id := c.ID
		if len(id) > 8 {
			id = id[:8]
		}
		label := c.Label
		if label == "" {
			label = "-"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", id, c.Kind, label, c.CreatedAt.Format("2006-01-02 15:04"))
	}
	_ = w.Flush()
}
