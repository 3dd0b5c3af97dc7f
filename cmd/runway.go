package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/incubazar/venture-calc/internal/format"
	"github.com/incubazar/venture-calc/internal/model"
	"github.com/incubazar/venture-calc/internal/runway"
)

var runwayIn runway.Inputs

// addRunwayFlags binds the cash, revenue and expense flags to in.
func addRunwayFlags(fs *pflag.FlagSet, in *runway.Inputs) {
	fs.Float64Var(&in.CashInBank, "cash", 0, "cash in bank")
	fs.Float64Var(&in.MonthlyRevenue, "revenue", 0, "monthly revenue")
	fs.Float64Var(&in.MonthlyExpenses.Salaries, "salaries", 0, "monthly salaries")
	fs.Float64Var(&in.MonthlyExpenses.Rent, "rent", 0, "monthly rent")
	fs.Float64Var(&in.MonthlyExpenses.Software, "software", 0, "monthly software spend")
	fs.Float64Var(&in.MonthlyExpenses.Marketing, "marketing", 0, "monthly marketing spend")
	fs.Float64Var(&in.MonthlyExpenses.COGS, "cogs", 0, "monthly cost of goods sold")
	fs.Float64Var(&in.MonthlyExpenses.Other, "other-expenses", 0, "other monthly expenses")
}

var runwayCmd = &cobra.Command{
	Use:   "runway",
	Short: "Calculate cash runway and an 18 month projection",
	RunE: func(cmd *cobra.Command, _ []string) error {
		res := engine.Runway().Calculate(runwayIn)
		if _, err := recordCalculation(cmd.Context(), model.KindRunway, "", runwayIn, res); err != nil {
			return err
		}
		return render(os.Stdout, outputFormat, res, func(w io.Writer) {
			formatRunway(w, res)
		})
	},
}

func init() {
	addRunwayFlags(runwayCmd.Flags(), &runwayIn)
	addSaveFlags(runwayCmd)
	rootCmd.AddCommand(runwayCmd)
}

func formatRunway(w io.Writer, res runway.Result) {
	line(w, "Monthly expenses", format.Currency(res.TotalMonthlyExpenses))
	line(w, "Net burn", format.Currency(res.NetBurnRate))
	line(w, "Runway", format.Months(res.RunwayMonths, res.Unbounded))
	line(w, "Status", res.RunwayStatus)
	line(w)
	line(w, "MONTH", "CASH", "REVENUE", "EXPENSES", "NET BURN")
	for _, p := range res.ProjectionData {
		line(w, p.Month, format.Currency(p.Cash), format.Currency(p.Revenue),
			format.Currency(p.Expenses), format.Currency(p.NetBurn))
	}
}
