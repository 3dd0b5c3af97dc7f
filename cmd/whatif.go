package main

import (
	"io"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/incubazar/venture-calc/internal/format"
	"github.com/incubazar/venture-calc/internal/model"
	"github.com/incubazar/venture-calc/internal/runway"
)

var (
	whatIfIn       runway.Inputs
	whatIfScenario runway.Scenario
	whatIfType     string
)

var whatIfCmd = &cobra.Command{
	Use:   "whatif",
	Short: "Compare runway before and after a scenario",
	Long: "Applies a revenue change, expense change, new hire or cost reduction to the baseline\n" +
		"and reports how many months of runway it adds or removes.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		s := whatIfScenario
		s.Type = runway.ScenarioType(whatIfType)
		if !s.Type.Valid() {
			return eris.Errorf("unknown scenario %q (%s)", whatIfType, scenarioNames())
		}

		res := engine.Runway().WhatIf(whatIfIn, s)
		input := map[string]any{"inputs": whatIfIn, "scenario": s}
		if _, err := recordCalculation(cmd.Context(), model.KindWhatIf, s.Description, input, res); err != nil {
			return err
		}
		return render(os.Stdout, outputFormat, res, func(w io.Writer) {
			formatWhatIf(w, res)
		})
	},
}

func init() {
	addRunwayFlags(whatIfCmd.Flags(), &whatIfIn)
	whatIfCmd.Flags().StringVar(&whatIfType, "scenario", "", "scenario type: "+scenarioNames())
	whatIfCmd.Flags().Float64Var(&whatIfScenario.Impact, "impact", 0, "scenario impact in dollars, or percent with --percent")
	whatIfCmd.Flags().BoolVar(&whatIfScenario.IsPercentage, "percent", false, "treat --impact as a percentage")
	whatIfCmd.Flags().StringVar(&whatIfScenario.Description, "description", "", "scenario description")
	_ = whatIfCmd.MarkFlagRequired("scenario")
	addSaveFlags(whatIfCmd)
	rootCmd.AddCommand(whatIfCmd)
}

func scenarioNames() string {
	names := make([]string, len(runway.ScenarioTypes))
	for i, t := range runway.ScenarioTypes {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}

func formatWhatIf(w io.Writer, res runway.WhatIfResult) {
	line(w, "", "BASELINE", "SCENARIO")
	line(w, "Monthly expenses", format.Currency(res.Baseline.TotalMonthlyExpenses), format.Currency(res.Scenario.TotalMonthlyExpenses))
	line(w, "Net burn", format.Currency(res.Baseline.NetBurnRate), format.Currency(res.Scenario.NetBurnRate))
	line(w, "Runway", format.Months(res.Baseline.RunwayMonths, res.Baseline.Unbounded),
		format.Months(res.Scenario.RunwayMonths, res.Scenario.Unbounded))
	line(w, "Status", res.Baseline.RunwayStatus, res.Scenario.RunwayStatus)
	line(w)

	diff := format.Months(res.Difference, false)
	if res.DifferenceInfinite {
		diff = "unbounded"
	}
	line(w, "Difference", diff)
	line(w, "Recommendation", res.Recommendation)
}
