package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/incubazar/venture-calc/internal/format"
	"github.com/incubazar/venture-calc/internal/model"
	"github.com/incubazar/venture-calc/internal/valuation"
)

var (
	valuationIn       valuation.Inputs
	valuationIndustry string
	valuationStage    string
	valuationHTML     bool
)

var valuationCmd = &cobra.Command{
	Use:   "valuation",
	Short: "Estimate a valuation range with Berkus and revenue multiples",
	RunE: func(cmd *cobra.Command, _ []string) error {
		in := valuationIn
		in.Industry = model.ParseIndustry(valuationIndustry)
		in.FundingStage = model.ParseFundingStage(valuationStage)

		res := engine.Valuation().Calculate(in)
		if _, err := recordCalculation(cmd.Context(), model.KindValuation, "", in, res); err != nil {
			return err
		}

		if valuationHTML {
			html, err := valuation.RenderNarrativeHTML(res.Narrative)
			if err != nil {
				return eris.Wrap(err, "render narrative")
			}
			_, err = fmt.Fprint(os.Stdout, html)
			return err
		}
		return render(os.Stdout, outputFormat, res, func(w io.Writer) {
			formatValuation(w, res)
		})
	},
}

func init() {
	valuationCmd.Flags().StringVar(&valuationIndustry, "industry", string(model.IndustrySaaS), "industry, e.g. SaaS, FinTech, \"B2B Services\"")
	valuationCmd.Flags().StringVar(&valuationStage, "stage", string(model.StageSeed), "funding stage: Pre-Seed, Seed, Series A, Series B, Series C+")
	valuationCmd.Flags().Float64Var(&valuationIn.MRR, "mrr", 0, "monthly recurring revenue")
	valuationCmd.Flags().Float64Var(&valuationIn.ARR, "arr", 0, "annual recurring revenue (used when --mrr is 0)")
	valuationCmd.Flags().Float64Var(&valuationIn.GrowthRate, "growth", 0, "year-over-year growth percent")
	valuationCmd.Flags().BoolVar(&valuationHTML, "html", false, "print the narrative as HTML")
	addSaveFlags(valuationCmd)
	rootCmd.AddCommand(valuationCmd)
}

func formatValuation(w io.Writer, res valuation.Result) {
	r := res.RecommendedRange
	line(w, "Industry", res.Inputs.Industry)
	line(w, "Stage", res.Inputs.FundingStage)
	line(w, "ARR", format.Currency(res.Inputs.ARR))
	line(w, "Method", res.Method)
	line(w)
	line(w, "", "LOW", "MID", "HIGH")
	line(w, "Recommended", format.Number(r.Low), format.Number(r.Mid), format.Number(r.High))
	line(w, "Berkus", format.Number(res.BerkusMethod.TotalValue))
	line(w, "Revenue multiple", fmt.Sprintf("%.2fx", res.RevenueMultiple.Multiple), format.Number(res.RevenueMultiple.Valuation))
	line(w)
	_, _ = fmt.Fprintln(w, res.Narrative)
}
