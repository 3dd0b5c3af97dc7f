package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/incubazar/venture-calc/internal/format"
	"github.com/incubazar/venture-calc/internal/model"
	"github.com/incubazar/venture-calc/internal/unitecon"
)

var (
	ueLTV         unitecon.LTVInputs
	ueCAC         unitecon.CACInputs
	ueRetention   unitecon.RetentionInputs
	ueIndustry    string
	ueSensitivity bool
)

// unitEconomicsReport is the unitecon command's output.
type unitEconomicsReport struct {
	LTVCAC         unitecon.LTVCACResult       `json:"ltv_cac"`
	LTVCACBench    *unitecon.Comparison        `json:"ltv_cac_benchmark,omitempty"`
	Sensitivity    *unitecon.SensitivityMatrix `json:"sensitivity,omitempty"`
	Retention      *unitecon.RetentionResult   `json:"retention,omitempty"`
	RetentionBench *unitecon.Comparison        `json:"retention_benchmark,omitempty"`
}

var unitEconCmd = &cobra.Command{
	Use:   "unitecon",
	Short: "LTV:CAC, sensitivity and net revenue retention",
	RunE: func(cmd *cobra.Command, _ []string) error {
		rep := buildUnitEconomics(ueLTV, ueCAC, ueRetention, ueIndustry, ueSensitivity)

		input := map[string]any{"ltv": ueLTV, "cac": ueCAC, "industry": ueIndustry}
		if ueRetention.StartMRR > 0 {
			input["retention"] = ueRetention
		}
		if _, err := recordCalculation(cmd.Context(), model.KindUnitEconomics, "", input, rep); err != nil {
			return err
		}
		return render(os.Stdout, outputFormat, rep, func(w io.Writer) {
			formatUnitEconomics(w, rep)
		})
	},
}

func init() {
	f := unitEconCmd.Flags()
	f.Float64Var(&ueLTV.ARPU, "arpu", 0, "average monthly revenue per user")
	f.Float64Var(&ueLTV.GrossMargin, "margin", 0, "gross margin percent")
	f.Float64Var(&ueLTV.AvgCustomerLifespan, "lifespan", 0, "average customer lifespan in months")
	f.Float64Var(&ueCAC.TotalSalesMarketingSpend, "spend", 0, "sales and marketing spend for the period")
	f.Float64Var(&ueCAC.NewCustomersAcquired, "customers", 0, "new customers acquired in the period")
	f.StringVar(&ueIndustry, "industry", "", "compare against this industry's benchmarks")
	f.BoolVar(&ueSensitivity, "sensitivity", false, "include the CAC/churn sensitivity matrix")
	f.Float64Var(&ueRetention.StartMRR, "start-mrr", 0, "cohort MRR at period start (enables retention)")
	f.Float64Var(&ueRetention.EndMRR, "end-mrr", 0, "cohort MRR at period end")
	f.Float64Var(&ueRetention.Expansion, "expansion", 0, "expansion MRR (used when --end-mrr is 0)")
	f.Float64Var(&ueRetention.Contraction, "contraction", 0, "contraction MRR")
	f.Float64Var(&ueRetention.Churn, "churn", 0, "churned MRR")
	addSaveFlags(unitEconCmd)
	rootCmd.AddCommand(unitEconCmd)
}

func buildUnitEconomics(ltv unitecon.LTVInputs, cac unitecon.CACInputs, ret unitecon.RetentionInputs, industry string, sensitivity bool) unitEconomicsReport {
	rep := unitEconomicsReport{LTVCAC: unitecon.LTVCAC(ltv, cac)}

	bench := engine.Benchmarks().For(model.ParseIndustry(industry))
	if industry != "" && rep.LTVCAC.CAC > 0 {
		cmp := unitecon.CompareTo(bench, rep.LTVCAC.Ratio)
		rep.LTVCACBench = &cmp
	}
	if sensitivity {
		sm := unitecon.Sensitivity(ltv, cac, nil, nil)
		rep.Sensitivity = &sm
	}
	if ret.StartMRR > 0 {
		rr := unitecon.Retention(ret)
		rep.Retention = &rr
		if industry != "" {
			cmp := unitecon.CompareNRRTo(bench, rr.NRR)
			rep.RetentionBench = &cmp
		}
	}
	return rep
}

func formatUnitEconomics(w io.Writer, rep unitEconomicsReport) {
	lc := rep.LTVCAC
	line(w, "LTV", format.Currency(lc.LTV))
	line(w, "CAC", format.Currency(lc.CAC))
	line(w, "LTV:CAC", format.Ratio(lc.Ratio), lc.Rating)
	line(w, "Recommendation", lc.Recommendation)
	if rep.LTVCACBench != nil {
		line(w, "Benchmark", rep.LTVCACBench.Verdict)
	}

	if rep.Retention != nil {
		line(w)
		line(w, "NRR", format.Percentage(rep.Retention.NRR, 1), rep.Retention.Status)
		line(w, "Assessment", rep.Retention.Benchmark)
		if rep.RetentionBench != nil {
			line(w, "Benchmark", rep.RetentionBench.Verdict)
		}
	}

	if sm := rep.Sensitivity; sm != nil {
		line(w)
		header := []any{"CHURN \\ CAC"}
		for _, c := range sm.CACChanges {
			header = append(header, format.Percentage(c, 0))
		}
		line(w, header...)
		for i, row := range sm.Results {
			cols := []any{format.Percentage(sm.ChurnChanges[i], 1)}
			for _, cell := range row {
				cols = append(cols, format.Ratio(cell.Ratio))
			}
			line(w, cols...)
		}
	}
}
