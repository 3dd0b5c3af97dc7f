package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/incubazar/venture-calc/internal/benchmark"
	"github.com/incubazar/venture-calc/internal/format"
	"github.com/incubazar/venture-calc/internal/model"
)

var benchmarksCmd = &cobra.Command{
	Use:   "benchmarks [industry]",
	Short: "Show industry benchmarks",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		table := engine.Benchmarks()
		list := table.All()
		if len(args) == 1 {
			ind := model.ParseIndustry(args[0])
			if ind == model.IndustryOther && !strings.EqualFold(args[0], string(model.IndustryOther)) {
				return eris.Errorf("unknown industry %q", args[0])
			}
			list = []benchmark.Benchmarks{table.For(ind)}
		}

		var v any = list
		if len(list) == 1 {
			v = list[0]
		}
		return render(os.Stdout, outputFormat, v, func(w io.Writer) {
			formatBenchmarks(w, list)
		})
	},
}

func init() {
	rootCmd.AddCommand(benchmarksCmd)
}

func formatBenchmarks(w io.Writer, list []benchmark.Benchmarks) {
	line(w, "INDUSTRY", "LTV:CAC (ACC/GOOD/EXC)", "NRR (ACC/GOOD/EXC)", "SEED MULTIPLE")
	for _, b := range list {
		seed := b.RevenueMultiples.ForStage(model.StageSeed)
		line(w, b.Industry,
			strings.Join([]string{format.Ratio(b.LTVCACRatio.Acceptable), format.Ratio(b.LTVCACRatio.Good), format.Ratio(b.LTVCACRatio.Excellent)}, " / "),
			strings.Join([]string{format.Percentage(b.NRR.Acceptable, 0), format.Percentage(b.NRR.Good, 0), format.Percentage(b.NRR.Excellent, 0)}, " / "),
			fmt.Sprintf("%.1fx - %.1fx", seed.Low, seed.High),
		)
	}
}
