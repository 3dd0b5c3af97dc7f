package main

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/incubazar/venture-calc/internal/equity"
	"github.com/incubazar/venture-calc/internal/format"
	"github.com/incubazar/venture-calc/internal/model"
)

var equityCmd = &cobra.Command{
	Use:   "equity",
	Short: "Co-founder equity split and dilution forecasts",
}

// -- equity split --

var splitFounders []string

var equitySplitCmd = &cobra.Command{
	Use:   "split",
	Short: "Recommend a co-founder equity split",
	Long: "Each --founder is NAME:CAPITAL:TIME:ROLE:IP, where TIME is percent of full time (0-100)\n" +
		"and ROLE and IP are scores from 1 to 10. Example: --founder Ada:50000:100:9:8",
	RunE: func(cmd *cobra.Command, _ []string) error {
		founders := make([]equity.CoFounder, 0, len(splitFounders))
		for _, raw := range splitFounders {
			f, err := parseFounder(raw)
			if err != nil {
				return err
			}
			founders = append(founders, f)
		}
		if len(founders) == 0 {
			return eris.New("at least one --founder is required")
		}

		res := engine.Equity().Split(founders)
		input := map[string]any{"co_founders": founders}
		if _, err := recordCalculation(cmd.Context(), model.KindEquitySplit, "", input, res); err != nil {
			return err
		}
		return render(os.Stdout, outputFormat, res, func(w io.Writer) {
			formatSplit(w, res)
		})
	},
}

// -- equity dilution --

var dilutionIn equity.DilutionInputs

var equityDilutionCmd = &cobra.Command{
	Use:   "dilution",
	Short: "Forecast dilution from a priced round and later rounds",
	RunE: func(cmd *cobra.Command, _ []string) error {
		res := engine.Equity().Dilution(dilutionIn)
		if _, err := recordCalculation(cmd.Context(), model.KindDilution, "", dilutionIn, res); err != nil {
			return err
		}
		return render(os.Stdout, outputFormat, res, func(w io.Writer) {
			formatDilution(w, res)
		})
	},
}

func init() {
	equitySplitCmd.Flags().StringArrayVar(&splitFounders, "founder", nil, "co-founder as NAME:CAPITAL:TIME:ROLE:IP (repeatable)")
	addSaveFlags(equitySplitCmd)

	equityDilutionCmd.Flags().Float64Var(&dilutionIn.CurrentOwnership, "ownership", 100, "current founder ownership percent")
	equityDilutionCmd.Flags().Float64Var(&dilutionIn.PreMoneyValuation, "pre-money", 0, "pre-money valuation")
	equityDilutionCmd.Flags().Float64Var(&dilutionIn.InvestmentAmount, "investment", 0, "investment amount")
	equityDilutionCmd.Flags().Float64Var(&dilutionIn.OptionPoolSize, "option-pool", 0, "option pool percent (0-30)")
	addSaveFlags(equityDilutionCmd)

	equityCmd.AddCommand(equitySplitCmd)
	equityCmd.AddCommand(equityDilutionCmd)
	rootCmd.AddCommand(equityCmd)
}

// parseFounder parses NAME:CAPITAL:TIME:ROLE:IP. Trailing numeric fields may
// be omitted and default to zero.
func parseFounder(raw string) (equity.CoFounder, error) {
	parts := strings.Split(raw, ":")
	if len(parts) > 5 || strings.TrimSpace(parts[0]) == "" {
		return equity.CoFounder{}, eris.Errorf("invalid founder %q: want NAME:CAPITAL:TIME:ROLE:IP", raw)
	}

	f := equity.CoFounder{Name: strings.TrimSpace(parts[0])}
	fields := []*float64{&f.CapitalInvested, &f.TimeCommitment, &f.RoleImportance, &f.IPContribution}
	for i, p := range parts[1:] {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return equity.CoFounder{}, eris.Wrapf(err, "invalid founder %q", raw)
		}
		*fields[i] = v
	}
	return f, nil
}

func formatSplit(w io.Writer, res equity.SplitResult) {
	line(w, "FOUNDER", "EQUITY", "CAPITAL", "TIME", "ROLE", "IP")
	for _, f := range res.Founders {
		line(w, f.Name, format.Percentage(f.EquityPercentage, 1),
			format.Percentage(f.Breakdown.CapitalScore, 1), format.Percentage(f.Breakdown.TimeScore, 1),
			format.Percentage(f.Breakdown.RoleScore, 1), format.Percentage(f.Breakdown.IPScore, 1))
	}
	line(w)
	line(w, "Recommendation", res.Recommendation)
	line(w, "Rationale", res.Rationale)
}

func formatDilution(w io.Writer, res equity.DilutionResult) {
	line(w, "Post-money", format.Currency(res.PostMoneyValuation))
	line(w, "Investor ownership", format.Percentage(res.InvestorOwnership, 1))
	line(w, "Option pool impact", format.Percentage(res.OptionPoolImpact, 1))
	line(w, "Your new ownership", format.Percentage(res.NewOwnership, 1))
	line(w, "Dilution", format.Percentage(res.DilutionPercentage, 1))
	line(w)
	line(w, "ROUND", "RAISE", "VALUATION", "DILUTION", "OWNERSHIP", "CUMULATIVE")
	for _, r := range res.FutureRounds {
		line(w, r.Round, format.Number(r.AssumedRaise), format.Number(r.AssumedValuation),
			format.Percentage(r.RoundDilution, 1), format.Percentage(r.ProjectedOwnership, 1),
			format.Percentage(r.CumulativeDilution, 1))
	}
}
