package main

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/incubazar/venture-calc/internal/config"
	"github.com/incubazar/venture-calc/internal/workbook"
)

var (
	cfg    *config.Config
	engine *workbook.Engine

	outputFormat string
	policyPath   string
)

var rootCmd = &cobra.Command{
	Use:   "venture-calc",
	Short: "Startup financial calculators",
	Long:  "Runway, equity, valuation and unit economics calculators for early-stage startups, with a JSON API and calculation history.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return eris.Wrap(err, "load .env")
		}

		c, err := config.Load()
		if err != nil {
			return eris.Wrap(err, "load config")
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return eris.Wrap(err, "init logger")
		}

		if !validFormat(outputFormat) {
			return eris.Errorf("unsupported output format %q (json, yaml, text)", outputFormat)
		}

		path := policyPath
		if path == "" {
			path = cfg.Policy.File
		}
		policy := workbook.DefaultPolicy()
		if path != "" {
			policy, err = workbook.LoadPolicy(path)
			if err != nil {
				return eris.Wrap(err, "load policy")
			}
			zap.L().Debug("loaded policy overlay", zap.String("path", path))
		}
		engine = workbook.NewEngine(policy)

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "o", formatText, "output format: json, yaml or text")
	rootCmd.PersistentFlags().StringVar(&policyPath, "policy", "", "policy overlay YAML (default from config)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
