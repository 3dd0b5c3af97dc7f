package main

import (
	"context"
	"encoding/json"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/incubazar/venture-calc/internal/config"
	"github.com/incubazar/venture-calc/internal/db"
	"github.com/incubazar/venture-calc/internal/model"
	"github.com/incubazar/venture-calc/internal/resilience"
	"github.com/incubazar/venture-calc/internal/store"
)

var (
	saveResult bool
	saveLabel  string
)

// addSaveFlags registers --save and --label on a calculation command.
func addSaveFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&saveResult, "save", false, "save the calculation to history")
	cmd.Flags().StringVar(&saveLabel, "label", "", "label stored with the saved calculation")
}

func initStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Driver {
	case config.DriverSQLite:
		return store.NewSQLite(cfg.Store.SQLitePath)
	case config.DriverPostgres:
		retry := cfg.Store.Retry
		retry.OnRetry = resilience.RetryLogger("postgres connect")
		pool, err := db.Connect(ctx, cfg.Store.DatabaseURL, cfg.Store.Pool, retry)
		if err != nil {
			return nil, err
		}
		return store.NewPostgres(pool), nil
	case config.DriverNone, "":
		return nil, eris.New("calculation history is disabled (VENTURECALC_STORE_DRIVER=none)")
	default:
		return nil, eris.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
}

// openStore validates the store config, connects and migrates.
func openStore(ctx context.Context) (store.Store, error) {
	if err := cfg.Validate("store"); err != nil {
		return nil, err
	}
	st, err := initStore(ctx)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close() //nolint:errcheck
		return nil, err
	}
	return st, nil
}

// recordCalculation saves input and output when --save is set and returns
// the new calculation ID.
func recordCalculation(ctx context.Context, kind model.CalculationKind, label string, input, output any) (string, error) {
	if !saveResult {
		return "", nil
	}
	if saveLabel != "" {
		label = saveLabel
	}

	in, err := json.Marshal(input)
	if err != nil {
		return "", eris.Wrap(err, "marshal calculation input")
	}
	out, err := json.Marshal(output)
	if err != nil {
		return "", eris.Wrap(err, "marshal calculation output")
	}

	st, err := openStore(ctx)
	if err != nil {
		return "", err
	}
	defer st.Close() //nolint:errcheck

	c := &model.Calculation{Kind: kind, Label: label, Input: in, Output: out}
	if err := st.SaveCalculation(ctx, c); err != nil {
		return "", eris.Wrap(err, "save calculation")
	}
	zap.L().Info("saved calculation",
		zap.String("id", c.ID),
		zap.String("kind", string(kind)),
	)
	return c.ID, nil
}
