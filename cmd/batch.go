package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/incubazar/venture-calc/internal/model"
	"github.com/incubazar/venture-calc/internal/store"
	"github.com/incubazar/venture-calc/internal/workbook"
)

var (
	batchOutDir string
	batchXLSX   bool
)

var batchCmd = &cobra.Command{
	Use:   "batch <state-file>...",
	Short: "Compute many workbook states concurrently",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := cfg.Validate("cli"); err != nil {
			return err
		}
		if err := checkOutputNames(args); err != nil {
			return err
		}
		if err := os.MkdirAll(batchOutDir, 0o755); err != nil {
			return eris.Wrapf(err, "create %s", batchOutDir)
		}

		var st store.Store
		if saveResult {
			s, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer s.Close() //nolint:errcheck
			st = s
		}

		ext := "." + outputFormat
		if batchXLSX {
			ext = ".xlsx"
		} else if outputFormat == formatText {
			ext = "." + formatJSON
		}

		_, err := processBatch(ctx, args, cfg.Batch.MaxConcurrent, func(ctx context.Context, path string) error {
			return computeStateFile(ctx, path, batchOutDir, ext, st)
		})
		return err
	},
}

func init() {
	batchCmd.Flags().StringVar(&batchOutDir, "out-dir", "results", "directory for result files")
	batchCmd.Flags().BoolVar(&batchXLSX, "xlsx", false, "write spreadsheets instead of JSON/YAML")
	addSaveFlags(batchCmd)
	rootCmd.AddCommand(batchCmd)
}

// batchFunc processes a single state file.
type batchFunc func(ctx context.Context, path string) error

// batchSummary counts processBatch outcomes.
type batchSummary struct {
	Succeeded int64
	Failed    int64
}

// processBatch runs fn over paths with at most concurrency in flight. A
// failing file is logged and counted but does not stop the batch.
func processBatch(ctx context.Context, paths []string, concurrency int, fn batchFunc) (batchSummary, error) {
	if len(paths) == 0 {
		zap.L().Info("no state files given")
		return batchSummary{}, nil
	}
	if concurrency < 1 {
		concurrency = 1
	}

	zap.L().Info("processing batch",
		zap.Int("files", len(paths)),
		zap.Int("concurrency", concurrency),
	)

	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	var succeeded, failed atomic.Int64
	for _, path := range paths {
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			if err := fn(gctx, path); err != nil {
				failed.Add(1)
				zap.L().Error("state file failed", zap.String("path", path), zap.Error(err))
				return nil // don't abort batch on individual failure
			}
			succeeded.Add(1)
			return nil
		})
	}

	err := g.Wait()
	sum := batchSummary{Succeeded: succeeded.Load(), Failed: failed.Load()}
	zap.L().Info("batch complete",
		zap.Int64("succeeded", sum.Succeeded),
		zap.Int64("failed", sum.Failed),
		zap.Duration("elapsed", time.Since(start)),
	)
	if err != nil {
		return sum, eris.Wrap(err, "batch interrupted")
	}
	if sum.Failed > 0 {
		return sum, eris.Errorf("%d of %d state files failed", sum.Failed, len(paths))
	}
	return sum, nil
}

// outputBase is the result file name for a state file, without extension.
func outputBase(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

// checkOutputNames rejects state files that would write the same result file.
func checkOutputNames(paths []string) error {
	seen := make(map[string]string, len(paths))
	var clashes []string
	for _, p := range paths {
		base := outputBase(p)
		if prev, ok := seen[base]; ok {
			clashes = append(clashes, prev+" and "+p)
			continue
		}
		seen[base] = p
	}
	if len(clashes) > 0 {
		return eris.Errorf("batch: state files share an output name: %s", strings.Join(clashes, "; "))
	}
	return nil
}

// computeStateFile computes one state and writes <out>/<base><ext>. When st
// is non-nil the result is also saved to history.
func computeStateFile(ctx context.Context, path, outDir, ext string, st store.Store) error {
	state, err := workbook.LoadState(path)
	if err != nil {
		return err
	}
	res := engine.Compute(state)

	out := filepath.Join(outDir, outputBase(path)+ext)
	if err := writeResults(out, strings.TrimPrefix(ext, "."), res); err != nil {
		return err
	}

	if st != nil {
		in, err := json.Marshal(state)
		if err != nil {
			return eris.Wrap(err, "marshal state")
		}
		outJSON, err := json.Marshal(res)
		if err != nil {
			return eris.Wrap(err, "marshal results")
		}
		label := state.Company.CompanyName
		if saveLabel != "" {
			label = saveLabel
		}
		c := &model.Calculation{Kind: model.KindWorkbook, Label: label, Input: in, Output: outJSON}
		if err := st.SaveCalculation(ctx, c); err != nil {
			return eris.Wrapf(err, "save %s", path)
		}
	}

	zap.L().Debug("state file computed", zap.String("path", path), zap.String("out", out))
	return nil
}
