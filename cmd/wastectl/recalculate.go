package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/localnerve/wastedash/internal/services"
	"github.com/localnerve/wastedash/internal/types"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var recalcFlags = struct {
	tenant    string
	all       bool
	dryRun    bool
	batchSize int
	afterID   uint64
	window    string
	year      int
	quarter   int
}{}

func newRecalculateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recalculate",
		Short: "Re-derive totals, diversion and estimated impacts with the current formula",
		Long: `Re-derive totals, diversion and estimated impacts with the current formula.

Raw quantities and measured impact values are never changed. Only rows whose stored
values differ are written, so a second run performs no writes. A run that stops early
can be resumed with --after-id set to the last id it reported.`,
		Args: cobra.NoArgs,
		RunE: recalculateRun,
	}

	flags := cmd.Flags()
	flags.StringVar(&recalcFlags.tenant, "tenant", "", "tenant slug")
	flags.BoolVar(&recalcFlags.all, "all", false, "run for every active tenant")
	flags.BoolVar(&recalcFlags.dryRun, "dry-run", false, "report what would change without writing")
	flags.IntVar(&recalcFlags.batchSize, "batch", 0, "rows per batch (default RECALC_BATCH_SIZE)")
	flags.Uint64Var(&recalcFlags.afterID, "after-id", 0, "resume after this observation id")
	flags.StringVar(&recalcFlags.window, "window", "", "limit to a window: year, quarter, true_year, true_quarter")
	flags.IntVar(&recalcFlags.year, "year", 0, "window year")
	flags.IntVar(&recalcFlags.quarter, "quarter", 0, "window quarter")
	cmd.MarkFlagsMutuallyExclusive("tenant", "all")
	cmd.MarkFlagsOneRequired("tenant", "all")

	return cmd
}

func recalculateRun(cmd *cobra.Command, args []string) error {
	opts := services.RecalcOptions{
		AfterID:   recalcFlags.afterID,
		BatchSize: recalcFlags.batchSize,
		DryRun:    recalcFlags.dryRun,
	}
	if recalcFlags.window != "" {
		w, err := services.ParseWindow(recalcFlags.window, recalcFlags.year, recalcFlags.quarter)
		if err != nil {
			return err
		}
		opts.Window = &w
	}

	ctx := cmd.Context()
	e, err := openEnv(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	if opts.BatchSize == 0 {
		opts.BatchSize = e.cfg.RecalcBatchSize
	}

	var slugs []string
	if recalcFlags.all {
		tenants, err := e.registry.List(ctx, false)
		if err != nil {
			return err
		}
		for _, t := range tenants {
			slugs = append(slugs, t.Slug)
		}
	} else {
		slugs = []string{recalcFlags.tenant}
	}

	out := cmd.OutOrStdout()
	var failed []uint64
	for _, slug := range slugs {
		result, err := recalculateTenant(cmd, e.registry, e.admin, slug, opts)
		if result != nil {
			printResult(out, slug, result)
		}
		var pf *types.PartialBatchFailure
		switch {
		case errors.As(err, &pf):
			failed = append(failed, pf.FailedIDs...)
		case err != nil:
			return fmt.Errorf("%s: %w", slug, err)
		}
	}

	if len(failed) > 0 {
		return &types.PartialBatchFailure{FailedIDs: failed}
	}
	return nil
}

func recalculateTenant(cmd *cobra.Command, registry *services.Registry, db *gorm.DB, slug string, opts services.RecalcOptions) (*services.RecalcResult, error) {
	provider := services.NewContextProvider(registry, db)
	tc, err := provider.Load(cmd.Context(), slug)
	if err != nil {
		return nil, err
	}
	return tc.Recalculate(cmd.Context(), opts)
}

func printResult(out io.Writer, slug string, r *services.RecalcResult) {
	mode := ""
	if r.DryRun {
		mode = " (dry run)"
	}
	fmt.Fprintf(out, "%s%s: scanned=%d updated=%d unchanged=%d failed=%d last_id=%d run=%s\n",
		slug, mode, r.Scanned, r.Updated, r.Unchanged, len(r.FailedIDs), r.LastID, r.RunID)
}
