package main

import (
	"fmt"

	"github.com/fyrsmithlabs/forgescope/internal/checkout"
	"github.com/fyrsmithlabs/forgescope/internal/scope"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// syncCmd clones the resolved scope to disk.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Clone the projects of a scope to disk",
	Long: `Clone every project of the resolved scope under the target directory,
matching the layout of the rendered checkout configuration: the --root
project into the directory itself, every other project into a
subdirectory named after its bare path. Existing working copies are
left untouched.

Examples:
  # Clone a whole group into the current directory
  forgescope sync --group acme

  # Clone into a dedicated workspace with a root project
  forgescope sync --group acme --root platform --dir ~/src/acme`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().Bool("mine", false, "keep only projects you created")
	syncCmd.Flags().Bool("contributed", false, "keep only projects you committed to")
	syncCmd.Flags().Int("workers", 0, "parallel commit scans for --contributed")
	syncCmd.Flags().String("root", "", "bare path of the project cloned into the directory itself")
	syncCmd.Flags().String("dir", "", "target directory (default \".\")")
}

func runSync(cmd *cobra.Command, args []string) error {
	ctx, a, err := setup(cmd)
	if err != nil {
		return err
	}
	defer a.logger.Sync() //nolint:errcheck

	filter, err := filterMode(cmd)
	if err != nil {
		return err
	}

	projects, err := scope.Build(ctx, a.client, a.logger, scope.Options{
		Group:   a.cfg.Scope.Group,
		Filter:  filter,
		Workers: a.cfg.Scope.Workers,
	})
	if err != nil {
		return err
	}

	syncer := checkout.NewSyncer(a.logger, a.cfg.Checkout.Workers)
	results := syncer.Sync(ctx, projects, a.cfg.Scope.Root, a.cfg.Checkout.Dir)

	cloned, kept, failed := 0, 0, 0
	for _, r := range results {
		switch {
		case r.Err != nil:
			failed++
			a.logger.Error(ctx, "sync failed",
				zap.String("project", r.Project.FullPath),
				zap.Error(r.Err))
		case r.Cloned:
			cloned++
		default:
			kept++
		}
	}
	a.logger.Info(ctx, "sync finished",
		zap.Int("cloned", cloned),
		zap.Int("kept", kept),
		zap.Int("failed", failed))
	if failed == len(results) && failed > 0 {
		return fmt.Errorf("all %d clones failed", failed)
	}
	return nil
}
