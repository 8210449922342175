package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/grovetools/catalogdocs/watch"
	"github.com/spf13/cobra"
)

// NewSyncCmd creates the command that runs nav and pages from one export load.
func NewSyncCmd() *cobra.Command {
	var watchExport bool

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Regenerate navigation, table pages and the index in one run",
		Long: `Loads the schema export once, rewrites the navigation group and then the
table pages. With --watch the sync runs again every time the export file
changes, until interrupted.

Examples:
  catalogdocs sync
  catalogdocs sync --watch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rc, err := newRunContext(cmd, "sync")
			if err != nil {
				return err
			}

			if err := runSync(rc); err != nil {
				return err
			}
			if !watchExport {
				return nil
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return watchSync(ctx, rc)
		},
	}

	cmd.Flags().BoolVarP(&watchExport, "watch", "w", false, "Re-run the sync whenever the export file changes")
	return cmd
}

func runSync(rc *runContext) error {
	cat, err := rc.loadCatalog()
	if err != nil {
		return err
	}

	msg, err := syncNavigation(rc, cat)
	if err != nil {
		return err
	}
	if msg != "" {
		rc.pretty.Success(msg)
	}

	results, err := syncPages(rc, cat)
	if err != nil {
		return err
	}
	return writeJSON(rc.out, results)
}

// watchSync re-runs the sync on every debounced change to the export until
// ctx is done. Failed runs are reported and the loop keeps going.
func watchSync(ctx context.Context, rc *runContext) error {
	export, err := rc.path(rc.cfg.Export)
	if err != nil {
		return err
	}

	w, err := watch.File(export, rc.cfg.Debounce())
	if err != nil {
		return err
	}
	defer w.Close()

	rc.logger.WithField("export", export).Info("Watching schema export")
	rc.pretty.InfoPretty("Watching " + rc.cfg.Export + " for changes (Ctrl+C to stop)")

	for {
		select {
		case <-ctx.Done():
			rc.logger.Info("Stopped watching")
			return nil
		case err := <-w.Events:
			if err != nil {
				rc.logger.WithError(err).Warn("Watcher error")
				continue
			}
			rc.logger.Debug("Export changed")
			if err := runSync(rc); err != nil {
				rc.logger.WithError(err).Error("Sync failed")
				rc.pretty.ErrorPretty("Sync failed", err)
			}
		}
	}
}
