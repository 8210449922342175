package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/grovetools/catalogdocs/catalog"
	"github.com/grovetools/catalogdocs/cli"
	"github.com/grovetools/catalogdocs/config"
	"github.com/grovetools/catalogdocs/logging"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Output limits for the check reports.
const (
	maxPlaceholderFindings = 100
	maxColumnIssues        = 100
	maxInventoryIssues     = 50
	maxAllowedOrphans      = 20
)

// runContext is what every subcommand starts from.
type runContext struct {
	cfg    *config.Config
	logger *logrus.Entry
	out    io.Writer
	pretty *logging.PrettyLogger
}

func newRunContext(cmd *cobra.Command, component string) (*runContext, error) {
	cfg, err := cli.LoadConfig(cmd)
	if err != nil {
		return nil, err
	}

	logger := cli.GetLogger(cmd, component)
	logger.WithField("root", cfg.Root).Debug("Configuration loaded")

	return &runContext{
		cfg:    cfg,
		logger: logger,
		out:    cmd.OutOrStdout(),
		pretty: logging.NewPrettyLogger().WithWriter(cmd.ErrOrStderr()),
	}, nil
}

// path resolves a configured path against the config root.
func (rc *runContext) path(p string) (string, error) {
	resolved, err := rc.cfg.ResolvePath(p)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", p, err)
	}
	return resolved, nil
}

// loadCatalog reads the configured export for the configured dataset.
func (rc *runContext) loadCatalog() (*catalog.Catalog, error) {
	export, err := rc.path(rc.cfg.Export)
	if err != nil {
		return nil, err
	}

	cat, err := catalog.Load(export, rc.cfg.Dataset)
	if err != nil {
		return nil, err
	}
	rc.logger.WithFields(logrus.Fields{
		"export":  export,
		"dataset": rc.cfg.Dataset,
		"tables":  cat.Len(),
	}).Debug("Loaded schema export")
	return cat, nil
}

// report returns a pretty logger writing to the command's stdout, where the
// check reports go.
func (rc *runContext) report() *logging.PrettyLogger {
	return logging.NewPrettyLogger().WithWriter(rc.out)
}

func writeJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
