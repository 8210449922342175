package cmd

import (
	"github.com/grovetools/catalogdocs/model"
	"github.com/spf13/cobra"
)

// NewInspectCmd creates the command that prints the columns of a model file.
func NewInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [model.yml]",
		Short: "Print the models and column types of a model YAML file",
		Long: `Prints each model name followed by one "<column> <data_type>" line per
column. Without an argument the configured model file is read.

Examples:
  catalogdocs inspect
  catalogdocs inspect yaml-files/dda_orders.yml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rc, err := newRunContext(cmd, "inspect")
			if err != nil {
				return err
			}

			target := rc.cfg.Inspect.Model
			if len(args) == 1 {
				target = args[0]
			}
			path, err := rc.path(target)
			if err != nil {
				return err
			}

			rc.logger.WithField("model", path).Debug("Inspecting model")
			return model.Inspect(rc.out, path)
		},
	}
}
