package cmd

import (
	"fmt"

	"github.com/grovetools/catalogdocs/schema"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// NewConfigCmd creates the command that shows the effective configuration.
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Display the effective configuration",
		Long: `Prints the configuration after defaults are applied, with the file it was
loaded from and the directory relative paths resolve against. This is useful
for debugging configuration issues.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rc, err := newRunContext(cmd, "config")
			if err != nil {
				return err
			}

			source := rc.cfg.File
			if source == "" {
				source = "(defaults)"
			}
			fmt.Fprintf(rc.out, "# Source: %s\n", source)
			fmt.Fprintf(rc.out, "# Root: %s\n", rc.cfg.Root)

			data, err := yaml.Marshal(rc.cfg)
			if err != nil {
				return err
			}
			_, err = rc.out.Write(data)
			return err
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema for catalogdocs.yml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := cmd.OutOrStdout().Write(schema.Schema())
			return err
		},
	})

	return cmd
}
