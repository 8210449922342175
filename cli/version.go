package cli

import (
	"encoding/json"
	"fmt"

	"github.com/grovetools/catalogdocs/version"
	"github.com/spf13/cobra"
)

// SetVersionTemplate makes --version print the short build line.
func SetVersionTemplate(cmd *cobra.Command, info version.Info) {
	cmd.Version = info.Version
	cmd.SetVersionTemplate(fmt.Sprintf("{{.Name}} {{.Version}} (%s, %s)\n", info.Commit, info.Platform))
}

// NewVersionCommand creates a standard version command
func NewVersionCommand(componentName string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: fmt.Sprintf("Print the version number of %s", componentName),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := version.GetInfo()
			if GetOptions(cmd).JSONOutput {
				data, err := json.MarshalIndent(info, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s\n", componentName, info)
			return nil
		},
	}
}
