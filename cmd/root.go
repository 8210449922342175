// Package cmd wires the catalogdocs subcommands.
package cmd

import (
	"github.com/grovetools/catalogdocs/cli"
	"github.com/grovetools/catalogdocs/version"
	"github.com/spf13/cobra"
)

// NewRootCmd builds the catalogdocs command tree.
func NewRootCmd() *cobra.Command {
	root := cli.NewStandardCommand(
		"catalogdocs",
		"Generate and check the data catalog documentation",
	)
	root.Long = `Keeps the table documentation of a docs site in step with a schema export:
the navigation group, one page per table and the tables index. Also checks
the docs for placeholder text, missing metadata, orphan pages and SQL
examples that use undocumented columns.`

	cli.SetVersionTemplate(root, version.GetInfo())

	root.AddCommand(NewNavCmd())
	root.AddCommand(NewPagesCmd())
	root.AddCommand(NewSyncCmd())
	root.AddCommand(NewInspectCmd())
	root.AddCommand(NewLintCmd())
	root.AddCommand(NewInventoryCmd())
	root.AddCommand(NewColumnsCmd())
	root.AddCommand(NewConfigCmd())
	root.AddCommand(cli.NewVersionCommand("catalogdocs"))

	return root
}
