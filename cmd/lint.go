package cmd

import (
	"fmt"

	"github.com/grovetools/catalogdocs/errors"
	"github.com/grovetools/catalogdocs/lint"
	"github.com/grovetools/catalogdocs/manifest"
	"github.com/spf13/cobra"
)

// NewLintCmd creates the placeholder language check.
func NewLintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lint",
		Short: "Find placeholder language in the documentation",
		Long: `Scans every .md and .mdx page under the docs root for placeholder text such
as "coming soon", TODO, TBD or lorem ipsum. Exits non-zero when any is found.

Examples:
  catalogdocs lint`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rc, err := newRunContext(cmd, "lint")
			if err != nil {
				return err
			}
			root, err := rc.path(rc.cfg.Lint.Root)
			if err != nil {
				return err
			}

			findings, err := lint.ScanPlaceholders(root, rc.cfg.Lint.Exclude)
			if err != nil {
				return err
			}
			rc.logger.WithField("findings", len(findings)).Debug("Scanned for placeholders")

			report := rc.report()
			if len(findings) > 0 {
				items := make([]string, len(findings))
				for i, f := range findings {
					items[i] = f.String()
				}
				report.ErrorPretty(fmt.Sprintf("Placeholder language found in %d location(s)", len(findings)), nil)
				report.List(items, maxPlaceholderFindings)
				return errors.CheckFailed("placeholder", len(findings))
			}

			report.Success("Placeholder lint passed")
			return nil
		},
	}
}

// NewInventoryCmd creates the frontmatter and orphan page check.
func NewInventoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inventory",
		Short: "Check page frontmatter and find pages missing from navigation",
		Long: `Checks that every .mdx page has frontmatter with a title, description and
icon, and that every page is referenced from the navigation manifest unless
it matches an allow_orphans pattern.

Examples:
  catalogdocs inventory`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rc, err := newRunContext(cmd, "inventory")
			if err != nil {
				return err
			}
			root, err := rc.path(rc.cfg.Lint.Root)
			if err != nil {
				return err
			}
			manifestPath, err := rc.path(rc.cfg.Navigation.Manifest)
			if err != nil {
				return err
			}

			doc, err := manifest.LoadFile(manifestPath)
			if err != nil {
				return err
			}

			inv, err := lint.TakeInventory(root, doc.AllPageRefs(), lint.InventoryOptions{
				Excludes:     rc.cfg.Lint.InventoryExclude,
				AllowOrphans: rc.cfg.Lint.AllowOrphans,
			})
			if err != nil {
				return err
			}
			rc.logger.WithField("pages", inv.Pages).Debug("Took page inventory")

			report := rc.report()
			if len(inv.MetadataIssues) > 0 {
				report.ErrorPretty(fmt.Sprintf("Missing metadata in %d page(s)", len(inv.MetadataIssues)), nil)
				report.List(inv.MetadataIssues, maxInventoryIssues)
			}
			if len(inv.Orphans) > 0 {
				report.ErrorPretty(fmt.Sprintf("Orphan pages (not in %s): %d", rc.cfg.Navigation.Manifest, len(inv.Orphans)), nil)
				report.List(inv.Orphans, maxInventoryIssues)
			}
			if len(inv.AllowedOrphans) > 0 {
				report.InfoPretty(fmt.Sprintf("Ignored orphans (allowed): %d", len(inv.AllowedOrphans)))
				report.List(inv.AllowedOrphans, maxAllowedOrphans)
			}

			if inv.HasIssues() {
				return errors.CheckFailed("inventory", len(inv.MetadataIssues)+len(inv.Orphans))
			}
			report.Success("Docs inventory checks passed")
			return nil
		},
	}
}

// NewColumnsCmd creates the SQL example column check.
func NewColumnsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "columns",
		Short: "Check that SQL examples only use documented columns",
		Long: `Builds the list of documented columns from the metadata blocks of the
configured table page directories, then checks every sql code block in the
docs for columns that the referenced tables do not have.

Examples:
  catalogdocs columns`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rc, err := newRunContext(cmd, "columns")
			if err != nil {
				return err
			}
			root, err := rc.path(rc.cfg.Lint.Root)
			if err != nil {
				return err
			}

			sources := make([]lint.ColumnSource, 0, len(rc.cfg.Lint.ColumnSources))
			for _, src := range rc.cfg.Lint.ColumnSources {
				dir, err := rc.path(src.Dir)
				if err != nil {
					return err
				}
				sources = append(sources, lint.ColumnSource{Dataset: src.Dataset, Dir: dir})
			}

			issues, tables, err := lint.ScanColumns(root, rc.cfg.Lint.Exclude, sources)
			if err != nil {
				return err
			}
			rc.logger.WithField("tables", tables).WithField("issues", len(issues)).Debug("Checked sql examples")

			report := rc.report()
			if tables == 0 {
				report.InfoPretty("No table pages found in the configured column sources (skipping accuracy checks).")
				return nil
			}
			if len(issues) > 0 {
				items := make([]string, len(issues))
				for i, issue := range issues {
					items[i] = issue.String()
				}
				report.ErrorPretty(fmt.Sprintf("Column accuracy check failed with %d issue(s)", len(issues)), nil)
				report.List(items, maxColumnIssues)
				return errors.CheckFailed("column accuracy", len(issues))
			}

			report.Success("Column accuracy check passed")
			return nil
		},
	}
}
