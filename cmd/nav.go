package cmd

import (
	"fmt"

	"github.com/grovetools/catalogdocs/catalog"
	"github.com/grovetools/catalogdocs/errors"
	"github.com/grovetools/catalogdocs/manifest"
	"github.com/spf13/cobra"
)

// NewNavCmd creates the command that rewrites the navigation group.
func NewNavCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "nav",
		Short: "Rewrite the tables navigation group from the schema export",
		Long: `Replaces the page list of every navigation group carrying the configured
label with one entry per table of the dataset, ordered by table type and name.
The rest of the manifest is left as it is.

Examples:
  catalogdocs nav
  catalogdocs nav -c site/catalogdocs.yml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rc, err := newRunContext(cmd, "nav")
			if err != nil {
				return err
			}
			cat, err := rc.loadCatalog()
			if err != nil {
				return err
			}

			msg, err := syncNavigation(rc, cat)
			if err != nil {
				return err
			}
			if msg != "" {
				fmt.Fprintln(rc.out, msg)
			}
			return nil
		},
	}
}

// syncNavigation rewrites the manifest and returns the success line. A
// missing group is reported on stderr and is not an error.
func syncNavigation(rc *runContext, cat *catalog.Catalog) (string, error) {
	path, err := rc.path(rc.cfg.Navigation.Manifest)
	if err != nil {
		return "", err
	}

	group := rc.cfg.Navigation.Group
	pages := manifest.PageRefs(cat, rc.cfg.Pages.Namespace)

	matches, err := manifest.SyncFile(path, group, pages)
	if errors.Is(err, errors.ErrCodeGroupNotFound) {
		rc.logger.WithField("group", group).Warn("Navigation group not found")
		rc.pretty.WarnPretty(fmt.Sprintf("%s group not found or navigation shape unexpected. No changes made.", group))
		return "", nil
	}
	if err != nil {
		return "", err
	}

	rc.logger.WithField("groups", matches).WithField("pages", len(pages)).Info("Updated navigation manifest")
	return fmt.Sprintf("Updated %s %s with %d entries.", rc.cfg.Navigation.Manifest, group, len(pages)), nil
}

