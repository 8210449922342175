package cmd

import (
	"github.com/grovetools/catalogdocs/catalog"
	"github.com/grovetools/catalogdocs/tablepages"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewPagesCmd creates the command that regenerates the table pages.
func NewPagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pages",
		Short: "Regenerate table pages and the index from the schema export",
		Long: `Rewrites the yaml metadata block of every table page, creates pages for
tables that have none and regenerates the index page. Text around the
metadata block is kept. The per-page results are printed as JSON.

Examples:
  catalogdocs pages
  catalogdocs pages --verbose`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rc, err := newRunContext(cmd, "pages")
			if err != nil {
				return err
			}
			cat, err := rc.loadCatalog()
			if err != nil {
				return err
			}

			results, err := syncPages(rc, cat)
			if err != nil {
				return err
			}
			return writeJSON(rc.out, results)
		},
	}
}

func pageOptions(rc *runContext) tablepages.Options {
	pages := rc.cfg.Pages
	return tablepages.Options{
		Extension: pages.Extension,
		IndexFile: pages.Index,
		Index: tablepages.IndexOptions{
			Title:       pages.IndexTitle,
			Description: pages.IndexDescription,
			Intro:       pages.IndexIntro,
			Namespace:   pages.Namespace,
		},
	}
}

func syncPages(rc *runContext, cat *catalog.Catalog) ([]tablepages.Result, error) {
	dir, err := rc.path(rc.cfg.Pages.Dir)
	if err != nil {
		return nil, err
	}

	results, err := tablepages.Sync(dir, cat, pageOptions(rc), rc.logger)
	if err != nil {
		return nil, err
	}

	counts := make(map[tablepages.Status]int)
	for _, r := range results {
		counts[r.Status]++
	}
	rc.logger.WithFields(logrus.Fields{
		"updated": counts[tablepages.StatusUpdated],
		"created": counts[tablepages.StatusCreated],
		"skipped": counts[tablepages.StatusSkipped],
		"failed":  counts[tablepages.StatusFailed] + counts[tablepages.StatusError],
	}).Info("Synchronized table pages")
	return results, nil
}
