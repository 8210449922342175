package tablepages

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/grovetools/catalogdocs/catalog"
	"github.com/grovetools/catalogdocs/errors"
	"github.com/grovetools/catalogdocs/util/sanitize"
	"github.com/sirupsen/logrus"
)

// Status is the outcome of reconciling one page.
type Status string

const (
	StatusUpdated Status = "updated"
	StatusCreated Status = "created"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
	StatusError   Status = "error"
)

const (
	reasonNoTable = "table not found in export"
	reasonNoBlock = "yaml block not found"
	reasonBadName = "table name is not a valid file name"
	reasonIndex   = "table name collides with the index page"
)

// Result reports what happened to one page.
type Result struct {
	File   string `json:"file"`
	Status Status `json:"status"`
	Reason string `json:"reason,omitempty"`

	// Content is the page text to write for updated and created results.
	Content string `json:"-"`
	// Changed is false when an updated page already had the rendered content.
	Changed bool `json:"-"`
}

// Document is a page on disk, identified by its file name.
type Document struct {
	Name    string
	Content string
}

// Options configures page reconciliation.
type Options struct {
	Extension string
	IndexFile string
	Index     IndexOptions
}

func (o Options) withDefaults() Options {
	if o.Extension == "" {
		o.Extension = ".mdx"
	}
	if !strings.HasPrefix(o.Extension, ".") {
		o.Extension = "." + o.Extension
	}
	if o.IndexFile == "" {
		o.IndexFile = "index" + o.Extension
	}
	return o
}

// Plan is the full set of page changes for one run.
type Plan struct {
	Results []Result
	Index   Document
}

// Reconcile decides the new content of every page without touching disk.
// Existing documents are processed in file name order, followed by new pages
// for tables that have no document yet.
func Reconcile(cat *catalog.Catalog, existing []Document, opts Options) Plan {
	opts = opts.withDefaults()

	docs := make([]Document, len(existing))
	copy(docs, existing)
	sort.Slice(docs, func(i, j int) bool { return docs[i].Name < docs[j].Name })

	var plan Plan
	seen := make(map[string]bool)

	for _, doc := range docs {
		if doc.Name == opts.IndexFile {
			continue
		}

		name := strings.TrimSuffix(doc.Name, opts.Extension)
		table, ok := cat.Get(name)
		if !ok {
			plan.Results = append(plan.Results, Result{File: doc.Name, Status: StatusSkipped, Reason: reasonNoTable})
			continue
		}
		seen[name] = true

		content, ok := Splice(doc.Content, RenderBlock(table))
		if !ok {
			plan.Results = append(plan.Results, Result{File: doc.Name, Status: StatusFailed, Reason: reasonNoBlock})
			continue
		}

		plan.Results = append(plan.Results, Result{
			File:    doc.Name,
			Status:  StatusUpdated,
			Content: content,
			Changed: content != doc.Content,
		})
	}

	for _, table := range cat.Sorted() {
		if seen[table.Name] {
			continue
		}
		file := table.Name + opts.Extension
		if !sanitize.IsFileName(table.Name) {
			plan.Results = append(plan.Results, Result{File: file, Status: StatusFailed, Reason: reasonBadName})
			continue
		}
		if file == opts.IndexFile {
			plan.Results = append(plan.Results, Result{File: file, Status: StatusFailed, Reason: reasonIndex})
			continue
		}
		plan.Results = append(plan.Results, Result{
			File:    file,
			Status:  StatusCreated,
			Content: NewDocument(table),
			Changed: true,
		})
	}

	plan.Index = Document{Name: opts.IndexFile, Content: RenderIndex(cat, opts.Index)}
	return plan
}

// ReadDocuments loads every file with the given extension directly inside dir.
func ReadDocuments(dir, ext string) ([]Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInvalidInput, "failed to read pages directory").
			WithDetail("path", dir)
	}

	var docs []Document
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ext {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeInvalidInput, "failed to read page").
				WithDetail("path", path)
		}
		docs = append(docs, Document{Name: entry.Name(), Content: string(data)})
	}
	return docs, nil
}

// Sync reconciles the pages in dir against cat and writes the results. Page
// write failures are reported in the results; failing to write the index
// aborts the run.
func Sync(dir string, cat *catalog.Catalog, opts Options, logger *logrus.Entry) ([]Result, error) {
	opts = opts.withDefaults()
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}

	existing, err := ReadDocuments(dir, opts.Extension)
	if err != nil {
		return nil, err
	}

	plan := Reconcile(cat, existing, opts)

	results := make([]Result, 0, len(plan.Results))
	for _, r := range plan.Results {
		if (r.Status == StatusUpdated || r.Status == StatusCreated) && r.Changed {
			path := filepath.Join(dir, r.File)
			if err := os.WriteFile(path, []byte(r.Content), 0644); err != nil {
				logger.WithError(err).WithField("file", r.File).Warn("Failed to write page")
				r = Result{File: r.File, Status: StatusError, Reason: err.Error()}
			}
		}
		logger.WithFields(logrus.Fields{"file": r.File, "status": r.Status}).Debug("Reconciled page")
		results = append(results, r)
	}

	indexPath := filepath.Join(dir, plan.Index.Name)
	if err := os.WriteFile(indexPath, []byte(plan.Index.Content), 0644); err != nil {
		return results, errors.WriteFailed(indexPath, err)
	}
	logger.WithField("file", plan.Index.Name).Debug("Wrote index")

	return results, nil
}
