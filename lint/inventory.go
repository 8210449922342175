package lint

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/grovetools/catalogdocs/util/frontmatter"
	"github.com/moby/patternmatcher"
)

// Inventory is the result of the page inventory check.
type Inventory struct {
	Pages          int      `json:"pages"`
	MetadataIssues []string `json:"metadata_issues"`
	Orphans        []string `json:"orphans"`
	AllowedOrphans []string `json:"allowed_orphans"`
}

// HasIssues reports whether the inventory found anything that fails the check.
// Allowed orphans are informational.
func (i *Inventory) HasIssues() bool {
	return len(i.MetadataIssues) > 0 || len(i.Orphans) > 0
}

// CheckMetadata reports missing frontmatter fields of one page.
func CheckMetadata(file, content string) []string {
	meta, ok, err := frontmatter.ParseString(content)
	if err != nil || !ok {
		return []string{file + ": missing/invalid frontmatter"}
	}

	var issues []string
	if meta.Title == "" {
		issues = append(issues, file+": missing title")
	}
	if meta.Description == "" {
		issues = append(issues, file+": missing description")
	}
	if meta.Icon == "" {
		issues = append(issues, file+": missing icon")
	}
	return issues
}

// NavigationRefs normalizes manifest page references for comparison with
// page paths. External links and anchors are dropped.
func NavigationRefs(refs []string) map[string]bool {
	out := make(map[string]bool, len(refs))
	for _, ref := range refs {
		if strings.HasPrefix(ref, "http") || strings.HasPrefix(ref, "#") {
			continue
		}
		out[strings.TrimLeft(ref, "/")] = true
	}
	return out
}

// FindOrphans splits the pages missing from navigation into orphans and
// orphans allowed by a pattern. Both results are sorted.
func FindOrphans(pages []string, navigation map[string]bool, allow []string) (orphans, allowed []string, err error) {
	pm, err := patternmatcher.New(allow)
	if err != nil {
		return nil, nil, err
	}

	for _, ref := range pages {
		if navigation[ref] {
			continue
		}
		ok, err := allowedOrphan(pm, ref)
		if err != nil {
			return nil, nil, err
		}
		if ok {
			allowed = append(allowed, ref)
		} else {
			orphans = append(orphans, ref)
		}
	}

	sort.Strings(orphans)
	sort.Strings(allowed)
	return orphans, allowed, nil
}

func allowedOrphan(pm *patternmatcher.PatternMatcher, ref string) (bool, error) {
	for _, candidate := range []string{ref, strings.ToLower(ref)} {
		ok, err := pm.MatchesOrParentMatches(filepath.FromSlash(candidate))
		if err != nil || ok {
			return ok, err
		}
	}
	return false, nil
}

// InventoryOptions configures TakeInventory.
type InventoryOptions struct {
	Excludes     []string
	AllowOrphans []string
}

// TakeInventory checks the frontmatter of every .mdx page under root and
// compares the pages against the manifest's page references.
func TakeInventory(root string, navigation []string, opts InventoryOptions) (*Inventory, error) {
	walker, err := NewWalker(root, opts.Excludes, ".mdx")
	if err != nil {
		return nil, err
	}
	files, err := walker.Files()
	if err != nil {
		return nil, err
	}

	inv := &Inventory{Pages: len(files)}
	refs := make([]string, 0, len(files))

	for _, rel := range files {
		refs = append(refs, strings.TrimSuffix(rel, filepath.Ext(rel)))

		data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
		if err != nil {
			inv.MetadataIssues = append(inv.MetadataIssues, rel+": unreadable")
			continue
		}
		inv.MetadataIssues = append(inv.MetadataIssues, CheckMetadata(rel, string(data))...)
	}

	inv.Orphans, inv.AllowedOrphans, err = FindOrphans(refs, NavigationRefs(navigation), opts.AllowOrphans)
	if err != nil {
		return nil, err
	}
	return inv, nil
}
