package tablepages

import (
	"fmt"
	"strings"

	"github.com/grovetools/catalogdocs/catalog"
)

// IndexOptions controls the text of the generated index page.
type IndexOptions struct {
	Title       string
	Description string
	Intro       string
	Footer      string
	// Namespace is the page path prefix used for card links.
	Namespace string
}

// indexSections maps each indexed table type to its heading, in display order.
var indexSections = []struct {
	Type    string
	Heading string
}{
	{catalog.TypeDimension, "Dimensions"},
	{catalog.TypeFact, "Facts"},
	{catalog.TypeOneBigTable, "OBT (One Big Table)"},
	{catalog.TypeReport, "Reports"},
}

func (o IndexOptions) withDefaults(dataset string) IndexOptions {
	if o.Title == "" {
		o.Title = fmt.Sprintf("%s Tables", dataset)
	}
	if o.Description == "" {
		o.Description = fmt.Sprintf("Browse all tables in the %s schema, grouped by type.", dataset)
	}
	if o.Intro == "" {
		o.Intro = fmt.Sprintf("Welcome to the %s schema. Use this page to quickly jump to table-level documentation. Tables are grouped by their role in the model for clarity.", dataset)
	}
	if o.Footer == "" {
		o.Footer = "Need something else in this index? Ping us and we’ll add it."
	}
	o.Namespace = strings.Trim(o.Namespace, "/")
	return o
}

// RenderIndex renders the index page grouping tables by type. Tables whose
// type is not one of the indexed types are left out.
func RenderIndex(cat *catalog.Catalog, opts IndexOptions) string {
	opts = opts.withDefaults(cat.Dataset)

	var lines []string
	lines = append(lines,
		"---",
		fmt.Sprintf("title: %q", opts.Title),
		fmt.Sprintf("description: %q", opts.Description),
		"---",
		"",
		opts.Intro,
		"",
	)

	for _, section := range indexSections {
		tables := cat.OfType(section.Type)
		if len(tables) == 0 {
			continue
		}

		lines = append(lines, "### "+section.Heading, "<CardGroup cols={2}>")
		for _, t := range tables {
			lines = append(lines,
				fmt.Sprintf(`  <Card title="%s" href="/%s/%s">`, t.Name, opts.Namespace, t.Name),
				"    "+Blurb(t.Description),
				"  </Card>",
			)
		}
		lines = append(lines, "</CardGroup>", "")
	}

	lines = append(lines, "<br/>", "", opts.Footer, "")
	return strings.Join(lines, "\n")
}
