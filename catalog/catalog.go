// Package catalog loads the denormalized schema export and consolidates its
// rows into one Table per table name.
package catalog

import (
	"encoding/json"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/grovetools/catalogdocs/errors"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Row is one record of the schema export. Rows are denormalized: one row per
// (table, column) pair.
type Row struct {
	DatasetName       string `json:"dataset_name"`
	TableName         string `json:"table_name"`
	TableType         string `json:"table_type"`
	TableDescription  string `json:"table_description"`
	ColumnName        string `json:"column_name"`
	ColumnDescription string `json:"column_description"`
}

// Table types with a fixed position in navigation and index ordering.
const (
	TypeDimension   = "Dimension"
	TypeFact        = "Fact"
	TypeOneBigTable = "One Big Table"
	TypeReport      = "Report"
)

// KnownTypes lists the table types in priority order.
var KnownTypes = []string{TypeDimension, TypeFact, TypeOneBigTable, TypeReport}

const unknownPriority = 99

// Priority returns the ordering rank of a table type. Unknown types sort last.
func Priority(tableType string) int {
	for i, t := range KnownTypes {
		if t == tableType {
			return i + 1
		}
	}
	return unknownPriority
}

// Table is the consolidated record for a single table.
type Table struct {
	Name        string
	Type        string
	Description string
	// Columns maps column name to description.
	Columns map[string]string
}

// ColumnNames returns the column names in alphabetical order.
func (t *Table) ColumnNames() []string {
	names := make([]string, 0, len(t.Columns))
	for name := range t.Columns {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return CompareNames(names[i], names[j]) < 0
	})
	return names
}

// Catalog holds the tables of one dataset.
type Catalog struct {
	Dataset string
	tables  map[string]*Table
}

// Build groups rows of the given dataset into tables. The first row seen for a
// table fixes its type; later rows only refine descriptions.
func Build(rows []*Row, dataset string) *Catalog {
	c := &Catalog{Dataset: dataset, tables: make(map[string]*Table)}

	for _, r := range rows {
		if r == nil || r.DatasetName != dataset {
			continue
		}

		entry, ok := c.tables[r.TableName]
		if !ok {
			entry = &Table{
				Name:        r.TableName,
				Type:        r.TableType,
				Description: r.TableDescription,
				Columns:     make(map[string]string),
			}
			c.tables[r.TableName] = entry
		}

		// Last non-empty description wins.
		if desc := strings.TrimSpace(r.TableDescription); desc != "" {
			entry.Description = desc
		}

		if r.ColumnName == "" {
			continue
		}
		colDesc := strings.TrimSpace(r.ColumnDescription)
		if _, exists := entry.Columns[r.ColumnName]; !exists || colDesc != "" {
			entry.Columns[r.ColumnName] = colDesc
		}
	}

	return c
}

// Load reads the export file at path and builds the catalog for dataset.
func Load(path, dataset string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.ExportRead(path, err)
	}

	rows, err := Decode(data)
	if err != nil {
		return nil, errors.ExportInvalid(path, err)
	}

	return Build(rows, dataset), nil
}

// Decode parses the raw export. Null array elements decode to nil rows.
func Decode(data []byte) ([]*Row, error) {
	var rows []*Row
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// Len returns the number of tables.
func (c *Catalog) Len() int {
	return len(c.tables)
}

// Get returns the table with the given name.
func (c *Catalog) Get(name string) (*Table, bool) {
	t, ok := c.tables[name]
	return t, ok
}

// Sorted returns all tables ordered by type priority, then by name.
func (c *Catalog) Sorted() []*Table {
	out := make([]*Table, 0, len(c.tables))
	for _, t := range c.tables {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		pi, pj := Priority(out[i].Type), Priority(out[j].Type)
		if pi != pj {
			return pi < pj
		}
		return CompareNames(out[i].Name, out[j].Name) < 0
	})
	return out
}

// OfType returns the tables of one type ordered by name.
func (c *Catalog) OfType(tableType string) []*Table {
	var out []*Table
	for _, t := range c.Sorted() {
		if t.Type == tableType {
			out = append(out, t)
		}
	}
	return out
}

var (
	collatorMu sync.Mutex
	collator   = collate.New(language.English)
)

// CompareNames orders table names the way a reader expects in an English
// locale, falling back to byte order so the result is total.
func CompareNames(a, b string) int {
	collatorMu.Lock()
	c := collator.CompareString(a, b)
	collatorMu.Unlock()
	if c != 0 {
		return c
	}
	return strings.Compare(a, b)
}
