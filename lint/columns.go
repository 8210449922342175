package lint

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/grovetools/catalogdocs/model"
)

var (
	yamlBlockRe = regexp.MustCompile("(?s)```yaml\\s*\\n(.*?)\\n```")
	yamlNameRe  = regexp.MustCompile(`(?m)^\s*-\s*name:\s*([A-Za-z0-9_]+)\s*$`)
	sqlBlockRe  = regexp.MustCompile("(?is)```sql\\s*\\n(.*?)\\n```")

	qualifiedColRe     = regexp.MustCompile(`\b([A-Za-z_][A-Za-z0-9_]*)\.([A-Za-z_][A-Za-z0-9_]*)\b`)
	unqualifiedIdentRe = regexp.MustCompile(`\b([a-z][a-z0-9_]{2,})\b`)
	asAliasRe          = regexp.MustCompile(`(?i)\bAS\s+([A-Za-z_][A-Za-z0-9_]*)\b`)
	cteNameRe          = regexp.MustCompile(`(?i)(?:\bWITH\s+|,\s*)([A-Za-z_][A-Za-z0-9_]*)\s+AS\s*\(`)

	lineCommentRe  = regexp.MustCompile(`(?m)--.*$`)
	blockCommentRe = regexp.MustCompile(`(?s)/\*.*?\*/`)
	singleQuotedRe = regexp.MustCompile(`'(?:[^'\\]|\\.)*'`)
	doubleQuotedRe = regexp.MustCompile(`"(?:[^"\\]|\\.)*"`)
)

var sqlIgnoreWords = toSet(
	// keywords
	"select", "from", "where", "group", "by", "order", "limit", "join", "left", "right",
	"inner", "outer", "full", "cross", "on", "as", "with", "union", "all", "distinct",
	"having", "over", "partition", "and", "or", "not", "null", "is", "in", "like",
	"between", "case", "when", "then", "else", "end", "desc", "asc", "qualify",
	// literals
	"true", "false", "interval", "day", "week", "month", "quarter", "year",
	// functions
	"sum", "count", "countif", "avg", "min", "max", "lag", "lead", "safe_divide",
	"nullif", "ifnull", "coalesce", "current_date", "current_timestamp", "date_sub",
	"date_add", "cast",
)

func toSet(words ...string) map[string]bool {
	s := make(map[string]bool, len(words))
	for _, w := range words {
		s[w] = true
	}
	return s
}

// ColumnSource is a directory of table pages documenting one dataset.
type ColumnSource struct {
	Dataset string `yaml:"dataset" json:"dataset"`
	Dir     string `yaml:"dir" json:"dir"`
}

// ColumnIndex maps "dataset.table" to the table's documented columns.
type ColumnIndex map[string]map[string]bool

// BlockColumns returns the column names documented in the first yaml block of
// a table page. Blocks that do not decode fall back to a line scan.
func BlockColumns(table, content string) []string {
	m := yamlBlockRe.FindStringSubmatch(content)
	if m == nil {
		return nil
	}

	var names []string
	if f, err := model.Parse([]byte(m[1])); err == nil {
		for _, mod := range f.Models {
			for _, c := range mod.Columns {
				names = append(names, c.Name)
			}
		}
	} else {
		for _, sub := range yamlNameRe.FindAllStringSubmatch(m[1], -1) {
			names = append(names, sub[1])
		}
	}

	var cols []string
	for _, n := range names {
		if n != "" && n != table {
			cols = append(cols, n)
		}
	}
	return cols
}

// LoadColumnIndex reads the table pages of every source. Missing directories
// are skipped.
func LoadColumnIndex(sources []ColumnSource) (ColumnIndex, error) {
	index := make(ColumnIndex)

	for _, src := range sources {
		if _, err := os.Stat(src.Dir); os.IsNotExist(err) {
			continue
		}

		walker, err := NewWalker(src.Dir, nil, ".mdx")
		if err != nil {
			return nil, err
		}
		files, err := walker.Files()
		if err != nil {
			return nil, err
		}

		for _, rel := range files {
			data, err := os.ReadFile(filepath.Join(src.Dir, filepath.FromSlash(rel)))
			if err != nil {
				continue
			}
			table := strings.TrimSuffix(filepath.Base(rel), filepath.Ext(rel))
			cols := BlockColumns(table, string(data))
			if len(cols) == 0 {
				continue
			}
			index[src.Dataset+"."+table] = toSet(cols...)
		}
	}
	return index, nil
}

// ColumnIssue is an unknown column reference in a SQL example.
type ColumnIssue struct {
	File    string `json:"file"`
	Message string `json:"message"`
}

func (i ColumnIssue) String() string {
	return i.File + ": " + i.Message
}

// ColumnChecker validates SQL examples against a column index.
type ColumnChecker struct {
	index      ColumnIndex
	tableRefRe *regexp.Regexp
	ignore     map[string]bool
}

// NewColumnChecker builds a checker recognizing table references into the
// given datasets.
func NewColumnChecker(index ColumnIndex, datasets []string) *ColumnChecker {
	quoted := make([]string, len(datasets))
	ignore := toSet("your_project")
	for i, ds := range datasets {
		quoted[i] = regexp.QuoteMeta(ds)
		ignore[strings.ToLower(ds)] = true
	}

	pattern := fmt.Sprintf("(?i)`([^`]*?)\\.(%s)\\.([A-Za-z0-9_]+)`(?:\\s+(?:AS\\s+)?([A-Za-z_][A-Za-z0-9_]*))?",
		strings.Join(quoted, "|"))

	return &ColumnChecker{
		index:      index,
		tableRefRe: regexp.MustCompile(pattern),
		ignore:     ignore,
	}
}

// NormalizeSQL strips comments and string literals.
func NormalizeSQL(sql string) string {
	sql = lineCommentRe.ReplaceAllString(sql, "")
	sql = blockCommentRe.ReplaceAllString(sql, "")
	sql = singleQuotedRe.ReplaceAllString(sql, "''")
	sql = doubleQuotedRe.ReplaceAllString(sql, `""`)
	return sql
}

// Check validates every fenced sql block of a page.
func (c *ColumnChecker) Check(file, content string) []ColumnIssue {
	var issues []ColumnIssue
	for _, m := range sqlBlockRe.FindAllStringSubmatch(content, -1) {
		issues = append(issues, c.checkBlock(file, NormalizeSQL(m[1]))...)
	}
	return issues
}

func (c *ColumnChecker) checkBlock(file, sql string) []ColumnIssue {
	aliases := make(map[string]string)
	projects := make(map[string]bool)
	known := make(map[string]bool)

	for _, m := range c.tableRefRe.FindAllStringSubmatch(sql, -1) {
		project, dataset, table, alias := m[1], strings.ToLower(m[2]), m[3], m[4]
		key := dataset + "." + table
		if _, ok := c.index[key]; ok {
			known[key] = true
		}
		if project != "" {
			projects[project] = true
		}
		if alias != "" {
			aliases[alias] = key
		}
		if _, ok := aliases[table]; !ok {
			aliases[table] = key
		}
	}

	var issues []ColumnIssue
	reported := make(map[string]bool)
	report := func(msg string) {
		if !reported[msg] {
			reported[msg] = true
			issues = append(issues, ColumnIssue{File: file, Message: msg})
		}
	}

	for _, m := range qualifiedColRe.FindAllStringSubmatch(sql, -1) {
		qualifier, col := m[1], m[2]
		table, ok := aliases[qualifier]
		if !ok {
			continue
		}
		cols, ok := c.index[table]
		if !ok {
			continue
		}
		if !cols[col] {
			report(fmt.Sprintf("unknown column `%s.%s` for table `%s` in sql block", qualifier, col, table))
		}
	}

	// Unqualified identifiers are only attributable with a single known table.
	if len(known) != 1 {
		return issues
	}
	var single string
	for k := range known {
		single = k
	}
	cols := c.index[single]

	skip := func(ident string) bool {
		if sqlIgnoreWords[ident] || c.ignore[ident] || projects[ident] || ident == single {
			return true
		}
		_, isAlias := aliases[ident]
		return isAlias
	}
	local := make(map[string]bool)
	for _, m := range asAliasRe.FindAllStringSubmatch(sql, -1) {
		local[m[1]] = true
	}
	for _, m := range cteNameRe.FindAllStringSubmatch(sql, -1) {
		local[m[1]] = true
	}

	for _, m := range unqualifiedIdentRe.FindAllStringSubmatch(sql, -1) {
		ident := m[1]
		if skip(ident) || local[ident] || cols[ident] {
			continue
		}
		report(fmt.Sprintf("unknown column `%s` for table `%s` in sql block", ident, single))
	}
	return issues
}

// ScanColumns validates the SQL examples of every .mdx page under root. It
// returns no issues and a zero table count when no table pages were found.
func ScanColumns(root string, excludes []string, sources []ColumnSource) ([]ColumnIssue, int, error) {
	index, err := LoadColumnIndex(sources)
	if err != nil {
		return nil, 0, err
	}
	if len(index) == 0 {
		return nil, 0, nil
	}

	datasets := make([]string, 0, len(sources))
	for _, src := range sources {
		datasets = append(datasets, src.Dataset)
	}
	checker := NewColumnChecker(index, datasets)

	walker, err := NewWalker(root, excludes, ".mdx")
	if err != nil {
		return nil, 0, err
	}
	files, err := walker.Files()
	if err != nil {
		return nil, 0, err
	}

	var issues []ColumnIssue
	for _, rel := range files {
		data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
		if err != nil {
			continue
		}
		text := string(data)
		if !strings.Contains(strings.ToLower(text), "```sql") {
			continue
		}
		issues = append(issues, checker.Check(rel, text)...)
	}
	return issues, len(index), nil
}
