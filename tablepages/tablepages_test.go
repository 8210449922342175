package tablepages

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/grovetools/catalogdocs/catalog"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func testCatalog() *catalog.Catalog {
	return catalog.Build([]*catalog.Row{
		{DatasetName: "ds", TableName: "orders", TableType: "Fact", TableDescription: "Tracks all orders. Internal use only.", ColumnName: "total", ColumnDescription: "Order total"},
		{DatasetName: "ds", TableName: "orders", TableType: "Fact", ColumnName: "id", ColumnDescription: "Order id"},
		{DatasetName: "ds", TableName: "customers", TableType: "Dimension", TableDescription: "Customer records", ColumnName: "email"},
		{DatasetName: "ds", TableName: "widgets", TableType: "Other", ColumnName: "name"},
		{DatasetName: "other", TableName: "ignored", TableType: "Fact", ColumnName: "x"},
	}, "ds")
}

func TestBlurb(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"first sentence", "Tracks all orders. Internal use only.", "Tracks all orders."},
		{"no period", "  Customer records  ", "Customer records"},
		{"empty", "   ", ""},
		{"long sentence", strings.Repeat("a", 150) + ".", strings.Repeat("a", 137) + "..."},
		{"trailing space trimmed before ellipsis", strings.Repeat("a", 136) + " " + strings.Repeat("b", 20), strings.Repeat("a", 136) + "..."},
		{"exactly the limit", strings.Repeat("a", 139) + ".", strings.Repeat("a", 139) + "."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Blurb(tt.in))
		})
	}
}

func TestRenderBlock(t *testing.T) {
	table := &catalog.Table{
		Name:        "orders",
		Description: "Line one\r\nLine two",
		Columns:     map[string]string{"total": "Order total", "id": ""},
	}

	expected := strings.Join([]string{
		"```yaml",
		"version: 2",
		"",
		"models:",
		"  - name: orders",
		"    description: >",
		"      Line one",
		"      Line two",
		"    columns:",
		"      - name: id",
		"        description: >",
		"          ",
		"",
		"      - name: total",
		"        description: >",
		"          Order total",
		"",
		"```",
	}, "\n")

	assert.Equal(t, expected, RenderBlock(table))
}

func TestRenderBlockIsValidYAML(t *testing.T) {
	table, ok := testCatalog().Get("orders")
	require.True(t, ok)

	block := RenderBlock(table)
	body := strings.TrimSuffix(strings.TrimPrefix(block, "```yaml\n"), "```")

	var decoded struct {
		Version int `yaml:"version"`
		Models  []struct {
			Name        string `yaml:"name"`
			Description string `yaml:"description"`
			Columns     []struct {
				Name string `yaml:"name"`
			} `yaml:"columns"`
		} `yaml:"models"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(body), &decoded))

	assert.Equal(t, 2, decoded.Version)
	require.Len(t, decoded.Models, 1)
	assert.Equal(t, "orders", decoded.Models[0].Name)
	require.Len(t, decoded.Models[0].Columns, 2)
	assert.Equal(t, "id", decoded.Models[0].Columns[0].Name)
	assert.Equal(t, "total", decoded.Models[0].Columns[1].Name)
}

func TestSplice(t *testing.T) {
	t.Run("replaces first block only", func(t *testing.T) {
		content := "intro\n```yaml\nold: 1\n```\nmiddle\n```yaml\nkeep: 2\n```\n"
		out, ok := Splice(content, "NEW")
		require.True(t, ok)
		assert.Equal(t, "intro\nNEW\nmiddle\n```yaml\nkeep: 2\n```\n", out)
	})

	t.Run("missing opening fence", func(t *testing.T) {
		out, ok := Splice("no block here", "NEW")
		assert.False(t, ok)
		assert.Equal(t, "no block here", out)
	})

	t.Run("missing closing fence", func(t *testing.T) {
		content := "```yaml\nunterminated"
		out, ok := Splice(content, "NEW")
		assert.False(t, ok)
		assert.Equal(t, content, out)
	})
}

func TestNewDocument(t *testing.T) {
	table, ok := testCatalog().Get("customers")
	require.True(t, ok)

	doc := NewDocument(table)
	assert.True(t, strings.HasPrefix(doc, "---\ntitle: 'customers'\ndescription: ''\n---\n\n```yaml\n"))
	assert.True(t, strings.HasSuffix(doc, "```\n"))
}

func TestRenderIndex(t *testing.T) {
	out := RenderIndex(testCatalog(), IndexOptions{
		Title:     "DS Tables",
		Namespace: "/docs/ds/",
	})

	expected := strings.Join([]string{
		"---",
		`title: "DS Tables"`,
		`description: "Browse all tables in the ds schema, grouped by type."`,
		"---",
		"",
		"Welcome to the ds schema. Use this page to quickly jump to table-level documentation. Tables are grouped by their role in the model for clarity.",
		"",
		"### Dimensions",
		"<CardGroup cols={2}>",
		`  <Card title="customers" href="/docs/ds/customers">`,
		"    Customer records",
		"  </Card>",
		"</CardGroup>",
		"",
		"### Facts",
		"<CardGroup cols={2}>",
		`  <Card title="orders" href="/docs/ds/orders">`,
		"    Tracks all orders.",
		"  </Card>",
		"</CardGroup>",
		"",
		"<br/>",
		"",
		"Need something else in this index? Ping us and we’ll add it.",
		"",
	}, "\n")

	assert.Equal(t, expected, out)
	assert.NotContains(t, out, "widgets")
}

func TestReconcile(t *testing.T) {
	cat := testCatalog()
	existing := []Document{
		{Name: "orders.mdx", Content: "---\ntitle: Orders\n---\n\n```yaml\nstale\n```\n\nHand-written notes.\n"},
		{Name: "index.mdx", Content: "old index"},
		{Name: "legacy.mdx", Content: "```yaml\n```"},
		{Name: "customers.mdx", Content: "no block"},
	}

	plan := Reconcile(cat, existing, Options{})

	files := make([]string, 0, len(plan.Results))
	for _, r := range plan.Results {
		files = append(files, r.File)
	}
	assert.Equal(t, []string{"customers.mdx", "legacy.mdx", "orders.mdx", "widgets.mdx"}, files)

	byFile := make(map[string]Result)
	for _, r := range plan.Results {
		byFile[r.File] = r
	}

	assert.Equal(t, StatusFailed, byFile["customers.mdx"].Status)
	assert.Equal(t, "yaml block not found", byFile["customers.mdx"].Reason)
	assert.Empty(t, byFile["customers.mdx"].Content)

	assert.Equal(t, StatusSkipped, byFile["legacy.mdx"].Status)
	assert.Equal(t, "table not found in export", byFile["legacy.mdx"].Reason)

	updated := byFile["orders.mdx"]
	assert.Equal(t, StatusUpdated, updated.Status)
	assert.True(t, updated.Changed)
	assert.Contains(t, updated.Content, "  - name: orders")
	assert.True(t, strings.HasSuffix(updated.Content, "```\n\nHand-written notes.\n"))
	assert.NotContains(t, updated.Content, "stale")

	created := byFile["widgets.mdx"]
	assert.Equal(t, StatusCreated, created.Status)
	table, _ := cat.Get("widgets")
	assert.Equal(t, NewDocument(table), created.Content)

	assert.Equal(t, "index.mdx", plan.Index.Name)
	assert.Contains(t, plan.Index.Content, "### Facts")
}

func TestReconcileRejectsUnsafeTableNames(t *testing.T) {
	cat := catalog.Build([]*catalog.Row{
		{DatasetName: "ds", TableName: "../escape", TableType: "Fact", ColumnName: "id"},
		{DatasetName: "ds", TableName: "orders", TableType: "Fact", ColumnName: "id"},
	}, "ds")

	plan := Reconcile(cat, nil, Options{})
	require.Len(t, plan.Results, 2)
	assert.Equal(t, Result{File: "../escape.mdx", Status: StatusFailed, Reason: "table name is not a valid file name"}, plan.Results[0])
	assert.Equal(t, StatusCreated, plan.Results[1].Status)
}

func TestReconcileCreatesDbtStyleNames(t *testing.T) {
	cat := catalog.Build([]*catalog.Row{
		{DatasetName: "ds", TableName: "stg__orders", TableType: "Fact", ColumnName: "id"},
		{DatasetName: "ds", TableName: "obt.orders", TableType: "Fact", ColumnName: "id"},
	}, "ds")

	plan := Reconcile(cat, nil, Options{})
	require.Len(t, plan.Results, 2)
	for _, r := range plan.Results {
		assert.Equal(t, StatusCreated, r.Status, r.File)
		assert.Empty(t, r.Reason, r.File)
	}
}

func TestReconcileRejectsIndexTableName(t *testing.T) {
	cat := catalog.Build([]*catalog.Row{
		{DatasetName: "ds", TableName: "index", TableType: "Fact", ColumnName: "id"},
		{DatasetName: "ds", TableName: "orders", TableType: "Fact", ColumnName: "id"},
	}, "ds")

	first := Reconcile(cat, nil, Options{})
	require.Len(t, first.Results, 2)
	assert.Equal(t, Result{File: "index.mdx", Status: StatusFailed, Reason: "table name collides with the index page"}, first.Results[0])

	docs := []Document{first.Index, {Name: "orders.mdx", Content: first.Results[1].Content}}
	second := Reconcile(cat, docs, Options{})
	for _, r := range second.Results {
		assert.NotEqual(t, StatusCreated, r.Status, r.File)
	}
	assert.Equal(t, first.Index, second.Index)
}

func TestReconcileIsIdempotent(t *testing.T) {
	cat := testCatalog()

	first := Reconcile(cat, nil, Options{})
	var docs []Document
	for _, r := range first.Results {
		docs = append(docs, Document{Name: r.File, Content: r.Content})
	}

	second := Reconcile(cat, docs, Options{})
	require.Len(t, second.Results, len(first.Results))
	for _, r := range second.Results {
		assert.Equal(t, StatusUpdated, r.Status, r.File)
		assert.False(t, r.Changed, r.File)
	}
	assert.Equal(t, first.Index, second.Index)
}

func TestSync(t *testing.T) {
	dir := t.TempDir()
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	entry := logrus.NewEntry(logger)

	broken := "# Customers\n\nNo metadata yet.\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "customers.mdx"), []byte(broken), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0644))

	results, err := Sync(dir, testCatalog(), Options{}, entry)
	require.NoError(t, err)

	statuses := make(map[string]Status)
	for _, r := range results {
		statuses[r.File] = r.Status
	}
	assert.Equal(t, map[string]Status{
		"customers.mdx": StatusFailed,
		"orders.mdx":    StatusCreated,
		"widgets.mdx":   StatusCreated,
	}, statuses)

	data, err := os.ReadFile(filepath.Join(dir, "customers.mdx"))
	require.NoError(t, err)
	assert.Equal(t, broken, string(data), "a page without a block is never modified")

	orders, err := os.ReadFile(filepath.Join(dir, "orders.mdx"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(orders), "---\ntitle: 'orders'\n"))

	_, err = os.Stat(filepath.Join(dir, "index.mdx"))
	assert.NoError(t, err)
	assert.NotEmpty(t, hook.AllEntries())

	again, err := Sync(dir, testCatalog(), Options{}, entry)
	require.NoError(t, err)
	second, err := os.ReadFile(filepath.Join(dir, "orders.mdx"))
	require.NoError(t, err)
	assert.Equal(t, string(orders), string(second))
	for _, r := range again {
		if r.File == "orders.mdx" {
			assert.Equal(t, StatusUpdated, r.Status)
		}
	}
}

func TestSyncMissingDirectory(t *testing.T) {
	_, err := Sync(filepath.Join(t.TempDir(), "missing"), testCatalog(), Options{}, nil)
	assert.Error(t, err)
}
