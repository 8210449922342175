// Package testutil builds throwaway documentation workspaces for tests.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// ExportRow is one row of a schema export as written to disk.
type ExportRow struct {
	DatasetName       string `json:"dataset_name"`
	TableName         string `json:"table_name"`
	TableType         string `json:"table_type"`
	TableDescription  string `json:"table_description"`
	ColumnName        string `json:"column_name"`
	ColumnDescription string `json:"column_description"`
}

// WriteFiles creates each file under root, making parent directories as
// needed. Keys use forward slashes.
func WriteFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

// ReadFile returns the content of root/rel.
func ReadFile(t *testing.T, root, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	require.NoError(t, err)
	return string(data)
}

// WriteExport writes rows as a schema export to root/rel.
func WriteExport(t *testing.T, root, rel string, rows []ExportRow) {
	t.Helper()
	data, err := json.MarshalIndent(rows, "", "  ")
	require.NoError(t, err)
	WriteFiles(t, root, map[string]string{rel: string(data)})
}

// WriteManifest writes a navigation manifest to root/rel with a single tab
// holding one group labelled group.
func WriteManifest(t *testing.T, root, rel, group string, pages []string) {
	t.Helper()
	if pages == nil {
		pages = []string{}
	}
	manifest := map[string]interface{}{
		"name": "Docs",
		"navigation": map[string]interface{}{
			"tabs": []interface{}{
				map[string]interface{}{
					"tab": "Data",
					"groups": []interface{}{
						map[string]interface{}{"group": "Getting Started", "pages": []string{"index"}},
						map[string]interface{}{"group": group, "pages": pages},
					},
				},
			},
		},
	}
	data, err := json.MarshalIndent(manifest, "", "  ")
	require.NoError(t, err)
	WriteFiles(t, root, map[string]string{rel: string(data) + "\n"})
}

// Chdir changes the working directory for the rest of the test.
func Chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
