package testutil

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteExport(t *testing.T) {
	root := t.TempDir()
	WriteExport(t, root, "exports/schema.json", []ExportRow{
		{DatasetName: "ds", TableName: "orders", TableType: "Fact", ColumnName: "id"},
	})

	var rows []map[string]string
	require.NoError(t, json.Unmarshal([]byte(ReadFile(t, root, "exports/schema.json")), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "orders", rows[0]["table_name"])
	assert.Equal(t, "", rows[0]["table_description"])
}

func TestWriteManifest(t *testing.T) {
	root := t.TempDir()
	WriteManifest(t, root, "docs.json", "Tables", nil)

	content := ReadFile(t, root, "docs.json")
	assert.Contains(t, content, `"group": "Tables"`)
	assert.Contains(t, content, `"pages": []`)
}
