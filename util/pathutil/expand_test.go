package pathutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	root := t.TempDir()
	t.Setenv("CATALOGDOCS_TEST_DIR", "exports")

	tests := []struct {
		name string
		path string
		want string
	}{
		{"relative", "docs.json", filepath.Join(root, "docs.json")},
		{"absolute", "/tmp/export.json", "/tmp/export.json"},
		{"home", "~/exports/a.json", filepath.Join(home, "exports", "a.json")},
		{"env", "${CATALOGDOCS_TEST_DIR}/a.json", filepath.Join(root, "exports", "a.json")},
		{"cleaned", "pages/../docs.json", filepath.Join(root, "docs.json")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(root, tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
