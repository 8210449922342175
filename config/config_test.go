package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/grovetools/catalogdocs/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg, err := LoadFromBytes(nil, FormatYAML)
	require.NoError(t, err)

	assert.Equal(t, "1.0", cfg.Version)
	assert.Equal(t, "yaml-files/latest-v2-schemas-10-20-25.json", cfg.Export)
	assert.Equal(t, "sm_transformed_v2", cfg.Dataset)
	assert.Equal(t, "docs.json", cfg.Navigation.Manifest)
	assert.Equal(t, "SourceMedium Tables", cfg.Navigation.Group)
	assert.Equal(t, "data-activation/data-tables/sm_transformed_v2", cfg.Pages.Dir)
	assert.Equal(t, cfg.Pages.Dir, cfg.Pages.Namespace)
	assert.Equal(t, ".mdx", cfg.Pages.Extension)
	assert.Equal(t, "index.mdx", cfg.Pages.Index)
	assert.Equal(t, "SM Transformed v2 Tables", cfg.Pages.IndexTitle)
	assert.Equal(t, "yaml-files/dda_customers.yml", cfg.Inspect.Model)
	assert.Equal(t, []string{"snippets", "yaml-files", "internal"}, cfg.Lint.Exclude)
	assert.Equal(t, []string{"snippets", "yaml-files"}, cfg.Lint.InventoryExclude)
	assert.Equal(t, []string{"internal", "*/**/hidden-*", "**/*template*"}, cfg.Lint.AllowOrphans)
	assert.Len(t, cfg.Lint.ColumnSources, 2)
	assert.Equal(t, 200*time.Millisecond, cfg.Debounce())
}

func TestDefaultsFollowDataset(t *testing.T) {
	cfg, err := LoadFromBytes([]byte("dataset: analytics\n"), FormatYAML)
	require.NoError(t, err)

	assert.Equal(t, "data-activation/data-tables/analytics", cfg.Pages.Dir)
	assert.Equal(t, "data-activation/data-tables/analytics", cfg.Pages.Namespace)
	assert.Empty(t, cfg.Pages.IndexTitle)
	assert.Equal(t, ColumnSourceConfig{Dataset: "analytics", Dir: "data-activation/data-tables/analytics"}, cfg.Lint.ColumnSources[0])
}

func TestLoadFromBytes(t *testing.T) {
	t.Setenv("CATALOGDOCS_TEST_EXPORT", "exports/today.json")

	tests := []struct {
		name     string
		data     string
		format   Format
		check    func(t *testing.T, cfg *Config)
		wantCode errors.ErrorCode
	}{
		{
			name: "yaml with env expansion",
			data: `
export: ${CATALOGDOCS_TEST_EXPORT}
navigation:
  group: ${CATALOGDOCS_TEST_GROUP:-Data Tables}
pages:
  extension: .md
`,
			format: FormatYAML,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "exports/today.json", cfg.Export)
				assert.Equal(t, "Data Tables", cfg.Navigation.Group)
				assert.Equal(t, "index.md", cfg.Pages.Index)
			},
		},
		{
			name: "toml",
			data: `
dataset = "analytics"

[navigation]
manifest = "site/docs.json"

[watch]
debounce = "1s"

[[lint.column_sources]]
dataset = "analytics"
dir = "tables"
`,
			format: FormatTOML,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "analytics", cfg.Dataset)
				assert.Equal(t, "site/docs.json", cfg.Navigation.Manifest)
				assert.Equal(t, time.Second, cfg.Debounce())
				assert.Equal(t, []ColumnSourceConfig{{Dataset: "analytics", Dir: "tables"}}, cfg.Lint.ColumnSources)
			},
		},
		{
			name:     "malformed yaml",
			data:     "navigation: [",
			format:   FormatYAML,
			wantCode: errors.ErrCodeConfigInvalid,
		},
		{
			name:     "schema violation",
			data:     "pages:\n  folder: x\n",
			format:   FormatYAML,
			wantCode: errors.ErrCodeConfigValidation,
		},
		{
			name:     "invalid dataset name",
			data:     "dataset: my-dataset\n",
			format:   FormatYAML,
			wantCode: errors.ErrCodeConfigValidation,
		},
		{
			name:     "extension without dot",
			data:     "pages:\n  extension: mdx\n",
			format:   FormatYAML,
			wantCode: errors.ErrCodeConfigValidation,
		},
		{
			name:     "bad debounce",
			data:     "watch:\n  debounce: soon\n",
			format:   FormatYAML,
			wantCode: errors.ErrCodeConfigValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadFromBytes([]byte(tt.data), tt.format)
			if tt.wantCode != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, errors.GetCode(err), "got %v", err)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

// TestExtensions verifies that unknown top-level keys are kept and decodable.
func TestExtensions(t *testing.T) {
	cfg, err := LoadFromBytes([]byte(`
logging:
  level: debug
  report_caller: true
publish:
  target: staging
  retries: "3"
`), FormatYAML)
	require.NoError(t, err)

	require.Contains(t, cfg.Extensions, "logging")
	require.Contains(t, cfg.Extensions, "publish")

	type PublishConfig struct {
		Target  string `yaml:"target"`
		Retries int    `yaml:"retries"`
	}
	var pub PublishConfig
	require.NoError(t, cfg.UnmarshalExtension("publish", &pub))
	assert.Equal(t, PublishConfig{Target: "staging", Retries: 3}, pub)

	var missing PublishConfig
	require.NoError(t, cfg.UnmarshalExtension("absent", &missing))
	assert.Zero(t, missing)
}

func TestLoadFrom(t *testing.T) {
	t.Run("finds config in parent directory", func(t *testing.T) {
		root := t.TempDir()
		nested := filepath.Join(root, "docs", "guides")
		require.NoError(t, os.MkdirAll(nested, 0755))
		require.NoError(t, os.WriteFile(filepath.Join(root, "catalogdocs.yml"), []byte("export: data/export.json\n"), 0644))

		cfg, err := LoadFrom(nested)
		require.NoError(t, err)
		assert.Equal(t, root, cfg.Root)
		assert.Equal(t, filepath.Join(root, "catalogdocs.yml"), cfg.File)

		export, err := cfg.ResolvePath(cfg.Export)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(root, "data", "export.json"), export)
	})

	t.Run("falls back to defaults", func(t *testing.T) {
		root := t.TempDir()

		cfg, err := LoadFrom(root)
		require.NoError(t, err)
		assert.Equal(t, root, cfg.Root)
		assert.Empty(t, cfg.File)
		assert.Equal(t, DefaultManifest, cfg.Navigation.Manifest)
	})

	t.Run("loads .env without overriding the environment", func(t *testing.T) {
		root := t.TempDir()
		t.Setenv("CATALOGDOCS_TEST_SET", "from-env")
		require.NoError(t, os.WriteFile(filepath.Join(root, ".env"),
			[]byte("CATALOGDOCS_TEST_DOTENV=sites/docs.json\nCATALOGDOCS_TEST_SET=from-file\n"), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(root, "catalogdocs.yaml"),
			[]byte("navigation:\n  manifest: ${CATALOGDOCS_TEST_DOTENV}\n  group: ${CATALOGDOCS_TEST_SET}\n"), 0644))
		t.Cleanup(func() { os.Unsetenv("CATALOGDOCS_TEST_DOTENV") })

		cfg, err := LoadFrom(root)
		require.NoError(t, err)
		assert.Equal(t, "sites/docs.json", cfg.Navigation.Manifest)
		assert.Equal(t, "from-env", cfg.Navigation.Group)
	})
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "catalogdocs.yml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeConfigNotFound))
}

func TestFindConfigFilePrecedence(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "catalogdocs.toml"), []byte(""), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "catalogdocs.yml"), []byte(""), 0644))

	path, err := FindConfigFile(root)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "catalogdocs.yml"), path)
	assert.Equal(t, FormatTOML, FormatOf("x/catalogdocs.TOML"))
}

func TestGenerateSchema(t *testing.T) {
	data, err := GenerateSchema()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"column_sources"`)
	assert.Contains(t, string(data), `"index_title"`)
	assert.NotContains(t, string(data), `"Extensions"`)
}
