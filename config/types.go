package config

import (
	"fmt"
	"time"

	"github.com/grovetools/catalogdocs/util/pathutil"
	"github.com/mitchellh/mapstructure"
)

// Defaults for the catalog this tool was first written for.
const (
	DefaultVersion          = "1.0"
	DefaultExport           = "yaml-files/latest-v2-schemas-10-20-25.json"
	DefaultDataset          = "sm_transformed_v2"
	DefaultManifest         = "docs.json"
	DefaultGroup            = "SourceMedium Tables"
	DefaultPagesDir         = "data-activation/data-tables/sm_transformed_v2"
	DefaultExtension        = ".mdx"
	DefaultIndex            = "index.mdx"
	DefaultModel            = "yaml-files/dda_customers.yml"
	DefaultWatchDebounce    = "200ms"
	defaultIndexTitle       = "SM Transformed v2 Tables"
	defaultMetadataDataset  = "sm_metadata"
	defaultMetadataPagesDir = "data-activation/data-tables/sm_metadata"
)

// Config is the catalogdocs.yml configuration.
type Config struct {
	Version    string           `yaml:"version,omitempty" jsonschema:"description=Configuration version (e.g. '1.0')"`
	Export     string           `yaml:"export,omitempty" jsonschema:"description=Path to the JSON schema export"`
	Dataset    string           `yaml:"dataset,omitempty" jsonschema:"description=Dataset whose tables are documented"`
	Navigation NavigationConfig `yaml:"navigation,omitempty" jsonschema:"description=Navigation manifest settings"`
	Pages      PagesConfig      `yaml:"pages,omitempty" jsonschema:"description=Table page settings"`
	Inspect    InspectConfig    `yaml:"inspect,omitempty" jsonschema:"description=Model inspector settings"`
	Lint       LintConfig       `yaml:"lint,omitempty" jsonschema:"description=Documentation check settings"`
	Watch      WatchConfig      `yaml:"watch,omitempty" jsonschema:"description=Watch mode settings"`

	// Extensions captures all other top-level keys for extensibility.
	Extensions map[string]interface{} `yaml:",inline" jsonschema:"-"`

	// Root is the directory relative paths are resolved against.
	Root string `yaml:"-" jsonschema:"-"`
	// File is the configuration file that was loaded, empty when running on defaults.
	File string `yaml:"-" jsonschema:"-"`
}

// NavigationConfig locates the navigation manifest and the group to rewrite.
type NavigationConfig struct {
	Manifest string `yaml:"manifest,omitempty" jsonschema:"description=Path to the navigation manifest (docs.json)"`
	Group    string `yaml:"group,omitempty" jsonschema:"description=Label of the navigation group whose pages are replaced"`
}

// PagesConfig controls the per-table pages and the index page.
type PagesConfig struct {
	Dir              string `yaml:"dir,omitempty" jsonschema:"description=Directory holding one page per table"`
	Namespace        string `yaml:"namespace,omitempty" jsonschema:"description=Page path prefix used in navigation and index links"`
	Extension        string `yaml:"extension,omitempty" jsonschema:"description=Page file extension"`
	Index            string `yaml:"index,omitempty" jsonschema:"description=File name of the index page"`
	IndexTitle       string `yaml:"index_title,omitempty" jsonschema:"description=Title of the index page"`
	IndexDescription string `yaml:"index_description,omitempty" jsonschema:"description=Description of the index page"`
	IndexIntro       string `yaml:"index_intro,omitempty" jsonschema:"description=Introductory paragraph of the index page"`
}

// InspectConfig controls the model inspector.
type InspectConfig struct {
	Model string `yaml:"model,omitempty" jsonschema:"description=Path to the model YAML document"`
}

// LintConfig controls the documentation checks.
type LintConfig struct {
	Root             string               `yaml:"root,omitempty" jsonschema:"description=Root of the documentation tree"`
	Exclude          []string             `yaml:"exclude,omitempty" jsonschema:"description=Patterns excluded from the placeholder and column checks"`
	InventoryExclude []string             `yaml:"inventory_exclude,omitempty" jsonschema:"description=Patterns excluded from the inventory check"`
	AllowOrphans     []string             `yaml:"allow_orphans,omitempty" jsonschema:"description=Patterns of pages allowed to be missing from navigation"`
	ColumnSources    []ColumnSourceConfig `yaml:"column_sources,omitempty" jsonschema:"description=Table page directories used by the column check"`
}

// ColumnSourceConfig names the dataset documented by a directory of table pages.
type ColumnSourceConfig struct {
	Dataset string `yaml:"dataset" jsonschema:"required"`
	Dir     string `yaml:"dir" jsonschema:"required"`
}

// WatchConfig controls watch mode.
type WatchConfig struct {
	Debounce string `yaml:"debounce,omitempty" jsonschema:"description=Quiet period after a change to the export before syncing (Go duration)"`
}

// SetDefaults fills unset fields.
func (c *Config) SetDefaults() {
	if c.Version == "" {
		c.Version = DefaultVersion
	}
	if c.Export == "" {
		c.Export = DefaultExport
	}
	if c.Dataset == "" {
		c.Dataset = DefaultDataset
	}

	if c.Navigation.Manifest == "" {
		c.Navigation.Manifest = DefaultManifest
	}
	if c.Navigation.Group == "" {
		c.Navigation.Group = DefaultGroup
	}

	if c.Pages.Dir == "" {
		if c.Dataset == DefaultDataset {
			c.Pages.Dir = DefaultPagesDir
		} else {
			c.Pages.Dir = "data-activation/data-tables/" + c.Dataset
		}
	}
	if c.Pages.Namespace == "" {
		c.Pages.Namespace = c.Pages.Dir
	}
	if c.Pages.Extension == "" {
		c.Pages.Extension = DefaultExtension
	}
	if c.Pages.Index == "" {
		c.Pages.Index = "index" + c.Pages.Extension
	}
	if c.Pages.IndexTitle == "" && c.Dataset == DefaultDataset {
		c.Pages.IndexTitle = defaultIndexTitle
	}

	if c.Inspect.Model == "" {
		c.Inspect.Model = DefaultModel
	}

	if c.Lint.Root == "" {
		c.Lint.Root = "."
	}
	if c.Lint.Exclude == nil {
		c.Lint.Exclude = []string{"snippets", "yaml-files", "internal"}
	}
	if c.Lint.InventoryExclude == nil {
		c.Lint.InventoryExclude = []string{"snippets", "yaml-files"}
	}
	if c.Lint.AllowOrphans == nil {
		c.Lint.AllowOrphans = []string{"internal", "*/**/hidden-*", "**/*template*"}
	}
	if c.Lint.ColumnSources == nil {
		c.Lint.ColumnSources = []ColumnSourceConfig{
			{Dataset: c.Dataset, Dir: c.Pages.Dir},
			{Dataset: defaultMetadataDataset, Dir: defaultMetadataPagesDir},
		}
	}

	if c.Watch.Debounce == "" {
		c.Watch.Debounce = DefaultWatchDebounce
	}
}

// Debounce returns the watch debounce as a duration.
func (c *Config) Debounce() time.Duration {
	d, err := time.ParseDuration(c.Watch.Debounce)
	if err != nil || d <= 0 {
		d, _ = time.ParseDuration(DefaultWatchDebounce)
	}
	return d
}

// ResolvePath makes a configured path absolute relative to the config root.
func (c *Config) ResolvePath(path string) (string, error) {
	return pathutil.Resolve(c.Root, path)
}

// UnmarshalExtension decodes the top-level key into target. A missing key
// leaves target untouched.
func (c *Config) UnmarshalExtension(key string, target interface{}) error {
	extensionConfig, ok := c.Extensions[key]
	if !ok {
		return nil
	}

	// Use mapstructure to decode the generic map[string]interface{}
	// into the strongly-typed target struct. We configure it to use
	// `yaml` tags for consistency.
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "yaml",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}

	if err := decoder.Decode(extensionConfig); err != nil {
		return fmt.Errorf("failed to decode extension '%s': %w", key, err)
	}

	return nil
}
