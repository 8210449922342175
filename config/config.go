// Package config loads catalogdocs.yml (or .toml) and fills in the defaults
// for every path the commands use.
package config

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/grovetools/catalogdocs/errors"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

// configNames are searched in order in each directory.
var configNames = []string{
	"catalogdocs.yml",
	"catalogdocs.yaml",
	".catalogdocs.yml",
	"catalogdocs.toml",
}

// Format is the syntax of a configuration file.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatOf infers the format from a file name.
func FormatOf(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

// Load reads and parses a configuration file. Relative paths in it resolve
// against the file's directory.
func Load(path string) (*Config, error) {
	return LoadWithLogger(path, logrus.New())
}

// LoadWithLogger is Load with debug logging of the steps taken.
func LoadWithLogger(path string, logger *logrus.Logger) (*Config, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to resolve config path").
			WithDetail("path", path)
	}
	root := filepath.Dir(abs)

	if n := loadDotEnv(root); n > 0 {
		logger.WithField("path", filepath.Join(root, ".env")).Debug("Loaded environment file")
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigNotFound(abs)
		}
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to read config file").
			WithDetail("path", abs)
	}

	logger.WithField("path", abs).Debug("Loading configuration")

	cfg, err := LoadFromBytes(data, FormatOf(abs))
	if err != nil {
		if docsErr, ok := errors.As(err); ok {
			docsErr.WithDetail("path", abs)
		}
		return nil, err
	}
	cfg.Root = root
	cfg.File = abs

	if logger.IsLevelEnabled(logrus.DebugLevel) {
		if out, err := yaml.Marshal(cfg); err == nil {
			logger.Debugf("Effective configuration:\n%s", string(out))
		}
	}
	return cfg, nil
}

// LoadDefault loads the configuration found from the working directory
// upward. Without a configuration file the defaults apply, rooted at the
// working directory.
func LoadDefault() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to get current directory")
	}

	return LoadFrom(cwd)
}

// LoadFrom is LoadDefault starting the search at startDir.
func LoadFrom(startDir string) (*Config, error) {
	path, err := FindConfigFile(startDir)
	if err != nil {
		if errors.Is(err, errors.ErrCodeConfigNotFound) {
			loadDotEnv(startDir)
			cfg := &Config{Root: startDir}
			cfg.SetDefaults()
			return cfg, nil
		}
		return nil, err
	}
	return Load(path)
}

// LoadFromBytes parses configuration data. The result has no Root; callers
// set it before resolving paths.
func LoadFromBytes(data []byte, format Format) (*Config, error) {
	expanded := expandEnvVars(string(data))

	doc, err := decodeDocument([]byte(expanded), format)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse configuration")
	}

	validator, err := NewSchemaValidator()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to create validator")
	}
	if err := validator.Validate(doc); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigValidation, "schema validation failed")
	}

	// Re-encode through YAML so TOML files share the yaml struct tags.
	normalized, err := yaml.Marshal(doc)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to normalize configuration")
	}

	var cfg Config
	if err := yaml.Unmarshal(normalized, &cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to decode configuration")
	}

	cfg.SetDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func decodeDocument(data []byte, format Format) (map[string]interface{}, error) {
	doc := make(map[string]interface{})

	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
	default:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

// FindConfigFile searches startDir and its parents for a configuration file.
func FindConfigFile(startDir string) (string, error) {
	dir := startDir
	for {
		for _, name := range configNames {
			path := filepath.Join(dir, name)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", errors.ConfigNotFound(startDir).WithDetail("searchPath", startDir)
}

// loadDotEnv loads dir/.env without overriding variables already set. It
// returns the number of variables in the file.
func loadDotEnv(dir string) int {
	path := filepath.Join(dir, ".env")
	vars, err := godotenv.Read(path)
	if err != nil {
		return 0
	}
	if err := godotenv.Load(path); err != nil {
		return 0
	}
	return len(vars)
}

// expandEnvVars replaces ${VAR} with environment variable values
func expandEnvVars(content string) string {
	return envVarRegex.ReplaceAllStringFunc(content, func(match string) string {
		varName := envVarRegex.FindStringSubmatch(match)[1]

		// Handle default values: ${VAR:-default}
		parts := strings.SplitN(varName, ":-", 2)
		varName = parts[0]
		defaultValue := ""
		if len(parts) > 1 {
			defaultValue = parts[1]
		}

		if value := os.Getenv(varName); value != "" {
			return value
		}

		return defaultValue
	})
}
