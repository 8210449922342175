package logging

// Config defines the structure of the 'logging' section of catalogdocs.yml.
type Config struct {
	// Level is the minimum log level to output (e.g., "debug", "info", "warn", "error").
	// Can be overridden by the CATALOGDOCS_LOG_LEVEL environment variable.
	Level string `yaml:"level" jsonschema:"enum=trace,enum=debug,enum=info,enum=warn,enum=warning,enum=error,enum=fatal,enum=panic,description=Minimum log level"`

	// ReportCaller, if true, includes the file, line, and function name in the log output.
	// Can be enabled with the CATALOGDOCS_LOG_CALLER=true environment variable.
	ReportCaller bool `yaml:"report_caller" jsonschema:"description=Include the caller location in log output"`

	// File configures logging to a file.
	File FileSinkConfig `yaml:"file"`

	// Format configures the appearance of the log output.
	Format FormatConfig `yaml:"format"`
}

// FileSinkConfig configures the file logging sink.
type FileSinkConfig struct {
	Enabled bool `yaml:"enabled"`
	// Path is the full path to the log file.
	Path   string `yaml:"path"`
	Format string `yaml:"format,omitempty" jsonschema:"enum=text,enum=json"`
}

// FormatConfig controls the log output format.
type FormatConfig struct {
	// Preset can be "default" (rich text), "simple" (minimal text), or "json".
	Preset string `yaml:"preset" jsonschema:"enum=default,enum=simple,enum=json"`
	// DisableTimestamp disables the timestamp from the "default" and "simple" formats.
	DisableTimestamp bool `yaml:"disable_timestamp"`
	// DisableComponent disables the component name from the "default" and "simple" formats.
	DisableComponent bool `yaml:"disable_component"`
	// StructuredToStderr controls when structured logs are sent to stderr.
	// Can be "auto" (default), "always", or "never".
	StructuredToStderr string `yaml:"structured_to_stderr" jsonschema:"enum=auto,enum=always,enum=never"`
}
