// Package logging provides per-component logrus loggers configured from the
// 'logging' section of catalogdocs.yml and the environment.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/grovetools/catalogdocs/config"
	"github.com/grovetools/catalogdocs/util/pathutil"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

var (
	loggers   = make(map[string]*logrus.Entry)
	loggersMu sync.Mutex

	// configured is set by Configure; nil means load the default config.
	configured *Config
)

// Configure sets the logging configuration from cfg for loggers created
// afterwards. Cached loggers are dropped.
func Configure(cfg *config.Config) error {
	var logCfg Config
	if cfg != nil {
		if err := cfg.UnmarshalExtension("logging", &logCfg); err != nil {
			return err
		}
		if logCfg.File.Path != "" && !filepath.IsAbs(logCfg.File.Path) && !strings.HasPrefix(logCfg.File.Path, "~") {
			logCfg.File.Path = filepath.Join(cfg.Root, logCfg.File.Path)
		}
	}

	loggersMu.Lock()
	defer loggersMu.Unlock()
	configured = &logCfg
	loggers = make(map[string]*logrus.Entry)
	return nil
}

// NewLogger creates and returns a pre-configured logger for a specific component.
// It uses a singleton pattern per component to avoid re-initializing.
func NewLogger(component string) *logrus.Entry {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	if logger, exists := loggers[component]; exists {
		return logger
	}

	logCfg := loadConfig()
	logger := logrus.New()

	// Configure Level
	levelStr := "info"
	if env := os.Getenv("CATALOGDOCS_LOG_LEVEL"); env != "" {
		levelStr = env
	} else if logCfg.Level != "" {
		levelStr = logCfg.Level
	}
	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	// Configure Caller Reporting
	if os.Getenv("CATALOGDOCS_LOG_CALLER") == "true" || logCfg.ReportCaller {
		logger.SetReportCaller(true)
	}

	logger.SetFormatter(newFormatter(logCfg.Format.Preset, logCfg.Format))

	var writers []io.Writer

	// File sink, only when configured
	if logCfg.File.Enabled && logCfg.File.Path != "" {
		if w, err := openLogFile(logCfg.File.Path); err == nil {
			if logCfg.File.Format == "json" && logCfg.Format.Preset != "json" {
				// The file gets JSON while stderr keeps the text format.
				logger.AddHook(&writerHook{writer: w, formatter: &logrus.JSONFormatter{}})
			} else {
				writers = append(writers, w)
			}
		} else {
			logger.Warnf("Failed to open log file %s: %v", logCfg.File.Path, err)
		}
	}

	if shouldLogToStderr(logCfg.Format.StructuredToStderr, logger.GetLevel()) {
		writers = append(writers, Output())
	}

	switch len(writers) {
	case 0:
		// Interactive runs keep stderr for user-facing output.
		logger.SetOutput(io.Discard)
	case 1:
		logger.SetOutput(writers[0])
	default:
		logger.SetOutput(io.MultiWriter(writers...))
	}

	entry := logger.WithField("component", component)
	loggers[component] = entry
	return entry
}

// WithRunID tags entry with a fresh run identifier.
func WithRunID(entry *logrus.Entry) *logrus.Entry {
	return entry.WithField("run_id", uuid.NewString())
}

// Discard returns an entry that drops everything, for callers that need a
// logger but have none.
func Discard() *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logrus.NewEntry(logger)
}

func loadConfig() Config {
	if configured != nil {
		return *configured
	}

	var logCfg Config
	cfg, err := config.LoadDefault()
	if err == nil {
		if err := cfg.UnmarshalExtension("logging", &logCfg); err != nil {
			logrus.Warnf("Failed to parse 'logging' config: %v", err)
		}
	}
	return logCfg
}

func newFormatter(preset string, format FormatConfig) logrus.Formatter {
	switch preset {
	case "json":
		return &logrus.JSONFormatter{}
	case "simple":
		return &TextFormatter{Config: FormatConfig{
			DisableTimestamp: true,
			DisableComponent: true,
		}}
	default:
		return &TextFormatter{Config: format}
	}
}

// shouldLogToStderr decides whether structured logs go to stderr. In "auto"
// mode they do when debugging or when stderr is not an interactive terminal.
func shouldLogToStderr(mode string, level logrus.Level) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		isDebug := os.Getenv("CATALOGDOCS_DEBUG") == "1" || level >= logrus.DebugLevel
		isInteractive := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
		return isDebug || !isInteractive
	}
}

func openLogFile(path string) (io.Writer, error) {
	path, err := pathutil.Expand(path)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
}

// writerHook writes every entry to writer with its own formatter.
type writerHook struct {
	writer    io.Writer
	formatter logrus.Formatter
}

func (h *writerHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *writerHook) Fire(entry *logrus.Entry) error {
	line, err := h.formatter.Format(entry)
	if err != nil {
		return err
	}
	_, err = h.writer.Write(line)
	return err
}
