package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/grovetools/catalogdocs/config"
	"github.com/muesli/termenv"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func configureFromYAML(t *testing.T, root, data string) {
	t.Helper()
	cfg, err := config.LoadFromBytes([]byte(data), config.FormatYAML)
	require.NoError(t, err)
	cfg.Root = root
	require.NoError(t, Configure(cfg))
	t.Cleanup(func() {
		loggersMu.Lock()
		configured = nil
		loggers = make(map[string]*logrus.Entry)
		loggersMu.Unlock()
	})
}

func TestNewLogger(t *testing.T) {
	configureFromYAML(t, t.TempDir(), "logging:\n  format:\n    structured_to_stderr: never\n")

	logger := NewLogger("sync")
	require.NotNil(t, logger)
	assert.Equal(t, "sync", logger.Data["component"])
	assert.Same(t, logger, NewLogger("sync"), "loggers are cached per component")
	assert.NotSame(t, logger, NewLogger("lint"))
}

func TestConfigureDropsCachedLoggers(t *testing.T) {
	configureFromYAML(t, t.TempDir(), "logging:\n  level: warn\n")
	before := NewLogger("nav")
	assert.Equal(t, logrus.WarnLevel, before.Logger.GetLevel())

	configureFromYAML(t, t.TempDir(), "logging:\n  level: debug\n")
	after := NewLogger("nav")
	assert.NotSame(t, before, after)
	assert.Equal(t, logrus.DebugLevel, after.Logger.GetLevel())
}

func TestLevel(t *testing.T) {
	tests := []struct {
		name   string
		config string
		env    string
		want   logrus.Level
	}{
		{"default", "", "", logrus.InfoLevel},
		{"from config", "logging:\n  level: error\n", "", logrus.ErrorLevel},
		{"env wins", "logging:\n  level: error\n", "trace", logrus.TraceLevel},
		{"unparseable env falls back to info", "", "loud", logrus.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("CATALOGDOCS_LOG_LEVEL", tt.env)
			configureFromYAML(t, t.TempDir(), tt.config)
			assert.Equal(t, tt.want, NewLogger("level").Logger.GetLevel())
		})
	}
}

func TestReportCallerFromEnv(t *testing.T) {
	t.Setenv("CATALOGDOCS_LOG_CALLER", "true")
	configureFromYAML(t, t.TempDir(), "")
	assert.True(t, NewLogger("caller").Logger.ReportCaller)
}

func TestStructuredOutputToRedirectedStderr(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(os.Stderr) })

	configureFromYAML(t, t.TempDir(), `
logging:
  format:
    preset: simple
    structured_to_stderr: always
`)
	NewLogger("inventory").WithField("pages", 3).Info("Scanned pages")

	assert.Equal(t, "[INFO] Scanned pages pages=3\n", buf.String())
}

func TestFileSink(t *testing.T) {
	root := t.TempDir()
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(os.Stderr) })

	configureFromYAML(t, root, `
logging:
  file:
    enabled: true
    path: logs/catalogdocs.log
    format: json
  format:
    structured_to_stderr: never
`)
	NewLogger("columns").Warn("Column not documented")

	data, err := os.ReadFile(filepath.Join(root, "logs", "catalogdocs.log"))
	require.NoError(t, err)

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(data), &line))
	assert.Equal(t, "Column not documented", line["msg"])
	assert.Equal(t, "columns", line["component"])
	assert.Equal(t, "warning", line["level"])
	assert.Empty(t, buf.String())
}

func TestShouldLogToStderr(t *testing.T) {
	assert.True(t, shouldLogToStderr("always", logrus.InfoLevel))
	assert.False(t, shouldLogToStderr("never", logrus.DebugLevel))

	t.Setenv("CATALOGDOCS_DEBUG", "1")
	assert.True(t, shouldLogToStderr("auto", logrus.InfoLevel))
}

func TestWithRunID(t *testing.T) {
	entry := WithRunID(Discard())
	runID, ok := entry.Data["run_id"].(string)
	require.True(t, ok)
	_, err := uuid.Parse(runID)
	assert.NoError(t, err)
	assert.NotEqual(t, runID, WithRunID(Discard()).Data["run_id"])
}

func TestTextFormatter(t *testing.T) {
	at := time.Date(2025, 10, 20, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		name    string
		config  FormatConfig
		entry   *logrus.Entry
		want    []string
		notWant []string
	}{
		{
			name:   "default format",
			config: FormatConfig{},
			entry: &logrus.Entry{
				Time:    at,
				Level:   logrus.InfoLevel,
				Message: "Synced pages",
				Data:    logrus.Fields{"component": "sync", "updated": 4, "created": 1},
			},
			want: []string{"2025-10-20 09:30:00", "[INFO]", "sync", "Synced pages created=1 updated=4"},
		},
		{
			name:   "simple format",
			config: FormatConfig{DisableTimestamp: true, DisableComponent: true},
			entry: &logrus.Entry{
				Time:    at,
				Level:   logrus.WarnLevel,
				Message: "Group not found",
				Data:    logrus.Fields{"component": "nav"},
			},
			want:    []string{"[WARN] Group not found"},
			notWant: []string{"2025-10-20", "nav"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := (&TextFormatter{Config: tt.config}).Format(tt.entry)
			require.NoError(t, err)
			for _, w := range tt.want {
				assert.Contains(t, string(out), w)
			}
			for _, w := range tt.notWant {
				assert.NotContains(t, string(out), w)
			}
			assert.True(t, strings.HasSuffix(string(out), "\n"))
		})
	}
}

func TestPrettyLogger(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)

	var buf bytes.Buffer
	pretty := NewPrettyLogger().WithWriter(&buf)

	pretty.Success("Updated navigation group")
	pretty.WarnPretty("Group not found")
	pretty.ErrorPretty("Sync failed", os.ErrNotExist)
	pretty.Field("pages", 12)
	pretty.List([]string{"a.mdx", "b.mdx", "c.mdx"}, 2)

	assert.Equal(t, strings.Join([]string{
		"✓ Updated navigation group",
		"⚠ Group not found",
		"✗ Sync failed: file does not exist",
		"pages: 12",
		"  • a.mdx",
		"  • b.mdx",
		"  ... and 1 more",
		"",
	}, "\n"), buf.String())
}
