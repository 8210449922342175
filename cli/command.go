// Package cli holds the pieces shared by every catalogdocs subcommand:
// standard flags, styled help and error reporting.
package cli

import (
	"os"

	"github.com/grovetools/catalogdocs/config"
	"github.com/grovetools/catalogdocs/logging"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// CommandOptions holds common options for catalogdocs commands
type CommandOptions struct {
	ConfigFile string
	Verbose    bool
	JSONOutput bool
}

// NewStandardCommand creates a new command with standard flags
func NewStandardCommand(use, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           use,
		Short:         short,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().Bool("json", false, "Output logs in JSON format")
	cmd.PersistentFlags().StringP("config", "c", "", "Path to catalogdocs.yml config file")

	SetStyledHelp(cmd)

	return cmd
}

// GetLogger returns the logger for component adjusted to the command flags.
// Every call tags the entry with a fresh run_id. Log output that would go to
// stderr goes to the command's error stream.
func GetLogger(cmd *cobra.Command, component string) *logrus.Entry {
	logging.SetOutput(cmd.ErrOrStderr())
	entry := logging.NewLogger(component)
	logger := entry.Logger

	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
		logger.SetOutput(logging.Output())
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	return logging.WithRunID(entry)
}

// GetOptions extracts common options from a command
func GetOptions(cmd *cobra.Command) CommandOptions {
	configFile, _ := cmd.Flags().GetString("config")
	verbose, _ := cmd.Flags().GetBool("verbose")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	return CommandOptions{
		ConfigFile: configFile,
		Verbose:    verbose,
		JSONOutput: jsonOutput,
	}
}

// InitConfig initializes the configuration file path
func InitConfig(configFile string) (string, error) {
	if configFile != "" {
		return configFile, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}

	foundConfigFile, err := config.FindConfigFile(cwd)
	if err != nil {
		// No config file found, defaults apply
		return "", nil
	}

	return foundConfigFile, nil
}

// LoadConfig loads the configuration selected by the command flags and
// configures logging from it.
func LoadConfig(cmd *cobra.Command) (*config.Config, error) {
	opts := GetOptions(cmd)

	path, err := InitConfig(opts.ConfigFile)
	if err != nil {
		return nil, err
	}

	var cfg *config.Config
	if path != "" {
		cfg, err = config.Load(path)
	} else {
		cfg, err = config.LoadDefault()
	}
	if err != nil {
		return nil, err
	}

	if err := logging.Configure(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
