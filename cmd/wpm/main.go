// Package main provides the CLI entrypoint for wpm.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/verte-zerg/wpm/internal/config"
	"github.com/verte-zerg/wpm/internal/logging"
	"github.com/verte-zerg/wpm/internal/typeracer"
)

const (
	defaultSkipKey      = "right"
	defaultQuitKey      = "ctrl+c"
	defaultWidth        = 0.70
	defaultFetchTimeout = 60
	defaultLogLevel     = "info"
)

var (
	logLevel string
	logFile  string

	envCfg  config.EnvConfig
	fileCfg config.FileConfig

	logger  *zap.Logger
	logSink *logging.Sink
)

func main() {
	rootCmd := newRootCmd()
	err := rootCmd.Execute()
	if logSink != nil {
		if ferr := logSink.Flush(); ferr != nil {
			logErrf("failed to flush logs: %v\n", ferr)
		}
	}
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               "wpm",
		Short:             "Terminal typing exerciser",
		SilenceUsage:      true,
		SilenceErrors:     false,
		PersistentPreRunE: loadSettings,
		RunE:              runPlayCmd,
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", defaultLogLevel, "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to a file instead of stderr")
	addPlayFlags(rootCmd)

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newFetchCmd())
	rootCmd.AddCommand(newStatsCmd())

	return rootCmd
}

// loadSettings reads the environment and config file, then builds the logger.
// The play command owns the terminal, so its log lines are held until exit.
func loadSettings(cmd *cobra.Command, _ []string) error {
	env, err := config.LoadEnv()
	if err != nil {
		return err
	}
	envCfg = env
	if cmd.Name() == "config" {
		return nil
	}

	loaded, err := config.LoadConfig(envCfg.ResolveConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	fileCfg = envCfg.Merge(loaded)

	applyStringConfig(cmd, "log-level", &logLevel, fileCfg.Log.Level)
	applyStringConfig(cmd, "log-file", &logFile, fileCfg.Log.File)
	l, sink, err := logging.New(logging.Options{
		Level:  logLevel,
		File:   logFile,
		Direct: cmd.Name() != "wpm",
	})
	if err != nil {
		return err
	}
	logger = l
	logSink = sink
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := envCfg.ResolveConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyInt64Config(cmd *cobra.Command, name string, target, value *int64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# wpm configuration
# Uncomment a value to enable it. CLI flags and WPM_* variables override config values.

[play]
# prompts = %q
# filter = ".difficulty < 1.1"   # jq expression selecting texts
# count = 0                      # Texts per session (0 = all)
# skip-key = %q               # Comma separated keys
# quit-key = %q
# seed = 0                       # Shuffle seed (0 = time based)
# width = %.2f                   # Share of terminal width used for the text (0-1)

[fetch]
# url = %q
# timeout = %d                  # Seconds

[log]
# level = %q                 # debug, info, warn, error
# file = ""                      # Log file (default: stderr after the session)
`,
		config.DefaultPromptsPath(),
		defaultSkipKey,
		defaultQuitKey,
		defaultWidth,
		typeracer.DefaultURL,
		defaultFetchTimeout,
		defaultLogLevel,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
