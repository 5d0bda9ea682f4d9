// Package cmd holds the glory command tree.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/glory-app/glory/internal/config"
	"github.com/glory-app/glory/internal/logging"
)

var (
	// Version is the build version, set by Execute.
	Version = "dev"
	// Commit is the git commit hash.
	Commit = "unknown"
)

type globalFlags struct {
	configPath string
	player     string
	interval   string
	logLevel   string
	verbose    bool
}

var globals globalFlags

var rootCmd = &cobra.Command{
	Use:   "glory",
	Short: "Play sounds when you kill, die or assist in a live match",
	Long: `glory watches one player in a locally running match through the game's
live-client API and turns scoreboard changes into events: joining and
leaving a match, kills, deaths, assists and creep kills. Events drive sound
cues and status output.

Run without a subcommand to start monitoring.`,
	SilenceUsage: true,
	RunE:         runMonitor,
}

// Execute runs the root command with a context cancelled on SIGINT/SIGTERM.
func Execute(version, commit string) {
	Version = version
	Commit = commit

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func init() {
	addGlobalFlags(rootCmd, &globals)
	addRunFlags(rootCmd)
	rootCmd.AddCommand(runCmd, statusCmd, mockServerCmd, versionCmd)
}

func addGlobalFlags(c *cobra.Command, g *globalFlags) {
	pf := c.PersistentFlags()
	pf.StringVarP(&g.configPath, "config", "c", "config.yaml", "path to config file")
	pf.StringVarP(&g.player, "player", "p", "", "player name to track (overrides config)")
	pf.StringVar(&g.interval, "interval", "", "poll interval, e.g. 500ms (overrides config)")
	pf.StringVar(&g.logLevel, "log-level", "", "log level: trace, debug, info, warn, error")
	pf.BoolVarP(&g.verbose, "verbose", "v", false, "shortcut for --log-level debug")
}

// loadConfig layers defaults, the YAML file, .env files, GLORY_* variables
// and flags, in that order of increasing precedence.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if cmd.Flags().Changed("config") {
		cfg, err = config.Load(globals.configPath)
	} else {
		cfg, err = config.LoadOrDefault(globals.configPath)
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	config.LoadEnvFiles()
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	if globals.player != "" {
		cfg.Player.Name = globals.player
	}
	if globals.interval != "" {
		d, err := parseDuration(globals.interval)
		if err != nil {
			return nil, fmt.Errorf("--interval: %w", err)
		}
		cfg.Monitor.PollInterval = d
	}
	if globals.logLevel != "" {
		cfg.Log.Level = globals.logLevel
	} else if globals.verbose {
		cfg.Log.Level = "debug"
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) (zerolog.Logger, io.Closer) {
	return logging.New(logging.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
}
