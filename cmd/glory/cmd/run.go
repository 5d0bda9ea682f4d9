package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/glory-app/glory/internal/app"
	"github.com/glory-app/glory/internal/audio"
	"github.com/glory-app/glory/internal/config"
	"github.com/glory-app/glory/internal/dashboard"
)

type runFlags struct {
	mock      bool
	seed      int64
	dashboard bool
	noSound   bool
}

var runOpts runFlags

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Monitor the player and fire events",
	RunE:  runMonitor,
}

func init() {
	addRunFlags(runCmd)
}

func addRunFlags(c *cobra.Command) {
	f := c.Flags()
	f.BoolVar(&runOpts.mock, "mock", false, "use a simulated match instead of the live client")
	f.Int64Var(&runOpts.seed, "seed", 1, "random seed for --mock")
	f.BoolVarP(&runOpts.dashboard, "dashboard", "d", false, "show the full-screen dashboard")
	f.BoolVar(&runOpts.noSound, "no-sound", false, "disable sound cues")
}

func runMonitor(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config:\n%w", err)
	}
	if runOpts.dashboard && (cfg.Log.Output == "" || cfg.Log.Output == "stderr" || cfg.Log.Output == "stdout") {
		// The dashboard owns the terminal.
		cfg.Log.Output = "discard"
	}

	logger, closer := newLogger(cfg)
	defer closer.Close()

	src := app.LiveSources(cfg)
	if runOpts.mock {
		logger.Info().Int64("seed", runOpts.seed).Msg("starting with a simulated match")
		src = app.MockSources(runOpts.seed)
	}

	a, err := app.New(cfg, src, logger)
	if err != nil {
		return err
	}

	if !runOpts.noSound && app.HasSounds(cfg) {
		spk, err := audio.NewSpeaker(cfg.Sounds.Dir, cfg.Sounds.Volume)
		if err != nil {
			logger.Warn().Err(err).Msg("sound disabled")
		} else {
			defer spk.Close()
			logger.Debug().Int("cues", a.SubscribeSounds(spk)).Msg("sound cues registered")
		}
	}

	if runOpts.dashboard {
		return runDashboard(cmd.Context(), cfg, a, logger)
	}
	a.SubscribeConsole(os.Stdout)
	return a.Run(cmd.Context())
}

func runDashboard(ctx context.Context, cfg *config.Config, a *app.App, logger zerolog.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(dashboard.New(cfg.Player.Name), tea.WithAltScreen(), tea.WithContext(ctx))
	fwd := dashboard.NewForwarder(p, a.Monitor(), a.Tracker().Snapshot)
	fwd.Subscribe(a.Bus())

	done := make(chan error, 1)
	go func() {
		a.Start(ctx)
		fwd.SendStatus()
		done <- a.Loop(ctx)
	}()

	_, runErr := p.Run()
	cancel()
	loopErr := <-done
	if runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) {
		logger.Error().Err(runErr).Msg("dashboard failed")
		return runErr
	}
	return loopErr
}
