// Package app wires one monitor instance: sources, tracker, bus, session
// monitor and scheduler, plus the subscribers chosen at startup.
package app

import (
	"context"
	"errors"
	"io"

	"github.com/rs/zerolog"

	"github.com/glory-app/glory/internal/audio"
	"github.com/glory-app/glory/internal/config"
	"github.com/glory-app/glory/internal/console"
	"github.com/glory-app/glory/internal/event"
	"github.com/glory-app/glory/internal/liveclient"
	"github.com/glory-app/glory/internal/mock"
	"github.com/glory-app/glory/internal/player"
	"github.com/glory-app/glory/internal/process"
	"github.com/glory-app/glory/internal/scheduler"
	"github.com/glory-app/glory/internal/session"
)

// Sources bundles the two external collaborators the core consumes.
type Sources struct {
	Probe session.Probe
	Stats player.Source
}

// LiveSources talks to the game's local API, optionally gated on the game
// process being present.
func LiveSources(cfg *config.Config) Sources {
	client := liveclient.New(liveclient.Options{
		BaseURL:            cfg.LiveClient.BaseURL,
		Timeout:            cfg.LiveClient.Timeout,
		InsecureSkipVerify: cfg.LiveClient.InsecureSkipVerify,
	})
	var probe session.Probe = client
	if cfg.Probe.ProcessName != "" {
		probe = process.NewGate(cfg.Probe.ProcessName, client,
			process.WithCacheFor(cfg.Probe.ProcessCache),
			process.WithScanTimeout(cfg.Probe.ScanTimeout),
		)
	}
	return Sources{Probe: probe, Stats: client}
}

// MockSources serves a simulated match in-process.
func MockSources(seed int64, opts ...mock.Option) Sources {
	m := mock.NewMatch(seed, opts...)
	return Sources{Probe: m, Stats: m}
}

// App owns one monitor and its loop. Everything it holds is touched only by
// the goroutine calling Run.
type App struct {
	cfg       *config.Config
	log       zerolog.Logger
	bus       *event.Bus
	tracker   *player.Tracker
	monitor   *session.Monitor
	scheduler *scheduler.Scheduler
}

func New(cfg *config.Config, src Sources, logger zerolog.Logger, opts ...scheduler.Option) (*App, error) {
	bus := event.NewBus()
	tracker := player.NewTracker(cfg.Player.Name, src.Stats, logger)
	monitor := session.NewMonitor(src.Probe, tracker, bus,
		session.WithFailureThreshold(cfg.Monitor.FailureThreshold),
		session.WithLogger(logger),
	)
	opts = append([]scheduler.Option{scheduler.WithLogger(logger)}, opts...)
	sched, err := scheduler.New(cfg.Monitor.PollInterval, monitor, opts...)
	if err != nil {
		return nil, err
	}
	return &App{
		cfg:       cfg,
		log:       logger.With().Str("component", "app").Logger(),
		bus:       bus,
		tracker:   tracker,
		monitor:   monitor,
		scheduler: sched,
	}, nil
}

func (a *App) Bus() *event.Bus           { return a.bus }
func (a *App) Tracker() *player.Tracker  { return a.tracker }
func (a *App) Monitor() *session.Monitor { return a.monitor }

// SubscribeConsole prints status lines to w.
func (a *App) SubscribeConsole(w io.Writer) {
	console.New(w, a.tracker.Snapshot).Subscribe(a.bus)
}

// SubscribeSounds registers a cue for every event that is enabled and has a
// sound file configured. It returns how many cues were registered.
func (a *App) SubscribeSounds(s audio.Sounder) int {
	n := 0
	for _, c := range soundCues(a.cfg) {
		if !c.enabled || c.file == "" {
			continue
		}
		a.bus.Subscribe(c.name, audio.Cue(s, c.name, c.file, a.log))
		n++
	}
	return n
}

type cue struct {
	name    event.Name
	enabled bool
	file    string
}

func soundCues(cfg *config.Config) []cue {
	return []cue{
		{event.Kill, cfg.Events.Kills, cfg.Sounds.OnKill},
		{event.Death, cfg.Events.Deaths, cfg.Sounds.OnDeath},
		{event.Assist, cfg.Events.Assists, cfg.Sounds.OnAssist},
		{event.CreepKilled, cfg.Events.CreepScore, cfg.Sounds.OnCreepKilled},
		{event.GameJoin, cfg.Events.GameJoin, cfg.Sounds.OnGameJoin},
		{event.GameLeave, cfg.Events.GameLeave, cfg.Sounds.OnGameLeave},
	}
}

// HasSounds reports whether any cue would be registered.
func HasSounds(cfg *config.Config) bool {
	for _, c := range soundCues(cfg) {
		if c.enabled && c.file != "" {
			return true
		}
	}
	return false
}

// Start takes the first observation.
func (a *App) Start(ctx context.Context) {
	a.monitor.Observe(ctx)
}

// Loop runs the scheduler until ctx is cancelled. Cancellation is the normal
// way to stop and is not reported as an error.
func (a *App) Loop(ctx context.Context) error {
	a.log.Info().
		Str("player", a.tracker.Player()).
		Dur("interval", a.scheduler.Interval()).
		Str("state", a.monitor.State().String()).
		Msg("monitoring started")
	err := a.scheduler.Run(ctx)
	a.log.Info().Object("ticks", a.scheduler.Stats()).Msg("monitoring stopped")
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}

// Run is Start followed by Loop.
func (a *App) Run(ctx context.Context) error {
	a.Start(ctx)
	return a.Loop(ctx)
}
