package app

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glory-app/glory/internal/config"
	"github.com/glory-app/glory/internal/event"
	"github.com/glory-app/glory/internal/mock"
	"github.com/glory-app/glory/internal/process"
	"github.com/glory-app/glory/internal/session"
)

type recordingSounder struct {
	played []string
}

func (r *recordingSounder) Play(file string) error {
	r.played = append(r.played, file)
	return nil
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Player.Name = "Faker"
	cfg.Monitor.PollInterval = time.Millisecond
	return cfg
}

func TestSubscribeSoundsHonoursFlags(t *testing.T) {
	cfg := testConfig()
	cfg.Sounds.OnKill = "kill.mp3"
	cfg.Sounds.OnDeath = "death.mp3"
	cfg.Sounds.OnAssist = "assist.mp3"
	cfg.Sounds.OnCreepKilled = "cs.wav"
	cfg.Events.Assists = false
	cfg.Events.CreepScore = false

	a, err := New(cfg, MockSources(1), zerolog.Nop())
	require.NoError(t, err)
	s := &recordingSounder{}
	assert.Equal(t, 2, a.SubscribeSounds(s))
	assert.True(t, HasSounds(cfg))

	for _, n := range event.Names() {
		a.Bus().Publish(n)
	}
	assert.Equal(t, []string{"kill.mp3", "death.mp3"}, s.played)
}

func TestHasSoundsDefault(t *testing.T) {
	assert.False(t, HasSounds(config.Default()))
}

func TestRunWithMockMatch(t *testing.T) {
	cfg := testConfig()
	cfg.Sounds.OnKill = "kill.mp3"
	cfg.Sounds.OnGameJoin = "join.wav"

	src := MockSources(11,
		mock.WithScript(mock.Script{Lobby: 2, Loading: 1, Playing: 40, PostGame: 2}),
		mock.WithOdds(mock.Odds{Kill: 0.5, Creep: 0.9}),
	)
	a, err := New(cfg, src, zerolog.Nop())
	require.NoError(t, err)

	var out bytes.Buffer
	a.SubscribeConsole(&out)
	s := &recordingSounder{}
	a.SubscribeSounds(s)

	joins, leaves := 0, 0
	a.Bus().Subscribe(event.GameJoin, func() { joins++ })
	a.Bus().Subscribe(event.GameLeave, func() { leaves++ })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	a.Bus().Subscribe(event.GameLeave, event.Handler(cancel))

	require.NoError(t, a.Run(ctx))

	assert.Equal(t, 1, joins)
	assert.Equal(t, 1, leaves)
	assert.Equal(t, session.NotInGame, a.Monitor().State())
	require.NotEmpty(t, s.played)
	assert.Equal(t, "join.wav", s.played[0])
	assert.Contains(t, s.played, "kill.mp3")

	text := ansi.Strip(out.String())
	assert.Contains(t, text, "Player joined game")
	assert.Contains(t, text, "Kill")
	assert.Contains(t, text, "Player left the game")
}

func TestLiveSourcesGatesOnProcess(t *testing.T) {
	cfg := testConfig()
	src := LiveSources(cfg)
	_, gated := src.Probe.(*process.Gate)
	assert.False(t, gated)

	cfg.Probe.ProcessName = "League of Legends.exe"
	src = LiveSources(cfg)
	_, gated = src.Probe.(*process.Gate)
	assert.True(t, gated)
}

func TestNewRejectsBadInterval(t *testing.T) {
	cfg := testConfig()
	cfg.Monitor.PollInterval = 0
	_, err := New(cfg, MockSources(1), zerolog.Nop())
	assert.Error(t, err)
}
