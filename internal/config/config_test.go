package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
player:
  name: "Hide on bush"
monitor:
  poll_interval: 250ms
events:
  creep_score: true
  assists: false
sounds:
  volume: 0.8
  on_kill: kill.mp3
  on_death: death.wav
probe:
  process_name: "League of Legends.exe"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Hide on bush", cfg.Player.Name)
	assert.Equal(t, 250*time.Millisecond, cfg.Monitor.PollInterval)
	assert.True(t, cfg.Events.CreepScore)
	assert.False(t, cfg.Events.Assists)
	assert.Equal(t, 0.8, cfg.Sounds.Volume)
	assert.Equal(t, "kill.mp3", cfg.Sounds.OnKill)
	assert.Equal(t, "death.wav", cfg.Sounds.OnDeath)
	assert.Equal(t, "League of Legends.exe", cfg.Probe.ProcessName)

	// Defaults survive for unspecified fields.
	assert.True(t, cfg.Events.Kills)
	assert.Equal(t, 500*time.Millisecond, cfg.LiveClient.Timeout)
	assert.Equal(t, "https://127.0.0.1:2999", cfg.LiveClient.BaseURL)
	assert.Equal(t, "soundfiles", cfg.Sounds.Dir)
	assert.Equal(t, 5*time.Second, cfg.Probe.ProcessCache)
	assert.Equal(t, time.Second, cfg.Probe.ScanTimeout)
	assert.NoError(t, cfg.Validate())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yaml")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadOrDefaultMissingFile(t *testing.T) {
	cfg, err := LoadOrDefault("/nonexistent/path/config.yaml")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadInvalidYAML(t *testing.T) {
	_, err := Load(writeConfig(t, ":::not valid yaml"))
	assert.Error(t, err)

	_, err = LoadOrDefault(writeConfig(t, "monitor: [1, 2"))
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("GLORY_PLAYER_NAME", "Faker")
	t.Setenv("GLORY_MONITOR_POLL_INTERVAL", "2s")
	t.Setenv("GLORY_SOUNDS_VOLUME", "0.25")
	t.Setenv("GLORY_EVENTS_KILLS", "false")
	t.Setenv("GLORY_LOG_LEVEL", "debug")

	cfg := Default()
	cfg.Sounds.OnDeath = "death.mp3"
	require.NoError(t, cfg.ApplyEnv())

	assert.Equal(t, "Faker", cfg.Player.Name)
	assert.Equal(t, 2*time.Second, cfg.Monitor.PollInterval)
	assert.Equal(t, 0.25, cfg.Sounds.Volume)
	assert.False(t, cfg.Events.Kills)
	assert.Equal(t, "debug", cfg.Log.Level)
	// Unset variables leave file values alone.
	assert.Equal(t, "death.mp3", cfg.Sounds.OnDeath)
	assert.True(t, cfg.Events.Deaths)
}

func TestApplyEnvBadValue(t *testing.T) {
	t.Setenv("GLORY_MONITOR_POLL_INTERVAL", "soon")
	assert.Error(t, Default().ApplyEnv())
}

func TestLoadEnvFiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("GLORY_PLAYER_NAME=FromDotEnv\n"), 0644))
	t.Setenv("GLORY_PLAYER_NAME", "")
	os.Unsetenv("GLORY_PLAYER_NAME")

	LoadEnvFiles(path, filepath.Join(t.TempDir(), "missing.env"))
	cfg := Default()
	require.NoError(t, cfg.ApplyEnv())
	assert.Equal(t, "FromDotEnv", cfg.Player.Name)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "player name is not set")

	cfg.Player.Name = "Faker"
	require.NoError(t, cfg.Validate())

	cfg.Monitor.PollInterval = 0
	cfg.Sounds.Volume = 1.5
	cfg.LiveClient.Timeout = -time.Second
	cfg.Monitor.FailureThreshold = 0
	cfg.Probe.ScanTimeout = 0
	err = cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{"poll_interval", "volume", "timeout", "failure_threshold", "scan_timeout"} {
		assert.Contains(t, err.Error(), want)
	}
}
