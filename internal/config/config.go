package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. GLORY_PLAYER_NAME.
const EnvPrefix = "GLORY_"

type Config struct {
	Player     PlayerConfig     `yaml:"player" envPrefix:"PLAYER_"`
	LiveClient LiveClientConfig `yaml:"live_client" envPrefix:"LIVE_CLIENT_"`
	Monitor    MonitorConfig    `yaml:"monitor" envPrefix:"MONITOR_"`
	Probe      ProbeConfig      `yaml:"probe" envPrefix:"PROBE_"`
	Events     EventsConfig     `yaml:"events" envPrefix:"EVENTS_"`
	Sounds     SoundsConfig     `yaml:"sounds" envPrefix:"SOUNDS_"`
	Log        LogConfig        `yaml:"log" envPrefix:"LOG_"`
}

type PlayerConfig struct {
	Name string `yaml:"name" env:"NAME"`
}

type LiveClientConfig struct {
	BaseURL            string        `yaml:"base_url" env:"BASE_URL"`
	Timeout            time.Duration `yaml:"timeout" env:"TIMEOUT"`
	InsecureSkipVerify bool          `yaml:"insecure_skip_verify" env:"INSECURE_SKIP_VERIFY"`
}

type MonitorConfig struct {
	PollInterval     time.Duration `yaml:"poll_interval" env:"POLL_INTERVAL"`
	FailureThreshold int           `yaml:"failure_threshold" env:"FAILURE_THRESHOLD"`
}

// ProbeConfig gates the HTTP probe on the game process. An empty
// ProcessName disables the gate.
type ProbeConfig struct {
	ProcessName  string        `yaml:"process_name" env:"PROCESS_NAME"`
	ProcessCache time.Duration `yaml:"process_cache" env:"PROCESS_CACHE"`
	ScanTimeout  time.Duration `yaml:"scan_timeout" env:"SCAN_TIMEOUT"`
}

// EventsConfig enables sound cues per event.
type EventsConfig struct {
	Kills      bool `yaml:"kills" env:"KILLS"`
	Deaths     bool `yaml:"deaths" env:"DEATHS"`
	Assists    bool `yaml:"assists" env:"ASSISTS"`
	CreepScore bool `yaml:"creep_score" env:"CREEP_SCORE"`
	GameJoin   bool `yaml:"game_join" env:"GAME_JOIN"`
	GameLeave  bool `yaml:"game_leave" env:"GAME_LEAVE"`
}

// SoundsConfig names the file played for each event, relative to Dir. An
// empty name means no sound.
type SoundsConfig struct {
	Dir           string  `yaml:"dir" env:"DIR"`
	Volume        float64 `yaml:"volume" env:"VOLUME"`
	OnKill        string  `yaml:"on_kill" env:"ON_KILL"`
	OnDeath       string  `yaml:"on_death" env:"ON_DEATH"`
	OnAssist      string  `yaml:"on_assist" env:"ON_ASSIST"`
	OnCreepKilled string  `yaml:"on_creep_killed" env:"ON_CREEP_KILLED"`
	OnGameJoin    string  `yaml:"on_game_join" env:"ON_GAME_JOIN"`
	OnGameLeave   string  `yaml:"on_game_leave" env:"ON_GAME_LEAVE"`
}

type LogConfig struct {
	Level  string `yaml:"level" env:"LEVEL"`
	Format string `yaml:"format" env:"FORMAT"`
	Output string `yaml:"output" env:"OUTPUT"`
}

func defaultConfig() *Config {
	return &Config{
		LiveClient: LiveClientConfig{
			BaseURL:            "https://127.0.0.1:2999",
			Timeout:            500 * time.Millisecond,
			InsecureSkipVerify: true,
		},
		Monitor: MonitorConfig{
			PollInterval:     time.Second,
			FailureThreshold: 3,
		},
		Probe: ProbeConfig{
			ProcessCache: 5 * time.Second,
			ScanTimeout:  time.Second,
		},
		Events: EventsConfig{
			Kills:     true,
			Deaths:    true,
			Assists:   true,
			GameJoin:  true,
			GameLeave: true,
		},
		Sounds: SoundsConfig{
			Dir:    "soundfiles",
			Volume: 0.5,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "auto",
			Output: "stderr",
		},
	}
}

// Default returns the built-in configuration.
func Default() *Config {
	return defaultConfig()
}

// Load reads the YAML file at path over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := defaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault is Load, except that a missing file yields the defaults.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return defaultConfig(), nil
	}
	return cfg, err
}

// LoadEnvFiles loads .env then .env.local into the process environment.
// Variables already set win; missing files are ignored.
func LoadEnvFiles(files ...string) {
	if len(files) == 0 {
		files = []string{".env", ".env.local"}
	}
	for _, f := range files {
		_ = godotenv.Load(f)
	}
}

// ApplyEnv overrides fields from GLORY_* environment variables.
func (c *Config) ApplyEnv() error {
	if err := env.ParseWithOptions(c, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var errs []error
	if c.Player.Name == "" {
		errs = append(errs, errors.New("player name is not set (player.name or GLORY_PLAYER_NAME)"))
	}
	if c.Monitor.PollInterval <= 0 {
		errs = append(errs, fmt.Errorf("monitor.poll_interval must be positive, got %s", c.Monitor.PollInterval))
	}
	if c.Monitor.FailureThreshold < 1 {
		errs = append(errs, fmt.Errorf("monitor.failure_threshold must be at least 1, got %d", c.Monitor.FailureThreshold))
	}
	if c.LiveClient.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("live_client.timeout must be positive, got %s", c.LiveClient.Timeout))
	}
	if c.Sounds.Volume < 0 || c.Sounds.Volume > 1 {
		errs = append(errs, fmt.Errorf("sounds.volume must be within [0, 1], got %g", c.Sounds.Volume))
	}
	if c.Probe.ProcessCache < 0 {
		errs = append(errs, fmt.Errorf("probe.process_cache must not be negative, got %s", c.Probe.ProcessCache))
	}
	if c.Probe.ScanTimeout <= 0 {
		errs = append(errs, fmt.Errorf("probe.scan_timeout must be positive, got %s", c.Probe.ScanTimeout))
	}
	return errors.Join(errs...)
}
