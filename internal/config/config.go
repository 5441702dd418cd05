// Package config loads the server configuration from config.yml, MINIBIT_
// environment variables and command line flags, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ModeSumo    = "sumo"
	ModeBoxing  = "boxing"
	ModeClassic = "classic"
)

// ModeNames lists every mode server in start order.
var ModeNames = []string{ModeSumo, ModeBoxing, ModeClassic}

var (
	ErrUnknownMode = errors.New("config: unknown mode")
	ErrInvalid     = errors.New("config: invalid value")
	ErrNoModes     = errors.New("config: no mode server enabled")
)

// Config is the root configuration document.
type Config struct {
	DataPath  string          `mapstructure:"data_path"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Sumo      ModeConfig      `mapstructure:"sumo"`
	Boxing    ModeConfig      `mapstructure:"boxing"`
	Classic   ModeConfig      `mapstructure:"classic"`
}

type TelemetryConfig struct {
	Tracing     bool   `mapstructure:"tracing"`
	Metrics     bool   `mapstructure:"metrics"`
	Endpoint    string `mapstructure:"endpoint"`
	ServiceName string `mapstructure:"service_name"`
	Pprof       bool   `mapstructure:"pprof"`
}

type LoggingConfig struct {
	Sinks      []string `mapstructure:"sinks"`
	JSONPath   string   `mapstructure:"json_path"`
	Level      string   `mapstructure:"level"`
	Color      bool     `mapstructure:"color"`
	BufferSize int      `mapstructure:"buffer_size"`
}

// Spawn is a team spawn point relative to the arena origin.
type Spawn struct {
	X   float64 `mapstructure:"x"`
	Y   float64 `mapstructure:"y"`
	Z   float64 `mapstructure:"z"`
	Yaw float32 `mapstructure:"yaw"`
}

// ModeConfig configures one mode server.
type ModeConfig struct {
	Enabled         bool    `mapstructure:"enabled"`
	Path            string  `mapstructure:"path"`
	Address         string  `mapstructure:"address"`
	TickRate        int     `mapstructure:"tick_rate"`
	PlayersPerMatch int     `mapstructure:"players_per_match"`
	CooldownTicks   int64   `mapstructure:"cooldown_ticks"`
	VoidLevel       float64 `mapstructure:"void_level"`
	HitsToWin       int     `mapstructure:"hits_to_win"`
	Damage          float64 `mapstructure:"damage"`
	MaxHealth       float64 `mapstructure:"max_health"`
	TeamAware       bool    `mapstructure:"team_aware"`
	Rematch         bool    `mapstructure:"rematch"`
	Arenas          int     `mapstructure:"arenas"`
	ArenaSpacing    float64 `mapstructure:"arena_spacing"`
	Spawns          []Spawn `mapstructure:"spawns"`
	Lobby           Spawn   `mapstructure:"lobby"`
}

var modeAddresses = map[string]string{
	ModeSumo:    "127.0.0.1:8081",
	ModeBoxing:  "127.0.0.1:8082",
	ModeClassic: "127.0.0.1:8083",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("data_path", "data")

	v.SetDefault("telemetry.tracing", false)
	v.SetDefault("telemetry.metrics", false)
	v.SetDefault("telemetry.endpoint", "")
	v.SetDefault("telemetry.service_name", "minibit")
	v.SetDefault("telemetry.pprof", false)

	v.SetDefault("logging.sinks", []string{"console"})
	v.SetDefault("logging.json_path", "events.jsonl")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.color", true)
	v.SetDefault("logging.buffer_size", 512)

	for _, mode := range ModeNames {
		v.SetDefault(mode+".enabled", mode == ModeSumo)
		v.SetDefault(mode+".path", mode)
		v.SetDefault(mode+".address", modeAddresses[mode])
		v.SetDefault(mode+".tick_rate", 20)
		v.SetDefault(mode+".players_per_match", 2)
		v.SetDefault(mode+".cooldown_ticks", 10)
		v.SetDefault(mode+".void_level", 0.0)
		v.SetDefault(mode+".hits_to_win", 5)
		v.SetDefault(mode+".damage", 5.83)
		v.SetDefault(mode+".max_health", 20.0)
		v.SetDefault(mode+".team_aware", false)
		v.SetDefault(mode+".rematch", false)
		v.SetDefault(mode+".arenas", 16)
		v.SetDefault(mode+".arena_spacing", 256.0)
		v.SetDefault(mode+".spawns", []map[string]any{
			{"x": 0.5, "y": 64.0, "z": -3.5, "yaw": 0.0},
			{"x": 0.5, "y": 64.0, "z": 4.5, "yaw": 180.0},
		})
		v.SetDefault(mode+".lobby", map[string]any{"x": 0.5, "y": 100.0, "z": 0.5, "yaw": 0.0})
	}
}

// Load reads configuration. An empty path looks for config.yml in the working
// directory and falls back to defaults when it is absent; an explicit path must
// exist. flags may be nil.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("MINIBIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if flag := flags.Lookup("data-path"); flag != nil {
			if err := v.BindPFlag("data_path", flag); err != nil {
				return Config{}, fmt.Errorf("bind data-path flag: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Mode returns the configuration of the named mode server.
func (c Config) Mode(name string) (ModeConfig, error) {
	switch name {
	case ModeSumo:
		return c.Sumo, nil
	case ModeBoxing:
		return c.Boxing, nil
	case ModeClassic:
		return c.Classic, nil
	default:
		return ModeConfig{}, fmt.Errorf("%w: %q", ErrUnknownMode, name)
	}
}

// Enabled lists the names of enabled mode servers in start order.
func (c Config) Enabled() []string {
	var names []string
	for _, name := range ModeNames {
		mode, _ := c.Mode(name)
		if mode.Enabled {
			names = append(names, name)
		}
	}
	return names
}

// Validate checks every enabled mode.
func (c Config) Validate() error {
	for _, name := range c.Enabled() {
		mode, _ := c.Mode(name)
		if err := mode.Validate(); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

// Teams is the number of teams per match. Each spawn hosts one team.
func (m ModeConfig) Teams() int {
	return min(len(m.Spawns), m.PlayersPerMatch)
}

func (m ModeConfig) Validate() error {
	switch {
	case m.TickRate <= 0:
		return fmt.Errorf("%w: tick_rate must be positive, got %d", ErrInvalid, m.TickRate)
	case m.PlayersPerMatch < 2:
		return fmt.Errorf("%w: players_per_match must be at least 2, got %d", ErrInvalid, m.PlayersPerMatch)
	case m.PlayersPerMatch > 255:
		return fmt.Errorf("%w: players_per_match must fit a team index, got %d", ErrInvalid, m.PlayersPerMatch)
	case len(m.Spawns) < 2:
		return fmt.Errorf("%w: need at least 2 spawns, got %d", ErrInvalid, len(m.Spawns))
	case m.CooldownTicks < 0:
		return fmt.Errorf("%w: cooldown_ticks must not be negative", ErrInvalid)
	case m.Arenas <= 0:
		return fmt.Errorf("%w: arenas must be positive, got %d", ErrInvalid, m.Arenas)
	case m.Address == "":
		return fmt.Errorf("%w: address is required", ErrInvalid)
	}
	return nil
}
