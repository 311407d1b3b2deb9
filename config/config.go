package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/goccy/go-yaml"
	"github.com/jsphweid/fretdex/constants"
	"github.com/jsphweid/fretdex/midi"
	"github.com/jsphweid/fretdex/model"
	"github.com/jsphweid/fretdex/voicing"
	"go.uber.org/zap/zapcore"
)

type Config struct {
	Tuning           string   `yaml:"tuning,omitempty"`
	MaxFret          int      `yaml:"max_fret,omitempty"`
	Tempo            float64  `yaml:"tempo,omitempty"`
	Port             string   `yaml:"port,omitempty"`
	OutDir           string   `yaml:"out_dir,omitempty"`
	LogLevel         string   `yaml:"log_level,omitempty"`
	SentryDSN        string   `yaml:"sentry_dsn,omitempty"`
	ListenDebounceMs int      `yaml:"listen_debounce_ms,omitempty"`
	AllowedOrigins   []string `yaml:"allowed_origins,omitempty"`
}

func Default() Config {
	return Config{
		Tuning:           voicing.DefaultTuning,
		MaxFret:          voicing.DefaultMaxFret,
		Tempo:            model.DefaultTempo,
		Port:             constants.GetPort(),
		OutDir:           constants.GetOutDir(),
		LogLevel:         constants.GetLogLevel(),
		SentryDSN:        constants.GetSentryDSN(),
		ListenDebounceMs: constants.DefaultListenDebounceMs,
		AllowedOrigins:   []string{"*"},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
// Environment variables win over the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, cfg.Validate()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	applyEnv(&cfg)
	return cfg, cfg.Validate()
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("OUT_DIR"); v != "" {
		cfg.OutDir = v
	}
	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("SENTRY_DSN"); v != "" {
		cfg.SentryDSN = v
	}
}

func (c Config) Validate() error {
	if _, ok := voicing.LookupTuning(c.Tuning); !ok {
		return fmt.Errorf("unknown tuning %q", c.Tuning)
	}
	if c.MaxFret < 4 {
		return fmt.Errorf("max_fret must be at least 4, got %d", c.MaxFret)
	}
	if c.Tempo <= 0 {
		return fmt.Errorf("tempo must be positive, got %v", c.Tempo)
	}
	if err := midi.ValidateTempo(c.Tempo); err != nil {
		return fmt.Errorf("invalid tempo: %w", err)
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level %q", c.LogLevel)
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("invalid port %q", c.Port)
	}
	return nil
}

func (c Config) Addr() string {
	return ":" + c.Port
}
