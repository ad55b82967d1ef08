package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultDataDir    = "runs"
	DefaultPrecision  = 4
	DefaultLogLevel   = "info"
	DefaultPlotWidth  = 60
	DefaultPlotHeight = 15
	DefaultAddr       = ":8080"
	DefaultRateLimit  = 10.0
	DefaultRateBurst  = 20
)

// EnvPrefix marks the environment variables that override file values.
const EnvPrefix = "MECHSOLVER_"

type Config struct {
	DataDir   string       `yaml:"data_dir"`
	Precision int          `yaml:"precision"`
	LogLevel  string       `yaml:"log_level"`
	Plot      PlotConfig   `yaml:"plot"`
	Server    ServerConfig `yaml:"server"`

	// Presets adds or replaces named inputs, keyed by formula id then name.
	Presets map[string]map[string]map[string]any `yaml:"presets,omitempty"`
}

type PlotConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type ServerConfig struct {
	Addr      string  `yaml:"addr"`
	RateLimit float64 `yaml:"rate_limit"` // requests per second per client IP
	RateBurst int     `yaml:"rate_burst"`
}

func DefaultConfig() *Config {
	return &Config{
		DataDir:   DefaultDataDir,
		Precision: DefaultPrecision,
		LogLevel:  DefaultLogLevel,
		Plot: PlotConfig{
			Width:  DefaultPlotWidth,
			Height: DefaultPlotHeight,
		},
		Server: ServerConfig{
			Addr:      DefaultAddr,
			RateLimit: DefaultRateLimit,
			RateBurst: DefaultRateBurst,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Resolve builds the effective configuration: defaults, then the YAML file
// at path when non-empty, then variables from envFile (when present) and
// the process environment.
func Resolve(path, envFile string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		var err error
		if cfg, err = Load(path); err != nil {
			return nil, err
		}
	}
	if envFile != "" {
		// godotenv never overwrites variables that are already set.
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: %s: %w", envFile, err)
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ApplyEnv overrides fields from MECHSOLVER_* variables.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(EnvPrefix + key); ok && v != "" {
			*dst = v
		}
	}
	integer := func(key string, dst *int) error {
		v, ok := lookup(EnvPrefix + key)
		if !ok || v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: %s%s: %w", EnvPrefix, key, err)
		}
		*dst = n
		return nil
	}

	str("DATA_DIR", &c.DataDir)
	str("LOG_LEVEL", &c.LogLevel)
	str("ADDR", &c.Server.Addr)
	if err := integer("PRECISION", &c.Precision); err != nil {
		return err
	}
	if err := integer("RATE_BURST", &c.Server.RateBurst); err != nil {
		return err
	}
	if v, ok := lookup(EnvPrefix + "RATE_LIMIT"); ok && v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("config: %sRATE_LIMIT: %w", EnvPrefix, err)
		}
		c.Server.RateLimit = f
	}
	return nil
}

func (c *Config) Validate() error {
	switch {
	case c.Precision < 0 || c.Precision > 15:
		return fmt.Errorf("config: precision %d outside [0, 15]", c.Precision)
	case c.Plot.Width <= 0 || c.Plot.Height <= 0:
		return fmt.Errorf("config: plot size %dx%d must be positive", c.Plot.Width, c.Plot.Height)
	case c.Server.RateLimit <= 0 || c.Server.RateBurst <= 0:
		return fmt.Errorf("config: rate limit %g/%d must be positive", c.Server.RateLimit, c.Server.RateBurst)
	}
	return nil
}

// Preset looks up a named input set, preferring the config file's
// presets over the built-in ones.
func (c *Config) Preset(formula, name string) map[string]any {
	if args, ok := c.Presets[formula][name]; ok {
		return args
	}
	if p := GetPreset(formula, name); p != nil {
		return p.Args
	}
	return nil
}

// PresetNames merges file and built-in preset names for a formula.
func (c *Config) PresetNames(formula string) []string {
	seen := make(map[string]bool)
	for _, n := range ListPresets(formula) {
		seen[n] = true
	}
	for n := range c.Presets[formula] {
		seen[n] = true
	}
	return sortedKeys(seen)
}
