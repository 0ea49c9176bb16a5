package config

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/algoviz/internal/highlight"
	"github.com/san-kum/algoviz/internal/sequence"
)

const (
	DefaultAlgorithm = "bubble"
	DefaultSpeedMs   = 50
	DefaultLogLevel  = "info"
	MaxSpeedMs       = 2000
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Algorithm string `yaml:"algorithm"`
	Size      int    `yaml:"size"`
	MaxValue  int    `yaml:"max_value"`
	SpeedMs   int    `yaml:"speed_ms"`
	Language  string `yaml:"language"`
	Seed      int64  `yaml:"seed"`
	Array     string `yaml:"array,omitempty"`
	Preset    string `yaml:"preset,omitempty"`
	Target    int    `yaml:"target"`
	Audio     bool   `yaml:"audio"`
	LogFile   string `yaml:"log_file,omitempty"`
	LogLevel  string `yaml:"log_level"`
}

func DefaultConfig() *Config {
	return &Config{
		Algorithm: DefaultAlgorithm,
		Size:      sequence.DefaultSize,
		MaxValue:  sequence.DefaultMaxValue,
		SpeedMs:   DefaultSpeedMs,
		Language:  highlight.LangCpp,
		Preset:    "random",
		LogLevel:  DefaultLogLevel,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Size < sequence.MinSize || c.Size > sequence.MaxSize {
		return fmt.Errorf("%w: size %d outside [%d, %d]", ErrInvalidConfig, c.Size, sequence.MinSize, sequence.MaxSize)
	}
	if c.MaxValue < 1 {
		return fmt.Errorf("%w: max_value must be positive, got %d", ErrInvalidConfig, c.MaxValue)
	}
	if c.SpeedMs <= 0 || c.SpeedMs > MaxSpeedMs {
		return fmt.Errorf("%w: speed_ms %d outside [1, %d]", ErrInvalidConfig, c.SpeedMs, MaxSpeedMs)
	}
	if !validLanguage(c.Language) {
		return fmt.Errorf("%w: unknown language %q", ErrInvalidConfig, c.Language)
	}
	if c.Preset != "" && c.Array == "" && GetPreset(c.Preset) == nil {
		return fmt.Errorf("%w: unknown preset %q", ErrInvalidConfig, c.Preset)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log_level %q", ErrInvalidConfig, c.LogLevel)
	}
	return nil
}

func validLanguage(lang string) bool {
	for _, l := range highlight.Languages() {
		if l == lang {
			return true
		}
	}
	return false
}

// Rand returns a generator seeded from Seed, or from the clock when Seed
// is zero.
func (c *Config) Rand() *rand.Rand {
	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Values builds the initial sequence: a custom array wins over a preset,
// and a missing preset means random values.
func (c *Config) Values(r *rand.Rand) ([]int, error) {
	if c.Array != "" {
		return sequence.Parse(c.Array)
	}
	name := c.Preset
	if name == "" {
		name = "random"
	}
	p := GetPreset(name)
	if p == nil {
		return nil, fmt.Errorf("%w: unknown preset %q", ErrInvalidConfig, name)
	}
	return p.Generate(r, c.Size, c.MaxValue), nil
}
