package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pelletier/go-toml/v2"

	"atelier/internal/carousel"
)

// EnvPrefix prefixes environment overrides. Nested keys use a double
// underscore: ATELIER_CAROUSEL__COOLDOWN_MS=300.
const EnvPrefix = "ATELIER_"

// Config represents the application configuration
type Config struct {
	Carousel CarouselConfig `koanf:"carousel" toml:"carousel"`
	Display  DisplayConfig  `koanf:"display" toml:"display"`
	Catalog  CatalogConfig  `koanf:"catalog" toml:"catalog"`
	Log      LogConfig      `koanf:"log" toml:"log"`
}

// CarouselConfig tunes gesture handling. Touch values apply when the
// display is classified as a coarse pointer.
type CarouselConfig struct {
	WheelThreshold  float64 `koanf:"wheel_threshold" toml:"wheel_threshold"`
	TouchThreshold  float64 `koanf:"touch_threshold" toml:"touch_threshold"`
	CooldownMS      int     `koanf:"cooldown_ms" toml:"cooldown_ms"`
	TouchCooldownMS int     `koanf:"touch_cooldown_ms" toml:"touch_cooldown_ms"`
	SettleDelayMS   int     `koanf:"settle_delay_ms" toml:"settle_delay_ms"`
	ExitDelayMS     int     `koanf:"exit_delay_ms" toml:"exit_delay_ms"`
}

// DisplayConfig describes the terminal and the page around the gallery
type DisplayConfig struct {
	ReducedMotion bool `koanf:"reduced_motion" toml:"reduced_motion"`
	CoarsePointer bool `koanf:"coarse_pointer" toml:"coarse_pointer"`
	// WheelDelta is the gesture magnitude of one wheel notch.
	WheelDelta float64 `koanf:"wheel_delta" toml:"wheel_delta"`
	// RowUnits is the gesture magnitude of dragging across one terminal row.
	RowUnits   float64 `koanf:"row_units" toml:"row_units"`
	ScrollStep int     `koanf:"scroll_step" toml:"scroll_step"`
	Title      string  `koanf:"title" toml:"title"`
	Tagline    string  `koanf:"tagline" toml:"tagline"`
	About      string  `koanf:"about" toml:"about"`
	ShowIntro  bool    `koanf:"show_intro" toml:"show_intro"`
	ShowAbout  bool    `koanf:"show_about" toml:"show_about"`
}

// CatalogConfig locates the artwork database and its optional seed file
type CatalogConfig struct {
	DataDir string `koanf:"data_dir" toml:"data_dir"`
	Seed    string `koanf:"seed" toml:"seed"`
	Watch   bool   `koanf:"watch" toml:"watch"`
}

// LogConfig controls the log file
type LogConfig struct {
	Level string `koanf:"level" toml:"level"`
	File  string `koanf:"file" toml:"file"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}

	return &Config{
		Carousel: CarouselConfig{
			WheelThreshold:  60,
			TouchThreshold:  45,
			CooldownMS:      450,
			TouchCooldownMS: 350,
			SettleDelayMS:   350,
			ExitDelayMS:     120,
		},
		Display: DisplayConfig{
			WheelDelta: 100,
			RowUnits:   16,
			ScrollStep: 3,
			Title:      "Atelier",
			Tagline:    "Paintings, drawings and built work",
			About:      "Commissions and studio visits by appointment.",
			ShowIntro:  true,
			ShowAbout:  true,
		},
		Catalog: CatalogConfig{
			DataDir: filepath.Join(homeDir, ".atelier"),
			Watch:   true,
		},
		Log: LogConfig{
			Level: "info",
			File:  "atelier.log",
		},
	}
}

// DefaultPath is where Load looks when no path is given.
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = "."
	}
	return filepath.Join(configDir, "atelier", "config.toml")
}

// Load reads configuration from the given TOML file, then overlays
// environment variable overrides (ATELIER_*). A missing file is not an error.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), TOMLParser{}); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// envKey maps ATELIER_DISPLAY__REDUCED_MOTION to display.reduced_motion.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// Save writes the configuration to the given TOML file path.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains usable values.
func (c *Config) Validate() error {
	cc := c.Carousel
	if cc.WheelThreshold <= 0 {
		return fmt.Errorf("carousel.wheel_threshold must be positive")
	}
	if cc.TouchThreshold <= 0 {
		return fmt.Errorf("carousel.touch_threshold must be positive")
	}
	if cc.CooldownMS < 0 || cc.TouchCooldownMS < 0 {
		return fmt.Errorf("carousel cooldowns must be non-negative")
	}
	if cc.SettleDelayMS < 0 || cc.ExitDelayMS < 0 {
		return fmt.Errorf("carousel delays must be non-negative")
	}
	if c.Display.WheelDelta <= 0 {
		return fmt.Errorf("display.wheel_delta must be positive")
	}
	if c.Display.RowUnits <= 0 {
		return fmt.Errorf("display.row_units must be positive")
	}
	if c.Display.ScrollStep < 1 {
		return fmt.Errorf("display.scroll_step must be at least 1")
	}
	if c.Catalog.DataDir == "" {
		return fmt.Errorf("catalog.data_dir is required")
	}
	return nil
}

// CarouselSettings resolves the carousel configuration once, including the
// display classification.
func (c *Config) CarouselSettings() carousel.Config {
	ms := func(n int) time.Duration { return time.Duration(n) * time.Millisecond }
	return carousel.Config{
		ReducedMotion:  c.Display.ReducedMotion,
		CoarsePointer:  c.Display.CoarsePointer,
		WheelThreshold: c.Carousel.WheelThreshold,
		TouchThreshold: c.Carousel.TouchThreshold,
		Cooldown:       ms(c.Carousel.CooldownMS),
		TouchCooldown:  ms(c.Carousel.TouchCooldownMS),
		SettleDelay:    ms(c.Carousel.SettleDelayMS),
		ExitDelay:      ms(c.Carousel.ExitDelayMS),
	}
}

// LogPath resolves the log file relative to the data directory.
func (c *Config) LogPath() string {
	if c.Log.File == "" || filepath.IsAbs(c.Log.File) {
		return c.Log.File
	}
	return filepath.Join(c.Catalog.DataDir, c.Log.File)
}
