package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. TRACKPOINT_SHOWN_POINTS=8.
const EnvPrefix = "TRACKPOINT"

// Config holds runtime configuration for the digitizer and its window.
// Fields may be loaded from a JSON file, overridden by environment variables
// and finally by command-line flags.
type Config struct {
	Debug    bool   `json:"debug" mapstructure:"debug"`
	LogLevel string `json:"log_level" mapstructure:"log_level"`

	// Acquisition display
	ShownPoints int    `json:"shown_points" mapstructure:"shown_points"` // recent points drawn over the current frame
	PointRadius int    `json:"point_radius" mapstructure:"point_radius"`
	LineWidth   int    `json:"line_width" mapstructure:"line_width"`
	Unit        string `json:"unit" mapstructure:"unit"`

	// Export
	CSVSeparator  string `json:"csv_separator" mapstructure:"csv_separator"`
	ExportSeconds bool   `json:"export_seconds" mapstructure:"export_seconds"`

	// Window
	DarkMode       bool `json:"dark_mode" mapstructure:"dark_mode"`
	ConfirmDiscard bool `json:"confirm_discard" mapstructure:"confirm_discard"`
	WindowWidth    int  `json:"window_width" mapstructure:"window_width"`
	WindowHeight   int  `json:"window_height" mapstructure:"window_height"`
	PlotWidth      int  `json:"plot_width" mapstructure:"plot_width"`
	PlotHeight     int  `json:"plot_height" mapstructure:"plot_height"`
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:          false,
		LogLevel:       "info",
		ShownPoints:    5,
		PointRadius:    5,
		LineWidth:      3,
		Unit:           "m",
		CSVSeparator:   ",",
		ExportSeconds:  true,
		DarkMode:       false,
		ConfirmDiscard: true,
		WindowWidth:    960,
		WindowHeight:   720,
		PlotWidth:      480,
		PlotHeight:     360,
	}
}

// validSeparator rejects separators that break CSV quoting or can appear in
// a formatted number.
func validSeparator(sep string) bool {
	if utf8.RuneCountInString(sep) != 1 {
		return false
	}
	r, _ := utf8.DecodeRuneInString(sep)
	if unicode.IsDigit(r) {
		return false
	}
	return !strings.ContainsRune("\"\n\r.-+eE", r)
}

// Validate clamps/normalizes values to safe ranges.
func (c *Config) Validate() error {
	d := DefaultConfig()
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "debug", "info", "warn", "error":
		c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	default:
		c.LogLevel = d.LogLevel
	}
	if c.ShownPoints < 0 {
		c.ShownPoints = d.ShownPoints
	}
	if c.PointRadius <= 0 {
		c.PointRadius = d.PointRadius
	}
	if c.LineWidth <= 0 {
		c.LineWidth = d.LineWidth
	}
	if strings.TrimSpace(c.Unit) == "" {
		c.Unit = d.Unit
	}
	if !validSeparator(c.CSVSeparator) {
		c.CSVSeparator = d.CSVSeparator
	}
	if c.WindowWidth < 320 {
		c.WindowWidth = d.WindowWidth
	}
	if c.WindowHeight < 240 {
		c.WindowHeight = d.WindowHeight
	}
	if c.PlotWidth < 100 {
		c.PlotWidth = d.PlotWidth
	}
	if c.PlotHeight < 100 {
		c.PlotHeight = d.PlotHeight
	}
	return nil
}

// SlogLevel maps LogLevel; Debug forces debug.
func (c *Config) SlogLevel() slog.Level {
	if c == nil {
		return slog.LevelInfo
	}
	if c.Debug {
		return slog.LevelDebug
	}
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Separator returns the CSV separator as a rune.
func (c *Config) Separator() rune {
	r, _ := utf8.DecodeRuneInString(c.CSVSeparator)
	if r == utf8.RuneError {
		return ','
	}
	return r
}

// Load reads configuration from the JSON file at path, layered over the
// defaults and under TRACKPOINT_* environment variables. A missing file is not
// an error. On decode error it returns defaults with the error.
func Load(path string) (*Config, error) {
	v := newViper()
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			v.SetConfigType("json")
			if err := v.ReadInConfig(); err != nil {
				return DefaultConfig(), fmt.Errorf("read config %s: %w", path, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), err
		}
	}
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("decode config: %w", err)
	}
	_ = cfg.Validate()
	return cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	d := DefaultConfig()
	v.SetDefault("debug", d.Debug)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("shown_points", d.ShownPoints)
	v.SetDefault("point_radius", d.PointRadius)
	v.SetDefault("line_width", d.LineWidth)
	v.SetDefault("unit", d.Unit)
	v.SetDefault("csv_separator", d.CSVSeparator)
	v.SetDefault("export_seconds", d.ExportSeconds)
	v.SetDefault("dark_mode", d.DarkMode)
	v.SetDefault("confirm_discard", d.ConfirmDiscard)
	v.SetDefault("window_width", d.WindowWidth)
	v.SetDefault("window_height", d.WindowHeight)
	v.SetDefault("plot_width", d.PlotWidth)
	v.SetDefault("plot_height", d.PlotHeight)
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	return v
}

// Save writes the configuration to the given path in JSON format.
func (c *Config) Save(path string) error {
	_ = c.Validate()
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}
