// Package config loads the optional YAML settings file. Missing fields keep
// their defaults, so an empty or absent file is a valid configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where Load looks when no --config flag is given.
const DefaultPath = "beatcut.yaml"

type Config struct {
	OutputDir string `yaml:"output_dir"`
	CacheDir  string `yaml:"cache_dir"`

	// Tool paths. Bare names resolve through PATH.
	YtDlpPath   string `yaml:"yt_dlp_path"`
	WhisperPath string `yaml:"whisper_path"`

	// Whisper options.
	WhisperModel string `yaml:"whisper_model"`
	Language     string `yaml:"language"`

	// Beat segmentation bounds in seconds.
	MinBeatDuration float64 `yaml:"min_beat_duration"`
	MaxBeatDuration float64 `yaml:"max_beat_duration"`
	MinBeats        int     `yaml:"min_beats"`

	// Winner threshold for the research flow.
	ViewMultiplier float64 `yaml:"view_multiplier"`
}

func defaultConfig() *Config {
	return &Config{
		OutputDir:       "output",
		CacheDir:        ".cache",
		YtDlpPath:       "yt-dlp",
		WhisperPath:     "whisper",
		WhisperModel:    "base",
		Language:        "",
		MinBeatDuration: 15,
		MaxBeatDuration: 30,
		MinBeats:        3,
		ViewMultiplier:  5.0,
	}
}

// Load reads the YAML file at path and overlays it on the defaults. A missing
// file at the default path is not an error; an explicitly named missing file is.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			cfg.normalize()
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) normalize() {
	c.OutputDir = filepath.Clean(strings.TrimSpace(c.OutputDir))
	c.CacheDir = filepath.Clean(strings.TrimSpace(c.CacheDir))
	if c.OutputDir == "." || c.OutputDir == "" {
		c.OutputDir = "output"
	}
	if c.CacheDir == "." || c.CacheDir == "" {
		c.CacheDir = ".cache"
	}
	c.YtDlpPath = strings.TrimSpace(c.YtDlpPath)
	if c.YtDlpPath == "" {
		c.YtDlpPath = "yt-dlp"
	}
	c.WhisperPath = strings.TrimSpace(c.WhisperPath)
	if c.WhisperPath == "" {
		c.WhisperPath = "whisper"
	}
	c.WhisperModel = strings.TrimSpace(c.WhisperModel)
	if c.WhisperModel == "" {
		c.WhisperModel = "base"
	}
	if c.ViewMultiplier <= 0 {
		c.ViewMultiplier = 5.0
	}
}

func (c *Config) Validate() error {
	if c.MinBeatDuration <= 0 {
		return fmt.Errorf("min_beat_duration must be > 0")
	}
	if c.MaxBeatDuration <= 0 {
		return fmt.Errorf("max_beat_duration must be > 0")
	}
	if c.MinBeatDuration > c.MaxBeatDuration {
		return fmt.Errorf("min_beat_duration must be <= max_beat_duration")
	}
	if c.MinBeats <= 0 {
		return fmt.Errorf("min_beats must be > 0")
	}
	return nil
}
