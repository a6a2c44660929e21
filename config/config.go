// Package config loads and saves the huesort configuration file.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	colorful "github.com/lucasb-eyer/go-colorful"

	"huesort/detect"
	"huesort/model"
	"huesort/palette"
)

const fileName = "huesort.json"

type Config struct {
	ThemesDir    string            `json:"themes_dir"`
	HistoryFile  string            `json:"history_file"`
	MaxHistory   int               `json:"max_history"`
	DefaultMode  string            `json:"default_mode,omitempty"`
	HighCutoff   float64           `json:"high_cutoff"`
	MediumCutoff float64           `json:"medium_cutoff"`
	Sampler      string            `json:"sampler"`
	CustomThemes map[string]string `json:"custom_themes,omitempty"` // name -> #rrggbb
}

// DefaultPath returns the standard config file location
// (~/.config/huesort/huesort.json).
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "huesort", fileName), nil
}

func Default() Config {
	home, _ := os.UserHomeDir()
	return Config{
		ThemesDir:    filepath.Join(home, ".local", "share", "omarchy", "themes"),
		HistoryFile:  filepath.Join(home, ".local", "share", "huesort", "history.jsonl"),
		MaxHistory:   100,
		HighCutoff:   detect.DefaultHighCutoff,
		MediumCutoff: detect.DefaultMediumCutoff,
		Sampler:      string(detect.StrategyAverage),
	}
}

// Load reads the config at path, filling unset fields from Default. A
// missing file yields the defaults.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, err
	}
	defer f.Close()

	var cfg Config
	if err := json.NewDecoder(f).Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}

	def := Default()
	if cfg.ThemesDir == "" {
		cfg.ThemesDir = def.ThemesDir
	}
	if cfg.HistoryFile == "" {
		cfg.HistoryFile = def.HistoryFile
	}
	if cfg.MaxHistory <= 0 {
		cfg.MaxHistory = def.MaxHistory
	}
	if cfg.HighCutoff <= 0 {
		cfg.HighCutoff = def.HighCutoff
	}
	if cfg.MediumCutoff <= 0 {
		cfg.MediumCutoff = def.MediumCutoff
	}
	if cfg.MediumCutoff <= cfg.HighCutoff {
		log.Warnf("medium_cutoff %.1f must exceed high_cutoff %.1f; using defaults %.1f/%.1f",
			cfg.MediumCutoff, cfg.HighCutoff, def.HighCutoff, def.MediumCutoff)
		cfg.HighCutoff = def.HighCutoff
		cfg.MediumCutoff = def.MediumCutoff
	}
	if cfg.Sampler == "" {
		cfg.Sampler = def.Sampler
	}
	return cfg, nil
}

// Save writes cfg to path atomically.
func Save(cfg Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(cfg); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}

// Palette returns the built-in palette extended with the configured
// custom themes.
func (c Config) Palette() (*palette.Palette, error) {
	if len(c.CustomThemes) == 0 {
		return palette.Default(), nil
	}

	custom := make(map[string]model.RGB, len(c.CustomThemes))
	for name, hex := range c.CustomThemes {
		col, err := colorful.Hex(hex)
		if err != nil {
			return nil, fmt.Errorf("custom theme %q: %w", name, err)
		}
		r, g, b := col.RGB255()
		custom[name] = model.RGB{R: r, G: g, B: b}
	}
	return palette.Default().WithCustom(custom), nil
}
