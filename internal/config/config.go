// Package config loads and saves player preferences from a TOML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/SeamusWaldron/thecube/internal/cube"
	"github.com/SeamusWaldron/thecube/internal/logging"
	"github.com/SeamusWaldron/thecube/internal/notation"
	"github.com/SeamusWaldron/thecube/internal/storage"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid preference")

// Preference ranges.
const (
	MinScrambleLength  = 20
	MaxScrambleLength  = 30
	ScrambleLengthStep = 5
	MinFOV             = 2
	MaxFOV             = 45
	MaxFlipConfig      = 2
)

// Preferences are the player's settings.
type Preferences struct {
	FlipConfig     int
	ScrambleLength int
	FOV            float64
	Theme          string
	Notation       notation.Policy
	Storage        storage.Backend
	DBPath         string
	LogLevel       string
}

// Default returns the built-in preferences.
func Default() Preferences {
	return Preferences{
		FlipConfig:     0,
		ScrambleLength: 20,
		FOV:            10,
		Theme:          cube.DefaultTheme,
		Notation:       notation.Strict,
		Storage:        storage.BackendSQLite,
		LogLevel:       "info",
	}
}

type fileConfig struct {
	Flip     int     `toml:"flip"`
	Scramble int     `toml:"scramble"`
	FOV      float64 `toml:"fov"`
	Theme    string  `toml:"theme"`
	Notation string  `toml:"notation"`
	Storage  string  `toml:"storage"`
	DBPath   string  `toml:"db_path"`
	LogLevel string  `toml:"log_level"`
}

// DefaultPath returns ~/.thecube/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".thecube", "config.toml"), nil
}

// Load reads path over the defaults. Keys missing from the file keep their
// default values. A missing file yields the defaults.
func Load(path string) (Preferences, error) {
	prefs := Default()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if errors.Is(err, fs.ErrNotExist) {
		return prefs, nil
	}
	if err != nil {
		return Preferences{}, fmt.Errorf("load preferences: %w", err)
	}

	if meta.IsDefined("flip") {
		prefs.FlipConfig = raw.Flip
	}
	if meta.IsDefined("scramble") {
		prefs.ScrambleLength = raw.Scramble
	}
	if meta.IsDefined("fov") {
		prefs.FOV = raw.FOV
	}
	if meta.IsDefined("theme") {
		prefs.Theme = strings.ToLower(strings.TrimSpace(raw.Theme))
	}
	if meta.IsDefined("notation") {
		p, err := notation.ParsePolicy(raw.Notation)
		if err != nil {
			return Preferences{}, fmt.Errorf("%w: notation: %v", ErrInvalid, err)
		}
		prefs.Notation = p
	}
	if meta.IsDefined("storage") {
		b, err := storage.ParseBackend(raw.Storage)
		if err != nil {
			return Preferences{}, fmt.Errorf("%w: storage: %v", ErrInvalid, err)
		}
		prefs.Storage = b
	}
	if meta.IsDefined("db_path") {
		prefs.DBPath = strings.TrimSpace(raw.DBPath)
	}
	if meta.IsDefined("log_level") {
		prefs.LogLevel = strings.TrimSpace(raw.LogLevel)
	}

	if err := prefs.Validate(); err != nil {
		return Preferences{}, err
	}
	return prefs, nil
}

// Validate checks every preference against its allowed range.
func (p Preferences) Validate() error {
	if p.FlipConfig < 0 || p.FlipConfig > MaxFlipConfig {
		return fmt.Errorf("%w: flip %d not in 0..%d", ErrInvalid, p.FlipConfig, MaxFlipConfig)
	}
	if p.ScrambleLength < MinScrambleLength || p.ScrambleLength > MaxScrambleLength ||
		(p.ScrambleLength-MinScrambleLength)%ScrambleLengthStep != 0 {
		return fmt.Errorf("%w: scramble %d not one of 20, 25, 30", ErrInvalid, p.ScrambleLength)
	}
	if p.FOV < MinFOV || p.FOV > MaxFOV {
		return fmt.Errorf("%w: fov %g not in %d..%d", ErrInvalid, p.FOV, MinFOV, MaxFOV)
	}
	if _, ok := cube.Themes[p.Theme]; !ok {
		return fmt.Errorf("%w: theme %q not one of %s", ErrInvalid, p.Theme, strings.Join(cube.ThemeNames(), ", "))
	}
	if _, err := storage.ParseBackend(string(p.Storage)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if _, err := logging.ParseLevel(p.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// Save writes p to path, creating the directory if needed.
func Save(path string, p Preferences) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}
	defer f.Close()

	raw := fileConfig{
		Flip:     p.FlipConfig,
		Scramble: p.ScrambleLength,
		FOV:      p.FOV,
		Theme:    p.Theme,
		Notation: p.Notation.String(),
		Storage:  string(p.Storage),
		DBPath:   p.DBPath,
		LogLevel: p.LogLevel,
	}
	if err := toml.NewEncoder(f).Encode(raw); err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}
	return nil
}
