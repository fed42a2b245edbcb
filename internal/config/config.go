// Package config loads and validates the tuiwin configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Gaurav-Gosain/tuiwin/internal/geometry"
	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
	"github.com/pelletier/go-toml/v2"
)

// Rendering constants.
const (
	NormalFPS       = 60
	StatusBarHeight = 1
	DockHeight      = 1
)

// ErrInvalid is wrapped by every error Validate returns.
var ErrInvalid = errors.New("invalid configuration")

// Config is the on-disk configuration.
type Config struct {
	Window      WindowConfig      `toml:"window"`
	Appearance  AppearanceConfig  `toml:"appearance"`
	Keybindings KeybindingsConfig `toml:"keybindings"`
	Web         WebConfig         `toml:"web"`
	SSH         SSHConfig         `toml:"ssh"`
	Log         LogConfig         `toml:"log"`
}

// WindowConfig seeds the terminal window geometry, in cells. A zero maximum
// axis falls back to the terminal size.
type WindowConfig struct {
	X         int `toml:"x"`
	Y         int `toml:"y"`
	Width     int `toml:"width"`
	Height    int `toml:"height"`
	MinWidth  int `toml:"min_width"`
	MinHeight int `toml:"min_height"`
	MaxWidth  int `toml:"max_width"`
	MaxHeight int `toml:"max_height"`
}

// AppearanceConfig controls colors and text.
type AppearanceConfig struct {
	Theme         string `toml:"theme"`
	Title         string `toml:"title"`
	ShowStatusBar bool   `toml:"show_status_bar"`
}

// KeybindingsConfig maps actions to the keys that trigger them.
type KeybindingsConfig struct {
	Actions map[string][]string `toml:"actions"`
}

// WebConfig configures the browser front end.
type WebConfig struct {
	Address string `toml:"address"`
}

// SSHConfig configures the SSH front end.
type SSHConfig struct {
	Address     string `toml:"address"`
	HostKeyPath string `toml:"host_key_path"`
}

// LogConfig configures the default logger.
type LogConfig struct {
	Level string `toml:"level"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			X:         4,
			Y:         2,
			Width:     48,
			Height:    14,
			MinWidth:  20,
			MinHeight: 6,
		},
		Appearance: AppearanceConfig{
			Title:         "tuiwin",
			ShowStatusBar: true,
		},
		Keybindings: KeybindingsConfig{
			Actions: defaultActions(),
		},
		Web: WebConfig{
			Address: "localhost:7681",
		},
		SSH: SSHConfig{
			Address:     "localhost:2222",
			HostKeyPath: ".ssh/tuiwin_ed25519",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// GetConfigPath returns the user config file path, creating its directory.
func GetConfigPath() (string, error) {
	return xdg.ConfigFile(filepath.Join("tuiwin", "config.toml"))
}

// LoadUserConfig loads the user config file, writing the defaults first if
// it does not exist yet.
func LoadUserConfig() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		cfg := DefaultConfig()
		if err := Save(path, cfg); err != nil {
			log.Warn("could not write default config", "path", path, "err", err)
		}
		return cfg, nil
	}
	return Load(path)
}

// Load reads path and overlays it on the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes TOML data over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg to path as TOML.
func Save(path string, cfg *Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Validate reports settings that would break the window geometry.
func (c *Config) Validate() error {
	var errs []error
	w := c.Window
	if w.Width <= 0 || w.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", w.Width, w.Height))
	}
	if w.X < 0 || w.Y < 0 {
		errs = append(errs, fmt.Errorf("window position %d,%d must not be negative", w.X, w.Y))
	}
	if w.MinWidth < 0 || w.MinHeight < 0 || w.MaxWidth < 0 || w.MaxHeight < 0 {
		errs = append(errs, errors.New("window limits must not be negative"))
	}
	if w.MaxWidth > 0 && w.MinWidth > w.MaxWidth {
		errs = append(errs, fmt.Errorf("min_width %d exceeds max_width %d", w.MinWidth, w.MaxWidth))
	}
	if w.MaxHeight > 0 && w.MinHeight > w.MaxHeight {
		errs = append(errs, fmt.Errorf("min_height %d exceeds max_height %d", w.MinHeight, w.MaxHeight))
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log level %q: %w", c.Log.Level, err))
	}
	normalizer := NewKeyNormalizer()
	for action, keys := range c.Keybindings.Actions {
		if _, ok := ActionDescriptions[action]; !ok {
			errs = append(errs, fmt.Errorf("unknown action %q", action))
		}
		for _, key := range keys {
			if ok, reason := normalizer.ValidateKey(key); !ok {
				errs = append(errs, fmt.Errorf("action %q: %s", action, reason))
			}
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
}

// LogLevel returns the configured level, info when unparsable.
func (c *Config) LogLevel() log.Level {
	level, err := log.ParseLevel(strings.ToLower(c.Log.Level))
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// MinSize and MaxSize return the configured limits.
func (w WindowConfig) MinSize() geometry.Size {
	return geometry.Size{Width: w.MinWidth, Height: w.MinHeight}
}

func (w WindowConfig) MaxSize() geometry.Size {
	return geometry.Size{Width: w.MaxWidth, Height: w.MaxHeight}
}

// GeometryOptions builds manager options for the configured window.
func (c *Config) GeometryOptions() geometry.Options {
	w := c.Window
	return geometry.Options{
		InitialPosition: geometry.Point{X: w.X, Y: w.Y},
		InitialSize:     geometry.Size{Width: w.Width, Height: w.Height},
		MinSize:         w.MinSize(),
		MaxSize:         w.MaxSize(),
	}
}
