// ABOUTME: Configuration file for the yomu reader CLI, stored as TOML
// ABOUTME: Resolves $XDG_CONFIG_HOME/yomu/config.toml and fills defaults for missing keys

package cliconfig

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the reader's settings
type Config struct {
	APIURL string  `toml:"api_url"`
	Voice  string  `toml:"voice"`
	Speed  float64 `toml:"speed"`
	Repeat string  `toml:"repeat"`

	// Player is the command that plays an mp3 file, the file path is appended
	Player []string `toml:"player"`
}

// Default returns the built-in settings
func Default() Config {
	return Config{
		APIURL: "http://localhost:8000",
		Voice:  "ja-JP-Neural2-B",
		Speed:  1.0,
		Repeat: "none",
		Player: []string{"mpg123", "-q"},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/yomu/config.toml, falling back to ~/.config
func DefaultPath() (string, error) {
	if dir := strings.TrimSpace(os.Getenv("XDG_CONFIG_HOME")); dir != "" {
		return filepath.Join(dir, "yomu", "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", "yomu", "config.toml"), nil
}

// Load reads the file at path, or the default path when empty. A missing file yields defaults.
// It returns the resolved path and whether the file existed.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolved := strings.TrimSpace(path)
	if resolved == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, "", false, err
		}
		resolved = p
	}

	file, err := os.Open(resolved)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return &cfg, resolved, false, nil
	case err != nil:
		return nil, "", false, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	if err := toml.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, "", false, fmt.Errorf("parse config: %w", err)
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}
	return &cfg, resolved, true, nil
}

// Save writes cfg to path, creating the parent directory
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func (c *Config) normalize() {
	defaults := Default()
	c.APIURL = strings.TrimRight(strings.TrimSpace(c.APIURL), "/")
	if c.APIURL == "" {
		c.APIURL = defaults.APIURL
	}
	if strings.TrimSpace(c.Voice) == "" {
		c.Voice = defaults.Voice
	}
	if c.Speed == 0 {
		c.Speed = defaults.Speed
	}
	c.Repeat = strings.ToLower(strings.TrimSpace(c.Repeat))
	if c.Repeat == "" {
		c.Repeat = defaults.Repeat
	}
	if len(c.Player) == 0 {
		c.Player = defaults.Player
	}
}

// Validate checks the settings
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("api_url must be an http(s) URL, got %q", c.APIURL)
	}
	if c.Speed < 0.25 || c.Speed > 4.0 {
		return fmt.Errorf("speed must be between 0.25 and 4.0, got %v", c.Speed)
	}
	switch c.Repeat {
	case "none", "one", "all":
	default:
		return fmt.Errorf("repeat must be none, one or all, got %q", c.Repeat)
	}
	if len(c.Player) == 0 || strings.TrimSpace(c.Player[0]) == "" {
		return errors.New("player command is empty")
	}
	return nil
}
