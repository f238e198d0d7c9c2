// Package config loads the uvpick configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/blackwell-systems/uvpick/internal/search"
	"github.com/blackwell-systems/uvpick/internal/terminal"
	"github.com/blackwell-systems/uvpick/internal/venv"
)

// Config holds the tunable knobs. Every field has a working default; the
// config file only overrides.
type Config struct {
	IndexURL string `yaml:"index_url"`

	// CandidateLimit caps the ranked candidate list.
	CandidateLimit int `yaml:"candidate_limit"`

	// DownloadExponent scales the normalized download score. 0.5 favors
	// breadth; higher values favor the popularity skew.
	DownloadExponent float64 `yaml:"download_exponent"`

	PollAttempts        int    `yaml:"poll_attempts"`
	PollIntervalSeconds int    `yaml:"poll_interval_seconds"`
	TerminalSession     string `yaml:"terminal_session"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		CandidateLimit:      search.DefaultLimit,
		DownloadExponent:    search.DefaultDownloadExponent,
		PollAttempts:        venv.DefaultPollAttempts,
		PollIntervalSeconds: int(venv.DefaultPollInterval / time.Second),
		TerminalSession:     terminal.DefaultSession,
	}
}

// DefaultPath returns ~/.uvpick/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(home, ".uvpick", "config.yaml"), nil
}

// Load reads the config file at path. A missing file yields the defaults;
// a malformed file is an error. Unset fields fall back to their defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	// Zero values from a sparse file fall back to defaults.
	def := Default()
	if cfg.CandidateLimit <= 0 {
		cfg.CandidateLimit = def.CandidateLimit
	}
	if cfg.DownloadExponent <= 0 {
		cfg.DownloadExponent = def.DownloadExponent
	}
	if cfg.PollAttempts <= 0 {
		cfg.PollAttempts = def.PollAttempts
	}
	if cfg.PollIntervalSeconds <= 0 {
		cfg.PollIntervalSeconds = def.PollIntervalSeconds
	}
	if cfg.TerminalSession == "" {
		cfg.TerminalSession = def.TerminalSession
	}

	return cfg, nil
}

// SearchOptions converts the config into ranking options.
func (c Config) SearchOptions() search.Options {
	return search.Options{
		Limit:            c.CandidateLimit,
		DownloadExponent: c.DownloadExponent,
	}
}

// PollInterval returns the poll interval as a duration.
func (c Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalSeconds) * time.Second
}
