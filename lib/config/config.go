// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// EnvironmentVariable names the config file when --config is absent.
const EnvironmentVariable = "TOKENROUTE_CONFIG"

// ErrorStrategy is what an interactive command does when a line fails
// to route. The router always returns the failure; this only decides
// whether the caller keeps going.
type ErrorStrategy string

const (
	// Continue reports the failure and reads the next line.
	Continue ErrorStrategy = "continue"
	// Abort stops at the first failure with a non-zero exit.
	Abort ErrorStrategy = "abort"
)

// Config is the tokenroute configuration.
type Config struct {
	// LogLevel is one of debug, info, warn, error. Default: info
	LogLevel string `yaml:"log_level" json:"log_level"`

	// OnError applies to line-oriented commands. Default: continue
	OnError ErrorStrategy `yaml:"on_error" json:"on_error"`

	// Prompt is printed before each line when stdin is a terminal.
	// Default: "> "
	Prompt string `yaml:"prompt" json:"prompt"`

	RPG       RPGConfig       `yaml:"rpg" json:"rpg"`
	Community CommunityConfig `yaml:"community" json:"community"`
	Journal   JournalConfig   `yaml:"journal" json:"journal"`
}

// RPGConfig configures the rpg command.
type RPGConfig struct {
	// Seed seeds the dice. Zero picks a random seed at startup.
	Seed uint64 `yaml:"seed" json:"seed"`

	// StateFile, when set, is restored at startup and saved on exit.
	StateFile string `yaml:"state_file" json:"state_file"`

	// Compression is the state file compression: none, lz4 or zstd.
	// Default: zstd
	Compression string `yaml:"compression" json:"compression"`

	// Spells and Wizards are loaded before the first line when no
	// state file exists yet. Values are mana.
	Spells  map[string]uint32 `yaml:"spells" json:"spells"`
	Wizards map[string]uint32 `yaml:"wizards" json:"wizards"`
}

// CommunityConfig configures the community command.
type CommunityConfig struct {
	// Listen is the serve address. Default: 127.0.0.1:8080
	Listen string `yaml:"listen" json:"listen"`

	// MetricsPath serves Prometheus metrics. Empty disables them.
	// Default: /metrics
	MetricsPath string `yaml:"metrics_path" json:"metrics_path"`

	// Conferences seed the in-memory store.
	Conferences []ConferenceConfig `yaml:"conferences" json:"conferences"`
}

// ConferenceConfig seeds one conference.
type ConferenceConfig struct {
	ID       string          `yaml:"id" json:"id"`
	Rooms    int             `yaml:"rooms" json:"rooms"`
	Speakers []SpeakerConfig `yaml:"speakers" json:"speakers"`
	Talks    []TalkConfig    `yaml:"talks" json:"talks"`
}

// SpeakerConfig seeds one speaker.
type SpeakerConfig struct {
	ID   string `yaml:"id" json:"id"`
	Name string `yaml:"name" json:"name"`
}

// TalkConfig seeds one talk. Room refers to a numbered room created
// by Rooms.
type TalkConfig struct {
	ID       string   `yaml:"id" json:"id"`
	Title    string   `yaml:"title" json:"title"`
	Room     string   `yaml:"room" json:"room"`
	Speakers []string `yaml:"speakers" json:"speakers"`
}

// JournalConfig configures dispatch journaling.
type JournalConfig struct {
	// Path, when set, appends every dispatched line to a journal.
	Path string `yaml:"path" json:"path"`
}

// Default returns the configuration used when no file is given, and
// the base that a loaded file is merged into.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		OnError:  Continue,
		Prompt:   "> ",
		RPG: RPGConfig{
			Compression: "zstd",
		},
		Community: CommunityConfig{
			Listen:      "127.0.0.1:8080",
			MetricsPath: "/metrics",
		},
	}
}

// LoadFromEnvironment loads the file named by TOKENROUTE_CONFIG. It
// fails if the variable is unset.
func LoadFromEnvironment() (*Config, error) {
	path := os.Getenv(EnvironmentVariable)
	if path == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of your tokenroute config file, or use --config", EnvironmentVariable)
	}
	return Load(path)
}

// Load reads the file at path over [Default] and validates it.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.decode(path, data); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	cfg.expandVariables()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) decode(path string, data []byte) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		return json.Unmarshal(jsonc.ToJSON(data), c)
	default:
		return yaml.Unmarshal(data, c)
	}
}

func (c *Config) expandVariables() {
	c.RPG.StateFile = expandVars(c.RPG.StateFile)
	c.Journal.Path = expandVars(c.Journal.Path)
}

// varPattern matches ${VAR} and ${VAR:-default}.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if value := os.Getenv(parts[1]); value != "" {
			return value
		}
		return parts[2]
	})
}

// Validate reports every invalid field.
func (c *Config) Validate() error {
	var errs []error

	logLevels := []string{"debug", "info", "warn", "error"}
	if !slices.Contains(logLevels, c.LogLevel) {
		errs = append(errs, fmt.Errorf("log_level must be one of: %v", logLevels))
	}

	if c.OnError != Continue && c.OnError != Abort {
		errs = append(errs, fmt.Errorf("on_error must be %q or %q, got %q", Continue, Abort, c.OnError))
	}

	compressions := []string{"none", "lz4", "zstd"}
	if !slices.Contains(compressions, c.RPG.Compression) {
		errs = append(errs, fmt.Errorf("rpg.compression must be one of: %v", compressions))
	}

	if c.Community.Listen == "" {
		errs = append(errs, errors.New("community.listen is required"))
	}
	if path := c.Community.MetricsPath; path != "" && !strings.HasPrefix(path, "/") {
		errs = append(errs, fmt.Errorf("community.metrics_path must start with /, got %q", path))
	}

	conferences := make(map[string]bool)
	for i, conference := range c.Community.Conferences {
		if conference.ID == "" {
			errs = append(errs, fmt.Errorf("community.conferences[%d].id is required", i))
		} else if conferences[conference.ID] {
			errs = append(errs, fmt.Errorf("community.conferences[%d]: duplicate id %q", i, conference.ID))
		}
		conferences[conference.ID] = true
		if conference.Rooms < 0 {
			errs = append(errs, fmt.Errorf("community.conferences[%d].rooms must not be negative", i))
		}
	}

	return errors.Join(errs...)
}
