// Copyright 2026 The structbotopt Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/YushiOMOTE/structbotopt/lib/cmdschema"
)

// EnvironmentVariable names the variable [Load] reads the config path
// from.
const EnvironmentVariable = "STRUCTBOT_CONFIG"

// Environment represents the deployment environment.
type Environment string

const (
	// Development is for local experimentation.
	Development Environment = "development"
	// Staging is for pre-production bots.
	Staging Environment = "staging"
	// Production is for bots serving real chat rooms.
	Production Environment = "production"
)

// Log formats accepted by LogConfig.Format.
const (
	FormatAuto = "auto"
	FormatText = "text"
	FormatJSON = "json"
)

// Config is the master configuration.
type Config struct {
	// Environment identifies the deployment type.
	Environment Environment `yaml:"environment" json:"environment"`

	// Log configures the structured logger.
	Log LogConfig `yaml:"log" json:"log"`

	// Chat configures how replies are produced and previewed.
	Chat ChatConfig `yaml:"chat" json:"chat"`

	// Commands are the chat commands the bot answers, each a root
	// command tree.
	Commands []cmdschema.CommandDecl `yaml:"commands" json:"commands"`

	// Per-environment overrides, applied after the base config is
	// loaded.
	Development *ConfigOverrides `yaml:"development,omitempty" json:"development,omitempty"`
	Staging     *ConfigOverrides `yaml:"staging,omitempty" json:"staging,omitempty"`
	Production  *ConfigOverrides `yaml:"production,omitempty" json:"production,omitempty"`
}

// ConfigOverrides contains fields that can be overridden per environment.
type ConfigOverrides struct {
	Log  *LogConfig  `yaml:"log,omitempty" json:"log,omitempty"`
	Chat *ChatConfig `yaml:"chat,omitempty" json:"chat,omitempty"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is debug, info, warn, or error.
	// Default: info
	Level string `yaml:"level" json:"level"`

	// Format is text, json, or auto (text on a terminal, JSON
	// otherwise).
	// Default: auto
	Format string `yaml:"format" json:"format"`
}

// ChatConfig configures reply rendering.
type ChatConfig struct {
	// Color makes validators colorize diagnostics. Colored words turn
	// into code spans in the markdown reply.
	// Default: true
	Color bool `yaml:"color" json:"color"`

	// Width is the terminal preview width in columns. Zero means the
	// terminal's width, or 80 when it cannot be determined.
	Width int `yaml:"width" json:"width"`
}

// Default returns the default configuration: development settings and
// a single demo command.
func Default() *Config {
	return &Config{
		Environment: Development,
		Log: LogConfig{
			Level:  "info",
			Format: FormatAuto,
		},
		Chat: ChatConfig{
			Color: true,
		},
		Commands: []cmdschema.CommandDecl{demoCommand()},
	}
}

// demoCommand is answered when no config file declares commands.
func demoCommand() cmdschema.CommandDecl {
	return cmdschema.CommandDecl{
		Name:        "deploy",
		Summary:     "Deploy a service",
		Description: "Deploy a service to an environment, or inspect past deploys.",
		Version:     "0.1.0",
		Flags: []cmdschema.FlagDecl{
			{Name: "verbose", Short: "v", Type: cmdschema.FlagBool, Usage: "Report every step"},
			{Name: "env", Short: "e", Default: "staging", Usage: "Target `environment`"},
		},
		Subcommands: []cmdschema.CommandDecl{
			{
				Name:    "run",
				Summary: "Start a deploy",
				Flags: []cmdschema.FlagDecl{
					{Name: "wait", Type: cmdschema.FlagDuration, Default: "5m", Usage: "How long to wait for health checks"},
					{Name: "dry-run", Type: cmdschema.FlagBool, Usage: "Show the plan without deploying"},
				},
				Args: []cmdschema.ArgDecl{
					{Name: "service", Summary: "Service to deploy", Required: true},
					{Name: "revision", Summary: "Revision to deploy (default: latest)"},
				},
			},
			{
				Name:    "history",
				Summary: "List recent deploys",
				Flags: []cmdschema.FlagDecl{
					{Name: "limit", Short: "n", Type: cmdschema.FlagInt, Default: "10", Usage: "Number of entries"},
				},
				Args: []cmdschema.ArgDecl{
					{Name: "service", Summary: "Only this service"},
				},
			},
		},
	}
}

// Load loads configuration from the file named by STRUCTBOT_CONFIG.
// It fails if the variable is not set; callers that want defaults use
// [Default] explicitly.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvironmentVariable)
	if configPath == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of your structbot config file, or use --config flag", EnvironmentVariable)
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path, applies the
// overrides for the configured environment, and validates the result.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if err := cfg.loadFile(path); err != nil {
		return nil, fmt.Errorf("loading config %s: %w", path, err)
	}

	cfg.applyEnvironmentOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// loadFile decodes a single configuration file into c.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		decoder := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
		decoder.DisallowUnknownFields()
		return decoder.Decode(c)
	default:
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		err := decoder.Decode(c)
		if errors.Is(err, io.EOF) {
			// An empty file keeps the defaults.
			return nil
		}
		return err
	}
}

// applyEnvironmentOverrides applies the environment-specific overrides.
func (c *Config) applyEnvironmentOverrides() {
	var overrides *ConfigOverrides

	switch c.Environment {
	case Development:
		overrides = c.Development
	case Staging:
		overrides = c.Staging
	case Production:
		overrides = c.Production
		// Production defaults: machine-readable, quieter logs.
		if overrides == nil {
			overrides = &ConfigOverrides{
				Log: &LogConfig{
					Level:  "warn",
					Format: FormatJSON,
				},
			}
		}
	}

	if overrides == nil {
		return
	}

	if overrides.Log != nil {
		if overrides.Log.Level != "" {
			c.Log.Level = overrides.Log.Level
		}
		if overrides.Log.Format != "" {
			c.Log.Format = overrides.Log.Format
		}
	}

	if overrides.Chat != nil {
		// Color is a bool, so we always apply it from overrides.
		c.Chat.Color = overrides.Chat.Color
		if overrides.Chat.Width != 0 {
			c.Chat.Width = overrides.Chat.Width
		}
	}
}

// LogLevel returns the configured level. Validate has already rejected
// unparseable levels; anything else falls back to info.
func (c *Config) LogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// BuildCommands builds every declared command tree.
func (c *Config) BuildCommands() ([]*cmdschema.Command, error) {
	commands := make([]*cmdschema.Command, 0, len(c.Commands))
	var errs []error
	for _, decl := range c.Commands {
		command, err := decl.Build()
		if err != nil {
			errs = append(errs, err)
			continue
		}
		commands = append(commands, command)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return commands, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.Environment != Development && c.Environment != Staging && c.Environment != Production {
		errs = append(errs, fmt.Errorf("invalid environment: %s", c.Environment))
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		errs = append(errs, fmt.Errorf("invalid log.level %q", c.Log.Level))
	}

	switch c.Log.Format {
	case FormatAuto, FormatText, FormatJSON:
	default:
		errs = append(errs, fmt.Errorf("invalid log.format %q (want auto, text, or json)", c.Log.Format))
	}

	if c.Chat.Width < 0 {
		errs = append(errs, fmt.Errorf("chat.width must not be negative, got %d", c.Chat.Width))
	}

	if len(c.Commands) == 0 {
		errs = append(errs, fmt.Errorf("at least one command is required"))
	}
	seen := make(map[string]bool)
	for _, decl := range c.Commands {
		if seen[decl.Name] {
			errs = append(errs, fmt.Errorf("duplicate command %q", decl.Name))
		}
		seen[decl.Name] = true
	}
	if _, err := c.BuildCommands(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}
