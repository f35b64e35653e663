// Package config loads settings from an optional YAML file and
// MATEMAGICA_* environment variables, applies defaults and validates the
// result.
package config

import (
	"time"

	"github.com/matemagica/matemagica/internal/exercise"
	"github.com/matemagica/matemagica/internal/llm"
)

// Config holds all application configuration.
type Config struct {
	Log      LogConfig       `mapstructure:"log" validate:"required"`
	Database DatabaseConfig  `mapstructure:"database"`
	Server   ServerConfig    `mapstructure:"server" validate:"required"`
	Generate GenerateConfig  `mapstructure:"generate" validate:"required"`
	LLM      llm.Config      `mapstructure:"llm"`
	Policy   exercise.Policy `mapstructure:"policy"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"required,oneof=text json"`
}

type DatabaseConfig struct {
	// Path of the SQLite event log. Empty resolves to store.DefaultDBPath.
	Path string `mapstructure:"path"`

	// Disabled turns off LLM event recording.
	Disabled bool `mapstructure:"disabled"`
}

type ServerConfig struct {
	Addr         string        `mapstructure:"addr" validate:"required,hostname_port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout" validate:"gt=0"`
	WriteTimeout time.Duration `mapstructure:"write_timeout" validate:"gt=0"`
	// MaxCount caps the count accepted by the HTTP API.
	MaxCount int `mapstructure:"max_count" validate:"gt=0,lte=500"`
}

// GenerateConfig holds the defaults of the generate command.
type GenerateConfig struct {
	Operation string `mapstructure:"operation" validate:"required,operation"`
	Tier      string `mapstructure:"tier" validate:"required,tier"`
	Source    string `mapstructure:"source" validate:"required,source"`
	Count     int    `mapstructure:"count" validate:"gt=0,lte=500"`
}

// LLMEnabled reports whether a model provider is configured.
func (c *Config) LLMEnabled() bool {
	return c.LLM.Provider != ""
}

// Default returns the configuration used when nothing is overridden.
// The LLM provider is left empty so Load can discover one.
func Default() Config {
	l := llm.DefaultConfig()
	l.Provider = ""
	return Config{
		Log: LogConfig{Level: "info", Format: "text"},
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 45 * time.Second,
			MaxCount:     100,
		},
		Generate: GenerateConfig{
			Operation: string(exercise.OperationMixed),
			Tier:      string(exercise.TierEasy),
			Source:    string(exercise.SourceLocal),
			Count:     20,
		},
		LLM:    l,
		Policy: exercise.DefaultPolicy(),
	}
}
