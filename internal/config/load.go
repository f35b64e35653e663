package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/matemagica/matemagica/internal/exercise"
	"github.com/matemagica/matemagica/internal/llm"
)

const envPrefix = "MATEMAGICA"

// Load reads configuration. Environment variables take precedence over
// the file. With an empty path, matemagica.yaml is looked up in the XDG
// config directory and then the working directory; a missing file is
// not an error. An explicit path must exist.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("matemagica")
		v.SetConfigType("yaml")
		if dir, err := configDir(); err == nil {
			v.AddConfigPath(dir)
		}
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	cfg := Default()
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if !cfg.LLMEnabled() {
		discoverLLM(&cfg.LLM)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadDotEnv loads KEY=value pairs from path into the environment
// without overriding variables that are already set. A missing file is
// ignored.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// Validate checks struct tags, the exercise policy and, when a provider
// is selected, its credentials.
func Validate(cfg *Config) error {
	v, err := newValidator()
	if err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	if err := v.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	if err := cfg.Policy.Validate(); err != nil {
		return fmt.Errorf("config validation failed: policy: %w", err)
	}
	if cfg.LLMEnabled() {
		if err := cfg.LLM.Validate(); err != nil {
			return fmt.Errorf("config validation failed: llm: %w", err)
		}
	}
	return nil
}

// parsedTag is a struct tag validated by one of the exercise parsers.
type parsedTag struct {
	name  string
	parse func(string) error
}

var exerciseTags = []parsedTag{
	{"operation", func(s string) error { _, err := exercise.ParseOperation(s); return err }},
	{"tier", func(s string) error { _, err := exercise.ParseTier(s); return err }},
	{"source", func(s string) error { _, err := exercise.ParseSource(s); return err }},
}

func newValidator() (*validator.Validate, error) {
	v := validator.New()
	if err := registerTags(v, exerciseTags); err != nil {
		return nil, err
	}
	return v, nil
}

func registerTags(v *validator.Validate, tags []parsedTag) error {
	for _, t := range tags {
		err := v.RegisterValidation(t.name, func(fl validator.FieldLevel) bool {
			return t.parse(fl.Field().String()) == nil
		})
		if err != nil {
			return fmt.Errorf("register %q validation: %w", t.name, err)
		}
	}
	return nil
}

// discoverLLM falls back to the vendors' own API key variables when no
// provider was configured, keeping any model or retry settings.
func discoverLLM(c *llm.Config) {
	found, ok := llm.DiscoverConfig()
	if !ok {
		return
	}
	c.Provider = found.Provider
	switch found.Provider {
	case llm.ProviderGemini:
		c.Gemini.APIKey = found.Gemini.APIKey
	case llm.ProviderOpenAI:
		c.OpenAI.APIKey = found.OpenAI.APIKey
	case llm.ProviderAnthropic:
		c.Anthropic.APIKey = found.Anthropic.APIKey
	case llm.ProviderOpenRouter:
		c.OpenRouter.APIKey = found.OpenRouter.APIKey
	}
}

// setDefaults registers every scalar key so AutomaticEnv can override it
// during Unmarshal. Policy tables are file-only.
func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)

	v.SetDefault("database.path", d.Database.Path)
	v.SetDefault("database.disabled", d.Database.Disabled)

	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.read_timeout", d.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", d.Server.WriteTimeout)
	v.SetDefault("server.max_count", d.Server.MaxCount)

	v.SetDefault("generate.operation", d.Generate.Operation)
	v.SetDefault("generate.tier", d.Generate.Tier)
	v.SetDefault("generate.source", d.Generate.Source)
	v.SetDefault("generate.count", d.Generate.Count)

	v.SetDefault("llm.provider", d.LLM.Provider)
	v.SetDefault("llm.timeout", d.LLM.Timeout)
	v.SetDefault("llm.gemini.api_key", "")
	v.SetDefault("llm.gemini.model", d.LLM.Gemini.Model)
	v.SetDefault("llm.openai.api_key", "")
	v.SetDefault("llm.openai.model", d.LLM.OpenAI.Model)
	v.SetDefault("llm.openai.base_url", "")
	v.SetDefault("llm.openrouter.api_key", "")
	v.SetDefault("llm.openrouter.model", d.LLM.OpenRouter.Model)
	v.SetDefault("llm.openrouter.base_url", "")
	v.SetDefault("llm.anthropic.api_key", "")
	v.SetDefault("llm.anthropic.model", d.LLM.Anthropic.Model)
	v.SetDefault("llm.retry.max_attempts", d.LLM.Retry.MaxAttempts)
	v.SetDefault("llm.retry.initial_wait", d.LLM.Retry.InitialWait)
	v.SetDefault("llm.retry.max_wait", d.LLM.Retry.MaxWait)
	v.SetDefault("llm.retry.multiplier", d.LLM.Retry.Multiplier)

	v.SetDefault("policy.max_attempts", d.Policy.MaxAttempts)
}

func configDir() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "matemagica"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "matemagica"), nil
}
