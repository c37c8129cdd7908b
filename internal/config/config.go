package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"

	DefaultGeminiModel = "gemini-2.5-flash"
	DefaultOpenAIModel = "llama-3.3-70b-versatile"
	DefaultOpenAIURL   = "https://api.groq.com/openai/v1"
	DefaultTimeout     = 60 * time.Second

	// LogDisabled as JIMBRO_LOG_PATH turns file logging off.
	LogDisabled = "-"
)

type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
	AI       AIConfig       `yaml:"ai"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Path  string `yaml:"path"`
	Level string `yaml:"level"`
}

type AIConfig struct {
	Provider string   `yaml:"provider"`
	Model    string   `yaml:"model"`
	APIKey   string   `yaml:"api_key"`
	BaseURL  string   `yaml:"base_url"`
	Timeout  Duration `yaml:"timeout"`
}

// Duration reads YAML strings such as "45s" or "2m".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) Std() time.Duration { return time.Duration(d) }

// DefaultPath is ~/.jimbro.yaml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".jimbro.yaml"
	}
	return filepath.Join(home, ".jimbro.yaml")
}

// Defaults returns the configuration used when no file is present.
func Defaults() *Config {
	cfg := &Config{
		Log: LogConfig{Level: "info"},
		AI: AIConfig{
			Provider: ProviderGemini,
			Timeout:  Duration(DefaultTimeout),
		},
	}
	if home, err := os.UserHomeDir(); err == nil {
		cfg.Database.Path = filepath.Join(home, ".jimbro.db")
		cfg.Log.Path = filepath.Join(home, ".jimbro.log")
	} else {
		cfg.Database.Path = ".jimbro.db"
		cfg.Log.Path = ".jimbro.log"
	}
	return cfg
}

// Load reads config from a YAML file on top of Defaults, then applies
// environment variable overrides. A missing file is not an error.
// Env vars use the prefix JIMBRO_:
//
//	JIMBRO_DB_PATH, JIMBRO_LOG_PATH, JIMBRO_LOG_LEVEL,
//	JIMBRO_AI_PROVIDER, JIMBRO_AI_MODEL, JIMBRO_AI_BASE_URL,
//	JIMBRO_AI_TIMEOUT, JIMBRO_AI_API_KEY
//
// The API key also falls back to GEMINI_API_KEY and API_KEY.
// JIMBRO_LOG_PATH=- turns file logging off, like log.path: "" in YAML.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("reading config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	cfg.applyProviderDefaults()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("JIMBRO_DB_PATH"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("JIMBRO_LOG_PATH"); v == LogDisabled {
		cfg.Log.Path = ""
	} else if v != "" {
		cfg.Log.Path = v
	}
	if v := os.Getenv("JIMBRO_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("JIMBRO_AI_PROVIDER"); v != "" {
		cfg.AI.Provider = v
	}
	if v := os.Getenv("JIMBRO_AI_MODEL"); v != "" {
		cfg.AI.Model = v
	}
	if v := os.Getenv("JIMBRO_AI_BASE_URL"); v != "" {
		cfg.AI.BaseURL = v
	}
	if v := os.Getenv("JIMBRO_AI_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("JIMBRO_AI_TIMEOUT: %w", err)
		}
		cfg.AI.Timeout = Duration(d)
	}
	if v := os.Getenv("JIMBRO_AI_API_KEY"); v != "" {
		cfg.AI.APIKey = v
	}
	if cfg.AI.APIKey == "" {
		cfg.AI.APIKey = firstEnv("GEMINI_API_KEY", "API_KEY")
	}
	return nil
}

func (c *Config) applyProviderDefaults() {
	c.AI.Provider = strings.ToLower(strings.TrimSpace(c.AI.Provider))
	switch c.AI.Provider {
	case ProviderGemini:
		if c.AI.Model == "" {
			c.AI.Model = DefaultGeminiModel
		}
	case ProviderOpenAI:
		if c.AI.Model == "" {
			c.AI.Model = DefaultOpenAIModel
		}
		if c.AI.BaseURL == "" {
			c.AI.BaseURL = DefaultOpenAIURL
		}
	}
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}

func (c *Config) validate() error {
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	switch c.AI.Provider {
	case ProviderGemini, ProviderOpenAI:
	default:
		return fmt.Errorf("ai.provider %q is not one of %s, %s", c.AI.Provider, ProviderGemini, ProviderOpenAI)
	}
	if c.AI.Timeout <= 0 {
		return fmt.Errorf("ai.timeout must be positive")
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel maps log.level to a slog level.
func (c *Config) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(c.Log.Level))); err != nil {
		return 0, fmt.Errorf("log.level %q: %w", c.Log.Level, err)
	}
	return lvl, nil
}
