package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const validYAML = `
database:
  path: "/tmp/jimbro-test.db"
log:
  path: "/tmp/jimbro-test.log"
  level: "debug"
ai:
  provider: "openai"
  model: "llama-3.1-8b-instant"
  api_key: "file-key"
  base_url: "http://localhost:11434/v1"
  timeout: "45s"
`

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"JIMBRO_DB_PATH", "JIMBRO_LOG_PATH", "JIMBRO_LOG_LEVEL", "JIMBRO_AI_PROVIDER",
		"JIMBRO_AI_MODEL", "JIMBRO_AI_BASE_URL", "JIMBRO_AI_TIMEOUT", "JIMBRO_AI_API_KEY",
		"GEMINI_API_KEY", "API_KEY",
	} {
		t.Setenv(k, "")
	}
}

// TestLoadValid verifies that a well-formed YAML config loads with all fields populated.
func TestLoadValid(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(writeTemp(t, validYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Database.Path != "/tmp/jimbro-test.db" {
		t.Errorf("database.path = %q", cfg.Database.Path)
	}
	if cfg.AI.Provider != ProviderOpenAI || cfg.AI.Model != "llama-3.1-8b-instant" {
		t.Errorf("ai = %+v", cfg.AI)
	}
	if cfg.AI.Timeout.Std() != 45*time.Second {
		t.Errorf("ai.timeout = %v, want 45s", cfg.AI.Timeout.Std())
	}
	lvl, err := cfg.SlogLevel()
	if err != nil || lvl != slog.LevelDebug {
		t.Errorf("level = %v, %v; want debug", lvl, err)
	}
}

// TestMissingFileUsesDefaults verifies the app starts without any config file.
func TestMissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.AI.Provider != ProviderGemini || cfg.AI.Model != DefaultGeminiModel {
		t.Errorf("ai = %+v, want gemini defaults", cfg.AI)
	}
	if cfg.AI.Timeout.Std() != DefaultTimeout {
		t.Errorf("timeout = %v", cfg.AI.Timeout.Std())
	}
	if !strings.HasSuffix(cfg.Database.Path, ".jimbro.db") {
		t.Errorf("database.path = %q", cfg.Database.Path)
	}
	if cfg.AI.APIKey != "" {
		t.Errorf("api key should be empty without env, got %q", cfg.AI.APIKey)
	}
}

// TestEnvOverride verifies that JIMBRO_ env vars take precedence over YAML values.
func TestEnvOverride(t *testing.T) {
	clearEnv(t)
	t.Setenv("JIMBRO_DB_PATH", "/data/override.db")
	t.Setenv("JIMBRO_AI_TIMEOUT", "5s")
	t.Setenv("JIMBRO_AI_API_KEY", "env-key")

	cfg, err := Load(writeTemp(t, validYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Database.Path != "/data/override.db" {
		t.Errorf("database.path = %q", cfg.Database.Path)
	}
	if cfg.AI.Timeout.Std() != 5*time.Second {
		t.Errorf("timeout = %v, want 5s", cfg.AI.Timeout.Std())
	}
	if cfg.AI.APIKey != "env-key" {
		t.Errorf("api key = %q, want env-key", cfg.AI.APIKey)
	}
	// Unchanged fields keep YAML values.
	if cfg.AI.BaseURL != "http://localhost:11434/v1" {
		t.Errorf("base_url = %q", cfg.AI.BaseURL)
	}
}

// TestLogPathDisabledByEnv verifies JIMBRO_LOG_PATH=- clears the log file path.
func TestLogPathDisabledByEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("JIMBRO_LOG_PATH", LogDisabled)

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Log.Path != "" {
		t.Errorf("log.path = %q, want empty", cfg.Log.Path)
	}
}

// TestAPIKeyFallbacks verifies GEMINI_API_KEY then API_KEY fill an absent key.
func TestAPIKeyFallbacks(t *testing.T) {
	clearEnv(t)
	t.Setenv("API_KEY", "generic")
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.AI.APIKey != "generic" {
		t.Errorf("api key = %q, want generic", cfg.AI.APIKey)
	}

	t.Setenv("GEMINI_API_KEY", "gemini")
	cfg, err = Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.AI.APIKey != "gemini" {
		t.Errorf("api key = %q, want gemini", cfg.AI.APIKey)
	}
}

// TestOpenAIDefaults verifies the OpenAI-compatible provider gets a model and endpoint.
func TestOpenAIDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("JIMBRO_AI_PROVIDER", "OpenAI")
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.AI.Provider != ProviderOpenAI || cfg.AI.Model != DefaultOpenAIModel || cfg.AI.BaseURL != DefaultOpenAIURL {
		t.Errorf("ai = %+v", cfg.AI)
	}
}

// TestValidation verifies that bad values are rejected.
func TestValidation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown provider", "ai:\n  provider: \"claude\"\n"},
		{"zero timeout", "ai:\n  timeout: \"0s\"\n"},
		{"bad timeout", "ai:\n  timeout: \"soon\"\n"},
		{"bad level", "log:\n  level: \"loud\"\n"},
		{"empty db path", "database:\n  path: \"\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			if _, err := Load(writeTemp(t, tt.yaml)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

// TestInvalidYAML verifies that malformed YAML is rejected.
func TestInvalidYAML(t *testing.T) {
	clearEnv(t)
	if _, err := Load(writeTemp(t, "{{{{not yaml")); err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}
