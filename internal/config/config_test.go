package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chatnote.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadEnvSubstitution(t *testing.T) {
	t.Setenv("TEST_REDIS_URL", "redis://example:6380/1")
	os.Unsetenv("TEST_MISSING_KEY")

	path := writeConfig(t, `{
		"server": {"port": 9090},
		"redis": {"url": "${TEST_REDIS_URL}"},
		"provider": {"type": "openai", "api_key": "${TEST_MISSING_KEY}", "model": "${TEST_MODEL:gpt-4o-mini}"}
	}`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Redis.URL != "redis://example:6380/1" {
		t.Errorf("redis url = %q", cfg.Redis.URL)
	}
	if cfg.Provider.APIKey != "" {
		t.Errorf("missing env var should resolve empty, got %q", cfg.Provider.APIKey)
	}
	if cfg.Provider.Model != "gpt-4o-mini" {
		t.Errorf("default not applied, model = %q", cfg.Provider.Model)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("port = %d", cfg.Server.Port)
	}
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `{"redis": {"url": "redis://localhost:6379/0"}}`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("default port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Reminder.IntervalSeconds != 60 {
		t.Errorf("default interval = %d, want 60", cfg.Reminder.IntervalSeconds)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
