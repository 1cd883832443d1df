package configs

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	v, err := Load("missing", t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := v.GetInt("server.port"); got != 8000 {
		t.Errorf("server.port: got %d, want 8000", got)
	}
	if got := v.GetDuration("websocket.pong_wait"); got != 60*time.Second {
		t.Errorf("websocket.pong_wait: got %v, want 60s", got)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	content := "server:\n  port: 9100\njwt:\n  secret: \"s3cret\"\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	v, err := Load("config", dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := v.GetInt("server.port"); got != 9100 {
		t.Errorf("server.port: got %d, want 9100", got)
	}
	if got := v.GetString("jwt.secret"); got != "s3cret" {
		t.Errorf("jwt.secret: got %q, want s3cret", got)
	}
	if got := v.GetString("database.ssl"); got != "disable" {
		t.Errorf("database.ssl default: got %q", got)
	}
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("redis:\n  address: \"file:6379\"\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("MG_REDIS_ADDRESS", "env:6379")

	v, err := Load("config", dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := v.GetString("redis.address"); got != "env:6379" {
		t.Errorf("redis.address: got %q, want env:6379", got)
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("server: [unterminated"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load("config", dir); err == nil {
		t.Fatal("expected error for malformed yaml")
	}
}
