package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
env: "prod"
storage_path: "storage/test.db"
http_server:
  address: "localhost:9090"
  allowed_origins:
    - "https://apply.example.edu"
form:
  submit_delay: "250ms"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := &Config{
		Env:         "prod",
		StoragePath: "storage/test.db",
		HTTPServer: HTTPServer{
			Addr:           "localhost:9090",
			AllowedOrigins: []string{"https://apply.example.edu"},
		},
		Form: Form{SubmitDelay: 250 * time.Millisecond},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `
env: "dev"
storage_path: "storage/test.db"
http_server:
  address: "localhost:8082"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Form.SubmitDelay != 1500*time.Millisecond {
		t.Fatalf("SubmitDelay = %v, want 1.5s", cfg.Form.SubmitDelay)
	}
	if diff := cmp.Diff([]string{"*"}, cfg.AllowedOrigins); diff != "" {
		t.Fatalf("AllowedOrigins mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	path := writeConfig(t, `
env: "dev"
storage_path: "storage/test.db"
http_server:
  address: "localhost:8082"
`)
	t.Setenv("HTTP_SERVER_ADDR", "0.0.0.0:80")
	t.Setenv("FORM_SUBMIT_DELAY", "2s")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Addr != "0.0.0.0:80" || cfg.Form.SubmitDelay != 2*time.Second {
		t.Fatalf("Addr = %q, SubmitDelay = %v; want env overrides", cfg.Addr, cfg.Form.SubmitDelay)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("Load() on missing file error = nil")
	}

	missingRequired := writeConfig(t, `
env: "dev"
http_server:
  address: "localhost:8082"
`)
	if _, err := Load(missingRequired); err == nil {
		t.Fatal("Load() without storage_path error = nil")
	}

	negative := writeConfig(t, `
env: "dev"
storage_path: "storage/test.db"
http_server:
  address: "localhost:8082"
form:
  submit_delay: "-1s"
`)
	if _, err := Load(negative); err == nil {
		t.Fatal("Load() with negative delay error = nil")
	}
}
