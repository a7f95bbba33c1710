package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mediareport.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Backend.URL != "http://localhost:5000" {
		t.Errorf("Backend.URL = %q", cfg.Backend.URL)
	}
	if cfg.Backend.Timeout != 2*time.Minute {
		t.Errorf("Backend.Timeout = %v", cfg.Backend.Timeout)
	}
	if cfg.Capture.Selector != "#report-content" || cfg.Capture.Scale != 2 {
		t.Errorf("Capture = %+v", cfg.Capture)
	}
	if cfg.Output.Dir != "." {
		t.Errorf("Output.Dir = %q", cfg.Output.Dir)
	}
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
backend:
  url: https://detector.example.com
  username: Maria
  timeout: 45s
capture:
  no_sandbox: true
  scale: 1.5
output:
  dir: /tmp/reports
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Backend.URL != "https://detector.example.com" || cfg.Backend.Username != "Maria" {
		t.Errorf("Backend = %+v", cfg.Backend)
	}
	if cfg.Backend.Timeout != 45*time.Second {
		t.Errorf("Backend.Timeout = %v", cfg.Backend.Timeout)
	}
	if !cfg.Capture.NoSandbox || cfg.Capture.Scale != 1.5 {
		t.Errorf("Capture = %+v", cfg.Capture)
	}
	// Unset keys keep their defaults.
	if cfg.Capture.Selector != "#report-content" || cfg.Capture.Timeout != 30*time.Second {
		t.Errorf("Capture defaults lost: %+v", cfg.Capture)
	}
	if cfg.Output.Dir != "/tmp/reports" {
		t.Errorf("Output.Dir = %q", cfg.Output.Dir)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "backend:\n  url: https://file.example.com\n")
	t.Setenv("MEDIAREPORT_BACKEND_URL", "http://env.example.com:8080")
	t.Setenv("MEDIAREPORT_USERNAME", "João")
	t.Setenv("MEDIAREPORT_CAPTURE_TIMEOUT", "1m")
	t.Setenv("MEDIAREPORT_NO_SANDBOX", "true")
	t.Setenv("MEDIAREPORT_SELECTOR", "main")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Backend.URL != "http://env.example.com:8080" {
		t.Errorf("Backend.URL = %q", cfg.Backend.URL)
	}
	if cfg.Backend.Username != "João" {
		t.Errorf("Backend.Username = %q", cfg.Backend.Username)
	}
	if cfg.Capture.Timeout != time.Minute || !cfg.Capture.NoSandbox || cfg.Capture.Selector != "main" {
		t.Errorf("Capture = %+v", cfg.Capture)
	}
}

func TestLoad_BadEnv(t *testing.T) {
	for key, val := range map[string]string{
		"MEDIAREPORT_UPLOAD_TIMEOUT": "soon",
		"MEDIAREPORT_AUTO_DOWNLOAD":  "maybe",
	} {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, val)
			_, err := Load("")
			if err == nil || !strings.Contains(err.Error(), key) {
				t.Errorf("err = %v, want it to name %s", err, key)
			}
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := Load(writeConfig(t, "backend: [unclosed")); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Backend.URL = "localhost"
	cfg.Capture.Scale = 0
	cfg.Output.Dir = ""

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"backend.url", "capture.scale", "output.dir"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %s", err, want)
		}
	}

	if err := Default().Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}
