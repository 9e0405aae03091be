package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func TestLoadYAML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.yaml", "base_url: http://gpu-box:11434/api\naddr: :9999\ndefault_model: llama3.2:latest\noptions:\n  temperature: 1.2\n")
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.BaseURL != "http://gpu-box:11434/api" || cfg.Addr != ":9999" || cfg.DefaultModel != "llama3.2:latest" || *cfg.Options.Temperature != 1.2 {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
	if cfg.Options.NumPredict != nil || cfg.LogFormat != "console" {
		t.Fatalf("defaults lost for unset fields: %+v", cfg)
	}
}

func TestLoadJSON(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.json", `{"addr":":7070","request_timeout_seconds":30,"cors_enabled":true,"cors_allowed_origins":["http://localhost:3000"],"options":{"num_predict":200}}`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":7070" || cfg.RequestTimeoutSeconds != 30 || !cfg.CORSEnabled || len(cfg.CORSAllowedOrigins) != 1 || *cfg.Options.NumPredict != 200 {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}

func TestLoadTOML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.toml", "addr=\":8081\"\nlog_level=\"debug\"\nlog_format=\"json\"\n[options]\ntemperature=0.2\n")
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":8081" || cfg.LogLevel != "debug" || cfg.LogFormat != "json" || *cfg.Options.Temperature != 0.2 {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(""); err == nil {
		t.Fatalf("expected error on empty path")
	}
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.txt", "not supported")
	if _, err := Load(p); err == nil {
		t.Fatalf("expected unsupported extension error")
	}
}

func TestDefaultValidates(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if opts := Default().Options.ToOptions(); opts != nil {
		t.Fatalf("default config must not send sampling options: %+v", opts)
	}
	opts := Default().DashboardOptions()
	if *opts.Temperature != DashboardTemperature || *opts.NumPredict != DashboardNumPredict {
		t.Fatalf("dashboard fallbacks: %+v", opts)
	}
}

func TestLoad_ZeroTemperatureIsKept(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.yaml", "options:\n  temperature: 0\n  num_predict: 0\n")
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	opts := cfg.Options.ToOptions()
	if opts == nil || opts.Temperature == nil || *opts.Temperature != 0 || opts.NumPredict == nil || *opts.NumPredict != 0 {
		t.Fatalf("explicit zeros dropped: %+v", opts)
	}
	dash := cfg.DashboardOptions()
	if *dash.Temperature != 0 || *dash.NumPredict != 0 {
		t.Fatalf("explicit zeros must win over dashboard fallbacks: %+v", dash)
	}
}
