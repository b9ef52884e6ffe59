package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_NonexistentFile(t *testing.T) {
	if _, err := Load("/definitely/not/a/real/file-12345.yaml"); err == nil {
		t.Fatalf("expected error for nonexistent file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "bad.yaml", "addr: :8080\n: broken\n")
	if _, err := Load(p); err == nil {
		t.Fatalf("expected YAML unmarshal error")
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "bad.json", `{ "addr": ":8080", "ollama_url": }`)
	if _, err := Load(p); err == nil {
		t.Fatalf("expected JSON unmarshal error")
	}
}

func TestLoad_InvalidTOML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "bad.toml", "addr=:8080\nollama_url\n")
	if _, err := Load(p); err == nil {
		t.Fatalf("expected TOML unmarshal error")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}.ApplyDefaults()
	if cfg.Addr != DefaultAddr || cfg.OllamaURL != DefaultOllamaURL || cfg.OllamaBin != "ollama" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.APITimeout.Std() != 5*time.Second || cfg.CommandTimeout.Std() != 10*time.Second || cfg.ChatTimeout.Std() != 120*time.Second {
		t.Fatalf("unexpected timeouts: %+v", cfg)
	}
	if cfg.CatalogTTL.Std() != time.Hour || cfg.PullTimeout.Std() != 2*time.Hour || cfg.MaxDownloadEntries != 256 {
		t.Fatalf("unexpected catalog/download defaults: %+v", cfg)
	}
	if cfg.DefaultModel != "llama3:8b-instruct" || cfg.DefaultLanguage != "pt" {
		t.Fatalf("unexpected chat defaults: %+v", cfg)
	}
	if !Bool(cfg.CORSEnabled) || !Bool(cfg.LibraryFallback) || len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "*" {
		t.Fatalf("unexpected http defaults: %+v", cfg)
	}
	if cfg.FallbackModels == nil || len(cfg.FallbackModels) != 0 {
		t.Fatalf("fallback models should default to empty")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}

	off := false
	kept := Config{Addr: ":1", CORSEnabled: &off, APITimeout: Duration(time.Second)}.ApplyDefaults()
	if kept.Addr != ":1" || Bool(kept.CORSEnabled) || kept.APITimeout.Std() != time.Second {
		t.Fatalf("explicit values overwritten: %+v", kept)
	}
}

func TestValidate(t *testing.T) {
	base := Config{}.ApplyDefaults()
	bad := []func(*Config){
		func(c *Config) { c.OllamaURL = "ftp://x" },
		func(c *Config) { c.CatalogURL = "not a url" },
		func(c *Config) { c.LogFormat = "xml" },
		func(c *Config) { c.LogLevel = "loud" },
	}
	for i, mut := range bad {
		c := base
		mut(&c)
		if err := c.Validate(); err == nil {
			t.Fatalf("case %d: expected validation error", i)
		}
	}
}

func TestNormalizeOllamaURL(t *testing.T) {
	cases := map[string]string{
		"":                        "",
		"localhost":               "http://localhost:11434",
		"0.0.0.0":                 "http://localhost:11434",
		"0.0.0.0:9000":            "http://localhost:9000",
		"gpu-box:8080":            "http://gpu-box:8080",
		"http://localhost:11434/": "http://localhost:11434",
		"https://ollama.example":  "https://ollama.example",
		"[::1]":                   "http://[::1]:11434",
	}
	for in, want := range cases {
		if got := NormalizeOllamaURL(in); got != want {
			t.Fatalf("NormalizeOllamaURL(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFromEnv(t *testing.T) {
	env := map[string]string{
		"OLLAMA_HOST":                    "0.0.0.0:11500",
		"OLLAMAGUI_ADDR":                 ":6000",
		"OLLAMAGUI_PULL_TIMEOUT":         "15m",
		"OLLAMAGUI_PROCESS_PROBE":        "true",
		"OLLAMAGUI_FALLBACK_MODELS":      "a:1, b:2",
		"OLLAMAGUI_CORS_ENABLED":         "false",
		"OLLAMAGUI_MAX_DOWNLOAD_ENTRIES": "4",
		"OLLAMAGUI_DEFAULT_LANGUAGE":     "es",
		"OLLAMAGUI_LOG_FORMAT":           "json",
	}
	lookup := func(k string) (string, bool) { v, ok := env[k]; return v, ok }
	cfg, err := FromEnv(Config{Addr: ":1", DefaultModel: "keep"}, lookup)
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if cfg.OllamaURL != "http://localhost:11500" || cfg.Addr != ":6000" || cfg.DefaultModel != "keep" {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
	if cfg.PullTimeout.Std() != 15*time.Minute || !cfg.ProcessProbe || cfg.MaxDownloadEntries != 4 {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
	if len(cfg.FallbackModels) != 2 || cfg.FallbackModels[1] != "b:2" {
		t.Fatalf("fallback=%v", cfg.FallbackModels)
	}
	if cfg.CORSEnabled == nil || *cfg.CORSEnabled {
		t.Fatalf("cors should be disabled")
	}

	env["OLLAMAGUI_OLLAMA_URL"] = "http://explicit:1"
	cfg, _ = FromEnv(Config{}, lookup)
	if cfg.OllamaURL != "http://explicit:1" {
		t.Fatalf("OLLAMAGUI_OLLAMA_URL must win over OLLAMA_HOST, got %q", cfg.OllamaURL)
	}
}

func TestFromEnv_Errors(t *testing.T) {
	env := map[string]string{"OLLAMAGUI_API_TIMEOUT": "fast", "OLLAMAGUI_CORS_ENABLED": "maybe"}
	_, err := FromEnv(Config{}, func(k string) (string, bool) { v, ok := env[k]; return v, ok })
	if err == nil {
		t.Fatalf("expected parse errors")
	}
}

func TestLoadDotEnv(t *testing.T) {
	d := t.TempDir()
	p := filepath.Join(d, "test.env")
	if err := os.WriteFile(p, []byte("OLLAMAGUI_TEST_DOTENV=from-file\nOLLAMAGUI_TEST_PRESET=from-file\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("OLLAMAGUI_TEST_PRESET", "from-env")
	t.Cleanup(func() { _ = os.Unsetenv("OLLAMAGUI_TEST_DOTENV") })

	if err := LoadDotEnv(filepath.Join(d, "missing.env"), p); err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	if got := os.Getenv("OLLAMAGUI_TEST_DOTENV"); got != "from-file" {
		t.Fatalf("dotenv value=%q", got)
	}
	if got := os.Getenv("OLLAMAGUI_TEST_PRESET"); got != "from-env" {
		t.Fatalf("existing env must not be overridden, got %q", got)
	}
	if err := LoadDotEnv(filepath.Join(d, "none.env")); err != nil {
		t.Fatalf("missing files are skipped: %v", err)
	}
}

func TestSplitCSV(t *testing.T) {
	cases := []struct{ in string; want []string }{
		{"a,b,c", []string{"a", "b", "c"}},
		{" a , b , c ", []string{"a", "b", "c"}},
		{"a,,c", []string{"a", "c"}},
		{"", nil},
	}
	for _, c := range cases {
		got := SplitCSV(c.in)
		if len(got) != len(c.want) {
			t.Fatalf("%q -> %v, want %v", c.in, got, c.want)
		}
		for i := range got {
			if got[i] != c.want[i] {
				t.Fatalf("%q -> %v, want %v", c.in, got, c.want)
			}
		}
	}
}
