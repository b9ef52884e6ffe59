package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"ollamagui/internal/common/fsutil"
)

// Config holds runtime parameters for the service.
// Zero values mean "unspecified" and are replaced by ApplyDefaults.
type Config struct {
	Addr string `json:"addr" yaml:"addr" toml:"addr"`

	OllamaURL      string   `json:"ollama_url" yaml:"ollama_url" toml:"ollama_url"`
	OllamaBin      string   `json:"ollama_bin" yaml:"ollama_bin" toml:"ollama_bin"`
	APITimeout     Duration `json:"api_timeout" yaml:"api_timeout" toml:"api_timeout"`
	CommandTimeout Duration `json:"command_timeout" yaml:"command_timeout" toml:"command_timeout"`
	ProcessProbe   bool     `json:"process_probe" yaml:"process_probe" toml:"process_probe"`
	ProcessPattern string   `json:"process_pattern" yaml:"process_pattern" toml:"process_pattern"`
	FallbackModels []string `json:"fallback_models" yaml:"fallback_models" toml:"fallback_models"`

	CatalogURL      string   `json:"catalog_url" yaml:"catalog_url" toml:"catalog_url"`
	LibraryURL      string   `json:"library_url" yaml:"library_url" toml:"library_url"`
	LibraryFallback *bool    `json:"library_fallback" yaml:"library_fallback" toml:"library_fallback"`
	CatalogTTL      Duration `json:"catalog_ttl" yaml:"catalog_ttl" toml:"catalog_ttl"`
	CatalogTimeout  Duration `json:"catalog_timeout" yaml:"catalog_timeout" toml:"catalog_timeout"`

	PullTimeout        Duration `json:"pull_timeout" yaml:"pull_timeout" toml:"pull_timeout"`
	DownloadRetention  Duration `json:"download_retention" yaml:"download_retention" toml:"download_retention"`
	MaxDownloadEntries int      `json:"max_download_entries" yaml:"max_download_entries" toml:"max_download_entries"`

	ChatTimeout     Duration `json:"chat_timeout" yaml:"chat_timeout" toml:"chat_timeout"`
	DefaultModel    string   `json:"default_model" yaml:"default_model" toml:"default_model"`
	DefaultLanguage string   `json:"default_language" yaml:"default_language" toml:"default_language"`

	MaxBodyBytes    int64    `json:"max_body_bytes" yaml:"max_body_bytes" toml:"max_body_bytes"`
	CORSEnabled     *bool    `json:"cors_enabled" yaml:"cors_enabled" toml:"cors_enabled"`
	CORSOrigins     []string `json:"cors_origins" yaml:"cors_origins" toml:"cors_origins"`
	ShutdownTimeout Duration `json:"shutdown_timeout" yaml:"shutdown_timeout" toml:"shutdown_timeout"`

	LogLevel  string `json:"log_level" yaml:"log_level" toml:"log_level"`
	LogFormat string `json:"log_format" yaml:"log_format" toml:"log_format"`
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	path, err := fsutil.ExpandHome(path)
	if err != nil {
		return cfg, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("%s: %w", path, err)
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("%s: %w", path, err)
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("%s: %w", path, err)
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}

// DefaultPaths lists the files probed when no --config is given, in order.
func DefaultPaths() []string {
	names := []string{"ollamagui.yaml", "ollamagui.yml", "ollamagui.toml", "ollamagui.json"}
	dirs := []string{".", "~/.config/ollamagui"}
	out := make([]string, 0, len(names)*len(dirs))
	for _, d := range dirs {
		for _, n := range names {
			out = append(out, filepath.Join(d, n))
		}
	}
	return out
}

// Discover returns the first existing default config file, or "".
func Discover() string {
	return fsutil.FirstFile(DefaultPaths()...)
}

// Duration is a time.Duration that reads "90s"-style strings from every
// supported config format.
type Duration time.Duration

func (d Duration) Std() time.Duration { return time.Duration(d) }

func (d Duration) String() string { return time.Duration(d).String() }

func (d Duration) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// UnmarshalJSON accepts a duration string or a number of seconds.
func (d *Duration) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		return d.UnmarshalText([]byte(s))
	}
	return d.UnmarshalText(b)
}

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := ParseDuration(string(b))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// ParseDuration accepts Go duration syntax or a bare number of seconds.
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	if d, err := time.ParseDuration(s); err == nil {
		return d, nil
	}
	if secs, err := strconv.ParseFloat(s, 64); err == nil && secs >= 0 {
		return time.Duration(secs * float64(time.Second)), nil
	}
	return 0, fmt.Errorf("invalid duration %q", s)
}
