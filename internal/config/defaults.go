package config

import (
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"
)

// Defaults applied to unspecified fields.
const (
	DefaultAddr            = ":5000"
	DefaultOllamaURL       = "http://localhost:11434"
	DefaultOllamaBin       = "ollama"
	DefaultAPITimeout      = 5 * time.Second
	DefaultCommandTimeout  = 10 * time.Second
	DefaultProcessPattern  = `(^|/)ollama( |$)`
	DefaultCatalogURL      = "https://ollama.com/api/tags"
	DefaultLibraryURL      = "https://ollama.com/library"
	DefaultCatalogTTL      = time.Hour
	DefaultCatalogTimeout  = 10 * time.Second
	DefaultPullTimeout     = 2 * time.Hour
	DefaultRetention       = time.Hour
	DefaultMaxDownloads    = 256
	DefaultChatTimeout     = 120 * time.Second
	DefaultModel           = "llama3:8b-instruct"
	DefaultLanguage        = "pt"
	DefaultMaxBodyBytes    = 1 << 20
	DefaultShutdownTimeout = 10 * time.Second
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "console"
)

// ApplyDefaults returns cfg with every unspecified field filled in.
func (cfg Config) ApplyDefaults() Config {
	setStr := func(p *string, v string) {
		if strings.TrimSpace(*p) == "" {
			*p = v
		}
	}
	setDur := func(p *Duration, v time.Duration) {
		if *p <= 0 {
			*p = Duration(v)
		}
	}
	setStr(&cfg.Addr, DefaultAddr)
	setStr(&cfg.OllamaURL, DefaultOllamaURL)
	setStr(&cfg.OllamaBin, DefaultOllamaBin)
	setStr(&cfg.ProcessPattern, DefaultProcessPattern)
	setStr(&cfg.CatalogURL, DefaultCatalogURL)
	setStr(&cfg.LibraryURL, DefaultLibraryURL)
	setStr(&cfg.DefaultModel, DefaultModel)
	setStr(&cfg.DefaultLanguage, DefaultLanguage)
	setStr(&cfg.LogLevel, DefaultLogLevel)
	setStr(&cfg.LogFormat, DefaultLogFormat)
	setDur(&cfg.APITimeout, DefaultAPITimeout)
	setDur(&cfg.CommandTimeout, DefaultCommandTimeout)
	setDur(&cfg.CatalogTTL, DefaultCatalogTTL)
	setDur(&cfg.CatalogTimeout, DefaultCatalogTimeout)
	setDur(&cfg.PullTimeout, DefaultPullTimeout)
	setDur(&cfg.DownloadRetention, DefaultRetention)
	setDur(&cfg.ChatTimeout, DefaultChatTimeout)
	setDur(&cfg.ShutdownTimeout, DefaultShutdownTimeout)
	if cfg.MaxDownloadEntries <= 0 {
		cfg.MaxDownloadEntries = DefaultMaxDownloads
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if cfg.LibraryFallback == nil {
		cfg.LibraryFallback = boolPtr(true)
	}
	if cfg.CORSEnabled == nil {
		cfg.CORSEnabled = boolPtr(true)
	}
	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = []string{"*"}
	}
	if cfg.FallbackModels == nil {
		cfg.FallbackModels = []string{}
	}
	cfg.OllamaURL = NormalizeOllamaURL(cfg.OllamaURL)
	return cfg
}

// Validate reports the first invalid field of a defaulted config.
func (cfg Config) Validate() error {
	u, err := url.Parse(cfg.OllamaURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("ollama_url: invalid URL %q", cfg.OllamaURL)
	}
	for name, raw := range map[string]string{"catalog_url": cfg.CatalogURL, "library_url": cfg.LibraryURL} {
		if u, err := url.Parse(raw); err != nil || u.Host == "" {
			return fmt.Errorf("%s: invalid URL %q", name, raw)
		}
	}
	switch cfg.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("log_format: want console or json, got %q", cfg.LogFormat)
	}
	switch strings.ToLower(cfg.LogLevel) {
	case "trace", "debug", "info", "warn", "error", "off", "disabled":
	default:
		return fmt.Errorf("log_level: unknown level %q", cfg.LogLevel)
	}
	return nil
}

// NormalizeOllamaURL accepts the OLLAMA_HOST forms "host", "host:port" and
// full URLs, and strips a trailing slash.
func NormalizeOllamaURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return raw
	}
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return strings.TrimRight(raw, "/")
	}
	if u.Port() == "" && u.Scheme == "http" {
		host := u.Hostname()
		if host == "" || host == "0.0.0.0" {
			host = "localhost"
		}
		u.Host = net.JoinHostPort(host, "11434")
	} else if u.Hostname() == "0.0.0.0" {
		u.Host = net.JoinHostPort("localhost", u.Port())
	}
	return strings.TrimRight(u.String(), "/")
}

// Bool reports the value of an optional flag, false when unset.
func Bool(p *bool) bool { return p != nil && *p }

func boolPtr(b bool) *bool { return &b }
