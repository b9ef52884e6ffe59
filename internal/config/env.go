package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"ollamagui/internal/common/fsutil"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "OLLAMAGUI_"

// LookupFunc matches os.LookupEnv.
type LookupFunc func(string) (string, bool)

// LoadDotEnv loads the given .env files into the process environment without
// overriding variables that are already set. Missing files are skipped; with
// no arguments ./.env is tried.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	var existing []string
	for _, p := range paths {
		p, err := fsutil.ExpandHome(p)
		if err != nil {
			return err
		}
		if fsutil.IsFile(p) {
			existing = append(existing, p)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

// FromEnv overlays OLLAMAGUI_* variables (and OLLAMA_HOST) onto cfg. A nil
// lookup reads the process environment.
func FromEnv(cfg Config, lookup LookupFunc) (Config, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	get := func(key string) (string, bool) {
		v, ok := lookup(EnvPrefix + key)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}
	var errs []error
	str := func(key string, dst *string) {
		if v, ok := get(key); ok {
			*dst = v
		}
	}
	dur := func(key string, dst *Duration) {
		if v, ok := get(key); ok {
			d, err := ParseDuration(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, key, err))
				return
			}
			*dst = Duration(d)
		}
	}
	boolean := func(key string, dst **bool) {
		if v, ok := get(key); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, key, err))
				return
			}
			*dst = &b
		}
	}
	integer := func(key string, dst *int64) {
		if v, ok := get(key); ok {
			n, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, key, err))
				return
			}
			*dst = n
		}
	}
	list := func(key string, dst *[]string) {
		if v, ok := get(key); ok {
			*dst = SplitCSV(v)
		}
	}

	if v, ok := lookup("OLLAMA_HOST"); ok && strings.TrimSpace(v) != "" {
		cfg.OllamaURL = NormalizeOllamaURL(v)
	}
	str("ADDR", &cfg.Addr)
	str("OLLAMA_URL", &cfg.OllamaURL)
	str("OLLAMA_BIN", &cfg.OllamaBin)
	dur("API_TIMEOUT", &cfg.APITimeout)
	dur("COMMAND_TIMEOUT", &cfg.CommandTimeout)
	var probe *bool
	boolean("PROCESS_PROBE", &probe)
	if probe != nil {
		cfg.ProcessProbe = *probe
	}
	str("PROCESS_PATTERN", &cfg.ProcessPattern)
	list("FALLBACK_MODELS", &cfg.FallbackModels)
	str("CATALOG_URL", &cfg.CatalogURL)
	str("LIBRARY_URL", &cfg.LibraryURL)
	boolean("LIBRARY_FALLBACK", &cfg.LibraryFallback)
	dur("CATALOG_TTL", &cfg.CatalogTTL)
	dur("CATALOG_TIMEOUT", &cfg.CatalogTimeout)
	dur("PULL_TIMEOUT", &cfg.PullTimeout)
	dur("DOWNLOAD_RETENTION", &cfg.DownloadRetention)
	maxEntries := int64(cfg.MaxDownloadEntries)
	integer("MAX_DOWNLOAD_ENTRIES", &maxEntries)
	cfg.MaxDownloadEntries = int(maxEntries)
	dur("CHAT_TIMEOUT", &cfg.ChatTimeout)
	str("DEFAULT_MODEL", &cfg.DefaultModel)
	str("DEFAULT_LANGUAGE", &cfg.DefaultLanguage)
	integer("MAX_BODY_BYTES", &cfg.MaxBodyBytes)
	boolean("CORS_ENABLED", &cfg.CORSEnabled)
	list("CORS_ORIGINS", &cfg.CORSOrigins)
	dur("SHUTDOWN_TIMEOUT", &cfg.ShutdownTimeout)
	str("LOG_LEVEL", &cfg.LogLevel)
	str("LOG_FORMAT", &cfg.LogFormat)

	return cfg, errors.Join(errs...)
}

// SplitCSV splits a comma-separated list, trimming blanks.
func SplitCSV(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
