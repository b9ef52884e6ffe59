// Package i18n holds the UI string tables served to the browser and the
// localized messages used by the chat relay and the download orchestrator.
package i18n

import (
	"fmt"
	"sort"
	"strings"
)

// DefaultLanguage is served when a requested language has no table.
const DefaultLanguage = "pt"

// Keys used by server-side components.
const (
	KeySystemPrompt     = "system_prompt"
	KeyDownloadStarted  = "download_started"
	KeyDownloadComplete = "download_complete"
	KeyDownloadError    = "download_error"
	KeyDownloadNotFound = "download_not_found"
	KeyDownloadCanceled = "download_canceled"
	KeyOfflineResponse  = "offline_response"
)

// Catalog resolves translation tables with a fallback language.
type Catalog struct {
	fallback string
	tables   map[string]map[string]string
}

// New returns a Catalog over the built-in tables. An empty or unknown
// fallback resolves to DefaultLanguage.
func New(fallback string) *Catalog {
	fallback = normalize(fallback)
	if _, ok := builtin[fallback]; !ok {
		fallback = DefaultLanguage
	}
	return &Catalog{fallback: fallback, tables: builtin}
}

// Fallback returns the language used for unknown codes.
func (c *Catalog) Fallback() string { return c.fallback }

// Supports reports whether lang has its own table.
func (c *Catalog) Supports(lang string) bool {
	_, ok := c.tables[normalize(lang)]
	return ok
}

// Languages returns the supported language codes, sorted.
func (c *Catalog) Languages() []string {
	out := make([]string, 0, len(c.tables))
	for k := range c.tables {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Table returns a copy of the table for lang, or of the fallback table.
func (c *Catalog) Table(lang string) map[string]string {
	src := c.table(lang)
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

// T looks up key for lang. Missing keys return the key itself.
func (c *Catalog) T(lang, key string) string {
	if v, ok := c.table(lang)[key]; ok {
		return v
	}
	return key
}

// Tf formats the value of key with args.
func (c *Catalog) Tf(lang, key string, args ...any) string {
	return fmt.Sprintf(c.T(lang, key), args...)
}

func (c *Catalog) table(lang string) map[string]string {
	if t, ok := c.tables[normalize(lang)]; ok {
		return t
	}
	return c.tables[c.fallback]
}

func normalize(lang string) string {
	return strings.ToLower(strings.TrimSpace(lang))
}
