package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"ollamagui/pkg/types"
)

const (
	DefaultAPIURL     = "https://ollama.com/api/tags"
	DefaultLibraryURL = "https://ollama.com/library"

	userAgent = "ollamagui/1 (+https://github.com/ollama/ollama)"
)

// Source fetches the remote model catalog, unsorted.
type Source interface {
	Fetch(ctx context.Context) ([]types.ModelDescriptor, error)
}

// APISource reads the public JSON catalog.
type APISource struct {
	URL    string
	Client *http.Client
}

type apiEntry struct {
	Model      string `json:"model"`
	Name       string `json:"name"`
	Pulls      int64  `json:"pulls"`
	Size       int64  `json:"size"`
	ModifiedAt string `json:"modified_at"`
}

func (s *APISource) Fetch(ctx context.Context) ([]types.ModelDescriptor, error) {
	resp, err := get(ctx, s.Client, orDefault(s.URL, DefaultAPIURL), "application/json")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	var body struct {
		Models []apiEntry `json:"models"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("catalog api: decode: %w", err)
	}
	out := make([]types.ModelDescriptor, 0, len(body.Models))
	for _, e := range body.Models {
		id := e.Model
		if id == "" {
			id = e.Name
		}
		if id == "" {
			continue
		}
		d := Descriptor(id)
		d.PullCount = e.Pulls
		d.SizeBytes = e.Size
		d.ModifiedAt = e.ModifiedAt
		out = append(out, d)
	}
	return out, nil
}

// LibrarySource scrapes the HTML model library.
type LibrarySource struct {
	URL    string
	Client *http.Client
}

func (s *LibrarySource) Fetch(ctx context.Context) ([]types.ModelDescriptor, error) {
	resp, err := get(ctx, s.Client, orDefault(s.URL, DefaultLibraryURL), "text/html")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("catalog library: parse: %w", err)
	}
	var out []types.ModelDescriptor
	doc.Find("li[x-test-model]").Each(func(_ int, sel *goquery.Selection) {
		name := strings.TrimSpace(sel.Find("[x-test-search-response-title]").First().Text())
		if name == "" {
			if href, ok := sel.Find("a").First().Attr("href"); ok {
				name = strings.TrimPrefix(href, "/library/")
			}
		}
		if name == "" {
			return
		}
		d := Descriptor(name)
		d.PullCount = ParsePullCount(sel.Find("[x-test-pull-count]").First().Text())
		d.ModifiedAt = strings.TrimSpace(sel.Find("[x-test-updated]").First().Text())
		out = append(out, d)
	})
	if len(out) == 0 {
		return nil, errors.New("catalog library: no models found")
	}
	return out, nil
}

// Chain tries each source in order and returns the first success.
type Chain []Source

func (c Chain) Fetch(ctx context.Context) ([]types.ModelDescriptor, error) {
	var errs []error
	for _, s := range c {
		models, err := s.Fetch(ctx)
		if err == nil {
			return models, nil
		}
		errs = append(errs, err)
		if ctx.Err() != nil {
			break
		}
	}
	if len(errs) == 0 {
		return nil, errors.New("catalog: no sources configured")
	}
	return nil, errors.Join(errs...)
}

// Descriptor splits a model identifier on its first ':' into short name and
// tag. The tag defaults to "latest".
func Descriptor(id string) types.ModelDescriptor {
	short, tag, ok := strings.Cut(id, ":")
	if !ok || tag == "" {
		tag = "latest"
	}
	return types.ModelDescriptor{FullName: id, ShortName: short, Tag: tag}
}

// ParsePullCount parses counts like "1.2M", "850K", "12,345" or "3B".
// Unparseable input yields 0.
func ParsePullCount(s string) int64 {
	s = strings.ToUpper(strings.TrimSpace(s))
	s = strings.TrimSuffix(s, " PULLS")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0
	}
	mult := 1.0
	switch s[len(s)-1] {
	case 'K':
		mult = 1e3
	case 'M':
		mult = 1e6
	case 'B':
		mult = 1e9
	}
	if mult != 1 {
		s = s[:len(s)-1]
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || f < 0 {
		return 0
	}
	return int64(f*mult + 0.5)
}

func get(ctx context.Context, client *http.Client, url, accept string) (*http.Response, error) {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", accept)
	req.Header.Set("User-Agent", userAgent)
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		return nil, fmt.Errorf("catalog %s: unexpected status %s", url, resp.Status)
	}
	return resp, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
