// Package service composes the backend locator, the model catalog, the
// download orchestrator and the chat relay into the surface served over HTTP.
package service

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"ollamagui/internal/backend"
	"ollamagui/internal/catalog"
	"ollamagui/internal/chat"
	"ollamagui/internal/common/execx"
	"ollamagui/internal/config"
	"ollamagui/internal/download"
	"ollamagui/internal/i18n"
	"ollamagui/pkg/types"
)

// Locator resolves backend connectivity.
type Locator interface {
	Locate(ctx context.Context) types.ConnectionResult
	Installed(ctx context.Context) []string
}

// Catalog serves the remote model catalog.
type Catalog interface {
	Categorized(ctx context.Context) (types.Categories, error)
	Search(ctx context.Context, term string) ([]types.ModelDescriptor, int, error)
	Invalidate()
}

// Deps are the components a Service delegates to. Logger and Now are optional.
type Deps struct {
	Locator   Locator
	Catalog   Catalog
	Downloads *download.Orchestrator
	Relay     *chat.Relay
	Messages  *i18n.Catalog
	Logger    *zerolog.Logger
	Now       func() time.Time
}

// Service implements httpapi.Service.
type Service struct {
	locator   Locator
	catalog   Catalog
	downloads *download.Orchestrator
	relay     *chat.Relay
	msgs      *i18n.Catalog
	log       zerolog.Logger
	now       func() time.Time
}

func New(d Deps) *Service {
	s := &Service{
		locator:   d.Locator,
		catalog:   d.Catalog,
		downloads: d.Downloads,
		relay:     d.Relay,
		msgs:      d.Messages,
		log:       zerolog.Nop(),
		now:       d.Now,
	}
	if s.msgs == nil {
		s.msgs = i18n.New("")
	}
	if s.now == nil {
		s.now = time.Now
	}
	if d.Logger != nil {
		s.log = *d.Logger
	}
	return s
}

// FromConfig wires every component from a defaulted config. A nil runner
// selects real processes. base parents background pulls.
func FromConfig(base context.Context, cfg config.Config, runner execx.Runner, log zerolog.Logger) *Service {
	if runner == nil {
		runner = execx.NewExecRunner()
	}
	msgs := i18n.New(cfg.DefaultLanguage)
	component := func(name string) *zerolog.Logger {
		l := log.With().Str("component", name).Logger()
		return &l
	}

	loc := backend.New(backend.Config{
		BaseURL:        cfg.OllamaURL,
		Bin:            cfg.OllamaBin,
		APITimeout:     cfg.APITimeout.Std(),
		CommandTimeout: cfg.CommandTimeout.Std(),
		ProcessProbe:   cfg.ProcessProbe,
		ProcessPattern: cfg.ProcessPattern,
		FallbackModels: cfg.FallbackModels,
		Runner:         runner,
		Logger:         component("backend"),
	})

	httpClient := &http.Client{Timeout: 0}
	sources := catalog.Chain{&catalog.APISource{URL: cfg.CatalogURL, Client: httpClient}}
	if config.Bool(cfg.LibraryFallback) {
		sources = append(sources, &catalog.LibrarySource{URL: cfg.LibraryURL, Client: httpClient})
	}
	cache := catalog.NewCache(sources, catalog.Options{
		TTL:          cfg.CatalogTTL.Std(),
		FetchTimeout: cfg.CatalogTimeout.Std(),
		Logger:       component("catalog"),
	})

	orch := download.New(download.Config{
		Bin:         cfg.OllamaBin,
		PullTimeout: cfg.PullTimeout.Std(),
		Retention:   cfg.DownloadRetention.Std(),
		MaxEntries:  cfg.MaxDownloadEntries,
		Runner:      runner,
		Models:      loc,
		Catalog:     cache,
		Messages:    msgs,
		Events:      download.NewLogPublisher(*component("events")),
		Logger:      component("download"),
		BaseContext: base,
	})

	relay := chat.NewRelay(chat.Config{
		BaseURL:         cfg.OllamaURL,
		Timeout:         cfg.ChatTimeout.Std(),
		DefaultModel:    cfg.DefaultModel,
		DefaultLanguage: cfg.DefaultLanguage,
		Locator:         loc,
		Messages:        msgs,
		Logger:          component("chat"),
	})

	return New(Deps{
		Locator:   loc,
		Catalog:   cache,
		Downloads: orch,
		Relay:     relay,
		Messages:  msgs,
		Logger:    component("service"),
	})
}

// Locate reports backend connectivity and the installed models.
func (s *Service) Locate(ctx context.Context) types.ConnectionResult {
	return s.locator.Locate(ctx)
}

// WebModels returns the categorized catalog and the installed models. A
// failed catalog fetch yields empty categories rather than an error.
func (s *Service) WebModels(ctx context.Context) types.WebModelsResponse {
	cats, err := s.catalog.Categorized(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("catalog unavailable, serving empty categories")
	}
	return types.WebModelsResponse{
		Categories:      cats,
		InstalledModels: s.installed(ctx),
		TotalModels:     cats.Total(),
	}
}

// Search matches catalog entries against q. Only an empty q is an error.
func (s *Service) Search(ctx context.Context, q string) (types.SearchResponse, error) {
	results, count, err := s.catalog.Search(ctx, q)
	if err != nil {
		if catalog.IsEmptyQuery(err) {
			return types.SearchResponse{}, err
		}
		s.log.Warn().Err(err).Str("q", q).Msg("catalog unavailable, serving empty search")
	}
	return types.SearchResponse{
		Results:         results,
		InstalledModels: s.installed(ctx),
		Count:           count,
	}, nil
}

// StartDownload accepts a background pull.
func (s *Service) StartDownload(ctx context.Context, req types.DownloadRequest) (types.DownloadResponse, error) {
	st, err := s.downloads.Start(ctx, req.Model, req.Language)
	if err != nil {
		return types.DownloadResponse{}, err
	}
	return types.DownloadResponse{Success: true, Message: st.Message, Model: download.ModelKey(req.Model), ID: st.ID}, nil
}

// DownloadProgress returns the pollable state of a pull.
func (s *Service) DownloadProgress(model, language string) types.DownloadState {
	return s.downloads.Progress(model, language)
}

// CancelDownload aborts a running pull.
func (s *Service) CancelDownload(model string) bool {
	return s.downloads.Cancel(model)
}

// Chat relays one message.
func (s *Service) Chat(ctx context.Context, req types.ChatRequest) (types.ChatResponse, error) {
	reply, err := s.relay.Relay(ctx, req)
	if err != nil {
		return types.ChatResponse{}, err
	}
	return types.ChatResponse{Response: reply}, nil
}

// Health summarizes backend connectivity.
func (s *Service) Health(ctx context.Context) types.HealthResponse {
	res := s.locator.Locate(ctx)
	h := types.HealthResponse{
		Status:    "error",
		Ollama:    "disconnected",
		Message:   res.Message,
		Method:    res.Method,
		Timestamp: s.now().Format(time.RFC3339),
	}
	if res.Connected {
		h.Status, h.Ollama = "healthy", "connected"
	}
	return h
}

// Translations returns the UI table for lang, falling back to the default
// language. The echoed language is the one requested.
func (s *Service) Translations(lang string) types.TranslationsResponse {
	return types.TranslationsResponse{Language: lang, Translations: s.msgs.Table(lang)}
}

// Close stops background pulls.
func (s *Service) Close(ctx context.Context) error {
	if s.downloads == nil {
		return nil
	}
	return s.downloads.Close(ctx)
}

func (s *Service) installed(ctx context.Context) []string {
	models := s.locator.Installed(ctx)
	if models == nil {
		return []string{}
	}
	return models
}
