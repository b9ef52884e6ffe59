// Package httpapi serves the OllamaGUI JSON API over chi.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ollamagui/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
type Service interface {
	Locate(ctx context.Context) types.ConnectionResult
	WebModels(ctx context.Context) types.WebModelsResponse
	Search(ctx context.Context, q string) (types.SearchResponse, error)
	StartDownload(ctx context.Context, req types.DownloadRequest) (types.DownloadResponse, error)
	DownloadProgress(model, language string) types.DownloadState
	CancelDownload(model string) bool
	Chat(ctx context.Context, req types.ChatRequest) (types.ChatResponse, error)
	Health(ctx context.Context) types.HealthResponse
	Translations(lang string) types.TranslationsResponse
}

var validate = func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}()

type handlers struct {
	svc Service
}

func NewMux(svc Service) http.Handler {
	h := &handlers{svc: svc}
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, access log, recoverer, metrics
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(AccessLog)
	r.Use(middleware.Recoverer)
	r.Use(MetricsMiddleware)
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: corsAllowedMethods,
			AllowedHeaders: corsAllowedHeaders,
			MaxAge:         300,
		}))
	}
	// Compression for JSON endpoints
	r.Use(middleware.Compress(5))
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/models", h.models)
		r.Get("/web-models", h.webModels)
		r.Get("/search-models", h.searchModels)
		r.Post("/download-model", h.startDownload)
		r.Delete("/download-model/*", h.cancelDownload)
		r.Get("/download-progress/*", h.downloadProgress)
		r.Post("/chat", h.chat)
		r.Get("/health", h.health)
		r.Get("/translations/{lang}", h.translations)
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	MountSwagger(r)
	return r
}

// models godoc
// @Summary      Backend connectivity and installed models
// @Tags         models
// @Produce      json
// @Success      200  {object}  types.ModelsResponse
// @Router       /api/models [get]
func (h *handlers) models(w http.ResponseWriter, r *http.Request) {
	res := h.svc.Locate(r.Context())
	models := res.Models
	if models == nil {
		models = []string{}
	}
	writeJSON(w, http.StatusOK, types.ModelsResponse{
		Models:    models,
		Connected: res.Connected,
		Message:   res.Message,
		Method:    res.Method,
	})
}

// webModels godoc
// @Summary      Categorized remote catalog
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  types.WebModelsResponse
// @Router       /api/web-models [get]
func (h *handlers) webModels(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.WebModels(r.Context()))
}

// searchModels godoc
// @Summary      Search the remote catalog
// @Tags         catalog
// @Produce      json
// @Param        q    query     string  true  "search term"
// @Success      200  {object}  types.SearchResponse
// @Failure      400  {object}  types.ErrorResponse
// @Router       /api/search-models [get]
func (h *handlers) searchModels(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// startDownload godoc
// @Summary      Start pulling a model in the background
// @Tags         downloads
// @Accept       json
// @Produce      json
// @Param        body  body      types.DownloadRequest  true  "model to pull"
// @Success      200   {object}  types.DownloadResponse
// @Failure      400   {object}  types.ErrorResponse
// @Failure      415   {object}  types.ErrorResponse
// @Router       /api/download-model [post]
func (h *handlers) startDownload(w http.ResponseWriter, r *http.Request) {
	var req types.DownloadRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}
	res, err := h.svc.StartDownload(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// downloadProgress godoc
// @Summary      Progress of a model pull
// @Tags         downloads
// @Produce      json
// @Param        model  path      string  true   "model identifier"
// @Param        lang   query     string  false  "message language"
// @Success      200    {object}  types.DownloadState
// @Router       /api/download-progress/{model} [get]
func (h *handlers) downloadProgress(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.DownloadProgress(modelParam(r), r.URL.Query().Get("lang")))
}

// cancelDownload godoc
// @Summary      Cancel a running model pull
// @Tags         downloads
// @Produce      json
// @Param        model  path      string  true  "model identifier"
// @Success      200    {object}  types.CancelResponse
// @Failure      404    {object}  types.ErrorResponse
// @Router       /api/download-model/{model} [delete]
func (h *handlers) cancelDownload(w http.ResponseWriter, r *http.Request) {
	model := modelParam(r)
	if !h.svc.CancelDownload(model) {
		writeJSONError(w, http.StatusNotFound, "no running download for "+model)
		return
	}
	writeJSON(w, http.StatusOK, types.CancelResponse{Success: true, Model: model})
}

// chat godoc
// @Summary      Relay one chat message to the backend
// @Tags         chat
// @Accept       json
// @Produce      json
// @Param        body  body      types.ChatRequest  true  "message"
// @Success      200   {object}  types.ChatResponse
// @Failure      408   {object}  types.ErrorResponse
// @Failure      500   {object}  types.ErrorResponse
// @Failure      503   {object}  types.ErrorResponse
// @Router       /api/chat [post]
func (h *handlers) chat(w http.ResponseWriter, r *http.Request) {
	var req types.ChatRequest
	if !decodeJSON(w, r, &req, true) {
		return
	}
	// Join server base context with request context so shutdown cancels work too.
	ctx, cancel := joinContexts(serverBaseCtx, r.Context())
	defer cancel()
	res, err := h.svc.Chat(ctx, req)
	if err != nil {
		// If context was canceled (client disconnect), just return.
		if r.Context().Err() != nil {
			return
		}
		if serverBaseCtx.Err() != nil {
			writeJSONError(w, http.StatusServiceUnavailable, "server is shutting down")
			return
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// health godoc
// @Summary      Backend health summary
// @Tags         health
// @Produce      json
// @Success      200  {object}  types.HealthResponse
// @Router       /api/health [get]
func (h *handlers) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Health(r.Context()))
}

// translations godoc
// @Summary      UI string table
// @Tags         i18n
// @Produce      json
// @Param        lang  path      string  true  "language code"
// @Success      200   {object}  types.TranslationsResponse
// @Router       /api/translations/{lang} [get]
func (h *handlers) translations(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Translations(chi.URLParam(r, "lang")))
}

// modelParam returns the catch-all model segment. chi routes on the escaped
// path when one is present, so the value is unescaped here.
func modelParam(r *http.Request) string {
	raw := chi.URLParam(r, "*")
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}

// decodeJSON enforces the content type and body limit, decodes into dst and
// validates it. It writes the error response itself and reports whether the
// handler should continue. allowEmpty accepts an empty body as zero value.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any, allowEmpty bool) bool {
	ct := r.Header.Get("Content-Type")
	if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		IncrementRejected("content_type")
		writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return false
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if !(allowEmpty && errors.Is(err, io.EOF)) {
			// Oversized bodies also land here; 400 avoids leaking the limit.
			IncrementRejected("invalid_json")
			writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
			return false
		}
	}
	if err := validate.Struct(dst); err != nil {
		IncrementRejected("validation")
		writeJSONError(w, http.StatusBadRequest, validationMessage(err))
		return false
	}
	return true
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "invalid request body"
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "max":
		return fe.Field() + " is too long"
	default:
		return fe.Field() + " is invalid"
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zlog.Error().Err(err).Msg("encode response")
	}
}
