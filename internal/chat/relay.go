// Package chat relays a single chat turn to the Ollama backend.
package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"ollamagui/internal/i18n"
	"ollamagui/pkg/types"
)

const (
	ChatPath = "/api/chat"

	DefaultMessage = "Hello"
	DefaultModel   = "llama3:8b-instruct"
	DefaultTimeout = 120 * time.Second

	connectTimeout = 5 * time.Second
	maxErrorBody   = 64 << 10
)

// Locator reports whether the backend is reachable.
type Locator interface {
	Locate(ctx context.Context) types.ConnectionResult
}

// Config wires a Relay. Zero values select defaults.
type Config struct {
	BaseURL         string
	Timeout         time.Duration
	DefaultModel    string
	DefaultLanguage string
	Locator         Locator
	Messages        *i18n.Catalog
	Client          *http.Client
	Logger          *zerolog.Logger
}

// Relay forwards chat messages to the backend.
type Relay struct {
	baseURL  string
	timeout  time.Duration
	model    string
	language string
	locator  Locator
	msgs     *i18n.Catalog
	client   *http.Client
	log      zerolog.Logger
}

func NewRelay(cfg Config) *Relay {
	r := &Relay{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		timeout:  cfg.Timeout,
		model:    cfg.DefaultModel,
		language: cfg.DefaultLanguage,
		locator:  cfg.Locator,
		msgs:     cfg.Messages,
		client:   cfg.Client,
		log:      zerolog.Nop(),
	}
	if r.timeout <= 0 {
		r.timeout = DefaultTimeout
	}
	if r.model == "" {
		r.model = DefaultModel
	}
	if r.language == "" {
		r.language = i18n.DefaultLanguage
	}
	if r.msgs == nil {
		r.msgs = i18n.New(r.language)
	}
	if r.client == nil {
		tr := &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   connectTimeout,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:          16,
			IdleConnTimeout:       90 * time.Second,
			ExpectContinueTimeout: time.Second,
		}
		// Deadlines come from the request context.
		r.client = &http.Client{Transport: tr, Timeout: 0}
	}
	if cfg.Logger != nil {
		r.log = *cfg.Logger
	}
	return r
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string    `json:"model"`
	Messages []message `json:"messages"`
	Stream   bool      `json:"stream"`
}

type chatResponse struct {
	Message *message `json:"message"`
}

// Relay sends one chat turn and returns the reply text. When the backend is
// unreachable it returns a localized explanation instead of an error.
func (r *Relay) Relay(ctx context.Context, req types.ChatRequest) (string, error) {
	msg := req.Message
	if msg == "" {
		msg = DefaultMessage
	}
	model := req.Model
	if model == "" {
		model = r.model
	}
	lang := req.Language
	if lang == "" {
		lang = r.language
	}
	log := r.log.With().Str("model", model).Str("lang", lang).Logger()

	if r.locator != nil {
		if res := r.locator.Locate(ctx); !res.Connected {
			log.Info().Str("method", string(res.Method)).Msg("backend offline, answering locally")
			return r.msgs.Tf(lang, i18n.KeyOfflineResponse, model, msg), nil
		}
	}

	body, err := json.Marshal(chatRequest{
		Model: model,
		Messages: []message{
			{Role: "system", Content: r.msgs.T(lang, i18n.KeySystemPrompt)},
			{Role: "user", Content: msg},
		},
		Stream: false,
	})
	if err != nil {
		return "", fmt.Errorf("encode chat request: %w", err)
	}

	cctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	hreq, err := http.NewRequestWithContext(cctx, http.MethodPost, r.baseURL+ChatPath, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build chat request: %w", err)
	}
	hreq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := r.client.Do(hreq)
	if err != nil {
		return "", r.transportError(ctx, cctx, model, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		var e struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(raw, &e)
		log.Warn().Int("status", resp.StatusCode).Str("error", e.Error).Msg("chat rejected by backend")
		return "", newUpstreamError(resp.StatusCode, e.Error)
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		if terr := r.transportError(ctx, cctx, model, err); IsTimeout(terr) {
			return "", terr
		}
		return "", upstreamError{msg: "invalid response from Ollama: " + err.Error()}
	}
	if out.Message == nil {
		return "", upstreamError{msg: "invalid response from Ollama: missing message"}
	}
	log.Info().Dur("dur", time.Since(start)).Msg("chat reply received")
	return out.Message.Content, nil
}

// transportError maps a failed round trip to the relay error taxonomy.
func (r *Relay) transportError(parent, cctx context.Context, model string, err error) error {
	if parent.Err() != nil {
		return parent.Err()
	}
	var netErr net.Error
	if errors.Is(cctx.Err(), context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		r.log.Warn().Str("model", model).Dur("timeout", r.timeout).Msg("chat timed out")
		return timeoutError{model: model}
	}
	r.log.Warn().Err(err).Str("model", model).Msg("chat backend unreachable")
	return backendDownError{cause: err}
}
