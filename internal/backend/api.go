package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"ollamagui/pkg/types"
)

// TagsPath lists locally installed models on the Ollama API.
const TagsPath = "/api/tags"

// APIStrategy queries the Ollama HTTP API.
type APIStrategy struct {
	baseURL string
	timeout time.Duration
	client  *http.Client
}

// NewAPIStrategy returns a strategy hitting baseURL+/api/tags. A nil client
// selects a client with no global timeout; the per-attempt context carries it.
func NewAPIStrategy(baseURL string, timeout time.Duration, client *http.Client) *APIStrategy {
	if client == nil {
		client = &http.Client{Timeout: 0}
	}
	if timeout <= 0 {
		timeout = defaultAPITimeout
	}
	return &APIStrategy{baseURL: strings.TrimSuffix(baseURL, "/"), timeout: timeout, client: client}
}

func (s *APIStrategy) Name() types.Method { return types.MethodAPI }

type tagsResponse struct {
	Models []struct {
		Name  string `json:"name"`
		Model string `json:"model"`
	} `json:"models"`
}

func (s *APIStrategy) Attempt(ctx context.Context) (types.ConnectionResult, bool) {
	models, err := s.fetch(ctx)
	if err != nil {
		attemptFailures.WithLabelValues(string(types.MethodAPI), classify(err)).Inc()
		return types.ConnectionResult{}, false
	}
	return connected(models, types.MethodAPI), true
}

func (s *APIStrategy) fetch(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+TagsPath, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("ollama tags: unexpected status %s", resp.Status)
	}
	var body tagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("ollama tags: decode: %w", err)
	}
	models := make([]string, 0, len(body.Models))
	for _, m := range body.Models {
		name := m.Name
		if name == "" {
			name = m.Model
		}
		if name != "" {
			models = append(models, name)
		}
	}
	return models, nil
}

// classify names the failure class for logs.
func classify(err error) string {
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.As(err, &netErr) && netErr.Timeout():
		return "timeout"
	case isConnRefused(err):
		return "connection_refused"
	default:
		return "error"
	}
}

func isConnRefused(err error) bool {
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return opErr.Op == "dial"
	}
	return false
}

func connected(models []string, method types.Method) types.ConnectionResult {
	return types.ConnectionResult{
		Connected: true,
		Models:    models,
		Method:    method,
		Message:   fmt.Sprintf("Ollama connected - %d models available", len(models)),
	}
}
