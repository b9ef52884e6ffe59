package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os/exec"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"ollamagui/internal/common/execx"
	"ollamagui/internal/config"
	"ollamagui/internal/httpapi"
	"ollamagui/internal/service"
)

// fakeOllama serves /api/tags and /api/chat with a mutable model list.
type fakeOllama struct {
	*httptest.Server

	mu       sync.Mutex
	models   []string
	lastChat map[string]any
	reply    string
}

func newFakeOllama(t *testing.T, models ...string) *fakeOllama {
	t.Helper()
	f := &fakeOllama{models: models, reply: "hello from ollama"}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/tags", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		var body struct {
			Models []map[string]string `json:"models"`
		}
		for _, m := range f.models {
			body.Models = append(body.Models, map[string]string{"name": m})
		}
		_ = json.NewEncoder(w).Encode(body)
	})
	mux.HandleFunc("/api/chat", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		_ = json.NewDecoder(r.Body).Decode(&req)
		f.mu.Lock()
		f.lastChat = req
		reply := f.reply
		f.mu.Unlock()
		_ = json.NewEncoder(w).Encode(map[string]any{"message": map[string]string{"role": "assistant", "content": reply}})
	})
	f.Server = httptest.NewServer(mux)
	t.Cleanup(f.Close)
	return f
}

func (f *fakeOllama) install(model string) {
	f.mu.Lock()
	f.models = append(f.models, model)
	f.mu.Unlock()
}

func (f *fakeOllama) chatRequest() map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastChat
}

// fakeCatalog serves the JSON catalog and counts fetches.
type fakeCatalog struct {
	*httptest.Server
	hits atomic.Int32
}

const catalogJSON = `{"models":[
	{"name":"llama3:8b","pulls":5000},
	{"name":"codellama:7b","pulls":3000},
	{"name":"mistral:latest","pulls":2000},
	{"name":"deepseek-coder:6.7b","pulls":1500},
	{"name":"phi3:mini","pulls":100}
]}`

func newFakeCatalog(t *testing.T) *fakeCatalog {
	t.Helper()
	c := &fakeCatalog{}
	c.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c.hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, catalogJSON)
	}))
	t.Cleanup(c.Close)
	return c
}

// offlineURL returns the URL of a server that is already closed.
func offlineURL(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	return url
}

// notFoundRunner fails every command the way a missing ollama binary does.
func notFoundRunner() *execx.FakeRunner {
	return &execx.FakeRunner{
		OutputFunc: func(ctx context.Context, name string, args ...string) ([]byte, error) {
			return nil, &exec.Error{Name: name, Err: exec.ErrNotFound}
		},
	}
}

// newServer wires the full service over an httptest server.
func newServer(t *testing.T, ollamaURL, catalogURL string, runner execx.Runner) *httptest.Server {
	t.Helper()
	f := false
	cfg := config.Config{
		OllamaURL:       ollamaURL,
		CatalogURL:      catalogURL,
		LibraryFallback: &f,
		APITimeout:      config.Duration(time.Second),
		ChatTimeout:     config.Duration(5 * time.Second),
		DefaultLanguage: "en",
	}.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("config: %v", err)
	}
	baseCtx, cancel := context.WithCancel(context.Background())
	svc := service.FromConfig(baseCtx, cfg, runner, zerolog.Nop())
	httpapi.SetLogger(zerolog.Nop())
	srv := httptest.NewServer(httpapi.NewMux(svc))
	t.Cleanup(func() {
		srv.Close()
		cancel()
		ctx, done := context.WithTimeout(context.Background(), 5*time.Second)
		defer done()
		_ = svc.Close(ctx)
	})
	return srv
}

func httpGet(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	return doReq(t, req)
}

func httpDelete(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodDelete, url, nil)
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	return doReq(t, req)
}

func httpPostJSON(t *testing.T, url string, payload []byte) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return doReq(t, req)
}

func doReq(t *testing.T, req *http.Request) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do req: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, body
}

func decode[T any](t *testing.T, body []byte) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(body, &v); err != nil {
		t.Fatalf("json: %v body=%s", err, body)
	}
	return v
}
