package backend

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ollamagui/internal/common/execx"
	"ollamagui/internal/config"
	"ollamagui/pkg/types"
)

func tagsServer(t *testing.T, body string, status int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != TagsPath {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

// deadURL returns a base URL nothing listens on.
func deadURL(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(http.NotFoundHandler())
	u := srv.URL
	srv.Close()
	return u
}

func TestLocate_APIShortCircuitsCommand(t *testing.T) {
	srv := tagsServer(t, `{"models":[{"name":"llama3:8b"},{"name":"mistral:7b"}]}`, http.StatusOK)
	fr := &execx.FakeRunner{}
	l := New(Config{BaseURL: srv.URL, Runner: fr})

	res := l.Locate(context.Background())
	assert.True(t, res.Connected)
	assert.Equal(t, types.MethodAPI, res.Method)
	assert.Equal(t, []string{"llama3:8b", "mistral:7b"}, res.Models)
	assert.Equal(t, "Ollama connected - 2 models available", res.Message)
	assert.Zero(t, fr.CallCount("Output"), "command strategy must not run when the API answers")
}

func TestLocate_APIModelFieldFallback(t *testing.T) {
	srv := tagsServer(t, `{"models":[{"model":"phi3:mini"},{}]}`, http.StatusOK)
	l := NewWithStrategies(nil, NewAPIStrategy(srv.URL, time.Second, nil))
	res := l.Locate(context.Background())
	require.True(t, res.Connected)
	assert.Equal(t, []string{"phi3:mini"}, res.Models)
}

func TestLocate_CommandWhenAPIUnreachable(t *testing.T) {
	fr := &execx.FakeRunner{OutputFunc: func(ctx context.Context, name string, args ...string) ([]byte, error) {
		return []byte("NAME            ID      SIZE   MODIFIED\nllama3:8b       abc     4.7 GB 2 days ago\n\ncodellama:7b    def     3.8 GB 1 week ago\n"), nil
	}}
	l := New(Config{BaseURL: deadURL(t), Bin: "ollama-test", Runner: fr})
	res := l.Locate(context.Background())
	assert.True(t, res.Connected)
	assert.Equal(t, types.MethodCommand, res.Method)
	assert.Equal(t, []string{"llama3:8b", "codellama:7b"}, res.Models)
	calls := fr.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "ollama-test", calls[0].Name)
	assert.Equal(t, []string{"list"}, calls[0].Args)
}

func TestLocate_EmptyListIsInconclusive(t *testing.T) {
	fr := &execx.FakeRunner{OutputFunc: func(ctx context.Context, name string, args ...string) ([]byte, error) {
		return []byte("NAME ID SIZE MODIFIED\n"), nil
	}}
	res := New(Config{BaseURL: deadURL(t), Runner: fr}).Locate(context.Background())
	assert.False(t, res.Connected)
	assert.Equal(t, types.MethodFallback, res.Method)
}

func TestLocate_NonOKStatusFallsThrough(t *testing.T) {
	srv := tagsServer(t, `boom`, http.StatusInternalServerError)
	fr := &execx.FakeRunner{OutputFunc: func(ctx context.Context, name string, args ...string) ([]byte, error) {
		return nil, errors.New("exec: not found")
	}}
	l := New(Config{BaseURL: srv.URL, Runner: fr, FallbackModels: []string{"llama3:8b"}})
	res := l.Locate(context.Background())
	assert.False(t, res.Connected)
	assert.Equal(t, types.MethodFallback, res.Method)
	assert.Equal(t, []string{"llama3:8b"}, res.Models)
	assert.Equal(t, "Ollama is not available", res.Message)
}

func TestLocate_FallbackModelsEmptyByDefault(t *testing.T) {
	fr := &execx.FakeRunner{OutputFunc: func(ctx context.Context, name string, args ...string) ([]byte, error) {
		return nil, errors.New("exit status 1")
	}}
	res := New(Config{BaseURL: deadURL(t), Runner: fr}).Locate(context.Background())
	assert.False(t, res.Connected)
	assert.NotNil(t, res.Models)
	assert.Empty(t, res.Models)
}

func TestLocate_ProcessProbe(t *testing.T) {
	fr := &execx.FakeRunner{
		OutputFunc: func(ctx context.Context, name string, args ...string) ([]byte, error) {
			return nil, errors.New("exit status 1")
		},
		IsRunningFunc: func(ctx context.Context, pattern string) (bool, int, error) {
			return pattern == defaultProcessPattern, 4242, nil
		},
	}
	res := New(Config{BaseURL: deadURL(t), Runner: fr, ProcessProbe: true}).Locate(context.Background())
	assert.False(t, res.Connected)
	assert.Equal(t, types.MethodProcess, res.Method)
	assert.Equal(t, "Ollama process is running but not responding", res.Message)
}

func TestDefaultProcessPattern(t *testing.T) {
	assert.Equal(t, config.DefaultProcessPattern, defaultProcessPattern)
	re := regexp.MustCompile(defaultProcessPattern)
	for cmdline, want := range map[string]bool{
		"ollama serve":                   true,
		"/usr/local/bin/ollama serve":    true,
		"/usr/bin/ollama":                true,
		"ollama runner --model x":        true,
		"/usr/local/bin/ollamagui serve": false,
		"./ollamagui --addr :5000":       false,
		"ollamagui":                      false,
		"/usr/bin/python3 ollama_web.py": false,
	} {
		assert.Equal(t, want, re.MatchString(cmdline), cmdline)
	}
}

func TestLocate_ProcessProbeIgnoresService(t *testing.T) {
	fr := &execx.FakeRunner{
		OutputFunc: func(ctx context.Context, name string, args ...string) ([]byte, error) {
			return nil, errors.New("exit status 1")
		},
		// the only process on the box is this service
		IsRunningFunc: func(ctx context.Context, pattern string) (bool, int, error) {
			return regexp.MustCompile(pattern).MatchString("/usr/local/bin/ollamagui serve"), 7, nil
		},
	}
	res := New(Config{BaseURL: deadURL(t), Bin: "/nonexistent/ollama", Runner: fr, ProcessProbe: true}).Locate(context.Background())
	assert.Equal(t, types.MethodFallback, res.Method)
	assert.Equal(t, "Ollama is not available", res.Message)
}

func TestLocate_ProcessProbeNotRunning(t *testing.T) {
	fr := &execx.FakeRunner{
		OutputFunc: func(ctx context.Context, name string, args ...string) ([]byte, error) {
			return nil, errors.New("exit status 1")
		},
		IsRunningFunc: func(ctx context.Context, pattern string) (bool, int, error) { return false, 0, nil },
	}
	res := New(Config{BaseURL: deadURL(t), Runner: fr, ProcessProbe: true}).Locate(context.Background())
	assert.Equal(t, types.MethodFallback, res.Method)
	assert.Equal(t, 1, fr.CallCount("IsRunning"))
}

func TestLocate_BoundedByAPITimeout(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-block:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() { close(block); srv.Close() })
	fr := &execx.FakeRunner{OutputFunc: func(ctx context.Context, name string, args ...string) ([]byte, error) {
		return nil, errors.New("exit status 1")
	}}
	l := New(Config{BaseURL: srv.URL, Runner: fr, APITimeout: 100 * time.Millisecond, CommandTimeout: 100 * time.Millisecond})

	start := time.Now()
	res := l.Locate(context.Background())
	assert.False(t, res.Connected)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestLocate_CommandHonorsTimeout(t *testing.T) {
	fr := &execx.FakeRunner{OutputFunc: func(ctx context.Context, name string, args ...string) ([]byte, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}}
	l := NewWithStrategies(nil, NewCommandStrategy(fr, "", 50*time.Millisecond))
	start := time.Now()
	res := l.Locate(context.Background())
	assert.Equal(t, types.MethodFallback, res.Method)
	assert.Less(t, time.Since(start), time.Second)
}

type panicStrategy struct{}

func (panicStrategy) Name() types.Method { return "panic" }
func (panicStrategy) Attempt(context.Context) (types.ConnectionResult, bool) {
	panic("boom")
}

type fixedStrategy struct{ res types.ConnectionResult }

func (f fixedStrategy) Name() types.Method { return types.MethodAPI }
func (f fixedStrategy) Attempt(context.Context) (types.ConnectionResult, bool) {
	return f.res, true
}

func TestModelsIncludesFallback(t *testing.T) {
	up := NewWithStrategies([]string{"fallback:1"}, fixedStrategy{res: types.ConnectionResult{Connected: true, Models: []string{"llama3:8b"}}})
	assert.Equal(t, []string{"llama3:8b"}, up.Models(context.Background()))
	down := NewWithStrategies([]string{"fallback:1"})
	assert.Equal(t, []string{"fallback:1"}, down.Models(context.Background()))
	assert.Nil(t, down.Installed(context.Background()))
}

func TestLocate_PanickingStrategySkipped(t *testing.T) {
	l := NewWithStrategies(nil, panicStrategy{}, fixedStrategy{res: types.ConnectionResult{Connected: true, Models: []string{"a"}}})
	res := l.Locate(context.Background())
	assert.True(t, res.Connected)
	assert.Equal(t, types.MethodAPI, res.Method, "empty method is filled from the strategy")
}

func TestLocate_ResultIsolatedFromStrategy(t *testing.T) {
	models := []string{"a", "b"}
	l := NewWithStrategies(nil, fixedStrategy{res: types.ConnectionResult{Connected: true, Models: models, Method: types.MethodAPI}})
	res := l.Locate(context.Background())
	res.Models[0] = "mutated"
	assert.Equal(t, "a", models[0])
}

func TestInstalled(t *testing.T) {
	srv := tagsServer(t, `{"models":[{"name":"llama3:8b"}]}`, http.StatusOK)
	l := New(Config{BaseURL: srv.URL, Runner: &execx.FakeRunner{}})
	assert.Equal(t, []string{"llama3:8b"}, l.Installed(context.Background()))

	down := New(Config{BaseURL: deadURL(t), Runner: &execx.FakeRunner{}, FallbackModels: []string{"x"}})
	assert.Nil(t, down.Installed(context.Background()), "fallback models are not installed models")
}

func TestParseListOutput(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", []string{}},
		{"header only", "NAME ID SIZE MODIFIED\n", []string{}},
		{"crlf", "NAME ID\r\nllama3:8b x\r\nphi3:mini y\r\n", []string{"llama3:8b", "phi3:mini"}},
		{"untagged dropped", "NAME ID\nphi3 y\nllama3:8b z\n", []string{"llama3:8b"}},
		{"blank lines", "NAME\n\n   \nmistral:7b 1 2\n", []string{"mistral:7b"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseListOutput(tc.in))
		})
	}
}
