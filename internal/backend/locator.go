// Package backend determines whether the Ollama server is reachable and which
// models it exposes.
//
// Resolution is an ordered chain of strategies:
//
//   - api.go: GET /api/tags on the Ollama HTTP API.
//   - command.go: `ollama list` through the local CLI.
//   - process.go: optional pgrep probe for a running but unresponsive server.
//
// The first strategy that yields a definite result wins; when none does the
// Locator returns a disconnected fallback result.
package backend

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"ollamagui/internal/common/execx"
	"ollamagui/pkg/types"
)

const (
	messageUnavailable = "Ollama is not available"

	defaultAPITimeout     = 5 * time.Second
	defaultCommandTimeout = 10 * time.Second
	// matches the ollama binary but not names that merely start with it, such
	// as this service
	defaultProcessPattern = `(^|/)ollama( |$)`
)

// Strategy is one way of reaching the backend. Attempt returns ok=false when
// the strategy could not reach a verdict and the next one should be tried.
type Strategy interface {
	Name() types.Method
	Attempt(ctx context.Context) (types.ConnectionResult, bool)
}

// Locator runs strategies in order until one yields a result.
type Locator struct {
	strategies []Strategy
	fallback   []string
	log        zerolog.Logger
}

// Config wires the default strategy chain.
type Config struct {
	BaseURL        string
	Bin            string
	APITimeout     time.Duration
	CommandTimeout time.Duration
	// ProcessProbe enables the pgrep strategy.
	ProcessProbe   bool
	ProcessPattern string
	// FallbackModels are reported when the backend cannot be resolved.
	FallbackModels []string
	Runner         execx.Runner
	Logger         *zerolog.Logger
}

// New builds a Locator with the api, command and (optionally) process strategies.
func New(cfg Config) *Locator {
	if cfg.APITimeout <= 0 {
		cfg.APITimeout = defaultAPITimeout
	}
	if cfg.CommandTimeout <= 0 {
		cfg.CommandTimeout = defaultCommandTimeout
	}
	if cfg.ProcessPattern == "" {
		cfg.ProcessPattern = defaultProcessPattern
	}
	if cfg.Runner == nil {
		cfg.Runner = execx.NewExecRunner()
	}
	log := zerolog.Nop()
	if cfg.Logger != nil {
		log = *cfg.Logger
	}
	strategies := []Strategy{
		NewAPIStrategy(cfg.BaseURL, cfg.APITimeout, nil),
		NewCommandStrategy(cfg.Runner, cfg.Bin, cfg.CommandTimeout),
	}
	if cfg.ProcessProbe {
		strategies = append(strategies, NewProcessStrategy(cfg.Runner, cfg.ProcessPattern, cfg.FallbackModels))
	}
	l := NewWithStrategies(cfg.FallbackModels, strategies...)
	l.log = log
	return l
}

// NewWithStrategies builds a Locator over an explicit strategy list.
func NewWithStrategies(fallback []string, strategies ...Strategy) *Locator {
	return &Locator{
		strategies: strategies,
		fallback:   append([]string(nil), fallback...),
		log:        zerolog.Nop(),
	}
}

// SetLogger installs a structured logger.
func (l *Locator) SetLogger(log zerolog.Logger) { l.log = log }

// Locate resolves the backend state. It never fails; an unreachable backend
// is reported as a disconnected result.
func (l *Locator) Locate(ctx context.Context) types.ConnectionResult {
	start := time.Now()
	for _, s := range l.strategies {
		if ctx.Err() != nil {
			break
		}
		res, ok := l.attempt(ctx, s)
		if !ok {
			l.log.Debug().Str("strategy", string(s.Name())).Msg("strategy inconclusive")
			continue
		}
		res = res.Clone()
		if res.Method == "" {
			res.Method = s.Name()
		}
		l.observe(res, start)
		return res
	}
	res := types.ConnectionResult{
		Connected: false,
		Models:    append([]string{}, l.fallback...),
		Method:    types.MethodFallback,
		Message:   messageUnavailable,
	}
	l.observe(res, start)
	return res
}

// Installed returns the installed models when the backend is connected and
// nil otherwise.
func (l *Locator) Installed(ctx context.Context) []string {
	res := l.Locate(ctx)
	if !res.Connected {
		return nil
	}
	return res.Models
}

// Models returns the current model list, which is the fallback list when the
// backend is unreachable.
func (l *Locator) Models(ctx context.Context) []string {
	return l.Locate(ctx).Models
}

// attempt shields the chain from a panicking strategy.
func (l *Locator) attempt(ctx context.Context, s Strategy) (res types.ConnectionResult, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			l.log.Error().Str("strategy", string(s.Name())).Interface("panic", r).Msg("strategy panicked")
			res, ok = types.ConnectionResult{}, false
		}
	}()
	return s.Attempt(ctx)
}

func (l *Locator) observe(res types.ConnectionResult, start time.Time) {
	locateTotal.WithLabelValues(string(res.Method)).Inc()
	l.log.Debug().
		Str("method", string(res.Method)).
		Bool("connected", res.Connected).
		Int("models", len(res.Models)).
		Dur("dur", time.Since(start)).
		Msg("backend located")
}
