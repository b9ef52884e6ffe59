package backend

import (
	"context"
	"time"

	"ollamagui/internal/common/execx"
	"ollamagui/pkg/types"
)

const (
	messageProcessOnly = "Ollama process is running but not responding"
	processTimeout     = 3 * time.Second
)

// ProcessStrategy reports a disconnected-but-running backend when a matching
// process exists. It never reports Connected.
type ProcessStrategy struct {
	runner   execx.Runner
	pattern  string
	fallback []string
}

func NewProcessStrategy(runner execx.Runner, pattern string, fallback []string) *ProcessStrategy {
	if pattern == "" {
		pattern = defaultProcessPattern
	}
	return &ProcessStrategy{runner: runner, pattern: pattern, fallback: append([]string{}, fallback...)}
}

func (s *ProcessStrategy) Name() types.Method { return types.MethodProcess }

func (s *ProcessStrategy) Attempt(ctx context.Context) (types.ConnectionResult, bool) {
	ctx, cancel := context.WithTimeout(ctx, processTimeout)
	defer cancel()
	running, _, err := s.runner.IsRunning(ctx, s.pattern)
	if err != nil {
		attemptFailures.WithLabelValues(string(types.MethodProcess), "error").Inc()
		return types.ConnectionResult{}, false
	}
	if !running {
		return types.ConnectionResult{}, false
	}
	return types.ConnectionResult{
		Connected: false,
		Models:    append([]string{}, s.fallback...),
		Method:    types.MethodProcess,
		Message:   messageProcessOnly,
	}, true
}
