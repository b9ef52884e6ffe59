package backend

import (
	"context"
	"errors"
	"strings"
	"time"

	"ollamagui/internal/common/execx"
	"ollamagui/pkg/types"
)

// CommandStrategy lists models through the local `ollama list` CLI.
type CommandStrategy struct {
	runner  execx.Runner
	bin     string
	timeout time.Duration
}

func NewCommandStrategy(runner execx.Runner, bin string, timeout time.Duration) *CommandStrategy {
	if bin == "" {
		bin = "ollama"
	}
	if timeout <= 0 {
		timeout = defaultCommandTimeout
	}
	return &CommandStrategy{runner: runner, bin: bin, timeout: timeout}
}

func (s *CommandStrategy) Name() types.Method { return types.MethodCommand }

func (s *CommandStrategy) Attempt(ctx context.Context) (types.ConnectionResult, bool) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	out, err := s.runner.Output(ctx, s.bin, "list")
	if err != nil {
		reason := "exit"
		if errors.Is(err, context.DeadlineExceeded) {
			reason = "timeout"
		} else if execx.ExitCode(err) < 0 {
			reason = "not_found"
		}
		attemptFailures.WithLabelValues(string(types.MethodCommand), reason).Inc()
		return types.ConnectionResult{}, false
	}
	models := ParseListOutput(string(out))
	if len(models) == 0 {
		attemptFailures.WithLabelValues(string(types.MethodCommand), "empty").Inc()
		return types.ConnectionResult{}, false
	}
	return connected(models, types.MethodCommand), true
}

// ParseListOutput extracts model names from `ollama list` output. The header
// line is skipped; the first field of every other non-blank line is kept when
// it carries a tag.
func ParseListOutput(out string) []string {
	lines := strings.Split(strings.ReplaceAll(out, "\r\n", "\n"), "\n")
	models := []string{}
	for i, line := range lines {
		if i == 0 {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) == 0 || !strings.Contains(fields[0], ":") {
			continue
		}
		models = append(models, fields[0])
	}
	return models
}
