// Package execx wraps os/exec behind a small interface so callers that shell
// out to the ollama CLI can be tested with fakes.
package execx

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Runner executes external processes.
type Runner interface {
	// Output runs name with args and returns stdout. On failure the error
	// includes a trimmed stderr tail.
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
	// Stream runs name with args and calls onLine for every line of combined
	// stdout/stderr until the process exits.
	Stream(ctx context.Context, onLine func(string), name string, args ...string) error
	// IsRunning reports whether a process other than the caller exists whose
	// command line matches the extended regexp pattern.
	IsRunning(ctx context.Context, pattern string) (bool, int, error)
}

// ExecRunner implements Runner with os/exec.
type ExecRunner struct{}

// NewExecRunner returns a Runner backed by real processes.
func NewExecRunner() *ExecRunner { return &ExecRunner{} }

const (
	maxStderrTail = 4096
	// bounds how long Wait lingers on pipes held open by orphaned children
	waitDelay = 500 * time.Millisecond
)

func (ExecRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.WaitDelay = waitDelay
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%s: %w", name, ctx.Err())
		}
		if tail := tailString(stderr.String()); tail != "" {
			return nil, fmt.Errorf("%w: %s", err, tail)
		}
		return nil, err
	}
	return stdout.Bytes(), nil
}

func (ExecRunner) Stream(ctx context.Context, onLine func(string), name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.WaitDelay = waitDelay
	pr, pw := io.Pipe()
	// A single pipe for both streams keeps the interleaving the CLI produces.
	cmd.Stdout = pw
	cmd.Stderr = pw
	if err := cmd.Start(); err != nil {
		_ = pw.Close()
		_ = pr.Close()
		return fmt.Errorf("start %s: %w", name, err)
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		scanLines(pr, onLine)
	}()

	werr := cmd.Wait()
	_ = pw.Close()
	wg.Wait()
	_ = pr.Close()
	if werr != nil && ctx.Err() != nil {
		return fmt.Errorf("%s: %w", name, ctx.Err())
	}
	return werr
}

func (ExecRunner) IsRunning(ctx context.Context, pattern string) (bool, int, error) {
	out, err := exec.CommandContext(ctx, "pgrep", "-f", pattern).Output()
	if err != nil {
		// pgrep exits 1 when nothing matched
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
			return false, 0, nil
		}
		return false, 0, fmt.Errorf("pgrep failed: %w", err)
	}
	self := os.Getpid()
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		pid, err := strconv.Atoi(line)
		if err != nil {
			return true, 0, nil
		}
		if pid == self {
			continue
		}
		return true, pid, nil
	}
	return false, 0, nil
}

// ExitCode extracts the process exit code from err. It returns 0 for a nil
// error and -1 when err does not carry an exit status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

// scanLines splits r on '\n' and '\r' so carriage-return progress bars
// surface as separate lines.
func scanLines(r io.Reader, onLine func(string)) {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), 1<<20)
	s.Split(splitCRLF)
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		if line == "" {
			continue
		}
		if onLine != nil {
			onLine(line)
		}
	}
	// drain so the writer side never blocks after a scanner error
	_, _ = io.Copy(io.Discard, r)
}

func splitCRLF(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

func tailString(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > maxStderrTail {
		s = s[len(s)-maxStderrTail:]
	}
	return s
}
