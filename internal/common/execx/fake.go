package execx

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// Call records a single FakeRunner invocation.
type Call struct {
	Method string
	Name   string
	Args   []string
}

// FakeRunner is a Runner test double. Unset funcs return an error so
// unexpected invocations fail loudly.
type FakeRunner struct {
	OutputFunc    func(ctx context.Context, name string, args ...string) ([]byte, error)
	StreamFunc    func(ctx context.Context, onLine func(string), name string, args ...string) error
	IsRunningFunc func(ctx context.Context, pattern string) (bool, int, error)

	mu    sync.Mutex
	calls []Call
}

func (f *FakeRunner) record(method, name string, args []string) {
	f.mu.Lock()
	f.calls = append(f.calls, Call{Method: method, Name: name, Args: append([]string(nil), args...)})
	f.mu.Unlock()
}

func (f *FakeRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	f.record("Output", name, args)
	if f.OutputFunc == nil {
		return nil, fmt.Errorf("unexpected Output: %s %s", name, strings.Join(args, " "))
	}
	return f.OutputFunc(ctx, name, args...)
}

func (f *FakeRunner) Stream(ctx context.Context, onLine func(string), name string, args ...string) error {
	f.record("Stream", name, args)
	if f.StreamFunc == nil {
		return fmt.Errorf("unexpected Stream: %s %s", name, strings.Join(args, " "))
	}
	return f.StreamFunc(ctx, onLine, name, args...)
}

func (f *FakeRunner) IsRunning(ctx context.Context, pattern string) (bool, int, error) {
	f.record("IsRunning", pattern, nil)
	if f.IsRunningFunc == nil {
		return false, 0, fmt.Errorf("unexpected IsRunning: %s", pattern)
	}
	return f.IsRunningFunc(ctx, pattern)
}

// Calls returns a copy of the recorded invocations.
func (f *FakeRunner) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Call, len(f.calls))
	copy(out, f.calls)
	return out
}

// CallCount returns how many times method was invoked.
func (f *FakeRunner) CallCount(method string) int {
	n := 0
	for _, c := range f.Calls() {
		if c.Method == method {
			n++
		}
	}
	return n
}
