// Package download runs `ollama pull` in the background and keeps a pollable
// progress state per model.
package download

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"ollamagui/internal/common/execx"
	"ollamagui/internal/i18n"
	"ollamagui/pkg/types"
)

const (
	DefaultPullTimeout = 2 * time.Hour
	DefaultRetention   = time.Hour
	DefaultMaxEntries  = 256

	cancelWait = 5 * time.Second
)

// ModelLister reports the backend's current model list. A model on it counts
// as installed even when the list is the configured fallback.
type ModelLister interface {
	Models(ctx context.Context) []string
}

// Invalidator drops a cache that a finished pull makes stale.
type Invalidator interface {
	Invalidate()
}

// Config wires an Orchestrator. Runner and Models are required.
type Config struct {
	Bin         string
	PullTimeout time.Duration
	// Retention bounds how long finished states stay pollable.
	Retention  time.Duration
	MaxEntries int

	Runner   execx.Runner
	Models   ModelLister
	Catalog  Invalidator
	Messages *i18n.Catalog
	Events   EventPublisher
	Logger   *zerolog.Logger
	// BaseContext parents every pull; canceling it aborts them all.
	BaseContext context.Context
	Now         func() time.Time
}

type task struct {
	id       string
	cancel   context.CancelFunc
	done     chan struct{}
	canceled atomic.Bool
}

// Orchestrator accepts download requests and supervises the pull tasks.
type Orchestrator struct {
	cfg     Config
	tracker *Tracker
	msgs    *i18n.Catalog
	events  EventPublisher
	log     zerolog.Logger

	base       context.Context
	baseCancel context.CancelFunc

	mu     sync.Mutex
	tasks  map[string]*task
	closed bool
	wg     sync.WaitGroup
}

func New(cfg Config) *Orchestrator {
	if cfg.Bin == "" {
		cfg.Bin = "ollama"
	}
	if cfg.PullTimeout <= 0 {
		cfg.PullTimeout = DefaultPullTimeout
	}
	if cfg.Retention <= 0 {
		cfg.Retention = DefaultRetention
	}
	if cfg.MaxEntries <= 0 {
		cfg.MaxEntries = DefaultMaxEntries
	}
	if cfg.Runner == nil {
		cfg.Runner = execx.NewExecRunner()
	}
	parent := cfg.BaseContext
	if parent == nil {
		parent = context.Background()
	}
	o := &Orchestrator{
		cfg:     cfg,
		tracker: NewTracker(cfg.Now),
		msgs:    cfg.Messages,
		events:  cfg.Events,
		log:     zerolog.Nop(),
		tasks:   make(map[string]*task),
	}
	if o.msgs == nil {
		o.msgs = i18n.New("")
	}
	if o.events == nil {
		o.events = noopPublisher{}
	}
	if cfg.Logger != nil {
		o.log = *cfg.Logger
	}
	o.base, o.baseCancel = context.WithCancel(parent)
	return o
}

// SetEventPublisher swaps the event sink.
func (o *Orchestrator) SetEventPublisher(p EventPublisher) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if p == nil {
		p = noopPublisher{}
	}
	o.events = p
}

// ModelKey is the name under which a pull of model is tracked.
func ModelKey(model string) string { return strings.TrimSpace(model) }

// Start validates the request and launches a background pull. It returns
// without waiting for the pull.
func (o *Orchestrator) Start(ctx context.Context, model, language string) (types.DownloadState, error) {
	model = ModelKey(model)
	if model == "" {
		downloadRejected.WithLabelValues("model_required").Inc()
		return types.DownloadState{}, ErrModelRequired
	}
	if o.cfg.Models != nil && slices.Contains(o.cfg.Models.Models(ctx), model) {
		downloadRejected.WithLabelValues("already_installed").Inc()
		return types.DownloadState{}, ErrAlreadyInstalled(model)
	}
	o.evict()

	st := types.DownloadState{
		Status:   types.DownloadDownloading,
		Progress: 0,
		Message:  o.msgs.T(language, i18n.KeyDownloadStarted),
		ID:       uuid.NewString(),
	}

	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return types.DownloadState{}, ErrClosed
	}
	if !o.tracker.Begin(model, st) {
		o.mu.Unlock()
		downloadRejected.WithLabelValues("already_downloading").Inc()
		return types.DownloadState{}, ErrAlreadyDownloading(model)
	}
	tctx, cancel := context.WithTimeout(o.base, o.cfg.PullTimeout)
	t := &task{id: st.ID, cancel: cancel, done: make(chan struct{})}
	o.tasks[model] = t
	o.wg.Add(1)
	events := o.events
	o.mu.Unlock()

	downloadInflight.Inc()
	events.Publish(Event{Name: EventStart, Model: model, ID: st.ID})
	o.log.Info().Str("model", model).Str("id", st.ID).Msg("download accepted")
	go o.run(tctx, model, language, t)
	return st, nil
}

// Progress returns a snapshot of the state of model, or an unknown state.
func (o *Orchestrator) Progress(model, language string) types.DownloadState {
	o.evict()
	if st, ok := o.tracker.Get(ModelKey(model)); ok {
		return st
	}
	return types.DownloadState{
		Status:   types.DownloadUnknown,
		Progress: 0,
		Message:  o.msgs.T(language, i18n.KeyDownloadNotFound),
	}
}

// Cancel aborts the running pull of model. It reports false when no pull
// runs. It waits briefly for the task to record its final state.
func (o *Orchestrator) Cancel(model string) bool {
	model = ModelKey(model)
	o.mu.Lock()
	t, ok := o.tasks[model]
	o.mu.Unlock()
	if !ok {
		return false
	}
	t.canceled.Store(true)
	t.cancel()
	select {
	case <-t.done:
	case <-time.After(cancelWait):
		o.log.Warn().Str("model", model).Msg("pull did not stop after cancel")
	}
	return true
}

// Close cancels every pull and waits for the tasks to exit or ctx to end.
func (o *Orchestrator) Close(ctx context.Context) error {
	o.mu.Lock()
	o.closed = true
	o.mu.Unlock()
	o.baseCancel()

	done := make(chan struct{})
	go func() {
		o.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Active returns the models with a running pull, sorted.
func (o *Orchestrator) Active() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]string, 0, len(o.tasks))
	for m := range o.tasks {
		out = append(out, m)
	}
	slices.Sort(out)
	return out
}

func (o *Orchestrator) run(ctx context.Context, model, language string, t *task) {
	defer func() {
		t.cancel()
		o.mu.Lock()
		if cur, ok := o.tasks[model]; ok && cur == t {
			delete(o.tasks, model)
		}
		events := o.events
		o.mu.Unlock()
		if r := recover(); r != nil {
			o.fail(model, language, t, fmt.Errorf("panic: %v", r), events)
		}
		downloadInflight.Dec()
		close(t.done)
		o.wg.Done()
	}()

	log := o.log.With().Str("model", model).Str("id", t.id).Logger()
	start := time.Now()
	err := o.cfg.Runner.Stream(ctx, func(line string) {
		log.Debug().Str("line", line).Msg("pull")
		o.tracker.Update(model, t.id, func(st *types.DownloadState) {
			st.Progress = Advance(st.Progress, line)
		})
	}, o.cfg.Bin, "pull", model)

	o.mu.Lock()
	events := o.events
	o.mu.Unlock()
	if err != nil {
		if t.canceled.Load() {
			err = errCanceled
		} else if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			err = fmt.Errorf("pull timed out after %s", o.cfg.PullTimeout)
		}
		o.fail(model, language, t, err, events)
		log.Warn().Err(err).Dur("dur", time.Since(start)).Msg("download failed")
		return
	}
	o.tracker.Update(model, t.id, func(st *types.DownloadState) {
		st.Status = types.DownloadCompleted
		st.Progress = 100
		st.Message = o.msgs.T(language, i18n.KeyDownloadComplete)
	})
	if o.cfg.Catalog != nil {
		o.cfg.Catalog.Invalidate()
	}
	downloadTotal.WithLabelValues("completed").Inc()
	events.Publish(Event{Name: EventComplete, Model: model, ID: t.id, Fields: map[string]any{"dur": time.Since(start)}})
	log.Info().Dur("dur", time.Since(start)).Msg("download complete")
}

var errCanceled = errors.New("canceled")

func (o *Orchestrator) fail(model, language string, t *task, err error, events EventPublisher) {
	msg := o.msgs.T(language, i18n.KeyDownloadError)
	name, result := EventError, "error"
	switch {
	case errors.Is(err, errCanceled):
		msg += ": " + o.msgs.T(language, i18n.KeyDownloadCanceled)
		name, result = EventCancel, "canceled"
	case execx.ExitCode(err) > 0:
		// the CLI already printed its reason to the stream
	default:
		msg += ": " + err.Error()
	}
	o.tracker.Update(model, t.id, func(st *types.DownloadState) {
		st.Status = types.DownloadError
		st.Progress = 0
		st.Message = msg
	})
	downloadTotal.WithLabelValues(result).Inc()
	events.Publish(Event{Name: name, Model: model, ID: t.id, Fields: map[string]any{"error": err.Error()}})
}

func (o *Orchestrator) evict() {
	if n := o.tracker.Evict(o.cfg.Retention, o.cfg.MaxEntries); n > 0 {
		o.log.Debug().Int("evicted", n).Msg("download states evicted")
	}
}
