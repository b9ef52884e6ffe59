package download

import (
	"sort"
	"sync"
	"time"

	"ollamagui/pkg/types"
)

type entry struct {
	state      types.DownloadState
	finishedAt time.Time
}

// Tracker owns the per-model DownloadState table.
type Tracker struct {
	mu      sync.Mutex
	entries map[string]*entry
	now     func() time.Time
}

func NewTracker(now func() time.Time) *Tracker {
	if now == nil {
		now = time.Now
	}
	return &Tracker{entries: make(map[string]*entry), now: now}
}

// Begin records a new downloading state for model unless one is already
// downloading. The check and the insert are atomic.
func (t *Tracker) Begin(model string, st types.DownloadState) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if e, ok := t.entries[model]; ok && e.state.Status == types.DownloadDownloading {
		return false
	}
	st.Status = types.DownloadDownloading
	t.entries[model] = &entry{state: st}
	return true
}

// Update applies fn to the state of model when it still belongs to task id
// and is not terminal. A terminal state stamps the finish time.
func (t *Tracker) Update(model, id string, fn func(*types.DownloadState)) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	e, ok := t.entries[model]
	if !ok || e.state.ID != id || e.state.Status.Terminal() {
		return false
	}
	fn(&e.state)
	if e.state.Status.Terminal() {
		e.finishedAt = t.now()
	}
	return true
}

// Get returns a snapshot of the state of model.
func (t *Tracker) Get(model string) (types.DownloadState, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	e, ok := t.entries[model]
	if !ok {
		return types.DownloadState{}, false
	}
	return e.state, true
}

// Len returns the number of tracked models.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}

// Evict drops terminal entries finished at least retention ago, then the
// oldest terminal entries beyond maxTerminal. Downloading entries stay.
func (t *Tracker) Evict(retention time.Duration, maxTerminal int) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	now := t.now()
	removed := 0
	type aged struct {
		model string
		at    time.Time
	}
	var terminal []aged
	for model, e := range t.entries {
		if !e.state.Status.Terminal() {
			continue
		}
		if retention > 0 && now.Sub(e.finishedAt) >= retention {
			delete(t.entries, model)
			removed++
			continue
		}
		terminal = append(terminal, aged{model: model, at: e.finishedAt})
	}
	if maxTerminal > 0 && len(terminal) > maxTerminal {
		sort.Slice(terminal, func(i, j int) bool { return terminal[i].at.Before(terminal[j].at) })
		for _, a := range terminal[:len(terminal)-maxTerminal] {
			delete(t.entries, a.model)
			removed++
		}
	}
	return removed
}
