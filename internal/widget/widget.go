package widget

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/lei/jobtabs/internal/models"
	"github.com/lei/jobtabs/internal/provider"
	"github.com/lei/jobtabs/pkg/logger"
)

var (
	// ErrAlreadyMounted is returned by a second Mount
	ErrAlreadyMounted = errors.New("widget already mounted")
	// ErrUnmounted is returned once the widget's lifetime has ended
	ErrUnmounted = errors.New("widget unmounted")
)

type lifecycle int

const (
	lifecycleIdle lifecycle = iota
	lifecycleMounted
	lifecycleUnmounted
)

// Widget owns the job list, the selected index and the loading phase for
// one mounted lifetime. It loads the job list exactly once per mount.
type Widget struct {
	id     string
	source provider.Source
	logger *logger.Logger

	mu        sync.Mutex
	state     State
	lifecycle lifecycle
	cancel    context.CancelFunc
	ready     chan struct{}
	settled   chan struct{}
	subs      map[uint64]chan State
	nextSub   uint64
}

// New creates an unmounted widget in the Loading phase
func New(source provider.Source, log *logger.Logger) *Widget {
	id := uuid.NewString()
	return &Widget{
		id:      id,
		source:  source,
		logger:  log.With("mount_id", id),
		state:   State{Phase: PhaseLoading, Jobs: []models.Job{}},
		ready:   make(chan struct{}),
		settled: make(chan struct{}),
		subs:    make(map[uint64]chan State),
	}
}

// ID returns the mount identifier
func (w *Widget) ID() string {
	return w.id
}

// Mount starts the single asynchronous load. The load is bound to ctx and
// to the widget's lifetime; Unmount cancels it.
func (w *Widget) Mount(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch w.lifecycle {
	case lifecycleMounted:
		return ErrAlreadyMounted
	case lifecycleUnmounted:
		return ErrUnmounted
	}

	loadCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.lifecycle = lifecycleMounted

	w.logger.Info("widget: mounted, loading jobs")
	go w.load(loadCtx)
	return nil
}

// Unmount ends the widget's lifetime. A load still in flight is canceled
// and its result discarded. Subscriptions are closed.
func (w *Widget) Unmount() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.lifecycle == lifecycleUnmounted {
		return
	}
	wasMounted := w.lifecycle == lifecycleMounted
	w.lifecycle = lifecycleUnmounted
	if w.cancel != nil {
		w.cancel()
	}
	if !wasMounted {
		close(w.settled)
	}
	for id, ch := range w.subs {
		close(ch)
		delete(w.subs, id)
	}

	w.logger.Info("widget: unmounted", "phase", w.state.Phase.String())
}

func (w *Widget) load(ctx context.Context) {
	defer close(w.settled)

	jobs, err := w.source.FetchJobs(ctx)

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.lifecycle != lifecycleMounted {
		w.logger.Debug("widget: discarding load result after unmount", "error", err)
		return
	}

	if err != nil {
		w.logger.Error("widget: failed to load jobs", "error", err)
	} else {
		w.state.Jobs = jobs
		w.logger.Info("widget: jobs loaded", "count", len(jobs))
	}
	w.state.Phase = PhaseReady
	close(w.ready)
	w.broadcast()
}

// Select sets the selected index. Any integer is accepted; renderers
// bound-check it.
func (w *Widget) Select(index int) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.lifecycle == lifecycleUnmounted {
		return ErrUnmounted
	}
	if w.state.Selected == index {
		return nil
	}

	w.state.Selected = index
	w.logger.Debug("widget: selection changed", "index", index)
	w.broadcast()
	return nil
}

// Snapshot returns a copy of the current state
func (w *Widget) Snapshot() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state.clone()
}

// Ready is closed once the phase becomes Ready. It stays open forever if
// the widget is unmounted first.
func (w *Widget) Ready() <-chan struct{} {
	return w.ready
}

// Settled is closed once the load has finished, whether applied or
// discarded, or when the widget is unmounted before it was mounted.
func (w *Widget) Settled() <-chan struct{} {
	return w.settled
}

// Subscribe returns a channel carrying the latest state after every change,
// primed with the current state. Slow readers only see the newest state.
// The channel is closed on Unmount or when cancel is called.
func (w *Widget) Subscribe() (<-chan State, func()) {
	w.mu.Lock()
	defer w.mu.Unlock()

	ch := make(chan State, 1)
	if w.lifecycle == lifecycleUnmounted {
		close(ch)
		return ch, func() {}
	}

	id := w.nextSub
	w.nextSub++
	w.subs[id] = ch
	ch <- w.state.clone()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			w.mu.Lock()
			defer w.mu.Unlock()
			if sub, ok := w.subs[id]; ok {
				close(sub)
				delete(w.subs, id)
			}
		})
	}
	return ch, cancel
}

// broadcast must be called with mu held
func (w *Widget) broadcast() {
	for _, ch := range w.subs {
		select {
		case <-ch:
		default:
		}
		ch <- w.state.clone()
	}
}
