package pool

import (
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"
)

// SequentialPool is the degraded, single-threaded stand-in for Pool: same
// Engine contract, no goroutines spawned. Construction reads the strategy's
// thread count purely to decide whether to warn; it always runs with
// effective concurrency 1.
//
// A submitted task does not run at submission time or even necessarily at
// the next Wait: a handle is deferred and only runs the first time it is
// observed (Ready or Await), or when Wait/Close drains the backlog —
// whichever comes first. Each taskItem guards its own execution with a
// sync.Once via TaskHandle.lazy, so however it's triggered, it runs exactly
// once and in submission order relative to Wait's own drain pass.
type SequentialPool struct {
	mu     sync.Mutex
	items  []*taskItem
	logger *log.Entry
}

// SequentialOption configures a SequentialPool at construction time.
type SequentialOption func(*SequentialPool)

// WithSequentialLogger overrides the fallback's logrus entry.
func WithSequentialLogger(entry *log.Entry) SequentialOption {
	return func(s *SequentialPool) { s.logger = entry }
}

// NewSequential builds the fallback. If strategy requests a thread count
// other than 1, it logs a warning and continues — concurrency is disabled
// regardless of what was asked for.
func NewSequential(strategy Strategy, opts ...SequentialOption) *SequentialPool {
	s := &SequentialPool{logger: defaultLogger().WithField("mode", "sequential")}
	for _, opt := range opts {
		opt(s)
	}

	if strategy != nil {
		if n := strategy.ComputeThreadCount(); n != 1 {
			s.logger.Warnf("requested %d workers but concurrency is disabled; running sequentially", n)
		}
	}

	return s
}

// Submit enqueues fn and returns a handle whose task body runs lazily, the
// first time the handle is observed, or when Wait/Close next drains the
// backlog.
func (s *SequentialPool) Submit(fn Task) *TaskHandle {
	if fn == nil {
		panic("pool: submit nil task")
	}

	h := newTaskHandle()
	h.lazy = func() { runSequentialTask(h, fn) }

	s.mu.Lock()
	s.items = append(s.items, &taskItem{handle: h, fn: fn})
	s.mu.Unlock()

	return h
}

// Wait drains every queued task synchronously, in FIFO order, on the
// calling goroutine.
func (s *SequentialPool) Wait() {
	s.drain()
}

// Close drains exactly like Wait; there is no separate shutdown state to
// track since nothing but the caller ever runs a task.
func (s *SequentialPool) Close() {
	s.drain()
}

func (s *SequentialPool) drain() {
	for {
		s.mu.Lock()
		if len(s.items) == 0 {
			s.mu.Unlock()
			return
		}
		item := s.items[0]
		s.items[0] = nil
		s.items = s.items[1:]
		s.mu.Unlock()

		item.handle.ensureRun()
	}
}

func runSequentialTask(h *TaskHandle, fn Task) {
	defer func() {
		if r := recover(); r != nil {
			h.resolve(fmt.Errorf("pool: task panicked: %v", r))
		}
	}()
	fn()
	h.resolve(nil)
}
