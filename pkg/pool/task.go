package pool

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Task is the unit of work the pool executes. It takes no arguments and
// returns nothing; a panic inside a Task is captured on the TaskHandle
// instead of crashing the worker.
type Task func()

// TaskHandle is the completion token returned by Submit. It transitions
// exactly once, monotonically, from pending to ready when the bound Task
// returns (normally or via panic). It is safe to share across goroutines;
// multiple owners may independently call Ready or Await.
type TaskHandle struct {
	id   uuid.UUID
	done chan struct{}

	resolveOnce sync.Once
	err         error

	// lazy, when set, is run at most once the first time the handle is
	// observed (Ready or Await). Only the sequential fallback sets this;
	// the concurrent pool resolves handles itself from the worker loop.
	lazyOnce sync.Once
	lazy     func()
}

func newTaskHandle() *TaskHandle {
	return &TaskHandle{
		id:   uuid.New(),
		done: make(chan struct{}),
	}
}

// ID returns the handle's correlation identifier, a random UUID minted when
// the handle is created. The pool writes no per-task log lines, so it never
// logs this ID itself.
func (h *TaskHandle) ID() uuid.UUID {
	return h.id
}

// resolve records the task's outcome and flips the handle from pending to
// ready. Only the worker (or the sequential fallback) ever calls this, and
// only once per handle.
func (h *TaskHandle) resolve(err error) {
	h.resolveOnce.Do(func() {
		h.err = err
		close(h.done)
	})
}

func (h *TaskHandle) ensureRun() {
	if h.lazy != nil {
		h.lazyOnce.Do(h.lazy)
	}
}

// Ready reports whether the bound task has finished, without blocking. For
// handles produced by the sequential fallback, observing readiness is what
// triggers the task to run.
func (h *TaskHandle) Ready() bool {
	h.ensureRun()
	select {
	case <-h.done:
		return true
	default:
		return false
	}
}

// Await blocks until the bound task has finished or ctx is done, whichever
// happens first, and returns the captured outcome (nil on normal
// completion, non-nil if the task panicked).
func (h *TaskHandle) Await(ctx context.Context) error {
	h.ensureRun()
	select {
	case <-h.done:
		return h.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// taskItem binds a Task body to its handle as it travels through the queue.
type taskItem struct {
	handle *TaskHandle
	fn     Task
}
