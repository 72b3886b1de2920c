package pool

import (
	"context"
	"testing"
	"time"
)

func TestTaskHandle_ReadyBeforeAndAfterResolve(t *testing.T) {
	h := newTaskHandle()
	if h.Ready() {
		t.Fatal("a fresh handle reports ready")
	}
	h.resolve(nil)
	if !h.Ready() {
		t.Fatal("handle does not report ready after resolve")
	}
}

func TestTaskHandle_AwaitRespectsContextDeadline(t *testing.T) {
	h := newTaskHandle()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if err := h.Await(ctx); err != context.DeadlineExceeded {
		t.Fatalf("Await = %v, want context.DeadlineExceeded", err)
	}
}

func TestTaskHandle_ResolveIsIdempotent(t *testing.T) {
	h := newTaskHandle()
	h.resolve(nil)
	h.resolve(nil) // must not panic on double-close of h.done
	if !h.Ready() {
		t.Fatal("handle not ready after resolve")
	}
}

func TestTaskHandle_IDIsStableAndUnique(t *testing.T) {
	a := newTaskHandle()
	b := newTaskHandle()
	if a.ID() == b.ID() {
		t.Fatal("two distinct handles share an ID")
	}
	if a.ID() != a.ID() {
		t.Fatal("ID is not stable across calls")
	}
}
