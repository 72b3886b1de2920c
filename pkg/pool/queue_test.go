package pool

import (
	"testing"
	"time"
)

func TestQueue_PopBlocksUntilPush(t *testing.T) {
	q := newQueue()
	result := make(chan bool, 1)

	go func() {
		_, ok := q.popFrontOrWait()
		result <- ok
	}()

	q.pushBack(&taskItem{handle: newTaskHandle(), fn: func() {}})

	select {
	case ok := <-result:
		if !ok {
			t.Fatal("popFrontOrWait reported shutdown for a live queue")
		}
	case <-time.After(time.Second):
		t.Fatal("popFrontOrWait did not unblock after pushBack")
	}
}

func TestQueue_ShutdownWakesIdleWaiters(t *testing.T) {
	q := newQueue()
	result := make(chan bool, 1)

	go func() {
		_, ok := q.popFrontOrWait()
		result <- ok
	}()

	q.shutdown()

	if ok := <-result; ok {
		t.Fatal("popFrontOrWait returned ok=true on an empty, shut-down queue")
	}
}

func TestQueue_ShutdownDrainsQueuedItemsFirst(t *testing.T) {
	q := newQueue()
	q.pushBack(&taskItem{handle: newTaskHandle(), fn: func() {}})
	q.shutdown()

	item, ok := q.popFrontOrWait()
	if !ok || item == nil {
		t.Fatal("a pre-shutdown item must still be poppable once")
	}
	q.finishTask()

	if _, ok := q.popFrontOrWait(); ok {
		t.Fatal("popFrontOrWait should report shutdown once drained")
	}
}

func TestQueue_PushAfterShutdownPanics(t *testing.T) {
	q := newQueue()
	q.shutdown()

	defer func() {
		if r := recover(); r == nil {
			t.Fatal("pushBack after shutdown did not panic")
		}
	}()
	q.pushBack(&taskItem{handle: newTaskHandle(), fn: func() {}})
}

func TestQueue_WaitObservesQuiescence(t *testing.T) {
	q := newQueue()
	q.pushBack(&taskItem{handle: newTaskHandle(), fn: func() {}})

	item, ok := q.popFrontOrWait()
	if !ok {
		t.Fatal("expected an item")
	}

	waitDone := make(chan struct{})
	go func() {
		q.wait()
		close(waitDone)
	}()

	select {
	case <-waitDone:
		t.Fatal("wait returned while a task was still active")
	default:
	}

	_ = item
	q.finishTask()

	select {
	case <-waitDone:
	case <-time.After(time.Second):
		t.Fatal("wait did not return once the active task finished")
	}
}
