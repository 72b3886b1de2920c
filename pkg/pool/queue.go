package pool

import "sync"

// queue is the FIFO of taskItems shared by every worker: a single lock
// guards the item list, the active-dispatch count and the enable flag
// together, since all three change atomically with respect to each other
// on every dispatch and completion.
//
// queueCV wakes a single idle worker when work is pushed, and every idle
// worker on shutdown.
// completionCV wakes Wait callers once the queue is both empty and nothing
// is in flight. Both condition variables share queueCV's mutex.
type queue struct {
	mu           sync.Mutex
	queueCV      *sync.Cond
	completionCV *sync.Cond

	items       []*taskItem
	activeCount int
	enableFlag  bool
}

func newQueue() *queue {
	q := &queue{enableFlag: true}
	q.queueCV = sync.NewCond(&q.mu)
	q.completionCV = sync.NewCond(&q.mu)
	return q
}

// pushBack enqueues an item and wakes one idle worker. It panics if the
// queue has already been shut down: submitting after shutdown is a
// programmer error, not a recoverable condition.
func (q *queue) pushBack(item *taskItem) {
	q.mu.Lock()
	if !q.enableFlag {
		q.mu.Unlock()
		panic(ErrSubmitAfterShutdown)
	}
	q.items = append(q.items, item)
	q.mu.Unlock()
	q.queueCV.Signal()
}

// popFrontOrWait blocks until either a task is available or the queue has
// been shut down with nothing left to drain. The second return value is
// false only in the latter case, telling the caller (a worker) to exit.
//
// Incrementing activeCount happens here, before the lock is released, so a
// concurrent Wait can never observe an empty queue while a task is still in
// flight between pop and completion.
func (q *queue) popFrontOrWait() (*taskItem, bool) {
	q.mu.Lock()
	for q.enableFlag && len(q.items) == 0 {
		q.queueCV.Wait()
	}
	if !q.enableFlag && len(q.items) == 0 {
		q.mu.Unlock()
		return nil, false
	}
	item := q.items[0]
	q.items[0] = nil
	q.items = q.items[1:]
	q.activeCount++
	q.mu.Unlock()
	return item, true
}

// finishTask marks one dispatched task as finished. If that makes the pool
// quiescent, it broadcasts completionCV after releasing the lock, so
// waiters wake without immediately blocking on a lock the broadcaster still
// holds.
func (q *queue) finishTask() {
	q.mu.Lock()
	q.activeCount--
	notify := len(q.items) == 0 && q.activeCount == 0
	q.mu.Unlock()
	if notify {
		q.completionCV.Broadcast()
	}
}

// wait blocks until the queue is empty and no task is in flight, tolerating
// spurious wake-ups by re-checking the predicate under the lock.
func (q *queue) wait() {
	q.mu.Lock()
	for !(len(q.items) == 0 && q.activeCount == 0) {
		q.completionCV.Wait()
	}
	q.mu.Unlock()
}

// shutdown flips enableFlag false and wakes every idle worker so each can
// observe it and either drain a remaining task or exit.
func (q *queue) shutdown() {
	q.mu.Lock()
	q.enableFlag = false
	q.mu.Unlock()
	q.queueCV.Broadcast()
}

func (q *queue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

func (q *queue) active() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.activeCount
}
