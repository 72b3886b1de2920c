package pool

import "fmt"

// workerLoop is the long-lived per-worker state machine: Starting -> Idle ->
// Dispatching -> Executing -> Finalising -> Idle, until shutdown drains the
// queue and it exits.
func (p *Pool) workerLoop(index int) {
	defer close(p.workerDone[index])

	if p.selfWait != nil {
		p.selfWait.mark()
		defer p.selfWait.unmark()
	}

	p.strategy.ApplyThreadStrategy(index)

	for {
		item, ok := p.q.popFrontOrWait()
		if !ok {
			return
		}
		p.metrics.active.Set(float64(p.q.active()))
		p.metrics.queued.Set(float64(p.q.len()))
		p.runTask(item)
		p.metrics.active.Set(float64(p.q.active()))
	}
}

// runTask executes one taskItem to completion, recovering a panic instead
// of letting it escape the worker goroutine. ActiveCount is only
// decremented (via q.finishTask) once the task body and any panic recovery
// are both done — the ordering the active-count protocol depends on.
func (p *Pool) runTask(item *taskItem) {
	defer p.q.finishTask()
	defer func() {
		if r := recover(); r != nil {
			item.handle.resolve(fmt.Errorf("pool: task panicked: %v", r))
			p.metrics.panicked.Inc()
		}
	}()

	item.fn()
	item.handle.resolve(nil)
	p.metrics.completed.Inc()
}
