package pool

import (
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/prometheus/client_golang/prometheus"
)

// Engine is the contract shared by Pool and the sequential fallback
// (NewSequential): submit work, block until quiescent, shut down. Code
// that constructs a pool from config (see pkg/poolconfig) should depend on
// this instead of *Pool directly.
type Engine interface {
	Submit(fn Task) *TaskHandle
	Wait()
	Close()
}

var (
	_ Engine = (*Pool)(nil)
	_ Engine = (*SequentialPool)(nil)
)

// Pool is the fixed-size worker pool: N goroutines draining a single FIFO
// queue, guarded by one mutex and two condition variables — one to wake an
// idle worker when work arrives, one to wake a Wait caller once the pool
// goes quiescent.
type Pool struct {
	q             *queue
	strategy      Strategy
	workerDone    []chan struct{}
	stackSize     int64
	stackSlot     stackSizeSlot
	logger        *log.Entry
	metrics       *metrics
	metricsPeriod time.Duration
	metricsStop   chan struct{}
	selfWait      *selfWaitRegistry

	closeOnce sync.Once
}

// Option configures a Pool at construction time.
type Option func(*Pool)

// WithStackSize overrides the default 8 MiB stack ceiling each worker
// applies when it is spawned. The ceiling is process-wide (see
// applyStackSize), so the most recent spawn's value applies to every
// goroutine. Passing 0 means "platform default" per the stack-size slot
// contract.
func WithStackSize(bytes int64) Option {
	return func(p *Pool) { p.stackSize = bytes }
}

// WithLogger overrides the pool's logrus entry. The default logs through
// the standard logrus logger with component="pool".
func WithLogger(entry *log.Entry) Option {
	return func(p *Pool) { p.logger = entry }
}

// WithMetrics registers the pool's Prometheus collectors (active tasks,
// queue depth, submitted/completed/panicked counters) under namespace into
// reg. Without this option the pool still tracks the same numbers
// in-memory; they're just never exposed.
func WithMetrics(reg prometheus.Registerer, namespace string) Option {
	return func(p *Pool) { p.metrics = newMetrics(reg, namespace) }
}

// WithSelfWaitDetection turns on the opt-in guard against a worker calling
// Wait on its own pool, which would otherwise deadlock. Off by default.
func WithSelfWaitDetection() Option {
	return func(p *Pool) { p.selfWait = newSelfWaitRegistry() }
}

// WithQueueMetricsInterval starts a background refresh of the active/queued
// gauges every d, in addition to the updates already made inline on
// Submit and on task completion. A zero or negative d disables the
// ticker (the default): the inline updates alone keep the gauges correct,
// so the ticker exists only to still move them for a registry scraped by a
// puller that might otherwise catch the pool between updates on a long-idle
// queue.
func WithQueueMetricsInterval(d time.Duration) Option {
	return func(p *Pool) { p.metricsPeriod = d }
}

// New constructs a pool sized by strategy.ComputeThreadCount and spawns its
// workers. Each worker runs strategy.ApplyThreadStrategy(index) once,
// before pulling its first task.
//
// Go's `go` statement cannot itself fail the way a pthread_create can, so
// the only construction error this returns is a nil strategy; see
// DESIGN.md for why New still returns an error rather than only *Pool.
func New(strategy Strategy, opts ...Option) (*Pool, error) {
	if strategy == nil {
		return nil, ErrNilStrategy
	}

	n := strategy.ComputeThreadCount()
	if n <= 0 {
		n = 1
	}

	p := &Pool{
		q:         newQueue(),
		strategy:  strategy,
		stackSize: DefaultStackSizeBytes,
		stackSlot: newStackSizeSlot(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = defaultLogger()
	}
	if p.metrics == nil {
		p.metrics = newMetrics(nil, "")
	}

	p.workerDone = make([]chan struct{}, n)
	for i := 0; i < n; i++ {
		p.workerDone[i] = make(chan struct{})
		go func(index int) {
			applyStackSize(p.stackSlot.consume())
			p.workerLoop(index)
		}(i)
		p.stackSlot.set(p.stackSize)
	}

	if p.metricsPeriod > 0 {
		p.metricsStop = make(chan struct{})
		go p.runMetricsTicker()
	}

	p.logger.WithField("workers", n).Info("pool started")
	return p, nil
}

// Submit wraps fn in a Task and TaskHandle pair, enqueues it and returns
// the handle immediately. Submit is O(1) amortised and never blocks on
// task execution; it panics if called after Close.
func (p *Pool) Submit(fn Task) *TaskHandle {
	if fn == nil {
		panic("pool: submit nil task")
	}
	h := newTaskHandle()
	p.q.pushBack(&taskItem{handle: h, fn: fn})
	p.metrics.submitted.Inc()
	p.metrics.queued.Set(float64(p.q.len()))
	return h
}

// Wait blocks until the queue is empty and no task is in flight. It does
// not shut the pool down; further submissions remain legal afterward.
//
// Calling Wait from inside a task running on this same pool deadlocks
// unless WithSelfWaitDetection was passed to New, in which case the call
// logs and returns instead of blocking forever. Engine's Wait has no error
// return, so there is no way to surface ErrSelfWait to the caller here;
// without detection enabled, a self-wait is simply a deadlock the caller
// must avoid.
func (p *Pool) Wait() {
	if p.selfWait != nil && p.selfWait.isWorker() {
		p.logger.Warn(ErrSelfWait)
		return
	}
	p.q.wait()
}

// Close shuts the pool down: it stops accepting new submissions, wakes
// every idle worker, and joins them in index order. Any tasks still queued
// when Close is called are executed before their workers exit
// (drain-on-shutdown).
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		if p.metricsStop != nil {
			close(p.metricsStop)
		}
		p.q.shutdown()
		for _, done := range p.workerDone {
			<-done
		}
		p.logger.Info("pool stopped")
	})
}
