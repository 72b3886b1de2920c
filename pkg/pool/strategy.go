package pool

import "runtime"

// Strategy is the external collaborator consumed, not implemented, by the
// pool: it supplies the worker count and a per-worker setup hook (e.g.
// affinity pinning). Non-goals keep dynamic scaling and work stealing out
// of scope, so this is read exactly once, at construction.
type Strategy interface {
	// ComputeThreadCount returns the desired number of workers. A value
	// <= 0 is treated by New as 1.
	ComputeThreadCount() int

	// ApplyThreadStrategy runs once per worker, from inside that worker,
	// before it pulls its first task. index ranges over [0, N).
	ApplyThreadStrategy(index int)
}

// FixedStrategy is the simplest Strategy: a fixed worker count and no
// per-worker setup.
type FixedStrategy struct {
	Count int
}

// NewFixedStrategy returns a Strategy that always requests n workers.
func NewFixedStrategy(n int) FixedStrategy {
	return FixedStrategy{Count: n}
}

func (s FixedStrategy) ComputeThreadCount() int { return s.Count }

func (s FixedStrategy) ApplyThreadStrategy(int) {}

// NumCPUStrategy sizes the pool to the number of logical CPUs visible to
// the process, with no per-worker setup.
type NumCPUStrategy struct{}

func (NumCPUStrategy) ComputeThreadCount() int { return runtime.NumCPU() }

func (NumCPUStrategy) ApplyThreadStrategy(int) {}
