package pool

import "errors"

var (
	// ErrNilStrategy is returned by New when constructed with a nil Strategy.
	ErrNilStrategy = errors.New("pool: strategy must not be nil")

	// ErrSelfWait is logged as a warning by Wait (which has no error result)
	// when self-wait detection is enabled and the caller is itself one of
	// the pool's own workers; Wait then returns without blocking. Without
	// detection, this situation deadlocks instead (documented caller
	// responsibility, see DESIGN.md).
	ErrSelfWait = errors.New("pool: Wait called from inside one of the pool's own workers")
)

// ErrSubmitAfterShutdown is the panic value raised by Submit once the pool
// has started shutting down. Submitting after shutdown is a programmer
// error, not a recoverable condition, so it is fatal rather than returned.
var ErrSubmitAfterShutdown = errors.New("pool: submit called after shutdown")
