package poolconfig

import (
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"

	"github.com/corewerks/taskpool/pkg/pool"
)

// BuildEngine constructs the pool.Engine the config describes: a concurrent
// Pool sized to Pool.Workers, or the sequential fallback if
// Validation.DisableConcurrency is set. reg may be nil, in which case the
// concurrent pool's metrics are tracked in-memory but never exposed. logger
// may be nil, in which case the engine falls back to its own default
// logrus entry.
func BuildEngine(c *Config, reg prometheus.Registerer, logger *log.Entry) (pool.Engine, error) {
	strategy := pool.NewFixedStrategy(c.Pool.Workers)

	if c.Validation.DisableConcurrency {
		var opts []pool.SequentialOption
		if logger != nil {
			opts = append(opts, pool.WithSequentialLogger(logger))
		}
		return pool.NewSequential(strategy, opts...), nil
	}

	opts := []pool.Option{
		pool.WithStackSize(c.Pool.StackSizeBytes),
		pool.WithMetrics(reg, "taskpool"),
	}
	if logger != nil {
		opts = append(opts, pool.WithLogger(logger))
	}
	if c.Pool.DetectSelfWait {
		opts = append(opts, pool.WithSelfWaitDetection())
	}
	if c.Pool.QueueMetricsInterval > 0 {
		opts = append(opts, pool.WithQueueMetricsInterval(c.Pool.QueueMetricsInterval))
	}

	return pool.New(strategy, opts...)
}
