package poolconfig

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

// Config is the on-disk configuration for a taskpoold process: how big the
// pool is, whether it runs concurrently at all, and where its metrics and
// admin surface listen.
type Config struct {
	Pool       PoolConfig  `yaml:"pool,omitempty" json:"pool,omitempty"`
	Admin      AdminConfig `yaml:"admin,omitempty" json:"admin,omitempty"`
	Validation Validation  `yaml:"validation,omitempty" json:"validation,omitempty"`
}

// PoolConfig sizes and tunes the engine itself.
type PoolConfig struct {
	Workers              int           `yaml:"workers,omitempty" json:"workers,omitempty"`
	StackSizeBytes       int64         `yaml:"stack-size-bytes,omitempty" json:"stack-size-bytes,omitempty"`
	QueueMetricsInterval time.Duration `yaml:"queue-metrics-interval,omitempty" json:"queue-metrics-interval,omitempty"`
	DetectSelfWait       bool          `yaml:"detect-self-wait,omitempty" json:"detect-self-wait,omitempty"`
}

// AdminConfig controls the HTTP surface exposing /metrics and /healthz.
type AdminConfig struct {
	Address string `yaml:"address,omitempty" json:"address,omitempty"`
}

// Validation carries the switch that selects between the concurrent pool
// and the sequential fallback.
type Validation struct {
	DisableConcurrency bool `yaml:"disable-concurrency,omitempty" json:"disable-concurrency,omitempty"`
}

// New reads file, if non-empty, as YAML into a Config and applies defaults.
// An empty file path yields an all-defaults Config.
func New(file string) (*Config, error) {
	c := new(Config)
	if file != "" {
		b, err := os.ReadFile(file)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(b, c); err != nil {
			return nil, err
		}
	}
	if err := c.validateSetDefaults(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) validateSetDefaults() error {
	if c.Pool.Workers < 0 {
		return fmt.Errorf("pool.workers must not be negative, got %d", c.Pool.Workers)
	}
	if c.Pool.Workers == 0 {
		c.Pool.Workers = defaultWorkers
	}
	if c.Pool.StackSizeBytes == 0 {
		c.Pool.StackSizeBytes = defaultStackSizeBytes
	}
	if c.Pool.QueueMetricsInterval <= 0 {
		c.Pool.QueueMetricsInterval = defaultQueueMetricsInterval
	}
	if c.Admin.Address == "" {
		c.Admin.Address = defaultAdminAddress
	}
	return nil
}
