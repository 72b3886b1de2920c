package poolconfig

import "time"

const (
	defaultWorkers              = 4
	defaultStackSizeBytes int64 = 8 * 1024 * 1024
	defaultQueueMetricsInterval = 5 * time.Second
	defaultAdminAddress         = "127.0.0.1:9400"
)
