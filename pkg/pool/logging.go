package pool

import (
	log "github.com/sirupsen/logrus"
)

// The pool never logs a task's individual outcome — only lifecycle events:
// construction, degraded-mode warnings, and shutdown, plus the warning Wait
// emits when opt-in self-wait detection trips. Logging per task
// would mean a log line per submission under load, which drowns out the
// lifecycle events that actually matter for operating the pool.

func defaultLogger() *log.Entry {
	return log.WithField("component", "pool")
}
