package pool

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestPool_QueueMetricsIntervalRefreshesGaugesWhileIdle(t *testing.T) {
	p, err := New(NewFixedStrategy(1), WithQueueMetricsInterval(5*time.Millisecond))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer p.Close()

	block := make(chan struct{})
	started := make(chan struct{})
	p.Submit(func() {
		close(started)
		<-block
	})
	<-started
	// The worker loop already set the gauge to 1 inline on dispatch; clear it
	// so only the ticker can bring it back while the task is blocked.
	p.metrics.active.Set(0)

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if testutil.ToFloat64(p.metrics.active) == 1 {
			close(block)
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	close(block)
	t.Fatal("active gauge was never refreshed to 1 by the ticker while the worker was blocked")
}

func TestPool_WithoutQueueMetricsIntervalNoTickerRuns(t *testing.T) {
	p, err := New(NewFixedStrategy(1))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if p.metricsStop != nil {
		t.Fatal("metricsStop should be nil when no interval was configured")
	}
	p.Close()
}

func TestPool_CloseStopsMetricsTicker(t *testing.T) {
	p, err := New(NewFixedStrategy(1), WithQueueMetricsInterval(time.Millisecond))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	done := make(chan struct{})
	go func() {
		p.Close()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Close did not return promptly with a metrics ticker running")
	}
}
