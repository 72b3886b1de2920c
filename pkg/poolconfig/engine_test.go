package poolconfig

import (
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
)

func TestBuildEngine_ConcurrentByDefault(t *testing.T) {
	cfg, err := New("")
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	engine, err := BuildEngine(cfg, nil, nil)
	if err != nil {
		t.Fatalf("BuildEngine: %v", err)
	}
	defer engine.Close()

	done := make(chan struct{})
	engine.Submit(func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("submitted task never ran")
	}
}

func TestBuildEngine_SequentialWhenConcurrencyDisabled(t *testing.T) {
	cfg, err := New("")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	cfg.Validation.DisableConcurrency = true

	engine, err := BuildEngine(cfg, nil, nil)
	if err != nil {
		t.Fatalf("BuildEngine: %v", err)
	}

	var ran bool
	engine.Submit(func() { ran = true })
	if ran {
		t.Fatal("sequential task ran before Wait/Close")
	}
	engine.Close()
	if !ran {
		t.Fatal("sequential task did not run on Close")
	}
}

func TestBuildEngine_CustomLoggerIsAccepted(t *testing.T) {
	cfg, err := New("")
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	entry := log.WithField("test", "engine")
	engine, err := BuildEngine(cfg, nil, entry)
	if err != nil {
		t.Fatalf("BuildEngine: %v", err)
	}
	defer engine.Close()

	done := make(chan struct{})
	engine.Submit(func() { close(done) })
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("submitted task never ran with a custom logger wired in")
	}
}
