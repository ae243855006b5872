package worker

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ncobase/longrun/logging/logger"
)

func TestConfigValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	bad := []*Config{
		{MaxWorkers: 0, QueueSize: 1},
		{MaxWorkers: 1, QueueSize: 0},
		{MaxWorkers: 1, QueueSize: 1, TaskTimeout: -1},
	}
	for i, cfg := range bad {
		if err := cfg.Validate(); err == nil {
			t.Errorf("case %d: expected error", i)
		}
	}
}

func TestPoolRunsTasksAndDrainsOnStop(t *testing.T) {
	p := NewPool(&Config{MaxWorkers: 2, QueueSize: 16, TaskTimeout: time.Second})
	p.Start()

	var ran atomic.Int32
	for i := 0; i < 10; i++ {
		err := p.Submit(func(ctx context.Context) error {
			if n := ran.Add(1); n%5 == 0 {
				return errors.New("every fifth fails")
			}
			return nil
		})
		if err != nil {
			t.Fatalf("Submit: %v", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p.Stop(ctx)

	if ran.Load() != 10 {
		t.Fatalf("ran %d tasks, want 10", ran.Load())
	}
	m := p.GetMetrics()
	if m["completed_tasks"]+m["failed_tasks"] != 10 {
		t.Errorf("metrics = %v", m)
	}
	if m["failed_tasks"] != 2 {
		t.Errorf("failed = %d, want 2", m["failed_tasks"])
	}
	if !p.IsIdle() {
		t.Error("pool not idle after stop")
	}
}

func TestSubmitAfterStop(t *testing.T) {
	p := NewPool(nil)
	p.Start()
	p.Stop(context.Background())

	if err := p.Submit(func(context.Context) error { return nil }); !errors.Is(err, ErrPoolClosed) {
		t.Fatalf("err = %v, want ErrPoolClosed", err)
	}
	// second stop is a no-op
	p.Stop(context.Background())
}

func TestSubmitQueueFull(t *testing.T) {
	p := NewPool(&Config{MaxWorkers: 1, QueueSize: 1})
	// not started: nothing drains the queue
	if err := p.Submit(func(context.Context) error { return nil }); err != nil {
		t.Fatal(err)
	}
	if err := p.Submit(func(context.Context) error { return nil }); !errors.Is(err, ErrQueueFull) {
		t.Fatalf("err = %v, want ErrQueueFull", err)
	}
}

func TestPanickingTaskCountsAsFailure(t *testing.T) {
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	defer logger.SetOutput(os.Stderr)

	p, cleanup, err := ProvidePool(&Config{MaxWorkers: 1, QueueSize: 1})
	if err != nil {
		t.Fatal(err)
	}
	if err := p.Submit(func(context.Context) error { panic("boom") }); err != nil {
		t.Fatal(err)
	}
	cleanup()

	if got := p.GetMetrics()["failed_tasks"]; got != 1 {
		t.Errorf("failed_tasks = %d", got)
	}
	if !strings.Contains(buf.String(), "Worker task panicked: boom") {
		t.Errorf("panic not logged, output = %q", buf.String())
	}
}
