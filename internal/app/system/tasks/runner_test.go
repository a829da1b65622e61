package tasks_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dalemusser/stratascout/internal/app/system/contentsync"
	"github.com/dalemusser/stratascout/internal/app/system/tasks"
	"go.uber.org/zap"
)

func TestRunner_JobRunsImmediatelyAndRepeats(t *testing.T) {
	runner := tasks.New(zap.NewNop())

	var runCount atomic.Int32
	runner.Register(tasks.Job{
		Name:     "tick",
		Interval: 20 * time.Millisecond,
		Run: func(ctx context.Context) error {
			runCount.Add(1)
			return nil
		},
	})

	runner.Start()
	time.Sleep(90 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := runner.Stop(ctx); err != nil {
		t.Errorf("Stop() returned error: %v", err)
	}
	if runCount.Load() < 2 {
		t.Errorf("expected job to run at least twice, ran %d times", runCount.Load())
	}
}

func TestRunner_ZeroIntervalRunsOnce(t *testing.T) {
	runner := tasks.New(zap.NewNop())

	var runCount atomic.Int32
	runner.Register(tasks.Job{
		Name: "once",
		Run: func(ctx context.Context) error {
			runCount.Add(1)
			return nil
		},
	})

	runner.Start()
	time.Sleep(50 * time.Millisecond)
	if err := runner.Stop(context.Background()); err != nil {
		t.Errorf("Stop() returned error: %v", err)
	}
	if runCount.Load() != 1 {
		t.Errorf("expected one run, got %d", runCount.Load())
	}
}

func TestRunner_WorkerStopsOnCancel(t *testing.T) {
	runner := tasks.New(zap.NewNop())

	stopped := make(chan struct{})
	runner.Spawn(tasks.Worker{
		Name: "blocking",
		Run: func(ctx context.Context) error {
			<-ctx.Done()
			close(stopped)
			return ctx.Err()
		},
	})

	runner.Start()
	time.Sleep(20 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := runner.Stop(ctx); err != nil {
		t.Errorf("Stop() returned error: %v", err)
	}

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Error("worker context was not cancelled")
	}
}

func TestRunner_StopWithTimeout(t *testing.T) {
	runner := tasks.New(zap.NewNop())

	inSleep := make(chan struct{})
	runner.Register(tasks.Job{
		Name:     "slow-job",
		Interval: time.Hour,
		Run: func(ctx context.Context) error {
			close(inSleep)
			// ignores ctx on purpose
			time.Sleep(2 * time.Second)
			return nil
		},
	})

	runner.Start()
	<-inSleep

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if err := runner.Stop(ctx); err != context.DeadlineExceeded {
		t.Errorf("expected DeadlineExceeded error, got: %v", err)
	}
}

func TestRunner_RunOnce(t *testing.T) {
	runner := tasks.New(zap.NewNop())

	var runCount atomic.Int32
	runner.Register(tasks.Job{
		Name:     "manual-job",
		Interval: time.Hour,
		Run: func(ctx context.Context) error {
			runCount.Add(1)
			return nil
		},
	})

	if err := runner.RunOnce(context.Background(), "manual-job"); err != nil {
		t.Errorf("RunOnce() returned error: %v", err)
	}
	if runCount.Load() != 1 {
		t.Errorf("expected job to run once, ran %d times", runCount.Load())
	}
	if err := runner.RunOnce(context.Background(), "nonexistent-job"); err != nil {
		t.Errorf("RunOnce() for nonexistent job should return nil, got: %v", err)
	}
}

func TestContentPollJob_PublishesCacheChanges(t *testing.T) {
	cache := contentsync.NewCacheFile(t.TempDir())
	hub := contentsync.NewHub()
	live := contentsync.NewLive(contentsync.NewLocalStore(cache, nil, zap.NewNop()), hub)

	job := tasks.ContentPollJob(live, time.Minute, zap.NewNop())
	ctx := context.Background()
	if err := job.Run(ctx); err != nil {
		t.Fatalf("first poll error = %v", err)
	}

	ch, cancel := hub.Subscribe()
	defer cancel()

	doc := live.Current(ctx).Doc
	doc.About.MissionEn = "Polled"
	if err := cache.Write(doc); err != nil {
		t.Fatal(err)
	}
	if err := job.Run(ctx); err != nil {
		t.Fatalf("second poll error = %v", err)
	}

	select {
	case ev := <-ch:
		if ev.Doc.About.MissionEn != "Polled" {
			t.Errorf("event MissionEn = %q", ev.Doc.About.MissionEn)
		}
	default:
		t.Fatal("poll should publish the changed document")
	}
}
