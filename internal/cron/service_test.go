package cron

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/angelmondragon/caffeineveins/internal/orders"
	"github.com/angelmondragon/caffeineveins/pkg/enums"
	"github.com/angelmondragon/caffeineveins/pkg/logger"
	"github.com/angelmondragon/caffeineveins/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

type testJob struct {
	name string
	err  error
	runs int
}

func (t *testJob) Name() string { return t.name }

func (t *testJob) Run(context.Context) error {
	t.runs++
	return t.err
}

func quietLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "cron-test", Output: io.Discard})
}

func TestServiceRunOnceRunsAllJobsEvenOnFailure(t *testing.T) {
	success := &testJob{name: "success"}
	failure := &testJob{name: "fail", err: errors.New("boom")}
	service, err := NewService(ServiceParams{
		Logger:   quietLogger(),
		Registry: NewRegistry(failure, success),
	})
	if err != nil {
		t.Fatalf("construct service: %v", err)
	}

	if failed := service.RunOnce(context.Background()); failed != 1 {
		t.Fatalf("expected 1 failed job, got %d", failed)
	}
	if success.runs != 1 || failure.runs != 1 {
		t.Fatalf("expected each job to run once, got success=%d fail=%d", success.runs, failure.runs)
	}
}

func TestServiceRunStopsOnCancel(t *testing.T) {
	job := &testJob{name: "tick"}
	service, err := NewService(ServiceParams{
		Logger:   quietLogger(),
		Registry: NewRegistry(job),
		Interval: time.Millisecond,
	})
	if err != nil {
		t.Fatalf("construct service: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if err := service.Run(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	if job.runs < 2 {
		t.Fatalf("expected the job to run on ticks, ran %d", job.runs)
	}
}

func TestNewServiceRequiresLogger(t *testing.T) {
	if _, err := NewService(ServiceParams{}); err == nil {
		t.Fatal("expected missing logger error")
	}
}

func TestRegistryReplacesByName(t *testing.T) {
	first := &testJob{name: "same"}
	second := &testJob{name: "same"}
	registry := NewRegistry(first, nil)
	registry.Register(second)

	if registry.Len() != 1 {
		t.Fatalf("expected 1 job, got %d", registry.Len())
	}
	if registry.Jobs()[0] != Job(second) {
		t.Fatal("expected the later registration to win")
	}
}

type fakeHeartbeater struct {
	beats int
	err   error
}

func (f *fakeHeartbeater) Heartbeat(context.Context) error {
	f.beats++
	return f.err
}

func TestLeaseHeartbeatJob(t *testing.T) {
	target := &fakeHeartbeater{}
	job, err := NewLeaseHeartbeatJob(target)
	if err != nil {
		t.Fatalf("construct job: %v", err)
	}
	if err := job.Run(context.Background()); err != nil || target.beats != 1 {
		t.Fatalf("expected one heartbeat, got beats=%d err=%v", target.beats, err)
	}

	target.err = errors.New("lease held")
	if err := job.Run(context.Background()); err == nil {
		t.Fatal("expected heartbeat failure to surface")
	}

	if _, err := NewLeaseHeartbeatJob(nil); err == nil {
		t.Fatal("expected nil target error")
	}
}

type staticOrders []orders.Order

func (s staticOrders) Orders() []orders.Order { return s }

func TestPendingOrdersJobSetsGauge(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewStoreMetrics(reg)
	job, err := NewPendingOrdersJob(staticOrders{
		{ID: "a", Status: enums.OrderStatusPending},
		{ID: "b", Status: enums.OrderStatusCompleted},
		{ID: "c", Status: enums.OrderStatusPending},
	}, m)
	if err != nil {
		t.Fatalf("construct job: %v", err)
	}
	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, mf := range mfs {
		if mf.GetName() == "orders_pending" {
			if got := mf.GetMetric()[0].GetGauge().GetValue(); got != 2 {
				t.Fatalf("expected 2 pending, got %f", got)
			}
			return
		}
	}
	t.Fatal("orders_pending not exported")
}
