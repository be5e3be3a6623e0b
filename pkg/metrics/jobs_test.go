package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func TestJobMetricsSplitsResults(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewJobMetrics(reg)

	metrics.ObserveRun("lease_heartbeat", 20*time.Millisecond, nil)
	metrics.ObserveRun("lease_heartbeat", 5*time.Millisecond, errors.New("redis down"))
	metrics.ObserveRun("", time.Millisecond, nil)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "job_runs_total", "result", "failure"); err != nil {
		t.Fatalf("fetch failures: %v", err)
	} else if got != 1 {
		t.Fatalf("expected failures=1, got %f", got)
	}
	if got, err := fetchHistogramSum(mfs, "job_duration_seconds", "job", "lease_heartbeat"); err != nil {
		t.Fatalf("fetch duration: %v", err)
	} else if got <= 0.02 {
		t.Fatalf("expected duration sum > 0.02, got %f", got)
	}
	if _, err := fetchHistogramSum(mfs, "job_duration_seconds", "job", "unknown"); err != nil {
		t.Fatalf("empty job name should be labelled unknown: %v", err)
	}

	var none *JobMetrics
	none.ObserveRun("x", time.Second, nil)
}
