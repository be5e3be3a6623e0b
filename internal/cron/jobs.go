package cron

import (
	"context"
	"fmt"

	"github.com/angelmondragon/caffeineveins/internal/orders"
	"github.com/angelmondragon/caffeineveins/pkg/kvstore"
	"github.com/angelmondragon/caffeineveins/pkg/metrics"
)

// LeaseHeartbeatJob renews the storage writer lease so an idle process keeps it.
type LeaseHeartbeatJob struct {
	target kvstore.Heartbeater
}

func NewLeaseHeartbeatJob(target kvstore.Heartbeater) (*LeaseHeartbeatJob, error) {
	if target == nil {
		return nil, fmt.Errorf("heartbeat target required")
	}
	return &LeaseHeartbeatJob{target: target}, nil
}

func (j *LeaseHeartbeatJob) Name() string { return "lease_heartbeat" }

func (j *LeaseHeartbeatJob) Run(ctx context.Context) error {
	return j.target.Heartbeat(ctx)
}

type orderSource interface {
	Orders() []orders.Order
}

// PendingOrdersJob publishes the number of pending orders as a gauge.
type PendingOrdersJob struct {
	source  orderSource
	metrics *metrics.StoreMetrics
}

func NewPendingOrdersJob(source orderSource, m *metrics.StoreMetrics) (*PendingOrdersJob, error) {
	if source == nil {
		return nil, fmt.Errorf("order source required")
	}
	return &PendingOrdersJob{source: source, metrics: m}, nil
}

func (j *PendingOrdersJob) Name() string { return "pending_orders_gauge" }

func (j *PendingOrdersJob) Run(context.Context) error {
	j.metrics.SetPendingOrders(orders.CountPending(j.source.Orders()))
	return nil
}
