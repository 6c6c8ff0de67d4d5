package workers

import (
	"context"
	"time"

	"smartrent_backend/internal/logger"
	"smartrent_backend/internal/repositories"
)

const expiryCheckInterval = time.Hour

// SubscriptionWorker expires overdue subscriptions in the background so
// a lapsed plan stops reporting as active without waiting for traffic.
type SubscriptionWorker struct {
	subscriptions repositories.SubscriptionRepository
	interval      time.Duration
}

func NewSubscriptionWorker(subscriptions repositories.SubscriptionRepository) *SubscriptionWorker {
	return &SubscriptionWorker{subscriptions: subscriptions, interval: expiryCheckInterval}
}

func (w *SubscriptionWorker) Start(ctx context.Context) {
	go w.run(ctx)
}

func (w *SubscriptionWorker) run(ctx context.Context) {
	// Run once at startup to catch anything that lapsed while down.
	w.expire()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Subscription worker stopped")
			return
		case <-ticker.C:
			w.expire()
		}
	}
}

func (w *SubscriptionWorker) expire() {
	expired, err := w.subscriptions.ExpireOverdue(time.Now())
	if err != nil {
		logger.Error("Error expiring subscriptions", "error", err)
		return
	}
	if expired > 0 {
		logger.Info("Marked subscriptions as expired", "count", expired)
	}
}
