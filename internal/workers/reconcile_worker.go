package workers

import (
	"context"
	"encoding/json"

	"vidshare/internal/models"
	"vidshare/internal/services"
	"vidshare/pkg/rabbitmq"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ReconcileQueue is the durable queue the worker consumes from.
const ReconcileQueue = "counters_reconcile"

// Reconciler recomputes denormalized counters.
type Reconciler interface {
	ReconcileVideoByID(ctx context.Context, id string) (*models.Video, error)
	ReconcileChannelByID(ctx context.Context, id string) (*models.User, error)
}

// Consumer delivers broker messages to a handler.
type Consumer interface {
	Consume(ctx context.Context, queue string, bindings []string, handler rabbitmq.Handler) error
}

// ReconcileWorker heals counters reported stale by a failed recompute.
type ReconcileWorker struct {
	reconciler Reconciler
}

// NewReconcileWorker creates a new ReconcileWorker.
func NewReconcileWorker(reconciler Reconciler) *ReconcileWorker {
	return &ReconcileWorker{reconciler: reconciler}
}

// Start subscribes the worker to counters.stale events.
func (w *ReconcileWorker) Start(ctx context.Context, consumer Consumer) error {
	handler := func(routingKey string, body []byte) error {
		return w.Handle(ctx, routingKey, body)
	}
	return consumer.Consume(ctx, ReconcileQueue, []string{services.EventCountersStale}, handler)
}

// Handle processes one event. Malformed payloads are dropped without error.
func (w *ReconcileWorker) Handle(ctx context.Context, routingKey string, body []byte) error {
	var evt services.EngagementEvent
	if err := json.Unmarshal(body, &evt); err != nil {
		logrus.WithError(err).WithField("routing_key", routingKey).Warn("dropping malformed event")
		return nil
	}

	log := logrus.WithFields(logrus.Fields{
		"counter":    evt.Counter,
		"video_id":   evt.VideoID,
		"channel_id": evt.ChannelID,
	})

	switch evt.Counter {
	case services.CounterReactions, services.CounterComments:
		if evt.VideoID == "" {
			log.Warn("stale video counter without video id")
			return nil
		}
		if _, err := w.reconciler.ReconcileVideoByID(ctx, evt.VideoID); err != nil {
			return errors.Wrap(err, "video reconciliation failed")
		}
	case services.CounterSubscribers:
		if evt.ChannelID == "" {
			log.Warn("stale subscriber counter without channel id")
			return nil
		}
		if _, err := w.reconciler.ReconcileChannelByID(ctx, evt.ChannelID); err != nil {
			return errors.Wrap(err, "channel reconciliation failed")
		}
	default:
		log.Warn("unknown counter in stale event")
		return nil
	}

	log.Info("stale counter reconciled")
	return nil
}
