package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/AlGhafarr/e-commerce-mandes-v1-sub000/internal/entities"
	"github.com/AlGhafarr/e-commerce-mandes-v1-sub000/internal/fsm"
	"github.com/AlGhafarr/e-commerce-mandes-v1-sub000/pkg/utils"
)

// ShipmentNotification is one carrier webhook delivery. Events carries every
// history entry of the payload, including the entry for Status itself.
type ShipmentNotification struct {
	OrderID    string
	TrackingID string
	Status     string
	Events     []entities.TrackingEvent
}

// ApplyShipmentNotification appends the delivery's history entries (deduped
// by status+timestamp, so carrier retries collapse) and applies the mapped
// domain event, if any, through the state machine. Replays and out-of-order
// deliveries degrade to no-ops; the carrier always gets success back.
func (s *orderService) ApplyShipmentNotification(ctx context.Context, n ShipmentNotification) (NotificationResult, error) {
	logger := s.logger.With(
		slog.String("order_id", n.OrderID),
		slog.String("tracking_id", n.TrackingID),
		slog.String("carrier_status", n.Status),
	)

	var result NotificationResult
	var order entities.Order
	var transitioned bool

	fn := func() error {
		result = ResultNoOp
		transitioned = false

		o, err := s.resolveOrder(ctx, n)
		if err != nil {
			return err
		}

		added := o.AppendTracking(n.Events...)

		if ev, ok := fsm.CarrierEvent(n.Status); ok {
			if next, applied := fsm.Transition(o.Status, ev); applied && next != o.Status {
				o.Status = next
				transitioned = true
			} else {
				logger.Info("carrier event is a no-op",
					slog.String("event", string(ev)),
					slog.String("status", string(o.Status)))
			}
		}

		if added == 0 && !transitioned {
			order = o
			return nil
		}

		o.UpdatedAt = time.Now().UTC()
		if err := s.repo.UpdateOrder(ctx, o, o.Version); err != nil {
			return err
		}
		o.Version++

		order = o
		result = ResultApplied
		return nil
	}

	if err := utils.Retry(conflictRetry, fn, entities.ErrOrderNotFound); err != nil {
		return "", err
	}

	if result != ResultApplied {
		return result, nil
	}

	s.cache.Delete(order.ID)
	logger.Info("shipment notification applied",
		slog.String("status", string(order.Status)),
		slog.Int("history_len", len(order.TrackingHistory)))

	if transitioned {
		s.notifier.Notify(ctx, order, "carrier_"+n.Status)
	}

	return result, nil
}

// resolveOrder prefers the tracking id, the stable key the carrier owns, and
// falls back to the echoed order id.
func (s *orderService) resolveOrder(ctx context.Context, n ShipmentNotification) (entities.Order, error) {
	if n.TrackingID != "" {
		o, err := s.repo.GetOrderByTrackingID(ctx, n.TrackingID)
		if err == nil {
			return o, nil
		}
		if !errors.Is(err, entities.ErrOrderNotFound) {
			return entities.Order{}, err
		}
	}
	if n.OrderID != "" {
		return s.repo.GetOrderByID(ctx, n.OrderID)
	}
	return entities.Order{}, entities.ErrOrderNotFound
}
