package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/AlGhafarr/e-commerce-mandes-v1-sub000/internal/entities"
	"github.com/AlGhafarr/e-commerce-mandes-v1-sub000/internal/fsm"
	"github.com/AlGhafarr/e-commerce-mandes-v1-sub000/pkg/utils"
)

// ApplyAdminEvent routes a manual status change through the state machine.
// Unlike webhook ingress, an operator gets a hard error on an illegal
// transition: there is a human on the other end who should see it, and no
// external retry loop to pacify.
func (s *orderService) ApplyAdminEvent(ctx context.Context, orderID string, ev fsm.Event) (entities.Order, error) {
	var order entities.Order

	fn := func() error {
		o, err := s.repo.GetOrderByID(ctx, orderID)
		if err != nil {
			return err
		}

		next, ok := fsm.Transition(o.Status, ev)
		if !ok || next == o.Status {
			order = o
			return fmt.Errorf("%w: %s from %s", entities.ErrIllegalTransition, ev, o.Status)
		}

		o.Status = next
		o.UpdatedAt = time.Now().UTC()
		if err := s.repo.UpdateOrder(ctx, o, o.Version); err != nil {
			return err
		}
		o.Version++

		order = o
		return nil
	}

	err := utils.Retry(conflictRetry, fn,
		entities.ErrOrderNotFound, entities.ErrIllegalTransition)
	if err != nil {
		return order, err
	}

	s.cache.Delete(orderID)
	s.logger.Info("admin transition applied",
		slog.String("order_id", orderID),
		slog.String("event", string(ev)),
		slog.String("status", string(order.Status)))
	s.notifier.Notify(ctx, order, string(ev))

	return order, nil
}

// RetryBooking is the manual recovery path after a booking outage: runs the
// booking coordinator synchronously so the operator sees the outcome.
func (s *orderService) RetryBooking(ctx context.Context, orderID string) error {
	return s.BookShipment(ctx, orderID)
}
