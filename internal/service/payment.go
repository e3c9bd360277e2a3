package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/AlGhafarr/e-commerce-mandes-v1-sub000/internal/entities"
	"github.com/AlGhafarr/e-commerce-mandes-v1-sub000/internal/fsm"
	"github.com/AlGhafarr/e-commerce-mandes-v1-sub000/pkg/utils"
)

// PaymentNotification is the gateway payload after signature verification,
// still in the provider's vocabulary.
type PaymentNotification struct {
	OrderID           string
	TransactionID     string
	TransactionStatus string
	FraudStatus       string
	GrossAmount       string
	PaymentType       string
}

// NotificationResult tells the handler how a webhook delivery was resolved,
// mostly for metrics. All three are acknowledged with success upstream.
type NotificationResult string

const (
	ResultApplied   NotificationResult = "applied"
	ResultNoOp      NotificationResult = "noop"
	ResultDuplicate NotificationResult = "duplicate"
)

func (n PaymentNotification) idempotencyKey() string {
	if n.TransactionID != "" {
		return "payment:" + n.TransactionID
	}
	return "payment:" + n.OrderID + ":" + n.TransactionStatus
}

// ApplyPaymentNotification drives one gateway notification through the state
// machine. The idempotency key insert and the status update share one
// transaction, so a key is burned if and only if its effect committed; a
// replayed key short-circuits without touching the order. The shipment
// booking is dispatched asynchronously, and only when this very delivery
// applied the transition into PAID — duplicates and no-ops never re-trigger
// it.
func (s *orderService) ApplyPaymentNotification(ctx context.Context, n PaymentNotification) (NotificationResult, error) {
	logger := s.logger.With(
		slog.String("order_id", n.OrderID),
		slog.String("transaction_id", n.TransactionID),
		slog.String("transaction_status", n.TransactionStatus),
		slog.String("fraud_status", n.FraudStatus),
	)

	var result NotificationResult
	var order entities.Order
	var appliedEvent fsm.Event

	fn := func() error {
		result = ResultNoOp
		return s.txManager.Do(ctx, func(ctx context.Context) error {
			first, err := s.repo.MarkNotificationProcessed(ctx, n.idempotencyKey())
			if err != nil {
				return err
			}
			if !first {
				logger.Info("duplicate payment notification, skipping")
				result = ResultDuplicate
				return nil
			}

			o, err := s.repo.GetOrderByID(ctx, n.OrderID)
			if err != nil {
				return err
			}

			ev, ok := fsm.PaymentEvent(n.TransactionStatus, n.FraudStatus)
			if !ok {
				// audit log, then acknowledge: the gateway must not retry
				// a status that will never change anything
				logger.Info("unmapped payment notification, ignoring",
					slog.String("payment_type", n.PaymentType),
					slog.String("gross_amount", n.GrossAmount))
				return nil
			}

			next, applied := fsm.Transition(o.Status, ev)
			if !applied || next == o.Status {
				logger.Info("payment event is a no-op",
					slog.String("event", string(ev)),
					slog.String("status", string(o.Status)))
				return nil
			}

			o.Status = next
			o.UpdatedAt = time.Now().UTC()
			if err := s.repo.UpdateOrder(ctx, o, o.Version); err != nil {
				return err
			}
			o.Version++

			order = o
			appliedEvent = ev
			result = ResultApplied
			return nil
		})
	}

	if err := utils.Retry(conflictRetry, fn, entities.ErrOrderNotFound); err != nil {
		return "", err
	}

	if result != ResultApplied {
		return result, nil
	}

	s.cache.Delete(order.ID)
	logger.Info("payment transition applied",
		slog.String("event", string(appliedEvent)),
		slog.String("status", string(order.Status)))
	s.notifier.Notify(ctx, order, string(appliedEvent))

	if order.Status == entities.StatusPaid {
		s.dispatchBooking(order.ID)
	}

	return result, nil
}
