package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/AlGhafarr/e-commerce-mandes-v1-sub000/internal/carrier"
	"github.com/AlGhafarr/e-commerce-mandes-v1-sub000/internal/entities"
	"github.com/AlGhafarr/e-commerce-mandes-v1-sub000/internal/fsm"
	"github.com/AlGhafarr/e-commerce-mandes-v1-sub000/pkg/utils"
)

// inflight tracks spawned booking goroutines so shutdown (and tests) can
// drain them.
type inflight struct {
	wg sync.WaitGroup
}

func (f *inflight) add()  { f.wg.Add(1) }
func (f *inflight) done() { f.wg.Done() }
func (f *inflight) wait() { f.wg.Wait() }

const bookingTimeout = 30 * time.Second

// dispatchBooking runs the booking coordinator in the background. The caller
// has already committed the payment state; a booking failure must never
// surface there.
func (s *orderService) dispatchBooking(orderID string) {
	s.bookings.add()
	go func() {
		defer s.bookings.done()

		ctx, cancel := context.WithTimeout(context.Background(), bookingTimeout)
		defer cancel()

		if err := s.BookShipment(ctx, orderID); err != nil {
			s.logger.Error("shipment booking failed, order left for reconciliation",
				slog.String("order_id", orderID),
				slog.Any("error", err))
		}
	}()
}

// WaitForBookings blocks until every in-flight booking goroutine finished.
// Called on graceful shutdown.
func (s *orderService) WaitForBookings() {
	s.bookings.wait()
}

// BookShipment books a carrier shipment for a paid order and attaches the
// resulting tracking id. The carrier call happens outside any per-order
// serialization; the result is applied as its own compare-and-swap round.
// Booking an already-tracked order skips the carrier and re-runs only the
// attach round, making the operation idempotent. On any failure the order
// keeps its payment-confirmed status untouched.
func (s *orderService) BookShipment(ctx context.Context, orderID string) error {
	order, err := s.repo.GetOrderByID(ctx, orderID)
	if err != nil {
		return fmt.Errorf("failed to load order for booking: %w", err)
	}

	if order.TrackingID != "" {
		// already booked; still run the attach round so an order that was
		// tracked while PAID can take the PACKED->SHIPPED edge once packing
		// catches up
		s.logger.Info("order already has a tracking id, skipping carrier call",
			slog.String("order_id", orderID),
			slog.String("tracking_id", order.TrackingID))
		return s.attachBooking(ctx, orderID, order.TrackingID)
	}

	switch order.Status {
	case entities.StatusPaid, entities.StatusConfirmed, entities.StatusPacked:
	default:
		return fmt.Errorf("%w: cannot book shipment for order %s in status %s",
			entities.ErrIllegalTransition, orderID, order.Status)
	}

	resp, err := s.carrier.CreateOrder(ctx, carrier.BookingRequest{
		OrderID:        order.ID,
		Courier:        order.Courier,
		CourierService: order.CourierService,
		Destination:    order.Address,
		Items:          order.Items,
	})
	if err != nil {
		bookingsTotal.WithLabelValues("failed").Inc()
		return fmt.Errorf("carrier booking for order %s (courier %s/%s) failed: %w",
			order.ID, order.Courier, order.CourierService, err)
	}
	bookingsTotal.WithLabelValues("booked").Inc()

	if err := s.attachBooking(ctx, orderID, resp.TrackingID); err != nil {
		return fmt.Errorf("failed to attach booking result: %w", err)
	}
	return nil
}

// attachBooking sets the tracking id (first writer wins, repeats are no-ops)
// and lets the state machine decide whether the status moves.
func (s *orderService) attachBooking(ctx context.Context, orderID, trackingID string) error {
	var order entities.Order
	var changed bool

	fn := func() error {
		changed = false
		o, err := s.repo.GetOrderByID(ctx, orderID)
		if err != nil {
			return err
		}

		if o.TrackingID == "" {
			o.TrackingID = trackingID
			changed = true
		} else if o.TrackingID != trackingID {
			// tracking id is write-once; a competing booking result loses
			s.logger.Warn("order already tracked under a different id, keeping existing",
				slog.String("order_id", orderID),
				slog.String("tracking_id", o.TrackingID),
				slog.String("discarded_tracking_id", trackingID))
		}

		if next, ok := fsm.Transition(o.Status, fsm.EventShipmentBooked); ok && next != o.Status {
			o.Status = next
			changed = true
		}

		if !changed {
			order = o
			return nil
		}

		o.UpdatedAt = time.Now().UTC()
		if err := s.repo.UpdateOrder(ctx, o, o.Version); err != nil {
			return err
		}
		o.Version++
		order = o
		return nil
	}

	if err := utils.Retry(conflictRetry, fn, entities.ErrOrderNotFound); err != nil {
		return err
	}

	if changed {
		s.cache.Delete(orderID)
		s.logger.Info("shipment booked",
			slog.String("order_id", orderID),
			slog.String("tracking_id", order.TrackingID),
			slog.String("status", string(order.Status)))
		s.notifier.Notify(ctx, order, string(fsm.EventShipmentBooked))
	}
	return nil
}
