package entities

import (
	"errors"
	"time"
)

type OrderStatus string

const (
	StatusPendingPayment OrderStatus = "PENDING_PAYMENT"
	StatusPaid           OrderStatus = "PAID"
	StatusConfirmed      OrderStatus = "CONFIRMED"
	StatusPacked         OrderStatus = "PACKED"
	StatusShipped        OrderStatus = "SHIPPED"
	StatusDelivered      OrderStatus = "DELIVERED"
	StatusCancelled      OrderStatus = "CANCELLED"
	StatusRefunded       OrderStatus = "REFUNDED"
)

// Item is a line of the order with name and price frozen at checkout time.
// Later catalog edits never change a placed order.
type Item struct {
	ProductID   string
	VariantID   string
	Name        string
	UnitPrice   int64
	Quantity    int
	WeightGrams int
}

// Address is the shipping address copied from the address book at checkout.
type Address struct {
	Name       string
	Phone      string
	Line       string
	City       string
	Province   string
	PostalCode string
}

// TrackingEvent is one carrier-reported status update. Carrier timestamps are
// stored as received, even when they are not monotonic.
type TrackingEvent struct {
	Note      string
	Status    string
	Timestamp time.Time
}

type Order struct {
	ID             string
	Status         OrderStatus
	Courier        string
	CourierService string
	TrackingID     string
	// TotalAmount is in minor currency units, frozen at checkout
	// (subtotal + shipping - discount).
	TotalAmount int64
	// Version guards concurrent writers, bumped on every persisted mutation.
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time

	Address Address
	Items   []Item

	// TrackingHistory is append-only, entries are never edited or removed.
	TrackingHistory []TrackingEvent
}

var (
	ErrOrderNotFound   = errors.New("order not found")
	ErrOrderExists     = errors.New("order already exists")
	ErrInvalidOrder    = errors.New("invalid order")
	ErrVersionConflict = errors.New("order version conflict")
	// ErrIllegalTransition is returned only for interactive admin calls;
	// webhook ingress treats illegal transitions as logged no-ops.
	ErrIllegalTransition = errors.New("illegal status transition")
)

// HasTrackingEvent reports whether an entry with the same (status, timestamp)
// pair was already recorded. Used to drop carrier webhook retries.
func (o *Order) HasTrackingEvent(status string, ts time.Time) bool {
	for _, e := range o.TrackingHistory {
		if e.Status == status && e.Timestamp.Equal(ts) {
			return true
		}
	}
	return false
}

// AppendTracking appends events, skipping (status, timestamp) duplicates,
// and reports how many were actually added.
func (o *Order) AppendTracking(events ...TrackingEvent) int {
	added := 0
	for _, e := range events {
		if o.HasTrackingEvent(e.Status, e.Timestamp) {
			continue
		}
		o.TrackingHistory = append(o.TrackingHistory, e)
		added++
	}
	return added
}
