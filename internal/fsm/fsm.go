// Package fsm owns every legal order status transition. No other code path
// may assign Order.Status.
package fsm

import (
	"github.com/AlGhafarr/e-commerce-mandes-v1-sub000/internal/entities"
)

type Event string

const (
	EventPaymentCaptured   Event = "payment_captured"
	EventPaymentChallenged Event = "payment_challenged"
	EventPaymentFailed     Event = "payment_failed"
	EventAdminConfirm      Event = "admin_confirm"
	EventAdminPacked       Event = "admin_packed"
	EventShipmentBooked    Event = "shipment_booked"
	EventCarrierDelivered  Event = "carrier_delivered"
	EventCarrierCancelled  Event = "carrier_cancelled"
	EventAdminRefund       Event = "admin_refund"
)

type edge struct {
	from  entities.OrderStatus
	event Event
}

// transitions is the single source of truth for the order lifecycle.
// Any (state, event) pair not listed here is a no-op, never an error.
var transitions = map[edge]entities.OrderStatus{
	{entities.StatusPendingPayment, EventPaymentCaptured}: entities.StatusPaid,
	{entities.StatusPendingPayment, EventPaymentFailed}:   entities.StatusCancelled,
	// challenge keeps the order where it is until the gateway settles
	{entities.StatusPendingPayment, EventPaymentChallenged}: entities.StatusPendingPayment,

	{entities.StatusPaid, EventAdminConfirm}:     entities.StatusConfirmed,
	{entities.StatusConfirmed, EventAdminPacked}: entities.StatusPacked,

	{entities.StatusPacked, EventShipmentBooked}:    entities.StatusShipped,
	{entities.StatusShipped, EventCarrierDelivered}: entities.StatusDelivered,
	{entities.StatusShipped, EventCarrierCancelled}: entities.StatusCancelled,

	{entities.StatusPaid, EventAdminRefund}:      entities.StatusRefunded,
	{entities.StatusShipped, EventAdminRefund}:   entities.StatusRefunded,
	{entities.StatusDelivered, EventAdminRefund}: entities.StatusRefunded,
}

// Transition returns the status that applying event to from yields. ok is
// false when the event is not an outgoing edge of from; callers must treat
// that as a no-op. A returned status equal to from (ok=true) is also a no-op
// for persistence purposes.
func Transition(from entities.OrderStatus, event Event) (entities.OrderStatus, bool) {
	next, ok := transitions[edge{from, event}]
	if !ok {
		return from, false
	}
	return next, true
}
