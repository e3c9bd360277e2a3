package fsm

// Provider status vocabularies are mapped to domain events in one place so the
// transition table stays independent of any gateway's string constants.

type paymentKey struct {
	transactionStatus string
	fraudStatus       string
}

var paymentEvents = map[paymentKey]Event{
	{"capture", "accept"}:    EventPaymentCaptured,
	{"capture", "challenge"}: EventPaymentChallenged,
	{"settlement", ""}:       EventPaymentCaptured,
	{"cancel", ""}:           EventPaymentFailed,
	{"deny", ""}:             EventPaymentFailed,
	{"expire", ""}:           EventPaymentFailed,
}

// PaymentEvent maps a gateway (transaction_status, fraud_status) pair to a
// domain event. ok is false for statuses that never drive a transition
// ("pending" and anything unknown); such notifications are logged and
// acknowledged without reprocessing.
func PaymentEvent(transactionStatus, fraudStatus string) (Event, bool) {
	if ev, ok := paymentEvents[paymentKey{transactionStatus, fraudStatus}]; ok {
		return ev, true
	}
	// most statuses are fraud-agnostic, retry with the fraud field cleared
	ev, ok := paymentEvents[paymentKey{transactionStatus, ""}]
	return ev, ok
}

var carrierEvents = map[string]Event{
	"delivered": EventCarrierDelivered,
	"cancelled": EventCarrierCancelled,
	"rejected":  EventCarrierCancelled,
	"returned":  EventCarrierCancelled,
}

// CarrierEvent maps a carrier tracking status to a domain event. Intermediate
// statuses (confirmed, allocated, picking_up, picked, dropping_off) are
// history-only and return ok=false.
func CarrierEvent(status string) (Event, bool) {
	ev, ok := carrierEvents[status]
	return ev, ok
}
