package handler

import (
	"time"

	"github.com/AlGhafarr/e-commerce-mandes-v1-sub000/internal/entities"
	"github.com/AlGhafarr/e-commerce-mandes-v1-sub000/internal/service"
)

// PaymentWebhook is the gateway notification payload.
type PaymentWebhook struct {
	OrderID           string `json:"order_id" validate:"required"`
	TransactionID     string `json:"transaction_id,omitempty"`
	TransactionStatus string `json:"transaction_status" validate:"required"`
	FraudStatus       string `json:"fraud_status,omitempty"`
	SignatureKey      string `json:"signature_key" validate:"required"`
	GrossAmount       string `json:"gross_amount" validate:"required"`
	PaymentType       string `json:"payment_type,omitempty"`
}

// ShipmentWebhook is the carrier notification payload.
type ShipmentWebhook struct {
	OrderID         string                 `json:"order_id,omitempty"`
	TrackingID      string                 `json:"tracking_id,omitempty"`
	Status          string                 `json:"status" validate:"required"`
	Note            string                 `json:"note,omitempty"`
	UpdatedAt       string                 `json:"updated_at,omitempty"`
	History         []ShipmentHistoryEntry `json:"history,omitempty" validate:"dive"`
	CourierName     string                 `json:"courier_name,omitempty"`
	ProofOfDelivery string                 `json:"proof_of_delivery,omitempty"`
	DeliveryTime    string                 `json:"delivery_time,omitempty"`
}

type ShipmentHistoryEntry struct {
	Note      string `json:"note,omitempty"`
	Status    string `json:"status" validate:"required"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// CreateOrder is the checkout request body.
type CreateOrder struct {
	Items          []CreateOrderItem `json:"items" validate:"required,min=1,dive"`
	Address        OrderAddress      `json:"address" validate:"required"`
	Courier        string            `json:"courier" validate:"required"`
	CourierService string            `json:"courier_service" validate:"required"`
	ShippingFee    int64             `json:"shipping_fee" validate:"gte=0"`
	Discount       int64             `json:"discount" validate:"gte=0"`
}

type CreateOrderItem struct {
	ProductID   string `json:"product_id" validate:"required"`
	VariantID   string `json:"variant_id,omitempty"`
	Name        string `json:"name" validate:"required"`
	UnitPrice   int64  `json:"unit_price" validate:"gt=0"`
	Quantity    int    `json:"quantity" validate:"gt=0"`
	WeightGrams int    `json:"weight_grams,omitempty" validate:"gte=0"`
}

type OrderAddress struct {
	Name       string `json:"name" validate:"required"`
	Phone      string `json:"phone,omitempty"`
	Line       string `json:"line" validate:"required"`
	City       string `json:"city" validate:"required"`
	Province   string `json:"province,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
}

// Order is the read-model response.
type Order struct {
	OrderID         string          `json:"order_id"`
	Status          string          `json:"status"`
	Courier         string          `json:"courier"`
	CourierService  string          `json:"courier_service"`
	TrackingID      string          `json:"tracking_id,omitempty"`
	TotalAmount     int64           `json:"total_amount"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	Address         OrderAddress    `json:"address"`
	Items           []OrderItem     `json:"items"`
	TrackingHistory []TrackingEvent `json:"tracking_history,omitempty"`
}

type OrderItem struct {
	ProductID   string `json:"product_id"`
	VariantID   string `json:"variant_id,omitempty"`
	Name        string `json:"name"`
	UnitPrice   int64  `json:"unit_price"`
	Quantity    int    `json:"quantity"`
	WeightGrams int    `json:"weight_grams,omitempty"`
}

type TrackingEvent struct {
	Note      string    `json:"note,omitempty"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

func OrderEntityToJSON(o entities.Order) Order {
	out := Order{
		OrderID:        o.ID,
		Status:         string(o.Status),
		Courier:        o.Courier,
		CourierService: o.CourierService,
		TrackingID:     o.TrackingID,
		TotalAmount:    o.TotalAmount,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
		Address: OrderAddress{
			Name:       o.Address.Name,
			Phone:      o.Address.Phone,
			Line:       o.Address.Line,
			City:       o.Address.City,
			Province:   o.Address.Province,
			PostalCode: o.Address.PostalCode,
		},
	}

	out.Items = make([]OrderItem, 0, len(o.Items))
	for _, it := range o.Items {
		out.Items = append(out.Items, OrderItem{
			ProductID:   it.ProductID,
			VariantID:   it.VariantID,
			Name:        it.Name,
			UnitPrice:   it.UnitPrice,
			Quantity:    it.Quantity,
			WeightGrams: it.WeightGrams,
		})
	}

	for _, e := range o.TrackingHistory {
		out.TrackingHistory = append(out.TrackingHistory, TrackingEvent{
			Note:      e.Note,
			Status:    e.Status,
			Timestamp: e.Timestamp,
		})
	}

	return out
}

func CreateOrderJSONToInput(req CreateOrder) service.CreateOrderInput {
	items := make([]service.CreateOrderItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, service.CreateOrderItem{
			ProductID:   it.ProductID,
			VariantID:   it.VariantID,
			Name:        it.Name,
			UnitPrice:   it.UnitPrice,
			Quantity:    it.Quantity,
			WeightGrams: it.WeightGrams,
		})
	}

	return service.CreateOrderInput{
		Items: items,
		Address: entities.Address{
			Name:       req.Address.Name,
			Phone:      req.Address.Phone,
			Line:       req.Address.Line,
			City:       req.Address.City,
			Province:   req.Address.Province,
			PostalCode: req.Address.PostalCode,
		},
		Courier:        req.Courier,
		CourierService: req.CourierService,
		ShippingFee:    req.ShippingFee,
		Discount:       req.Discount,
	}
}

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// parseCarrierTime parses the carrier's loosely formatted timestamps. A
// missing or unparseable value collapses to the zero time: the mapping must
// stay deterministic across webhook redeliveries, or the (status, timestamp)
// dedup lets the same malformed event into the history twice.
func parseCarrierTime(s string) time.Time {
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts
		}
	}
	return time.Time{}
}

// ShipmentWebhookToNotification flattens the payload into history events plus
// the top-level status. The top-level entry is included unless the history
// already carries an entry for the same status.
func ShipmentWebhookToNotification(req ShipmentWebhook) service.ShipmentNotification {
	events := make([]entities.TrackingEvent, 0, len(req.History)+1)
	topCovered := false
	for _, h := range req.History {
		events = append(events, entities.TrackingEvent{
			Note:      h.Note,
			Status:    h.Status,
			Timestamp: parseCarrierTime(h.UpdatedAt),
		})
		if h.Status == req.Status {
			topCovered = true
		}
	}

	if !topCovered {
		ts := req.UpdatedAt
		if ts == "" {
			ts = req.DeliveryTime
		}
		note := req.Note
		if note == "" && req.ProofOfDelivery != "" {
			note = "proof of delivery: " + req.ProofOfDelivery
		}
		events = append(events, entities.TrackingEvent{
			Note:      note,
			Status:    req.Status,
			Timestamp: parseCarrierTime(ts),
		})
	}

	return service.ShipmentNotification{
		OrderID:    req.OrderID,
		TrackingID: req.TrackingID,
		Status:     req.Status,
		Events:     events,
	}
}
