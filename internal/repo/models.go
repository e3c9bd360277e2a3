package repo

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/AlGhafarr/e-commerce-mandes-v1-sub000/internal/entities"
)

type Order struct {
	ID              string         `db:"id"`
	Status          string         `db:"status"`
	Courier         string         `db:"courier"`
	CourierService  string         `db:"courier_service"`
	TrackingID      sql.NullString `db:"tracking_id"`
	TrackingHistory []byte         `db:"tracking_history"`
	TotalAmount     int64          `db:"total_amount"`
	Version         int64          `db:"version"`
	CreatedAt       time.Time      `db:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at"`
}

type Address struct {
	OrderID    string         `db:"order_id"`
	Name       string         `db:"name"`
	Phone      sql.NullString `db:"phone"`
	Line       string         `db:"line"`
	City       string         `db:"city"`
	Province   sql.NullString `db:"province"`
	PostalCode sql.NullString `db:"postal_code"`
}

type Item struct {
	OrderID     string         `db:"order_id"`
	ProductID   string         `db:"product_id"`
	VariantID   sql.NullString `db:"variant_id"`
	Name        string         `db:"name"`
	UnitPrice   int64          `db:"unit_price"`
	Quantity    int            `db:"quantity"`
	WeightGrams sql.NullInt32  `db:"weight_grams"`
}

// trackingEvent is the JSONB wire shape of one history entry.
type trackingEvent struct {
	Note      string    `json:"note,omitempty"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

func marshalHistory(events []entities.TrackingEvent) ([]byte, error) {
	rows := make([]trackingEvent, 0, len(events))
	for _, e := range events {
		rows = append(rows, trackingEvent{Note: e.Note, Status: e.Status, Timestamp: e.Timestamp})
	}
	data, err := json.Marshal(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal tracking history: %w", err)
	}
	return data, nil
}

func unmarshalHistory(data []byte) ([]entities.TrackingEvent, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var rows []trackingEvent
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tracking history: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	events := make([]entities.TrackingEvent, 0, len(rows))
	for _, r := range rows {
		events = append(events, entities.TrackingEvent{Note: r.Note, Status: r.Status, Timestamp: r.Timestamp})
	}
	return events, nil
}

func AddressToEntity(a Address) entities.Address {
	return entities.Address{
		Name:       a.Name,
		Phone:      nullStringToString(a.Phone),
		Line:       a.Line,
		City:       a.City,
		Province:   nullStringToString(a.Province),
		PostalCode: nullStringToString(a.PostalCode),
	}
}

func ItemToEntity(i Item) entities.Item {
	return entities.Item{
		ProductID:   i.ProductID,
		VariantID:   nullStringToString(i.VariantID),
		Name:        i.Name,
		UnitPrice:   i.UnitPrice,
		Quantity:    i.Quantity,
		WeightGrams: nullInt32ToInt(i.WeightGrams),
	}
}

func OrderToEntity(o Order, a Address, items []Item) (entities.Order, error) {
	history, err := unmarshalHistory(o.TrackingHistory)
	if err != nil {
		return entities.Order{}, err
	}

	order := entities.Order{
		ID:              o.ID,
		Status:          entities.OrderStatus(o.Status),
		Courier:         o.Courier,
		CourierService:  o.CourierService,
		TrackingID:      nullStringToString(o.TrackingID),
		TrackingHistory: history,
		TotalAmount:     o.TotalAmount,
		Version:         o.Version,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
		Address:         AddressToEntity(a),
	}

	if len(items) > 0 {
		order.Items = make([]entities.Item, 0, len(items))
		for _, it := range items {
			order.Items = append(order.Items, ItemToEntity(it))
		}
	}

	return order, nil
}

func nullStringToString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

func nullInt32ToInt(ni sql.NullInt32) int {
	if ni.Valid {
		return int(ni.Int32)
	}
	return 0
}
