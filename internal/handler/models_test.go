package handler_test

import (
	"testing"
	"time"

	"github.com/AlGhafarr/e-commerce-mandes-v1-sub000/internal/entities"
	"github.com/AlGhafarr/e-commerce-mandes-v1-sub000/internal/handler"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShipmentWebhookToNotification(t *testing.T) {
	t.Run("top-level status becomes an event", func(t *testing.T) {
		n := handler.ShipmentWebhookToNotification(handler.ShipmentWebhook{
			TrackingID: "BTS123",
			Status:     "delivered",
			UpdatedAt:  "2026-08-02T14:00:00Z",
		})

		require.Len(t, n.Events, 1)
		assert.Equal(t, "delivered", n.Events[0].Status)
		assert.Equal(t, time.Date(2026, 8, 2, 14, 0, 0, 0, time.UTC), n.Events[0].Timestamp)
	})

	t.Run("history covering the status is not duplicated", func(t *testing.T) {
		n := handler.ShipmentWebhookToNotification(handler.ShipmentWebhook{
			TrackingID: "BTS123",
			Status:     "delivered",
			History: []handler.ShipmentHistoryEntry{
				{Status: "picking_up", UpdatedAt: "2026-08-01 10:00:00"},
				{Status: "delivered", UpdatedAt: "2026-08-02 14:00:00"},
			},
		})

		require.Len(t, n.Events, 2)
		// the space-separated carrier format parses too
		assert.Equal(t, time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC), n.Events[0].Timestamp)
	})

	t.Run("unparseable timestamp collapses to the zero sentinel", func(t *testing.T) {
		payload := handler.ShipmentWebhook{
			TrackingID: "BTS123",
			Status:     "on_hold",
			UpdatedAt:  "yesterday-ish",
		}

		n := handler.ShipmentWebhookToNotification(payload)
		require.Len(t, n.Events, 1)
		assert.True(t, n.Events[0].Timestamp.IsZero())

		// a redelivery maps to the identical event, so history dedup holds
		again := handler.ShipmentWebhookToNotification(payload)
		assert.Equal(t, n.Events, again.Events)

		var o entities.Order
		o.AppendTracking(n.Events...)
		assert.Equal(t, 0, o.AppendTracking(again.Events...))
	})

	t.Run("proof of delivery lands in the note", func(t *testing.T) {
		n := handler.ShipmentWebhookToNotification(handler.ShipmentWebhook{
			TrackingID:      "BTS123",
			Status:          "delivered",
			DeliveryTime:    "2026-08-02T14:00:00Z",
			ProofOfDelivery: "https://cdn.example.com/pod/BTS123.jpg",
		})

		require.Len(t, n.Events, 1)
		assert.Equal(t, "proof of delivery: https://cdn.example.com/pod/BTS123.jpg", n.Events[0].Note)
		assert.Equal(t, time.Date(2026, 8, 2, 14, 0, 0, 0, time.UTC), n.Events[0].Timestamp)
	})
}
