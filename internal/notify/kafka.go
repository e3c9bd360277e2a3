// Package notify publishes customer-facing order events. Delivery is
// best-effort: a broker outage must never block order persistence.
package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/AlGhafarr/e-commerce-mandes-v1-sub000/internal/config"
	"github.com/AlGhafarr/e-commerce-mandes-v1-sub000/internal/entities"

	"github.com/segmentio/kafka-go"
)

type kafkaNotifier struct {
	writer *kafka.Writer
	logger *slog.Logger
}

func NewKafkaNotifier(logger *slog.Logger, cfg config.Kafka) *kafkaNotifier {
	return &kafkaNotifier{
		logger: logger.With(slog.String("notifier", "kafka")),
		writer: &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Topic:        cfg.Topic,
			Balancer:     &kafka.LeastBytes{},
			BatchTimeout: cfg.BatchTimeout,
		},
	}
}

type orderEvent struct {
	OrderID    string `json:"order_id"`
	Event      string `json:"event"`
	Status     string `json:"status"`
	TrackingID string `json:"tracking_id,omitempty"`
	OccurredAt string `json:"occurred_at"`
}

// Notify publishes one event keyed by order id. Errors are logged and
// swallowed; callers never see them.
func (n *kafkaNotifier) Notify(ctx context.Context, order entities.Order, eventKind string) {
	msg := orderEvent{
		OrderID:    order.ID,
		Event:      eventKind,
		Status:     string(order.Status),
		TrackingID: order.TrackingID,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}

	value, err := json.Marshal(msg)
	if err != nil {
		n.logger.Error("failed to marshal order event",
			slog.String("order_id", order.ID), slog.Any("error", err))
		return
	}

	err = n.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(order.ID),
		Value: value,
	})
	if err != nil {
		n.logger.Error("failed to publish order event",
			slog.String("order_id", order.ID),
			slog.String("event", eventKind),
			slog.Any("error", err))
	}
}

func (n *kafkaNotifier) Close() error {
	return n.writer.Close()
}
