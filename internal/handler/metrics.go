package handler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	paymentWebhooksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "order_service",
			Subsystem: "webhook",
			Name:      "payment_total",
			Help:      "Payment gateway notifications by outcome.",
		},
		[]string{"result"},
	)

	shipmentWebhooksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "order_service",
			Subsystem: "webhook",
			Name:      "shipment_total",
			Help:      "Carrier notifications by outcome.",
		},
		[]string{"result"},
	)
)
