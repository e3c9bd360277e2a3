package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var bookingsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "order_service",
	Subsystem: "booking",
	Name:      "shipments_total",
	Help:      "Total carrier booking attempts by result.",
}, []string{"result"})
