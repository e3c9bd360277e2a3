package handler

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"log/slog"
	"net/http"

	"github.com/AlGhafarr/e-commerce-mandes-v1-sub000/internal/entities"
	"github.com/AlGhafarr/e-commerce-mandes-v1-sub000/internal/service"
	"github.com/AlGhafarr/e-commerce-mandes-v1-sub000/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type WebhookProcessor interface {
	ApplyPaymentNotification(ctx context.Context, n service.PaymentNotification) (service.NotificationResult, error)
	ApplyShipmentNotification(ctx context.Context, n service.ShipmentNotification) (service.NotificationResult, error)
}

type WebhookHandler struct {
	logger    *slog.Logger
	validate  *validator.Validate
	svc       WebhookProcessor
	serverKey string
}

func NewWebhookHandler(logger *slog.Logger, svc WebhookProcessor, serverKey string) *WebhookHandler {
	return &WebhookHandler{
		logger:    logger.With(slog.String("handler", "webhook")),
		validate:  validator.New(),
		svc:       svc,
		serverKey: serverKey,
	}
}

func (h *WebhookHandler) Init(r chi.Router) {
	r.Post("/webhooks/payment", h.HandlePayment)
	r.Post("/webhooks/shipment", h.HandleShipment)
}

// paymentSignature is the shared-secret checksum the gateway sends alongside
// each notification: hex sha512 over order id, gross amount and server key.
func (h *WebhookHandler) paymentSignature(orderID, grossAmount string) string {
	sum := sha512.Sum512([]byte(orderID + grossAmount + h.serverKey))
	return hex.EncodeToString(sum[:])
}

// HandlePayment is the payment gateway ingress. Anything short of a bad
// signature or an unknown order is acknowledged with 200: the gateway retries
// on failure responses, and retrying a no-op forever helps nobody.
func (h *WebhookHandler) HandlePayment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req PaymentWebhook
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, "invalid payload", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	want := h.paymentSignature(req.OrderID, req.GrossAmount)
	if !hmac.Equal([]byte(want), []byte(req.SignatureKey)) {
		h.logger.Warn("payment webhook signature mismatch",
			slog.String("order_id", req.OrderID),
			slog.String("transaction_id", req.TransactionID))
		paymentWebhooksTotal.WithLabelValues("rejected").Inc()
		utils.WriteError(w, "invalid signature", http.StatusBadRequest)
		return
	}

	result, err := h.svc.ApplyPaymentNotification(ctx, service.PaymentNotification{
		OrderID:           req.OrderID,
		TransactionID:     req.TransactionID,
		TransactionStatus: req.TransactionStatus,
		FraudStatus:       req.FraudStatus,
		GrossAmount:       req.GrossAmount,
		PaymentType:       req.PaymentType,
	})

	if errors.Is(err, entities.ErrOrderNotFound) {
		paymentWebhooksTotal.WithLabelValues("not_found").Inc()
		utils.WriteError(w, "order not found", http.StatusNotFound)
		return
	}
	if err != nil {
		// exhausted retries; a 5xx makes the gateway redeliver
		h.logger.ErrorContext(ctx, "failed to process payment webhook",
			slog.String("order_id", req.OrderID), slog.Any("error", err))
		paymentWebhooksTotal.WithLabelValues("error").Inc()
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	paymentWebhooksTotal.WithLabelValues(string(result)).Inc()
	utils.WriteJSON(w, map[string]string{"status": "OK"}, http.StatusOK)
}

// HandleShipment is the carrier ingress.
func (h *WebhookHandler) HandleShipment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ShipmentWebhook
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, "invalid payload", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	result, err := h.svc.ApplyShipmentNotification(ctx, ShipmentWebhookToNotification(req))

	if errors.Is(err, entities.ErrOrderNotFound) {
		shipmentWebhooksTotal.WithLabelValues("not_found").Inc()
		utils.WriteError(w, "order not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to process shipment webhook",
			slog.String("order_id", req.OrderID),
			slog.String("tracking_id", req.TrackingID),
			slog.Any("error", err))
		shipmentWebhooksTotal.WithLabelValues("error").Inc()
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	shipmentWebhooksTotal.WithLabelValues(string(result)).Inc()
	utils.WriteJSON(w, map[string]string{"status": "success"}, http.StatusOK)
}
