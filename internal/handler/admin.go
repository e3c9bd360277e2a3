package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/AlGhafarr/e-commerce-mandes-v1-sub000/internal/entities"
	"github.com/AlGhafarr/e-commerce-mandes-v1-sub000/internal/fsm"
	"github.com/AlGhafarr/e-commerce-mandes-v1-sub000/pkg/utils"

	"github.com/go-chi/chi/v5"
)

type AdminService interface {
	ApplyAdminEvent(ctx context.Context, orderID string, ev fsm.Event) (entities.Order, error)
	RetryBooking(ctx context.Context, orderID string) error
}

// AdminHandler exposes the bounded set of manual order actions. Every one of
// them routes through the state machine, there is no direct status write.
type AdminHandler struct {
	logger *slog.Logger
	svc    AdminService
}

func NewAdminHandler(logger *slog.Logger, svc AdminService) *AdminHandler {
	return &AdminHandler{
		logger: logger.With(slog.String("handler", "admin")),
		svc:    svc,
	}
}

func (h *AdminHandler) Init(r chi.Router) {
	r.Route("/admin/orders/{order_id}", func(r chi.Router) {
		r.Post("/confirm", h.event(fsm.EventAdminConfirm))
		r.Post("/pack", h.event(fsm.EventAdminPacked))
		r.Post("/refund", h.event(fsm.EventAdminRefund))
		r.Post("/book", h.RetryBooking)
	})
}

func (h *AdminHandler) event(ev fsm.Event) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		orderID := chi.URLParam(r, "order_id")

		order, err := h.svc.ApplyAdminEvent(ctx, orderID, ev)

		if errors.Is(err, entities.ErrOrderNotFound) {
			utils.WriteError(w, "order not found", http.StatusNotFound)
			return
		}
		if errors.Is(err, entities.ErrIllegalTransition) {
			// operators get the conflict webhooks never see
			utils.WriteError(w, "illegal transition from "+string(order.Status), http.StatusConflict)
			return
		}
		if err != nil {
			h.logger.ErrorContext(ctx, "failed to apply admin event",
				slog.String("order_id", orderID),
				slog.String("event", string(ev)),
				slog.Any("error", err))
			utils.WriteError(w, "internal server error", http.StatusInternalServerError)
			return
		}

		utils.WriteJSON(w, OrderEntityToJSON(order), http.StatusOK)
	}
}

func (h *AdminHandler) RetryBooking(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	orderID := chi.URLParam(r, "order_id")

	err := h.svc.RetryBooking(ctx, orderID)

	if errors.Is(err, entities.ErrOrderNotFound) {
		utils.WriteError(w, "order not found", http.StatusNotFound)
		return
	}
	if errors.Is(err, entities.ErrIllegalTransition) {
		utils.WriteError(w, "order is not bookable", http.StatusConflict)
		return
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "manual booking retry failed",
			slog.String("order_id", orderID), slog.Any("error", err))
		utils.WriteError(w, "booking failed", http.StatusBadGateway)
		return
	}

	utils.WriteJSON(w, map[string]string{"status": "OK"}, http.StatusOK)
}
