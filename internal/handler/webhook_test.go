package handler_test

import (
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/AlGhafarr/e-commerce-mandes-v1-sub000/internal/entities"
	"github.com/AlGhafarr/e-commerce-mandes-v1-sub000/internal/handler"
	mocks "github.com/AlGhafarr/e-commerce-mandes-v1-sub000/internal/handler/mocks"
	"github.com/AlGhafarr/e-commerce-mandes-v1-sub000/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testServerKey = "server-key-test"

func signPayment(orderID, grossAmount string) string {
	sum := sha512.Sum512([]byte(orderID + grossAmount + testServerKey))
	return hex.EncodeToString(sum[:])
}

func TestWebhookHandler_HandlePayment(t *testing.T) {
	validSignature := signPayment("o1", "150000.00")

	testCases := []struct {
		name         string
		body         string
		mockBehavior func(svc *mocks.MockWebhookProcessor)
		wantStatus   int
		wantBody     string
	}{
		{
			name: "settlement applied",
			body: `{"order_id":"o1","transaction_id":"tx-1","transaction_status":"settlement",` +
				`"gross_amount":"150000.00","signature_key":"` + validSignature + `"}`,
			mockBehavior: func(svc *mocks.MockWebhookProcessor) {
				svc.EXPECT().
					ApplyPaymentNotification(mock.Anything, service.PaymentNotification{
						OrderID:           "o1",
						TransactionID:     "tx-1",
						TransactionStatus: "settlement",
						GrossAmount:       "150000.00",
					}).
					Return(service.ResultApplied, nil).Once()
			},
			wantStatus: http.StatusOK,
			wantBody:   `"status":"OK"`,
		},
		{
			name: "duplicate is acknowledged",
			body: `{"order_id":"o1","transaction_id":"tx-1","transaction_status":"settlement",` +
				`"gross_amount":"150000.00","signature_key":"` + validSignature + `"}`,
			mockBehavior: func(svc *mocks.MockWebhookProcessor) {
				svc.EXPECT().
					ApplyPaymentNotification(mock.Anything, mock.Anything).
					Return(service.ResultDuplicate, nil).Once()
			},
			wantStatus: http.StatusOK,
			wantBody:   `"status":"OK"`,
		},
		{
			name: "bad signature never reaches the service",
			body: `{"order_id":"o1","transaction_id":"tx-1","transaction_status":"settlement",` +
				`"gross_amount":"150000.00","signature_key":"forged"}`,
			mockBehavior: func(svc *mocks.MockWebhookProcessor) {},
			wantStatus:   http.StatusBadRequest,
			wantBody:     `"invalid signature"`,
		},
		{
			name: "tampered amount breaks the signature",
			body: `{"order_id":"o1","transaction_id":"tx-1","transaction_status":"settlement",` +
				`"gross_amount":"1.00","signature_key":"` + validSignature + `"}`,
			mockBehavior: func(svc *mocks.MockWebhookProcessor) {},
			wantStatus:   http.StatusBadRequest,
			wantBody:     `"invalid signature"`,
		},
		{
			name:         "missing required fields",
			body:         `{"order_id":"o1"}`,
			mockBehavior: func(svc *mocks.MockWebhookProcessor) {},
			wantStatus:   http.StatusBadRequest,
			wantBody:     `"invalid request"`,
		},
		{
			name: "unknown order",
			body: `{"order_id":"o1","transaction_id":"tx-1","transaction_status":"settlement",` +
				`"gross_amount":"150000.00","signature_key":"` + validSignature + `"}`,
			mockBehavior: func(svc *mocks.MockWebhookProcessor) {
				svc.EXPECT().
					ApplyPaymentNotification(mock.Anything, mock.Anything).
					Return(service.NotificationResult(""), entities.ErrOrderNotFound).Once()
			},
			wantStatus: http.StatusNotFound,
			wantBody:   `"order not found"`,
		},
		{
			name: "internal error asks the gateway to redeliver",
			body: `{"order_id":"o1","transaction_id":"tx-1","transaction_status":"settlement",` +
				`"gross_amount":"150000.00","signature_key":"` + validSignature + `"}`,
			mockBehavior: func(svc *mocks.MockWebhookProcessor) {
				svc.EXPECT().
					ApplyPaymentNotification(mock.Anything, mock.Anything).
					Return(service.NotificationResult(""), errors.New("db down")).Once()
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   `"internal server error"`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc := mocks.NewMockWebhookProcessor(t)
			tc.mockBehavior(svc)

			logger := slog.New(slog.NewTextHandler(io.Discard, nil))
			h := handler.NewWebhookHandler(logger, svc, testServerKey)

			r := chi.NewRouter()
			h.Init(r)

			req := httptest.NewRequest(http.MethodPost, "/webhooks/payment", strings.NewReader(tc.body))
			rr := httptest.NewRecorder()

			r.ServeHTTP(rr, req)

			res := rr.Result()
			defer res.Body.Close()

			body, err := io.ReadAll(res.Body)
			require.NoError(t, err)

			assert.Equal(t, tc.wantStatus, res.StatusCode)
			assert.Contains(t, string(body), tc.wantBody)
		})
	}
}

func TestWebhookHandler_HandleShipment(t *testing.T) {
	testCases := []struct {
		name         string
		body         string
		mockBehavior func(svc *mocks.MockWebhookProcessor)
		wantStatus   int
		wantBody     string
	}{
		{
			name: "delivered",
			body: `{"order_id":"o1","tracking_id":"BTS123","status":"delivered",` +
				`"updated_at":"2026-08-02T14:00:00Z"}`,
			mockBehavior: func(svc *mocks.MockWebhookProcessor) {
				svc.EXPECT().
					ApplyShipmentNotification(mock.Anything, mock.MatchedBy(func(n service.ShipmentNotification) bool {
						return n.TrackingID == "BTS123" && n.Status == "delivered" &&
							len(n.Events) == 1 && n.Events[0].Status == "delivered"
					})).
					Return(service.ResultApplied, nil).Once()
			},
			wantStatus: http.StatusOK,
			wantBody:   `"status":"success"`,
		},
		{
			name: "history entries are forwarded",
			body: `{"tracking_id":"BTS123","status":"delivered","history":[` +
				`{"status":"picking_up","updated_at":"2026-08-01 10:00:00"},` +
				`{"status":"delivered","updated_at":"2026-08-02 14:00:00","note":"left at door"}]}`,
			mockBehavior: func(svc *mocks.MockWebhookProcessor) {
				svc.EXPECT().
					ApplyShipmentNotification(mock.Anything, mock.MatchedBy(func(n service.ShipmentNotification) bool {
						// the top-level status is already covered by history
						return len(n.Events) == 2 &&
							n.Events[0].Status == "picking_up" &&
							n.Events[1].Note == "left at door"
					})).
					Return(service.ResultApplied, nil).Once()
			},
			wantStatus: http.StatusOK,
			wantBody:   `"status":"success"`,
		},
		{
			name:         "missing status",
			body:         `{"tracking_id":"BTS123"}`,
			mockBehavior: func(svc *mocks.MockWebhookProcessor) {},
			wantStatus:   http.StatusBadRequest,
			wantBody:     `"invalid request"`,
		},
		{
			name: "unknown tracking id",
			body: `{"tracking_id":"GHOST","status":"delivered"}`,
			mockBehavior: func(svc *mocks.MockWebhookProcessor) {
				svc.EXPECT().
					ApplyShipmentNotification(mock.Anything, mock.Anything).
					Return(service.NotificationResult(""), entities.ErrOrderNotFound).Once()
			},
			wantStatus: http.StatusNotFound,
			wantBody:   `"order not found"`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc := mocks.NewMockWebhookProcessor(t)
			tc.mockBehavior(svc)

			logger := slog.New(slog.NewTextHandler(io.Discard, nil))
			h := handler.NewWebhookHandler(logger, svc, testServerKey)

			r := chi.NewRouter()
			h.Init(r)

			req := httptest.NewRequest(http.MethodPost, "/webhooks/shipment", strings.NewReader(tc.body))
			rr := httptest.NewRecorder()

			r.ServeHTTP(rr, req)

			res := rr.Result()
			defer res.Body.Close()

			body, err := io.ReadAll(res.Body)
			require.NoError(t, err)

			assert.Equal(t, tc.wantStatus, res.StatusCode)
			assert.Contains(t, string(body), tc.wantBody)
		})
	}
}
