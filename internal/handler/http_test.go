package handler_test

import (
	"encoding/json"
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

func TestHTTPHandler_GetOrderByID(t *testing.T) {
	validOrder := entities.Order{
		ID:          "o1",
		Status:      entities.StatusShipped,
		TrackingID:  "BTS123",
		TotalAmount: 150000,
	}

	testCases := []struct {
		name         string
		orderID      string
		mockBehavior func(svc *mocks.MockOrderService)
		wantStatus   int
		wantBody     string
	}{
		{
			name:    "success",
			orderID: "o1",
			mockBehavior: func(svc *mocks.MockOrderService) {
				svc.EXPECT().
					GetOrderByID(mock.Anything, "o1").
					Return(validOrder, nil).Once()
			},
			wantStatus: http.StatusOK,
			wantBody:   `"order_id":"o1"`,
		},
		{
			name:    "not found",
			orderID: "not-exist",
			mockBehavior: func(svc *mocks.MockOrderService) {
				svc.EXPECT().
					GetOrderByID(mock.Anything, "not-exist").
					Return(entities.Order{}, entities.ErrOrderNotFound).Once()
			},
			wantStatus: http.StatusNotFound,
			wantBody:   `"order not found"`,
		},
		{
			name:    "internal error",
			orderID: "o1",
			mockBehavior: func(svc *mocks.MockOrderService) {
				svc.EXPECT().
					GetOrderByID(mock.Anything, "o1").
					Return(entities.Order{}, errors.New("db error")).Once()
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   `"internal server error"`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc := mocks.NewMockOrderService(t)
			tc.mockBehavior(svc)

			logger := slog.New(slog.NewTextHandler(io.Discard, nil))
			h := handler.NewHTTPHandler(logger, svc)

			r := chi.NewRouter()
			h.Init(r)

			req := httptest.NewRequest(http.MethodGet, "/orders/"+tc.orderID, nil)
			rr := httptest.NewRecorder()

			r.ServeHTTP(rr, req)

			res := rr.Result()
			defer res.Body.Close()

			body, err := io.ReadAll(res.Body)
			require.NoError(t, err)

			assert.Equal(t, tc.wantStatus, res.StatusCode)
			assert.Contains(t, string(body), tc.wantBody)

			if tc.wantStatus == http.StatusOK {
				var resp map[string]any
				err := json.Unmarshal(body, &resp)
				require.NoError(t, err)
				assert.Equal(t, "o1", resp["order_id"])
				assert.Equal(t, "SHIPPED", resp["status"])
				assert.Equal(t, "BTS123", resp["tracking_id"])
			}
		})
	}
}

func TestHTTPHandler_CreateOrder(t *testing.T) {
	validBody := `{
		"courier": "jne",
		"courier_service": "reg",
		"shipping_fee": 12000,
		"address": {"name": "Budi", "line": "Jl. Melati 1", "city": "Bandung"},
		"items": [{"product_id": "p1", "name": "Kopi", "unit_price": 50000, "quantity": 3}]
	}`

	testCases := []struct {
		name         string
		body         string
		mockBehavior func(svc *mocks.MockOrderService)
		wantStatus   int
		wantBody     string
	}{
		{
			name: "success",
			body: validBody,
			mockBehavior: func(svc *mocks.MockOrderService) {
				svc.EXPECT().
					CreateOrder(mock.Anything, mock.MatchedBy(func(in service.CreateOrderInput) bool {
						return in.Courier == "jne" && in.ShippingFee == 12000 &&
							len(in.Items) == 1 && in.Items[0].UnitPrice == 50000
					})).
					Return(entities.Order{
						ID:          "o1",
						Status:      entities.StatusPendingPayment,
						TotalAmount: 162000,
					}, nil).Once()
			},
			wantStatus: http.StatusCreated,
			wantBody:   `"status":"PENDING_PAYMENT"`,
		},
		{
			name:         "no items",
			body:         `{"courier":"jne","courier_service":"reg","address":{"name":"Budi","line":"x","city":"y"},"items":[]}`,
			mockBehavior: func(svc *mocks.MockOrderService) {},
			wantStatus:   http.StatusBadRequest,
			wantBody:     `"invalid request"`,
		},
		{
			name:         "malformed json",
			body:         `{"courier":`,
			mockBehavior: func(svc *mocks.MockOrderService) {},
			wantStatus:   http.StatusBadRequest,
			wantBody:     `"invalid payload"`,
		},
		{
			name: "service rejects order",
			body: validBody,
			mockBehavior: func(svc *mocks.MockOrderService) {
				svc.EXPECT().
					CreateOrder(mock.Anything, mock.Anything).
					Return(entities.Order{}, entities.ErrInvalidOrder).Once()
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   `"invalid order"`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc := mocks.NewMockOrderService(t)
			tc.mockBehavior(svc)

			logger := slog.New(slog.NewTextHandler(io.Discard, nil))
			h := handler.NewHTTPHandler(logger, svc)

			r := chi.NewRouter()
			h.Init(r)

			req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(tc.body))
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
