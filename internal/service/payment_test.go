package service_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/AlGhafarr/e-commerce-mandes-v1-sub000/internal/carrier"
	"github.com/AlGhafarr/e-commerce-mandes-v1-sub000/internal/entities"
	"github.com/AlGhafarr/e-commerce-mandes-v1-sub000/internal/fsm"
	"github.com/AlGhafarr/e-commerce-mandes-v1-sub000/internal/service"
	mocks "github.com/AlGhafarr/e-commerce-mandes-v1-sub000/internal/service/mocks"
	txMocks "github.com/AlGhafarr/e-commerce-mandes-v1-sub000/pkg/trm/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// orderAPI is the full surface of the order service as the tests see it.
type orderAPI interface {
	CreateOrder(ctx context.Context, input service.CreateOrderInput) (entities.Order, error)
	GetOrderByID(ctx context.Context, orderID string) (entities.Order, error)
	ApplyPaymentNotification(ctx context.Context, n service.PaymentNotification) (service.NotificationResult, error)
	ApplyShipmentNotification(ctx context.Context, n service.ShipmentNotification) (service.NotificationResult, error)
	ApplyAdminEvent(ctx context.Context, orderID string, ev fsm.Event) (entities.Order, error)
	BookShipment(ctx context.Context, orderID string) error
	RetryBooking(ctx context.Context, orderID string) error
	WaitForBookings()
}

type serviceMocks struct {
	repo     *mocks.MockOrderRepo
	cache    *mocks.MockCache
	carrier  *mocks.MockCarrierClient
	notifier *mocks.MockNotifier
	tx       *txMocks.MockManager
}

func newService(t *testing.T) (*serviceMocks, orderAPI) {
	m := &serviceMocks{
		repo:     mocks.NewMockOrderRepo(t),
		cache:    mocks.NewMockCache(t),
		carrier:  mocks.NewMockCarrierClient(t),
		notifier: mocks.NewMockNotifier(t),
		tx:       txMocks.NewMockManager(t),
	}

	m.tx.EXPECT().
		Do(mock.Anything, mock.Anything).
		RunAndReturn(func(ctx context.Context, cb func(ctx context.Context) error) error {
			return cb(ctx)
		}).Maybe()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := service.NewOrderService(logger, m.tx, m.repo, m.cache, m.carrier, m.notifier)
	return m, svc
}

func pendingOrder(version int64) entities.Order {
	return entities.Order{
		ID:             "o1",
		Status:         entities.StatusPendingPayment,
		Courier:        "jne",
		CourierService: "reg",
		TotalAmount:    150000,
		Version:        version,
		Address:        entities.Address{Name: "Budi", Line: "Jl. Melati 1", City: "Bandung"},
		Items:          []entities.Item{{ProductID: "p1", Name: "Kopi", UnitPrice: 50000, Quantity: 3}},
	}
}

func paidOrder(version int64) entities.Order {
	o := pendingOrder(version)
	o.Status = entities.StatusPaid
	return o
}

func settlement() service.PaymentNotification {
	return service.PaymentNotification{
		OrderID:           "o1",
		TransactionID:     "tx-1",
		TransactionStatus: "settlement",
		GrossAmount:       "150000.00",
	}
}

func expectBookingFlow(m *serviceMocks, trackingID string) {
	// coordinator load, then the attach round's reload
	m.repo.EXPECT().GetOrderByID(mock.Anything, "o1").Return(paidOrder(2), nil).Twice()
	m.carrier.EXPECT().
		CreateOrder(mock.Anything, mock.Anything).
		Return(carrier.BookingResponse{TrackingID: trackingID}, nil).Once()
	m.repo.EXPECT().
		UpdateOrder(mock.Anything, mock.MatchedBy(func(o entities.Order) bool {
			return o.TrackingID == trackingID
		}), int64(2)).
		Return(nil).Once()
	m.cache.EXPECT().Delete("o1").Return().Once()
	m.notifier.EXPECT().Notify(mock.Anything, mock.Anything, "shipment_booked").Return().Once()
}

func TestApplyPaymentNotification_SettlementCapturesAndBooks(t *testing.T) {
	m, svc := newService(t)

	m.repo.EXPECT().MarkNotificationProcessed(mock.Anything, "payment:tx-1").Return(true, nil).Once()
	m.repo.EXPECT().GetOrderByID(mock.Anything, "o1").Return(pendingOrder(1), nil).Once()
	m.repo.EXPECT().
		UpdateOrder(mock.Anything, mock.MatchedBy(func(o entities.Order) bool {
			return o.Status == entities.StatusPaid
		}), int64(1)).
		Return(nil).Once()
	m.cache.EXPECT().Delete("o1").Return().Once()
	m.notifier.EXPECT().Notify(mock.Anything, mock.Anything, "payment_captured").Return().Once()

	expectBookingFlow(m, "BTS123")

	result, err := svc.ApplyPaymentNotification(context.Background(), settlement())
	svc.WaitForBookings()

	require.NoError(t, err)
	assert.Equal(t, service.ResultApplied, result)
}

func TestApplyPaymentNotification_DuplicateDeliveryBooksOnce(t *testing.T) {
	m, svc := newService(t)

	// first delivery wins the idempotency key, second short-circuits
	m.repo.EXPECT().MarkNotificationProcessed(mock.Anything, "payment:tx-1").Return(true, nil).Once()
	m.repo.EXPECT().MarkNotificationProcessed(mock.Anything, "payment:tx-1").Return(false, nil).Once()

	m.repo.EXPECT().GetOrderByID(mock.Anything, "o1").Return(pendingOrder(1), nil).Once()
	m.repo.EXPECT().
		UpdateOrder(mock.Anything, mock.Anything, int64(1)).
		Return(nil).Once()
	m.cache.EXPECT().Delete("o1").Return().Once()
	m.notifier.EXPECT().Notify(mock.Anything, mock.Anything, "payment_captured").Return().Once()

	expectBookingFlow(m, "BTS123")

	first, err := svc.ApplyPaymentNotification(context.Background(), settlement())
	require.NoError(t, err)
	svc.WaitForBookings()

	second, err := svc.ApplyPaymentNotification(context.Background(), settlement())
	require.NoError(t, err)
	svc.WaitForBookings()

	assert.Equal(t, service.ResultApplied, first)
	assert.Equal(t, service.ResultDuplicate, second)
	// expectBookingFlow registered the carrier call Once; a second booking
	// would fail the mock's expectations
}

func TestApplyPaymentNotification_LateChallengeAfterCapture(t *testing.T) {
	m, svc := newService(t)

	m.repo.EXPECT().
		MarkNotificationProcessed(mock.Anything, "payment:tx-2").
		Return(true, nil).Once()
	m.repo.EXPECT().GetOrderByID(mock.Anything, "o1").Return(paidOrder(2), nil).Once()

	result, err := svc.ApplyPaymentNotification(context.Background(), service.PaymentNotification{
		OrderID:           "o1",
		TransactionID:     "tx-2",
		TransactionStatus: "capture",
		FraudStatus:       "challenge",
		GrossAmount:       "150000.00",
	})
	svc.WaitForBookings()

	require.NoError(t, err)
	assert.Equal(t, service.ResultNoOp, result)
}

func TestApplyPaymentNotification_UnmappedStatusIsAcknowledged(t *testing.T) {
	m, svc := newService(t)

	m.repo.EXPECT().
		MarkNotificationProcessed(mock.Anything, "payment:tx-3").
		Return(true, nil).Once()
	m.repo.EXPECT().GetOrderByID(mock.Anything, "o1").Return(pendingOrder(1), nil).Once()

	result, err := svc.ApplyPaymentNotification(context.Background(), service.PaymentNotification{
		OrderID:           "o1",
		TransactionID:     "tx-3",
		TransactionStatus: "pending",
		GrossAmount:       "150000.00",
	})

	require.NoError(t, err)
	assert.Equal(t, service.ResultNoOp, result)
}

func TestApplyPaymentNotification_FailureCancelsWithoutBooking(t *testing.T) {
	m, svc := newService(t)

	m.repo.EXPECT().MarkNotificationProcessed(mock.Anything, "payment:tx-4").Return(true, nil).Once()
	m.repo.EXPECT().GetOrderByID(mock.Anything, "o1").Return(pendingOrder(1), nil).Once()
	m.repo.EXPECT().
		UpdateOrder(mock.Anything, mock.MatchedBy(func(o entities.Order) bool {
			return o.Status == entities.StatusCancelled
		}), int64(1)).
		Return(nil).Once()
	m.cache.EXPECT().Delete("o1").Return().Once()
	m.notifier.EXPECT().Notify(mock.Anything, mock.Anything, "payment_failed").Return().Once()

	result, err := svc.ApplyPaymentNotification(context.Background(), service.PaymentNotification{
		OrderID:           "o1",
		TransactionID:     "tx-4",
		TransactionStatus: "expire",
		GrossAmount:       "150000.00",
	})
	svc.WaitForBookings()

	require.NoError(t, err)
	assert.Equal(t, service.ResultApplied, result)
	// no carrier expectations were registered: a booking call would fail here
}

func TestApplyPaymentNotification_UnknownOrder(t *testing.T) {
	m, svc := newService(t)

	m.repo.EXPECT().MarkNotificationProcessed(mock.Anything, "payment:tx-5").Return(true, nil).Once()
	m.repo.EXPECT().
		GetOrderByID(mock.Anything, "ghost").
		Return(entities.Order{}, entities.ErrOrderNotFound).Once()

	_, err := svc.ApplyPaymentNotification(context.Background(), service.PaymentNotification{
		OrderID:           "ghost",
		TransactionID:     "tx-5",
		TransactionStatus: "settlement",
		GrossAmount:       "10.00",
	})

	assert.ErrorIs(t, err, entities.ErrOrderNotFound)
}

func TestApplyPaymentNotification_ConflictIsRecomputed(t *testing.T) {
	m, svc := newService(t)

	m.repo.EXPECT().MarkNotificationProcessed(mock.Anything, "payment:tx-1").Return(true, nil).Twice()

	// first round loses the version race, second sees the moved-on order
	m.repo.EXPECT().GetOrderByID(mock.Anything, "o1").Return(pendingOrder(1), nil).Once()
	m.repo.EXPECT().
		UpdateOrder(mock.Anything, mock.Anything, int64(1)).
		Return(entities.ErrVersionConflict).Once()
	m.repo.EXPECT().GetOrderByID(mock.Anything, "o1").Return(pendingOrder(2), nil).Once()
	m.repo.EXPECT().
		UpdateOrder(mock.Anything, mock.Anything, int64(2)).
		Return(nil).Once()

	m.cache.EXPECT().Delete("o1").Return().Once()
	m.notifier.EXPECT().Notify(mock.Anything, mock.Anything, "payment_captured").Return().Once()

	// the recomputed application lands on PAID and still books exactly once
	m.repo.EXPECT().GetOrderByID(mock.Anything, "o1").Return(paidOrder(3), nil).Twice()
	m.carrier.EXPECT().
		CreateOrder(mock.Anything, mock.Anything).
		Return(carrier.BookingResponse{TrackingID: "BTS123"}, nil).Once()
	m.repo.EXPECT().
		UpdateOrder(mock.Anything, mock.MatchedBy(func(o entities.Order) bool {
			return o.TrackingID == "BTS123"
		}), int64(3)).
		Return(nil).Once()
	m.cache.EXPECT().Delete("o1").Return().Once()
	m.notifier.EXPECT().Notify(mock.Anything, mock.Anything, "shipment_booked").Return().Once()

	result, err := svc.ApplyPaymentNotification(context.Background(), settlement())
	svc.WaitForBookings()

	require.NoError(t, err)
	assert.Equal(t, service.ResultApplied, result)
}
