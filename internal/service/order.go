package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/AlGhafarr/e-commerce-mandes-v1-sub000/internal/carrier"
	"github.com/AlGhafarr/e-commerce-mandes-v1-sub000/internal/entities"
	"github.com/AlGhafarr/e-commerce-mandes-v1-sub000/pkg/trm"
	"github.com/AlGhafarr/e-commerce-mandes-v1-sub000/pkg/utils"

	"github.com/google/uuid"
)

type OrderRepo interface {
	GetOrderByID(ctx context.Context, orderID string) (entities.Order, error)
	GetOrderByTrackingID(ctx context.Context, trackingID string) (entities.Order, error)
	CreateOrder(ctx context.Context, o entities.Order) error

	// UpdateOrder is a compare-and-swap on the version column; it returns
	// entities.ErrVersionConflict when another writer committed first.
	UpdateOrder(ctx context.Context, o entities.Order, expectedVersion int64) error

	// MarkNotificationProcessed reports whether the idempotency key was seen
	// for the first time. Idempotent via ON CONFLICT DO NOTHING.
	MarkNotificationProcessed(ctx context.Context, key string) (bool, error)
}

type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte)
	Delete(key string)
}

type CarrierClient interface {
	CreateOrder(ctx context.Context, req carrier.BookingRequest) (carrier.BookingResponse, error)
}

// Notifier is fire-and-forget: implementations swallow their own errors.
type Notifier interface {
	Notify(ctx context.Context, order entities.Order, eventKind string)
}

type orderService struct {
	logger    *slog.Logger
	txManager trm.Manager
	repo      OrderRepo
	cache     Cache
	carrier   CarrierClient
	notifier  Notifier

	bookings inflight
}

func NewOrderService(
	logger *slog.Logger,
	txManager trm.Manager,
	repo OrderRepo,
	cache Cache,
	carrierClient CarrierClient,
	notifier Notifier,
) *orderService {
	return &orderService{
		logger:    logger.With(slog.String("service", "order")),
		txManager: txManager,
		repo:      repo,
		cache:     cache,
		carrier:   carrierClient,
		notifier:  notifier,
	}
}

// conflictRetry bounds the reload-and-recompute loop used when a concurrent
// writer wins the version race. Recomputed applications are always safe
// because impossible transitions degrade to no-ops.
var conflictRetry = utils.RetryConfig{
	MaxAttempts:  5,
	InitialDelay: 50 * time.Millisecond,
	Multiplier:   2,
}

type CreateOrderItem struct {
	ProductID   string
	VariantID   string
	Name        string
	UnitPrice   int64
	Quantity    int
	WeightGrams int
}

type CreateOrderInput struct {
	Items          []CreateOrderItem
	Address        entities.Address
	Courier        string
	CourierService string
	ShippingFee    int64
	Discount       int64
}

// CreateOrder is the only legitimate order-creation path. Item names, prices
// and the shipping address are frozen here; the total never gets recomputed.
func (s *orderService) CreateOrder(ctx context.Context, input CreateOrderInput) (entities.Order, error) {
	if len(input.Items) == 0 {
		return entities.Order{}, fmt.Errorf("%w: order has no items", entities.ErrInvalidOrder)
	}

	var subtotal int64
	items := make([]entities.Item, 0, len(input.Items))
	for _, it := range input.Items {
		subtotal += it.UnitPrice * int64(it.Quantity)
		items = append(items, entities.Item{
			ProductID:   it.ProductID,
			VariantID:   it.VariantID,
			Name:        it.Name,
			UnitPrice:   it.UnitPrice,
			Quantity:    it.Quantity,
			WeightGrams: it.WeightGrams,
		})
	}

	now := time.Now().UTC()
	order := entities.Order{
		ID:             uuid.NewString(),
		Status:         entities.StatusPendingPayment,
		Courier:        input.Courier,
		CourierService: input.CourierService,
		TotalAmount:    subtotal + input.ShippingFee - input.Discount,
		Version:        1,
		CreatedAt:      now,
		UpdatedAt:      now,
		Address:        input.Address,
		Items:          items,
	}

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		return s.repo.CreateOrder(ctx, order)
	})
	if err != nil {
		return entities.Order{}, fmt.Errorf("failed to create order: %w", err)
	}

	s.logger.Info("order created",
		slog.String("order_id", order.ID),
		slog.Int64("total_amount", order.TotalAmount))
	s.notifier.Notify(ctx, order, "order_created")

	return order, nil
}

func (s *orderService) GetOrderByID(ctx context.Context, orderID string) (entities.Order, error) {
	if data, ok := s.cache.Get(orderID); ok {
		var order entities.Order
		if err := order.Unmarshal(data); err != nil {
			s.logger.Error("failed to unmarshal cached order",
				slog.String("order_id", orderID), slog.Any("error", err))
			return entities.Order{}, entities.ErrInvalidOrder
		}
		return order, nil
	}

	var order entities.Order
	fn := func() error {
		var err error
		order, err = s.repo.GetOrderByID(ctx, orderID)
		return err
	}
	cfg := utils.RetryConfig{
		InitialDelay: 100 * time.Millisecond,
		MaxAttempts:  3,
		Multiplier:   2,
	}
	if err := utils.Retry(cfg, fn, entities.ErrOrderNotFound); err != nil {
		return entities.Order{}, err
	}

	data, err := order.Marshal()
	if err != nil {
		s.logger.Error("failed to marshal order",
			slog.String("order_id", orderID), slog.Any("error", err))
		return entities.Order{}, err
	}
	s.cache.Set(orderID, data)
	return order, nil
}
