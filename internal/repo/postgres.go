package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/AlGhafarr/e-commerce-mandes-v1-sub000/internal/entities"
	"github.com/AlGhafarr/e-commerce-mandes-v1-sub000/pkg/trm"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

type postgresRepo struct {
	db *sqlx.DB
	qb sq.StatementBuilderType
}

func NewPostgresRepo(db *sqlx.DB) *postgresRepo {
	return &postgresRepo{
		db: db,
		qb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

var orderColumns = []string{
	"id", "status", "courier", "courier_service", "tracking_id",
	"tracking_history", "total_amount", "version", "created_at", "updated_at",
}

func (r *postgresRepo) GetOrderByID(ctx context.Context, orderID string) (entities.Order, error) {
	query, args := r.qb.Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"id": orderID}).
		MustSql()

	var order Order
	err := r.getContext(ctx, &order, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Order{}, entities.ErrOrderNotFound
	}
	if err != nil {
		return entities.Order{}, fmt.Errorf("failed to get order: %w", err)
	}

	return r.assembleOrder(ctx, order)
}

func (r *postgresRepo) GetOrderByTrackingID(ctx context.Context, trackingID string) (entities.Order, error) {
	query, args := r.qb.Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"tracking_id": trackingID}).
		MustSql()

	var order Order
	err := r.getContext(ctx, &order, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Order{}, entities.ErrOrderNotFound
	}
	if err != nil {
		return entities.Order{}, fmt.Errorf("failed to get order by tracking id: %w", err)
	}

	return r.assembleOrder(ctx, order)
}

func (r *postgresRepo) assembleOrder(ctx context.Context, order Order) (entities.Order, error) {
	query, args := r.qb.Select(
		"order_id", "name", "phone", "line", "city", "province", "postal_code").
		From("order_addresses").
		Where(sq.Eq{"order_id": order.ID}).
		MustSql()

	var address Address
	err := r.getContext(ctx, &address, query, args...)
	if err != nil {
		return entities.Order{}, fmt.Errorf("failed to get order address: %w", err)
	}

	query, args = r.qb.Select(
		"order_id", "product_id", "variant_id", "name",
		"unit_price", "quantity", "weight_grams").
		From("order_items").
		Where(sq.Eq{"order_id": order.ID}).
		OrderBy("position").
		MustSql()

	var items []Item
	err = r.selectContext(ctx, &items, query, args...)
	if err != nil {
		return entities.Order{}, fmt.Errorf("failed to get order items: %w", err)
	}

	return OrderToEntity(order, address, items)
}

// CreateOrder inserts the order with its frozen item and address snapshots.
// Callers wrap it in trm.Manager.Do so the three inserts commit together.
func (r *postgresRepo) CreateOrder(ctx context.Context, o entities.Order) error {
	history, err := marshalHistory(o.TrackingHistory)
	if err != nil {
		return err
	}

	query, args := r.qb.Insert("orders").
		Columns(orderColumns...).
		Values(
			o.ID, string(o.Status), o.Courier, o.CourierService, nullString(o.TrackingID),
			history, o.TotalAmount, o.Version, o.CreatedAt, o.UpdatedAt,
		).
		Suffix("ON CONFLICT (id) DO NOTHING").
		MustSql()

	res, err := r.execContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to save order: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return entities.ErrOrderExists
	}

	query, args = r.qb.Insert("order_addresses").
		Columns("order_id", "name", "phone", "line", "city", "province", "postal_code").
		Values(
			o.ID, o.Address.Name, nullString(o.Address.Phone), o.Address.Line,
			o.Address.City, nullString(o.Address.Province), nullString(o.Address.PostalCode),
		).
		MustSql()

	if _, err := r.execContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to save order address: %w", err)
	}

	if len(o.Items) == 0 {
		return nil
	}

	q := r.qb.Insert("order_items").
		Columns("order_id", "position", "product_id", "variant_id", "name",
			"unit_price", "quantity", "weight_grams")

	for pos, it := range o.Items {
		q = q.Values(
			o.ID, pos, it.ProductID, nullString(it.VariantID), it.Name,
			it.UnitPrice, it.Quantity, nullInt32(it.WeightGrams),
		)
	}

	query, args = q.MustSql()
	if _, err := r.execContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to save order items: %w", err)
	}
	return nil
}

// UpdateOrder persists status, tracking id, history and updated_at under a
// compare-and-swap on the version column. expectedVersion is the version the
// order was loaded with; a zero-row update means another writer got there
// first and the caller must reload and recompute.
func (r *postgresRepo) UpdateOrder(ctx context.Context, o entities.Order, expectedVersion int64) error {
	history, err := marshalHistory(o.TrackingHistory)
	if err != nil {
		return err
	}

	query, args := r.qb.Update("orders").
		Set("status", string(o.Status)).
		Set("tracking_id", nullString(o.TrackingID)).
		Set("tracking_history", history).
		Set("updated_at", o.UpdatedAt).
		Set("version", expectedVersion+1).
		Where(sq.Eq{"id": o.ID, "version": expectedVersion}).
		MustSql()

	res, err := r.execContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return entities.ErrVersionConflict
	}
	return nil
}

// MarkNotificationProcessed records a webhook idempotency key. It returns
// false when the key was already present, i.e. this delivery is a replay.
// Run inside the same transaction as the resulting mutation so the key is
// burned if and only if the mutation commits.
func (r *postgresRepo) MarkNotificationProcessed(ctx context.Context, key string) (bool, error) {
	query, args := r.qb.Insert("processed_notifications").
		Columns("key", "processed_at").
		Values(key, time.Now().UTC()).
		Suffix("ON CONFLICT (key) DO NOTHING").
		MustSql()

	res, err := r.execContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to record notification key: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read notification insert result: %w", err)
	}
	return affected > 0, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullInt32(i int) sql.NullInt32 {
	if i == 0 {
		return sql.NullInt32{}
	}
	return sql.NullInt32{Int32: int32(i), Valid: true}
}

func (r *postgresRepo) execContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	tx := trm.ExtractTx(ctx)
	if tx != nil {
		return tx.ExecContext(ctx, query, args...)
	}
	return r.db.ExecContext(ctx, query, args...)
}

func (r *postgresRepo) getContext(ctx context.Context, dest any, query string, args ...any) error {
	tx := trm.ExtractTx(ctx)
	if tx != nil {
		return tx.GetContext(ctx, dest, query, args...)
	}
	return r.db.GetContext(ctx, dest, query, args...)
}

func (r *postgresRepo) selectContext(ctx context.Context, dest any, query string, args ...any) error {
	tx := trm.ExtractTx(ctx)
	if tx != nil {
		return tx.SelectContext(ctx, dest, query, args...)
	}
	return r.db.SelectContext(ctx, dest, query, args...)
}
