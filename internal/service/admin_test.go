package service_test

import (
	"context"
	"testing"

	"github.com/AlGhafarr/e-commerce-mandes-v1-sub000/internal/entities"
	"github.com/AlGhafarr/e-commerce-mandes-v1-sub000/internal/fsm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestApplyAdminEvent(t *testing.T) {
	testCases := []struct {
		name       string
		from       entities.OrderStatus
		event      fsm.Event
		wantStatus entities.OrderStatus
	}{
		{"confirm paid order", entities.StatusPaid, fsm.EventAdminConfirm, entities.StatusConfirmed},
		{"pack confirmed order", entities.StatusConfirmed, fsm.EventAdminPacked, entities.StatusPacked},
		{"refund delivered order", entities.StatusDelivered, fsm.EventAdminRefund, entities.StatusRefunded},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m, svc := newService(t)

			o := paidOrder(2)
			o.Status = tc.from

			m.repo.EXPECT().GetOrderByID(mock.Anything, "o1").Return(o, nil).Once()
			m.repo.EXPECT().
				UpdateOrder(mock.Anything, mock.MatchedBy(func(u entities.Order) bool {
					return u.Status == tc.wantStatus
				}), int64(2)).
				Return(nil).Once()
			m.cache.EXPECT().Delete("o1").Return().Once()
			m.notifier.EXPECT().Notify(mock.Anything, mock.Anything, string(tc.event)).Return().Once()

			got, err := svc.ApplyAdminEvent(context.Background(), "o1", tc.event)

			require.NoError(t, err)
			assert.Equal(t, tc.wantStatus, got.Status)
			assert.Equal(t, int64(3), got.Version)
		})
	}
}

func TestApplyAdminEvent_IllegalTransition(t *testing.T) {
	testCases := []struct {
		name  string
		from  entities.OrderStatus
		event fsm.Event
	}{
		{"confirm before payment", entities.StatusPendingPayment, fsm.EventAdminConfirm},
		{"pack unconfirmed order", entities.StatusPaid, fsm.EventAdminPacked},
		{"refund pending order", entities.StatusPendingPayment, fsm.EventAdminRefund},
		{"confirm cancelled order", entities.StatusCancelled, fsm.EventAdminConfirm},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m, svc := newService(t)

			o := paidOrder(2)
			o.Status = tc.from
			m.repo.EXPECT().GetOrderByID(mock.Anything, "o1").Return(o, nil).Once()

			_, err := svc.ApplyAdminEvent(context.Background(), "o1", tc.event)

			assert.ErrorIs(t, err, entities.ErrIllegalTransition)
			// the error is not retried: the single GetOrderByID above is all
		})
	}
}

func TestApplyAdminEvent_UnknownOrder(t *testing.T) {
	m, svc := newService(t)

	m.repo.EXPECT().
		GetOrderByID(mock.Anything, "ghost").
		Return(entities.Order{}, entities.ErrOrderNotFound).Once()

	_, err := svc.ApplyAdminEvent(context.Background(), "ghost", fsm.EventAdminConfirm)
	assert.ErrorIs(t, err, entities.ErrOrderNotFound)
}

func TestApplyAdminEvent_ConflictIsRecomputed(t *testing.T) {
	m, svc := newService(t)

	m.repo.EXPECT().GetOrderByID(mock.Anything, "o1").Return(paidOrder(2), nil).Once()
	m.repo.EXPECT().
		UpdateOrder(mock.Anything, mock.Anything, int64(2)).
		Return(entities.ErrVersionConflict).Once()
	m.repo.EXPECT().GetOrderByID(mock.Anything, "o1").Return(paidOrder(3), nil).Once()
	m.repo.EXPECT().
		UpdateOrder(mock.Anything, mock.Anything, int64(3)).
		Return(nil).Once()
	m.cache.EXPECT().Delete("o1").Return().Once()
	m.notifier.EXPECT().Notify(mock.Anything, mock.Anything, "admin_confirm").Return().Once()

	got, err := svc.ApplyAdminEvent(context.Background(), "o1", fsm.EventAdminConfirm)

	require.NoError(t, err)
	assert.Equal(t, entities.StatusConfirmed, got.Status)
}
