package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/bookstore/app/models"
	"github.com/shashiranjanraj/bookstore/app/repositories"
	"github.com/shashiranjanraj/bookstore/app/services"
	"github.com/shashiranjanraj/bookstore/internal/testutil"
	"github.com/shashiranjanraj/bookstore/pkg/event"
)

func TestCheckout(t *testing.T) {
	t.Cleanup(event.Flush)
	db := testutil.NewDB(t)
	a := testutil.Product(t, db, "A", "12.50")
	b := testutil.Product(t, db, "B", "7.25")
	svc := services.NewOrderService(repositories.NewOrderRepository(db))

	var fired []models.Order
	event.Listen(services.EventOrderCreated, func(_ context.Context, p interface{}) {
		fired = append(fired, p.(models.Order))
	})

	order, err := svc.Checkout(context.Background(), 3, []uint{a.ID, b.ID, a.ID})
	require.NoError(t, err)

	assert.Len(t, order.Lines, 2)
	assert.Equal(t, "19.75", order.TotalAmount.StringFixed(2))
	assert.Equal(t, models.StatusPending, order.Status)
	require.Len(t, fired, 1)
	assert.Equal(t, order.ID, fired[0].ID)
}

func TestCheckoutErrors(t *testing.T) {
	db := testutil.NewDB(t)
	a := testutil.Product(t, db, "A", "1")
	svc := services.NewOrderService(repositories.NewOrderRepository(db))
	ctx := context.Background()

	_, err := svc.Checkout(ctx, 1, nil)
	assert.ErrorIs(t, err, services.ErrEmptyCart)

	_, err = svc.Checkout(ctx, 1, []uint{0})
	assert.ErrorIs(t, err, services.ErrEmptyCart)

	_, err = svc.Checkout(ctx, 1, []uint{a.ID, 9999})
	assert.ErrorIs(t, err, services.ErrUnknownProduct)
}

func TestChangeStatusLifecycle(t *testing.T) {
	t.Cleanup(event.Flush)
	db := testutil.NewDB(t)
	o := testutil.Order(t, db, models.StatusPending, time.Now())
	svc := services.NewOrderService(repositories.NewOrderRepository(db))
	ctx := context.Background()

	var changes []services.StatusChange
	event.Listen(services.EventOrderStatusChanged, func(_ context.Context, p interface{}) {
		changes = append(changes, p.(services.StatusChange))
	})

	_, err := svc.ChangeStatus(ctx, o.ID, models.StatusCompleted)
	assert.ErrorIs(t, err, services.ErrInvalidTransition)

	for _, next := range []models.OrderStatus{models.StatusConfirmed, models.StatusShipping, models.StatusCompleted} {
		got, err := svc.ChangeStatus(ctx, o.ID, next)
		require.NoError(t, err)
		assert.Equal(t, next, got.Status)
	}

	_, err = svc.ChangeStatus(ctx, o.ID, models.StatusCancelled)
	assert.ErrorIs(t, err, services.ErrInvalidTransition)

	_, err = svc.ChangeStatus(ctx, o.ID+1, models.StatusConfirmed)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	assert.Equal(t, []services.StatusChange{
		{OrderID: o.ID, From: models.StatusPending, To: models.StatusConfirmed},
		{OrderID: o.ID, From: models.StatusConfirmed, To: models.StatusShipping},
		{OrderID: o.ID, From: models.StatusShipping, To: models.StatusCompleted},
	}, changes)
}
