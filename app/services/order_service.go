package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shashiranjanraj/bookstore/app/models"
	"github.com/shashiranjanraj/bookstore/app/repositories"
	"github.com/shashiranjanraj/bookstore/pkg/collection"
	"github.com/shashiranjanraj/bookstore/pkg/event"
	"github.com/shashiranjanraj/bookstore/pkg/logger"
)

var (
	ErrEmptyCart         = errors.New("services: cart is empty")
	ErrUnknownProduct    = errors.New("services: cart references an unknown product")
	ErrInvalidTransition = errors.New("services: order status transition not allowed")
)

// StatusChange is the payload of EventOrderStatusChanged.
type StatusChange struct {
	OrderID uint
	From    models.OrderStatus
	To      models.OrderStatus
}

// OrderService covers checkout and the order status lifecycle.
type OrderService struct {
	orders *repositories.OrderRepository
	now    func() time.Time
}

func NewOrderService(orders *repositories.OrderRepository) *OrderService {
	return &OrderService{orders: orders, now: time.Now}
}

// Checkout turns a cart snapshot into one Pending order. Repeated product
// ids are collapsed; each line is priced at the product's current price.
func (s *OrderService) Checkout(ctx context.Context, userID uint, productIDs []uint) (models.Order, error) {
	ids := collection.Unique(collection.Filter(productIDs, func(id uint) bool { return id != 0 }))
	if len(ids) == 0 {
		return models.Order{}, ErrEmptyCart
	}

	order, err := s.orders.Place(ctx, userID, ids, s.now())
	if errors.Is(err, repositories.ErrMissingRelation) {
		return models.Order{}, ErrUnknownProduct
	}
	if err != nil {
		return models.Order{}, err
	}

	logger.WithCtx(ctx).Info("order placed",
		"order_id", order.ID,
		"user_id", userID,
		"lines", len(order.Lines),
		"total", order.TotalAmount.String(),
	)
	event.Fire(ctx, EventOrderCreated, order)
	return order, nil
}

// ChangeStatus moves an order along its lifecycle. Only the status column
// is written; lines and totals never change.
func (s *OrderService) ChangeStatus(ctx context.Context, id uint, to models.OrderStatus) (models.Order, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return models.Order{}, err
	}

	from := order.Status
	if !from.CanTransitionTo(to) {
		return models.Order{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}

	if err := s.orders.UpdateStatus(ctx, id, from, to); err != nil {
		if errors.Is(err, repositories.ErrStaleStatus) {
			return models.Order{}, fmt.Errorf("%w: %v", ErrInvalidTransition, err)
		}
		return models.Order{}, err
	}
	order.Status = to

	logger.WithCtx(ctx).Info("order status changed", "order_id", id, "from", from, "to", to)
	event.Fire(ctx, EventOrderStatusChanged, StatusChange{OrderID: id, From: from, To: to})
	return order, nil
}
