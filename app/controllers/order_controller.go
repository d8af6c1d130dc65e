package controllers

import (
	"github.com/shashiranjanraj/bookstore/app/models"
	"github.com/shashiranjanraj/bookstore/app/services"
	"github.com/shashiranjanraj/bookstore/pkg/ctx"
)

type OrderController struct {
	orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{orders: orders}
}

type checkoutRequest struct {
	ProductIDs []uint `json:"productIds" validate:"max=500"`
}

type statusRequest struct {
	Status string `json:"status" validate:"required,oneof=Pending Confirmed Shipping Completed Cancelled"`
}

// Checkout places an order for the authenticated user.
func (oc *OrderController) Checkout(c *ctx.Context) {
	userID, ok := c.UserID()
	if !ok {
		c.Unauthorized()
		return
	}

	var body checkoutRequest
	if !c.BindJSON(&body) {
		return
	}

	order, err := oc.orders.Checkout(c.Context(), userID, body.ProductIDs)
	if err != nil {
		fail(c, err)
		return
	}
	c.Created(order)
}

func (oc *OrderController) UpdateStatus(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		c.NotFound()
		return
	}

	var body statusRequest
	if !c.BindJSON(&body) {
		return
	}

	order, err := oc.orders.ChangeStatus(c.Context(), id, models.OrderStatus(body.Status))
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(order)
}
