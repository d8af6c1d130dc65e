package services

import "github.com/shashiranjanraj/bookstore/pkg/event"

const (
	// EventOrderCreated carries the created models.Order.
	EventOrderCreated event.Name = "order.created"
	// EventOrderStatusChanged carries a StatusChange.
	EventOrderStatusChanged event.Name = "order.status_changed"
	// EventCatalogChanged carries the id of the product created or deleted.
	EventCatalogChanged event.Name = "catalog.changed"
)
