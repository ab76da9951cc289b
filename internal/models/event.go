package models

import "time"

// Product lifecycle event types.
const (
	EventProductCreated = "product.created"
	EventProductUpdated = "product.updated"
	EventProductDeleted = "product.deleted"
)

// ProductEvent describes a committed change to a product.
// Product is nil for deletions.
type ProductEvent struct {
	Type       string    `json:"type"`
	ProductID  uint64    `json:"productId"`
	Product    *Product  `json:"product,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

// NewProductEvent builds an event stamped with the current time.
func NewProductEvent(eventType string, id uint64, product *Product) ProductEvent {
	return ProductEvent{
		Type:       eventType,
		ProductID:  id,
		Product:    product,
		OccurredAt: time.Now().UTC(),
	}
}
