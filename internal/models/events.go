package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Event types
const (
	EventTypeOrderCreated        = "ORDER_CREATED"
	EventTypeOrderDeleted        = "ORDER_DELETED"
	EventTypeOrderItemChanged    = "ORDER_ITEM_CHANGED"
	EventTypeOrderTotalRefreshed = "ORDER_TOTAL_REFRESHED"
	EventTypeSupplierDeactivated = "SUPPLIER_DEACTIVATED"
)

// Item change kinds carried by OrderItemChangedEvent
const (
	ItemChangeCreated = "created"
	ItemChangeUpdated = "updated"
	ItemChangeDeleted = "deleted"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// OrderCreatedEvent published when a purchase order is created
type OrderCreatedEvent struct {
	BaseEvent
	OrderID     int64           `json:"order_id"`
	SupplierID  int64           `json:"supplier_id"`
	Status      string          `json:"status"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Items       []OrderItemData `json:"items,omitempty"`
}

// OrderDeletedEvent published after an order and its items are removed
type OrderDeletedEvent struct {
	BaseEvent
	OrderID    int64 `json:"order_id"`
	SupplierID int64 `json:"supplier_id"`
}

// OrderItemChangedEvent published after an order item mutation
type OrderItemChangedEvent struct {
	BaseEvent
	OrderID int64         `json:"order_id"`
	ItemID  int64         `json:"item_id"`
	Change  string        `json:"change"`
	Item    OrderItemData `json:"item"`
}

// OrderTotalRefreshedEvent published after the denormalized total is
// recomputed and persisted
type OrderTotalRefreshedEvent struct {
	BaseEvent
	OrderID     int64           `json:"order_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// SupplierDeactivatedEvent published when a supplier is switched inactive
type SupplierDeactivatedEvent struct {
	BaseEvent
	SupplierID int64  `json:"supplier_id"`
	Name       string `json:"name"`
}

// OrderItemData represents item data in events
type OrderItemData struct {
	ProductID int64           `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}
