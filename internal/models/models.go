package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a product held in the warehouse
type Product struct {
	ID              int64           `db:"id" json:"id"`
	Name            string          `db:"name" json:"name"`
	Description     *string         `db:"description" json:"description,omitempty"`
	Price           decimal.Decimal `db:"price" json:"price"`
	QuantityInStock int             `db:"quantity_in_stock" json:"quantity_in_stock"`
	CreatedDate     time.Time       `db:"created_date" json:"created_date"`
}

// Supplier represents a company the warehouse orders from
type Supplier struct {
	ID          int64   `db:"id" json:"id"`
	Name        string  `db:"name" json:"name"`
	ContactInfo *string `db:"contact_info" json:"contact_info,omitempty"`
	IsActive    bool    `db:"is_active" json:"is_active"`
}

// Order represents a purchase order placed with a supplier.
// TotalAmount is a denormalized cache of the sum of the items' line totals;
// the store never recomputes it on item mutation. Callers refresh it via
// CalculateOrderTotal followed by UpdateOrder.
type Order struct {
	ID          int64           `db:"id" json:"id"`
	SupplierID  int64           `db:"supplier_id" json:"supplier_id"`
	OrderDate   time.Time       `db:"order_date" json:"order_date"`
	Status      string          `db:"status" json:"status"`
	TotalAmount decimal.Decimal `db:"total_amount" json:"total_amount"`
	Supplier    Supplier        `db:"supplier" json:"supplier"`
	OrderItems  []OrderItem     `db:"-" json:"order_items"`
}

// OrderItem represents a line in a purchase order. UnitPrice is a snapshot
// of the product price at order time and is never re-derived from the
// product's current price.
type OrderItem struct {
	ID        int64           `db:"id" json:"id"`
	OrderID   int64           `db:"order_id" json:"order_id"`
	ProductID int64           `db:"product_id" json:"product_id"`
	Quantity  int             `db:"quantity" json:"quantity"`
	UnitPrice decimal.Decimal `db:"unit_price" json:"unit_price"`
	Product   Product         `db:"product" json:"product"`
}

// LineTotal returns quantity times the snapshot unit price.
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Common order statuses. Status is an opaque label at this layer; no
// transition rules are enforced here.
const (
	OrderStatusPending   = "Pending"
	OrderStatusConfirmed = "Confirmed"
	OrderStatusShipped   = "Shipped"
	OrderStatusReceived  = "Received"
	OrderStatusCancelled = "Cancelled"
)

// ProcessedEvent for audit idempotency
type ProcessedEvent struct {
	EventID     string    `db:"event_id"`
	EventType   string    `db:"event_type"`
	ProcessedAt time.Time `db:"processed_at"`
}
