package store

import (
	"context"
	"database/sql"
	"errors"

	"warehouse-service/internal/models"
)

// Order item reads join the product row: an item without its product's
// name is not independently meaningful to callers.
const orderItemColumns = `
	oi.id, oi.order_id, oi.product_id, oi.quantity, oi.unit_price,
	p.id AS "product.id", p.name AS "product.name",
	p.description AS "product.description", p.price AS "product.price",
	p.quantity_in_stock AS "product.quantity_in_stock",
	p.created_date AS "product.created_date"`

// GetOrderItemByID retrieves an order item with its full product record.
// Returns nil without error when no such item exists.
func (s *Store) GetOrderItemByID(ctx context.Context, id int64) (*models.OrderItem, error) {
	var item models.OrderItem
	err := s.db.GetContext(ctx, &item,
		`SELECT `+orderItemColumns+`
		 FROM order_items oi
		 INNER JOIN products p ON oi.product_id = p.id
		 WHERE oi.id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// GetOrderItemsByOrderID retrieves all items for an order, each with its
// full product record. Item order within an order is not guaranteed.
func (s *Store) GetOrderItemsByOrderID(ctx context.Context, orderID int64) ([]models.OrderItem, error) {
	var items []models.OrderItem
	err := s.db.SelectContext(ctx, &items,
		`SELECT `+orderItemColumns+`
		 FROM order_items oi
		 INNER JOIN products p ON oi.product_id = p.id
		 WHERE oi.order_id = $1`, orderID)
	return items, err
}

// GetOrderItemsByProductID retrieves all items referencing a product.
// Only the product's ID and name are hydrated here; this read enumerates
// a product's usages and does not need the full record.
func (s *Store) GetOrderItemsByProductID(ctx context.Context, productID int64) ([]models.OrderItem, error) {
	var items []models.OrderItem
	err := s.db.SelectContext(ctx, &items,
		`SELECT oi.id, oi.order_id, oi.product_id, oi.quantity, oi.unit_price,
		        p.id AS "product.id", p.name AS "product.name"
		 FROM order_items oi
		 INNER JOIN products p ON oi.product_id = p.id
		 WHERE oi.product_id = $1`, productID)
	return items, err
}

// CreateOrderItem inserts an order item and returns the generated ID.
// UnitPrice is persisted as given; it is a price snapshot, not a lookup.
func (s *Store) CreateOrderItem(ctx context.Context, item *models.OrderItem) (int64, error) {
	query := `
		INSERT INTO order_items (order_id, product_id, quantity, unit_price)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	var id int64
	err := s.db.GetContext(ctx, &id, query,
		item.OrderID, item.ProductID, item.Quantity, item.UnitPrice)
	if err != nil {
		return 0, err
	}
	item.ID = id
	return id, nil
}

// UpdateOrderItem replaces an order item record by ID. Returns false,
// not an error, when the ID does not exist.
func (s *Store) UpdateOrderItem(ctx context.Context, item *models.OrderItem) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE order_items
		 SET order_id = $1, product_id = $2, quantity = $3, unit_price = $4
		 WHERE id = $5`,
		item.OrderID, item.ProductID, item.Quantity, item.UnitPrice, item.ID)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	return rows > 0, err
}

// DeleteOrderItem deletes an order item by ID
func (s *Store) DeleteOrderItem(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM order_items WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	return rows > 0, err
}

// DeleteOrderItemsByOrderID removes all items belonging to an order.
// Zero matched rows is the common case for an order without items and is
// reported as success; the caller signals cascade failure through the
// order-row delete instead.
func (s *Store) DeleteOrderItemsByOrderID(ctx context.Context, orderID int64) (bool, error) {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM order_items WHERE order_id = $1", orderID); err != nil {
		return false, err
	}
	return true, nil
}
