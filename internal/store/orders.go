package store

import (
	"context"
	"database/sql"
	"errors"

	"warehouse-service/internal/models"

	"github.com/shopspring/decimal"
)

const orderColumns = `
	o.id, o.supplier_id, o.order_date, o.status, o.total_amount,
	s.id AS "supplier.id", s.name AS "supplier.name",
	s.contact_info AS "supplier.contact_info", s.is_active AS "supplier.is_active"`

// GetOrderByID retrieves an order with its supplier row and full item
// list. Returns nil without error when no such order exists.
func (s *Store) GetOrderByID(ctx context.Context, id int64) (*models.Order, error) {
	var order models.Order
	err := s.db.GetContext(ctx, &order,
		`SELECT `+orderColumns+`
		 FROM orders o
		 INNER JOIN suppliers s ON o.supplier_id = s.id
		 WHERE o.id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := s.hydrateOrderItems(ctx, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// GetOrders retrieves all orders, each hydrated with supplier and items
func (s *Store) GetOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.SelectContext(ctx, &orders,
		`SELECT `+orderColumns+`
		 FROM orders o
		 INNER JOIN suppliers s ON o.supplier_id = s.id`)
	if err != nil {
		return nil, err
	}

	for i := range orders {
		if err := s.hydrateOrderItems(ctx, &orders[i]); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

// GetOrdersBySupplierID retrieves all orders placed with a supplier,
// hydrated the same way as GetOrders.
func (s *Store) GetOrdersBySupplierID(ctx context.Context, supplierID int64) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.SelectContext(ctx, &orders,
		`SELECT `+orderColumns+`
		 FROM orders o
		 INNER JOIN suppliers s ON o.supplier_id = s.id
		 WHERE o.supplier_id = $1`, supplierID)
	if err != nil {
		return nil, err
	}

	for i := range orders {
		if err := s.hydrateOrderItems(ctx, &orders[i]); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (s *Store) hydrateOrderItems(ctx context.Context, order *models.Order) error {
	items, err := s.GetOrderItemsByOrderID(ctx, order.ID)
	if err != nil {
		return err
	}
	order.OrderItems = items
	return nil
}

// CreateOrder inserts an order and returns the generated ID. An unset or
// out-of-range order date is replaced with the current time.
func (s *Store) CreateOrder(ctx context.Context, order *models.Order) (int64, error) {
	order.OrderDate = normalizeDate(order.OrderDate)

	query := `
		INSERT INTO orders (supplier_id, order_date, status, total_amount)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	var id int64
	err := s.db.GetContext(ctx, &id, query,
		order.SupplierID, order.OrderDate, order.Status, order.TotalAmount)
	if err != nil {
		return 0, err
	}
	order.ID = id
	return id, nil
}

// UpdateOrder replaces an order record by ID, applying the same date
// normalization as CreateOrder. Returns false, not an error, when the ID
// does not exist.
func (s *Store) UpdateOrder(ctx context.Context, order *models.Order) (bool, error) {
	order.OrderDate = normalizeDate(order.OrderDate)

	res, err := s.db.ExecContext(ctx,
		`UPDATE orders
		 SET supplier_id = $1, order_date = $2, status = $3, total_amount = $4
		 WHERE id = $5`,
		order.SupplierID, order.OrderDate, order.Status, order.TotalAmount, order.ID)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	return rows > 0, err
}

// DeleteOrder removes an order together with all of its items. Both
// deletes run in one transaction so a failure between them cannot leave
// orphaned items. Success reflects the order-row delete only.
func (s *Store) DeleteOrder(ctx context.Context, id int64) (bool, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM order_items WHERE order_id = $1", id); err != nil {
		return false, err
	}

	res, err := tx.ExecContext(ctx, "DELETE FROM orders WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}
	return rows > 0, nil
}

// CalculateOrderTotal computes the authoritative order total,
// SUM(quantity * unit_price) over the order's items, at the storage
// layer. An order with no items totals exactly zero.
func (s *Store) CalculateOrderTotal(ctx context.Context, orderID int64) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := s.db.GetContext(ctx, &total,
		"SELECT COALESCE(SUM(quantity * unit_price), 0) FROM order_items WHERE order_id = $1", orderID)
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// RefreshOrderTotal recomputes the order total and persists it into the
// denormalized total_amount column in one transaction. This is a
// convenience over the documented compute-then-update sequence; item
// mutations still never refresh the total on their own.
func (s *Store) RefreshOrderTotal(ctx context.Context, orderID int64) (decimal.Decimal, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return decimal.Zero, err
	}
	defer tx.Rollback()

	var total decimal.Decimal
	err = tx.GetContext(ctx, &total,
		"SELECT COALESCE(SUM(quantity * unit_price), 0) FROM order_items WHERE order_id = $1", orderID)
	if err != nil {
		return decimal.Zero, err
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE orders SET total_amount = $1 WHERE id = $2", total, orderID); err != nil {
		return decimal.Zero, err
	}

	if err := tx.Commit(); err != nil {
		return decimal.Zero, err
	}
	return total, nil
}
