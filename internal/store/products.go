package store

import (
	"context"
	"database/sql"
	"errors"

	"warehouse-service/internal/models"
)

// GetProductByID retrieves a product by ID. Returns nil without error
// when no such product exists.
func (s *Store) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	err := s.db.GetContext(ctx, &product,
		"SELECT id, name, description, price, quantity_in_stock, created_date FROM products WHERE id = $1", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// GetProducts retrieves all products
func (s *Store) GetProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := s.db.SelectContext(ctx, &products,
		"SELECT id, name, description, price, quantity_in_stock, created_date FROM products")
	return products, err
}

// CreateProduct inserts a product and returns the generated ID. An unset
// or out-of-range creation date is replaced with the current time.
func (s *Store) CreateProduct(ctx context.Context, product *models.Product) (int64, error) {
	product.CreatedDate = normalizeDate(product.CreatedDate)

	query := `
		INSERT INTO products (name, description, price, quantity_in_stock, created_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	var id int64
	err := s.db.GetContext(ctx, &id, query,
		product.Name, product.Description, product.Price, product.QuantityInStock, product.CreatedDate)
	if err != nil {
		return 0, err
	}
	product.ID = id
	return id, nil
}

// UpdateProduct replaces a product record by ID. Returns false, not an
// error, when the ID does not exist. The creation date is immutable.
func (s *Store) UpdateProduct(ctx context.Context, product *models.Product) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE products
		 SET name = $1, description = $2, price = $3, quantity_in_stock = $4
		 WHERE id = $5`,
		product.Name, product.Description, product.Price, product.QuantityInStock, product.ID)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	return rows > 0, err
}

// DeleteProduct deletes a product by ID. Returns false when the ID does
// not exist.
func (s *Store) DeleteProduct(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	return rows > 0, err
}
