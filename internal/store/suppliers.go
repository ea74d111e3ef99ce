package store

import (
	"context"
	"database/sql"
	"errors"

	"warehouse-service/internal/models"
)

// GetSupplierByID retrieves a supplier by ID. Returns nil without error
// when no such supplier exists.
func (s *Store) GetSupplierByID(ctx context.Context, id int64) (*models.Supplier, error) {
	var supplier models.Supplier
	err := s.db.GetContext(ctx, &supplier,
		"SELECT id, name, contact_info, is_active FROM suppliers WHERE id = $1", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &supplier, nil
}

// GetSuppliers retrieves all suppliers
func (s *Store) GetSuppliers(ctx context.Context) ([]models.Supplier, error) {
	var suppliers []models.Supplier
	err := s.db.SelectContext(ctx, &suppliers,
		"SELECT id, name, contact_info, is_active FROM suppliers")
	return suppliers, err
}

// GetActiveSuppliers retrieves only suppliers with the active flag set
func (s *Store) GetActiveSuppliers(ctx context.Context) ([]models.Supplier, error) {
	var suppliers []models.Supplier
	err := s.db.SelectContext(ctx, &suppliers,
		"SELECT id, name, contact_info, is_active FROM suppliers WHERE is_active = TRUE")
	return suppliers, err
}

// CreateSupplier inserts a supplier and returns the generated ID
func (s *Store) CreateSupplier(ctx context.Context, supplier *models.Supplier) (int64, error) {
	query := `
		INSERT INTO suppliers (name, contact_info, is_active)
		VALUES ($1, $2, $3)
		RETURNING id`

	var id int64
	err := s.db.GetContext(ctx, &id, query,
		supplier.Name, supplier.ContactInfo, supplier.IsActive)
	if err != nil {
		return 0, err
	}
	supplier.ID = id
	return id, nil
}

// UpdateSupplier replaces a supplier record by ID. Returns false, not an
// error, when the ID does not exist.
func (s *Store) UpdateSupplier(ctx context.Context, supplier *models.Supplier) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE suppliers
		 SET name = $1, contact_info = $2, is_active = $3
		 WHERE id = $4`,
		supplier.Name, supplier.ContactInfo, supplier.IsActive, supplier.ID)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	return rows > 0, err
}

// DeleteSupplier deletes a supplier by ID. Orders referencing the
// supplier are left in place; orphaning is a schema-level concern.
func (s *Store) DeleteSupplier(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM suppliers WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	return rows > 0, err
}
