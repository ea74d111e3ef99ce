package service

import (
	"context"
	"fmt"
	"time"

	"warehouse-service/internal/broker"
	"warehouse-service/internal/models"
	"warehouse-service/internal/store"
	"warehouse-service/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CatalogService handles product and supplier business logic
type CatalogService struct {
	store          *store.Store
	eventPublisher *broker.EventPublisher
	logger         *zap.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(store *store.Store, eventPublisher *broker.EventPublisher) *CatalogService {
	return &CatalogService{
		store:          store,
		eventPublisher: eventPublisher,
		logger:         util.GetLogger(),
	}
}

// CreateProduct creates a new product
func (cs *CatalogService) CreateProduct(ctx context.Context, product *models.Product) (int64, error) {
	ctx, span := util.StartSpan(ctx, "CatalogService.CreateProduct")
	defer span.End()

	id, err := cs.store.CreateProduct(ctx, product)
	if err != nil {
		return 0, fmt.Errorf("failed to create product: %w", err)
	}

	util.ProductsCreatedTotal.Inc()
	cs.logger.Info("Product created",
		zap.Int64("product_id", id),
		zap.String("name", product.Name))
	return id, nil
}

// GetProduct retrieves a product by ID; nil result means not found
func (cs *CatalogService) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	return cs.store.GetProductByID(ctx, id)
}

// ListProducts retrieves all products
func (cs *CatalogService) ListProducts(ctx context.Context) ([]models.Product, error) {
	return cs.store.GetProducts(ctx)
}

// UpdateProduct replaces a product record
func (cs *CatalogService) UpdateProduct(ctx context.Context, product *models.Product) (bool, error) {
	return cs.store.UpdateProduct(ctx, product)
}

// DeleteProduct deletes a product by ID
func (cs *CatalogService) DeleteProduct(ctx context.Context, id int64) (bool, error) {
	return cs.store.DeleteProduct(ctx, id)
}

// ProductUsages lists the order items that reference a product, with a
// name-only product projection.
func (cs *CatalogService) ProductUsages(ctx context.Context, productID int64) ([]models.OrderItem, error) {
	return cs.store.GetOrderItemsByProductID(ctx, productID)
}

// CreateSupplier creates a new supplier
func (cs *CatalogService) CreateSupplier(ctx context.Context, supplier *models.Supplier) (int64, error) {
	ctx, span := util.StartSpan(ctx, "CatalogService.CreateSupplier")
	defer span.End()

	id, err := cs.store.CreateSupplier(ctx, supplier)
	if err != nil {
		return 0, fmt.Errorf("failed to create supplier: %w", err)
	}

	util.SuppliersCreatedTotal.Inc()
	cs.logger.Info("Supplier created",
		zap.Int64("supplier_id", id),
		zap.String("name", supplier.Name))
	return id, nil
}

// GetSupplier retrieves a supplier by ID; nil result means not found
func (cs *CatalogService) GetSupplier(ctx context.Context, id int64) (*models.Supplier, error) {
	return cs.store.GetSupplierByID(ctx, id)
}

// ListSuppliers retrieves all suppliers
func (cs *CatalogService) ListSuppliers(ctx context.Context) ([]models.Supplier, error) {
	return cs.store.GetSuppliers(ctx)
}

// ListActiveSuppliers retrieves suppliers with the active flag set
func (cs *CatalogService) ListActiveSuppliers(ctx context.Context) ([]models.Supplier, error) {
	return cs.store.GetActiveSuppliers(ctx)
}

// UpdateSupplier replaces a supplier record. Switching a supplier from
// active to inactive additionally publishes SupplierDeactivated.
func (cs *CatalogService) UpdateSupplier(ctx context.Context, supplier *models.Supplier) (bool, error) {
	ctx, span := util.StartSpan(ctx, "CatalogService.UpdateSupplier")
	defer span.End()

	previous, err := cs.store.GetSupplierByID(ctx, supplier.ID)
	if err != nil {
		return false, err
	}

	updated, err := cs.store.UpdateSupplier(ctx, supplier)
	if err != nil || !updated {
		return updated, err
	}

	if previous != nil && previous.IsActive && !supplier.IsActive {
		event := &models.SupplierDeactivatedEvent{
			BaseEvent: models.BaseEvent{
				EventID:   uuid.New().String(),
				EventType: models.EventTypeSupplierDeactivated,
				Timestamp: time.Now(),
			},
			SupplierID: supplier.ID,
			Name:       supplier.Name,
		}
		if err := cs.eventPublisher.PublishSupplierDeactivated(ctx, event); err != nil {
			cs.logger.Error("Failed to publish SupplierDeactivated event", zap.Error(err))
		}
	}

	return true, nil
}

// DeleteSupplier deletes a supplier by ID. Orders referencing the
// supplier are not touched.
func (cs *CatalogService) DeleteSupplier(ctx context.Context, id int64) (bool, error) {
	return cs.store.DeleteSupplier(ctx, id)
}
