package service

import (
	"context"
	"fmt"
	"time"

	"warehouse-service/internal/broker"
	"warehouse-service/internal/models"
	"warehouse-service/internal/redisclient"
	"warehouse-service/internal/store"
	"warehouse-service/internal/util"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// How long an idempotency key maps to its created order, and how long a
// per-order refresh lock may be held.
const (
	idempotencyTTL = 24 * time.Hour
	orderLockTTL   = 10 * time.Second
)

// OrderService handles purchase order business logic. The store leaves
// the denormalized order total to its callers; this service runs the
// compute-then-persist sequence after every item mutation.
type OrderService struct {
	store          *store.Store
	redis          *redisclient.Client
	eventPublisher *broker.EventPublisher
	logger         *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(
	store *store.Store,
	redis *redisclient.Client,
	eventPublisher *broker.EventPublisher,
) *OrderService {
	return &OrderService{
		store:          store,
		redis:          redis,
		eventPublisher: eventPublisher,
		logger:         util.GetLogger(),
	}
}

// CreateOrderRequest represents a request to create a purchase order
type CreateOrderRequest struct {
	SupplierID     int64              `json:"supplier_id" binding:"required"`
	OrderDate      time.Time          `json:"order_date,omitempty"`
	Status         string             `json:"status,omitempty"`
	Items          []OrderItemRequest `json:"items,omitempty"`
	IdempotencyKey string             `json:"idempotency_key,omitempty"`
}

// OrderItemRequest represents a line in a create-order request. A zero
// unit price means "snapshot the product's current price".
type OrderItemRequest struct {
	ProductID int64           `json:"product_id" binding:"required"`
	Quantity  int             `json:"quantity" binding:"required,min=1"`
	UnitPrice decimal.Decimal `json:"unit_price,omitempty"`
}

// CreateOrderResponse represents the response after creating an order
type CreateOrderResponse struct {
	OrderID     int64           `json:"order_id"`
	Status      string          `json:"status"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// snapshotUnitPrice picks the price to freeze into an order line: the
// caller-supplied price when present, otherwise the product's current one.
func snapshotUnitPrice(req OrderItemRequest, product *models.Product) decimal.Decimal {
	if !req.UnitPrice.IsZero() {
		return req.UnitPrice
	}
	return product.Price
}

// CreateOrder creates a purchase order with its items, refreshes the
// denormalized total, and publishes OrderCreated.
func (s *OrderService) CreateOrder(ctx context.Context, req *CreateOrderRequest) (*CreateOrderResponse, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.CreateOrder")
	defer span.End()

	if req.IdempotencyKey != "" {
		orderID, err := s.redis.GetIdempotencyKey(ctx, req.IdempotencyKey)
		if err != nil {
			return nil, fmt.Errorf("failed to check idempotency: %w", err)
		}
		if orderID != 0 {
			existing, err := s.store.GetOrderByID(ctx, orderID)
			if err != nil {
				return nil, err
			}
			if existing != nil {
				s.logger.Info("Duplicate order request detected",
					zap.String("idempotency_key", req.IdempotencyKey),
					zap.Int64("order_id", existing.ID))
				return &CreateOrderResponse{
					OrderID:     existing.ID,
					Status:      existing.Status,
					TotalAmount: existing.TotalAmount,
				}, nil
			}
		}
	}

	status := req.Status
	if status == "" {
		status = models.OrderStatusPending
	}

	order := &models.Order{
		SupplierID:  req.SupplierID,
		OrderDate:   req.OrderDate,
		Status:      status,
		TotalAmount: decimal.Zero,
	}

	orderID, err := s.store.CreateOrder(ctx, order)
	if err != nil {
		util.OrdersFailedTotal.WithLabelValues("db_error").Inc()
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	util.OrdersCreatedTotal.Inc()
	s.logger.Info("Order created",
		zap.Int64("order_id", orderID),
		zap.Int64("supplier_id", req.SupplierID))

	itemData := make([]models.OrderItemData, 0, len(req.Items))
	for _, itemReq := range req.Items {
		product, err := s.store.GetProductByID(ctx, itemReq.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			util.OrdersFailedTotal.WithLabelValues("unknown_product").Inc()
			return nil, fmt.Errorf("product not found: %d", itemReq.ProductID)
		}

		item := &models.OrderItem{
			OrderID:   orderID,
			ProductID: itemReq.ProductID,
			Quantity:  itemReq.Quantity,
			UnitPrice: snapshotUnitPrice(itemReq, product),
		}
		if _, err := s.store.CreateOrderItem(ctx, item); err != nil {
			return nil, fmt.Errorf("failed to create order item: %w", err)
		}

		itemData = append(itemData, models.OrderItemData{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	total, err := s.store.RefreshOrderTotal(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to refresh order total: %w", err)
	}

	event := &models.OrderCreatedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeOrderCreated,
			Timestamp: time.Now(),
		},
		OrderID:     orderID,
		SupplierID:  req.SupplierID,
		Status:      status,
		TotalAmount: total,
		Items:       itemData,
	}
	if err := s.eventPublisher.PublishOrderCreated(ctx, event); err != nil {
		s.logger.Error("Failed to publish OrderCreated event", zap.Error(err))
	}

	if req.IdempotencyKey != "" {
		if err := s.redis.SetIdempotencyKey(ctx, req.IdempotencyKey, orderID, idempotencyTTL); err != nil {
			s.logger.Error("Failed to store idempotency key", zap.Error(err))
		}
	}

	return &CreateOrderResponse{
		OrderID:     orderID,
		Status:      status,
		TotalAmount: total,
	}, nil
}

// GetOrder retrieves an order by ID, hydrated with its supplier and
// items; nil result means not found.
func (s *OrderService) GetOrder(ctx context.Context, orderID int64) (*models.Order, error) {
	return s.store.GetOrderByID(ctx, orderID)
}

// ListOrders retrieves all orders
func (s *OrderService) ListOrders(ctx context.Context) ([]models.Order, error) {
	return s.store.GetOrders(ctx)
}

// ListOrdersBySupplier retrieves all orders placed with a supplier
func (s *OrderService) ListOrdersBySupplier(ctx context.Context, supplierID int64) ([]models.Order, error) {
	return s.store.GetOrdersBySupplierID(ctx, supplierID)
}

// UpdateOrder replaces an order record
func (s *OrderService) UpdateOrder(ctx context.Context, order *models.Order) (bool, error) {
	return s.store.UpdateOrder(ctx, order)
}

// DeleteOrder removes an order and all of its items, then publishes
// OrderDeleted.
func (s *OrderService) DeleteOrder(ctx context.Context, orderID int64) (bool, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.DeleteOrder")
	defer span.End()

	order, err := s.store.GetOrderByID(ctx, orderID)
	if err != nil {
		return false, err
	}
	if order == nil {
		return false, nil
	}

	deleted, err := s.store.DeleteOrder(ctx, orderID)
	if err != nil {
		util.OrdersFailedTotal.WithLabelValues("delete_failed").Inc()
		return false, fmt.Errorf("failed to delete order: %w", err)
	}
	if !deleted {
		return false, nil
	}

	util.OrdersDeletedTotal.Inc()
	s.logger.Info("Order deleted",
		zap.Int64("order_id", orderID),
		zap.Int("items_removed", len(order.OrderItems)))

	event := &models.OrderDeletedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeOrderDeleted,
			Timestamp: time.Now(),
		},
		OrderID:    orderID,
		SupplierID: order.SupplierID,
	}
	if err := s.eventPublisher.PublishOrderDeleted(ctx, event); err != nil {
		s.logger.Error("Failed to publish OrderDeleted event", zap.Error(err))
	}

	return true, nil
}

// OrderTotal computes the authoritative order total without persisting it
func (s *OrderService) OrderTotal(ctx context.Context, orderID int64) (decimal.Decimal, error) {
	return s.store.CalculateOrderTotal(ctx, orderID)
}

// AddOrderItem creates an order item and runs the total refresh sequence
func (s *OrderService) AddOrderItem(ctx context.Context, item *models.OrderItem) (int64, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.AddOrderItem")
	defer span.End()

	id, err := s.store.CreateOrderItem(ctx, item)
	if err != nil {
		return 0, fmt.Errorf("failed to create order item: %w", err)
	}

	util.OrderItemMutationsTotal.WithLabelValues(models.ItemChangeCreated).Inc()
	s.afterItemMutation(ctx, item.OrderID, id, models.ItemChangeCreated, item)
	return id, nil
}

// UpdateOrderItem replaces an order item and runs the total refresh
// sequence when a row was changed.
func (s *OrderService) UpdateOrderItem(ctx context.Context, item *models.OrderItem) (bool, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.UpdateOrderItem")
	defer span.End()

	updated, err := s.store.UpdateOrderItem(ctx, item)
	if err != nil || !updated {
		return updated, err
	}

	util.OrderItemMutationsTotal.WithLabelValues(models.ItemChangeUpdated).Inc()
	s.afterItemMutation(ctx, item.OrderID, item.ID, models.ItemChangeUpdated, item)
	return true, nil
}

// RemoveOrderItem deletes an order item and runs the total refresh
// sequence when a row was removed.
func (s *OrderService) RemoveOrderItem(ctx context.Context, itemID int64) (bool, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.RemoveOrderItem")
	defer span.End()

	item, err := s.store.GetOrderItemByID(ctx, itemID)
	if err != nil {
		return false, err
	}
	if item == nil {
		return false, nil
	}

	deleted, err := s.store.DeleteOrderItem(ctx, itemID)
	if err != nil || !deleted {
		return deleted, err
	}

	util.OrderItemMutationsTotal.WithLabelValues(models.ItemChangeDeleted).Inc()
	s.afterItemMutation(ctx, item.OrderID, itemID, models.ItemChangeDeleted, item)
	return true, nil
}

// GetOrderItem retrieves an order item by ID; nil result means not found
func (s *OrderService) GetOrderItem(ctx context.Context, itemID int64) (*models.OrderItem, error) {
	return s.store.GetOrderItemByID(ctx, itemID)
}

// ListOrderItems retrieves all items for an order
func (s *OrderService) ListOrderItems(ctx context.Context, orderID int64) ([]models.OrderItem, error) {
	return s.store.GetOrderItemsByOrderID(ctx, orderID)
}

// RefreshTotal recomputes and persists the denormalized order total under
// a per-order lock, then publishes OrderTotalRefreshed.
func (s *OrderService) RefreshTotal(ctx context.Context, orderID int64) (decimal.Decimal, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.RefreshTotal")
	defer span.End()

	start := time.Now()
	defer func() {
		util.OrderTotalRefreshLatency.Observe(time.Since(start).Seconds())
	}()

	locked, err := s.redis.AcquireOrderLock(ctx, orderID, orderLockTTL)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to acquire order lock: %w", err)
	}
	if !locked {
		return decimal.Zero, fmt.Errorf("order %d is being refreshed by another caller", orderID)
	}
	defer func() {
		if err := s.redis.ReleaseOrderLock(ctx, orderID); err != nil {
			s.logger.Error("Failed to release order lock",
				zap.Int64("order_id", orderID),
				zap.Error(err))
		}
	}()

	total, err := s.store.RefreshOrderTotal(ctx, orderID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to refresh order total: %w", err)
	}

	event := &models.OrderTotalRefreshedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeOrderTotalRefreshed,
			Timestamp: time.Now(),
		},
		OrderID:     orderID,
		TotalAmount: total,
	}
	if err := s.eventPublisher.PublishOrderTotalRefreshed(ctx, event); err != nil {
		s.logger.Error("Failed to publish OrderTotalRefreshed event", zap.Error(err))
	}

	return total, nil
}

// afterItemMutation publishes the item change and refreshes the parent
// order's denormalized total.
func (s *OrderService) afterItemMutation(ctx context.Context, orderID, itemID int64, change string, item *models.OrderItem) {
	event := &models.OrderItemChangedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeOrderItemChanged,
			Timestamp: time.Now(),
		},
		OrderID: orderID,
		ItemID:  itemID,
		Change:  change,
		Item: models.OrderItemData{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		},
	}
	if err := s.eventPublisher.PublishOrderItemChanged(ctx, event); err != nil {
		s.logger.Error("Failed to publish OrderItemChanged event", zap.Error(err))
	}

	if _, err := s.RefreshTotal(ctx, orderID); err != nil {
		s.logger.Error("Failed to refresh order total after item mutation",
			zap.Int64("order_id", orderID),
			zap.Error(err))
	}
}
