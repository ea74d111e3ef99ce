package store

import (
	"context"
	"testing"

	"warehouse-service/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrderFixture(t *testing.T, store *Store, ctx context.Context) (supplierID, productID, orderID int64) {
	t.Helper()

	supplierID, err := store.CreateSupplier(ctx, &models.Supplier{Name: "Acme", IsActive: true})
	require.NoError(t, err)

	productID, err = store.CreateProduct(ctx, &models.Product{
		Name:            "Widget",
		Price:           decimal.RequireFromString("10.00"),
		QuantityInStock: 100,
	})
	require.NoError(t, err)

	orderID, err = store.CreateOrder(ctx, &models.Order{
		SupplierID:  supplierID,
		Status:      models.OrderStatusPending,
		TotalAmount: decimal.Zero,
	})
	require.NoError(t, err)

	return supplierID, productID, orderID
}

func TestCalculateOrderTotal(t *testing.T) {
	t.Skip("Integration test - requires database")

	store, err := NewStore(testDatabaseURL)
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	_, productID, orderID := newOrderFixture(t, store, ctx)

	// no items yet: exactly zero, never an error
	total, err := store.CalculateOrderTotal(ctx, orderID)
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.Zero), "expected 0, got %s", total)

	_, err = store.CreateOrderItem(ctx, &models.OrderItem{
		OrderID:   orderID,
		ProductID: productID,
		Quantity:  3,
		UnitPrice: decimal.RequireFromString("45.00"),
	})
	require.NoError(t, err)

	_, err = store.CreateOrderItem(ctx, &models.OrderItem{
		OrderID:   orderID,
		ProductID: productID,
		Quantity:  1,
		UnitPrice: decimal.RequireFromString("10.00"),
	})
	require.NoError(t, err)

	total, err = store.CalculateOrderTotal(ctx, orderID)
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.RequireFromString("145.00")),
		"expected 145.00, got %s", total)
}

func TestRefreshOrderTotalPersistsCache(t *testing.T) {
	t.Skip("Integration test - requires database")

	store, err := NewStore(testDatabaseURL)
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	_, productID, orderID := newOrderFixture(t, store, ctx)

	_, err = store.CreateOrderItem(ctx, &models.OrderItem{
		OrderID:   orderID,
		ProductID: productID,
		Quantity:  4,
		UnitPrice: decimal.RequireFromString("10.00"),
	})
	require.NoError(t, err)

	// item insert alone never touches the cached total
	order, err := store.GetOrderByID(ctx, orderID)
	require.NoError(t, err)
	require.NotNil(t, order)
	assert.True(t, order.TotalAmount.Equal(decimal.Zero))

	total, err := store.RefreshOrderTotal(ctx, orderID)
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.RequireFromString("40.00")))

	order, err = store.GetOrderByID(ctx, orderID)
	require.NoError(t, err)
	require.NotNil(t, order)
	assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString("40.00")))
}

func TestDeleteOrderCascades(t *testing.T) {
	t.Skip("Integration test - requires database")

	store, err := NewStore(testDatabaseURL)
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	supplierID, productID, orderID := newOrderFixture(t, store, ctx)

	for i := 0; i < 3; i++ {
		_, err := store.CreateOrderItem(ctx, &models.OrderItem{
			OrderID:   orderID,
			ProductID: productID,
			Quantity:  1,
			UnitPrice: decimal.RequireFromString("10.00"),
		})
		require.NoError(t, err)
	}

	deleted, err := store.DeleteOrder(ctx, orderID)
	require.NoError(t, err)
	assert.True(t, deleted)

	items, err := store.GetOrderItemsByOrderID(ctx, orderID)
	require.NoError(t, err)
	assert.Empty(t, items)

	order, err := store.GetOrderByID(ctx, orderID)
	require.NoError(t, err)
	assert.Nil(t, order)

	// the cascade never reaches the product or supplier
	product, err := store.GetProductByID(ctx, productID)
	require.NoError(t, err)
	assert.NotNil(t, product)

	supplier, err := store.GetSupplierByID(ctx, supplierID)
	require.NoError(t, err)
	assert.NotNil(t, supplier)
}

func TestDeleteOrderWithoutItems(t *testing.T) {
	t.Skip("Integration test - requires database")

	store, err := NewStore(testDatabaseURL)
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	_, _, orderID := newOrderFixture(t, store, ctx)

	ok, err := store.DeleteOrderItemsByOrderID(ctx, orderID)
	require.NoError(t, err)
	assert.True(t, ok, "zero-row bulk delete is not abnormal")

	deleted, err := store.DeleteOrder(ctx, orderID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = store.DeleteOrder(ctx, orderID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestOrderHydration(t *testing.T) {
	t.Skip("Integration test - requires database")

	store, err := NewStore(testDatabaseURL)
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	supplierID, productID, orderID := newOrderFixture(t, store, ctx)

	itemID, err := store.CreateOrderItem(ctx, &models.OrderItem{
		OrderID:   orderID,
		ProductID: productID,
		Quantity:  2,
		UnitPrice: decimal.RequireFromString("10.00"),
	})
	require.NoError(t, err)

	order, err := store.GetOrderByID(ctx, orderID)
	require.NoError(t, err)
	require.NotNil(t, order)

	assert.Equal(t, supplierID, order.Supplier.ID)
	assert.Equal(t, "Acme", order.Supplier.Name)
	require.Len(t, order.OrderItems, 1)
	assert.Equal(t, itemID, order.OrderItems[0].ID)
	assert.Equal(t, "Widget", order.OrderItems[0].Product.Name)

	bySupplier, err := store.GetOrdersBySupplierID(ctx, supplierID)
	require.NoError(t, err)
	require.Len(t, bySupplier, 1)
	assert.Equal(t, orderID, bySupplier[0].ID)
	require.Len(t, bySupplier[0].OrderItems, 1)

	// name-only projection when enumerating by product
	usages, err := store.GetOrderItemsByProductID(ctx, productID)
	require.NoError(t, err)
	require.Len(t, usages, 1)
	assert.Equal(t, "Widget", usages[0].Product.Name)
	assert.True(t, usages[0].Product.Price.IsZero())
}

func TestOrderItemPriceSnapshot(t *testing.T) {
	t.Skip("Integration test - requires database")

	store, err := NewStore(testDatabaseURL)
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	_, productID, orderID := newOrderFixture(t, store, ctx)

	itemID, err := store.CreateOrderItem(ctx, &models.OrderItem{
		OrderID:   orderID,
		ProductID: productID,
		Quantity:  1,
		UnitPrice: decimal.RequireFromString("10.00"),
	})
	require.NoError(t, err)

	// raise the product price after the order line was written
	product, err := store.GetProductByID(ctx, productID)
	require.NoError(t, err)
	product.Price = decimal.RequireFromString("99.00")
	updated, err := store.UpdateProduct(ctx, product)
	require.NoError(t, err)
	require.True(t, updated)

	item, err := store.GetOrderItemByID(ctx, itemID)
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.True(t, item.UnitPrice.Equal(decimal.RequireFromString("10.00")),
		"snapshot must not follow the product price")
	assert.True(t, item.Product.Price.Equal(decimal.RequireFromString("99.00")))
}
