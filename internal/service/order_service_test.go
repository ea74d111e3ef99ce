package service

import (
	"testing"

	"warehouse-service/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSnapshotUnitPrice(t *testing.T) {
	product := &models.Product{
		ID:    1,
		Name:  "Widget",
		Price: decimal.RequireFromString("10.00"),
	}

	// no explicit price: freeze the product's current one
	req := OrderItemRequest{ProductID: 1, Quantity: 4}
	assert.True(t, snapshotUnitPrice(req, product).Equal(decimal.RequireFromString("10.00")))

	// explicit price wins, e.g. a negotiated supplier rate
	req.UnitPrice = decimal.RequireFromString("8.50")
	assert.True(t, snapshotUnitPrice(req, product).Equal(decimal.RequireFromString("8.50")))
}

func TestOrderItemLineTotals(t *testing.T) {
	items := []models.OrderItem{
		{Quantity: 3, UnitPrice: decimal.RequireFromString("45.00")},
		{Quantity: 1, UnitPrice: decimal.RequireFromString("10.00")},
	}

	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(item.LineTotal())
	}

	assert.True(t, sum.Equal(decimal.RequireFromString("145.00")),
		"expected 145.00, got %s", sum)
	assert.Equal(t, "145", sum.String())
}
