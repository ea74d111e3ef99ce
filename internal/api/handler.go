package api

import (
	"net/http"
	"strconv"
	"time"

	"warehouse-service/internal/models"
	"warehouse-service/internal/service"
	"warehouse-service/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler contains HTTP handlers
type Handler struct {
	catalogService *service.CatalogService
	orderService   *service.OrderService
}

// NewHandler creates a new HTTP handler
func NewHandler(catalogService *service.CatalogService, orderService *service.OrderService) *Handler {
	return &Handler{
		catalogService: catalogService,
		orderService:   orderService,
	}
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())
	router.Use(gin.Logger())

	router.GET("/health", h.healthCheck)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.POST("/products", h.createProduct)
		v1.GET("/products", h.listProducts)
		v1.GET("/products/:id", h.getProduct)
		v1.PUT("/products/:id", h.updateProduct)
		v1.DELETE("/products/:id", h.deleteProduct)
		v1.GET("/products/:id/usages", h.productUsages)

		v1.POST("/suppliers", h.createSupplier)
		v1.GET("/suppliers", h.listSuppliers)
		v1.GET("/suppliers/:id", h.getSupplier)
		v1.PUT("/suppliers/:id", h.updateSupplier)
		v1.DELETE("/suppliers/:id", h.deleteSupplier)
		v1.GET("/suppliers/:id/orders", h.listSupplierOrders)

		v1.POST("/orders", h.createOrder)
		v1.GET("/orders", h.listOrders)
		v1.GET("/orders/:id", h.getOrder)
		v1.PUT("/orders/:id", h.updateOrder)
		v1.DELETE("/orders/:id", h.deleteOrder)
		v1.GET("/orders/:id/total", h.orderTotal)
		v1.POST("/orders/:id/total/refresh", h.refreshOrderTotal)
		v1.GET("/orders/:id/items", h.listOrderItems)

		v1.POST("/order-items", h.createOrderItem)
		v1.GET("/order-items/:id", h.getOrderItem)
		v1.PUT("/order-items/:id", h.updateOrderItem)
		v1.DELETE("/order-items/:id", h.deleteOrderItem)
	}
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return 0, false
	}
	return id, true
}

// createProduct handles product creation
func (h *Handler) createProduct(c *gin.Context) {
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	id, err := h.catalogService.CreateProduct(c.Request.Context(), &product)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// listProducts handles listing all products
func (h *Handler) listProducts(c *gin.Context) {
	products, err := h.catalogService.ListProducts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list products", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, products)
}

// getProduct handles get product by ID
func (h *Handler) getProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	product, err := h.catalogService.GetProduct(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get product", "details": err.Error()})
		return
	}
	if product == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	c.JSON(http.StatusOK, product)
}

// updateProduct handles full product replacement
func (h *Handler) updateProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	product.ID = id

	updated, err := h.catalogService.UpdateProduct(c.Request.Context(), &product)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product", "details": err.Error()})
		return
	}
	if !updated {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	c.JSON(http.StatusOK, product)
}

// deleteProduct handles product deletion
func (h *Handler) deleteProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	deleted, err := h.catalogService.DeleteProduct(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product", "details": err.Error()})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

// productUsages lists order items referencing a product
func (h *Handler) productUsages(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	items, err := h.catalogService.ProductUsages(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list product usages", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, items)
}

// createSupplier handles supplier creation
func (h *Handler) createSupplier(c *gin.Context) {
	var supplier models.Supplier
	if err := c.ShouldBindJSON(&supplier); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	id, err := h.catalogService.CreateSupplier(c.Request.Context(), &supplier)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create supplier", "details": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// listSuppliers handles listing suppliers; ?active=true filters to
// active suppliers only
func (h *Handler) listSuppliers(c *gin.Context) {
	var (
		suppliers []models.Supplier
		err       error
	)
	if c.Query("active") == "true" {
		suppliers, err = h.catalogService.ListActiveSuppliers(c.Request.Context())
	} else {
		suppliers, err = h.catalogService.ListSuppliers(c.Request.Context())
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list suppliers", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, suppliers)
}

// getSupplier handles get supplier by ID
func (h *Handler) getSupplier(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	supplier, err := h.catalogService.GetSupplier(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get supplier", "details": err.Error()})
		return
	}
	if supplier == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Supplier not found"})
		return
	}
	c.JSON(http.StatusOK, supplier)
}

// updateSupplier handles full supplier replacement
func (h *Handler) updateSupplier(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var supplier models.Supplier
	if err := c.ShouldBindJSON(&supplier); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	supplier.ID = id

	updated, err := h.catalogService.UpdateSupplier(c.Request.Context(), &supplier)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update supplier", "details": err.Error()})
		return
	}
	if !updated {
		c.JSON(http.StatusNotFound, gin.H{"error": "Supplier not found"})
		return
	}
	c.JSON(http.StatusOK, supplier)
}

// deleteSupplier handles supplier deletion
func (h *Handler) deleteSupplier(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	deleted, err := h.catalogService.DeleteSupplier(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete supplier", "details": err.Error()})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "Supplier not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

// listSupplierOrders lists orders placed with a supplier
func (h *Handler) listSupplierOrders(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	orders, err := h.orderService.ListOrdersBySupplier(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list supplier orders", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, orders)
}

// createOrder handles order creation
func (h *Handler) createOrder(c *gin.Context) {
	var req service.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if req.IdempotencyKey == "" {
		req.IdempotencyKey = c.GetHeader("Idempotency-Key")
	}

	resp, err := h.orderService.CreateOrder(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order", "details": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// listOrders handles listing all orders
func (h *Handler) listOrders(c *gin.Context) {
	orders, err := h.orderService.ListOrders(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list orders", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, orders)
}

// getOrder handles get order by ID
func (h *Handler) getOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get order", "details": err.Error()})
		return
	}
	if order == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	c.JSON(http.StatusOK, order)
}

// updateOrder handles full order replacement
func (h *Handler) updateOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var order models.Order
	if err := c.ShouldBindJSON(&order); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	order.ID = id

	updated, err := h.orderService.UpdateOrder(c.Request.Context(), &order)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order", "details": err.Error()})
		return
	}
	if !updated {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	c.JSON(http.StatusOK, order)
}

// deleteOrder handles order deletion with its item cascade
func (h *Handler) deleteOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	deleted, err := h.orderService.DeleteOrder(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete order", "details": err.Error()})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

// orderTotal returns the authoritative order total
func (h *Handler) orderTotal(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	total, err := h.orderService.OrderTotal(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to calculate order total", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"order_id": id, "total": total})
}

// refreshOrderTotal recomputes and persists the denormalized total
func (h *Handler) refreshOrderTotal(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	total, err := h.orderService.RefreshTotal(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to refresh order total", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"order_id": id, "total": total})
}

// listOrderItems lists all items for an order
func (h *Handler) listOrderItems(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	items, err := h.orderService.ListOrderItems(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list order items", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, items)
}

// createOrderItem handles order item creation
func (h *Handler) createOrderItem(c *gin.Context) {
	var item models.OrderItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	id, err := h.orderService.AddOrderItem(c.Request.Context(), &item)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order item", "details": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// getOrderItem handles get order item by ID
func (h *Handler) getOrderItem(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	item, err := h.orderService.GetOrderItem(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get order item", "details": err.Error()})
		return
	}
	if item == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order item not found"})
		return
	}
	c.JSON(http.StatusOK, item)
}

// updateOrderItem handles full order item replacement
func (h *Handler) updateOrderItem(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var item models.OrderItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	item.ID = id

	updated, err := h.orderService.UpdateOrderItem(c.Request.Context(), &item)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order item", "details": err.Error()})
		return
	}
	if !updated {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order item not found"})
		return
	}
	c.JSON(http.StatusOK, item)
}

// deleteOrderItem handles order item deletion
func (h *Handler) deleteOrderItem(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	deleted, err := h.orderService.RemoveOrderItem(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete order item", "details": err.Error()})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order item not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}
