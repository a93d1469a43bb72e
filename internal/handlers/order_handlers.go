package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

//
// --- Order Handlers ---
//

// CreateOrderInput defines the JSON input for opening an order.
// OrderDate is YYYY-MM-DD and defaults to today.
type CreateOrderInput struct {
	CustomerID int64  `json:"customerId"`
	EmployeeID int64  `json:"employeeId"`
	OrderDate  string `json:"orderDate"`
}

// UpdateOrderStatusInput carries any status string; the procedure judges it.
type UpdateOrderStatusInput struct {
	Status string `json:"status"`
}

// AddOrderDetailsInput defines one line added to an order.
type AddOrderDetailsInput struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity" binding:"min=1"`
}

// parseDate reads YYYY-MM-DD; empty means today.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	return time.Parse(time.DateOnly, s)
}

// CreateOrder is the handler for POST /v1/orders
func (h *Handlers) CreateOrder(c *gin.Context) {
	// 1. --- Bind JSON ---
	var input CreateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	orderDate, err := parseDate(input.OrderDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "orderDate must be YYYY-MM-DD"})
		return
	}

	// 2. --- Call CreateOrder ---
	if err := h.Managers.Orders.Create(c.Request.Context(), input.CustomerID, orderDate, input.EmployeeID); err != nil {
		respondError(c, err)
		return
	}

	// 3. --- Send Success Response ---
	c.JSON(http.StatusCreated, gin.H{"message": fmt.Sprintf("Order for customer %d created successfully!", input.CustomerID)})
}

// UpdateOrderStatus is the handler for PATCH /v1/orders/:id/status
func (h *Handlers) UpdateOrderStatus(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var input UpdateOrderStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.Managers.Orders.UpdateStatus(c.Request.Context(), id, input.Status); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Order %d status updated to %s", id, input.Status)})
}

// AddOrderDetails is the handler for POST /v1/orders/:id/details
func (h *Handlers) AddOrderDetails(c *gin.Context) {
	orderID, ok := paramID(c)
	if !ok {
		return
	}

	var input AddOrderDetailsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.Managers.OrderDetails.Add(c.Request.Context(), orderID, input.ProductID, input.Quantity); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": fmt.Sprintf("Order details added for order %d, product %d.", orderID, input.ProductID)})
}

// TrackOrder is the handler for GET /v1/orders/:id/track
func (h *Handlers) TrackOrder(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	table, err := h.Managers.Orders.Track(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tracking": table})
}

// SearchOrders is the handler for GET /v1/orders?customer=
func (h *Handlers) SearchOrders(c *gin.Context) {
	orders, err := h.Managers.Orders.Search(c.Request.Context(), c.Query("customer"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// GetAllOrderDetails is the handler for GET /v1/order-details
func (h *Handlers) GetAllOrderDetails(c *gin.Context) {
	details, err := h.Managers.Orders.AllDetails(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"orderDetails": details})
}
