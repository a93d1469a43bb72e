package handlers

import (
	"fmt"
	"net/http"

	"github.com/01moynul/sales-management-golang/internal/models"
	"github.com/gin-gonic/gin"
)

//
// --- Customer Handlers ---
//

// CustomerInput defines the JSON input for registering or updating a customer.
// No rules beyond types: RegisterCustomer/UpdateCustomer own validation.
type CustomerInput struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// RegisterCustomer is the handler for POST /v1/customers
func (h *Handlers) RegisterCustomer(c *gin.Context) {
	// 1. --- Bind JSON ---
	var input CustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	// 2. --- Call RegisterCustomer ---
	if err := h.Managers.Customers.Register(c.Request.Context(), input.Name, input.Address, input.Phone); err != nil {
		respondError(c, err)
		return
	}

	// 3. --- Send Success Response ---
	c.JSON(http.StatusCreated, gin.H{"message": fmt.Sprintf("Customer '%s' registered successfully!", input.Name)})
}

// UpdateCustomer is the handler for PUT /v1/customers/:id
func (h *Handlers) UpdateCustomer(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var input CustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.Managers.Customers.Update(c.Request.Context(), id, input.Name, input.Address, input.Phone); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Customer ID '%d' updated successfully!", id)})
}

// GetCustomers is the handler for GET /v1/customers
// With ?name= it runs SearchCustomer, otherwise ShowCustomer.
func (h *Handlers) GetCustomers(c *gin.Context) {
	var (
		customers []models.Customer
		err       error
	)
	if name, ok := c.GetQuery("name"); ok {
		customers, err = h.Managers.Customers.Search(c.Request.Context(), name)
	} else {
		customers, err = h.Managers.Customers.List(c.Request.Context())
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"customers": customers})
}
