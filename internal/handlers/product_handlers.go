package handlers

import (
	"fmt"
	"net/http"

	"github.com/01moynul/sales-management-golang/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

//
// --- Product Handlers ---
//

// ProductInput defines the JSON input for adding or editing a product.
// Price and stock keep the form's minimum of zero; nothing else is checked.
type ProductInput struct {
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stock" binding:"min=0"`
}

func bindProduct(c *gin.Context) (ProductInput, bool) {
	var input ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return input, false
	}
	if input.Price.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "fields": gin.H{"Price": "min"}})
		return input, false
	}
	return input, true
}

// AddProduct is the handler for POST /v1/products
func (h *Handlers) AddProduct(c *gin.Context) {
	input, ok := bindProduct(c)
	if !ok {
		return
	}

	if err := h.Managers.Products.Add(c.Request.Context(), input.Name, input.Price, input.StockQuantity); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": fmt.Sprintf("Product '%s' added successfully!", input.Name)})
}

// EditProduct is the handler for PUT /v1/products/:id
func (h *Handlers) EditProduct(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	input, ok := bindProduct(c)
	if !ok {
		return
	}

	if err := h.Managers.Products.Edit(c.Request.Context(), id, input.Name, input.Price, input.StockQuantity); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Product ID '%d' updated successfully!", id)})
}

// DeleteProduct is the handler for DELETE /v1/products/:id
func (h *Handlers) DeleteProduct(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := h.Managers.Products.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Product ID '%d' deleted successfully!", id)})
}

// GetProducts is the handler for GET /v1/products
// With ?name= it runs SearchProduct, otherwise ShowProduct.
func (h *Handlers) GetProducts(c *gin.Context) {
	var (
		products []models.Product
		err      error
	)
	if name, ok := c.GetQuery("name"); ok {
		products, err = h.Managers.Products.Search(c.Request.Context(), name)
	} else {
		products, err = h.Managers.Products.List(c.Request.Context())
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": products})
}

// CalculateDiscount is the handler for GET /v1/products/:id/discount?rate=10
func (h *Handlers) CalculateDiscount(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	rate, err := decimal.NewFromString(c.Query("rate"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid discount rate"})
		return
	}

	table, err := h.Managers.Reports.CalculateDiscount(c.Request.Context(), id, rate)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"discount": table})
}
