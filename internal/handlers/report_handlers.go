package handlers

import (
	"net/http"
	"time"

	"github.com/01moynul/sales-management-golang/internal/models"
	"github.com/gin-gonic/gin"
)

//
// --- Sales Report Handlers ---
//

// DateRangeQuery is the ?start=&end= pair of the date-range reports.
type DateRangeQuery struct {
	Start time.Time `form:"start" time_format:"2006-01-02" binding:"required"`
	End   time.Time `form:"end" time_format:"2006-01-02" binding:"required"`
}

// TopQuery is the ?n= of the ranking reports. n is passed on as given.
type TopQuery struct {
	N int `form:"n,default=5"`
}

// GetTotalSalesReport is the handler for GET /v1/reports/sales
func (h *Handlers) GetTotalSalesReport(c *gin.Context) {
	var q DateRangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err)
		return
	}

	report, err := h.Managers.Reports.TotalSales(c.Request.Context(), q.Start, q.End)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"start":      q.Start.Format(time.DateOnly),
		"end":        q.End.Format(time.DateOnly),
		"lines":      report.Lines,
		"grandTotal": report.GrandTotal(),
	})
}

// GetDailySalesReport is the handler for GET /v1/reports/sales/daily
func (h *Handlers) GetDailySalesReport(c *gin.Context) {
	var q DateRangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err)
		return
	}

	days, err := h.Managers.Reports.DailySales(c.Request.Context(), q.Start, q.End)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"days": days})
}

// GetSalesToday is the handler for GET /v1/reports/sales/today
func (h *Handlers) GetSalesToday(c *gin.Context) {
	table, err := h.Managers.Reports.SalesToday(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"today": table})
}

func sendRankings(c *gin.Context, rows []models.SalesRanking, err error) {
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rankings": rows})
}

// GetSalesByEmployee is the handler for GET /v1/reports/sales/by-employee
func (h *Handlers) GetSalesByEmployee(c *gin.Context) {
	rows, err := h.Managers.Reports.SalesByEmployee(c.Request.Context())
	sendRankings(c, rows, err)
}

// GetSalesByProduct is the handler for GET /v1/reports/sales/by-product
func (h *Handlers) GetSalesByProduct(c *gin.Context) {
	rows, err := h.Managers.Reports.SalesByProduct(c.Request.Context())
	sendRankings(c, rows, err)
}

// GetSalesByCustomer is the handler for GET /v1/reports/sales/by-customer
func (h *Handlers) GetSalesByCustomer(c *gin.Context) {
	rows, err := h.Managers.Reports.SalesByCustomer(c.Request.Context())
	sendRankings(c, rows, err)
}

func topN(c *gin.Context) (int, bool) {
	var q TopQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err)
		return 0, false
	}
	return q.N, true
}

// GetTopEmployees is the handler for GET /v1/reports/top/employees?n=5
func (h *Handlers) GetTopEmployees(c *gin.Context) {
	if n, ok := topN(c); ok {
		rows, err := h.Managers.Reports.TopEmployees(c.Request.Context(), n)
		sendRankings(c, rows, err)
	}
}

// GetTopSellingProducts is the handler for GET /v1/reports/top/products?n=5
func (h *Handlers) GetTopSellingProducts(c *gin.Context) {
	if n, ok := topN(c); ok {
		rows, err := h.Managers.Reports.TopSellingProducts(c.Request.Context(), n)
		sendRankings(c, rows, err)
	}
}

// GetTopCustomers is the handler for GET /v1/reports/top/customers?n=5
func (h *Handlers) GetTopCustomers(c *gin.Context) {
	if n, ok := topN(c); ok {
		rows, err := h.Managers.Reports.TopCustomers(c.Request.Context(), n)
		sendRankings(c, rows, err)
	}
}
