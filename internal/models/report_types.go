package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleLine is one order line inside a date-range sales report.
type SaleLine struct {
	OrderID   int64           `json:"orderId"`
	ProductID int64           `json:"productId"`
	SalePrice decimal.Decimal `json:"salePrice"`
	OrderDate time.Time       `json:"orderDate"`
}

// SalesReport holds the lines sold between Start and End (inclusive).
type SalesReport struct {
	Start time.Time  `json:"start"`
	End   time.Time  `json:"end"`
	Lines []SaleLine `json:"lines"`
}

// GrandTotal sums SalePrice over every line.
func (r SalesReport) GrandTotal() decimal.Decimal {
	total := decimal.Zero
	for _, line := range r.Lines {
		total = total.Add(line.SalePrice)
	}
	return total
}

// DailySales is the total of one day from the 'TotalSalesReport' view.
type DailySales struct {
	OrderDate  time.Time       `json:"orderDate"`
	TotalSales decimal.Decimal `json:"totalSales"`
}

// SalesRanking is the (id, name, total) shape shared by the
// SalesReportBy* views and the GetTop* procedures.
type SalesRanking struct {
	ID         int64           `json:"id"`
	Name       string          `json:"name"`
	TotalSales decimal.Decimal `json:"totalSales"`
}
