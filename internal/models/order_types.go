package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order lifecycle labels offered by the UI.
// The stored procedures decide what is allowed; any string is forwarded.
const (
	OrderStatusPending   = "Pending"
	OrderStatusCompleted = "Completed"
	OrderStatusCancelled = "Cancelled"
	OrderStatusShipped   = "Shipped"
)

// OrderStatuses is the option list for the status select.
var OrderStatuses = []string{
	OrderStatusPending,
	OrderStatusCompleted,
	OrderStatusCancelled,
	OrderStatusShipped,
}

// OrderSummary is a row returned by SearchOrder (Orders joined with names).
type OrderSummary struct {
	ID           int64     `json:"id" db:"OrderID"`
	CustomerName string    `json:"customerName" db:"CustomerName"`
	EmployeeName string    `json:"employeeName" db:"EmployeeName"`
	OrderDate    time.Time `json:"orderDate" db:"OrderDate"`
	Status       string    `json:"status" db:"Status"`
}

// OrderDetail is a row of the 'OrderDetails' table.
type OrderDetail struct {
	ID        int64           `json:"id" db:"OrderDetailID"`
	OrderID   int64           `json:"orderId" db:"OrderID"`
	ProductID int64           `json:"productId" db:"ProductID"`
	Quantity  int             `json:"quantity" db:"Quantity"`
	SalePrice decimal.Decimal `json:"salePrice" db:"SalePrice"` // Price at the time of sale
}
