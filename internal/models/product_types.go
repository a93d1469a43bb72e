package models

import (
	"github.com/shopspring/decimal"
)

// Product is a row of the 'Products' table.
// ShowProduct leaves out the active flag, so IsActive is only set by SearchProduct.
type Product struct {
	ID            int64           `json:"id" db:"ProductID"`
	Name          string          `json:"name" db:"ProductName"`
	Price         decimal.Decimal `json:"price" db:"Price"`
	StockQuantity int             `json:"stock" db:"StockQuantity"`
	IsActive      *bool           `json:"isActive,omitempty" db:"IsActive"`
}
