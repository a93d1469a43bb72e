package models

// Customer is a row of the 'Customers' table as returned by
// SearchCustomer and ShowCustomer.
type Customer struct {
	ID      int64  `json:"id" db:"CustomerID"`
	Name    string `json:"name" db:"Name"`
	Address string `json:"address" db:"Address"`
	Phone   string `json:"phone" db:"Phone"`
}
