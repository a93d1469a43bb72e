package models

// Employee is a row of the 'Employees' table.
type Employee struct {
	ID       int64  `json:"id" db:"EmployeeID"`
	Name     string `json:"name" db:"Name"`
	JobTitle string `json:"jobTitle" db:"JobTitle"`
}
