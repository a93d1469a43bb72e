package models

import (
	"strconv"
	"time"
)

// Table is a labelled grid ready for rendering as HTML or CSV.
// Column labels live here, next to the row types, and nowhere else.
type Table struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// Empty reports whether the table has no rows.
func (t Table) Empty() bool {
	return len(t.Rows) == 0
}

func id(n int64) string {
	return strconv.FormatInt(n, 10)
}

func date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.DateOnly)
}

func CustomerTable(customers []Customer) Table {
	t := Table{Columns: []string{"Customer ID", "Name", "Address", "Phone"}}
	for _, c := range customers {
		t.Rows = append(t.Rows, []string{id(c.ID), c.Name, c.Address, c.Phone})
	}
	return t
}

// ProductTable adds the "Is Active" column only when the rows carry it.
func ProductTable(products []Product) Table {
	withActive := false
	for _, p := range products {
		if p.IsActive != nil {
			withActive = true
			break
		}
	}

	t := Table{Columns: []string{"Product ID", "Product Name", "Price", "Stock Quantity"}}
	if withActive {
		t.Columns = append(t.Columns, "Is Active")
	}
	for _, p := range products {
		row := []string{id(p.ID), p.Name, p.Price.StringFixed(2), strconv.Itoa(p.StockQuantity)}
		if withActive {
			active := ""
			if p.IsActive != nil {
				active = strconv.FormatBool(*p.IsActive)
			}
			row = append(row, active)
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func OrderSummaryTable(orders []OrderSummary) Table {
	t := Table{Columns: []string{"Order ID", "Customer Name", "Employee Name", "Order Date", "Status"}}
	for _, o := range orders {
		t.Rows = append(t.Rows, []string{id(o.ID), o.CustomerName, o.EmployeeName, date(o.OrderDate), o.Status})
	}
	return t
}

func OrderDetailTable(details []OrderDetail) Table {
	t := Table{Columns: []string{"Order Detail ID", "Order ID", "Product ID", "Quantity", "Sale Price"}}
	for _, d := range details {
		t.Rows = append(t.Rows, []string{id(d.ID), id(d.OrderID), id(d.ProductID), strconv.Itoa(d.Quantity), d.SalePrice.StringFixed(2)})
	}
	return t
}

func EmployeeTable(employees []Employee) Table {
	t := Table{Columns: []string{"Employee ID", "Employee Name", "Job Title"}}
	for _, e := range employees {
		t.Rows = append(t.Rows, []string{id(e.ID), e.Name, e.JobTitle})
	}
	return t
}

func SaleLineTable(lines []SaleLine) Table {
	t := Table{Columns: []string{"Order ID", "Product ID", "Sale Price", "Order Date"}}
	for _, l := range lines {
		t.Rows = append(t.Rows, []string{id(l.OrderID), id(l.ProductID), l.SalePrice.StringFixed(2), date(l.OrderDate)})
	}
	return t
}

func DailySalesTable(days []DailySales) Table {
	t := Table{Columns: []string{"Order Date", "Total Sales"}}
	for _, d := range days {
		t.Rows = append(t.Rows, []string{date(d.OrderDate), d.TotalSales.StringFixed(2)})
	}
	return t
}

// RankingTable labels the id and name columns after the ranked entity,
// e.g. RankingTable("Employee", rows).
func RankingTable(entity string, rows []SalesRanking) Table {
	t := Table{Columns: []string{entity + " ID", entity + " Name", "Total Sales"}}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{id(r.ID), r.Name, r.TotalSales.StringFixed(2)})
	}
	return t
}
