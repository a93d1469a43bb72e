package handlers

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/01moynul/sales-management-golang/internal/managers"
	"github.com/01moynul/sales-management-golang/internal/models"
	"github.com/shopspring/decimal"
)

//
// --- Browser UI: menu, tabs and what each tab calls ---
//

// field is one form widget. Kind is an <input> type or "select".
type field struct {
	Name    string
	Label   string
	Kind    string
	Min     string
	Step    string
	Value   string
	Options []string
}

// tab is either a form (POST, one manager call on submit) or a table
// view (GET, one manager call, optionally filtered by its fields).
type tab struct {
	Key    string
	Title  string
	Method string
	Submit string
	Fields []field
	run    func(ctx context.Context, m *managers.Managers, in *input) outcome
}

// IsForm reports whether the tab posts a form.
func (t tab) IsForm() bool {
	return t.Method == "POST"
}

// section is one destination of the sidebar menu.
type section struct {
	Key   string
	Title string
	Tabs  []tab
}

func (s section) tabByKey(key string) (tab, bool) {
	for _, t := range s.Tabs {
		if t.Key == key {
			return t, true
		}
	}
	return tab{}, false
}

// outcome is what a tab renders after its manager call.
type outcome struct {
	Message string
	Table   *models.Table
	Empty   string
	Total   string
	Err     error
}

func done(err error, format string, args ...any) outcome {
	if err != nil {
		return outcome{Err: err}
	}
	return outcome{Message: fmt.Sprintf(format, args...)}
}

func tableOutcome(t models.Table, err error, empty string) outcome {
	if err != nil {
		return outcome{Err: err}
	}
	return outcome{Table: &t, Empty: empty}
}

var errIncompleteForm = errors.New("please fill in all fields for update")

// input reads submitted values for one tab and remembers the first
// value that does not fit its widget type.
type input struct {
	fields []field
	get    func(string) string
	err    error
}

func (in *input) label(name string) string {
	for _, f := range in.fields {
		if f.Name == name {
			return f.Label
		}
	}
	return name
}

func (in *input) fail(name, want string) {
	if in.err == nil {
		in.err = fmt.Errorf("%s must be %s", in.label(name), want)
	}
}

func (in *input) text(name string) string {
	return strings.TrimSpace(in.get(name))
}

func (in *input) id(name string) int64 {
	n, err := strconv.ParseInt(in.text(name), 10, 64)
	if err != nil {
		in.fail(name, "a whole number")
	}
	return n
}

func (in *input) number(name string) int {
	n, err := strconv.Atoi(in.text(name))
	if err != nil {
		in.fail(name, "a whole number")
	}
	return n
}

func (in *input) decimal(name string) decimal.Decimal {
	d, err := decimal.NewFromString(in.text(name))
	if err != nil {
		in.fail(name, "a number")
	}
	return d
}

func (in *input) date(name string) time.Time {
	d, err := parseDate(in.text(name))
	if err != nil {
		in.fail(name, "a date (YYYY-MM-DD)")
	}
	return d
}

func (in *input) required(names ...string) {
	for _, name := range names {
		if in.text(name) == "" && in.err == nil {
			in.err = errIncompleteForm
		}
	}
}

func textField(name, label string) field {
	return field{Name: name, Label: label, Kind: "text"}
}

func idField(name, label string) field {
	return field{Name: name, Label: label, Kind: "number", Min: "1", Step: "1"}
}

func countField(name, label, min, value string) field {
	return field{Name: name, Label: label, Kind: "number", Min: min, Step: "1", Value: value}
}

func moneyField(name, label string) field {
	return field{Name: name, Label: label, Kind: "number", Min: "0", Step: "0.01", Value: "0.00"}
}

func percentField(name, label, value string) field {
	return field{Name: name, Label: label, Kind: "number", Min: "0", Step: "0.01", Value: value}
}

func dateField(name, label string) field {
	return field{Name: name, Label: label, Kind: "date"}
}

// sections is the whole menu. Welcome is rendered by the index page.
var sections = []section{
	{
		Key:   "customers",
		Title: "Customer Management",
		Tabs: []tab{
			{
				Key: "register", Title: "Register Customer", Method: "POST", Submit: "Register Customer",
				Fields: []field{textField("name", "Name"), textField("address", "Address"), textField("phone", "Phone")},
				run: func(ctx context.Context, m *managers.Managers, in *input) outcome {
					name := in.text("name")
					return done(m.Customers.Register(ctx, name, in.text("address"), in.text("phone")),
						"Customer '%s' registered successfully!", name)
				},
			},
			{
				Key: "update", Title: "Update Customer", Method: "POST", Submit: "Update Customer",
				Fields: []field{idField("customer_id", "Customer ID"), textField("name", "New Name"), textField("address", "New Address"), textField("phone", "New Phone")},
				run: func(ctx context.Context, m *managers.Managers, in *input) outcome {
					customerID := in.id("customer_id")
					if in.err != nil {
						return outcome{Err: in.err}
					}
					return done(m.Customers.Update(ctx, customerID, in.text("name"), in.text("address"), in.text("phone")),
						"Customer ID '%d' updated successfully!", customerID)
				},
			},
			{
				Key: "search", Title: "Search Customer", Method: "GET", Submit: "Search Customer",
				Fields: []field{textField("name", "Enter Name to Search")},
				run: func(ctx context.Context, m *managers.Managers, in *input) outcome {
					customers, err := m.Customers.Search(ctx, in.text("name"))
					return tableOutcome(models.CustomerTable(customers), err, "No matching customer found.")
				},
			},
			{
				Key: "all", Title: "All Customer", Method: "GET",
				run: func(ctx context.Context, m *managers.Managers, in *input) outcome {
					customers, err := m.Customers.List(ctx)
					return tableOutcome(models.CustomerTable(customers), err, "No customers available.")
				},
			},
		},
	},
	{
		Key:   "products",
		Title: "Product Management",
		Tabs: []tab{
			{
				Key: "add", Title: "Add Product", Method: "POST", Submit: "Add Product",
				Fields: []field{textField("name", "Product Name"), moneyField("price", "Price"), countField("stock", "Stock Quantity", "0", "0")},
				run: func(ctx context.Context, m *managers.Managers, in *input) outcome {
					name, price, stock := in.text("name"), in.decimal("price"), in.number("stock")
					if in.err != nil {
						return outcome{Err: in.err}
					}
					return done(m.Products.Add(ctx, name, price, stock), "Product '%s' added successfully!", name)
				},
			},
			{
				Key: "edit", Title: "Edit Product", Method: "POST", Submit: "Update Product",
				Fields: []field{idField("product_id", "Product ID"), textField("name", "New Product Name"), moneyField("price", "New Price"), countField("stock", "New Stock Quantity", "0", "0")},
				run: func(ctx context.Context, m *managers.Managers, in *input) outcome {
					productID, price, stock := in.id("product_id"), in.decimal("price"), in.number("stock")
					if in.err != nil {
						return outcome{Err: in.err}
					}
					return done(m.Products.Edit(ctx, productID, in.text("name"), price, stock),
						"Product ID '%d' updated successfully!", productID)
				},
			},
			{
				Key: "delete", Title: "Delete Product", Method: "POST", Submit: "Delete Product",
				Fields: []field{idField("product_id", "Product ID to delete")},
				run: func(ctx context.Context, m *managers.Managers, in *input) outcome {
					productID := in.id("product_id")
					if in.err != nil {
						return outcome{Err: in.err}
					}
					return done(m.Products.Delete(ctx, productID), "Product ID '%d' deleted successfully!", productID)
				},
			},
			{
				Key: "search", Title: "Search Product", Method: "GET", Submit: "Search Product",
				Fields: []field{textField("name", "Enter Product Name to search")},
				run: func(ctx context.Context, m *managers.Managers, in *input) outcome {
					products, err := m.Products.Search(ctx, in.text("name"))
					return tableOutcome(models.ProductTable(products), err, "No matching product found.")
				},
			},
			{
				Key: "all", Title: "All Product", Method: "GET",
				run: func(ctx context.Context, m *managers.Managers, in *input) outcome {
					products, err := m.Products.List(ctx)
					return tableOutcome(models.ProductTable(products), err, "No products available.")
				},
			},
			{
				Key: "discount", Title: "Calculate Discount", Method: "GET", Submit: "Calculate Discount",
				Fields: []field{idField("product_id", "Product ID"), percentField("rate", "Discount Rate (%)", "10")},
				run: func(ctx context.Context, m *managers.Managers, in *input) outcome {
					productID, rate := in.id("product_id"), in.decimal("rate")
					if in.err != nil {
						return outcome{Err: in.err}
					}
					table, err := m.Reports.CalculateDiscount(ctx, productID, rate)
					return tableOutcome(table, err, fmt.Sprintf("No discount calculated for product %d.", productID))
				},
			},
		},
	},
	{
		Key:   "orders",
		Title: "Order Management",
		Tabs: []tab{
			{
				Key: "create", Title: "Create Order", Method: "POST", Submit: "Create Order",
				Fields: []field{idField("customer_id", "Customer ID"), idField("employee_id", "Employee ID"), dateField("order_date", "Order Date")},
				run: func(ctx context.Context, m *managers.Managers, in *input) outcome {
					customerID, employeeID, orderDate := in.id("customer_id"), in.id("employee_id"), in.date("order_date")
					if in.err != nil {
						return outcome{Err: in.err}
					}
					return done(m.Orders.Create(ctx, customerID, orderDate, employeeID),
						"Order for customer %d created successfully!", customerID)
				},
			},
			{
				Key: "status", Title: "Update Order Status", Method: "POST", Submit: "Update Order Status",
				Fields: []field{idField("order_id", "Order ID"), {Name: "status", Label: "Order Status", Kind: "select", Options: models.OrderStatuses}},
				run: func(ctx context.Context, m *managers.Managers, in *input) outcome {
					orderID, status := in.id("order_id"), in.text("status")
					if in.err != nil {
						return outcome{Err: in.err}
					}
					return done(m.Orders.UpdateStatus(ctx, orderID, status), "Order %d status updated to %s", orderID, status)
				},
			},
			{
				Key: "details", Title: "Add Order Details", Method: "POST", Submit: "Add Order Details",
				Fields: []field{idField("order_id", "Order ID"), idField("product_id", "Product ID"), countField("quantity", "Quantity", "1", "1")},
				run: func(ctx context.Context, m *managers.Managers, in *input) outcome {
					orderID, productID, quantity := in.id("order_id"), in.id("product_id"), in.number("quantity")
					if in.err != nil {
						return outcome{Err: in.err}
					}
					return done(m.OrderDetails.Add(ctx, orderID, productID, quantity),
						"Order details added for order %d, product %d.", orderID, productID)
				},
			},
			{
				Key: "all-details", Title: "All Order Details", Method: "GET",
				run: func(ctx context.Context, m *managers.Managers, in *input) outcome {
					details, err := m.Orders.AllDetails(ctx)
					return tableOutcome(models.OrderDetailTable(details), err, "No order details found.")
				},
			},
			{
				Key: "search", Title: "Search Orders", Method: "GET", Submit: "Search",
				Fields: []field{textField("customer", "Customer Name")},
				run: func(ctx context.Context, m *managers.Managers, in *input) outcome {
					term := in.text("customer")
					orders, err := m.Orders.Search(ctx, term)
					return tableOutcome(models.OrderSummaryTable(orders), err,
						fmt.Sprintf("No orders found for customer name containing '%s'.", term))
				},
			},
			{
				Key: "track", Title: "Track Order", Method: "GET", Submit: "Track Order",
				Fields: []field{idField("order_id", "Order ID")},
				run: func(ctx context.Context, m *managers.Managers, in *input) outcome {
					orderID := in.id("order_id")
					if in.err != nil {
						return outcome{Err: in.err}
					}
					table, err := m.Orders.Track(ctx, orderID)
					return tableOutcome(table, err, fmt.Sprintf("No tracking information for order %d.", orderID))
				},
			},
		},
	},
	{
		Key:   "employees",
		Title: "Employee Management",
		Tabs: []tab{
			{
				Key: "add", Title: "Add Employee", Method: "POST", Submit: "Add Employee",
				Fields: []field{textField("name", "Employee Name"), textField("job_title", "Job Title")},
				run: func(ctx context.Context, m *managers.Managers, in *input) outcome {
					name := in.text("name")
					return done(m.Employees.Add(ctx, name, in.text("job_title")), "Employee %s added successfully!", name)
				},
			},
			{
				Key: "update", Title: "Update Employee", Method: "POST", Submit: "Update Employee",
				Fields: []field{idField("employee_id", "Employee ID"), textField("name", "Updated Name"), textField("job_title", "Updated Job Title")},
				run: func(ctx context.Context, m *managers.Managers, in *input) outcome {
					in.required("employee_id", "name", "job_title")
					employeeID := in.id("employee_id")
					if in.err != nil {
						return outcome{Err: in.err}
					}
					return done(m.Employees.Update(ctx, employeeID, in.text("name"), in.text("job_title")),
						"Employee %d updated successfully!", employeeID)
				},
			},
			{
				Key: "search", Title: "Search Employee", Method: "GET", Submit: "Search Employee",
				Fields: []field{textField("name", "Enter Name to Search")},
				run: func(ctx context.Context, m *managers.Managers, in *input) outcome {
					employees, err := m.Employees.Search(ctx, in.text("name"))
					return tableOutcome(models.EmployeeTable(employees), err, "No matching employee found.")
				},
			},
			{
				Key: "all", Title: "All Employee", Method: "GET",
				run: func(ctx context.Context, m *managers.Managers, in *input) outcome {
					employees, err := m.Employees.List(ctx)
					return tableOutcome(models.EmployeeTable(employees), err, "No employees available.")
				},
			},
		},
	},
	{
		Key:   "reports",
		Title: "Sales Reports",
		Tabs: []tab{
			{
				Key: "total", Title: "Total Sales by Date", Method: "GET", Submit: "Get Total Sales Report",
				Fields: []field{dateField("start", "Start Date"), dateField("end", "End Date")},
				run: func(ctx context.Context, m *managers.Managers, in *input) outcome {
					start, end := in.date("start"), in.date("end")
					if in.err != nil {
						return outcome{Err: in.err}
					}
					report, err := m.Reports.TotalSales(ctx, start, end)
					out := tableOutcome(models.SaleLineTable(report.Lines), err, "No data found for the specified date range.")
					if err == nil && len(report.Lines) > 0 {
						out.Total = fmt.Sprintf("Total Sales from %s to %s: %s",
							start.Format(time.DateOnly), end.Format(time.DateOnly), report.GrandTotal().StringFixed(2))
					}
					return out
				},
			},
			{
				Key: "daily", Title: "Daily Totals", Method: "GET", Submit: "Get Daily Totals",
				Fields: []field{dateField("start", "Start Date"), dateField("end", "End Date")},
				run: func(ctx context.Context, m *managers.Managers, in *input) outcome {
					start, end := in.date("start"), in.date("end")
					if in.err != nil {
						return outcome{Err: in.err}
					}
					days, err := m.Reports.DailySales(ctx, start, end)
					return tableOutcome(models.DailySalesTable(days), err, "No data found for the specified date range.")
				},
			},
			{
				Key: "today", Title: "Sales Today", Method: "GET",
				run: func(ctx context.Context, m *managers.Managers, in *input) outcome {
					table, err := m.Reports.SalesToday(ctx)
					return tableOutcome(table, err, "No sales recorded today.")
				},
			},
			{
				Key: "by-employee", Title: "Sales by Employee", Method: "GET",
				run: func(ctx context.Context, m *managers.Managers, in *input) outcome {
					rows, err := m.Reports.SalesByEmployee(ctx)
					return tableOutcome(models.RankingTable("Employee", rows), err, "No sales by employee.")
				},
			},
			{
				Key: "by-product", Title: "Sales by Product", Method: "GET",
				run: func(ctx context.Context, m *managers.Managers, in *input) outcome {
					rows, err := m.Reports.SalesByProduct(ctx)
					return tableOutcome(models.RankingTable("Product", rows), err, "No sales by product.")
				},
			},
			{
				Key: "by-customer", Title: "Sales by Customer", Method: "GET",
				run: func(ctx context.Context, m *managers.Managers, in *input) outcome {
					rows, err := m.Reports.SalesByCustomer(ctx)
					return tableOutcome(models.RankingTable("Customer", rows), err, "No sales by customer.")
				},
			},
			{
				Key: "top-employees", Title: "Top Employees", Method: "GET", Submit: "Get Top Employees",
				Fields: []field{countField("n", "Number of Top Employees", "1", "5")},
				run: func(ctx context.Context, m *managers.Managers, in *input) outcome {
					n := in.number("n")
					if in.err != nil {
						return outcome{Err: in.err}
					}
					rows, err := m.Reports.TopEmployees(ctx, n)
					return tableOutcome(models.RankingTable("Employee", rows), err, "No employees ranked.")
				},
			},
			{
				Key: "top-products", Title: "Top Selling Products", Method: "GET", Submit: "Get Top Selling Products",
				Fields: []field{countField("n", "Number of Top Products", "1", "5")},
				run: func(ctx context.Context, m *managers.Managers, in *input) outcome {
					n := in.number("n")
					if in.err != nil {
						return outcome{Err: in.err}
					}
					rows, err := m.Reports.TopSellingProducts(ctx, n)
					return tableOutcome(models.RankingTable("Product", rows), err, "No products ranked.")
				},
			},
			{
				Key: "top-customers", Title: "Top Customers", Method: "GET", Submit: "Get Top Customers",
				Fields: []field{countField("n", "Number of Top Customers", "1", "5")},
				run: func(ctx context.Context, m *managers.Managers, in *input) outcome {
					n := in.number("n")
					if in.err != nil {
						return outcome{Err: in.err}
					}
					rows, err := m.Reports.TopCustomers(ctx, n)
					return tableOutcome(models.RankingTable("Customer", rows), err, "No customers ranked.")
				},
			},
		},
	},
}

func findSection(key string) (section, bool) {
	for _, s := range sections {
		if s.Key == key {
			return s, true
		}
	}
	return section{}, false
}
