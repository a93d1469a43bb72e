package managers

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/01moynul/sales-management-golang/internal/database"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newManagers(t *testing.T) (*Managers, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(database.New(db)), mock
}

func call(name string) string {
	return "^" + regexp.QuoteMeta("CALL "+name+"(")
}

func TestRegisterThenSearchCustomer(t *testing.T) {
	m, mock := newManagers(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(call("RegisterCustomer")).
		WithArgs("Ann Lee", "1 Main St", "555-0100").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	mock.ExpectBegin()
	mock.ExpectQuery(call("SearchCustomer")).
		WithArgs("Ann Lee").
		WillReturnRows(sqlmock.NewRows([]string{"CustomerID", "Name", "Address", "Phone"}).
			AddRow(int64(1), "Ann Lee", "1 Main St", "555-0100"))
	mock.ExpectCommit()

	require.NoError(t, m.Customers.Register(ctx, "Ann Lee", "1 Main St", "555-0100"))

	found, err := m.Customers.Search(ctx, "Ann Lee")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Ann Lee", found[0].Name)
	assert.Equal(t, "1 Main St", found[0].Address)
	assert.Equal(t, "555-0100", found[0].Phone)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateCustomerMissingID(t *testing.T) {
	m, mock := newManagers(t)

	mock.ExpectBegin()
	mock.ExpectExec(call("UpdateCustomer")).
		WithArgs(int64(404), "x", "y", "z").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := m.Customers.Update(context.Background(), 404, "x", "y", "z")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShowCustomerOnEmptyTable(t *testing.T) {
	m, mock := newManagers(t)

	mock.ExpectBegin()
	mock.ExpectQuery(call("ShowCustomer")).
		WillReturnRows(sqlmock.NewRows([]string{"CustomerID", "Name", "Address", "Phone"}))
	mock.ExpectCommit()

	customers, err := m.Customers.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, customers)
	assert.Empty(t, customers)
}

func TestEditAndDeleteMissingProduct(t *testing.T) {
	m, mock := newManagers(t)
	ctx := context.Background()
	price := decimal.RequireFromString("9.99")

	mock.ExpectBegin()
	mock.ExpectExec(call("EditProduct")).
		WithArgs(int64(99), "Pen", price, 5).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	mock.ExpectBegin()
	mock.ExpectExec(call("DeleteProduct")).
		WithArgs(int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	assert.True(t, errors.Is(m.Products.Edit(ctx, 99, "Pen", price, 5), ErrNotFound))
	assert.True(t, errors.Is(m.Products.Delete(ctx, 99), ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductSearchCarriesActiveFlag(t *testing.T) {
	m, mock := newManagers(t)

	mock.ExpectBegin()
	mock.ExpectQuery(call("SearchProduct")).
		WithArgs("Pen").
		WillReturnRows(sqlmock.NewRows([]string{"ProductID", "ProductName", "Price", "StockQuantity", "IsActive"}).
			AddRow(int64(3), "Pen", "1.25", int64(40), int64(1)))
	mock.ExpectCommit()

	products, err := m.Products.Search(context.Background(), "Pen")
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "1.25", products[0].Price.String())
	assert.Equal(t, 40, products[0].StockQuantity)
	require.NotNil(t, products[0].IsActive)
	assert.True(t, *products[0].IsActive)
}

func TestProductListLeavesActiveFlagUnset(t *testing.T) {
	m, mock := newManagers(t)

	mock.ExpectBegin()
	mock.ExpectQuery(call("ShowProduct")).
		WillReturnRows(sqlmock.NewRows([]string{"ProductID", "ProductName", "Price", "StockQuantity"}).
			AddRow(int64(3), "Pen", "1.25", int64(40)))
	mock.ExpectCommit()

	products, err := m.Products.List(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Nil(t, products[0].IsActive)
}

func TestCreateOrderSendsPlainDate(t *testing.T) {
	m, mock := newManagers(t)

	mock.ExpectBegin()
	mock.ExpectExec(call("CreateOrder")).
		WithArgs(int64(1), "2024-05-02", int64(7)).
		WillReturnResult(sqlmock.NewResult(10, 1))
	mock.ExpectCommit()

	day := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)
	require.NoError(t, m.Orders.Create(context.Background(), 1, day, 7))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateOrderStatusForwardsAnyString(t *testing.T) {
	m, mock := newManagers(t)

	mock.ExpectBegin()
	mock.ExpectExec(call("UpdateOrderStatus")).
		WithArgs(int64(5), "Lost In Transit").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, m.Orders.UpdateStatus(context.Background(), 5, "Lost In Transit"))
}

func TestTrackOrderUsesProcedureColumns(t *testing.T) {
	m, mock := newManagers(t)

	mock.ExpectBegin()
	mock.ExpectQuery(call("TrackOrder")).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"OrderID", "Status"}).AddRow(int64(5), "Shipped"))
	mock.ExpectCommit()

	table, err := m.Orders.Track(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"OrderID", "Status"}, table.Columns)
	assert.Equal(t, [][]string{{"5", "Shipped"}}, table.Rows)
}

func TestSearchOrderAndAllDetails(t *testing.T) {
	m, mock := newManagers(t)
	ctx := context.Background()
	day := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(call("SearchOrder")).
		WithArgs("Ann").
		WillReturnRows(sqlmock.NewRows([]string{"OrderID", "CustomerName", "EmployeeName", "OrderDate", "Status"}).
			AddRow(int64(5), "Ann Lee", "Bob", day, "Pending"))
	mock.ExpectCommit()

	mock.ExpectBegin()
	mock.ExpectQuery(call("AllOrderDetail")).
		WillReturnRows(sqlmock.NewRows([]string{"OrderDetailID", "OrderID", "ProductID", "Quantity", "SalePrice"}).
			AddRow(int64(1), int64(5), int64(3), int64(2), "2.50"))
	mock.ExpectCommit()

	orders, err := m.Orders.Search(ctx, "Ann")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, day, orders[0].OrderDate)
	assert.Equal(t, "Bob", orders[0].EmployeeName)

	details, err := m.Orders.AllDetails(ctx)
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, 2, details[0].Quantity)
	assert.Equal(t, "2.5", details[0].SalePrice.String())
}

func TestAddOrderDetailsRejected(t *testing.T) {
	m, mock := newManagers(t)

	mock.ExpectBegin()
	mock.ExpectExec(call("AddOrderDetails")).
		WithArgs(int64(5), int64(3), 1000).
		WillReturnError(errors.New("Error 1644 (45000): Not enough stock"))
	mock.ExpectRollback()

	err := m.OrderDetails.Add(context.Background(), 5, 3, 1000)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Not enough stock")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeLifecycle(t *testing.T) {
	m, mock := newManagers(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(call("AddEmployee")).WithArgs("Bob", "Clerk").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectExec(call("UpdateEmployee")).WithArgs(int64(1), "Bob", "Manager").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectQuery(call("ShowEmployee")).
		WillReturnRows(sqlmock.NewRows([]string{"EmployeeID", "Name", "JobTitle"}).AddRow(int64(1), "Bob", "Manager"))
	mock.ExpectCommit()

	require.NoError(t, m.Employees.Add(ctx, "Bob", "Clerk"))
	require.NoError(t, m.Employees.Update(ctx, 1, "Bob", "Manager"))

	employees, err := m.Employees.List(ctx)
	require.NoError(t, err)
	require.Len(t, employees, 1)
	assert.Equal(t, "Manager", employees[0].JobTitle)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMutateCountsLastStatementRows(t *testing.T) {
	m, mock := newManagers(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(call("UpdateOrderStatus")).
		WithArgs(int64(5), "Shipped").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	// A procedure whose last statement touched nothing reads as a missing id.
	mock.ExpectBegin()
	mock.ExpectExec(call("UpdateOrderStatus")).
		WithArgs(int64(6), "Shipped").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	assert.NoError(t, m.Orders.UpdateStatus(ctx, 5, "Shipped"))
	assert.True(t, errors.Is(m.Orders.UpdateStatus(ctx, 6, "Shipped"), ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBadRowDecodesToEmptySlice(t *testing.T) {
	m, mock := newManagers(t)

	mock.ExpectBegin()
	mock.ExpectQuery(call("SearchEmployee")).
		WithArgs("Bob").
		WillReturnRows(sqlmock.NewRows([]string{"EmployeeID", "Name", "JobTitle"}).AddRow("not-an-id", "Bob", "Clerk"))
	mock.ExpectCommit()

	employees, err := m.Employees.Search(context.Background(), "Bob")
	require.Error(t, err)
	assert.NotNil(t, employees)
	assert.Empty(t, employees)
}

func TestEveryManagerIsEmptyWhileDisconnected(t *testing.T) {
	m := New(&database.Conn{})
	ctx := context.Background()
	day := time.Now()

	disconnected := func(err error) {
		t.Helper()
		assert.True(t, errors.Is(err, database.ErrDisconnected), "got %v", err)
	}

	disconnected(m.Customers.Register(ctx, "a", "b", "c"))
	disconnected(m.Customers.Update(ctx, 1, "a", "b", "c"))
	customers, err := m.Customers.Search(ctx, "a")
	disconnected(err)
	assert.Empty(t, customers)
	customers, err = m.Customers.List(ctx)
	disconnected(err)
	assert.Empty(t, customers)

	disconnected(m.Products.Add(ctx, "a", decimal.Zero, 0))
	disconnected(m.Products.Edit(ctx, 1, "a", decimal.Zero, 0))
	disconnected(m.Products.Delete(ctx, 1))
	products, err := m.Products.List(ctx)
	disconnected(err)
	assert.Empty(t, products)
	products, err = m.Products.Search(ctx, "a")
	disconnected(err)
	assert.Empty(t, products)

	disconnected(m.Orders.Create(ctx, 1, day, 1))
	disconnected(m.Orders.UpdateStatus(ctx, 1, "Pending"))
	table, err := m.Orders.Track(ctx, 1)
	disconnected(err)
	assert.True(t, table.Empty())
	orders, err := m.Orders.Search(ctx, "a")
	disconnected(err)
	assert.Empty(t, orders)
	details, err := m.Orders.AllDetails(ctx)
	disconnected(err)
	assert.Empty(t, details)
	disconnected(m.OrderDetails.Add(ctx, 1, 1, 1))

	disconnected(m.Employees.Add(ctx, "a", "b"))
	disconnected(m.Employees.Update(ctx, 1, "a", "b"))
	employees, err := m.Employees.Search(ctx, "a")
	disconnected(err)
	assert.Empty(t, employees)
	employees, err = m.Employees.List(ctx)
	disconnected(err)
	assert.Empty(t, employees)

	report, err := m.Reports.TotalSales(ctx, day, day)
	disconnected(err)
	assert.Empty(t, report.Lines)
	assert.True(t, report.GrandTotal().IsZero())
	daily, err := m.Reports.DailySales(ctx, day, day)
	disconnected(err)
	assert.Empty(t, daily)
	table, err = m.Reports.SalesToday(ctx)
	disconnected(err)
	assert.True(t, table.Empty())
	rankings, err := m.Reports.SalesByEmployee(ctx)
	disconnected(err)
	assert.Empty(t, rankings)
	rankings, err = m.Reports.SalesByProduct(ctx)
	disconnected(err)
	assert.Empty(t, rankings)
	rankings, err = m.Reports.SalesByCustomer(ctx)
	disconnected(err)
	assert.Empty(t, rankings)
	rankings, err = m.Reports.TopEmployees(ctx, 5)
	disconnected(err)
	assert.Empty(t, rankings)
	rankings, err = m.Reports.TopSellingProducts(ctx, 5)
	disconnected(err)
	assert.Empty(t, rankings)
	rankings, err = m.Reports.TopCustomers(ctx, 5)
	disconnected(err)
	assert.Empty(t, rankings)
	table, err = m.Reports.CalculateDiscount(ctx, 1, decimal.NewFromInt(10))
	disconnected(err)
	assert.True(t, table.Empty())
}
