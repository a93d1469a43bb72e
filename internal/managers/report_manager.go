package managers

import (
	"context"
	"fmt"
	"time"

	"github.com/01moynul/sales-management-golang/internal/database"
	"github.com/01moynul/sales-management-golang/internal/models"
	"github.com/shopspring/decimal"
)

// ReportManager runs the read-only sales reports: literal SQL over the
// reporting views, and the GetTop* procedures for rankings.
type ReportManager struct {
	store Store
}

func NewReportManager(store Store) *ReportManager {
	return &ReportManager{store: store}
}

const (
	saleLinesQuery = `
		SELECT O.OrderID, OD.ProductID, OD.SalePrice, O.OrderDate
		FROM Orders O
		JOIN OrderDetails OD ON O.OrderID = OD.OrderID
		WHERE O.OrderDate BETWEEN ? AND ?
		ORDER BY O.OrderDate, O.OrderID`

	dailySalesQuery = `
		SELECT OrderDate, SUM(TotalSales) AS TotalSales
		FROM TotalSalesReport
		WHERE OrderDate BETWEEN ? AND ?
		GROUP BY OrderDate
		ORDER BY OrderDate`
)

// TotalSales lists every order line dated within [start, end], oldest
// first. The grand total is SalesReport.GrandTotal.
func (m *ReportManager) TotalSales(ctx context.Context, start, end time.Time) (models.SalesReport, error) {
	report := models.SalesReport{Start: start, End: end, Lines: []models.SaleLine{}}

	res, err := m.store.Query(ctx, saleLinesQuery, start.Format(time.DateOnly), end.Format(time.DateOnly))
	if err != nil {
		logf(ctx, "Error fetching total sales report: %v", err)
		return report, fmt.Errorf("total sales report: %w", err)
	}

	lines, err := decodeRows(res.Last(), func(r *database.RowReader) models.SaleLine {
		return models.SaleLine{
			OrderID:   r.Int64(),
			ProductID: r.Int64(),
			SalePrice: r.Decimal(),
			OrderDate: r.Time(),
		}
	})
	if err != nil {
		return report, fmt.Errorf("total sales report: %w", err)
	}
	report.Lines = lines
	return report, nil
}

// DailySales sums the TotalSalesReport view per day within [start, end].
func (m *ReportManager) DailySales(ctx context.Context, start, end time.Time) ([]models.DailySales, error) {
	res, err := m.store.Query(ctx, dailySalesQuery, start.Format(time.DateOnly), end.Format(time.DateOnly))
	if err != nil {
		logf(ctx, "Error fetching daily sales: %v", err)
		return []models.DailySales{}, fmt.Errorf("daily sales report: %w", err)
	}
	return decodeRows(res.Last(), func(r *database.RowReader) models.DailySales {
		return models.DailySales{OrderDate: r.Time(), TotalSales: r.Decimal()}
	})
}

// SalesToday returns the SalesReportToday view as-is.
func (m *ReportManager) SalesToday(ctx context.Context) (models.Table, error) {
	res, err := m.store.Query(ctx, "SELECT * FROM SalesReportToday")
	if err != nil {
		logf(ctx, "Error fetching sales report for today: %v", err)
		return models.Table{}, fmt.Errorf("sales report for today: %w", err)
	}
	return tableOf(res.Last()), nil
}

func (m *ReportManager) SalesByEmployee(ctx context.Context) ([]models.SalesRanking, error) {
	return m.view(ctx, "SalesReportByEmployee")
}

func (m *ReportManager) SalesByProduct(ctx context.Context) ([]models.SalesRanking, error) {
	return m.view(ctx, "SalesReportByProduct")
}

func (m *ReportManager) SalesByCustomer(ctx context.Context) ([]models.SalesRanking, error) {
	return m.view(ctx, "SalesReportByCustomer")
}

// TopEmployees forwards n unchecked; GetTopEmployees decides what a
// zero or negative n means.
func (m *ReportManager) TopEmployees(ctx context.Context, n int) ([]models.SalesRanking, error) {
	return m.top(ctx, "GetTopEmployees", n)
}

func (m *ReportManager) TopSellingProducts(ctx context.Context, n int) ([]models.SalesRanking, error) {
	return m.top(ctx, "GetTopSellingProducts", n)
}

func (m *ReportManager) TopCustomers(ctx context.Context, n int) ([]models.SalesRanking, error) {
	return m.top(ctx, "GetTopCustomers", n)
}

// CalculateDiscount asks the database for the price of productID after
// a rate percent discount.
func (m *ReportManager) CalculateDiscount(ctx context.Context, productID int64, rate decimal.Decimal) (models.Table, error) {
	res, err := m.store.Call(ctx, "CalculateDiscount", productID, rate)
	if err != nil {
		logf(ctx, "Error calculating discount for product %d: %v", productID, err)
		return models.Table{}, fmt.Errorf("calculate discount for product %d: %w", productID, err)
	}
	return tableOf(res.Last()), nil
}

// view reads one of the fixed SalesReportBy* views. The name is never
// user input.
func (m *ReportManager) view(ctx context.Context, name string) ([]models.SalesRanking, error) {
	res, err := m.store.Query(ctx, "SELECT * FROM "+name)
	if err != nil {
		logf(ctx, "Error fetching %s: %v", name, err)
		return []models.SalesRanking{}, fmt.Errorf("%s: %w", name, err)
	}
	return decodeRows(res.Last(), scanRanking)
}

func (m *ReportManager) top(ctx context.Context, procedure string, n int) ([]models.SalesRanking, error) {
	res, err := m.store.Call(ctx, procedure, n)
	if err != nil {
		logf(ctx, "Error fetching %s(%d): %v", procedure, n, err)
		return []models.SalesRanking{}, fmt.Errorf("%s: %w", procedure, err)
	}
	return decodeRows(res.Last(), scanRanking)
}

func scanRanking(r *database.RowReader) models.SalesRanking {
	return models.SalesRanking{
		ID:         r.Int64(),
		Name:       r.Text(),
		TotalSales: r.Decimal(),
	}
}
