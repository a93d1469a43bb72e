package managers

import (
	"context"
	"fmt"
	"time"

	"github.com/01moynul/sales-management-golang/internal/database"
	"github.com/01moynul/sales-management-golang/internal/models"
)

type OrderManager struct {
	store Store
}

func NewOrderManager(store Store) *OrderManager {
	return &OrderManager{store: store}
}

// Create opens an order. The date is sent as YYYY-MM-DD so the
// connection's time zone cannot shift it.
func (m *OrderManager) Create(ctx context.Context, customerID int64, orderDate time.Time, employeeID int64) error {
	if _, err := m.store.Exec(ctx, "CreateOrder", customerID, orderDate.Format(time.DateOnly), employeeID); err != nil {
		logf(ctx, "Error creating order for customer %d: %v", customerID, err)
		return fmt.Errorf("create order for customer %d: %w", customerID, err)
	}
	logf(ctx, "Order for customer %d created successfully.", customerID)
	return nil
}

// UpdateStatus forwards status unchanged; UpdateOrderStatus decides
// which transitions are legal.
func (m *OrderManager) UpdateStatus(ctx context.Context, id int64, status string) error {
	if err := mutate(ctx, m.store, "UpdateOrderStatus", id, status); err != nil {
		logf(ctx, "Error updating status for order %d: %v", id, err)
		return fmt.Errorf("update status of order %d: %w", id, err)
	}
	logf(ctx, "Order %d status updated to %s.", id, status)
	return nil
}

// Track returns whatever TrackOrder selects, labelled with the
// procedure's own column names.
func (m *OrderManager) Track(ctx context.Context, id int64) (models.Table, error) {
	res, err := m.store.Call(ctx, "TrackOrder", id)
	if err != nil {
		logf(ctx, "Error tracking order %d: %v", id, err)
		return models.Table{}, fmt.Errorf("track order %d: %w", id, err)
	}
	return tableOf(res.Last()), nil
}

func (m *OrderManager) Search(ctx context.Context, term string) ([]models.OrderSummary, error) {
	res, err := m.store.Call(ctx, "SearchOrder", term)
	if err != nil {
		logf(ctx, "Error searching orders with term '%s': %v", term, err)
		return []models.OrderSummary{}, fmt.Errorf("search orders %q: %w", term, err)
	}
	return decodeRows(res.Last(), func(r *database.RowReader) models.OrderSummary {
		return models.OrderSummary{
			ID:           r.Int64(),
			CustomerName: r.Text(),
			EmployeeName: r.Text(),
			OrderDate:    r.Time(),
			Status:       r.Text(),
		}
	})
}

func (m *OrderManager) AllDetails(ctx context.Context) ([]models.OrderDetail, error) {
	res, err := m.store.Call(ctx, "AllOrderDetail")
	if err != nil {
		logf(ctx, "Error retrieving all order details: %v", err)
		return []models.OrderDetail{}, fmt.Errorf("all order details: %w", err)
	}
	return decodeRows(res.Last(), func(r *database.RowReader) models.OrderDetail {
		return models.OrderDetail{
			ID:        r.Int64(),
			OrderID:   r.Int64(),
			ProductID: r.Int64(),
			Quantity:  r.Int(),
			SalePrice: r.Decimal(),
		}
	})
}

// OrderDetailsManager adds lines to an existing order. The sale price
// is captured by AddOrderDetails, not here.
type OrderDetailsManager struct {
	store Store
}

func NewOrderDetailsManager(store Store) *OrderDetailsManager {
	return &OrderDetailsManager{store: store}
}

func (m *OrderDetailsManager) Add(ctx context.Context, orderID, productID int64, quantity int) error {
	if _, err := m.store.Exec(ctx, "AddOrderDetails", orderID, productID, quantity); err != nil {
		logf(ctx, "Error adding order details for order %d, product %d: %v", orderID, productID, err)
		return fmt.Errorf("add details to order %d: %w", orderID, err)
	}
	logf(ctx, "Order details added for order %d, product %d.", orderID, productID)
	return nil
}

func tableOf(set database.ResultSet) models.Table {
	return models.Table{Columns: set.Columns, Rows: set.Strings()}
}
