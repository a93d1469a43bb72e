package managers

import (
	"context"
	"fmt"

	"github.com/01moynul/sales-management-golang/internal/database"
	"github.com/01moynul/sales-management-golang/internal/models"
)

type CustomerManager struct {
	store Store
}

func NewCustomerManager(store Store) *CustomerManager {
	return &CustomerManager{store: store}
}

func (m *CustomerManager) Register(ctx context.Context, name, address, phone string) error {
	if _, err := m.store.Exec(ctx, "RegisterCustomer", name, address, phone); err != nil {
		logf(ctx, "Error registering customer %s: %v", name, err)
		return fmt.Errorf("register customer %q: %w", name, err)
	}
	logf(ctx, "Customer %s registered successfully.", name)
	return nil
}

func (m *CustomerManager) Update(ctx context.Context, id int64, name, address, phone string) error {
	if err := mutate(ctx, m.store, "UpdateCustomer", id, name, address, phone); err != nil {
		logf(ctx, "Error updating customer %d: %v", id, err)
		return fmt.Errorf("update customer %d: %w", id, err)
	}
	logf(ctx, "Customer %d updated successfully.", id)
	return nil
}

// Search finds customers by name; matching rules live in SearchCustomer.
func (m *CustomerManager) Search(ctx context.Context, name string) ([]models.Customer, error) {
	res, err := m.store.Call(ctx, "SearchCustomer", name)
	if err != nil {
		logf(ctx, "Error searching customer '%s': %v", name, err)
		return []models.Customer{}, fmt.Errorf("search customer %q: %w", name, err)
	}
	return decodeRows(res.Last(), scanCustomer)
}

func (m *CustomerManager) List(ctx context.Context) ([]models.Customer, error) {
	res, err := m.store.Call(ctx, "ShowCustomer")
	if err != nil {
		logf(ctx, "Error showing customers: %v", err)
		return []models.Customer{}, fmt.Errorf("show customers: %w", err)
	}
	return decodeRows(res.Last(), scanCustomer)
}

func scanCustomer(r *database.RowReader) models.Customer {
	return models.Customer{
		ID:      r.Int64(),
		Name:    r.Text(),
		Address: r.Text(),
		Phone:   r.Text(),
	}
}
