package managers

import (
	"context"
	"fmt"

	"github.com/01moynul/sales-management-golang/internal/database"
	"github.com/01moynul/sales-management-golang/internal/models"
)

type EmployeeManager struct {
	store Store
}

func NewEmployeeManager(store Store) *EmployeeManager {
	return &EmployeeManager{store: store}
}

func (m *EmployeeManager) Add(ctx context.Context, name, jobTitle string) error {
	if _, err := m.store.Exec(ctx, "AddEmployee", name, jobTitle); err != nil {
		logf(ctx, "Error adding employee %s: %v", name, err)
		return fmt.Errorf("add employee %q: %w", name, err)
	}
	logf(ctx, "Employee %s added successfully.", name)
	return nil
}

func (m *EmployeeManager) Update(ctx context.Context, id int64, name, jobTitle string) error {
	if err := mutate(ctx, m.store, "UpdateEmployee", id, name, jobTitle); err != nil {
		logf(ctx, "Error updating employee %d: %v", id, err)
		return fmt.Errorf("update employee %d: %w", id, err)
	}
	logf(ctx, "Employee %d updated successfully.", id)
	return nil
}

func (m *EmployeeManager) Search(ctx context.Context, name string) ([]models.Employee, error) {
	res, err := m.store.Call(ctx, "SearchEmployee", name)
	if err != nil {
		logf(ctx, "Error searching employee '%s': %v", name, err)
		return []models.Employee{}, fmt.Errorf("search employee %q: %w", name, err)
	}
	return decodeRows(res.Last(), scanEmployee)
}

func (m *EmployeeManager) List(ctx context.Context) ([]models.Employee, error) {
	res, err := m.store.Call(ctx, "ShowEmployee")
	if err != nil {
		logf(ctx, "Error showing employees: %v", err)
		return []models.Employee{}, fmt.Errorf("show employees: %w", err)
	}
	return decodeRows(res.Last(), scanEmployee)
}

func scanEmployee(r *database.RowReader) models.Employee {
	return models.Employee{
		ID:       r.Int64(),
		Name:     r.Text(),
		JobTitle: r.Text(),
	}
}
