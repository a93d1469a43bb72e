package managers

import (
	"context"
	"fmt"

	"github.com/01moynul/sales-management-golang/internal/database"
	"github.com/01moynul/sales-management-golang/internal/models"
	"github.com/shopspring/decimal"
)

type ProductManager struct {
	store Store
}

func NewProductManager(store Store) *ProductManager {
	return &ProductManager{store: store}
}

func (m *ProductManager) Add(ctx context.Context, name string, price decimal.Decimal, stock int) error {
	if _, err := m.store.Exec(ctx, "AddProduct", name, price, stock); err != nil {
		logf(ctx, "Error adding product %s: %v", name, err)
		return fmt.Errorf("add product %q: %w", name, err)
	}
	logf(ctx, "Product %s added successfully.", name)
	return nil
}

func (m *ProductManager) Edit(ctx context.Context, id int64, name string, price decimal.Decimal, stock int) error {
	if err := mutate(ctx, m.store, "EditProduct", id, name, price, stock); err != nil {
		logf(ctx, "Error editing product %d: %v", id, err)
		return fmt.Errorf("edit product %d: %w", id, err)
	}
	logf(ctx, "Product %d updated successfully.", id)
	return nil
}

// Delete is the only deletion the catalog offers.
func (m *ProductManager) Delete(ctx context.Context, id int64) error {
	if err := mutate(ctx, m.store, "DeleteProduct", id); err != nil {
		logf(ctx, "Error deleting product %d: %v", id, err)
		return fmt.Errorf("delete product %d: %w", id, err)
	}
	logf(ctx, "Product %d deleted successfully.", id)
	return nil
}

func (m *ProductManager) List(ctx context.Context) ([]models.Product, error) {
	res, err := m.store.Call(ctx, "ShowProduct")
	if err != nil {
		logf(ctx, "Error showing products: %v", err)
		return []models.Product{}, fmt.Errorf("show products: %w", err)
	}
	return decodeRows(res.Last(), scanProduct)
}

func (m *ProductManager) Search(ctx context.Context, name string) ([]models.Product, error) {
	res, err := m.store.Call(ctx, "SearchProduct", name)
	if err != nil {
		logf(ctx, "Error searching product '%s': %v", name, err)
		return []models.Product{}, fmt.Errorf("search product %q: %w", name, err)
	}
	return decodeRows(res.Last(), scanProduct)
}

// scanProduct reads the optional fifth column (IsActive) when present.
func scanProduct(r *database.RowReader) models.Product {
	p := models.Product{
		ID:            r.Int64(),
		Name:          r.Text(),
		Price:         r.Decimal(),
		StockQuantity: r.Int(),
	}
	if r.More() {
		active := r.Bool()
		p.IsActive = &active
	}
	return p
}
