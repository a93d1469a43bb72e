// Package managers holds one facade per business entity. Each method
// turns a call into exactly one stored-procedure call or one literal
// query against the Store, and hands back typed rows or an error.
// No manager validates its input: the stored procedures own that.
package managers

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/01moynul/sales-management-golang/internal/database"
)

// ErrNotFound means a mutation matched no row for the given id.
var ErrNotFound = errors.New("no record with that id")

// Store is the slice of the connection handle the managers need.
// *database.Conn satisfies it.
type Store interface {
	Call(ctx context.Context, name string, params ...any) (*database.Result, error)
	Exec(ctx context.Context, name string, params ...any) (int64, error)
	Query(ctx context.Context, query string, args ...any) (*database.Result, error)
}

// Managers bundles every facade built over one Store.
type Managers struct {
	Customers    *CustomerManager
	Products     *ProductManager
	Orders       *OrderManager
	OrderDetails *OrderDetailsManager
	Employees    *EmployeeManager
	Reports      *ReportManager
}

// New builds every manager over the same store.
func New(store Store) *Managers {
	return &Managers{
		Customers:    NewCustomerManager(store),
		Products:     NewProductManager(store),
		Orders:       NewOrderManager(store),
		OrderDetails: NewOrderDetailsManager(store),
		Employees:    NewEmployeeManager(store),
		Reports:      NewReportManager(store),
	}
}

type requestIDKey struct{}

// WithRequestID tags ctx so manager log lines can be traced to a request.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func logf(ctx context.Context, format string, args ...any) {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok && id != "" {
		format = "[" + id + "] " + format
	}
	log.Printf(format, args...)
}

// decodeRows maps every row of set through decode. On a bad row it
// returns an empty slice, never nil.
func decodeRows[T any](set database.ResultSet, decode func(r *database.RowReader) T) ([]T, error) {
	out := make([]T, 0, len(set.Rows))
	for i, row := range set.Rows {
		r := database.NewRowReader(row)
		v := decode(r)
		if err := r.Err(); err != nil {
			return []T{}, fmt.Errorf("row %d: %w", i, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// mutate runs a procedure that must match a row for id. The driver
// reports rows affected by the procedure's last statement only, so this
// holds only while every mutation procedure ends with its UPDATE or
// DELETE. One that ends with a message SELECT would report 0 and every
// successful call would come back as ErrNotFound.
func mutate(ctx context.Context, store Store, name string, params ...any) error {
	n, err := store.Exec(ctx, name, params...)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
