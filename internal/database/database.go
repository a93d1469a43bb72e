package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
)

// State is the connection state of a Conn.
type State int

const (
	Disconnected State = iota
	Connected
)

func (s State) String() string {
	if s == Connected {
		return "connected"
	}
	return "disconnected"
}

// Config is what we need to reach the sales database.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
}

// DSN renders the go-sql-driver connection string.
// ClientFoundRows makes CALL report matched rows, so an update that
// leaves a row unchanged is still distinguishable from a missing id.
func (c Config) DSN() string {
	mc := mysql.NewConfig()
	mc.User = c.User
	mc.Passwd = c.Password
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
	mc.DBName = c.Name
	mc.ParseTime = true
	mc.ClientFoundRows = true
	mc.Timeout = 5 * time.Second
	return mc.FormatDSN()
}

// Conn owns the single database session used by every manager.
// It never panics and never exits the process: failures come back as errors.
type Conn struct {
	db    *sql.DB
	state State
	err   error
}

// Connect opens the session and verifies it with a ping.
// On failure the returned Conn is Disconnected and stays that way;
// there is no reconnect logic.
func Connect(cfg Config) *Conn {
	return ConnectDSN(cfg.DSN())
}

// ConnectDSN is Connect for a ready-made go-sql-driver DSN, such as the
// read-only account the sales assistant uses.
func ConnectDSN(dsn string) *Conn {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		log.Printf("Error connecting to the database: %v", err)
		return &Conn{state: Disconnected, err: err}
	}

	// One long-lived session for the whole process.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		log.Printf("Error connecting to the database: %v", err)
		_ = db.Close()
		return &Conn{state: Disconnected, err: err}
	}

	log.Println("Database connection established successfully.")
	return New(db)
}

// New wraps an already-open *sql.DB as a connected handle.
func New(db *sql.DB) *Conn {
	return &Conn{db: db, state: Connected}
}

// State reports whether the handle has a live session.
func (c *Conn) State() State {
	return c.state
}

// Err returns the error that left the handle disconnected, if any.
func (c *Conn) Err() error {
	return c.err
}

// Ping checks the session is still answering.
func (c *Conn) Ping(ctx context.Context) error {
	if err := c.ready(); err != nil {
		return err
	}
	return classify(c.db.PingContext(ctx))
}

// Close releases the session. Safe on a disconnected handle.
func (c *Conn) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Call runs a stored procedure that produces result sets.
// Every set is drained in produced order; the transaction is committed
// on success and rolled back on any database error.
func (c *Conn) Call(ctx context.Context, name string, params ...any) (*Result, error) {
	if err := c.ready(); err != nil {
		return &Result{}, err
	}

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return &Result{}, fmt.Errorf("begin %s: %w", name, classify(err))
	}

	rows, err := tx.QueryContext(ctx, callStatement(name, len(params)), params...)
	if err != nil {
		rollback(tx, name)
		return &Result{}, fmt.Errorf("call %s: %w", name, classify(err))
	}

	res, err := drain(rows)
	if err != nil {
		rollback(tx, name)
		return &Result{}, fmt.Errorf("fetch %s results: %w", name, classify(err))
	}

	if err := tx.Commit(); err != nil {
		return &Result{}, fmt.Errorf("commit %s: %w", name, classify(err))
	}
	return res, nil
}

// Exec runs a stored procedure for its side effects and returns the
// number of rows its last statement matched.
func (c *Conn) Exec(ctx context.Context, name string, params ...any) (int64, error) {
	if err := c.ready(); err != nil {
		return 0, err
	}

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin %s: %w", name, classify(err))
	}

	result, err := tx.ExecContext(ctx, callStatement(name, len(params)), params...)
	if err != nil {
		rollback(tx, name)
		return 0, fmt.Errorf("call %s: %w", name, classify(err))
	}

	affected, err := result.RowsAffected()
	if err != nil {
		rollback(tx, name)
		return 0, fmt.Errorf("call %s: %w", name, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit %s: %w", name, classify(err))
	}
	return affected, nil
}

// Query runs a literal read-only statement against a table or view.
func (c *Conn) Query(ctx context.Context, query string, args ...any) (*Result, error) {
	if err := c.ready(); err != nil {
		return &Result{}, err
	}

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return &Result{}, fmt.Errorf("query: %w", classify(err))
	}

	res, err := drain(rows)
	if err != nil {
		return &Result{}, fmt.Errorf("query: %w", classify(err))
	}
	return res, nil
}

func (c *Conn) ready() error {
	if c.state != Connected {
		if c.err != nil {
			return fmt.Errorf("%w: %v", ErrDisconnected, c.err)
		}
		return ErrDisconnected
	}
	return nil
}

func rollback(tx *sql.Tx, name string) {
	if err := tx.Rollback(); err != nil {
		log.Printf("Error rolling back %s: %v", name, err)
	}
}

// callStatement builds "CALL Name(?, ?, ?)". Names come from the
// managers' fixed catalog, never from user input.
func callStatement(name string, n int) string {
	placeholders := make([]string, n)
	for i := range placeholders {
		placeholders[i] = "?"
	}
	return "CALL " + name + "(" + strings.Join(placeholders, ", ") + ")"
}
