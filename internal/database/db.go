package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// DB wraps the database connection
type DB struct {
	conn *sql.DB
	path string
}

// New creates a new database connection
func New(dbPath string) (*DB, error) {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Use WAL mode for better concurrency
	conn, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	conn.SetMaxOpenConns(25)
	conn.SetMaxIdleConns(5)

	return &DB{
		conn: conn,
		path: dbPath,
	}, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// Conn returns the underlying sql.DB connection
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// Path returns the database file path
func (db *DB) Path() string {
	return db.path
}

// Migrate creates the journal schema if it does not exist
func (db *DB) Migrate() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS trades (
			id              TEXT PRIMARY KEY,
			account_id      TEXT,
			symbol          TEXT NOT NULL,
			direction       TEXT NOT NULL,
			session         TEXT NOT NULL,
			status          TEXT NOT NULL,
			outcome         TEXT NOT NULL,
			entry_date      TEXT NOT NULL,
			exit_date       TEXT NOT NULL,
			entry_price     REAL,
			exit_price      REAL,
			size            REAL,
			stop_loss       REAL,
			pnl             REAL NOT NULL,
			commission      REAL NOT NULL DEFAULT 0,
			risk_percentage REAL,
			r_multiple      REAL,
			setup           TEXT NOT NULL DEFAULT '',
			mistakes        TEXT NOT NULL DEFAULT '[]',
			notes           TEXT NOT NULL DEFAULT '',
			screenshot      TEXT,
			copy_group_id   TEXT,
			created_at      TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_trades_exit_date ON trades(exit_date)`,
		`CREATE INDEX IF NOT EXISTS idx_trades_account ON trades(account_id)`,
		`CREATE TABLE IF NOT EXISTS accounts (
			id              TEXT PRIMARY KEY,
			firm_name       TEXT NOT NULL,
			account_size    REAL NOT NULL,
			cost            REAL NOT NULL,
			activation_fee  REAL,
			is_subscription INTEGER NOT NULL DEFAULT 0,
			monthly_fee     REAL,
			target_profit   REAL,
			status          TEXT NOT NULL,
			date_added      TEXT NOT NULL,
			date_funded     TEXT,
			date_ended      TEXT,
			certificate     TEXT,
			created_at      TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS payouts (
			id         TEXT PRIMARY KEY,
			account_id TEXT NOT NULL REFERENCES accounts(id) ON DELETE CASCADE,
			amount     REAL NOT NULL,
			date       TEXT NOT NULL,
			note       TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS idx_payouts_account ON payouts(account_id)`,
		`CREATE TABLE IF NOT EXISTS insight_digests (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			range_label  TEXT NOT NULL,
			content      TEXT NOT NULL,
			generated_at TEXT NOT NULL
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.conn.Exec(stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	return nil
}

// Begin starts a new transaction
func (db *DB) Begin() (*sql.Tx, error) {
	return db.conn.Begin()
}

// Exec executes a query without returning rows
func (db *DB) Exec(query string, args ...interface{}) (sql.Result, error) {
	return db.conn.Exec(query, args...)
}

// Query executes a query that returns rows
func (db *DB) Query(query string, args ...interface{}) (*sql.Rows, error) {
	return db.conn.Query(query, args...)
}

// QueryRow executes a query that returns at most one row
func (db *DB) QueryRow(query string, args ...interface{}) *sql.Row {
	return db.conn.QueryRow(query, args...)
}
