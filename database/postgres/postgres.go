package postgres

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

var ErrNotConfigured = errors.New("database is not configured")

// DSN builds a lib/pq connection string from DB_* variables.
// An empty DB_HOST means the sales ledger runs disabled.
func DSN() (string, error) {
	host := os.Getenv("DB_HOST")
	if host == "" {
		return "", ErrNotConfigured
	}

	port := envOr("DB_PORT", "5432")
	sslMode := envOr("DB_SSLMODE", "disable")

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"), os.Getenv("DB_NAME"), sslMode), nil
}

func New() (*sqlx.DB, error) {
	dsn, err := DSN()
	if err != nil {
		return nil, err
	}

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	return db, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS sales (
	id           VARCHAR(26) PRIMARY KEY,
	source       VARCHAR(16) NOT NULL,
	total        NUMERIC(12, 2) NOT NULL,
	output_image TEXT,
	archive_url  TEXT,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_sales_created_at ON sales (created_at);

CREATE TABLE IF NOT EXISTS sale_items (
	sale_id  VARCHAR(26) NOT NULL REFERENCES sales (id) ON DELETE CASCADE,
	position INTEGER NOT NULL,
	item     TEXT NOT NULL,
	quantity INTEGER NOT NULL,
	price    NUMERIC(12, 2) NOT NULL,
	subtotal NUMERIC(12, 2) NOT NULL,
	PRIMARY KEY (sale_id, position)
);
`

func Migrate(db *sqlx.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("migrate sales schema: %w", err)
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
