package postgres

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDSN(t *testing.T) {
	t.Setenv("DB_HOST", "")
	_, err := DSN()
	require.ErrorIs(t, err, ErrNotConfigured)

	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_USER", "vyapaar")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("DB_NAME", "shop")
	t.Setenv("DB_PORT", "")
	t.Setenv("DB_SSLMODE", "")

	dsn, err := DSN()
	require.NoError(t, err)
	require.Equal(t, "host=db port=5432 user=vyapaar password=pw dbname=shop sslmode=disable", dsn)
}
