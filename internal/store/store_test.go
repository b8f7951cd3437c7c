package store

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dukerupert/flexidiet/internal/database"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func amt(v float64) *float64 { return &v }
