// Package testutil holds helpers shared by package tests.
package testutil

import (
	"testing"

	"photoai/internal/db"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewDB returns a migrated in-memory database closed at the end of the test.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := db.Open(":memory:", db.Options{Logger: zerolog.Nop()})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(conn))
	t.Cleanup(func() { _ = db.Close(conn) })
	return conn
}
