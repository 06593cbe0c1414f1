package db

import (
	"testing"

	"photoai/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectDialect(t *testing.T) {
	assert.Equal(t, DialectPostgres, DetectDialect("postgres://u:p@localhost:5432/photo"))
	assert.Equal(t, DialectPostgres, DetectDialect("host=localhost user=u dbname=photo"))
	assert.Equal(t, DialectSQLite, DetectDialect("file:photo.db"))
	assert.Equal(t, DialectSQLite, DetectDialect(":memory:"))
}

func TestOpen_EmptyDSN(t *testing.T) {
	_, err := Open("  ", Options{})
	assert.Error(t, err)
}

func TestMigrate_SQLite(t *testing.T) {
	conn, err := Open(":memory:", Options{Logger: zerolog.Nop()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(conn) })

	require.NoError(t, Migrate(conn))

	for _, table := range []interface{}{
		&model.User{}, &model.UserCredit{}, &model.Model{}, &model.OutputImage{},
		&model.Pack{}, &model.PackPrompt{}, &model.Subscription{},
	} {
		assert.True(t, conn.Migrator().HasTable(table))
	}
	assert.True(t, conn.Migrator().HasIndex(&model.Subscription{}, "PaymentID"))
}
