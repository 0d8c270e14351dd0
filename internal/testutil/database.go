package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/VoidMesh/worldgen/internal/db"
)

// SetupTestDB opens a fresh SQLite file under t.TempDir with every migration
// applied. The database is closed when the test ends.
func SetupTestDB(t testing.TB) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "worldgen-test.db")
	conn, err := db.Open(path, db.Options{MaxOpenConns: 1})
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.NoError(t, db.RunMigrations(conn))
	return conn
}
