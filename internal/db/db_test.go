package db

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMigrateURL(t *testing.T) {
	require.Equal(t, "pgx5://u:p@localhost:5432/kasir?sslmode=disable", migrateURL("postgres://u:p@localhost:5432/kasir?sslmode=disable"))
	require.Equal(t, "pgx5://localhost/kasir", migrateURL("postgresql://localhost/kasir"))
	require.Equal(t, "pgx5://already", migrateURL("pgx5://already"))
}

func TestMigrationsEmbedded(t *testing.T) {
	entries, err := migrationFiles.ReadDir("migrations")
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(entries), 2)
}
