// Package testutil opens throwaway databases for package tests.
package testutil

import (
	"testing"

	"crime-report/internal/data/entity"
	"crime-report/pkg/database"
	"crime-report/pkg/utils"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewDB returns a migrated in-memory SQLite database closed at test end.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.InitDB(utils.DatabaseConfig{URL: "sqlite://:memory:"}, false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	require.NoError(t, database.Migrate(db, entity.Models()...))
	return db
}
