package repo

import (
	"testing"

	"tallybook/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Holding{},
		&models.Transaction{},
		&models.Category{},
		&models.Automation{},
		&models.SystemLog{},
	))
	return db
}

func TestNew_NilDatabase(t *testing.T) {
	_, err := New(nil)
	require.ErrorIs(t, err, ErrNilDatabase)
}

func TestMigrate(t *testing.T) {
	db := setupTestDB(t)
	r, err := New(db)
	require.NoError(t, err)
	require.NoError(t, r.Migrate())
}
