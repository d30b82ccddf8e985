package repo

import (
	"errors"

	"tallybook/internal/models"

	"gorm.io/gorm"
)

var (
	ErrNilDatabase = errors.New("database cannot be nil")
	ErrNotFound    = gorm.ErrRecordNotFound
)

// Repository is the persistence collaborator. Every query is keyed by a
// scope so account data and guest data never mix.
type Repository struct {
	db *gorm.DB
}

func New(db *gorm.DB) (*Repository, error) {
	if db == nil {
		return nil, ErrNilDatabase
	}
	return &Repository{db: db}, nil
}

func (r *Repository) Migrate() error {
	return r.db.AutoMigrate(
		&models.Holding{},
		&models.Transaction{},
		&models.Category{},
		&models.Automation{},
		&models.SystemLog{},
	)
}
