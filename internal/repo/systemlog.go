package repo

import (
	"tallybook/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateSystemLogs appends the audit entries of one automation pass.
func (r *Repository) CreateSystemLogs(logs []models.SystemLog) error {
	if len(logs) == 0 {
		return nil
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		for i := range logs {
			if logs[i].ID == "" {
				logs[i].ID = uuid.NewString()
			}
			if err := tx.Create(&logs[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *Repository) ListSystemLogs(scope string, limit int) ([]models.SystemLog, error) {
	if limit <= 0 {
		limit = 100
	}
	var logs []models.SystemLog
	if err := r.db.Where("scope = ?", scope).Order("date DESC").Limit(limit).Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

// ClearSystemLogs removes every log entry for the scope in one step; logs
// are never mutated individually.
func (r *Repository) ClearSystemLogs(scope string) error {
	return r.db.Where("scope = ?", scope).Delete(&models.SystemLog{}).Error
}
