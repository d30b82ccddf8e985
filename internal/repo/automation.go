package repo

import (
	"time"

	"tallybook/internal/models"

	"github.com/google/uuid"
)

func (r *Repository) CreateAutomation(a *models.Automation) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return r.db.Create(a).Error
}

func (r *Repository) GetAutomationByID(scope, id string) (*models.Automation, error) {
	var a models.Automation
	if err := r.db.Where("scope = ? AND id = ?", scope, id).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *Repository) GetAllAutomations(scope string) ([]models.Automation, error) {
	var automations []models.Automation
	if err := r.db.Where("scope = ?", scope).Order("created_at ASC").Find(&automations).Error; err != nil {
		return nil, err
	}
	return automations, nil
}

func (r *Repository) UpdateAutomation(a *models.Automation) error {
	return r.db.Save(a).Error
}

// MarkAutomationsRun stamps the last-run marker after a pass has been
// persisted. The marker is informational; the engine itself never reads it.
func (r *Repository) MarkAutomationsRun(scope string, at time.Time) error {
	return r.db.Model(&models.Automation{}).
		Where("scope = ? AND active = ?", scope, true).
		Update("last_run", at).Error
}

func (r *Repository) DeleteAutomation(scope, id string) error {
	return r.db.Where("scope = ?", scope).Delete(&models.Automation{}, "id = ?", id).Error
}
