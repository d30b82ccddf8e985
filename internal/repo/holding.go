package repo

import (
	"time"

	"tallybook/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func (r *Repository) CreateHolding(h *models.Holding) error {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	return r.db.Create(h).Error
}

func (r *Repository) GetHoldingByID(scope, id string) (*models.Holding, error) {
	var h models.Holding
	if err := r.db.Where("scope = ? AND id = ?", scope, id).First(&h).Error; err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *Repository) GetAllHoldings(scope string) ([]models.Holding, error) {
	var holdings []models.Holding
	if err := r.db.Where("scope = ?", scope).Order("created_at ASC").Find(&holdings).Error; err != nil {
		return nil, err
	}
	return holdings, nil
}

func (r *Repository) GetHoldingsByType(scope string, types ...models.HoldingType) ([]models.Holding, error) {
	var holdings []models.Holding
	if err := r.db.Where("scope = ? AND type IN ?", scope, types).Order("created_at ASC").Find(&holdings).Error; err != nil {
		return nil, err
	}
	return holdings, nil
}

func (r *Repository) UpdateHolding(h *models.Holding) error {
	return r.db.Save(h).Error
}

// UpdateHoldingQuantity persists only the balance change a ledger mutation
// produced.
func (r *Repository) UpdateHoldingQuantity(scope, id string, quantity float64) error {
	return r.db.Model(&models.Holding{}).
		Where("scope = ? AND id = ?", scope, id).
		Update("quantity", quantity).Error
}

// SaveHoldings persists the post-pass snapshot the automation engine
// produced. Only balances change during a pass.
func (r *Repository) SaveHoldings(scope string, holdings []models.Holding) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, h := range holdings {
			if err := tx.Model(&models.Holding{}).
				Where("scope = ? AND id = ?", scope, h.ID).
				Update("quantity", h.Quantity).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// UpdateHoldingPrice persists a quote refresh for a holding.
func (r *Repository) UpdateHoldingPrice(scope, id string, price float64, at time.Time) error {
	return r.db.Model(&models.Holding{}).
		Where("scope = ? AND id = ?", scope, id).
		Updates(map[string]any{"price": price, "last_updated": at}).Error
}

func (r *Repository) DeleteHolding(scope, id string) error {
	return r.db.Where("scope = ?", scope).Delete(&models.Holding{}, "id = ?", id).Error
}
