package repo

import (
	"tallybook/internal/models"

	"github.com/google/uuid"
)

func (r *Repository) CreateCategory(c *models.Category) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return r.db.Create(c).Error
}

func (r *Repository) GetCategoryByID(scope, id string) (*models.Category, error) {
	var c models.Category
	if err := r.db.Where("scope = ? AND id = ?", scope, id).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// GetCategoryByLabel looks a category up by its label, the stable key
// transactions reference.
func (r *Repository) GetCategoryByLabel(scope, label string) (*models.Category, error) {
	var c models.Category
	if err := r.db.Where("scope = ? AND label = ?", scope, label).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *Repository) GetAllCategories(scope string) ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.Where("scope = ?", scope).Order("created_at ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *Repository) UpdateCategory(c *models.Category) error {
	return r.db.Save(c).Error
}

func (r *Repository) DeleteCategory(scope, id string) error {
	return r.db.Where("scope = ?", scope).Delete(&models.Category{}, "id = ?", id).Error
}
