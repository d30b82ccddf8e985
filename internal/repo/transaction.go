package repo

import (
	"time"

	"tallybook/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TransactionFilter struct {
	Kind          models.TransactionKind
	Category      string
	SourceAssetID string
	StartDate     *time.Time
	EndDate       *time.Time
	Limit         int
	Offset        int
}

type TransactionListResult struct {
	Transactions []models.Transaction `json:"transactions"`
	Total        int64                `json:"total"`
	Limit        int                  `json:"limit"`
	Offset       int                  `json:"offset"`
}

func (r *Repository) CreateTransaction(tx *models.Transaction) error {
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	return r.db.Create(tx).Error
}

// CreateTransactions persists a batch atomically, used for the transactions
// one automation pass emits.
func (r *Repository) CreateTransactions(txs []models.Transaction) error {
	if len(txs) == 0 {
		return nil
	}
	return r.db.Transaction(func(dbtx *gorm.DB) error {
		for i := range txs {
			if txs[i].ID == "" {
				txs[i].ID = uuid.NewString()
			}
			if err := dbtx.Create(&txs[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *Repository) GetTransactionByID(scope, id string) (*models.Transaction, error) {
	var tx models.Transaction
	if err := r.db.Where("scope = ? AND id = ?", scope, id).First(&tx).Error; err != nil {
		return nil, err
	}
	return &tx, nil
}

func (r *Repository) ListTransactions(scope string, filter TransactionFilter) (*TransactionListResult, error) {
	query := r.db.Model(&models.Transaction{}).Where("scope = ?", scope)

	if filter.Kind != "" {
		query = query.Where("kind = ?", filter.Kind)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.SourceAssetID != "" {
		query = query.Where("source_asset_id = ?", filter.SourceAssetID)
	}
	if filter.StartDate != nil {
		query = query.Where("date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("date <= ?", *filter.EndDate)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}

	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	var txs []models.Transaction
	if err := query.Order("date DESC").Limit(limit).Offset(offset).Find(&txs).Error; err != nil {
		return nil, err
	}

	return &TransactionListResult{
		Transactions: txs,
		Total:        total,
		Limit:        limit,
		Offset:       offset,
	}, nil
}

func (r *Repository) UpdateTransaction(tx *models.Transaction) error {
	return r.db.Save(tx).Error
}

func (r *Repository) DeleteTransaction(scope, id string) error {
	return r.db.Where("scope = ?", scope).Delete(&models.Transaction{}, "id = ?", id).Error
}
