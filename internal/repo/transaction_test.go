package repo

import (
	"testing"
	"time"

	"tallybook/internal/models"

	"github.com/stretchr/testify/require"
)

func TestTransactionRepository_CRUD(t *testing.T) {
	db := setupTestDB(t)
	repository, err := New(db)
	require.NoError(t, err)

	tx := &models.Transaction{
		Scope:    "u",
		Kind:     models.KindExpense,
		Date:     time.Now(),
		Amount:   3000,
		Category: "帳單",
		Note:     "房租",
	}

	require.NoError(t, repository.CreateTransaction(tx))
	require.NotEmpty(t, tx.ID)

	got, err := repository.GetTransactionByID("u", tx.ID)
	require.NoError(t, err)
	require.Equal(t, 3000.0, got.Amount)

	got.Amount = 3500
	require.NoError(t, repository.UpdateTransaction(got))

	got, err = repository.GetTransactionByID("u", tx.ID)
	require.NoError(t, err)
	require.Equal(t, 3500.0, got.Amount)

	require.NoError(t, repository.DeleteTransaction("u", tx.ID))
	_, err = repository.GetTransactionByID("u", tx.ID)
	require.Error(t, err)
}

func TestTransactionRepository_List(t *testing.T) {
	db := setupTestDB(t)
	repository, err := New(db)
	require.NoError(t, err)

	now := time.Now()
	seed := []models.Transaction{
		{Scope: "u", Kind: models.KindExpense, Date: now.Add(-48 * time.Hour), Amount: 100, Category: "餐飲"},
		{Scope: "u", Kind: models.KindExpense, Date: now.Add(-24 * time.Hour), Amount: 200, Category: "交通", SourceAssetID: "bank"},
		{Scope: "u", Kind: models.KindIncome, Date: now, Amount: 50000, Category: "薪資", SourceAssetID: "bank"},
	}
	require.NoError(t, repository.CreateTransactions(seed))

	result, err := repository.ListTransactions("u", TransactionFilter{})
	require.NoError(t, err)
	require.EqualValues(t, 3, result.Total)
	// Newest first.
	require.Equal(t, models.KindIncome, result.Transactions[0].Kind)

	result, err = repository.ListTransactions("u", TransactionFilter{Kind: models.KindExpense})
	require.NoError(t, err)
	require.EqualValues(t, 2, result.Total)

	result, err = repository.ListTransactions("u", TransactionFilter{SourceAssetID: "bank"})
	require.NoError(t, err)
	require.EqualValues(t, 2, result.Total)

	start := now.Add(-30 * time.Hour)
	result, err = repository.ListTransactions("u", TransactionFilter{StartDate: &start})
	require.NoError(t, err)
	require.EqualValues(t, 2, result.Total)

	result, err = repository.ListTransactions("u", TransactionFilter{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.EqualValues(t, 3, result.Total)
	require.Len(t, result.Transactions, 1)
}

func TestTransactionRepository_BatchAssignsIDs(t *testing.T) {
	db := setupTestDB(t)
	repository, err := New(db)
	require.NoError(t, err)

	batch := []models.Transaction{
		{Scope: "u", Kind: models.KindExpense, Date: time.Now(), Amount: 1},
		{Scope: "u", Kind: models.KindExpense, Date: time.Now(), Amount: 2},
	}
	require.NoError(t, repository.CreateTransactions(batch))
	require.NotEmpty(t, batch[0].ID)
	require.NotEmpty(t, batch[1].ID)
	require.NotEqual(t, batch[0].ID, batch[1].ID)
}
