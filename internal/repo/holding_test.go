package repo

import (
	"testing"

	"tallybook/internal/models"

	"github.com/stretchr/testify/require"
)

func TestHoldingRepository_CRUD(t *testing.T) {
	db := setupTestDB(t)
	repository, err := New(db)
	require.NoError(t, err)

	h := &models.Holding{
		Scope:    "user-1",
		Name:     "中國信託",
		Type:     models.TypeCash,
		Price:    1,
		Quantity: 50000,
		Currency: "TWD",
	}

	require.NoError(t, repository.CreateHolding(h))
	require.NotEmpty(t, h.ID)

	got, err := repository.GetHoldingByID("user-1", h.ID)
	require.NoError(t, err)
	require.Equal(t, h.Name, got.Name)
	require.Equal(t, 50000.0, got.Quantity)

	got.Quantity = 47000
	require.NoError(t, repository.UpdateHolding(got))

	holdings, err := repository.GetAllHoldings("user-1")
	require.NoError(t, err)
	require.Len(t, holdings, 1)
	require.Equal(t, 47000.0, holdings[0].Quantity)

	require.NoError(t, repository.DeleteHolding("user-1", h.ID))
	_, err = repository.GetHoldingByID("user-1", h.ID)
	require.Error(t, err)
}

func TestHoldingRepository_ScopeIsolation(t *testing.T) {
	db := setupTestDB(t)
	repository, err := New(db)
	require.NoError(t, err)

	require.NoError(t, repository.CreateHolding(&models.Holding{
		Scope: "user-1", Name: "Bank A", Type: models.TypeCash, Price: 1, Quantity: 100, Currency: "TWD",
	}))
	require.NoError(t, repository.CreateHolding(&models.Holding{
		Scope: "guest", Name: "Bank B", Type: models.TypeCash, Price: 1, Quantity: 200, Currency: "TWD",
	}))

	holdings, err := repository.GetAllHoldings("user-1")
	require.NoError(t, err)
	require.Len(t, holdings, 1)
	require.Equal(t, "Bank A", holdings[0].Name)
}

func TestHoldingRepository_ByType(t *testing.T) {
	db := setupTestDB(t)
	repository, err := New(db)
	require.NoError(t, err)

	seed := []models.Holding{
		{Scope: "u", Name: "Bank", Type: models.TypeCash, Price: 1, Quantity: 100, Currency: "TWD"},
		{Scope: "u", Name: "Card", Type: models.TypeCreditCard, Price: 1, Quantity: -10, Currency: "TWD"},
		{Scope: "u", Name: "TSMC", Type: models.TypeStock, Price: 980, Quantity: 5, Currency: "TWD", Ticker: "2330"},
		{Scope: "u", Name: "BTC", Type: models.TypeCrypto, Price: 95000, Quantity: 0.1, Currency: "USD", Ticker: "BTC"},
	}
	for i := range seed {
		require.NoError(t, repository.CreateHolding(&seed[i]))
	}

	invest, err := repository.GetHoldingsByType("u", models.TypeStock, models.TypeCrypto, models.TypeOther)
	require.NoError(t, err)
	require.Len(t, invest, 2)
}

func TestHoldingRepository_SaveHoldings(t *testing.T) {
	db := setupTestDB(t)
	repository, err := New(db)
	require.NoError(t, err)

	bank := &models.Holding{Scope: "u", Name: "Bank", Type: models.TypeCash, Price: 1, Quantity: 50000, Currency: "TWD"}
	stock := &models.Holding{Scope: "u", Name: "TSMC", Type: models.TypeStock, Price: 3000, Quantity: 0, Currency: "TWD"}
	require.NoError(t, repository.CreateHolding(bank))
	require.NoError(t, repository.CreateHolding(stock))

	bank.Quantity = 41000
	stock.Quantity = 3
	require.NoError(t, repository.SaveHoldings("u", []models.Holding{*bank, *stock}))

	got, err := repository.GetHoldingByID("u", bank.ID)
	require.NoError(t, err)
	require.Equal(t, 41000.0, got.Quantity)

	got, err = repository.GetHoldingByID("u", stock.ID)
	require.NoError(t, err)
	require.Equal(t, 3.0, got.Quantity)
}
