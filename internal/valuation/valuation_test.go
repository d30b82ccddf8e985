package valuation

import (
	"testing"

	"tallybook/internal/currency"
	"tallybook/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRates() currency.RateTable {
	return currency.RateTable{currency.TWD: 1, currency.USD: 0.03, currency.JPY: 4.7}
}

func testHoldings() []models.Holding {
	return []models.Holding{
		{ID: "bank", Name: "Bank", Type: models.TypeCash, Price: 1, Quantity: 100000, Currency: "TWD"},
		{ID: "card", Name: "Card", Type: models.TypeCreditCard, Price: 1, Quantity: -20000, Currency: "TWD"},
	}
}

func TestNetWorth(t *testing.T) {
	rates := testRates()
	holdings := testHoldings()

	inTWD, err := NetWorth(holdings, currency.TWD, rates)
	require.NoError(t, err)
	assert.InDelta(t, 80000, inTWD, 1e-9)

	inUSD, err := NetWorth(holdings, currency.USD, rates)
	require.NoError(t, err)
	assert.InDelta(t, 2400, inUSD, 1e-9)
}

func TestNetWorth_AggregationOrderIrrelevant(t *testing.T) {
	rates := testRates()
	holdings := []models.Holding{
		{Type: models.TypeCash, Price: 1, Quantity: 50000, Currency: "TWD"},
		{Type: models.TypeCash, Price: 1, Quantity: 300, Currency: "USD"},
		{Type: models.TypeStock, Price: 950, Quantity: 10, Currency: "JPY"},
	}

	inUSD, err := NetWorth(holdings, currency.USD, rates)
	require.NoError(t, err)

	inBase, err := NetWorth(holdings, currency.Base, rates)
	require.NoError(t, err)
	converted, err := rates.FromBase(inBase, currency.USD)
	require.NoError(t, err)

	assert.InDelta(t, converted, inUSD, 1e-9)
}

func TestNetWorth_UnsupportedCurrency(t *testing.T) {
	holdings := []models.Holding{{Price: 1, Quantity: 10, Currency: "EUR"}}

	_, err := NetWorth(holdings, currency.TWD, testRates())
	require.Error(t, err)
}

func TestSubtotal(t *testing.T) {
	rates := testRates()
	holdings := testHoldings()

	cash, err := Subtotal(holdings, currency.TWD, rates, models.TypeCash)
	require.NoError(t, err)
	assert.InDelta(t, 100000, cash, 1e-9)

	credit, err := Subtotal(holdings, currency.TWD, rates, models.TypeCreditCard)
	require.NoError(t, err)
	assert.InDelta(t, -20000, credit, 1e-9)

	invest, err := Subtotal(holdings, currency.TWD, rates,
		models.TypeStock, models.TypeCrypto, models.TypeOther)
	require.NoError(t, err)
	assert.Zero(t, invest)
}

func TestAllocation(t *testing.T) {
	rates := testRates()
	holdings := []models.Holding{
		{Type: models.TypeCash, Price: 1, Quantity: 75000, Currency: "TWD"},
		{Type: models.TypeStock, Price: 500, Quantity: 50, Currency: "TWD"},
		// Liability excluded from the breakdown.
		{Type: models.TypeCreditCard, Price: 1, Quantity: -20000, Currency: "TWD"},
	}

	slices, err := Allocation(holdings, rates)
	require.NoError(t, err)
	require.Len(t, slices, 2)

	assert.Equal(t, models.TypeCash, slices[0].Type)
	assert.Equal(t, 75, slices[0].Percentage)
	assert.Equal(t, models.TypeStock, slices[1].Type)
	assert.Equal(t, 25, slices[1].Percentage)
}

func TestAllocation_PercentagesSumNear100(t *testing.T) {
	rates := testRates()
	holdings := []models.Holding{
		{Type: models.TypeCash, Price: 1, Quantity: 33333, Currency: "TWD"},
		{Type: models.TypeStock, Price: 1, Quantity: 33333, Currency: "TWD"},
		{Type: models.TypeCrypto, Price: 1, Quantity: 33334, Currency: "TWD"},
	}

	slices, err := Allocation(holdings, rates)
	require.NoError(t, err)

	sum := 0
	for _, s := range slices {
		sum += s.Percentage
	}
	assert.InDelta(t, 100, sum, float64(len(slices)))
}

func TestAllocation_ZeroTotal(t *testing.T) {
	slices, err := Allocation([]models.Holding{
		{Type: models.TypeCash, Price: 1, Quantity: 0, Currency: "TWD"},
	}, testRates())
	require.NoError(t, err)
	assert.Empty(t, slices)
}

func TestAllocation_DoesNotMutateInput(t *testing.T) {
	holdings := testHoldings()
	before := holdings[0]

	_, err := Allocation(holdings, testRates())
	require.NoError(t, err)
	assert.Equal(t, before, holdings[0])
}
