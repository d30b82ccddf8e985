package currency

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRates() RateTable {
	return RateTable{TWD: 1, USD: 0.03, JPY: 4.7}
}

func TestRateTable_Identity(t *testing.T) {
	rates := testRates()

	for _, code := range []Code{TWD, USD, JPY} {
		got, err := rates.Convert(1234.56, code, code)
		require.NoError(t, err)
		assert.Equal(t, 1234.56, got, "identity conversion for %s", code)
	}
}

func TestRateTable_RoundTrip(t *testing.T) {
	rates := testRates()

	for _, code := range []Code{USD, JPY} {
		inUSD, err := rates.FromBase(80000, code)
		require.NoError(t, err)
		back, err := rates.ToBase(inUSD, code)
		require.NoError(t, err)
		assert.InDelta(t, 80000, back, 1e-9)
	}
}

func TestRateTable_Convert(t *testing.T) {
	rates := testRates()

	got, err := rates.FromBase(80000, USD)
	require.NoError(t, err)
	assert.InDelta(t, 2400, got, 1e-9)

	got, err = rates.ToBase(2400, USD)
	require.NoError(t, err)
	assert.InDelta(t, 80000, got, 1e-9)

	// USD -> JPY goes through TWD, never a direct cross rate.
	got, err = rates.Convert(3, USD, JPY)
	require.NoError(t, err)
	assert.InDelta(t, 3/0.03*4.7, got, 1e-9)
}

func TestRateTable_BaseImplicit(t *testing.T) {
	// Base rate is defined as 1 even when absent from the table.
	rates := RateTable{USD: 0.03}

	got, err := rates.ToBase(100, TWD)
	require.NoError(t, err)
	assert.Equal(t, 100.0, got)
}

func TestRateTable_UnsupportedCurrency(t *testing.T) {
	rates := testRates()

	_, err := rates.FromBase(100, Code("EUR"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedCurrency))
}

func TestRateTable_InvalidRate(t *testing.T) {
	tests := []struct {
		name string
		rate float64
	}{
		{"zero rate", 0},
		{"negative rate", -0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rates := RateTable{USD: tt.rate}
			_, err := rates.ToBase(100, USD)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidRate))
		})
	}
}

func TestRateTable_Clone(t *testing.T) {
	rates := testRates()
	clone := rates.Clone()
	clone[USD] = 99

	assert.Equal(t, 0.03, rates[USD])
}
