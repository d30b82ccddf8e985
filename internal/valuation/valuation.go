// Package valuation computes read-side aggregates over a holdings snapshot:
// net worth, per-section subtotals and the allocation breakdown. It never
// mutates its inputs.
package valuation

import (
	"math"

	"tallybook/internal/currency"
	"tallybook/internal/models"
)

// Slice is one category's share of the allocation breakdown. Value is the
// aggregate in base currency; Percentage is rounded to the nearest whole
// percent.
type Slice struct {
	Type       models.HoldingType `json:"type"`
	Value      float64            `json:"value"`
	Percentage int                `json:"percentage"`
}

// NetWorth sums every holding's native value converted to the display
// currency. Liabilities subtract naturally because quantity carries the sign.
func NetWorth(holdings []models.Holding, display currency.Code, rates currency.RateTable) (float64, error) {
	var totalBase float64
	for _, h := range holdings {
		inBase, err := rates.ToBase(h.Value(), currency.Code(h.Currency))
		if err != nil {
			return 0, err
		}
		totalBase += inBase
	}
	return rates.FromBase(totalBase, display)
}

// Subtotal is NetWorth restricted to holdings of the given types.
func Subtotal(holdings []models.Holding, display currency.Code, rates currency.RateTable, types ...models.HoldingType) (float64, error) {
	want := make(map[models.HoldingType]bool, len(types))
	for _, t := range types {
		want[t] = true
	}

	filtered := make([]models.Holding, 0, len(holdings))
	for _, h := range holdings {
		if want[h.Type] {
			filtered = append(filtered, h)
		}
	}
	return NetWorth(filtered, display, rates)
}

// Allocation groups positive base-currency values by holding type and
// expresses each group as a whole percent of the total. Types with no
// positive value are omitted; a zero total yields zero percentages.
func Allocation(holdings []models.Holding, rates currency.RateTable) ([]Slice, error) {
	order := []models.HoldingType{
		models.TypeCash,
		models.TypeStock,
		models.TypeCreditCard,
		models.TypeCrypto,
		models.TypeOther,
	}

	byType := make(map[models.HoldingType]float64)
	var total float64
	for _, h := range holdings {
		inBase, err := rates.ToBase(h.Value(), currency.Code(h.Currency))
		if err != nil {
			return nil, err
		}
		if inBase > 0 {
			byType[h.Type] += inBase
			total += inBase
		}
	}

	slices := make([]Slice, 0, len(byType))
	for _, t := range order {
		value, ok := byType[t]
		if !ok {
			continue
		}
		pct := 0
		if total > 0 {
			pct = int(math.Round(value / total * 100))
		}
		slices = append(slices, Slice{Type: t, Value: value, Percentage: pct})
	}
	return slices, nil
}
