// Package ledger applies transaction effects to holding balances. Amounts
// arrive in base currency and are converted to the holding's native currency
// before the quantity is adjusted; reversal re-derives the delta from the
// stored amount and currency so repeated apply/reverse cycles cannot drift.
package ledger

import (
	"tallybook/internal/currency"
	"tallybook/internal/models"
)

// Apply adjusts the holding's quantity for a transaction of the given kind
// and base-currency amount. INCOME credits, EXPENSE debits.
func Apply(h *models.Holding, kind models.TransactionKind, amountBase float64, rates currency.RateTable) error {
	delta, err := rates.FromBase(amountBase, currency.Code(h.Currency))
	if err != nil {
		return err
	}
	if kind == models.KindIncome {
		h.Quantity += delta
	} else {
		h.Quantity -= delta
	}
	return nil
}

// Reverse undoes the effect a transaction of the given kind and base-currency
// amount had on the holding. It is the exact algebraic inverse of Apply.
func Reverse(h *models.Holding, kind models.TransactionKind, amountBase float64, rates currency.RateTable) error {
	inverse := models.KindExpense
	if kind == models.KindExpense {
		inverse = models.KindIncome
	}
	return Apply(h, inverse, amountBase, rates)
}
