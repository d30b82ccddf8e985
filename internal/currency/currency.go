// Package currency implements the conversion model every monetary
// computation routes through. Rates are anchored to a single base currency;
// cross-currency conversion always takes the two-step path through base so
// the table only ever needs base-relative entries.
package currency

import (
	"time"

	"github.com/pkg/errors"
)

// Code identifies a currency, e.g. "TWD", "USD", "JPY".
type Code string

const (
	TWD Code = "TWD"
	USD Code = "USD"
	JPY Code = "JPY"
)

// Base is the canonical unit all stored amounts and rate tables are
// anchored to.
const Base = TWD

var (
	ErrUnsupportedCurrency = errors.New("currency not present in rate table")
	ErrInvalidRate         = errors.New("rate must be a positive number")
)

// RateTable maps a currency to units of that currency per 1 unit of base.
// The base currency itself always has rate 1, whether or not the entry is
// present.
type RateTable map[Code]float64

// DefaultRates is the static seed table used until the first successful
// provider fetch.
func DefaultRates() RateTable {
	return RateTable{TWD: 1, USD: 0.0307, JPY: 4.7}
}

// Snapshot is a rate table together with the provider timestamp it was
// fetched at.
type Snapshot struct {
	Rates     RateTable `json:"rates"`
	Timestamp time.Time `json:"timestamp"`
}

func (t RateTable) rate(code Code) (float64, error) {
	if code == Base {
		return 1, nil
	}
	r, ok := t[code]
	if !ok {
		return 0, errors.Wrapf(ErrUnsupportedCurrency, "currency %s", code)
	}
	if r <= 0 {
		return 0, errors.Wrapf(ErrInvalidRate, "currency %s has rate %v", code, r)
	}
	return r, nil
}

// ToBase converts an amount in the given currency to the base currency.
func (t RateTable) ToBase(amount float64, from Code) (float64, error) {
	r, err := t.rate(from)
	if err != nil {
		return 0, err
	}
	return amount / r, nil
}

// FromBase converts a base-currency amount to the given currency.
func (t RateTable) FromBase(amount float64, to Code) (float64, error) {
	r, err := t.rate(to)
	if err != nil {
		return 0, err
	}
	return amount * r, nil
}

// Convert converts an amount between two currencies via the base currency.
func (t RateTable) Convert(amount float64, from, to Code) (float64, error) {
	base, err := t.ToBase(amount, from)
	if err != nil {
		return 0, err
	}
	return t.FromBase(base, to)
}

// Clone returns an independent copy of the table.
func (t RateTable) Clone() RateTable {
	out := make(RateTable, len(t))
	for c, r := range t {
		out[c] = r
	}
	return out
}
