// Package networth computes the value of a single item instance from a price
// catalog snapshot through an ordered chain of modifier handlers.
package networth

import (
	"math"

	"github.com/skyforge/networth/internal/domain/catalog"
	"github.com/skyforge/networth/internal/domain/model"
)

// Handler is one self-contained valuation rule.
type Handler interface {
	// Name identifies the handler in metrics and logs.
	Name() string

	// Applies is a cheap, side-effect free relevance check.
	Applies(item *model.Item) bool

	// Calculate records its own audit entries on acc and returns the sum of
	// their values. Override handlers rewrite the base through
	// acc.OverrideBase and return the residual delta, usually 0.
	Calculate(item *model.Item, acc *Accumulator, prices catalog.Prices) Contribution
}

// BaseOverrider marks handlers that may replace the base price. They must be
// registered before every other handler.
type BaseOverrider interface {
	OverridesBase() bool
}

// Contribution is what a handler adds to the running price.
type Contribution struct {
	Value      float64
	IsCosmetic bool
}

// Accumulator threads the running price and audit log through the chain.
type Accumulator struct {
	BasePrice   float64
	Price       float64
	BaseSource  string
	Calculation []model.Calculation

	sealed bool
}

// newAccumulator starts a run at the catalog price of the bare item.
func newAccumulator(item *model.Item, prices catalog.Prices) *Accumulator {
	acc := &Accumulator{Calculation: make([]model.Calculation, 0, 8)}
	if item.SkyblockID == "" {
		return acc
	}
	if p, ok := prices.TryGetPrice(item.SkyblockID); ok {
		acc.BasePrice = p
		acc.Price = p
		acc.BaseSource = item.SkyblockID
	}
	return acc
}

// Record appends entry to the audit log and returns its value. Non-finite or
// zero-valued entries are not recorded since they mean "did not fire".
func (a *Accumulator) Record(entry model.Calculation) float64 {
	if !finite(entry.Value) || entry.Value == 0 {
		return 0
	}
	a.Calculation = append(a.Calculation, entry)
	return entry.Value
}

// OverrideBase replaces the base price and shifts the running price by the
// same delta. It is refused once the base stage has finished.
func (a *Accumulator) OverrideBase(base float64, source string) bool {
	if a.sealed || !finite(base) || base < 0 {
		return false
	}
	a.Price += base - a.BasePrice
	a.BasePrice = base
	a.BaseSource = source
	return true
}

// Sealed reports whether the base price is frozen.
func (a *Accumulator) Sealed() bool { return a.sealed }

func (a *Accumulator) seal() { a.sealed = true }

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
