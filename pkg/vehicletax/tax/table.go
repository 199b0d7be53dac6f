// Package tax holds the tiered rate schedule and the discount rules applied
// to a vehicle's base tax.
package tax

import (
	"errors"
	"fmt"

	"github.com/nekruzvatanshoev/vehicletax/pkg/vehicletax/dal"
)

// ErrOverlappingTiers is returned by NewTable in Strict mode.
var ErrOverlappingTiers = errors.New("overlapping tax tiers")

// Mode selects how a Table treats tiers whose ranges intersect.
type Mode int

const (
	// LastMatch accepts overlapping tiers; the last matching tier in load
	// order decides the rate.
	LastMatch Mode = iota
	// Strict rejects overlapping tiers when the table is built.
	Strict
)

func (m Mode) String() string {
	switch m {
	case LastMatch:
		return "last-match"
	case Strict:
		return "strict"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Table answers which percentage applies to a price.
type Table struct {
	tiers []dal.TaxTier
	mode  Mode
}

// NewTable builds a table from tiers in load order.
func NewTable(tiers []dal.TaxTier, mode Mode) (*Table, error) {
	const operation = "tax.NewTable"

	for _, t := range tiers {
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", operation, &dal.LoadError{Kind: dal.ErrFormat, Err: err})
		}
	}

	if mode == Strict {
		for i := range tiers {
			for j := i + 1; j < len(tiers); j++ {
				if tiers[i].Overlaps(tiers[j]) {
					return nil, fmt.Errorf("%s: %w", operation, &dal.LoadError{
						Kind:   dal.ErrFormat,
						Reason: fmt.Sprintf("tiers %q and %q", tiers[i].Key, tiers[j].Key),
						Err:    ErrOverlappingTiers,
					})
				}
			}
		}
	}

	return &Table{
		tiers: append([]dal.TaxTier(nil), tiers...),
		mode:  mode,
	}, nil
}

// LoadTable reads the rate file at path and builds a table from it.
func LoadTable(path string, mode Mode) (*Table, error) {
	tiers, err := dal.LoadRates(path)
	if err != nil {
		return nil, err
	}
	table, err := NewTable(tiers, mode)
	if err != nil {
		return nil, fmt.Errorf("tax.LoadTable: %s: %w", path, err)
	}
	return table, nil
}

// RateFor returns the percentage that applies to price. When several tiers
// match, the one loaded last wins. A price no tier matches gets 0.
func (t *Table) RateFor(price float64) float64 {
	rate := 0.0
	for _, tier := range t.tiers {
		if tier.Matches(price) {
			rate = tier.Percent
		}
	}
	return rate
}

// Tiers returns a copy of the tiers in lookup order.
func (t *Table) Tiers() []dal.TaxTier {
	return append([]dal.TaxTier(nil), t.tiers...)
}

func (t *Table) Mode() Mode { return t.mode }

func (t *Table) Len() int { return len(t.tiers) }
