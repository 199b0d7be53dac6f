// Package calculator navigates a vehicle catalog and computes the ownership
// tax of the current vehicle.
//
// A Calculator is not safe for concurrent use: navigation and the searches
// that move the cursor must be serialized by the caller.
package calculator

import (
	"errors"
	"fmt"

	"github.com/nekruzvatanshoev/vehicletax/pkg/vehicletax/dal"
	"github.com/nekruzvatanshoev/vehicletax/pkg/vehicletax/tax"
	"go.uber.org/zap"
)

// Default data file locations.
const (
	DefaultCatalogPath = "data/vehiculos.txt"
	DefaultRatesPath   = "data/impuestos.properties"
)

// Options configures a Calculator.
type Options struct {
	CatalogPath string
	RatesPath   string
	// RateMode decides whether overlapping tiers are accepted.
	RateMode tax.Mode
	// LegacyYearSentinel makes FindOldest ignore vehicles from year 3000 on.
	LegacyYearSentinel bool
	Discounts          tax.Policy
	Input              InputProvider
	Logger             *zap.Logger
}

// DefaultOptions returns the options used by the command line tools.
func DefaultOptions() Options {
	return Options{
		CatalogPath: DefaultCatalogPath,
		RatesPath:   DefaultRatesPath,
		RateMode:    tax.LastMatch,
	}
}

// Calculator owns the catalog, the rate table and the cursor.
type Calculator struct {
	vehicles []*dal.Vehicle
	rates    *tax.Table
	pos      int

	legacyYearSentinel bool
	policy             tax.Policy
	input              InputProvider
	log                *zap.Logger
}

// Load reads the catalog and rate files named in opts and returns a
// Calculator positioned on the first vehicle.
func Load(opts Options) (*Calculator, error) {
	const operation = "calculator.Load"

	vehicles, err := dal.LoadCatalog(opts.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("%s: load catalog: %w", operation, err)
	}

	rates, err := tax.LoadTable(opts.RatesPath, opts.RateMode)
	if err != nil {
		return nil, fmt.Errorf("%s: load rates: %w", operation, err)
	}

	return New(vehicles, rates, opts)
}

// New returns a Calculator over vehicles. The catalog must not be empty.
// File paths in opts are ignored.
func New(vehicles []*dal.Vehicle, rates *tax.Table, opts Options) (*Calculator, error) {
	if len(vehicles) == 0 {
		return nil, &dal.LoadError{Kind: dal.ErrFormat, Reason: "empty catalog"}
	}
	if rates == nil {
		return nil, errors.New("calculator.New: nil rate table")
	}

	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	c := &Calculator{
		vehicles:           append([]*dal.Vehicle(nil), vehicles...),
		rates:              rates,
		legacyYearSentinel: opts.LegacyYearSentinel,
		policy:             opts.Discounts,
		input:              opts.Input,
		log:                log,
	}

	log.Info("calculator ready",
		zap.Int("vehicles", len(c.vehicles)),
		zap.Int("tiers", rates.Len()),
		zap.Stringer("rate_mode", rates.Mode()))

	return c, nil
}

// SetInputProvider replaces the provider used by PromptBrand and PromptLine.
func (c *Calculator) SetInputProvider(input InputProvider) {
	c.input = input
}

// Current returns the vehicle under the cursor.
func (c *Calculator) Current() *dal.Vehicle {
	return c.vehicles[c.pos]
}

// Position returns the cursor index.
func (c *Calculator) Position() int { return c.pos }

// Len returns the number of vehicles in the catalog.
func (c *Calculator) Len() int { return len(c.vehicles) }

// Vehicles returns the catalog in load order.
func (c *Calculator) Vehicles() []*dal.Vehicle {
	return append([]*dal.Vehicle(nil), c.vehicles...)
}

// Rates returns the rate table.
func (c *Calculator) Rates() *tax.Table { return c.rates }

// First moves to the first vehicle. It fails when the cursor is already there.
func (c *Calculator) First() (*dal.Vehicle, error) {
	if c.pos == 0 {
		return nil, &NavigationError{Op: "first", Reason: ReasonAlreadyFirst}
	}
	return c.moveTo(0), nil
}

// Previous moves one vehicle back.
func (c *Calculator) Previous() (*dal.Vehicle, error) {
	if c.pos == 0 {
		return nil, &NavigationError{Op: "previous", Reason: ReasonAtFirst}
	}
	return c.moveTo(c.pos - 1), nil
}

// Next moves one vehicle forward.
func (c *Calculator) Next() (*dal.Vehicle, error) {
	if c.pos == len(c.vehicles)-1 {
		return nil, &NavigationError{Op: "next", Reason: ReasonAtLast}
	}
	return c.moveTo(c.pos + 1), nil
}

// Last moves to the last vehicle. It fails when the cursor is already there.
func (c *Calculator) Last() (*dal.Vehicle, error) {
	if c.pos == len(c.vehicles)-1 {
		return nil, &NavigationError{Op: "last", Reason: ReasonAlreadyLast}
	}
	return c.moveTo(len(c.vehicles) - 1), nil
}

// Select moves the cursor to index i.
func (c *Calculator) Select(i int) (*dal.Vehicle, error) {
	if i < 0 || i >= len(c.vehicles) {
		return nil, &NavigationError{
			Op:     "select",
			Reason: fmt.Sprintf("%s: %d not in [0, %d)", ReasonOutOfRange, i, len(c.vehicles)),
		}
	}
	return c.moveTo(i), nil
}

func (c *Calculator) moveTo(i int) *dal.Vehicle {
	c.log.Debug("cursor moved", zap.Int("from", c.pos), zap.Int("to", i))
	c.pos = i
	return c.vehicles[i]
}

// Rate returns the percentage that applies to the current vehicle.
func (c *Calculator) Rate() float64 {
	return c.rates.RateFor(c.Current().Price())
}

// BaseTax returns the current vehicle's tax before discounts.
func (c *Calculator) BaseTax() float64 {
	return tax.Base(c.rates, c.Current().Price())
}

// ComputeTax returns the tax owed for the current vehicle with the selected
// discounts applied.
func (c *Calculator) ComputeTax(d tax.Discounts) float64 {
	return c.policy.Apply(c.BaseTax(), d)
}
