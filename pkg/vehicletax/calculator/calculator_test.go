package calculator

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nekruzvatanshoev/vehicletax/pkg/vehicletax/dal"
	"github.com/nekruzvatanshoev/vehicletax/pkg/vehicletax/tax"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

var schedule = []dal.TaxTier{
	{Key: "rango1", Min: 0, Max: 30000000, Percent: 1.5},
	{Key: "rango2", Min: 30000000, Max: 70000000, Percent: 2.0},
	{Key: "rango3", Min: 70000000, Max: 200000000, Percent: 2.5},
}

func newCalculator(t *testing.T, opts Options, vehicles ...*dal.Vehicle) *Calculator {
	t.Helper()
	table, err := tax.NewTable(schedule, tax.Strict)
	require.NoError(t, err)
	if opts.Logger == nil {
		opts.Logger = zaptest.NewLogger(t)
	}
	c, err := New(vehicles, table, opts)
	require.NoError(t, err)
	return c
}

func fleet() []*dal.Vehicle {
	return []*dal.Vehicle{
		dal.NewVehicle("Mazda", "3", "2015", 45000000, "mazda3.jpg"),
		dal.NewVehicle("Chevrolet", "Spark", "2012", 18000000, "spark.jpg"),
		dal.NewVehicle("Renault", "Logan", "2010", 22000000, "logan.jpg"),
		dal.NewVehicle("mazda", "CX-5", "2019", 95000000, "cx5.jpg"),
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	catalog := filepath.Join(dir, "vehiculos.txt")
	rates := filepath.Join(dir, "impuestos.properties")
	require.NoError(t, os.WriteFile(catalog, []byte("2\nMazda,3,2015,50000000,a.jpg\nKia,Rio,2016,10000000,b.jpg\n"), 0o644))
	require.NoError(t, os.WriteFile(rates, []byte("numero.rangos=3\nr1=0,30000000,1.5\nr2=30000000,70000000,2.0\nr3=70000000,200000000,2.5\n"), 0o644))

	c, err := Load(Options{CatalogPath: catalog, RatesPath: rates, Logger: zaptest.NewLogger(t)})
	require.NoError(t, err)

	assert.Equal(t, 0, c.Position())
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, "Mazda", c.Current().Brand())
	assert.Equal(t, 1000000.0, c.ComputeTax(tax.Discounts{}))
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "vehiculos.txt")
	bad := filepath.Join(dir, "bad.txt")
	rates := filepath.Join(dir, "impuestos.properties")
	overlapping := filepath.Join(dir, "overlap.properties")
	require.NoError(t, os.WriteFile(good, []byte("1\nMazda,3,2015,1,a.jpg\n"), 0o644))
	require.NoError(t, os.WriteFile(bad, []byte("2\nMazda,3,2015,1,a.jpg\n"), 0o644))
	require.NoError(t, os.WriteFile(rates, []byte("r1=0,10,1\n"), 0o644))
	require.NoError(t, os.WriteFile(overlapping, []byte("r1=0,10,1\nr2=5,20,2\n"), 0o644))

	tests := []struct {
		name string
		opts Options
		kind error
	}{
		{name: "MissingCatalog", opts: Options{CatalogPath: filepath.Join(dir, "none.txt"), RatesPath: rates}, kind: dal.ErrFileIO},
		{name: "MissingRates", opts: Options{CatalogPath: good, RatesPath: filepath.Join(dir, "none.properties")}, kind: dal.ErrFileIO},
		{name: "ShortCatalog", opts: Options{CatalogPath: bad, RatesPath: rates}, kind: dal.ErrFormat},
		{name: "StrictOverlap", opts: Options{CatalogPath: good, RatesPath: overlapping, RateMode: tax.Strict}, kind: tax.ErrOverlappingTiers},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, err := Load(tc.opts)
			assert.Nil(t, c)
			assert.ErrorIs(t, err, tc.kind)
		})
	}

	c, err := Load(Options{CatalogPath: good, RatesPath: overlapping, RateMode: tax.LastMatch})
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())
}

func TestNewRejectsEmptyCatalog(t *testing.T) {
	table, err := tax.NewTable(schedule, tax.LastMatch)
	require.NoError(t, err)

	_, err = New(nil, table, Options{})
	assert.ErrorIs(t, err, dal.ErrFormat)

	_, err = New(fleet(), nil, Options{})
	assert.Error(t, err)
}

func TestNavigation(t *testing.T) {
	vehicles := fleet()
	c := newCalculator(t, Options{}, vehicles...)

	_, err := c.First()
	assertNavigationError(t, err, ReasonAlreadyFirst)
	_, err = c.Previous()
	assertNavigationError(t, err, ReasonAtFirst)
	assert.Equal(t, 0, c.Position())

	v, err := c.Next()
	require.NoError(t, err)
	assert.Same(t, vehicles[1], v)

	v, err = c.Last()
	require.NoError(t, err)
	assert.Same(t, vehicles[3], v)
	assert.Equal(t, 3, c.Position())

	_, err = c.Last()
	assertNavigationError(t, err, ReasonAlreadyLast)
	_, err = c.Next()
	assertNavigationError(t, err, ReasonAtLast)
	assert.Equal(t, 3, c.Position())

	v, err = c.Previous()
	require.NoError(t, err)
	assert.Same(t, vehicles[2], v)

	v, err = c.First()
	require.NoError(t, err)
	assert.Same(t, vehicles[0], v)
	assert.Same(t, vehicles[0], c.Current())
}

func TestNextThenPreviousRestoresPosition(t *testing.T) {
	vehicles := fleet()
	c := newCalculator(t, Options{}, vehicles...)

	for start := 0; start < len(vehicles)-1; start++ {
		_, err := c.Select(start)
		require.NoError(t, err)
		original := c.Current()

		_, err = c.Next()
		require.NoError(t, err)
		v, err := c.Previous()
		require.NoError(t, err)

		assert.Equal(t, start, c.Position())
		assert.Same(t, original, v)
	}
}

func TestSingleVehicleCatalog(t *testing.T) {
	c := newCalculator(t, Options{}, dal.NewVehicle("Kia", "Rio", "2016", 1, ""))

	for _, move := range []func() (*dal.Vehicle, error){c.First, c.Previous, c.Next, c.Last} {
		_, err := move()
		assert.ErrorIs(t, err, ErrNavigation)
	}
	assert.Equal(t, 0, c.Position())
}

func TestSelect(t *testing.T) {
	vehicles := fleet()
	c := newCalculator(t, Options{}, vehicles...)

	v, err := c.Select(2)
	require.NoError(t, err)
	assert.Same(t, vehicles[2], v)

	for _, i := range []int{-1, len(vehicles)} {
		_, err = c.Select(i)
		assert.ErrorIs(t, err, ErrNavigation)
		assert.Equal(t, 2, c.Position())
	}
}

func assertNavigationError(t *testing.T, err error, reason string) {
	t.Helper()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNavigation)

	var navErr *NavigationError
	require.ErrorAs(t, err, &navErr)
	assert.Equal(t, reason, navErr.Reason)
	assert.True(t, strings.HasSuffix(err.Error(), reason))
}

func TestComputeTax(t *testing.T) {
	tests := []struct {
		name      string
		price     float64
		discounts tax.Discounts
		want      float64
	}{
		{name: "NoDiscount", price: 50000000, want: 1000000},
		{name: "PromptPayment", price: 50000000, discounts: tax.Discounts{PromptPayment: true}, want: 900000},
		{name: "AllDiscounts", price: 50000000, discounts: tax.Discounts{PromptPayment: true, PublicService: true, AccountTransfer: true}, want: 807500},
		{name: "TopTierUpperBound", price: 200000000, want: 5000000},
		{name: "ZeroPrice", price: 0, want: 0},
		{name: "NegativeAfterDeduction", price: 1000000, discounts: tax.Discounts{PublicService: true}, want: 15000 - 50000},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := newCalculator(t, Options{}, dal.NewVehicle("Mazda", "3", "2015", tc.price, ""))
			assert.InDelta(t, tc.want, c.ComputeTax(tc.discounts), 1e-6)
		})
	}
}

func TestComputeTaxIdentities(t *testing.T) {
	c := newCalculator(t, Options{}, fleet()...)

	for i := 0; i < c.Len(); i++ {
		_, err := c.Select(i)
		require.NoError(t, err)

		p := c.Current().Price()
		base := c.ComputeTax(tax.Discounts{})
		assert.Equal(t, p*c.Rate()/100, base)
		assert.Equal(t, base, c.BaseTax())
		assert.InDelta(t, 0.9*base, c.ComputeTax(tax.Discounts{PromptPayment: true}), 1e-6)
		assert.InDelta(t, 0.95*base, c.ComputeTax(tax.Discounts{AccountTransfer: true}), 1e-6)
		assert.InDelta(t, (0.9*base-50000)*0.95,
			c.ComputeTax(tax.Discounts{PromptPayment: true, PublicService: true, AccountTransfer: true}), 1e-6)
	}
}

func TestComputeTaxClampPolicy(t *testing.T) {
	c := newCalculator(t, Options{Discounts: tax.Policy{ClampAtZero: true}},
		dal.NewVehicle("Mazda", "3", "2015", 1000000, ""))

	assert.Equal(t, 0.0, c.ComputeTax(tax.Discounts{PublicService: true}))
}

func TestComputeTaxDoesNotMoveCursor(t *testing.T) {
	c := newCalculator(t, Options{}, fleet()...)
	_, err := c.Select(2)
	require.NoError(t, err)

	c.ComputeTax(tax.Discounts{PromptPayment: true})
	assert.Equal(t, 2, c.Position())
}

func TestVehiclesIsACopy(t *testing.T) {
	vehicles := fleet()
	c := newCalculator(t, Options{}, vehicles...)

	got := c.Vehicles()
	got[0] = nil
	assert.Same(t, vehicles[0], c.Current())
	assert.Equal(t, 3, c.Rates().Len())
}
