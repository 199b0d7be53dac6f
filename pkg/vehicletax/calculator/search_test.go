package calculator

import (
	"bytes"
	"strings"
	"testing"

	"github.com/nekruzvatanshoev/vehicletax/pkg/vehicletax/dal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindMostExpensive(t *testing.T) {
	vehicles := []*dal.Vehicle{
		dal.NewVehicle("Kia", "Rio", "2016", 10000000, ""),
		dal.NewVehicle("Mazda", "3", "2015", 50000000, ""),
		dal.NewVehicle("Ford", "Focus", "2014", 50000000, ""),
	}
	c := newCalculator(t, Options{}, vehicles...)

	assert.Same(t, vehicles[1], c.FindMostExpensive())
	assert.Equal(t, 0, c.Position())
}

func TestFindByBrand(t *testing.T) {
	vehicles := fleet()
	c := newCalculator(t, Options{}, vehicles...)

	tests := []struct {
		name  string
		query string
		want  *dal.Vehicle
	}{
		{name: "LastMatchIgnoringCase", query: "MAZDA", want: vehicles[3]},
		{name: "SingleMatch", query: "renault", want: vehicles[2]},
		{name: "NoMatch", query: "Tesla", want: nil},
		{name: "NoPartialMatch", query: "Maz", want: nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Same(t, tc.want, c.FindByBrand(tc.query))
			assert.Equal(t, 0, c.Position())
		})
	}
}

func TestFindByLine(t *testing.T) {
	vehicles := []*dal.Vehicle{
		dal.NewVehicle("Kia", "Rio", "2016", 1, ""),
		dal.NewVehicle("Mazda", "CX-5", "2019", 2, ""),
		dal.NewVehicle("Mazda", "cx-5", "2020", 3, ""),
	}
	c := newCalculator(t, Options{}, vehicles...)

	assert.Same(t, vehicles[1], c.FindByLine("Cx-5"))
	assert.Equal(t, 1, c.Position())

	assert.Nil(t, c.FindByLine("Logan"))
	assert.Equal(t, 1, c.Position())

	assert.Same(t, vehicles[0], c.FindByLine("rio"))
	assert.Equal(t, 0, c.Position())
}

func TestFindOldest(t *testing.T) {
	vehicles := []*dal.Vehicle{
		dal.NewVehicle("Mazda", "3", "2015", 1, ""),
		dal.NewVehicle("Ford", "Fiesta", "2008", 2, ""),
		dal.NewVehicle("Renault", "4", "2008", 3, ""),
		dal.NewVehicle("Kia", "Rio", "2016", 4, ""),
	}
	c := newCalculator(t, Options{}, vehicles...)

	assert.Same(t, vehicles[1], c.FindOldest())
	assert.Equal(t, 1, c.Position())
}

func TestFindOldestYearSentinel(t *testing.T) {
	vehicles := []*dal.Vehicle{
		dal.NewVehicle("Future", "A", "3050", 1, ""),
		dal.NewVehicle("Future", "B", "3001", 2, ""),
	}

	c := newCalculator(t, Options{}, vehicles...)
	assert.Same(t, vehicles[1], c.FindOldest())
	assert.Equal(t, 1, c.Position())

	legacy := newCalculator(t, Options{LegacyYearSentinel: true}, vehicles...)
	_, err := legacy.Last()
	require.NoError(t, err)
	assert.Nil(t, legacy.FindOldest())
	assert.Equal(t, 1, legacy.Position())

	mixed := newCalculator(t, Options{LegacyYearSentinel: true},
		dal.NewVehicle("Future", "A", "3050", 1, ""),
		dal.NewVehicle("Kia", "Rio", "2016", 2, ""),
	)
	assert.Equal(t, "Rio", mixed.FindOldest().Line())
}

func TestAveragePrice(t *testing.T) {
	vehicles := fleet()
	c := newCalculator(t, Options{}, vehicles...)

	avg := c.AveragePrice()
	assert.InDelta(t, (45000000.0+18000000+22000000+95000000)/4, avg, 1e-6)

	lo, hi := vehicles[0].Price(), vehicles[0].Price()
	for _, v := range vehicles {
		lo, hi = min(lo, v.Price()), max(hi, v.Price())
	}
	assert.GreaterOrEqual(t, avg, lo)
	assert.LessOrEqual(t, avg, hi)
}

type cannedInput struct {
	answers []string
	prompts []string
	defs    []string
}

func (c *cannedInput) PromptText(prompt, def string) (string, bool) {
	c.prompts = append(c.prompts, prompt)
	c.defs = append(c.defs, def)
	if len(c.answers) == 0 {
		return "", false
	}
	answer := c.answers[0]
	c.answers = c.answers[1:]
	return answer, true
}

func TestPromptBrand(t *testing.T) {
	vehicles := fleet()
	input := &cannedInput{answers: []string{"chevrolet"}}
	c := newCalculator(t, Options{Input: input}, vehicles...)

	assert.Same(t, vehicles[1], c.PromptBrand())
	assert.Equal(t, []string{BrandPrompt}, input.prompts)
	assert.Equal(t, []string{BrandDefault}, input.defs)

	assert.Nil(t, c.PromptBrand(), "cancelled prompt")
	assert.Equal(t, 0, c.Position())
}

func TestPromptLine(t *testing.T) {
	vehicles := fleet()
	c := newCalculator(t, Options{}, vehicles...)

	assert.Nil(t, c.PromptLine(), "no input provider")

	c.SetInputProvider(InputProviderFunc(func(prompt, def string) (string, bool) {
		return "logan", true
	}))
	assert.Same(t, vehicles[2], c.PromptLine())
	assert.Equal(t, 2, c.Position())
}

func TestConsolePromptText(t *testing.T) {
	var out bytes.Buffer
	console := NewConsole(strings.NewReader("Kia\n\n"), &out)

	text, ok := console.PromptText("Brand", "Mazda")
	assert.True(t, ok)
	assert.Equal(t, "Kia", text)

	text, ok = console.PromptText("Brand", "Mazda")
	assert.True(t, ok)
	assert.Equal(t, "Mazda", text)

	_, ok = console.PromptText("Line", "")
	assert.False(t, ok)

	assert.Equal(t, "Brand [Mazda]: Brand [Mazda]: Line: ", out.String())
}
