package calculator

import (
	"strings"

	"github.com/nekruzvatanshoev/vehicletax/pkg/vehicletax/dal"
	"go.uber.org/zap"
)

// Prompt texts and defaults used by PromptBrand and PromptLine.
const (
	BrandPrompt  = "Brand"
	BrandDefault = "Mazda"
	LinePrompt   = "Line"
)

// yearSentinel is the starting minimum of the historical oldest-vehicle scan.
const yearSentinel = 3000

// FindMostExpensive returns the vehicle with the highest price, the first one
// on ties. The cursor does not move.
func (c *Calculator) FindMostExpensive() *dal.Vehicle {
	best := c.vehicles[0]
	for _, v := range c.vehicles[1:] {
		if v.Price() > best.Price() {
			best = v
		}
	}
	return best
}

// FindByBrand returns the last vehicle whose brand equals query, ignoring
// case, or nil. The cursor does not move.
func (c *Calculator) FindByBrand(query string) *dal.Vehicle {
	var found *dal.Vehicle
	for _, v := range c.vehicles {
		if strings.EqualFold(query, v.Brand()) {
			found = v
		}
	}
	return found
}

// FindByLine returns the first vehicle whose line equals query, ignoring
// case, and moves the cursor to it. On a miss it returns nil and the cursor
// stays put.
func (c *Calculator) FindByLine(query string) *dal.Vehicle {
	for i, v := range c.vehicles {
		if strings.EqualFold(query, v.Line()) {
			return c.moveTo(i)
		}
	}
	return nil
}

// FindOldest moves the cursor to the vehicle with the smallest model year and
// returns it. Ties go to the first occurrence.
//
// With LegacyYearSentinel set, vehicles from year 3000 on are never selected,
// and a catalog holding only such vehicles yields nil without moving.
func (c *Calculator) FindOldest() *dal.Vehicle {
	idx := -1
	oldest := 0
	if c.legacyYearSentinel {
		oldest = yearSentinel
	}

	for i, v := range c.vehicles {
		year := v.YearInt()
		if (idx < 0 && !c.legacyYearSentinel) || year < oldest {
			idx, oldest = i, year
		}
	}

	if idx < 0 {
		return nil
	}
	return c.moveTo(idx)
}

// AveragePrice returns the mean price of the catalog.
func (c *Calculator) AveragePrice() float64 {
	sum := 0.0
	for _, v := range c.vehicles {
		sum += v.Price()
	}
	return sum / float64(len(c.vehicles))
}

// PromptBrand asks the input provider for a brand and searches for it.
// Without a provider, or when the user cancels, nothing is scanned and nil
// is returned.
func (c *Calculator) PromptBrand() *dal.Vehicle {
	query, ok := c.prompt(BrandPrompt, BrandDefault)
	if !ok {
		return nil
	}
	return c.FindByBrand(query)
}

// PromptLine asks the input provider for a line and searches for it.
func (c *Calculator) PromptLine() *dal.Vehicle {
	query, ok := c.prompt(LinePrompt, "")
	if !ok {
		return nil
	}
	return c.FindByLine(query)
}

func (c *Calculator) prompt(text, def string) (string, bool) {
	if c.input == nil {
		c.log.Debug("no input provider", zap.String("prompt", text))
		return "", false
	}
	query, ok := c.input.PromptText(text, def)
	if !ok {
		c.log.Debug("prompt cancelled", zap.String("prompt", text))
	}
	return query, ok
}
