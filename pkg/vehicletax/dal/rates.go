package dal

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/magiconair/properties"
)

// CountKey is the rate file entry that holds the number of tiers. It is a
// hint only and never becomes a tier.
const CountKey = "numero.rangos"

// TaxTier maps the price range (Min, Max] to a tax percentage.
type TaxTier struct {
	Key     string  `json:"key,omitempty"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Percent float64 `json:"percent"`
}

// Matches reports whether price falls inside the tier. The lower bound is
// exclusive and the upper bound inclusive.
func (t TaxTier) Matches(price float64) bool {
	return price > t.Min && price <= t.Max
}

// Overlaps reports whether two tiers share at least one price.
func (t TaxTier) Overlaps(o TaxTier) bool {
	return t.Min < o.Max && o.Min < t.Max
}

// Validate checks that the tier is well formed.
func (t TaxTier) Validate() error {
	for _, f := range []float64{t.Min, t.Max, t.Percent} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("tier %q: bounds and percent must be finite", t.Key)
		}
	}
	if t.Min >= t.Max {
		return fmt.Errorf("tier %q: min %v must be lower than max %v", t.Key, t.Min, t.Max)
	}
	if t.Percent < 0 {
		return fmt.Errorf("tier %q: negative percent %v", t.Key, t.Percent)
	}
	return nil
}

// LoadRates reads the tax tiers of the rate file at path.
func LoadRates(path string) ([]TaxTier, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fileError(path, err)
	}

	tiers, err := ReadRates(buf)
	if err != nil {
		return nil, withPath(path, err)
	}
	return tiers, nil
}

// ReadRates parses a properties document whose entries are min,max,percent
// triples. Tiers are returned in the order their keys appear in the document;
// a repeated key keeps its last value.
func ReadRates(buf []byte) ([]TaxTier, error) {
	loader := &properties.Loader{Encoding: properties.UTF8, DisableExpansion: true}
	p, err := loader.LoadBytes(buf)
	if err != nil {
		return nil, formatError(0, "invalid properties document", err)
	}

	var tiers []TaxTier
	for _, key := range p.Keys() {
		if key == CountKey {
			continue
		}
		value, _ := p.Get(key)
		tier, err := parseTier(key, value)
		if err != nil {
			return nil, err
		}
		tiers = append(tiers, tier)
	}
	return tiers, nil
}

func parseTier(key, value string) (TaxTier, error) {
	parts := strings.Split(value, ",")
	if len(parts) != 3 {
		return TaxTier{}, formatError(0, fmt.Sprintf("tier %q: expected min,max,percent, got %q", key, value), nil)
	}

	var nums [3]float64
	for i, part := range parts {
		n, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return TaxTier{}, formatError(0, fmt.Sprintf("tier %q: invalid number %q", key, part), err)
		}
		nums[i] = n
	}

	tier := TaxTier{Key: key, Min: nums[0], Max: nums[1], Percent: nums[2]}
	if err := tier.Validate(); err != nil {
		return TaxTier{}, formatError(0, "", err)
	}
	return tier, nil
}
