package dal

import (
	"encoding/json"
	"strconv"
)

// Vehicle is a single catalog entry. It is built by the catalog loader and
// never mutated afterwards; callers compare vehicles by pointer.
type Vehicle struct {
	brand string
	line  string
	year  string
	price float64
	image string
}

// NewVehicle returns a vehicle record
func NewVehicle(brand, line, year string, price float64, image string) *Vehicle {
	return &Vehicle{
		brand: brand,
		line:  line,
		year:  year,
		price: price,
		image: image,
	}
}

func (v *Vehicle) Brand() string { return v.brand }

func (v *Vehicle) Line() string { return v.line }

// Year returns the model year as it appears in the catalog file.
func (v *Vehicle) Year() string { return v.year }

// YearInt returns the model year as an integer. Catalog loading rejects rows
// whose year does not parse, so 0 is only seen for hand-built vehicles.
func (v *Vehicle) YearInt() int {
	year, err := strconv.Atoi(v.year)
	if err != nil {
		return 0
	}
	return year
}

func (v *Vehicle) Price() float64 { return v.price }

// Image returns the opaque image reference of the vehicle.
func (v *Vehicle) Image() string { return v.image }

// vehicleJSON defines the wire form of a vehicle
type vehicleJSON struct {
	Brand string  `json:"brand"`
	Line  string  `json:"line"`
	Year  string  `json:"year"`
	Price float64 `json:"price"`
	Image string  `json:"image,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (v *Vehicle) MarshalJSON() ([]byte, error) {
	return json.Marshal(vehicleJSON{
		Brand: v.brand,
		Line:  v.line,
		Year:  v.year,
		Price: v.price,
		Image: v.image,
	})
}
