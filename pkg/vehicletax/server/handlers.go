package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/nekruzvatanshoev/vehicletax/pkg/vehicletax/calculator"
	"github.com/nekruzvatanshoev/vehicletax/pkg/vehicletax/dal"
	"github.com/nekruzvatanshoev/vehicletax/pkg/vehicletax/tax"
	"go.uber.org/zap"
)

// VehicleResponse defines the response for any single vehicle lookup
type VehicleResponse struct {
	Position int          `json:"position"`
	Vehicle  *dal.Vehicle `json:"vehicle"`
}

// CatalogResponse defines the response of the catalog listing
type CatalogResponse struct {
	Position int            `json:"position"`
	Vehicles []*dal.Vehicle `json:"vehicles"`
}

// TaxResponse defines the response of a tax computation
type TaxResponse struct {
	Position  int           `json:"position"`
	Vehicle   *dal.Vehicle  `json:"vehicle"`
	Rate      float64       `json:"rate"`
	Base      float64       `json:"base"`
	Discounts tax.Discounts `json:"discounts"`
	Total     float64       `json:"total"`
}

// RatesResponse defines the response of the rate table listing
type RatesResponse struct {
	Mode  string        `json:"mode"`
	Tiers []dal.TaxTier `json:"tiers"`
}

// ErrorResponse defines the body sent with any non-2xx status
type ErrorResponse struct {
	Error string `json:"error"`
}

// GetVehicles defines a GET handler listing the catalog
func (h *httpServer) GetVehicles(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	resp := CatalogResponse{Position: h.calc.Position(), Vehicles: h.calc.Vehicles()}
	h.mu.Unlock()

	h.writeJSON(w, http.StatusOK, resp)
}

// GetCurrent defines a GET handler returning the current vehicle
func (h *httpServer) GetCurrent(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	resp := VehicleResponse{Position: h.calc.Position(), Vehicle: h.calc.Current()}
	h.mu.Unlock()

	h.writeJSON(w, http.StatusOK, resp)
}

// Move defines a POST handler for the first, previous, next and last commands
func (h *httpServer) Move(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	var (
		v   *dal.Vehicle
		err error
	)
	switch mux.Vars(r)["move"] {
	case "first":
		v, err = h.calc.First()
	case "previous":
		v, err = h.calc.Previous()
	case "next":
		v, err = h.calc.Next()
	case "last":
		v, err = h.calc.Last()
	}
	pos := h.calc.Position()
	h.mu.Unlock()

	if err != nil {
		var navErr *calculator.NavigationError
		if errors.As(err, &navErr) {
			h.log.Debug("navigation refused", zap.String("op", navErr.Op), zap.String("reason", navErr.Reason))
			writeError(w, http.StatusConflict, navErr.Reason)
			return
		}
		h.log.Error("navigation failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, VehicleResponse{Position: pos, Vehicle: v})
}

// GetMostExpensive defines a GET handler returning the most expensive vehicle
func (h *httpServer) GetMostExpensive(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	v := h.calc.FindMostExpensive()
	pos := h.calc.Position()
	h.mu.Unlock()

	h.writeJSON(w, http.StatusOK, VehicleResponse{Position: pos, Vehicle: v})
}

// SearchByBrand defines a GET handler looking a vehicle up by brand
func (h *httpServer) SearchByBrand(w http.ResponseWriter, r *http.Request) {
	brand, err := validateQuery(r.URL.Query(), "brand")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.mu.Lock()
	v := h.calc.FindByBrand(brand)
	pos := h.calc.Position()
	h.mu.Unlock()

	h.writeVehicle(w, pos, v, fmt.Sprintf("no vehicle of brand %q", brand))
}

// SearchByLine defines a POST handler moving to the first vehicle of a line
func (h *httpServer) SearchByLine(w http.ResponseWriter, r *http.Request) {
	line, err := validateQuery(r.URL.Query(), "line")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.mu.Lock()
	v := h.calc.FindByLine(line)
	pos := h.calc.Position()
	h.mu.Unlock()

	h.writeVehicle(w, pos, v, fmt.Sprintf("no vehicle of line %q", line))
}

// FindOldest defines a POST handler moving to the oldest vehicle
func (h *httpServer) FindOldest(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	v := h.calc.FindOldest()
	pos := h.calc.Position()
	h.mu.Unlock()

	h.writeVehicle(w, pos, v, "no eligible vehicle")
}

// GetAveragePrice defines a GET handler returning the mean catalog price
func (h *httpServer) GetAveragePrice(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	avg := h.calc.AveragePrice()
	h.mu.Unlock()

	h.writeJSON(w, http.StatusOK, map[string]float64{"average_price": avg})
}

// GetTax defines a GET handler computing the tax of the current vehicle
func (h *httpServer) GetTax(w http.ResponseWriter, r *http.Request) {
	discounts, err := validateDiscounts(r.URL.Query())
	if err != nil {
		h.log.Debug("discount validation failed", zap.Error(err))
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.mu.Lock()
	resp := TaxResponse{
		Position:  h.calc.Position(),
		Vehicle:   h.calc.Current(),
		Rate:      h.calc.Rate(),
		Base:      h.calc.BaseTax(),
		Discounts: discounts,
		Total:     h.calc.ComputeTax(discounts),
	}
	h.mu.Unlock()

	h.writeJSON(w, http.StatusOK, resp)
}

// GetRates defines a GET handler listing the tax tiers in lookup order
func (h *httpServer) GetRates(w http.ResponseWriter, r *http.Request) {
	rates := h.calc.Rates()
	h.writeJSON(w, http.StatusOK, RatesResponse{Mode: rates.Mode().String(), Tiers: rates.Tiers()})
}

func validateQuery(vars url.Values, key string) (string, error) {
	if !vars.Has(key) {
		return "", fmt.Errorf("missing query parameter %q", key)
	}
	return vars.Get(key), nil
}

func validateDiscounts(vars url.Values) (tax.Discounts, error) {
	var d tax.Discounts
	flags := []struct {
		key string
		dst *bool
	}{
		{"prompt_payment", &d.PromptPayment},
		{"public_service", &d.PublicService},
		{"account_transfer", &d.AccountTransfer},
	}
	for _, f := range flags {
		value := vars.Get(f.key)
		if value == "" {
			continue
		}
		b, err := strconv.ParseBool(value)
		if err != nil {
			return tax.Discounts{}, fmt.Errorf("%s must be a boolean: %q", f.key, value)
		}
		*f.dst = b
	}
	return d, nil
}

func (h *httpServer) writeVehicle(w http.ResponseWriter, pos int, v *dal.Vehicle, notFound string) {
	if v == nil {
		writeError(w, http.StatusNotFound, notFound)
		return
	}
	h.writeJSON(w, http.StatusOK, VehicleResponse{Position: pos, Vehicle: v})
}

func (h *httpServer) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.log.Error("encode response", zap.Error(err))
	}
}

func notFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "no route for "+r.URL.Path)
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, r.Method+" not allowed on "+r.URL.Path)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: msg})
}
