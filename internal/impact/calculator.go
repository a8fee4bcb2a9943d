// Package impact turns action descriptors into quantitative environmental
// cost. It is pure computation layered on the factors repository: no
// state, no I/O, safe for concurrent use.
package impact

import (
	"math"
	"strings"

	"github.com/dayimpact/ecocoach/internal/factors"
)

// TimeOfDay qualifies energy consumption for tariff-style factor variants.
type TimeOfDay string

// Time-of-day values. Mobility and purchase actions default to standard.
const (
	TimeOfDayStandard TimeOfDay = "standard"
	TimeOfDayPeak     TimeOfDay = "peak"
	TimeOfDayOffPeak  TimeOfDay = "off_peak"
)

// Valid reports whether t is a known time-of-day value. The empty string
// is accepted and treated as standard.
func (t TimeOfDay) Valid() bool {
	switch t {
	case "", TimeOfDayStandard, TimeOfDayPeak, TimeOfDayOffPeak:
		return true
	}
	return false
}

const (
	// electricityItem is the home-energy item with time-of-day variants.
	electricityItem        = "electricity_kwh"
	electricityItemPeak    = "electricity_kwh_peak"
	electricityItemOffPeak = "electricity_kwh_offpeak"

	// co2ePrecision and waterPrecision are the fixed decimal places of
	// computed impacts. All persisted values carry this rounding.
	co2ePrecision  = 4
	waterPrecision = 2
)

// Calculate computes the environmental impact of one action.
//
// For home-energy electricity with a peak or off-peak time of day the
// item is substituted with the corresponding variant key before lookup;
// these are distinct factor entries, not numeric adjustments. The result
// is co2e in kg rounded to 4 decimals and water in liters rounded to 2.
//
// A failed factor resolution propagates unchanged (errors.Is with
// factors.ErrFactorNotFound); impact is never silently zero. Amount
// validation (> 0) is the caller's responsibility.
func Calculate(
	category factors.Category,
	item string,
	amount float64,
	subcategory string,
	timeOfDay TimeOfDay,
) (co2eKg, waterL float64, err error) {
	if category == factors.CategoryHomeEnergy && normalizedItem(item) == electricityItem {
		switch timeOfDay {
		case TimeOfDayPeak:
			item = electricityItemPeak
		case TimeOfDayOffPeak:
			item = electricityItemOffPeak
		}
	}

	factor, err := factors.Get(category, item, subcategory)
	if err != nil {
		return 0, 0, err
	}

	co2eKg = roundTo(factor.CO2ePerUnit*amount, co2ePrecision)
	waterL = roundTo(factor.WaterPerUnit*amount, waterPrecision)
	return co2eKg, waterL, nil
}

func normalizedItem(item string) string {
	return strings.ToLower(strings.TrimSpace(item))
}

// roundTo rounds v half-away-from-zero to the given decimal places.
func roundTo(v float64, places int) float64 {
	shift := math.Pow(10, float64(places))
	return math.Round(v*shift) / shift
}
