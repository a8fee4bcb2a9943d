package impact

import "github.com/dayimpact/ecocoach/internal/factors"

// Benchmark is the average daily footprint of a typical person in one
// category, used for "you vs. average" framing.
type Benchmark struct {
	AvgDailyCO2eKg float64 `json:"avg_daily_co2e_kg"`
	AvgDailyWaterL float64 `json:"avg_daily_water_l"`
	Description    string  `json:"description"`
}

// Comparison is the percentage deviation of an actual impact from the
// category benchmark. Positive means above average.
type Comparison struct {
	CO2eVsAvgPercent  float64 `json:"co2e_vs_avg_percent"`
	WaterVsAvgPercent float64 `json:"water_vs_avg_percent"`
	CO2eBenchmarkKg   float64 `json:"co2e_benchmark_kg"`
	WaterBenchmarkL   float64 `json:"water_benchmark_l"`
}

// Static per-category daily averages for Korea. These are framing
// constants, not measurements; revisit when the reference tables move to
// another region.
var categoryBenchmarks = map[factors.Category]Benchmark{ //nolint:gochecknoglobals // Immutable reference constants
	factors.CategoryMobility: {
		AvgDailyCO2eKg: 3.5,
		AvgDailyWaterL: 8.0,
		Description:    "Average Korean daily mobility footprint",
	},
	factors.CategoryPurchase: {
		AvgDailyCO2eKg: 4.2,
		AvgDailyWaterL: 2500,
		Description:    "Average Korean daily consumption footprint",
	},
	factors.CategoryHomeEnergy: {
		AvgDailyCO2eKg: 2.8,
		AvgDailyWaterL: 0,
		Description:    "Average Korean household daily energy footprint (per person)",
	},
}

// CategoryBenchmark returns the static benchmark for category. Unknown
// categories return a zero benchmark.
func CategoryBenchmark(category factors.Category) Benchmark {
	return categoryBenchmarks[category]
}

// CompareToBenchmark computes the percentage deviation of the given
// impacts from the category benchmark, rounded to one decimal. A zero
// benchmark makes the deviation undefined; the policy is to report 0.
func CompareToBenchmark(category factors.Category, co2eKg, waterL float64) Comparison {
	b := CategoryBenchmark(category)

	var co2ePct, waterPct float64
	if b.AvgDailyCO2eKg > 0 {
		co2ePct = roundTo((co2eKg/b.AvgDailyCO2eKg-1)*100, 1)
	}
	if b.AvgDailyWaterL > 0 {
		waterPct = roundTo((waterL/b.AvgDailyWaterL-1)*100, 1)
	}

	return Comparison{
		CO2eVsAvgPercent:  co2ePct,
		WaterVsAvgPercent: waterPct,
		CO2eBenchmarkKg:   b.AvgDailyCO2eKg,
		WaterBenchmarkL:   b.AvgDailyWaterL,
	}
}
