package impact

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dayimpact/ecocoach/internal/factors"
)

func TestCompareToBenchmark(t *testing.T) {
	tests := []struct {
		name      string
		category  factors.Category
		co2eKg    float64
		waterL    float64
		wantCO2e  float64
		wantWater float64
	}{
		{
			name:      "double the mobility average",
			category:  factors.CategoryMobility,
			co2eKg:    7.0,
			waterL:    8.0,
			wantCO2e:  100.0,
			wantWater: 0.0,
		},
		{
			name:      "half the mobility average",
			category:  factors.CategoryMobility,
			co2eKg:    1.75,
			waterL:    4.0,
			wantCO2e:  -50.0,
			wantWater: -50.0,
		},
		{
			name:     "zero water benchmark reports zero deviation",
			category: factors.CategoryHomeEnergy,
			co2eKg:   2.8,
			waterL:   100,
			// home_energy tracks no water; the deviation is undefined and
			// reported as 0.
			wantCO2e:  0.0,
			wantWater: 0.0,
		},
		{
			name:      "unknown category has zero benchmarks",
			category:  factors.Category("space_travel"),
			co2eKg:    100,
			waterL:    100,
			wantCO2e:  0,
			wantWater: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CompareToBenchmark(tt.category, tt.co2eKg, tt.waterL)
			assert.InDelta(t, tt.wantCO2e, got.CO2eVsAvgPercent, 1e-9)
			assert.InDelta(t, tt.wantWater, got.WaterVsAvgPercent, 1e-9)
		})
	}
}

func TestCategoryBenchmark(t *testing.T) {
	b := CategoryBenchmark(factors.CategoryPurchase)
	assert.InDelta(t, 4.2, b.AvgDailyCO2eKg, 1e-9)
	assert.InDelta(t, 2500.0, b.AvgDailyWaterL, 1e-9)
	assert.NotEmpty(t, b.Description)

	zero := CategoryBenchmark(factors.Category("unknown"))
	assert.Zero(t, zero.AvgDailyCO2eKg)
}
