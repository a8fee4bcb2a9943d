package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dayimpact/ecocoach/internal/factors"
	"github.com/dayimpact/ecocoach/internal/impact"
)

func mustRecord(t *testing.T, category factors.Category, item string, amount float64) impact.ActionRecord {
	t.Helper()
	record, err := impact.NewActionRecord(category, item, amount, "", "")
	require.NoError(t, err)
	return record
}

func TestGetEmptyRecordsReturnsDefaults(t *testing.T) {
	got := Get(nil, 3)

	require.Len(t, got, 3)
	assert.Equal(t, 1, got[0].Priority)
	assert.Equal(t, 2, got[1].Priority)
	assert.Equal(t, 3, got[2].Priority)
	assert.Equal(t, "Try walking or cycling for one trip today", got[0].Action)
}

func TestGetZeroMaxCount(t *testing.T) {
	records := []impact.ActionRecord{mustRecord(t, factors.CategoryMobility, "taxi_ice", 5)}
	assert.Empty(t, Get(records, 0))
}

func TestGetAggregatesRepeatedActions(t *testing.T) {
	records := []impact.ActionRecord{
		mustRecord(t, factors.CategoryMobility, "taxi_ice", 4),
		mustRecord(t, factors.CategoryMobility, "taxi_ice", 6),
	}

	got := Get(records, 3)
	require.Len(t, got, 3)

	// Two taxi rules fire on the aggregated 10km. The subway switch
	// saves more co2e, so it ranks first.
	assert.Equal(t, "Use public transit for trips under 5km", got[0].Action)
	assert.InDelta(t, 1.75, got[0].EstimatedSavingsCO2eKg, 1e-9) // (0.21-0.035)*10
	assert.InDelta(t, 4.5, got[0].EstimatedSavingsWaterL, 1e-9)  // (0.5-0.05)*10
	assert.InDelta(t, 10.0, got[0].TriggerAmount, 1e-9)
	assert.Equal(t, 1, got[0].Priority)

	assert.Equal(t, "Switch to EV taxi for your next ride", got[1].Action)
	assert.InDelta(t, 1.6, got[1].EstimatedSavingsCO2eKg, 1e-9) // (0.21-0.05)*10
	assert.InDelta(t, 2.0, got[1].EstimatedSavingsWaterL, 1e-9) // (0.5-0.3)*10
	assert.Equal(t, 2, got[1].Priority)

	// No third rule matches; the list is padded with the first default.
	assert.Equal(t, "Try walking or cycling for one trip today", got[2].Action)
	assert.Equal(t, 3, got[2].Priority)
}

func TestGetRanksBySavings(t *testing.T) {
	records := []impact.ActionRecord{
		mustRecord(t, factors.CategoryPurchase, "beef_meal", 2),
	}

	got := Get(records, 3)
	require.Len(t, got, 3)

	// Vegetarian saves (6.5-0.39)*2 = 12.22, chicken (6.5-1.1)*2 = 10.8.
	assert.Equal(t, "Explore a vegetarian meal option", got[0].Action)
	assert.InDelta(t, 12.22, got[0].EstimatedSavingsCO2eKg, 1e-9)
	assert.Equal(t, "Try chicken or fish for one meal tomorrow", got[1].Action)
	assert.InDelta(t, 10.8, got[1].EstimatedSavingsCO2eKg, 1e-9)
}

func TestGetBehavioralRuleUsesAggregateFootprint(t *testing.T) {
	records := []impact.ActionRecord{
		mustRecord(t, factors.CategoryPurchase, "coffee", 2),
	}

	got := Get(records, 1)
	require.Len(t, got, 1)

	// Coffee has no priced alternative; savings are 20% of the 0.56 kg
	// aggregate footprint.
	assert.Equal(t, "Bring a reusable cup for your coffee", got[0].Action)
	assert.InDelta(t, 0.112, got[0].EstimatedSavingsCO2eKg, 1e-9)
	assert.Zero(t, got[0].EstimatedSavingsWaterL)
}

func TestGetDeduplicatesActions(t *testing.T) {
	records := []impact.ActionRecord{
		mustRecord(t, factors.CategoryMobility, "taxi_ice", 3),
		mustRecord(t, factors.CategoryMobility, "Taxi_ICE", 3),
	}

	got := Get(records, 5)
	actions := make(map[string]int)
	for _, rec := range got {
		actions[rec.Action]++
	}
	for action, count := range actions {
		assert.Equal(t, 1, count, "action %q appears more than once", action)
	}
}

func TestGetTruncatesToMaxCount(t *testing.T) {
	records := []impact.ActionRecord{
		mustRecord(t, factors.CategoryMobility, "taxi_ice", 10),
		mustRecord(t, factors.CategoryPurchase, "beef_meal", 2),
		mustRecord(t, factors.CategoryPurchase, "bottled_water_500ml", 3),
	}

	got := Get(records, 2)
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].Priority)
	assert.Equal(t, 2, got[1].Priority)
	assert.GreaterOrEqual(t, got[0].EstimatedSavingsCO2eKg, got[1].EstimatedSavingsCO2eKg)
}

func TestDefaults(t *testing.T) {
	got := Defaults(5)
	require.Len(t, got, 5)
	for i, rec := range got {
		assert.Equal(t, i+1, rec.Priority)
		assert.NotEmpty(t, rec.Action)
		assert.NotEmpty(t, rec.Rationale)
	}

	assert.Len(t, Defaults(2), 2)
	assert.Len(t, Defaults(99), 5)
	assert.Empty(t, Defaults(0))
}

func TestRulesCoverKnownTriggers(t *testing.T) {
	rules := Rules()
	require.NotEmpty(t, rules)

	// Every priced alternative must resolve against the factor tables,
	// otherwise its savings silently degrade to zero.
	for _, rule := range rules {
		assert.True(t, rule.Category.Valid(), "rule %q has invalid category", rule.Action)
		_, err := factors.Get(rule.Category, rule.TriggerItem, "")
		assert.NoError(t, err, "trigger %q not in factor tables", rule.TriggerItem)
		if rule.AlternativeItem != "" {
			_, err := factors.Get(rule.Category, rule.AlternativeItem, "")
			assert.NoError(t, err, "alternative %q not in factor tables", rule.AlternativeItem)
		}
	}
}
