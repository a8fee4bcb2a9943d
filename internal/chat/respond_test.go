package chat

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

func TestGenerateResponseNoActions(t *testing.T) {
	reply := GenerateResponse(nil, nil)
	assert.Contains(t, reply, "죄송합니다")
	assert.Contains(t, reply, "택시로 5km")
}

func TestGenerateResponseLowImpact(t *testing.T) {
	actions := []ParsedAction{
		{Category: factors.CategoryPurchase, Item: "coffee", Amount: 2, Confidence: 0.8},
	}
	records := []impact.ActionRecord{
		mustRecord(t, factors.CategoryPurchase, "coffee", 2),
	}

	reply := GenerateResponse(actions, records)
	assert.Contains(t, reply, "Coffee")
	assert.Contains(t, reply, "0.560 kg")
	assert.Contains(t, reply, "훌륭해요")
}

func TestGenerateResponseHighImpactTip(t *testing.T) {
	actions := []ParsedAction{
		{Category: factors.CategoryPurchase, Item: "beef_meal", Amount: 1},
	}
	records := []impact.ActionRecord{
		mustRecord(t, factors.CategoryPurchase, "beef_meal", 1),
	}

	// 6.5 kg total crosses the high threshold.
	reply := GenerateResponse(actions, records)
	assert.Contains(t, reply, "Beef Meal")
	assert.Contains(t, reply, "대중교통이나 채식")
}

func TestGenerateResponseModerateTip(t *testing.T) {
	actions := []ParsedAction{
		{Category: factors.CategoryMobility, Item: "taxi_ice", Amount: 15},
	}
	records := []impact.ActionRecord{
		mustRecord(t, factors.CategoryMobility, "taxi_ice", 15),
	}

	// 3.15 kg lands between the moderate and high thresholds.
	reply := GenerateResponse(actions, records)
	assert.Contains(t, reply, "괜찮은 하루")
}

func TestGenerateResponseIncludesWaterWhenPresent(t *testing.T) {
	actions := []ParsedAction{
		{Category: factors.CategoryMobility, Item: "taxi_ice", Amount: 2},
	}
	records := []impact.ActionRecord{
		mustRecord(t, factors.CategoryMobility, "taxi_ice", 2),
	}

	reply := GenerateResponse(actions, records)
	assert.Contains(t, reply, "물 발자국")
}

func TestSuggestions(t *testing.T) {
	got := Suggestions()
	require.Len(t, got, 8)
	assert.Contains(t, got, "오늘 택시로 5km 이동했어")
}
