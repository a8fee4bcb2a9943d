package recommend

import (
	"math"
	"sort"
	"strings"

	"github.com/dayimpact/ecocoach/internal/factors"
	"github.com/dayimpact/ecocoach/internal/impact"
)

const (
	// behavioralSavingsRate estimates the reduction from a habit change
	// when a rule has no priced alternative.
	behavioralSavingsRate = 0.2

	co2ePrecision  = 4
	waterPrecision = 2
)

type aggregateKey struct {
	category factors.Category
	item     string
}

type aggregateTotals struct {
	amount float64
	co2eKg float64
}

// Get generates up to maxCount ranked recommendations from a day's
// records. Actions are aggregated by (category, item), matched against
// the rule table with duplicate actions suppressed, sorted by estimated
// CO2e savings descending (ties keep match order), and padded with
// defaults when fewer than maxCount rules fire. An empty record set
// yields defaults only.
func Get(records []impact.ActionRecord, maxCount int) []Recommendation {
	if maxCount <= 0 {
		return []Recommendation{}
	}
	if len(records) == 0 {
		return Defaults(maxCount)
	}

	// Aggregate per (category, item), preserving first-appearance order
	// so equal-savings ties rank deterministically.
	var order []aggregateKey
	totals := make(map[aggregateKey]*aggregateTotals)
	for _, r := range records {
		key := aggregateKey{
			category: r.Category,
			item:     strings.ToLower(strings.TrimSpace(r.Item)),
		}
		agg, ok := totals[key]
		if !ok {
			agg = &aggregateTotals{}
			totals[key] = agg
			order = append(order, key)
		}
		agg.amount += r.Amount
		agg.co2eKg += r.CO2eKg
	}

	var matched []Recommendation
	seen := make(map[string]struct{})
	for _, key := range order {
		agg := totals[key]
		for _, rule := range recommendationRules {
			if rule.Category != key.category || rule.TriggerItem != key.item {
				continue
			}
			actionKey := string(rule.Category) + ":" + rule.Action
			if _, dup := seen[actionKey]; dup {
				continue
			}
			seen[actionKey] = struct{}{}

			co2eSavings, waterSavings := estimateSavings(rule, agg)
			matched = append(matched, Recommendation{
				Category:               rule.Category,
				Action:                 rule.Action,
				Rationale:              rule.Rationale,
				EstimatedSavingsCO2eKg: co2eSavings,
				EstimatedSavingsWaterL: waterSavings,
				Difficulty:             rule.Difficulty,
				TriggerItem:            key.item,
				TriggerAmount:          agg.amount,
			})
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].EstimatedSavingsCO2eKg > matched[j].EstimatedSavingsCO2eKg
	})

	if len(matched) > maxCount {
		matched = matched[:maxCount]
	}
	for i := range matched {
		matched[i].Priority = i + 1
	}

	if len(matched) < maxCount {
		defaults := Defaults(maxCount - len(matched))
		for i := range defaults {
			defaults[i].Priority = len(matched) + i + 1
		}
		matched = append(matched, defaults...)
	}

	return matched
}

// Defaults returns the first count fallback recommendations with
// priorities 1..count. The returned slice is a copy.
func Defaults(count int) []Recommendation {
	if count <= 0 {
		return []Recommendation{}
	}
	if count > len(defaultRecommendations) {
		count = len(defaultRecommendations)
	}
	out := make([]Recommendation, count)
	copy(out, defaultRecommendations[:count])
	return out
}

// estimateSavings quantifies a rule against the aggregated trigger
// totals. Rules with an alternative are priced from the factor tables,
// floored at zero so a worse alternative never reports negative
// savings; a failed factor lookup degrades to zero rather than dropping
// the recommendation. Behavioral rules estimate a flat fraction of the
// aggregate footprint.
func estimateSavings(rule Rule, agg *aggregateTotals) (co2eKg, waterL float64) {
	if rule.AlternativeItem == "" {
		return roundTo(agg.co2eKg*behavioralSavingsRate, co2ePrecision), 0
	}

	trigger, err := factors.Get(rule.Category, rule.TriggerItem, "")
	if err != nil {
		return 0, 0
	}
	alt, err := factors.Get(rule.Category, rule.AlternativeItem, "")
	if err != nil {
		return 0, 0
	}

	co2eKg = roundTo(math.Max(0, (trigger.CO2ePerUnit-alt.CO2ePerUnit)*agg.amount), co2ePrecision)
	waterL = roundTo(math.Max(0, (trigger.WaterPerUnit-alt.WaterPerUnit)*agg.amount), waterPrecision)
	return co2eKg, waterL
}

func roundTo(v float64, places int) float64 {
	shift := math.Pow(10, float64(places))
	return math.Round(v*shift) / shift
}
