// Package report assembles daily and weekly impact reports and renders
// them as text, markdown, HTML, or JSON.
package report

import (
	"fmt"
	"time"

	"github.com/dayimpact/ecocoach/internal/factors"
	"github.com/dayimpact/ecocoach/internal/recommend"
	"github.com/dayimpact/ecocoach/internal/storage"
)

// Period selects the reporting window.
type Period string

// Report periods.
const (
	PeriodDaily  Period = "daily"
	PeriodWeekly Period = "weekly"
)

// CategoryBreakdown is one category's share of a report's total impact.
type CategoryBreakdown struct {
	CO2eKg      float64 `json:"co2e_kg"`
	WaterL      float64 `json:"water_l"`
	ActionCount int     `json:"action_count"`
	Percentage  float64 `json:"percentage"`
}

// Comparison relates a report's total to earlier periods, as signed
// percentages.
type Comparison struct {
	VsYesterdayPercent float64 `json:"vs_yesterday_percent"`
	VsWeeklyAvgPercent float64 `json:"vs_weekly_avg_percent"`
}

// Data is everything a renderer needs for one report.
type Data struct {
	ReportDate      time.Time
	Period          Period
	TotalCO2eKg     float64
	TotalWaterL     float64
	ActionCount     int
	Breakdown       map[factors.Category]CategoryBreakdown
	TopContributors []storage.Contributor
	Recommendations []recommend.Recommendation
	Comparison      *Comparison
	StreakDays      int
}

// Build assembles report data from stored aggregates. Percentages in
// the breakdown are shares of the report's total co2e; with a zero
// total every share is zero.
func Build(
	reportDate time.Time,
	period Period,
	totals map[factors.Category]storage.CategoryTotal,
	topContributors []storage.Contributor,
	recommendations []recommend.Recommendation,
	streakDays int,
	comparison *Comparison,
) Data {
	data := Data{
		ReportDate:      reportDate,
		Period:          period,
		Breakdown:       make(map[factors.Category]CategoryBreakdown, len(totals)),
		TopContributors: topContributors,
		Recommendations: recommendations,
		Comparison:      comparison,
		StreakDays:      streakDays,
	}

	for _, t := range totals {
		data.TotalCO2eKg += t.TotalCO2eKg
		data.TotalWaterL += t.TotalWaterL
		data.ActionCount += t.ActionCount
	}

	for category, t := range totals {
		pct := 0.0
		if data.TotalCO2eKg > 0 {
			pct = t.TotalCO2eKg / data.TotalCO2eKg * 100
		}
		data.Breakdown[category] = CategoryBreakdown{
			CO2eKg:      t.TotalCO2eKg,
			WaterL:      t.TotalWaterL,
			ActionCount: t.ActionCount,
			Percentage:  pct,
		}
	}

	return data
}

// orderedBreakdown returns the breakdown in canonical category order,
// skipping absent categories.
func (d Data) orderedBreakdown() []struct {
	Category  factors.Category
	Breakdown CategoryBreakdown
} {
	var out []struct {
		Category  factors.Category
		Breakdown CategoryBreakdown
	}
	for _, category := range factors.Categories() {
		b, ok := d.Breakdown[category]
		if !ok {
			continue
		}
		out = append(out, struct {
			Category  factors.Category
			Breakdown CategoryBreakdown
		}{category, b})
	}
	return out
}

// Daily total thresholds (kg CO2e) that grade a day's footprint.
const (
	lowDailyThresholdKg      = 2
	moderateDailyThresholdKg = 5
	highDailyThresholdKg     = 10
)

// DailySummary produces a one-paragraph plain-language summary of a
// day's impact.
func DailySummary(totalCO2eKg, totalWaterL float64, topContributors []storage.Contributor) string {
	if totalCO2eKg == 0 {
		return "No actions logged today. Start tracking to understand your environmental impact!"
	}

	var level, remark string
	switch {
	case totalCO2eKg < lowDailyThresholdKg:
		level, remark = "low", "Great job"
	case totalCO2eKg < moderateDailyThresholdKg:
		level, remark = "moderate", "Room for improvement"
	case totalCO2eKg < highDailyThresholdKg:
		level, remark = "high", "Consider alternatives"
	default:
		level, remark = "very high", "Significant impact day"
	}

	summary := fmt.Sprintf("Today's impact: %.2f kg CO2e (%s). %s.", totalCO2eKg, level, remark)
	if totalWaterL > 0 {
		summary += fmt.Sprintf(" Water footprint: %.0f L.", totalWaterL)
	}
	if len(topContributors) > 0 {
		top := topContributors[0]
		summary += fmt.Sprintf(" Biggest contributor: %s (%.2f kg CO2e).",
			humanizeItem(top.Item), top.CO2eKg)
	}
	return summary
}

// trendThresholdPercent is the day-over-day change below which the
// trend counts as stable.
const trendThresholdPercent = 10

// WeeklyInsight reads a trend out of per-day totals. It compares the
// two most recent days and falls back to the weekly average when the
// trend is flat or the comparison is undefined.
func WeeklyInsight(weekly []storage.DayTotal) string {
	if len(weekly) < 2 {
		return "Keep logging to see your weekly trends!"
	}

	var sum float64
	for _, day := range weekly {
		sum += day.TotalCO2eKg
	}
	avg := sum / float64(len(weekly))

	recent := weekly[len(weekly)-1].TotalCO2eKg
	previous := weekly[len(weekly)-2].TotalCO2eKg
	if previous > 0 {
		changePct := (recent - previous) / previous * 100
		switch {
		case changePct < -trendThresholdPercent:
			return fmt.Sprintf("Excellent! Your emissions dropped %.0f%% compared to yesterday.", -changePct)
		case changePct > trendThresholdPercent:
			return fmt.Sprintf("Your emissions increased %.0f%% compared to yesterday. Check your top contributors.", changePct)
		default:
			return fmt.Sprintf("Your emissions are stable. Weekly average: %.1f kg CO2e/day.", avg)
		}
	}

	return fmt.Sprintf("Weekly average: %.1f kg CO2e/day.", avg)
}
