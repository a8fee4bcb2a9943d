package report

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/dayimpact/ecocoach/internal/factors"
	"github.com/dayimpact/ecocoach/internal/recommend"
)

// Format selects a report output encoding.
type Format string

// Supported report formats.
const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatJSON     Format = "json"
)

// ParseFormat validates a format string, defaulting empty to text.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatText:
		return FormatText, nil
	case FormatMarkdown:
		return FormatMarkdown, nil
	case FormatHTML:
		return FormatHTML, nil
	case FormatJSON:
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unsupported report format %q", s)
}

// ContentType returns the HTTP content type for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatMarkdown:
		return "text/markdown; charset=utf-8"
	case FormatHTML:
		return "text/html; charset=utf-8"
	case FormatJSON:
		return "application/json; charset=utf-8"
	default:
		return "text/plain; charset=utf-8"
	}
}

// Render encodes the report in the requested format.
func Render(data Data, format Format) (string, error) {
	switch format {
	case FormatText:
		return Text(data), nil
	case FormatMarkdown:
		return Markdown(data), nil
	case FormatHTML:
		return HTML(data), nil
	case FormatJSON:
		return JSON(data)
	}
	return "", fmt.Errorf("unsupported report format %q", format)
}

// Display caps shared by the renderers.
const (
	maxContributorsShown    = 5
	maxRecommendationsShown = 3
)

var (
	//nolint:gochecknoglobals // Render styles, initialized once
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	//nolint:gochecknoglobals // Render styles, initialized once
	sectionStyle = lipgloss.NewStyle().Bold(true)
	//nolint:gochecknoglobals // Render styles, initialized once
	ruleStyle = lipgloss.NewStyle().Faint(true)

	//nolint:gochecknoglobals // Stateless caser
	titleCaser = cases.Title(language.English)
	//nolint:gochecknoglobals // Locale-aware number formatting
	numberPrinter = message.NewPrinter(language.English)
)

var categoryEmoji = map[factors.Category]string{ //nolint:gochecknoglobals // Presentation constants
	factors.CategoryMobility:   "🚗",
	factors.CategoryPurchase:   "🛒",
	factors.CategoryHomeEnergy: "🏠",
}

var difficultyEmoji = map[recommend.Difficulty]string{ //nolint:gochecknoglobals // Presentation constants
	recommend.DifficultyEasy:   "🟢",
	recommend.DifficultyMedium: "🟡",
	recommend.DifficultyHard:   "🔴",
}

// Text renders the report for terminal display.
func Text(data Data) string {
	var b strings.Builder
	rule := ruleStyle.Render(strings.Repeat("=", 60))
	sep := ruleStyle.Render(strings.Repeat("-", 40))

	b.WriteString(rule + "\n")
	b.WriteString(titleStyle.Render(fmt.Sprintf("🌱 Daily Impact Coach - %s Report", titleCaser.String(string(data.Period)))) + "\n")
	b.WriteString(fmt.Sprintf("📅 Date: %s\n", data.ReportDate.Format("2006-01-02")))
	b.WriteString(rule + "\n\n")

	b.WriteString(sectionStyle.Render("📊 IMPACT SUMMARY") + "\n")
	b.WriteString(sep + "\n")
	b.WriteString(fmt.Sprintf("Total CO₂e Emissions: %.3f kg\n", data.TotalCO2eKg))
	b.WriteString(numberPrinter.Sprintf("Total Water Footprint: %.1f L\n", data.TotalWaterL))
	b.WriteString(fmt.Sprintf("Actions Logged: %d\n", data.ActionCount))
	if data.StreakDays > 0 {
		b.WriteString(fmt.Sprintf("Current Streak: %d days 🔥\n", data.StreakDays))
	}
	b.WriteString("\n")

	if breakdown := data.orderedBreakdown(); len(breakdown) > 0 {
		b.WriteString(sectionStyle.Render("📈 BREAKDOWN BY CATEGORY") + "\n")
		b.WriteString(sep + "\n")
		for _, entry := range breakdown {
			emoji, ok := categoryEmoji[entry.Category]
			if !ok {
				emoji = "📌"
			}
			b.WriteString(fmt.Sprintf("%s %s:\n", emoji, humanizeItem(string(entry.Category))))
			b.WriteString(fmt.Sprintf("   CO₂e: %.3f kg (%.1f%%)\n", entry.Breakdown.CO2eKg, entry.Breakdown.Percentage))
			if entry.Breakdown.WaterL > 0 {
				b.WriteString(numberPrinter.Sprintf("   Water: %.1f L\n", entry.Breakdown.WaterL))
			}
		}
		b.WriteString("\n")
	}

	if len(data.TopContributors) > 0 {
		b.WriteString(sectionStyle.Render("🏆 TOP IMPACT CONTRIBUTORS") + "\n")
		b.WriteString(sep + "\n")
		for i, contrib := range data.TopContributors {
			if i == maxContributorsShown {
				break
			}
			b.WriteString(fmt.Sprintf("%d. %s\n", i+1, humanizeItem(contrib.Item)))
			b.WriteString(fmt.Sprintf("   Amount: %g | CO₂e: %.3f kg\n", contrib.Amount, contrib.CO2eKg))
		}
		b.WriteString("\n")
	}

	if len(data.Recommendations) > 0 {
		b.WriteString(sectionStyle.Render("🎯 RECOMMENDED ACTIONS") + "\n")
		b.WriteString(sep + "\n")
		for i, rec := range data.Recommendations {
			if i == maxRecommendationsShown {
				break
			}
			emoji, ok := difficultyEmoji[rec.Difficulty]
			if !ok {
				emoji = "⚪"
			}
			b.WriteString(fmt.Sprintf("%d. %s\n", i+1, rec.Action))
			b.WriteString(fmt.Sprintf("   %s %s | Saves: %.2f kg CO₂e\n",
				emoji, titleCaser.String(string(rec.Difficulty)), rec.EstimatedSavingsCO2eKg))
			b.WriteString(fmt.Sprintf("   %s\n", rec.Rationale))
		}
		b.WriteString("\n")
	}

	if data.Comparison != nil {
		b.WriteString(sectionStyle.Render("📉 COMPARISON") + "\n")
		b.WriteString(sep + "\n")
		b.WriteString(fmt.Sprintf("vs Yesterday: %s %.1f%%\n",
			trendArrow(data.Comparison.VsYesterdayPercent), abs(data.Comparison.VsYesterdayPercent)))
		b.WriteString(fmt.Sprintf("vs Weekly Avg: %s %.1f%%\n",
			trendArrow(data.Comparison.VsWeeklyAvgPercent), abs(data.Comparison.VsWeeklyAvgPercent)))
		b.WriteString("\n")
	}

	b.WriteString(rule + "\n")
	b.WriteString("🌍 Every action counts! Keep making sustainable choices.\n")
	b.WriteString(rule + "\n")

	return b.String()
}

// Markdown renders the report for chat and documentation surfaces.
func Markdown(data Data) string {
	var lines []string

	lines = append(lines,
		"# 🌱 Daily Impact Report",
		fmt.Sprintf("**Date:** %s", data.ReportDate.Format("2006-01-02")),
		"",
		"## 📊 Summary",
		"",
		"| Metric | Value |",
		"|--------|-------|",
		fmt.Sprintf("| Total CO₂e | %.3f kg |", data.TotalCO2eKg),
		fmt.Sprintf("| Total Water | %.1f L |", data.TotalWaterL),
		fmt.Sprintf("| Actions | %d |", data.ActionCount),
	)
	if data.StreakDays > 0 {
		lines = append(lines, fmt.Sprintf("| Streak | %d days 🔥 |", data.StreakDays))
	}
	lines = append(lines, "")

	if breakdown := data.orderedBreakdown(); len(breakdown) > 0 {
		lines = append(lines,
			"## 📈 By Category",
			"",
			"| Category | CO₂e (kg) | % | Water (L) |",
			"|----------|-----------|---|-----------|",
		)
		for _, entry := range breakdown {
			lines = append(lines, fmt.Sprintf("| %s | %.3f | %.1f%% | %.1f |",
				humanizeItem(string(entry.Category)),
				entry.Breakdown.CO2eKg, entry.Breakdown.Percentage, entry.Breakdown.WaterL))
		}
		lines = append(lines, "")
	}

	if len(data.TopContributors) > 0 {
		lines = append(lines, "## 🏆 Top Contributors", "")
		for i, contrib := range data.TopContributors {
			if i == maxContributorsShown {
				break
			}
			lines = append(lines, fmt.Sprintf("%d. **%s** - %g units → %.3f kg CO₂e",
				i+1, humanizeItem(contrib.Item), contrib.Amount, contrib.CO2eKg))
		}
		lines = append(lines, "")
	}

	if len(data.Recommendations) > 0 {
		lines = append(lines, "## 🎯 Recommendations", "")
		for i, rec := range data.Recommendations {
			if i == maxRecommendationsShown {
				break
			}
			emoji, ok := difficultyEmoji[rec.Difficulty]
			if !ok {
				emoji = "⚪"
			}
			lines = append(lines,
				fmt.Sprintf("### %s", rec.Action),
				fmt.Sprintf("- **Difficulty:** %s %s", emoji, titleCaser.String(string(rec.Difficulty))),
				fmt.Sprintf("- **Potential Savings:** %.2f kg CO₂e", rec.EstimatedSavingsCO2eKg),
				fmt.Sprintf("- %s", rec.Rationale),
				"",
			)
		}
	}

	lines = append(lines, "---", "*Generated by Daily Impact Coach* 🌍")
	return strings.Join(lines, "\n")
}

// jsonSummary mirrors the wire shape of the report summary block.
type jsonSummary struct {
	TotalCO2eKg float64 `json:"total_co2e_kg"`
	TotalWaterL float64 `json:"total_water_l"`
	ActionCount int     `json:"action_count"`
	StreakDays  int     `json:"streak_days"`
}

type jsonReport struct {
	ReportDate          string                                 `json:"report_date"`
	Period              Period                                 `json:"period"`
	GeneratedAt         string                                 `json:"generated_at"`
	Summary             jsonSummary                            `json:"summary"`
	BreakdownByCategory map[factors.Category]CategoryBreakdown `json:"breakdown_by_category"`
	TopContributors     any                                    `json:"top_contributors"`
	Recommendations     []recommend.Recommendation             `json:"recommendations"`
	Comparison          *Comparison                            `json:"comparison"`
}

// JSON renders the report for API consumption.
func JSON(data Data) (string, error) {
	out := jsonReport{
		ReportDate:  data.ReportDate.Format("2006-01-02"),
		Period:      data.Period,
		GeneratedAt: time.Now().Format("2006-01-02"),
		Summary: jsonSummary{
			TotalCO2eKg: roundTo(data.TotalCO2eKg, 3),
			TotalWaterL: roundTo(data.TotalWaterL, 1),
			ActionCount: data.ActionCount,
			StreakDays:  data.StreakDays,
		},
		BreakdownByCategory: data.Breakdown,
		TopContributors:     data.TopContributors,
		Recommendations:     data.Recommendations,
		Comparison:          data.Comparison,
	}

	encoded, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode json report: %w", err)
	}
	return string(encoded), nil
}

func humanizeItem(item string) string {
	return titleCaser.String(strings.ReplaceAll(item, "_", " "))
}

func trendArrow(change float64) string {
	switch {
	case change > 0:
		return "↑"
	case change < 0:
		return "↓"
	}
	return "→"
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func roundTo(v float64, places int) float64 {
	shift := math.Pow(10, float64(places))
	return math.Round(v*shift) / shift
}
