package report

import (
	"fmt"
	"html/template"
	"strings"
)

const htmlTemplate = `<!DOCTYPE html>
<html lang="ko">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Daily Impact Report - {{.Date}}</title>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
            max-width: 600px;
            margin: 0 auto;
            padding: 20px;
            background-color: #f5f5f5;
        }
        .container {
            background: white;
            border-radius: 12px;
            padding: 24px;
            box-shadow: 0 2px 8px rgba(0,0,0,0.1);
        }
        .header {
            text-align: center;
            border-bottom: 2px solid #22c55e;
            padding-bottom: 16px;
            margin-bottom: 24px;
        }
        .header h1 {
            color: #22c55e;
            margin: 0;
            font-size: 24px;
        }
        .header .date {
            color: #666;
            font-size: 14px;
            margin-top: 8px;
        }
        .summary {
            display: grid;
            grid-template-columns: repeat(3, 1fr);
            gap: 16px;
            margin-bottom: 24px;
        }
        .metric {
            text-align: center;
            padding: 16px;
            background: #f0fdf4;
            border-radius: 8px;
        }
        .metric-value {
            font-size: 24px;
            font-weight: bold;
            color: #16a34a;
        }
        .metric-label {
            font-size: 12px;
            color: #666;
            margin-top: 4px;
        }
        .section {
            margin-bottom: 24px;
        }
        .section h2 {
            font-size: 16px;
            color: #333;
            margin-bottom: 12px;
            display: flex;
            align-items: center;
            gap: 8px;
        }
        .category-bar {
            display: flex;
            align-items: center;
            margin-bottom: 8px;
        }
        .category-name {
            width: 120px;
            font-size: 14px;
        }
        .category-bar-fill {
            height: 20px;
            background: linear-gradient(90deg, #22c55e, #16a34a);
            border-radius: 4px;
            min-width: 4px;
        }
        .category-value {
            margin-left: 8px;
            font-size: 12px;
            color: #666;
        }
        .recommendation {
            background: #f8fafc;
            border-left: 4px solid #22c55e;
            padding: 12px;
            margin-bottom: 8px;
            border-radius: 0 8px 8px 0;
        }
        .recommendation-title {
            font-weight: 600;
            color: #333;
        }
        .recommendation-detail {
            font-size: 13px;
            color: #666;
            margin-top: 4px;
        }
        .footer {
            text-align: center;
            padding-top: 16px;
            border-top: 1px solid #eee;
            color: #666;
            font-size: 12px;
        }
        .streak {
            display: inline-block;
            background: #fef3c7;
            color: #d97706;
            padding: 4px 12px;
            border-radius: 16px;
            font-size: 14px;
            margin-top: 8px;
        }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>🌱 Daily Impact Report</h1>
            <div class="date">{{.KoreanDate}}</div>
            {{if gt .StreakDays 1}}<div class="streak">🔥 {{.StreakDays}} days streak!</div>{{end}}
        </div>

        <div class="summary">
            <div class="metric">
                <div class="metric-value">{{printf "%.2f" .TotalCO2eKg}}</div>
                <div class="metric-label">kg CO₂e</div>
            </div>
            <div class="metric">
                <div class="metric-value">{{printf "%.0f" .TotalWaterL}}</div>
                <div class="metric-label">L Water</div>
            </div>
            <div class="metric">
                <div class="metric-value">{{.ActionCount}}</div>
                <div class="metric-label">Actions</div>
            </div>
        </div>
{{if .Categories}}
        <div class="section">
            <h2>📊 Impact by Category</h2>
{{range .Categories}}
            <div class="category-bar">
                <span class="category-name">{{.Emoji}} {{.Name}}</span>
                <div class="category-bar-fill" style="width: {{printf "%.0f" .BarWidth}}%"></div>
                <span class="category-value">{{printf "%.2f" .CO2eKg}} kg ({{printf "%.0f" .Percentage}}%)</span>
            </div>
{{end}}
        </div>
{{end}}
{{if .Recommendations}}
        <div class="section">
            <h2>🎯 Recommended Actions</h2>
{{range .Recommendations}}
            <div class="recommendation">
                <div class="recommendation-title">{{.Emoji}} {{.Action}}</div>
                <div class="recommendation-detail">
                    Potential savings: {{printf "%.2f" .SavingsCO2eKg}} kg CO₂e
                </div>
            </div>
{{end}}
        </div>
{{end}}
        <div class="footer">
            🌍 Every action counts! Keep making sustainable choices.<br>
            Generated by Daily Impact Coach
        </div>
    </div>
</body>
</html>
`

//nolint:gochecknoglobals // Parsed once at init
var reportTemplate = template.Must(template.New("report").Parse(htmlTemplate))

type htmlCategory struct {
	Emoji      string
	Name       string
	CO2eKg     float64
	Percentage float64
	BarWidth   float64
}

type htmlRecommendation struct {
	Emoji         string
	Action        string
	SavingsCO2eKg float64
}

type htmlView struct {
	Date            string
	KoreanDate      string
	StreakDays      int
	TotalCO2eKg     float64
	TotalWaterL     float64
	ActionCount     int
	Categories      []htmlCategory
	Recommendations []htmlRecommendation
}

// HTML renders the report for email or web display. Category bars are
// scaled against the largest category so the biggest always fills the
// row.
func HTML(data Data) string {
	view := htmlView{
		Date: data.ReportDate.Format("2006-01-02"),
		KoreanDate: fmt.Sprintf("%d년 %02d월 %02d일",
			data.ReportDate.Year(), data.ReportDate.Month(), data.ReportDate.Day()),
		StreakDays:  data.StreakDays,
		TotalCO2eKg: data.TotalCO2eKg,
		TotalWaterL: data.TotalWaterL,
		ActionCount: data.ActionCount,
	}

	maxCO2e := 0.0
	for _, entry := range data.Breakdown {
		if entry.CO2eKg > maxCO2e {
			maxCO2e = entry.CO2eKg
		}
	}
	if maxCO2e == 0 {
		maxCO2e = 1
	}
	for _, entry := range data.orderedBreakdown() {
		emoji, ok := categoryEmoji[entry.Category]
		if !ok {
			emoji = "📌"
		}
		view.Categories = append(view.Categories, htmlCategory{
			Emoji:      emoji,
			Name:       humanizeItem(string(entry.Category)),
			CO2eKg:     entry.Breakdown.CO2eKg,
			Percentage: entry.Breakdown.Percentage,
			BarWidth:   entry.Breakdown.CO2eKg / maxCO2e * 100,
		})
	}

	for i, rec := range data.Recommendations {
		if i == maxRecommendationsShown {
			break
		}
		emoji, ok := difficultyEmoji[rec.Difficulty]
		if !ok {
			emoji = "⚪"
		}
		view.Recommendations = append(view.Recommendations, htmlRecommendation{
			Emoji:         emoji,
			Action:        rec.Action,
			SavingsCO2eKg: rec.EstimatedSavingsCO2eKg,
		})
	}

	var b strings.Builder
	if err := reportTemplate.Execute(&b, view); err != nil {
		// The template and view are static shapes; execution cannot
		// fail on well-formed data.
		return ""
	}
	return b.String()
}
