package chat

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dayimpact/ecocoach/internal/factors"
	"github.com/dayimpact/ecocoach/internal/impact"
)

// Daily total thresholds (kg CO2e) that pick the closing tip.
const (
	highImpactThresholdKg     = 5
	moderateImpactThresholdKg = 2
)

const unrecognizedReply = `죄송합니다, 입력하신 내용에서 행동을 인식하지 못했습니다.

다음과 같이 말씀해 주세요:
- "오늘 택시로 5km 이동했어"
- "점심에 소고기 먹었어"
- "커피 2잔 마셨어"
- "전기 10kWh 사용했어"

어떤 활동을 하셨나요?`

var categoryEmoji = map[factors.Category]string{ //nolint:gochecknoglobals // Presentation constants
	factors.CategoryMobility:   "🚗",
	factors.CategoryPurchase:   "🛒",
	factors.CategoryHomeEnergy: "🏠",
}

var itemTitleCaser = cases.Title(language.English) //nolint:gochecknoglobals // Stateless caser

// GenerateResponse renders the coaching reply for a set of parsed
// actions and their computed impacts. Actions and records are paired by
// index; a mismatch in length truncates to the shorter side. With no
// actions the reply asks the user to rephrase with examples.
func GenerateResponse(actions []ParsedAction, records []impact.ActionRecord) string {
	if len(actions) == 0 {
		return unrecognizedReply
	}

	n := len(actions)
	if len(records) < n {
		n = len(records)
	}

	lines := []string{"📊 **오늘의 활동 분석**\n"}

	var totalCO2e, totalWater float64
	for i := 0; i < n; i++ {
		action, record := actions[i], records[i]

		emoji, ok := categoryEmoji[action.Category]
		if !ok {
			emoji = "📌"
		}

		totalCO2e += record.CO2eKg
		totalWater += record.WaterL

		lines = append(lines,
			fmt.Sprintf("%s **%s** (%s)", emoji, displayItem(action.Item), formatAmount(action.Amount)),
			fmt.Sprintf("   - CO₂e: %.3f kg", record.CO2eKg),
		)
		if record.WaterL > 0 {
			lines = append(lines, fmt.Sprintf("   - 물: %.1f L", record.WaterL))
		}
		lines = append(lines, "")
	}

	lines = append(lines,
		"---",
		"**📈 총 영향**",
		fmt.Sprintf("- 탄소 발자국: **%.3f kg CO₂e**", totalCO2e),
	)
	if totalWater > 0 {
		lines = append(lines, fmt.Sprintf("- 물 발자국: **%.1f L**", totalWater))
	}

	lines = append(lines, "")
	switch {
	case totalCO2e > highImpactThresholdKg:
		lines = append(lines, "💡 **팁**: 오늘 탄소 배출이 높은 편이에요. 내일은 대중교통이나 채식 식사를 고려해보세요!")
	case totalCO2e > moderateImpactThresholdKg:
		lines = append(lines, "💡 **팁**: 괜찮은 하루예요! 작은 변화가 큰 차이를 만들어요.")
	default:
		lines = append(lines, "🌱 **훌륭해요!** 환경을 위한 좋은 선택을 하셨네요!")
	}

	return strings.Join(lines, "\n")
}

// Suggestions returns example prompts shown to the user.
func Suggestions() []string {
	return []string{
		"오늘 택시로 5km 이동했어",
		"점심에 소고기 스테이크 먹었어",
		"커피 3잔 마셨어",
		"지하철로 10km 출퇴근했어",
		"에어컨 3시간 사용했어",
		"새 티셔츠 2벌 샀어",
		"자전거로 출근했어",
		"채식 점심 먹었어",
	}
}

// displayItem turns a factor key into display form, e.g. "taxi_ice"
// becomes "Taxi Ice".
func displayItem(item string) string {
	return itemTitleCaser.String(strings.ReplaceAll(item, "_", " "))
}

func formatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'g', -1, 64)
}
