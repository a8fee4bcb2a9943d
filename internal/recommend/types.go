// Package recommend turns a day of logged actions into a ranked list of
// next-step suggestions. Matching is rule-driven: a static table maps
// trigger items to concrete alternatives, and estimated savings come
// from the factor tables rather than guesswork.
package recommend

import "github.com/dayimpact/ecocoach/internal/factors"

// Difficulty grades how much effort a suggested change asks of the user.
type Difficulty string

// Difficulty levels, from drop-in swaps to habit changes.
const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Rule links a trigger item to a suggested action. AlternativeItem names
// the factor entry used to quantify savings; when empty the rule is a
// behavioral nudge and savings are estimated as a fraction of the
// trigger's aggregate footprint.
type Rule struct {
	Category        factors.Category
	TriggerItem     string
	Action          string
	AlternativeItem string
	Rationale       string
	Difficulty      Difficulty
}

// Recommendation is one ranked suggestion. Priority is 1-based and
// contiguous within a response; savings carry the same rounding as
// computed impacts (4 decimals co2e, 2 decimals water).
type Recommendation struct {
	Priority               int              `json:"priority"`
	Category               factors.Category `json:"category"`
	Action                 string           `json:"action"`
	Rationale              string           `json:"rationale"`
	EstimatedSavingsCO2eKg float64          `json:"estimated_savings_co2e_kg"`
	EstimatedSavingsWaterL float64          `json:"estimated_savings_water_l"`
	Difficulty             Difficulty       `json:"difficulty"`
	TriggerItem            string           `json:"trigger_item,omitempty"`
	TriggerAmount          float64          `json:"trigger_amount,omitempty"`
}
