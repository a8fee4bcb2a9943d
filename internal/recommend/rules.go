package recommend

import "github.com/dayimpact/ecocoach/internal/factors"

// recommendationRules is the full trigger table, grouped by domain.
// Order matters: when one trigger item matches several rules, earlier
// rules surface first among equal savings. Percentages in rationales are
// derived from the reference factor tables.
var recommendationRules = []Rule{ //nolint:gochecknoglobals // Immutable rule table
	// Mobility
	{
		Category:        factors.CategoryMobility,
		TriggerItem:     "taxi_ice",
		Action:          "Switch to EV taxi for your next ride",
		AlternativeItem: "taxi_ev",
		Rationale:       "EV taxis produce 76% less CO2 than gasoline taxis",
		Difficulty:      DifficultyEasy,
	},
	{
		Category:        factors.CategoryMobility,
		TriggerItem:     "taxi_ice",
		Action:          "Use public transit for trips under 5km",
		AlternativeItem: "subway",
		Rationale:       "Subway produces 83% less CO2 per km than taxi",
		Difficulty:      DifficultyMedium,
	},
	{
		Category:        factors.CategoryMobility,
		TriggerItem:     "personal_car_gasoline",
		Action:          "Consider carpooling or public transit tomorrow",
		AlternativeItem: "bus",
		Rationale:       "Bus travel reduces your per-km emissions by 54%",
		Difficulty:      DifficultyMedium,
	},
	{
		Category:        factors.CategoryMobility,
		TriggerItem:     "personal_car_gasoline",
		Action:          "Try walking or cycling for short trips under 3km",
		AlternativeItem: "bicycle",
		Rationale:       "Zero emissions and health benefits",
		Difficulty:      DifficultyEasy,
	},
	{
		Category:        factors.CategoryMobility,
		TriggerItem:     "domestic_flight",
		Action:          "Consider KTX for domestic travel when possible",
		AlternativeItem: "train_ktx",
		Rationale:       "High-speed rail produces 89% less CO2 than flying",
		Difficulty:      DifficultyMedium,
	},

	// Food
	{
		Category:        factors.CategoryPurchase,
		TriggerItem:     "beef_meal",
		Action:          "Try chicken or fish for one meal tomorrow",
		AlternativeItem: "chicken_meal",
		Rationale:       "Chicken produces 83% less CO2 and uses 77% less water than beef",
		Difficulty:      DifficultyEasy,
	},
	{
		Category:        factors.CategoryPurchase,
		TriggerItem:     "beef_meal",
		Action:          "Explore a vegetarian meal option",
		AlternativeItem: "vegetarian_meal",
		Rationale:       "Vegetarian meals produce 94% less CO2 than beef",
		Difficulty:      DifficultyMedium,
	},
	{
		Category:    factors.CategoryPurchase,
		TriggerItem: "coffee",
		Action:      "Bring a reusable cup for your coffee",
		Rationale:   "Reduces packaging waste and often gets you a discount",
		Difficulty:  DifficultyEasy,
	},
	{
		Category:        factors.CategoryPurchase,
		TriggerItem:     "milk_liter",
		Action:          "Try plant-based milk alternatives",
		AlternativeItem: "oat_milk_liter",
		Rationale:       "Oat milk produces 53% less CO2 and 92% less water than dairy",
		Difficulty:      DifficultyEasy,
	},

	// Fashion
	{
		Category:        factors.CategoryPurchase,
		TriggerItem:     "tshirt_fastfashion",
		Action:          "Consider secondhand or sustainable options next time",
		AlternativeItem: "tshirt_secondhand",
		Rationale:       "Secondhand clothing reduces impact by 91%",
		Difficulty:      DifficultyMedium,
	},
	{
		Category:        factors.CategoryPurchase,
		TriggerItem:     "jeans_fastfashion",
		Action:          "Postpone your next jeans purchase and explore secondhand",
		AlternativeItem: "jeans_secondhand",
		Rationale:       "Secondhand jeans save 95% of CO2 and water",
		Difficulty:      DifficultyMedium,
	},
	{
		Category:        factors.CategoryPurchase,
		TriggerItem:     "sneakers_new",
		Action:          "Check for refurbished or secondhand options",
		AlternativeItem: "sneakers_secondhand",
		Rationale:       "Secondhand shoes reduce impact by 90%",
		Difficulty:      DifficultyMedium,
	},

	// Electronics
	{
		Category:        factors.CategoryPurchase,
		TriggerItem:     "smartphone_new",
		Action:          "Consider refurbished phones for your next upgrade",
		AlternativeItem: "smartphone_refurbished",
		Rationale:       "Refurbished phones use 79% less resources",
		Difficulty:      DifficultyEasy,
	},
	{
		Category:        factors.CategoryPurchase,
		TriggerItem:     "laptop_new",
		Action:          "Extend your laptop's life or buy refurbished",
		AlternativeItem: "laptop_refurbished",
		Rationale:       "Refurbished laptops reduce impact by 80%",
		Difficulty:      DifficultyMedium,
	},

	// Household
	{
		Category:        factors.CategoryPurchase,
		TriggerItem:     "plastic_bag",
		Action:          "Bring reusable bags for shopping",
		AlternativeItem: "reusable_bag",
		Rationale:       "Reusable bags reduce impact by 94% per use",
		Difficulty:      DifficultyEasy,
	},
	{
		Category:        factors.CategoryPurchase,
		TriggerItem:     "bottled_water_500ml",
		Action:          "Use a reusable water bottle",
		AlternativeItem: "tap_water_500ml",
		Rationale:       "Tap water in reusable bottles reduces impact by 99%",
		Difficulty:      DifficultyEasy,
	},

	// Home energy
	{
		Category:        factors.CategoryHomeEnergy,
		TriggerItem:     "electricity_kwh",
		Action:          "Shift high-power activities to off-peak hours",
		AlternativeItem: "electricity_kwh_offpeak",
		Rationale:       "Off-peak electricity has 17% lower carbon intensity",
		Difficulty:      DifficultyMedium,
	},
	{
		Category:        factors.CategoryHomeEnergy,
		TriggerItem:     "electricity_kwh_peak",
		Action:          "Reduce peak-hour electricity usage tomorrow",
		AlternativeItem: "electricity_kwh_offpeak",
		Rationale:       "Peak hours have 31% higher carbon intensity",
		Difficulty:      DifficultyMedium,
	},
	{
		Category:    factors.CategoryHomeEnergy,
		TriggerItem: "natural_gas_m3",
		Action:      "Lower heating by 1-2 degrees and wear layers",
		Rationale:   "Each degree reduction saves about 7% of heating energy",
		Difficulty:  DifficultyEasy,
	},
}

// defaultRecommendations is the fallback list served when no trigger
// matches or the matched set comes up short. Savings here are fixed
// plausible estimates, not factor-derived.
var defaultRecommendations = []Recommendation{ //nolint:gochecknoglobals // Immutable fallback list
	{
		Priority:               1,
		Category:               factors.CategoryMobility,
		Action:                 "Try walking or cycling for one trip today",
		Rationale:              "Zero-emission transport improves health and reduces carbon footprint",
		EstimatedSavingsCO2eKg: 0.5,
		EstimatedSavingsWaterL: 0,
		Difficulty:             DifficultyEasy,
	},
	{
		Priority:               2,
		Category:               factors.CategoryPurchase,
		Action:                 "Choose a plant-based meal option today",
		Rationale:              "Plant-based meals typically have 50-80% lower carbon footprint",
		EstimatedSavingsCO2eKg: 3.0,
		EstimatedSavingsWaterL: 1000,
		Difficulty:             DifficultyEasy,
	},
	{
		Priority:               3,
		Category:               factors.CategoryHomeEnergy,
		Action:                 "Turn off unused lights and appliances",
		Rationale:              "Standby power can account for 5-10% of home energy use",
		EstimatedSavingsCO2eKg: 0.2,
		EstimatedSavingsWaterL: 0,
		Difficulty:             DifficultyEasy,
	},
	{
		Priority:               4,
		Category:               factors.CategoryPurchase,
		Action:                 "Bring a reusable bag for your next shopping trip",
		Rationale:              "Single-use plastics contribute to pollution and emissions",
		EstimatedSavingsCO2eKg: 0.03,
		EstimatedSavingsWaterL: 0.5,
		Difficulty:             DifficultyEasy,
	},
	{
		Priority:               5,
		Category:               factors.CategoryMobility,
		Action:                 "Plan your errands to combine trips",
		Rationale:              "Fewer trips mean less fuel and lower emissions",
		EstimatedSavingsCO2eKg: 1.0,
		EstimatedSavingsWaterL: 0,
		Difficulty:             DifficultyEasy,
	},
}

// Rules returns a copy of the full rule table.
func Rules() []Rule {
	out := make([]Rule, len(recommendationRules))
	copy(out, recommendationRules)
	return out
}
