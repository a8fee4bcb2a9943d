package impact

import "github.com/dayimpact/ecocoach/internal/factors"

// ActionRecord is one logged user action together with its computed
// impact. Records are produced here and persisted by the storage layer;
// they are never mutated after creation — corrections are modeled as
// delete plus re-insert.
type ActionRecord struct {
	Category    factors.Category `json:"category"`
	Item        string           `json:"item"`
	Amount      float64          `json:"amount"`
	Subcategory string           `json:"subcategory,omitempty"`
	TimeOfDay   TimeOfDay        `json:"time_of_day,omitempty"`

	// CO2eKg and WaterL are deterministic functions of the fields above
	// via the factor tables; they are never independently settable.
	CO2eKg float64 `json:"co2e_kg"`
	WaterL float64 `json:"water_l"`
}

// NewActionRecord computes the impact for the given descriptor and
// returns the resulting record. The amount must already be validated
// as positive by the caller.
func NewActionRecord(
	category factors.Category,
	item string,
	amount float64,
	subcategory string,
	timeOfDay TimeOfDay,
) (ActionRecord, error) {
	if timeOfDay == "" {
		timeOfDay = TimeOfDayStandard
	}

	co2e, water, err := Calculate(category, item, amount, subcategory, timeOfDay)
	if err != nil {
		return ActionRecord{}, err
	}

	return ActionRecord{
		Category:    category,
		Item:        normalizedItem(item),
		Amount:      amount,
		Subcategory: subcategory,
		TimeOfDay:   timeOfDay,
		CO2eKg:      co2e,
		WaterL:      water,
	}, nil
}
