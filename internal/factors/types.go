// Package factors is the immutable reference-data layer of ecocoach: a
// process-wide table mapping (category, item[, subcategory]) to per-unit
// environmental factors. The tables are embedded YAML, loaded lazily
// exactly once, and never mutated afterwards.
package factors

// Category identifies the top-level action grouping.
type Category string

// Action categories. Purchase is the only category with subcategories.
const (
	CategoryMobility   Category = "mobility"
	CategoryPurchase   Category = "purchase"
	CategoryHomeEnergy Category = "home_energy"
)

// Categories lists all valid categories in display order.
func Categories() []Category {
	return []Category{CategoryMobility, CategoryPurchase, CategoryHomeEnergy}
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	switch c {
	case CategoryMobility, CategoryPurchase, CategoryHomeEnergy:
		return true
	}
	return false
}

// Factor is the environmental cost of one unit of one item.
type Factor struct {
	// Item is the identifier, unique within its category (and
	// subcategory for purchases). Always stored lowercase.
	Item string `json:"item"`

	Category Category `json:"category"`

	// Subcategory is set for purchase factors only (food, fashion,
	// electronics, household).
	Subcategory string `json:"subcategory,omitempty"`

	// CO2ePerUnit is kilograms of CO2 equivalent per unit.
	CO2ePerUnit float64 `json:"co2e_per_unit"`

	// WaterPerUnit is liters of water per unit. Always zero for
	// home_energy, where water is not tracked.
	WaterPerUnit float64 `json:"water_per_unit"`

	// Unit is the display label for the amount (km, kWh, serving, ...).
	Unit string `json:"unit"`

	Description string `json:"description"`
}
