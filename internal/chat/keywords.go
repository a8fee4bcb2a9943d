package chat

import "github.com/dayimpact/ecocoach/internal/factors"

// keywordMapping binds one surface keyword to a factor item. The table
// is ordered: when two keywords start at the same offset in a message,
// the earlier entry wins the tie.
type keywordMapping struct {
	keyword  string
	item     string
	category factors.Category
}

// keywordTable covers Korean and English phrasings for the trackable
// items. Ambiguous words map to the most common reading, e.g. plain
// "차" and "car" assume a gasoline car.
var keywordTable = []keywordMapping{ //nolint:gochecknoglobals // Immutable keyword table
	// Mobility, Korean
	{"택시", "taxi_ice", factors.CategoryMobility},
	{"전기택시", "taxi_ev", factors.CategoryMobility},
	{"버스", "bus", factors.CategoryMobility},
	{"지하철", "subway", factors.CategoryMobility},
	{"자전거", "bicycle", factors.CategoryMobility},
	{"걸어", "walking", factors.CategoryMobility},
	{"도보", "walking", factors.CategoryMobility},
	{"차", "car_gasoline", factors.CategoryMobility},
	{"자동차", "car_gasoline", factors.CategoryMobility},
	{"전기차", "car_ev", factors.CategoryMobility},
	{"오토바이", "motorcycle", factors.CategoryMobility},
	{"킥보드", "escooter", factors.CategoryMobility},
	// Mobility, English
	{"taxi", "taxi_ice", factors.CategoryMobility},
	{"uber", "taxi_ice", factors.CategoryMobility},
	{"bus", "bus", factors.CategoryMobility},
	{"subway", "subway", factors.CategoryMobility},
	{"metro", "subway", factors.CategoryMobility},
	{"bike", "bicycle", factors.CategoryMobility},
	{"bicycle", "bicycle", factors.CategoryMobility},
	{"walk", "walking", factors.CategoryMobility},
	{"car", "car_gasoline", factors.CategoryMobility},
	{"drive", "car_gasoline", factors.CategoryMobility},

	// Food, Korean
	{"소고기", "beef_meal", factors.CategoryPurchase},
	{"쇠고기", "beef_meal", factors.CategoryPurchase},
	{"스테이크", "beef_meal", factors.CategoryPurchase},
	{"돼지고기", "pork_meal", factors.CategoryPurchase},
	{"삼겹살", "pork_meal", factors.CategoryPurchase},
	{"닭고기", "chicken_meal", factors.CategoryPurchase},
	{"치킨", "chicken_meal", factors.CategoryPurchase},
	{"생선", "fish_meal", factors.CategoryPurchase},
	{"채식", "vegetarian_meal", factors.CategoryPurchase},
	{"비건", "vegan_meal", factors.CategoryPurchase},
	{"커피", "coffee", factors.CategoryPurchase},
	{"아메리카노", "coffee", factors.CategoryPurchase},
	{"라떼", "coffee", factors.CategoryPurchase},
	{"우유", "milk_liter", factors.CategoryPurchase},
	// Food, English
	{"beef", "beef_meal", factors.CategoryPurchase},
	{"steak", "beef_meal", factors.CategoryPurchase},
	{"pork", "pork_meal", factors.CategoryPurchase},
	{"chicken", "chicken_meal", factors.CategoryPurchase},
	{"fish", "fish_meal", factors.CategoryPurchase},
	{"vegetarian", "vegetarian_meal", factors.CategoryPurchase},
	{"vegan", "vegan_meal", factors.CategoryPurchase},
	{"coffee", "coffee", factors.CategoryPurchase},
	{"milk", "milk_liter", factors.CategoryPurchase},

	// Fashion, Korean
	{"티셔츠", "tshirt_fastfashion", factors.CategoryPurchase},
	{"옷", "tshirt_fastfashion", factors.CategoryPurchase},
	{"청바지", "jeans_fastfashion", factors.CategoryPurchase},
	{"바지", "jeans_fastfashion", factors.CategoryPurchase},
	{"신발", "sneakers_new", factors.CategoryPurchase},
	{"운동화", "sneakers_new", factors.CategoryPurchase},
	{"중고", "tshirt_secondhand", factors.CategoryPurchase},
	// Fashion, English
	{"tshirt", "tshirt_fastfashion", factors.CategoryPurchase},
	{"t-shirt", "tshirt_fastfashion", factors.CategoryPurchase},
	{"shirt", "tshirt_fastfashion", factors.CategoryPurchase},
	{"jeans", "jeans_fastfashion", factors.CategoryPurchase},
	{"pants", "jeans_fastfashion", factors.CategoryPurchase},
	{"shoes", "sneakers_new", factors.CategoryPurchase},
	{"sneakers", "sneakers_new", factors.CategoryPurchase},
	{"secondhand", "tshirt_secondhand", factors.CategoryPurchase},
	{"used", "tshirt_secondhand", factors.CategoryPurchase},

	// Home energy, Korean
	{"전기", "electricity_kwh", factors.CategoryHomeEnergy},
	{"에어컨", "electricity_kwh", factors.CategoryHomeEnergy},
	{"냉방", "electricity_kwh", factors.CategoryHomeEnergy},
	{"난방", "natural_gas_m3", factors.CategoryHomeEnergy},
	{"가스", "natural_gas_m3", factors.CategoryHomeEnergy},
	{"보일러", "natural_gas_m3", factors.CategoryHomeEnergy},
	{"샤워", "hot_water_shower", factors.CategoryHomeEnergy},
	// Home energy, English
	{"electricity", "electricity_kwh", factors.CategoryHomeEnergy},
	{"electric", "electricity_kwh", factors.CategoryHomeEnergy},
	{"ac", "electricity_kwh", factors.CategoryHomeEnergy},
	{"air conditioning", "electricity_kwh", factors.CategoryHomeEnergy},
	{"heating", "natural_gas_m3", factors.CategoryHomeEnergy},
	{"gas", "natural_gas_m3", factors.CategoryHomeEnergy},
	{"shower", "hot_water_shower", factors.CategoryHomeEnergy},
}
