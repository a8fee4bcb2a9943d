package factors

import (
	"embed"
	"fmt"
	"strings"
	"sync"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"
)

//go:embed data/emission_factors.yaml data/product_factors.yaml
var referenceData embed.FS

// metadata describes a reference table's provenance. Version must be
// valid semver so table revisions can be compared across releases.
type metadata struct {
	Version string `yaml:"version"`
	Source  string `yaml:"source"`
	Updated string `yaml:"updated"`
}

type mobilityEntry struct {
	Item        string  `yaml:"item"`
	CO2eKgPerKm float64 `yaml:"co2e_kg_per_km"`
	WaterLPerKm float64 `yaml:"water_l_per_km"`
	Description string  `yaml:"description"`
}

type energyEntry struct {
	Item          string  `yaml:"item"`
	CO2eKgPerUnit float64 `yaml:"co2e_kg_per_unit"`
	Unit          string  `yaml:"unit"`
	Description   string  `yaml:"description"`
}

type productEntry struct {
	Item          string  `yaml:"item"`
	CO2eKgPerUnit float64 `yaml:"co2e_kg_per_unit"`
	WaterLPerUnit float64 `yaml:"water_l_per_unit"`
	Unit          string  `yaml:"unit"`
	Description   string  `yaml:"description"`
}

type subcategoryEntry struct {
	Subcategory string         `yaml:"subcategory"`
	Items       []productEntry `yaml:"items"`
}

type emissionFile struct {
	Metadata   metadata        `yaml:"metadata"`
	Mobility   []mobilityEntry `yaml:"mobility"`
	HomeEnergy []energyEntry   `yaml:"home_energy"`
}

type productFile struct {
	Metadata metadata           `yaml:"metadata"`
	Purchase []subcategoryEntry `yaml:"purchase"`
}

// purchaseGroup is one purchase subcategory with its factors in
// declaration order plus an item index for direct lookup.
type purchaseGroup struct {
	subcategory string
	factors     []Factor
	byItem      map[string]Factor
}

// table is the fully loaded, immutable factor table. Once built it is
// only ever read.
type table struct {
	mobility   map[string]Factor
	homeEnergy map[string]Factor
	purchase   []purchaseGroup

	// all enumerates every loaded factor exactly once per category, in
	// table declaration order. Built once; All returns it as-is.
	all map[Category][]Factor
}

// Repository state: a memoized table behind a read-write guard.
// Concurrent first access is serialized so the table is populated
// exactly once; ClearCache re-arms the lazy load.
var (
	tableMu     sync.RWMutex //nolint:gochecknoglobals // Guards cachedTable
	cachedTable *table       //nolint:gochecknoglobals // Loaded lazily on first access
)

// Get resolves the factor for (category, item, subcategory). Item lookup
// is case-insensitive and ignores surrounding whitespace. For purchases,
// an explicit subcategory is consulted first; otherwise every subcategory
// is scanned in declaration order and the first match wins.
//
// Returns an error wrapping ErrFactorNotFound when no entry matches.
func Get(category Category, item, subcategory string) (Factor, error) {
	t, err := load()
	if err != nil {
		return Factor{}, err
	}

	key := normalizeKey(item)

	switch category {
	case CategoryMobility:
		if f, ok := t.mobility[key]; ok {
			return f, nil
		}
	case CategoryHomeEnergy:
		if f, ok := t.homeEnergy[key]; ok {
			return f, nil
		}
	case CategoryPurchase:
		if sub := normalizeKey(subcategory); sub != "" {
			for _, group := range t.purchase {
				if group.subcategory != sub {
					continue
				}
				if f, ok := group.byItem[key]; ok {
					return f, nil
				}
			}
		}
		for _, group := range t.purchase {
			if f, ok := group.byItem[key]; ok {
				return f, nil
			}
		}
	}

	return Factor{}, fmt.Errorf("%w: category=%q item=%q", ErrFactorNotFound, category, item)
}

// All returns every loaded factor grouped by category, each exactly once,
// in table declaration order. The same cached map is returned until
// ClearCache; callers must treat it as read-only.
func All() (map[Category][]Factor, error) {
	t, err := load()
	if err != nil {
		return nil, err
	}
	return t.all, nil
}

// ClearCache drops the memoized table so the next access reloads it.
// Safe to call before or after the first load, and idempotent.
func ClearCache() {
	tableMu.Lock()
	cachedTable = nil
	tableMu.Unlock()
}

// load returns the cached table, building it on first access. The
// double-checked guard ensures every caller observes either a fully
// populated table or triggers the single build.
func load() (*table, error) {
	tableMu.RLock()
	t := cachedTable
	tableMu.RUnlock()
	if t != nil {
		return t, nil
	}

	tableMu.Lock()
	defer tableMu.Unlock()
	if cachedTable != nil {
		return cachedTable, nil
	}

	built, err := buildTable()
	if err != nil {
		return nil, err
	}
	cachedTable = built
	return cachedTable, nil
}

func buildTable() (*table, error) {
	var emissions emissionFile
	if err := readYAML("data/emission_factors.yaml", &emissions); err != nil {
		return nil, err
	}
	var products productFile
	if err := readYAML("data/product_factors.yaml", &products); err != nil {
		return nil, err
	}
	if err := validateMetadata("emission_factors", emissions.Metadata); err != nil {
		return nil, err
	}
	if err := validateMetadata("product_factors", products.Metadata); err != nil {
		return nil, err
	}

	t := &table{
		mobility:   make(map[string]Factor, len(emissions.Mobility)),
		homeEnergy: make(map[string]Factor, len(emissions.HomeEnergy)),
		all:        make(map[Category][]Factor, 3),
	}

	for _, e := range emissions.Mobility {
		f := Factor{
			Item:         normalizeKey(e.Item),
			Category:     CategoryMobility,
			CO2ePerUnit:  e.CO2eKgPerKm,
			WaterPerUnit: e.WaterLPerKm,
			Unit:         "km",
			Description:  e.Description,
		}
		if _, dup := t.mobility[f.Item]; dup {
			return nil, fmt.Errorf("%w: duplicate mobility item %q", ErrInvalidReferenceData, f.Item)
		}
		t.mobility[f.Item] = f
		t.all[CategoryMobility] = append(t.all[CategoryMobility], f)
	}

	for _, e := range emissions.HomeEnergy {
		f := Factor{
			Item:        normalizeKey(e.Item),
			Category:    CategoryHomeEnergy,
			CO2ePerUnit: e.CO2eKgPerUnit,
			// Water footprint is not tracked for home energy.
			WaterPerUnit: 0,
			Unit:         e.Unit,
			Description:  e.Description,
		}
		if _, dup := t.homeEnergy[f.Item]; dup {
			return nil, fmt.Errorf("%w: duplicate home_energy item %q", ErrInvalidReferenceData, f.Item)
		}
		t.homeEnergy[f.Item] = f
		t.all[CategoryHomeEnergy] = append(t.all[CategoryHomeEnergy], f)
	}

	for _, sub := range products.Purchase {
		group := purchaseGroup{
			subcategory: normalizeKey(sub.Subcategory),
			byItem:      make(map[string]Factor, len(sub.Items)),
		}
		for _, e := range sub.Items {
			f := Factor{
				Item:         normalizeKey(e.Item),
				Category:     CategoryPurchase,
				Subcategory:  group.subcategory,
				CO2ePerUnit:  e.CO2eKgPerUnit,
				WaterPerUnit: e.WaterLPerUnit,
				Unit:         e.Unit,
				Description:  e.Description,
			}
			if _, dup := group.byItem[f.Item]; dup {
				return nil, fmt.Errorf("%w: duplicate purchase item %q in %q",
					ErrInvalidReferenceData, f.Item, group.subcategory)
			}
			group.byItem[f.Item] = f
			group.factors = append(group.factors, f)
			t.all[CategoryPurchase] = append(t.all[CategoryPurchase], f)
		}
		t.purchase = append(t.purchase, group)
	}

	return t, nil
}

func readYAML(name string, out any) error {
	data, err := referenceData.ReadFile(name)
	if err != nil {
		return fmt.Errorf("%w: read %s: %v", ErrInvalidReferenceData, name, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: parse %s: %v", ErrInvalidReferenceData, name, err)
	}
	return nil
}

func validateMetadata(name string, meta metadata) error {
	if _, err := semver.NewVersion(meta.Version); err != nil {
		return fmt.Errorf("%w: %s metadata version %q: %v",
			ErrInvalidReferenceData, name, meta.Version, err)
	}
	return nil
}

// normalizeKey lowercases and trims an item or subcategory key so lookup
// is case- and whitespace-insensitive.
func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
