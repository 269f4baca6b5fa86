package pricing

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var folder = cases.Fold()

// normalize case-folds an item or city name for lookup keys.
func normalize(s string) string {
	return folder.String(strings.TrimSpace(s))
}

// titler renders normalized names back to display casing.
var titler = cases.Title(language.English)

// BasePrice is the unadjusted per-unit price for an item.
type BasePrice struct {
	Price float64 `mapstructure:"price"`
	Unit  string  `mapstructure:"unit"`
}

// Category groups items whose base price can only be guessed, mapping a
// keyword set to a representative price.
type Category struct {
	Name     string   `mapstructure:"name"`
	Keywords []string `mapstructure:"keywords"`
	Price    float64  `mapstructure:"price"`
}

// Tables holds the static pricing data: base prices keyed by normalized
// item name, city multipliers keyed by normalized city name, and the
// category fallback keyword sets. Loaded once, never mutated at runtime.
type Tables struct {
	basePrices  map[string]BasePrice
	multipliers map[string]float64
	categories  []Category
}

// TablesData is the serializable form of Tables, loadable from a config
// file. The specific numbers are product decisions carried over as data.
type TablesData struct {
	BasePrices  map[string]BasePrice `mapstructure:"base_prices"`
	Multipliers map[string]float64   `mapstructure:"multipliers"`
	Categories  []Category           `mapstructure:"categories"`
}

// NewTables builds lookup tables from data, normalizing all keys.
func NewTables(data TablesData) *Tables {
	t := &Tables{
		basePrices:  make(map[string]BasePrice, len(data.BasePrices)),
		multipliers: make(map[string]float64, len(data.Multipliers)),
		categories:  data.Categories,
	}
	for name, bp := range data.BasePrices {
		t.basePrices[normalize(name)] = bp
	}
	for city, mult := range data.Multipliers {
		t.multipliers[normalize(city)] = mult
	}
	for i := range t.categories {
		for j, kw := range t.categories[i].Keywords {
			t.categories[i].Keywords[j] = normalize(kw)
		}
	}
	return t
}

// BasePriceFor resolves a base price for an item. Resolution order: exact
// match, substring match in either direction, category keyword fallback,
// then the configured default. It is total: there is always a price.
func (t *Tables) BasePriceFor(item string, defaultPrice float64, defaultUnit string) BasePrice {
	key := normalize(item)

	if bp, ok := t.basePrices[key]; ok {
		return bp
	}

	for name, bp := range t.basePrices {
		if strings.Contains(key, name) || strings.Contains(name, key) {
			return bp
		}
	}

	for _, cat := range t.categories {
		for _, kw := range cat.Keywords {
			if strings.Contains(key, kw) {
				return BasePrice{Price: cat.Price, Unit: defaultUnit}
			}
		}
	}

	return BasePrice{Price: defaultPrice, Unit: defaultUnit}
}

// MultiplierFor returns the city's price multiplier, or 1.0 for an
// unknown city.
func (t *Tables) MultiplierFor(city string) float64 {
	if mult, ok := t.multipliers[normalize(city)]; ok {
		return mult
	}
	return 1.0
}

// DefaultTables returns the built-in Indian grocery tables, used when no
// tables file is configured. Prices are rupees per unit.
func DefaultTables() *Tables {
	return NewTables(TablesData{
		BasePrices: map[string]BasePrice{
			"rice":        {Price: 60, Unit: "kg"},
			"wheat flour": {Price: 45, Unit: "kg"},
			"lentils":     {Price: 120, Unit: "kg"},
			"onion":       {Price: 30, Unit: "kg"},
			"potato":      {Price: 25, Unit: "kg"},
			"tomato":      {Price: 40, Unit: "kg"},
			"milk":        {Price: 55, Unit: "litre"},
			"sugar":       {Price: 42, Unit: "kg"},
			"salt":        {Price: 20, Unit: "kg"},
			"cooking oil": {Price: 140, Unit: "litre"},
			"eggs":        {Price: 75, Unit: "dozen"},
			"banana":      {Price: 50, Unit: "dozen"},
			"apple":       {Price: 160, Unit: "kg"},
			"paneer":      {Price: 320, Unit: "kg"},
			"tea":         {Price: 250, Unit: "kg"},
			"ghee":        {Price: 550, Unit: "litre"},
			"chicken":     {Price: 220, Unit: "kg"},
			"spinach":     {Price: 35, Unit: "kg"},
			"carrot":      {Price: 45, Unit: "kg"},
			"garlic":      {Price: 180, Unit: "kg"},
			"ginger":      {Price: 120, Unit: "kg"},
		},
		Multipliers: map[string]float64{
			"mumbai":    1.35,
			"delhi":     1.30,
			"bengaluru": 1.25,
			"bangalore": 1.25,
			"pune":      1.15,
			"chennai":   1.10,
			"hyderabad": 1.08,
			"kolkata":   1.05,
			"ahmedabad": 1.02,
			"surat":     0.98,
			"jaipur":    0.95,
			"indore":    0.92,
			"lucknow":   0.90,
			"bhopal":    0.90,
			"nagpur":    0.88,
			"patna":     0.85,
		},
		Categories: []Category{
			{
				Name:     "vegetable",
				Keywords: []string{"vegetable", "gourd", "brinjal", "bhindi", "okra", "cabbage", "cauliflower", "beans", "peas", "capsicum", "chilli", "greens"},
				Price:    40,
			},
			{
				Name:     "fruit",
				Keywords: []string{"fruit", "mango", "orange", "grape", "papaya", "guava", "melon", "berry", "pomegranate"},
				Price:    80,
			},
			{
				Name:     "dairy",
				Keywords: []string{"dairy", "curd", "yogurt", "butter", "cream", "cheese"},
				Price:    60,
			},
		},
	})
}
