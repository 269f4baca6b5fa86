package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBasePriceExactMatchIgnoresCase(t *testing.T) {
	tables := DefaultTables()

	for _, name := range []string{"onion", "Onion", "ONION", "  onion "} {
		bp := tables.BasePriceFor(name, 50, "kg")
		assert.Equal(t, 30.0, bp.Price, "lookup for %q", name)
		assert.Equal(t, "kg", bp.Unit)
	}
}

func TestBasePriceSubstringMatch(t *testing.T) {
	tables := DefaultTables()

	// Query contains a table key.
	bp := tables.BasePriceFor("Basmati Rice", 50, "kg")
	assert.Equal(t, 60.0, bp.Price)

	// Table key contains the query.
	bp = tables.BasePriceFor("lentil", 50, "kg")
	assert.Equal(t, 120.0, bp.Price)
}

func TestBasePriceCategoryFallback(t *testing.T) {
	tables := DefaultTables()

	tests := []struct {
		item  string
		price float64
	}{
		{"Bitter Gourd", 40}, // vegetable keyword
		{"Alphonso Mango", 80},
		{"Fresh Curd", 60},
	}
	for _, tt := range tests {
		t.Run(tt.item, func(t *testing.T) {
			bp := tables.BasePriceFor(tt.item, 50, "kg")
			assert.Equal(t, tt.price, bp.Price)
		})
	}
}

func TestBasePriceNumericDefault(t *testing.T) {
	tables := DefaultTables()

	bp := tables.BasePriceFor("Mystery Item", 50, "kg")
	assert.Equal(t, 50.0, bp.Price)
	assert.Equal(t, "kg", bp.Unit)
}

func TestMultiplierLookup(t *testing.T) {
	tables := DefaultTables()

	assert.Equal(t, 1.35, tables.MultiplierFor("Mumbai"))
	assert.Equal(t, 1.35, tables.MultiplierFor("mumbai"))
	assert.Equal(t, 0.95, tables.MultiplierFor("Jaipur"))
	assert.Equal(t, 1.0, tables.MultiplierFor("UnknownCity"))
}

func TestNewTablesNormalizesKeys(t *testing.T) {
	tables := NewTables(TablesData{
		BasePrices:  map[string]BasePrice{"Jaggery": {Price: 70, Unit: "kg"}},
		Multipliers: map[string]float64{"Kochi": 1.12},
		Categories: []Category{
			{Name: "spice", Keywords: []string{"Masala"}, Price: 200},
		},
	})

	assert.Equal(t, 70.0, tables.BasePriceFor("jaggery", 50, "kg").Price)
	assert.Equal(t, 1.12, tables.MultiplierFor("KOCHI"))
	assert.Equal(t, 200.0, tables.BasePriceFor("garam masala", 50, "kg").Price)
}

func TestRoundHalfUp(t *testing.T) {
	assert.Equal(t, int64(41), roundHalfUp(40.5))
	assert.Equal(t, int64(40), roundHalfUp(40.49))
	assert.Equal(t, int64(41), roundHalfUp(30*1.35))
	assert.Equal(t, int64(35), roundHalfUp(41*0.85))
}
