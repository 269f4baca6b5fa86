package pricing

import "time"

// QuoteRatios are the fixed channel ratios applied to a city-adjusted
// base price when synthesizing a comparison. They are configuration, not
// constants, so product can retune them without a code change.
type QuoteRatios struct {
	LocalMarket   float64 `mapstructure:"local_market"`
	Supermarket   float64 `mapstructure:"supermarket"`
	OnlineGrocery float64 `mapstructure:"online_grocery"`
	Wholesale     float64 `mapstructure:"wholesale"`
}

// Config holds the tunables for estimation and insight aggregation.
type Config struct {
	// CacheTTL is how long an estimate stays valid.
	CacheTTL time.Duration `mapstructure:"cache_ttl"`

	// Ratios are the synthesized quote channel ratios.
	Ratios QuoteRatios `mapstructure:"ratios"`

	// DefaultBasePrice is the last-resort base price when neither the
	// table nor the category keywords match an item.
	DefaultBasePrice float64 `mapstructure:"default_base_price"`

	// DefaultUnit is used for items resolved through category fallback.
	DefaultUnit string `mapstructure:"default_unit"`

	// StapleBasket is the fixed item basket for market insights.
	StapleBasket []string `mapstructure:"staple_basket"`

	// DealRatio is applied to the online-grocery-equivalent price to
	// produce a deal price.
	DealRatio float64 `mapstructure:"deal_ratio"`

	// HighPriceThreshold and LowPriceThreshold bound the Medium price
	// level classification of a city multiplier.
	HighPriceThreshold float64 `mapstructure:"high_price_threshold"`
	LowPriceThreshold  float64 `mapstructure:"low_price_threshold"`

	// MaxExternalQuotes caps quotes merged from the external source.
	MaxExternalQuotes int `mapstructure:"max_external_quotes"`
}

// Defaults returns the default pricing configuration.
func Defaults() *Config {
	return &Config{
		CacheTTL: 30 * time.Minute,
		Ratios: QuoteRatios{
			LocalMarket:   0.85,
			Supermarket:   1.10,
			OnlineGrocery: 1.00,
			Wholesale:     0.75,
		},
		DefaultBasePrice:   50,
		DefaultUnit:        "kg",
		StapleBasket:       []string{"Rice", "Lentils", "Onion", "Potato", "Cooking Oil"},
		DealRatio:          0.80,
		HighPriceThreshold: 1.2,
		LowPriceThreshold:  1.0,
		MaxExternalQuotes:  3,
	}
}

// Validate checks the configuration for values that would break the
// estimator's invariants.
func (c *Config) Validate() error {
	if c.CacheTTL <= 0 {
		return ErrInvalidConfig{Field: "cache_ttl", Reason: "must be positive"}
	}
	for _, r := range []struct {
		name  string
		value float64
	}{
		{"ratios.local_market", c.Ratios.LocalMarket},
		{"ratios.supermarket", c.Ratios.Supermarket},
		{"ratios.online_grocery", c.Ratios.OnlineGrocery},
		{"ratios.wholesale", c.Ratios.Wholesale},
	} {
		if r.value <= 0 {
			return ErrInvalidConfig{Field: r.name, Reason: "must be positive"}
		}
	}
	if c.DefaultBasePrice <= 0 {
		return ErrInvalidConfig{Field: "default_base_price", Reason: "must be positive"}
	}
	if len(c.StapleBasket) == 0 {
		return ErrInvalidConfig{Field: "staple_basket", Reason: "must not be empty"}
	}
	if c.DealRatio <= 0 || c.DealRatio > 1 {
		return ErrInvalidConfig{Field: "deal_ratio", Reason: "must be in (0, 1]"}
	}
	if c.HighPriceThreshold <= c.LowPriceThreshold {
		return ErrInvalidConfig{Field: "high_price_threshold", Reason: "must be greater than low_price_threshold"}
	}
	if c.MaxExternalQuotes < 0 {
		return ErrInvalidConfig{Field: "max_external_quotes", Reason: "must be non-negative"}
	}
	return nil
}

// ErrInvalidConfig is returned when the pricing configuration is invalid.
type ErrInvalidConfig struct {
	Field  string
	Reason string
}

func (e ErrInvalidConfig) Error() string {
	return e.Field + ": " + e.Reason
}
