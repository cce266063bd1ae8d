package generator

// Config drives the synthetic catalog generator.
type Config struct {
	NumCards      int
	ZeroFeeChance float64
	Seed          int64
}

// DefaultConfig returns baseline settings for a demo-sized catalog.
func DefaultConfig() Config {
	return Config{
		NumCards:      60,
		ZeroFeeChance: 0.25,
		Seed:          42,
	}
}
