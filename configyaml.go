package jsonpath

import (
	"github.com/goccy/go-yaml"
	"golang.org/x/time/rate"
)

// yamlConfiguration is the on-disk shape of a Configuration, for hosts that
// want to keep evaluation knobs in a config file rather than wiring Options
// in Go source.
type yamlConfiguration struct {
	ThrowOnMissingProperty bool   `yaml:"throwOnMissingProperty"`
	MaxScanDepth           int    `yaml:"maxScanDepth"`
	ScanRatePerSecond      float64 `yaml:"scanRatePerSecond"`
	ScanBurst              int    `yaml:"scanBurst"`
}

// LoadConfiguration parses a YAML document (see yamlConfiguration's field
// tags) into a Configuration using DefaultProvider. A zero or negative
// ScanRatePerSecond leaves scan throttling disabled.
func LoadConfiguration(data []byte) (*Configuration, error) {
	var raw yamlConfiguration
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, newErrorf(ErrInvalidArgument, "parse yaml configuration: %v", err)
	}

	opts := []Option{}
	if raw.ThrowOnMissingProperty {
		opts = append(opts, WithThrowOnMissingProperty())
	}
	if raw.MaxScanDepth > 0 {
		opts = append(opts, WithMaxScanDepth(raw.MaxScanDepth))
	}
	if raw.ScanRatePerSecond > 0 {
		burst := raw.ScanBurst
		if burst <= 0 {
			burst = 1
		}
		opts = append(opts, WithScanLimiter(rate.NewLimiter(rate.Limit(raw.ScanRatePerSecond), burst)))
	}
	return DefaultConfiguration(opts...), nil
}
