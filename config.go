package pseudolru

import (
	"fmt"
	"math/rand"

	"github.com/spf13/viper"
)

// Config carries the tunables applications usually set from deployment
// files rather than at compile time. Zero fields fall back to package
// defaults.
type Config struct {
	Capacity   int `mapstructure:"capacity"`
	SampleSize int `mapstructure:"sample_size"`
	// Seed makes eviction order reproducible across runs when nonzero.
	Seed int64 `mapstructure:"seed"`
}

// LoadConfig reads a [Config] from the YAML file at path.
func LoadConfig(path string) (Config, error) {
	var (
		config Config
		v      = viper.New()
	)
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return config, fmt.Errorf("read config: %w", err)
	}
	if err := v.Unmarshal(&config); err != nil {
		return config, fmt.Errorf("unmarshal config: %w", err)
	}
	return config, nil
}

// FromConfig creates a [Cache] from config. Extra options apply after
// the config's own, so they win on conflict.
func FromConfig[Value any](config Config, options ...Option[Value]) (*Cache[Value], error) {
	capacity := config.Capacity
	if capacity == 0 {
		capacity = DefaultCapacity
	}
	preset := make([]Option[Value], 0, 2+len(options))
	if config.SampleSize > 0 {
		preset = append(preset, WithSampleSize[Value](config.SampleSize))
	}
	if config.Seed != 0 {
		preset = append(preset, WithRandom[Value](rand.New(rand.NewSource(config.Seed))))
	}
	return New[Value](capacity, append(preset, options...)...)
}
