// Package config holds the process-wide tuning knobs of the random geometry
// generator. A Config is built once at startup and passed to the generators;
// it is never mutated afterwards.
package config

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/spf13/viper"

	geotools "github.com/tingold/orb-geotools"
)

// Defaults used when neither the environment nor a config file set a value.
const (
	DefaultMaxLength   = 0.0001
	DefaultMaxRotation = math.Pi / 8
)

// EnvPrefix is prepended to every environment key: GEO_MAX_LENGTH,
// GEO_MAX_ROTATION and GEO_BBOX.
const EnvPrefix = "GEO"

// DefaultBBox covers the whole earth: [-180, -90, 180, 90].
var DefaultBBox = orb.Bound{Min: orb.Point{-180, -90}, Max: orb.Point{180, 90}}

// Config configures random geometry generation.
type Config struct {
	MaxLength   float64   `mapstructure:"max_length" yaml:"max_length"`     // maximum step length of the random walk
	MaxRotation float64   `mapstructure:"max_rotation" yaml:"max_rotation"` // maximum angular perturbation per step, radians
	BBox        orb.Bound `mapstructure:"-" yaml:"-"`                       // area new walks are seeded in
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		MaxLength:   DefaultMaxLength,
		MaxRotation: DefaultMaxRotation,
		BBox:        DefaultBBox,
	}
}

// Load reads configuration from environment variables and, when present, a
// geotools.yaml file in the working directory or ./configs.
func Load() (Config, error) {
	return load(viper.New(), true)
}

// LoadFile reads configuration from the given YAML file, still allowing the
// environment to override it.
func LoadFile(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	return load(v, false)
}

func load(v *viper.Viper, search bool) (Config, error) {
	v.SetDefault("max_length", DefaultMaxLength)
	v.SetDefault("max_rotation", DefaultMaxRotation)
	v.SetDefault("bbox", "")

	if search {
		v.SetConfigName("geotools")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		_ = v.ReadInConfig() // OK if missing
	}

	// GEO_MAX_LENGTH → max_length
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	bbox, err := ParseBBox(v.GetStringSlice("bbox"))
	if err != nil {
		return Config{}, err
	}
	cfg.BBox = bbox

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseBBox parses "west,south,east,north". Values may be given as a single
// comma or space separated string or as separate items. An empty input
// yields DefaultBBox.
func ParseBBox(values []string) (orb.Bound, error) {
	var fields []string
	for _, v := range values {
		fields = append(fields, strings.FieldsFunc(v, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t' || r == '[' || r == ']'
		})...)
	}

	if len(fields) == 0 {
		return DefaultBBox, nil
	}
	if len(fields) != 4 {
		return orb.Bound{}, &geotools.InvalidOptionError{
			Option: "bbox",
			Reason: fmt.Sprintf("expected 4 numbers, got %d", len(fields)),
		}
	}

	var nums [4]float64
	for i, f := range fields {
		n, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return orb.Bound{}, &geotools.InvalidOptionError{Option: "bbox", Reason: err.Error()}
		}
		nums[i] = n
	}

	bound := orb.Bound{Min: orb.Point{nums[0], nums[1]}, Max: orb.Point{nums[2], nums[3]}}
	if err := ValidateBBox(bound); err != nil {
		return orb.Bound{}, err
	}
	return bound, nil
}

// ValidateBBox rejects non-finite or inverted bounds.
func ValidateBBox(b orb.Bound) error {
	for _, n := range []float64{b.Min[0], b.Min[1], b.Max[0], b.Max[1]} {
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return &geotools.InvalidOptionError{Option: "bbox", Reason: "values must be finite"}
		}
	}
	if b.Min[0] > b.Max[0] {
		return &geotools.InvalidOptionError{Option: "bbox", Reason: "west is greater than east"}
	}
	if b.Min[1] > b.Max[1] {
		return &geotools.InvalidOptionError{Option: "bbox", Reason: "south is greater than north"}
	}
	return nil
}

// Validate checks every field of the configuration.
func (c Config) Validate() error {
	if math.IsNaN(c.MaxLength) || math.IsInf(c.MaxLength, 0) || c.MaxLength < 0 {
		return &geotools.InvalidOptionError{Option: "max_length", Reason: "must be a finite non-negative number"}
	}
	if math.IsNaN(c.MaxRotation) || math.IsInf(c.MaxRotation, 0) || c.MaxRotation < 0 {
		return &geotools.InvalidOptionError{Option: "max_rotation", Reason: "must be a finite non-negative number"}
	}
	return ValidateBBox(c.BBox)
}

// BBoxArray returns the bounding box as [west, south, east, north].
func (c Config) BBoxArray() [4]float64 {
	return [4]float64{c.BBox.Min[0], c.BBox.Min[1], c.BBox.Max[0], c.BBox.Max[1]}
}
