package registry

import (
	"fmt"
	"os"
	"time"

	"github.com/sgostarter/libquant/interp"
	"gopkg.in/yaml.v3"
)

// SeedCurve is a curve created at start up when storage does not have it yet.
// Knots are given loosely, as [grid, value] pairs or {grid, value} maps.
type SeedCurve struct {
	Name            string        `yaml:"name" json:"name"`
	Kind            Kind          `yaml:"kind" json:"kind"`
	SlopeGenerator  string        `yaml:"slopeGenerator" json:"slopeGenerator"`
	PartitionRatio  float64       `yaml:"partitionRatio" json:"partitionRatio"`
	RightContinuous bool          `yaml:"rightContinuous" json:"rightContinuous"`
	Knots           []interface{} `yaml:"knots" json:"knots"`
}

type Config struct {
	CacheTTL        time.Duration `yaml:"cacheTTL" json:"cacheTTL"`
	CleanupInterval time.Duration `yaml:"cleanupInterval" json:"cleanupInterval"`
	// ReloadInterval > 0 drops cached curves that changed in storage.
	ReloadInterval time.Duration `yaml:"reloadInterval" json:"reloadInterval"`

	DefaultKind           Kind   `yaml:"defaultKind" json:"defaultKind"`
	DefaultSlopeGenerator string `yaml:"defaultSlopeGenerator" json:"defaultSlopeGenerator"`

	Seeds []SeedCurve `yaml:"seeds" json:"seeds"`
}

func LoadConfig(file string) (cfg *Config, err error) {
	d, err := os.ReadFile(file)
	if err != nil {
		return
	}

	cfg = &Config{}

	err = yaml.Unmarshal(d, cfg)
	if err != nil {
		cfg = nil
	}

	return
}

func (cfg *Config) fix() {
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 10 * time.Minute
	}

	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = cfg.CacheTTL
	}

	if cfg.DefaultKind == "" {
		cfg.DefaultKind = KindLinear
	}

	if cfg.DefaultSlopeGenerator == "" {
		cfg.DefaultSlopeGenerator = interp.ForwardDifferenceName
	}
}

// Build makes the interpolant of the seed; empty fields take the defaults.
func (seed *SeedCurve) Build(defaultKind Kind, defaultSlopeGenerator string) (
	impl interp.Mutable[float64, float64], err error) {
	knots, err := interp.LooseKnots(seed.Knots)
	if err != nil {
		return
	}

	grids, values := interp.SplitKnots(knots)

	kind := seed.Kind
	if kind == "" {
		kind = defaultKind
	}

	switch kind {
	case KindLinear:
		impl, err = interp.NewLinear(grids, values)
	case KindPiecewiseConstant:
		impl, err = interp.NewPiecewiseConstant(grids, values, seed.PartitionRatio, seed.RightContinuous)
	case KindCubicSpline:
		name := seed.SlopeGenerator
		if name == "" {
			name = defaultSlopeGenerator
		}

		var generator interp.SlopeGenerator[float64, float64]

		generator, err = slopeGenerator(name)
		if err != nil {
			return
		}

		impl, err = interp.NewCubicSpline(grids, values, generator)
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}

	if err != nil {
		impl = nil
	}

	return
}
