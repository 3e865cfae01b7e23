package registry

import (
	"encoding/json"

	"github.com/sgostarter/libquant/interp"
)

type Kind string

const (
	KindLinear            Kind = "linear"
	KindPiecewiseConstant Kind = "piecewise_constant"
	KindCubicSpline       Kind = "cubic_spline"
)

// Descriptor is the stored form of a named curve. Data holds the knot JSON of
// the interpolant.
type Descriptor struct {
	ID             uint64          `json:"id" yaml:"id"`
	Name           string          `json:"name" yaml:"name"`
	Kind           Kind            `json:"kind" yaml:"kind"`
	SlopeGenerator string          `json:"slope_generator,omitempty" yaml:"slopeGenerator,omitempty"`
	UpdatedAt      int64           `json:"updated_at" yaml:"updatedAt"`
	Data           json.RawMessage `json:"data" yaml:"-"`
}

type Curve = interp.AnyMutable[float64, float64]

type Registry interface {
	Put(name string, impl interp.Mutable[float64, float64]) error
	// Get returns a handle of its own; callers Release it when done.
	Get(name string) (*Curve, error)
	Eval(name string, x float64) (float64, error)
	Integrate(name string, from, to float64) (float64, error)
	Update(name string, i int, value float64) error
	Delete(name string) error
	Names() ([]string, error)

	TriggerStop()
	Wait()
}

// Storage persists descriptors by name. Load and Remove return
// commerr.ErrNotFound for unknown names.
type Storage interface {
	Load(name string) (*Descriptor, error)
	Save(d *Descriptor) error
	Remove(name string) error
	List() ([]string, error)
}
