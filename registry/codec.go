package registry

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sgostarter/libquant/interp"
)

// CheckName accepts names that are usable as file names and redis hash fields.
func CheckName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	return nil
}

// Encode describes impl under name. ID and UpdatedAt are left to the caller.
func Encode(name string, impl interp.Interpolant[float64, float64]) (d *Descriptor, err error) {
	if err = CheckName(name); err != nil {
		return
	}

	d = &Descriptor{
		Name: name,
	}

	switch o := impl.(type) {
	case *interp.Linear[float64, float64]:
		d.Kind = KindLinear
	case *interp.PiecewiseConstant[float64, float64]:
		d.Kind = KindPiecewiseConstant
	case *interp.CubicSpline[float64, float64]:
		d.Kind = KindCubicSpline
		d.SlopeGenerator = o.SlopeGenerator().Name()
	default:
		err = fmt.Errorf("%w: %T", ErrUnknownKind, impl)

		return
	}

	d.Data, err = json.Marshal(impl)

	return
}

// Decode rebuilds the interpolant of d. An empty slope generator name means
// forward difference.
func Decode(d *Descriptor) (impl interp.Mutable[float64, float64], err error) {
	switch d.Kind {
	case KindLinear:
		lin := &interp.Linear[float64, float64]{}
		err = lin.UnmarshalJSON(d.Data)
		impl = lin
	case KindPiecewiseConstant:
		pc := &interp.PiecewiseConstant[float64, float64]{}
		err = pc.UnmarshalJSON(d.Data)
		impl = pc
	case KindCubicSpline:
		var generator interp.SlopeGenerator[float64, float64]

		generator, err = slopeGenerator(d.SlopeGenerator)
		if err != nil {
			return
		}

		impl, err = interp.UnmarshalCubicSpline(d.Data, generator)
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownKind, d.Kind)
	}

	if err != nil {
		impl = nil
	}

	return
}

func slopeGenerator(name string) (interp.SlopeGenerator[float64, float64], error) {
	if name == "" {
		name = interp.ForwardDifferenceName
	}

	g, ok := interp.SlopeGeneratorByName[float64, float64](name)
	if !ok {
		return nil, fmt.Errorf("%w: slope generator %q", ErrUnknownKind, name)
	}

	return g, nil
}
