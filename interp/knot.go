package interp

import (
	"bytes"
	"encoding/json"
	"reflect"

	"github.com/spf13/cast"
)

// Knot is one (grid, value) pair of an interpolant.
type Knot[X any, Y Float] struct {
	Grid  X `json:"grid" yaml:"grid"`
	Value Y `json:"value" yaml:"value"`
}

func Knots[X any, Y Float](impl Interpolant[X, Y]) []Knot[X, Y] {
	grids, values := impl.Grids(), impl.Values()

	knots := make([]Knot[X, Y], len(grids))
	for i := range grids {
		knots[i] = Knot[X, Y]{Grid: grids[i], Value: values[i]}
	}

	return knots
}

func SplitKnots[X any, Y Float](knots []Knot[X, Y]) (grids []X, values []Y) {
	grids = make([]X, len(knots))
	values = make([]Y, len(knots))

	for i, k := range knots {
		grids[i], values[i] = k.Grid, k.Value
	}

	return
}

// LooseKnots converts knots decoded into interface{} values, e.g. from YAML.
// A knot is either a map with "grid" and "value" keys or a two element list.
func LooseKnots(raw []interface{}) (knots []Knot[float64, float64], err error) {
	knots = make([]Knot[float64, float64], 0, len(raw))

	for idx, item := range raw {
		var g, v interface{}

		if pair, e := cast.ToSliceE(item); e == nil {
			if len(pair) != 2 {
				err = malformedData("knot %d has %d elements", idx, len(pair))

				return
			}

			g, v = pair[0], pair[1]
		} else {
			m, e := cast.ToStringMapE(item)
			if e != nil {
				err = malformedData("knot %d: %v", idx, e)

				return
			}

			var okG, okV bool

			g, okG = m["grid"]
			v, okV = m["value"]

			if !okG || !okV {
				err = malformedData("knot %d needs grid and value", idx)

				return
			}
		}

		var k Knot[float64, float64]

		if k.Grid, err = cast.ToFloat64E(g); err != nil {
			err = malformedData("knot %d grid: %v", idx, err)

			return
		}

		if k.Value, err = cast.ToFloat64E(v); err != nil {
			err = malformedData("knot %d value: %v", idx, err)

			return
		}

		knots = append(knots, k)
	}

	return
}

type linearJSON[X any, Y Float] struct {
	Knots []Knot[X, Y] `json:"knots"`
}

type piecewiseConstantJSON[X any, Y Float] struct {
	Knots             []Knot[X, Y] `json:"knots"`
	IsRightContinuous *bool        `json:"is_right_continuous"`
	PartitionRatio    *float64     `json:"partition_ratio"`
}

type cubicSplineJSON[X any, Y Float] struct {
	Knots          []Knot[X, Y]    `json:"knots"`
	SlopeGenerator json.RawMessage `json:"slope_generator"`
}

func decodeJSON(data []byte, v interface{}) error {
	if err := json.Unmarshal(data, v); err != nil {
		return malformedData("%v", err)
	}

	return nil
}

func (lin *Linear[X, Y]) MarshalJSON() ([]byte, error) {
	return json.Marshal(linearJSON[X, Y]{Knots: Knots[X, Y](lin)})
}

func (lin *Linear[X, Y]) UnmarshalJSON(data []byte) error {
	var d linearJSON[X, Y]

	if err := decodeJSON(data, &d); err != nil {
		return err
	}

	if d.Knots == nil {
		return malformedData("no knots")
	}

	return lin.Initialize(SplitKnots(d.Knots))
}

func (pc *PiecewiseConstant[X, Y]) MarshalJSON() ([]byte, error) {
	return json.Marshal(piecewiseConstantJSON[X, Y]{
		Knots:             Knots[X, Y](pc),
		IsRightContinuous: &pc.rightContinuous,
		PartitionRatio:    &pc.partitionRatio,
	})
}

func (pc *PiecewiseConstant[X, Y]) UnmarshalJSON(data []byte) error {
	var d piecewiseConstantJSON[X, Y]

	if err := decodeJSON(data, &d); err != nil {
		return err
	}

	switch {
	case d.Knots == nil:
		return malformedData("no knots")
	case d.IsRightContinuous == nil:
		return malformedData("no is_right_continuous")
	case d.PartitionRatio == nil:
		return malformedData("no partition_ratio")
	}

	if err := checkPartitionRatio(*d.PartitionRatio); err != nil {
		return err
	}

	if err := pc.Initialize(SplitKnots(d.Knots)); err != nil {
		return err
	}

	pc.partitionRatio, pc.rightContinuous = *d.PartitionRatio, *d.IsRightContinuous

	return nil
}

// MarshalJSON writes the slope generator as its own JSON encoding, which is
// {} for the stateless generators of this package.
func (sp *CubicSpline[X, Y]) MarshalJSON() ([]byte, error) {
	generator, err := json.Marshal(sp.SlopeGenerator())
	if err != nil {
		return nil, err
	}

	return json.Marshal(cubicSplineJSON[X, Y]{
		Knots:          Knots[X, Y](sp),
		SlopeGenerator: generator,
	})
}

// UnmarshalJSON keeps the spline's slope generator. A generator that is a
// json.Unmarshaler reads the slope_generator object into a copy, which replaces
// it once the knots are accepted.
func (sp *CubicSpline[X, Y]) UnmarshalJSON(data []byte) error {
	var d cubicSplineJSON[X, Y]

	if err := decodeJSON(data, &d); err != nil {
		return err
	}

	if d.Knots == nil {
		return malformedData("no knots")
	}

	if !bytes.HasPrefix(bytes.TrimSpace(d.SlopeGenerator), []byte("{")) {
		return malformedData("slope_generator is not an object")
	}

	generator := sp.SlopeGenerator()

	if _, ok := generator.(json.Unmarshaler); ok {
		generator = copyGenerator(generator)

		u, _ := generator.(json.Unmarshaler)
		if err := u.UnmarshalJSON(d.SlopeGenerator); err != nil {
			return malformedData("slope_generator: %v", err)
		}
	}

	grids, values := SplitKnots(d.Knots)

	return sp.initialize(generator, grids, values)
}

// copyGenerator gives a pointer generator a fresh shallow copy to decode into.
func copyGenerator[X any, Y Float](generator SlopeGenerator[X, Y]) SlopeGenerator[X, Y] {
	v := reflect.ValueOf(generator)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return generator
	}

	c := reflect.New(v.Elem().Type())
	c.Elem().Set(v.Elem())

	if g, ok := c.Interface().(SlopeGenerator[X, Y]); ok {
		return g
	}

	return generator
}

// UnmarshalCubicSpline decodes a spline with a slope generator chosen at run
// time, e.g. resolved by SlopeGeneratorByName.
func UnmarshalCubicSpline[X any, Y Float](data []byte, generator SlopeGenerator[X, Y],
	opts ...Option[X]) (*CubicSpline[X, Y], error) {
	sp := &CubicSpline[X, Y]{generator: generator}

	if err := sp.configure(opts...); err != nil {
		return nil, err
	}

	if err := sp.UnmarshalJSON(data); err != nil {
		return nil, err
	}

	return sp, nil
}
