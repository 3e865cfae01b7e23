package interp

import (
	"time"
)

// Number is any built-in numeric type usable as a grid.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Float is the value type of every interpolant.
type Float interface {
	~float32 | ~float64
}

// Metric measures grids. Distance is signed: Distance(a, b) == -Distance(b, a).
// Less is the strict ordering the grid must follow.
type Metric[X any] interface {
	Distance(from, to X) float64
	Less(a, b X) bool
}

// Numeric is the natural metric of numeric grids; integral grids are widened to
// float64.
type Numeric[X Number] struct{}

func (Numeric[X]) Distance(from, to X) float64 {
	return float64(to) - float64(from)
}

func (Numeric[X]) Less(a, b X) bool {
	return a < b
}

// Duration measures time.Time grids as a count of Unit. A zero Unit counts days.
type Duration struct {
	Unit time.Duration
}

func (m Duration) Distance(from, to time.Time) float64 {
	unit := m.Unit
	if unit <= 0 {
		unit = 24 * time.Hour
	}

	return float64(to.Sub(from)) / float64(unit)
}

func (Duration) Less(a, b time.Time) bool {
	return a.Before(b)
}

// MetricFor returns the natural metric of X, if there is one.
func MetricFor[X any]() (m Metric[X], ok bool) {
	var x X

	var i interface{}

	switch any(x).(type) {
	case float64:
		i = Numeric[float64]{}
	case float32:
		i = Numeric[float32]{}
	case int:
		i = Numeric[int]{}
	case int8:
		i = Numeric[int8]{}
	case int16:
		i = Numeric[int16]{}
	case int32:
		i = Numeric[int32]{}
	case int64:
		i = Numeric[int64]{}
	case uint:
		i = Numeric[uint]{}
	case uint8:
		i = Numeric[uint8]{}
	case uint16:
		i = Numeric[uint16]{}
	case uint32:
		i = Numeric[uint32]{}
	case uint64:
		i = Numeric[uint64]{}
	case time.Time:
		i = Duration{}
	default:
		return
	}

	m, ok = i.(Metric[X])

	return
}

// RelativePosition is Distance(left, x) / Distance(left, right). It is not
// clamped: values outside [0, 1] mean x lies outside [left, right].
func RelativePosition[X any](m Metric[X], left, right, x X) float64 {
	return m.Distance(left, x) / m.Distance(left, right)
}

// lessMetric overrides the ordering of a metric.
type lessMetric[X any] struct {
	Metric[X]
	less func(a, b X) bool
}

func (m lessMetric[X]) Less(a, b X) bool {
	return m.less(a, b)
}
