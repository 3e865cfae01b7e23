package interp

import (
	"errors"
	"testing"
	"time"

	"github.com/sgostarter/i/commerr"
	"github.com/stretchr/testify/assert"
)

func TestNumericDistance(t *testing.T) {
	assert.EqualValues(t, 2.5, Numeric[float64]{}.Distance(1, 3.5))
	assert.EqualValues(t, -2.5, Numeric[float64]{}.Distance(3.5, 1))
	assert.EqualValues(t, -3, Numeric[uint8]{}.Distance(5, 2))
	assert.True(t, Numeric[int]{}.Less(1, 2))
	assert.False(t, Numeric[int]{}.Less(2, 2))
}

func TestDurationDistance(t *testing.T) {
	d0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	d1 := time.Date(2024, 1, 11, 12, 0, 0, 0, time.UTC)

	assert.EqualValues(t, 10.5, Duration{}.Distance(d0, d1))
	assert.EqualValues(t, -252, Duration{Unit: time.Hour}.Distance(d1, d0))
	assert.True(t, Duration{}.Less(d0, d1))
}

func TestMetricFor(t *testing.T) {
	_, ok := MetricFor[float64]()
	assert.True(t, ok)

	_, ok = MetricFor[int32]()
	assert.True(t, ok)

	m, ok := MetricFor[time.Time]()
	assert.True(t, ok)
	assert.IsType(t, Duration{}, m)

	_, ok = MetricFor[string]()
	assert.False(t, ok)
}

func TestRelativePosition(t *testing.T) {
	m := Numeric[float64]{}

	assert.EqualValues(t, 0.25, RelativePosition[float64](m, 2, 6, 3))
	assert.EqualValues(t, -0.5, RelativePosition[float64](m, 2, 6, 0))
	assert.EqualValues(t, 1.5, RelativePosition[float64](m, 2, 6, 8))
}

func TestNoMetric(t *testing.T) {
	_, err := NewLinear([]string{"a", "b"}, []float64{1, 2})
	assert.True(t, errors.Is(err, ErrInvalidInput))
	assert.True(t, errors.Is(err, commerr.ErrInvalidArgument))
}

type byLength struct{}

func (byLength) Distance(from, to string) float64 { return float64(len(to) - len(from)) }

func (byLength) Less(a, b string) bool { return len(a) < len(b) }

func TestCustomMetric(t *testing.T) {
	lin, err := NewLinear([]string{"a", "abc"}, []float64{0, 4}, WithMetric[string](byLength{}))
	assert.Nil(t, err)
	assert.EqualValues(t, 2, lin.Eval("ab"))
	assert.EqualValues(t, 6, lin.Eval("abcd"))
}

func TestWithLess(t *testing.T) {
	// reversed ordering with a matching reversed distance
	desc := WithLess[float64](func(a, b float64) bool { return a > b })

	_, err := NewLinear([]float64{0, 1, 2}, []float64{0, 1, 2}, desc)
	assert.True(t, errors.Is(err, ErrInvalidInput))

	lin, err := NewLinear([]float64{2, 1, 0}, []float64{2, 1, 0}, desc)
	assert.Nil(t, err)
	assert.EqualValues(t, 3, lin.Len())
}
