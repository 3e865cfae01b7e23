package interp

import (
	"errors"
	"testing"
	"time"

	"github.com/sgostarter/i/commerr"
	"github.com/stretchr/testify/assert"
)

const utDelta = 1e-9

func TestLinearScenario(t *testing.T) {
	lin, err := NewLinear(utGrids, utValues)
	assert.Nil(t, err)

	assert.EqualValues(t, 0.5, lin.Eval(0.5))
	assert.EqualValues(t, 0.5, lin.Eval(1.5))
	assert.InDelta(t, 1.5, lin.Integrate(0, 3), utDelta)

	for i := range utGrids {
		assert.EqualValues(t, utValues[i], lin.Eval(utGrids[i]))
	}
}

func TestLinearExtrapolation(t *testing.T) {
	lin, err := NewLinear([]float64{0, 1, 2}, []float64{1, 3, 2})
	assert.Nil(t, err)

	assert.InDelta(t, -1, lin.Eval(-1), utDelta)
	assert.InDelta(t, 0, lin.Eval(4), utDelta)

	assert.EqualValues(t, 2, lin.Der1(-10))
	assert.EqualValues(t, 2, lin.Der1(0.5))
	assert.EqualValues(t, -1, lin.Der1(1))
	assert.EqualValues(t, -1, lin.Der1(7))

	// line 2x+1 on [-2, 0]
	assert.InDelta(t, -2, lin.Integrate(-2, 0), utDelta)
	// line -x+4 on [2, 4]
	assert.InDelta(t, 2, lin.Integrate(2, 4), utDelta)
	assert.InDelta(t, -4, lin.Integrate(-3, -2), utDelta)
}

func TestLinearEvalAll(t *testing.T) {
	lin, err := NewLinear(utGrids, utValues)
	assert.Nil(t, err)

	assert.EqualValues(t, []float64{0.5, 0.5, 1}, lin.EvalAll([]float64{0.5, 1.5, 3}))

	out := make([]float64, 2)
	lin.EvalAll([]float64{0, 1}, out)
	assert.EqualValues(t, []float64{0, 1}, out)
}

func TestLinearValidation(t *testing.T) {
	_, err := NewLinear([]float64{0, 1, 1}, []float64{0, 1, 2})
	assert.True(t, errors.Is(err, ErrInvalidInput))

	_, err = NewLinear([]float64{0, 2, 1}, []float64{0, 1, 2})
	assert.True(t, errors.Is(err, ErrInvalidInput))

	_, err = NewLinear([]float64{0, 1, 2}, []float64{0, 1})
	assert.True(t, errors.Is(err, ErrInvalidInput))

	_, err = NewLinear([]float64{0}, []float64{0})
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestLinearMutation(t *testing.T) {
	lin, err := NewLinear(utGrids, utValues)
	assert.Nil(t, err)

	assert.Nil(t, lin.Update(1, 3))
	assert.EqualValues(t, 1.5, lin.Eval(0.5))

	err = lin.Update(4, 1)
	assert.True(t, errors.Is(err, ErrOutOfRange))
	assert.True(t, errors.Is(err, commerr.ErrOutOfRange))

	err = lin.Initialize([]float64{0, 0}, []float64{1, 2})
	assert.True(t, errors.Is(err, ErrInvalidInput))
	assert.EqualValues(t, []float64{0, 3, 0, 1}, lin.Values())
	assert.EqualValues(t, utGrids, lin.Grids())

	g, v := []float64{-1, 0, 5}, []float64{2, 0, 10}
	assert.Nil(t, lin.Initialize(g, v))

	fresh, err := NewLinear(g, v)
	assert.Nil(t, err)

	for _, x := range []float64{-3, -1, -0.5, 0, 2, 5, 8} {
		assert.EqualValues(t, fresh.Eval(x), lin.Eval(x))
	}
}

func TestLinearOwnsKnots(t *testing.T) {
	g, v := []float64{0, 1}, []float64{0, 1}

	lin, err := NewLinear(g, v)
	assert.Nil(t, err)

	g[1], v[1] = -5, 7
	lin.Grids()[0] = 100

	assert.EqualValues(t, []float64{0, 1}, lin.Grids())
	assert.EqualValues(t, []float64{0, 1}, lin.Values())
}

func TestLinearDates(t *testing.T) {
	d0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	lin, err := NewLinear([]time.Time{d0, d0.AddDate(0, 0, 10)}, []float64{0, 10})
	assert.Nil(t, err)

	assert.InDelta(t, 5, lin.Eval(d0.AddDate(0, 0, 5)), utDelta)
	assert.InDelta(t, 50, lin.Integrate(d0, d0.AddDate(0, 0, 10)), utDelta)
	assert.InDelta(t, -50, lin.Integrate(d0.AddDate(0, 0, 10), d0), utDelta)
	assert.InDelta(t, 1, lin.Der1(d0), utDelta)
}

func TestLinearIntegerGrid(t *testing.T) {
	lin, err := NewLinear([]int{0, 2, 4}, []float32{0, 4, 0})
	assert.Nil(t, err)

	assert.EqualValues(t, float32(2), lin.Eval(1))
	assert.EqualValues(t, float32(8), lin.Integrate(0, 4))
}
