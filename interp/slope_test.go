package interp

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	utGrids  = []float64{0, 1, 2, 3}
	utValues = []float64{0, 1, 0, 1}
)

func TestForwardDifference(t *testing.T) {
	slopes, err := ForwardDifference[float64, float64]{}.Generate(Numeric[float64]{}, utGrids, utValues)
	assert.Nil(t, err)
	assert.EqualValues(t, []float64{1, -1, 1, 1}, slopes)
}

func TestBackwardDifference(t *testing.T) {
	slopes, err := BackwardDifference[float64, float64]{}.Generate(Numeric[float64]{}, utGrids, utValues)
	assert.Nil(t, err)
	assert.EqualValues(t, []float64{1, 1, -1, 1}, slopes)
}

func TestCentralDifference(t *testing.T) {
	slopes, err := CentralDifference[float64, float64]{}.Generate(Numeric[float64]{}, utGrids, utValues)
	assert.Nil(t, err)
	assert.EqualValues(t, []float64{1, 0, 0, 1}, slopes)

	slopes, err = CentralDifference[float64, float64]{}.Generate(Numeric[float64]{},
		[]float64{0, 1, 3}, []float64{0, 2, 3})
	assert.Nil(t, err)
	assert.EqualValues(t, []float64{2, 1, 0.5}, slopes)
}

func TestCentralDifferenceTwoKnots(t *testing.T) {
	slopes, err := CentralDifference[float64, float64]{}.Generate(Numeric[float64]{},
		[]float64{1, 3}, []float64{1, 5})
	assert.Nil(t, err)
	assert.EqualValues(t, []float64{2, 2}, slopes)
}

func TestSlopeGeneratorInput(t *testing.T) {
	for _, name := range []string{ForwardDifferenceName, BackwardDifferenceName, CentralDifferenceName} {
		g, ok := SlopeGeneratorByName[float64, float64](name)
		assert.True(t, ok)
		assert.EqualValues(t, name, g.Name())
		assert.EqualValues(t, 2, g.MinSize())

		_, err := g.Generate(Numeric[float64]{}, []float64{1}, []float64{1})
		assert.True(t, errors.Is(err, ErrInvalidInput))

		_, err = g.Generate(Numeric[float64]{}, []float64{1, 2}, []float64{1})
		assert.True(t, errors.Is(err, ErrInvalidInput))
	}

	_, ok := SlopeGeneratorByName[float64, float64]("akima")
	assert.False(t, ok)
}
