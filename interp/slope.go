package interp

// SlopeGenerator estimates one derivative per knot for CubicSpline.
type SlopeGenerator[X any, Y Float] interface {
	Generate(m Metric[X], grids []X, values []Y) ([]Y, error)
	MinSize() int
	Name() string
}

const (
	ForwardDifferenceName  = "forward_difference"
	BackwardDifferenceName = "backward_difference"
	CentralDifferenceName  = "central_difference"
)

// SlopeGeneratorByName resolves the generators this package ships with.
func SlopeGeneratorByName[X any, Y Float](name string) (g SlopeGenerator[X, Y], ok bool) {
	switch name {
	case ForwardDifferenceName:
		g = ForwardDifference[X, Y]{}
	case BackwardDifferenceName:
		g = BackwardDifference[X, Y]{}
	case CentralDifferenceName:
		g = CentralDifference[X, Y]{}
	default:
		return
	}

	ok = true

	return
}

func secant[X any, Y Float](m Metric[X], grids []X, values []Y, i int) Y {
	return (values[i+1] - values[i]) / Y(m.Distance(grids[i], grids[i+1]))
}

func checkSlopeInput[X any, Y Float](grids []X, values []Y, minSize int) error {
	if len(grids) != len(values) {
		return invalidInput("%d grid points but %d values", len(grids), len(values))
	}

	if len(grids) < minSize {
		return invalidInput("%d knots, at least %d required", len(grids), minSize)
	}

	return nil
}

// ForwardDifference uses the secant of the interval to the right of each knot;
// the last knot reuses the last interval's secant.
type ForwardDifference[X any, Y Float] struct{}

func (ForwardDifference[X, Y]) Generate(m Metric[X], grids []X, values []Y) (slopes []Y, err error) {
	if err = checkSlopeInput(grids, values, 2); err != nil {
		return
	}

	n := len(grids)
	slopes = make([]Y, n)

	for i := 0; i < n-1; i++ {
		slopes[i] = secant(m, grids, values, i)
	}

	slopes[n-1] = slopes[n-2]

	return
}

func (ForwardDifference[X, Y]) MinSize() int { return 2 }

func (ForwardDifference[X, Y]) Name() string { return ForwardDifferenceName }

// BackwardDifference uses the secant of the interval to the left of each knot;
// the first knot reuses the first interval's secant.
type BackwardDifference[X any, Y Float] struct{}

func (BackwardDifference[X, Y]) Generate(m Metric[X], grids []X, values []Y) (slopes []Y, err error) {
	if err = checkSlopeInput(grids, values, 2); err != nil {
		return
	}

	n := len(grids)
	slopes = make([]Y, n)

	for i := 1; i < n; i++ {
		slopes[i] = secant(m, grids, values, i-1)
	}

	slopes[0] = slopes[1]

	return
}

func (BackwardDifference[X, Y]) MinSize() int { return 2 }

func (BackwardDifference[X, Y]) Name() string { return BackwardDifferenceName }

// CentralDifference spans both neighbours of interior knots. Boundary knots
// take the one-sided secant of their only interval, so two knots share one
// slope.
type CentralDifference[X any, Y Float] struct{}

func (CentralDifference[X, Y]) Generate(m Metric[X], grids []X, values []Y) (slopes []Y, err error) {
	if err = checkSlopeInput(grids, values, 2); err != nil {
		return
	}

	n := len(grids)
	slopes = make([]Y, n)

	slopes[0] = secant(m, grids, values, 0)
	slopes[n-1] = secant(m, grids, values, n-2)

	for i := 1; i < n-1; i++ {
		slopes[i] = (values[i+1] - values[i-1]) / Y(m.Distance(grids[i-1], grids[i+1]))
	}

	return
}

func (CentralDifference[X, Y]) MinSize() int { return 2 }

func (CentralDifference[X, Y]) Name() string { return CentralDifferenceName }
