package interp

// Linear joins neighbouring knots with straight lines. Outside the grid the
// first and last lines are extended.
type Linear[X any, Y Float] struct {
	knotSet[X, Y]
}

func NewLinear[X any, Y Float](grids []X, values []Y, opts ...Option[X]) (*Linear[X, Y], error) {
	lin := &Linear[X, Y]{}

	if err := lin.configure(opts...); err != nil {
		return nil, err
	}

	if err := lin.Initialize(grids, values); err != nil {
		return nil, err
	}

	return lin, nil
}

func (lin *Linear[X, Y]) Initialize(grids []X, values []Y) error {
	if err := lin.ensureConfigured(); err != nil {
		return err
	}

	if err := lin.validate(grids, values, 2); err != nil {
		return err
	}

	lin.assign(grids, values)

	return nil
}

func (lin *Linear[X, Y]) Update(i int, value Y) error {
	if err := lin.checkIndex(i); err != nil {
		return err
	}

	lin.values[i] = value

	return nil
}

func (lin *Linear[X, Y]) Eval(x X) Y {
	i, w := lin.locate(x)

	return lin.at(i, w)
}

func (lin *Linear[X, Y]) EvalAll(xs []X, out ...[]Y) []Y {
	if len(out) == 0 {
		out = [][]Y{make([]Y, len(xs))}
	}

	for i := range xs {
		out[0][i] = lin.Eval(xs[i])
	}

	return out[0]
}

// Der1 is the slope of the line through x. At an interior knot it is the slope
// of the interval to its right.
func (lin *Linear[X, Y]) Der1(x X) Y {
	i, _ := lin.locate(x)

	return (lin.values[i+1] - lin.values[i]) / Y(lin.width(i))
}

func (lin *Linear[X, Y]) Integrate(from, to X) Y {
	return integratePiecewise[X, Y](lin.metric, lin.locator, lin.grids, lin, from, to)
}

func (lin *Linear[X, Y]) Clone() Mutable[X, Y] {
	return &Linear[X, Y]{knotSet: lin.clone()}
}

func (lin *Linear[X, Y]) at(i int, w float64) Y {
	return lin.values[i]*Y(1-w) + lin.values[i+1]*Y(w)
}

// trapezoid integrates the line of interval i over [from, to]; exact for a line.
func (lin *Linear[X, Y]) trapezoid(i int, from, to X) Y {
	vf := lin.at(i, lin.position(i, from))
	vt := lin.at(i, lin.position(i, to))

	return (vf + vt) / 2 * Y(lin.metric.Distance(from, to))
}

func (lin *Linear[X, Y]) leftExtrapolation(from, to X) Y {
	return lin.trapezoid(0, from, to)
}

func (lin *Linear[X, Y]) rightExtrapolation(from, to X) Y {
	return lin.trapezoid(len(lin.grids)-2, from, to)
}

func (lin *Linear[X, Y]) internalPartial(i int, from, to X) Y {
	return lin.trapezoid(i, from, to)
}

func (lin *Linear[X, Y]) internalFull(i int) Y {
	return (lin.values[i] + lin.values[i+1]) / 2 * Y(lin.width(i))
}
