package interp

// CubicSpline is a piecewise cubic Hermite interpolant. The knot slopes come
// from a SlopeGenerator; every change of the knots rebuilds slopes and
// coefficients.
//
// Interval i is stored as four coefficients of the local position w in Taylor
// form:
//
//	value(w) = c0 + c1*w + c2*w^2/2 + c3*w^3/6
type CubicSpline[X any, Y Float] struct {
	knotSet[X, Y]

	generator SlopeGenerator[X, Y]
	slopes    []Y
	coeffs    []Y
}

// NewCubicSpline builds a spline; a nil generator means ForwardDifference.
func NewCubicSpline[X any, Y Float](grids []X, values []Y, generator SlopeGenerator[X, Y],
	opts ...Option[X]) (*CubicSpline[X, Y], error) {
	sp := &CubicSpline[X, Y]{
		generator: generator,
	}

	if err := sp.configure(opts...); err != nil {
		return nil, err
	}

	if err := sp.Initialize(grids, values); err != nil {
		return nil, err
	}

	return sp, nil
}

func (sp *CubicSpline[X, Y]) SlopeGenerator() SlopeGenerator[X, Y] {
	if sp.generator == nil {
		sp.generator = ForwardDifference[X, Y]{}
	}

	return sp.generator
}

// Slopes returns a copy of the per-knot slopes in use.
func (sp *CubicSpline[X, Y]) Slopes() []Y {
	return append([]Y(nil), sp.slopes...)
}

func minSize[X any, Y Float](generator SlopeGenerator[X, Y]) int {
	if n := generator.MinSize(); n > 2 {
		return n
	}

	return 2
}

func (sp *CubicSpline[X, Y]) Initialize(grids []X, values []Y) error {
	return sp.initialize(sp.SlopeGenerator(), grids, values)
}

// initialize rebuilds the spline with generator, which replaces the current one
// only on success.
func (sp *CubicSpline[X, Y]) initialize(generator SlopeGenerator[X, Y], grids []X, values []Y) error {
	if err := sp.ensureConfigured(); err != nil {
		return err
	}

	if err := sp.validate(grids, values, minSize(generator)); err != nil {
		return err
	}

	slopes, coeffs, err := sp.build(generator, grids, values)
	if err != nil {
		return err
	}

	sp.assign(grids, values)
	sp.generator, sp.slopes, sp.coeffs = generator, slopes, coeffs

	return nil
}

func (sp *CubicSpline[X, Y]) Update(i int, value Y) error {
	if err := sp.checkIndex(i); err != nil {
		return err
	}

	values := sp.Values()
	values[i] = value

	slopes, coeffs, err := sp.build(sp.SlopeGenerator(), sp.grids, values)
	if err != nil {
		return err
	}

	sp.values, sp.slopes, sp.coeffs = values, slopes, coeffs

	return nil
}

func (sp *CubicSpline[X, Y]) build(generator SlopeGenerator[X, Y], grids []X, values []Y) (
	slopes, coeffs []Y, err error) {
	slopes, err = generator.Generate(sp.metric, grids, values)
	if err != nil {
		return
	}

	if len(slopes) != len(grids) {
		err = invalidInput("%s produced %d slopes for %d knots", generator.Name(), len(slopes), len(grids))

		return
	}

	coeffs = make([]Y, 4*(len(grids)-1))

	for i := 0; i < len(grids)-1; i++ {
		dx := Y(sp.metric.Distance(grids[i], grids[i+1]))
		dy := values[i+1] - values[i]
		m0, m1 := slopes[i], slopes[i+1]

		c := coeffs[4*i : 4*i+4]
		c[0] = values[i]
		c[1] = m0 * dx
		c[2] = 2 * (3*dy - (m1+2*m0)*dx)
		c[3] = 6 * ((m1+m0)*dx - 2*dy)
	}

	return
}

func (sp *CubicSpline[X, Y]) coeff(i int) (c0, c1, c2, c3 Y) {
	c := sp.coeffs[4*i : 4*i+4]

	return c[0], c[1], c[2], c[3]
}

func (sp *CubicSpline[X, Y]) Eval(x X) Y {
	i, w := sp.locate(x)
	c0, c1, c2, c3 := sp.coeff(i)
	t := Y(w)

	return c0 + t*(c1+t*(c2/2+t*c3/6))
}

func (sp *CubicSpline[X, Y]) EvalAll(xs []X, out ...[]Y) []Y {
	if len(out) == 0 {
		out = [][]Y{make([]Y, len(xs))}
	}

	for i := range xs {
		out[0][i] = sp.Eval(xs[i])
	}

	return out[0]
}

func (sp *CubicSpline[X, Y]) Der1(x X) Y {
	i, w := sp.locate(x)
	_, c1, c2, c3 := sp.coeff(i)
	t := Y(w)

	return (c1 + t*(c2+t*c3/2)) / Y(sp.width(i))
}

func (sp *CubicSpline[X, Y]) Der2(x X) Y {
	i, w := sp.locate(x)
	_, _, c2, c3 := sp.coeff(i)
	dx := Y(sp.width(i))

	return (c2 + c3*Y(w)) / (dx * dx)
}

func (sp *CubicSpline[X, Y]) Integrate(from, to X) Y {
	return integratePiecewise[X, Y](sp.metric, sp.locator, sp.grids, sp, from, to)
}

func (sp *CubicSpline[X, Y]) Clone() Mutable[X, Y] {
	return &CubicSpline[X, Y]{
		knotSet:   sp.clone(),
		generator: sp.generator,
		slopes:    sp.Slopes(),
		coeffs:    append([]Y(nil), sp.coeffs...),
	}
}

// integral of interval i's polynomial between local positions wf and wt.
func (sp *CubicSpline[X, Y]) integral(i int, wf, wt float64) Y {
	c0, c1, c2, c3 := sp.coeff(i)
	f, t := Y(wf), Y(wt)
	f2, t2 := f*f, t*t

	return Y(sp.width(i)) * (c0*(t-f) + c1*(t2-f2)/2 + c2*(t2*t-f2*f)/6 + c3*(t2*t2-f2*f2)/24)
}

func (sp *CubicSpline[X, Y]) leftExtrapolation(from, to X) Y {
	return sp.integral(0, sp.position(0, from), sp.position(0, to))
}

func (sp *CubicSpline[X, Y]) rightExtrapolation(from, to X) Y {
	last := len(sp.grids) - 2

	return sp.integral(last, sp.position(last, from), sp.position(last, to))
}

func (sp *CubicSpline[X, Y]) internalPartial(i int, from, to X) Y {
	return sp.integral(i, sp.position(i, from), sp.position(i, to))
}

func (sp *CubicSpline[X, Y]) internalFull(i int) Y {
	c0, c1, c2, c3 := sp.coeff(i)

	return Y(sp.width(i)) * (c0 + c1/2 + c2/6 + c3/24)
}
