package interp

// Interpolant is the minimum every strategy offers: evaluation plus its knots.
type Interpolant[X any, Y Float] interface {
	Eval(x X) Y
	Grids() []X
	Values() []Y
}

type Differentiable[X any, Y Float] interface {
	Der1(x X) Y
}

type TwiceDifferentiable[X any, Y Float] interface {
	Der2(x X) Y
}

type Integrable[X any, Y Float] interface {
	Integrate(from, to X) Y
}

// Mutable interpolants change their knots in place. Both calls validate
// before touching anything, so a failed call leaves the interpolant as it was.
type Mutable[X any, Y Float] interface {
	Interpolant[X, Y]

	Update(i int, value Y) error
	Initialize(grids []X, values []Y) error
	Clone() Mutable[X, Y]
}

var (
	_ Mutable[float64, float64]             = &Linear[float64, float64]{}
	_ Differentiable[float64, float64]      = &Linear[float64, float64]{}
	_ Integrable[float64, float64]          = &Linear[float64, float64]{}
	_ Mutable[float64, float64]             = &PiecewiseConstant[float64, float64]{}
	_ TwiceDifferentiable[float64, float64] = &PiecewiseConstant[float64, float64]{}
	_ Integrable[float64, float64]          = &PiecewiseConstant[float64, float64]{}
	_ Mutable[float64, float64]             = &CubicSpline[float64, float64]{}
	_ TwiceDifferentiable[float64, float64] = &CubicSpline[float64, float64]{}
	_ Integrable[float64, float64]          = &CubicSpline[float64, float64]{}
)
