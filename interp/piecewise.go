package interp

import "math"

// PiecewiseConstant holds one knot value on each side of a partition point
// inside every interval. The partition point sits at relative position
// PartitionRatio; the continuity flag decides which side owns it.
type PiecewiseConstant[X any, Y Float] struct {
	knotSet[X, Y]

	partitionRatio  float64
	rightContinuous bool
}

func NewPiecewiseConstant[X any, Y Float](grids []X, values []Y, partitionRatio float64, rightContinuous bool,
	opts ...Option[X]) (*PiecewiseConstant[X, Y], error) {
	if err := checkPartitionRatio(partitionRatio); err != nil {
		return nil, err
	}

	pc := &PiecewiseConstant[X, Y]{
		partitionRatio:  partitionRatio,
		rightContinuous: rightContinuous,
	}

	if err := pc.configure(opts...); err != nil {
		return nil, err
	}

	if err := pc.Initialize(grids, values); err != nil {
		return nil, err
	}

	return pc, nil
}

func checkPartitionRatio(p float64) error {
	if math.IsNaN(p) || p < 0 || p > 1 {
		return invalidInput("partition ratio %v not in [0, 1]", p)
	}

	return nil
}

func (pc *PiecewiseConstant[X, Y]) PartitionRatio() float64 {
	return pc.partitionRatio
}

func (pc *PiecewiseConstant[X, Y]) IsRightContinuous() bool {
	return pc.rightContinuous
}

func (pc *PiecewiseConstant[X, Y]) Initialize(grids []X, values []Y) error {
	if err := pc.ensureConfigured(); err != nil {
		return err
	}

	if err := pc.validate(grids, values, 2); err != nil {
		return err
	}

	pc.assign(grids, values)

	return nil
}

func (pc *PiecewiseConstant[X, Y]) Update(i int, value Y) error {
	if err := pc.checkIndex(i); err != nil {
		return err
	}

	pc.values[i] = value

	return nil
}

func (pc *PiecewiseConstant[X, Y]) Eval(x X) Y {
	i, w := pc.locate(x)

	if pc.rightContinuous {
		if w >= pc.partitionRatio {
			return pc.values[i+1]
		}

		return pc.values[i]
	}

	if w <= pc.partitionRatio {
		return pc.values[i]
	}

	return pc.values[i+1]
}

func (pc *PiecewiseConstant[X, Y]) EvalAll(xs []X, out ...[]Y) []Y {
	if len(out) == 0 {
		out = [][]Y{make([]Y, len(xs))}
	}

	for i := range xs {
		out[0][i] = pc.Eval(xs[i])
	}

	return out[0]
}

// Der1 is zero everywhere except at partition points, where it is undefined.
func (pc *PiecewiseConstant[X, Y]) Der1(_ X) Y {
	return 0
}

func (pc *PiecewiseConstant[X, Y]) Der2(_ X) Y {
	return 0
}

func (pc *PiecewiseConstant[X, Y]) Integrate(from, to X) Y {
	return integratePiecewise[X, Y](pc.metric, pc.locator, pc.grids, pc, from, to)
}

func (pc *PiecewiseConstant[X, Y]) Clone() Mutable[X, Y] {
	return &PiecewiseConstant[X, Y]{
		knotSet:         pc.clone(),
		partitionRatio:  pc.partitionRatio,
		rightContinuous: pc.rightContinuous,
	}
}

// Left of the first knot only the first value is ever seen, right of the last
// knot only the last one.
func (pc *PiecewiseConstant[X, Y]) leftExtrapolation(from, to X) Y {
	return pc.values[0] * Y(pc.metric.Distance(from, to))
}

func (pc *PiecewiseConstant[X, Y]) rightExtrapolation(from, to X) Y {
	return pc.values[len(pc.values)-1] * Y(pc.metric.Distance(from, to))
}

func (pc *PiecewiseConstant[X, Y]) internalPartial(i int, from, to X) Y {
	wf, wt := pc.position(i, from), pc.position(i, to)
	p := pc.partitionRatio

	var left, right float64

	if wf < p {
		left = math.Min(wt, p) - wf
	}

	if wt > p {
		right = wt - math.Max(wf, p)
	}

	return Y(pc.width(i)) * (pc.values[i]*Y(left) + pc.values[i+1]*Y(right))
}

func (pc *PiecewiseConstant[X, Y]) internalFull(i int) Y {
	p := pc.partitionRatio

	return Y(pc.width(i)) * (pc.values[i]*Y(p) + pc.values[i+1]*Y(1-p))
}
