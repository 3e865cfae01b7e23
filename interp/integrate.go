package interp

type side int

const (
	sideLeft side = iota
	sideInternal
	sideRight
)

// segmentIntegrator is what each interpolant contributes to integratePiecewise.
// Bounds passed in are ordered: from <= to.
type segmentIntegrator[X any, Y Float] interface {
	leftExtrapolation(from, to X) Y
	rightExtrapolation(from, to X) Y
	internalPartial(interval int, from, to X) Y
	internalFull(interval int) Y
}

func classify[X any](m Metric[X], grids []X, x X) side {
	if m.Less(x, grids[0]) {
		return sideLeft
	}

	if m.Less(grids[len(grids)-1], x) {
		return sideRight
	}

	return sideInternal
}

// integratePiecewise splits [from, to] into an optional left extrapolation, the
// covered intervals and an optional right extrapolation. grids holds at least
// two points.
func integratePiecewise[X any, Y Float](m Metric[X], locate Locator[X], grids []X,
	s segmentIntegrator[X, Y], from, to X) (sum Y) {
	if m.Less(to, from) {
		sum = -integratePiecewise[X, Y](m, locate, grids, s, to, from)

		return
	}

	if !m.Less(from, to) {
		return
	}

	n := len(grids)
	front, back := grids[0], grids[n-1]

	fromSide, toSide := classify(m, grids, from), classify(m, grids, to)

	if fromSide == sideLeft && toSide == sideLeft {
		sum = s.leftExtrapolation(from, to)

		return
	}

	if fromSide == sideRight && toSide == sideRight {
		sum = s.rightExtrapolation(from, to)

		return
	}

	if fromSide == sideLeft {
		sum += s.leftExtrapolation(from, front)
		from = front
	}

	if toSide == sideRight {
		sum += s.rightExtrapolation(back, to)
		to = back
	}

	first, last := mustLocate(locate, m.Less, grids, from), mustLocate(locate, m.Less, grids, to)

	if first == last {
		sum += s.internalPartial(first, from, to)

		return
	}

	sum += s.internalPartial(first, from, grids[first+1])

	for i := first + 1; i < last; i++ {
		sum += s.internalFull(i)
	}

	sum += s.internalPartial(last, grids[last], to)

	return
}

func mustLocate[X any](locate Locator[X], less func(a, b X) bool, grids []X, x X) int {
	i, err := locate(less, grids, x)
	if err != nil {
		panic(err)
	}

	return i
}
