package interp

// knotSet holds the grid and value sequences every interpolant is built on.
type knotSet[X any, Y Float] struct {
	metric  Metric[X]
	locator Locator[X]
	grids   []X
	values  []Y
}

func (ks *knotSet[X, Y]) configure(opts ...Option[X]) error {
	o, err := optionNew(opts...)
	if err != nil {
		return err
	}

	ks.metric = o.metric
	ks.locator = o.locator

	return nil
}

// ensureConfigured gives a zero value the natural metric of X, so that it can
// be the target of json.Unmarshal.
func (ks *knotSet[X, Y]) ensureConfigured() error {
	if ks.metric != nil && ks.locator != nil {
		return nil
	}

	return ks.configure()
}

func (ks *knotSet[X, Y]) validate(grids []X, values []Y, minSize int) error {
	if len(grids) != len(values) {
		return invalidInput("%d grid points but %d values", len(grids), len(values))
	}

	if len(grids) < minSize {
		return invalidInput("%d knots, at least %d required", len(grids), minSize)
	}

	for i := 1; i < len(grids); i++ {
		if !ks.metric.Less(grids[i-1], grids[i]) {
			return invalidInput("grid not strictly increasing at index %d", i)
		}
	}

	return nil
}

// assign stores copies of already validated sequences.
func (ks *knotSet[X, Y]) assign(grids []X, values []Y) {
	ks.grids = append(make([]X, 0, len(grids)), grids...)
	ks.values = append(make([]Y, 0, len(values)), values...)
}

func (ks *knotSet[X, Y]) checkIndex(i int) error {
	if i < 0 || i >= len(ks.values) {
		return fmtOutOfRange(i, len(ks.values))
	}

	return nil
}

// locate returns the bracketing interval of x and the relative position of x
// inside it; w is outside [0, 1] when x is extrapolated.
func (ks *knotSet[X, Y]) locate(x X) (i int, w float64) {
	i = mustLocate(ks.locator, ks.metric.Less, ks.grids, x)
	w = RelativePosition(ks.metric, ks.grids[i], ks.grids[i+1], x)

	return
}

func (ks *knotSet[X, Y]) width(i int) float64 {
	return ks.metric.Distance(ks.grids[i], ks.grids[i+1])
}

// position is the relative position of x in interval i.
func (ks *knotSet[X, Y]) position(i int, x X) float64 {
	return ks.metric.Distance(ks.grids[i], x) / ks.width(i)
}

func (ks *knotSet[X, Y]) Grids() []X {
	return append([]X(nil), ks.grids...)
}

func (ks *knotSet[X, Y]) Values() []Y {
	return append([]Y(nil), ks.values...)
}

func (ks *knotSet[X, Y]) Len() int {
	return len(ks.grids)
}

func (ks *knotSet[X, Y]) clone() knotSet[X, Y] {
	c := *ks
	c.assign(ks.grids, ks.values)

	return c
}
