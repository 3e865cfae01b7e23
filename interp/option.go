package interp

type Options[X any] struct {
	metric  Metric[X]
	less    func(a, b X) bool
	locator Locator[X]
}

type Option[X any] func(o *Options[X])

func optionNew[X any](option ...Option[X]) (opts *Options[X], err error) {
	opts = &Options[X]{}
	for _, o := range option {
		o(opts)
	}

	if opts.metric == nil {
		var ok bool

		opts.metric, ok = MetricFor[X]()
		if !ok {
			err = invalidInput("no metric for grid type %T", *new(X))

			return
		}
	}

	if opts.less != nil {
		opts.metric = lessMetric[X]{Metric: opts.metric, less: opts.less}
	}

	if opts.locator == nil {
		opts.locator = BinarySearch[X]
	}

	return
}

// WithMetric sets how grid points are measured. Required for grid types
// MetricFor does not know.
func WithMetric[X any](m Metric[X]) Option[X] {
	return func(o *Options[X]) {
		o.metric = m
	}
}

// WithLess replaces the ordering of the metric.
func WithLess[X any](less func(a, b X) bool) Option[X] {
	return func(o *Options[X]) {
		o.less = less
	}
}

func WithLocator[X any](locator Locator[X]) Option[X] {
	return func(o *Options[X]) {
		o.locator = locator
	}
}
