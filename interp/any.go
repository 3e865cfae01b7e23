package interp

import (
	"fmt"
	"sync/atomic"
)

type Capability int

const (
	CapabilityDer1 Capability = iota
	CapabilityDer2
	CapabilityIntegrate
)

func (c Capability) String() string {
	switch c {
	case CapabilityDer1:
		return "der1"
	case CapabilityDer2:
		return "der2"
	case CapabilityIntegrate:
		return "integrate"
	}

	return fmt.Sprintf("capability(%d)", int(c))
}

// binding caches which optional capabilities an interpolant has.
type binding[X any, Y Float] struct {
	impl Interpolant[X, Y]

	der1      Differentiable[X, Y]
	der2      TwiceDifferentiable[X, Y]
	integrate Integrable[X, Y]
}

func bind[X any, Y Float](impl Interpolant[X, Y]) binding[X, Y] {
	b := binding[X, Y]{impl: impl}
	b.der1, _ = impl.(Differentiable[X, Y])
	b.der2, _ = impl.(TwiceDifferentiable[X, Y])
	b.integrate, _ = impl.(Integrable[X, Y])

	return b
}

func (b *binding[X, Y]) unsupported(c Capability) error {
	return fmt.Errorf("%w: %T has no %s", ErrUnsupportedOperation, b.impl, c)
}

func (b *binding[X, Y]) Eval(x X) Y {
	return b.impl.Eval(x)
}

func (b *binding[X, Y]) Grids() []X {
	return b.impl.Grids()
}

func (b *binding[X, Y]) Values() []Y {
	return b.impl.Values()
}

func (b *binding[X, Y]) Supports(c Capability) bool {
	switch c {
	case CapabilityDer1:
		return b.der1 != nil
	case CapabilityDer2:
		return b.der2 != nil
	case CapabilityIntegrate:
		return b.integrate != nil
	}

	return false
}

func (b *binding[X, Y]) Der1(x X) (d Y, err error) {
	if b.der1 == nil {
		err = b.unsupported(CapabilityDer1)

		return
	}

	d = b.der1.Der1(x)

	return
}

func (b *binding[X, Y]) Der2(x X) (d Y, err error) {
	if b.der2 == nil {
		err = b.unsupported(CapabilityDer2)

		return
	}

	d = b.der2.Der2(x)

	return
}

func (b *binding[X, Y]) Integrate(from, to X) (sum Y, err error) {
	if b.integrate == nil {
		err = b.unsupported(CapabilityIntegrate)

		return
	}

	sum = b.integrate.Integrate(from, to)

	return
}

func (b *binding[X, Y]) Interpolant() Interpolant[X, Y] {
	return b.impl
}

// Any wraps an interpolant of any strategy. Der1, Der2 and Integrate fail with
// ErrUnsupportedOperation when the wrapped strategy lacks them.
type Any[X any, Y Float] struct {
	binding[X, Y]
}

func NewAny[X any, Y Float](impl Interpolant[X, Y]) *Any[X, Y] {
	if impl == nil {
		return nil
	}

	return &Any[X, Y]{binding: bind(impl)}
}

// As borrows the wrapped interpolant as T, if that is its type.
func As[T any, X any, Y Float](a *Any[X, Y]) (t T, ok bool) {
	t, ok = a.impl.(T)

	return
}

type sharedMutable[X any, Y Float] struct {
	binding[X, Y]

	mutable Mutable[X, Y]
	refs    int32
}

func newSharedMutable[X any, Y Float](impl Mutable[X, Y]) *sharedMutable[X, Y] {
	return &sharedMutable[X, Y]{
		binding: bind[X, Y](impl),
		mutable: impl,
		refs:    1,
	}
}

// AnyMutable is an Any that can also be updated. Handles made by Share point at
// the same interpolant until one of them mutates it: the mutating handle first
// gets a private clone, so the others keep seeing the old knots.
//
// A handle must not be mutated from several goroutines at once.
type AnyMutable[X any, Y Float] struct {
	s *sharedMutable[X, Y]
}

func NewAnyMutable[X any, Y Float](impl Mutable[X, Y]) *AnyMutable[X, Y] {
	if impl == nil {
		return nil
	}

	return &AnyMutable[X, Y]{s: newSharedMutable(impl)}
}

// Share returns another handle on the same interpolant.
func (a *AnyMutable[X, Y]) Share() *AnyMutable[X, Y] {
	atomic.AddInt32(&a.s.refs, 1)

	return &AnyMutable[X, Y]{s: a.s}
}

// Release gives up this handle; it must not be used afterwards.
func (a *AnyMutable[X, Y]) Release() {
	if a.s == nil {
		return
	}

	atomic.AddInt32(&a.s.refs, -1)
	a.s = nil
}

// Shared reports whether other handles see the same interpolant.
func (a *AnyMutable[X, Y]) Shared() bool {
	return atomic.LoadInt32(&a.s.refs) > 1
}

func (a *AnyMutable[X, Y]) detach() {
	if !a.Shared() {
		return
	}

	c := newSharedMutable(a.s.mutable.Clone())

	atomic.AddInt32(&a.s.refs, -1)
	a.s = c
}

func (a *AnyMutable[X, Y]) Update(i int, value Y) error {
	a.detach()

	return a.s.mutable.Update(i, value)
}

func (a *AnyMutable[X, Y]) Initialize(grids []X, values []Y) error {
	a.detach()

	return a.s.mutable.Initialize(grids, values)
}

// Clone returns an independent handle on a private copy.
func (a *AnyMutable[X, Y]) Clone() *AnyMutable[X, Y] {
	return NewAnyMutable(a.s.mutable.Clone())
}

func (a *AnyMutable[X, Y]) Eval(x X) Y {
	return a.s.Eval(x)
}

func (a *AnyMutable[X, Y]) Grids() []X {
	return a.s.Grids()
}

func (a *AnyMutable[X, Y]) Values() []Y {
	return a.s.Values()
}

func (a *AnyMutable[X, Y]) Supports(c Capability) bool {
	return a.s.Supports(c)
}

func (a *AnyMutable[X, Y]) Der1(x X) (Y, error) {
	return a.s.Der1(x)
}

func (a *AnyMutable[X, Y]) Der2(x X) (Y, error) {
	return a.s.Der2(x)
}

func (a *AnyMutable[X, Y]) Integrate(from, to X) (Y, error) {
	return a.s.Integrate(from, to)
}

func (a *AnyMutable[X, Y]) Mutable() Mutable[X, Y] {
	return a.s.mutable
}

// AsMutable borrows the wrapped interpolant as T, if that is its type. Changes
// made through the borrowed value bypass copy-on-write.
func AsMutable[T any, X any, Y Float](a *AnyMutable[X, Y]) (t T, ok bool) {
	t, ok = a.s.mutable.(T)

	return
}
