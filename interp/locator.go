package interp

import "sort"

// Locator brackets x between grids[left] and grids[left+1]. Points at or before
// the first grid point get the first interval, points at or after the last grid
// point get the last one.
type Locator[X any] func(less func(a, b X) bool, grids []X, x X) (left int, err error)

func BinarySearch[X any](less func(a, b X) bool, grids []X, x X) (left int, err error) {
	n := len(grids)
	if n < 2 {
		err = invalidInput("locate in %d grid points", n)

		return
	}

	if !less(grids[0], x) {
		return
	}

	if !less(x, grids[n-1]) {
		left = n - 2

		return
	}

	// first index whose grid point lies strictly after x
	right := sort.Search(n, func(i int) bool {
		return less(x, grids[i])
	})
	left = right - 1

	return
}

// LinearScan walks the grid from the front. It returns what BinarySearch
// returns and suits short grids.
func LinearScan[X any](less func(a, b X) bool, grids []X, x X) (left int, err error) {
	n := len(grids)
	if n < 2 {
		err = invalidInput("locate in %d grid points", n)

		return
	}

	for left < n-2 && !less(x, grids[left+1]) {
		left++
	}

	return
}
