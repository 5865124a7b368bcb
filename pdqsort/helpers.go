// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pdqsort

import (
	"math/bits"

	"golang.org/x/exp/constraints"
)

// insertionSort sorts data[a:b].
func insertionSort[T constraints.Ordered](data []T, a, b int) {
	for i := a + 1; i < b; i++ {
		for j := i; j > a && data[j] < data[j-1]; j-- {
			data[j], data[j-1] = data[j-1], data[j]
		}
	}
}

// heapSort sorts data[a:b] for the O(n log n) worst-case guarantee.
func heapSort[T constraints.Ordered](data []T, a, b int) {
	n := b - a

	// Build max-heap
	for i := (n - 1) / 2; i >= 0; i-- {
		siftDown(data, i, n, a)
	}

	// Extract elements
	for i := n - 1; i >= 0; i-- {
		data[a], data[a+i] = data[a+i], data[a]
		siftDown(data, 0, i, a)
	}
}

// siftDown restores the heap property for the heap rooted at data[first+root]
// holding n elements.
func siftDown[T constraints.Ordered](data []T, root, n, first int) {
	for {
		child := 2*root + 1
		if child >= n {
			return
		}
		if child+1 < n && data[first+child] < data[first+child+1] {
			child++
		}
		if !(data[first+root] < data[first+child]) {
			return
		}
		data[first+root], data[first+child] = data[first+child], data[first+root]
		root = child
	}
}

// partialInsertionSort tries to finish sorting data[a:b] by fixing a few
// out-of-order elements. It returns false, leaving data partially sorted, if
// more than a handful of fixes would be needed.
func partialInsertionSort[T constraints.Ordered](data []T, a, b int) bool {
	const (
		maxSteps         = 5  // maximum number of adjacent out-of-order pairs that will get shifted
		shortestShifting = 50 // don't shift any elements on short arrays
	)
	i := a + 1
	for range maxSteps {
		for i < b && !(data[i] < data[i-1]) {
			i++
		}

		if i == b {
			return true
		}

		if b-a < shortestShifting {
			return false
		}

		data[i], data[i-1] = data[i-1], data[i]

		// Shift the smaller one to the left.
		if i-a >= 2 {
			for j := i - 1; j >= 1; j-- {
				if !(data[j] < data[j-1]) {
					break
				}
				data[j], data[j-1] = data[j-1], data[j]
			}
		}
		// Shift the greater one to the right.
		if b-i >= 2 {
			for j := i + 1; j < b; j++ {
				if !(data[j] < data[j-1]) {
					break
				}
				data[j], data[j-1] = data[j-1], data[j]
			}
		}
	}
	return false
}

// breakPatterns swaps three elements near the middle of data[a:b] with
// pseudo-randomly chosen ones.
func breakPatterns[T constraints.Ordered](data []T, a, b int) {
	length := b - a
	if length < 8 {
		return
	}

	random := xorshift(length)
	modulus := nextPowerOfTwo(length)

	idx := a + (length/4)*2 - 1
	for i := range 3 {
		other := int(uint(random.Next()) & (modulus - 1))
		if other >= length {
			other -= length
		}
		data[idx-1+i], data[a+other] = data[a+other], data[idx-1+i]
	}
}

// choosePivot picks a pivot in data[a:b] and reports whether the sampled
// elements suggest the range is increasing or decreasing.
//
// [0,8): returns a static pivot.
// [8,nintherThreshold): median of three.
// [nintherThreshold,∞): Tukey's ninther.
func choosePivot[T constraints.Ordered](data []T, a, b int) (pivot int, hint sortedHint) {
	const maxSwaps = 4 * 3

	l := b - a

	var (
		swaps int
		i     = a + l/4*1
		j     = a + l/4*2
		k     = a + l/4*3
	)

	if l >= 8 {
		if l >= nintherThreshold {
			i = medianAdjacent(data, i, &swaps)
			j = medianAdjacent(data, j, &swaps)
			k = medianAdjacent(data, k, &swaps)
		}
		j = median(data, i, j, k, &swaps)
	}

	switch swaps {
	case 0:
		return j, increasingHint
	case maxSwaps:
		return j, decreasingHint
	default:
		return j, unknownHint
	}
}

// order2 returns x, y where data[x] <= data[y].
func order2[T constraints.Ordered](data []T, x, y int, swaps *int) (int, int) {
	if data[y] < data[x] {
		*swaps++
		return y, x
	}
	return x, y
}

// median returns x, y or z where the value is in between the other two.
func median[T constraints.Ordered](data []T, x, y, z int, swaps *int) int {
	x, y = order2(data, x, y, swaps)
	y, z = order2(data, y, z, swaps)
	_, y = order2(data, x, y, swaps)
	return y
}

// medianAdjacent finds the median of data[x-1], data[x], data[x+1].
func medianAdjacent[T constraints.Ordered](data []T, x int, swaps *int) int {
	return median(data, x-1, x, x+1, swaps)
}

func reverseRange[T constraints.Ordered](data []T, a, b int) {
	i := a
	j := b - 1
	for i < j {
		data[i], data[j] = data[j], data[i]
		i++
		j--
	}
}

// xorshift paper: https://www.jstatsoft.org/article/view/v008i14/xorshift.pdf
type xorshift uint64

func (r *xorshift) Next() uint64 {
	*r ^= *r << 13
	*r ^= *r >> 7
	*r ^= *r << 17
	return uint64(*r)
}

func nextPowerOfTwo(length int) uint {
	return 1 << bits.Len(uint(length))
}
