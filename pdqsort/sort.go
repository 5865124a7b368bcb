// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pdqsort

import (
	"math/bits"

	"golang.org/x/exp/constraints"
)

// Thresholds for different sorting strategies.
const (
	// insertionThreshold: use insertion sort for ranges this size or smaller.
	insertionThreshold = 12

	// nintherThreshold: ranges at least this long use the ninther for pivots.
	nintherThreshold = 50
)

type sortedHint int

const (
	unknownHint sortedHint = iota
	increasingHint
	decreasingHint
)

// Sort sorts data in-place in ascending order.
func Sort[T constraints.Ordered](data []T) {
	n := len(data)
	if n <= 1 {
		return
	}

	// Number of bad pivots tolerated before falling back to heapsort.
	limit := bits.Len(uint(n))
	pdqsort(data, 0, n, limit)
}

// IsSorted reports whether data is sorted in ascending order.
func IsSorted[T constraints.Ordered](data []T) bool {
	for i := 1; i < len(data); i++ {
		if data[i] < data[i-1] {
			return false
		}
	}
	return true
}

// pdqsort sorts data[a:b]. Indices are kept relative to the full slice so
// that data[a-1] is the pivot of an enclosing partition when a > 0.
func pdqsort[T constraints.Ordered](data []T, a, b, limit int) {
	var (
		wasBalanced    = true
		wasPartitioned = true
	)

	for {
		length := b - a

		if length <= insertionThreshold {
			insertionSort(data, a, b)
			return
		}

		// Fallback to heapsort if too many bad pivots were chosen
		if limit == 0 {
			heapSort(data, a, b)
			return
		}

		// The previous partition was unbalanced; shuffle some elements to
		// defeat the pattern that caused it.
		if !wasBalanced {
			breakPatterns(data, a, b)
			limit--
		}

		pivot, hint := choosePivot(data, a, b)
		if hint == decreasingHint {
			reverseRange(data, a, b)
			pivot = (b - 1) - (pivot - a)
			hint = increasingHint
		}

		// Likely sorted already; try to finish with a bounded insertion sort.
		if wasBalanced && wasPartitioned && hint == increasingHint {
			if partialInsertionSort(data, a, b) {
				return
			}
		}

		// data[a-1] is the pivot of an enclosing partition and no element
		// in [a, b) is smaller than it. If the new pivot equals it, move all
		// equal elements to the front and skip them.
		if a > 0 && !(data[a-1] < data[pivot]) {
			a = partitionEqual(data, a, b, pivot)
			continue
		}

		mid, alreadyPartitioned := partition(data, a, b, pivot)
		wasPartitioned = alreadyPartitioned

		// Recurse into the smaller side and loop on the larger one to bound
		// stack depth by O(log n).
		leftLen, rightLen := mid-a, b-mid
		balanceThreshold := length / 8
		if leftLen < rightLen {
			wasBalanced = leftLen >= balanceThreshold
			pdqsort(data, a, mid, limit)
			a = mid + 1
		} else {
			wasBalanced = rightLen >= balanceThreshold
			pdqsort(data, mid+1, b, limit)
			b = mid
		}
	}
}
