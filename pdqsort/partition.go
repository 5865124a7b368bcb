// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pdqsort

import "golang.org/x/exp/constraints"

// partition moves data[pivot] to its final position mid within data[a:b],
// with data[a:mid] < pivot and data[mid+1:b] >= pivot.
// alreadyPartitioned reports whether no element had to be swapped.
func partition[T constraints.Ordered](data []T, a, b, pivot int) (mid int, alreadyPartitioned bool) {
	data[a], data[pivot] = data[pivot], data[a]
	p := data[a]
	i, j := a+1, b-1

	for i <= j && data[i] < p {
		i++
	}
	for i <= j && !(data[j] < p) {
		j--
	}
	if i > j {
		data[j], data[a] = data[a], data[j]
		return j, true
	}
	data[i], data[j] = data[j], data[i]
	i++
	j--

	for {
		for i <= j && data[i] < p {
			i++
		}
		for i <= j && !(data[j] < p) {
			j--
		}
		if i > j {
			break
		}
		data[i], data[j] = data[j], data[i]
		i++
		j--
	}
	data[j], data[a] = data[a], data[j]
	return j, false
}

// partitionEqual moves every element equal to data[pivot] to the front of
// data[a:b] and returns the index of the first greater element. The caller
// guarantees no element of data[a:b] is smaller than the pivot.
func partitionEqual[T constraints.Ordered](data []T, a, b, pivot int) int {
	data[a], data[pivot] = data[pivot], data[a]
	p := data[a]
	i, j := a+1, b-1

	for {
		for i <= j && !(p < data[i]) {
			i++
		}
		for i <= j && p < data[j] {
			j--
		}
		if i > j {
			break
		}
		data[i], data[j] = data[j], data[i]
		i++
		j--
	}
	return i
}
