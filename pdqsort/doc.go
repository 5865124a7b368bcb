// Package pdqsort provides a pattern-defeating quicksort (pdqsort).
//
// pdqsort is an introsort variant by Orson Peters that keeps quicksort's
// average case while detecting and exploiting patterns in the input:
//   - Insertion sort for small ranges
//   - Ninther (median of medians of three) pivot selection
//   - Partial insertion sort for ranges that are already nearly sorted
//   - Fat partitioning for runs of elements equal to the previous pivot
//   - Deterministic pattern breaking after unbalanced partitions
//   - Heapsort fallback to guarantee O(n log n) worst case
//
// # Example Usage
//
//	import "github.com/ajroetker/go-sortbench/pdqsort"
//
//	func ProcessData(data []int) {
//	    pdqsort.Sort(data)  // In-place ascending sort
//	}
//
// The implementation is the generic pdqsort from the Go standard library's
// slices package (src/slices/zsortordered.go), made a standalone package so
// that it can be benchmarked next to sort.Sort and reused on its own. The
// files carry the Go Authors' BSD license, see LICENSE.
//
// The sort is not stable. Floating point inputs containing NaN are not
// supported.
package pdqsort
