// Package sorter orders record sequences by value, ascending.
//
// Two algorithms are provided, one per restoration protocol:
//
//   - [Quick]: three-way partition quicksort. The pivot is the value of the
//     middle element (index len/2). Records are filtered into less, equal and
//     greater buckets in input order, the outer buckets are sorted
//     recursively, and the three are concatenated.
//   - [Merge]: top-down merge sort. On equal values the left run wins, so ties
//     keep their input order.
//
// Both functions allocate a new slice and never modify their input. Because
// the quicksort partition is an order-preserving filter, it is stable as
// well; callers that depend on tie order should still prefer [Merge], which
// documents stability as part of its contract.
//
// Values are compared with the < operator. NaN values are a precondition
// violation; reject them with [record.Sequence.Validate] before sorting.
//
// # Choosing at runtime
//
// [ByName] resolves "quick" or "merge" into a [Sorter], which is how restoration
// protocols select their algorithm:
//
//	s, err := sorter.ByName("merge")
//	if err != nil {
//	    return err
//	}
//	sorted := s.Sort(records)
package sorter
