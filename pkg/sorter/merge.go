package sorter

import "github.com/matzehuels/shardline/pkg/record"

// Merge sorts records by value using a stable top-down merge sort.
// Records with equal values keep their relative input order.
// The result is a new sequence; records is left untouched.
func Merge(records record.Sequence) record.Sequence {
	if len(records) <= 1 {
		return records.Clone()
	}

	mid := len(records) / 2
	return merge(Merge(records[:mid]), Merge(records[mid:]))
}

// merge combines two sorted runs. Ties take from left first.
func merge(left, right record.Sequence) record.Sequence {
	out := make(record.Sequence, 0, len(left)+len(right))
	i, j := 0, 0
	for i < len(left) && j < len(right) {
		if right[j].Value < left[i].Value {
			out = append(out, right[j])
			j++
		} else {
			out = append(out, left[i])
			i++
		}
	}
	out = append(out, left[i:]...)
	return append(out, right[j:]...)
}
