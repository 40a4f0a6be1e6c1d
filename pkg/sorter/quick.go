package sorter

import "github.com/matzehuels/shardline/pkg/record"

// Quick sorts records by value using a middle-pivot three-way quicksort.
// The result is a new sequence; records is left untouched.
//
// Each level allocates O(n) for its buckets and recursion depth is O(log n)
// on average and O(n) in the worst case.
func Quick(records record.Sequence) record.Sequence {
	if len(records) <= 1 {
		return records.Clone()
	}

	pivot := records[len(records)/2].Value

	var less, equal, greater record.Sequence
	for _, r := range records {
		switch {
		case r.Value < pivot:
			less = append(less, r)
		case r.Value > pivot:
			greater = append(greater, r)
		default:
			equal = append(equal, r)
		}
	}

	out := make(record.Sequence, 0, len(records))
	out = append(out, Quick(less)...)
	out = append(out, equal...)
	out = append(out, Quick(greater)...)
	return out
}
