package sorter_test

import (
	"fmt"

	"github.com/matzehuels/shardline/pkg/record"
	"github.com/matzehuels/shardline/pkg/sorter"
)

func ExampleQuick() {
	modules := record.Sequence{
		record.FromCode(104, 3.4),
		record.FromCode(215, 5.2),
		record.FromCode(309, 2.1),
	}
	fmt.Println(sorter.Quick(modules))
	// Output:
	// [(309, 2.1) (104, 3.4) (215, 5.2)]
}

func ExampleMerge() {
	shards := record.Sequence{
		record.FromCode(18, 3.1),
		record.FromCode(7, 1.2),
		record.FromCode(12, 2.5),
	}
	fmt.Println(sorter.Merge(shards))
	// Output:
	// [(7, 1.2) (12, 2.5) (18, 3.1)]
}

func ExampleByName() {
	s, err := sorter.ByName("merge")
	if err != nil {
		fmt.Println(err)
		return
	}
	ties := record.Sequence{{ID: "B", Value: 5}, {ID: "A", Value: 5}, {ID: "C", Value: 1}}
	fmt.Println(s.Name(), s.Sort(ties))
	// Output:
	// merge [(C, 1) (B, 5) (A, 5)]
}
