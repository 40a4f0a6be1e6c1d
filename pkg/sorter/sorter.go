package sorter

import (
	"slices"
	"strings"

	"github.com/matzehuels/shardline/pkg/errors"
	"github.com/matzehuels/shardline/pkg/record"
)

// Algorithm names accepted by [ByName].
const (
	NameQuick = "quick"
	NameMerge = "merge"
)

// DefaultName is the algorithm used when none is configured.
const DefaultName = NameMerge

// Sorter orders a record sequence by value.
type Sorter interface {
	// Sort returns a new sequence ordered by ascending value.
	Sort(records record.Sequence) record.Sequence
	// Name returns the algorithm name understood by ByName.
	Name() string
}

// Func adapts a plain sort function to the Sorter interface.
type Func struct {
	name string
	fn   func(record.Sequence) record.Sequence
}

// Sort implements Sorter.
func (f Func) Sort(records record.Sequence) record.Sequence { return f.fn(records) }

// Name implements Sorter.
func (f Func) Name() string { return f.name }

var registry = map[string]Sorter{
	NameQuick: Func{name: NameQuick, fn: Quick},
	NameMerge: Func{name: NameMerge, fn: Merge},
}

// ByName returns the sorter registered under name. An empty name selects
// DefaultName. Unknown names yield an INVALID_SORTER error.
func ByName(name string) (Sorter, error) {
	if name == "" {
		name = DefaultName
	}
	s, ok := registry[strings.ToLower(name)]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidSorter, "unknown sort algorithm %q (want one of: %s)", name, strings.Join(Names(), ", "))
	}
	return s, nil
}

// Names lists the registered algorithm names in lexical order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}
