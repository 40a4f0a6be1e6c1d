// Package record defines the (identifier, value) pairs that flow through the
// shardline ordering core.
//
// A [Record] names a module or shard and carries one numeric attribute (its
// size or energy). The core orders records by value only; identifiers are
// opaque and may repeat. Integer codes from upstream stages are carried as
// their decimal string, see [FromCode].
package record

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/shardline/pkg/errors"
)

// Record is a single (identifier, value) pair.
type Record struct {
	ID    string  `json:"id" toml:"id" yaml:"id"`
	Value float64 `json:"value" toml:"value" yaml:"value"`
}

// FromCode builds a Record from an integer module code.
func FromCode(code int, value float64) Record {
	return Record{ID: strconv.Itoa(code), Value: value}
}

// String renders the record as "(id, value)".
func (r Record) String() string {
	return fmt.Sprintf("(%s, %s)", r.ID, strconv.FormatFloat(r.Value, 'g', -1, 64))
}

// Validate checks the preconditions the core relies on: a non-empty,
// printable identifier and a finite value.
func (r Record) Validate() error {
	if err := errors.ValidateIdentifier(r.ID); err != nil {
		return err
	}
	if err := errors.ValidateValue(r.Value); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidRecord, err, "record %s", r.ID)
	}
	return nil
}

// Sequence is an ordered list of records.
type Sequence []Record

// Validate checks every record and reports the first violation with its index.
func (s Sequence) Validate() error {
	for i, r := range s {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
	}
	return nil
}

// IsSorted reports whether values are non-decreasing.
func (s Sequence) IsSorted() bool {
	for i := 1; i < len(s); i++ {
		if s[i].Value < s[i-1].Value {
			return false
		}
	}
	return true
}

// Clone returns an independent copy. A nil sequence clones to an empty one.
func (s Sequence) Clone() Sequence {
	out := make(Sequence, len(s))
	copy(out, s)
	return out
}

// IDs returns the identifiers in sequence order.
func (s Sequence) IDs() []string {
	ids := make([]string, len(s))
	for i, r := range s {
		ids[i] = r.ID
	}
	return ids
}

// String renders the sequence as "[(309, 2.1) (104, 3.4)]".
func (s Sequence) String() string {
	parts := make([]string, len(s))
	for i, r := range s {
		parts[i] = r.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}
