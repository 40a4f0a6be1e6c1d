// Package dataset loads restoration datasets from TOML, YAML or JSON files.
//
// A dataset carries everything a restoration run consumes: the corrupted
// fragment, the module codes, per-code metadata, the dependency map and an
// optional activation start. The optional protocol field names the
// restoration preset the dataset was captured for.
//
//	protocol = "codex9"
//	fragment = "edoc;nohtyp;ataD"
//	codes    = [104, 215, 309]
//	start    = "104"
//
//	[metadata.104]
//	size = 3.4
//	status = "ok"
//
//	[dependencies]
//	"104" = ["215", "309"]
//
// Dependency keys keep their document order for TOML and YAML. JSON objects
// are unordered once decoded, so JSON dependency keys are sorted lexically.
// Module identifiers may be written as strings or integers in every format.
package dataset

import (
	"fmt"
	"math"
	"slices"
	"strconv"

	"github.com/matzehuels/shardline/pkg/depgraph"
	"github.com/matzehuels/shardline/pkg/errors"
)

// Supported formats.
const (
	FormatTOML = "toml"
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// Formats lists the supported format names.
var Formats = []string{FormatTOML, FormatYAML, FormatJSON}

// Metadata is the free-form attribute map attached to one module code.
type Metadata map[string]any

// Number returns the value stored under key as a float64. ok is false when
// the key is missing; err is set when the value is present but not numeric.
func (m Metadata) Number(key string) (v float64, ok bool, err error) {
	raw, ok := m[key]
	if !ok {
		return 0, false, nil
	}
	switch n := raw.(type) {
	case float64:
		return n, true, nil
	case float32:
		return float64(n), true, nil
	case int:
		return float64(n), true, nil
	case int64:
		return float64(n), true, nil
	case uint64:
		return float64(n), true, nil
	default:
		return 0, true, errors.New(errors.ErrCodeInvalidDataset, "%s is %T, not a number", key, raw)
	}
}

// Dataset is a decoded restoration dataset.
type Dataset struct {
	Protocol     string
	Fragment     string
	Codes        []int
	Start        string
	Metadata     map[int]Metadata
	Dependencies []depgraph.Entry
}

// Graph builds the dependency graph, keeping the dataset's key order.
func (d *Dataset) Graph() *depgraph.Graph {
	return depgraph.FromEntries(d.Dependencies)
}

// MetadataCodes returns the codes that have metadata, ascending.
func (d *Dataset) MetadataCodes() []int {
	codes := make([]int, 0, len(d.Metadata))
	for c := range d.Metadata {
		codes = append(codes, c)
	}
	slices.Sort(codes)
	return codes
}

// Validate checks identifiers and numeric metadata. It does not check that
// the protocol name is known; that belongs to the restore package.
func (d *Dataset) Validate() error {
	if d.Start != "" {
		if err := errors.ValidateIdentifier(d.Start); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidDataset, err, "start")
		}
	}
	for _, e := range d.Dependencies {
		if err := errors.ValidateIdentifier(e.ID); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidDataset, err, "dependency key")
		}
		for _, dep := range e.Dependents {
			if err := errors.ValidateIdentifier(dep); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidDataset, err, "dependents of %s", e.ID)
			}
		}
	}
	for _, code := range d.MetadataCodes() {
		for key, v := range d.Metadata[code] {
			if f, ok := v.(float64); ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
				return errors.New(errors.ErrCodeInvalidDataset, "metadata %d: %s is not finite", code, key)
			}
		}
	}
	return nil
}

// document is the on-disk shape shared by all three decoders.
type document struct {
	Protocol     string              `toml:"protocol" yaml:"protocol" json:"protocol"`
	Fragment     string              `toml:"fragment" yaml:"fragment" json:"fragment"`
	Codes        []int               `toml:"codes" yaml:"codes" json:"codes"`
	Start        any                 `toml:"start" yaml:"start" json:"start"`
	Metadata     map[string]Metadata `toml:"metadata" yaml:"metadata" json:"metadata"`
	Dependencies map[string][]any    `toml:"dependencies" yaml:"dependencies" json:"dependencies"`
}

// build converts a decoded document into a Dataset. order lists the
// dependency keys in the sequence they should be declared; keys missing from
// order are appended lexically.
func (doc *document) build(order []string) (*Dataset, error) {
	ds := &Dataset{
		Protocol: doc.Protocol,
		Fragment: doc.Fragment,
		Codes:    slices.Clone(doc.Codes),
		Metadata: make(map[int]Metadata, len(doc.Metadata)),
	}

	if doc.Start != nil {
		start, err := moduleID(doc.Start)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "start")
		}
		ds.Start = start
	}

	for key, meta := range doc.Metadata {
		code, err := strconv.Atoi(key)
		if err != nil {
			return nil, errors.New(errors.ErrCodeInvalidDataset, "metadata key %q is not an integer code", key)
		}
		ds.Metadata[code] = meta
	}

	for _, key := range dependencyOrder(doc.Dependencies, order) {
		raw := doc.Dependencies[key]
		deps := make([]string, 0, len(raw))
		for _, v := range raw {
			id, err := moduleID(v)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "dependents of %s", key)
			}
			deps = append(deps, id)
		}
		ds.Dependencies = append(ds.Dependencies, depgraph.Entry{ID: key, Dependents: deps})
	}
	return ds, nil
}

func dependencyOrder(deps map[string][]any, order []string) []string {
	seen := make(map[string]bool, len(deps))
	keys := make([]string, 0, len(deps))
	for _, k := range order {
		if _, ok := deps[k]; ok && !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	var rest []string
	for k := range deps {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	slices.Sort(rest)
	return append(keys, rest...)
}

// moduleID normalizes an identifier written as a string or an integer.
func moduleID(v any) (string, error) {
	switch id := v.(type) {
	case string:
		return id, nil
	case int:
		return strconv.Itoa(id), nil
	case int64:
		return strconv.FormatInt(id, 10), nil
	case uint64:
		return strconv.FormatUint(id, 10), nil
	case float64:
		if id != math.Trunc(id) || math.IsInf(id, 0) {
			return "", fmt.Errorf("module id %v is not an integer", id)
		}
		return strconv.FormatFloat(id, 'f', -1, 64), nil
	default:
		return "", fmt.Errorf("module id has unsupported type %T", v)
	}
}
