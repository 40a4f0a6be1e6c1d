package depgraph

import (
	"maps"
	"slices"
)

// Entry declares one identifier and its dependents.
type Entry struct {
	ID         string
	Dependents []string
}

// Graph is an insertion-ordered adjacency list.
//
// The zero value is an empty graph ready for use. Graph is not safe for
// concurrent mutation.
type Graph struct {
	keys []string
	adj  map[string][]string
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{adj: make(map[string][]string)}
}

// Build copies mapping into a new graph. Keys are declared in lexical order;
// dependents keep their order. An empty or nil mapping yields an empty graph.
func Build(mapping map[string][]string) *Graph {
	g := New()
	for _, id := range slices.Sorted(maps.Keys(mapping)) {
		g.Add(id, mapping[id]...)
	}
	return g
}

// FromEntries copies entries into a new graph, declaring keys in entry order.
// A repeated identifier extends the dependents of its first declaration.
func FromEntries(entries []Entry) *Graph {
	g := New()
	for _, e := range entries {
		g.Add(e.ID, e.Dependents...)
	}
	return g
}

// Add declares id if needed and appends dependents to its list.
// The dependents slice is copied.
func (g *Graph) Add(id string, dependents ...string) {
	if g.adj == nil {
		g.adj = make(map[string][]string)
	}
	existing, ok := g.adj[id]
	if !ok {
		g.keys = append(g.keys, id)
		existing = make([]string, 0, len(dependents))
	}
	g.adj[id] = append(existing, dependents...)
}

// Has reports whether id is a declared key.
func (g *Graph) Has(id string) bool {
	if g == nil {
		return false
	}
	_, ok := g.adj[id]
	return ok
}

// Dependents returns a copy of the dependents of id in stored order.
// Undeclared identifiers have no dependents and yield nil.
func (g *Graph) Dependents(id string) []string {
	if g == nil {
		return nil
	}
	deps, ok := g.adj[id]
	if !ok {
		return nil
	}
	return slices.Clone(deps)
}

// Nodes returns the declared keys in insertion order.
func (g *Graph) Nodes() []string {
	if g == nil {
		return nil
	}
	return slices.Clone(g.keys)
}

// Len returns the number of declared keys.
func (g *Graph) Len() int {
	if g == nil {
		return 0
	}
	return len(g.keys)
}

// EdgeCount returns the total number of dependents across all keys,
// counting repeated dependents and self loops.
func (g *Graph) EdgeCount() int {
	if g == nil {
		return 0
	}
	n := 0
	for _, deps := range g.adj {
		n += len(deps)
	}
	return n
}

// Referenced returns identifiers that appear as dependents but are never
// declared, in first-seen order. These are treated as leaves.
func (g *Graph) Referenced() []string {
	if g == nil {
		return nil
	}
	seen := make(map[string]bool)
	var out []string
	for _, id := range g.keys {
		for _, d := range g.adj[id] {
			if _, declared := g.adj[d]; declared || seen[d] {
				continue
			}
			seen[d] = true
			out = append(out, d)
		}
	}
	return out
}

// Clone returns a deep copy of the graph.
func (g *Graph) Clone() *Graph {
	c := New()
	if g == nil {
		return c
	}
	for _, id := range g.keys {
		c.Add(id, g.adj[id]...)
	}
	return c
}

// Map returns the adjacency as a plain map. Lists are copied.
func (g *Graph) Map() map[string][]string {
	out := make(map[string][]string, g.Len())
	if g == nil {
		return out
	}
	for _, id := range g.keys {
		out[id] = slices.Clone(g.adj[id])
	}
	return out
}

// Entries returns the graph as entries in declaration order.
func (g *Graph) Entries() []Entry {
	if g == nil {
		return nil
	}
	out := make([]Entry, len(g.keys))
	for i, id := range g.keys {
		out[i] = Entry{ID: id, Dependents: slices.Clone(g.adj[id])}
	}
	return out
}
