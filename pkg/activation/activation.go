// Package activation computes the order in which dependent modules come
// online, starting from one module of a dependency graph.
//
// The order is a depth-first preorder: a module is activated the first time it
// is reached, then its dependents are activated one after another in their
// stored order, each fully before the next. A visited set makes the walk
// terminate on cycles and guarantees every identifier appears at most once.
//
// Identifiers without an entry in the graph, including the start itself, are
// leaves. Nothing in this package fails: an unknown start yields [start].
//
// Every traversal returns a completion message alongside the order. The
// message is a fixed string chosen by the caller's protocol; it is meant to
// be shown verbatim, not interpreted.
package activation

import (
	"slices"

	"github.com/matzehuels/shardline/pkg/depgraph"
)

// DefaultMessage is returned when an Activator has no message configured.
const DefaultMessage = "Blueprint successfully restored. Codex-9 reboot complete."

// Activator runs activation traversals. The zero value is ready to use and
// reports DefaultMessage.
type Activator struct {
	// Message is the completion message returned with every order.
	Message string
}

// Activate is shorthand for Activator{}.Activate.
func Activate(g *depgraph.Graph, start string) ([]string, string) {
	return Activator{}.Activate(g, start)
}

// Activate walks g depth-first from start using recursion and returns the
// activation order and the completion message. A nil graph is treated as
// empty.
func (a Activator) Activate(g *depgraph.Graph, start string) ([]string, string) {
	w := &walker{graph: g, visited: make(map[string]bool)}
	w.visit(start)
	return w.order, a.message()
}

// ActivateIterative produces the same order as Activate with an explicit
// stack instead of recursion, so very deep dependency chains cannot exhaust
// the goroutine stack.
func (a Activator) ActivateIterative(g *depgraph.Graph, start string) ([]string, string) {
	visited := make(map[string]bool)
	var order []string

	stack := []string{start}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[id] {
			continue
		}
		visited[id] = true
		order = append(order, id)

		// Push in reverse so the first dependent is popped first.
		deps := g.Dependents(id)
		slices.Reverse(deps)
		stack = append(stack, deps...)
	}
	return order, a.message()
}

func (a Activator) message() string {
	if a.Message == "" {
		return DefaultMessage
	}
	return a.Message
}

// walker holds the state of one recursive traversal.
type walker struct {
	graph   *depgraph.Graph
	visited map[string]bool
	order   []string
}

func (w *walker) visit(id string) {
	if w.visited[id] {
		return
	}
	w.visited[id] = true
	w.order = append(w.order, id)

	for _, dep := range w.graph.Dependents(id) {
		w.visit(dep)
	}
}
