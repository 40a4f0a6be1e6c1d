// Package depgraph provides the adjacency-list dependency graph that drives
// module activation.
//
// A [Graph] maps each declared identifier to an ordered list of dependent
// identifiers. Graphs are built from caller data with [Build] or
// [FromEntries] and are never aliased to it: every dependents list is copied,
// so later changes on either side are invisible to the other.
//
// # Tolerance
//
// Nothing is validated at build time. A dependent that is never declared as a
// key is simply a node without dependents; [Graph.Dependents] returns nil for
// it. Self loops and cycles are stored as given; breaking them is the job of
// the traversal in package activation.
//
// # Ordering
//
// Dependents are always kept in input order, which is what makes traversal
// deterministic. Declared keys are enumerated by [Graph.Nodes] in insertion
// order; for [Build], whose input is a Go map without an order, keys are
// inserted lexically.
//
// # Rendering
//
// [ToDOT] emits Graphviz DOT text and [RenderSVG] renders it through the
// embedded Graphviz engine for the CLI's graph command.
package depgraph
