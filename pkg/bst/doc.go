// Package bst implements a value-keyed binary search tree over records.
//
// The tree is an integrity index: records are placed by their numeric value,
// not by their identifier, and the only read operation is a full in-order
// enumeration, which yields the records in non-decreasing value order.
// Looking a record up by identifier is not supported.
//
// # Placement
//
// [Insert] routes a value strictly less than the node's value into the left
// subtree and everything else, equal values included, into the right subtree.
// Duplicates are never rejected. With this tie-break, records of equal value
// come out of [InOrder] in the order they were inserted:
//
//	root := bst.Insert(nil, "A", 5)
//	root = bst.Insert(root, "B", 5)
//	bst.InOrder(root) // [(A, 5) (B, 5)]
//
// # Shape
//
// The tree is never rebalanced, so inserting already-sorted values produces a
// chain of depth n. [InOrder] recurses to that depth; [Walk] uses an explicit
// stack and is safe for arbitrarily deep trees. There is no deletion.
package bst
