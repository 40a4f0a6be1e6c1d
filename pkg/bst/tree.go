package bst

import "github.com/matzehuels/shardline/pkg/record"

// Node is a tree node. Each node exclusively owns its children.
type Node struct {
	ID    string
	Value float64
	Left  *Node
	Right *Node
}

// Record returns the node's (identifier, value) pair.
func (n *Node) Record() record.Record {
	return record.Record{ID: n.ID, Value: n.Value}
}

// Insert places (id, value) into the tree rooted at root and returns the root.
// A nil root yields a new single-node tree. Values less than a node's value go
// left; equal or greater values go right.
func Insert(root *Node, id string, value float64) *Node {
	if root == nil {
		return &Node{ID: id, Value: value}
	}
	if value < root.Value {
		root.Left = Insert(root.Left, id, value)
	} else {
		root.Right = Insert(root.Right, id, value)
	}
	return root
}

// Build inserts records in order into an empty tree and returns its root.
// An empty sequence yields a nil root.
func Build(records record.Sequence) *Node {
	var root *Node
	for _, r := range records {
		root = Insert(root, r.ID, r.Value)
	}
	return root
}

// InOrder returns the records of the tree: left subtree, node, right subtree.
// A nil root yields an empty sequence.
func InOrder(root *Node) record.Sequence {
	out := make(record.Sequence, 0)
	return inorder(root, out)
}

func inorder(n *Node, out record.Sequence) record.Sequence {
	if n == nil {
		return out
	}
	out = inorder(n.Left, out)
	out = append(out, n.Record())
	return inorder(n.Right, out)
}

// Walk visits nodes in order using an explicit stack. It stops early when fn
// returns false. The visiting order is identical to InOrder.
func Walk(root *Node, fn func(*Node) bool) {
	var stack []*Node
	n := root
	for n != nil || len(stack) > 0 {
		for n != nil {
			stack = append(stack, n)
			n = n.Left
		}
		n = stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(n) {
			return
		}
		n = n.Right
	}
}

// Len returns the number of nodes.
func Len(root *Node) int {
	count := 0
	Walk(root, func(*Node) bool {
		count++
		return true
	})
	return count
}

// Height returns the number of nodes on the longest root-to-leaf path.
// A nil tree has height 0.
func Height(root *Node) int {
	if root == nil {
		return 0
	}
	type frame struct {
		node  *Node
		depth int
	}
	best := 0
	stack := []frame{{root, 1}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		best = max(best, f.depth)
		if f.node.Left != nil {
			stack = append(stack, frame{f.node.Left, f.depth + 1})
		}
		if f.node.Right != nil {
			stack = append(stack, frame{f.node.Right, f.depth + 1})
		}
	}
	return best
}
