package octree

import (
	"github.com/katalvlaran/fourd/core"
	"github.com/katalvlaran/fourd/vector"
)

// ForceFunc returns the force exerted on a point at a by a unit body at b.
type ForceFunc func(a, b vector.Vec) vector.Vec

// Node is one cluster of the tree; the value returned by New is the root.
type Node struct {
	innerDistance float64

	inner    []*core.Vertex
	members  map[int]struct{}
	sum      vector.Vec
	children [8]*Node
}

// New returns an empty root using s.InnerDistance as the clustering radius.
func New(s core.Settings) *Node {
	return newNode(s.InnerDistance)
}

func newNode(innerDistance float64) *Node {
	return &Node{innerDistance: innerDistance, members: make(map[int]struct{})}
}

// Centroid returns the mean position of the inner group, or the origin for
// an empty node.
func (n *Node) Centroid() vector.Vec {
	if len(n.inner) == 0 {
		return vector.Zero
	}
	return vector.Scale(1/float64(len(n.inner)), n.sum)
}

// Inner returns the ids of the inner group in insertion order.
func (n *Node) Inner() []int {
	out := make([]int, len(n.inner))
	for i, v := range n.inner {
		out[i] = v.ID
	}
	return out
}

// Child returns the child for octant i (0..7), or nil.
func (n *Node) Child(i int) *Node { return n.children[i] }

// Insert places v in the tree. The position is read once; moving v afterwards
// does not restructure the tree.
//
// Steps:
//  1. Empty node: v becomes the first inner member.
//  2. Within InnerDistance of the centroid: join the inner group.
//  3. Otherwise descend into the octant of v relative to the centroid.
func (n *Node) Insert(v *core.Vertex) {
	node := n
	for {
		if len(node.inner) == 0 {
			node.join(v)
			return
		}
		c := node.Centroid()
		if vector.Distance(v.Position, c) < node.innerDistance {
			node.join(v)
			return
		}
		i := octant(v.Position, c)
		if node.children[i] == nil {
			node.children[i] = newNode(node.innerDistance)
		}
		node = node.children[i]
	}
}

func (n *Node) join(v *core.Vertex) {
	n.inner = append(n.inner, v)
	n.members[v.ID] = struct{}{}
	n.sum = vector.Add(n.sum, v.Position)
}

// octant packs the per-axis sign of p − c into three bits: x→1, y→2, z→4.
func octant(p, c vector.Vec) int {
	i := 0
	if p.X >= c.X {
		i |= 1
	}
	if p.Y >= c.Y {
		i |= 2
	}
	if p.Z >= c.Z {
		i |= 4
	}
	return i
}

// Estimate returns the approximate net force on v from every vertex in the
// tree other than v itself.
func (n *Node) Estimate(v *core.Vertex, force ForceFunc) vector.Vec {
	var total vector.Vec
	n.estimate(v, force, &total)
	return total
}

func (n *Node) estimate(v *core.Vertex, force ForceFunc, total *vector.Vec) {
	if len(n.inner) > 0 {
		if _, ok := n.members[v.ID]; ok {
			for _, u := range n.inner {
				if u.ID == v.ID {
					continue
				}
				*total = vector.Add(*total, force(v.Position, u.Position))
			}
		} else {
			f := force(v.Position, n.Centroid())
			*total = vector.Add(*total, vector.Scale(float64(len(n.inner)), f))
		}
	}
	for _, child := range n.children {
		if child != nil {
			child.estimate(v, force, total)
		}
	}
}

// Size returns the number of vertices stored in the subtree.
func (n *Node) Size() int {
	size := len(n.inner)
	for _, child := range n.children {
		if child != nil {
			size += child.Size()
		}
	}
	return size
}

// Depth returns the number of levels in the subtree; an empty root has depth 1.
func (n *Node) Depth() int {
	deepest := 0
	for _, child := range n.children {
		if child != nil {
			if d := child.Depth(); d > deepest {
				deepest = d
			}
		}
	}
	return deepest + 1
}

// Nodes returns the number of nodes in the subtree.
func (n *Node) Nodes() int {
	count := 1
	for _, child := range n.children {
		if child != nil {
			count += child.Nodes()
		}
	}
	return count
}
