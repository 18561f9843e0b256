// Package scene implements the orrery's scene graph: a tree of owned nodes
// carrying local transforms, visibility flags and renderable geometry.
package scene

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/litescript/ls-orrery/internal/astro"
)

// Kind identifies what a node draws.
type Kind int

const (
	KindGroup  Kind = iota // Transform only, draws nothing
	KindSphere             // Sphere mesh scaled by Node.Scale
	KindPoints             // Point cloud (Node.Cloud)
	KindLine               // Polyline (Node.Line)
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindGroup:
		return "group"
	case KindSphere:
		return "sphere"
	case KindPoints:
		return "points"
	case KindLine:
		return "line"
	default:
		return "unknown"
	}
}

// Node is a single element of the scene graph.
// A node has at most one parent and any number of children. Position,
// RotationY and Scale form the local transform. Children live in the scaled
// frame, so a moon parented under a planet mesh orbits at distance*radius.
type Node struct {
	Name      string
	Kind      Kind
	Position  astro.Vec3
	RotationY float64 // Radians about the parent's Y axis
	Scale     float64
	Visible   bool
	Material  Material

	Cloud *PointCloud  // KindPoints only
	Line  []astro.Vec3 // KindLine only, local coordinates

	parent *Node
	sub    *Node // first child
	next   *Node // next sibling
}

// NewNode creates a visible node with unit scale.
func NewNode(name string, kind Kind) *Node {
	return &Node{Name: name, Kind: kind, Scale: 1, Visible: true}
}

// NewGroup creates a transform-only node.
func NewGroup(name string) *Node { return NewNode(name, KindGroup) }

// Add appends child as the last immediate descendant of n, detaching it from
// any previous parent first. child must not be an ancestor of n.
func (n *Node) Add(child *Node) {
	child.Remove()
	child.parent = n
	if n.sub == nil {
		n.sub = child
		return
	}
	last := n.sub
	for last.next != nil {
		last = last.next
	}
	last.next = child
}

// Remove detaches n from its parent. The subtree rooted at n stays intact.
func (n *Node) Remove() {
	p := n.parent
	if p == nil {
		return
	}
	if p.sub == n {
		p.sub = n.next
	} else {
		for s := p.sub; s != nil; s = s.next {
			if s.next == n {
				s.next = n.next
				break
			}
		}
	}
	n.parent = nil
	n.next = nil
}

// Parent returns the immediate ancestor, or nil for a root.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the immediate descendants in insertion order.
func (n *Node) Children() []*Node {
	var out []*Node
	for s := n.sub; s != nil; s = s.next {
		out = append(out, s)
	}
	return out
}

// Walk visits n and its descendants depth-first, parents before children.
// Returning false from fn skips the visited node's subtree.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for s := n.sub; s != nil; s = s.next {
		s.Walk(fn)
	}
}

// LocalToWorld transforms p from n's local frame into world coordinates by
// composing every transform (scale, then rotation, then translation) from n
// up to the root.
func (n *Node) LocalToWorld(p astro.Vec3) astro.Vec3 {
	v := r3.Vec{X: p.X, Y: p.Y, Z: p.Z}
	for a := n; a != nil; a = a.parent {
		if a.Scale != 1 {
			v = r3.Scale(a.Scale, v)
		}
		if a.RotationY != 0 {
			v = r3.NewRotation(a.RotationY, r3.Vec{Y: 1}).Rotate(v)
		}
		v = r3.Add(v, r3.Vec{X: a.Position.X, Y: a.Position.Y, Z: a.Position.Z})
	}
	return astro.Vec3{X: v.X, Y: v.Y, Z: v.Z}
}

// WorldPosition returns the node's origin in world coordinates.
func (n *Node) WorldPosition() astro.Vec3 {
	if n.parent == nil {
		return n.Position
	}
	return n.parent.LocalToWorld(n.Position)
}

// WorldScale returns the node's scale composed with every ancestor's.
func (n *Node) WorldScale() float64 {
	s := 1.0
	for a := n; a != nil; a = a.parent {
		s *= a.Scale
	}
	return s
}

// WorldVisible reports whether n and all of its ancestors are visible.
func (n *Node) WorldVisible() bool {
	for a := n; a != nil; a = a.parent {
		if !a.Visible {
			return false
		}
	}
	return true
}

// Graph is a scene graph rooted at an invisible-to-renderers group.
type Graph struct {
	root *Node
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{root: NewGroup("scene")}
}

// Root returns the root node.
func (g *Graph) Root() *Node { return g.root }

// Add registers n directly under the root.
func (g *Graph) Add(n *Node) { g.root.Add(n) }

// Walk visits every node below the root.
func (g *Graph) Walk(fn func(*Node) bool) {
	for s := g.root.sub; s != nil; s = s.next {
		s.Walk(fn)
	}
}

// Len returns the number of nodes below the root.
func (g *Graph) Len() int {
	count := 0
	g.Walk(func(*Node) bool {
		count++
		return true
	})
	return count
}

// Find returns the first node with the given name, or nil.
func (g *Graph) Find(name string) *Node {
	var found *Node
	g.Walk(func(n *Node) bool {
		if found != nil {
			return false
		}
		if n.Name == name {
			found = n
			return false
		}
		return true
	})
	return found
}
