package engine

import "github.com/lixenwraith/tendril/vmath"

// Node is one point of a path with its target for the current tick
type Node struct {
	Pos  vmath.Vec2
	Next vmath.Vec2 // target position, pulled by forces before the step

	MinDistance     float64
	MaxDistance     float64
	RepulsionRadius float64

	fixed bool
}

// NewNode creates a node at pos with thresholds from s, target equal to pos
func NewNode(pos vmath.Vec2, s Settings) Node {
	return Node{
		Pos:             pos,
		Next:            pos,
		MinDistance:     s.MinDistance,
		MaxDistance:     s.MaxDistance,
		RepulsionRadius: s.RepulsionRadius,
	}
}

// Iterate moves the node step of the way toward its target
// Fixed nodes never move
func (n *Node) Iterate(step float64) {
	if n.fixed {
		return
	}
	n.Pos = vmath.Lerp(n.Pos, n.Next, step)
}

// Distance returns the Euclidean distance to other
func (n *Node) Distance(other *Node) float64 {
	return n.Pos.Dist(other.Pos)
}

// Fix freezes the node permanently; there is no way to unfix
func (n *Node) Fix() {
	n.fixed = true
	n.Next = n.Pos
}

// IsFixed reports whether the node is frozen
func (n *Node) IsFixed() bool {
	return n.fixed
}
