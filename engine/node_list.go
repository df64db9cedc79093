package engine

import "github.com/lixenwraith/tendril/vmath"

// NodeID addresses a slot in a NodeList arena
// IDs stay valid until the node is removed; removed slots are recycled
type NodeID int32

// NoNode marks the absence of a node (list ends, open path neighbours)
const NoNode NodeID = -1

type slot struct {
	node       Node
	prev, next NodeID
	live       bool
}

// NodeList is an arena-backed doubly linked list of nodes in geometric order
// Insert and remove are O(1); pointers returned by Get are valid until the next insert
type NodeList struct {
	slots      []slot
	free       []NodeID
	head, tail NodeID
	count      int
}

// NewNodeList creates an empty list with room for capacity nodes
func NewNodeList(capacity int) *NodeList {
	return &NodeList{
		slots: make([]slot, 0, capacity),
		head:  NoNode,
		tail:  NoNode,
	}
}

// Len returns the number of live nodes
func (l *NodeList) Len() int { return l.count }

// Front returns the first node, NoNode when empty
func (l *NodeList) Front() NodeID { return l.head }

// Back returns the last node, NoNode when empty
func (l *NodeList) Back() NodeID { return l.tail }

// Valid reports whether id addresses a live node
func (l *NodeList) Valid(id NodeID) bool {
	return id >= 0 && int(id) < len(l.slots) && l.slots[id].live
}

// Get returns the node for id, nil when id is not live
func (l *NodeList) Get(id NodeID) *Node {
	if !l.Valid(id) {
		return nil
	}
	return &l.slots[id].node
}

// Next returns the following node, NoNode at the tail
func (l *NodeList) Next(id NodeID) NodeID {
	if !l.Valid(id) {
		return NoNode
	}
	return l.slots[id].next
}

// Prev returns the preceding node, NoNode at the head
func (l *NodeList) Prev(id NodeID) NodeID {
	if !l.Valid(id) {
		return NoNode
	}
	return l.slots[id].prev
}

// PushBack appends n and returns its id
func (l *NodeList) PushBack(n Node) NodeID {
	id := l.alloc(n)
	s := &l.slots[id]
	s.prev = l.tail
	s.next = NoNode
	if l.tail != NoNode {
		l.slots[l.tail].next = id
	} else {
		l.head = id
	}
	l.tail = id
	return id
}

// InsertBefore links n immediately before at; NoNode appends
func (l *NodeList) InsertBefore(at NodeID, n Node) NodeID {
	if !l.Valid(at) {
		return l.PushBack(n)
	}
	id := l.alloc(n)
	prev := l.slots[at].prev

	s := &l.slots[id]
	s.prev = prev
	s.next = at
	l.slots[at].prev = id
	if prev != NoNode {
		l.slots[prev].next = id
	} else {
		l.head = id
	}
	return id
}

// InsertAfter links n immediately after at; NoNode appends
func (l *NodeList) InsertAfter(at NodeID, n Node) NodeID {
	if !l.Valid(at) || at == l.tail {
		return l.PushBack(n)
	}
	return l.InsertBefore(l.slots[at].next, n)
}

// Remove unlinks id and recycles its slot
func (l *NodeList) Remove(id NodeID) {
	if !l.Valid(id) {
		return
	}
	s := &l.slots[id]
	if s.prev != NoNode {
		l.slots[s.prev].next = s.next
	} else {
		l.head = s.next
	}
	if s.next != NoNode {
		l.slots[s.next].prev = s.prev
	} else {
		l.tail = s.prev
	}
	*s = slot{prev: NoNode, next: NoNode}
	l.free = append(l.free, id)
	l.count--
}

// At returns the id at sequence position i, NoNode when out of range. O(n)
func (l *NodeList) At(i int) NodeID {
	if i < 0 || i >= l.count {
		return NoNode
	}
	id := l.head
	for ; i > 0; i-- {
		id = l.slots[id].next
	}
	return id
}

// IDs appends live ids in sequence order to dst
func (l *NodeList) IDs(dst []NodeID) []NodeID {
	for id := l.head; id != NoNode; id = l.slots[id].next {
		dst = append(dst, id)
	}
	return dst
}

// Positions appends node positions in sequence order to dst
func (l *NodeList) Positions(dst []vmath.Vec2) []vmath.Vec2 {
	for id := l.head; id != NoNode; id = l.slots[id].next {
		dst = append(dst, l.slots[id].node.Pos)
	}
	return dst
}

// Each visits nodes in sequence order; fn must not insert or remove
func (l *NodeList) Each(fn func(id NodeID, n *Node)) {
	for id := l.head; id != NoNode; id = l.slots[id].next {
		fn(id, &l.slots[id].node)
	}
}

// Reset removes every node, keeping allocated capacity
func (l *NodeList) Reset() {
	l.slots = l.slots[:0]
	l.free = l.free[:0]
	l.head, l.tail = NoNode, NoNode
	l.count = 0
}

func (l *NodeList) alloc(n Node) NodeID {
	l.count++
	if k := len(l.free); k > 0 {
		id := l.free[k-1]
		l.free = l.free[:k-1]
		l.slots[id] = slot{node: n, live: true}
		return id
	}
	l.slots = append(l.slots, slot{node: n, live: true})
	return NodeID(len(l.slots) - 1)
}
