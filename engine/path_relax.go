package engine

import (
	"github.com/lixenwraith/tendril/vmath"
)

// Iterate runs one tick: forces and commit per node, then topology edits
// grid is the world index built from positions at the start of the tick; nil disables repulsion
func (p *Path) Iterate(grid *SpatialGrid) {
	if p.nodes.Len() == 0 {
		return
	}

	p.relax(grid)
	p.SplitEdges()
	p.PruneNodes()

	if p.clock != nil && p.settings.InjectionInterval > 0 {
		now := p.clock.Now()
		if now.Sub(p.lastInject) >= p.settings.InjectionInterval {
			p.lastInject = now
			p.Inject()
		}
	}

	if p.display.ShowHistory {
		p.positions = p.nodes.Positions(p.positions[:0])
		p.history.Push(p.positions)
	}
}

// relax applies forces in fixed order to each node and commits the step
// No inserts happen here, so node pointers stay valid for the whole pass
func (p *Path) relax(grid *SpatialGrid) {
	s := &p.settings
	for id := p.nodes.Front(); id != NoNode; id = p.nodes.Next(id) {
		n := p.nodes.Get(id)
		if n.fixed {
			continue
		}
		n.Next = n.Pos

		if s.Jitter && s.JitterRange > 0 {
			half := s.JitterRange / 2
			n.Pos.X += p.rng.Range(-half, half)
			n.Pos.Y += p.rng.Range(-half, half)
		}

		var prev, next *Node
		if pid := p.prevOf(id); pid != NoNode {
			prev = p.nodes.Get(pid)
		}
		if nid := p.nextOf(id); nid != NoNode && nid != id {
			next = p.nodes.Get(nid)
		}

		p.attract(n, prev)
		p.attract(n, next)

		if grid != nil && n.RepulsionRadius > 0 {
			grid.Query(n.Pos, n.RepulsionRadius, func(e Entry) {
				if e.Path == p && e.ID == id {
					return
				}
				// Negative lerp: each hit pushes the accumulated target away
				n.Next = vmath.Lerp(n.Next, e.Pos, -s.RepulsionForce)
			})
		}

		if prev != nil && next != nil {
			n.Next = vmath.Lerp(n.Next, vmath.Mid(prev.Pos, next.Pos), s.AlignmentForce)
		}

		if p.bounds != nil && !p.bounds.Contains(n.Pos) {
			n.Fix()
			continue
		}

		n.Iterate(s.StepFraction)
	}
}

// attract pulls n's target toward nb when they are further apart than either tolerates
func (p *Path) attract(n, nb *Node) {
	if nb == nil {
		return
	}
	if n.Distance(nb) > min(n.MinDistance, nb.MinDistance) {
		n.Next = vmath.Lerp(n.Next, nb.Pos, p.settings.AttractionForce)
	}
}

// SplitEdges inserts midpoints until no edge exceeds MaxDistance
// Returns the number of nodes inserted
func (p *Path) SplitEdges() int {
	maxDist := p.settings.MaxDistance
	if !(maxDist > 0) || p.nodes.Len() < 2 {
		return 0
	}

	inserted := 0
	for id := p.nodes.Front(); id != NoNode && inserted < maxEditsPerPass; {
		prev := p.prevOf(id)
		if prev == NoNode {
			id = p.nodes.Next(id)
			continue
		}
		a, b := p.nodes.Get(prev).Pos, p.nodes.Get(id).Pos
		if d := a.Dist(b); d > maxDist && edgeOK(d) {
			mid := p.insertBefore(id, vmath.Mid(a, b))
			inserted++
			// Step back onto the new node so both halves get checked
			if p.nodes.Next(mid) == id {
				id = mid
			}
			continue
		}
		id = p.nodes.Next(id)
	}
	return inserted
}

// PruneNodes removes the previous neighbour of any node closer than MinDistance
// Fixed neighbours are kept; open paths keep at least 2 nodes, closed at least 3
// Returns the number of nodes removed
func (p *Path) PruneNodes() int {
	floor := 2
	if p.closed {
		floor = 3
	}
	minDist := p.settings.MinDistance

	removed := 0
	for id := p.nodes.Front(); id != NoNode && p.nodes.Len() > floor; {
		prev := p.prevOf(id)
		if prev == NoNode || prev == id {
			id = p.nodes.Next(id)
			continue
		}
		pn := p.nodes.Get(prev)
		if !pn.fixed && pn.Distance(p.nodes.Get(id)) < minDist {
			p.nodes.Remove(prev)
			removed++
			// Re-check id against its new previous neighbour
			continue
		}
		id = p.nodes.Next(id)
	}
	return removed
}

// Inject adds resolution using the active strategy, returning nodes added
func (p *Path) Inject() int {
	switch p.settings.InjectionMode {
	case InjectCurvature:
		return p.injectByCurvature()
	default:
		return p.injectRandom()
	}
}

// injectRandom splits the edge before one random node when it is longer than MinDistance
func (p *Path) injectRandom() int {
	if p.nodes.Len() < 2 {
		return 0
	}
	id := p.nodes.At(p.rng.Intn(p.nodes.Len()))
	prev := p.prevOf(id)
	if prev == NoNode {
		return 0
	}
	a, b := p.nodes.Get(prev).Pos, p.nodes.Get(id).Pos
	if d := a.Dist(b); d > p.settings.MinDistance && edgeOK(d) {
		p.insertBefore(id, vmath.Mid(a, b))
		return 1
	}
	return 0
}

// injectByCurvature replaces sharply turning nodes with the midpoints toward their neighbours
// Candidates are chosen from one snapshot; neighbours of a chosen node are skipped
// so adjacent replacements never emit the same midpoint twice
func (p *Path) injectByCurvature() int {
	if p.nodes.Len() < 3 {
		return 0
	}
	gate := 2 * p.settings.MinDistance
	threshold := p.settings.CurvatureThreshold

	p.plan = p.plan[:0]
	firstChosen, lastChosen := NoNode, NoNode
	p.ids = p.nodes.IDs(p.ids[:0])
	for _, id := range p.ids {
		if len(p.plan) >= maxEditsPerPass/2 {
			break
		}
		n := p.nodes.Get(id)
		prev, next := p.prevOf(id), p.nextOf(id)
		if n.fixed || prev == NoNode || next == NoNode || prev == lastChosen || next == firstChosen {
			continue
		}
		a, c := p.nodes.Get(prev).Pos, p.nodes.Get(next).Pos
		da, dc := a.Dist(n.Pos), n.Pos.Dist(c)
		if !(da > gate && dc > gate) || !edgeOK(da) || !edgeOK(dc) {
			continue
		}
		if vmath.TurnAngle(a, n.Pos, c) > threshold {
			p.plan = append(p.plan, curvatureEdit{id: id, a: vmath.Mid(a, n.Pos), b: vmath.Mid(n.Pos, c)})
			lastChosen = id
			if firstChosen == NoNode {
				firstChosen = id
			}
		}
	}

	for _, e := range p.plan {
		p.nodes.InsertBefore(e.id, NewNode(e.a, p.settings))
		p.nodes.InsertBefore(e.id, NewNode(e.b, p.settings))
		p.nodes.Remove(e.id)
	}
	return len(p.plan)
}
