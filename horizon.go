package quickhull

// Build runs hull construction to completion. Each round pops the facet with
// the globally furthest outside point, absorbs that point as the new apex,
// tears out the sub-graph of facets visible from it and stitches new facets
// over the horizon ridges. Rounds repeat until no facet keeps an outside
// point beyond tolerance, then the facet arena is compacted. CreateSimplex
// must have succeeded first; the result is undefined otherwise.
func (h *Hull) Build() {
	for !h.ranking.empty() {
		f := h.ranking.best()
		facet := &h.facets[f]
		apex := facet.Outside[0]
		facet.Outside = facet.Outside[1:]
		h.absorb(f, apex)
		// whatever the new facets did not claim is interior now
		h.pool = h.pool[:0]
	}
	h.compact()
}

// absorb tears out the facets visible from apex, starting at the facet that
// owned it, and rebuilds the surface over the horizon.
func (h *Hull) absorb(start, apex int) {
	h.loadPoint(h.ptBuf, apex)

	// Discover the visible sub-graph with an explicit work list; recursion
	// depth would otherwise track the size of the visible region. A facet is
	// visible iff the apex sits strictly above its hyperplane. Visible
	// facets give their outside points back to the pool on the spot.
	h.visibleList = h.visibleList[:0]
	h.visited[start] = struct{}{}
	h.visible[start] = struct{}{}
	h.visibleList = append(h.visibleList, start)
	h.reclaim(start)
	h.stack = append(h.stack[:0], start)
	for len(h.stack) > 0 {
		f := h.stack[len(h.stack)-1]
		h.stack = h.stack[:len(h.stack)-1]
		for _, n := range h.facets[f].Neighbours {
			if _, seen := h.visited[n]; seen {
				continue
			}
			h.visited[n] = struct{}{}
			if h.facets[n].Dist(h.ptBuf) > 0 {
				h.visible[n] = struct{}{}
				h.visibleList = append(h.visibleList, n)
				h.reclaim(n)
				h.stack = append(h.stack, n)
			}
		}
	}

	// Every neighbour link from a visible facet to a non-visible one crosses
	// a horizon ridge. Replace the crossing vertex with the apex to span a
	// new facet over the ridge, keep the non-visible facet as its wired
	// neighbour, and leave the remaining slots to ridge matching.
	for _, f := range h.visibleList {
		for v := 0; v < h.dim; v++ {
			n := h.facets[f].Neighbours[v]
			if _, ok := h.visible[n]; ok {
				continue
			}
			nf := h.addFacet(h.facets[f].Vertices, v, apex, n)
			h.setHyperplane(&h.facets[nf])
			h.newFacets = append(h.newFacets, nf)
			h.replaceNeighbour(n, f, nf)
			h.matchRidges(nf, v)
		}
	}
	if len(h.pending) != 0 {
		panic("quickhull: unmatched ridges left after horizon stitching")
	}

	// The torn-out slots are free once every link into them is repointed.
	for _, f := range h.visibleList {
		h.unrankFacet(f)
	}

	for _, nf := range h.newFacets {
		if !h.locallyConvex(nf) {
			panic("quickhull: new facet breaks local convexity")
		}
		h.rankFacet(h.partition(&h.facets[nf]), nf)
	}
	h.newFacets = h.newFacets[:0]
	clear(h.visited)
	clear(h.visible)
}

// reclaim returns f's outside points to the pool and drops its coplanar set.
func (h *Hull) reclaim(f int) {
	facet := &h.facets[f]
	h.pool = append(h.pool, facet.Outside...)
	facet.Outside = facet.Outside[:0]
	facet.Coplanar = facet.Coplanar[:0]
}
