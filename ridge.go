package quickhull

// halfRidge is one side of a (D-2)-dimensional ridge waiting for its twin.
// Each new facet created around an apex publishes a half ridge per
// unresolved neighbour slot; when a second facet publishes the same vertex
// set the two are wired together and the entry retires. Ridges are never
// persisted beyond one round.
type halfRidge struct {
	facet int
	slot  int
}

// mix spreads point handles over the full hash range, splitmix style, so
// XOR-combined ridge keys do not collide on dense small handles.
func mix(x uint64) uint64 {
	x ^= x >> 33
	x *= 0xff51afd7ed558ccd
	x ^= x >> 33
	x *= 0xc4ceb9fe1a85ec53
	x ^= x >> 33
	return x
}

// matchRidges resolves the neighbour slots of new facet f still open after
// its horizon slot skip was wired. Every open slot is keyed by the XOR of
// its ridge's vertex hashes; the apex is common to all candidate ridges and
// drops out of the key. A pending twin with the same key and the same vertex
// set is wired mutually and removed, otherwise the slot is parked until its
// twin shows up. The pending set must drain completely by the end of each
// round.
func (h *Hull) matchRidges(f, skip int) {
	facet := &h.facets[f]
	var ridgeHash uint64
	for v := 0; v < h.dim; v++ {
		if v == skip {
			continue
		}
		hv := mix(uint64(facet.Vertices[v]))
		h.vertexHashes[v] = hv
		ridgeHash ^= hv
	}
	for v := 0; v < h.dim; v++ {
		if v == skip {
			continue
		}
		key := ridgeHash ^ h.vertexHashes[v]
		twins := h.pending[key]
		matched := -1
		for i, twin := range twins {
			if h.sameRidge(f, v, twin.facet, twin.slot) {
				matched = i
				break
			}
		}
		if matched < 0 {
			h.pending[key] = append(twins, halfRidge{facet: f, slot: v})
			continue
		}
		twin := twins[matched]
		h.facets[twin.facet].Neighbours[twin.slot] = f
		facet.Neighbours[v] = twin.facet
		twins[matched] = twins[len(twins)-1]
		twins = twins[:len(twins)-1]
		if len(twins) == 0 {
			delete(h.pending, key)
		} else {
			h.pending[key] = twins
		}
	}
}

// sameRidge reports whether the ridge opposite slot va of facet a carries
// the same vertex set as the ridge opposite slot vb of facet b. Quadratic in
// the dimension, but it only runs on hash agreement.
func (h *Hull) sameRidge(a, va, b, vb int) bool {
	av := h.facets[a].Vertices
	bv := h.facets[b].Vertices
	for i, l := range av {
		if i == va {
			continue
		}
		found := false
		for j, r := range bv {
			if j == vb {
				continue
			}
			if l == r {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
