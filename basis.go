package quickhull

import "fmt"

// AffineBasis extracts up to dim+1 affinely independent points from the
// unclassified pool to seed the initial simplex, by iterative farthest-point
// selection: the current basis spans a growing orthonormalized subspace and
// the pooled point furthest from that subspace is stolen into the basis. The
// arbitrary seed point is put back for rejudging once a second one is known.
//
// A result shorter than dim+1 means the input's affine span is rank
// deficient; callers must check the length before CreateSimplex.
func (h *Hull) AffineBasis() []int {
	if len(h.pool) == 0 {
		return nil
	}
	basis := make([]int, 0, h.dim+1)
	basis = append(basis, h.pool[0])
	h.pool = h.pool[1:]
	if !h.stealBest(&basis) {
		return basis
	}
	// hand the seed point back to the pool front so it competes again
	h.pool = append(h.pool, 0)
	copy(h.pool[1:], h.pool)
	h.pool[0] = basis[0]
	basis = basis[1:]
	for i := 0; i < h.dim; i++ {
		if !h.stealBest(&basis) {
			return basis
		}
	}
	return basis
}

// stealBest moves the pooled point furthest from the affine subspace spanned
// by the current basis into the basis. False means either the basis lost
// affine independence or no pooled point clears zero distance.
func (h *Hull) stealBest(basis *[]int) bool {
	b := *basis
	rank := len(b) - 1
	k := h.kernel
	origin := k.WorkRow(rank)
	h.loadPoint(origin, b[rank])
	for r := 0; r < rank; r++ {
		h.loadPoint(k.ShadowRow(r), b[r])
	}
	if !k.Orthonormalize(rank, origin) {
		return false
	}
	k.ExpandBasis(rank)
	best := -1
	var bestDist float64
	for i, p := range h.pool {
		h.loadPoint(h.ptBuf, p)
		if d := k.SubspaceDistance(rank, origin, h.ptBuf); bestDist < d {
			bestDist = d
			best = i
		}
	}
	if best < 0 {
		return false
	}
	*basis = append(b, h.pool[best])
	h.pool = append(h.pool[:best], h.pool[best+1:]...)
	return true
}

// CreateSimplex bootstraps the facet ring from dim+1 affinely independent
// point handles, normally the result of AffineBasis. The simplex centroid
// becomes the interior reference point fixing every normal's orientation.
// Each of the dim+1 facets omits one basis point, partitions the remaining
// pool and enters the ranking; afterwards the pool is spent. Returns the
// signed hypervolume of the simplex.
func (h *Hull) CreateSimplex(basis []int) float64 {
	if len(basis) != h.dim+1 {
		panic(fmt.Sprintf("quickhull: initial simplex needs %d points, got %d", h.dim+1, len(basis)))
	}
	if len(h.facets) != 0 {
		panic("quickhull: initial simplex already created")
	}
	inner := h.inner.Raw()
	for c := range inner {
		inner[c] = 0
	}
	for _, p := range basis {
		for c := 0; c < h.dim; c++ {
			inner[c] += h.src.Coordinate(p, c)
		}
	}
	for c := range inner {
		inner[c] /= float64(h.dim + 1)
	}
	volume := h.Hypervolume(basis)
	flip := volume < 0
	for omit := 0; omit <= h.dim; omit++ {
		h.facets = append(h.facets, h.simplexFacet(basis, omit, flip))
	}
	for f := range h.facets {
		facet := &h.facets[f]
		h.setHyperplane(facet)
		h.rankFacet(h.partition(facet), f)
	}
	h.pool = h.pool[:0]
	return volume
}
