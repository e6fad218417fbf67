package quickhull

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// CosDihedral returns the cosine of the dihedral angle between facets f and
// g, the dot product of their unit normals.
func (h *Hull) CosDihedral(f, g int) float64 {
	return h.facets[f].Normal.Dot(h.facets[g].Normal)
}

// locallyConvex checks the ridge between f and each of its neighbours:
// unless the two facets are coplanar to roundoff, the neighbour's vertex
// opposite f must not rise above f's hyperplane beyond tolerance.
func (h *Hull) locallyConvex(f int) bool {
	facet := &h.facets[f]
	for _, n := range facet.Neighbours {
		if h.CosDihedral(f, n) < 1 {
			nb := &h.facets[n]
			for v, back := range nb.Neighbours {
				if back == f {
					if h.eps < h.distance(facet, nb.Vertices[v]) {
						return false
					}
					break
				}
			}
		}
	}
	return true
}

// Verify validates the constructed hull independently of the invariants
// maintained during construction: local convexity at every ridge, the
// interior reference point strictly inside every hyperplane, and a ray-cast
// containment test after Mehlhorn et al. A ray from the interior point
// through the first facet must not re-enter the hull within any other
// facet's simplex support; a hit means the surface folds over itself. True
// means the structure is a convex hull within tolerance.
func (h *Hull) Verify() bool {
	if len(h.facets) <= h.dim {
		return false
	}
	for f := range h.facets {
		if !h.locallyConvex(f) {
			return false
		}
	}
	first := &h.facets[0]
	if !(first.Dist(h.inner) < 0) {
		return false
	}

	// cast from the interior point through the first facet's centroid
	ray := mgl64.NewVecN(h.dim)
	raw := ray.Raw()
	for _, p := range first.Vertices {
		for c := 0; c < h.dim; c++ {
			raw[c] += h.src.Coordinate(p, c)
		}
	}
	for c := range raw {
		raw[c] = raw[c]/float64(h.dim) - h.inner.Get(c)
	}
	if !(ray.Dot(first.Normal) > 0) {
		return false
	}

	g := make([]*mgl64.VecN, h.dim) // dim x (dim+1) augmented system
	for r := range g {
		g[r] = mgl64.NewVecN(h.dim + 1)
	}
	inter := mgl64.NewVecN(h.dim)
	for fi := 1; fi < len(h.facets); fi++ {
		facet := &h.facets[fi]
		numerator := facet.Dist(h.inner)
		if !(numerator < 0) {
			return false // interior point leaked outside, not convex
		}
		denominator := ray.Dot(facet.Normal)
		if !(denominator > 0) {
			continue // ray runs parallel to or away from this plane
		}
		t := -(numerator / denominator)
		ir := inter.Raw()
		for c := 0; c < h.dim; c++ {
			ir[c] = h.inner.Get(c) + ray.Get(c)*t
		}
		if h.rayHitsFacet(facet, g, inter) {
			return false
		}
	}
	return true
}

// rayHitsFacet solves the barycentric coordinates of the ray-plane
// intersection over facet's vertices by Gaussian elimination with partial
// pivoting, after translating the whole configuration away from the origin
// by half its bounding-box diagonal along the facet normal. A hit means
// every solved coordinate lies in [0, 1].
func (h *Hull) rayHitsFacet(facet *Facet, g []*mgl64.VecN, inter *mgl64.VecN) bool {
	dim := h.dim
	for v := 0; v < dim; v++ {
		p := facet.Vertices[v]
		for r := 0; r < dim; r++ {
			g[r].Raw()[v] = h.src.Coordinate(p, r)
		}
	}
	var diagSq float64
	for r := 0; r < dim; r++ {
		row := g[r].Raw()
		row[dim] = inter.Get(r)
		var sum float64
		for _, x := range row {
			sum += x
		}
		center := sum / float64(dim+1)
		lo, hi := math.Inf(1), math.Inf(-1)
		for c := range row {
			row[c] -= center
			if row[c] < lo {
				lo = row[c]
			}
			if row[c] > hi {
				hi = row[c]
			}
		}
		ext := hi - lo
		diagSq += ext * ext
	}
	shift := math.Sqrt(diagSq) / 2
	for r := 0; r < dim; r++ {
		offset := shift * facet.Normal.Get(r)
		row := g[r].Raw()
		for c := range row {
			row[c] += offset
		}
	}

	for i := 0; i < dim; i++ {
		pivot := i
		best := math.Abs(g[i].Get(i))
		for p := i + 1; p < dim; p++ {
			if y := math.Abs(g[p].Get(i)); best < y {
				best = y
				pivot = p
			}
		}
		if !(h.eps < best) {
			// the translation above keeps every vertex off the origin
			panic("quickhull: vanishing pivot in verification solve")
		}
		if pivot != i {
			g[i], g[pivot] = g[pivot], g[i]
		}
		gi := g[i].Raw()
		for j := i + 1; j < dim; j++ {
			gj := g[j].Raw()
			m := gj[i] / gi[i]
			for c := i + 1; c <= dim; c++ {
				gj[c] -= m * gi[c]
			}
			gj[i] = 0
		}
	}
	for i := dim - 1; i >= 0; i-- {
		gi := g[i].Raw()
		x := gi[dim]
		for j := i + 1; j < dim; j++ {
			x -= gi[j] * g[j].Raw()[dim]
		}
		x /= gi[i]
		gi[dim] = x
		if x < 0 || 1 < x {
			return false // intersection misses the simplex support
		}
	}
	return true
}
