package quickhull

import (
	"math"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
)

// Facet is one (D-1)-dimensional oriented simplex face of the hull.
//
// Vertices holds exactly D point handles. Neighbours holds exactly D facet
// indices; Neighbours[i] is the facet sharing the ridge opposite
// Vertices[i], and the link is always mutual. Normal and Offset give the
// hyperplane equation dot(Normal, x) + Offset = 0 with a unit outward
// normal, so every interior point sits at a strictly negative distance.
//
// Outside holds the points strictly beyond the hyperplane, the furthest one
// first. Coplanar holds points within tolerance of the hyperplane that never
// became vertices; a facet torn out during construction takes its coplanar
// set with it, those points are not reclassified.
type Facet struct {
	Vertices   []int
	Neighbours []int

	Normal *mgl64.VecN
	Offset float64

	Outside  []int
	Coplanar []int
}

// Dist returns the signed distance from x to the facet's hyperplane.
func (f *Facet) Dist(x *mgl64.VecN) float64 {
	return f.Normal.Dot(x) + f.Offset
}

// addFacet creates a facet from the vertex ring of an absorbed facet, with
// apex substituted at slot against and neighbour wired into the matching
// slot. Freed arena slots are reused before the arena grows; the remaining
// neighbour slots are left for ridge matching to resolve.
func (h *Hull) addFacet(vertices []int, against, apex, neighbour int) int {
	if n := len(h.freed); n > 0 {
		i := h.freed[n-1]
		h.freed = h.freed[:n-1]
		f := &h.facets[i]
		copy(f.Vertices, vertices)
		f.Vertices[against] = apex
		f.Neighbours[against] = neighbour
		f.Outside = f.Outside[:0]
		f.Coplanar = f.Coplanar[:0]
		return i
	}
	f := Facet{
		Vertices:   make([]int, h.dim),
		Neighbours: make([]int, h.dim),
		Normal:     mgl64.NewVecN(h.dim),
	}
	copy(f.Vertices, vertices)
	f.Vertices[against] = apex
	f.Neighbours[against] = neighbour
	h.facets = append(h.facets, f)
	return len(h.facets) - 1
}

// simplexFacet builds the initial-ring facet omitting basis[omit]. Slot j
// holds the j-th remaining basis point and is pre-wired to the facet
// omitting that point, which shares every vertex but one. Alternating
// omitted slots flip orientation so that all ring normals point outward.
func (h *Hull) simplexFacet(basis []int, omit int, flip bool) Facet {
	f := Facet{
		Vertices:   make([]int, 0, h.dim),
		Neighbours: make([]int, 0, h.dim),
		Normal:     mgl64.NewVecN(h.dim),
	}
	for v := 0; v <= h.dim; v++ {
		if v != omit {
			f.Vertices = append(f.Vertices, basis[v])
			f.Neighbours = append(f.Neighbours, v)
		}
	}
	if flip == ((h.dim-omit)%2 == 0) {
		last := h.dim - 1
		f.Vertices[0], f.Vertices[last] = f.Vertices[last], f.Vertices[0]
		f.Neighbours[0], f.Neighbours[last] = f.Neighbours[last], f.Neighbours[0]
	}
	return f
}

// setHyperplane computes f's hyperplane equation from its vertices. The
// offset is the negated determinant of the transposed vertex matrix; each
// normal component is the determinant with the matching coordinate row
// replaced by ones (cofactor expansion). Both are scaled so the normal has
// unit length. The interior reference point must end up strictly below the
// plane; anything else means the ring lost its orientation and the session
// aborts.
func (h *Hull) setHyperplane(f *Facet) {
	k := h.kernel
	for r := 0; r < h.dim; r++ {
		h.loadPoint(k.ShadowRow(r), f.Vertices[r])
	}
	k.TransposeShadow()
	k.ShadowToWork()
	f.Offset = -k.Det(h.dim)
	var norm float64
	normal := f.Normal.Raw()
	for i := 0; i < h.dim; i++ {
		k.RestoreWork(i)
		n := k.Det(h.dim)
		normal[i] = n
		norm += n * n
	}
	norm = math.Sqrt(norm)
	for c := range normal {
		normal[c] /= norm
	}
	f.Offset /= norm
	if !(f.Dist(h.inner) < 0) {
		panic("quickhull: interior reference point ended up outside a facet hyperplane")
	}
}

// replaceNeighbour repoints the link to facet from inside facet f to to.
func (h *Hull) replaceNeighbour(f, from, to int) {
	if from == to {
		return
	}
	ns := h.facets[f].Neighbours
	for i, n := range ns {
		if n == from {
			ns[i] = to
			return
		}
	}
}

// compact removes the holes left by recycled slots, moving facets down from
// the end of the arena and repointing every neighbour link, so the final
// facet collection is dense.
func (h *Hull) compact() {
	slices.Sort(h.freed)
	source := len(h.facets)
	for i := len(h.freed) - 1; i >= 0; i-- {
		destination := h.freed[i]
		source--
		if destination != source {
			h.facets[destination] = h.facets[source]
			for _, n := range h.facets[destination].Neighbours {
				h.replaceNeighbour(n, source, destination)
			}
			h.ranking.rekey(source, destination)
		}
	}
	h.facets = h.facets[:source]
	h.freed = h.freed[:0]
}
