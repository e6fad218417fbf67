// Package quickhull computes convex hulls of finite point sets in any
// dimension above one, using the Quickhull family of algorithms. The engine
// produces the minimal set of oriented (D-1)-simplex facets bounding the
// hull, with full facet adjacency, per-facet hyperplane equations and a
// classification of non-vertex points as outside or coplanar.
//
// A construction session is driven through a Hull: feed point handles with
// AddPoints, seed the first facet ring with AffineBasis and CreateSimplex,
// run Build, then read the result through Facets. Verify runs an independent
// correctness oracle over the finished structure.
//
// The engine is deterministic, sequential and exact up to a single caller
// supplied tolerance shared by every geometric predicate.
//
// References:
//   - Barber, Dobkin, Huhdanpaa: "The Quickhull Algorithm for Convex Hulls",
//     ACM Transactions on Mathematical Software (1996)
//   - Mehlhorn, Näher, Schilz, Schirra, Seel, Seidel, Uhrig: "Checking
//     Geometric Programs or Verification of Geometric Structures" (1996),
//     the basis of the Verify oracle
package quickhull

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/akmonengine/quickhull/algebra"
)

// Hull is one hull construction session. All state lives in memory for the
// duration of the session and is owned by a single goroutine; no operation
// blocks or retries.
type Hull struct {
	dim int
	eps float64
	src Source

	kernel *algebra.Kernel

	facets []Facet
	freed  []int // recycled arena slots, reused before the arena grows

	ranking ranking

	pool []int // unclassified point handles

	inner *mgl64.VecN // interior reference point, centroid of the initial simplex
	ptBuf *mgl64.VecN // scratch for coordinate loads

	// horizon traversal state, reused between rounds
	stack        []int
	visited      map[int]struct{}
	visible      map[int]struct{}
	visibleList  []int
	newFacets    []int
	pending      map[uint64][]halfRidge
	vertexHashes []uint64
}

// New creates a construction session for dim-dimensional points read from
// src. eps is the tolerance shared by every geometric predicate, from pivot
// significance to outside/coplanar classification; callers pick it relative
// to coordinate magnitude and desired precision.
func New(dim int, eps float64, src Source) (*Hull, error) {
	if dim < 2 {
		return nil, fmt.Errorf("quickhull: dimension %d out of range, need at least 2", dim)
	}
	if eps < 0 || math.IsNaN(eps) {
		return nil, fmt.Errorf("quickhull: invalid tolerance %v, need a non-negative value", eps)
	}
	if src == nil {
		return nil, fmt.Errorf("quickhull: nil point source")
	}
	return &Hull{
		dim:          dim,
		eps:          eps,
		src:          src,
		kernel:       algebra.NewKernel(dim, eps),
		ranking:      ranking{pos: make(map[int]int)},
		inner:        mgl64.NewVecN(dim),
		ptBuf:        mgl64.NewVecN(dim),
		visited:      make(map[int]struct{}),
		visible:      make(map[int]struct{}),
		pending:      make(map[uint64][]halfRidge),
		vertexHashes: make([]uint64, dim),
	}, nil
}

// Dimension returns the session's point dimension.
func (h *Hull) Dimension() int { return h.dim }

// AddPoints enqueues point handles into the unclassified pool. Batches may
// be added any number of times before construction starts; handles added
// after Build are never re-partitioned.
func (h *Hull) AddPoints(ps ...int) {
	h.pool = append(h.pool, ps...)
}

// Facets exposes the facet collection. After Build it is the dense facet
// ring of the hull, every recycled slot compacted away; callers must treat
// it as read only.
func (h *Hull) Facets() []Facet { return h.facets }

// InnerPoint returns a copy of the interior reference point, the centroid of
// the initial simplex. Meaningful once CreateSimplex has run.
func (h *Hull) InnerPoint() []float64 {
	return append([]float64(nil), h.inner.Raw()...)
}

// Hypervolume computes the measure of the parallelotope spanned by the
// vectors from the last handle in ps to every other handle. With dim+1
// handles the result is the oriented hypervolume, its sign revealing the
// orientation of the tuple; with fewer it is the unsigned k-dimensional
// measure via the Gram determinant. Usable standalone at any session stage.
func (h *Hull) Hypervolume(ps []int) float64 {
	if len(ps) == 0 {
		return 0
	}
	rank := len(ps) - 1
	if h.dim < rank {
		panic(fmt.Sprintf("quickhull: %d points span more than %d dimensions", len(ps), h.dim))
	}
	k := h.kernel
	origin := k.ShadowRow(h.dim - 1)
	h.loadPoint(origin, ps[rank])
	for r := 0; r < rank; r++ {
		row := k.WorkRow(r)
		h.loadPoint(row, ps[r])
		row.Sub(row, origin)
	}
	if rank == h.dim {
		return k.Det(h.dim)
	}
	if rank == 0 {
		return 0
	}
	k.Gram(rank)
	return math.Sqrt(k.ShadowDet(rank))
}

// loadPoint copies the coordinates behind handle p into dst.
func (h *Hull) loadPoint(dst *mgl64.VecN, p int) {
	raw := dst.Raw()
	for c := 0; c < h.dim; c++ {
		raw[c] = h.src.Coordinate(p, c)
	}
}

// distance returns the signed distance from the point behind handle p to f's
// hyperplane, without copying the coordinates anywhere.
func (h *Hull) distance(f *Facet, p int) float64 {
	d := f.Offset
	normal := f.Normal.Raw()
	for c := 0; c < h.dim; c++ {
		d += normal[c] * h.src.Coordinate(p, c)
	}
	return d
}

// partition classifies every pooled point against f. Points beyond eps move
// into f's outside set with the furthest one kept at the front, so the next
// apex costs O(1) to find. Points within eps of the hyperplane are recorded
// as coplanar but stay pooled for the facets still to come; points below
// stay pooled untouched. Returns the largest outside distance seen, zero
// when the outside set stays empty.
func (h *Hull) partition(f *Facet) float64 {
	var furthest float64
	kept := h.pool[:0]
	for _, p := range h.pool {
		d := h.distance(f, p)
		if h.eps < d {
			f.Outside = append(f.Outside, p)
			if furthest < d {
				furthest = d
				last := len(f.Outside) - 1
				f.Outside[0], f.Outside[last] = f.Outside[last], f.Outside[0]
			}
			continue
		}
		if !(d < -h.eps) {
			f.Coplanar = append(f.Coplanar, p)
		}
		kept = append(kept, p)
	}
	h.pool = kept
	return furthest
}

// rankFacet enters f into the ranking while its outside set reaches beyond
// tolerance.
func (h *Hull) rankFacet(dist float64, f int) {
	if h.eps < dist {
		h.ranking.push(dist, f)
	}
}

// unrankFacet drops f from the ranking and recycles its arena slot.
func (h *Hull) unrankFacet(f int) {
	h.ranking.remove(f)
	h.freed = append(h.freed, f)
}
