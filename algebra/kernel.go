// Package algebra provides the dense numeric kernel behind the hull engine:
// determinants via LU elimination with partial pivoting, orthonormal basis
// construction via Householder reflections, and reconstruction of the
// orthonormal factor from the packed QR form.
//
// A Kernel owns two pre-sized scratch matrices of identical shape, the
// working matrix and the shadow matrix. One holds the matrix being
// eliminated or the expanded Q factor, the other the packed QR form or a
// transposed copy. Rows are swapped by pointer, so pivoting costs O(1) per
// exchange and no operation allocates after construction.
package algebra

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Kernel is a reusable dense linear-algebra workspace for one dimension and
// one tolerance. It is not safe for concurrent use.
type Kernel struct {
	dim int
	eps float64

	work   []*mgl64.VecN
	shadow []*mgl64.VecN
}

// NewKernel allocates a kernel with dim x dim working and shadow matrices.
// eps is the pivot and reflection significance threshold shared with the
// rest of the engine.
func NewKernel(dim int, eps float64) *Kernel {
	k := &Kernel{
		dim:    dim,
		eps:    eps,
		work:   make([]*mgl64.VecN, dim),
		shadow: make([]*mgl64.VecN, dim),
	}
	for r := 0; r < dim; r++ {
		k.work[r] = mgl64.NewVecN(dim)
		k.shadow[r] = mgl64.NewVecN(dim)
	}
	return k
}

// Dim returns the row and column count of the scratch matrices.
func (k *Kernel) Dim() int { return k.dim }

// Eps returns the significance threshold.
func (k *Kernel) Eps() float64 { return k.eps }

// WorkRow returns the r-th row of the working matrix for the caller to fill.
func (k *Kernel) WorkRow(r int) *mgl64.VecN { return k.work[r] }

// ShadowRow returns the r-th row of the shadow matrix for the caller to fill.
func (k *Kernel) ShadowRow(r int) *mgl64.VecN { return k.shadow[r] }

// Det computes the determinant of the leading n x n block of the working
// matrix by elimination with partial pivoting, destroying the block. When no
// pivot in a column exceeds eps in magnitude the matrix is declared singular
// and the result is exactly zero; this is the engine's only degeneracy
// signal. Every row exchange flips the sign of the running product.
func (k *Kernel) Det(n int) float64 { return k.det(k.work, n) }

// ShadowDet is Det over the shadow matrix, used for Gram determinants.
func (k *Kernel) ShadowDet(n int) float64 { return k.det(k.shadow, n) }

func (k *Kernel) det(rows []*mgl64.VecN, n int) float64 {
	det := 1.0
	for i := 0; i < n; i++ {
		pivot := i
		best := math.Abs(rows[i].Get(i))
		for p := i + 1; p < n; p++ {
			if y := math.Abs(rows[p].Get(i)); best < y {
				best = y
				pivot = p
			}
		}
		if !(k.eps < best) {
			return 0 // singular
		}
		if pivot != i {
			det = -det
			rows[i], rows[pivot] = rows[pivot], rows[i]
		}
		ri := rows[i].Raw()
		dia := ri[i]
		det *= dia
		for j := i + 1; j < n; j++ {
			rj := rows[j].Raw()
			m := rj[i] / dia
			for c := i + 1; c < n; c++ {
				rj[c] -= m * ri[c]
			}
		}
	}
	return det
}

// TransposeShadow transposes the shadow matrix in place.
func (k *Kernel) TransposeShadow() {
	for r := 0; r < k.dim; r++ {
		row := k.shadow[r].Raw()
		for c := r + 1; c < k.dim; c++ {
			other := k.shadow[c].Raw()
			other[r], row[c] = row[c], other[r]
		}
	}
}

// ShadowToWork copies the shadow matrix into the working matrix, leaving the
// shadow copy intact for the destructive determinant passes.
func (k *Kernel) ShadowToWork() {
	for r := 0; r < k.dim; r++ {
		copy(k.work[r].Raw(), k.shadow[r].Raw())
	}
}

// RestoreWork refills the working matrix from the shadow matrix with row
// identity replaced by a row of ones. This drives the cofactor expansion of
// the hyperplane normal components.
func (k *Kernel) RestoreWork(identity int) {
	for r := 0; r < k.dim; r++ {
		row := k.work[r].Raw()
		if r == identity {
			for c := range row {
				row[c] = 1
			}
			continue
		}
		copy(row, k.shadow[r].Raw())
	}
}

// Gram fills the leading n x n block of the shadow matrix with the pairwise
// inner products of the first n working rows. n must stay below dim so the
// last shadow row can keep holding a caller-loaded origin.
func (k *Kernel) Gram(n int) {
	for r := 0; r < n; r++ {
		row := k.shadow[r].Raw()
		for c := 0; c < n; c++ {
			row[c] = k.work[r].Dot(k.work[c])
		}
	}
}

// Orthonormalize runs Householder reflections over the first rank shadow
// rows, which the caller has filled with point coordinates. Each row is
// first translated against origin, turning the affine span into a vector
// span. On success the shadow matrix holds the packed QR form. A generating
// norm at or below eps means the rows are not affinely independent enough
// and the result is false.
func (k *Kernel) Orthonormalize(rank int, origin *mgl64.VecN) bool {
	for r := 0; r < rank; r++ {
		k.shadow[r].Sub(k.shadow[r], origin)
	}
	for i := 0; i < rank; i++ {
		qri := k.shadow[i].Raw()
		var norm float64
		for c := i; c < k.dim; c++ {
			norm += qri[c] * qri[c]
		}
		norm = math.Sqrt(norm)
		if !(k.eps < norm) {
			return false
		}
		positive := 0 < qri[i]
		factor := norm * (norm + math.Abs(qri[i]))
		if !(k.eps < factor) {
			return false
		}
		factor = 1 / math.Sqrt(factor)
		if positive {
			qri[i] += norm
		} else {
			qri[i] -= norm
		}
		for c := i; c < k.dim; c++ {
			qri[c] *= factor
		}
		for j := i + 1; j < rank; j++ {
			qrj := k.shadow[j].Raw()
			var s float64
			for c := i; c < k.dim; c++ {
				s += qri[c] * qrj[c]
			}
			for c := i; c < k.dim; c++ {
				qrj[c] -= qri[c] * s
			}
		}
	}
	return true
}

// ExpandBasis reconstructs the explicit orthonormal factor from the packed
// QR form left in the shadow matrix, writing rank orthonormal rows into the
// working matrix. Rows at index rank and above stay untouched.
func (k *Kernel) ExpandBasis(rank int) {
	for i := 0; i < rank; i++ {
		qi := k.work[i].Raw()
		for c := range qi {
			qi[c] = 0
		}
		qi[i] = 1
		for j := rank - 1; j >= 0; j-- {
			qrj := k.shadow[j].Raw()
			var s float64
			for c := j; c < k.dim; c++ {
				s += qrj[c] * qi[c]
			}
			for c := j; c < k.dim; c++ {
				qi[c] -= qrj[c] * s
			}
		}
	}
}

// SubspaceDistance returns the Euclidean distance from point to the affine
// subspace anchored at origin and spanned by the first rank rows of the
// expanded basis. ExpandBasis must have run for the same rank. The point
// buffer must not alias the kernel's scratch rows; the packed QR form is
// consumed as scratch space.
func (k *Kernel) SubspaceDistance(rank int, origin, point *mgl64.VecN) float64 {
	apex := k.shadow[0]
	proj := k.shadow[k.dim-1]
	point.Sub(apex, origin)
	copy(proj.Raw(), apex.Raw())
	for i := 0; i < rank; i++ {
		qi := k.work[i]
		s := apex.Dot(qi)
		pr, qr := proj.Raw(), qi.Raw()
		for c := range pr {
			pr[c] -= s * qr[c]
		}
	}
	return proj.Len()
}
