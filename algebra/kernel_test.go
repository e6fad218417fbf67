package algebra

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fillWork(k *Kernel, rows [][]float64) {
	for r, row := range rows {
		copy(k.WorkRow(r).Raw(), row)
	}
}

func fillShadow(k *Kernel, rows [][]float64) {
	for r, row := range rows {
		copy(k.ShadowRow(r).Raw(), row)
	}
}

func TestDet(t *testing.T) {
	t.Run("identity", func(t *testing.T) {
		k := NewKernel(3, 1e-12)
		fillWork(k, [][]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}})
		assert.InDelta(t, 1, k.Det(3), 1e-12)
	})

	t.Run("diagonal", func(t *testing.T) {
		k := NewKernel(2, 1e-12)
		fillWork(k, [][]float64{{2, 0}, {0, 3}})
		assert.InDelta(t, 6, k.Det(2), 1e-12)
	})

	t.Run("pivoting flips the sign per exchange", func(t *testing.T) {
		k := NewKernel(2, 1e-12)
		fillWork(k, [][]float64{{0, 1}, {1, 0}})
		assert.InDelta(t, -1, k.Det(2), 1e-12)
	})

	t.Run("singular matrix yields exact zero", func(t *testing.T) {
		k := NewKernel(3, 1e-12)
		fillWork(k, [][]float64{{1, 2, 3}, {1, 2, 3}, {4, 5, 6}})
		assert.Zero(t, k.Det(3))
	})

	t.Run("leading block ignores trailing rows", func(t *testing.T) {
		k := NewKernel(3, 1e-12)
		fillWork(k, [][]float64{{2, 0, 99}, {0, 3, 99}, {99, 99, 99}})
		assert.InDelta(t, 6, k.Det(2), 1e-12)
	})
}

func TestOrthonormalize(t *testing.T) {
	origin := mgl64.NewVecN(3)

	t.Run("expanded factor is orthonormal", func(t *testing.T) {
		k := NewKernel(3, 1e-12)
		fillShadow(k, [][]float64{{2, 0, 0}, {1, 3, 0}})
		require.True(t, k.Orthonormalize(2, origin))
		k.ExpandBasis(2)

		for i := 0; i < 2; i++ {
			for j := 0; j < 2; j++ {
				want := 0.0
				if i == j {
					want = 1
				}
				assert.InDelta(t, want, k.WorkRow(i).Dot(k.WorkRow(j)), 1e-12,
					"rows %d and %d", i, j)
			}
		}
	})

	t.Run("factor spans the input rows", func(t *testing.T) {
		k := NewKernel(3, 1e-12)
		fillShadow(k, [][]float64{{2, 0, 0}, {1, 3, 0}})
		require.True(t, k.Orthonormalize(2, origin))
		k.ExpandBasis(2)

		// both basis rows stay inside the xy plane
		assert.InDelta(t, 0, k.WorkRow(0).Get(2), 1e-12)
		assert.InDelta(t, 0, k.WorkRow(1).Get(2), 1e-12)
	})

	t.Run("dependent rows are rejected", func(t *testing.T) {
		k := NewKernel(3, 1e-12)
		fillShadow(k, [][]float64{{1, 1, 1}, {2, 2, 2}})
		assert.False(t, k.Orthonormalize(2, origin))
	})

	t.Run("zero row is rejected", func(t *testing.T) {
		k := NewKernel(3, 1e-12)
		fillShadow(k, [][]float64{{0, 0, 0}})
		assert.False(t, k.Orthonormalize(1, origin))
	})

	t.Run("translation against a non-zero origin", func(t *testing.T) {
		k := NewKernel(3, 1e-12)
		shifted := mgl64.NewVecNFromData([]float64{5, 5, 5})
		fillShadow(k, [][]float64{{7, 5, 5}, {6, 8, 5}})
		require.True(t, k.Orthonormalize(2, shifted))
		k.ExpandBasis(2)
		assert.InDelta(t, 0, k.WorkRow(0).Get(2), 1e-12)
		assert.InDelta(t, 0, k.WorkRow(1).Get(2), 1e-12)
	})
}

func TestSubspaceDistance(t *testing.T) {
	t.Run("distance to a plane", func(t *testing.T) {
		k := NewKernel(3, 1e-12)
		origin := mgl64.NewVecN(3)
		fillShadow(k, [][]float64{{2, 0, 0}, {1, 3, 0}})
		require.True(t, k.Orthonormalize(2, origin))
		k.ExpandBasis(2)

		point := mgl64.NewVecNFromData([]float64{5, 7, 4})
		assert.InDelta(t, 4, k.SubspaceDistance(2, origin, point), 1e-12)
	})

	t.Run("distance to a line", func(t *testing.T) {
		k := NewKernel(2, 1e-12)
		origin := mgl64.NewVecN(2)
		fillShadow(k, [][]float64{{3, 0}})
		require.True(t, k.Orthonormalize(1, origin))
		k.ExpandBasis(1)

		point := mgl64.NewVecNFromData([]float64{9, -2})
		assert.InDelta(t, 2, k.SubspaceDistance(1, origin, point), 1e-12)
	})

	t.Run("point on the subspace", func(t *testing.T) {
		k := NewKernel(3, 1e-12)
		origin := mgl64.NewVecN(3)
		fillShadow(k, [][]float64{{2, 0, 0}, {1, 3, 0}})
		require.True(t, k.Orthonormalize(2, origin))
		k.ExpandBasis(2)

		point := mgl64.NewVecNFromData([]float64{-4, 11, 0})
		assert.InDelta(t, 0, k.SubspaceDistance(2, origin, point), 1e-12)
	})
}

func TestGram(t *testing.T) {
	k := NewKernel(3, 1e-12)
	fillWork(k, [][]float64{{3, 0, 0}, {0, 4, 0}})
	k.Gram(2)

	// the Gram determinant is the squared parallelogram area
	assert.InDelta(t, 12, math.Sqrt(k.ShadowDet(2)), 1e-9)
}

func TestRestoreWork(t *testing.T) {
	k := NewKernel(2, 1e-12)
	fillShadow(k, [][]float64{{1, 2}, {3, 4}})

	k.RestoreWork(0)
	assert.Equal(t, []float64{1, 1}, k.WorkRow(0).Raw())
	assert.Equal(t, []float64{3, 4}, k.WorkRow(1).Raw())

	k.RestoreWork(1)
	assert.Equal(t, []float64{1, 2}, k.WorkRow(0).Raw())
	assert.Equal(t, []float64{1, 1}, k.WorkRow(1).Raw())
}

func TestTransposeShadow(t *testing.T) {
	k := NewKernel(3, 1e-12)
	fillShadow(k, [][]float64{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}})
	k.TransposeShadow()

	assert.Equal(t, []float64{1, 4, 7}, k.ShadowRow(0).Raw())
	assert.Equal(t, []float64{2, 5, 8}, k.ShadowRow(1).Raw())
	assert.Equal(t, []float64{3, 6, 9}, k.ShadowRow(2).Raw())
}
