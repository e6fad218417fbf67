package quickhull

// Source exposes the caller's points to the engine. Points stay owned by the
// caller; the engine refers to them through integer handles only and reads
// coordinates on demand, any number of times, copying them solely into its
// own working buffers.
type Source interface {
	// Coordinate returns the c-th coordinate of the point behind handle p,
	// with 0 <= c < dimension. It must return the same value on every pass.
	Coordinate(p, c int) float64
}

// Points adapts a slice of coordinate tuples to the Source contract.
// Handle i refers to ps[i].
type Points [][]float64

// Coordinate implements Source.
func (ps Points) Coordinate(p, c int) float64 { return ps[p][c] }
