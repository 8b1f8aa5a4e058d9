package bayesian

import "gonum.org/v1/gonum/mat"

// matrixPool recycles symmetric matrices between fits to cut allocations.
// Matrices are keyed by order, since a kernel matrix is only reusable at the
// same history length.
type matrixPool struct {
	sym map[int][]*mat.SymDense
}

func newMatrixPool() *matrixPool {
	return &matrixPool{sym: make(map[int][]*mat.SymDense)}
}

// GetSymDense returns a zeroed n x n symmetric matrix from the pool or
// allocates a new one.
func (p *matrixPool) GetSymDense(n int) *mat.SymDense {
	if ms := p.sym[n]; len(ms) > 0 {
		m := ms[len(ms)-1]
		p.sym[n] = ms[:len(ms)-1]
		m.Zero()
		return m
	}
	return mat.NewSymDense(n, nil)
}

// PutSymDense returns a matrix to the pool for reuse.
func (p *matrixPool) PutSymDense(m *mat.SymDense) {
	n := m.SymmetricDim()
	p.sym[n] = append(p.sym[n], m)
}
