// Package poseidon implements the Poseidon permutation over the bn254
// scalar field, as a sponge-based random oracle evaluated two ways: a
// direct native evaluation and a standard-gate circuit chip. Both
// evaluations are required to produce identical field values for
// identical inputs; the IVC layer relies on this for Fiat-Shamir
// soundness.
package poseidon

import "github.com/consensys/gnark-crypto/ecc/bn254/fr"

// ParametersLiteral is a structure for Poseidon parameters.
type ParametersLiteral struct {
	// T is the width of the permutation state.
	// The sponge rate is T - 1, with one capacity slot.
	T int
	// RF is the number of full rounds.
	// Split evenly around the partial rounds, so it must be even.
	RF int
	// RP is the number of partial rounds.
	RP int
}

// Compile transforms ParametersLiteral to read-only Parameters,
// deriving the round-constant schedule and the MDS, pre-sparse and
// sparse matrices. If there is any invalid parameter in the literal,
// it panics.
func (p ParametersLiteral) Compile() Parameters {
	switch {
	case p.T < 2:
		panic("T must be at least 2")
	case p.RF < 2 || p.RF%2 != 0:
		panic("RF must be even and at least 2")
	case p.RP < 0:
		panic("RP must be non-negative")
	}

	g := newGrain(p.T, p.RF, p.RP)

	roundConstants := make([][]fr.Element, p.RF+p.RP)
	for r := range roundConstants {
		roundConstants[r] = make([]fr.Element, p.T)
		for i := range roundConstants[r] {
			roundConstants[r][i] = g.NextFieldElement()
		}
	}

	mds := cauchyMDS(g, p.T)

	params := Parameters{
		t:              p.T,
		rate:           p.T - 1,
		rF:             p.RF,
		rP:             p.RP,
		roundConstants: roundConstants,
		mds:            mds,
	}
	params.deriveOptimized()

	return params
}

// cauchyMDS samples x_0..x_{t-1}, y_0..y_{t-1} from the LFSR and builds
// the Cauchy matrix M[i][j] = 1/(x_i + y_j). Re-samples on the
// (astronomically unlikely) zero sum, since the matrix must be formed
// from invertible entries.
func cauchyMDS(g *grain, t int) Matrix {
	for {
		xs := make([]fr.Element, t)
		ys := make([]fr.Element, t)
		for i := 0; i < t; i++ {
			xs[i] = g.NextFieldElement()
		}
		for i := 0; i < t; i++ {
			ys[i] = g.NextFieldElement()
		}

		m := NewMatrix(t)
		ok := true
		var sum fr.Element
		for i := 0; i < t && ok; i++ {
			for j := 0; j < t; j++ {
				sum.Add(&xs[i], &ys[j])
				if sum.IsZero() {
					ok = false
					break
				}
				m.rows[i][j].Inverse(&sum)
			}
		}
		if ok {
			return m
		}
	}
}

// Parameters is a read-only structure for Poseidon parameters.
//
// The optimized schedule replaces the dense MDS multiply of each
// partial round with a rank-1 sparse multiply, and the last full-round
// MDS multiply of the first half with a pre-sparse matrix. The
// replacement is an exact algebraic factorization: both schedules
// compute the identical permutation.
type Parameters struct {
	// t is the width of the permutation state.
	t int
	// rate is the number of state slots available for absorbed data.
	rate int
	// rF is the number of full rounds.
	rF int
	// rP is the number of partial rounds.
	rP int

	// roundConstants is the unoptimized schedule: (rF+rP) rows of t
	// constants as produced by the key schedule.
	roundConstants [][]fr.Element

	// constantsStart holds the pre-round constants at index 0, then one
	// row per first-half full round.
	constantsStart [][]fr.Element
	// constantsPartial holds one scalar constant per partial round,
	// applied to slot 0 only.
	constantsPartial []fr.Element
	// constantsEnd holds one row per second-half full round except the
	// last, which is constant-free.
	constantsEnd [][]fr.Element

	// mds is the dense mixing matrix.
	mds Matrix
	// preSparse replaces mds in the last full round of the first half.
	preSparse Matrix
	// sparse holds one rank-1 matrix per partial round.
	sparse []SparseMatrix
}

// deriveOptimized computes the optimized constants and matrices from
// the unoptimized schedule.
//
// Working backwards over the partial rounds with the correction pair
// (n, carry): the dense matrix of round k is n*mds, factored as
// sparse * diag(1, hat); diag(1, hat) commutes with the partial S-box
// and is pushed one round earlier. The constant vector of the round is
// solved through the sparse factor, leaving a scalar for slot 0 and a
// tail carried to the previous round. Whatever remains after the first
// partial round lands on the last full round of the first half.
func (p *Parameters) deriveOptimized() {
	f := p.rF / 2
	mdsInv := p.mds.Invert()

	p.constantsStart = make([][]fr.Element, f+1)
	p.constantsStart[0] = vectorCopy(p.roundConstants[0])
	for r := 1; r < f; r++ {
		p.constantsStart[r] = mdsInv.MulVector(p.roundConstants[r])
	}

	n := NewIdentityMatrix(p.t)
	carry := make([]fr.Element, p.t)
	p.sparse = make([]SparseMatrix, p.rP)
	p.constantsPartial = make([]fr.Element, p.rP)
	for k := p.rP - 1; k >= 0; k-- {
		a := n.Mul(p.mds)
		u := n.MulVector(p.roundConstants[f+1+k])
		for i := range u {
			u[i].Add(&u[i], &carry[i])
		}

		s, rest := factorSparse(a)
		z := s.Dense().Invert().MulVector(u)

		p.constantsPartial[k] = z[0]
		carry[0].SetZero()
		copy(carry[1:], z[1:])

		p.sparse[k] = s
		n = rest
	}

	p.preSparse = n.Mul(p.mds)
	g := n.MulVector(p.roundConstants[f])
	for i := range g {
		g[i].Add(&g[i], &carry[i])
	}
	p.constantsStart[f] = p.preSparse.Invert().MulVector(g)

	p.constantsEnd = make([][]fr.Element, f-1)
	for r := 0; r < f-1; r++ {
		p.constantsEnd[r] = mdsInv.MulVector(p.roundConstants[f+p.rP+1+r])
	}
}

// T returns the width of the permutation state.
func (p Parameters) T() int {
	return p.t
}

// Rate returns the number of state slots available for absorbed data.
func (p Parameters) Rate() int {
	return p.rate
}

// RF returns the number of full rounds.
func (p Parameters) RF() int {
	return p.rF
}

// RP returns the number of partial rounds.
func (p Parameters) RP() int {
	return p.rP
}

// ConstantsStart returns the pre-round constants followed by one row
// per first-half full round.
func (p Parameters) ConstantsStart() [][]fr.Element {
	return p.constantsStart
}

// ConstantsPartial returns the scalar constants of the partial rounds.
func (p Parameters) ConstantsPartial() []fr.Element {
	return p.constantsPartial
}

// ConstantsEnd returns the constants of the second-half full rounds.
func (p Parameters) ConstantsEnd() [][]fr.Element {
	return p.constantsEnd
}

// MDS returns the dense mixing matrix.
func (p Parameters) MDS() Matrix {
	return p.mds
}

// PreSparseMDS returns the matrix used by the last full round of the
// first half.
func (p Parameters) PreSparseMDS() Matrix {
	return p.preSparse
}

// SparseMatrices returns the per-partial-round sparse matrices.
func (p Parameters) SparseMatrices() []SparseMatrix {
	return p.sparse
}

func vectorCopy(v []fr.Element) []fr.Element {
	out := make([]fr.Element, len(v))
	copy(out, v)
	return out
}
