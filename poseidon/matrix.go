package poseidon

import "github.com/consensys/gnark-crypto/ecc/bn254/fr"

// Matrix is a dense square matrix over the native field.
// Matrices here are tiny (T x T at parameter compile time), so all
// operations are straightforward schoolbook arithmetic.
type Matrix struct {
	rows [][]fr.Element
}

// NewMatrix creates a zero n x n matrix.
func NewMatrix(n int) Matrix {
	rows := make([][]fr.Element, n)
	for i := range rows {
		rows[i] = make([]fr.Element, n)
	}
	return Matrix{rows: rows}
}

// NewIdentityMatrix creates the n x n identity matrix.
func NewIdentityMatrix(n int) Matrix {
	m := NewMatrix(n)
	for i := 0; i < n; i++ {
		m.rows[i][i].SetOne()
	}
	return m
}

// Size returns the dimension of m.
func (m Matrix) Size() int {
	return len(m.rows)
}

// At returns the entry at row i, column j.
func (m Matrix) At(i, j int) fr.Element {
	return m.rows[i][j]
}

// Row returns a copy of row i.
func (m Matrix) Row(i int) []fr.Element {
	row := make([]fr.Element, len(m.rows[i]))
	copy(row, m.rows[i])
	return row
}

// Mul returns m * other.
func (m Matrix) Mul(other Matrix) Matrix {
	n := m.Size()
	out := NewMatrix(n)
	var t fr.Element
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			for k := 0; k < n; k++ {
				t.Mul(&m.rows[i][k], &other.rows[k][j])
				out.rows[i][j].Add(&out.rows[i][j], &t)
			}
		}
	}
	return out
}

// MulVector returns m * v.
func (m Matrix) MulVector(v []fr.Element) []fr.Element {
	n := m.Size()
	out := make([]fr.Element, n)
	var t fr.Element
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			t.Mul(&m.rows[i][j], &v[j])
			out[i].Add(&out[i], &t)
		}
	}
	return out
}

// Invert returns m^-1 by Gauss-Jordan elimination.
// Panics if m is singular; the matrices inverted here are MDS-derived
// and always invertible for valid parameters.
func (m Matrix) Invert() Matrix {
	n := m.Size()
	a := NewMatrix(n)
	for i := range a.rows {
		copy(a.rows[i], m.rows[i])
	}
	inv := NewIdentityMatrix(n)

	var factor, t fr.Element
	for col := 0; col < n; col++ {
		pivot := -1
		for r := col; r < n; r++ {
			if !a.rows[r][col].IsZero() {
				pivot = r
				break
			}
		}
		if pivot < 0 {
			panic("poseidon: singular matrix")
		}
		a.rows[col], a.rows[pivot] = a.rows[pivot], a.rows[col]
		inv.rows[col], inv.rows[pivot] = inv.rows[pivot], inv.rows[col]

		factor.Inverse(&a.rows[col][col])
		for j := 0; j < n; j++ {
			a.rows[col][j].Mul(&a.rows[col][j], &factor)
			inv.rows[col][j].Mul(&inv.rows[col][j], &factor)
		}

		for r := 0; r < n; r++ {
			if r == col || a.rows[r][col].IsZero() {
				continue
			}
			factor.Set(&a.rows[r][col])
			for j := 0; j < n; j++ {
				t.Mul(&factor, &a.rows[col][j])
				a.rows[r][j].Sub(&a.rows[r][j], &t)
				t.Mul(&factor, &inv.rows[col][j])
				inv.rows[r][j].Sub(&inv.rows[r][j], &t)
			}
		}
	}

	return inv
}

// SparseMatrix is the rank-1 factor of an MDS matrix used in partial
// rounds: a full first row, a broadcasting first column, and the
// identity elsewhere.
//
//	| Row[0]    Row[1] ... Row[T-1] |
//	| ColHat[0]   1    ...    0     |
//	| ...                           |
//	| ColHat[T-2] 0    ...    1     |
type SparseMatrix struct {
	Row    []fr.Element
	ColHat []fr.Element
}

// Dense returns the sparse matrix as a dense matrix.
func (s SparseMatrix) Dense() Matrix {
	n := len(s.Row)
	m := NewMatrix(n)
	copy(m.rows[0], s.Row)
	for i := 1; i < n; i++ {
		m.rows[i][0] = s.ColHat[i-1]
		m.rows[i][i].SetOne()
	}
	return m
}

// factorSparse splits a into s * n' where s is sparse and n' is the
// block-diagonal matrix diag(1, a-hat). n' fixes slot 0, so it commutes
// with the partial-round S-box and can be pushed into earlier rounds.
func factorSparse(a Matrix) (s SparseMatrix, rest Matrix) {
	n := a.Size()

	hat := NewMatrix(n - 1)
	for i := 1; i < n; i++ {
		for j := 1; j < n; j++ {
			hat.rows[i-1][j-1] = a.rows[i][j]
		}
	}
	hatInv := hat.Invert()

	s = SparseMatrix{
		Row:    make([]fr.Element, n),
		ColHat: make([]fr.Element, n-1),
	}
	s.Row[0] = a.rows[0][0]
	// row tail: v^T * hat^-1, with v the tail of a's first row
	var t fr.Element
	for j := 0; j < n-1; j++ {
		for i := 0; i < n-1; i++ {
			t.Mul(&a.rows[0][i+1], &hatInv.rows[i][j])
			s.Row[j+1].Add(&s.Row[j+1], &t)
		}
	}
	for i := 1; i < n; i++ {
		s.ColHat[i-1] = a.rows[i][0]
	}

	rest = NewIdentityMatrix(n)
	for i := 1; i < n; i++ {
		for j := 1; j < n; j++ {
			rest.rows[i][j] = hat.rows[i-1][j-1]
		}
	}
	return s, rest
}
