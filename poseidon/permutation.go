package poseidon

import "github.com/consensys/gnark-crypto/ecc/bn254/fr"

// absorptionVector returns the t-wide vector added to the state before
// the first round: a leading zero, the input chunk, a domain-separation
// one, then zero padding, truncated to t slots.
func (p Parameters) absorptionVector(inputs []fr.Element) []fr.Element {
	if len(inputs) > p.rate {
		panic("poseidon: input chunk exceeds rate")
	}

	v := make([]fr.Element, p.t)
	for i, in := range inputs {
		v[i+1] = in
	}
	if len(inputs)+1 < p.t {
		v[len(inputs)+1].SetOne()
	}
	return v
}

func pow5(e *fr.Element) fr.Element {
	var e2, out fr.Element
	e2.Square(e)
	out.Square(&e2)
	out.Mul(&out, e)
	return out
}

// Permute applies the permutation to state in place, absorbing up to
// Rate input elements in the pre-round. Uses the optimized schedule;
// the result is identical to the unoptimized dense evaluation.
func (p Parameters) Permute(state []fr.Element, inputs []fr.Element) {
	if len(state) != p.t {
		panic("poseidon: state width mismatch")
	}

	f := p.rF / 2

	// pre-round: plain per-slot addition, not a full round
	absorb := p.absorptionVector(inputs)
	for i := range state {
		state[i].Add(&state[i], &absorb[i])
		state[i].Add(&state[i], &p.constantsStart[0][i])
	}

	var t fr.Element
	next := make([]fr.Element, p.t)

	fullRound := func(m Matrix, rcs []fr.Element) {
		for j := range state {
			state[j] = pow5(&state[j])
			if rcs != nil {
				state[j].Add(&state[j], &rcs[j])
			}
		}
		for i := range next {
			next[i].SetZero()
			for j := range state {
				t.Mul(&m.rows[i][j], &state[j])
				next[i].Add(&next[i], &t)
			}
		}
		copy(state, next)
	}

	for r := 0; r < f; r++ {
		m := p.mds
		if r == f-1 {
			m = p.preSparse
		}
		fullRound(m, p.constantsStart[r+1])
	}

	for r := 0; r < p.rP; r++ {
		s := p.sparse[r]

		s0 := pow5(&state[0])
		s0.Add(&s0, &p.constantsPartial[r])

		next[0].Mul(&s.Row[0], &s0)
		for j := 1; j < p.t; j++ {
			t.Mul(&s.Row[j], &state[j])
			next[0].Add(&next[0], &t)
		}
		for i := 1; i < p.t; i++ {
			t.Mul(&s.ColHat[i-1], &s0)
			next[i].Add(&t, &state[i])
		}
		copy(state, next)
	}

	for r := 0; r < f; r++ {
		var rcs []fr.Element
		if r < f-1 {
			rcs = p.constantsEnd[r]
		}
		fullRound(p.mds, rcs)
	}
}

// permuteUnoptimized is the textbook dense evaluation: every round adds
// its full constant row, applies the S-box and multiplies by the MDS
// matrix. It exists as the reference the optimized schedule is checked
// against.
func (p Parameters) permuteUnoptimized(state []fr.Element, inputs []fr.Element) {
	if len(state) != p.t {
		panic("poseidon: state width mismatch")
	}

	f := p.rF / 2

	absorb := p.absorptionVector(inputs)
	for i := range state {
		state[i].Add(&state[i], &absorb[i])
	}

	for r := 0; r < p.rF+p.rP; r++ {
		for i := range state {
			state[i].Add(&state[i], &p.roundConstants[r][i])
		}

		partial := r >= f && r < f+p.rP
		if partial {
			state[0] = pow5(&state[0])
		} else {
			for i := range state {
				state[i] = pow5(&state[i])
			}
		}

		copy(state, p.mds.MulVector(state))
	}
}
