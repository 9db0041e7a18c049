package poseidon

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/sp301415/recurse-snark/gate"
)

// ChipConfig holds the columns of the Poseidon standard gate.
type ChipConfig struct {
	// State are the T advice columns carrying the permutation state.
	State []gate.Column
	// Input is the advice column carrying absorbed elements.
	Input gate.Column
	// Out is the advice column carrying each row's output value.
	Out gate.Column

	// Q1 are the fixed coefficients of the linear state terms.
	Q1 []gate.Column
	// Q5 are the fixed coefficients of the quintic state terms.
	Q5 []gate.Column
	// QI is the fixed coefficient of the input term.
	QI gate.Column
	// QO is the fixed coefficient of the output term.
	QO gate.Column
	// RC is the fixed round-constant term.
	RC gate.Column
}

// Configure allocates the chip's columns in cs and registers its gate:
//
//	sum_i(q1[i]*s[i]) + sum_i(q5[i]*s[i]^5) + rc + qi*input + qo*out = 0
func Configure(cs *gate.ConstraintSystem, t int) ChipConfig {
	config := ChipConfig{
		State: make([]gate.Column, t),
		Q1:    make([]gate.Column, t),
		Q5:    make([]gate.Column, t),
	}
	for i := 0; i < t; i++ {
		config.State[i] = cs.AdviceColumn()
	}
	config.Input = cs.AdviceColumn()
	config.Out = cs.AdviceColumn()
	for i := 0; i < t; i++ {
		config.Q1[i] = cs.FixedColumn()
	}
	for i := 0; i < t; i++ {
		config.Q5[i] = cs.FixedColumn()
	}
	config.QI = cs.FixedColumn()
	config.QO = cs.FixedColumn()
	config.RC = cs.FixedColumn()

	cs.CreateGate("poseidon round", func(row gate.Row) fr.Element {
		var res, t1, t2 fr.Element
		for i := range config.State {
			s := row.Advice(config.State[i])
			q1 := row.Fixed(config.Q1[i])
			q5 := row.Fixed(config.Q5[i])

			t1.Mul(&q1, &s)
			res.Add(&res, &t1)
			t2 = pow5(&s)
			t2.Mul(&t2, &q5)
			res.Add(&res, &t2)
		}
		rc := row.Fixed(config.RC)
		res.Add(&res, &rc)
		in := row.Advice(config.Input)
		qi := row.Fixed(config.QI)
		t1.Mul(&qi, &in)
		res.Add(&res, &t1)
		out := row.Advice(config.Out)
		qo := row.Fixed(config.QO)
		t1.Mul(&qo, &out)
		res.Add(&res, &t1)
		return res
	})

	return config
}

// Chip assigns the Poseidon sponge into a standard-gate region. It
// computes the identical transformation to the native Sponge; the IVC
// verifier circuit relies on the two digests being equal.
//
// The chip owns a buffer cursor and a saved region offset, so one chip
// instance serves exactly one logical hash layout at a time.
type Chip struct {
	config ChipConfig
	params Parameters

	buf    []fr.Element
	offset int
}

// NewChip creates a new Chip over the given columns and parameters.
func NewChip(config ChipConfig, params Parameters) *Chip {
	return &Chip{config: config, params: params}
}

// copyState re-assigns the incoming state cells on the current row and
// binds them to their origins with copy constraints.
func (c *Chip) copyState(region *gate.Region, state []gate.AssignedCell) []fr.Element {
	vals := make([]fr.Element, len(state))
	for i, s := range state {
		vals[i] = s.Value()
		si := region.AssignAdvice(c.config.State[i], vals[i])
		region.ConstrainEqual(s.Cell(), si.Cell())
	}
	return vals
}

// PreRound assigns the absorption row of one state slot: the slot plus
// its input element plus the first round constant. A plain addition
// row, not a full round.
func (c *Chip) PreRound(region *gate.Region, inputs []fr.Element, stateIdx int, state []gate.AssignedCell) gate.AssignedCell {
	one := fr.One()
	var minusOne fr.Element
	minusOne.Neg(&one)

	sVal := state[stateIdx].Value()
	inputVal := c.params.absorptionVector(inputs)[stateIdx]
	rcVal := c.params.constantsStart[0][stateIdx]

	si := region.AssignAdvice(c.config.State[stateIdx], sVal)
	region.ConstrainEqual(state[stateIdx].Cell(), si.Cell())

	region.AssignAdvice(c.config.Input, inputVal)
	region.AssignFixed(c.config.Q1[stateIdx], one)
	region.AssignFixed(c.config.QI, one)
	region.AssignFixed(c.config.QO, minusOne)
	region.AssignFixed(c.config.RC, rcVal)

	var outVal fr.Element
	outVal.Add(&sVal, &inputVal)
	outVal.Add(&outVal, &rcVal)
	out := region.AssignAdvice(c.config.Out, outVal)

	region.Next()
	return out
}

// FullRound assigns one state slot of a full round. roundIdx indexes
// within the half; the last round of the first half mixes with the
// pre-sparse matrix, the last round of the second half is
// constant-free.
func (c *Chip) FullRound(region *gate.Region, firstHalf bool, roundIdx, stateIdx int, state []gate.AssignedCell) gate.AssignedCell {
	var minusOne fr.Element
	one := fr.One()
	minusOne.Neg(&one)

	f := c.params.rF / 2

	rcs := make([]fr.Element, c.params.t)
	if firstHalf {
		copy(rcs, c.params.constantsStart[roundIdx+1])
	} else if roundIdx < f-1 {
		copy(rcs, c.params.constantsEnd[roundIdx])
	}

	m := c.params.mds
	if firstHalf && roundIdx == f-1 {
		m = c.params.preSparse
	}
	mdsRow := m.Row(stateIdx)

	var rcVal, t fr.Element
	for j := range mdsRow {
		t.Mul(&mdsRow[j], &rcs[j])
		rcVal.Add(&rcVal, &t)
		region.AssignFixed(c.config.Q5[j], mdsRow[j])
	}

	stateVals := c.copyState(region, state)

	region.AssignFixed(c.config.RC, rcVal)
	region.AssignFixed(c.config.QO, minusOne)

	outVal := rcVal
	for j := range stateVals {
		t = pow5(&stateVals[j])
		t.Mul(&t, &mdsRow[j])
		outVal.Add(&outVal, &t)
	}
	out := region.AssignAdvice(c.config.Out, outVal)

	region.Next()
	return out
}

// PartialRound assigns one state slot of a partial round. Slot 0 passes
// through the S-box and the sparse matrix's first row; the other slots
// receive slot 0's S-box output broadcast through the column vector.
func (c *Chip) PartialRound(region *gate.Region, roundIdx, stateIdx int, state []gate.AssignedCell) gate.AssignedCell {
	var minusOne fr.Element
	one := fr.One()
	minusOne.Neg(&one)

	rc := c.params.constantsPartial[roundIdx]
	sparse := c.params.sparse[roundIdx]

	stateVals := c.copyState(region, state)

	var rcVal, outVal, t fr.Element
	s0 := pow5(&stateVals[0])

	if stateIdx == 0 {
		region.AssignFixed(c.config.Q5[0], sparse.Row[0])
		rcVal.Mul(&sparse.Row[0], &rc)
		region.AssignFixed(c.config.RC, rcVal)
		for j := 1; j < c.params.t; j++ {
			region.AssignFixed(c.config.Q1[j], sparse.Row[j])
		}

		outVal.Mul(&sparse.Row[0], &s0)
		outVal.Add(&outVal, &rcVal)
		for j := 1; j < c.params.t; j++ {
			t.Mul(&sparse.Row[j], &stateVals[j])
			outVal.Add(&outVal, &t)
		}
	} else {
		region.AssignFixed(c.config.Q5[0], sparse.ColHat[stateIdx-1])
		region.AssignFixed(c.config.Q1[stateIdx], one)
		rcVal.Mul(&sparse.ColHat[stateIdx-1], &rc)
		region.AssignFixed(c.config.RC, rcVal)

		outVal.Mul(&sparse.ColHat[stateIdx-1], &s0)
		outVal.Add(&outVal, &rcVal)
		outVal.Add(&outVal, &stateVals[stateIdx])
	}

	region.AssignFixed(c.config.QO, minusOne)
	out := region.AssignAdvice(c.config.Out, outVal)

	region.Next()
	return out
}

// Permutation assigns one full permutation over the given initial state
// cells, absorbing up to Rate input elements, and returns the new state
// cells.
func (c *Chip) Permutation(region *gate.Region, inputs []fr.Element, initState []gate.AssignedCell) []gate.AssignedCell {
	state := make([]gate.AssignedCell, c.params.t)
	for i := 0; i < c.params.t; i++ {
		state[i] = c.PreRound(region, inputs, i, initState)
	}

	f := c.params.rF / 2
	next := make([]gate.AssignedCell, c.params.t)

	for roundIdx := 0; roundIdx < f; roundIdx++ {
		for stateIdx := 0; stateIdx < c.params.t; stateIdx++ {
			next[stateIdx] = c.FullRound(region, true, roundIdx, stateIdx, state)
		}
		copy(state, next)
	}

	for roundIdx := 0; roundIdx < c.params.rP; roundIdx++ {
		for stateIdx := 0; stateIdx < c.params.t; stateIdx++ {
			next[stateIdx] = c.PartialRound(region, roundIdx, stateIdx, state)
		}
		copy(state, next)
	}

	for roundIdx := 0; roundIdx < f; roundIdx++ {
		for stateIdx := 0; stateIdx < c.params.t; stateIdx++ {
			next[stateIdx] = c.FullRound(region, false, roundIdx, stateIdx, state)
		}
		copy(state, next)
	}

	return state
}

// Absorb appends elements to the input buffer. No rows are assigned
// until Squeeze.
func (c *Chip) Absorb(vs ...fr.Element) {
	c.buf = append(c.buf, vs...)
}

// Squeeze lays out the buffered input's sponge computation starting at
// the chip's saved offset and returns the digest cell. The chunking and
// trailing-permutation rule matches Sponge.Squeeze exactly.
func (c *Chip) Squeeze(region *gate.Region) gate.AssignedCell {
	region.Reset(c.offset)

	state := make([]gate.AssignedCell, c.params.t)
	var zero fr.Element
	for i := 0; i < c.params.t; i++ {
		state[i] = region.AssignAdvice(c.config.State[i], zero)
	}

	exact := len(c.buf) > 0 && len(c.buf)%c.params.rate == 0
	for start := 0; start < len(c.buf); start += c.params.rate {
		end := min(start+c.params.rate, len(c.buf))
		state = c.Permutation(region, c.buf[start:end], state)
	}
	if exact {
		state = c.Permutation(region, nil, state)
	}

	c.offset = region.Offset()
	return state[outputSlot]
}
