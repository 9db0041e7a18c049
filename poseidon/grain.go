package poseidon

import (
	"math/big"

	"github.com/bits-and-blooms/bitset"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

const grainStateLen = 80

// grain is the Grain LFSR used by the Poseidon key schedule to derive
// round constants and the MDS matrix seeds.
// The 80-bit register is seeded from (field, sbox, n, t, R_F, R_P),
// clocked 160 times, and then sampled with the filtered-bit rule.
type grain struct {
	state *bitset.BitSet
	pos   uint
}

// newGrain creates a Grain LFSR for the given parameterization.
func newGrain(t, rF, rP int) *grain {
	g := &grain{state: bitset.New(grainStateLen)}

	cursor := uint(0)
	seed := func(value uint64, bits uint) {
		for i := bits; i > 0; i-- {
			g.state.SetTo(cursor, (value>>(i-1))&1 == 1)
			cursor++
		}
	}

	// field tag (prime field), S-box tag (x^alpha), field bit size,
	// then t, R_F and R_P; the remaining bits are ones.
	seed(1, 2)
	seed(0, 4)
	seed(uint64(fr.Modulus().BitLen()), 12)
	seed(uint64(t), 12)
	seed(uint64(rF), 10)
	seed(uint64(rP), 10)
	for cursor < grainStateLen {
		g.state.Set(cursor)
		cursor++
	}

	for i := 0; i < 2*grainStateLen; i++ {
		g.nextBit()
	}

	return g
}

// bit returns the i-th oldest bit of the register.
func (g *grain) bit(i uint) bool {
	return g.state.Test((g.pos + i) % grainStateLen)
}

// nextBit clocks the register once and returns the produced bit.
func (g *grain) nextBit() bool {
	b := g.bit(62) != g.bit(51) != g.bit(38) != g.bit(23) != g.bit(13) != g.bit(0)
	g.state.SetTo(g.pos%grainStateLen, b)
	g.pos++
	return b
}

// sampleBit returns one output bit under the filtered-bit rule:
// bit pairs (b1, b2) are read until b1 is set, and b2 is emitted.
func (g *grain) sampleBit() bool {
	for {
		b1 := g.nextBit()
		b2 := g.nextBit()
		if b1 {
			return b2
		}
	}
}

// NextFieldElement samples a uniform field element by rejection:
// candidates of Modulus().BitLen() bits are drawn until one is canonical.
func (g *grain) NextFieldElement() fr.Element {
	bits := fr.Modulus().BitLen()
	candidate := new(big.Int)
	for {
		candidate.SetUint64(0)
		for i := 0; i < bits; i++ {
			candidate.Lsh(candidate, 1)
			if g.sampleBit() {
				candidate.SetBit(candidate, 0, 1)
			}
		}
		if candidate.Cmp(fr.Modulus()) < 0 {
			var e fr.Element
			e.SetBigInt(candidate)
			return e
		}
	}
}
