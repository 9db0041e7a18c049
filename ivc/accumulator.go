package ivc

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/sp301415/recurse-snark/folding"
)

// NativeAccumulator is the canonical form of the main track's running
// accumulator.
type NativeAccumulator struct {
	Ins NativeInstance
	// Betas are the accumulated beta challenges.
	Betas []fr.Element
	// E is the accumulated error term.
	E fr.Element
}

// NewNativeAccumulator converts a main-track accumulator into its
// canonical form.
func NewNativeAccumulator(acc *folding.AccumulatorInstance) (NativeAccumulator, error) {
	ins, err := NewNativeInstance(&acc.Ins)
	if err != nil {
		return NativeAccumulator{}, err
	}
	return NativeAccumulator{
		Ins:   ins,
		Betas: append([]fr.Element(nil), acc.Betas...),
		E:     acc.E,
	}, nil
}

// AbsorbInto feeds the instance, then the betas, then the error term.
func (a *NativeAccumulator) AbsorbInto(ro RandomOracle) {
	a.Ins.AbsorbInto(ro)
	ro.Absorb(a.Betas...)
	ro.Absorb(a.E)
}

// withoutWitness returns a same-shape copy with every value zeroed.
func (a *NativeAccumulator) withoutWitness() NativeAccumulator {
	return NativeAccumulator{
		Ins:   a.Ins.withoutWitness(),
		Betas: make([]fr.Element, len(a.Betas)),
	}
}

// SupportAccumulator is the canonical form of the support track's
// running accumulator: a relaxed instance with its error commitment and
// homogenization scalar.
type SupportAccumulator struct {
	Ins SupportInstance
	// U is the homogenization slack scalar, projected.
	U fr.Element
	// ECommitment is the accumulated error commitment. A fresh
	// accumulator carries the identity, represented as (0, 0).
	ECommitment AffinePoint
}

// NewSupportAccumulator converts a support-track relaxed instance into
// its canonical form. The consistency markers become the instance's
// single public-input column.
func NewSupportAccumulator(acc *folding.RelaxedInstance) (SupportAccumulator, error) {
	ins := SupportInstance{
		WCommitments: make([]AffinePoint, len(acc.WCommitments)),
	}
	for j := range acc.WCommitments {
		p, err := NewAffinePoint(&acc.WCommitments[j])
		if err != nil {
			return SupportAccumulator{}, err
		}
		ins.WCommitments[j] = p
	}
	markers, err := projectVector(acc.ConsistencyMarkers)
	if err != nil {
		return SupportAccumulator{}, err
	}
	ins.Instances = [][]fr.Element{markers}
	ins.Challenges, err = projectVector(acc.Challenges)
	if err != nil {
		return SupportAccumulator{}, err
	}
	u, err := SupportToNative(acc.U)
	if err != nil {
		return SupportAccumulator{}, err
	}

	return SupportAccumulator{
		Ins:         ins,
		U:           u,
		ECommitment: relaxedAffinePoint(&acc.ECommitment),
	}, nil
}

// AbsorbInto feeds the instance, the scalar u, the error commitment
// coordinates, and a reserved constant-zero slot.
func (a *SupportAccumulator) AbsorbInto(ro RandomOracle) {
	a.Ins.AbsorbInto(ro)
	ro.Absorb(a.U)
	ro.Absorb(a.ECommitment.X, a.ECommitment.Y)

	var zero fr.Element
	ro.Absorb(zero)
}

// withoutWitness returns a same-shape copy with every value zeroed.
func (a *SupportAccumulator) withoutWitness() SupportAccumulator {
	return SupportAccumulator{Ins: a.Ins.withoutWitness()}
}
