package ivc

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	gfr "github.com/consensys/gnark-crypto/ecc/grumpkin/fr"

	"github.com/sp301415/recurse-snark/folding"
)

// NativeInstance is the canonical on-circuit form of a main-track
// Plonk instance: commitments limb-decomposed, public inputs and
// challenges carried as native elements.
type NativeInstance struct {
	WCommitments []BigUintPoint
	Instances    [][]fr.Element
	Challenges   []fr.Element
}

// NewNativeInstance converts a main-track instance into its canonical
// form, limb-decomposing every witness commitment.
func NewNativeInstance(ins *folding.Instance) (NativeInstance, error) {
	out := NativeInstance{
		WCommitments: make([]BigUintPoint, len(ins.WCommitments)),
		Instances:    make([][]fr.Element, len(ins.Instances)),
		Challenges:   append([]fr.Element(nil), ins.Challenges...),
	}
	for j := range ins.WCommitments {
		p, err := NewBigUintPoint(&ins.WCommitments[j])
		if err != nil {
			return NativeInstance{}, err
		}
		out.WCommitments[j] = p
	}
	for j := range ins.Instances {
		out.Instances[j] = append([]fr.Element(nil), ins.Instances[j]...)
	}
	return out, nil
}

// AbsorbInto feeds the commitments, then every public-input vector in
// column order, then the challenges.
func (i *NativeInstance) AbsorbInto(ro RandomOracle) {
	for j := range i.WCommitments {
		i.WCommitments[j].AbsorbInto(ro)
	}
	for _, col := range i.Instances {
		ro.Absorb(col...)
	}
	ro.Absorb(i.Challenges...)
}

// withoutWitness returns a same-shape copy with every value zeroed.
func (i *NativeInstance) withoutWitness() NativeInstance {
	out := NativeInstance{
		WCommitments: make([]BigUintPoint, len(i.WCommitments)),
		Instances:    zeroVectors(i.Instances),
		Challenges:   make([]fr.Element, len(i.Challenges)),
	}
	return out
}

// SupportInstance is the canonical on-circuit form of a support-track
// Plonk instance. Commitment coordinates are native elements already;
// public inputs and challenges are exact projections from the support
// scalar field.
type SupportInstance struct {
	WCommitments []AffinePoint
	Instances    [][]fr.Element
	Challenges   []fr.Element
}

// NewSupportInstance converts a support-track instance into its
// canonical form, projecting public inputs and challenges into the
// native field.
func NewSupportInstance(ins *folding.FoldableInstance) (SupportInstance, error) {
	out := SupportInstance{
		WCommitments: make([]AffinePoint, len(ins.WCommitments)),
		Instances:    make([][]fr.Element, len(ins.Instances)),
	}
	for j := range ins.WCommitments {
		p, err := NewAffinePoint(&ins.WCommitments[j])
		if err != nil {
			return SupportInstance{}, err
		}
		out.WCommitments[j] = p
	}
	for j := range ins.Instances {
		col, err := projectVector(ins.Instances[j])
		if err != nil {
			return SupportInstance{}, err
		}
		out.Instances[j] = col
	}
	ch, err := projectVector(ins.Challenges)
	if err != nil {
		return SupportInstance{}, err
	}
	out.Challenges = ch
	return out, nil
}

// AbsorbInto feeds the commitment coordinate pairs, then every
// public-input vector in column order, then the challenges.
func (i *SupportInstance) AbsorbInto(ro RandomOracle) {
	for j := range i.WCommitments {
		i.WCommitments[j].AbsorbInto(ro)
	}
	for _, col := range i.Instances {
		ro.Absorb(col...)
	}
	ro.Absorb(i.Challenges...)
}

// clone returns a deep copy.
func (i *SupportInstance) clone() SupportInstance {
	out := SupportInstance{
		WCommitments: append([]AffinePoint(nil), i.WCommitments...),
		Instances:    make([][]fr.Element, len(i.Instances)),
		Challenges:   append([]fr.Element(nil), i.Challenges...),
	}
	for j := range i.Instances {
		out.Instances[j] = append([]fr.Element(nil), i.Instances[j]...)
	}
	return out
}

// withoutWitness returns a same-shape copy with every value zeroed.
func (i *SupportInstance) withoutWitness() SupportInstance {
	return SupportInstance{
		WCommitments: make([]AffinePoint, len(i.WCommitments)),
		Instances:    zeroVectors(i.Instances),
		Challenges:   make([]fr.Element, len(i.Challenges)),
	}
}

func zeroVectors(shape [][]fr.Element) [][]fr.Element {
	out := make([][]fr.Element, len(shape))
	for i := range shape {
		out[i] = make([]fr.Element, len(shape[i]))
	}
	return out
}

func projectVector(vs []gfr.Element) ([]fr.Element, error) {
	out := make([]fr.Element, len(vs))
	for i := range vs {
		v, err := SupportToNative(vs[i])
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
