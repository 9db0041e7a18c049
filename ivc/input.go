package ivc

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/sp301415/recurse-snark/folding"
)

// Input is the assembled public input of one IVC step: the two track
// traces, the public-parameter digest, the step counter and the state
// vectors.
type Input struct {
	// PpDigest is the public-parameter commitment digest, carried as a
	// main-curve point's two coordinates.
	PpDigest [2]fr.Element

	SelfTrace    NativeTrace
	SupportTrace SupportTrace

	// Step is the zero-based step counter.
	Step uint64
	// Z0 is the IVC input state.
	Z0 []fr.Element
	// ZI is the state after Step applications.
	ZI []fr.Element
}

// AbsorbInto feeds the two running accumulators, the digest
// coordinates, the step counter as a field element, then z_0 and z_i.
// Incoming instances and proofs are deliberately left out: the
// consistency hash binds only the folded state.
func (in *Input) AbsorbInto(ro RandomOracle) {
	in.SelfTrace.Accumulator.AbsorbInto(ro)
	in.SupportTrace.Accumulator.AbsorbInto(ro)

	ro.Absorb(in.PpDigest[0], in.PpDigest[1])

	var step fr.Element
	step.SetUint64(in.Step)
	ro.Absorb(step)

	ro.Absorb(in.Z0...)
	ro.Absorb(in.ZI...)
}

// NewInitialInput assembles the genesis input for the given shapes:
// step zero, zero state vectors of the given arity, and zero-valued
// traces sized exactly as every later step's input will be.
func NewInitialInput(arity int, native *folding.Structure, support *folding.SupportStructure, supportIns *folding.FoldableInstance) (*Input, error) {
	selfTrace, err := NewInitialNativeTrace(native)
	if err != nil {
		return nil, err
	}
	wLen, err := WCommitmentsLen(native.NumChallenges)
	if err != nil {
		return nil, err
	}
	supportTrace, err := NewInitialSupportTrace(support, supportIns, wLen)
	if err != nil {
		return nil, err
	}

	return &Input{
		SelfTrace:    selfTrace,
		SupportTrace: supportTrace,
		Z0:           make([]fr.Element, arity),
		ZI:           make([]fr.Element, arity),
	}, nil
}

// GetWithoutWitness returns a copy preserving every vector length and
// nesting but with all values zeroed. The copy is the shape key used
// to synthesize the step circuit before any witness exists.
func (in *Input) GetWithoutWitness() *Input {
	return &Input{
		SelfTrace:    in.SelfTrace.withoutWitness(),
		SupportTrace: in.SupportTrace.withoutWitness(),
		Z0:           make([]fr.Element, len(in.Z0)),
		ZI:           make([]fr.Element, len(in.ZI)),
	}
}
