package ivc

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/sp301415/recurse-snark/folding"
)

// Builder assembles a step's Input from the raw folding entities,
// validating every vector length against the circuit shapes before any
// value reaches the transcript.
type Builder struct {
	PpDigest [2]fr.Element
	Step     uint64

	NativeShape  *folding.Structure
	SupportShape *folding.SupportStructure

	SelfAccumulator *folding.AccumulatorInstance
	SelfIncoming    *folding.Instance
	SelfProof       folding.Proof

	SupportAccumulator *folding.RelaxedInstance
	SupportIncoming    []folding.Incoming

	Z0 []fr.Element
	ZI []fr.Element
}

func checkNativeShape(ins *NativeInstance, s *folding.Structure, wLen int, what string) error {
	if len(ins.WCommitments) != wLen {
		return fmt.Errorf("%w: %s has %d commitments, shape wants %d",
			ErrShapeMismatch, what, len(ins.WCommitments), wLen)
	}
	if len(ins.Instances) != len(s.NumIO) {
		return fmt.Errorf("%w: %s has %d instance columns, shape wants %d",
			ErrShapeMismatch, what, len(ins.Instances), len(s.NumIO))
	}
	for i, col := range ins.Instances {
		if len(col) != s.NumIO[i] {
			return fmt.Errorf("%w: %s instance column %d has %d values, shape wants %d",
				ErrShapeMismatch, what, i, len(col), s.NumIO[i])
		}
	}
	if len(ins.Challenges) != s.NumChallenges {
		return fmt.Errorf("%w: %s has %d challenges, shape wants %d",
			ErrShapeMismatch, what, len(ins.Challenges), s.NumChallenges)
	}
	return nil
}

func checkSupportShape(ins *SupportInstance, s *folding.SupportStructure, wLen int, what string) error {
	if len(ins.WCommitments) != wLen {
		return fmt.Errorf("%w: %s has %d commitments, shape wants %d",
			ErrShapeMismatch, what, len(ins.WCommitments), wLen)
	}
	if len(ins.Instances) != len(s.NumIO) {
		return fmt.Errorf("%w: %s has %d instance columns, shape wants %d",
			ErrShapeMismatch, what, len(ins.Instances), len(s.NumIO))
	}
	for i, col := range ins.Instances {
		if len(col) != s.NumIO[i] {
			return fmt.Errorf("%w: %s instance column %d has %d values, shape wants %d",
				ErrShapeMismatch, what, i, len(col), s.NumIO[i])
		}
	}
	if len(ins.Challenges) != s.NumChallenges {
		return fmt.Errorf("%w: %s has %d challenges, shape wants %d",
			ErrShapeMismatch, what, len(ins.Challenges), s.NumChallenges)
	}
	return nil
}

// Build projects, validates and assembles the Input. Projection errors
// (ErrPointAtInfinity, ErrValueTooLarge) and shape violations
// (ErrShapeMismatch, ErrChallengeCount) surface as wrapped sentinels;
// nothing is truncated, padded or reduced to fit.
func (b *Builder) Build() (*Input, error) {
	wLen, err := WCommitmentsLen(b.NativeShape.NumChallenges)
	if err != nil {
		return nil, err
	}

	acc, err := NewNativeAccumulator(b.SelfAccumulator)
	if err != nil {
		return nil, err
	}
	if err := checkNativeShape(&acc.Ins, b.NativeShape, wLen, "accumulator"); err != nil {
		return nil, err
	}
	if len(acc.Betas) != b.NativeShape.BetasCount {
		return nil, fmt.Errorf("%w: accumulator has %d betas, shape wants %d",
			ErrShapeMismatch, len(acc.Betas), b.NativeShape.BetasCount)
	}

	incoming, err := NewNativeInstance(b.SelfIncoming)
	if err != nil {
		return nil, err
	}
	if err := checkNativeShape(&incoming, b.NativeShape, wLen, "incoming instance"); err != nil {
		return nil, err
	}

	if len(b.SelfProof.PolyF) != b.NativeShape.PolyFLen {
		return nil, fmt.Errorf("%w: proof poly F has %d coefficients, shape wants %d",
			ErrShapeMismatch, len(b.SelfProof.PolyF), b.NativeShape.PolyFLen)
	}
	if len(b.SelfProof.PolyK) != b.NativeShape.PolyKLen {
		return nil, fmt.Errorf("%w: proof poly K has %d coefficients, shape wants %d",
			ErrShapeMismatch, len(b.SelfProof.PolyK), b.NativeShape.PolyKLen)
	}

	supportAcc, err := NewSupportAccumulator(b.SupportAccumulator)
	if err != nil {
		return nil, err
	}
	if err := checkSupportShape(&supportAcc.Ins, b.SupportShape, b.SupportShape.NumWCommitments, "support accumulator"); err != nil {
		return nil, err
	}

	if len(b.SupportIncoming) != wLen {
		return nil, fmt.Errorf("%w: %d incoming support instances, shape wants %d",
			ErrShapeMismatch, len(b.SupportIncoming), wLen)
	}

	crossTerms := b.SupportShape.FoldingDegree - 1
	if crossTerms < 0 {
		crossTerms = 0
	}

	supportIncoming := make([]SupportIncoming, len(b.SupportIncoming))
	for j := range b.SupportIncoming {
		ins, err := NewSupportInstance(&b.SupportIncoming[j].Instance)
		if err != nil {
			return nil, err
		}
		if err := checkSupportShape(&ins, b.SupportShape, b.SupportShape.NumWCommitments, fmt.Sprintf("incoming support instance %d", j)); err != nil {
			return nil, err
		}
		if len(b.SupportIncoming[j].Proof) != crossTerms {
			return nil, fmt.Errorf("%w: incoming support instance %d has %d cross terms, shape wants %d",
				ErrShapeMismatch, j, len(b.SupportIncoming[j].Proof), crossTerms)
		}
		proof := make([]AffinePoint, crossTerms)
		for k := range b.SupportIncoming[j].Proof {
			p, err := NewAffinePoint(&b.SupportIncoming[j].Proof[k])
			if err != nil {
				return nil, err
			}
			proof[k] = p
		}
		supportIncoming[j] = SupportIncoming{Instance: ins, Proof: proof}
	}

	if len(b.Z0) != len(b.ZI) {
		return nil, fmt.Errorf("%w: z_0 has arity %d, z_i has arity %d",
			ErrShapeMismatch, len(b.Z0), len(b.ZI))
	}

	return &Input{
		PpDigest: b.PpDigest,
		SelfTrace: NativeTrace{
			Accumulator: acc,
			Incoming:    incoming,
			Proof: NativeProof{
				PolyF: append([]fr.Element(nil), b.SelfProof.PolyF...),
				PolyK: append([]fr.Element(nil), b.SelfProof.PolyK...),
			},
		},
		SupportTrace: SupportTrace{
			Accumulator: supportAcc,
			Incoming:    supportIncoming,
		},
		Step: b.Step,
		Z0:   append([]fr.Element(nil), b.Z0...),
		ZI:   append([]fr.Element(nil), b.ZI...),
	}, nil
}
