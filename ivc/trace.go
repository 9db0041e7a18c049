package ivc

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/sp301415/recurse-snark/folding"
)

// WCommitmentsLen maps the native challenge count to the number of
// witness commitments the circuit shape carries, which is also the
// number of incoming support instances a step folds.
func WCommitmentsLen(numChallenges int) (int, error) {
	switch numChallenges {
	case 0, 1:
		return 1, nil
	case 2:
		return 2, nil
	case 3:
		return 3, nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrChallengeCount, numChallenges)
	}
}

// NativeProof is the canonical form of the main track's folding proof.
type NativeProof struct {
	PolyF []fr.Element
	PolyK []fr.Element
}

// NativeTrace is the main track's slice of the recursive state: the
// running accumulator, the incoming instance of the previous step, and
// the folding proof joining them.
type NativeTrace struct {
	Accumulator NativeAccumulator
	Incoming    NativeInstance
	Proof       NativeProof
}

// AbsorbInto feeds the accumulator, the incoming instance, then the
// proof polynomials K and F.
func (t *NativeTrace) AbsorbInto(ro RandomOracle) {
	t.Accumulator.AbsorbInto(ro)
	t.Incoming.AbsorbInto(ro)
	ro.Absorb(t.Proof.PolyK...)
	ro.Absorb(t.Proof.PolyF...)
}

// NewInitialNativeTrace builds the genesis trace for a circuit shape:
// every vector sized per the shape, every value zero.
func NewInitialNativeTrace(s *folding.Structure) (NativeTrace, error) {
	wLen, err := WCommitmentsLen(s.NumChallenges)
	if err != nil {
		return NativeTrace{}, err
	}

	instances := make([][]fr.Element, len(s.NumIO))
	for i, n := range s.NumIO {
		instances[i] = make([]fr.Element, n)
	}
	ins := NativeInstance{
		WCommitments: make([]BigUintPoint, wLen),
		Instances:    instances,
		Challenges:   make([]fr.Element, s.NumChallenges),
	}

	return NativeTrace{
		Accumulator: NativeAccumulator{
			Ins:   ins,
			Betas: make([]fr.Element, s.BetasCount),
		},
		Incoming: ins.withoutWitness(),
		Proof: NativeProof{
			PolyF: make([]fr.Element, s.PolyFLen),
			PolyK: make([]fr.Element, s.PolyKLen),
		},
	}, nil
}

// withoutWitness returns a same-shape copy with every value zeroed.
func (t *NativeTrace) withoutWitness() NativeTrace {
	return NativeTrace{
		Accumulator: t.Accumulator.withoutWitness(),
		Incoming:    t.Incoming.withoutWitness(),
		Proof: NativeProof{
			PolyF: make([]fr.Element, len(t.Proof.PolyF)),
			PolyK: make([]fr.Element, len(t.Proof.PolyK)),
		},
	}
}

// SupportIncoming pairs an incoming support instance with its
// cross-term commitments.
type SupportIncoming struct {
	Instance SupportInstance
	// Proof holds the cross-term commitments, FoldingDegree-1 of them.
	Proof []AffinePoint
}

// AbsorbInto feeds the instance, then each cross-term coordinate pair.
func (i *SupportIncoming) AbsorbInto(ro RandomOracle) {
	i.Instance.AbsorbInto(ro)
	for j := range i.Proof {
		i.Proof[j].AbsorbInto(ro)
	}
}

// withoutWitness returns a same-shape copy with every value zeroed.
func (i *SupportIncoming) withoutWitness() SupportIncoming {
	return SupportIncoming{
		Instance: i.Instance.withoutWitness(),
		Proof:    make([]AffinePoint, len(i.Proof)),
	}
}

// SupportTrace is the support track's slice of the recursive state:
// the running relaxed accumulator and the incoming instances folded
// into it during one step.
type SupportTrace struct {
	Accumulator SupportAccumulator
	Incoming    []SupportIncoming
}

// AbsorbInto feeds the accumulator, then each incoming pair in order.
func (t *SupportTrace) AbsorbInto(ro RandomOracle) {
	t.Accumulator.AbsorbInto(ro)
	for j := range t.Incoming {
		t.Incoming[j].AbsorbInto(ro)
	}
}

// NewInitialSupportTrace builds the genesis trace for a support shape.
// The supplied instance seeds both the accumulator and every incoming
// slot, so the genesis fold is a no-op on real values; cross-term
// commitments are zeroed at the shape's count.
func NewInitialSupportTrace(s *folding.SupportStructure, ins *folding.FoldableInstance, wCommitmentsLen int) (SupportTrace, error) {
	canonical, err := NewSupportInstance(ins)
	if err != nil {
		return SupportTrace{}, err
	}

	crossTerms := s.FoldingDegree - 1
	if crossTerms < 0 {
		crossTerms = 0
	}

	incoming := make([]SupportIncoming, wCommitmentsLen)
	for j := range incoming {
		incoming[j] = SupportIncoming{
			Instance: canonical.clone(),
			Proof:    make([]AffinePoint, crossTerms),
		}
	}

	acc := SupportAccumulator{Ins: canonical.clone()}

	return SupportTrace{Accumulator: acc, Incoming: incoming}, nil
}

// withoutWitness returns a same-shape copy with every value zeroed.
func (t *SupportTrace) withoutWitness() SupportTrace {
	incoming := make([]SupportIncoming, len(t.Incoming))
	for j := range t.Incoming {
		incoming[j] = t.Incoming[j].withoutWitness()
	}
	return SupportTrace{
		Accumulator: t.Accumulator.withoutWitness(),
		Incoming:    incoming,
	}
}
