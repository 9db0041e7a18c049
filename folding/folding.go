// Package folding defines the data handed to the IVC core by the
// external folding schemes: Plonk instances and circuit shapes on the
// native bn254 track (folded with a ProtoGalaxy-style scheme) and on
// the grumpkin support track (folded with a Sangria-style scheme).
//
// The folding math itself lives outside this module; these entities
// only carry the commitments, public inputs, challenges and
// scheme-specific extras the recursive state model projects from.
package folding

import (
	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/grumpkin"
	gfr "github.com/consensys/gnark-crypto/ecc/grumpkin/fr"
)

// Instance is a Plonk instance of the native circuit.
type Instance struct {
	// WCommitments are the commitments to the witness columns.
	WCommitments []bn254.G1Affine
	// Instances are the public input vectors, one per public-input
	// column. Lengths are fixed per circuit shape.
	Instances [][]fr.Element
	// Challenges are the Fiat-Shamir challenges already derived for
	// this instance.
	Challenges []fr.Element
}

// Structure is the public shape of the native circuit, together with
// the vector sizes the ProtoGalaxy folding layer derives from it.
type Structure struct {
	// NumIO holds the length of each public-input column.
	NumIO []int
	// NumChallenges is the number of Fiat-Shamir challenges.
	NumChallenges int

	// BetasCount is the length of the accumulator's beta vector.
	BetasCount int
	// PolyFLen is the coefficient count of the proof polynomial F.
	PolyFLen int
	// PolyKLen is the coefficient count of the proof polynomial K.
	PolyKLen int
}

// AccumulatorInstance is the running ProtoGalaxy accumulator of the
// native track.
type AccumulatorInstance struct {
	Ins Instance
	// Betas are the accumulated beta challenges.
	Betas []fr.Element
	// E is the error term.
	E fr.Element
}

// Proof is the ProtoGalaxy folding proof: two polynomials given by
// their coefficients.
type Proof struct {
	PolyF []fr.Element
	PolyK []fr.Element
}

// FoldableInstance is a Plonk instance of the support circuit on the
// grumpkin curve. Point coordinates live in the native field; public
// inputs and challenges live in grumpkin's scalar field.
type FoldableInstance struct {
	WCommitments []grumpkin.G1Affine
	Instances    [][]gfr.Element
	Challenges   []gfr.Element
}

// RelaxedInstance is the running Sangria accumulator of the support
// track.
type RelaxedInstance struct {
	WCommitments []grumpkin.G1Affine
	// ConsistencyMarkers are the accumulator's single public-input
	// column.
	ConsistencyMarkers []gfr.Element
	Challenges         []gfr.Element
	// ECommitment commits to the accumulated error vector.
	ECommitment grumpkin.G1Affine
	// U is the homogenization slack scalar.
	U gfr.Element
}

// CrossTermCommits are the cross-term commitments of one Sangria
// folding step.
type CrossTermCommits []grumpkin.G1Affine

// Incoming pairs a foldable support instance with its cross-term
// commitments.
type Incoming struct {
	Instance FoldableInstance
	Proof    CrossTermCommits
}

// SupportStructure is the public shape of the support circuit.
type SupportStructure struct {
	// NumIO holds the length of each public-input column.
	NumIO []int
	// NumChallenges is the number of Fiat-Shamir challenges.
	NumChallenges int
	// NumWCommitments is the number of witness commitments per
	// instance.
	NumWCommitments int
	// FoldingDegree is the constraint degree used for folding; a
	// folding step produces FoldingDegree-1 cross-term commitments.
	FoldingDegree int
}
