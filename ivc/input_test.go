package ivc_test

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/grumpkin"
	gfr "github.com/consensys/gnark-crypto/ecc/grumpkin/fr"
	"github.com/stretchr/testify/assert"

	"github.com/sp301415/recurse-snark/folding"
	"github.com/sp301415/recurse-snark/ivc"
)

func TestWCommitmentsLen(t *testing.T) {
	for _, tc := range []struct {
		challenges int
		want       int
	}{
		{0, 1}, {1, 1}, {2, 2}, {3, 3},
	} {
		got, err := ivc.WCommitmentsLen(tc.challenges)
		assert.NoError(t, err)
		assert.Equal(t, tc.want, got)
	}

	_, err := ivc.WCommitmentsLen(4)
	assert.ErrorIs(t, err, ivc.ErrChallengeCount)

	_, err = ivc.WCommitmentsLen(-1)
	assert.ErrorIs(t, err, ivc.ErrChallengeCount)
}

func TestInitialInput(t *testing.T) {
	supportIns := testFoldableInstance()
	input, err := ivc.NewInitialInput(2, testNativeShape(), testSupportShape(), &supportIns)
	assert.NoError(t, err)

	t.Run("NativeShape", func(t *testing.T) {
		trace := input.SelfTrace
		assert.Len(t, trace.Accumulator.Ins.WCommitments, 1)
		assert.Len(t, trace.Accumulator.Ins.Instances, 1)
		assert.Len(t, trace.Accumulator.Ins.Instances[0], 1)
		assert.Len(t, trace.Accumulator.Ins.Challenges, 1)
		assert.Len(t, trace.Accumulator.Betas, 2)
		assert.Len(t, trace.Incoming.WCommitments, 1)
		assert.Len(t, trace.Proof.PolyF, 2)
		assert.Len(t, trace.Proof.PolyK, 3)
	})

	t.Run("NativeValuesZero", func(t *testing.T) {
		ro := &ivc.Collector{}
		input.SelfTrace.AbsorbInto(ro)
		for _, e := range ro.Elements {
			assert.True(t, e.IsZero())
		}
	})

	t.Run("SupportShape", func(t *testing.T) {
		trace := input.SupportTrace
		// one incoming slot per native witness commitment, each with
		// FoldingDegree-1 cross terms
		assert.Len(t, trace.Incoming, 1)
		assert.Len(t, trace.Incoming[0].Proof, 2)
		assert.Len(t, trace.Incoming[0].Instance.WCommitments, 1)
		assert.Len(t, trace.Incoming[0].Instance.Instances, 1)
		assert.Len(t, trace.Incoming[0].Instance.Instances[0], 2)
		assert.Len(t, trace.Accumulator.Ins.Instances, 1)
		assert.Len(t, trace.Accumulator.Ins.Instances[0], 2)
	})

	t.Run("SupportSeededFromInstance", func(t *testing.T) {
		trace := input.SupportTrace
		// the genesis fold reuses the supplied instance's values
		assert.Equal(t, elem(1), trace.Incoming[0].Instance.WCommitments[0].X)
		assert.Equal(t, elems(3, 4), trace.Incoming[0].Instance.Instances[0])
		assert.Equal(t, elems(5), trace.Incoming[0].Instance.Challenges)
		assert.Equal(t, elems(3, 4), trace.Accumulator.Ins.Instances[0])
		assert.True(t, trace.Accumulator.U.IsZero())
		assert.True(t, trace.Accumulator.ECommitment.X.IsZero())
	})

	t.Run("StateVectors", func(t *testing.T) {
		assert.Equal(t, uint64(0), input.Step)
		assert.Len(t, input.Z0, 2)
		assert.Len(t, input.ZI, 2)
	})
}

func TestInitialSupportTrace(t *testing.T) {
	t.Run("ColumnsMatchInstance", func(t *testing.T) {
		ins := folding.FoldableInstance{
			WCommitments: []grumpkin.G1Affine{supportPoint(1, 2)},
			Instances:    [][]gfr.Element{gElems(3, 4), gElems(5)},
			Challenges:   gElems(6),
		}
		shape := &folding.SupportStructure{
			NumIO:           []int{2, 1},
			NumChallenges:   1,
			NumWCommitments: 1,
			FoldingDegree:   2,
		}

		trace, err := ivc.NewInitialSupportTrace(shape, &ins, 2)
		assert.NoError(t, err)

		// the accumulator carries the instance's columns verbatim
		assert.Equal(t, [][]fr.Element{elems(3, 4), elems(5)}, trace.Accumulator.Ins.Instances)
		assert.Len(t, trace.Incoming, 2)
		assert.Equal(t, trace.Accumulator.Ins.Instances, trace.Incoming[0].Instance.Instances)
		assert.Len(t, trace.Incoming[0].Proof, 1)
	})

	t.Run("NoColumns", func(t *testing.T) {
		ins := folding.FoldableInstance{
			WCommitments: []grumpkin.G1Affine{supportPoint(1, 2)},
		}
		shape := &folding.SupportStructure{NumWCommitments: 1, FoldingDegree: 2}

		trace, err := ivc.NewInitialSupportTrace(shape, &ins, 1)
		assert.NoError(t, err)
		assert.Empty(t, trace.Accumulator.Ins.Instances)
		assert.Empty(t, trace.Incoming[0].Instance.Instances)
	})
}

func TestGetWithoutWitness(t *testing.T) {
	input, err := testBuilder().Build()
	assert.NoError(t, err)

	shape := input.GetWithoutWitness()

	t.Run("SameStreamLength", func(t *testing.T) {
		full, zeroed := &ivc.Collector{}, &ivc.Collector{}
		input.AbsorbInto(full)
		shape.AbsorbInto(zeroed)
		assert.Equal(t, len(full.Elements), len(zeroed.Elements))
	})

	t.Run("AllValuesZero", func(t *testing.T) {
		ro := &ivc.Collector{}
		shape.AbsorbInto(ro)
		for _, e := range ro.Elements {
			assert.True(t, e.IsZero())
		}

		assert.Equal(t, uint64(0), shape.Step)
	})

	t.Run("NestedShapesPreserved", func(t *testing.T) {
		assert.Len(t, shape.SelfTrace.Proof.PolyF, len(input.SelfTrace.Proof.PolyF))
		assert.Len(t, shape.SelfTrace.Proof.PolyK, len(input.SelfTrace.Proof.PolyK))
		assert.Len(t, shape.SupportTrace.Incoming, len(input.SupportTrace.Incoming))
		assert.Len(t, shape.SupportTrace.Incoming[0].Proof, len(input.SupportTrace.Incoming[0].Proof))
		assert.Len(t, shape.Z0, len(input.Z0))
		assert.Len(t, shape.ZI, len(input.ZI))
	})
}
