package ivc_test

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/stretchr/testify/assert"

	"github.com/sp301415/recurse-snark/ivc"
)

func elem(v uint64) fr.Element {
	var e fr.Element
	e.SetUint64(v)
	return e
}

func elems(vs ...uint64) []fr.Element {
	out := make([]fr.Element, len(vs))
	for i, v := range vs {
		out[i].SetUint64(v)
	}
	return out
}

// limbPoint builds a limb-decomposed point whose coordinates fit a
// single limb, so the expected stream is the coordinate followed by
// nine zero limbs.
func limbPoint(x, y uint64) ivc.BigUintPoint {
	var p ivc.BigUintPoint
	p.X[0].SetUint64(x)
	p.Y[0].SetUint64(y)
	return p
}

func limbStream(v uint64) []fr.Element {
	out := make([]fr.Element, ivc.LimbsCount)
	out[0].SetUint64(v)
	return out
}

func testNativeAccumulator() ivc.NativeAccumulator {
	return ivc.NativeAccumulator{
		Ins: ivc.NativeInstance{
			WCommitments: []ivc.BigUintPoint{limbPoint(1, 2)},
			Instances:    [][]fr.Element{elems(3)},
			Challenges:   elems(4),
		},
		Betas: elems(5),
		E:     elem(6),
	}
}

func nativeAccumulatorStream() []fr.Element {
	var expected []fr.Element
	expected = append(expected, limbStream(1)...)
	expected = append(expected, limbStream(2)...)
	expected = append(expected, elems(3, 4, 5, 6)...)
	return expected
}

func testSupportAccumulator() ivc.SupportAccumulator {
	return ivc.SupportAccumulator{
		Ins: ivc.SupportInstance{
			WCommitments: []ivc.AffinePoint{{X: elem(7), Y: elem(8)}},
			Instances:    [][]fr.Element{elems(9)},
			Challenges:   elems(10),
		},
		U:           elem(11),
		ECommitment: ivc.AffinePoint{X: elem(12), Y: elem(13)},
	}
}

func supportAccumulatorStream() []fr.Element {
	return elems(7, 8, 9, 10, 11, 12, 13, 0)
}

func TestAbsorbOrder(t *testing.T) {
	t.Run("NativeInstance", func(t *testing.T) {
		ins := ivc.NativeInstance{
			WCommitments: []ivc.BigUintPoint{limbPoint(1, 2), limbPoint(3, 4)},
			Instances:    [][]fr.Element{elems(5, 6), elems(7)},
			Challenges:   elems(8, 9),
		}

		var expected []fr.Element
		expected = append(expected, limbStream(1)...)
		expected = append(expected, limbStream(2)...)
		expected = append(expected, limbStream(3)...)
		expected = append(expected, limbStream(4)...)
		expected = append(expected, elems(5, 6, 7, 8, 9)...)

		ro := &ivc.Collector{}
		ins.AbsorbInto(ro)
		assert.Equal(t, expected, ro.Elements)
	})

	t.Run("NativeAccumulator", func(t *testing.T) {
		acc := testNativeAccumulator()
		ro := &ivc.Collector{}
		acc.AbsorbInto(ro)
		assert.Equal(t, nativeAccumulatorStream(), ro.Elements)
	})

	t.Run("SupportAccumulatorTrailingZero", func(t *testing.T) {
		acc := testSupportAccumulator()
		ro := &ivc.Collector{}
		acc.AbsorbInto(ro)
		assert.Equal(t, supportAccumulatorStream(), ro.Elements)
	})

	t.Run("NativeTracePolyKBeforePolyF", func(t *testing.T) {
		trace := ivc.NativeTrace{
			Accumulator: testNativeAccumulator(),
			Incoming: ivc.NativeInstance{
				WCommitments: []ivc.BigUintPoint{limbPoint(20, 21)},
				Instances:    [][]fr.Element{elems(22)},
				Challenges:   elems(23),
			},
			Proof: ivc.NativeProof{
				PolyF: elems(31, 32),
				PolyK: elems(41, 42, 43),
			},
		}

		expected := nativeAccumulatorStream()
		expected = append(expected, limbStream(20)...)
		expected = append(expected, limbStream(21)...)
		expected = append(expected, elems(22, 23)...)
		expected = append(expected, elems(41, 42, 43)...)
		expected = append(expected, elems(31, 32)...)

		ro := &ivc.Collector{}
		trace.AbsorbInto(ro)
		assert.Equal(t, expected, ro.Elements)
	})

	t.Run("SupportIncoming", func(t *testing.T) {
		incoming := ivc.SupportIncoming{
			Instance: ivc.SupportInstance{
				WCommitments: []ivc.AffinePoint{{X: elem(1), Y: elem(2)}},
				Instances:    [][]fr.Element{elems(3)},
				Challenges:   elems(4),
			},
			Proof: []ivc.AffinePoint{{X: elem(5), Y: elem(6)}, {X: elem(7), Y: elem(8)}},
		}

		ro := &ivc.Collector{}
		incoming.AbsorbInto(ro)
		assert.Equal(t, elems(1, 2, 3, 4, 5, 6, 7, 8), ro.Elements)
	})

	t.Run("InputBindsAccumulatorsOnly", func(t *testing.T) {
		input := ivc.Input{
			PpDigest: [2]fr.Element{elem(14), elem(15)},
			SelfTrace: ivc.NativeTrace{
				Accumulator: testNativeAccumulator(),
				// Incoming and proof values must not reach the stream.
				Incoming: ivc.NativeInstance{
					WCommitments: []ivc.BigUintPoint{limbPoint(90, 91)},
					Instances:    [][]fr.Element{elems(92)},
					Challenges:   elems(93),
				},
				Proof: ivc.NativeProof{PolyF: elems(94), PolyK: elems(95)},
			},
			SupportTrace: ivc.SupportTrace{
				Accumulator: testSupportAccumulator(),
				Incoming: []ivc.SupportIncoming{{
					Instance: ivc.SupportInstance{
						WCommitments: []ivc.AffinePoint{{X: elem(96), Y: elem(97)}},
						Instances:    [][]fr.Element{elems(98)},
						Challenges:   elems(99),
					},
				}},
			},
			Step: 16,
			Z0:   elems(17),
			ZI:   elems(18),
		}

		expected := nativeAccumulatorStream()
		expected = append(expected, supportAccumulatorStream()...)
		expected = append(expected, elems(14, 15, 16, 17, 18)...)

		ro := &ivc.Collector{}
		input.AbsorbInto(ro)
		assert.Equal(t, expected, ro.Elements)
	})
}
