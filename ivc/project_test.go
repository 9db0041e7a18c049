package ivc_test

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/grumpkin"
	gfr "github.com/consensys/gnark-crypto/ecc/grumpkin/fr"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"

	"github.com/sp301415/recurse-snark/ivc"
)

func TestProjection(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		properties := gopter.NewProperties(nil)

		properties.Property("support to native and back", prop.ForAll(
			func(v uint64) bool {
				var s gfr.Element
				s.SetUint64(v)

				n, err := ivc.SupportToNative(s)
				if err != nil {
					return false
				}
				back := ivc.NativeToSupport(n)
				return back.Equal(&s)
			},
			gen.UInt64(),
		))

		properties.Property("native to support and back", prop.ForAll(
			func(v uint64) bool {
				var n fr.Element
				n.SetUint64(v)

				back, err := ivc.SupportToNative(ivc.NativeToSupport(n))
				return err == nil && back.Equal(&n)
			},
			gen.UInt64(),
		))

		properties.TestingRun(t)
	})

	t.Run("NearModulusBoundary", func(t *testing.T) {
		// The largest native value projects back and forth exactly.
		var largest fr.Element
		largest.SetOne()
		largest.Neg(&largest)

		s := ivc.NativeToSupport(largest)
		n, err := ivc.SupportToNative(s)
		assert.NoError(t, err)
		assert.True(t, n.Equal(&largest))
	})

	t.Run("TooLarge", func(t *testing.T) {
		// The native modulus itself is a canonical support scalar but
		// has no native representation.
		var s gfr.Element
		s.SetBigInt(fr.Modulus())

		_, err := ivc.SupportToNative(s)
		assert.ErrorIs(t, err, ivc.ErrValueTooLarge)
	})
}

func TestAffinePoint(t *testing.T) {
	t.Run("CoordinatesCarryOver", func(t *testing.T) {
		var p grumpkin.G1Affine
		p.X.SetUint64(5)
		p.Y.SetUint64(6)

		a, err := ivc.NewAffinePoint(&p)
		assert.NoError(t, err)
		assert.Equal(t, elem(5), a.X)
		assert.Equal(t, elem(6), a.Y)
	})

	t.Run("Infinity", func(t *testing.T) {
		var p grumpkin.G1Affine
		_, err := ivc.NewAffinePoint(&p)
		assert.ErrorIs(t, err, ivc.ErrPointAtInfinity)
	})
}
