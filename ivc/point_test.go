package ivc_test

import (
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/stretchr/testify/assert"

	"github.com/sp301415/recurse-snark/ivc"
)

func TestBigUintPoint(t *testing.T) {
	t.Run("LimbDecomposition", func(t *testing.T) {
		// x = 2^64 + 3 spans three limbs: [3, 0, 1, 0, ...].
		x := new(big.Int).Lsh(big.NewInt(1), 64)
		x.Add(x, big.NewInt(3))

		var p bn254.G1Affine
		p.X.SetBigInt(x)
		p.Y.SetUint64(7)

		d, err := ivc.NewBigUintPoint(&p)
		assert.NoError(t, err)

		assert.Equal(t, elem(3), d.X[0])
		assert.True(t, d.X[1].IsZero())
		assert.Equal(t, elem(1), d.X[2])
		for i := 3; i < ivc.LimbsCount; i++ {
			assert.True(t, d.X[i].IsZero())
		}

		assert.Equal(t, elem(7), d.Y[0])
		for i := 1; i < ivc.LimbsCount; i++ {
			assert.True(t, d.Y[i].IsZero())
		}
	})

	t.Run("Infinity", func(t *testing.T) {
		var p bn254.G1Affine
		_, err := ivc.NewBigUintPoint(&p)
		assert.ErrorIs(t, err, ivc.ErrPointAtInfinity)
	})

	t.Run("Identity", func(t *testing.T) {
		p := ivc.IdentityPoint()
		ro := &ivc.Collector{}
		p.AbsorbInto(ro)

		assert.Len(t, ro.Elements, 2*ivc.LimbsCount)
		for _, e := range ro.Elements {
			assert.True(t, e.IsZero())
		}
	})
}
