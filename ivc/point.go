package ivc

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/grumpkin"
)

const (
	// LimbWidth is the bit width of one coordinate limb.
	LimbWidth = 32
	// LimbsCount is the number of limbs per coordinate. It covers the
	// full main-curve base field with headroom for non-native range
	// checks downstream.
	LimbsCount = 10
)

// BigUintPoint is a main-curve point with its foreign-field
// coordinates decomposed into fixed-width limbs, least significant
// first, each limb carried as a native field element.
type BigUintPoint struct {
	X [LimbsCount]fr.Element
	Y [LimbsCount]fr.Element
}

func decomposeLimbs(v *big.Int) [LimbsCount]fr.Element {
	var limbs [LimbsCount]fr.Element
	mask := new(big.Int).Lsh(big.NewInt(1), LimbWidth)
	mask.Sub(mask, big.NewInt(1))

	rest := new(big.Int).Set(v)
	limb := new(big.Int)
	for i := 0; i < LimbsCount; i++ {
		limb.And(rest, mask)
		limbs[i].SetBigInt(limb)
		rest.Rsh(rest, LimbWidth)
	}
	return limbs
}

// NewBigUintPoint decomposes the coordinates of a main-curve point.
// The group identity has no affine coordinates and yields
// ErrPointAtInfinity.
func NewBigUintPoint(p *bn254.G1Affine) (BigUintPoint, error) {
	if p.IsInfinity() {
		return BigUintPoint{}, fmt.Errorf("%w: main-curve commitment", ErrPointAtInfinity)
	}

	var x, y big.Int
	p.X.BigInt(&x)
	p.Y.BigInt(&y)
	return BigUintPoint{X: decomposeLimbs(&x), Y: decomposeLimbs(&y)}, nil
}

// IdentityPoint returns the all-zero limb representation used for
// commitments of the genesis state.
func IdentityPoint() BigUintPoint {
	return BigUintPoint{}
}

// AbsorbInto feeds all X limbs, then all Y limbs.
func (p *BigUintPoint) AbsorbInto(ro RandomOracle) {
	ro.Absorb(p.X[:]...)
	ro.Absorb(p.Y[:]...)
}

// AffinePoint is a support-curve point whose coordinates live directly
// in the native field.
type AffinePoint struct {
	X fr.Element
	Y fr.Element
}

// NewAffinePoint extracts the coordinates of a support-curve point.
// The group identity yields ErrPointAtInfinity.
func NewAffinePoint(p *grumpkin.G1Affine) (AffinePoint, error) {
	if p.IsInfinity() {
		return AffinePoint{}, fmt.Errorf("%w: support-curve commitment", ErrPointAtInfinity)
	}
	return AffinePoint{X: supportBaseToNative(p.X), Y: supportBaseToNative(p.Y)}, nil
}

// relaxedAffinePoint extracts coordinates mapping the identity to
// (0, 0). The error commitment of a fresh Sangria accumulator is
// legitimately the identity.
func relaxedAffinePoint(p *grumpkin.G1Affine) AffinePoint {
	if p.IsInfinity() {
		return AffinePoint{}
	}
	return AffinePoint{X: supportBaseToNative(p.X), Y: supportBaseToNative(p.Y)}
}

// AbsorbInto feeds X then Y.
func (p *AffinePoint) AbsorbInto(ro RandomOracle) {
	ro.Absorb(p.X, p.Y)
}
