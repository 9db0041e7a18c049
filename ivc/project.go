package ivc

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	gfp "github.com/consensys/gnark-crypto/ecc/grumpkin/fp"
	gfr "github.com/consensys/gnark-crypto/ecc/grumpkin/fr"
)

// SupportToNative projects a support-scalar value into the native
// field. The grumpkin scalar modulus exceeds the bn254 scalar modulus,
// so the projection fails with ErrValueTooLarge when the canonical
// integer does not fit; it is never reduced.
func SupportToNative(v gfr.Element) (fr.Element, error) {
	b := v.Bytes()
	x := new(big.Int).SetBytes(b[:])
	if x.Cmp(fr.Modulus()) >= 0 {
		return fr.Element{}, fmt.Errorf("%w: support scalar %s", ErrValueTooLarge, x.Text(16))
	}

	var out fr.Element
	out.SetBigInt(x)
	return out, nil
}

// NativeToSupport embeds a native field value into the support scalar
// field. The embedding always succeeds since the native modulus is the
// smaller of the two, and it is the exact inverse of SupportToNative on
// projected values.
func NativeToSupport(v fr.Element) gfr.Element {
	b := v.Bytes()
	var out gfr.Element
	out.SetBytes(b[:])
	return out
}

// supportBaseToNative reinterprets a support-curve base-field
// coordinate as a native field element. The two fields share the same
// modulus, so the canonical integer carries over exactly.
func supportBaseToNative(v gfp.Element) fr.Element {
	b := v.Bytes()
	var out fr.Element
	out.SetBytes(b[:])
	return out
}
