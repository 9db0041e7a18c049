package poseidon

import "github.com/consensys/gnark-crypto/ecc/bn254/fr"

// outputSlot is the state slot read as the digest of a squeeze:
// the first rate slot.
const outputSlot = 1

// Sponge is the absorb/squeeze random oracle built on the permutation.
//
// Absorb only buffers; the permutation runs during Squeeze, once per
// full rate-sized chunk, with one extra empty-input permutation when
// the buffer ends exactly on a chunk boundary. A Sponge is not safe for
// concurrent use; use one instance per logical hash computation.
type Sponge struct {
	params Parameters
	buf    []fr.Element
}

// NewSponge creates a new Sponge.
func NewSponge(params Parameters) *Sponge {
	return &Sponge{params: params}
}

// Absorb appends elements to the input buffer.
func (s *Sponge) Absorb(vs ...fr.Element) {
	s.buf = append(s.buf, vs...)
}

// Reset discards all buffered input.
func (s *Sponge) Reset() {
	s.buf = s.buf[:0]
}

// Squeeze hashes the buffered input and returns the digest element.
// The buffer is kept, so repeated calls return the same value.
//
// The state starts from the all-zero initial vector; each full chunk of
// Rate elements feeds one permutation. A buffer whose length is a
// non-zero exact multiple of the rate triggers one trailing permutation
// with an empty chunk, separating it from a mid-chunk ending of equal
// prefix.
func (s *Sponge) Squeeze() fr.Element {
	state := make([]fr.Element, s.params.T())

	exact := len(s.buf) > 0 && len(s.buf)%s.params.Rate() == 0
	for start := 0; start < len(s.buf); start += s.params.Rate() {
		end := min(start+s.params.Rate(), len(s.buf))
		s.params.Permute(state, s.buf[start:end])
	}
	if exact {
		s.params.Permute(state, nil)
	}

	return state[outputSlot]
}
