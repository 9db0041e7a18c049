// Package ivc implements the recursive state model of the IVC step
// circuit: canonical on-circuit representations of both folding tracks,
// the fixed absorb ordering that binds them into one transcript, and
// the assembly of a step's public input from the raw folding entities.
package ivc

import "github.com/consensys/gnark-crypto/ecc/bn254/fr"

// RandomOracle consumes native field elements in a fixed order. The
// Poseidon sponge and its in-circuit chip both satisfy it, so one
// absorb walk over the state serves the prover and the verifier
// circuit alike.
type RandomOracle interface {
	Absorb(vs ...fr.Element)
}

// Collector is a RandomOracle that records the absorbed stream. Tests
// use it to pin the transcript ordering without hashing.
type Collector struct {
	// Elements is the absorbed stream in order.
	Elements []fr.Element
}

// Absorb appends elements to the recorded stream.
func (c *Collector) Absorb(vs ...fr.Element) {
	c.Elements = append(c.Elements, vs...)
}
