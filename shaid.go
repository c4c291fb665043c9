// Package shaid hashes with the SHA-1 compression function, lets callers read the digest at any
// point without ending accumulation, and builds likely-unique identifiers from those digests.
package shaid

import (
	"encoding/binary"
	"math/bits"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.
// The compression function below is the SHA-1 block transform. What differs from SHA-1 proper is
// how a digest is taken from a partial block: shaid pads with zeroes only, never with the 0x80
// marker or the message length, so its output matches SHA-1 only for inputs that the caller has
// padded themselves.

const (
	rounds     = 80
	wordsIn    = BlockSize / 4
	init0      = 0x67452301
	init1      = 0xefcdab89
	init2      = 0x98badcfe
	init3      = 0x10325476
	init4      = 0xc3d2e1f0
	k0, k1     = 0x5a827999, 0x6ed9eba1
	k2, k3     = 0x8f1bbcdc, 0xca62c1d6
	idConstant = 0xa1de7a1de7a1de70
)

// state is the running hash. It is an array so that assignment copies it.
type state [5]uint32

var initial = state{init0, init1, init2, init3, init4}

func (s *state) compress(p *[BlockSize]byte) {

	// Initialization
	var w [rounds]uint32
	for i := 0; i < wordsIn; i++ {
		/* Words are big-endian no matter how integers were packed into p. */
		w[i] = binary.BigEndian.Uint32(p[i<<2:])
	}
	for i := wordsIn; i < rounds; i++ {
		w[i] = bits.RotateLeft32(w[i-3]^w[i-8]^w[i-14]^w[i-16], 1)
	}
	a, b, c, d, e := s[0], s[1], s[2], s[3], s[4]

	// Rounds
	for i := 0; i < rounds; i++ {
		var f uint32
		switch i / 20 {
		case 0:
			f = (b&c | ^b&d) + k0
		case 1:
			f = (b ^ c ^ d) + k1
		case 2:
			f = (b&c | b&d | c&d) + k2
		default:
			f = (b ^ c ^ d) + k3
		}
		f += bits.RotateLeft32(a, 5) + e + w[i]
		a, b, c, d, e = f, a, bits.RotateLeft32(b, 30), c, d
	}

	// Fold
	s[0] += a
	s[1] += b
	s[2] += c
	s[3] += d
	s[4] += e
}
