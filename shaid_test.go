package shaid

import (
	"crypto/sha1"
	"encoding/binary"
	"encoding/hex"
	"testing"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

// mdPad applies the padding a standard SHA-1 would add, which shaid leaves to its callers.
func mdPad(msg []byte) []byte {
	out := append(append([]byte{}, msg...), 0x80)
	for len(out)%BlockSize != BlockSize-8 {
		out = append(out, 0)
	}
	return binary.BigEndian.AppendUint64(out, uint64(len(msg))<<3)
}

func TestCompressZeroBlock(t *testing.T) {
	s, blk := initial, [BlockSize]byte{}
	s.compress(&blk)
	want := [5]uint32{0x92b404e5, 0x56588ced, 0x6c1acd4e, 0xbf053f68, 0x09f73a93}
	if s != want {
		t.Fatalf("compress(zero block) = %08x, want %08x", s, want)
	}
}

func TestCompressMatchesSHA1(t *testing.T) {
	t.Parallel()
	long := make([]byte, 1000)
	for i := range long {
		long[i] = byte(i * 7)
	}
	for _, msg := range [][]byte{
		nil,
		[]byte("abc"),
		[]byte("abcdbcdecdefdefgefghfghighijhijkijkljklmklmnlmnomnopnopq"),
		long,
	} {
		d := New()
		d.Write(mdPad(msg))
		sum := sha1.Sum(msg)
		if got, want := d.Hex(), hex.EncodeToString(sum[:]); got != want {
			t.Errorf("padded %d-byte message: got %s, want %s", len(msg), got, want)
		}
	}
}

func TestCompressLeavesInputAlone(t *testing.T) {
	var blk [BlockSize]byte
	for i := range blk {
		blk[i] = byte(i)
	}
	before := blk
	s := initial
	s.compress(&blk)
	if blk != before {
		t.Fatal("compress modified its block")
	}
}
