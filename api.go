package shaid

import (
	"encoding/binary"
	"encoding/hex"
	"time"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.
// This file contains the accumulation API and the renderings of a digest. A Digest implements
// io.Writer, io.ByteWriter and io.StringWriter, but not hash.Hash: it cannot be reset.

const (
	// Size is the length of a full digest in bytes.
	Size = 20
	// Size128 is the length of a truncated digest in bytes.
	Size128 = 16
	// BlockSize is the number of bytes consumed by each compression.
	BlockSize = 64
)

// Digest accumulates bytes and can be asked for the hash of everything written so far, any
// number of times, without disturbing further writes. A Digest must not be used by more than
// one goroutine at a time.
type Digest struct {
	h     state
	x     [BlockSize]byte
	nx    int
	order binary.ByteOrder
}

// New returns a Digest that packs integers least-significant byte first.
func New() *Digest { return NewOrdered(binary.LittleEndian) }

// NewOrdered returns a Digest that packs integers in the given byte order.
func NewOrdered(order binary.ByteOrder) *Digest {
	if order == nil {
		panic("shaid: NewOrdered: nil byte order")
	}
	return &Digest{h: initial, order: order}
}

func (d *Digest) Size() int { return Size }

func (d *Digest) BlockSize() int { return BlockSize }

// WriteByte is the only path by which a Digest's state changes. It always returns nil.
func (d *Digest) WriteByte(c byte) error {
	d.x[d.nx] = c
	if d.nx++; d.nx == BlockSize {
		d.h.compress(&d.x)
		d.nx = 0
	}
	return nil
}

func (d *Digest) Write(buf []byte) (int, error) {
	for _, c := range buf {
		d.WriteByte(c)
	}
	return len(buf), nil
}

func (d *Digest) WriteString(s string) (int, error) {
	for i := 0; i < len(s); i++ {
		d.WriteByte(s[i])
	}
	return len(s), nil
}

func (d *Digest) WriteUint16(v uint16) {
	var b [2]byte
	d.order.PutUint16(b[:], v)
	d.Write(b[:])
}

func (d *Digest) WriteUint32(v uint32) {
	var b [4]byte
	d.order.PutUint32(b[:], v)
	d.Write(b[:])
}

func (d *Digest) WriteUint64(v uint64) {
	var b [8]byte
	d.order.PutUint64(b[:], v)
	d.Write(b[:])
}

// WriteNow accumulates the wall clock as nanoseconds since the Unix epoch.
func (d *Digest) WriteNow() { d.WriteUint64(uint64(time.Now().UnixNano())) }

// Words5 returns the hash of all bytes written so far. Pending bytes are zero-padded to a full
// block and compressed into a copy of the running state; the Digest itself is left untouched.
func (d *Digest) Words5() [5]uint32 {
	if d.nx == 0 {
		return d.h
	}
	sum, pad := d.h, d.x
	for i := d.nx; i < BlockSize; i++ {
		pad[i] = 0 /* Bytes past nx may be left over from an earlier block. */
	}
	sum.compress(&pad)
	return sum
}

// Words4 returns the first four words of Words5.
func (d *Digest) Words4() [4]uint32 {
	s := d.Words5()
	return [4]uint32{s[0], s[1], s[2], s[3]}
}

// Sum appends the big-endian bytes of Words5 to buf.
func (d *Digest) Sum(buf []byte) []byte {
	s := d.Words5()
	for _, w := range s {
		buf = binary.BigEndian.AppendUint32(buf, w)
	}
	return buf
}

// Hex renders the full 160-bit digest as 40 lowercase hexadecimal characters.
func (d *Digest) Hex() string {
	var b [Size]byte
	return hex.EncodeToString(d.Sum(b[:0]))
}

// Hex128 renders the first 128 bits of the digest as 32 lowercase hexadecimal characters.
func (d *Digest) Hex128() string {
	var b [Size]byte
	return hex.EncodeToString(d.Sum(b[:0])[:Size128])
}

// Identifier renders the first 128 bits of the digest grouped 8-4-4-4-12 by hyphens.
func (d *Digest) Identifier() string {
	var b [Size]byte
	sum := d.Sum(b[:0])

	var out [36]byte
	hex.Encode(out[0:8], sum[0:4])
	out[8] = '-'
	hex.Encode(out[9:13], sum[4:6])
	out[13] = '-'
	hex.Encode(out[14:18], sum[6:8])
	out[18] = '-'
	hex.Encode(out[19:23], sum[8:10])
	out[23] = '-'
	hex.Encode(out[24:36], sum[10:16])
	return string(out[:])
}
