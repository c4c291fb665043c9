package shaid

import (
	"bytes"
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"github.com/aead/chacha20/chacha"
	"github.com/zeebo/xxh3"
	"runtime"
	"sync"
	"sync/atomic"
	"unsafe"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.
// Identifiers are digests of a handful of weak entropy sources. Only the counter guarantees that
// two identifiers from one process differ; everything else is best-effort mixing.

// Counter hands out a distinct value on every call.
type Counter interface{ Next() uint64 }

// Random draws uniformly over the full uint64 range. It must be safe for concurrent use.
type Random interface{ Uint64() uint64 }

// Clock returns a high-resolution tick count.
type Clock func() uint64

// AtomicCounter starts at 0 and wraps on overflow.
type AtomicCounter struct{ n atomic.Uint64 }

func (c *AtomicCounter) Next() uint64 { return c.n.Add(1) - 1 }

// ChaChaSource draws from a ChaCha20 keystream.
type ChaChaSource struct {
	mu     sync.Mutex
	stream *chacha.Cipher
	buf    [512]byte
	off    int
}

// NewChaChaSource keys a ChaChaSource from crypto/rand.
func NewChaChaSource() (*ChaChaSource, error) {
	var seed [chacha.KeySize + chacha.XNonceSize]byte
	if _, err := rand.Read(seed[:]); err != nil {
		return nil, fmt.Errorf("shaid: seeding random source: %w", err)
	}
	return NewChaChaSourceKey(seed[:chacha.KeySize], seed[chacha.KeySize:])
}

// NewChaChaSourceKey builds a deterministic ChaChaSource; key must be 32 bytes and nonce 8, 12
// or 24 bytes.
func NewChaChaSourceKey(key, nonce []byte) (*ChaChaSource, error) {
	stream, err := chacha.NewCipher(nonce, key, 20)
	if err != nil {
		return nil, fmt.Errorf("shaid: keying random source: %w", err)
	}
	s := &ChaChaSource{stream: stream}
	s.off = len(s.buf) /* The keystream is produced on first draw. */
	return s, nil
}

func (s *ChaChaSource) Uint64() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.off == len(s.buf) {
		for i := range s.buf {
			s.buf[i] = 0
		}
		s.stream.XORKeyStream(s.buf[:], s.buf[:])
		s.off = 0
	}
	v := binary.LittleEndian.Uint64(s.buf[s.off:])
	s.off += 8
	return v
}

// Generator owns the process-wide inputs of identifier generation.
type Generator struct {
	counter Counter
	random  Random
	clock   Clock
}

func NewGenerator(counter Counter, random Random, clock Clock) *Generator {
	if counter == nil || random == nil || clock == nil {
		panic("shaid: NewGenerator: nil source")
	}
	return &Generator{counter, random, clock}
}

var defaultGenerator = sync.OnceValue(func() *Generator {
	random, err := NewChaChaSource()
	if err != nil {
		panic(err)
	}
	return NewGenerator(new(AtomicCounter), random, ticks)
})

// NewID returns a fresh identifier from the process-wide Generator.
func NewID() string { return defaultGenerator().NewID() }

// NewID advances the counter exactly once and returns the hyphenated 128-bit digest of the
// mixed entropy sources.
func (g *Generator) NewID() string {
	var local byte
	d := New()
	return seed{
		self:   uint64(uintptr(unsafe.Pointer(d))),
		task:   goroutineHash(),
		local:  uint64(uintptr(unsafe.Pointer(&local))),
		count:  g.counter.Next(),
		random: g.random.Uint64(),
		tick:   g.clock(),
	}.into(d)
}

type seed struct {
	self, task, local, count, random, tick uint64
}

func (s seed) into(d *Digest) string {
	d.WriteUint64(idConstant)
	d.WriteUint64(s.self)
	d.WriteUint64(s.task)
	d.WriteUint64(s.local)
	d.WriteUint64(s.count)
	d.WriteUint64(s.random)
	d.WriteUint64(s.tick)
	return d.Identifier()
}

// goroutineHash hashes the "goroutine N" header that runtime.Stack prints for the caller.
func goroutineHash() uint64 {
	var buf [64]byte
	header := buf[:runtime.Stack(buf[:], false)]
	if i := bytes.IndexByte(header, '['); i > 0 {
		header = header[:i]
	}
	return xxh3.Hash(header)
}
