package shaid

import (
	"github.com/minio/sha256-simd"
	"github.com/zeebo/blake3"
	"github.com/zeebo/xxh3"
	"testing"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

func BenchmarkShaid(b *testing.B) {
	d, msg := New(), make([]byte, b.N)
	b.SetBytes(1)
	b.ReportAllocs()
	b.ResetTimer()
	d.Write(msg)
	d.Hex()
}

func BenchmarkCompress(b *testing.B) {
	s, blk := initial, [BlockSize]byte{}
	b.SetBytes(BlockSize)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.compress(&blk)
	}
}

func BenchmarkPeek(b *testing.B) {
	d := New()
	d.WriteString("pending")
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		d.Words5()
	}
}

func BenchmarkNewID(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		NewID()
	}
}

func BenchmarkSHA256(b *testing.B) {
	h, msg := sha256.New(), make([]byte, 1<<10)
	b.SetBytes(1 << 10)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		h.Write(msg)
		h.Sum(nil)
	}
}

func BenchmarkBlake3(b *testing.B) {
	h, msg := blake3.New(), make([]byte, 1<<10)
	b.SetBytes(1 << 10)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		h.Write(msg)
		h.Sum(nil)
	}
	b.StopTimer()
	h.Reset()
}

func BenchmarkXXH3(b *testing.B) {
	h := xxh3.New()
	msg := make([]byte, b.N)
	b.SetBytes(1)
	b.ReportAllocs()
	b.ResetTimer()
	h.Write(msg)
	h.Sum(nil)
	b.StopTimer()
	h.Reset()
}
