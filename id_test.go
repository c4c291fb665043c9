package shaid

import (
	"math/big"
	"math/rand"
	"strings"
	"sync"
	"testing"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

type fixedRandom uint64

func (r fixedRandom) Uint64() uint64 { return uint64(r) }

func TestNewIDShape(t *testing.T) {
	for i := 0; i < 100; i++ {
		if id := NewID(); !idPattern.MatchString(id) {
			t.Fatalf("NewID() = %q has the wrong shape", id)
		}
	}
}

func TestCounterAlone(t *testing.T) {
	/* Every other source held constant. */
	base := seed{self: 1, task: 2, local: 3, random: 4, tick: 5}
	seen := map[string]uint64{}
	for n := uint64(0); n < 10000; n++ {
		s := base
		s.count = n
		id := s.into(New())
		if prev, ok := seen[id]; ok {
			t.Fatalf("counter %d and %d both gave %s", prev, n, id)
		}
		seen[id] = n
	}
}

func TestGeneratorAdvancesCounterOnce(t *testing.T) {
	counter := new(AtomicCounter)
	g := NewGenerator(counter, fixedRandom(42), func() uint64 { return 7 })
	for i := 0; i < 5; i++ {
		g.NewID()
	}
	if next := counter.Next(); next != 5 {
		t.Errorf("counter at %d after 5 identifiers, want 5", next)
	}
}

func TestAtomicCounterWraps(t *testing.T) {
	var c AtomicCounter
	c.n.Store(^uint64(0))
	if a, b := c.Next(), c.Next(); a != ^uint64(0) || b != 0 {
		t.Errorf("Next() = %d, %d; want max then 0", a, b)
	}
}

func TestNewIDConcurrent(t *testing.T) {
	const workers, each = 8, 500
	g := NewGenerator(new(AtomicCounter), fixedRandom(0), func() uint64 { return 0 })
	var mu sync.Mutex
	var wg sync.WaitGroup
	seen := map[string]bool{}
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			ids := make([]string, each)
			for i := range ids {
				ids[i] = g.NewID()
			}
			mu.Lock()
			defer mu.Unlock()
			for _, id := range ids {
				seen[id] = true
			}
		}()
	}
	wg.Wait()
	if len(seen) != workers*each {
		t.Errorf("%d distinct identifiers out of %d", len(seen), workers*each)
	}
}

func TestChaChaSourceDeterministic(t *testing.T) {
	key, nonce := make([]byte, 32), make([]byte, 24)
	a, err := NewChaChaSourceKey(key, nonce)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := NewChaChaSourceKey(key, nonce)
	draws := map[uint64]bool{}
	for i := 0; i < 200; i++ { /* Crosses a keystream refill. */
		x, y := a.Uint64(), b.Uint64()
		if x != y {
			t.Fatalf("draw %d: %x != %x", i, x, y)
		}
		draws[x] = true
	}
	if len(draws) < 199 {
		t.Errorf("only %d distinct draws out of 200", len(draws))
	}
	if _, err := NewChaChaSourceKey(key[:5], nonce); err == nil {
		t.Error("short key accepted")
	}
}

func TestGoroutineHash(t *testing.T) {
	here := goroutineHash()
	if here != goroutineHash() {
		t.Fatal("goroutine hash is unstable")
	}
	there := make(chan uint64)
	go func() { there <- goroutineHash() }()
	if here == <-there {
		t.Error("two goroutines hashed alike")
	}
}

// meanBias is the average distance of each bit's frequency from one half, in percent.
func meanBias(ids []string) float64 {
	const width = 128
	tally := make([]int, width)
	for _, id := range ids {
		n, _ := new(big.Int).SetString(strings.ReplaceAll(id, "-", ""), 16)
		for i := range tally {
			tally[i] += int(n.Bit(i))
		}
	}
	var total float64
	for _, v := range tally {
		dev := float64(v) - float64(len(ids))/2
		if dev < 0 {
			dev = -dev
		}
		total += dev
	}
	return total / width / (float64(len(ids)) / 2) * 100
}

func TestIdentifierBias(t *testing.T) {
	g := NewGenerator(new(AtomicCounter), fixedRandom(rand.Uint64()), func() uint64 { return 0 })
	ids := make([]string, 5000)
	for i := range ids {
		ids[i] = g.NewID()
	}
	if bias := meanBias(ids); bias > 5 {
		t.Errorf("mean bit bias %5.3f%%", bias)
	}
}
