// Package seen remembers identifiers so that repeats can be reported.
package seen

import (
	"encoding/binary"
	"errors"
	"fmt"
	bolt "go.etcd.io/bbolt"
	"sync"
	"time"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

// Set records identifiers. Add reports whether id had been added before.
type Set interface {
	Add(id string) (dup bool, err error)
	Len() (int, error)
	Close() error
}

// Memory is a Set that lives as long as the process.
type Memory struct {
	mu  sync.Mutex
	ids map[string]struct{}
}

func NewMemory() *Memory { return &Memory{ids: map[string]struct{}{}} }

func (m *Memory) Add(id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.ids[id]; ok {
		return true, nil
	}
	m.ids[id] = struct{}{}
	return false, nil
}

func (m *Memory) Len() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.ids), nil
}

func (m *Memory) Close() error { return nil }

var bucket = []byte("ids")

var ErrClosed = errors.New("seen: set is closed")

// Bolt is a Set persisted in a bbolt file, so repeats are caught across runs. Each value is the
// big-endian sequence number under which its identifier was first seen.
type Bolt struct {
	db *bolt.DB
}

func OpenBolt(path string) (*Bolt, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating bucket: %w", err)
	}
	return &Bolt{db: db}, nil
}

func (b *Bolt) Add(id string) (bool, error) {
	if b.db == nil {
		return false, ErrClosed
	}
	var dup bool
	err := b.db.Update(func(tx *bolt.Tx) error {
		bk := tx.Bucket(bucket)
		if bk.Get([]byte(id)) != nil {
			dup = true
			return nil
		}
		seq, err := bk.NextSequence()
		if err != nil {
			return err
		}
		return bk.Put([]byte(id), binary.BigEndian.AppendUint64(nil, seq))
	})
	if err != nil {
		return false, fmt.Errorf("recording %s: %w", id, err)
	}
	return dup, nil
}

func (b *Bolt) Len() (int, error) {
	if b.db == nil {
		return 0, ErrClosed
	}
	var n int
	err := b.db.View(func(tx *bolt.Tx) error {
		n = tx.Bucket(bucket).Stats().KeyN
		return nil
	})
	return n, err
}

func (b *Bolt) Close() error {
	if b.db == nil {
		return nil
	}
	err := b.db.Close()
	b.db = nil
	return err
}
