/*
 * MIT License
 *
 * Copyright (c) 2022-2025  Arsene Tochemey Gandote
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

// Package persistence provides a durable, file-backed implementation of the
// harness key/value store contract on top of BoltDB.
package persistence

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	bbolt "go.etcd.io/bbolt"
	"go.uber.org/atomic"

	"github.com/respawnlab/respawn/harness"
)

const (
	boltFileMode   os.FileMode = 0o600
	boltBucketName             = "entries"
)

// The short open timeout avoids blocking on locked files.
var defaultBoltOptions = &bbolt.Options{Timeout: time.Second, NoGrowSync: true}

// BoltStore implements harness.Store using go.etcd.io/bbolt for durable
// persistence. Values are JSON-encoded into a single bucket and surfaced by
// Lookup as the encoded string, so the store-cleanup verifier's identity
// comparison degrades to comparing encodings rather than becoming
// meaningless across the encode/decode round trip.
//
// bbolt provides single-writer/multi-reader semantics; only the close state
// needs guarding here.
type BoltStore struct {
	db     *bbolt.DB
	bucket []byte
	path   string
	closed *atomic.Bool
}

// enforce compilation error
var _ harness.Store = (*BoltStore)(nil)

// NewBoltStore opens (or creates) a BoltDB-backed store at the given path.
func NewBoltStore(path string) (*BoltStore, error) {
	optionsCopy := *defaultBoltOptions
	db, err := bbolt.Open(path, boltFileMode, &optionsCopy)
	if err != nil {
		return nil, fmt.Errorf("persistence: opening boltdb: %w", err)
	}

	bucket := []byte(boltBucketName)
	if err := db.Update(func(tx *bbolt.Tx) error {
		_, e := tx.CreateBucketIfNotExists(bucket)
		return e
	}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("persistence: initializing boltdb bucket: %w", err)
	}

	return &BoltStore{db: db, bucket: bucket, path: path, closed: atomic.NewBool(false)}, nil
}

// Insert stores the JSON encoding of the value under the given key,
// overwriting any prior value.
func (s *BoltStore) Insert(key string, value any) error {
	if s.closed.Load() {
		return fmt.Errorf("persistence: store %s is closed", s.path)
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("persistence: encoding value for key %q: %w", key, err)
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(s.bucket).Put([]byte(key), data)
	})
}

// Lookup returns the encoded value stored under the given key, if any.
func (s *BoltStore) Lookup(key string) (any, bool) {
	if s.closed.Load() {
		return nil, false
	}
	var value string
	var found bool
	_ = s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(s.bucket).Get([]byte(key))
		if data != nil {
			value = string(data)
			found = true
		}
		return nil
	})
	if !found {
		return nil, false
	}
	return value, true
}

// Delete removes the entry stored under the given key.
func (s *BoltStore) Delete(key string) error {
	if s.closed.Load() {
		return fmt.Errorf("persistence: store %s is closed", s.path)
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(s.bucket).Delete([]byte(key))
	})
}

// Exists reports whether the store is open and reachable.
func (s *BoltStore) Exists() bool {
	return s != nil && !s.closed.Load()
}

// Close closes the underlying Bolt database. The store is unreachable
// afterwards.
func (s *BoltStore) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	return s.db.Close()
}
