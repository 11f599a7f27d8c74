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

package memory

import (
	"go.uber.org/atomic"

	"github.com/respawnlab/respawn/errors"
	"github.com/respawnlab/respawn/harness"
	"github.com/respawnlab/respawn/internal/syncmap"
)

// Store is an in-memory shared key/value store.
type Store struct {
	data *syncmap.SyncMap[string, any]
	open *atomic.Bool
}

// enforce compilation error
var _ harness.Store = (*Store)(nil)

// NewStore creates an empty, open in-memory store.
func NewStore() *Store {
	return &Store{
		data: syncmap.New[string, any](),
		open: atomic.NewBool(true),
	}
}

// Insert stores a value under the given key, overwriting any prior value.
func (s *Store) Insert(key string, value any) error {
	if !s.open.Load() {
		return errors.ErrStoreNotFound
	}
	s.data.Set(key, value)
	return nil
}

// Lookup returns the value stored under the given key, if any.
func (s *Store) Lookup(key string) (any, bool) {
	if !s.open.Load() {
		return nil, false
	}
	return s.data.Get(key)
}

// Delete removes the entry stored under the given key.
func (s *Store) Delete(key string) {
	s.data.Delete(key)
}

// Exists reports whether the store is open.
func (s *Store) Exists() bool {
	return s.open.Load()
}

// Close marks the store unreachable. Subsequent lookups find nothing and
// Exists reports false.
func (s *Store) Close() {
	s.open.Store(false)
}
