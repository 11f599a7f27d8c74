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

// Package memory provides in-memory implementations of the harness
// collaborators: a name-registration directory, a shared key/value store,
// and a small supervised runtime. They exist so the harness can be exercised
// end to end without a real actor system behind it.
package memory

import (
	"sync"

	"github.com/respawnlab/respawn/harness"
)

// Directory is an in-memory name-registration directory. Multiple entries
// may be registered under the same key; the registration policy is up to
// the caller.
type Directory struct {
	mu      sync.RWMutex
	entries map[string][]harness.Entry
}

// enforce compilation error
var _ harness.Directory = (*Directory)(nil)

// NewDirectory creates an empty in-memory directory.
func NewDirectory() *Directory {
	return &Directory{
		entries: make(map[string][]harness.Entry),
	}
}

// Register adds an entry under the given key.
func (d *Directory) Register(key string, handle harness.Handle, metadata any) error {
	d.mu.Lock()
	d.entries[key] = append(d.entries[key], harness.Entry{Handle: handle, Metadata: metadata})
	d.mu.Unlock()
	return nil
}

// Deregister removes every entry under the key that carries the given handle.
// Unknown keys and handles are no-ops.
func (d *Directory) Deregister(key string, handle harness.Handle) {
	d.mu.Lock()
	defer d.mu.Unlock()
	kept := d.entries[key][:0]
	for _, entry := range d.entries[key] {
		if entry.Handle != handle {
			kept = append(kept, entry)
		}
	}
	if len(kept) == 0 {
		delete(d.entries, key)
		return
	}
	d.entries[key] = kept
}

// Lookup returns a copy of the entries currently registered under the key.
func (d *Directory) Lookup(key string) []harness.Entry {
	d.mu.RLock()
	defer d.mu.RUnlock()
	entries := d.entries[key]
	out := make([]harness.Entry, len(entries))
	copy(out, entries)
	return out
}
