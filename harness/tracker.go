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

package harness

import (
	"sync"

	"github.com/respawnlab/respawn/internal/syncmap"
)

// tracker is the identity tracking store: the mapping from logical name to
// the handle observed immediately before a crash was induced. Entries are
// whole-entry overwrites (last writer wins) and persist until overwritten.
//
// The underlying map is created lazily on first use. Initialization is
// idempotent and safe to invoke concurrently; concurrent initializers share
// the one map.
type tracker struct {
	once    sync.Once
	entries *syncmap.SyncMap[string, Handle]
}

func (t *tracker) init() *syncmap.SyncMap[string, Handle] {
	t.once.Do(func() {
		t.entries = syncmap.New[string, Handle]()
	})
	return t.entries
}

func (t *tracker) record(name string, handle Handle) {
	t.init().Set(name, handle)
}

func (t *tracker) lookup(name string) (Handle, bool) {
	return t.init().Get(name)
}

// Track records the given handle as the pre-crash identity for the logical
// name, overwriting any handle previously recorded for it. Terminate does
// this automatically when targeting by name; Track lets a caller seed the
// baseline directly.
func (h *Harness) Track(name string, handle Handle) {
	h.tracker.record(name, handle)
}

// TrackedHandle returns the most recently recorded pre-crash handle for the
// logical name, or false when none was ever recorded.
func (h *Harness) TrackedHandle(name string) (Handle, bool) {
	return h.tracker.lookup(name)
}
