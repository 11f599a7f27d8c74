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
	"context"
	"fmt"
	"reflect"
	"time"

	"github.com/respawnlab/respawn/errors"
	"github.com/respawnlab/respawn/internal/pause"
)

// VerifyCleanup watches a single key in the shared key/value store across a
// crash/restart cycle. What it expects is driven by WithExpectCleanup
// (default true) and WithExpectRecreate (default false):
//
//   - cleanup expected: poll until the key is absent, failing with
//     errors.ErrCleanupTimeout at the deadline. When recreation is also
//     expected, continue into the recreation wait afterwards.
//   - only recreation expected: skip the removal wait and go straight into
//     the recreation wait.
//   - neither expected: succeed only when the entry is still present, and
//     fail with errors.ErrEntryUnexpectedlyRemoved otherwise.
//
// The recreation wait succeeds once the key holds an entry that is not
// identical to the one captured at entry. Observing the exact initial entry
// fails immediately with errors.ErrEntryNotCleanedUp: the entry was never
// actually removed, so recreation cannot be distinguished from "never
// changed". An absent entry keeps the wait polling until the deadline, then
// fails with errors.ErrRecreationTimeout.
//
// The call fails with errors.ErrStoreNotFound when no store was configured
// on the harness or the store reports itself unreachable.
func (h *Harness) VerifyCleanup(ctx context.Context, key string, opts ...PollOption) error {
	cfg := newPollConfig(DefaultStoreTimeout).apply(opts...)
	if cfg.timeout <= 0 {
		return errors.ErrInvalidTimeout
	}
	if cfg.interval <= 0 {
		return errors.ErrInvalidInterval
	}

	store := h.store
	if store == nil || !store.Exists() {
		return errors.ErrStoreNotFound
	}

	initial, initialFound := store.Lookup(key)

	switch {
	case cfg.expectCleanup:
		if err := h.awaitRemoval(ctx, store, key, cfg); err != nil {
			return err
		}
		if !cfg.expectRecreate {
			return nil
		}
		return h.awaitRecreation(ctx, store, key, initial, initialFound, cfg)
	case cfg.expectRecreate:
		return h.awaitRecreation(ctx, store, key, initial, initialFound, cfg)
	default:
		if !initialFound {
			return fmt.Errorf("store key %q: %w", key, errors.ErrEntryUnexpectedlyRemoved)
		}
		h.logger.Debugf("store key %s still present, as expected", key)
		return nil
	}
}

func (h *Harness) awaitRemoval(ctx context.Context, store Store, key string, cfg *pollConfig) error {
	deadline := time.Now().Add(cfg.timeout)
	for {
		if _, found := store.Lookup(key); !found {
			h.logger.Debugf("store key %s cleaned up", key)
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("store key %q: %w", key, errors.ErrCleanupTimeout)
		}
		if err := pause.Context(ctx, cfg.interval); err != nil {
			return err
		}
	}
}

func (h *Harness) awaitRecreation(ctx context.Context, store Store, key string, initial any, initialFound bool, cfg *pollConfig) error {
	deadline := time.Now().Add(cfg.timeout)
	for {
		current, found := store.Lookup(key)
		if found {
			if initialFound && identical(current, initial) {
				return fmt.Errorf("store key %q: %w", key, errors.ErrEntryNotCleanedUp)
			}
			h.logger.Debugf("store key %s recreated", key)
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("store key %q: %w", key, errors.ErrRecreationTimeout)
		}
		if err := pause.Context(ctx, cfg.interval); err != nil {
			return err
		}
	}
}

// identical reports whether two store lookup results are the same entry.
// The unit of observation is identity of the lookup result, not deep
// equality: comparable values compare with ==, reference kinds compare by
// the referenced object.
func identical(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) {
		return false
	}
	if ta.Comparable() {
		return a == b
	}
	switch ta.Kind() {
	case reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
	default:
		return false
	}
}
