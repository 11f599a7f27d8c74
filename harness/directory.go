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
	"time"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/respawnlab/respawn/errors"
	"github.com/respawnlab/respawn/internal/pause"
)

// AwaitCleanDirectory watches the set of handles registered under the given
// directory key across a crash/restart cycle and returns nil once the
// pre-existing registrations have vanished and a fresh registration has
// appeared.
//
// The initial handle set is captured once at entry. A restart is only clean
// when both sides hold: every initial handle is gone from the directory AND
// at least one entry is present. Checking one side alone would pass even when
// the directory leaks stale entries or never re-registers. When the initial
// set was empty, any registration is accepted as fresh.
//
// When the deadline elapses first, the call fails with
// errors.ErrCleanupTimeout.
func (h *Harness) AwaitCleanDirectory(ctx context.Context, key string, opts ...PollOption) error {
	cfg := newPollConfig(DefaultDirectoryTimeout).apply(opts...)
	if cfg.timeout <= 0 {
		return errors.ErrInvalidTimeout
	}
	if cfg.interval <= 0 {
		return errors.ErrInvalidInterval
	}

	initial := handleSet(h.directory.Lookup(key))
	deadline := time.Now().Add(cfg.timeout)
	for {
		current := handleSet(h.directory.Lookup(key))
		oldGone := initial.Intersect(current).Cardinality() == 0
		newPresent := current.Cardinality() > 0
		if (initial.Cardinality() == 0 && newPresent) || (oldGone && newPresent) {
			h.logger.Debugf("directory key %s is clean: %d fresh registration(s)", key, current.Cardinality())
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("directory key %q: %w", key, errors.ErrCleanupTimeout)
		}
		if err := pause.Context(ctx, cfg.interval); err != nil {
			return err
		}
	}
}

// handleSet projects directory entries onto the set of registered handles,
// the verifier's unit of observation.
func handleSet(entries []Entry) mapset.Set[Handle] {
	set := mapset.NewSet[Handle]()
	for _, entry := range entries {
		set.Add(entry.Handle)
	}
	return set
}
