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
	"time"

	"github.com/respawnlab/respawn/internal/pause"
)

// AwaitRecovery polls the runtime until a new actor instance has taken over
// the given logical name, and reports whether that happened before the
// deadline.
//
// The pre-crash baseline handle is taken from WithPriorHandle when supplied,
// otherwise from the identity tracking store, otherwise it is unknown. With
// an unknown baseline, presence alone signals recovery: the call returns true
// as soon as the name resolves at all. With a known baseline, the call
// returns true only once the name resolves to a different handle.
//
// The deadline is computed once at entry and re-checked unconditionally on
// every iteration, so a name that never resolves times out rather than
// looping forever. Every non-terminal iteration sleeps exactly one interval;
// the loop never busy-spins. Context cancellation resolves as not-recovered.
func (h *Harness) AwaitRecovery(ctx context.Context, name string, opts ...PollOption) bool {
	cfg := newPollConfig(DefaultRecoveryTimeout).apply(opts...)
	if cfg.interval <= 0 {
		cfg.interval = DefaultInterval
	}

	prior, known := cfg.prior, cfg.priorSet
	if !known {
		prior, known = h.tracker.lookup(name)
	}
	known = known && prior != NoHandle

	deadline := time.Now().Add(cfg.timeout)
	for {
		current, present := h.runtime.Resolve(name)
		switch {
		case time.Now().After(deadline):
			h.logger.Debugf("no recovery observed for %s within %v", name, cfg.timeout)
			return false
		case !known && present:
			h.logger.Debugf("%s is registered (%s), no pre-crash baseline to compare against", name, current)
			return true
		case known && present && current != prior:
			h.logger.Debugf("%s recovered: %s replaced %s", name, current, prior)
			return true
		}
		if pause.Context(ctx, cfg.interval) != nil {
			return false
		}
	}
}
