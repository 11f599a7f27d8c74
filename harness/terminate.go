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

	"github.com/respawnlab/respawn/errors"
)

// Terminate issues a termination request for the given target. It is
// fire-and-forget: success means the request was issued, not that the actor
// has died.
//
// When the target is a logical name, the name is resolved first; an
// unresolved name fails with errors.ErrActorNotFound and performs no further
// action. A resolved handle is recorded in the identity tracking store as the
// pre-crash baseline for subsequent AwaitRecovery calls.
//
// Any supervisory link the caller holds to the target is severed before the
// termination request is issued, so the caller's own execution is never
// interrupted by the target's death. A missing link is a no-op.
func (h *Harness) Terminate(ctx context.Context, target Target, opts ...TerminateOption) error {
	cfg := &terminateConfig{signal: SignalGraceful}
	for _, opt := range opts {
		opt.Apply(cfg)
	}

	handle := target.handle
	if target.byName {
		resolved, ok := h.runtime.Resolve(target.name)
		if !ok {
			h.logger.Debugf("cannot terminate (%s): name did not resolve", target)
			return errors.ErrActorNotFound
		}
		h.tracker.record(target.name, resolved)
		handle = resolved
	}

	// the unlink must happen before the termination request goes out
	for _, linked := range h.runtime.Links() {
		if linked == handle {
			h.runtime.Unlink(handle)
			break
		}
	}

	h.logger.Debugf("terminating actor (%s) with %s signal", target, cfg.signal)
	return h.runtime.Terminate(ctx, handle, cfg.signal)
}
