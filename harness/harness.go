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

// Package harness verifies that a supervised actor recovers correctly after
// being forcibly terminated. It does not implement supervision itself: an
// external runtime provides actor lifecycle management, and the harness
// provides the logic to terminate a target safely, detect that a new actor
// instance has taken the place of a terminated one, and verify that the
// name-registration directory and the shared key/value store are consistently
// cleaned up and repopulated across the crash/restart cycle.
//
// The harness is a best-effort, bounded-latency test oracle: it cannot detect
// recovery faster than its configured polling interval.
package harness

import (
	"time"

	"github.com/respawnlab/respawn/errors"
	"github.com/respawnlab/respawn/log"
)

const (
	// DefaultInterval is the delay between two consecutive polls of the
	// directory or store inside a bounded wait.
	DefaultInterval = 50 * time.Millisecond
	// DefaultRecoveryTimeout bounds AwaitRecovery when no timeout is given.
	DefaultRecoveryTimeout = time.Second
	// DefaultDirectoryTimeout bounds AwaitCleanDirectory when no timeout is given.
	DefaultDirectoryTimeout = 2 * time.Second
	// DefaultStoreTimeout bounds VerifyCleanup when no timeout is given.
	DefaultStoreTimeout = time.Second
)

// Harness drives crash-and-recovery verification against an actor runtime,
// a name-registration directory, and optionally a shared key/value store.
//
// A Harness owns the identity tracking store that remembers the handle
// observed immediately before a crash was induced. It is safe for use by
// multiple goroutines: every verification call owns only its local loop
// state plus read access to the tracking store.
type Harness struct {
	runtime   Runtime
	directory Directory
	store     Store
	tracker   *tracker
	logger    log.Logger
}

// Option is the interface that applies a Harness option.
type Option interface {
	// Apply sets the Option value of a Harness.
	Apply(h *Harness)
}

// enforce compilation error
var _ Option = OptionFunc(nil)

// OptionFunc implements the Option interface.
type OptionFunc func(h *Harness)

// Apply applies the option to the given Harness
func (f OptionFunc) Apply(h *Harness) {
	f(h)
}

// WithLogger sets the harness logger
func WithLogger(logger log.Logger) Option {
	return OptionFunc(func(h *Harness) {
		h.logger = logger
	})
}

// WithStore sets the shared key/value store observed by VerifyCleanup.
// Without it, VerifyCleanup fails with ErrStoreNotFound.
func WithStore(store Store) Option {
	return OptionFunc(func(h *Harness) {
		h.store = store
	})
}

// New creates a Harness bound to the given runtime and directory. Both are
// required; the store is optional and supplied via WithStore.
func New(runtime Runtime, directory Directory, opts ...Option) (*Harness, error) {
	if runtime == nil {
		return nil, errors.ErrRuntimeRequired
	}
	if directory == nil {
		return nil, errors.ErrDirectoryRequired
	}
	h := &Harness{
		runtime:   runtime,
		directory: directory,
		tracker:   &tracker{},
		logger:    log.DiscardLogger,
	}
	for _, opt := range opts {
		opt.Apply(h)
	}
	return h, nil
}

// Runtime returns the runtime the harness drives.
func (h *Harness) Runtime() Runtime {
	return h.runtime
}

// Directory returns the directory the harness observes.
func (h *Harness) Directory() Directory {
	return h.directory
}

// Store returns the configured key/value store, if any.
func (h *Harness) Store() Store {
	return h.store
}
