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

import "time"

// pollConfig carries the per-call settings of the bounded polling
// operations. Each operation seeds it with its own defaults before applying
// the caller's options.
type pollConfig struct {
	timeout        time.Duration
	interval       time.Duration
	prior          Handle
	priorSet       bool
	expectCleanup  bool
	expectRecreate bool
}

// PollOption is the interface that applies a per-call polling option.
type PollOption interface {
	// Apply sets the option value of a poll configuration.
	Apply(cfg *pollConfig)
}

// enforce compilation error
var _ PollOption = PollOptionFunc(nil)

// PollOptionFunc implements the PollOption interface.
type PollOptionFunc func(cfg *pollConfig)

// Apply applies the option to the given poll configuration
func (f PollOptionFunc) Apply(cfg *pollConfig) {
	f(cfg)
}

// WithTimeout bounds the whole wait. The deadline is computed once at entry
// and re-checked on every poll iteration.
func WithTimeout(timeout time.Duration) PollOption {
	return PollOptionFunc(func(cfg *pollConfig) {
		cfg.timeout = timeout
	})
}

// WithInterval sets the delay between two consecutive polls.
func WithInterval(interval time.Duration) PollOption {
	return PollOptionFunc(func(cfg *pollConfig) {
		cfg.interval = interval
	})
}

// WithPriorHandle supplies the pre-crash baseline handle explicitly instead
// of resolving it from the identity tracking store.
func WithPriorHandle(handle Handle) PollOption {
	return PollOptionFunc(func(cfg *pollConfig) {
		cfg.prior = handle
		cfg.priorSet = true
	})
}

// WithExpectCleanup controls whether VerifyCleanup waits for the store entry
// to be removed. It defaults to true.
func WithExpectCleanup(expect bool) PollOption {
	return PollOptionFunc(func(cfg *pollConfig) {
		cfg.expectCleanup = expect
	})
}

// WithExpectRecreate controls whether VerifyCleanup additionally waits for a
// fresh entry to appear under the key. It defaults to false.
func WithExpectRecreate(expect bool) PollOption {
	return PollOptionFunc(func(cfg *pollConfig) {
		cfg.expectRecreate = expect
	})
}

// TerminateOption is the interface that applies a Terminate option.
type TerminateOption interface {
	// Apply sets the option value of a terminate configuration.
	Apply(cfg *terminateConfig)
}

type terminateConfig struct {
	signal Signal
}

// enforce compilation error
var _ TerminateOption = TerminateOptionFunc(nil)

// TerminateOptionFunc implements the TerminateOption interface.
type TerminateOptionFunc func(cfg *terminateConfig)

// Apply applies the option to the given terminate configuration
func (f TerminateOptionFunc) Apply(cfg *terminateConfig) {
	f(cfg)
}

// WithSignal sets the termination signal. It defaults to SignalGraceful.
func WithSignal(signal Signal) TerminateOption {
	return TerminateOptionFunc(func(cfg *terminateConfig) {
		cfg.signal = signal
	})
}

func newPollConfig(timeout time.Duration) *pollConfig {
	return &pollConfig{
		timeout:       timeout,
		interval:      DefaultInterval,
		expectCleanup: true,
	}
}

func (cfg *pollConfig) apply(opts ...PollOption) *pollConfig {
	for _, opt := range opts {
		opt.Apply(cfg)
	}
	return cfg
}
