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

// Package errors defines the failure taxonomy of the respawn harness.
//
// Every failure a harness operation can produce is a plain sentinel value:
// callers are expected to inspect results with errors.Is inside test
// assertions, so nothing in this package wraps, panics, or carries state.
package errors

import "errors"

var (
	// ErrActorNotFound is returned when a logical name does not resolve to a
	// live actor handle at call time. The failure is fatal to that call and
	// is never retried internally.
	ErrActorNotFound = errors.New("actor not found")

	// ErrCleanupTimeout indicates that stale directory or store entries were
	// still observable when the verification deadline elapsed. It signals
	// "condition not yet true within bound" and is always logically possible;
	// it is not a defect of the harness itself.
	ErrCleanupTimeout = errors.New("cleanup not observed before deadline")

	// ErrRecreationTimeout indicates that a store entry was removed but no
	// replacement entry appeared before the verification deadline elapsed.
	ErrRecreationTimeout = errors.New("recreation not observed before deadline")

	// ErrEntryUnexpectedlyRemoved is returned when a store entry that was
	// expected to survive a crash/restart cycle is gone. This is an
	// assertion-style failure: the system under test violated an invariant.
	ErrEntryUnexpectedlyRemoved = errors.New("store entry unexpectedly removed")

	// ErrEntryNotCleanedUp is returned when a store entry expected to be
	// replaced still holds the exact pre-crash value, making "recreated"
	// indistinguishable from "never changed". Assertion-style failure.
	ErrEntryNotCleanedUp = errors.New("store entry was never cleaned up")

	// ErrStoreNotFound indicates the shared key/value store is unreachable or
	// was never configured on the harness. This is a misconfiguration, not a
	// timing condition.
	ErrStoreNotFound = errors.New("store is not available")

	// ErrInvalidTimeout is returned when a verification timeout is less than
	// or equal to zero.
	ErrInvalidTimeout = errors.New("invalid timeout")

	// ErrInvalidInterval is returned when a polling interval is less than or
	// equal to zero.
	ErrInvalidInterval = errors.New("invalid poll interval")

	// ErrRuntimeRequired is returned when a harness is created without an
	// actor runtime.
	ErrRuntimeRequired = errors.New("actor runtime is required")

	// ErrDirectoryRequired is returned when a harness is created without a
	// name-registration directory.
	ErrDirectoryRequired = errors.New("name directory is required")

	// ErrRuntimeStopped is returned by runtime implementations when an
	// operation is attempted after the runtime has been stopped.
	ErrRuntimeStopped = errors.New("runtime is not running")

	// ErrAlreadyRegistered is returned when an actor is spawned under a
	// logical name that already resolves to a live handle.
	ErrAlreadyRegistered = errors.New("name already registered")
)
