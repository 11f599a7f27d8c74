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

import "context"

// Handle is an opaque identifier for one instantiation of an actor. Two
// handles are equal iff they refer to the exact same instantiation; a
// restarted actor always receives a handle distinct from its predecessor.
// The runtime never reuses a handle.
type Handle string

// NoHandle is the zero Handle. It never identifies a live actor.
const NoHandle Handle = ""

// Signal specifies how an actor is asked to terminate.
type Signal int

const (
	// SignalGraceful is a trappable termination notice. An actor that
	// intercepts termination notices may keep running after receiving it.
	SignalGraceful Signal = iota
	// SignalForce is a non-interceptable termination guaranteed to end the
	// actor regardless of any interception behavior it has installed.
	SignalForce
)

// String returns the text representation of the signal
func (s Signal) String() string {
	if s == SignalForce {
		return "FORCE"
	}
	return "GRACEFUL"
}

// Entry is one registration in a Directory: the registered handle plus
// whatever metadata the registrant attached.
type Entry struct {
	Handle   Handle
	Metadata any
}

// Runtime is the actor runtime the harness drives. The runtime owns actor
// lifecycle (spawn, supervise, restart) and name resolution; the harness only
// consumes it.
type Runtime interface {
	// Terminate issues a termination request for the given handle. It is
	// fire-and-forget: the call returns once the request has been issued,
	// without waiting for the actor to die.
	Terminate(ctx context.Context, handle Handle, signal Signal) error
	// Resolve returns the handle currently registered under the given
	// logical name. A terminated actor's name resolves to nothing until a
	// supervisor re-registers a fresh handle under it.
	Resolve(name string) (Handle, bool)
	// IsAlive reports whether the given handle refers to a live actor.
	IsAlive(handle Handle) bool
	// Links returns the handles the calling process holds supervisory links to.
	Links() []Handle
	// Unlink severs the supervisory link to the given handle. Absence of a
	// link is a no-op.
	Unlink(handle Handle)
}

// Directory is the external name-registration service. Zero, one, or more
// entries may exist per key depending on the registration policy in force.
type Directory interface {
	// Register adds an entry under the given key.
	Register(key string, handle Handle, metadata any) error
	// Lookup returns all entries currently registered under the given key.
	Lookup(key string) []Entry
}

// Store is the shared key/value store whose cleanup behavior the harness
// verifies.
type Store interface {
	// Insert stores a value under the given key, overwriting any prior value.
	Insert(key string, value any) error
	// Lookup returns the value stored under the given key, if any.
	Lookup(key string) (any, bool)
	// Exists reports whether the store itself is reachable and initialized.
	Exists() bool
}
