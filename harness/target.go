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

import "fmt"

// Target designates the actor a termination is aimed at, either directly by
// handle or indirectly by the logical name it is registered under. It is
// resolved once at the start of each operation that consumes it.
type Target struct {
	handle Handle
	name   string
	byName bool
}

// ByHandle targets an actor directly by its handle.
func ByHandle(handle Handle) Target {
	return Target{handle: handle}
}

// ByName targets whichever actor is currently registered under the given
// logical name.
func ByName(name string) Target {
	return Target{name: name, byName: true}
}

// String returns the text representation of the target
func (t Target) String() string {
	if t.byName {
		return fmt.Sprintf("name=%s", t.name)
	}
	return fmt.Sprintf("handle=%s", t.handle)
}
