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

package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectory(t *testing.T) {
	directory := NewDirectory()
	require.Empty(t, directory.Lookup("k"))

	require.NoError(t, directory.Register("k", "h1", nil))
	require.NoError(t, directory.Register("k", "h2", "meta"))

	entries := directory.Lookup("k")
	require.Len(t, entries, 2)

	directory.Deregister("k", "h1")
	entries = directory.Lookup("k")
	require.Len(t, entries, 1)
	assert.Equal(t, "meta", entries[0].Metadata)

	directory.Deregister("k", "h2")
	assert.Empty(t, directory.Lookup("k"))

	// unknown keys and handles are no-ops
	directory.Deregister("missing", "h1")
}

func TestLookupReturnsACopy(t *testing.T) {
	directory := NewDirectory()
	require.NoError(t, directory.Register("k", "h1", nil))

	entries := directory.Lookup("k")
	entries[0].Handle = "mutated"

	fresh := directory.Lookup("k")
	require.Len(t, fresh, 1)
	assert.NotEqual(t, fresh[0].Handle, entries[0].Handle)
}
