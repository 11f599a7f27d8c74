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
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"
	"go.uber.org/goleak"

	"github.com/respawnlab/respawn/errors"
	"github.com/respawnlab/respawn/harness"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestSpawnRegisters(t *testing.T) {
	directory := NewDirectory()
	runtime := NewRuntime(directory)
	defer runtime.Stop()

	handle, err := runtime.Spawn("worker", WithMetadata("meta"))
	require.NoError(t, err)
	require.NotEqual(t, harness.NoHandle, handle)

	resolved, ok := runtime.Resolve("worker")
	require.True(t, ok)
	assert.Equal(t, handle, resolved)
	assert.True(t, runtime.IsAlive(handle))

	entries := directory.Lookup("worker")
	require.Len(t, entries, 1)
	assert.Equal(t, handle, entries[0].Handle)
	assert.Equal(t, "meta", entries[0].Metadata)
}

func TestSpawnDuplicateName(t *testing.T) {
	runtime := NewRuntime(NewDirectory())
	defer runtime.Stop()

	_, err := runtime.Spawn("worker")
	require.NoError(t, err)
	_, err = runtime.Spawn("worker")
	require.ErrorIs(t, err, errors.ErrAlreadyRegistered)
}

func TestConcurrentSpawnSameName(t *testing.T) {
	directory := NewDirectory()
	runtime := NewRuntime(directory)
	defer runtime.Stop()

	// exactly one of the racing spawns may claim the name
	wins := atomic.NewInt32(0)
	wg := sync.WaitGroup{}
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := runtime.Spawn("worker"); err == nil {
				wins.Inc()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins.Load())
	require.Len(t, directory.Lookup("worker"), 1)
	_, ok := runtime.Resolve("worker")
	assert.True(t, ok)
}

func TestGracefulSignalTrapped(t *testing.T) {
	runtime := NewRuntime(NewDirectory())
	defer runtime.Stop()

	handle, err := runtime.Spawn("worker", WithTrapGraceful())
	require.NoError(t, err)

	require.NoError(t, runtime.Terminate(context.TODO(), handle, harness.SignalGraceful))
	assert.True(t, runtime.IsAlive(handle))

	// a forced termination ends the actor regardless of trapping
	require.NoError(t, runtime.Terminate(context.TODO(), handle, harness.SignalForce))
	assert.False(t, runtime.IsAlive(handle))
	_, ok := runtime.Resolve("worker")
	assert.False(t, ok)
}

func TestTerminateUnknownHandle(t *testing.T) {
	runtime := NewRuntime(NewDirectory())
	defer runtime.Stop()
	err := runtime.Terminate(context.TODO(), "unknown", harness.SignalForce)
	require.ErrorIs(t, err, errors.ErrActorNotFound)
}

func TestRestartAssignsFreshHandle(t *testing.T) {
	directory := NewDirectory()
	runtime := NewRuntime(directory, WithRestartDelay(10*time.Millisecond))
	defer runtime.Stop()

	old, err := runtime.Spawn("worker", WithRestart())
	require.NoError(t, err)
	require.NoError(t, runtime.Terminate(context.TODO(), old, harness.SignalForce))

	// immediately after the kill the name resolves to nothing
	_, ok := runtime.Resolve("worker")
	assert.False(t, ok)

	require.Eventually(t, func() bool {
		current, ok := runtime.Resolve("worker")
		return ok && current != old
	}, time.Second, 5*time.Millisecond)

	assert.False(t, runtime.IsAlive(old))
	entries := directory.Lookup("worker")
	require.Len(t, entries, 1)
	assert.NotEqual(t, old, entries[0].Handle)
}

func TestLinks(t *testing.T) {
	runtime := NewRuntime(NewDirectory())
	defer runtime.Stop()

	handle, err := runtime.Spawn("worker")
	require.NoError(t, err)

	runtime.Link(handle)
	assert.Equal(t, []harness.Handle{handle}, runtime.Links())

	runtime.Unlink(handle)
	assert.Empty(t, runtime.Links())

	// unlinking an unknown handle is a no-op
	runtime.Unlink("unknown")
}

func TestStoppedRuntime(t *testing.T) {
	runtime := NewRuntime(NewDirectory())
	handle, err := runtime.Spawn("worker")
	require.NoError(t, err)

	runtime.Stop()

	_, err = runtime.Spawn("other")
	require.ErrorIs(t, err, errors.ErrRuntimeStopped)
	require.ErrorIs(t, runtime.Terminate(context.TODO(), handle, harness.SignalForce), errors.ErrRuntimeStopped)
}

func TestStopCancelsPendingRespawn(t *testing.T) {
	runtime := NewRuntime(NewDirectory(), WithRestartDelay(50*time.Millisecond))

	handle, err := runtime.Spawn("worker", WithRestart())
	require.NoError(t, err)
	require.NoError(t, runtime.Terminate(context.TODO(), handle, harness.SignalForce))

	// stop before the respawn delay elapses; the respawn must not land
	runtime.Stop()
	_, ok := runtime.Resolve("worker")
	assert.False(t, ok)
}
