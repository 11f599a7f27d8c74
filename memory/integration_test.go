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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/respawnlab/respawn/errors"
	"github.com/respawnlab/respawn/harness"
)

// Full crash/restart cycle against the in-memory runtime: terminate by name,
// await the replacement instance, and verify directory cleanup.
func TestCrashAndRecoveryCycle(t *testing.T) {
	ctx := context.TODO()
	directory := NewDirectory()
	runtime := NewRuntime(directory, WithRestartDelay(20*time.Millisecond))
	defer runtime.Stop()

	store := NewStore()
	h, err := harness.New(runtime, directory, harness.WithStore(store))
	require.NoError(t, err)

	old, err := runtime.Spawn("worker", WithRestart())
	require.NoError(t, err)
	runtime.Link(old)
	require.NoError(t, store.Insert("worker:state", "v1"))

	// graceful termination is absorbed when the actor traps it; this one
	// does not trap, so force is not even needed to bring it down
	require.NoError(t, h.Terminate(ctx, harness.ByName("worker"), harness.WithSignal(harness.SignalForce)))

	tracked, ok := h.TrackedHandle("worker")
	require.True(t, ok)
	assert.Equal(t, old, tracked)
	assert.Empty(t, runtime.Links())

	// the directory check snapshots before the respawn lands: the key is
	// empty at this point, so any fresh registration is accepted
	require.NoError(t, h.AwaitCleanDirectory(ctx, "worker"))
	require.True(t, h.AwaitRecovery(ctx, "worker"))

	current, ok := runtime.Resolve("worker")
	require.True(t, ok)
	assert.NotEqual(t, old, current)

	// the state entry survived the crash untouched
	require.NoError(t, h.VerifyCleanup(ctx, "worker:state", harness.WithExpectCleanup(false)))
}

func TestTrappedActorNeverRecovers(t *testing.T) {
	ctx := context.TODO()
	directory := NewDirectory()
	runtime := NewRuntime(directory)
	defer runtime.Stop()

	h, err := harness.New(runtime, directory)
	require.NoError(t, err)

	old, err := runtime.Spawn("stubborn", WithTrapGraceful(), WithRestart())
	require.NoError(t, err)

	// the actor traps the graceful notice and keeps running, so no new
	// instantiation ever takes over the name
	require.NoError(t, h.Terminate(ctx, harness.ByName("stubborn")))
	assert.True(t, runtime.IsAlive(old))
	assert.False(t, h.AwaitRecovery(ctx, "stubborn", harness.WithTimeout(150*time.Millisecond)))
}

func TestTerminateUnknownName(t *testing.T) {
	directory := NewDirectory()
	runtime := NewRuntime(directory)
	defer runtime.Stop()

	h, err := harness.New(runtime, directory)
	require.NoError(t, err)
	require.ErrorIs(t, h.Terminate(context.TODO(), harness.ByName("ghost")), errors.ErrActorNotFound)
}
