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
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestAwaitRecoveryPresenceSufficesWithoutBaseline(t *testing.T) {
	h, runtime, _ := newTestHarness(t)
	runtime.setResolution("worker", "h1")

	start := time.Now()
	recovered := h.AwaitRecovery(context.TODO(), "worker")
	assert.True(t, recovered)
	// the very first poll must decide; no interval sleep happens
	assert.Less(t, time.Since(start), DefaultInterval)
}

func TestAwaitRecoveryBaselineRequiresChange(t *testing.T) {
	h, runtime, _ := newTestHarness(t)
	runtime.setResolution("worker", "h1")

	start := time.Now()
	recovered := h.AwaitRecovery(context.TODO(), "worker",
		WithPriorHandle("h1"),
		WithTimeout(150*time.Millisecond))
	elapsed := time.Since(start)

	assert.False(t, recovered)
	assert.GreaterOrEqual(t, elapsed, 150*time.Millisecond)
}

func TestAwaitRecoveryTimeoutBounds(t *testing.T) {
	h, _, _ := newTestHarness(t)

	timeout := 120 * time.Millisecond
	interval := 40 * time.Millisecond
	start := time.Now()
	recovered := h.AwaitRecovery(context.TODO(), "never-registered",
		WithTimeout(timeout),
		WithInterval(interval))
	elapsed := time.Since(start)

	assert.False(t, recovered)
	assert.GreaterOrEqual(t, elapsed, timeout)
	// one interval of slack past the deadline, plus scheduler noise
	assert.Less(t, elapsed, timeout+interval+100*time.Millisecond)
}

func TestAwaitRecoveryDetectsReplacement(t *testing.T) {
	h, runtime, _ := newTestHarness(t)
	runtime.setResolution("w", "h1")
	h.Track("w", "h1")

	timer := time.AfterFunc(80*time.Millisecond, func() {
		runtime.setResolution("w", "h2")
	})
	defer timer.Stop()

	start := time.Now()
	recovered := h.AwaitRecovery(context.TODO(), "w")
	elapsed := time.Since(start)

	assert.True(t, recovered)
	assert.GreaterOrEqual(t, elapsed, 50*time.Millisecond)
	assert.Less(t, elapsed, time.Second)
}

func TestAwaitRecoveryNeverResolves(t *testing.T) {
	h, _, _ := newTestHarness(t)

	start := time.Now()
	recovered := h.AwaitRecovery(context.TODO(), "z", WithTimeout(100*time.Millisecond))
	elapsed := time.Since(start)

	assert.False(t, recovered)
	assert.GreaterOrEqual(t, elapsed, 100*time.Millisecond)
	assert.Less(t, elapsed, 400*time.Millisecond)
}

func TestAwaitRecoveryTrackedBaselineComesFromStore(t *testing.T) {
	h, runtime, _ := newTestHarness(t)
	h.Track("worker", "h1")
	runtime.setResolution("worker", "h1")

	// the tracked handle is still registered: no recovery
	assert.False(t, h.AwaitRecovery(context.TODO(), "worker", WithTimeout(120*time.Millisecond)))

	runtime.setResolution("worker", "h2")
	assert.True(t, h.AwaitRecovery(context.TODO(), "worker"))
}

func TestAwaitRecoveryGoneThenBack(t *testing.T) {
	h, runtime, _ := newTestHarness(t)
	h.Track("worker", "h1")
	runtime.clearResolution("worker")

	timer := time.AfterFunc(60*time.Millisecond, func() {
		runtime.setResolution("worker", "h2")
	})
	defer timer.Stop()

	assert.True(t, h.AwaitRecovery(context.TODO(), "worker"))
}

func TestAwaitRecoveryCanceledContext(t *testing.T) {
	h, _, _ := newTestHarness(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	recovered := h.AwaitRecovery(ctx, "worker", WithTimeout(5*time.Second))
	assert.False(t, recovered)
	assert.Less(t, time.Since(start), time.Second)
}

func TestAwaitRecoveryConcurrentCallers(t *testing.T) {
	h, runtime, _ := newTestHarness(t)
	h.Track("worker", "h1")
	runtime.setResolution("worker", "h1")

	timer := time.AfterFunc(60*time.Millisecond, func() {
		runtime.setResolution("worker", "h2")
	})
	defer timer.Stop()

	group := new(errgroup.Group)
	for i := 0; i < 5; i++ {
		group.Go(func() error {
			if !h.AwaitRecovery(context.TODO(), "worker") {
				return fmt.Errorf("caller did not observe recovery")
			}
			return nil
		})
	}
	require.NoError(t, group.Wait())
}
