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
	"time"

	"github.com/flowchartsman/retry"
	"github.com/google/uuid"
	"go.uber.org/atomic"

	"github.com/respawnlab/respawn/errors"
	"github.com/respawnlab/respawn/harness"
	"github.com/respawnlab/respawn/internal/pause"
	"github.com/respawnlab/respawn/internal/syncmap"
	"github.com/respawnlab/respawn/log"
)

// DefaultRestartDelay is the pause between an actor's death and its respawn
// when no delay is configured on the runtime.
const DefaultRestartDelay = 10 * time.Millisecond

// actorState is the runtime's view of one live actor instantiation.
type actorState struct {
	name         string
	handle       harness.Handle
	trapGraceful bool
	restart      bool
	metadata     any
}

// Runtime is a small supervised in-memory actor runtime. Spawned actors hold
// no behavior; the runtime only models the lifecycle the harness cares
// about: registration under a logical name, graceful-signal trapping, forced
// termination, and supervised respawn under a fresh handle.
type Runtime struct {
	directory    *Directory
	logger       log.Logger
	restartDelay time.Duration

	actors  *syncmap.SyncMap[harness.Handle, *actorState]
	names   *syncmap.SyncMap[string, harness.Handle]
	links   *syncmap.SyncMap[harness.Handle, struct{}]
	started *atomic.Bool
	wg      sync.WaitGroup
}

// enforce compilation error
var _ harness.Runtime = (*Runtime)(nil)

// RuntimeOption is the interface that applies a Runtime option.
type RuntimeOption interface {
	// Apply sets the option value of a Runtime.
	Apply(r *Runtime)
}

// enforce compilation error
var _ RuntimeOption = RuntimeOptionFunc(nil)

// RuntimeOptionFunc implements the RuntimeOption interface.
type RuntimeOptionFunc func(r *Runtime)

// Apply applies the option to the given Runtime
func (f RuntimeOptionFunc) Apply(r *Runtime) {
	f(r)
}

// WithRestartDelay sets the pause between an actor's death and its respawn.
func WithRestartDelay(delay time.Duration) RuntimeOption {
	return RuntimeOptionFunc(func(r *Runtime) {
		r.restartDelay = delay
	})
}

// WithLogger sets the runtime logger
func WithLogger(logger log.Logger) RuntimeOption {
	return RuntimeOptionFunc(func(r *Runtime) {
		r.logger = logger
	})
}

// NewRuntime creates a started runtime that registers its actors in the
// given directory.
func NewRuntime(directory *Directory, opts ...RuntimeOption) *Runtime {
	r := &Runtime{
		directory:    directory,
		logger:       log.DiscardLogger,
		restartDelay: DefaultRestartDelay,
		actors:       syncmap.New[harness.Handle, *actorState](),
		names:        syncmap.New[string, harness.Handle](),
		links:        syncmap.New[harness.Handle, struct{}](),
		started:      atomic.NewBool(true),
	}
	for _, opt := range opts {
		opt.Apply(r)
	}
	return r
}

// SpawnOption is the interface that applies a spawn option.
type SpawnOption interface {
	// Apply sets the option value of an actor being spawned.
	Apply(state *actorState)
}

// enforce compilation error
var _ SpawnOption = SpawnOptionFunc(nil)

// SpawnOptionFunc implements the SpawnOption interface.
type SpawnOptionFunc func(state *actorState)

// Apply applies the option to the actor being spawned
func (f SpawnOptionFunc) Apply(state *actorState) {
	f(state)
}

// WithTrapGraceful makes the actor intercept graceful termination notices
// and keep running. A forced termination still ends it.
func WithTrapGraceful() SpawnOption {
	return SpawnOptionFunc(func(state *actorState) {
		state.trapGraceful = true
	})
}

// WithRestart makes the runtime respawn the actor under a fresh handle after
// it dies.
func WithRestart() SpawnOption {
	return SpawnOptionFunc(func(state *actorState) {
		state.restart = true
	})
}

// WithMetadata attaches metadata to the actor's directory registration.
func WithMetadata(metadata any) SpawnOption {
	return SpawnOptionFunc(func(state *actorState) {
		state.metadata = metadata
	})
}

// Spawn registers a new actor instantiation under the given logical name and
// returns its handle. At most one live handle may be registered under a name
// at any instant.
func (r *Runtime) Spawn(name string, opts ...SpawnOption) (harness.Handle, error) {
	if !r.started.Load() {
		return harness.NoHandle, errors.ErrRuntimeStopped
	}
	state := &actorState{name: name}
	for _, opt := range opts {
		opt.Apply(state)
	}
	state.handle = newHandle()
	if !r.register(state) {
		return harness.NoHandle, errors.ErrAlreadyRegistered
	}
	r.logger.Debugf("spawned %s as %s", name, state.handle)
	return state.handle, nil
}

// Terminate issues a termination request for the given handle. A graceful
// signal sent to an actor that traps it is absorbed; any other signal kills
// the actor, deregisters it, and schedules a respawn when the actor was
// spawned with WithRestart.
func (r *Runtime) Terminate(_ context.Context, handle harness.Handle, signal harness.Signal) error {
	if !r.started.Load() {
		return errors.ErrRuntimeStopped
	}
	state, ok := r.actors.Get(handle)
	if !ok {
		return errors.ErrActorNotFound
	}
	if signal == harness.SignalGraceful && state.trapGraceful {
		r.logger.Debugf("%s trapped the %s signal and keeps running", state.name, signal)
		return nil
	}

	r.actors.Delete(handle)
	r.names.DeleteIf(state.name, func(current harness.Handle) bool { return current == handle })
	r.directory.Deregister(state.name, handle)
	r.links.Delete(handle)
	r.logger.Debugf("%s (%s) terminated with %s signal", state.name, handle, signal)

	if state.restart {
		r.wg.Add(1)
		go r.respawn(state)
	}
	return nil
}

// respawn re-registers the actor under a fresh handle after the restart
// delay. Registration is retried because the old name binding may linger
// briefly when kills and respawns of the same name interleave.
func (r *Runtime) respawn(state *actorState) {
	defer r.wg.Done()
	pause.Pause(r.restartDelay)
	if !r.started.Load() {
		return
	}
	replacement := &actorState{
		name:         state.name,
		handle:       newHandle(),
		trapGraceful: state.trapGraceful,
		restart:      state.restart,
		metadata:     state.metadata,
	}
	retrier := retry.NewRetrier(5, time.Millisecond, 10*time.Millisecond)
	if err := retrier.Run(func() error {
		if !r.register(replacement) {
			return errors.ErrAlreadyRegistered
		}
		return nil
	}); err != nil {
		r.logger.Warnf("could not respawn %s: %v", state.name, err)
		return
	}
	r.logger.Debugf("respawned %s as %s (was %s)", state.name, replacement.handle, state.handle)
}

// register claims the logical name for the given instantiation. The name
// binding is the linearization point: once it is claimed atomically, no
// concurrent registration of the same name can slip in.
func (r *Runtime) register(state *actorState) bool {
	if !r.names.SetIfAbsent(state.name, state.handle) {
		return false
	}
	r.actors.Set(state.handle, state)
	_ = r.directory.Register(state.name, state.handle, state.metadata)
	return true
}

// Resolve returns the handle currently registered under the logical name.
func (r *Runtime) Resolve(name string) (harness.Handle, bool) {
	return r.names.Get(name)
}

// IsAlive reports whether the handle refers to a live actor.
func (r *Runtime) IsAlive(handle harness.Handle) bool {
	_, ok := r.actors.Get(handle)
	return ok
}

// Link records a supervisory link from the calling process to the handle.
func (r *Runtime) Link(handle harness.Handle) {
	r.links.Set(handle, struct{}{})
}

// Unlink severs the supervisory link to the handle. A missing link is a no-op.
func (r *Runtime) Unlink(handle harness.Handle) {
	r.links.Delete(handle)
}

// Links returns the handles the calling process holds supervisory links to.
func (r *Runtime) Links() []harness.Handle {
	return r.links.Keys()
}

// Stop stops the runtime and waits for in-flight respawns to settle.
// Subsequent spawns and terminations fail with ErrRuntimeStopped.
func (r *Runtime) Stop() {
	r.started.Store(false)
	r.wg.Wait()
}

func newHandle() harness.Handle {
	return harness.Handle(uuid.NewString())
}
