// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mpsc

// Options configures queue creation.
type Options struct {
	// Node recycling through a sync.Pool
	recycle bool
}

// Builder creates queues with fluent configuration.
//
// The direct constructors ([NewQueue], [NewPtr], [NewIndirect]) cover
// the default configuration; the builder exists for the recycling
// knob and for call sites that select the flavor at runtime.
//
// Example:
//
//	// Generic queue with node recycling
//	q := mpsc.Build[Event](mpsc.New().Recycle())
//
//	// Indirect queue for pool indices
//	free := mpsc.New().BuildIndirect()
type Builder struct {
	opts Options
}

// New creates a queue builder.
func New() *Builder {
	return &Builder{}
}

// Recycle enables node recycling through a sync.Pool.
//
// By default every enqueue allocates a fresh node and every consumed
// node is left to the garbage collector. With Recycle, consumed nodes
// are returned to a pool and reused by later enqueues, trading pool
// overhead for allocation pressure. Reuse is safe because the consumer
// retires a node only after its position has been fully passed; no
// producer can still publish into it.
func (b *Builder) Recycle() *Builder {
	b.opts.recycle = true
	return b
}

// Build creates a generic Queue[T] with the configured options.
func Build[T any](b *Builder) *Queue[T] {
	return newQueue[T](b.opts)
}

// BuildPtr creates a QueuePtr with the configured options.
func (b *Builder) BuildPtr() *QueuePtr {
	return newQueuePtr(b.opts)
}

// BuildIndirect creates a QueueIndirect with the configured options.
func (b *Builder) BuildIndirect() *QueueIndirect {
	return newQueueIndirect(b.opts)
}

// pad is cache line padding to prevent false sharing.
type pad [64]byte
