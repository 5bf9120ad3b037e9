// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package mpsc provides an unbounded multi-producer single-consumer
// FIFO queue.
//
// The queue is an intrusive singly linked list: producers link new
// nodes with a single atomic swap on the insertion frontier, the one
// consumer walks the chain from its private position. Enqueue is
// wait-free apart from node allocation (no producer ever waits on
// another producer); Dequeue is lock-free with a bounded internal
// retry against in-flight enqueues.
//
// It is the unbounded companion to the bounded ring queues in
// [code.hybscloud.com/lfq]: use lfq when you need backpressure, mpsc
// when producers must never block or fail.
//
// # Quick Start
//
//	q := mpsc.NewQueue[Event]()
//
//	// Any number of producers
//	go func() {
//	    ev := Event{...}
//	    q.Enqueue(&ev) // never fails, never blocks
//	}()
//
//	// Exactly one consumer
//	for {
//	    ev, err := q.Dequeue()
//	    if err != nil {
//	        break // empty
//	    }
//	    process(ev)
//	}
//
// # Common Patterns
//
// Actor mailbox / event aggregation:
//
//	// Multiple event sources → single processor
//	q := mpsc.NewQueue[Event]()
//
//	for sensor := range slices.Values(sensors) {
//	    go func(s Sensor) {
//	        for ev := range s.Events() {
//	            q.Enqueue(&ev)
//	        }
//	    }(sensor)
//	}
//
//	// Single consumer with adaptive idling
//	go func() {
//	    backoff := iox.Backoff{}
//	    for {
//	        ev, err := q.Dequeue()
//	        if err != nil {
//	            backoff.Wait()
//	            continue
//	        }
//	        backoff.Reset()
//	        aggregate(ev)
//	    }
//	}()
//
// Handle free list (Indirect flavor):
//
//	pool := make([][]byte, 1024)
//	free := mpsc.NewIndirect()
//	for i := range pool {
//	    pool[i] = make([]byte, 4096)
//	    free.Enqueue(uintptr(i))
//	}
//
//	// Workers return buffers from any goroutine
//	free.Enqueue(idx)
//
//	// The allocator (single consumer) hands them out
//	idx, err := free.Dequeue()
//
// # Queue Flavors
//
// Three flavors share the same protocol:
//
//	NewQueue[T]() - Generic type-safe queue for any type
//	NewIndirect() - Queue for uintptr values (pool indices, handles)
//	NewPtr()      - Queue for unsafe.Pointer (zero-copy pointer passing)
//
// The [New] builder configures node recycling and selects the flavor:
//
//	q := mpsc.Build[Event](mpsc.New().Recycle())
//	q := mpsc.New().BuildIndirect()
//	q := mpsc.New().Recycle().BuildPtr()
//
// With Recycle, consumed nodes are reused through a sync.Pool instead
// of being released to the garbage collector, reducing allocation
// pressure on hot paths.
//
// # The Single-Consumer Contract
//
// Enqueue is safe from any number of goroutines. Dequeue, IsEmpty and
// Drain must be called by exactly one goroutine at a time. Nothing in
// the queue detects a second consumer; running one corrupts the
// consumer position and causes lost or duplicated elements. The
// contract is the caller's to uphold, exactly as lfq's SPSC/MPSC
// constraints are.
//
// # Ordering Guarantees
//
// Elements enqueued by one goroutine are dequeued in that goroutine's
// enqueue order. Across producers, chain order is whatever order their
// swaps on the insertion frontier take effect; no fairness between
// producers is guaranteed.
//
// # The Inconsistent Window
//
// An enqueue is two steps: swap the frontier, then link the previous
// node to the new one. Between the two steps the new element exists
// but is not yet reachable from the consumer's side. A Dequeue that
// lands in this window waits it out with a cooperative spin
// ([code.hybscloud.com/spin]) instead of reporting a false empty: the
// wait is bounded by the racing producer finishing its second step.
// ErrWouldBlock therefore always means genuinely empty at the moment
// of the check.
//
// Observing empty after the window was entered is impossible under the
// contract and panics rather than being masked, since it means queue
// state diverged from the linking protocol (typically a second
// consumer).
//
// # Error Handling
//
// Dequeue returns [ErrWouldBlock] when the queue is empty. The error
// is sourced from [code.hybscloud.com/iox] for ecosystem consistency;
// it is a control flow signal, not a failure. Enqueue never returns an
// error: the queue is unbounded and allocation failure is fatal at the
// runtime level, not a recoverable condition.
//
//	mpsc.IsWouldBlock(err)  // true if queue empty
//	mpsc.IsSemantic(err)    // true if control flow signal
//	mpsc.IsNonFailure(err)  // true if nil or ErrWouldBlock
//
// There is no blocking wait surface. Callers that need to sleep on an
// empty queue bound their own retry loop, typically with iox.Backoff.
//
// # Length and Emptiness
//
// IsEmpty and Len are advisory snapshots: both can be stale by the
// time they return because producers never stop. Len is maintained as
// an [code.hybscloud.com/atomix] counter that trails the linking
// protocol. True emptiness is only confirmed by Dequeue returning
// ErrWouldBlock.
//
// # Teardown
//
// Drain dequeues and discards everything buffered; call it from the
// consumer after producers have stopped. The queue holds no resources
// beyond its nodes, so simply dropping the last reference is also
// fine: the garbage collector reclaims the chain, sentinel included.
//
// # Race Detection
//
// The hot-path links use sync/atomic, which the race detector tracks.
// The advisory length counter and the test-suite counters use atomix,
// whose operations look like plain memory accesses to the detector and
// produce false positives. Concurrency tests are excluded from race
// runs via the RaceEnabled gate, as in lfq.
//
// # Dependencies
//
// This package uses [code.hybscloud.com/iox] for semantic errors,
// [code.hybscloud.com/atomix] for the advisory length counter, and
// [code.hybscloud.com/spin] for the cooperative retry wait. The node
// links use sync/atomic typed pointers because the protocol's one
// synchronization point is a typed pointer exchange.
package mpsc
