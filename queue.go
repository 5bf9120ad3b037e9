// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mpsc

import (
	"sync"
	"sync/atomic"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// node is one slot in the intrusive chain. The stub node allocated at
// construction never carries a value; every other node carries exactly
// one value from linkage until consumption.
type node[T any] struct {
	next atomic.Pointer[node[T]]
	val  T
}

// Queue is an unbounded multi-producer single-consumer queue built as
// an intrusive singly linked list.
//
// Producers hand off elements with a single atomic swap on the
// insertion frontier, so Enqueue never waits on another producer.
// The consumer walks the chain from its private tail position.
//
// Memory: one node (two words + element) per buffered element, plus
// one permanent sentinel node.
type Queue[T any] struct {
	_      pad
	head   atomic.Pointer[node[T]] // Insertion frontier (producers swap)
	_      pad
	tail   *node[T] // Consumed sentinel (single consumer only)
	_      pad
	length atomix.Int64 // Advisory element count
	_      pad
	pool   *sync.Pool // Node recycling, nil when disabled
}

// NewQueue creates an empty unbounded MPSC queue.
func NewQueue[T any]() *Queue[T] {
	return newQueue[T](Options{})
}

func newQueue[T any](opts Options) *Queue[T] {
	q := &Queue[T]{}
	if opts.recycle {
		q.pool = &sync.Pool{New: func() any {
			return new(node[T])
		}}
	}
	stub := &node[T]{}
	q.head.Store(stub)
	q.tail = stub
	return q
}

// Enqueue adds an element to the queue (multiple producers safe).
//
// Enqueue is wait-free apart from node allocation: one atomic swap
// claims the insertion slot and one store publishes the node. The
// error result is always nil; the signature matches the bounded lfq
// producers so both queue families satisfy the same Producer shape.
func (q *Queue[T]) Enqueue(elem *T) error {
	n := q.newNode()
	n.val = *elem

	// Claim the insertion frontier. The swap orders this node's
	// contents before any later read through head.
	prev := q.head.Swap(n)

	// Publish. Until this store lands the consumer sees prev as the
	// end of the chain even though head has already moved on.
	prev.next.Store(n)

	q.length.Add(1)
	return nil
}

// pollResult classifies one consumer attempt.
type pollResult int

const (
	pollData pollResult = iota
	pollEmpty
	pollInconsistent
)

// poll advances the consumer by at most one node.
//
// pollInconsistent means an enqueue has swapped head but not yet
// linked its node: the element exists, it is just not reachable from
// tail yet.
func (q *Queue[T]) poll() (T, pollResult) {
	tail := q.tail
	next := tail.next.Load()

	if next != nil {
		q.tail = next
		elem := next.val
		var zero T
		next.val = zero
		q.retire(tail)
		q.length.Add(-1)
		return elem, pollData
	}

	var zero T
	if q.head.Load() == tail {
		return zero, pollEmpty
	}
	return zero, pollInconsistent
}

// Dequeue removes and returns the oldest element (single consumer only).
// Returns (zero-value, ErrWouldBlock) if the queue is empty.
//
// When Dequeue observes an in-flight enqueue that has claimed the
// insertion slot but not yet linked its node, it spins with a
// cooperative wait until the racing enqueue completes rather than
// returning a false empty.
func (q *Queue[T]) Dequeue() (T, error) {
	elem, res := q.poll()
	switch res {
	case pollData:
		return elem, nil
	case pollEmpty:
		return elem, ErrWouldBlock
	}

	sw := spin.Wait{}
	for {
		sw.Once()
		elem, res = q.poll()
		switch res {
		case pollData:
			return elem, nil
		case pollEmpty:
			// The chain cannot shrink back to empty while this
			// consumer holds tail still; a second concurrent
			// consumer is the usual culprit.
			panic("mpsc: empty after in-flight enqueue was observed")
		}
	}
}

// IsEmpty reports whether the queue appears empty (single consumer only).
//
// The result is advisory: a concurrent enqueue can make it stale
// before it returns. True emptiness is only confirmed by Dequeue
// returning ErrWouldBlock.
func (q *Queue[T]) IsEmpty() bool {
	return q.head.Load() == q.tail
}

// Len returns the approximate number of buffered elements.
//
// The counter trails the linking protocol, so Len is advisory in the
// same way IsEmpty is. It never substitutes for a Dequeue result.
func (q *Queue[T]) Len() int {
	if n := q.length.Load(); n > 0 {
		return int(n)
	}
	return 0
}

// Drain dequeues and discards elements until the queue reports empty,
// returning the number discarded (single consumer only).
//
// Drain is the teardown path: call it after producers have stopped to
// release every buffered element. The sentinel node stays in place and
// the queue remains usable; the garbage collector reclaims the chain
// together with the queue itself.
func (q *Queue[T]) Drain() int {
	n := 0
	for {
		if _, err := q.Dequeue(); err != nil {
			return n
		}
		n++
	}
}

func (q *Queue[T]) newNode() *node[T] {
	if q.pool != nil {
		return q.pool.Get().(*node[T])
	}
	return new(node[T])
}

// retire releases a node that tail has moved past. Only fully
// unlinked nodes reach here, so pool reuse cannot alias a live slot.
func (q *Queue[T]) retire(n *node[T]) {
	if q.pool == nil {
		return
	}
	n.next.Store(nil)
	q.pool.Put(n)
}
