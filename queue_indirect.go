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

type indirectNode struct {
	next atomic.Pointer[indirectNode]
	val  uintptr
}

// QueueIndirect is an unbounded MPSC queue for uintptr values.
//
// QueueIndirect passes indices or handles instead of full objects.
// This is useful for buffer pools, object pools, or any index-based
// data structure.
type QueueIndirect struct {
	_      pad
	head   atomic.Pointer[indirectNode]
	_      pad
	tail   *indirectNode
	_      pad
	length atomix.Int64
	_      pad
	pool   *sync.Pool
}

// NewIndirect creates an empty unbounded MPSC queue for uintptr values.
func NewIndirect() *QueueIndirect {
	return newQueueIndirect(Options{})
}

func newQueueIndirect(opts Options) *QueueIndirect {
	q := &QueueIndirect{}
	if opts.recycle {
		q.pool = &sync.Pool{New: func() any {
			return new(indirectNode)
		}}
	}
	stub := &indirectNode{}
	q.head.Store(stub)
	q.tail = stub
	return q
}

// Enqueue adds a value to the queue (multiple producers safe).
// The error result is always nil.
func (q *QueueIndirect) Enqueue(elem uintptr) error {
	n := q.newNode()
	n.val = elem

	prev := q.head.Swap(n)
	prev.next.Store(n)

	q.length.Add(1)
	return nil
}

func (q *QueueIndirect) poll() (uintptr, pollResult) {
	tail := q.tail
	next := tail.next.Load()

	if next != nil {
		q.tail = next
		elem := next.val
		next.val = 0
		q.retire(tail)
		q.length.Add(-1)
		return elem, pollData
	}

	if q.head.Load() == tail {
		return 0, pollEmpty
	}
	return 0, pollInconsistent
}

// Dequeue removes and returns the oldest value (single consumer only).
// Returns (0, ErrWouldBlock) if the queue is empty. An in-flight
// enqueue is waited out with a cooperative spin, never reported as
// empty.
func (q *QueueIndirect) Dequeue() (uintptr, error) {
	elem, res := q.poll()
	switch res {
	case pollData:
		return elem, nil
	case pollEmpty:
		return 0, ErrWouldBlock
	}

	sw := spin.Wait{}
	for {
		sw.Once()
		elem, res = q.poll()
		switch res {
		case pollData:
			return elem, nil
		case pollEmpty:
			panic("mpsc: empty after in-flight enqueue was observed")
		}
	}
}

// IsEmpty reports whether the queue appears empty (single consumer only).
// Advisory; see Queue.IsEmpty.
func (q *QueueIndirect) IsEmpty() bool {
	return q.head.Load() == q.tail
}

// Len returns the approximate number of buffered values. Advisory.
func (q *QueueIndirect) Len() int {
	if n := q.length.Load(); n > 0 {
		return int(n)
	}
	return 0
}

// Drain dequeues and discards values until the queue reports empty,
// returning the number discarded (single consumer only).
func (q *QueueIndirect) Drain() int {
	n := 0
	for {
		if _, err := q.Dequeue(); err != nil {
			return n
		}
		n++
	}
}

func (q *QueueIndirect) newNode() *indirectNode {
	if q.pool != nil {
		return q.pool.Get().(*indirectNode)
	}
	return new(indirectNode)
}

func (q *QueueIndirect) retire(n *indirectNode) {
	if q.pool == nil {
		return
	}
	n.next.Store(nil)
	q.pool.Put(n)
}
