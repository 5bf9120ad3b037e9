// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mpsc

import (
	"sync"
	"sync/atomic"
	"unsafe"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

type ptrNode struct {
	next atomic.Pointer[ptrNode]
	val  unsafe.Pointer
}

// QueuePtr is an unbounded MPSC queue for unsafe.Pointer values.
//
// QueuePtr passes pointers directly without copying the pointed-to
// object. The producer transfers ownership to the consumer: after
// enqueueing, the producer must not access the object.
type QueuePtr struct {
	_      pad
	head   atomic.Pointer[ptrNode]
	_      pad
	tail   *ptrNode
	_      pad
	length atomix.Int64
	_      pad
	pool   *sync.Pool
}

// NewPtr creates an empty unbounded MPSC queue for unsafe.Pointer values.
func NewPtr() *QueuePtr {
	return newQueuePtr(Options{})
}

func newQueuePtr(opts Options) *QueuePtr {
	q := &QueuePtr{}
	if opts.recycle {
		q.pool = &sync.Pool{New: func() any {
			return new(ptrNode)
		}}
	}
	stub := &ptrNode{}
	q.head.Store(stub)
	q.tail = stub
	return q
}

// Enqueue adds a pointer to the queue (multiple producers safe).
// The error result is always nil.
func (q *QueuePtr) Enqueue(elem unsafe.Pointer) error {
	n := q.newNode()
	n.val = elem

	prev := q.head.Swap(n)
	prev.next.Store(n)

	q.length.Add(1)
	return nil
}

func (q *QueuePtr) poll() (unsafe.Pointer, pollResult) {
	tail := q.tail
	next := tail.next.Load()

	if next != nil {
		q.tail = next
		elem := next.val
		next.val = nil
		q.retire(tail)
		q.length.Add(-1)
		return elem, pollData
	}

	if q.head.Load() == tail {
		return nil, pollEmpty
	}
	return nil, pollInconsistent
}

// Dequeue removes and returns the oldest pointer (single consumer only).
// Returns (nil, ErrWouldBlock) if the queue is empty. An in-flight
// enqueue is waited out with a cooperative spin, never reported as
// empty.
func (q *QueuePtr) Dequeue() (unsafe.Pointer, error) {
	elem, res := q.poll()
	switch res {
	case pollData:
		return elem, nil
	case pollEmpty:
		return nil, ErrWouldBlock
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
func (q *QueuePtr) IsEmpty() bool {
	return q.head.Load() == q.tail
}

// Len returns the approximate number of buffered pointers. Advisory.
func (q *QueuePtr) Len() int {
	if n := q.length.Load(); n > 0 {
		return int(n)
	}
	return 0
}

// Drain dequeues and discards pointers until the queue reports empty,
// returning the number discarded (single consumer only).
func (q *QueuePtr) Drain() int {
	n := 0
	for {
		if _, err := q.Dequeue(); err != nil {
			return n
		}
		n++
	}
}

func (q *QueuePtr) newNode() *ptrNode {
	if q.pool != nil {
		return q.pool.Get().(*ptrNode)
	}
	return new(ptrNode)
}

func (q *QueuePtr) retire(n *ptrNode) {
	if q.pool == nil {
		return
	}
	n.next.Store(nil)
	q.pool.Put(n)
}
