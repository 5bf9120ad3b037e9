// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mpsc

import "unsafe"

// Producer is the interface for enqueueing elements.
//
// The producer side is the multi-goroutine-safe half of an MPSC queue:
// hand a Producer to each value source and keep the Consumer on the
// single draining goroutine. The element is passed by pointer to avoid
// copying large structs; the queue stores a copy of the pointed-to
// value, so the original can be modified after Enqueue returns.
type Producer[T any] interface {
	// Enqueue adds an element to the queue (multiple goroutines safe).
	// The queue is unbounded, so the returned error is always nil; the
	// signature exists for interchangeability with bounded producers.
	Enqueue(elem *T) error
}

// Consumer is the interface for dequeueing elements.
//
// Exactly one goroutine at a time may act as the consumer. Nothing in
// the queue enforces this; violating it corrupts the consumer position
// and is undefined behavior.
type Consumer[T any] interface {
	// Dequeue removes and returns the oldest element.
	// Returns (zero-value, ErrWouldBlock) if the queue is empty.
	Dequeue() (T, error)
}

// ProducerPtr enqueues unsafe.Pointer values (multiple goroutines safe).
type ProducerPtr interface {
	// Enqueue adds a pointer to the queue. The returned error is
	// always nil.
	Enqueue(elem unsafe.Pointer) error
}

// ConsumerPtr dequeues unsafe.Pointer values (single goroutine only).
type ConsumerPtr interface {
	// Dequeue removes and returns the oldest pointer.
	// Returns (nil, ErrWouldBlock) if the queue is empty.
	Dequeue() (unsafe.Pointer, error)
}

// ProducerIndirect enqueues uintptr values (multiple goroutines safe).
type ProducerIndirect interface {
	// Enqueue adds a value to the queue. The returned error is
	// always nil.
	Enqueue(elem uintptr) error
}

// ConsumerIndirect dequeues uintptr values (single goroutine only).
type ConsumerIndirect interface {
	// Dequeue removes and returns the oldest value.
	// Returns (0, ErrWouldBlock) if the queue is empty.
	Dequeue() (uintptr, error)
}
