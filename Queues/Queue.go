// Package Queues has a fixed capacity FIFO queue over a circular array. It isn't safe for concurrent use.
package Queues

import "fmt"

type Queue[T any] interface {
	Push(item T) error
	Pop() (T, error)
	Peek() (T, error)
	Empty() bool
}

type ArrayQueue[T any] interface {
	Queue[T]
	Clear()
	Size() uint
	Cap() uint
}

type EmptyQueueError struct {
}

func (e *EmptyQueueError) Error() string {
	return "Queue is Empty: cannot Pop."
}

type FullQueueError struct {
	Cap uint
}

func (e *FullQueueError) Error() string {
	return fmt.Sprintf("Queue is Full: cannot Push beyond %d items.", e.Cap)
}
