package Queues

// Queue is a FIFO queue.
type Queue[T any] interface {
	// Push item to the back.
	Push(item T)
	// Pop the item at the front. Returns *EmptyQueueError if the queue is empty.
	Pop() (T, error)
	// Peek at the front; the zero value if the queue is empty.
	Peek() T
	Empty() bool
}

// ArrayQueue is a Queue backed by a growable circular array.
type ArrayQueue[T any] interface {
	Queue[T]
	// Shrink the underlying array to fit the items.
	Shrink()
	// Clear the queue, keeping the underlying array.
	Clear()
	Size() uint
	resize(newLen uint)
}

type EmptyQueueError struct {
}

func (e *EmptyQueueError) Error() string {
	return "Queue is Empty: cannot Pop."
}
