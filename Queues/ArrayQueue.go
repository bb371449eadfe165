package Queues

// circArrQ keeps one slot of content empty so that head==tail always means empty and tail+1==head means full.
type circArrQ[T any] struct {
	head, tail uint
	content    []T
}

// NewArrayQueue creates a queue holding up to capacity items. It never grows.
func NewArrayQueue[T any](capacity uint) ArrayQueue[T] {
	return &circArrQ[T]{0, 0, make([]T, capacity+1)}
}

func (this *circArrQ[T]) next(i uint) uint {
	if i++; i == uint(len(this.content)) {
		return 0
	}
	return i
}

func (this *circArrQ[T]) Empty() bool {
	return this.head == this.tail
}

func (this *circArrQ[T]) full() bool {
	return this.next(this.tail) == this.head
}

func (this *circArrQ[T]) Clear() {
	clear(this.content)
	this.tail, this.head = 0, 0
}

func (this *circArrQ[T]) Size() uint {
	if this.tail >= this.head {
		return this.tail - this.head
	}
	return uint(len(this.content)) - this.head + this.tail
}

func (this *circArrQ[T]) Cap() uint {
	return uint(len(this.content)) - 1
}

func (this *circArrQ[T]) Push(item T) error {
	if this.full() {
		return &FullQueueError{this.Cap()}
	}
	this.content[this.tail] = item
	this.tail = this.next(this.tail)
	return nil
}

func (this *circArrQ[T]) Pop() (item T, e error) {
	if this.Empty() {
		return item, &EmptyQueueError{}
	}
	item = this.content[this.head]
	this.content[this.head] = *new(T)
	this.head = this.next(this.head)
	return item, nil
}

func (this *circArrQ[T]) Peek() (item T, e error) {
	if this.Empty() {
		return item, &EmptyQueueError{}
	}
	return this.content[this.head], nil
}
