// Package Stacks has a fixed capacity LIFO stack over an array. It isn't safe for concurrent use.
package Stacks

import "fmt"

type EmptyStackError struct {
	Need, Have uint
}

func (e *EmptyStackError) Error() string {
	return fmt.Sprintf("Stack has %d items: cannot reach item %d.", e.Have, e.Need)
}

type FullStackError struct {
	Cap uint
}

func (e *FullStackError) Error() string {
	return fmt.Sprintf("Stack is Full: cannot Push beyond %d items.", e.Cap)
}

type ArrayStack[T any] struct {
	content []T //len(content) is the number of items, cap(content) never changes.
}

func NewArrayStack[T any](capacity uint) *ArrayStack[T] {
	return &ArrayStack[T]{make([]T, 0, capacity)}
}

func (this *ArrayStack[T]) Push(item T) error {
	if len(this.content) == cap(this.content) {
		return &FullStackError{uint(cap(this.content))}
	}
	this.content = append(this.content, item)
	return nil
}

func (this *ArrayStack[T]) Pop() (item T, e error) {
	n := len(this.content)
	if n == 0 {
		return item, &EmptyStackError{1, 0}
	}
	item = this.content[n-1]
	this.content[n-1] = *new(T)
	this.content = this.content[:n-1]
	return item, nil
}

func (this *ArrayStack[T]) Top() (T, error) {
	return this.TopN(1)
}

// TopN returns the n-th item from the top, Top is TopN(1).
func (this *ArrayStack[T]) TopN(n uint) (item T, e error) {
	if n == 0 || n > uint(len(this.content)) {
		return item, &EmptyStackError{n, uint(len(this.content))}
	}
	return this.content[uint(len(this.content))-n], nil
}

func (this *ArrayStack[T]) Size() uint {
	return uint(len(this.content))
}

func (this *ArrayStack[T]) Cap() uint {
	return uint(cap(this.content))
}

func (this *ArrayStack[T]) Empty() bool {
	return len(this.content) == 0
}

func (this *ArrayStack[T]) Clear() {
	clear(this.content)
	this.content = this.content[:0]
}
