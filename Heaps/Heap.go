/*
Package Heaps implements a fixed capacity binary heap of integer handles.

The heap can keep a position index, a caller owned slice where index[h] is the slot handle h currently
occupies, or Absent once h has been extracted. With it a caller who changed the key behind h can
restore the order with Fix, or drop h with Remove, without searching the heap. Handles stored with an
index must lie in [0, len(index)).

No operation allocates after New. A Heap isn't safe for concurrent use.
*/
package Heaps

import (
	"errors"
	"fmt"

	"golang.org/x/exp/constraints"
)

// Absent is the position index entry of a handle that isn't in the heap.
const Absent = -1

var (
	ErrBadParam = errors.New("heap: bad parameter")
	// ErrFull is returned by Insert when size reached capacity.
	ErrFull = errors.New("heap: full")
	// ErrEmpty is returned by Extract and Peek on an empty heap.
	ErrEmpty = errors.New("heap: empty")
	// ErrBadHandle is returned when a handle doesn't fit the position index.
	ErrBadHandle = errors.New("heap: handle out of index range")
	// ErrOutOfRange is returned by FixUp and FixDown for slots past the size.
	ErrOutOfRange = errors.New("heap: slot out of range")
	// ErrNoIndex is returned by operations needing a position index on a heap without one.
	ErrNoIndex = errors.New("heap: no position index")
	// ErrCorrupt is returned when the position index disagrees with the heap.
	ErrCorrupt = errors.New("heap: position index corrupt")
)

// Heap orders handles by cmp: a handle for which cmp(a, b) < 0 is closer to the root than b.
type Heap[H constraints.Integer] struct {
	data  []H //len(data) is the capacity.
	size  int
	cmp   func(a, b H) int
	index []int
}

// New creates a heap holding up to capacity handles. index is optional, its length bounds the handles.
func New[H constraints.Integer](capacity int, cmp func(a, b H) int, index []int) (*Heap[H], error) {
	if capacity <= 0 || cmp == nil {
		return nil, fmt.Errorf("%w: capacity %d", ErrBadParam, capacity)
	}
	return &Heap[H]{data: make([]H, capacity), cmp: cmp, index: index}, nil
}

func (u *Heap[H]) setPos(h H, i int) {
	if u.index != nil {
		u.index[h] = i
	}
}

func (u *Heap[H]) swap(i, j int) {
	u.data[i], u.data[j] = u.data[j], u.data[i]
	u.setPos(u.data[i], i)
	u.setPos(u.data[j], j)
}

func (u *Heap[H]) up(i int) int {
	for i > 0 {
		p := (i - 1) / 2
		if u.cmp(u.data[p], u.data[i]) <= 0 {
			break
		}
		u.swap(i, p)
		i = p
	}
	return i
}

func (u *Heap[H]) down(i int) int {
	for c := 2*i + 1; c < u.size; c = 2*i + 1 {
		if c+1 < u.size && u.cmp(u.data[c+1], u.data[c]) < 0 {
			c++
		}
		if u.cmp(u.data[c], u.data[i]) >= 0 {
			break
		}
		u.swap(i, c)
		i = c
	}
	return i
}

// FixUp moves the handle at slot i towards the root until its parent precedes it.
func (u *Heap[H]) FixUp(i int) error {
	if i < 0 || i >= u.size {
		return fmt.Errorf("%w: %d of %d", ErrOutOfRange, i, u.size)
	}
	u.up(i)
	return nil
}

// FixDown moves the handle at slot i towards the leaves until no child precedes it.
func (u *Heap[H]) FixDown(i int) error {
	if i < 0 || i >= u.size {
		return fmt.Errorf("%w: %d of %d", ErrOutOfRange, i, u.size)
	}
	u.down(i)
	return nil
}

func (u *Heap[H]) checkHandle(h H) error {
	if u.index != nil && (h < 0 || uint64(h) >= uint64(len(u.index))) {
		return fmt.Errorf("%w: %d of %d", ErrBadHandle, h, len(u.index))
	}
	return nil
}

// Insert adds h, failing with ErrFull when the heap is at capacity.
func (u *Heap[H]) Insert(h H) error {
	if u.size == len(u.data) {
		return ErrFull
	}
	if err := u.checkHandle(h); err != nil {
		return err
	}
	u.data[u.size] = h
	u.setPos(h, u.size)
	u.size++
	u.up(u.size - 1)
	return nil
}

// Extract removes and returns the root.
func (u *Heap[H]) Extract() (H, error) {
	if u.size == 0 {
		return 0, ErrEmpty
	}
	h := u.data[0]
	u.setPos(h, Absent)
	u.size--
	if u.size > 0 {
		u.data[0] = u.data[u.size]
		u.setPos(u.data[0], 0)
		u.down(0)
	}
	return h, nil
}

// Peek returns the root without removing it.
func (u *Heap[H]) Peek() (H, error) {
	if u.size == 0 {
		return 0, ErrEmpty
	}
	return u.data[0], nil
}

// Position returns the slot of h, using the position index.
func (u *Heap[H]) Position(h H) (int, error) {
	if u.index == nil {
		return Absent, ErrNoIndex
	}
	if err := u.checkHandle(h); err != nil {
		return Absent, err
	}
	i := u.index[h]
	if i == Absent {
		return Absent, nil
	}
	if i < 0 || i >= u.size || u.data[i] != h {
		return Absent, fmt.Errorf("%w: handle %d at %d", ErrCorrupt, h, i)
	}
	return i, nil
}

// Fix restores the order after the key of h changed, in whichever direction it moved.
func (u *Heap[H]) Fix(h H) error {
	i, err := u.Position(h)
	if err != nil {
		return err
	}
	if i == Absent {
		return fmt.Errorf("%w: handle %d not in heap", ErrBadHandle, h)
	}
	if u.up(i) == i {
		u.down(i)
	}
	return nil
}

// Remove takes h out of the heap wherever it is.
func (u *Heap[H]) Remove(h H) error {
	i, err := u.Position(h)
	if err != nil {
		return err
	}
	if i == Absent {
		return fmt.Errorf("%w: handle %d not in heap", ErrBadHandle, h)
	}
	u.index[h] = Absent
	u.size--
	if i < u.size {
		u.data[i] = u.data[u.size]
		u.setPos(u.data[i], i)
		if u.up(i) == i {
			u.down(i)
		}
	}
	return nil
}

func (u *Heap[H]) Size() int {
	return u.size
}

func (u *Heap[H]) Cap() int {
	return len(u.data)
}

func (u *Heap[H]) Empty() bool {
	return u.size == 0
}

// Clear drops all handles. The position index isn't touched, entries of dropped handles stay stale until
// those handles are inserted again.
func (u *Heap[H]) Clear() {
	u.size = 0
}
