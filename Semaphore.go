package StUtils

import "sync"

// Semaphore is a counting semaphore. Waiters are not woken in FIFO order and a blocked Wait can't be cancelled.
type Semaphore struct {
	mu    sync.Mutex
	cond  sync.Cond
	value int
}

func NewSemaphore(n int) *Semaphore {
	s := &Semaphore{value: n}
	s.cond.L = &s.mu
	return s
}

// Wait blocks while the count is not positive, then takes one.
func (s *Semaphore) Wait() {
	s.mu.Lock()
	for s.value <= 0 {
		s.cond.Wait()
	}
	s.value--
	s.mu.Unlock()
}

// TryWait takes one if the count is positive and reports whether it did.
func (s *Semaphore) TryWait() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.value <= 0 {
		return false
	}
	s.value--
	return true
}

// Post gives one back and wakes a single waiter.
func (s *Semaphore) Post() {
	s.mu.Lock()
	s.value++
	s.cond.Signal()
	s.mu.Unlock()
}

// Value is a snapshot of the count, it may be stale by the time it's returned.
func (s *Semaphore) Value() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}
