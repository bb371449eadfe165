package Stacks

import (
	"testing"

	"github.com/emirpasic/gods/stacks/arraystack"
)

const benchN = 1 << 16

func BenchmarkArrayStack(b *testing.B) {
	s := NewArrayStack[int](benchN)
	b.ResetTimer()
	for range b.N {
		for i := range benchN {
			_ = s.Push(i)
		}
		for !s.Empty() {
			_, _ = s.Pop()
		}
	}
}

func BenchmarkGodsArrayStack(b *testing.B) {
	for range b.N {
		s := arraystack.New()
		for i := range benchN {
			s.Push(i)
		}
		for !s.Empty() {
			s.Pop()
		}
	}
}
