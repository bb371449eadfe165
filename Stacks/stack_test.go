package Stacks

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var rg = rand.New(rand.NewSource(0))

func TestArrayStack_Scenario(t *testing.T) {
	s := NewArrayStack[int](3)
	for _, v := range []int{10, 20, 30} {
		require.NoError(t, s.Push(v))
	}
	var full *FullStackError
	require.ErrorAs(t, s.Push(40), &full)
	assert.Equal(t, uint(3), full.Cap)

	v, err := s.Top()
	require.NoError(t, err)
	assert.Equal(t, 30, v)
	v, err = s.TopN(3)
	require.NoError(t, err)
	assert.Equal(t, 10, v)
	var empty *EmptyStackError
	_, err = s.TopN(4)
	require.ErrorAs(t, err, &empty)
	assert.Equal(t, uint(4), empty.Need)
	assert.Equal(t, uint(3), empty.Have)
	_, err = s.TopN(0)
	require.ErrorAs(t, err, &empty)

	for _, want := range []int{30, 20, 10} {
		v, err = s.Pop()
		require.NoError(t, err)
		assert.Equal(t, want, v)
	}
	_, err = s.Pop()
	require.ErrorAs(t, err, &empty)
	_, err = s.Top()
	require.ErrorAs(t, err, &empty)
	assert.True(t, s.Empty())
}

func TestArrayStack_Random(t *testing.T) {
	const c = 16
	s := NewArrayStack[int](c)
	var model []int
	for i := range 10000 {
		switch rg.Intn(3) {
		case 0:
			err := s.Push(i)
			if len(model) == c {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				model = append(model, i)
			}
		case 1:
			v, err := s.Pop()
			if len(model) == 0 {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				require.Equal(t, model[len(model)-1], v)
				model = model[:len(model)-1]
			}
		default:
			n := uint(rg.Intn(c) + 1)
			v, err := s.TopN(n)
			if n > uint(len(model)) {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				require.Equal(t, model[uint(len(model))-n], v)
			}
		}
		require.Equal(t, uint(len(model)), s.Size())
	}
}

func TestArrayStack_Clear(t *testing.T) {
	s := NewArrayStack[*int](2)
	x := 1
	require.NoError(t, s.Push(&x))
	s.Clear()
	assert.True(t, s.Empty())
	assert.Nil(t, s.content[:1][0])
	assert.Equal(t, uint(2), s.Cap())
	require.NoError(t, s.Push(&x))
	require.NoError(t, s.Push(&x))
}
