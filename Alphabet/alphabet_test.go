package Alphabet

import (
	"fmt"
	"strings"
	"testing"

	"github.com/g-m-twostay/st-utils/Dict"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	_, err := New(0)
	require.ErrorIs(t, err, ErrBadParam)
	_, err = New(4, WithGrowth(0))
	require.ErrorIs(t, err, Dict.ErrBadParam)
	a, err := New(4)
	require.NoError(t, err)
	assert.Equal(t, 0, a.Len())
	assert.Equal(t, 4, a.Cap())
}

func TestAlphabet_Scenario(t *testing.T) {
	a, err := New(3)
	require.NoError(t, err)
	for want, l := range []string{"<s>", "#sil", "hello"} {
		id, err := a.Add(l)
		require.NoError(t, err)
		assert.Equal(t, want, id)
	}
	id, err := a.Add("#sil")
	require.NoError(t, err)
	assert.Equal(t, 1, id)
	_, err = a.Add("world")
	require.ErrorIs(t, err, ErrFull)

	assert.Equal(t, 3, a.Len())
	assert.Equal(t, 1, a.AuxLen())
	assert.True(t, a.IsAux(1))
	assert.False(t, a.IsAux(0))
	assert.False(t, a.IsAux(3))

	id, err = a.Index("hello")
	require.NoError(t, err)
	assert.Equal(t, 2, id)
	_, err = a.Index("world")
	require.ErrorIs(t, err, ErrNotFound)

	l, err := a.Label(0)
	require.NoError(t, err)
	assert.Equal(t, "<s>", l)
	_, err = a.Label(3)
	require.ErrorIs(t, err, ErrBadParam)
	_, err = a.Label(-1)
	require.ErrorIs(t, err, ErrBadParam)
}

func TestAlphabet_BadLabels(t *testing.T) {
	a, err := New(4)
	require.NoError(t, err)
	for _, l := range []string{"", "a\x00", strings.Repeat("x", MaxLabelLen+1)} {
		_, err = a.Add(l)
		require.ErrorIs(t, err, ErrBadParam, "%q", l)
		_, err = a.Index(l)
		require.ErrorIs(t, err, ErrBadParam, "%q", l)
	}
	_, err = a.Add(strings.Repeat("x", MaxLabelLen))
	require.NoError(t, err)
	assert.Equal(t, 1, a.Len())
}

// TestAlphabet_Collision puts every label into one bucket and checks that ids still resolve.
func TestAlphabet_Collision(t *testing.T) {
	a, err := New(8)
	require.NoError(t, err)
	a.index.SetHash(func(*Dict.Dict, *Dict.Node) uint32 { return 0 })
	labels := []string{"ab", "ba", "abc", "a"}
	for want, l := range labels {
		id, err := a.Add(l)
		require.NoError(t, err)
		require.Equal(t, want, id)
	}
	for want, l := range labels {
		id, err := a.Index(l)
		require.NoError(t, err)
		require.Equal(t, want, id)
	}
}

func TestAlphabet_Many(t *testing.T) {
	const n = 5000
	a, err := New(n, WithGrowth(16))
	require.NoError(t, err)
	for i := range n {
		id, err := a.Add(fmt.Sprintf("label-%d", i))
		require.NoError(t, err)
		require.Equal(t, i, id)
	}
	for i := range n {
		id, err := a.Index(fmt.Sprintf("label-%d", i))
		require.NoError(t, err)
		require.Equal(t, i, id)
	}
}

func TestAlphabet_Dup(t *testing.T) {
	a, err := New(4)
	require.NoError(t, err)
	_, err = a.Add("x")
	require.NoError(t, err)
	c := a.Dup()
	_, err = c.Add("#y")
	require.NoError(t, err)
	assert.Equal(t, 1, a.Len())
	assert.Equal(t, 0, a.AuxLen())
	assert.False(t, a.IsAux(1))
	_, err = a.Index("#y")
	require.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 2, c.Len())
	assert.True(t, c.IsAux(1))
	id, err := c.Index("x")
	require.NoError(t, err)
	assert.Equal(t, 0, id)
}

func build(t *testing.T, labels ...string) *Alphabet {
	t.Helper()
	a, err := New(len(labels))
	require.NoError(t, err)
	for _, l := range labels {
		_, err = a.Add(l)
		require.NoError(t, err)
	}
	return a
}

func requireSame(t *testing.T, want, got *Alphabet) {
	t.Helper()
	require.Equal(t, want.Len(), got.Len())
	require.Equal(t, want.AuxLen(), got.AuxLen())
	for id := range want.Len() {
		l, err := want.Label(id)
		require.NoError(t, err)
		gl, err := got.Label(id)
		require.NoError(t, err)
		require.Equal(t, l, gl)
		require.Equal(t, want.IsAux(id), got.IsAux(id))
		gid, err := got.Index(l)
		require.NoError(t, err)
		require.Equal(t, id, gid)
	}
}

func TestLabelEqual(t *testing.T) {
	q := &query{labels: []string{"a", "b"}, label: "b"}
	stored := &Dict.Node{Sign1: 1, Sign2: 2, Payload: 0}
	probe := &Dict.Node{Sign1: 1, Sign2: 2}
	assert.False(t, labelEqual(stored, probe, q))
	stored.Payload = 1
	assert.True(t, labelEqual(stored, probe, q))
	stored.Payload = 2
	assert.False(t, labelEqual(stored, probe, q))
	stored.Payload = 1
	assert.False(t, labelEqual(stored, probe, nil))
	probe.Sign2 = 3
	assert.False(t, labelEqual(stored, probe, q))
}
