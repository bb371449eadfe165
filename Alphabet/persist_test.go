package Alphabet

import (
	"bytes"
	"encoding/binary"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlphabet_SaveTxt(t *testing.T) {
	a := build(t, "<s>", "#sil", "hello")
	var buf bytes.Buffer
	require.NoError(t, a.SaveTxt(&buf))
	assert.Equal(t, "symbols=3\n<s>\t0\n#sil\t1\nhello\t2\n", buf.String())

	b, err := LoadTxt(&buf)
	require.NoError(t, err)
	requireSame(t, a, b)
	assert.Equal(t, 3, b.Cap())
}

func TestAlphabet_SaveTxtBlank(t *testing.T) {
	a := build(t, "a b")
	var buf bytes.Buffer
	require.ErrorIs(t, a.SaveTxt(&buf), ErrBadParam)
	assert.Zero(t, buf.Len())
}

func TestLoadTxt(t *testing.T) {
	in := "symbols = 3\n\nc 2 extra\ncomment\na 0\nb  1\n"
	a, err := LoadTxt(strings.NewReader(in))
	require.NoError(t, err)
	require.Equal(t, 3, a.Len())
	for id, want := range []string{"a", "b", "c"} {
		l, err := a.Label(id)
		require.NoError(t, err)
		assert.Equal(t, want, l)
	}
}

func TestLoadTxt_Bad(t *testing.T) {
	for name, in := range map[string]string{
		"empty":        "",
		"no header":    "a 0\n",
		"zero":         "symbols=0\n",
		"not a number": "symbols=x\n",
		"id too big":   "symbols=2\na 0\nb 2\n",
		"negative id":  "symbols=2\na 0\nb -1\n",
		"repeated id":  "symbols=2\na 0\nb 0\n",
		"missing id":   "symbols=2\na 0\n",
		"repeated":     "symbols=2\na 0\na 1\n",
	} {
		_, err := LoadTxt(strings.NewReader(in))
		require.ErrorIs(t, err, ErrFormat, name)
	}
}

func TestAlphabet_SaveBin(t *testing.T) {
	a := build(t, "<s>", "#sil", "a fairly long label", "x")
	var buf bytes.Buffer
	require.NoError(t, a.SaveBin(&buf))
	raw := buf.Bytes()
	assert.Equal(t, uint32(4), binary.NativeEndian.Uint32(raw[0:]))
	assert.Equal(t, uint32(1), binary.NativeEndian.Uint32(raw[4:]))
	rec := raw[8+recSize : 8+2*recSize]
	assert.Equal(t, "#sil\x00", string(rec[:5]))
	assert.Equal(t, uint32(1), binary.NativeEndian.Uint32(rec[labelSize:]))
	assert.Equal(t, []byte{0, 1, 0, 0}, raw[8+4*recSize:8+4*recSize+4])

	buf.WriteString("tail")
	b, err := LoadBin(&buf)
	require.NoError(t, err)
	requireSame(t, a, b)
	assert.Equal(t, "tail", buf.String())

	var again bytes.Buffer
	require.NoError(t, b.SaveBin(&again))
	assert.Equal(t, raw, again.Bytes())
}

func TestLoadBin_Bad(t *testing.T) {
	a := build(t, "#a", "b")
	var buf bytes.Buffer
	require.NoError(t, a.SaveBin(&buf))
	good := buf.Bytes()

	corrupt := func(f func(b []byte)) []byte {
		b := append([]byte(nil), good...)
		f(b)
		return b
	}
	for name, in := range map[string][]byte{
		"aux count": corrupt(func(b []byte) { binary.NativeEndian.PutUint32(b[4:], 2) }),
		"symid":     corrupt(func(b []byte) { binary.NativeEndian.PutUint32(b[8+labelSize:], 1) }),
		"aux flag":  corrupt(func(b []byte) { b[8+2*recSize+1] = 1 }),
		"no nul":    corrupt(func(b []byte) { copy(b[8:8+labelSize], bytes.Repeat([]byte{'z'}, labelSize)) }),
	} {
		_, err := LoadBin(bytes.NewReader(in))
		require.ErrorIs(t, err, ErrFormat, name)
	}
	_, err := LoadBin(bytes.NewReader(good[:8+recSize]))
	require.Error(t, err)
	_, err = LoadBin(bytes.NewReader(good[:len(good)-1]))
	require.Error(t, err)
}
