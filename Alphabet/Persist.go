package Alphabet

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/bits-and-blooms/bitset"
	"github.com/g-m-twostay/st-utils/Dict"
)

const (
	symHeader = "symbols"
	labelSize = 256
	recSize   = labelSize + 4 //label bytes, NUL padded, then the int32 id.
	blanks    = " \t\n\r\v\f"
)

// SaveTxt writes a "symbols=N" line followed by one "label\tid" line per label. Labels containing
// white space can't be represented and make it fail with ErrBadParam before anything is written.
func (a *Alphabet) SaveTxt(w io.Writer) error {
	for id, l := range a.labels {
		if strings.ContainsAny(l, blanks) {
			return a.log.Fail("save txt", fmt.Errorf("%w: label %q has white space", ErrBadParam, l), "id", id)
		}
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s=%d\n", symHeader, len(a.labels))
	for id, l := range a.labels {
		fmt.Fprintf(bw, "%s\t%d\n", l, id)
	}
	if err := bw.Flush(); err != nil {
		return a.log.Fail("save txt", fmt.Errorf("alphabet: write: %w", err))
	}
	return nil
}

// LoadTxt reads the SaveTxt format. Lines that aren't a label followed by an id are skipped. Every id in
// [0, N) must appear exactly once and labels must be distinct. The result is full: its limit is N.
func LoadTxt(r io.Reader, opts ...Option) (*Alphabet, error) {
	o := applyOptions(opts)
	sc := bufio.NewScanner(r)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, o.logger.Fail("load txt", fmt.Errorf("alphabet: read: %w", err))
		}
		return nil, o.logger.Fail("load txt", fmt.Errorf("%w: empty input", ErrFormat))
	}
	head, num, ok := strings.Cut(sc.Text(), "=")
	if !ok || !strings.HasPrefix(head, symHeader) {
		return nil, o.logger.Fail("load txt", fmt.Errorf("%w: no %s line", ErrFormat, symHeader))
	}
	n, err := strconv.Atoi(strings.TrimSpace(num))
	if err != nil || n <= 0 {
		return nil, o.logger.Fail("load txt", fmt.Errorf("%w: %s=%q", ErrFormat, symHeader, num))
	}
	a, err := New(n, opts...)
	if err != nil {
		return nil, err
	}
	byID := make([]string, n)
	for line := 2; sc.Scan(); line++ {
		fields := strings.Fields(sc.Text())
		if len(fields) < 2 {
			continue
		}
		id, err := strconv.Atoi(fields[1])
		if err != nil {
			continue
		}
		switch {
		case id < 0 || id >= n:
			return nil, a.log.Fail("load txt", fmt.Errorf("%w: id %d of %d", ErrFormat, id, n), "line", line)
		case byID[id] != "":
			return nil, a.log.Fail("load txt", fmt.Errorf("%w: id %d repeated", ErrFormat, id), "line", line)
		}
		if err = checkLabel(fields[0]); err != nil {
			return nil, a.log.Fail("load txt", err, "line", line)
		}
		byID[id] = fields[0]
	}
	if err = sc.Err(); err != nil {
		return nil, a.log.Fail("load txt", fmt.Errorf("alphabet: read: %w", err))
	}
	for id, l := range byID {
		if l == "" {
			return nil, a.log.Fail("load txt", fmt.Errorf("%w: no label for id %d", ErrFormat, id))
		}
		if err = a.addLoaded(l, id); err != nil {
			return nil, a.log.Fail("load txt", err, "id", id)
		}
	}
	return a, nil
}

// addLoaded inserts a label read from a file, which must land on id.
func (a *Alphabet) addLoaded(label string, id int) error {
	if _, err := a.seek(label); err == nil {
		return fmt.Errorf("%w: label %q repeated", ErrFormat, label)
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}
	if got, err := a.insert(label); err != nil {
		return err
	} else if got != id {
		return fmt.Errorf("%w: label %q got id %d, want %d", ErrFormat, label, got, id)
	}
	return nil
}

// SaveBin writes the label count, the auxiliary count, one fixed size record per label, one aux byte
// per label and finally the index Dict in its binary format. Integers are in native byte order.
func (a *Alphabet) SaveBin(w io.Writer) error {
	bw := bufio.NewWriter(w)
	var buf [recSize]byte
	binary.NativeEndian.PutUint32(buf[0:], uint32(int32(len(a.labels))))
	binary.NativeEndian.PutUint32(buf[4:], uint32(int32(a.auxNum)))
	bw.Write(buf[:8])
	for id, l := range a.labels {
		clear(buf[:labelSize])
		copy(buf[:], l)
		binary.NativeEndian.PutUint32(buf[labelSize:], uint32(int32(id)))
		bw.Write(buf[:])
	}
	for id := range a.labels {
		var b byte
		if a.aux.Test(uint(id)) {
			b = 1
		}
		bw.WriteByte(b)
	}
	if err := a.index.Save(bw); err != nil {
		return a.log.Fail("save bin", err)
	}
	if err := bw.Flush(); err != nil {
		return a.log.Fail("save bin", fmt.Errorf("alphabet: write: %w", err))
	}
	return nil
}

func readFull(r io.Reader, b []byte, what string) error {
	if _, err := io.ReadFull(r, b); err != nil {
		return fmt.Errorf("alphabet: read %s: %w", what, err)
	}
	return nil
}

// LoadBin reads the SaveBin format, leaving r right after the index Dict. WithGrowth is ignored, the
// growth step is stored with the Dict. The result is full: its limit is its length.
func LoadBin(r io.Reader, opts ...Option) (*Alphabet, error) {
	o := applyOptions(opts)
	var buf [recSize]byte
	if err := readFull(r, buf[:8], "header"); err != nil {
		return nil, o.logger.Fail("load bin", err)
	}
	n := int(int32(binary.NativeEndian.Uint32(buf[0:])))
	auxNum := int(int32(binary.NativeEndian.Uint32(buf[4:])))
	if n < 0 || auxNum < 0 || auxNum > n {
		return nil, o.logger.Fail("load bin", fmt.Errorf("%w: label_num %d, aux_num %d", ErrFormat, n, auxNum))
	}
	labels := make([]string, 0, min(n, 4096))
	for id := range n {
		if err := readFull(r, buf[:], "labels"); err != nil {
			return nil, o.logger.Fail("load bin", err, "id", id)
		}
		end := bytes.IndexByte(buf[:labelSize], 0)
		if end < 0 {
			return nil, o.logger.Fail("load bin", fmt.Errorf("%w: label %d not terminated", ErrFormat, id))
		}
		if sym := int32(binary.NativeEndian.Uint32(buf[labelSize:])); sym != int32(id) {
			return nil, o.logger.Fail("load bin", fmt.Errorf("%w: record %d has id %d", ErrFormat, id, sym))
		}
		l := string(buf[:end])
		if err := checkLabel(l); err != nil {
			return nil, o.logger.Fail("load bin", errors.Join(ErrFormat, err), "id", id)
		}
		labels = append(labels, l)
	}
	aux := bitset.New(uint(n))
	flags := buf[:]
	for id := 0; id < n; id += len(flags) {
		flags = buf[:min(len(buf), n-id)]
		if err := readFull(r, flags, "aux flags"); err != nil {
			return nil, o.logger.Fail("load bin", err)
		}
		for k, f := range flags {
			if f > 1 || (f == 1) != (labels[id+k][0] == auxPrefix) {
				return nil, o.logger.Fail("load bin", fmt.Errorf("%w: aux flag %d of label %q", ErrFormat, f, labels[id+k]))
			}
			if f == 1 {
				aux.Set(uint(id + k))
			}
		}
	}
	if c := int(aux.Count()); c != auxNum {
		return nil, o.logger.Fail("load bin", fmt.Errorf("%w: %d aux labels, header says %d", ErrFormat, c, auxNum))
	}
	index, err := Dict.Load(r, Dict.WithEqual(labelEqual), Dict.WithLogger(o.logger))
	if err != nil {
		return nil, o.logger.Fail("load bin", err)
	}
	a := &Alphabet{labels: slices.Clip(labels), aux: aux, auxNum: auxNum, index: index, log: o.logger}
	if index.Len() != uint32(n) {
		return nil, o.logger.Fail("load bin", fmt.Errorf("%w: index holds %d nodes for %d labels", ErrFormat, index.Len(), n))
	}
	for id, l := range a.labels {
		if got, err := a.seek(l); err != nil || got != id {
			return nil, o.logger.Fail("load bin", fmt.Errorf("%w: label %q indexed as %d", ErrFormat, l, got), "id", id)
		}
	}
	return a, nil
}
