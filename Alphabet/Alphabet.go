/*
Package Alphabet maps labels to dense integer ids and back.

Ids are handed out in insertion order starting at 0. Lookups go through a Dict keyed by the label's
signature pair and every hit is confirmed against the stored label, so two labels whose signatures
collide still resolve to their own ids. Labels starting with '#' are auxiliary.

An Alphabet isn't safe for concurrent use.
*/
package Alphabet

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bits-and-blooms/bitset"
	StUtils "github.com/g-m-twostay/st-utils"
	"github.com/g-m-twostay/st-utils/Dict"
)

// MaxLabelLen is the longest label in bytes, fixed by the binary format.
const MaxLabelLen = labelSize - 1

const auxPrefix = '#'

var (
	// ErrBadParam is returned for empty labels, labels too long or containing NUL, and bad sizes or ids.
	ErrBadParam = errors.New("alphabet: bad parameter")
	// ErrFull is returned by Add once the label limit is reached.
	ErrFull = errors.New("alphabet: label limit reached")
	// ErrNotFound is returned by Index for unknown labels.
	ErrNotFound = errors.New("alphabet: label not found")
	// ErrFormat is returned by the loaders for malformed input.
	ErrFormat = errors.New("alphabet: malformed input")
)

type Alphabet struct {
	labels []string //labels[id], cap(labels) is the label limit.
	aux    *bitset.BitSet
	auxNum int
	index  *Dict.Dict
	log    *StUtils.Logger
}

// query is the args value passed to labelEqual.
type query struct {
	labels []string
	label  string
}

// labelEqual confirms a signature hit by comparing the stored label, whose id is the candidate's payload.
func labelEqual(candidate, q *Dict.Node, args any) bool {
	if !Dict.SignEqual(candidate, q, nil) {
		return false
	}
	a, ok := args.(*query)
	if !ok || candidate.Payload >= uint32(len(a.labels)) {
		return false
	}
	return a.labels[candidate.Payload] == a.label
}

func newIndex(capacity uint32, o *options) (*Dict.Dict, error) {
	return Dict.New(capacity, o.growth, Dict.WithEqual(labelEqual), Dict.WithLogger(o.logger))
}

// New creates an Alphabet holding up to maxLabels labels.
func New(maxLabels int, opts ...Option) (*Alphabet, error) {
	o := applyOptions(opts)
	if maxLabels <= 0 || int64(maxLabels) > 1<<31 {
		return nil, o.logger.Fail("create", ErrBadParam, "max_label_num", maxLabels)
	}
	index, err := newIndex(uint32(maxLabels), &o)
	if err != nil {
		return nil, o.logger.Fail("create", err, "max_label_num", maxLabels)
	}
	return &Alphabet{
		labels: make([]string, 0, maxLabels),
		aux:    bitset.New(uint(maxLabels)),
		index:  index,
		log:    o.logger,
	}, nil
}

func checkLabel(label string) error {
	if len(label) == 0 || len(label) > MaxLabelLen || strings.IndexByte(label, 0) >= 0 {
		return fmt.Errorf("%w: label %q", ErrBadParam, label)
	}
	return nil
}

func (a *Alphabet) seek(label string) (int, error) {
	s1, s2 := StUtils.SignString(label)
	n := Dict.Node{Sign1: s1, Sign2: s2}
	found, err := a.index.Seek(&n, &query{a.labels, label})
	if err != nil {
		return -1, err
	}
	if !found {
		return -1, ErrNotFound
	}
	return int(n.Payload), nil
}

// Index returns the id of label.
func (a *Alphabet) Index(label string) (int, error) {
	if err := checkLabel(label); err != nil {
		return -1, err
	}
	return a.seek(label)
}

// insert stores label under the next id, the caller has checked it's new and fits.
func (a *Alphabet) insert(label string) (int, error) {
	id := len(a.labels)
	s1, s2 := StUtils.SignString(label)
	if err := a.index.AddNoSeek(&Dict.Node{Sign1: s1, Sign2: s2, Payload: uint32(id)}); err != nil {
		return -1, err
	}
	a.labels = append(a.labels, label)
	if label[0] == auxPrefix {
		a.aux.Set(uint(id))
		a.auxNum++
	}
	return id, nil
}

// Add returns the id of label, adding it first if it's new.
func (a *Alphabet) Add(label string) (int, error) {
	if err := checkLabel(label); err != nil {
		return -1, a.log.Fail("add", err)
	}
	id, err := a.seek(label)
	if err == nil {
		return id, nil
	} else if !errors.Is(err, ErrNotFound) {
		return -1, a.log.Fail("add", err, "label", label)
	}
	if len(a.labels) == cap(a.labels) {
		return -1, a.log.Fail("add", ErrFull, "label_num", len(a.labels))
	}
	if id, err = a.insert(label); err != nil {
		return -1, a.log.Fail("add", err, "label", label)
	}
	return id, nil
}

// Label returns the label of id.
func (a *Alphabet) Label(id int) (string, error) {
	if id < 0 || id >= len(a.labels) {
		return "", fmt.Errorf("%w: id %d of %d", ErrBadParam, id, len(a.labels))
	}
	return a.labels[id], nil
}

// IsAux reports whether id names an auxiliary label.
func (a *Alphabet) IsAux(id int) bool {
	return id >= 0 && id < len(a.labels) && a.aux.Test(uint(id))
}

func (a *Alphabet) Len() int {
	return len(a.labels)
}

// AuxLen is the number of auxiliary labels.
func (a *Alphabet) AuxLen() int {
	return a.auxNum
}

// Cap is the label limit.
func (a *Alphabet) Cap() int {
	return cap(a.labels)
}

// Dup returns a deep copy sharing nothing with a.
func (a *Alphabet) Dup() *Alphabet {
	c := *a
	c.labels = append(make([]string, 0, cap(a.labels)), a.labels...)
	c.aux = a.aux.Clone()
	c.index = a.index.Dup()
	return &c
}
