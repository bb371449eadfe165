/*
Package Dict implements a fixed bucket count hash table keyed by pairs of 32 bit signatures.

Every bucket holds one node inline. Colliding nodes are taken from a node pool, an arena that grows by a
fixed step and is indexed by uint32, and linked at the head of the bucket's chain through Node.next.
The pool never reuses a slot on its own: Clear detaches chains but the slots stay allocated until
Compact is called.

A Dict isn't safe for concurrent use.
*/
package Dict

import (
	"fmt"

	StUtils "github.com/g-m-twostay/st-utils"
)

const maxBuckets uint32 = 1 << 31

type Dict struct {
	buckets []Node
	pool    []Node   //len(pool) is the pool capacity, slots [0,cur) are handed out.
	cur     uint32   //next free pool slot.
	growth  uint32   //pool growth step.
	num     uint32   //live nodes, bucket and pool.
	mask    uint32   //len(buckets)-1.
	clears  []uint32 //occupied buckets since the last Clear, nil unless WithClearList.
	hash    HashFunc
	equal   EqualFunc
	log     *StUtils.Logger
}

// roundUp rounds n up to a power of two by smearing the bits below the highest set bit.
func roundUp(n uint32) uint32 {
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	return n + 1
}

// New creates a Dict with capacity rounded up to a power of two buckets and an initial pool of the same
// size. The pool grows by growth nodes whenever it runs out.
func New(capacity, growth uint32, opts ...Option) (*Dict, error) {
	o := applyOptions(opts)
	if capacity == 0 || capacity > maxBuckets || growth == 0 || growth == BadNode {
		return nil, o.logger.Fail("create", ErrBadParam, "capacity", capacity, "growth", growth)
	}
	n := roundUp(capacity)
	d := &Dict{
		buckets: make([]Node, n),
		pool:    make([]Node, n),
		growth:  growth,
		mask:    n - 1,
		hash:    o.hash,
		equal:   o.equal,
		log:     o.logger,
	}
	for i := range d.buckets {
		d.buckets[i].next = BadNode
		d.pool[i].next = BadNode
	}
	if o.clearList {
		d.clears = make([]uint32, 0, n)
	}
	return d, nil
}

func checkNode(n *Node) error {
	if n == nil || n.empty() {
		return ErrBadParam
	}
	return nil
}

func (d *Dict) corrupt(next uint32) error {
	return fmt.Errorf("%w: next %d, cur_index %d", ErrCorrupt, next, d.cur)
}

func (d *Dict) bucketOf(n *Node) (uint32, error) {
	h := d.hash(d, n)
	if h >= uint32(len(d.buckets)) {
		return 0, fmt.Errorf("%w: bucket %d of %d", ErrCorrupt, h, len(d.buckets))
	}
	return h, nil
}

// find returns the node in bucket h matching q, or nil.
func (d *Dict) find(h uint32, q *Node, args any) (*Node, error) {
	work := &d.buckets[h]
	if work.empty() {
		return nil, nil
	}
	for steps := uint32(0); ; steps++ {
		if d.equal(work, q, args) {
			return work, nil
		}
		if work.next == BadNode {
			return nil, nil
		}
		if work.next >= d.cur || steps >= d.cur {
			return nil, d.corrupt(work.next)
		}
		work = &d.pool[work.next]
	}
}

// walk calls f on b and then on every node of its chain.
func (d *Dict) walk(b *Node, f VisitFunc) error {
	if err := f(b); err != nil {
		return err
	}
	for did, steps := b.next, uint32(0); did != BadNode; steps++ {
		if did >= d.cur || steps >= d.cur {
			return d.corrupt(did)
		}
		n := &d.pool[did]
		did = n.next
		if err := f(n); err != nil {
			return err
		}
	}
	return nil
}

// alloc hands out the next pool slot, growing the pool if needed.
func (d *Dict) alloc() (uint32, error) {
	if d.cur >= uint32(len(d.pool)) {
		if d.growth == 0 || uint64(len(d.pool))+uint64(d.growth) >= uint64(BadNode) {
			return BadNode, fmt.Errorf("%w: %d + %d", ErrFull, len(d.pool), d.growth)
		}
		d.pool = append(d.pool, make([]Node, d.growth)...)
		d.log.Debug("pool grown", "max_pool_num", len(d.pool), "cur_index", d.cur)
	}
	d.cur++
	return d.cur - 1, nil
}

// put stores n in bucket h without looking for duplicates.
func (d *Dict) put(h uint32, n *Node) error {
	b := &d.buckets[h]
	if b.empty() {
		b.Sign1, b.Sign2, b.Payload, b.next = n.Sign1, n.Sign2, n.Payload, BadNode
		if d.clears != nil {
			d.clears = append(d.clears, h)
		}
	} else {
		i, err := d.alloc()
		if err != nil {
			return err
		}
		d.pool[i] = Node{n.Sign1, n.Sign2, n.Payload, b.next}
		b.next = i
	}
	d.num++
	return nil
}

// Seek looks q up and copies the payload of the match into q.
func (d *Dict) Seek(q *Node, args any) (bool, error) {
	if err := checkNode(q); err != nil {
		return false, d.log.Fail("seek", err)
	}
	h, err := d.bucketOf(q)
	if err != nil {
		return false, d.log.Fail("seek", err)
	}
	found, err := d.find(h, q, args)
	if err != nil {
		return false, d.log.Fail("seek", err, "bucket", h)
	}
	if found == nil {
		return false, nil
	}
	q.Payload = found.Payload
	return true, nil
}

// Add inserts n, failing with ErrDuplicate if the key is already present.
func (d *Dict) Add(n *Node, args any) error {
	if err := checkNode(n); err != nil {
		return d.log.Fail("add", err)
	}
	h, err := d.bucketOf(n)
	if err != nil {
		return d.log.Fail("add", err)
	}
	if found, err := d.find(h, n, args); err != nil {
		return d.log.Fail("add", err, "bucket", h)
	} else if found != nil {
		return d.log.Fail("add", ErrDuplicate, "sign1", n.Sign1, "sign2", n.Sign2)
	}
	if err = d.put(h, n); err != nil {
		return d.log.Fail("add", err, "bucket", h)
	}
	return nil
}

// AddNoSeek inserts n without checking for duplicates. The caller must know the key is new.
func (d *Dict) AddNoSeek(n *Node) error {
	if err := checkNode(n); err != nil {
		return d.log.Fail("add", err)
	}
	h, err := d.bucketOf(n)
	if err != nil {
		return d.log.Fail("add", err)
	}
	if err = d.put(h, n); err != nil {
		return d.log.Fail("add", err, "bucket", h)
	}
	return nil
}

// Update calls fn on the node matching n with n's float payload, or inserts n if there is none.
func (d *Dict) Update(n *Node, args any, fn UpdateFunc) error {
	if err := checkNode(n); err != nil || fn == nil {
		return d.log.Fail("update", ErrBadParam)
	}
	h, err := d.bucketOf(n)
	if err != nil {
		return d.log.Fail("update", err)
	}
	found, err := d.find(h, n, args)
	if err != nil {
		return d.log.Fail("update", err, "bucket", h)
	}
	if found != nil {
		if err = fn(found, n.Float()); err != nil {
			return d.log.Fail("update", err, "sign1", n.Sign1, "sign2", n.Sign2)
		}
		return nil
	}
	if err = d.put(h, n); err != nil {
		return d.log.Fail("update", err, "bucket", h)
	}
	return nil
}

// Traverse visits every node, buckets in order and each bucket's chain after its inline node. A nil fn
// only validates the chains.
func (d *Dict) Traverse(fn VisitFunc) error {
	if fn == nil {
		fn = func(*Node) error { return nil }
	}
	for i := range d.buckets {
		if b := &d.buckets[i]; !b.empty() {
			if err := d.walk(b, fn); err != nil {
				return d.log.Fail("traverse", err, "bucket", i)
			}
		}
	}
	return nil
}

// Clear empties every bucket occupied since the last Clear, calling fn (if not nil) on each node before
// it's removed. Pool slots of the removed chains aren't reused, see Compact.
//
// A bucket is cleared only after fn accepted all of its nodes; on error the buckets cleared so far stay
// cleared and the rest are kept for the next Clear.
func (d *Dict) Clear(fn VisitFunc) error {
	if d.clears == nil {
		return d.log.Fail("clear", ErrNoClearList)
	}
	if fn == nil {
		fn = func(*Node) error { return nil }
	}
	for k, h := range d.clears {
		b := &d.buckets[h]
		if b.empty() {
			continue
		}
		if err := d.walk(b, fn); err != nil {
			d.clears = d.clears[:copy(d.clears, d.clears[k:])]
			return d.log.Fail("clear", err, "bucket", h)
		}
		for did := b.next; did != BadNode; {
			n := &d.pool[did]
			did = n.next
			n.reset()
			d.num--
		}
		b.reset()
		d.num--
	}
	d.clears = d.clears[:0]
	return nil
}

// Dup returns a deep copy sharing nothing with d.
func (d *Dict) Dup() *Dict {
	c := *d
	c.buckets = append([]Node(nil), d.buckets...)
	c.pool = append([]Node(nil), d.pool...)
	if d.clears != nil {
		c.clears = append(make([]uint32, 0, len(d.buckets)), d.clears...)
	}
	return &c
}

// Len is the number of live nodes.
func (d *Dict) Len() uint32 {
	return d.num
}

// Buckets is the number of buckets, a power of two.
func (d *Dict) Buckets() uint32 {
	return uint32(len(d.buckets))
}

// Mask is Buckets()-1, the mask HashFuncs apply.
func (d *Dict) Mask() uint32 {
	return d.mask
}

// PoolUsed is the number of pool slots handed out, live or not.
func (d *Dict) PoolUsed() uint32 {
	return d.cur
}

// PoolCap is the allocated size of the pool.
func (d *Dict) PoolCap() uint32 {
	return uint32(len(d.pool))
}

func (d *Dict) Growth() uint32 {
	return d.growth
}

func (d *Dict) HasClearList() bool {
	return d.clears != nil
}

// SetHash replaces the bucket function, nil restores HashSimple. Only safe on an empty Dict or with a
// function placing every key in the same bucket as before, e.g. after Load.
func (d *Dict) SetHash(f HashFunc) {
	if f == nil {
		f = HashSimple
	}
	d.hash = f
}

// SetEqual replaces the key comparison, nil restores SignEqual.
func (d *Dict) SetEqual(f EqualFunc) {
	if f == nil {
		f = SignEqual
	}
	d.equal = f
}
