package Dict

import "fmt"

// Compact moves the live chain nodes to the front of the pool, in bucket then chain order, and frees
// the slots left behind by Clear. The pool keeps its allocated size. d is left untouched on error.
func (d *Dict) Compact() error {
	pool := make([]Node, len(d.pool))
	heads := make([]uint32, len(d.buckets))
	cur, live := uint32(0), uint32(0)
	for i := range d.buckets {
		heads[i] = BadNode
		b := &d.buckets[i]
		if b.empty() {
			continue
		}
		live++
		tail := &heads[i]
		err := d.walk(b, func(n *Node) error {
			if n == b {
				return nil
			}
			if cur >= uint32(len(pool)) {
				return fmt.Errorf("%w: chains share nodes", ErrCorrupt)
			}
			pool[cur] = Node{n.Sign1, n.Sign2, n.Payload, BadNode}
			*tail = cur
			tail = &pool[cur].next
			cur++
			return nil
		})
		if err != nil {
			return d.log.Fail("compact", err, "bucket", i)
		}
	}
	if cur+live != d.num {
		return d.log.Fail("compact", fmt.Errorf("%w: %d nodes reachable, node_num %d", ErrCorrupt, cur+live, d.num))
	}
	for i := cur; i < uint32(len(pool)); i++ {
		pool[i].next = BadNode
	}
	for i := range d.buckets {
		d.buckets[i].next = heads[i]
	}
	d.log.Debug("pool compacted", "cur_index", cur, "reclaimed", d.cur-cur)
	d.pool, d.cur = pool, cur
	return nil
}
