package Dict

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
)

// The binary format is the table's memory image: six native-endian uint32 header fields
// (hash_num, growth, cur_index, max_pool_num, node_num, addr_mask), then all buckets, then the whole
// pool including the slots past cur_index. Each node is sign1, sign2, payload, next.
const (
	headerSize = 6 * 4
	chunkNodes = 4096
)

func putNode(b []byte, n *Node) {
	binary.NativeEndian.PutUint32(b[0:], n.Sign1)
	binary.NativeEndian.PutUint32(b[4:], n.Sign2)
	binary.NativeEndian.PutUint32(b[8:], n.Payload)
	binary.NativeEndian.PutUint32(b[12:], n.next)
}

func getNode(b []byte) Node {
	return Node{
		Sign1:   binary.NativeEndian.Uint32(b[0:]),
		Sign2:   binary.NativeEndian.Uint32(b[4:]),
		Payload: binary.NativeEndian.Uint32(b[8:]),
		next:    binary.NativeEndian.Uint32(b[12:]),
	}
}

func writeNodes(w io.Writer, nodes []Node) error {
	buf := make([]byte, nodeSize*min(len(nodes), chunkNodes))
	for len(nodes) > 0 {
		k := min(len(nodes), chunkNodes)
		for i := range k {
			putNode(buf[i*nodeSize:], &nodes[i])
		}
		if _, err := w.Write(buf[:k*nodeSize]); err != nil {
			return err
		}
		nodes = nodes[k:]
	}
	return nil
}

// readNodes reads n nodes chunk by chunk, so a lying header fails on the short read instead of
// allocating the whole claimed size up front.
func readNodes(r io.Reader, n uint32) ([]Node, error) {
	nodes := make([]Node, 0, min(n, chunkNodes))
	buf := make([]byte, nodeSize*min(n, chunkNodes))
	for left := n; left > 0; {
		k := min(left, chunkNodes)
		if _, err := io.ReadFull(r, buf[:k*nodeSize]); err != nil {
			return nil, err
		}
		for i := range k {
			nodes = append(nodes, getNode(buf[i*nodeSize:]))
		}
		left -= k
	}
	return nodes, nil
}

// Save writes d in the binary format. Hash and equality functions aren't saved.
func (d *Dict) Save(w io.Writer) error {
	bw := bufio.NewWriter(w)
	var hdr [headerSize]byte
	for i, v := range [...]uint32{uint32(len(d.buckets)), d.growth, d.cur, uint32(len(d.pool)), d.num, d.mask} {
		binary.NativeEndian.PutUint32(hdr[i*4:], v)
	}
	if _, err := bw.Write(hdr[:]); err != nil {
		return d.log.Fail("save", fmt.Errorf("dict: write header: %w", err))
	}
	if err := writeNodes(bw, d.buckets); err != nil {
		return d.log.Fail("save", fmt.Errorf("dict: write buckets: %w", err))
	}
	if err := writeNodes(bw, d.pool); err != nil {
		return d.log.Fail("save", fmt.Errorf("dict: write pool: %w", err))
	}
	if err := bw.Flush(); err != nil {
		return d.log.Fail("save", fmt.Errorf("dict: flush: %w", err))
	}
	return nil
}

// Load reads a Dict written by Save. r isn't read past the end of the dict, so it may carry more data.
// The Dict uses HashSimple and SignEqual unless opts say otherwise; a table built with other functions
// needs them passed here or through SetHash and SetEqual. WithClearList rebuilds the clear list from the
// occupied buckets.
func Load(r io.Reader, opts ...Option) (*Dict, error) {
	o := applyOptions(opts)
	var hdr [headerSize]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, o.logger.Fail("load", fmt.Errorf("dict: read header: %w", err))
	}
	field := func(i int) uint32 {
		return binary.NativeEndian.Uint32(hdr[i*4:])
	}
	hashNum, growth, cur, maxPool, num, mask := field(0), field(1), field(2), field(3), field(4), field(5)
	if hashNum == 0 || hashNum > maxBuckets || hashNum&(hashNum-1) != 0 || mask != hashNum-1 ||
		growth == 0 || growth == BadNode || cur > maxPool || maxPool == BadNode {
		return nil, o.logger.Fail("load", fmt.Errorf("%w: header", ErrCorrupt),
			"hash_num", hashNum, "growth", growth, "cur_index", cur, "max_pool_num", maxPool, "addr_mask", mask)
	}
	buckets, err := readNodes(r, hashNum)
	if err != nil {
		return nil, o.logger.Fail("load", fmt.Errorf("dict: read buckets: %w", err))
	}
	pool, err := readNodes(r, maxPool)
	if err != nil {
		return nil, o.logger.Fail("load", fmt.Errorf("dict: read pool: %w", err))
	}
	d := &Dict{
		buckets: buckets,
		pool:    pool,
		cur:     cur,
		growth:  growth,
		num:     num,
		mask:    mask,
		hash:    o.hash,
		equal:   o.equal,
		log:     o.logger,
	}
	if o.clearList {
		d.clears = make([]uint32, 0, hashNum)
		for i := range d.buckets {
			if !d.buckets[i].empty() {
				d.clears = append(d.clears, uint32(i))
			}
		}
	}
	return d, nil
}
