package Dict

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash"
)

// BadNode marks the end of a chain. It is also the largest pool index that can never be handed out.
const BadNode uint32 = math.MaxUint32

// nodeSize is the on-disk size of a Node: sign1, sign2, payload, next.
const nodeSize = 16

// Node is the record stored in a Dict. (Sign1, Sign2) is the key and (0, 0) is reserved for empty
// buckets. Payload holds either an opaque uint32 or a float32, which one is up to the caller.
type Node struct {
	Sign1, Sign2 uint32
	Payload      uint32
	next         uint32
}

// Float reads the payload as a float32.
func (n *Node) Float() float32 {
	return math.Float32frombits(n.Payload)
}

// SetFloat stores f in the payload.
func (n *Node) SetFloat(f float32) {
	n.Payload = math.Float32bits(f)
}

func (n *Node) empty() bool {
	return n.Sign1 == 0 && n.Sign2 == 0
}

func (n *Node) reset() {
	*n = Node{next: BadNode}
}

// HashFunc maps a node to a bucket index, which must be below d.Buckets().
type HashFunc func(d *Dict, n *Node) uint32

// EqualFunc reports whether the stored candidate matches query. args is passed through from the caller
// of Seek, Add or Update untouched.
type EqualFunc func(candidate, query *Node, args any) bool

// UpdateFunc updates a matched node in place with the float payload of the query.
type UpdateFunc func(n *Node, v float32) error

// VisitFunc is called for each node by Traverse and Clear; returning an error stops the walk.
type VisitFunc func(n *Node) error

// HashSimple is the default HashFunc.
func HashSimple(d *Dict, n *Node) uint32 {
	return (n.Sign1 + n.Sign2) & d.mask
}

func HashSign1L16(d *Dict, n *Node) uint32 {
	return ((n.Sign1 << 16) ^ n.Sign2) & d.mask
}

func HashSign1(d *Dict, n *Node) uint32 {
	return n.Sign1 & d.mask
}

// HashMixed runs both signatures through xxhash, for keys whose signatures are short strings copied
// verbatim and so share most of their bits.
func HashMixed(d *Dict, n *Node) uint32 {
	var b [8]byte
	binary.LittleEndian.PutUint32(b[:], n.Sign1)
	binary.LittleEndian.PutUint32(b[4:], n.Sign2)
	return uint32(xxhash.Sum64(b[:])) & d.mask
}

// SignEqual is the default EqualFunc, it compares signatures only.
func SignEqual(candidate, query *Node, _ any) bool {
	return candidate.Sign1 == query.Sign1 && candidate.Sign2 == query.Sign2
}
