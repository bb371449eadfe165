package Dict

import "errors"

var (
	// ErrBadParam is returned for nil nodes, the reserved (0, 0) signature and invalid sizes.
	ErrBadParam = errors.New("dict: bad parameter")
	// ErrDuplicate is returned by Add when the key is already present.
	ErrDuplicate = errors.New("dict: node already exists")
	// ErrNotFound is returned by lookups that need a hit to proceed.
	ErrNotFound = errors.New("dict: node not found")
	// ErrCorrupt is returned when a chain link or a header field points outside the table.
	ErrCorrupt = errors.New("dict: corrupt table")
	// ErrNoClearList is returned by Clear on a Dict created without WithClearList.
	ErrNoClearList = errors.New("dict: created without clear list")
)

// ErrFull is returned when the node pool can't grow any further.
var ErrFull = errors.New("dict: node pool exhausted")
