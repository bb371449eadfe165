package Dict

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Codec selects the compression frame WriteSnapshot puts around the binary format.
type Codec byte

const (
	CodecNone Codec = iota
	CodecZstd
	CodecLZ4
)

func (c Codec) String() string {
	switch c {
	case CodecNone:
		return "none"
	case CodecZstd:
		return "zstd"
	case CodecLZ4:
		return "lz4"
	}
	return fmt.Sprintf("Codec(%d)", byte(c))
}

// Frame magics as they appear on disk. A raw dict starts with hash_num, a power of two, which never
// matches either of them.
var (
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	lz4Magic  = []byte{0x04, 0x22, 0x4d, 0x18}
)

// WriteSnapshot writes d through the compression frame of c. With CodecNone it's the same as d.Save(w).
// The unused pool tail is mostly zero, so compressed snapshots of sparse tables are much smaller.
func WriteSnapshot(w io.Writer, d *Dict, c Codec) error {
	switch c {
	case CodecNone:
		return d.Save(w)
	case CodecZstd:
		enc, err := zstd.NewWriter(w)
		if err != nil {
			return d.log.Fail("snapshot", fmt.Errorf("dict: zstd writer: %w", err))
		}
		if err = d.Save(enc); err != nil {
			enc.Close()
			return err
		}
		if err = enc.Close(); err != nil {
			return d.log.Fail("snapshot", fmt.Errorf("dict: zstd close: %w", err))
		}
		return nil
	case CodecLZ4:
		zw := lz4.NewWriter(w)
		if err := d.Save(zw); err != nil {
			zw.Close()
			return err
		}
		if err := zw.Close(); err != nil {
			return d.log.Fail("snapshot", fmt.Errorf("dict: lz4 close: %w", err))
		}
		return nil
	}
	return d.log.Fail("snapshot", fmt.Errorf("%w: codec %v", ErrBadParam, c))
}

// ReadSnapshot loads a Dict written by WriteSnapshot with any codec, or by Save. The codec is told apart
// by the frame magic. r is buffered, so it can't be shared with data following the snapshot.
func ReadSnapshot(r io.Reader, opts ...Option) (*Dict, error) {
	br := bufio.NewReader(r)
	magic, _ := br.Peek(len(zstdMagic))
	switch {
	case bytes.Equal(magic, zstdMagic):
		dec, err := zstd.NewReader(br)
		if err != nil {
			o := applyOptions(opts)
			return nil, o.logger.Fail("snapshot", fmt.Errorf("dict: zstd reader: %w", err))
		}
		defer dec.Close()
		return Load(dec, opts...)
	case bytes.Equal(magic, lz4Magic):
		return Load(lz4.NewReader(br), opts...)
	}
	return Load(br, opts...)
}
