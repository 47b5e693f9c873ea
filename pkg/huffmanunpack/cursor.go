package huffmanunpack

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

/*** ---------- 리틀엔디언 커서 ---------- ***/

// Cursor reads a fixed buffer front to back. It never seeks backwards.
type Cursor struct {
	buf []byte
	pos int
}

func NewCursor(b []byte) *Cursor { return &Cursor{buf: b} }

// Offset is the number of bytes consumed so far.
func (c *Cursor) Offset() int { return c.pos }

func (c *Cursor) Remaining() int { return len(c.buf) - c.pos }

// ReadU32 returns the next four bytes as a little-endian uint32.
func (c *Cursor) ReadU32() (uint32, error) {
	if c.Remaining() < 4 {
		return 0, errors.Wrapf(ErrOutOfData, "read u32 at offset %d: %d bytes left", c.pos, c.Remaining())
	}
	v := binary.LittleEndian.Uint32(c.buf[c.pos:])
	c.pos += 4
	return v, nil
}

// ReadBytes returns the next n bytes. The slice aliases the cursor's buffer.
func (c *Cursor) ReadBytes(n int) ([]byte, error) {
	if n < 0 || c.Remaining() < n {
		return nil, errors.Wrapf(ErrOutOfData, "read %d bytes at offset %d: %d bytes left", n, c.pos, c.Remaining())
	}
	out := c.buf[c.pos : c.pos+n : c.pos+n]
	c.pos += n
	return out, nil
}
