package stun

import (
	"encoding/binary"
	"io"
)

// cursor is a seekable view over a single message's wire buffer. It is
// used by both directions of the codec: Encode writes the header and
// then every TLV through it, and Decode reads the header and then hands
// a length-bounded cursor to decodeBody, which walks it forward. The
// codecs do not seek back into the header region: XOR-MAPPED-ADDRESS
// takes the transaction ID from Message.Header, and MESSAGE-INTEGRITY
// and FINGERPRINT rebuild the bytes they hash from the attribute list
// (rawPrefixForHash in message.go).
//
// Not goroutine-safe; a cursor is owned by exactly one Encode/Decode
// call.
type cursor struct {
	buf []byte
	pos int
}

func newCursor(buf []byte) *cursor {
	return &cursor{buf: buf}
}

// Bytes returns the full underlying buffer (not just what remains).
func (c *cursor) Bytes() []byte { return c.buf }

// Len is the total buffer length.
func (c *cursor) Len() int { return len(c.buf) }

// Pos is the current read/write offset.
func (c *cursor) Pos() int { return c.pos }

// Seek moves the cursor to an absolute offset. It never truncates or
// grows the buffer; growth only happens on Write.
func (c *cursor) Seek(pos int) { c.pos = pos }

// Remaining is the number of unread bytes from the current position.
func (c *cursor) Remaining() int { return len(c.buf) - c.pos }

func (c *cursor) grow(n int) {
	need := c.pos + n
	for cap(c.buf) < need {
		c.buf = append(c.buf, 0)
	}
	if len(c.buf) < need {
		c.buf = c.buf[:need]
	}
}

// WriteBytes writes p at the current position, overwriting existing
// bytes if the cursor was seeked backward, or growing the buffer if it
// was at the end. The position advances past what was written.
func (c *cursor) WriteBytes(p []byte) {
	c.grow(len(p))
	copy(c.buf[c.pos:], p)
	c.pos += len(p)
}

func (c *cursor) WriteUint16(v uint16) {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	c.WriteBytes(b[:])
}

func (c *cursor) WriteUint32(v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	c.WriteBytes(b[:])
}

// ReadBytes reads and returns a slice aliasing n bytes at the current
// position, advancing past them. The slice aliases the cursor's
// backing array; callers that must keep it past the next write should
// copy it.
func (c *cursor) ReadBytes(n int) ([]byte, error) {
	if n < 0 || c.pos+n > len(c.buf) {
		return nil, io.ErrUnexpectedEOF
	}
	v := c.buf[c.pos : c.pos+n]
	c.pos += n

	return v, nil
}

func (c *cursor) ReadUint16() (uint16, error) {
	b, err := c.ReadBytes(2)
	if err != nil {
		return 0, err
	}

	return binary.BigEndian.Uint16(b), nil
}

func (c *cursor) ReadUint32() (uint32, error) {
	b, err := c.ReadBytes(4)
	if err != nil {
		return 0, err
	}

	return binary.BigEndian.Uint32(b), nil
}

// PeekAt returns n bytes starting at an absolute offset without
// disturbing the current position. The codec itself does not call it.
func (c *cursor) PeekAt(offset, n int) ([]byte, error) {
	if offset < 0 || n < 0 || offset+n > len(c.buf) {
		return nil, io.ErrUnexpectedEOF
	}

	return c.buf[offset : offset+n], nil
}
