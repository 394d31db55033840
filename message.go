package stun

// Message is a fully assembled or decoded STUN message: a fixed Header
// plus an ordered Body of attributes. Construct one only via NewMessage
// or Decode; the sealed field blocks external struct literals.
type Message struct {
	Header Header
	Body   Body
	sealed struct{} //nolint:unused
}

// NewMessage builds an empty Message ready to have attributes appended
// via Add/addRaw, then Encode. tid may be nil to request a fresh
// crypto/rand transaction ID.
func NewMessage(class MessageClass, method Method, tid *[transactionIDSize]byte) (*Message, error) {
	h, err := NewHeader(class, method, tid)
	if err != nil {
		return nil, err
	}

	return &Message{Header: h}, nil
}

// Attribute is anything that knows how to append itself to a Message
// at encode time. Context-aware attributes (USERNAME, REALM, NONCE,
// MESSAGE-INTEGRITY) also take the context through AddToContext.
type Attribute interface {
	AddTo(msg *Message) error
}

// ContextAttribute is an Attribute whose encoding depends on (and may
// contribute to) a Context — USERNAME/REALM/NONCE read the context when
// their own value is empty and mirror the encoded value into it if
// absent; MESSAGE-INTEGRITY reads the credentials it wasn't given
// explicitly.
type ContextAttribute interface {
	AddToContext(msg *Message, ctx *Context) error
}

// Add appends a context-independent attribute.
func (m *Message) Add(a Attribute) error {
	return a.AddTo(m)
}

// AddWithContext appends a context-aware attribute.
func (m *Message) AddWithContext(a ContextAttribute, ctx *Context) error {
	return a.AddToContext(m, ctx)
}

// addRaw is the low-level entry point every attribute codec funnels
// through: it encodes the TLV into a scratch cursor sized to the
// existing body, then rewrites Header.Length to match.
func (m *Message) addRaw(t AttrType, value []byte) error {
	// Body.appendRaw needs a cursor positioned at the end of whatever
	// has already been serialized. Re-encoding the whole body on every
	// Add keeps Body.Attributes' Value slices consistent without a
	// second buffer-ownership model; STUN messages are small enough
	// (RFC 5389 recommends staying under a single UDP datagram) that
	// this is not a meaningful cost.
	c := newCursor(make([]byte, 0, headerSize))
	c.Seek(headerSize)
	for _, attr := range m.Body.Attributes {
		if err := reencodeRaw(c, attr); err != nil {
			return err
		}
	}

	if err := m.Body.appendRaw(c, t, value); err != nil {
		return err
	}

	m.Header.Length = uint16(c.Pos() - headerSize)

	return nil
}

func reencodeRaw(c *cursor, attr RawAttribute) *STUNError {
	c.WriteUint16(uint16(attr.Type))
	c.WriteUint16(attr.Length)
	c.WriteBytes(attr.Value)
	if pad := nearestPaddedValueLength(int(attr.Length)) - int(attr.Length); pad > 0 {
		c.WriteBytes(make([]byte, pad))
	}

	return nil
}

// Encode serializes the message to a fresh byte slice: header first,
// then every attribute in the order it was added.
func (m *Message) Encode() ([]byte, error) {
	total := headerSize + int(m.Header.Length)
	c := newCursor(make([]byte, total))
	m.Header.encode(c)

	c.Seek(headerSize)
	for _, attr := range m.Body.Attributes {
		if err := reencodeRaw(c, attr); err != nil {
			return nil, err
		}
	}

	return c.Bytes(), nil
}

// Decode parses buf into a Message. It does not interpret individual
// attribute values beyond splitting them into RawAttributes; callers
// use GetFrom methods (MappedAddress, Username, XORMappedAddress, ...)
// to interpret specific attributes, optionally against a Context.
func Decode(buf []byte) (*Message, error) {
	c := newCursor(buf)

	h, err := decodeHeader(c)
	if err != nil {
		return nil, err
	}

	if c.Remaining() < int(h.Length) {
		return nil, newError(StepDecode, InvalidMessageBinLength,
			"header length field exceeds the bytes actually present")
	}
	if c.Remaining() > int(h.Length) {
		return nil, newError(StepDecode, InvalidMessageBinLength,
			"bytes present past the header length field")
	}

	bodyBuf := newCursor(buf[:headerSize+int(h.Length)])
	bodyBuf.Seek(headerSize)

	body, berr := decodeBody(bodyBuf)
	if berr != nil {
		return nil, berr
	}

	return &Message{Header: h, Body: body}, nil
}

// rawPrefixForHash returns the bytes from the start of the message up to (but
// not including) the TLV header of the attribute at attrStart, with the
// header's Length field already rewritten to lengthIfFinal. This is the
// prefix MESSAGE-INTEGRITY and FINGERPRINT both hash over.
func (m *Message) rawPrefixForHash(attrStart int, lengthIfFinal uint16) []byte {
	saved := m.Header.Length
	m.Header.Length = lengthIfFinal

	c := newCursor(make([]byte, attrStart))
	m.Header.encode(newCursorAt(c, 0))

	pos := headerSize
	for _, attr := range m.Body.Attributes {
		attrSize := attrHeaderSize + nearestPaddedValueLength(int(attr.Length))
		if pos+attrSize > attrStart {
			break
		}
		w := newCursorAt(c, pos)
		w.WriteUint16(uint16(attr.Type))
		w.WriteUint16(attr.Length)
		w.WriteBytes(attr.Value)
		if pad := nearestPaddedValueLength(int(attr.Length)) - int(attr.Length); pad > 0 {
			w.WriteBytes(make([]byte, pad))
		}
		pos += attrSize
	}

	m.Header.Length = saved

	return c.Bytes()
}

// newCursorAt returns a cursor sharing dst's backing array but starting
// its write position at pos, used by rawPrefixForHash to place each
// piece at its final offset without growing past attrStart.
func newCursorAt(dst *cursor, pos int) *cursor {
	return &cursor{buf: dst.buf, pos: pos}
}
