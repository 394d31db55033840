package stun

import "fmt"

// Body holds every attribute a Message carries, decoded to the
// RawAttribute level, plus the comprehension-optional unknown types
// seen while decoding (spec.md §4.3 unknown-attribute policy).
type Body struct {
	Attributes        Attributes
	UnknownAttributes []AttrType
	sealed            struct{} //nolint:unused
}

// Get proxies to Attributes.Get.
func (b Body) Get(t AttrType) (RawAttribute, bool) {
	return b.Attributes.Get(t)
}

// lastType reports the type of the last attribute appended, or false
// if the body is empty.
func (b Body) lastType() (AttrType, bool) {
	if len(b.Attributes) == 0 {
		return 0, false
	}

	return b.Attributes[len(b.Attributes)-1].Type, true
}

// hasFingerprint reports whether a FINGERPRINT has already been added,
// which must always be the true last attribute.
func (b Body) hasFingerprint() bool {
	_, ok := b.Attributes.Get(AttrFingerprint)

	return ok
}

// appendRaw appends a TLV to the body, encoding it at c's current
// position (which must be the end of whatever has been written so
// far) and enforcing ordering invariants.
func (b *Body) appendRaw(c *cursor, t AttrType, value []byte) *STUNError {
	if b.hasFingerprint() {
		return newError(StepEncode, AttributeStructureMismatch,
			"cannot append an attribute after FINGERPRINT, which must be last")
	}
	start := c.Pos()
	c.WriteUint16(uint16(t))
	c.WriteUint16(uint16(len(value)))
	c.WriteBytes(value)

	padded := nearestPaddedValueLength(len(value))
	if pad := padded - len(value); pad > 0 {
		c.WriteBytes(make([]byte, pad))
	}

	b.Attributes = append(b.Attributes, RawAttribute{
		Type:   t,
		Length: uint16(len(value)),
		Value:  c.Bytes()[start+attrHeaderSize : start+attrHeaderSize+len(value)],
	})

	return nil
}

// decodeBody walks c from its current position (immediately after the
// 20-byte header) to the end of the buffer, splitting it into TLVs and
// applying the comprehension policy from spec.md §4.3.
func decodeBody(c *cursor) (Body, *STUNError) {
	var body Body

	for c.Remaining() > 0 {
		if c.Remaining() < attrHeaderSize {
			return Body{}, newError(StepDecode, WrongSize, "trailing bytes too short for an attribute header")
		}

		typeBits, err := c.ReadUint16()
		if err != nil {
			return Body{}, wrapError(StepDecode, ReadError, "reading attribute type", err)
		}
		length, err := c.ReadUint16()
		if err != nil {
			return Body{}, wrapError(StepDecode, ReadError, "reading attribute length", err)
		}

		t := AttrType(typeBits)
		value, rerr := c.ReadBytes(int(length))
		if rerr != nil {
			return Body{}, wrapError(StepDecode, ReadError,
				fmt.Sprintf("reading %d-byte value for %s", length, t), rerr)
		}

		padded := nearestPaddedValueLength(int(length))
		if pad := padded - int(length); pad > 0 {
			if _, err := c.ReadBytes(pad); err != nil {
				return Body{}, wrapError(StepDecode, ReadError, "reading attribute padding", err)
			}
		}

		if _, known := attrTypeNames[t]; !known {
			if t.ComprehensionRequired() {
				return Body{}, newError(StepDecode, UnknownComprehensionRequired,
					fmt.Sprintf("unknown comprehension-required attribute 0x%04x", uint16(t)))
			}
			body.UnknownAttributes = append(body.UnknownAttributes, t)

			continue
		}

		body.Attributes = append(body.Attributes, RawAttribute{Type: t, Length: length, Value: value})
	}

	return body, nil
}
