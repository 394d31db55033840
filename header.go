package stun

import (
	"crypto/rand"
	"fmt"
)

const (
	headerSize        = 20
	magicCookie       = 0x2112A442
	transactionIDSize = 12
	attrHeaderSize    = 4
)

// MessageClass is the 2-bit class carried in the STUN message type.
type MessageClass uint8

// The four STUN message classes (RFC 5389 §6).
const (
	ClassRequest MessageClass = iota
	ClassIndication
	ClassSuccessResponse
	ClassErrorResponse
)

func (c MessageClass) String() string {
	switch c {
	case ClassRequest:
		return "request"
	case ClassIndication:
		return "indication"
	case ClassSuccessResponse:
		return "success response"
	case ClassErrorResponse:
		return "error response"
	default:
		return fmt.Sprintf("class(0x%x)", uint8(c))
	}
}

// Method is the 12-bit method carried in the STUN message type.
type Method uint16

// Methods this codec knows about. The spec's scope is Binding only;
// the registry below is what InvalidMethod decoding checks against, and
// is intentionally small rather than accepting any 12-bit value, so
// that a message using a TURN/ICE method this library doesn't
// implement is rejected instead of silently parsed.
const (
	MethodBinding Method = 0x001
)

var knownMethods = map[Method]string{ //nolint:gochecknoglobals
	MethodBinding: "binding",
}

func (m Method) String() string {
	if name, ok := knownMethods[m]; ok {
		return name
	}

	return fmt.Sprintf("method(0x%x)", uint16(m))
}

// Bit positions used to interleave class and method across the 16-bit
// message-type field (RFC 5389 Figure 3). Ported from the class/method
// split the teacher library (pion/stun) derives from the same figure.
const (
	methodABits = 0xf
	methodBBits = 0x70
	methodDBits = 0xf80

	methodBShift = 1
	methodDShift = 2

	classC0Bit = 0x1
	classC1Bit = 0x2

	classC0Shift = 4
	classC1Shift = 7
)

// messageTypeValue packs class and method into the 16-bit wire value.
func messageTypeValue(class MessageClass, method Method) uint16 {
	m := uint16(method)
	a := m & methodABits
	b := m & methodBBits
	d := m & methodDBits
	methodBits := a + (b << methodBShift) + (d << methodDShift)

	c := uint16(class)
	c0 := (c & classC0Bit) << classC0Shift
	c1 := (c & classC1Bit) << classC1Shift

	return methodBits + c0 + c1
}

// splitMessageType extracts class and method from the 16-bit wire
// value, rejecting method bit patterns this library hasn't registered.
// Per spec §4.1: class is read via mask 0x0110, method via mask 0x3EEF;
// both lookups must resolve to a known value.
func splitMessageType(v uint16) (MessageClass, Method, *STUNError) {
	c0 := (v >> classC0Shift) & classC0Bit
	c1 := (v >> classC1Shift) & classC1Bit
	class := MessageClass(c0 + c1)

	switch class {
	case ClassRequest, ClassIndication, ClassSuccessResponse, ClassErrorResponse:
	default:
		// Unreachable: class is reconstructed from exactly 2 bits, so
		// it can only ever be 0-3, and all four are defined above.
		return 0, 0, newError(StepDecode, InvalidClass, "message type yielded an undefined class")
	}

	a := v & methodABits
	b := (v >> methodBShift) & methodBBits
	d := (v >> methodDShift) & methodDBits
	method := Method(a + b + d)

	if _, ok := knownMethods[method]; !ok {
		return 0, 0, newError(StepDecode, InvalidMethod,
			fmt.Sprintf("unrecognized STUN method 0x%x", uint16(method)))
	}

	return class, method, nil
}

// Header is the fixed 20-byte STUN message prelude. Construct one only
// through NewHeader/the Message facade; the unexported sealed field
// blocks struct-literal construction from outside the package.
type Header struct {
	Class         MessageClass
	Method        Method
	Length        uint16
	TransactionID [transactionIDSize]byte
	sealed        struct{} //nolint:unused
}

// NewHeader builds a Header with Length=0 (filled in later by the body
// encoder) and a transaction ID drawn from crypto/rand if tid is nil.
func NewHeader(class MessageClass, method Method, tid *[transactionIDSize]byte) (Header, error) {
	h := Header{Class: class, Method: method}
	if tid != nil {
		h.TransactionID = *tid

		return h, nil
	}

	if _, err := rand.Read(h.TransactionID[:]); err != nil {
		return Header{}, wrapError(StepEncode, InternalError, "generating transaction ID", err)
	}

	return h, nil
}

// encode writes the 20-byte header to c at its current position.
func (h Header) encode(c *cursor) {
	c.WriteUint16(messageTypeValue(h.Class, h.Method))
	c.WriteUint16(h.Length)
	c.WriteUint32(magicCookie)
	c.WriteBytes(h.TransactionID[:])
}

// decodeHeader reads a Header from the start of c, which must be
// positioned at offset 0.
func decodeHeader(c *cursor) (Header, *STUNError) {
	if c.Len() < headerSize {
		return Header{}, newError(StepDecode, WrongSize,
			fmt.Sprintf("buffer of %d bytes is smaller than the 20-byte header", c.Len()))
	}

	typeBits, err := c.ReadUint16()
	if err != nil {
		return Header{}, wrapError(StepDecode, ReadError, "reading message type", err)
	}
	class, method, serr := splitMessageType(typeBits)
	if serr != nil {
		return Header{}, serr
	}

	length, err := c.ReadUint16()
	if err != nil {
		return Header{}, wrapError(StepDecode, ReadError, "reading message length", err)
	}

	cookie, err := c.ReadUint32()
	if err != nil {
		return Header{}, wrapError(StepDecode, ReadError, "reading magic cookie", err)
	}
	if cookie != magicCookie {
		return Header{}, newError(StepDecode, MagicCookieMismatch,
			fmt.Sprintf("0x%x is not the STUN magic cookie", cookie))
	}

	tidBytes, err := c.ReadBytes(transactionIDSize)
	if err != nil {
		return Header{}, wrapError(StepDecode, ReadError, "reading transaction ID", err)
	}

	h := Header{Class: class, Method: method, Length: length}
	copy(h.TransactionID[:], tidBytes)

	return h, nil
}
