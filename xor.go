package stun

import (
	"encoding/binary"
	"net"

	"github.com/pion/transport/v4/utils/xor"
)

var magicCookieBytes = [4]byte{0x21, 0x12, 0xA4, 0x42} //nolint:gochecknoglobals

// xorBytes obfuscates/deobfuscates v against key using pion/transport's
// XorBytes (the library the teacher reaches for this exact concern in
// xoraddr.go). key is always the full 16-byte magic-cookie||transaction-id
// block; XorBytes only consumes as many bytes as len(v) needs, which is
// what lets the same call serve both the 4-byte IPv4 and 16-byte IPv6
// cases. It is its own inverse, which is the whole point: the same call
// both obfuscates and deobfuscates an XOR-MAPPED-ADDRESS value.
func xorBytes(v, key []byte) []byte {
	out := make([]byte, len(v))
	xor.XorBytes(out, v, key)

	return out
}

// XORMappedAddress is the server-reflexive address obfuscated per RFC
// 5389 §15.2: the port is XORed with the top 16 bits of the magic
// cookie, and the address is XORed with the magic cookie (IPv4) or
// magic-cookie‖transaction-id (IPv6).
//
// The transaction ID used for IPv6 obfuscation is read directly from
// msg.Header.TransactionID: NewMessage/NewHeader always populate it
// before a Body attribute can be added, so there's no ordering hazard
// to guard against.
type XORMappedAddress Addr

func (x XORMappedAddress) AddTo(msg *Message) error {
	family, ipBytes, err := familyOf(x.IP)
	if err != nil {
		return err
	}

	// Always build the full 16-byte magic-cookie||transaction-id block;
	// xorBytes only consumes the first len(ipBytes) bytes of it, which
	// collapses the IPv4/IPv6 cases to a single call.
	key := make([]byte, 0, 16)
	key = append(key, magicCookieBytes[:]...)
	key = append(key, msg.Header.TransactionID[:]...)

	portXOR := uint16(x.Port) ^ binary.BigEndian.Uint16(magicCookieBytes[:2])

	c := newCursor(nil)
	c.WriteBytes([]byte{0x00, family})
	c.WriteUint16(portXOR)
	c.WriteBytes(xorBytes(ipBytes, key))

	return msg.addRaw(AttrXORMappedAddress, c.Bytes())
}

func (x *XORMappedAddress) GetFrom(msg *Message) error {
	raw, ok := msg.Body.Get(AttrXORMappedAddress)
	if !ok {
		return newError(StepDecode, DidNotFindExpectedAttribute, "XOR-MAPPED-ADDRESS not present")
	}
	if len(raw.Value) < addrHeaderSize {
		return newError(StepDecode, AttributeStructureMismatch, "XOR-MAPPED-ADDRESS value shorter than 4 bytes")
	}

	family := raw.Value[1]
	portXOR := uint16(raw.Value[2])<<8 | uint16(raw.Value[3])
	port := portXOR ^ binary.BigEndian.Uint16(magicCookieBytes[:2])
	body := raw.Value[addrHeaderSize:]

	switch family {
	case familyIPv4:
		if len(body) != net.IPv4len {
			return newError(StepDecode, AttributeStructureMismatch, "XOR IPv4 value is not 4 bytes")
		}
	case familyIPv6:
		if len(body) != net.IPv6len {
			return newError(StepDecode, AttributeStructureMismatch, "XOR IPv6 value is not 16 bytes")
		}
	default:
		return newError(StepDecode, XORObfuscationError, "unknown address family in XOR-MAPPED-ADDRESS")
	}

	key := make([]byte, 0, 16)
	key = append(key, magicCookieBytes[:]...)
	key = append(key, msg.Header.TransactionID[:]...)

	ip := xorBytes(body, key)
	*x = XORMappedAddress{IP: net.IP(ip), Port: port}

	return nil
}
