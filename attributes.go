package stun

import "fmt"

// AttrType is the 16-bit STUN attribute type field (RFC 5389 §18.2).
type AttrType uint16

// Attribute types this codec understands. Values from 0x8000 up are
// comprehension-optional; everything below is comprehension-required
// (spec.md §4.3 / RFC 5389 §15).
const (
	AttrMappedAddress     AttrType = 0x0001
	AttrUsername          AttrType = 0x0006
	AttrMessageIntegrity  AttrType = 0x0008
	AttrErrorCode         AttrType = 0x0009
	AttrUnknownAttributes AttrType = 0x000A
	AttrRealm             AttrType = 0x0014
	AttrNonce             AttrType = 0x0015
	AttrXORMappedAddress  AttrType = 0x0020
	AttrSoftware          AttrType = 0x8022
	AttrAlternateServer   AttrType = 0x8023
	AttrFingerprint       AttrType = 0x8028
	AttrOtherAddress      AttrType = 0x802C
)

var attrTypeNames = map[AttrType]string{ //nolint:gochecknoglobals
	AttrMappedAddress:     "MAPPED-ADDRESS",
	AttrUsername:          "USERNAME",
	AttrMessageIntegrity:  "MESSAGE-INTEGRITY",
	AttrErrorCode:         "ERROR-CODE",
	AttrUnknownAttributes: "UNKNOWN-ATTRIBUTES",
	AttrRealm:             "REALM",
	AttrNonce:             "NONCE",
	AttrXORMappedAddress:  "XOR-MAPPED-ADDRESS",
	AttrSoftware:          "SOFTWARE",
	AttrAlternateServer:   "ALTERNATE-SERVER",
	AttrFingerprint:       "FINGERPRINT",
	AttrOtherAddress:      "OTHER-ADDRESS",
}

func (t AttrType) String() string {
	if name, ok := attrTypeNames[t]; ok {
		return name
	}

	return fmt.Sprintf("attribute(0x%04x)", uint16(t))
}

// ComprehensionRequired reports whether an unrecognized attribute of
// this type must abort decoding (RFC 5389 §15: the top bit of the type
// selects comprehension-optional vs comprehension-required).
func (t AttrType) ComprehensionRequired() bool {
	return t&0x8000 == 0
}

// RawAttribute is a decoded TLV before its value has been interpreted
// by a specific attribute codec (MappedAddress, Username, ...). Value
// is the unpadded value as it appeared on the wire, aliasing the
// message's buffer.
type RawAttribute struct {
	Type   AttrType
	Length uint16
	Value  []byte
}

// Attributes is the ordered sequence of attributes a Message carries.
// Order matters: MESSAGE-INTEGRITY and FINGERPRINT must each be able to
// see everything that precedes them, and FINGERPRINT must be last.
type Attributes []RawAttribute

// Get returns the first attribute of the given type, if present.
func (a Attributes) Get(t AttrType) (RawAttribute, bool) {
	for _, attr := range a {
		if attr.Type == t {
			return attr, true
		}
	}

	return RawAttribute{}, false
}

// GetAll returns every attribute of the given type, in order.
func (a Attributes) GetAll(t AttrType) []RawAttribute {
	var out []RawAttribute
	for _, attr := range a {
		if attr.Type == t {
			out = append(out, attr)
		}
	}

	return out
}

// nearestPaddedValueLength rounds n up to the next multiple of 4, the
// padding rule every attribute value is stored under (RFC 5389 §15).
func nearestPaddedValueLength(n int) int {
	if rem := n % 4; rem != 0 {
		return n + (4 - rem)
	}

	return n
}
