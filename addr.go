package stun

import (
	"fmt"
	"net"
)

const (
	familyIPv4 byte = 0x01
	familyIPv6 byte = 0x02

	addrHeaderSize = 4 // family(1, padded to 2) + port(2)
)

// Addr is a plain (non-obfuscated) transport address as carried by
// MAPPED-ADDRESS, ALTERNATE-SERVER and OTHER-ADDRESS (RFC 5389 §15.1,
// RFC 5780 §7.3/§7.4).
type Addr struct {
	IP   net.IP
	Port uint16
}

func (a Addr) String() string {
	return fmt.Sprintf("%s:%d", a.IP, a.Port)
}

func familyOf(ip net.IP) (byte, net.IP, *STUNError) {
	if v4 := ip.To4(); v4 != nil {
		return familyIPv4, v4, nil
	}
	if v6 := ip.To16(); v6 != nil {
		return familyIPv6, v6, nil
	}

	return 0, nil, newError(StepEncode, AttributeStructureMismatch, "address is neither IPv4 nor IPv6")
}

func encodeAddr(c *cursor, a Addr) *STUNError {
	family, ipBytes, err := familyOf(a.IP)
	if err != nil {
		return err
	}

	c.WriteBytes([]byte{0x00, family})
	c.WriteUint16(a.Port)
	c.WriteBytes(ipBytes)

	return nil
}

func decodeAddr(value []byte) (Addr, *STUNError) {
	if len(value) < addrHeaderSize {
		return Addr{}, newError(StepDecode, AttributeStructureMismatch, "address value shorter than 4 bytes")
	}

	family := value[1]
	port := uint16(value[2])<<8 | uint16(value[3])
	rest := value[addrHeaderSize:]

	switch family {
	case familyIPv4:
		if len(rest) != net.IPv4len {
			return Addr{}, newError(StepDecode, AttributeStructureMismatch, "IPv4 address value is not 4 bytes")
		}

		return Addr{IP: net.IP(append([]byte(nil), rest...)), Port: port}, nil
	case familyIPv6:
		if len(rest) != net.IPv6len {
			return Addr{}, newError(StepDecode, AttributeStructureMismatch, "IPv6 address value is not 16 bytes")
		}

		return Addr{IP: net.IP(append([]byte(nil), rest...)), Port: port}, nil
	default:
		return Addr{}, newError(StepDecode, AttributeStructureMismatch, fmt.Sprintf("unknown address family 0x%x", family))
	}
}

// MappedAddress is the unobfuscated server-reflexive address (legacy,
// but still part of the registry the spec carries forward).
type MappedAddress Addr

func (m MappedAddress) AddTo(msg *Message) error {
	c := newCursor(nil)
	if err := encodeAddr(c, Addr(m)); err != nil {
		return err
	}

	return msg.addRaw(AttrMappedAddress, c.Bytes())
}

func (m *MappedAddress) GetFrom(msg *Message) error {
	raw, ok := msg.Body.Get(AttrMappedAddress)
	if !ok {
		return newError(StepDecode, DidNotFindExpectedAttribute, "MAPPED-ADDRESS not present")
	}

	a, err := decodeAddr(raw.Value)
	if err != nil {
		return err
	}
	*m = MappedAddress(a)

	return nil
}

// AlternateServer is returned by a server redirecting the client
// elsewhere (RFC 5389 §11).
type AlternateServer Addr

func (a AlternateServer) AddTo(msg *Message) error {
	c := newCursor(nil)
	if err := encodeAddr(c, Addr(a)); err != nil {
		return err
	}

	return msg.addRaw(AttrAlternateServer, c.Bytes())
}

func (a *AlternateServer) GetFrom(msg *Message) error {
	raw, ok := msg.Body.Get(AttrAlternateServer)
	if !ok {
		return newError(StepDecode, DidNotFindExpectedAttribute, "ALTERNATE-SERVER not present")
	}

	addr, err := decodeAddr(raw.Value)
	if err != nil {
		return err
	}
	*a = AlternateServer(addr)

	return nil
}

// OtherAddress is the RFC 5780 NAT-behavior-discovery attribute a
// server uses to tell the client about its secondary address:port.
type OtherAddress Addr

func (o OtherAddress) AddTo(msg *Message) error {
	c := newCursor(nil)
	if err := encodeAddr(c, Addr(o)); err != nil {
		return err
	}

	return msg.addRaw(AttrOtherAddress, c.Bytes())
}

func (o *OtherAddress) GetFrom(msg *Message) error {
	raw, ok := msg.Body.Get(AttrOtherAddress)
	if !ok {
		return newError(StepDecode, DidNotFindExpectedAttribute, "OTHER-ADDRESS not present")
	}

	addr, err := decodeAddr(raw.Value)
	if err != nil {
		return err
	}
	*o = OtherAddress(addr)

	return nil
}
