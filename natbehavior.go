package stun

import (
	"net"
)

// MappingBehavior classifies how a NAT allocates external mappings for
// outbound traffic, per RFC 5780's three-test discovery procedure.
type MappingBehavior int

// Mapping behaviors RFC 5780 §4.3 distinguishes.
const (
	MappingEndpointIndependent MappingBehavior = iota
	MappingAddressDependent
	MappingAddressAndPortDependent
)

func (m MappingBehavior) String() string {
	switch m {
	case MappingEndpointIndependent:
		return "endpoint-independent"
	case MappingAddressDependent:
		return "address-dependent"
	case MappingAddressAndPortDependent:
		return "address-and-port-dependent"
	default:
		return "unknown"
	}
}

// DiscoverMapping runs RFC 5780's Test I / Test II / Test III sequence
// against a server that supports OTHER-ADDRESS, classifying how the
// local NAT maps this socket's outbound traffic.
//
// Test I: ordinary binding request to the primary address.
// Test II: binding request to the server's other address, same port.
// Test III: binding request to the server's other address and port.
// The mapping type is decided by comparing the XOR-MAPPED-ADDRESS
// reflexive values each test observes: if Test I and Test II agree,
// the NAT is endpoint-independent; otherwise Test II vs Test III decides
// address-dependent vs address-and-port-dependent.
func (c *Client) DiscoverMapping(conn *net.UDPConn, primary *net.UDPAddr) (MappingBehavior, error) {
	reflexive1, other, err := c.testI(conn, primary)
	if err != nil {
		return 0, err
	}
	if other == nil {
		return 0, newError(StepUtils, UnsupportedNATType, "server did not return OTHER-ADDRESS; mapping discovery needs RFC 5780 support")
	}

	testIIAddr := &net.UDPAddr{IP: other.IP, Port: primary.Port}
	reflexive2, err := c.plainBindingReflexive(conn, testIIAddr)
	if err != nil {
		return 0, err
	}

	if reflexive1.IP.Equal(reflexive2.IP) && reflexive1.Port == reflexive2.Port {
		return MappingEndpointIndependent, nil
	}

	testIIIAddr := &net.UDPAddr{IP: other.IP, Port: other.Port}
	reflexive3, err := c.plainBindingReflexive(conn, testIIIAddr)
	if err != nil {
		return 0, err
	}

	if reflexive2.IP.Equal(reflexive3.IP) && reflexive2.Port == reflexive3.Port {
		return MappingAddressDependent, nil
	}

	return MappingAddressAndPortDependent, nil
}

type reflexiveAddr struct {
	IP   net.IP
	Port uint16
}

// testI performs the baseline binding request and also returns the
// server's advertised OTHER-ADDRESS, if any, for the later tests.
func (c *Client) testI(conn *net.UDPConn, primary *net.UDPAddr) (reflexiveAddr, *Addr, error) {
	refl, resp, err := c.bindingWithResponse(conn, primary)
	if err != nil {
		return reflexiveAddr{}, nil, err
	}

	var other OtherAddress
	if oerr := other.GetFrom(resp); oerr == nil {
		a := Addr(other)

		return refl, &a, nil
	}

	return refl, nil, nil
}

func (c *Client) plainBindingReflexive(conn *net.UDPConn, addr *net.UDPAddr) (reflexiveAddr, error) {
	refl, _, err := c.bindingWithResponse(conn, addr)

	return refl, err
}

func (c *Client) bindingWithResponse(conn *net.UDPConn, addr *net.UDPAddr) (reflexiveAddr, *Message, error) {
	msg, err := NewMessage(ClassRequest, MethodBinding, nil)
	if err != nil {
		return reflexiveAddr{}, nil, err
	}

	resp, err := c.SendRequest(conn, addr, msg)
	if err != nil {
		return reflexiveAddr{}, nil, err
	}

	var xored XORMappedAddress
	if xerr := xored.GetFrom(resp); xerr != nil {
		return reflexiveAddr{}, nil, xerr
	}

	return reflexiveAddr{IP: xored.IP, Port: xored.Port}, resp, nil
}
