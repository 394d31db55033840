package stun

import (
	"net"
	"testing"
	"time"
)

// natTestServer models the three sockets RFC 5780's three-test
// discovery procedure needs to exercise every DiscoverMapping branch:
// a primary address, a secondary address sharing the primary's port
// number (what Test II targets), and a secondary address with its own
// port (what OTHER-ADDRESS advertises and Test III targets).
type natTestServer struct {
	primary   *fakeServer // 127.0.0.1:P1
	otherSame *fakeServer // 127.0.0.2:P1 (Test II)
	otherPort *fakeServer // 127.0.0.2:P2 (Test III, advertised via OTHER-ADDRESS)
}

func startNATTestServer(t *testing.T, reflexiveFor func(socket string) (string, uint16)) *natTestServer {
	t.Helper()

	primaryConn, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.ParseIP("127.0.0.1")})
	if err != nil {
		t.Fatal(err)
	}
	p1 := primaryConn.LocalAddr().(*net.UDPAddr).Port

	otherSameConn, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.ParseIP("127.0.0.2"), Port: p1})
	if err != nil {
		t.Fatal(err)
	}

	otherPortConn, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.ParseIP("127.0.0.2")})
	if err != nil {
		t.Fatal(err)
	}

	s := &natTestServer{
		primary:   &fakeServer{conn: primaryConn},
		otherSame: &fakeServer{conn: otherSameConn},
		otherPort: &fakeServer{conn: otherPortConn},
	}

	announce := OtherAddress{IP: s.otherPort.addr().IP, Port: uint16(s.otherPort.addr().Port)}
	respond := func(socket string) func(req *Message, from *net.UDPAddr) *Message {
		return func(req *Message, _ *net.UDPAddr) *Message {
			ip, port := reflexiveFor(socket)
			resp := reflexiveResponse(t, req, ip, port)
			if err := announce.AddTo(resp); err != nil {
				t.Fatal(err)
			}

			return resp
		}
	}

	s.primary.respond = respond("primary")
	s.otherSame.respond = respond("otherSame")
	s.otherPort.respond = respond("otherPort")

	go s.primary.serve()
	go s.otherSame.serve()
	go s.otherPort.serve()

	return s
}

func (s *natTestServer) close() {
	s.primary.close()
	s.otherSame.close()
	s.otherPort.close()
}

func newTestClient() *Client {
	c := NewClient()
	c.Timeout = 2 * time.Second
	c.RetryInterval = 200 * time.Millisecond

	return c
}

// Scenario 6 from spec.md §8: a simulated server that echoes a
// constant XOR-MAPPED-ADDRESS across both endpoints (Test I and Test
// II agree) must classify as endpoint-independent.
func TestDiscoverMappingEndpointIndependentConstantReflexive(t *testing.T) {
	server := startNATTestServer(t, func(string) (string, uint16) {
		return "203.0.113.42", 54321
	})
	defer server.close()

	conn, err := net.ListenUDP("udp4", nil)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close() //nolint:errcheck

	client := newTestClient()
	behavior, err := client.DiscoverMapping(conn, server.primary.addr())
	if err != nil {
		t.Fatal(err)
	}
	if behavior != MappingEndpointIndependent {
		t.Fatalf("got %v, want endpoint-independent", behavior)
	}
}

func TestDiscoverMappingAddressDependent(t *testing.T) {
	// The reflexive address changes once the destination IP changes
	// (Test I vs Test II disagree) but stays stable across the two
	// secondary-IP sockets (Test II vs Test III agree): address-dependent.
	server := startNATTestServer(t, func(socket string) (string, uint16) {
		if socket == "primary" {
			return "203.0.113.1", 40000
		}

		return "203.0.113.1", 50000
	})
	defer server.close()

	conn, err := net.ListenUDP("udp4", nil)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close() //nolint:errcheck

	client := newTestClient()
	behavior, err := client.DiscoverMapping(conn, server.primary.addr())
	if err != nil {
		t.Fatal(err)
	}
	if behavior != MappingAddressDependent {
		t.Fatalf("got %v, want address-dependent", behavior)
	}
}

func TestDiscoverMappingAddressAndPortDependent(t *testing.T) {
	// Every socket hands back a distinct reflexive address, so Test I,
	// II and III all disagree: address-and-port-dependent.
	server := startNATTestServer(t, func(socket string) (string, uint16) {
		switch socket {
		case "primary":
			return "203.0.113.1", 40000
		case "otherSame":
			return "203.0.113.1", 40001
		default:
			return "203.0.113.1", 40002
		}
	})
	defer server.close()

	conn, err := net.ListenUDP("udp4", nil)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close() //nolint:errcheck

	client := newTestClient()
	behavior, err := client.DiscoverMapping(conn, server.primary.addr())
	if err != nil {
		t.Fatal(err)
	}
	if behavior != MappingAddressAndPortDependent {
		t.Fatalf("got %v, want address-and-port-dependent", behavior)
	}
}

func TestDiscoverMappingFailsWithoutOtherAddress(t *testing.T) {
	server := startFakeServer(t, func(req *Message, _ *net.UDPAddr) *Message {
		return reflexiveResponse(t, req, "203.0.113.1", 40000)
	})
	defer server.close()

	conn, err := net.ListenUDP("udp4", nil)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close() //nolint:errcheck

	client := newTestClient()
	if _, err := client.DiscoverMapping(conn, server.addr()); err == nil {
		t.Fatal("expected UnsupportedNATType when the server omits OTHER-ADDRESS")
	}
}
