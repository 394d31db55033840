package stun

import (
	"net"
	"time"
)

const inboundBufferSize = 1500

// Client is a minimal UDP STUN client: one request/response exchange
// with retry-on-timeout, grounded on CherrySTUN::STUNClient::StunClient
// (itself based on the rust-stunclient crate) and generalized to the
// codec's Message/Context types.
type Client struct {
	// Timeout is the end-to-end deadline for the whole exchange,
	// including every retry.
	Timeout time.Duration
	// RetryInterval is how often an unacknowledged request is resent.
	RetryInterval time.Duration
	// Software, if non-empty, is attached to outgoing requests as the
	// SOFTWARE attribute.
	Software string
}

// NewClient returns a Client with the defaults CherrySTUN's StunClient
// constructor uses: a 10s overall timeout and 1s retry interval.
func NewClient() *Client {
	return &Client{
		Timeout:       10 * time.Second,
		RetryInterval: 1 * time.Second,
		Software:      "cherrystun",
	}
}

// SendRequest sends msg to serverAddr over conn and waits for a
// matching response: matching both the source address and (per
// spec.md's resolved open question) the transaction ID. Resends on
// every read timeout until the overall Timeout elapses.
func (c *Client) SendRequest(conn *net.UDPConn, serverAddr *net.UDPAddr, msg *Message) (*Message, error) {
	if c.Software != "" {
		if err := msg.Add(Software(c.Software)); err != nil {
			return nil, err
		}
	}

	wire, err := msg.Encode()
	if err != nil {
		return nil, err
	}

	if _, err := conn.WriteToUDP(wire, serverAddr); err != nil {
		return nil, wrapError(StepNetwork, SendError, "sending STUN request", err)
	}

	// net.UDPConn exposes no getter for its current deadline, unlike the
	// socket CherrySTUN's StunClient saves and restores; the honest
	// translation is clearing it back to "no deadline" once the
	// exchange finishes.
	defer conn.SetReadDeadline(time.Time{}) //nolint:errcheck

	buf := make([]byte, inboundBufferSize)
	deadline := time.Now().Add(c.Timeout)

	for {
		now := time.Now()
		if !now.Before(deadline) {
			return nil, newError(StepNetwork, NetworkTimeout, "STUN exchange timed out waiting for a response")
		}

		step := c.RetryInterval
		if remaining := deadline.Sub(now); remaining < step {
			step = remaining
		}
		if err := conn.SetReadDeadline(now.Add(step)); err != nil {
			return nil, wrapError(StepNetwork, TimeoutSetError, "setting read deadline", err)
		}

		n, from, err := conn.ReadFromUDP(buf)
		if err != nil {
			if isTimeoutErr(err) {
				if _, werr := conn.WriteToUDP(wire, serverAddr); werr != nil {
					return nil, wrapError(StepNetwork, SendError, "resending STUN request", werr)
				}

				continue
			}

			return nil, wrapError(StepNetwork, ReceiveError, "reading STUN response", err)
		}

		if !from.IP.Equal(serverAddr.IP) || from.Port != serverAddr.Port {
			continue
		}

		resp, derr := Decode(buf[:n])
		if derr != nil {
			continue
		}

		if resp.Header.TransactionID != msg.Header.TransactionID {
			continue
		}

		return resp, nil
	}
}

func isTimeoutErr(err error) bool {
	ne, ok := err.(net.Error) //nolint:errorlint
	return ok && ne.Timeout()
}
