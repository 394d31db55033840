// Package signaling implements the peripheral WebRTC signaling broker:
// room membership and SDP offer/answer relay over WebSocket, grounded
// on CherryExchange's room/sdp handlers and cast into the envelope
// style saintparish4-altair's signaling package uses.
package signaling

import "encoding/json"

// EnvelopeType identifies what a signaling Envelope is carrying.
type EnvelopeType string

// Envelope types the broker understands.
const (
	TypeCreateRoom EnvelopeType = "createRoom"
	TypeJoinRoom   EnvelopeType = "joinRoom"
	TypeSDPOffer   EnvelopeType = "sdpOffer"
	TypeSDPAnswer  EnvelopeType = "sdpAnswer"
	TypePing       EnvelopeType = "ping"
	TypeRoomState  EnvelopeType = "roomState"
	TypeError      EnvelopeType = "error"
)

// Envelope is the single JSON message shape exchanged over the
// broker's WebSocket connections in both directions.
type Envelope struct {
	Type     EnvelopeType    `json:"type"`
	RoomID   string          `json:"roomId,omitempty"`
	PeerID   string          `json:"peerId,omitempty"`
	TargetID string          `json:"targetId,omitempty"`
	Payload  json.RawMessage `json:"payload,omitempty"`
}

// RoomStatePayload answers createRoom/joinRoom with current membership.
type RoomStatePayload struct {
	RoomID string   `json:"roomId"`
	Peers  []string `json:"peers"`
}

// ErrorPayload reports a broker-level failure back to the client.
type ErrorPayload struct {
	Message string `json:"message"`
}
