package signaling

import (
	"encoding/json"
	"testing"
)

func TestEnvelopeRoundTrip(t *testing.T) {
	payload, err := json.Marshal(RoomStatePayload{RoomID: "abc123", Peers: []string{"alice", "bob"}})
	if err != nil {
		t.Fatal(err)
	}

	env := Envelope{Type: TypeRoomState, RoomID: "abc123", Payload: payload}

	data, err := json.Marshal(env)
	if err != nil {
		t.Fatal(err)
	}

	var decoded Envelope
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded.Type != TypeRoomState || decoded.RoomID != "abc123" {
		t.Fatalf("got %+v", decoded)
	}

	var state RoomStatePayload
	if err := json.Unmarshal(decoded.Payload, &state); err != nil {
		t.Fatal(err)
	}
	if len(state.Peers) != 2 {
		t.Fatalf("got %v, want 2 peers", state.Peers)
	}
}

func TestEnvelopeOmitsEmptyFields(t *testing.T) {
	env := Envelope{Type: TypePing}

	data, err := json.Marshal(env)
	if err != nil {
		t.Fatal(err)
	}

	var asMap map[string]any
	if err := json.Unmarshal(data, &asMap); err != nil {
		t.Fatal(err)
	}
	for _, field := range []string{"roomId", "peerId", "targetId", "payload"} {
		if _, present := asMap[field]; present {
			t.Fatalf("expected %q to be omitted from %s", field, data)
		}
	}
}
