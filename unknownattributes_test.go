package stun

import "testing"

func TestUnknownAttributesRoundTripEvenCount(t *testing.T) {
	msg, err := NewMessage(ClassErrorResponse, MethodBinding, nil)
	if err != nil {
		t.Fatal(err)
	}

	want := UnknownAttributes{AttrType(0x0050), AttrType(0x0051)}
	if err := want.AddTo(msg); err != nil {
		t.Fatal(err)
	}

	var got UnknownAttributes
	if err := got.GetFrom(msg); err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestUnknownAttributesPadsOddCount(t *testing.T) {
	msg, err := NewMessage(ClassErrorResponse, MethodBinding, nil)
	if err != nil {
		t.Fatal(err)
	}

	want := UnknownAttributes{AttrType(0x0050)}
	if err := want.AddTo(msg); err != nil {
		t.Fatal(err)
	}

	var got UnknownAttributes
	if err := got.GetFrom(msg); err != nil {
		t.Fatal(err)
	}
	// RFC 5389 §15.9: an odd-length list is padded by repeating the last
	// entry, so decoding must observe two entries, both 0x0050.
	if len(got) != 2 || got[0] != AttrType(0x0050) || got[1] != AttrType(0x0050) {
		t.Fatalf("got %v, want [0x0050 0x0050]", got)
	}
}

func TestUnknownAttributesDecodeRejectsOddByteLength(t *testing.T) {
	msg, err := NewMessage(ClassErrorResponse, MethodBinding, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := msg.addRaw(AttrUnknownAttributes, []byte{0x00, 0x50, 0x00}); err != nil {
		t.Fatal(err)
	}

	var got UnknownAttributes
	if err := got.GetFrom(msg); err == nil {
		t.Fatal("expected AttributeStructureMismatch for a 3-byte value")
	}
}
