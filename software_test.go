package stun

import "testing"

func TestSoftwareRoundTrip(t *testing.T) {
	msg, err := NewMessage(ClassRequest, MethodBinding, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := Software("cherrystun/0.1").AddTo(msg); err != nil {
		t.Fatal(err)
	}

	var got Software
	if err := got.GetFrom(msg); err != nil {
		t.Fatal(err)
	}
	if string(got) != "cherrystun/0.1" {
		t.Fatalf("got %q", got)
	}
}

func TestSoftwareMissingFails(t *testing.T) {
	msg, err := NewMessage(ClassRequest, MethodBinding, nil)
	if err != nil {
		t.Fatal(err)
	}

	var got Software
	if err := got.GetFrom(msg); err == nil {
		t.Fatal("expected DidNotFindExpectedAttribute")
	}
}
