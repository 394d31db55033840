package signaling

import "fmt"

func errUnknownEnvelopeType(t EnvelopeType) error {
	return fmt.Errorf("unknown envelope type %q", t)
}
