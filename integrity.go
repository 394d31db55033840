package stun

import (
	"crypto/hmac"
	"crypto/md5" //nolint:gosec

	pionhmac "github.com/navinshrinivas/cherrystun/internal/hmac"
	"github.com/navinshrinivas/cherrystun/internal/saslprep"
)

const messageIntegritySize = 20

// MessageIntegrity is the MESSAGE-INTEGRITY attribute (RFC 5389
// §15.4): an HMAC-SHA1 over everything preceding it, computed with the
// message's Length field temporarily rewritten to the size it has with
// this attribute as the last one; a FINGERPRINT following it is not
// counted in that length. It must be the last attribute, or the
// second-to-last if a FINGERPRINT follows.
//
// Key derivation follows RFC 5389 §15.4: long-term credentials use
// MD5(username ":" realm ":" SASLprep(password)); short-term
// credentials use SASLprep(password) directly. Username/realm/password
// not set explicitly on the value are pulled from the Context, the
// same write-through behaviour USERNAME/REALM/NONCE use.
type MessageIntegrity struct {
	Username string
	Realm    string
	Password string
	LongTerm bool
}

func (m MessageIntegrity) key(ctx *Context) ([]byte, error) {
	password := m.Password
	if password == "" {
		password = strOrEmpty(ctx.Password)
	}
	if password == "" {
		return nil, newError(StepEncode, RequiredContextMissing, "MESSAGE-INTEGRITY needs a password")
	}

	preppedPassword, err := saslprep.OpaqueString(password)
	if err != nil {
		return nil, newError(StepEncode, SASLPrepError, err.Error())
	}

	if !m.LongTerm {
		return []byte(preppedPassword), nil
	}

	username := m.Username
	if username == "" {
		username = strOrEmpty(ctx.Username)
	}
	realm := m.Realm
	if realm == "" {
		realm = strOrEmpty(ctx.Realm)
	}
	if username == "" || realm == "" {
		return nil, newError(StepEncode, RequiredContextMissing,
			"long-term MESSAGE-INTEGRITY needs USERNAME and REALM")
	}

	preppedUsername, err := saslprep.Username(username)
	if err != nil {
		return nil, newError(StepEncode, SASLPrepError, err.Error())
	}

	sum := md5.Sum([]byte(preppedUsername + ":" + realm + ":" + preppedPassword)) //nolint:gosec

	return sum[:], nil
}

func (m MessageIntegrity) AddTo(msg *Message) error {
	return m.AddToContext(msg, &Context{})
}

func (m MessageIntegrity) AddToContext(msg *Message, ctx *Context) error {
	key, kerr := m.key(ctx)
	if kerr != nil {
		return kerr
	}

	if err := msg.addRaw(AttrMessageIntegrity, make([]byte, messageIntegritySize)); err != nil {
		return err
	}

	n := len(msg.Body.Attributes)
	attrStart := headerSize
	for _, attr := range msg.Body.Attributes[:n-1] {
		attrStart += attrHeaderSize + nearestPaddedValueLength(int(attr.Length))
	}

	// The HMAC covers a message whose Length field already accounts for
	// this attribute's own 24 bytes (4-byte TLV header + 20-byte
	// digest), so the final Encode() doesn't change the bytes being
	// authenticated.
	finalLength := uint16(attrStart - headerSize + attrHeaderSize + messageIntegritySize)
	prefix := msg.rawPrefixForHash(attrStart, finalLength)

	mac := computeHMACSHA1(key, prefix)

	last := &msg.Body.Attributes[n-1]
	copy(last.Value, mac)
	msg.Header.Length = finalLength

	return nil
}

// Check recomputes the HMAC over a decoded message's prefix and
// compares it against the wire value in constant time.
func (m MessageIntegrity) Check(msg *Message, ctx *Context) error {
	raw, ok := msg.Body.Get(AttrMessageIntegrity)
	if !ok {
		return newError(StepDecode, DidNotFindExpectedAttribute, "MESSAGE-INTEGRITY not present")
	}
	if len(raw.Value) != messageIntegritySize {
		return newError(StepDecode, AttributeStructureMismatch, "MESSAGE-INTEGRITY value is not 20 bytes")
	}

	idx := -1
	for i, attr := range msg.Body.Attributes {
		if attr.Type == AttrMessageIntegrity {
			idx = i

			break
		}
	}

	attrStart := headerSize
	for _, attr := range msg.Body.Attributes[:idx] {
		attrStart += attrHeaderSize + nearestPaddedValueLength(int(attr.Length))
	}

	// The HMAC was computed at encode time against a Length field as if
	// MESSAGE-INTEGRITY were the last attribute, even when a FINGERPRINT
	// follows it on the wire. Recompute that same pseudo-length here
	// rather than using msg.Header.Length, which (after decode) reflects
	// the message's true total size and would include FINGERPRINT's
	// extra 8 bytes.
	lengthIfFinal := uint16(attrStart - headerSize + attrHeaderSize + messageIntegritySize)
	prefix := msg.rawPrefixForHash(attrStart, lengthIfFinal)

	key, kerr := m.key(ctx)
	if kerr != nil {
		return kerr
	}

	want := computeHMACSHA1(key, prefix)
	if !hmac.Equal(want, raw.Value) {
		return newError(StepDecode, MessageIntegrityMismatch, "MESSAGE-INTEGRITY does not match computed HMAC")
	}

	return nil
}

func computeHMACSHA1(key, data []byte) []byte {
	h := pionhmac.AcquireSHA1(key)
	defer pionhmac.PutSHA1(h)

	h.Write(data) //nolint:errcheck,gosec

	return h.Sum(nil)
}
