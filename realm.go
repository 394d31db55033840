package stun

import (
	"unicode/utf8"

	"github.com/navinshrinivas/cherrystun/internal/saslprep"
)

// Realm carries the REALM attribute (RFC 5389 §15.7), used by a server
// to signal which long-term credential realm a client should
// authenticate against.
type Realm string

func (r Realm) AddTo(msg *Message) error {
	return r.AddToContext(msg, &Context{})
}

func (r Realm) AddToContext(msg *Message, ctx *Context) error {
	value := string(r)
	if value == "" {
		value = strOrEmpty(ctx.Realm)
	}
	if value == "" {
		return newError(StepEncode, RequiredContextMissing, "REALM has no value and context has none either")
	}
	if !utf8.ValidString(value) {
		return newError(StepEncode, UTF8DecodeError, "REALM is not valid UTF-8")
	}

	prepped, err := saslprep.OpaqueString(value)
	if err != nil {
		return newError(StepEncode, SASLPrepError, err.Error())
	}

	fillIfAbsent(&ctx.Realm, prepped)

	return msg.addRaw(AttrRealm, []byte(prepped))
}

func (r *Realm) GetFrom(msg *Message) error {
	return r.GetFromContext(msg, &Context{})
}

func (r *Realm) GetFromContext(msg *Message, ctx *Context) error {
	raw, ok := msg.Body.Get(AttrRealm)
	if !ok {
		return newError(StepDecode, DidNotFindExpectedAttribute, "REALM not present")
	}
	if !utf8.Valid(raw.Value) {
		return newError(StepDecode, UTF8DecodeError, "REALM value is not valid UTF-8")
	}

	prepped, err := saslprep.OpaqueString(string(raw.Value))
	if err != nil {
		return newError(StepDecode, SASLPrepError, err.Error())
	}

	*r = Realm(prepped)
	fillIfAbsent(&ctx.Realm, prepped)

	return nil
}
