package stun

import (
	"unicode/utf8"

	"github.com/navinshrinivas/cherrystun/internal/saslprep"
)

// Username carries the USERNAME attribute (RFC 5389 §15.3). Encoding
// SASLpreps the value; if the attribute's own Value is empty the
// context's Username is used instead, and either way the value ends up
// mirrored into ctx.Username so a later MESSAGE-INTEGRITY in the same
// exchange can find it without the caller repeating itself.
type Username string

func (u Username) AddTo(msg *Message) error {
	return u.AddToContext(msg, &Context{})
}

func (u Username) AddToContext(msg *Message, ctx *Context) error {
	value := string(u)
	if value == "" {
		value = strOrEmpty(ctx.Username)
	}
	if value == "" {
		return newError(StepEncode, RequiredContextMissing, "USERNAME has no value and context has none either")
	}
	if !utf8.ValidString(value) {
		return newError(StepEncode, UTF8DecodeError, "USERNAME is not valid UTF-8")
	}

	prepped, err := saslprep.Username(value)
	if err != nil {
		return newError(StepEncode, SASLPrepError, err.Error())
	}

	fillIfAbsent(&ctx.Username, prepped)

	return msg.addRaw(AttrUsername, []byte(prepped))
}

func (u *Username) GetFrom(msg *Message) error {
	return u.GetFromContext(msg, &Context{})
}

func (u *Username) GetFromContext(msg *Message, ctx *Context) error {
	raw, ok := msg.Body.Get(AttrUsername)
	if !ok {
		return newError(StepDecode, DidNotFindExpectedAttribute, "USERNAME not present")
	}
	if !utf8.Valid(raw.Value) {
		return newError(StepDecode, UTF8DecodeError, "USERNAME value is not valid UTF-8")
	}

	prepped, err := saslprep.Username(string(raw.Value))
	if err != nil {
		return newError(StepDecode, SASLPrepError, err.Error())
	}

	*u = Username(prepped)
	fillIfAbsent(&ctx.Username, prepped)

	return nil
}
