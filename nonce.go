package stun

import "unicode/utf8"

// Nonce carries the NONCE attribute (RFC 5389 §15.8), a server
// challenge value a client echoes back on the authenticated retry. It
// is opaque and not SASLprepped (RFC 5389 specifies nonces as an
// opaque quoted string, not a SASL identity).
type Nonce string

func (n Nonce) AddTo(msg *Message) error {
	return n.AddToContext(msg, &Context{})
}

func (n Nonce) AddToContext(msg *Message, ctx *Context) error {
	value := string(n)
	if value == "" {
		value = strOrEmpty(ctx.Nonce)
	}
	if value == "" {
		return newError(StepEncode, RequiredContextMissing, "NONCE has no value and context has none either")
	}
	if !utf8.ValidString(value) {
		return newError(StepEncode, UTF8DecodeError, "NONCE is not valid UTF-8")
	}

	fillIfAbsent(&ctx.Nonce, value)

	return msg.addRaw(AttrNonce, []byte(value))
}

func (n *Nonce) GetFrom(msg *Message) error {
	return n.GetFromContext(msg, &Context{})
}

func (n *Nonce) GetFromContext(msg *Message, ctx *Context) error {
	raw, ok := msg.Body.Get(AttrNonce)
	if !ok {
		return newError(StepDecode, DidNotFindExpectedAttribute, "NONCE not present")
	}
	if !utf8.Valid(raw.Value) {
		return newError(StepDecode, UTF8DecodeError, "NONCE value is not valid UTF-8")
	}

	value := string(raw.Value)
	*n = Nonce(value)
	fillIfAbsent(&ctx.Nonce, value)

	return nil
}
