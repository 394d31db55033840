package stun

import (
	"fmt"
	"unicode/utf8"
)

// ErrorCode carries the ERROR-CODE attribute (RFC 5389 §15.6): a
// 3-digit code split into class/number nibbles plus a human-readable
// reason phrase.
type ErrorCode struct {
	Code   int
	Reason string
}

const (
	errorCodeHeaderSize = 4
	errorCodeMinValue   = 300
	errorCodeMaxValue   = 699
)

func (e ErrorCode) AddTo(msg *Message) error {
	if e.Code < errorCodeMinValue || e.Code > errorCodeMaxValue {
		return newError(StepEncode, AttributeStructureMismatch,
			fmt.Sprintf("ERROR-CODE %d is outside the 300-699 range", e.Code))
	}
	if !utf8.ValidString(e.Reason) {
		return newError(StepEncode, UTF8DecodeError, "ERROR-CODE reason is not valid UTF-8")
	}

	class := byte(e.Code / 100)
	number := byte(e.Code % 100)

	value := make([]byte, 0, errorCodeHeaderSize+len(e.Reason))
	value = append(value, 0x00, 0x00, class, number)
	value = append(value, []byte(e.Reason)...)

	return msg.addRaw(AttrErrorCode, value)
}

func (e *ErrorCode) GetFrom(msg *Message) error {
	raw, ok := msg.Body.Get(AttrErrorCode)
	if !ok {
		return newError(StepDecode, DidNotFindExpectedAttribute, "ERROR-CODE not present")
	}
	if len(raw.Value) < errorCodeHeaderSize {
		return newError(StepDecode, AttributeStructureMismatch, "ERROR-CODE value shorter than 4 bytes")
	}

	class := int(raw.Value[2])
	number := int(raw.Value[3])
	reason := raw.Value[errorCodeHeaderSize:]
	if !utf8.Valid(reason) {
		return newError(StepDecode, UTF8DecodeError, "ERROR-CODE reason is not valid UTF-8")
	}

	e.Code = class*100 + number
	e.Reason = string(reason)

	return nil
}
