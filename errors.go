package stun

import "fmt"

// Step identifies which phase of the codec produced an Error.
type Step int

// Steps a STUNError can be attributed to.
const (
	StepEncode Step = iota
	StepDecode
	StepNetwork
	StepUtils
)

func (s Step) String() string {
	switch s {
	case StepEncode:
		return "encode"
	case StepDecode:
		return "decode"
	case StepNetwork:
		return "network"
	case StepUtils:
		return "utils"
	default:
		return "unknown"
	}
}

// Kind enumerates the closed set of error conditions the codec and
// client can raise. See spec §7 for the authoritative list.
type Kind int

// Error kinds.
const (
	ReadError Kind = iota
	WriteError
	MagicCookieMismatch
	WrongSize
	InvalidClass
	InvalidMethod
	AttributeTypeMismatch
	AttributeStructureMismatch
	InternalError
	InvalidOrUnsupportedAttribute
	UnknownComprehensionRequired
	XORObfuscationError
	UTF8DecodeError
	RequiredContextMissing
	SASLPrepError
	InvalidMessageBinLength
	MessageIntegrityMismatch
	SendError
	ReceiveError
	NetworkTimeout
	TimeoutSetError
	DidNotFindExpectedAttribute
	UnsupportedNATType
)

//nolint:cyclop
func (k Kind) String() string {
	switch k {
	case ReadError:
		return "ReadError"
	case WriteError:
		return "WriteError"
	case MagicCookieMismatch:
		return "MagicCookieMismatch"
	case WrongSize:
		return "WrongSize"
	case InvalidClass:
		return "InvalidClass"
	case InvalidMethod:
		return "InvalidMethod"
	case AttributeTypeMismatch:
		return "AttributeTypeMismatch"
	case AttributeStructureMismatch:
		return "AttributeStructureMismatch"
	case InternalError:
		return "InternalError"
	case InvalidOrUnsupportedAttribute:
		return "InvalidOrUnsupportedAttribute"
	case UnknownComprehensionRequired:
		return "UnknownComprehensionRequired"
	case XORObfuscationError:
		return "XORObfuscationError"
	case UTF8DecodeError:
		return "UTF8DecodeError"
	case RequiredContextMissing:
		return "RequiredContextMissing"
	case SASLPrepError:
		return "SASLPrepError"
	case InvalidMessageBinLength:
		return "InvalidMessageBinLength"
	case MessageIntegrityMismatch:
		return "MessageIntegrityMismatch"
	case SendError:
		return "SendError"
	case ReceiveError:
		return "ReceiveError"
	case NetworkTimeout:
		return "NetworkTimeout"
	case TimeoutSetError:
		return "TimeoutSetError"
	case DidNotFindExpectedAttribute:
		return "DidNotFindExpectedAttribute"
	case UnsupportedNATType:
		return "UnsupportedNATType"
	default:
		return "Unknown"
	}
}

// STUNError is the tagged error value every codec and client failure is
// reported as: which step it happened in, what kind of failure it was,
// and a human-readable message for the log line.
type STUNError struct {
	Step    Step
	Kind    Kind
	Message string
}

func (e *STUNError) Error() string {
	return fmt.Sprintf("stun %s error [%s]: %s", e.Step, e.Kind, e.Message)
}

func newError(step Step, kind Kind, message string) *STUNError {
	return &STUNError{Step: step, Kind: kind, Message: message}
}

func wrapError(step Step, kind Kind, context string, err error) *STUNError {
	return &STUNError{Step: step, Kind: kind, Message: context + ": " + err.Error()}
}

// Is allows errors.Is(err, &STUNError{Kind: ...}) style matching on Kind
// alone, the way callers are expected to branch on failures.
func (e *STUNError) Is(target error) bool {
	t, ok := target.(*STUNError)
	if !ok {
		return false
	}

	return e.Kind == t.Kind
}
