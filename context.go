package stun

// Context carries the cross-message state a STUN exchange accumulates:
// the credentials needed to compute or verify MESSAGE-INTEGRITY, plus
// the REALM/NONCE a server challenge hands back. It is caller-owned —
// create one per logical exchange and pass it by pointer to the
// GetFromContext methods, which fill in whatever the wire told them,
// and to the AddToContext methods, which pull whichever fields the
// caller didn't set explicitly on an attribute. The USERNAME, REALM and
// NONCE AddToContext methods also store the value they encode into the
// matching field when it is nil, so encoding is not read-only.
//
// Both directions only ever fill a field that is nil; neither
// overwrites one the caller already populated. Mirrors
// CherrySTUN::STUNContext.
type Context struct {
	Username *string
	Password *string
	Realm    *string
	Nonce    *string
}

// fillIfAbsent sets *dst = v if *dst is currently nil. Used by decoders
// that mirror wire values back into the context.
func fillIfAbsent(dst **string, v string) {
	if *dst == nil {
		*dst = &v
	}
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}
