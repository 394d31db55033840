// Package saslprep applies RFC 4013 SASLprep normalization to the
// strings STUN's long-term credential mechanism folds into its
// MESSAGE-INTEGRITY key (username, realm, password). It wraps
// golang.org/x/text/secure/precis, the ecosystem's SASLprep profile,
// rather than hand-rolling the Unicode tables.
package saslprep

import (
	"fmt"

	"golang.org/x/text/secure/precis"
)

// Username applies the UsernameCaseMapped profile (RFC 8265, the
// successor profile precis implements for SASL usernames).
func Username(s string) (string, error) {
	out, err := precis.UsernameCaseMapped.String(s)
	if err != nil {
		return "", fmt.Errorf("saslprep username: %w", err)
	}

	return out, nil
}

// OpaqueString applies the OpaqueString profile (RFC 8265), used for
// realm and password material the way RFC 5389's long-term
// credential mechanism specifies SASLprep for passwords.
func OpaqueString(s string) (string, error) {
	out, err := precis.OpaqueString.String(s)
	if err != nil {
		return "", fmt.Errorf("saslprep opaque string: %w", err)
	}

	return out, nil
}
