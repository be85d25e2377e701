package auth

import "fmt"

// VerifyErrorKind distinguishes why a token failed verification. The HTTP
// boundary collapses all kinds to a single unauthorized outcome; the kinds
// exist so logs can tell an expired session from a forged one.
type VerifyErrorKind string

const (
	KindExpired          VerifyErrorKind = "expired"
	KindMalformed        VerifyErrorKind = "malformed"
	KindUnsupported      VerifyErrorKind = "unsupported"
	KindInvalidSignature VerifyErrorKind = "invalid_signature"
)

// VerifyError wraps the underlying jwt failure with a stable kind.
type VerifyError struct {
	Kind  VerifyErrorKind
	cause error
}

func (e *VerifyError) Error() string {
	if e.cause == nil {
		return fmt.Sprintf("token verification failed: %s", e.Kind)
	}
	return fmt.Sprintf("token verification failed (%s): %v", e.Kind, e.cause)
}

func (e *VerifyError) Unwrap() error {
	return e.cause
}
