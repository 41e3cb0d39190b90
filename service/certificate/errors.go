package certificate

import "fmt"

// Kind is the machine-readable classification of a certificate error. The
// API layer maps kinds to transport status codes.
type Kind string

const (
	KindNotFound               Kind = "not_found"
	KindForbidden              Kind = "forbidden"
	KindInvalidState           Kind = "invalid_state"
	KindDuplicateRequest       Kind = "duplicate_request"
	KindFeedbackRequired       Kind = "feedback_required"
	KindInsufficientAttendance Kind = "insufficient_attendance"
	KindMalformedCode          Kind = "malformed_code"
	KindMissingContext         Kind = "missing_context"
	KindSignatureRequired      Kind = "signature_required"
	KindDuplicateCode          Kind = "duplicate_code"
	KindArtifactFailed         Kind = "artifact_production_failed"
)

type Error struct {
	Kind    Kind
	Message string

	// Percentage carries the computed attendance for
	// KindInsufficientAttendance.
	Percentage float64

	// RequiredStatus names the status a transition expected, for
	// KindInvalidState.
	RequiredStatus string

	// Retryable marks errors the caller may retry (duplicate code race,
	// artifact rendering failure).
	Retryable bool
}

func (e *Error) Error() string { return e.Message }

func notFound(what string) *Error {
	return &Error{Kind: KindNotFound, Message: what + " not found"}
}

func forbidden(msg string) *Error {
	return &Error{Kind: KindForbidden, Message: msg}
}

func invalidState(required string) *Error {
	return &Error{
		Kind:           KindInvalidState,
		Message:        fmt.Sprintf("certificate must be %s for this action", required),
		RequiredStatus: required,
	}
}

func duplicateRequest() *Error {
	return &Error{Kind: KindDuplicateRequest, Message: "certificate already requested for this course"}
}

func feedbackRequired() *Error {
	return &Error{Kind: KindFeedbackRequired, Message: "student must submit feedback before requesting certificate"}
}

func insufficientAttendance(pct float64) *Error {
	return &Error{
		Kind:       KindInsufficientAttendance,
		Message:    fmt.Sprintf("minimum 80%% attendance required for certificate, current attendance is %.2f%%", pct),
		Percentage: pct,
	}
}

func malformedCode(code string) *Error {
	return &Error{Kind: KindMalformedCode, Message: fmt.Sprintf("certificate code %q is not a valid SSRGSP code", code)}
}

func missingContext() *Error {
	return &Error{Kind: KindMissingContext, Message: "course and institution details are required"}
}

func signatureRequired(who string) *Error {
	return &Error{Kind: KindSignatureRequired, Message: who + " signature is required"}
}

func duplicateCode(code string) *Error {
	return &Error{
		Kind:      KindDuplicateCode,
		Message:   fmt.Sprintf("certificate code %s already allocated", code),
		Retryable: true,
	}
}

func duplicateSequence(prefix string) *Error {
	return &Error{
		Kind:      KindDuplicateCode,
		Message:   fmt.Sprintf("certificate sequence for %s already initialised", prefix),
		Retryable: true,
	}
}

func artifactFailed(err error) *Error {
	return &Error{
		Kind:      KindArtifactFailed,
		Message:   "certificate artifact production failed: " + err.Error(),
		Retryable: true,
	}
}
