package entities

import "errors"

// ErrorKind classifies domain errors for the transport layer
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindUnauthorized
)

// Error is a domain error whose message is safe to show to API callers
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// NewValidationError builds a validation error with a caller-facing message
func NewValidationError(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

// KindOf reports the kind of err, KindInternal when err is not a domain error
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

// Common errors
var (
	ErrCampaignNotFound      = &Error{Kind: KindNotFound, Message: "Campaign not found"}
	ErrInvalidCampaignStatus = &Error{Kind: KindValidation, Message: "Invalid status. Must be approved or rejected"}
	ErrInvalidAmount         = &Error{Kind: KindValidation, Message: "Invalid amount"}
	ErrCredentialsRequired   = &Error{Kind: KindValidation, Message: "Email and password required"}
	ErrEmailTaken            = &Error{Kind: KindConflict, Message: "Email already registered"}
	ErrInvalidCredentials    = &Error{Kind: KindUnauthorized, Message: "Invalid credentials"}
	ErrInvalidToken          = &Error{Kind: KindUnauthorized, Message: "Invalid token"}
	ErrUserNotFound          = &Error{Kind: KindNotFound, Message: "User not found"}
)
