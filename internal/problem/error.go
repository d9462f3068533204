package problem

import (
	"fmt"
	"strings"
)

// FieldError reports one invalid request field.
type FieldError struct {
	Field   string
	Message string
}

// Error is a failure tagged with its taxonomy kind. Classification at the
// normalization boundary is a switch on Kind, not type dispatch.
type Error struct {
	Kind    Kind
	Entity  string
	Message string
	Fields  []FieldError
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if len(e.Fields) > 0 {
		return JoinFields(e.Fields)
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Kind.Title()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// JoinFields renders field errors as "field: message" joined with "; ",
// preserving the order fields were reported.
func JoinFields(fields []FieldError) string {
	parts := make([]string, 0, len(fields))
	for _, fe := range fields {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return strings.Join(parts, "; ")
}

// NewNotFound reports a missing domain entity, e.g. NewNotFound("user",
// "user with username bob not found").
func NewNotFound(entity, message string) error {
	return &Error{Kind: KindDomainNotFound, Entity: entity, Message: message}
}

// NewValidation reports one or more invalid request fields.
func NewValidation(fields ...FieldError) error {
	return &Error{Kind: KindValidationFailed, Fields: fields}
}

// NewMalformedBody reports an unparseable request body.
func NewMalformedBody(cause error) error {
	return &Error{Kind: KindMalformedBody, Message: "Could not parse JSON body", Err: cause}
}

// NewMissingParameter reports a required request parameter that was not sent.
func NewMissingParameter(name string) error {
	return &Error{Kind: KindMissingParameter, Message: fmt.Sprintf("Required query parameter '%s' is missing", name)}
}

// NewConstraintViolation reports a request value that violates a constraint.
func NewConstraintViolation(message string) error {
	return &Error{Kind: KindConstraintViolation, Message: message}
}

// NewFileUpload reports a failed multipart upload.
func NewFileUpload(cause error) error {
	return &Error{Kind: KindFileUpload, Message: "An error occurred while processing the file upload", Err: cause}
}

// NewUnauthenticated reports a request lacking valid credentials.
func NewUnauthenticated(message string) error {
	return &Error{Kind: KindUnauthenticated, Message: message}
}

// NewForbidden reports an authenticated caller without permission.
func NewForbidden(message string) error {
	return &Error{Kind: KindForbidden, Message: message}
}

// NewMalformedToken reports a token that could not be decoded or whose
// signature did not verify, independent of expiry.
func NewMalformedToken(message string) error {
	return &Error{Kind: KindMalformedToken, Message: message}
}

// NewUnexpected wraps an unclassified failure.
func NewUnexpected(cause error) error {
	return &Error{Kind: KindUnexpected, Err: cause}
}
