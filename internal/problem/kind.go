package problem

import (
	"fmt"
	"net/http"
	"strings"
)

// Kind identifies one entry in the closed error taxonomy.
type Kind int

const (
	KindUnexpected Kind = iota
	KindDomainNotFound
	KindValidationFailed
	KindMalformedBody
	KindMissingParameter
	KindConstraintViolation
	KindFileUpload
	KindUnauthenticated
	KindForbidden
	KindMalformedToken
)

type taxonomyRow struct {
	Status int
	Code   string
	Title  string
}

// taxonomy is the single source of truth for status/code/title per kind.
// Adding a new domain error means adding one row here, never branching
// elsewhere.
var taxonomy = map[Kind]taxonomyRow{
	KindUnexpected:          {http.StatusInternalServerError, "ERR_INTERNAL", "Unexpected error"},
	KindDomainNotFound:      {http.StatusNotFound, "ERR_%s_NOT_FOUND", "%s not found"},
	KindValidationFailed:    {http.StatusBadRequest, "ERR_VALIDATION_FAILED", "Validation Failed"},
	KindMalformedBody:       {http.StatusBadRequest, "ERR_INVALID_JSON", "Malformed JSON request"},
	KindMissingParameter:    {http.StatusBadRequest, "ERR_MISSING_PARAMETER", "Missing request parameter"},
	KindConstraintViolation: {http.StatusBadRequest, "ERR_CONSTRAINT_VIOLATION", "Constraint Violation"},
	KindFileUpload:          {http.StatusBadRequest, "ERR_FILE_UPLOAD", "File upload error"},
	KindUnauthenticated:     {http.StatusUnauthorized, "ERR_UNAUTHORIZED", "Unauthorized"},
	KindForbidden:           {http.StatusForbidden, "ERR_FORBIDDEN", "Forbidden"},
	KindMalformedToken:      {http.StatusUnauthorized, "ERR_INVALID_TOKEN", "Invalid or malformed token"},
}

// Status returns the transport status for the kind.
func (k Kind) Status() int {
	return rowFor(k).Status
}

// Code returns the stable machine-readable code for the kind. DomainNotFound
// codes are parameterized by entity via CodeFor.
func (k Kind) Code() string {
	if k == KindDomainNotFound {
		return k.CodeFor("resource")
	}
	return rowFor(k).Code
}

// CodeFor returns the code with the entity name substituted, e.g.
// ERR_USER_NOT_FOUND.
func (k Kind) CodeFor(entity string) string {
	row := rowFor(k)
	if k != KindDomainNotFound {
		return row.Code
	}
	if entity == "" {
		entity = "resource"
	}
	return fmt.Sprintf(row.Code, strings.ToUpper(entity))
}

// Title returns the default human label for the kind.
func (k Kind) Title() string {
	if k == KindDomainNotFound {
		return k.TitleFor("resource")
	}
	return rowFor(k).Title
}

// TitleFor returns the title with the entity name substituted, e.g.
// "User not found".
func (k Kind) TitleFor(entity string) string {
	row := rowFor(k)
	if k != KindDomainNotFound {
		return row.Title
	}
	if entity == "" {
		entity = "resource"
	}
	return fmt.Sprintf(row.Title, strings.ToUpper(entity[:1])+entity[1:])
}

// String names the kind for logs.
func (k Kind) String() string {
	switch k {
	case KindDomainNotFound:
		return "DomainNotFound"
	case KindValidationFailed:
		return "ValidationFailed"
	case KindMalformedBody:
		return "MalformedBody"
	case KindMissingParameter:
		return "MissingParameter"
	case KindConstraintViolation:
		return "ConstraintViolation"
	case KindFileUpload:
		return "FileUploadError"
	case KindUnauthenticated:
		return "Unauthenticated"
	case KindForbidden:
		return "Forbidden"
	case KindMalformedToken:
		return "MalformedTokenError"
	default:
		return "Unexpected"
	}
}

func rowFor(k Kind) taxonomyRow {
	if row, ok := taxonomy[k]; ok {
		return row
	}
	return taxonomy[KindUnexpected]
}
