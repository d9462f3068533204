package problem

import (
	"github.com/google/uuid"

	"github.com/stuffshop/backend/internal/correlation"
)

// Problem is the canonical structured error body returned to clients,
// following RFC7807 problem-detail conventions.
type Problem struct {
	Status        int    `json:"status"`
	Title         string `json:"title"`
	Detail        string `json:"detail"`
	Instance      string `json:"instance"`
	Code          string `json:"code"`
	ErrorID       string `json:"errorId"`
	TraceID       string `json:"traceId,omitempty"`
	SpanID        string `json:"spanId,omitempty"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// Build assembles a problem body for the given kind with a fresh error id
// and the ambient correlation identifiers. Absent upstream identifiers are
// omitted, never fabricated.
func Build(kind Kind, entity, detail, instance string, rc correlation.RequestContext) Problem {
	return Problem{
		Status:        kind.Status(),
		Title:         kind.TitleFor(entity),
		Detail:        detail,
		Instance:      instance,
		Code:          kind.CodeFor(entity),
		ErrorID:       uuid.NewString(),
		TraceID:       rc.TraceID,
		SpanID:        rc.SpanID,
		CorrelationID: rc.CorrelationID,
	}
}
