package problem

import (
	"errors"

	"go.uber.org/zap"

	"github.com/stuffshop/backend/internal/correlation"
)

// Normalizer is the single funnel through which every failure raised during
// request processing becomes a Problem body. It never fails: anything it
// cannot classify falls through to Unexpected.
type Normalizer struct {
	logger *zap.Logger
}

// NewNormalizer builds the normalizer.
func NewNormalizer(logger *zap.Logger) *Normalizer {
	return &Normalizer{logger: logger}
}

// Normalize classifies the failure, builds the structured body and logs the
// occurrence exactly once at error level with the error id as the join key
// between log entry and response body. Each call yields a fresh error id;
// everything else is deterministic for the same failure and path.
func (n *Normalizer) Normalize(failure error, requestPath string, rc correlation.RequestContext) Problem {
	kind := KindUnexpected
	entity := ""
	detail := "unknown error"

	var perr *Error
	switch {
	case failure == nil:
	case errors.As(failure, &perr):
		kind = perr.Kind
		entity = perr.Entity
		if len(perr.Fields) > 0 {
			detail = JoinFields(perr.Fields)
		} else {
			detail = perr.Error()
		}
	default:
		detail = failure.Error()
	}

	pd := Build(kind, entity, detail, requestPath, rc)

	n.logger.Error("request failed",
		zap.String("errorId", pd.ErrorID),
		zap.String("path", requestPath),
		zap.String("kind", kind.String()),
		zap.String("code", pd.Code),
		zap.String("correlationId", rc.CorrelationID),
		zap.Error(failure),
	)

	return pd
}
