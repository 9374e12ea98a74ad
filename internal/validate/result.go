// Package validate implements the validation and consistency engine the
// gateway runs before dispatching a submission to the remote entity stores:
// schema-driven format validation, referential resolution against cached
// snapshots, temporal consistency and status legality. All checks are pure
// functions over the submitted draft and the supplied snapshot view.
package validate

import "fmt"

// Code is one entry of the failure taxonomy. Local codes block dispatch
// entirely; remote codes classify responses from the entity stores.
type Code string

const (
	// Local validation failures. These never reach the remote store.
	CodeRequiredFieldMissing    Code = "REQUIRED_FIELD_MISSING"
	CodeFormatInvalid           Code = "FORMAT_INVALID"
	CodeRangeViolation          Code = "RANGE_VIOLATION"
	CodeReferentialNotFound     Code = "REFERENTIAL_NOT_FOUND"
	CodeReferentialStateInvalid Code = "REFERENTIAL_STATE_INVALID"
	CodeTemporalInconsistency   Code = "TEMPORAL_INCONSISTENCY"
	CodeStateInvalid            Code = "STATE_INVALID"

	// Remote-layer failures, mapped from the store response.
	CodeDuplicateConflict    Code = "DUPLICATE_CONFLICT"
	CodeSessionExpired       Code = "SESSION_EXPIRED"
	CodeForbidden            Code = "FORBIDDEN"
	CodeNotFound             Code = "NOT_FOUND"
	CodeUnprocessablePayload Code = "UNPROCESSABLE_PAYLOAD"
	CodeServerFault          Code = "SERVER_FAULT"
	CodeTransportFailure     Code = "TRANSPORT_FAILURE"
)

// TemporalReason refines a TEMPORAL_INCONSISTENCY violation.
type TemporalReason string

const (
	ReasonUnparseable      TemporalReason = "unparseable"
	ReasonOrdering         TemporalReason = "ordering"
	ReasonPastDeparture    TemporalReason = "past_departure"
	ReasonDurationExceeded TemporalReason = "duration_exceeded"
)

// Violation is a single failed check: one taxonomy entry plus the field and
// offending value, so callers can render messages without matching error
// text. The first violation found aborts the submission.
type Violation struct {
	Code   Code           `json:"error_code"`
	Field  string         `json:"field,omitempty"`
	Value  string         `json:"value,omitempty"`
	Reason TemporalReason `json:"reason,omitempty"`
	Detail string         `json:"message"`
}

func (v *Violation) Error() string {
	if v.Field == "" {
		return fmt.Sprintf("%s: %s", v.Code, v.Detail)
	}
	return fmt.Sprintf("%s: %s: %s", v.Code, v.Field, v.Detail)
}

func missing(field string) *Violation {
	return &Violation{Code: CodeRequiredFieldMissing, Field: field, Detail: "field is required"}
}

func badFormat(field, value, detail string) *Violation {
	return &Violation{Code: CodeFormatInvalid, Field: field, Value: value, Detail: detail}
}

func outOfRange(field, value, detail string) *Violation {
	return &Violation{Code: CodeRangeViolation, Field: field, Value: value, Detail: detail}
}

func notFound(field, value string) *Violation {
	return &Violation{Code: CodeReferentialNotFound, Field: field, Value: value, Detail: "referenced entity does not exist"}
}

func temporal(field, value string, reason TemporalReason, detail string) *Violation {
	return &Violation{Code: CodeTemporalInconsistency, Field: field, Value: value, Reason: reason, Detail: detail}
}
