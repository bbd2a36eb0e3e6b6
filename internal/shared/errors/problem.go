// Package errors renders the JSON error envelope returned by every endpoint.
package errors

import (
	"net/http"
)

// FieldError describes a single failed validation rule.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Problem is the envelope written for every non-success response.
//
// Errors and Data always serialize as arrays so clients can iterate without
// nil checks.
type Problem struct {
	Message string       `json:"message"`
	Status  int          `json:"status"`
	Errors  []FieldError `json:"errors"`
	Data    []any        `json:"data"`
}

// Error implements the error interface.
func (p Problem) Error() string {
	return p.Message
}

// WithMessage returns a copy carrying the given message.
func (p Problem) WithMessage(message string) Problem {
	p.Message = message
	return p
}

// WithErrors returns a copy carrying field level failures.
func (p Problem) WithErrors(errs []FieldError) Problem {
	p.Errors = append([]FieldError{}, errs...)
	return p
}

func (p Problem) normalized() Problem {
	if p.Errors == nil {
		p.Errors = []FieldError{}
	}
	if p.Data == nil {
		p.Data = []any{}
	}
	if p.Status == 0 {
		p.Status = http.StatusInternalServerError
	}
	return p
}

// Messages surfaced verbatim to API consumers.
const (
	MessageNotFound     = "Dado não encontrado"
	MessageConfidential = "Dados confidenciais"
	MessageInternal     = "Erro interno do servidor"
	MessageConflict     = "Conflito de requisição"
	MessageBadRequest   = "Requisição inválida"
)

var (
	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = Problem{Message: MessageNotFound, Status: http.StatusNotFound}

	// ErrForbidden indicates the resource exists but is not exposed.
	ErrForbidden = Problem{Message: MessageConfidential, Status: http.StatusForbidden}

	// ErrValidation indicates the payload failed one or more rules.
	ErrValidation = Problem{Status: http.StatusBadRequest}

	// ErrBadRequest indicates the request could not be parsed.
	ErrBadRequest = Problem{Message: MessageBadRequest, Status: http.StatusBadRequest}

	// ErrConflict indicates the request clashes with stored state.
	ErrConflict = Problem{Message: MessageConflict, Status: http.StatusConflict}

	// ErrInternal is returned for every unexpected failure. The cause is logged, never echoed.
	ErrInternal = Problem{Message: MessageInternal, Status: http.StatusInternalServerError}
)

// NewValidationProblem builds a 400 envelope from a summary and its field failures.
func NewValidationProblem(summary string, fields []FieldError) Problem {
	return ErrValidation.WithMessage(summary).WithErrors(fields)
}
