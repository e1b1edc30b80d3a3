// Package errors renders RFC 7807 Problem Details for the eshop HTTP API.
package errors

import (
	"fmt"
	"net/http"
)

// ProblemDetail represents an RFC 7807 Problem Details response.
// See: https://www.rfc-editor.org/rfc/rfc7807
type ProblemDetail struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
	// Extensions holds problem-specific properties such as the product short of stock.
	Extensions map[string]any `json:"extensions,omitempty"`
}

func (p ProblemDetail) Error() string {
	if p.Detail != "" {
		return fmt.Sprintf("%s: %s", p.Title, p.Detail)
	}
	return p.Title
}

// WithDetail returns a copy with the given detail message.
func (p ProblemDetail) WithDetail(detail string) ProblemDetail {
	p.Detail = detail
	return p
}

// WithExtension returns a copy with an additional extension property.
func (p ProblemDetail) WithExtension(key string, value any) ProblemDetail {
	ext := make(map[string]any, len(p.Extensions)+1)
	for k, v := range p.Extensions {
		ext[k] = v
	}
	ext[key] = value
	p.Extensions = ext
	return p
}

const (
	TypeValidation          = "/problems/validation-error"
	TypeBadRequest          = "/problems/bad-request"
	TypeNotFound            = "/problems/not-found"
	TypeInsufficientStock   = "/problems/insufficient-stock"
	TypeUnsupportedShipping = "/problems/unsupported-shipping-type"
	TypeInvalidDueDate      = "/problems/invalid-due-date"
	TypeInvalidTransition   = "/problems/invalid-status-transition"
	TypeUpstream            = "/problems/upstream-failure"
	TypeInternal            = "/problems/internal-error"
)

var (
	ErrValidation = ProblemDetail{
		Type:   TypeValidation,
		Title:  "Validation Error",
		Status: http.StatusBadRequest,
	}

	ErrBadRequest = ProblemDetail{
		Type:   TypeBadRequest,
		Title:  "Bad Request",
		Status: http.StatusBadRequest,
	}

	ErrNotFound = ProblemDetail{
		Type:   TypeNotFound,
		Title:  "Resource Not Found",
		Status: http.StatusNotFound,
	}

	ErrInsufficientStock = ProblemDetail{
		Type:   TypeInsufficientStock,
		Title:  "Insufficient Stock",
		Status: http.StatusConflict,
	}

	ErrUnsupportedShipping = ProblemDetail{
		Type:   TypeUnsupportedShipping,
		Title:  "Unsupported Shipping Type",
		Status: http.StatusUnprocessableEntity,
	}

	ErrInvalidDueDate = ProblemDetail{
		Type:   TypeInvalidDueDate,
		Title:  "Invalid Due Date",
		Status: http.StatusUnprocessableEntity,
	}

	ErrInvalidTransition = ProblemDetail{
		Type:   TypeInvalidTransition,
		Title:  "Invalid Status Transition",
		Status: http.StatusConflict,
	}

	// ErrUpstream covers failures of the shipment repository or the notification broker.
	ErrUpstream = ProblemDetail{
		Type:   TypeUpstream,
		Title:  "Upstream Failure",
		Status: http.StatusBadGateway,
	}

	ErrInternal = ProblemDetail{
		Type:   TypeInternal,
		Title:  "Internal Server Error",
		Status: http.StatusInternalServerError,
	}
)

// NewValidationProblem creates a validation error with field-level details.
func NewValidationProblem(fieldErrors map[string]string) ProblemDetail {
	return ErrValidation.WithExtension("fields", fieldErrors)
}

// NewNotFoundProblem creates a not found error for a specific resource.
func NewNotFoundProblem(resourceType string, identifier any) ProblemDetail {
	return ErrNotFound.
		WithDetail(fmt.Sprintf("%s with identifier '%v' not found", resourceType, identifier)).
		WithExtension("resourceType", resourceType).
		WithExtension("identifier", identifier)
}
