package dto

import domainErrors "github.com/polkiloo/quoteflow/internal/domain/errors"

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Error          string                    `json:"error"`
	Fields         []domainErrors.FieldError `json:"fields,omitempty"`
	MissingFields  []string                  `json:"missing_fields,omitempty"`
	CurrentStatus  string                    `json:"current_status,omitempty"`
	RequiredStatus []string                  `json:"required_status,omitempty"`
}
