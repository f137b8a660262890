package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/quoteflow/internal/domain/errors"
	"github.com/polkiloo/quoteflow/internal/domain/model"
	"github.com/polkiloo/quoteflow/internal/server/http/dto"
	"github.com/polkiloo/quoteflow/internal/server/http/middleware"
)

// CurrentCustomer extracts the authenticated actor from context.
func CurrentCustomer(c *gin.Context) *model.Customer {
	return middleware.CurrentCustomer(c)
}

// actor returns the authenticated customer or answers 401.
func actor(c *gin.Context) (*model.Customer, bool) {
	customer := CurrentCustomer(c)
	if customer == nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "authentication required"})
		return nil, false
	}
	return customer, true
}

// pathID parses a positive numeric path parameter or answers 400.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		writeError(c, domainErrors.Validation(nil, domainErrors.FieldError{Field: name, Message: "must be a positive integer"}))
		return 0, false
	}
	return id, true
}

// bindJSON decodes the request body or answers 400.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{Error: "malformed request body"})
		return false
	}
	return true
}

// statusFor maps the domain error taxonomy onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domainErrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domainErrors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domainErrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domainErrors.ErrInvalidState), errors.Is(err, domainErrors.ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, domainErrors.ErrInsufficientFunds):
		return http.StatusPaymentRequired
	case errors.Is(err, domainErrors.ErrBusinessRule):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders err as a JSON error body. Unknown errors are recorded
// on the gin context for the request logger and answered without details.
func writeError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		c.AbortWithStatusJSON(status, dto.ErrorResponse{Error: http.StatusText(status)})
		return
	}

	body := dto.ErrorResponse{Error: err.Error()}
	var validation *domainErrors.ValidationError
	if errors.As(err, &validation) {
		body.Fields = validation.Fields
	}
	var rule *domainErrors.BusinessRuleError
	if errors.As(err, &rule) {
		body.MissingFields = rule.MissingFields
	}
	var state *domainErrors.StateError
	if errors.As(err, &state) {
		body.CurrentStatus = state.Current
		body.RequiredStatus = state.Required
	}
	c.AbortWithStatusJSON(status, body)
}
