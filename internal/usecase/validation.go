package usecase

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/quoteflow/internal/billing"
	domainErrors "github.com/polkiloo/quoteflow/internal/domain/errors"
	"github.com/polkiloo/quoteflow/internal/domain/model"
	"github.com/polkiloo/quoteflow/internal/pkg/money"
)

func validateOrderItems(items []OrderItemInput) error {
	if len(items) == 0 {
		return domainErrors.Validation(domainErrors.ErrEmptyOrder,
			domainErrors.FieldError{Field: "items", Message: "must contain at least one item"})
	}
	var fields []domainErrors.FieldError
	for i, item := range items {
		if item.ProductID <= 0 {
			fields = append(fields, domainErrors.FieldError{Field: fmt.Sprintf("items[%d].product_id", i), Message: "is required"})
		}
		if item.Quantity <= 0 {
			fields = append(fields, domainErrors.FieldError{Field: fmt.Sprintf("items[%d].quantity", i), Message: "must be positive"})
		}
	}
	if len(fields) > 0 {
		return domainErrors.Validation(nil, fields...)
	}
	return nil
}

// validatePriceScale rejects unit prices finer than the currency scale, so
// quoted totals and invoice amounts never need rounding.
func validatePriceScale(updates []model.PricingUpdate, calc *billing.Calculator) error {
	var fields []domainErrors.FieldError
	for i, u := range updates {
		if u.Price != nil && !calc.FitsScale(*u.Price) {
			fields = append(fields, domainErrors.FieldError{
				Field:   fmt.Sprintf("items[%d].price", i),
				Message: fmt.Sprintf("must have at most %d decimal places", calc.Scale()),
			})
		}
	}
	if len(fields) > 0 {
		return domainErrors.Validation(nil, fields...)
	}
	return nil
}

func validateRate(field string, rate decimal.Decimal) *domainErrors.FieldError {
	if !money.ValidRate(rate) {
		return &domainErrors.FieldError{Field: field, Message: "must be between 0 and 100"}
	}
	return nil
}

func validateAmount(amount decimal.Decimal) error {
	if !money.IsPositive(amount) {
		return domainErrors.Validation(domainErrors.ErrInvalidAmount,
			domainErrors.FieldError{Field: "amount", Message: "must be positive"})
	}
	return nil
}

func requireText(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return domainErrors.Validation(nil, domainErrors.FieldError{Field: field, Message: "must not be empty"})
	}
	return nil
}

// notFound turns a bare repository miss into a NotFoundError naming the entity.
func notFound(err error, entity string, id int64) error {
	var nf *domainErrors.NotFoundError
	if errors.As(err, &nf) {
		return err
	}
	if errors.Is(err, domainErrors.ErrNotFound) {
		return domainErrors.NotFound(entity, id)
	}
	return err
}
