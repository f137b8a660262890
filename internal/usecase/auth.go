package usecase

import (
	"context"
	"errors"

	domainErrors "github.com/polkiloo/quoteflow/internal/domain/errors"
	"github.com/polkiloo/quoteflow/internal/domain/model"
	"github.com/polkiloo/quoteflow/internal/domain/repository"
	pkgAuth "github.com/polkiloo/quoteflow/internal/pkg/auth"
)

// AuthUseCase resolves actor tokens to customers and issues tokens for them.
type AuthUseCase struct {
	uow    repository.UnitOfWork
	tokens pkgAuth.Strategy
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(uow repository.UnitOfWork, strategy pkgAuth.Strategy) *AuthUseCase {
	return &AuthUseCase{uow: uow, tokens: strategy}
}

// IssueToken returns a signed token for an existing customer.
func (u *AuthUseCase) IssueToken(ctx context.Context, customerID int64) (string, error) {
	if _, err := u.uow.Customers().GetByID(ctx, customerID); err != nil {
		return "", notFound(err, "customer", customerID)
	}
	return u.tokens.IssueToken(customerID)
}

// Authenticate verifies token and loads the customer it was issued for.
func (u *AuthUseCase) Authenticate(ctx context.Context, token string) (*model.Customer, error) {
	if token == "" {
		return nil, pkgAuth.ErrInvalidToken
	}
	id, err := u.tokens.ParseToken(token)
	if err != nil {
		return nil, err
	}
	customer, err := u.uow.Customers().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, pkgAuth.ErrInvalidToken
		}
		return nil, err
	}
	return customer, nil
}
