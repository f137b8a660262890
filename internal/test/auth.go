package test

import (
	"context"

	"github.com/polkiloo/quoteflow/internal/domain/model"
	pkgAuth "github.com/polkiloo/quoteflow/internal/pkg/auth"
)

// StrategyStub issues and parses tokens via function overrides.
type StrategyStub struct {
	IssueFn func(int64) (string, error)
	ParseFn func(string) (int64, error)
	NameVal string
}

// IssueToken returns deterministic tokens for tests.
func (s StrategyStub) IssueToken(customerID int64) (string, error) {
	if s.IssueFn != nil {
		return s.IssueFn(customerID)
	}
	return "token", nil
}

// ParseToken parses previously issued token strings.
func (s StrategyStub) ParseToken(token string) (int64, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return 1, nil
}

// Name returns the strategy identifier used in tests.
func (s StrategyStub) Name() string {
	if s.NameVal != "" {
		return s.NameVal
	}
	return "stub"
}

// AuthenticatorStub resolves tokens for middleware tests.
type AuthenticatorStub struct {
	Customer       *model.Customer
	Err            error
	AuthenticateFn func(context.Context, string) (*model.Customer, error)
}

// Authenticate either delegates to override or returns predefined result.
func (s AuthenticatorStub) Authenticate(ctx context.Context, token string) (*model.Customer, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, token)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Customer != nil {
		return s.Customer, nil
	}
	return &model.Customer{ID: 1, Name: "customer"}, nil
}

var _ pkgAuth.Strategy = StrategyStub{}
