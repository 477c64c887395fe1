// Package auth validates the login and signup forms and runs the token exchanges.
package auth

import (
	"context"
	"fmt"

	"github.com/nikolayk812/fluxshop/internal/domain"
	"github.com/nikolayk812/fluxshop/internal/port"
	"go.uber.org/zap"
)

// Session receives the token of a successful login.
type Session interface {
	Login(ctx context.Context, token string) error
}

type Service struct {
	api     port.AuthAPI
	session Session
	logger  *zap.Logger
}

func NewService(api port.AuthAPI, session Session, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		api:     api,
		session: session,
		logger:  logger,
	}
}

// Login validates creds locally, exchanges them for a token and starts a session.
func (s *Service) Login(ctx context.Context, creds domain.Credentials) error {
	if err := ValidateLogin(creds); err != nil {
		return err
	}

	token, err := s.api.Login(ctx, creds)
	if err != nil {
		s.logger.Info("login rejected", zap.Error(err))
		return fmt.Errorf("api.Login: %w", err)
	}

	if err := s.session.Login(ctx, token); err != nil {
		return fmt.Errorf("session.Login: %w", err)
	}

	return nil
}

// Signup creates the account. It does not log the user in.
func (s *Service) Signup(ctx context.Context, req domain.SignupRequest) error {
	if err := ValidateSignup(req); err != nil {
		return err
	}

	if _, err := s.api.Signup(ctx, req); err != nil {
		s.logger.Info("signup rejected", zap.Error(err))
		return fmt.Errorf("api.Signup: %w", err)
	}

	return nil
}

func LoginFailure(err error) string {
	return domain.Reason(err, "Login failed")
}

func SignupFailure(err error) string {
	return domain.Reason(err, "Signup failed")
}
