package auth_test

import (
	"testing"

	"github.com/nikolayk812/fluxshop/internal/auth"
	"github.com/nikolayk812/fluxshop/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{email: "user@example.com", want: true},
		{email: "first.last@mail.co.uk", want: true},
		{email: "user@@example.com", want: false},
		{email: "userexample.com", want: false},
		{email: "user@example", want: false},
		{email: "us er@example.com", want: false},
		{email: "user@exa mple.com", want: false},
		{email: "@example.com", want: false},
		{email: "user@.com", want: false},
		{email: "user@example.", want: false},
		{email: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			assert.Equal(t, tt.want, auth.ValidEmail(tt.email))
		})
	}
}

func TestValidateLogin(t *testing.T) {
	tests := []struct {
		name  string
		creds domain.Credentials
		ok    bool
	}{
		{name: "valid: ok", creds: domain.Credentials{Email: "a@b.io", Password: "secret"}, ok: true},
		{name: "multibyte password of six characters: ok", creds: domain.Credentials{Email: "a@b.io", Password: "пароль"}, ok: true},
		{name: "short password: error", creds: domain.Credentials{Email: "a@b.io", Password: "12345"}},
		{name: "bad email: error", creds: domain.Credentials{Email: "a.b.io", Password: "secret"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := auth.ValidateLogin(tt.creds)
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, "Enter a valid email and a 6+ character password.")
		})
	}
}

func TestValidateSignup(t *testing.T) {
	tests := []struct {
		name string
		req  domain.SignupRequest
		ok   bool
	}{
		{name: "valid: ok", req: domain.SignupRequest{Name: "Ann", Email: "a@b.io", Password: "secret"}, ok: true},
		{name: "blank name: error", req: domain.SignupRequest{Name: "", Email: "a@b.io", Password: "secret"}},
		{name: "whitespace name: error", req: domain.SignupRequest{Name: " \t ", Email: "a@b.io", Password: "secret"}},
		{name: "short password: error", req: domain.SignupRequest{Name: "Ann", Email: "a@b.io", Password: "abc"}},
		{name: "bad email: error", req: domain.SignupRequest{Name: "Ann", Email: "a@@b.io", Password: "secret"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := auth.ValidateSignup(tt.req)
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, "Enter name, valid email, and a 6+ character password.")
		})
	}
}
