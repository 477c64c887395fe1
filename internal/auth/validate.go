package auth

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/nikolayk812/fluxshop/internal/domain"
)

const minPasswordLen = 6

const (
	loginInvalidMsg  = "Enter a valid email and a 6+ character password."
	signupInvalidMsg = "Enter name, valid email, and a 6+ character password."
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

func validPassword(password string) bool {
	return utf8.RuneCountInString(password) >= minPasswordLen
}

func ValidateLogin(creds domain.Credentials) error {
	if !ValidEmail(creds.Email) || !validPassword(creds.Password) {
		return domain.NewValidationError(loginInvalidMsg)
	}
	return nil
}

func ValidateSignup(req domain.SignupRequest) error {
	if strings.TrimSpace(req.Name) == "" || !ValidEmail(req.Email) || !validPassword(req.Password) {
		return domain.NewValidationError(signupInvalidMsg)
	}
	return nil
}
