package services

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/isdelr/chroniclex-be/internal/apperr"
)

const (
	maxUsernameLength = 150
	maxTitleLength    = 200
)

var usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", apperr.ErrValidation, fmt.Sprintf(format, args...))
}

func validateUsername(username string) error {
	switch {
	case strings.TrimSpace(username) == "":
		return validationError("username is required")
	case utf8.RuneCountInString(username) > maxUsernameLength:
		return validationError("username must be at most %d characters", maxUsernameLength)
	case !usernamePattern.MatchString(username):
		return validationError("username may contain only letters, digits and @/./+/-/_")
	}
	return nil
}

func validateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return validationError("email is required")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return validationError("enter a valid email address")
	}
	return nil
}

func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return validationError("title is required")
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		return validationError("title must be at most %d characters", maxTitleLength)
	}
	return nil
}

func validateContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return validationError("content is required")
	}
	return nil
}
