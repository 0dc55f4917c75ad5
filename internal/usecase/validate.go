package usecase

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"portfolio-backend/internal/domain"
)

const (
	maxMessageLen   = 1000
	maxSessionIDLen = 100

	maxContactNameLen    = 100
	maxContactEmailLen   = 254
	maxContactSubjectLen = 200
	maxContactMessageLen = 5000
)

// Session IDs must be UUID-like or alphanumeric; anything else is prone to
// path, SQL or header injection downstream.
var sessionIDPattern = regexp.MustCompile(`^[a-zA-Z0-9-_]+$`)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateChatInput checks and normalizes the chat payload. The returned
// values are trimmed and length-capped even though the checks already
// enforce the limits.
func ValidateChatInput(message, sessionID string) (string, string, error) {
	msg := strings.TrimSpace(message)
	if msg == "" {
		return "", "", domain.NewValidationError("Message cannot be empty")
	}
	// Limits are in characters, not bytes; multibyte input counts per rune.
	if utf8.RuneCountInString(msg) > maxMessageLen {
		return "", "", domain.NewValidationError("Message must be less than 1000 characters")
	}

	sid := strings.TrimSpace(sessionID)
	if sid == "" {
		return "", "", domain.NewValidationError("Session ID is required")
	}
	if utf8.RuneCountInString(sid) > maxSessionIDLen {
		return "", "", domain.NewValidationError("Session ID must be between 1 and 100 characters")
	}
	if !sessionIDPattern.MatchString(sid) {
		return "", "", domain.NewValidationError("Session ID contains invalid characters")
	}

	return truncate(msg, maxMessageLen), truncate(sid, maxSessionIDLen), nil
}

// ContactInput is the raw contact-form payload.
type ContactInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// SanitizedContact is the normalized form of a valid submission.
type SanitizedContact struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// ValidateContactForm checks and normalizes the contact-form payload.
func ValidateContactForm(in ContactInput) (SanitizedContact, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return SanitizedContact{}, domain.NewValidationError("Name is required")
	}
	if utf8.RuneCountInString(name) > maxContactNameLen {
		return SanitizedContact{}, domain.NewValidationError("Name is too long")
	}

	email := strings.TrimSpace(in.Email)
	if email == "" {
		return SanitizedContact{}, domain.NewValidationError("Email is required")
	}
	if !emailPattern.MatchString(email) || utf8.RuneCountInString(email) > maxContactEmailLen {
		return SanitizedContact{}, domain.NewValidationError("Invalid email address")
	}

	subject := strings.TrimSpace(in.Subject)
	if subject == "" {
		return SanitizedContact{}, domain.NewValidationError("Subject is required")
	}
	if utf8.RuneCountInString(subject) > maxContactSubjectLen {
		return SanitizedContact{}, domain.NewValidationError("Subject is too long")
	}

	message := strings.TrimSpace(in.Message)
	if message == "" {
		return SanitizedContact{}, domain.NewValidationError("Message is required")
	}
	if utf8.RuneCountInString(message) > maxContactMessageLen {
		return SanitizedContact{}, domain.NewValidationError("Message is too long")
	}

	return SanitizedContact{
		Name:    truncate(name, maxContactNameLen),
		Email:   truncate(strings.ToLower(email), maxContactEmailLen),
		Subject: truncate(subject, maxContactSubjectLen),
		Message: truncate(message, maxContactMessageLen),
	}, nil
}

// truncate cuts on rune boundaries so a multibyte sequence is never split.
func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}
