package usecase

import (
	"errors"
	"strings"
	"testing"

	"portfolio-backend/internal/domain"
)

func TestValidateChatInput(t *testing.T) {
	cases := []struct {
		name      string
		message   string
		sessionID string
		wantErr   bool
	}{
		{"valid", "hello", "abc-123_DEF", false},
		{"empty message", "", "abc", true},
		{"whitespace message", "   ", "abc", true},
		{"message at limit", strings.Repeat("a", 1000), "abc", false},
		{"message over limit", strings.Repeat("a", 1001), "abc", true},
		{"multibyte message within limit", strings.Repeat("ü", 600), "abc", false},
		{"multibyte message at limit", strings.Repeat("日", 1000), "abc", false},
		{"multibyte message over limit", strings.Repeat("日", 1001), "abc", true},
		{"empty session id", "hello", "", true},
		{"session id with space", "hello", "abc def", true},
		{"session id with slash", "hello", "abc/def", true},
		{"session id at limit", "hello", strings.Repeat("a", 100), false},
		{"session id over limit", "hello", strings.Repeat("a", 101), true},
		{"uuid session id", "hello", "11111111-1111-1111-1111-111111111111", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := ValidateChatInput(tc.message, tc.sessionID)
			if (err != nil) != tc.wantErr {
				t.Fatalf("err = %v, wantErr = %v", err, tc.wantErr)
			}
			if err != nil {
				var ve *domain.ValidationError
				if !errors.As(err, &ve) {
					t.Fatalf("err type = %T, want *domain.ValidationError", err)
				}
			}
		})
	}
}

func TestValidateChatInputSanitizes(t *testing.T) {
	msg, sid, err := ValidateChatInput("  hi there  ", " abc-123_DEF ")
	if err != nil {
		t.Fatalf("ValidateChatInput: %v", err)
	}
	if msg != "hi there" {
		t.Errorf("message = %q", msg)
	}
	if sid != "abc-123_DEF" {
		t.Errorf("session id = %q", sid)
	}
}

func TestValidateContactForm(t *testing.T) {
	valid := ContactInput{
		Name:    "Jane Doe",
		Email:   "Jane@Example.COM",
		Subject: "Logo work",
		Message: "I'd like a quote.",
	}

	sanitized, err := ValidateContactForm(valid)
	if err != nil {
		t.Fatalf("ValidateContactForm: %v", err)
	}
	if sanitized.Email != "jane@example.com" {
		t.Errorf("email = %q, want lowercased", sanitized.Email)
	}

	cases := []struct {
		name   string
		mutate func(*ContactInput)
	}{
		{"missing name", func(in *ContactInput) { in.Name = "  " }},
		{"long name", func(in *ContactInput) { in.Name = strings.Repeat("n", 101) }},
		{"missing email", func(in *ContactInput) { in.Email = "" }},
		{"email without domain", func(in *ContactInput) { in.Email = "jane@" }},
		{"email without tld", func(in *ContactInput) { in.Email = "jane@example" }},
		{"long email", func(in *ContactInput) { in.Email = strings.Repeat("a", 250) + "@x.com" }},
		{"missing subject", func(in *ContactInput) { in.Subject = "" }},
		{"long subject", func(in *ContactInput) { in.Subject = strings.Repeat("s", 201) }},
		{"missing message", func(in *ContactInput) { in.Message = "" }},
		{"long message", func(in *ContactInput) { in.Message = strings.Repeat("m", 5001) }},
		{"long multibyte message", func(in *ContactInput) { in.Message = strings.Repeat("ü", 5001) }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := valid
			tc.mutate(&in)
			if _, err := ValidateContactForm(in); err == nil {
				t.Fatal("want validation error")
			}
		})
	}
}

func TestValidateContactFormMultibyteWithinLimits(t *testing.T) {
	in := ContactInput{
		Name:    strings.Repeat("ü", 100),
		Email:   "jane@example.com",
		Subject: strings.Repeat("本", 200),
		Message: strings.Repeat("ü", 5000),
	}
	sanitized, err := ValidateContactForm(in)
	if err != nil {
		t.Fatalf("ValidateContactForm: %v", err)
	}
	if sanitized.Message != in.Message {
		t.Fatal("message altered despite being within the character limit")
	}
}
