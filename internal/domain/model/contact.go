package model

import "time"

// ContactSubmission is a sanitized contact-form payload forwarded to the
// outbound webhook. It is never stored by this service.
type ContactSubmission struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	ClientKey string    `json:"ip"` // rate-limit key, kept for spam tracking
}
