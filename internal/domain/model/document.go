package model

// Document is an externally curated knowledge snippet used to ground
// the assistant's answers. Read-only from this service's perspective.
type Document struct {
	Title   string
	Content string
}
