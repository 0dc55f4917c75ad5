package usecase

import (
	"strings"

	"portfolio-backend/internal/domain/model"
	"portfolio-backend/internal/domain/ports/adapter"
)

const assistantIntro = `You are the helpful AI assistant on this portfolio website. You help visitors learn about the owner's work, skills, and services as a designer.`

const assistantGuidelines = `Guidelines:
- Be friendly, professional, and helpful
- If you don't have specific information, be honest about it
- Keep responses concise and relevant
- Help visitors understand the owner's design expertise and services`

// BuildTranscript assembles the request-scoped model input: one system
// turn carrying the behavioral instructions and the grounding context,
// the session's prior turns in chronological order, then the current
// user turn.
func BuildTranscript(docs []model.Document, history []model.ChatMessage, userMessage string) []adapter.Message {
	var sb strings.Builder
	sb.WriteString(assistantIntro)
	sb.WriteString("\n\n")

	// The document block is omitted entirely when there is nothing to
	// ground on, not left as an empty section.
	if ctx := buildContext(docs); ctx != "" {
		sb.WriteString("Here is information about the owner that you can use to answer questions:\n\n")
		sb.WriteString(ctx)
		sb.WriteString("\n\n")
	}
	sb.WriteString(assistantGuidelines)

	msgs := make([]adapter.Message, 0, len(history)+2)
	msgs = append(msgs, adapter.Message{Role: model.RoleSystem, Content: sb.String()})
	for _, m := range history {
		msgs = append(msgs, adapter.Message{Role: m.Role, Content: m.Content})
	}
	msgs = append(msgs, adapter.Message{Role: model.RoleUser, Content: userMessage})
	return msgs
}

func buildContext(docs []model.Document) string {
	if len(docs) == 0 {
		return ""
	}
	sections := make([]string, 0, len(docs))
	for _, d := range docs {
		sections = append(sections, "## "+d.Title+"\n"+d.Content)
	}
	return strings.Join(sections, "\n\n---\n\n")
}
