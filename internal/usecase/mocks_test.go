package usecase

import (
	"context"
	"sync"
	"time"

	"portfolio-backend/internal/domain/model"
	"portfolio-backend/internal/domain/ports/adapter"
)

// memMessageRepo is a small in-memory implementation used by unit tests.
type memMessageRepo struct {
	mu        sync.Mutex
	bySession map[string][]model.ChatMessage
	countErr  error // simulate a failing count
	listErr   error // simulate a failing history fetch
	appendErr error // simulate a failing persistence write
}

func newMemMessageRepo() *memMessageRepo {
	return &memMessageRepo{bySession: make(map[string][]model.ChatMessage)}
}

func (m *memMessageRepo) CountBySession(ctx context.Context, sessionID string) (int, error) {
	if m.countErr != nil {
		return 0, m.countErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.bySession[sessionID]), nil
}

func (m *memMessageRepo) ListBySession(ctx context.Context, sessionID string, limit int, newestFirst bool) ([]model.ChatMessage, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	msgs := m.bySession[sessionID]
	if len(msgs) <= limit {
		out := make([]model.ChatMessage, len(msgs))
		copy(out, msgs)
		return out, nil
	}
	if newestFirst {
		out := make([]model.ChatMessage, limit)
		copy(out, msgs[len(msgs)-limit:])
		return out, nil
	}
	out := make([]model.ChatMessage, limit)
	copy(out, msgs[:limit])
	return out, nil
}

func (m *memMessageRepo) AppendTurns(ctx context.Context, sessionID, userText, assistantText string) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	// Both turns share one timestamp, like the transactional insert in the
	// real repository; insertion order carries the conversational order.
	now := time.Now()
	m.bySession[sessionID] = append(m.bySession[sessionID],
		model.ChatMessage{SessionID: sessionID, Role: model.RoleUser, Content: userText, CreatedAt: now},
		model.ChatMessage{SessionID: sessionID, Role: model.RoleAssistant, Content: assistantText, CreatedAt: now},
	)
	return nil
}

// seed stores n alternating turns for a session.
func (m *memMessageRepo) seed(sessionID string, n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	base := time.Now().Add(-time.Hour)
	for i := 0; i < n; i++ {
		role := model.RoleUser
		if i%2 == 1 {
			role = model.RoleAssistant
		}
		m.bySession[sessionID] = append(m.bySession[sessionID], model.ChatMessage{
			SessionID: sessionID,
			Role:      role,
			Content:   "turn",
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		})
	}
}

type memDocRepo struct {
	docs    []model.Document
	listErr error
}

func (m *memDocRepo) List(ctx context.Context, limit int) ([]model.Document, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	if len(m.docs) > limit {
		return m.docs[:limit], nil
	}
	return m.docs, nil
}

type fakeCompleter struct {
	reply    string
	err      error
	lastMsgs []adapter.Message
}

func (f *fakeCompleter) Complete(ctx context.Context, messages []adapter.Message) (string, error) {
	f.lastMsgs = messages
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

type fakeForwarder struct {
	err  error
	last *model.ContactSubmission
}

func (f *fakeForwarder) Forward(ctx context.Context, sub model.ContactSubmission) error {
	f.last = &sub
	return f.err
}
