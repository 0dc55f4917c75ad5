package web

import (
	"context"

	"portfolio-backend/internal/infra/ratelimit"
	"portfolio-backend/internal/usecase"
)

type fakeChatUC struct {
	reply string
	err   error

	gotMessage   string
	gotSessionID string
}

func (f *fakeChatUC) SendMessage(ctx context.Context, message, sessionID string) (string, error) {
	f.gotMessage = message
	f.gotSessionID = sessionID
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

type fakeContactUC struct {
	err error

	gotInput usecase.ContactInput
	gotKey   string
	calls    int
}

func (f *fakeContactUC) Submit(ctx context.Context, in usecase.ContactInput, clientKey string) error {
	f.calls++
	f.gotInput = in
	f.gotKey = clientKey
	return f.err
}

type fakeLimiter struct {
	res ratelimit.Result
	err error

	gotKey string
}

func (f *fakeLimiter) Allow(ctx context.Context, key string) (ratelimit.Result, error) {
	f.gotKey = key
	return f.res, f.err
}

func admitAll() *fakeLimiter {
	return &fakeLimiter{res: ratelimit.Result{Allowed: true, Remaining: 9}}
}

func rejectAll() *fakeLimiter {
	return &fakeLimiter{res: ratelimit.Result{Allowed: false, Remaining: 0}}
}
