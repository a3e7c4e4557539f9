package service

import (
	"context"
	"sync"
	"time"

	"github.com/jose-valero/lounge-hub/internal/infra/storage"
)

// fakes mínimos de los ports para testear servicios sin store real

type fakeTermRepo struct {
	mu    sync.Mutex
	terms []storage.ModerationTerm
	err   error
}

func (f *fakeTermRepo) Add(ctx context.Context, term, kind, addedBy string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	for _, t := range f.terms {
		if t.Term == term && t.Kind == kind {
			return nil
		}
	}
	f.terms = append(f.terms, storage.ModerationTerm{Term: term, Kind: kind, AddedBy: addedBy, AddedAt: time.Now().UTC()})
	return nil
}

func (f *fakeTermRepo) Remove(ctx context.Context, term, kind string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return false, f.err
	}
	for i, t := range f.terms {
		if t.Term == term && t.Kind == kind {
			f.terms = append(f.terms[:i], f.terms[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeTermRepo) ListAll(ctx context.Context) ([]storage.ModerationTerm, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := make([]storage.ModerationTerm, len(f.terms))
	copy(out, f.terms)
	return out, nil
}

func (f *fakeTermRepo) setErr(err error) {
	f.mu.Lock()
	f.err = err
	f.mu.Unlock()
}

type fakeEventRepo struct {
	mu     sync.Mutex
	events []storage.MembershipEvent
	err    error
	nextID int64
}

func (f *fakeEventRepo) Append(ctx context.Context, ev storage.MembershipEvent) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	f.nextID++
	ev.EventID = f.nextID
	f.events = append(f.events, ev)
	return ev.EventID, nil
}

func (f *fakeEventRepo) Recent(ctx context.Context, loungeID string, limit int) ([]storage.MembershipEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	var out []storage.MembershipEvent
	for i := len(f.events) - 1; i >= 0 && len(out) < limit; i-- {
		if f.events[i].LoungeID == loungeID {
			out = append(out, f.events[i])
		}
	}
	return out, nil
}

type fakeBanner struct {
	mu     sync.Mutex
	banned []string
	err    error
}

func (f *fakeBanner) BanUser(ctx context.Context, chatID, userID, reason string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.banned = append(f.banned, userID)
	return f.err
}
