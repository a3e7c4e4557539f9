package service

import (
	"context"
	"time"

	"github.com/jose-valero/lounge-hub/internal/infra/storage"
)

// Lo implementa internal/infra/storage.LoungeRepo
type LoungeRepo interface {
	Upsert(ctx context.Context, rec storage.LoungeRecord) error
	ListActive(ctx context.Context, window time.Duration) ([]storage.LoungeRecord, error)
	MarkInactive(ctx context.Context, window time.Duration) (int64, error)
}

// Lo implementa internal/infra/storage.TermRepo
type TermRepo interface {
	Add(ctx context.Context, term, kind, addedBy string) error
	Remove(ctx context.Context, term, kind string) (bool, error)
	ListAll(ctx context.Context) ([]storage.ModerationTerm, error)
}

// Lo implementa internal/infra/storage.EventRepo
type EventRepo interface {
	Append(ctx context.Context, ev storage.MembershipEvent) (int64, error)
	Recent(ctx context.Context, loungeID string, limit int) ([]storage.MembershipEvent, error)
}

// Lo implementa internal/adapters/discord.Banner (el ban real va por el
// transporte de mensajería, no por el store).
type Banner interface {
	BanUser(ctx context.Context, chatID, userID, reason string) error
}
