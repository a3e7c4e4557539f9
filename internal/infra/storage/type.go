package storage

import "time"

type LoungeStatus int

const (
	StatusInactive LoungeStatus = 0
	StatusActive   LoungeStatus = 1
)

// Una fila por proceso lounge conocido. Nunca se borra: sólo pasa a
// INACTIVE (por shutdown prolijo o por el sweep de stale).
type LoungeRecord struct {
	LoungeID    string
	DisplayName string
	Status      LoungeStatus
	StartedAt   time.Time
	LastSeenAt  time.Time
}

const (
	KindBlacklist = "blacklist"
	KindWhitelist = "whitelist"
)

type ModerationTerm struct {
	Term    string
	Kind    string // blacklist | whitelist
	AddedBy string // lounge_id que lo agregó
	AddedAt time.Time
}

const (
	EventJoin  = "join"
	EventLeave = "leave"

	ActionNone   = "none"
	ActionBanned = "banned"
)

// Registro de auditoría append-only; inmutable una vez escrito.
type MembershipEvent struct {
	EventID         int64
	LoungeID        string
	ChatID          string
	UserDisplayName string
	EventType       string // join | leave
	OccurredAt      time.Time
	ActionTaken     string // none | banned
}
