package storage

import (
	"context"
	"database/sql"
	"time"
)

type EventRepo struct{ store *Store }

func NewEventRepo(st *Store) *EventRepo { return &EventRepo{store: st} }

// Append inserta el registro de auditoría y devuelve el event_id asignado
// por el store (monótono global entre todos los lounges).
func (r *EventRepo) Append(ctx context.Context, ev MembershipEvent) (int64, error) {
	var id int64
	err := r.store.withDB(ctx, func(ctx context.Context, db *sql.DB) error {
		occurred := ev.OccurredAt
		if occurred.IsZero() {
			occurred = time.Now().UTC()
		}
		res, err := db.ExecContext(ctx, `
INSERT INTO membership_events
  (lounge_id, chat_id, user_display_name, event_type, occurred_at, action_taken)
VALUES (?,?,?,?,?,?)
`, ev.LoungeID, ev.ChatID, ev.UserDisplayName, ev.EventType, occurred.UTC(), ev.ActionTaken)
		if err != nil {
			return err
		}
		id, err = res.LastInsertId()
		return err
	})
	return id, err
}

// Recent: última página del audit de un lounge, más nuevo primero.
func (r *EventRepo) Recent(ctx context.Context, loungeID string, limit int) ([]MembershipEvent, error) {
	var out []MembershipEvent
	err := r.store.withDB(ctx, func(ctx context.Context, db *sql.DB) error {
		rows, err := db.QueryContext(ctx, `
SELECT event_id, lounge_id, chat_id, user_display_name, event_type, occurred_at, action_taken
  FROM membership_events
 WHERE lounge_id = ?
 ORDER BY event_id DESC
 LIMIT ?
`, loungeID, limit)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var ev MembershipEvent
			if err := rows.Scan(&ev.EventID, &ev.LoungeID, &ev.ChatID, &ev.UserDisplayName, &ev.EventType, &ev.OccurredAt, &ev.ActionTaken); err != nil {
				return err
			}
			out = append(out, ev)
		}
		return rows.Err()
	})
	return out, err
}

// Prune: retención administrativa (sólo el janitor la invoca).
func (r *EventRepo) Prune(ctx context.Context, olderThan time.Time) (int64, error) {
	var n int64
	err := r.store.withDB(ctx, func(ctx context.Context, db *sql.DB) error {
		res, err := db.ExecContext(ctx, `
DELETE FROM membership_events
 WHERE occurred_at < ?
`, olderThan.UTC())
		if err != nil {
			return err
		}
		n, _ = res.RowsAffected()
		return nil
	})
	return n, err
}
