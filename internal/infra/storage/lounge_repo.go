package storage

import (
	"context"
	"database/sql"
	"time"
)

type LoungeRepo struct{ store *Store }

func NewLoungeRepo(st *Store) *LoungeRepo { return &LoungeRepo{store: st} }

// Upsert: alta o ping de presencia. last_seen_at nunca retrocede: con dos
// procesos pisándose queda el timestamp más nuevo, y el unique de
// lounge_id convierte el insert concurrente en update (no es error).
func (r *LoungeRepo) Upsert(ctx context.Context, rec LoungeRecord) error {
	return r.store.withDB(ctx, func(ctx context.Context, db *sql.DB) error {
		_, err := db.ExecContext(ctx, `
INSERT INTO lounges (lounge_id, display_name, status, started_at, last_seen_at)
VALUES (?,?,?,?,?)
ON CONFLICT (lounge_id) DO UPDATE SET
  display_name = excluded.display_name,
  status       = excluded.status,
  started_at   = excluded.started_at,
  last_seen_at = max(lounges.last_seen_at, excluded.last_seen_at)
`, rec.LoungeID, rec.DisplayName, int(rec.Status), rec.StartedAt.UTC(), rec.LastSeenAt.UTC())
		return err
	})
}

// ListActive filtra por frescura además del flag: un proceso que crasheó
// no puede marcarse INACTIVE, así que una fila vieja se excluye aunque
// siga diciendo ACTIVE.
func (r *LoungeRepo) ListActive(ctx context.Context, window time.Duration) ([]LoungeRecord, error) {
	var out []LoungeRecord
	err := r.store.withDB(ctx, func(ctx context.Context, db *sql.DB) error {
		cutoff := time.Now().UTC().Add(-window)
		rows, err := db.QueryContext(ctx, `
SELECT lounge_id, display_name, status, started_at, last_seen_at
  FROM lounges
 WHERE status = 1
   AND last_seen_at > ?
 ORDER BY display_name ASC
`, cutoff)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var rec LoungeRecord
			var status int
			if err := rows.Scan(&rec.LoungeID, &rec.DisplayName, &status, &rec.StartedAt, &rec.LastSeenAt); err != nil {
				return err
			}
			rec.Status = LoungeStatus(status)
			out = append(out, rec)
		}
		return rows.Err()
	})
	return out, err
}

func (r *LoungeRepo) Get(ctx context.Context, loungeID string) (LoungeRecord, error) {
	var rec LoungeRecord
	err := r.store.withDB(ctx, func(ctx context.Context, db *sql.DB) error {
		var status int
		err := db.QueryRowContext(ctx, `
SELECT lounge_id, display_name, status, started_at, last_seen_at
  FROM lounges
 WHERE lounge_id = ?
`, loungeID).Scan(&rec.LoungeID, &rec.DisplayName, &status, &rec.StartedAt, &rec.LastSeenAt)
		if err == sql.ErrNoRows {
			return ErrNotFound
		}
		rec.Status = LoungeStatus(status)
		return err
	})
	return rec, err
}

// MarkInactive: sweep de lounges sin heartbeat dentro de la ventana
// (lo corren el hub y el janitor; las lecturas ya filtran igual).
func (r *LoungeRepo) MarkInactive(ctx context.Context, window time.Duration) (int64, error) {
	var n int64
	err := r.store.withDB(ctx, func(ctx context.Context, db *sql.DB) error {
		cutoff := time.Now().UTC().Add(-window)
		res, err := db.ExecContext(ctx, `
UPDATE lounges
   SET status = 0
 WHERE status = 1
   AND last_seen_at < ?
`, cutoff)
		if err != nil {
			return err
		}
		n, _ = res.RowsAffected()
		return nil
	})
	return n, err
}
