package storage

import (
	"context"
	"database/sql"
	"time"
)

type TermRepo struct{ store *Store }

func NewTermRepo(st *Store) *TermRepo { return &TermRepo{store: st} }

// Add es idempotente: re-agregar un (term, kind) existente es no-op OK.
func (r *TermRepo) Add(ctx context.Context, term, kind, addedBy string) error {
	return r.store.withDB(ctx, func(ctx context.Context, db *sql.DB) error {
		_, err := db.ExecContext(ctx, `
INSERT INTO moderation_terms (term, kind, added_by, added_at)
VALUES (?,?,?,?)
ON CONFLICT (term, kind) DO NOTHING
`, term, kind, addedBy, time.Now().UTC())
		return err
	})
}

// Remove devuelve si existía; borrar un término inexistente no es error.
func (r *TermRepo) Remove(ctx context.Context, term, kind string) (bool, error) {
	var existed bool
	err := r.store.withDB(ctx, func(ctx context.Context, db *sql.DB) error {
		res, err := db.ExecContext(ctx, `
DELETE FROM moderation_terms
 WHERE term = ? AND kind = ?
`, term, kind)
		if err != nil {
			return err
		}
		n, _ := res.RowsAffected()
		existed = n > 0
		return nil
	})
	return existed, err
}

func (r *TermRepo) List(ctx context.Context, kind string) ([]ModerationTerm, error) {
	return r.list(ctx, `
SELECT term, kind, added_by, added_at
  FROM moderation_terms
 WHERE kind = ?
 ORDER BY term ASC
`, kind)
}

// ListAll trae ambas listas en un solo round trip; es lo que usa cada
// evaluación de nombre.
func (r *TermRepo) ListAll(ctx context.Context) ([]ModerationTerm, error) {
	return r.list(ctx, `
SELECT term, kind, added_by, added_at
  FROM moderation_terms
 ORDER BY kind, term ASC
`)
}

func (r *TermRepo) list(ctx context.Context, query string, args ...any) ([]ModerationTerm, error) {
	var out []ModerationTerm
	err := r.store.withDB(ctx, func(ctx context.Context, db *sql.DB) error {
		rows, err := db.QueryContext(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var t ModerationTerm
			if err := rows.Scan(&t.Term, &t.Kind, &t.AddedBy, &t.AddedAt); err != nil {
				return err
			}
			out = append(out, t)
		}
		return rows.Err()
	})
	return out, err
}
