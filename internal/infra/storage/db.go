package storage

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
	"github.com/sethvargo/go-retry"
)

//go:embed migrations/*.sql
var migrations embed.FS

var (
	// ErrStoreUnavailable: el archivo compartido no existe, no se pudo
	// abrir dentro del presupuesto de reintentos, o la operación expiró.
	// Nunca tira abajo un lounge: todos los callers degradan.
	ErrStoreUnavailable = errors.New("shared store unavailable")

	ErrNotFound = errors.New("not found")
)

// Timeout por operación: ninguna llamada al store puede colgar el event
// loop del bot más que esto.
const opTimeout = 3 * time.Second

// Store referencia la base SQLite compartida entre todos los procesos
// (lounges + hub). No retiene la conexión: cada operación abre un handle
// corto y lo cierra, así ningún proceso monopoliza el archivo.
type Store struct {
	path string

	mu       sync.Mutex
	migrated bool
}

func NewStore(path string) *Store { return &Store{path: path} }

func (s *Store) Path() string { return s.path }

func (s *Store) dsn() string {
	return "file:" + s.path + "?_journal_mode=WAL&_busy_timeout=1500&_loc=UTC"
}

// withDB: abre → ping → migrate (una sola vez) → fn → close. Toda
// operación de los repos pasa por acá; una transacción corta por llamada.
func (s *Store) withDB(ctx context.Context, fn func(ctx context.Context, db *sql.DB) error) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	// si el directorio compartido no existe corremos en modo standalone
	if dir := filepath.Dir(s.path); dir != "" && dir != "." {
		if _, err := os.Stat(dir); err != nil {
			return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
	}

	var db *sql.DB
	b := retry.WithMaxRetries(3, retry.NewConstant(150*time.Millisecond))
	err := retry.Do(ctx, b, func(ctx context.Context) error {
		d, err := sql.Open("sqlite3", s.dsn())
		if err != nil {
			return err
		}
		if err := d.PingContext(ctx); err != nil {
			_ = d.Close()
			// lock transitorio de otro proceso: vale reintentar
			return retry.RetryableError(err)
		}
		db = d
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	defer db.Close()
	db.SetMaxOpenConns(1)

	if err := s.migrateOnce(db); err != nil {
		return fmt.Errorf("%w: migrate: %v", ErrStoreUnavailable, err)
	}

	if err := fn(ctx, db); err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		return err
	}
	return nil
}

// migrateOnce aplica las migraciones embebidas la primera vez que el store
// responde. Si el archivo compartido aparece recién a mitad de vida del
// proceso (alguien montó el directorio), igual migramos en ese momento.
func (s *Store) migrateOnce(db *sql.DB) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.migrated {
		return nil
	}
	goose.SetBaseFS(migrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return err
	}
	s.migrated = true
	return nil
}

// Ping: chequeo de arranque. Que falle no es fatal (modo standalone).
func (s *Store) Ping(ctx context.Context) error {
	return s.withDB(ctx, func(ctx context.Context, db *sql.DB) error { return nil })
}
