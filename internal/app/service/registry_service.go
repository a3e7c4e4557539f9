package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jose-valero/lounge-hub/internal/infra/storage"
)

// RegistryService mantiene la presencia de este proceso en el store
// compartido y lee la de los demás. El hub se construye con loungeID
// vacío: no registra presencia propia y en modo degradado responde vacío.
type RegistryService struct {
	lounges   LoungeRepo
	loungeID  string
	name      string
	window    time.Duration
	startedAt time.Time
}

func NewRegistryService(lounges LoungeRepo, loungeID, name string, window time.Duration) *RegistryService {
	return &RegistryService{
		lounges:   lounges,
		loungeID:  loungeID,
		name:      name,
		window:    window,
		startedAt: time.Now().UTC(),
	}
}

// Register da de alta (o refresca) la presencia de este proceso. El
// primer upsert exitoso nos pasa de desconocidos a ACTIVE.
func (s *RegistryService) Register(ctx context.Context) error {
	if s.loungeID == "" {
		return nil
	}
	return s.lounges.Upsert(ctx, s.selfRecord(storage.StatusActive))
}

// Heartbeat es el mismo upsert; el ticker vive en main.
func (s *RegistryService) Heartbeat(ctx context.Context) error {
	return s.Register(ctx)
}

// Shutdown marca INACTIVE al salir. Best-effort: si el store no está, un
// peer nos va a dar por caídos igual vía el filtro de frescura.
func (s *RegistryService) Shutdown(ctx context.Context) error {
	if s.loungeID == "" {
		return nil
	}
	return s.lounges.Upsert(ctx, s.selfRecord(storage.StatusInactive))
}

func (s *RegistryService) selfRecord(st storage.LoungeStatus) storage.LoungeRecord {
	return storage.LoungeRecord{
		LoungeID:    s.loungeID,
		DisplayName: s.name,
		Status:      st,
		StartedAt:   s.startedAt,
		LastSeenAt:  time.Now().UTC(),
	}
}

// ActiveLounges: lista filtrada por frescura, ordenada por nombre. Con el
// store caído un lounge al menos se conoce a sí mismo; el hub devuelve
// vacío. Nunca propaga ErrStoreUnavailable.
func (s *RegistryService) ActiveLounges(ctx context.Context) ([]storage.LoungeRecord, error) {
	recs, err := s.lounges.ListActive(ctx, s.window)
	if err != nil {
		if errors.Is(err, storage.ErrStoreUnavailable) {
			if s.loungeID == "" {
				return nil, nil
			}
			return []storage.LoungeRecord{s.selfRecord(storage.StatusActive)}, nil
		}
		return nil, err
	}
	return recs, nil
}

// Sweep pasa a INACTIVE los lounges sin heartbeat dentro de la ventana
// (lo corre el hub en su job periódico).
func (s *RegistryService) Sweep(ctx context.Context) (int64, error) {
	return s.lounges.MarkInactive(ctx, s.window)
}

// StartMessage arma la respuesta de /start.
func (s *RegistryService) StartMessage(ctx context.Context) string {
	recs, err := s.ActiveLounges(ctx)
	if err != nil {
		return "⚠️ No pude leer el registro de lounges: " + err.Error()
	}

	out := "👋 Bienvenido al hub de lounges. Usa `/help` para ver los comandos.\n\n**Lounges activos:**\n"
	if len(recs) == 0 {
		out += "_ninguno por ahora_\n"
		return out
	}
	for _, l := range recs {
		out += fmt.Sprintf("• **%s** — visto <t:%d:R>\n", l.DisplayName, l.LastSeenAt.Unix())
	}
	return out
}
