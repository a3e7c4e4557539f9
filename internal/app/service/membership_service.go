package service

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/jose-valero/lounge-hub/internal/infra/storage"
)

// MembershipService reacciona a los join/leave del chat monitoreado:
// evalúa el nombre, banea si corresponde y deja el registro de auditoría.
// La moderación va primero y el audit es best-effort, nunca al revés.
type MembershipService struct {
	mod      *ModerationService
	events   EventRepo
	banner   Banner
	loungeID string

	mu    sync.Mutex
	chats map[string]*sync.Mutex
}

func NewMembershipService(mod *ModerationService, events EventRepo, banner Banner, loungeID string) *MembershipService {
	return &MembershipService{
		mod:      mod,
		events:   events,
		banner:   banner,
		loungeID: loungeID,
		chats:    make(map[string]*sync.Mutex),
	}
}

// chatLock serializa los eventos de un mismo chat: el orden del audit
// importa por chat; entre chats distintos puede haber paralelismo.
func (s *MembershipService) chatLock(chatID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.chats[chatID]
	if !ok {
		l = &sync.Mutex{}
		s.chats[chatID] = l
	}
	return l
}

// HandleJoin devuelve si el usuario quedó bloqueado. Si el ban del
// transporte falla se loguea y el evento queda igual como BANNED: la
// decisión y el intento ya ocurrieron.
func (s *MembershipService) HandleJoin(ctx context.Context, chatID, userID, displayName string) bool {
	l := s.chatLock(chatID)
	l.Lock()
	defer l.Unlock()

	action := storage.ActionNone
	blocked := s.mod.IsBlocked(ctx, displayName)
	if blocked {
		if err := s.banner.BanUser(ctx, chatID, userID, "nombre bloqueado por moderación"); err != nil {
			log.Printf("⚠️ ban de %s en chat %s falló: %v", userID, chatID, err)
		}
		action = storage.ActionBanned
	}

	s.record(ctx, chatID, displayName, storage.EventJoin, action)
	return blocked
}

func (s *MembershipService) HandleLeave(ctx context.Context, chatID, userID, displayName string) {
	l := s.chatLock(chatID)
	l.Lock()
	defer l.Unlock()

	s.record(ctx, chatID, displayName, storage.EventLeave, storage.ActionNone)
}

func (s *MembershipService) record(ctx context.Context, chatID, displayName, eventType, action string) {
	_, err := s.events.Append(ctx, storage.MembershipEvent{
		LoungeID:        s.loungeID,
		ChatID:          chatID,
		UserDisplayName: displayName,
		EventType:       eventType,
		OccurredAt:      time.Now().UTC(),
		ActionTaken:     action,
	})
	if err != nil {
		// auditar es best-effort; el ban ya se aplicó
		log.Printf("⚠️ audit no registrado (%s %q en %s): %v", eventType, displayName, chatID, err)
	}
}

// RecentLog arma la respuesta de /modlog.
func (s *MembershipService) RecentLog(ctx context.Context, limit int) string {
	if limit <= 0 {
		limit = 10
	}
	evs, err := s.events.Recent(ctx, s.loungeID, limit)
	if err != nil {
		return "⚠️ No pude leer el audit compartido: " + err.Error()
	}
	if len(evs) == 0 {
		return "ℹ️ Sin eventos de membresía registrados."
	}

	out := "📋 **Últimos eventos de membresía:**\n"
	for _, ev := range evs {
		mark := ""
		if ev.ActionTaken == storage.ActionBanned {
			mark = " 🔨"
		}
		out += fmt.Sprintf("#%d %s — **%s** (%s)%s <t:%d:R>\n",
			ev.EventID, ev.EventType, ev.UserDisplayName, ev.ChatID, mark, ev.OccurredAt.Unix())
	}
	return out
}
