package service

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/jose-valero/lounge-hub/internal/domain"
	"github.com/jose-valero/lounge-hub/internal/infra/storage"
)

// ModerationService evalúa nombres contra las listas compartidas y aplica
// ediciones de admins. Las listas se leen frescas en cada evaluación; el
// último set leído con éxito queda como cache para modo degradado
// (arranca vacío si nunca hubo lectura buena).
type ModerationService struct {
	terms    TermRepo
	loungeID string

	mu    sync.RWMutex
	cache domain.TermSet
}

func NewModerationService(terms TermRepo, loungeID string) *ModerationService {
	return &ModerationService{terms: terms, loungeID: loungeID}
}

// loadTerms: lectura fresca del store; si falla, el último set bueno.
func (s *ModerationService) loadTerms(ctx context.Context) domain.TermSet {
	all, err := s.terms.ListAll(ctx)
	if err != nil {
		log.Printf("⚠️ moderación: store no disponible, uso cache local: %v", err)
		s.mu.RLock()
		defer s.mu.RUnlock()
		// copia: la cache sigue mutando bajo el lock mientras el caller
		// itera su snapshot sin lock
		return s.cache.Clone()
	}

	var set domain.TermSet
	for _, t := range all {
		switch t.Kind {
		case storage.KindWhitelist:
			set.Whitelist = append(set.Whitelist, t.Term)
		default:
			set.Blacklist = append(set.Blacklist, t.Term)
		}
	}

	s.mu.Lock()
	s.cache = set
	s.mu.Unlock()
	return set
}

func (s *ModerationService) IsBlocked(ctx context.Context, displayName string) bool {
	return s.loadTerms(ctx).Blocks(displayName)
}

// Ban agrega un término a la lista pedida. Con el store caído muta sólo
// la cache local y lo avisa en la respuesta: nunca se pierde en silencio.
func (s *ModerationService) Ban(ctx context.Context, rawTerm, kind string) (string, error) {
	term := domain.Normalize(rawTerm)
	if term == "" {
		return "❌ Término vacío, nada que agregar.", nil
	}
	kind = normalizeKind(kind)

	if err := s.terms.Add(ctx, term, kind, s.loungeID); err != nil {
		if errors.Is(err, storage.ErrStoreUnavailable) {
			s.cacheAdd(term, kind)
			return "⚠️ Store compartido no disponible: `" + term + "` queda en **" + kind + "** sólo en este lounge hasta reconectar.", nil
		}
		return "", err
	}
	s.cacheAdd(term, kind)
	return "✅ `" + term + "` agregado a **" + kind + "**. Los demás lounges lo ven en su próxima lectura.", nil
}

// Unban saca un término; que no exista no es error.
func (s *ModerationService) Unban(ctx context.Context, rawTerm, kind string) (string, error) {
	term := domain.Normalize(rawTerm)
	if term == "" {
		return "❌ Término vacío, nada que sacar.", nil
	}
	kind = normalizeKind(kind)

	existed, err := s.terms.Remove(ctx, term, kind)
	if err != nil {
		if errors.Is(err, storage.ErrStoreUnavailable) {
			s.cacheRemove(term, kind)
			return "⚠️ Store compartido no disponible: `" + term + "` removido de **" + kind + "** sólo en este lounge.", nil
		}
		return "", err
	}
	s.cacheRemove(term, kind)
	if !existed {
		return "ℹ️ `" + term + "` no estaba en **" + kind + "**.", nil
	}
	return "✅ `" + term + "` removido de **" + kind + "**.", nil
}

// TermList arma la respuesta de /modterms.
func (s *ModerationService) TermList(ctx context.Context) string {
	set := s.loadTerms(ctx)
	out := "🚫 **Blacklist:** "
	out += joinOrDash(set.Blacklist)
	out += "\n✅ **Whitelist:** "
	out += joinOrDash(set.Whitelist)
	return out
}

func (s *ModerationService) cacheAdd(term, kind string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cache.Has(term, kind) {
		return
	}
	if kind == storage.KindWhitelist {
		s.cache.Whitelist = append(s.cache.Whitelist, term)
		return
	}
	s.cache.Blacklist = append(s.cache.Blacklist, term)
}

func (s *ModerationService) cacheRemove(term, kind string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	// slice nuevo, nunca compactar in place: los snapshots ya entregados
	// pueden estar leyendo el array viejo
	drop := func(list []string) []string {
		out := make([]string, 0, len(list))
		for _, t := range list {
			if t != term {
				out = append(out, t)
			}
		}
		return out
	}
	if kind == storage.KindWhitelist {
		s.cache.Whitelist = drop(s.cache.Whitelist)
		return
	}
	s.cache.Blacklist = drop(s.cache.Blacklist)
}

func normalizeKind(kind string) string {
	if kind == storage.KindWhitelist {
		return storage.KindWhitelist
	}
	return storage.KindBlacklist
}

func joinOrDash(terms []string) string {
	if len(terms) == 0 {
		return "_vacía_"
	}
	out := ""
	for i, t := range terms {
		if i > 0 {
			out += ", "
		}
		out += "`" + t + "`"
	}
	return out
}
