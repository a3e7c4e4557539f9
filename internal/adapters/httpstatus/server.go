package httpstatus

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/jose-valero/lounge-hub/internal/app/service"
)

// Server expone la presencia agregada del hub por HTTP (para monitoreo;
// la fuente sigue siendo el store compartido).
type Server struct {
	registry *service.RegistryService
	mux      *http.ServeMux
}

func New(registry *service.RegistryService) *Server {
	s := &Server{registry: registry, mux: http.NewServeMux()}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("/healthz", s.handleHealth)
	s.mux.HandleFunc("/lounges", s.handleLounges)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleLounges(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	recs, err := s.registry.ActiveLounges(r.Context())
	if err != nil {
		http.Error(w, "registry read failed", http.StatusInternalServerError)
		return
	}

	type lounge struct {
		LoungeID    string    `json:"lounge_id"`
		DisplayName string    `json:"display_name"`
		LastSeenAt  time.Time `json:"last_seen_at"`
	}
	out := make([]lounge, 0, len(recs))
	for _, rec := range recs {
		out = append(out, lounge{
			LoungeID:    rec.LoungeID,
			DisplayName: rec.DisplayName,
			LastSeenAt:  rec.LastSeenAt,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(out)
}

func (s *Server) Start(addr string) {
	log.Printf("🌐 HTTP listening on %s", addr)
	if err := http.ListenAndServe(addr, s.mux); err != nil {
		log.Fatalf("http server: %v", err)
	}
}
