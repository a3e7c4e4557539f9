package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"

	discordrouter "github.com/jose-valero/lounge-hub/internal/adapters/discord"
	"github.com/jose-valero/lounge-hub/internal/adapters/httpstatus"
	"github.com/jose-valero/lounge-hub/internal/app/service"
	"github.com/jose-valero/lounge-hub/internal/infra/config"
	"github.com/jose-valero/lounge-hub/internal/infra/storage"
)

// El hub es un proceso distinguido sin chat monitoreado propio: agrega la
// presencia de todos los lounges para /start y corre el sweep de stale.
func main() {
	_ = godotenv.Load()
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg := config.Load()

	store := storage.NewStore(cfg.SharedDBPath)
	{
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := store.Ping(ctx); err != nil {
			log.Printf("⚠️ store compartido no disponible (%v): el hub responde vacío", err)
		} else {
			log.Printf("✅ store compartido listo y migrado en %s", store.Path())
		}
		cancel()
	}

	loungesRepo := storage.NewLoungeRepo(store)
	termsRepo := storage.NewTermRepo(store)

	auth := cfg.DiscordToken
	if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(auth)), "bot ") {
		auth = "Bot " + strings.TrimSpace(auth)
	}
	s, err := discordgo.New(auth)
	if err != nil {
		log.Fatal(err)
	}
	s.Identify.Intents = discordgo.IntentsGuilds
	if err := s.Open(); err != nil {
		log.Fatal(err)
	}
	defer s.Close()
	log.Printf("✅ Conectado como %s (%s)", s.State.User.Username, s.State.User.ID)

	// loungeID vacío: el hub no registra presencia propia
	registry := service.NewRegistryService(loungesRepo, "", "", cfg.Freshness)
	mod := service.NewModerationService(termsRepo, "hub")

	r := discordrouter.NewRouter(s, cfg.DiscordGuild, registry, mod, nil, cfg.AdminRoleIDs)
	if err := r.Register(); err != nil {
		log.Fatalf("registrando comandos: %v", err)
	}
	r.Handlers()
	log.Printf("✅ comandos registrados en guild %s", cfg.DiscordGuild)

	// Status HTTP (monitoreo)
	web := httpstatus.New(registry)
	go web.Start(cfg.HTTPAddr)

	// Sweep periódico: lounges sin heartbeat pasan a INACTIVE
	go func() {
		t := time.NewTicker(60 * time.Second)
		defer t.Stop()
		for range t.C {
			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			n, err := registry.Sweep(ctx)
			cancel()
			if err != nil {
				log.Printf("⚠️ sweep: %v", err)
				continue
			}
			if n > 0 {
				log.Printf("🧹 %d lounge(s) marcados INACTIVE por falta de heartbeat", n)
			}
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-stop
}
