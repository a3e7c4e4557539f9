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
	"github.com/jose-valero/lounge-hub/internal/app/service"
	"github.com/jose-valero/lounge-hub/internal/infra/config"
	"github.com/jose-valero/lounge-hub/internal/infra/storage"
)

func main() {
	_ = godotenv.Load()
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg := config.Load()
	if cfg.LoungeName == "" {
		log.Fatal("faltante env LOUNGE_NAME")
	}

	// Store compartido. Que no esté no es fatal: el lounge arranca igual
	// en modo standalone (moderación con cache local, /start sólo con
	// nuestra propia presencia).
	store := storage.NewStore(cfg.SharedDBPath)
	{
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := store.Ping(ctx); err != nil {
			log.Printf("⚠️ store compartido no disponible (%v): modo standalone", err)
		} else {
			log.Printf("✅ store compartido listo y migrado en %s", store.Path())
		}
		cancel()
	}

	loungesRepo := storage.NewLoungeRepo(store)
	termsRepo := storage.NewTermRepo(store)
	eventsRepo := storage.NewEventRepo(store)

	// Discord session
	auth := cfg.DiscordToken
	if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(auth)), "bot ") {
		auth = "Bot " + strings.TrimSpace(auth)
	}
	s, err := discordgo.New(auth)
	if err != nil {
		log.Fatal(err)
	}
	s.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMembers
	if err := s.Open(); err != nil {
		log.Fatal(err)
	}
	defer s.Close()
	log.Printf("✅ Conectado como %s (%s)", s.State.User.Username, s.State.User.ID)

	// la identidad del lounge sale del bot user (estable entre restarts)
	loungeID := s.State.User.ID

	// Services
	registry := service.NewRegistryService(loungesRepo, loungeID, cfg.LoungeName, cfg.Freshness)
	mod := service.NewModerationService(termsRepo, loungeID)
	members := service.NewMembershipService(mod, eventsRepo, discordrouter.NewBanner(s), loungeID)

	if err := registry.Register(context.Background()); err != nil {
		log.Printf("⚠️ registro de presencia falló: %v", err)
	} else {
		log.Printf("✅ lounge %q registrado en el hub", cfg.LoungeName)
	}

	// Router
	r := discordrouter.NewRouter(s, cfg.DiscordGuild, registry, mod, members, cfg.AdminRoleIDs)
	if err := r.Register(); err != nil {
		log.Fatalf("registrando comandos: %v", err)
	}
	r.Handlers()
	log.Printf("✅ comandos registrados en guild %s", cfg.DiscordGuild)

	// Heartbeat de presencia
	go func() {
		t := time.NewTicker(cfg.Heartbeat)
		defer t.Stop()
		for range t.C {
			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			if err := registry.Heartbeat(ctx); err != nil {
				log.Printf("⚠️ heartbeat: %v", err)
			}
			cancel()
		}
	}()

	// Esperar señal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-stop

	// best-effort: los peers nos darían por caídos igual vía frescura
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := registry.Shutdown(ctx); err != nil {
		log.Printf("⚠️ no pude marcar INACTIVE al salir: %v", err)
	}
}
