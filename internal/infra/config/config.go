package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	DiscordToken string
	DiscordGuild string
	LoungeName   string

	// Store compartido entre procesos. Convención: un nivel arriba del
	// directorio de instalación de los lounges. Que no exista es una
	// configuración válida (modo standalone).
	SharedDBPath string

	Heartbeat time.Duration // intervalo de ping de presencia
	Freshness time.Duration // ventana para considerar un lounge vivo

	HTTPAddr     string // status server del hub, opcional
	AdminRoleIDs []string
}

func Load() Config {
	get := func(k string, req bool) string {
		v := os.Getenv(k)
		if v == "" && req {
			log.Fatalf("faltante env %s", k)
		}
		return v
	}
	getSecs := func(k string, def int) time.Duration {
		v := os.Getenv(k)
		if v == "" {
			return time.Duration(def) * time.Second
		}
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			log.Fatalf("env %s inválida: %q", k, v)
		}
		return time.Duration(n) * time.Second
	}

	cfg := Config{
		DiscordToken: get("BOT_TOKEN", true),
		DiscordGuild: get("DISCORD_GUILD_ID", true),
		LoungeName:   get("LOUNGE_NAME", false),
		SharedDBPath: get("SHARED_DB_PATH", false),
		Heartbeat:    getSecs("HEARTBEAT_SECONDS", 60),
		Freshness:    getSecs("FRESHNESS_WINDOW_SECONDS", 600),
		HTTPAddr:     get("HTTP_ADDR", false),
	}
	if raw := get("ADMIN_ROLE_IDS", false); raw != "" {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				cfg.AdminRoleIDs = append(cfg.AdminRoleIDs, id)
			}
		}
	}

	if cfg.SharedDBPath == "" {
		cfg.SharedDBPath = filepath.Join("..", "lounge_hub.db")
	}
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}
	// la ventana tiene que superar el heartbeat con margen para no dar
	// falsos stale ante demoras transitorias
	if cfg.Freshness < 3*cfg.Heartbeat {
		log.Printf("⚠️ FRESHNESS_WINDOW_SECONDS (%s) < 3x heartbeat (%s): riesgo de falsos stale", cfg.Freshness, cfg.Heartbeat)
	}
	return cfg
}
