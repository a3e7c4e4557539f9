package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/jose-valero/lounge-hub/internal/infra/storage"
)

// Mantenimiento administrativo del store compartido: marca stale los
// lounges sin heartbeat y poda eventos de membresía viejos. Se corre a
// mano o por cron en el mismo host que los lounges.
func main() {
	_ = godotenv.Load()

	retention := flag.Int("retention-days", 90, "días de eventos de membresía a conservar")
	flag.Parse()

	path := os.Getenv("SHARED_DB_PATH")
	if path == "" {
		path = filepath.Join("..", "lounge_hub.db")
	}
	window := 600 * time.Second
	if v := os.Getenv("FRESHNESS_WINDOW_SECONDS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			log.Fatalf("env FRESHNESS_WINDOW_SECONDS inválida: %q", v)
		}
		window = time.Duration(n) * time.Second
	}

	store := storage.NewStore(path)
	lounges := storage.NewLoungeRepo(store)
	events := storage.NewEventRepo(store)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	stale, err := lounges.MarkInactive(ctx, window)
	if err != nil {
		log.Fatalf("sweep de lounges: %v", err)
	}
	pruned, err := events.Prune(ctx, time.Now().UTC().AddDate(0, 0, -*retention))
	if err != nil {
		log.Fatalf("prune de eventos: %v", err)
	}

	fmt.Printf("ok: %d lounge(s) marcados inactivos, %d evento(s) podados\n", stale, pruned)
}
