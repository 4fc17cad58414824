package main

import (
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/davronov/matchday/internal/config"
	"github.com/davronov/matchday/internal/database"
	"github.com/davronov/matchday/internal/state"
)

// Seeds the roster directly into the state database. Intended for local
// development: `go run ./cmd/seeder "Саша, Вова, Дима"`.
func main() {
	log.Info("Starting roster seeder...")

	if len(os.Args) < 2 {
		log.Fatal("Usage: seeder \"Name1, Name2, Name3\"")
	}

	var names []string
	for _, part := range strings.Split(os.Args[1], ",") {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		log.Fatal("No player names given")
	}

	cfg := config.Load()
	db, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken)
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer db.Close()

	store := state.New(db)
	added, duplicates := store.AddPlayers(names)

	log.Info("Roster seeded",
		"added", len(added),
		"duplicates", len(duplicates),
		"total", len(store.Snapshot().Players))
}
