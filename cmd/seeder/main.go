package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/sabocue/arena/internal/bracket"
	"github.com/sabocue/arena/internal/database"
	"github.com/sabocue/arena/internal/sabo"
	"github.com/sabocue/arena/internal/store"
)

// Seeds one demo tournament with 32 placeholder players so the bracket can
// be driven through the HTTP API or CLI without real registration data.
func main() {
	dbName := flag.String("db", "arena.db", "Path to the local database file")
	migrationsDir := flag.String("migrations", "./migrations", "Path to the goose migrations")
	raceTo := flag.Int("race-to", 7, "Frames needed to win a match")
	flag.Parse()

	log.Info("Starting database seeder...")
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	db, teardown, err := database.InitDB(*dbName, "", "", *migrationsDir)
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer teardown()
	defer db.Close()

	startTime := time.Now()
	tournamentStore := store.New(db)

	t := &sabo.Tournament{
		ID:        uuid.New().String(),
		ClubID:    "seed-club",
		Status:    sabo.TournamentDraft,
		RaceTo:    *raceTo,
		CreatedAt: time.Now().Unix(),
	}

	var groups []*sabo.Group
	var matches []*sabo.Match
	for _, g := range []struct {
		id     sabo.GroupID
		prefix string
	}{{sabo.GroupA, "alpha"}, {sabo.GroupB, "beta"}} {
		participants := make([]string, sabo.GroupSize)
		for i := range participants {
			participants[i] = fmt.Sprintf("seed-%s-%02d", g.prefix, i+1)
		}
		gm, err := bracket.GenerateGroup(t.ID, g.id, participants, *raceTo)
		if err != nil {
			log.Fatalf("Failed to generate group %s: %s", g.id, err)
		}
		groups = append(groups, &sabo.Group{
			TournamentID: t.ID,
			ID:           g.id,
			Status:       sabo.GroupPending,
			Participants: participants,
		})
		matches = append(matches, gm...)
	}

	if err := tournamentStore.SaveTournament(t, groups); err != nil {
		log.Fatalf("Failed to save tournament: %s", err)
	}
	if err := tournamentStore.SaveMatches(matches); err != nil {
		log.Fatalf("Failed to save matches: %s", err)
	}

	log.Info("Seeded demo tournament",
		"tournamentID", t.ID, "matches", len(matches), "duration", time.Since(startTime))
}
