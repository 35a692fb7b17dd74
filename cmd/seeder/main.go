package main

import (
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/mauv0809/scrim-scheduler/internal/availability"
	"github.com/mauv0809/scrim-scheduler/internal/database"
	"github.com/mauv0809/scrim-scheduler/internal/roster"
	"github.com/mauv0809/scrim-scheduler/internal/schedule"
)

type seedPlayer struct {
	name  string
	zone  string
	slots []schedule.WeeklySlot
}

// Simplified config loading for the script
func loadConfig() map[string]string {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	config := map[string]string{
		"DB_NAME":           "scrims.db",
		"MIGRATIONS_DIR":    "./migrations",
		"TURSO_PRIMARY_URL": "",
		"TURSO_AUTH_TOKEN":  "",
	}
	for key := range config {
		if value, ok := os.LookupEnv(key); ok {
			config[key] = value
		}
	}
	return config
}

func evenings(zone string, start, end string, days ...schedule.DayOfWeek) []schedule.WeeklySlot {
	slots := make([]schedule.WeeklySlot, 0, len(days))
	for _, d := range days {
		slots = append(slots, schedule.WeeklySlot{DayOfWeek: d, StartTime: start, EndTime: end, TimeZone: zone})
	}
	return slots
}

func main() {
	log.Info("Starting database seeder...")
	cfg := loadConfig()

	db, teardown, err := database.InitDB(cfg["DB_NAME"], cfg["TURSO_PRIMARY_URL"], cfg["TURSO_AUTH_TOKEN"], cfg["MIGRATIONS_DIR"])
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer teardown()

	rosterStore := roster.New(db)
	availabilityStore := availability.NewStore(db)

	franchise, err := rosterStore.AddFranchise("Seeder Esports")
	if err != nil {
		log.Fatalf("Failed to insert franchise: %s", err)
	}
	team, err := rosterStore.AddTeam("Seeder Academy", franchise.ID)
	if err != nil {
		log.Fatalf("Failed to insert team: %s", err)
	}

	players := []seedPlayer{
		{"Seeder Player A", "America/Los_Angeles", evenings("America/Los_Angeles", "17:00:00", "22:00:00", schedule.Monday, schedule.Wednesday, schedule.Thursday)},
		{"Seeder Player B", "America/New_York", evenings("America/New_York", "19:00:00", "23:59:59", schedule.Monday, schedule.Tuesday, schedule.Wednesday)},
		{"Seeder Player C", "Europe/London", append(
			evenings("Europe/London", "22:00:00", "02:00:00", schedule.Tuesday, schedule.Wednesday),
			evenings("Europe/London", "10:00:00", "16:00:00", schedule.Saturday, schedule.Sunday)...,
		)},
		{"Seeder Player D", "Asia/Tokyo", evenings("Asia/Tokyo", "08:00:00", "13:00:00", schedule.Tuesday, schedule.Thursday, schedule.Saturday)},
	}

	var firstID string
	for _, sp := range players {
		p, err := rosterStore.AddPlayer(roster.Player{Name: sp.name, TimeZone: sp.zone})
		if err != nil {
			log.Fatalf("Failed to insert player %s: %s", sp.name, err)
		}
		if firstID == "" {
			firstID = p.ID
		}
		if err := rosterStore.AddTeamMember(team.ID, p.ID); err != nil {
			log.Fatalf("Failed to add %s to %s: %s", sp.name, team.Name, err)
		}
		if _, err := availabilityStore.ReplaceWeeklySlots(p.ID, sp.slots); err != nil {
			log.Fatalf("Failed to store slots for %s: %s", sp.name, err)
		}
	}

	// One two-day absence starting tomorrow.
	start := time.Now().Truncate(24 * time.Hour).Add(24 * time.Hour)
	if _, err := availabilityStore.AddTimeOff(firstID, start, start.Add(48*time.Hour), "Travelling to LAN"); err != nil {
		log.Fatalf("Failed to insert time off: %s", err)
	}

	log.Info("Seeded roster", "franchise", franchise.Name, "team", team.ID, "players", len(players))
}
