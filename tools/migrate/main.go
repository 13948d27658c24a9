package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"

	_ "github.com/lib/pq"
	"github.com/orgball2608/board-api/internal/migrations"
	"github.com/orgball2608/board-api/pkg/config"
	"github.com/pressly/goose/v3"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: migrate [up|down|status|reset|create <name>]")
	}

	command := os.Args[1]

	// create only writes a file and needs no database
	if command == "create" {
		if len(os.Args) < 3 {
			log.Fatal("Usage: migrate create <name>")
		}
		createMigration(os.Args[2])
		return
	}

	cfg, err := config.New()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	provider, err := migrations.NewProvider(db)
	if err != nil {
		log.Fatalf("Failed to load migrations: %v", err)
	}

	ctx := context.Background()

	switch command {
	case "up":
		results, err := provider.Up(ctx)
		printResults(results)
		if err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		fmt.Println("Migrations applied successfully")
	case "down":
		result, err := provider.Down(ctx)
		if result != nil {
			printResults([]*goose.MigrationResult{result})
		}
		if err != nil {
			log.Fatalf("Failed to rollback migration: %v", err)
		}
		fmt.Println("Migration rollback successful")
	case "status":
		statuses, err := provider.Status(ctx)
		if err != nil {
			log.Fatalf("Failed to get migration status: %v", err)
		}
		for _, s := range statuses {
			applied := "pending"
			if s.State == goose.StateApplied {
				applied = s.AppliedAt.Format("2006-01-02 15:04:05")
			}
			fmt.Printf("%-20d %-25s %s\n", s.Source.Version, applied, filepath.Base(s.Source.Path))
		}
	case "reset":
		results, err := provider.DownTo(ctx, 0)
		printResults(results)
		if err != nil {
			log.Fatalf("Failed to reset migrations: %v", err)
		}
		fmt.Println("All migrations have been rolled back")
	default:
		log.Fatalf("Unknown command: %s", command)
	}
}

func printResults(results []*goose.MigrationResult) {
	for _, r := range results {
		fmt.Printf("%-4s %-20d %s (%s)\n", r.Direction, r.Source.Version, filepath.Base(r.Source.Path), r.Duration)
	}
}

func createMigration(name string) {
	wd, err := os.Getwd()
	if err != nil {
		log.Fatalf("Failed to get working directory: %v", err)
	}

	migrationsDir := filepath.Join(wd, "internal", "migrations")
	fmt.Printf("Creating migration in: %s\n", migrationsDir)

	if err := goose.Create(nil, migrationsDir, name, "go"); err != nil {
		log.Fatalf("Failed to create migration: %v", err)
	}
}
