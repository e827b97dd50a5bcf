package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/tagihin/tagihin/internal/config"
	"github.com/tagihin/tagihin/internal/logger"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "Print migration SQL without executing it")
	dir := flag.String("dir", "migrations", "Directory containing migration SQL files")
	flag.Parse()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	log, err := logger.NewLogger(cfg)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	files, err := migrationFiles(*dir)
	if err != nil {
		log.Fatalf("Failed to read migrations: %v", err)
	}
	if len(files) == 0 {
		log.Fatalf("No migration files found in %s", *dir)
	}

	if *dryRun {
		for _, f := range files {
			sql, err := os.ReadFile(f)
			if err != nil {
				log.Fatalf("Failed to read %s: %v", f, err)
			}
			fmt.Printf("-- %s\n%s\n", filepath.Base(f), sql)
		}
		return
	}

	db, err := sqlx.Connect("postgres", cfg.Postgres.GetDSN())
	if err != nil {
		log.Fatalf("Failed to connect to postgres: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
		name TEXT PRIMARY KEY,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`); err != nil {
		log.Fatalf("Failed to create schema_migrations table: %v", err)
	}

	for _, f := range files {
		name := filepath.Base(f)

		var applied bool
		err := db.Get(&applied, "SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE name = $1)", name)
		if err != nil {
			log.Fatalf("Failed to check migration %s: %v", name, err)
		}
		if applied {
			log.Debugw("migration already applied", "name", name)
			continue
		}

		sql, err := os.ReadFile(f)
		if err != nil {
			log.Fatalf("Failed to read %s: %v", f, err)
		}

		tx, err := db.Beginx()
		if err != nil {
			log.Fatalf("Failed to begin transaction: %v", err)
		}
		if _, err := tx.Exec(string(sql)); err != nil {
			tx.Rollback()
			log.Fatalf("Failed to apply %s: %v", name, err)
		}
		if _, err := tx.Exec("INSERT INTO schema_migrations (name) VALUES ($1)", name); err != nil {
			tx.Rollback()
			log.Fatalf("Failed to record %s: %v", name, err)
		}
		if err := tx.Commit(); err != nil {
			log.Fatalf("Failed to commit %s: %v", name, err)
		}

		log.Infow("applied migration", "name", name)
	}

	log.Info("Migrations completed successfully")
}

func migrationFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}
