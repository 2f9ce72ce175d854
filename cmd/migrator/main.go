package main

import (
	"context"
	"flag"
	"log"

	"github.com/joho/godotenv"

	"github.com/Houeta/staff-console/internal/config"
	"github.com/Houeta/staff-console/internal/repository"
)

func main() {
	dir := flag.String("dir", "migrations", "directory with goose migrations")
	flag.Parse()

	_ = godotenv.Load()

	cfg := config.MustLoad()

	dbpool, dbErr := repository.NewDatabase(context.Background(), cfg.Postgres)
	if dbErr != nil {
		log.Fatalf("Failed to connect to DB: %v", dbErr)
	}
	defer dbpool.Close()

	if migrationErr := repository.Migrate(dbpool, *dir); migrationErr != nil {
		log.Fatal(migrationErr) //nolint:gocritic // the pool is released by process exit
	}

	log.Println("✅ Migrations applied successfully")
}
