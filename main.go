package main

import (
	"ai_interview_backend/internal/app"
	"ai_interview_backend/internal/config"
	"flag"
	"log"
)

func main() {
	forceMigrate := flag.Bool("migrate", false, "Run database migrations on startup")
	migrateOnly := flag.Bool("migrate-only", false, "Run database migrations and exit")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	cfg.ForceMigrate = *forceMigrate
	cfg.MigrateOnly = *migrateOnly

	application := app.NewApp(cfg)

	if cfg.MigrateOnly {
		log.Println("Migrations complete, exiting")
		return
	}

	application.Run()
}
