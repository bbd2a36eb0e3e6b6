package main

import (
	"context"
	"log"
	"time"

	"github.com/Apurer/pet-adoption-api/internal/app/api"
	"github.com/Apurer/pet-adoption-api/internal/platform/migrations"
	platformpostgres "github.com/Apurer/pet-adoption-api/internal/platform/postgres"
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cfg, err := api.LoadConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	if cfg.PostgresDSN == "" {
		log.Fatal("POSTGRES_DSN is required to run migrations")
	}
	db, err := platformpostgres.Connect(ctx, cfg.PostgresDSN, platformpostgres.DefaultPool)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}
	if err := migrations.Run(db.WithContext(ctx)); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}
	log.Printf("migrations applied")
}
