package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	adoptionpostgres "github.com/Apurer/pet-adoption-api/internal/domains/adoptions/adapters/persistence/postgres"
	adoptionsports "github.com/Apurer/pet-adoption-api/internal/domains/adoptions/ports"
	platformpostgres "github.com/Apurer/pet-adoption-api/internal/platform/postgres"
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	db, cleanup := platformpostgres.ConnectOrFallback(ctx, os.Getenv("POSTGRES_DSN"), logger)
	defer cleanup()
	if db == nil {
		log.Fatal("POSTGRES_DSN not set or connection failed; cannot purge idempotency keys")
	}

	var purger adoptionsports.IdempotencyPurger = adoptionpostgres.NewIdempotencyStore(db)
	purged, err := purger.PurgeExpired(ctx, keyTTLFromEnv())
	if err != nil {
		log.Fatalf("failed to purge idempotency keys: %v", err)
	}
	logger.Info("idempotency key purge completed", slog.Int64("purged", purged))
}

func keyTTLFromEnv() time.Duration {
	raw := strings.TrimSpace(os.Getenv("IDEMPOTENCY_KEY_TTL"))
	if raw == "" {
		return adoptionsports.DefaultIdempotencyKeyTTL
	}
	ttl, err := time.ParseDuration(raw)
	if err != nil || ttl <= 0 {
		return adoptionsports.DefaultIdempotencyKeyTTL
	}
	return ttl
}
