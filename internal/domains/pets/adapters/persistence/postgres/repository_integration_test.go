//go:build integration
// +build integration

// To enable gopls support for this file, add the following to your VSCode settings.json:
// "gopls": {
//   "buildFlags": ["-tags=integration"]
// }

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Apurer/pet-adoption-api/internal/domains/pets/domain"
	"github.com/Apurer/pet-adoption-api/internal/domains/pets/ports"
	"github.com/Apurer/pet-adoption-api/internal/platform/migrations"
)

func setupPostgresContainer(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := tcpostgres.Run(ctx, "postgres:15-alpine",
		tcpostgres.WithDatabase("adoption_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, migrations.Run(db))

	t.Cleanup(func() {
		if sqlDB, _ := db.DB(); sqlDB != nil {
			_ = sqlDB.Close()
		}
		_ = pgContainer.Terminate(ctx)
	})
	return db
}

func TestPostgresRepository_RegisterAndList(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	db := setupPostgresContainer(t)
	repo := NewRepository(db)
	ctx := context.Background()

	breed, err := repo.SaveBreed(ctx, &domain.Breed{Name: "Labrador"})
	require.NoError(t, err)
	specie, err := repo.SaveSpecie(ctx, &domain.Specie{Name: "Cachorro"})
	require.NoError(t, err)

	thor, err := domain.NewPet("Thor", 4, 20, domain.SizeLarge)
	require.NoError(t, err)
	thor.UpdateBreed(breed)
	thor.UpdateSpecie(specie)
	saved, err := repo.Save(ctx, thor)
	require.NoError(t, err)
	assert.NotZero(t, saved.Entity.ID)
	assert.Equal(t, "Labrador", saved.Entity.Breed.Name)
	assert.False(t, saved.Metadata.CreatedAt.IsZero())

	mia, err := domain.NewPet("Mia", 2, 4.5, domain.SizeSmall)
	require.NoError(t, err)
	_, err = repo.Save(ctx, mia)
	require.NoError(t, err)

	list, err := repo.ListAvailable(ctx, domain.Filter{Search: "labra"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Thor", list[0].Entity.Name)

	age := 2
	list, err = repo.ListAvailable(ctx, domain.Filter{Age: &age})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Mia", list[0].Entity.Name)

	require.NoError(t, repo.AssignOwner(ctx, saved.Entity.ID, 99))
	list, err = repo.ListAvailable(ctx, domain.Filter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Mia", list[0].Entity.Name)

	found, err := repo.FindByIDs(ctx, []int64{saved.Entity.ID, 12345})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, int64(99), *found[saved.Entity.ID].ClientID)
}

func TestPostgresRepository_AssignOwnerMissingPet(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	repo := NewRepository(setupPostgresContainer(t))

	err := repo.AssignOwner(context.Background(), 404, 1)
	require.ErrorIs(t, err, ports.ErrNotFound)
}
