package postgres

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Apurer/pet-adoption-api/internal/domains/pets/domain"
	"github.com/Apurer/pet-adoption-api/internal/domains/pets/ports"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: sqlDB}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	return db, mock
}

func TestRepository_GetByIDMissingReturnsNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT \* FROM "pets" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	_, err := NewRepository(db).GetByID(context.Background(), 42)

	require.ErrorIs(t, err, ports.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_AssignOwnerMissingPet(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectExec(`UPDATE "pets" SET "client_id"=\$1`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := NewRepository(db).AssignOwner(context.Background(), 7, 3)

	require.ErrorIs(t, err, ports.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_AssignOwnerUpdatesRow(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectExec(`UPDATE "pets" SET "client_id"=\$1`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, NewRepository(db).AssignOwner(context.Background(), 7, 3))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetBreedMissing(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT \* FROM "breeds"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	_, err := NewRepository(db).GetBreed(context.Background(), 1)

	require.ErrorIs(t, err, ports.ErrBreedNotFound)
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRepository_ListAvailableEscapesSearchWildcards(t *testing.T) {
	db, mock := newMockDB(t)
	pattern := `%a\_b\%%`
	mock.ExpectQuery(`SELECT \* FROM "pets" WHERE pets.client_id IS NULL AND .*pets.name ILIKE \$1`).
		WithArgs(pattern, pattern, pattern, pattern).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	got, err := NewRepository(db).ListAvailable(context.Background(), domain.Filter{Search: " a_b% "})

	require.NoError(t, err)
	require.Empty(t, got)
	require.NoError(t, mock.ExpectationsWereMet())
}
