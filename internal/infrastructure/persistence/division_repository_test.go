package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/backoffice/backend/internal/domain/division"
	"github.com/backoffice/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockDivisionRepository creates a GormDivisionRepository with a mocked SQL connection
func newMockDivisionRepository(t *testing.T) (*GormDivisionRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormDivisionRepository(gormDB), mock, mockDB
}

func TestGormDivisionRepository_FindByID(t *testing.T) {
	t.Run("finds existing division", func(t *testing.T) {
		repo, mock, mockDB := newMockDivisionRepository(t)
		defer mockDB.Close()

		divisionID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "name", "code", "description", "max_capacity", "used_capacity", "version"}).
			AddRow(divisionID, "Keuangan", "FIN", "Divisi keuangan", 1073741824, 524288, 3)

		mock.ExpectQuery(`SELECT \* FROM "divisions" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(divisionID, 1).
			WillReturnRows(rows)

		d, err := repo.FindByID(context.Background(), divisionID)

		require.NoError(t, err)
		assert.Equal(t, divisionID, d.ID)
		assert.Equal(t, "FIN", d.Code)
		assert.Equal(t, int64(1073741824), d.MaxCapacity)
		assert.Equal(t, int64(524288), d.UsedCapacity)
		assert.Equal(t, 3, d.Version)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found for non-existent division", func(t *testing.T) {
		repo, mock, mockDB := newMockDivisionRepository(t)
		defer mockDB.Close()

		divisionID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "divisions" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(divisionID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		d, err := repo.FindByID(context.Background(), divisionID)

		assert.Nil(t, d)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormDivisionRepository_FindByCode(t *testing.T) {
	t.Run("lookup is case-insensitive via uppercase normalization", func(t *testing.T) {
		repo, mock, mockDB := newMockDivisionRepository(t)
		defer mockDB.Close()

		divisionID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "divisions" WHERE code = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("FIN", 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "code", "version"}).
				AddRow(divisionID, "Keuangan", "FIN", 1))

		d, err := repo.FindByCode(context.Background(), "fin")

		require.NoError(t, err)
		assert.Equal(t, "FIN", d.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormDivisionRepository_SaveWithLock(t *testing.T) {
	t.Run("returns concurrency conflict when the version moved", func(t *testing.T) {
		repo, mock, mockDB := newMockDivisionRepository(t)
		defer mockDB.Close()

		d, err := division.NewDivision("Umum", "GEN", 1000)
		require.NoError(t, err)
		d.IncrementVersion()

		mock.ExpectExec(`UPDATE "divisions" SET .* WHERE id = \$\d+ AND version = \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err = repo.SaveWithLock(context.Background(), d)

		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("saves when the version matches", func(t *testing.T) {
		repo, mock, mockDB := newMockDivisionRepository(t)
		defer mockDB.Close()

		d, err := division.NewDivision("Umum", "GEN", 1000)
		require.NoError(t, err)
		d.IncrementVersion()

		mock.ExpectExec(`UPDATE "divisions" SET .* WHERE id = \$\d+ AND version = \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err = repo.SaveWithLock(context.Background(), d)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormDivisionRepository_ExistsByCode(t *testing.T) {
	t.Run("returns true when the code is taken", func(t *testing.T) {
		repo, mock, mockDB := newMockDivisionRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "divisions" WHERE code = \$1`).
			WithArgs("FIN").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		exists, err := repo.ExistsByCode(context.Background(), "fin")

		require.NoError(t, err)
		assert.True(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormDivisionRepository_FindAll(t *testing.T) {
	t.Run("orders deterministically with an id tiebreaker", func(t *testing.T) {
		repo, mock, mockDB := newMockDivisionRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "divisions" ORDER BY name ASC, id ASC LIMIT .* OFFSET .*`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "code", "version"}).
				AddRow(uuid.New(), "Keuangan", "FIN", 1).
				AddRow(uuid.New(), "Umum", "GEN", 1))

		divisions, err := repo.FindAll(context.Background(), shared.Filter{
			Page:     2,
			PageSize: 2,
			OrderBy:  "name",
			OrderDir: "asc",
		})

		require.NoError(t, err)
		assert.Len(t, divisions, 2)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("falls back to default ordering for a non-whitelisted sort field", func(t *testing.T) {
		repo, mock, mockDB := newMockDivisionRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "divisions" ORDER BY created_at DESC, id ASC LIMIT .*`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "code", "version"}))

		_, err := repo.FindAll(context.Background(), shared.Filter{
			Page:     1,
			PageSize: 20,
			OrderBy:  "used_capacity; DROP TABLE divisions;--",
		})

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
