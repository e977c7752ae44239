package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/catsync/backend/internal/domain/identity"
	"github.com/catsync/backend/internal/domain/shared"
)

// newMockDB creates a gorm DB backed by a mocked SQL connection
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

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

	return gormDB, mock, mockDB
}

func TestGormTenantRepository_FindByID(t *testing.T) {
	t.Run("finds existing tenant", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormTenantRepository(gormDB)

		tenantID := uuid.New()
		rows := sqlmock.NewRows([]string{"id", "name", "store_name", "status"}).
			AddRow(tenantID, "acme", "Acme Store", "active")

		mock.ExpectQuery(`SELECT \* FROM "tenants" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(tenantID, 1).
			WillReturnRows(rows)

		tenant, err := repo.FindByID(context.Background(), tenantID)

		require.NoError(t, err)
		assert.Equal(t, tenantID, tenant.ID)
		assert.Equal(t, "Acme Store", tenant.StoreName)
		assert.True(t, tenant.IsActive())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps missing row to ErrNotFound", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormTenantRepository(gormDB)

		tenantID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "tenants" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(tenantID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		_, err := repo.FindByID(context.Background(), tenantID)

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormTenantRepository_FindAllActive(t *testing.T) {
	gormDB, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormTenantRepository(gormDB)

	rows := sqlmock.NewRows([]string{"id", "name", "store_name", "status"}).
		AddRow(uuid.New(), "first", "First Store", "active").
		AddRow(uuid.New(), "second", "Second Store", "active")

	mock.ExpectQuery(`SELECT \* FROM "tenants" WHERE status = \$1 ORDER BY created_at ASC`).
		WithArgs(string(identity.TenantStatusActive)).
		WillReturnRows(rows)

	tenants, err := repo.FindAllActive(context.Background())

	require.NoError(t, err)
	assert.Len(t, tenants, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormTenantRepository_Delete(t *testing.T) {
	t.Run("deletes existing tenant", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormTenantRepository(gormDB)

		tenantID := uuid.New()
		mock.ExpectExec(`DELETE FROM "tenants" WHERE id = \$1`).
			WithArgs(tenantID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(context.Background(), tenantID))
	})

	t.Run("missing tenant maps to ErrNotFound", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormTenantRepository(gormDB)

		tenantID := uuid.New()
		mock.ExpectExec(`DELETE FROM "tenants" WHERE id = \$1`).
			WithArgs(tenantID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Delete(context.Background(), tenantID), shared.ErrNotFound)
	})
}
