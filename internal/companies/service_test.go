package companies

import (
	"context"
	"testing"

	"github.com/fleetlinehq/fleetline-backend/internal/users"
	"github.com/fleetlinehq/fleetline-backend/pkg/enums"
	pkgerrors "github.com/fleetlinehq/fleetline-backend/pkg/errors"
	"github.com/fleetlinehq/fleetline-backend/pkg/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupCompaniesTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	ddl := `
CREATE TABLE IF NOT EXISTS users (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  email TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  role TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);
CREATE TABLE IF NOT EXISTS companies (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  industry TEXT,
  address TEXT,
  phone TEXT,
  email TEXT,
  website TEXT,
  fleet_size INTEGER,
  annual_revenue NUMERIC,
  notes TEXT,
  created_by INTEGER NOT NULL,
  assigned_bdm INTEGER NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(ddl).Error)
	return db
}

func newCompaniesService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	db := setupCompaniesTestDB(t)
	svc, err := NewService(NewRepository(db), users.NewRepository(db))
	require.NoError(t, err)
	return svc, db
}

func seedUser(t *testing.T, db *gorm.DB, email string) int64 {
	t.Helper()
	usersSvc, err := users.NewService(users.NewRepository(db))
	require.NoError(t, err)
	dto, err := usersSvc.Create(context.Background(), users.CreateUserInput{
		Email: email,
		Name:  "Rep " + email,
		Role:  enums.UserRoleBDM,
	})
	require.NoError(t, err)
	return dto.ID
}

func TestCreateCompanyPersistsFields(t *testing.T) {
	svc, db := newCompaniesService(t)
	ctx := context.Background()
	bdm := seedUser(t, db, "bdm@example.com")

	revenue := decimal.RequireFromString("1250000.50")
	fleet := 42
	dto, err := svc.Create(ctx, CreateCompanyInput{
		Name:          "Northline Haulage",
		FleetSize:     &fleet,
		AnnualRevenue: &revenue,
		CreatedBy:     bdm,
		AssignedBDM:   bdm,
	})
	require.NoError(t, err)

	assert.NotZero(t, dto.ID)
	assert.Equal(t, "Northline Haulage", dto.Name)
	require.NotNil(t, dto.FleetSize)
	assert.Equal(t, 42, *dto.FleetSize)
	require.NotNil(t, dto.AnnualRevenue)
	assert.True(t, dto.AnnualRevenue.Equal(revenue))
}

func TestCreateCompanyUnknownBDMNotFound(t *testing.T) {
	svc, db := newCompaniesService(t)
	creator := seedUser(t, db, "creator@example.com")

	_, err := svc.Create(context.Background(), CreateCompanyInput{
		Name:        "Ghost Logistics",
		CreatedBy:   creator,
		AssignedBDM: 9999,
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestCreateCompanyRejectsNegativeFleetSize(t *testing.T) {
	svc, db := newCompaniesService(t)
	bdm := seedUser(t, db, "bdm@example.com")

	fleet := -1
	_, err := svc.Create(context.Background(), CreateCompanyInput{
		Name:        "Backwards Freight",
		FleetSize:   &fleet,
		CreatedBy:   bdm,
		AssignedBDM: bdm,
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestUpdateCompanyPartialFields(t *testing.T) {
	svc, db := newCompaniesService(t)
	ctx := context.Background()
	bdm := seedUser(t, db, "bdm@example.com")

	industry := "logistics"
	created, err := svc.Create(ctx, CreateCompanyInput{
		Name:        "Harbour Freight Co",
		Industry:    &industry,
		CreatedBy:   bdm,
		AssignedBDM: bdm,
	})
	require.NoError(t, err)

	fleet := 15
	updated, err := svc.Update(ctx, created.ID, UpdateCompanyInput{
		FleetSize: types.NewOptional(fleet),
	})
	require.NoError(t, err)

	// Absent fields keep their values.
	require.NotNil(t, updated.Industry)
	assert.Equal(t, "logistics", *updated.Industry)
	require.NotNil(t, updated.FleetSize)
	assert.Equal(t, 15, *updated.FleetSize)
	assert.Equal(t, "Harbour Freight Co", updated.Name)
}

func TestUpdateCompanyExplicitNullClearsColumn(t *testing.T) {
	svc, db := newCompaniesService(t)
	ctx := context.Background()
	bdm := seedUser(t, db, "bdm@example.com")

	notes := "meeting scheduled"
	created, err := svc.Create(ctx, CreateCompanyInput{
		Name:        "Quarry Transit",
		Notes:       &notes,
		CreatedBy:   bdm,
		AssignedBDM: bdm,
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, UpdateCompanyInput{
		Notes: types.NullOptional[string](),
	})
	require.NoError(t, err)
	assert.Nil(t, updated.Notes)
}

func TestUpdateCompanyRejectsNullName(t *testing.T) {
	svc, db := newCompaniesService(t)
	ctx := context.Background()
	bdm := seedUser(t, db, "bdm@example.com")

	created, err := svc.Create(ctx, CreateCompanyInput{
		Name:        "Summit Carriers",
		CreatedBy:   bdm,
		AssignedBDM: bdm,
	})
	require.NoError(t, err)

	_, err = svc.Update(ctx, created.ID, UpdateCompanyInput{
		Name: types.NullOptional[string](),
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestUpdateCompanyNotFound(t *testing.T) {
	svc, _ := newCompaniesService(t)

	_, err := svc.Update(context.Background(), 404, UpdateCompanyInput{
		Name: types.NewOptional("Anything"),
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestListCompaniesPaginates(t *testing.T) {
	svc, db := newCompaniesService(t)
	ctx := context.Background()
	bdm := seedUser(t, db, "bdm@example.com")

	for _, name := range []string{"Alpha Fleet", "Bravo Fleet", "Charlie Fleet"} {
		_, err := svc.Create(ctx, CreateCompanyInput{
			Name:        name,
			CreatedBy:   bdm,
			AssignedBDM: bdm,
		})
		require.NoError(t, err)
	}

	first, err := svc.List(ctx, "", 2)
	require.NoError(t, err)
	require.Len(t, first.Items, 2)
	require.NotEmpty(t, first.NextCursor)

	second, err := svc.List(ctx, first.NextCursor, 2)
	require.NoError(t, err)
	require.Len(t, second.Items, 1)
	assert.Empty(t, second.NextCursor)

	seen := map[int64]bool{}
	for _, item := range append(first.Items, second.Items...) {
		assert.False(t, seen[item.ID])
		seen[item.ID] = true
	}
}
