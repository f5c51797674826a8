package contacts

import (
	"context"
	"testing"

	"github.com/fleetlinehq/fleetline-backend/internal/companies"
	"github.com/fleetlinehq/fleetline-backend/pkg/db/models"
	pkgerrors "github.com/fleetlinehq/fleetline-backend/pkg/errors"
	"github.com/fleetlinehq/fleetline-backend/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupContactsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	ddl := `
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
);
CREATE TABLE IF NOT EXISTS contacts (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  company_id INTEGER NOT NULL,
  name TEXT NOT NULL,
  position TEXT,
  phone TEXT,
  email TEXT,
  notes TEXT,
  is_primary BOOLEAN NOT NULL DEFAULT FALSE,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(ddl).Error)
	return db
}

func newContactsService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	db := setupContactsTestDB(t)
	svc, err := NewService(NewRepository(db), companies.NewRepository(db))
	require.NoError(t, err)
	return svc, db
}

func seedCompany(t *testing.T, db *gorm.DB, name string) int64 {
	t.Helper()
	company := &models.Company{Name: name, CreatedBy: 1, AssignedBDM: 1}
	require.NoError(t, db.Create(company).Error)
	return company.ID
}

func primaryContacts(t *testing.T, db *gorm.DB, companyID int64) []models.Contact {
	t.Helper()
	var records []models.Contact
	require.NoError(t, db.
		Where("company_id = ? AND is_primary = ?", companyID, true).
		Find(&records).
		Error)
	return records
}

func TestCreateContactUnknownCompanyNotFound(t *testing.T) {
	svc, _ := newContactsService(t)

	_, err := svc.Create(context.Background(), CreateContactInput{
		CompanyID: 404,
		Name:      "Sam Doe",
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestCreatePrimaryContactDemotesExisting(t *testing.T) {
	svc, db := newContactsService(t)
	ctx := context.Background()
	companyID := seedCompany(t, db, "Northline Haulage")

	first, err := svc.Create(ctx, CreateContactInput{
		CompanyID: companyID,
		Name:      "Contact A",
		IsPrimary: true,
	})
	require.NoError(t, err)
	assert.True(t, first.IsPrimary)

	second, err := svc.Create(ctx, CreateContactInput{
		CompanyID: companyID,
		Name:      "Contact B",
		IsPrimary: true,
	})
	require.NoError(t, err)
	assert.True(t, second.IsPrimary)

	// The earlier primary is demoted; exactly one primary remains.
	primaries := primaryContacts(t, db, companyID)
	require.Len(t, primaries, 1)
	assert.Equal(t, second.ID, primaries[0].ID)

	reloaded, err := svc.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.False(t, reloaded.IsPrimary)
}

func TestPrimaryFlagScopedToCompany(t *testing.T) {
	svc, db := newContactsService(t)
	ctx := context.Background()
	companyA := seedCompany(t, db, "Company A")
	companyB := seedCompany(t, db, "Company B")

	contactA, err := svc.Create(ctx, CreateContactInput{
		CompanyID: companyA,
		Name:      "Alice",
		IsPrimary: true,
	})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateContactInput{
		CompanyID: companyB,
		Name:      "Bob",
		IsPrimary: true,
	})
	require.NoError(t, err)

	// Promoting a contact in company B never touches company A.
	reloaded, err := svc.GetByID(ctx, contactA.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.IsPrimary)
	require.Len(t, primaryContacts(t, db, companyA), 1)
	require.Len(t, primaryContacts(t, db, companyB), 1)
}

func TestUpdatePromotionDemotesSiblings(t *testing.T) {
	svc, db := newContactsService(t)
	ctx := context.Background()
	companyID := seedCompany(t, db, "Quarry Transit")

	first, err := svc.Create(ctx, CreateContactInput{
		CompanyID: companyID,
		Name:      "Contact A",
		IsPrimary: true,
	})
	require.NoError(t, err)

	second, err := svc.Create(ctx, CreateContactInput{
		CompanyID: companyID,
		Name:      "Contact B",
	})
	require.NoError(t, err)
	assert.False(t, second.IsPrimary)

	promoted, err := svc.Update(ctx, second.ID, UpdateContactInput{
		IsPrimary: types.NewOptional(true),
	})
	require.NoError(t, err)
	assert.True(t, promoted.IsPrimary)

	demoted, err := svc.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.False(t, demoted.IsPrimary)
	require.Len(t, primaryContacts(t, db, companyID), 1)
}

func TestUpdatePrimaryContactKeepsFlag(t *testing.T) {
	svc, db := newContactsService(t)
	ctx := context.Background()
	companyID := seedCompany(t, db, "Summit Carriers")

	contact, err := svc.Create(ctx, CreateContactInput{
		CompanyID: companyID,
		Name:      "Contact A",
		IsPrimary: true,
	})
	require.NoError(t, err)

	// Re-asserting is_primary=true on the current primary is a no-op.
	updated, err := svc.Update(ctx, contact.ID, UpdateContactInput{
		IsPrimary: types.NewOptional(true),
		Position:  types.NewOptional("Fleet Manager"),
	})
	require.NoError(t, err)
	assert.True(t, updated.IsPrimary)
	require.NotNil(t, updated.Position)
	assert.Equal(t, "Fleet Manager", *updated.Position)
	require.Len(t, primaryContacts(t, db, companyID), 1)
}

func TestCompanyMayHaveNoPrimary(t *testing.T) {
	svc, db := newContactsService(t)
	ctx := context.Background()
	companyID := seedCompany(t, db, "Harbour Freight Co")

	contact, err := svc.Create(ctx, CreateContactInput{
		CompanyID: companyID,
		Name:      "Contact A",
		IsPrimary: true,
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, contact.ID, UpdateContactInput{
		IsPrimary: types.NewOptional(false),
	})
	require.NoError(t, err)
	assert.False(t, updated.IsPrimary)
	assert.Empty(t, primaryContacts(t, db, companyID))
}

func TestListByCompanyPrimaryFirst(t *testing.T) {
	svc, db := newContactsService(t)
	ctx := context.Background()
	companyID := seedCompany(t, db, "Alpha Fleet")

	_, err := svc.Create(ctx, CreateContactInput{CompanyID: companyID, Name: "Aaron"})
	require.NoError(t, err)
	primary, err := svc.Create(ctx, CreateContactInput{CompanyID: companyID, Name: "Zoe", IsPrimary: true})
	require.NoError(t, err)

	list, err := svc.ListByCompany(ctx, companyID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, primary.ID, list[0].ID)
}
