package opportunities

import (
	"context"
	"testing"
	"time"

	"github.com/fleetlinehq/fleetline-backend/internal/companies"
	"github.com/fleetlinehq/fleetline-backend/internal/contacts"
	"github.com/fleetlinehq/fleetline-backend/internal/users"
	"github.com/fleetlinehq/fleetline-backend/pkg/db/models"
	"github.com/fleetlinehq/fleetline-backend/pkg/enums"
	pkgerrors "github.com/fleetlinehq/fleetline-backend/pkg/errors"
	"github.com/fleetlinehq/fleetline-backend/pkg/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var fixedNow = time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)

func setupOpportunitiesTestDB(t *testing.T) *gorm.DB {
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
);
CREATE TABLE IF NOT EXISTS sales_opportunities (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  company_id INTEGER NOT NULL,
  contact_id INTEGER,
  user_id INTEGER NOT NULL,
  title TEXT NOT NULL,
  description TEXT,
  value NUMERIC,
  probability INTEGER NOT NULL DEFAULT 0,
  stage TEXT NOT NULL DEFAULT 'LEAD',
  expected_close_date DATETIME,
  actual_close_date DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(ddl).Error)
	return db
}

type oppsFixture struct {
	svc       Service
	db        *gorm.DB
	userID    int64
	companyID int64
	contactID int64
}

func newOppsFixture(t *testing.T) oppsFixture {
	t.Helper()
	db := setupOpportunitiesTestDB(t)

	svc, err := NewService(
		NewRepository(db),
		companies.NewRepository(db),
		contacts.NewRepository(db),
		users.NewRepository(db),
		func() time.Time { return fixedNow },
	)
	require.NoError(t, err)

	user := &models.User{Email: "bdm@example.com", Name: "Rep", Role: enums.UserRoleBDM}
	require.NoError(t, db.Create(user).Error)
	company := &models.Company{Name: "Northline Haulage", CreatedBy: user.ID, AssignedBDM: user.ID}
	require.NoError(t, db.Create(company).Error)
	contact := &models.Contact{CompanyID: company.ID, Name: "Sam Doe"}
	require.NoError(t, db.Create(contact).Error)

	return oppsFixture{
		svc:       svc,
		db:        db,
		userID:    user.ID,
		companyID: company.ID,
		contactID: contact.ID,
	}
}

func (fx oppsFixture) createLead(t *testing.T) *OpportunityDTO {
	t.Helper()
	value := decimal.RequireFromString("45000.00")
	dto, err := fx.svc.Create(context.Background(), CreateOpportunityInput{
		CompanyID: fx.companyID,
		UserID:    fx.userID,
		Title:     "Fleet refresh",
		Value:     &value,
	})
	require.NoError(t, err)
	return dto
}

func TestCreateOpportunityDefaultsToLead(t *testing.T) {
	fx := newOppsFixture(t)

	dto := fx.createLead(t)
	assert.Equal(t, enums.PipelineStageLead, dto.Stage)
	assert.Equal(t, 0, dto.Probability)
	assert.Nil(t, dto.ActualCloseDate)
}

func TestCreateOpportunityRejectsBadProbability(t *testing.T) {
	fx := newOppsFixture(t)

	probability := 150
	_, err := fx.svc.Create(context.Background(), CreateOpportunityInput{
		CompanyID:   fx.companyID,
		UserID:      fx.userID,
		Title:       "Overconfident deal",
		Probability: &probability,
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestTerminalStageStampsCloseDate(t *testing.T) {
	fx := newOppsFixture(t)
	ctx := context.Background()
	lead := fx.createLead(t)

	closed, err := fx.svc.Update(ctx, lead.ID, UpdateOpportunityInput{
		Stage: types.NewOptional(enums.PipelineStageClosedWon),
	})
	require.NoError(t, err)
	assert.Equal(t, enums.PipelineStageClosedWon, closed.Stage)
	require.NotNil(t, closed.ActualCloseDate)
	assert.True(t, closed.ActualCloseDate.Equal(fixedNow))
}

func TestExplicitCloseDateWinsOverStamp(t *testing.T) {
	fx := newOppsFixture(t)
	ctx := context.Background()
	lead := fx.createLead(t)

	explicit := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	closed, err := fx.svc.Update(ctx, lead.ID, UpdateOpportunityInput{
		Stage:           types.NewOptional(enums.PipelineStageClosedLost),
		ActualCloseDate: types.NewOptional(explicit),
	})
	require.NoError(t, err)
	require.NotNil(t, closed.ActualCloseDate)
	assert.True(t, closed.ActualCloseDate.Equal(explicit))
}

func TestExplicitNullCloseDateSuppressesStamp(t *testing.T) {
	fx := newOppsFixture(t)
	ctx := context.Background()
	lead := fx.createLead(t)

	closed, err := fx.svc.Update(ctx, lead.ID, UpdateOpportunityInput{
		Stage:           types.NewOptional(enums.PipelineStageClosedWon),
		ActualCloseDate: types.NullOptional[time.Time](),
	})
	require.NoError(t, err)
	assert.Nil(t, closed.ActualCloseDate)
}

func TestReapplyingTerminalStageKeepsCloseDate(t *testing.T) {
	fx := newOppsFixture(t)
	ctx := context.Background()
	lead := fx.createLead(t)

	first, err := fx.svc.Update(ctx, lead.ID, UpdateOpportunityInput{
		Stage: types.NewOptional(enums.PipelineStageClosedWon),
	})
	require.NoError(t, err)
	require.NotNil(t, first.ActualCloseDate)

	again, err := fx.svc.Update(ctx, lead.ID, UpdateOpportunityInput{
		Stage: types.NewOptional(enums.PipelineStageClosedWon),
	})
	require.NoError(t, err)
	require.NotNil(t, again.ActualCloseDate)
	assert.True(t, again.ActualCloseDate.Equal(*first.ActualCloseDate))
}

func TestNonTerminalStageKeepsExistingCloseDate(t *testing.T) {
	fx := newOppsFixture(t)
	ctx := context.Background()
	lead := fx.createLead(t)

	_, err := fx.svc.Update(ctx, lead.ID, UpdateOpportunityInput{
		Stage: types.NewOptional(enums.PipelineStageClosedWon),
	})
	require.NoError(t, err)

	// Reopening the deal does not clear the recorded close date.
	reopened, err := fx.svc.Update(ctx, lead.ID, UpdateOpportunityInput{
		Stage: types.NewOptional(enums.PipelineStageNegotiation),
	})
	require.NoError(t, err)
	assert.Equal(t, enums.PipelineStageNegotiation, reopened.Stage)
	require.NotNil(t, reopened.ActualCloseDate)
	assert.True(t, reopened.ActualCloseDate.Equal(fixedNow))
}

func TestCreateInTerminalStageStampsCloseDate(t *testing.T) {
	fx := newOppsFixture(t)

	dto, err := fx.svc.Create(context.Background(), CreateOpportunityInput{
		CompanyID: fx.companyID,
		UserID:    fx.userID,
		Title:     "Walk-in purchase",
		Stage:     enums.PipelineStageClosedWon,
	})
	require.NoError(t, err)
	require.NotNil(t, dto.ActualCloseDate)
	assert.True(t, dto.ActualCloseDate.Equal(fixedNow))
}

func TestUpdateContactMustBelongToCompany(t *testing.T) {
	fx := newOppsFixture(t)
	ctx := context.Background()
	lead := fx.createLead(t)

	other := &models.Company{Name: "Other Co", CreatedBy: fx.userID, AssignedBDM: fx.userID}
	require.NoError(t, fx.db.Create(other).Error)
	strayContact := &models.Contact{CompanyID: other.ID, Name: "Stranger"}
	require.NoError(t, fx.db.Create(strayContact).Error)

	_, err := fx.svc.Update(ctx, lead.ID, UpdateOpportunityInput{
		ContactID: types.NewOptional(strayContact.ID),
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())

	updated, err := fx.svc.Update(ctx, lead.ID, UpdateOpportunityInput{
		ContactID: types.NewOptional(fx.contactID),
	})
	require.NoError(t, err)
	require.NotNil(t, updated.ContactID)
	assert.Equal(t, fx.contactID, *updated.ContactID)
}

func TestUpdateValueNullClears(t *testing.T) {
	fx := newOppsFixture(t)
	ctx := context.Background()
	lead := fx.createLead(t)
	require.NotNil(t, lead.Value)

	updated, err := fx.svc.Update(ctx, lead.ID, UpdateOpportunityInput{
		Value: types.NullOptional[decimal.Decimal](),
	})
	require.NoError(t, err)
	assert.Nil(t, updated.Value)
}
