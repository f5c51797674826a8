package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/fleetlinehq/fleetline-backend/pkg/db/models"
	"github.com/fleetlinehq/fleetline-backend/pkg/enums"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var snapshotNow = time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)

func setupDashboardTestDB(t *testing.T) *gorm.DB {
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
CREATE TABLE IF NOT EXISTS visits (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  company_id INTEGER NOT NULL,
  contact_id INTEGER,
  user_id INTEGER NOT NULL,
  visit_type TEXT NOT NULL,
  visit_date DATETIME NOT NULL,
  summary TEXT NOT NULL,
  objectives TEXT,
  outcomes TEXT,
  next_steps TEXT,
  location TEXT,
  duration_minutes INTEGER,
  follow_up_date DATETIME,
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

func newDashboardService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	db := setupDashboardTestDB(t)
	svc, err := NewService(NewRepository(db), func() time.Time { return snapshotNow })
	require.NoError(t, err)
	return svc, db
}

func seedBDM(t *testing.T, db *gorm.DB, email string) int64 {
	t.Helper()
	user := &models.User{Email: email, Name: "Rep", Role: enums.UserRoleBDM}
	require.NoError(t, db.Create(user).Error)
	return user.ID
}

func seedOpportunity(t *testing.T, db *gorm.DB, userID, companyID int64, stage enums.PipelineStage, value string) {
	t.Helper()
	opp := &models.SalesOpportunity{
		CompanyID: companyID,
		UserID:    userID,
		Title:     "deal",
		Stage:     stage,
	}
	if value != "" {
		opp.Value = decimal.NewNullDecimal(decimal.RequireFromString(value))
	}
	require.NoError(t, db.Create(opp).Error)
}

func seedVisit(t *testing.T, db *gorm.DB, userID, companyID int64, date time.Time) int64 {
	t.Helper()
	visit := &models.Visit{
		CompanyID: companyID,
		UserID:    userID,
		VisitType: enums.VisitTypeSalesCall,
		VisitDate: date,
		Summary:   "visit",
	}
	require.NoError(t, db.Create(visit).Error)
	return visit.ID
}

func TestSnapshotEmptyState(t *testing.T) {
	svc, db := newDashboardService(t)
	bdm := seedBDM(t, db, "bdm@example.com")

	snap, err := svc.Snapshot(context.Background(), bdm, enums.UserRoleBDM)
	require.NoError(t, err)

	assert.Zero(t, snap.TotalCompanies)
	assert.Zero(t, snap.TotalVisitsThisMonth)
	assert.Zero(t, snap.TotalOpportunities)
	assert.True(t, snap.PipelineValue.IsZero())
	assert.Empty(t, snap.RecentVisits)
	assert.Empty(t, snap.OpportunitiesByStage)
}

func TestSnapshotScopesToBDM(t *testing.T) {
	svc, db := newDashboardService(t)
	ctx := context.Background()

	bdm7 := seedBDM(t, db, "seven@example.com")
	bdm9 := seedBDM(t, db, "nine@example.com")

	company7 := &models.Company{Name: "Seven Co", CreatedBy: bdm7, AssignedBDM: bdm7}
	require.NoError(t, db.Create(company7).Error)
	company9 := &models.Company{Name: "Nine Co", CreatedBy: bdm9, AssignedBDM: bdm9}
	require.NoError(t, db.Create(company9).Error)

	seedOpportunity(t, db, bdm7, company7.ID, enums.PipelineStageProposal, "50000")
	seedOpportunity(t, db, bdm7, company7.ID, enums.PipelineStageQualified, "15000")
	seedOpportunity(t, db, bdm9, company9.ID, enums.PipelineStageLead, "30000")

	snap, err := svc.Snapshot(ctx, bdm7, enums.UserRoleBDM)
	require.NoError(t, err)

	assert.Equal(t, int64(1), snap.TotalCompanies)
	assert.Equal(t, int64(2), snap.TotalOpportunities)
	assert.True(t, snap.PipelineValue.Equal(decimal.RequireFromString("65000")),
		"pipeline value was %s", snap.PipelineValue)

	require.Len(t, snap.OpportunitiesByStage, 2)
	byStage := map[enums.PipelineStage]StageRollup{}
	for _, rollup := range snap.OpportunitiesByStage {
		byStage[rollup.Stage] = rollup
	}
	assert.NotContains(t, byStage, enums.PipelineStageLead)
	assert.Equal(t, int64(1), byStage[enums.PipelineStageProposal].Count)
	assert.True(t, byStage[enums.PipelineStageProposal].TotalValue.Equal(decimal.RequireFromString("50000")))
	assert.Equal(t, int64(1), byStage[enums.PipelineStageQualified].Count)
	assert.True(t, byStage[enums.PipelineStageQualified].TotalValue.Equal(decimal.RequireFromString("15000")))
}

func TestSnapshotManagementSeesAll(t *testing.T) {
	svc, db := newDashboardService(t)
	ctx := context.Background()

	bdm7 := seedBDM(t, db, "seven@example.com")
	bdm9 := seedBDM(t, db, "nine@example.com")
	manager := &models.User{Email: "boss@example.com", Name: "Boss", Role: enums.UserRoleManagement}
	require.NoError(t, db.Create(manager).Error)

	company7 := &models.Company{Name: "Seven Co", CreatedBy: bdm7, AssignedBDM: bdm7}
	require.NoError(t, db.Create(company7).Error)
	company9 := &models.Company{Name: "Nine Co", CreatedBy: bdm9, AssignedBDM: bdm9}
	require.NoError(t, db.Create(company9).Error)

	seedOpportunity(t, db, bdm7, company7.ID, enums.PipelineStageProposal, "50000")
	seedOpportunity(t, db, bdm9, company9.ID, enums.PipelineStageLead, "30000")

	snap, err := svc.Snapshot(ctx, manager.ID, enums.UserRoleManagement)
	require.NoError(t, err)

	assert.Equal(t, int64(2), snap.TotalCompanies)
	assert.Equal(t, int64(2), snap.TotalOpportunities)
	assert.True(t, snap.PipelineValue.Equal(decimal.RequireFromString("80000")))
	assert.Len(t, snap.OpportunitiesByStage, 2)
}

func TestSnapshotExcludesTerminalFromActiveTotals(t *testing.T) {
	svc, db := newDashboardService(t)
	ctx := context.Background()

	bdm := seedBDM(t, db, "bdm@example.com")
	company := &models.Company{Name: "Co", CreatedBy: bdm, AssignedBDM: bdm}
	require.NoError(t, db.Create(company).Error)

	seedOpportunity(t, db, bdm, company.ID, enums.PipelineStageNegotiation, "20000")
	seedOpportunity(t, db, bdm, company.ID, enums.PipelineStageClosedWon, "99000")

	snap, err := svc.Snapshot(ctx, bdm, enums.UserRoleBDM)
	require.NoError(t, err)

	// Closed deals are excluded from active totals but still grouped.
	assert.Equal(t, int64(1), snap.TotalOpportunities)
	assert.True(t, snap.PipelineValue.Equal(decimal.RequireFromString("20000")))
	assert.Len(t, snap.OpportunitiesByStage, 2)
}

func TestSnapshotNullValuesCountAsZero(t *testing.T) {
	svc, db := newDashboardService(t)
	ctx := context.Background()

	bdm := seedBDM(t, db, "bdm@example.com")
	company := &models.Company{Name: "Co", CreatedBy: bdm, AssignedBDM: bdm}
	require.NoError(t, db.Create(company).Error)

	seedOpportunity(t, db, bdm, company.ID, enums.PipelineStageLead, "1000")
	seedOpportunity(t, db, bdm, company.ID, enums.PipelineStageLead, "")

	snap, err := svc.Snapshot(ctx, bdm, enums.UserRoleBDM)
	require.NoError(t, err)

	assert.Equal(t, int64(2), snap.TotalOpportunities)
	assert.True(t, snap.PipelineValue.Equal(decimal.RequireFromString("1000")))
	require.Len(t, snap.OpportunitiesByStage, 1)
	assert.Equal(t, int64(2), snap.OpportunitiesByStage[0].Count)
	assert.True(t, snap.OpportunitiesByStage[0].TotalValue.Equal(decimal.RequireFromString("1000")))
}

func TestSnapshotMonthWindowAndRecentVisits(t *testing.T) {
	svc, db := newDashboardService(t)
	ctx := context.Background()

	bdm := seedBDM(t, db, "bdm@example.com")
	company := &models.Company{Name: "Co", CreatedBy: bdm, AssignedBDM: bdm}
	require.NoError(t, db.Create(company).Error)

	// One visit last month, six this month.
	seedVisit(t, db, bdm, company.ID, time.Date(2026, 7, 31, 23, 0, 0, 0, time.UTC))
	var newestID int64
	for day := 1; day <= 6; day++ {
		newestID = seedVisit(t, db, bdm, company.ID, time.Date(2026, 8, day, 9, 0, 0, 0, time.UTC))
	}

	snap, err := svc.Snapshot(ctx, bdm, enums.UserRoleBDM)
	require.NoError(t, err)

	assert.Equal(t, int64(6), snap.TotalVisitsThisMonth)
	require.Len(t, snap.RecentVisits, 5)
	assert.Equal(t, newestID, snap.RecentVisits[0].ID)
	for i := 1; i < len(snap.RecentVisits); i++ {
		assert.False(t, snap.RecentVisits[i].VisitDate.After(snap.RecentVisits[i-1].VisitDate))
	}
}
