package dashboard

import (
	"context"
	"time"

	"github.com/fleetlinehq/fleetline-backend/internal/visits"
	"github.com/fleetlinehq/fleetline-backend/pkg/enums"
	pkgerrors "github.com/fleetlinehq/fleetline-backend/pkg/errors"
)

// Service computes role-scoped pipeline snapshots. Every call recomputes from
// current storage state; nothing is cached.
type Service interface {
	Snapshot(ctx context.Context, userID int64, role enums.UserRole) (*Snapshot, error)
}

type service struct {
	repo *Repository
	now  func() time.Time
}

// NewService builds a dashboard service. The clock is injectable so the
// calendar-month window is deterministic in tests.
func NewService(repo *Repository, now func() time.Time) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "dashboard repo is required")
	}
	if now == nil {
		now = time.Now
	}
	return &service{repo: repo, now: now}, nil
}

// Snapshot aggregates the acting user's view of the pipeline. BDM users see
// only their own companies, visits, and opportunities; MANAGEMENT sees all.
func (s *service) Snapshot(ctx context.Context, userID int64, role enums.UserRole) (*Snapshot, error) {
	if !role.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid role")
	}

	var ownerID *int64
	if role == enums.UserRoleBDM {
		ownerID = &userID
	}

	monthStart, nextMonthStart := monthWindow(s.now())

	totalCompanies, err := s.repo.CountCompanies(ctx, ownerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count companies")
	}
	visitsThisMonth, err := s.repo.CountVisitsBetween(ctx, ownerID, monthStart, nextMonthStart)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count visits")
	}
	activeOpportunities, err := s.repo.CountActiveOpportunities(ctx, ownerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count opportunities")
	}
	pipelineValue, err := s.repo.SumActivePipelineValue(ctx, ownerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum pipeline value")
	}
	recentVisits, err := s.repo.RecentVisits(ctx, ownerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load recent visits")
	}
	rollups, err := s.repo.OpportunitiesByStage(ctx, ownerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "group opportunities")
	}

	recent := make([]visits.VisitDTO, 0, len(recentVisits))
	for i := range recentVisits {
		recent = append(recent, *visits.FromModel(&recentVisits[i]))
	}
	if rollups == nil {
		rollups = []StageRollup{}
	}

	return &Snapshot{
		TotalCompanies:       totalCompanies,
		TotalVisitsThisMonth: visitsThisMonth,
		TotalOpportunities:   activeOpportunities,
		PipelineValue:        pipelineValue,
		RecentVisits:         recent,
		OpportunitiesByStage: rollups,
	}, nil
}

// monthWindow returns the half-open [start of month, start of next month)
// interval containing now, in the server's local time zone.
func monthWindow(now time.Time) (time.Time, time.Time) {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return start, start.AddDate(0, 1, 0)
}
