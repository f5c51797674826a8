package dashboard

import (
	"context"
	"time"

	"github.com/fleetlinehq/fleetline-backend/pkg/db/models"
	"github.com/fleetlinehq/fleetline-backend/pkg/enums"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const recentVisitsLimit = 5

// Repository runs the aggregation queries behind the dashboard. Every method
// takes an optional owner filter: nil means the unscoped management view, a
// non-nil id restricts to that user's companies, visits, or opportunities.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a dashboard repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CountCompanies counts companies, by assigned BDM when scoped.
func (r *Repository) CountCompanies(ctx context.Context, ownerID *int64) (int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Company{})
	if ownerID != nil {
		query = query.Where("assigned_bdm = ?", *ownerID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountVisitsBetween counts visits with visit_date in [from, to).
func (r *Repository) CountVisitsBetween(ctx context.Context, ownerID *int64, from, to time.Time) (int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Visit{}).
		Where("visit_date >= ? AND visit_date < ?", from, to)
	if ownerID != nil {
		query = query.Where("user_id = ?", *ownerID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountActiveOpportunities counts opportunities outside the terminal stages.
func (r *Repository) CountActiveOpportunities(ctx context.Context, ownerID *int64) (int64, error) {
	query := r.activeOpportunities(ctx, ownerID)
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SumActivePipelineValue sums value over active opportunities. Null values
// contribute zero and an empty set yields zero.
func (r *Repository) SumActivePipelineValue(ctx context.Context, ownerID *int64) (decimal.Decimal, error) {
	var raw struct {
		Total decimal.Decimal
	}
	err := r.activeOpportunities(ctx, ownerID).
		Select("COALESCE(SUM(value), 0) AS total").
		Scan(&raw).
		Error
	if err != nil {
		return decimal.Zero, err
	}
	return raw.Total, nil
}

// RecentVisits returns the most recent visits, newest first, id breaking ties.
func (r *Repository) RecentVisits(ctx context.Context, ownerID *int64) ([]models.Visit, error) {
	query := r.db.WithContext(ctx).Model(&models.Visit{})
	if ownerID != nil {
		query = query.Where("user_id = ?", *ownerID)
	}
	var records []models.Visit
	if err := query.
		Order("visit_date DESC").
		Order("id DESC").
		Limit(recentVisitsLimit).
		Find(&records).
		Error; err != nil {
		return nil, err
	}
	return records, nil
}

// OpportunitiesByStage groups all in-scope opportunities by stage, including
// terminal stages. Stages with no opportunities produce no row.
func (r *Repository) OpportunitiesByStage(ctx context.Context, ownerID *int64) ([]StageRollup, error) {
	query := r.db.WithContext(ctx).Model(&models.SalesOpportunity{})
	if ownerID != nil {
		query = query.Where("user_id = ?", *ownerID)
	}
	var rollups []StageRollup
	if err := query.
		Select("stage, COUNT(*) AS count, COALESCE(SUM(value), 0) AS total_value").
		Group("stage").
		Order("stage ASC").
		Scan(&rollups).
		Error; err != nil {
		return nil, err
	}
	return rollups, nil
}

func (r *Repository) activeOpportunities(ctx context.Context, ownerID *int64) *gorm.DB {
	query := r.db.WithContext(ctx).
		Model(&models.SalesOpportunity{}).
		Where("stage NOT IN ?", []enums.PipelineStage{
			enums.PipelineStageClosedWon,
			enums.PipelineStageClosedLost,
		})
	if ownerID != nil {
		query = query.Where("user_id = ?", *ownerID)
	}
	return query
}
