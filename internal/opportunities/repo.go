package opportunities

import (
	"context"

	"github.com/fleetlinehq/fleetline-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository encapsulates opportunity persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an opportunities repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new opportunity and returns the persisted model.
func (r *Repository) Create(ctx context.Context, opp *models.SalesOpportunity) error {
	return r.db.WithContext(ctx).Create(opp).Error
}

// FindByID loads an opportunity by id.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.SalesOpportunity, error) {
	var opp models.SalesOpportunity
	if err := r.db.WithContext(ctx).First(&opp, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &opp, nil
}

// UpdateFields applies the provided column map to a single opportunity row.
func (r *Repository) UpdateFields(ctx context.Context, id int64, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.SalesOpportunity{}).
		Where("id = ?", id).
		Updates(fields).
		Error
}

// ListByCompany returns the opportunities of a company, newest first.
func (r *Repository) ListByCompany(ctx context.Context, companyID int64) ([]models.SalesOpportunity, error) {
	var records []models.SalesOpportunity
	if err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&records).
		Error; err != nil {
		return nil, err
	}
	return records, nil
}

// ListByUser returns the opportunities owned by a user, newest first.
func (r *Repository) ListByUser(ctx context.Context, userID int64) ([]models.SalesOpportunity, error) {
	var records []models.SalesOpportunity
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&records).
		Error; err != nil {
		return nil, err
	}
	return records, nil
}
