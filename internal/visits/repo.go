package visits

import (
	"context"

	"github.com/fleetlinehq/fleetline-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository encapsulates visit persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a visits repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new visit and returns the persisted model.
func (r *Repository) Create(ctx context.Context, input CreateVisitInput) (*models.Visit, error) {
	visit := input.ToModel()
	if err := r.db.WithContext(ctx).Create(visit).Error; err != nil {
		return nil, err
	}
	return visit, nil
}

// FindByID loads a visit by id.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Visit, error) {
	var visit models.Visit
	if err := r.db.WithContext(ctx).First(&visit, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &visit, nil
}

// UpdateFields applies the provided column map to a single visit row.
func (r *Repository) UpdateFields(ctx context.Context, id int64, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.Visit{}).
		Where("id = ?", id).
		Updates(fields).
		Error
}

// ListByCompany returns the visits of a company, most recent first.
func (r *Repository) ListByCompany(ctx context.Context, companyID int64) ([]models.Visit, error) {
	var records []models.Visit
	if err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("visit_date DESC").
		Order("id DESC").
		Find(&records).
		Error; err != nil {
		return nil, err
	}
	return records, nil
}

// ListByUser returns the visits logged by a user, most recent first.
func (r *Repository) ListByUser(ctx context.Context, userID int64) ([]models.Visit, error) {
	var records []models.Visit
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("visit_date DESC").
		Order("id DESC").
		Find(&records).
		Error; err != nil {
		return nil, err
	}
	return records, nil
}
