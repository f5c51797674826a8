package contacts

import (
	"context"

	"github.com/fleetlinehq/fleetline-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository encapsulates contact persistence, including the transactional
// demote-then-write paths that keep at most one primary contact per company.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a contacts repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a contact. When the contact is primary, existing primary
// contacts of the same company are demoted in the same transaction.
func (r *Repository) Create(ctx context.Context, input CreateContactInput) (*models.Contact, error) {
	contact := input.ToModel()
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if contact.IsPrimary {
			if err := demoteOthers(tx, contact.CompanyID, 0); err != nil {
				return err
			}
		}
		return tx.Create(contact).Error
	})
	if err != nil {
		return nil, err
	}
	return contact, nil
}

// FindByID loads a contact by id.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Contact, error) {
	var contact models.Contact
	if err := r.db.WithContext(ctx).First(&contact, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &contact, nil
}

// UpdateFields applies the provided column map to a single contact row. When
// the update promotes the contact to primary, the demote of its siblings and
// the write happen in one transaction.
func (r *Repository) UpdateFields(ctx context.Context, contact *models.Contact, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}

	promote, _ := fields["is_primary"].(bool)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if promote {
			if err := demoteOthers(tx, contact.CompanyID, contact.ID); err != nil {
				return err
			}
		}
		return tx.Model(&models.Contact{}).
			Where("id = ?", contact.ID).
			Updates(fields).
			Error
	})
}

// ListByCompany returns every contact of a company, primary first.
func (r *Repository) ListByCompany(ctx context.Context, companyID int64) ([]models.Contact, error) {
	var records []models.Contact
	if err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("is_primary DESC").
		Order("name ASC").
		Find(&records).
		Error; err != nil {
		return nil, err
	}
	return records, nil
}

// FindPrimary returns the primary contact of a company, if any.
func (r *Repository) FindPrimary(ctx context.Context, companyID int64) (*models.Contact, error) {
	var contact models.Contact
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND is_primary = ?", companyID, true).
		First(&contact).
		Error
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

// ExistsInCompany reports whether a contact exists and belongs to the company.
func (r *Repository) ExistsInCompany(ctx context.Context, contactID, companyID int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Contact{}).
		Where("id = ? AND company_id = ?", contactID, companyID).
		Count(&count).
		Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// demoteOthers clears the primary flag on every other contact of the company.
// Contacts of other companies are never touched.
func demoteOthers(tx *gorm.DB, companyID, keepID int64) error {
	query := tx.Model(&models.Contact{}).
		Where("company_id = ? AND is_primary = ?", companyID, true)
	if keepID != 0 {
		query = query.Where("id <> ?", keepID)
	}
	return query.Update("is_primary", false).Error
}
