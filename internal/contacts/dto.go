package contacts

import (
	"time"

	"github.com/fleetlinehq/fleetline-backend/pkg/db/models"
	"github.com/fleetlinehq/fleetline-backend/pkg/types"
)

// ContactDTO is the transport shape for a company contact.
type ContactDTO struct {
	ID        int64     `json:"id"`
	CompanyID int64     `json:"company_id"`
	Name      string    `json:"name"`
	Position  *string   `json:"position,omitempty"`
	Phone     *string   `json:"phone,omitempty"`
	Email     *string   `json:"email,omitempty"`
	Notes     *string   `json:"notes,omitempty"`
	IsPrimary bool      `json:"is_primary"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateContactInput holds the data required to persist a new contact.
type CreateContactInput struct {
	CompanyID int64
	Name      string
	Position  *string
	Phone     *string
	Email     *string
	Notes     *string
	IsPrimary bool
}

// UpdateContactInput carries the partial-update field set.
type UpdateContactInput struct {
	Name      types.Optional[string]
	Position  types.Optional[string]
	Phone     types.Optional[string]
	Email     types.Optional[string]
	Notes     types.Optional[string]
	IsPrimary types.Optional[bool]
}

func FromModel(c *models.Contact) *ContactDTO {
	if c == nil {
		return nil
	}
	return &ContactDTO{
		ID:        c.ID,
		CompanyID: c.CompanyID,
		Name:      c.Name,
		Position:  c.Position,
		Phone:     c.Phone,
		Email:     c.Email,
		Notes:     c.Notes,
		IsPrimary: c.IsPrimary,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func (c CreateContactInput) ToModel() *models.Contact {
	return &models.Contact{
		CompanyID: c.CompanyID,
		Name:      c.Name,
		Position:  c.Position,
		Phone:     c.Phone,
		Email:     c.Email,
		Notes:     c.Notes,
		IsPrimary: c.IsPrimary,
	}
}
