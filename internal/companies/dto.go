package companies

import (
	"time"

	"github.com/fleetlinehq/fleetline-backend/pkg/db/models"
	"github.com/fleetlinehq/fleetline-backend/pkg/types"
	"github.com/shopspring/decimal"
)

// CompanyDTO is the transport shape for a customer account.
type CompanyDTO struct {
	ID            int64            `json:"id"`
	Name          string           `json:"name"`
	Industry      *string          `json:"industry,omitempty"`
	Address       *string          `json:"address,omitempty"`
	Phone         *string          `json:"phone,omitempty"`
	Email         *string          `json:"email,omitempty"`
	Website       *string          `json:"website,omitempty"`
	FleetSize     *int             `json:"fleet_size,omitempty"`
	AnnualRevenue *decimal.Decimal `json:"annual_revenue,omitempty"`
	Notes         *string          `json:"notes,omitempty"`
	CreatedBy     int64            `json:"created_by"`
	AssignedBDM   int64            `json:"assigned_bdm"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// CreateCompanyInput holds the data required to persist a new company.
type CreateCompanyInput struct {
	Name          string
	Industry      *string
	Address       *string
	Phone         *string
	Email         *string
	Website       *string
	FleetSize     *int
	AnnualRevenue *decimal.Decimal
	Notes         *string
	CreatedBy     int64
	AssignedBDM   int64
}

// UpdateCompanyInput carries the partial-update field set. Absent fields are
// left untouched; present nulls clear the column.
type UpdateCompanyInput struct {
	Name          types.Optional[string]
	Industry      types.Optional[string]
	Address       types.Optional[string]
	Phone         types.Optional[string]
	Email         types.Optional[string]
	Website       types.Optional[string]
	FleetSize     types.Optional[int]
	AnnualRevenue types.Optional[decimal.Decimal]
	Notes         types.Optional[string]
	AssignedBDM   types.Optional[int64]
}

// CompanyPage is a cursor-paginated list of companies.
type CompanyPage struct {
	Items      []CompanyDTO `json:"items"`
	NextCursor string       `json:"next_cursor,omitempty"`
}

func FromModel(c *models.Company) *CompanyDTO {
	if c == nil {
		return nil
	}

	dto := &CompanyDTO{
		ID:          c.ID,
		Name:        c.Name,
		Industry:    c.Industry,
		Address:     c.Address,
		Phone:       c.Phone,
		Email:       c.Email,
		Website:     c.Website,
		FleetSize:   c.FleetSize,
		Notes:       c.Notes,
		CreatedBy:   c.CreatedBy,
		AssignedBDM: c.AssignedBDM,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
	if c.AnnualRevenue.Valid {
		revenue := c.AnnualRevenue.Decimal
		dto.AnnualRevenue = &revenue
	}
	return dto
}

func (c CreateCompanyInput) ToModel() *models.Company {
	company := &models.Company{
		Name:        c.Name,
		Industry:    c.Industry,
		Address:     c.Address,
		Phone:       c.Phone,
		Email:       c.Email,
		Website:     c.Website,
		FleetSize:   c.FleetSize,
		Notes:       c.Notes,
		CreatedBy:   c.CreatedBy,
		AssignedBDM: c.AssignedBDM,
	}
	if c.AnnualRevenue != nil {
		company.AnnualRevenue = decimal.NewNullDecimal(*c.AnnualRevenue)
	}
	return company
}
