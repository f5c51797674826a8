package opportunities

import (
	"time"

	"github.com/fleetlinehq/fleetline-backend/pkg/db/models"
	"github.com/fleetlinehq/fleetline-backend/pkg/enums"
	"github.com/fleetlinehq/fleetline-backend/pkg/types"
	"github.com/shopspring/decimal"
)

// OpportunityDTO is the transport shape for a pipeline deal.
type OpportunityDTO struct {
	ID                int64               `json:"id"`
	CompanyID         int64               `json:"company_id"`
	ContactID         *int64              `json:"contact_id,omitempty"`
	UserID            int64               `json:"user_id"`
	Title             string              `json:"title"`
	Description       *string             `json:"description,omitempty"`
	Value             *decimal.Decimal    `json:"value,omitempty"`
	Probability       int                 `json:"probability"`
	Stage             enums.PipelineStage `json:"stage"`
	ExpectedCloseDate *time.Time          `json:"expected_close_date,omitempty"`
	ActualCloseDate   *time.Time          `json:"actual_close_date,omitempty"`
	CreatedAt         time.Time           `json:"created_at"`
	UpdatedAt         time.Time           `json:"updated_at"`
}

// CreateOpportunityInput holds the data required to persist a new deal.
type CreateOpportunityInput struct {
	CompanyID         int64
	ContactID         *int64
	UserID            int64
	Title             string
	Description       *string
	Value             *decimal.Decimal
	Probability       *int
	Stage             enums.PipelineStage
	ExpectedCloseDate *time.Time
	ActualCloseDate   *time.Time
}

// UpdateOpportunityInput carries the partial-update field set. Stage and
// ActualCloseDate interact: moving into a terminal stage stamps the close
// date unless the request sets one explicitly.
type UpdateOpportunityInput struct {
	ContactID         types.Optional[int64]
	Title             types.Optional[string]
	Description       types.Optional[string]
	Value             types.Optional[decimal.Decimal]
	Probability       types.Optional[int]
	Stage             types.Optional[enums.PipelineStage]
	ExpectedCloseDate types.Optional[time.Time]
	ActualCloseDate   types.Optional[time.Time]
}

func FromModel(o *models.SalesOpportunity) *OpportunityDTO {
	if o == nil {
		return nil
	}
	dto := &OpportunityDTO{
		ID:                o.ID,
		CompanyID:         o.CompanyID,
		ContactID:         o.ContactID,
		UserID:            o.UserID,
		Title:             o.Title,
		Description:       o.Description,
		Probability:       o.Probability,
		Stage:             o.Stage,
		ExpectedCloseDate: o.ExpectedCloseDate,
		ActualCloseDate:   o.ActualCloseDate,
		CreatedAt:         o.CreatedAt,
		UpdatedAt:         o.UpdatedAt,
	}
	if o.Value.Valid {
		value := o.Value.Decimal
		dto.Value = &value
	}
	return dto
}

func (c CreateOpportunityInput) ToModel() *models.SalesOpportunity {
	opp := &models.SalesOpportunity{
		CompanyID:         c.CompanyID,
		ContactID:         c.ContactID,
		UserID:            c.UserID,
		Title:             c.Title,
		Description:       c.Description,
		Stage:             c.Stage,
		ExpectedCloseDate: c.ExpectedCloseDate,
		ActualCloseDate:   c.ActualCloseDate,
	}
	if c.Probability != nil {
		opp.Probability = *c.Probability
	}
	if c.Value != nil {
		opp.Value = decimal.NewNullDecimal(*c.Value)
	}
	return opp
}
