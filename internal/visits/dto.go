package visits

import (
	"time"

	"github.com/fleetlinehq/fleetline-backend/pkg/db/models"
	"github.com/fleetlinehq/fleetline-backend/pkg/enums"
	"github.com/fleetlinehq/fleetline-backend/pkg/types"
)

// VisitDTO is the transport shape for a customer site visit.
type VisitDTO struct {
	ID              int64           `json:"id"`
	CompanyID       int64           `json:"company_id"`
	ContactID       *int64          `json:"contact_id,omitempty"`
	UserID          int64           `json:"user_id"`
	VisitType       enums.VisitType `json:"visit_type"`
	VisitDate       time.Time       `json:"visit_date"`
	Summary         string          `json:"summary"`
	Objectives      *string         `json:"objectives,omitempty"`
	Outcomes        *string         `json:"outcomes,omitempty"`
	NextSteps       *string         `json:"next_steps,omitempty"`
	Location        *string         `json:"location,omitempty"`
	DurationMinutes *int            `json:"duration_minutes,omitempty"`
	FollowUpDate    *time.Time      `json:"follow_up_date,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// CreateVisitInput holds the data required to persist a new visit.
type CreateVisitInput struct {
	CompanyID       int64
	ContactID       *int64
	UserID          int64
	VisitType       enums.VisitType
	VisitDate       time.Time
	Summary         string
	Objectives      *string
	Outcomes        *string
	NextSteps       *string
	Location        *string
	DurationMinutes *int
	FollowUpDate    *time.Time
}

// UpdateVisitInput carries the partial-update field set.
type UpdateVisitInput struct {
	ContactID       types.Optional[int64]
	VisitType       types.Optional[enums.VisitType]
	VisitDate       types.Optional[time.Time]
	Summary         types.Optional[string]
	Objectives      types.Optional[string]
	Outcomes        types.Optional[string]
	NextSteps       types.Optional[string]
	Location        types.Optional[string]
	DurationMinutes types.Optional[int]
	FollowUpDate    types.Optional[time.Time]
}

func FromModel(v *models.Visit) *VisitDTO {
	if v == nil {
		return nil
	}
	return &VisitDTO{
		ID:              v.ID,
		CompanyID:       v.CompanyID,
		ContactID:       v.ContactID,
		UserID:          v.UserID,
		VisitType:       v.VisitType,
		VisitDate:       v.VisitDate,
		Summary:         v.Summary,
		Objectives:      v.Objectives,
		Outcomes:        v.Outcomes,
		NextSteps:       v.NextSteps,
		Location:        v.Location,
		DurationMinutes: v.DurationMinutes,
		FollowUpDate:    v.FollowUpDate,
		CreatedAt:       v.CreatedAt,
		UpdatedAt:       v.UpdatedAt,
	}
}

func (c CreateVisitInput) ToModel() *models.Visit {
	return &models.Visit{
		CompanyID:       c.CompanyID,
		ContactID:       c.ContactID,
		UserID:          c.UserID,
		VisitType:       c.VisitType,
		VisitDate:       c.VisitDate,
		Summary:         c.Summary,
		Objectives:      c.Objectives,
		Outcomes:        c.Outcomes,
		NextSteps:       c.NextSteps,
		Location:        c.Location,
		DurationMinutes: c.DurationMinutes,
		FollowUpDate:    c.FollowUpDate,
	}
}
