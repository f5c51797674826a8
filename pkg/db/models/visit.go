package models

import (
	"time"

	"github.com/fleetlinehq/fleetline-backend/pkg/enums"
)

// Visit records a customer site visit. ContactID, when set, must reference a
// contact of the same company.
type Visit struct {
	ID              int64           `gorm:"primaryKey;autoIncrement"`
	CompanyID       int64           `gorm:"column:company_id;not null;index"`
	ContactID       *int64          `gorm:"column:contact_id"`
	UserID          int64           `gorm:"column:user_id;not null;index"`
	VisitType       enums.VisitType `gorm:"column:visit_type;type:text;not null"`
	VisitDate       time.Time       `gorm:"column:visit_date;not null;index"`
	Summary         string          `gorm:"type:text;not null"`
	Objectives      *string         `gorm:"column:objectives"`
	Outcomes        *string         `gorm:"column:outcomes"`
	NextSteps       *string         `gorm:"column:next_steps"`
	Location        *string         `gorm:"column:location"`
	DurationMinutes *int            `gorm:"column:duration_minutes"`
	FollowUpDate    *time.Time      `gorm:"column:follow_up_date"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
