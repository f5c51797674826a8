package models

import (
	"time"

	"github.com/fleetlinehq/fleetline-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// SalesOpportunity is a pipeline deal. ActualCloseDate is stamped when the
// stage moves to a terminal value unless the caller supplies one explicitly.
type SalesOpportunity struct {
	ID                int64               `gorm:"primaryKey;autoIncrement"`
	CompanyID         int64               `gorm:"column:company_id;not null;index"`
	ContactID         *int64              `gorm:"column:contact_id"`
	UserID            int64               `gorm:"column:user_id;not null;index"`
	Title             string              `gorm:"type:text;not null"`
	Description       *string             `gorm:"column:description"`
	Value             decimal.NullDecimal `gorm:"column:value;type:numeric(14,2)"`
	Probability       int                 `gorm:"column:probability;not null;default:0"`
	Stage             enums.PipelineStage `gorm:"column:stage;type:text;not null;default:'LEAD';index"`
	ExpectedCloseDate *time.Time          `gorm:"column:expected_close_date"`
	ActualCloseDate   *time.Time          `gorm:"column:actual_close_date"`
	CreatedAt         time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName overrides GORM's default pluralization.
func (SalesOpportunity) TableName() string {
	return "sales_opportunities"
}
