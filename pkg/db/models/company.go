package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Company is a customer account: a business operating a vehicle fleet.
type Company struct {
	ID            int64                `gorm:"primaryKey;autoIncrement"`
	Name          string               `gorm:"type:text;not null"`
	Industry      *string              `gorm:"column:industry"`
	Address       *string              `gorm:"column:address"`
	Phone         *string              `gorm:"column:phone"`
	Email         *string              `gorm:"column:email"`
	Website       *string              `gorm:"column:website"`
	FleetSize     *int                 `gorm:"column:fleet_size"`
	AnnualRevenue decimal.NullDecimal  `gorm:"column:annual_revenue;type:numeric(14,2)"`
	Notes         *string              `gorm:"column:notes"`
	CreatedBy     int64                `gorm:"column:created_by;not null"`
	AssignedBDM   int64                `gorm:"column:assigned_bdm;not null"`
	CreatedAt     time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}
