package models

import "time"

// Contact is a person at a company. At most one contact per company carries
// the primary flag; the contacts service enforces that on every write.
type Contact struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	CompanyID int64     `gorm:"column:company_id;not null;index"`
	Name      string    `gorm:"type:text;not null"`
	Position  *string   `gorm:"column:position"`
	Phone     *string   `gorm:"column:phone"`
	Email     *string   `gorm:"column:email"`
	Notes     *string   `gorm:"column:notes"`
	IsPrimary bool      `gorm:"column:is_primary;not null;default:false"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
