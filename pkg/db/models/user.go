package models

import (
	"time"

	"github.com/fleetlinehq/fleetline-backend/pkg/enums"
)

// User is a CRM operator: either a BDM owning accounts or a manager with
// cross-team visibility.
type User struct {
	ID        int64          `gorm:"primaryKey;autoIncrement"`
	Email     string         `gorm:"type:text;not null;uniqueIndex:users_email_key"`
	Name      string         `gorm:"type:text;not null"`
	Role      enums.UserRole `gorm:"type:text;not null"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
