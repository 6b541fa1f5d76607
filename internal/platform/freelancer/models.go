package freelancer

import (
	"time"

	"github.com/google/uuid"
)

// AuthUser mirrors the marketplace store's auth principal table. Accounts
// created through fan-out are pre-confirmed.
type AuthUser struct {
	ID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Email          string    `gorm:"not null;size:255;uniqueIndex"`
	PasswordHash   string    `gorm:"not null"`
	EmailConfirmed bool      `gorm:"default:false"`
	CreatedAt      time.Time
}

func (AuthUser) TableName() string { return "auth_users" }

// Profile is the marketplace profile row. UnifiedUserID was added
// retroactively and stays NULL until registration or reconciliation
// stamps it.
type Profile struct {
	ID            uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	AuthUserID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex"`
	Email         string     `gorm:"size:255"`
	FullName      string     `gorm:"size:255"`
	Phone         string     `gorm:"size:50"`
	HourlyRate    float64    `gorm:"default:0"`
	Skills        string     `gorm:"type:text"`
	UnifiedUserID *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt     time.Time
}

func (Profile) TableName() string { return "profiles" }
