package career

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AuthUser mirrors the career-guidance store's auth principal table.
type AuthUser struct {
	ID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Email          string    `gorm:"not null;size:255;uniqueIndex"`
	PasswordHash   string    `gorm:"not null"`
	EmailConfirmed bool      `gorm:"default:false"`
	CreatedAt      time.Time
}

func (AuthUser) TableName() string { return "auth_users" }

// UserProfile is the learning profile row. The schema carries no email at
// this layer; reconciliation synthesizes a placeholder from the account id
// instead. UnifiedUserID was added retroactively for the back-reference.
type UserProfile struct {
	ID            uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	AuthUserID    uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex"`
	FullName      string         `gorm:"size:255"`
	Headline      string         `gorm:"size:255"`
	Goals         datatypes.JSON `gorm:"type:jsonb;default:'[]'"`
	UnifiedUserID *uuid.UUID     `gorm:"type:uuid;index"`
	CreatedAt     time.Time
}

func (UserProfile) TableName() string { return "user_profiles" }
