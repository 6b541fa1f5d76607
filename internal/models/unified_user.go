package models

import (
	"time"

	"github.com/google/uuid"
)

// Registration status values for UnifiedUser. A registration that loses a
// platform leg during fan-out is recorded as partial so the gap is
// queryable instead of silent.
const (
	RegistrationComplete = "complete"
	RegistrationPartial  = "partial"
	RegistrationPending  = "pending"
)

// UnifiedUser is the canonical cross-platform identity. Every platform
// account ultimately links back to exactly one of these rows.
type UnifiedUser struct {
	ID                   uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email                string    `gorm:"not null;size:255;uniqueIndex" json:"email"`
	FullName             string    `gorm:"size:255" json:"full_name"`
	PasswordHash         string    `gorm:"column:password_hash" json:"-"`
	Phone                string    `gorm:"size:50" json:"phone,omitempty"`
	HasFreelancerProfile bool      `gorm:"default:false" json:"has_freelancer_profile"`
	HasLearningProfile   bool      `gorm:"default:false" json:"has_learning_profile"`
	EmailVerified        bool      `gorm:"default:false" json:"email_verified"`
	RegistrationStatus   string    `gorm:"size:20;default:'complete'" json:"registration_status"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

func (UnifiedUser) TableName() string { return "unified_users" }
