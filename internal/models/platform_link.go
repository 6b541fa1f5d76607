package models

import (
	"time"

	"github.com/google/uuid"
)

// PlatformLink associates a canonical identity with one account inside a
// platform store. PlatformUserID is a cross-database reference, never a
// real foreign key: the target row lives in a store this service does not
// own, so reads must tolerate it being gone.
type PlatformLink struct {
	ID             uuid.UUID   `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UnifiedUserID  uuid.UUID   `gorm:"type:uuid;not null;index;uniqueIndex:idx_links_user_platform" json:"unified_user_id"`
	Platform       string      `gorm:"size:50;not null;uniqueIndex:idx_links_user_platform;uniqueIndex:idx_links_platform_account" json:"platform"`
	PlatformUserID uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_links_platform_account" json:"platform_user_id"`
	IsPrimary      bool        `gorm:"default:false" json:"is_primary"`
	CreatedAt      time.Time   `json:"created_at"`
	UnifiedUser    UnifiedUser `gorm:"foreignKey:UnifiedUserID" json:"-"`
}

func (PlatformLink) TableName() string { return "user_platform_links" }
