package dto

import (
	"time"

	"github.com/google/uuid"
)

// ProfileData is the unified dashboard view assembled from the master
// store and whichever platform stores are linked.
type ProfileData struct {
	Identity  Identity         `json:"identity"`
	Platforms PlatformSections `json:"platforms"`
	Stats     ProfileStats     `json:"stats"`
}

type Identity struct {
	ID                 uuid.UUID `json:"id"`
	Email              string    `json:"email"`
	FullName           string    `json:"full_name"`
	EmailVerified      bool      `json:"email_verified"`
	RegistrationStatus string    `json:"registration_status"`
	CreatedAt          time.Time `json:"created_at"`
}

// PlatformSections is a fixed pair, not an open map: the platform set is
// closed.
type PlatformSections struct {
	Freelancer    PlatformSection `json:"freelancer"`
	CareerCopilot PlatformSection `json:"career_copilot"`
}

type PlatformSection struct {
	Active  bool                   `json:"active"`
	Profile map[string]interface{} `json:"profile,omitempty"`
}

type ProfileStats struct {
	ActivePlatforms []string `json:"active_platforms"`
	TotalPlatforms  int      `json:"total_platforms"`
}
