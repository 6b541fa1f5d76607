package services

import (
	"github.com/google/uuid"

	"github.com/workbridge/unified-identity/internal/platform"
)

// PlatformAccounts records which platform account, if any, a canonical
// identity owns on each platform. The platform set is closed, so this is
// a fixed pair of optional ids rather than an open map.
type PlatformAccounts struct {
	Freelancer    *uuid.UUID
	CareerCopilot *uuid.UUID
}

func (a *PlatformAccounts) Set(p platform.ID, accountID uuid.UUID) {
	switch p {
	case platform.Freelancer:
		a.Freelancer = &accountID
	case platform.CareerCopilot:
		a.CareerCopilot = &accountID
	}
}

// Active lists the platform names with an account, in fixed order.
func (a PlatformAccounts) Active() []string {
	active := make([]string, 0, 2)
	if a.Freelancer != nil {
		active = append(active, string(platform.Freelancer))
	}
	if a.CareerCopilot != nil {
		active = append(active, string(platform.CareerCopilot))
	}
	return active
}
