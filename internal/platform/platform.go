package platform

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ID identifies one of the independently-operated platforms. The set is
// closed and known at compile time.
type ID string

const (
	Freelancer    ID = "freelancer"
	CareerCopilot ID = "career_copilot"
)

// Parse validates a platform identifier from the wire.
func Parse(s string) (ID, bool) {
	switch ID(s) {
	case Freelancer, CareerCopilot:
		return ID(s), true
	}
	return "", false
}

// ErrProfileNotFound reports that an account or its profile row does not
// exist in the platform store. Links are cross-database references, so a
// missing target is a normal outcome, not corruption.
var ErrProfileNotFound = errors.New("platform profile not found")

// Account is a normalized view of one platform-store account as seen by
// reconciliation scans. Email is empty when the platform schema carries no
// email at the scanned layer.
type Account struct {
	ID        uuid.UUID
	Email     string
	FullName  string
	Phone     string
	CreatedAt time.Time
}

// DedupEmail returns the reconciliation dedup key for an account: its real
// email, or a synthesized placeholder when the platform has none.
func (a Account) DedupEmail(p ID) string {
	if a.Email != "" {
		return a.Email
	}
	return fmt.Sprintf("%s_%s@placeholder.com", p, a.ID)
}

// NewAccount carries everything needed to provision one platform account.
// The password is already hashed; platform stores never see plaintext.
type NewAccount struct {
	Email         string
	PasswordHash  string
	FullName      string
	UnifiedUserID uuid.UUID
}

// Store is the interface over one platform's own account store.
type Store interface {
	ID() ID

	// CreateAccount provisions a pre-confirmed auth account and its profile
	// row stamped with the canonical id, returning the platform account id.
	CreateAccount(ctx context.Context, acct NewAccount) (uuid.UUID, error)

	// FetchProfile returns the platform-specific profile payload for an
	// account. Returns ErrProfileNotFound when the row is absent.
	FetchProfile(ctx context.Context, accountID uuid.UUID) (map[string]interface{}, error)

	// Unreconciled lists accounts whose profile rows carry no canonical
	// back-reference yet.
	Unreconciled(ctx context.Context) ([]Account, error)

	// SetUnifiedID writes the canonical id back onto the account's profile
	// row so later reconciliation runs skip it.
	SetUnifiedID(ctx context.Context, accountID, unifiedID uuid.UUID) error
}

// Set is the fixed pair of platform stores.
type Set struct {
	Freelancer    Store
	CareerCopilot Store
}

func (s Set) Get(p ID) Store {
	switch p {
	case Freelancer:
		return s.Freelancer
	case CareerCopilot:
		return s.CareerCopilot
	}
	return nil
}

func (s Set) All() []Store {
	all := make([]Store, 0, 2)
	if s.Freelancer != nil {
		all = append(all, s.Freelancer)
	}
	if s.CareerCopilot != nil {
		all = append(all, s.CareerCopilot)
	}
	return all
}
