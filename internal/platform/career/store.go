package career

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/workbridge/unified-identity/internal/platform"
)

// Store adapts the career-guidance tool's database to the platform.Store
// interface.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) ID() platform.ID { return platform.CareerCopilot }

// Migrate creates the platform tables. For local development and tests
// only; the schema is owned by the career platform.
func (s *Store) Migrate() error {
	return s.db.AutoMigrate(&AuthUser{}, &UserProfile{})
}

func (s *Store) CreateAccount(ctx context.Context, acct platform.NewAccount) (uuid.UUID, error) {
	authUser := AuthUser{
		ID:             uuid.New(),
		Email:          acct.Email,
		PasswordHash:   acct.PasswordHash,
		EmailConfirmed: true,
	}
	unifiedID := acct.UnifiedUserID

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&authUser).Error; err != nil {
			return fmt.Errorf("create auth user: %w", err)
		}
		profile := UserProfile{
			ID:            uuid.New(),
			AuthUserID:    authUser.ID,
			FullName:      acct.FullName,
			UnifiedUserID: &unifiedID,
		}
		if err := tx.Create(&profile).Error; err != nil {
			return fmt.Errorf("create user profile: %w", err)
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return authUser.ID, nil
}

func (s *Store) FetchProfile(ctx context.Context, accountID uuid.UUID) (map[string]interface{}, error) {
	var profile UserProfile
	err := s.db.WithContext(ctx).Where("auth_user_id = ?", accountID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, platform.ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}

	var goals []interface{}
	if len(profile.Goals) > 0 {
		_ = json.Unmarshal(profile.Goals, &goals)
	}

	return map[string]interface{}{
		"profile_id": profile.ID,
		"full_name":  profile.FullName,
		"headline":   profile.Headline,
		"goals":      goals,
	}, nil
}

func (s *Store) Unreconciled(ctx context.Context) ([]platform.Account, error) {
	var profiles []UserProfile
	if err := s.db.WithContext(ctx).Where("unified_user_id IS NULL").Order("created_at").Find(&profiles).Error; err != nil {
		return nil, err
	}

	accounts := make([]platform.Account, 0, len(profiles))
	for _, p := range profiles {
		// No email at this layer; callers synthesize a placeholder.
		accounts = append(accounts, platform.Account{
			ID:        p.AuthUserID,
			FullName:  p.FullName,
			CreatedAt: p.CreatedAt,
		})
	}
	return accounts, nil
}

func (s *Store) SetUnifiedID(ctx context.Context, accountID, unifiedID uuid.UUID) error {
	result := s.db.WithContext(ctx).Model(&UserProfile{}).
		Where("auth_user_id = ?", accountID).
		Update("unified_user_id", unifiedID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return platform.ErrProfileNotFound
	}
	return nil
}
