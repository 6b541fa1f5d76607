package freelancer

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/workbridge/unified-identity/internal/platform"
)

// Store adapts the freelance marketplace's database to the platform.Store
// interface.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) ID() platform.ID { return platform.Freelancer }

// Migrate creates the platform tables. The schema is owned by the
// marketplace; this exists for local development and tests only.
func (s *Store) Migrate() error {
	return s.db.AutoMigrate(&AuthUser{}, &Profile{})
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
		profile := Profile{
			ID:            uuid.New(),
			AuthUserID:    authUser.ID,
			Email:         acct.Email,
			FullName:      acct.FullName,
			UnifiedUserID: &unifiedID,
		}
		if err := tx.Create(&profile).Error; err != nil {
			return fmt.Errorf("create profile: %w", err)
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return authUser.ID, nil
}

func (s *Store) FetchProfile(ctx context.Context, accountID uuid.UUID) (map[string]interface{}, error) {
	var profile Profile
	err := s.db.WithContext(ctx).Where("auth_user_id = ?", accountID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, platform.ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"profile_id":  profile.ID,
		"email":       profile.Email,
		"full_name":   profile.FullName,
		"phone":       profile.Phone,
		"hourly_rate": profile.HourlyRate,
		"skills":      profile.Skills,
	}, nil
}

func (s *Store) Unreconciled(ctx context.Context) ([]platform.Account, error) {
	var profiles []Profile
	if err := s.db.WithContext(ctx).Where("unified_user_id IS NULL").Order("created_at").Find(&profiles).Error; err != nil {
		return nil, err
	}

	accounts := make([]platform.Account, 0, len(profiles))
	for _, p := range profiles {
		accounts = append(accounts, platform.Account{
			ID:        p.AuthUserID,
			Email:     p.Email,
			FullName:  p.FullName,
			Phone:     p.Phone,
			CreatedAt: p.CreatedAt,
		})
	}
	return accounts, nil
}

func (s *Store) SetUnifiedID(ctx context.Context, accountID, unifiedID uuid.UUID) error {
	result := s.db.WithContext(ctx).Model(&Profile{}).
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
