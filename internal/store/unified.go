package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/workbridge/unified-identity/internal/models"
	"github.com/workbridge/unified-identity/internal/platform"
)

var (
	ErrEmailTaken   = errors.New("email already registered")
	ErrUserNotFound = errors.New("unified user not found")
	ErrLinkNotFound = errors.New("platform link not found")
)

// Store is the access layer for the unified identity store: canonical
// users and their platform links.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate runs AutoMigrate for the master-store models.
func (s *Store) Migrate() error {
	return s.db.AutoMigrate(
		&models.UnifiedUser{},
		&models.PlatformLink{},
		&models.SystemLog{},
	)
}

// CreateUser inserts a canonical identity. Email uniqueness is enforced by
// the store's unique index; a violation is the conflict signal, there is
// no separate existence check.
func (s *Store) CreateUser(ctx context.Context, user *models.UnifiedUser) error {
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrEmailTaken
		}
		return fmt.Errorf("create unified user: %w", err)
	}
	return nil
}

func (s *Store) GetUser(ctx context.Context, id uuid.UUID) (*models.UnifiedUser, error) {
	var user models.UnifiedUser
	err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.UnifiedUser, error) {
	var user models.UnifiedUser
	err := s.db.WithContext(ctx).First(&user, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// LookupOrCreateUser returns the canonical identity for user.Email,
// creating it when absent. The insert races safely against concurrent
// runs: ON CONFLICT DO NOTHING on the email index, then a re-select, so
// two writers converge on one row. Reports whether this call created the
// row.
func (s *Store) LookupOrCreateUser(ctx context.Context, user *models.UnifiedUser) (*models.UnifiedUser, bool, error) {
	result := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoNothing: true,
	}).Create(user)
	if result.Error != nil {
		return nil, false, fmt.Errorf("lookup-or-create unified user: %w", result.Error)
	}
	created := result.RowsAffected > 0

	existing, err := s.GetUserByEmail(ctx, user.Email)
	if err != nil {
		return nil, false, err
	}
	return existing, created, nil
}

// MarkPlatformProfile sets the denormalized existence flag for a platform
// on an existing canonical identity.
func (s *Store) MarkPlatformProfile(ctx context.Context, userID uuid.UUID, p platform.ID) error {
	column := ""
	switch p {
	case platform.Freelancer:
		column = "has_freelancer_profile"
	case platform.CareerCopilot:
		column = "has_learning_profile"
	default:
		return fmt.Errorf("unknown platform %q", p)
	}
	return s.db.WithContext(ctx).Model(&models.UnifiedUser{}).
		Where("id = ?", userID).
		Update(column, true).Error
}

func (s *Store) SetRegistrationStatus(ctx context.Context, userID uuid.UUID, status string) error {
	return s.db.WithContext(ctx).Model(&models.UnifiedUser{}).
		Where("id = ?", userID).
		Update("registration_status", status).Error
}

// CreateLink inserts a platform link. A duplicate-key violation on either
// link index means the account is already linked; reported as created =
// false, not an error, so retries stay idempotent.
func (s *Store) CreateLink(ctx context.Context, link *models.PlatformLink) (bool, error) {
	if err := s.db.WithContext(ctx).Create(link).Error; err != nil {
		if isUniqueViolation(err) {
			return false, nil
		}
		return false, fmt.Errorf("create platform link: %w", err)
	}
	return true, nil
}

func (s *Store) GetLink(ctx context.Context, userID uuid.UUID, p platform.ID) (*models.PlatformLink, error) {
	var link models.PlatformLink
	err := s.db.WithContext(ctx).
		Where("unified_user_id = ? AND platform = ?", userID, string(p)).
		First(&link).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrLinkNotFound
	}
	if err != nil {
		return nil, err
	}
	return &link, nil
}

func (s *Store) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.UnifiedUser{}).Count(&count).Error
	return count, err
}

func (s *Store) CountLinks(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.PlatformLink{}).Count(&count).Error
	return count, err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
