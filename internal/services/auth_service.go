package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/workbridge/unified-identity/internal/config"
	"github.com/workbridge/unified-identity/internal/dto"
	"github.com/workbridge/unified-identity/internal/models"
	"github.com/workbridge/unified-identity/internal/platform"
	"github.com/workbridge/unified-identity/internal/store"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// UnifiedStore is the slice of the master-store access layer the services
// depend on. Satisfied by *store.Store.
type UnifiedStore interface {
	CreateUser(ctx context.Context, user *models.UnifiedUser) error
	GetUser(ctx context.Context, id uuid.UUID) (*models.UnifiedUser, error)
	GetUserByEmail(ctx context.Context, email string) (*models.UnifiedUser, error)
	SetRegistrationStatus(ctx context.Context, userID uuid.UUID, status string) error
	CreateLink(ctx context.Context, link *models.PlatformLink) (bool, error)
	GetLink(ctx context.Context, userID uuid.UUID, p platform.ID) (*models.PlatformLink, error)
}

// registrationTarget is the parsed platform selector from a registration
// request.
type registrationTarget struct {
	freelancer bool
	career     bool
}

func (t registrationTarget) requested() []platform.ID {
	var ids []platform.ID
	if t.freelancer {
		ids = append(ids, platform.Freelancer)
	}
	if t.career {
		ids = append(ids, platform.CareerCopilot)
	}
	return ids
}

func parseTarget(s string) (registrationTarget, bool) {
	switch s {
	case "freelancer":
		return registrationTarget{freelancer: true}, true
	case "career_copilot":
		return registrationTarget{career: true}, true
	case "both":
		return registrationTarget{freelancer: true, career: true}, true
	}
	return registrationTarget{}, false
}

// AuthService owns registration fan-out and unified-store login.
type AuthService struct {
	store     UnifiedStore
	platforms platform.Set
	cfg       *config.Config
}

func NewAuthService(st UnifiedStore, platforms platform.Set, cfg *config.Config) *AuthService {
	return &AuthService{store: st, platforms: platforms, cfg: cfg}
}

// Register creates one canonical identity, then fans out account creation
// to the requested platform stores. Legs are independent and best-effort:
// a failed leg is logged and skipped, never rolled back, and the response
// lists only the platforms that actually activated. The canonical row's
// registration_status records whether any leg was lost.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthData, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: valid email is required", ErrInvalidInput)
	}
	if len(req.Password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", ErrInvalidInput)
	}
	if strings.TrimSpace(req.FullName) == "" {
		return nil, fmt.Errorf("%w: full_name is required", ErrInvalidInput)
	}
	target, ok := parseTarget(req.Platform)
	if !ok {
		return nil, fmt.Errorf("%w: platform must be freelancer, career_copilot or both", ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.UnifiedUser{
		ID:                   uuid.New(),
		Email:                email,
		FullName:             strings.TrimSpace(req.FullName),
		PasswordHash:         string(hash),
		HasFreelancerProfile: target.freelancer,
		HasLearningProfile:   target.career,
		RegistrationStatus:   models.RegistrationPending,
	}

	// Email uniqueness is the store's unique index; a violation surfaces
	// here as store.ErrEmailTaken. If this insert fails nothing else is
	// created.
	if err := s.store.CreateUser(ctx, &user); err != nil {
		return nil, err
	}

	accounts := s.fanOut(ctx, &user, string(hash), target)

	status := models.RegistrationComplete
	if len(accounts.Active()) < len(target.requested()) {
		status = models.RegistrationPartial
	}
	if err := s.store.SetRegistrationStatus(ctx, user.ID, status); err != nil {
		slog.Error("failed to set registration status", "user_id", user.ID.String(), "error", err)
	}

	token, err := s.issueToken(&user, accounts)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &dto.AuthData{
		Token: token,
		User: dto.UserInfo{
			ID:        user.ID,
			Email:     user.Email,
			FullName:  user.FullName,
			Platforms: accounts.Active(),
		},
	}, nil
}

// fanOut provisions the requested platform accounts. Each leg creates the
// platform account and then its link row; failure of either step loses
// the whole leg.
func (s *AuthService) fanOut(ctx context.Context, user *models.UnifiedUser, passwordHash string, target registrationTarget) PlatformAccounts {
	var accounts PlatformAccounts

	for _, p := range target.requested() {
		ps := s.platforms.Get(p)
		if ps == nil {
			slog.Error("platform store not configured", "platform", string(p), "user_id", user.ID.String())
			continue
		}

		accountID, err := ps.CreateAccount(ctx, platform.NewAccount{
			Email:         user.Email,
			PasswordHash:  passwordHash,
			FullName:      user.FullName,
			UnifiedUserID: user.ID,
		})
		if err != nil {
			slog.Error("platform account creation failed",
				"platform", string(p), "user_id", user.ID.String(), "action", "register_fanout", "error", err.Error())
			continue
		}

		// The freelancer platform is the home platform whenever requested;
		// career_copilot only when it is the sole platform.
		isPrimary := p == platform.Freelancer || !target.freelancer

		if _, err := s.store.CreateLink(ctx, &models.PlatformLink{
			ID:             uuid.New(),
			UnifiedUserID:  user.ID,
			Platform:       string(p),
			PlatformUserID: accountID,
			IsPrimary:      isPrimary,
		}); err != nil {
			slog.Error("platform link creation failed",
				"platform", string(p), "user_id", user.ID.String(), "action", "register_fanout", "error", err.Error())
			continue
		}

		accounts.Set(p, accountID)
	}

	return accounts
}

// Login authenticates against the unified store and issues a token whose
// platform claims are resolved from the link table.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthData, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))
	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	// Reconciled identities have no unified-store credential.
	if user.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	accounts := s.resolveAccounts(ctx, user)

	token, err := s.issueToken(user, accounts)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &dto.AuthData{
		Token: token,
		User: dto.UserInfo{
			ID:        user.ID,
			Email:     user.Email,
			FullName:  user.FullName,
			Platforms: accounts.Active(),
		},
	}, nil
}

func (s *AuthService) resolveAccounts(ctx context.Context, user *models.UnifiedUser) PlatformAccounts {
	var accounts PlatformAccounts
	for _, p := range []platform.ID{platform.Freelancer, platform.CareerCopilot} {
		link, err := s.store.GetLink(ctx, user.ID, p)
		if err != nil {
			if !errors.Is(err, store.ErrLinkNotFound) {
				slog.Error("link lookup failed", "platform", string(p), "user_id", user.ID.String(), "error", err)
			}
			continue
		}
		accounts.Set(p, link.PlatformUserID)
	}
	return accounts
}

func (s *AuthService) issueToken(user *models.UnifiedUser, accounts PlatformAccounts) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(s.cfg.JWTAccessExpiry).Unix(),
	}
	if accounts.Freelancer != nil {
		claims["freelancer_id"] = accounts.Freelancer.String()
	}
	if accounts.CareerCopilot != nil {
		claims["career_copilot_id"] = accounts.CareerCopilot.String()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}
