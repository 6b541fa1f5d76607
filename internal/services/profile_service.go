package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/workbridge/unified-identity/internal/dto"
	"github.com/workbridge/unified-identity/internal/models"
	"github.com/workbridge/unified-identity/internal/platform"
	"github.com/workbridge/unified-identity/internal/store"
)

// ProfileService assembles the unified dashboard view for a canonical
// identity.
type ProfileService struct {
	store     UnifiedStore
	platforms platform.Set
}

func NewProfileService(st UnifiedStore, platforms platform.Set) *ProfileService {
	return &ProfileService{store: st, platforms: platforms}
}

// GetUnifiedProfile gathers the identity fields plus each linked, active
// platform's profile payload. Flags and links can drift: a platform whose
// flag is set but whose link or remote profile is gone is reported
// inactive, never an error.
func (s *ProfileService) GetUnifiedProfile(ctx context.Context, userID uuid.UUID) (*dto.ProfileData, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	data := &dto.ProfileData{
		Identity: dto.Identity{
			ID:                 user.ID,
			Email:              user.Email,
			FullName:           user.FullName,
			EmailVerified:      user.EmailVerified,
			RegistrationStatus: user.RegistrationStatus,
			CreatedAt:          user.CreatedAt,
		},
	}

	data.Platforms.Freelancer = s.platformSection(ctx, user, platform.Freelancer, user.HasFreelancerProfile)
	data.Platforms.CareerCopilot = s.platformSection(ctx, user, platform.CareerCopilot, user.HasLearningProfile)

	active := make([]string, 0, 2)
	if data.Platforms.Freelancer.Active {
		active = append(active, string(platform.Freelancer))
	}
	if data.Platforms.CareerCopilot.Active {
		active = append(active, string(platform.CareerCopilot))
	}
	data.Stats = dto.ProfileStats{
		ActivePlatforms: active,
		TotalPlatforms:  len(active),
	}

	return data, nil
}

func (s *ProfileService) platformSection(ctx context.Context, user *models.UnifiedUser, p platform.ID, flagged bool) dto.PlatformSection {
	if !flagged {
		return dto.PlatformSection{Active: false}
	}

	link, err := s.store.GetLink(ctx, user.ID, p)
	if err != nil {
		if !errors.Is(err, store.ErrLinkNotFound) {
			slog.Error("link lookup failed", "platform", string(p), "user_id", user.ID.String(), "action", "profile_aggregate", "error", err.Error())
		}
		return dto.PlatformSection{Active: false}
	}

	ps := s.platforms.Get(p)
	if ps == nil {
		return dto.PlatformSection{Active: false}
	}

	payload, err := ps.FetchProfile(ctx, link.PlatformUserID)
	if err != nil {
		if !errors.Is(err, platform.ErrProfileNotFound) {
			slog.Error("platform profile fetch failed", "platform", string(p), "user_id", user.ID.String(), "action", "profile_aggregate", "error", err.Error())
		}
		return dto.PlatformSection{Active: false}
	}

	return dto.PlatformSection{Active: true, Profile: payload}
}
