package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/workbridge/unified-identity/internal/models"
	"github.com/workbridge/unified-identity/internal/platform"
	"github.com/workbridge/unified-identity/internal/services"
	"github.com/workbridge/unified-identity/internal/store"
)

func newProfileService(st *MockUnifiedStore, fl, cc *MockPlatformStore) *services.ProfileService {
	set := platform.Set{}
	if fl != nil {
		fl.Platform = platform.Freelancer
		set.Freelancer = fl
	}
	if cc != nil {
		cc.Platform = platform.CareerCopilot
		set.CareerCopilot = cc
	}
	return services.NewProfileService(st, set)
}

func TestUnifiedProfileBothActive(t *testing.T) {
	userID := uuid.New()
	user := &models.UnifiedUser{
		ID:                   userID,
		Email:                "a@x.com",
		FullName:             "A B",
		HasFreelancerProfile: true,
		HasLearningProfile:   true,
	}
	flLink := &models.PlatformLink{UnifiedUserID: userID, Platform: "freelancer", PlatformUserID: uuid.New(), IsPrimary: true}
	ccLink := &models.PlatformLink{UnifiedUserID: userID, Platform: "career_copilot", PlatformUserID: uuid.New()}

	st := new(MockUnifiedStore)
	fl := new(MockPlatformStore)
	cc := new(MockPlatformStore)

	st.On("GetUser", mock.Anything, userID).Return(user, nil)
	st.On("GetLink", mock.Anything, userID, platform.Freelancer).Return(flLink, nil)
	st.On("GetLink", mock.Anything, userID, platform.CareerCopilot).Return(ccLink, nil)
	fl.On("FetchProfile", mock.Anything, flLink.PlatformUserID).Return(map[string]interface{}{"full_name": "A B", "hourly_rate": 50.0}, nil)
	cc.On("FetchProfile", mock.Anything, ccLink.PlatformUserID).Return(map[string]interface{}{"headline": "Engineer"}, nil)

	svc := newProfileService(st, fl, cc)
	data, err := svc.GetUnifiedProfile(context.Background(), userID)

	require.NoError(t, err)
	assert.True(t, data.Platforms.Freelancer.Active)
	assert.True(t, data.Platforms.CareerCopilot.Active)
	assert.Equal(t, []string{"freelancer", "career_copilot"}, data.Stats.ActivePlatforms)
	assert.Equal(t, 2, data.Stats.TotalPlatforms)
	assert.Equal(t, "Engineer", data.Platforms.CareerCopilot.Profile["headline"])
}

func TestUnifiedProfileFlagWithoutLink(t *testing.T) {
	// Flags and links can drift; a flagged platform with no link row must
	// be reported inactive, not fail the read.
	userID := uuid.New()
	user := &models.UnifiedUser{
		ID:                   userID,
		Email:                "a@x.com",
		HasFreelancerProfile: true,
	}

	st := new(MockUnifiedStore)
	fl := new(MockPlatformStore)

	st.On("GetUser", mock.Anything, userID).Return(user, nil)
	st.On("GetLink", mock.Anything, userID, platform.Freelancer).Return(nil, store.ErrLinkNotFound)

	svc := newProfileService(st, fl, nil)
	data, err := svc.GetUnifiedProfile(context.Background(), userID)

	require.NoError(t, err)
	assert.False(t, data.Platforms.Freelancer.Active)
	assert.False(t, data.Platforms.CareerCopilot.Active)
	assert.Empty(t, data.Stats.ActivePlatforms)
	fl.AssertNotCalled(t, "FetchProfile", mock.Anything, mock.Anything)
}

func TestUnifiedProfileRemoteProfileGone(t *testing.T) {
	// The link is a cross-database reference; a vanished target row is a
	// normal outcome and reports the platform inactive.
	userID := uuid.New()
	user := &models.UnifiedUser{ID: userID, Email: "a@x.com", HasFreelancerProfile: true}
	link := &models.PlatformLink{UnifiedUserID: userID, Platform: "freelancer", PlatformUserID: uuid.New()}

	st := new(MockUnifiedStore)
	fl := new(MockPlatformStore)

	st.On("GetUser", mock.Anything, userID).Return(user, nil)
	st.On("GetLink", mock.Anything, userID, platform.Freelancer).Return(link, nil)
	fl.On("FetchProfile", mock.Anything, link.PlatformUserID).Return(nil, platform.ErrProfileNotFound)

	svc := newProfileService(st, fl, nil)
	data, err := svc.GetUnifiedProfile(context.Background(), userID)

	require.NoError(t, err)
	assert.False(t, data.Platforms.Freelancer.Active)
}

func TestUnifiedProfileFetchError(t *testing.T) {
	userID := uuid.New()
	user := &models.UnifiedUser{ID: userID, Email: "a@x.com", HasLearningProfile: true}
	link := &models.PlatformLink{UnifiedUserID: userID, Platform: "career_copilot", PlatformUserID: uuid.New()}

	st := new(MockUnifiedStore)
	cc := new(MockPlatformStore)

	st.On("GetUser", mock.Anything, userID).Return(user, nil)
	st.On("GetLink", mock.Anything, userID, platform.CareerCopilot).Return(link, nil)
	cc.On("FetchProfile", mock.Anything, link.PlatformUserID).Return(nil, errors.New("connection refused"))

	svc := newProfileService(st, nil, cc)
	data, err := svc.GetUnifiedProfile(context.Background(), userID)

	require.NoError(t, err)
	assert.False(t, data.Platforms.CareerCopilot.Active)
}

func TestUnifiedProfileUserNotFound(t *testing.T) {
	userID := uuid.New()

	st := new(MockUnifiedStore)
	st.On("GetUser", mock.Anything, userID).Return(nil, store.ErrUserNotFound)

	svc := newProfileService(st, nil, nil)
	_, err := svc.GetUnifiedProfile(context.Background(), userID)
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}
