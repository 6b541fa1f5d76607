package services_test

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/workbridge/unified-identity/internal/models"
	"github.com/workbridge/unified-identity/internal/platform"
)

// MockUnifiedStore is a mock implementation of services.UnifiedStore.
type MockUnifiedStore struct {
	mock.Mock
}

func (m *MockUnifiedStore) CreateUser(ctx context.Context, user *models.UnifiedUser) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUnifiedStore) GetUser(ctx context.Context, id uuid.UUID) (*models.UnifiedUser, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UnifiedUser), args.Error(1)
}

func (m *MockUnifiedStore) GetUserByEmail(ctx context.Context, email string) (*models.UnifiedUser, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UnifiedUser), args.Error(1)
}

func (m *MockUnifiedStore) SetRegistrationStatus(ctx context.Context, userID uuid.UUID, status string) error {
	args := m.Called(ctx, userID, status)
	return args.Error(0)
}

func (m *MockUnifiedStore) CreateLink(ctx context.Context, link *models.PlatformLink) (bool, error) {
	args := m.Called(ctx, link)
	return args.Bool(0), args.Error(1)
}

func (m *MockUnifiedStore) GetLink(ctx context.Context, userID uuid.UUID, p platform.ID) (*models.PlatformLink, error) {
	args := m.Called(ctx, userID, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PlatformLink), args.Error(1)
}

// MockPlatformStore is a mock implementation of platform.Store.
type MockPlatformStore struct {
	mock.Mock
	Platform platform.ID
}

func (m *MockPlatformStore) ID() platform.ID { return m.Platform }

func (m *MockPlatformStore) CreateAccount(ctx context.Context, acct platform.NewAccount) (uuid.UUID, error) {
	args := m.Called(ctx, acct)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockPlatformStore) FetchProfile(ctx context.Context, accountID uuid.UUID) (map[string]interface{}, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]interface{}), args.Error(1)
}

func (m *MockPlatformStore) Unreconciled(ctx context.Context) ([]platform.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]platform.Account), args.Error(1)
}

func (m *MockPlatformStore) SetUnifiedID(ctx context.Context, accountID, unifiedID uuid.UUID) error {
	args := m.Called(ctx, accountID, unifiedID)
	return args.Error(0)
}
