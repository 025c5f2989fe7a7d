package services

import (
	"context"
	"io"
	"log/slog"

	"github.com/stretchr/testify/mock"

	"github.com/phaetex/efootball-client/api"
	"github.com/phaetex/efootball-client/models"
	"github.com/phaetex/efootball-client/storage"
)

// mockAuthAPI is a mock implementation of api.AuthAPI.
type mockAuthAPI struct {
	mock.Mock
}

func (m *mockAuthAPI) Register(ctx context.Context, req api.RegisterRequest) (*api.AuthResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.AuthResponse), args.Error(1)
}

func (m *mockAuthAPI) Login(ctx context.Context, req api.LoginRequest) (*api.AuthResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.AuthResponse), args.Error(1)
}

// mockSessionAPI is a mock implementation of api.SessionAPI.
type mockSessionAPI struct {
	mock.Mock
}

func (m *mockSessionAPI) Me(ctx context.Context) (*api.MeResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.MeResponse), args.Error(1)
}

func (m *mockSessionAPI) UpdateMe(ctx context.Context, update models.ProfileUpdate) (*models.User, error) {
	args := m.Called(ctx, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// mockPaymentAPI is a mock implementation of api.PaymentAPI.
type mockPaymentAPI struct {
	mock.Mock
}

func (m *mockPaymentAPI) PendingPayments(ctx context.Context) ([]models.PendingPayment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PendingPayment), args.Error(1)
}

func (m *mockPaymentAPI) VerifyPayment(ctx context.Context, id int, action api.VerifyAction) error {
	args := m.Called(ctx, id, action)
	return args.Error(0)
}

// mockAdminAPI is a mock implementation of api.AdminAPI.
type mockAdminAPI struct {
	mock.Mock
}

func (m *mockAdminAPI) CreateAdmin(ctx context.Context, req api.CreateAdminRequest) (*models.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// mockDirectoryAPI is a mock implementation of api.DirectoryAPI.
type mockDirectoryAPI struct {
	mock.Mock
}

func (m *mockDirectoryAPI) ListUsers(ctx context.Context, role models.Role) ([]models.User, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestSessions(sessionAPI api.SessionAPI) *SessionService {
	return NewSessionService(sessionAPI, storage.NewMemoryTokenStore(), testLogger())
}
