package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/phaetex/efootball-client/api"
	"github.com/phaetex/efootball-client/models"
)

func TestCreateAdmin_Validation(t *testing.T) {
	tests := []struct {
		name    string
		input   CreateAdminInput
		wantErr error
	}{
		{"empty full name", CreateAdminInput{FullName: "  ", EfootballUsername: "jane", Password: "secret"}, ErrAdminFieldsRequired},
		{"empty username", CreateAdminInput{FullName: "Jane Doe", EfootballUsername: "", Password: "secret"}, ErrAdminFieldsRequired},
		{"empty password", CreateAdminInput{FullName: "Jane Doe", EfootballUsername: "jane", Password: ""}, ErrAdminFieldsRequired},
		{"short password", CreateAdminInput{FullName: "Jane Doe", EfootballUsername: "jane", Password: "five5"}, ErrAdminPasswordTooShort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adminAPI := new(mockAdminAPI)
			svc := NewAdminService(adminAPI)

			_, err := svc.CreateAdmin(context.Background(), tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
			adminAPI.AssertNotCalled(t, "CreateAdmin", mock.Anything, mock.Anything)
		})
	}
}

func TestCreateAdmin_SixCharacterPasswordAccepted(t *testing.T) {
	created := &models.User{ID: 11, FullName: "Jane Doe", EfootballUsername: "jane_admin", Role: models.RoleAdmin}

	adminAPI := new(mockAdminAPI)
	adminAPI.On("CreateAdmin", mock.Anything, api.CreateAdminRequest{
		FullName:          "Jane Doe",
		EfootballUsername: "jane_admin",
		Password:          "secret",
	}).Return(created, nil).Once()

	svc := NewAdminService(adminAPI)
	got, err := svc.CreateAdmin(context.Background(), CreateAdminInput{
		FullName:          "  Jane Doe  ",
		EfootballUsername: " jane_admin ",
		Password:          "secret",
	})
	require.NoError(t, err)
	assert.Equal(t, created, got)
	adminAPI.AssertExpectations(t)
}

func TestCreateAdmin_BackendErrorSurfaced(t *testing.T) {
	remote := &api.RemoteError{StatusCode: 409, Message: "efootball username is already taken"}

	adminAPI := new(mockAdminAPI)
	adminAPI.On("CreateAdmin", mock.Anything, mock.Anything).Return(nil, remote).Once()

	svc := NewAdminService(adminAPI)
	_, err := svc.CreateAdmin(context.Background(), CreateAdminInput{
		FullName:          "Jane Doe",
		EfootballUsername: "jane_admin",
		Password:          "secret",
	})
	require.Error(t, err)
	assert.Equal(t, "efootball username is already taken", err.Error())
}
