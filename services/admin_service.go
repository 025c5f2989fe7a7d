package services

import (
	"context"
	"strings"

	"github.com/phaetex/efootball-client/api"
	"github.com/phaetex/efootball-client/models"
)

type CreateAdminInput struct {
	FullName          string
	EfootballUsername string
	Password          string
}

// AdminService provisions admin accounts. Super-admin gating happens at
// the surrounding layer; this service trusts its caller. After a
// successful create the caller clears the form and re-fetches the user
// directory.
type AdminService struct {
	api api.AdminAPI
}

func NewAdminService(adminAPI api.AdminAPI) *AdminService {
	return &AdminService{api: adminAPI}
}

func (s *AdminService) CreateAdmin(ctx context.Context, input CreateAdminInput) (*models.User, error) {
	fullName := strings.TrimSpace(input.FullName)
	username := strings.TrimSpace(input.EfootballUsername)
	if fullName == "" || username == "" || input.Password == "" {
		return nil, ErrAdminFieldsRequired
	}
	if len(input.Password) < 6 {
		return nil, ErrAdminPasswordTooShort
	}

	return s.api.CreateAdmin(ctx, api.CreateAdminRequest{
		FullName:          fullName,
		EfootballUsername: username,
		Password:          input.Password,
	})
}
