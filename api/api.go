package api

import (
	"context"

	"github.com/phaetex/efootball-client/models"
)

// TokenSource supplies the current bearer token, empty when no session
// is held. The session service implements it.
type TokenSource interface {
	Token() string
}

type RegisterRequest struct {
	FullName             string `json:"full_name"`
	RegNo                string `json:"reg_no,omitempty"`
	EfootballUsername    string `json:"efootball_username"`
	Password             string `json:"password"`
	MpesaTransactionCode string `json:"mpesa_transaction_code,omitempty"`
	PhoneNumber          string `json:"phone_number,omitempty"`
}

type LoginRequest struct {
	EfootballUsername string `json:"efootball_username"`
	Password          string `json:"password"`
}

type CreateAdminRequest struct {
	FullName          string `json:"full_name"`
	EfootballUsername string `json:"efootball_username"`
	Password          string `json:"password"`
}

// AuthResponse is returned by both register and login. Register may omit
// the resolved user, in which case the caller refreshes the session.
type AuthResponse struct {
	Token    string       `json:"token"`
	User     *models.User `json:"user,omitempty"`
	Verified bool         `json:"verified,omitempty"`
}

// MeResponse resolves the held token to an identity. Participant is the
// payment record backing the user's registration, if any.
type MeResponse struct {
	User        *models.User           `json:"user"`
	Verified    bool                   `json:"verified"`
	Participant *models.PendingPayment `json:"participant,omitempty"`
}

type VerifyAction string

const (
	VerifyApprove VerifyAction = "approve"
	VerifyReject  VerifyAction = "reject"
)

type AuthAPI interface {
	Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)
}

type SessionAPI interface {
	Me(ctx context.Context) (*MeResponse, error)
	UpdateMe(ctx context.Context, update models.ProfileUpdate) (*models.User, error)
}

type PaymentAPI interface {
	PendingPayments(ctx context.Context) ([]models.PendingPayment, error)
	VerifyPayment(ctx context.Context, id int, action VerifyAction) error
}

type AdminAPI interface {
	CreateAdmin(ctx context.Context, req CreateAdminRequest) (*models.User, error)
}

type DirectoryAPI interface {
	ListUsers(ctx context.Context, role models.Role) ([]models.User, error)
}

type ConfigAPI interface {
	TournamentConfig(ctx context.Context) (models.TournamentConfig, error)
}
