package services

import (
	"context"
	"regexp"
	"strings"

	"github.com/phaetex/efootball-client/api"
	"github.com/phaetex/efootball-client/models"
)

var transactionCodeRe = regexp.MustCompile(`^[A-Z0-9]{10}$`)

// RegisterInput is the raw intake form. Which payment-evidence field is
// consulted depends on the configured variant.
type RegisterInput struct {
	FullName             string
	RegNo                string
	EfootballUsername    string
	Password             string
	ConfirmPassword      string
	MpesaTransactionCode string
	PhoneNumber          string
}

type LoginInput struct {
	EfootballUsername string
	Password          string
}

// RegistrationService validates and submits new-participant requests and
// logins. Validation is local and fails fast: invalid input never
// produces a network call. On success the issued token is handed to the
// session service.
type RegistrationService struct {
	api          api.AuthAPI
	sessions     *SessionService
	variant      models.IntakeVariant
	requireRegNo bool
}

func NewRegistrationService(authAPI api.AuthAPI, sessions *SessionService, variant models.IntakeVariant, requireRegNo bool) *RegistrationService {
	return &RegistrationService{
		api:          authAPI,
		sessions:     sessions,
		variant:      variant,
		requireRegNo: requireRegNo,
	}
}

// Register validates the form, submits it, and adopts the issued token.
// Backend errors are returned to the caller verbatim; nothing retries
// automatically. The returned user is nil when the backend omitted it,
// in which case the session has already been refreshed from /users/me.
func (s *RegistrationService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	req, err := s.buildRequest(input)
	if err != nil {
		return nil, err
	}

	resp, err := s.api.Register(ctx, *req)
	if err != nil {
		return nil, err
	}

	if err := s.sessions.Adopt(ctx, resp.Token, resp.User, resp.Verified); err != nil {
		return nil, err
	}
	if resp.User == nil {
		if err := s.sessions.Refresh(ctx); err != nil {
			return nil, err
		}
	}
	return resp.User, nil
}

// Login signs in an existing account and adopts the issued token.
func (s *RegistrationService) Login(ctx context.Context, input LoginInput) (*models.User, error) {
	username := strings.TrimSpace(input.EfootballUsername)
	if len(username) < 3 {
		return nil, ErrUsernameTooShort
	}
	if len(input.Password) < 8 {
		return nil, ErrPasswordTooShort
	}

	resp, err := s.api.Login(ctx, api.LoginRequest{
		EfootballUsername: username,
		Password:          input.Password,
	})
	if err != nil {
		return nil, err
	}

	if err := s.sessions.Adopt(ctx, resp.Token, resp.User, resp.Verified); err != nil {
		return nil, err
	}
	return resp.User, nil
}

func (s *RegistrationService) buildRequest(input RegisterInput) (*api.RegisterRequest, error) {
	fullName := strings.TrimSpace(input.FullName)
	if len(fullName) < 3 {
		return nil, ErrFullNameTooShort
	}

	regNo := strings.TrimSpace(input.RegNo)
	if s.requireRegNo && len(regNo) < 3 {
		return nil, ErrRegNoTooShort
	}

	username := strings.TrimSpace(input.EfootballUsername)
	if len(username) < 3 {
		return nil, ErrUsernameTooShort
	}

	if len(input.Password) < 8 {
		return nil, ErrPasswordTooShort
	}
	if input.Password != input.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}

	req := &api.RegisterRequest{
		FullName:          fullName,
		EfootballUsername: username,
		Password:          input.Password,
	}
	if s.requireRegNo {
		req.RegNo = regNo
	}

	switch s.variant {
	case models.IntakeTransactionCode:
		code, err := ValidateTransactionCode(input.MpesaTransactionCode)
		if err != nil {
			return nil, err
		}
		req.MpesaTransactionCode = code
	case models.IntakePhone:
		phone, err := ValidatePhoneNumber(input.PhoneNumber)
		if err != nil {
			return nil, err
		}
		req.PhoneNumber = phone
	case models.IntakeReservation:
		// No payment evidence; the slot is settled offline.
	}
	return req, nil
}

// ValidateTransactionCode normalizes an M-Pesa transaction code
// (trimmed, uppercased) and checks it is exactly 10 characters of A-Z
// or 0-9. Uppercasing happens before the check, so case alone never
// fails a code.
func ValidateTransactionCode(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if !transactionCodeRe.MatchString(code) {
		return "", ErrInvalidTransactionCode
	}
	return code, nil
}

// ValidatePhoneNumber strips every non-digit character and accepts
// 254XXXXXXXXX (12 digits), 0XXXXXXXXX (10 digits), or a bare 9-digit
// subscriber number starting with 1 or 7. The rule is deliberately kept
// as shipped, including digit patterns that are not real Kenyan mobile
// prefixes.
func ValidatePhoneNumber(raw string) (string, error) {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()

	switch {
	case strings.HasPrefix(digits, "254") && len(digits) == 12:
	case strings.HasPrefix(digits, "0") && len(digits) == 10:
	case len(digits) == 9 && (digits[0] == '1' || digits[0] == '7'):
	default:
		return "", ErrInvalidPhoneNumber
	}
	return digits, nil
}
