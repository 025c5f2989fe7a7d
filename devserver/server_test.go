package devserver_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phaetex/efootball-client/api"
	"github.com/phaetex/efootball-client/devserver"
	"github.com/phaetex/efootball-client/guard"
	"github.com/phaetex/efootball-client/models"
	"github.com/phaetex/efootball-client/services"
	"github.com/phaetex/efootball-client/storage"
)

type harness struct {
	ts           *httptest.Server
	client       *api.Client
	tokens       *storage.MemoryTokenStore
	sessions     *services.SessionService
	registration *services.RegistrationService
	verification *services.VerificationService
	admins       *services.AdminService
	directory    *services.DirectoryService
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	srv, err := devserver.New(devserver.Config{
		JWTSecret:        "test-secret",
		TournamentName:   "MU Cup",
		TournamentStatus: models.TournamentNotStarted,
		EntryFee:         90,
		SeedAdminUser:    "root_admin",
		SeedAdminPass:    "changemenow",
		Logger:           slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)

	client := api.NewClient(ts.URL+"/api", 5*time.Second)
	tokens := storage.NewMemoryTokenStore()
	sessions := services.NewSessionService(client, tokens, slog.New(slog.NewTextHandler(io.Discard, nil)))
	client.SetTokenSource(sessions)

	return &harness{
		ts:           ts,
		client:       client,
		tokens:       tokens,
		sessions:     sessions,
		registration: services.NewRegistrationService(client, sessions, models.IntakeTransactionCode, false),
		verification: services.NewVerificationService(client),
		admins:       services.NewAdminService(client),
		directory:    services.NewDirectoryService(client, client),
	}
}

func (h *harness) loginSuperAdmin(t *testing.T) {
	t.Helper()
	_, err := h.registration.Login(context.Background(), services.LoginInput{
		EfootballUsername: "root_admin",
		Password:          "changemenow",
	})
	require.NoError(t, err)
}

func TestTournamentConfig(t *testing.T) {
	h := newHarness(t)

	cfg, err := h.client.TournamentConfig(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.TournamentNotStarted, cfg.Status)
	assert.Equal(t, "MU Cup", cfg.Name)
}

func TestRegistrationFlow(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	user, err := h.registration.Register(ctx, services.RegisterInput{
		FullName:             "John Doe",
		EfootballUsername:    "john_doe",
		Password:             "secret-pass",
		ConfirmPassword:      "secret-pass",
		MpesaTransactionCode: "ABCDE12345",
	})
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, models.RoleParticipant, user.Role)
	assert.False(t, user.IsParticipant)

	// Profile reachable, admin console not.
	session := h.sessions.Current()
	assert.Equal(t, guard.DecisionAllow, guard.Evaluate(session, guard.TierParticipant))
	assert.Equal(t, guard.DecisionRedirectHome, guard.Evaluate(session, guard.TierSuperAdmin))

	// The backend enforces the same boundary.
	_, err = h.client.PendingPayments(ctx)
	assert.ErrorIs(t, err, api.ErrForbidden)

	// Duplicate username is rejected with the backend's message.
	_, err = h.registration.Register(ctx, services.RegisterInput{
		FullName:             "John Clone",
		EfootballUsername:    "john_doe",
		Password:             "secret-pass",
		ConfirmPassword:      "secret-pass",
		MpesaTransactionCode: "ABCDE12345",
	})
	var remote *api.RemoteError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, "efootball username is already taken", remote.Message)
}

func TestPaymentApprovalFlow(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	_, err := h.registration.Register(ctx, services.RegisterInput{
		FullName:             "John Doe",
		EfootballUsername:    "john_doe",
		Password:             "secret-pass",
		ConfirmPassword:      "secret-pass",
		MpesaTransactionCode: "ABCDE12345",
	})
	require.NoError(t, err)
	require.NoError(t, h.sessions.Logout(ctx))

	h.loginSuperAdmin(t)

	snapshot, err := h.directory.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, snapshot.Payments, 1)
	payment := snapshot.Payments[0]
	assert.Equal(t, "ABCDE12345", payment.MpesaTransactionCode)
	assert.Equal(t, 90, payment.Amount)
	assert.Equal(t, models.PaymentPending, payment.Status)
	assert.Equal(t, 1, snapshot.Stats.PendingPayments)
	assert.Equal(t, 0, snapshot.Stats.VerifiedParticipants)

	require.NoError(t, h.verification.Decide(ctx, payment.ID, api.VerifyApprove))

	// The decided item vanishes from the pending collection and the
	// owner is now a verified participant.
	snapshot, err = h.directory.Snapshot(ctx)
	require.NoError(t, err)
	assert.Empty(t, snapshot.Payments)
	assert.Equal(t, 1, snapshot.Stats.VerifiedParticipants)

	users := services.FilterUsers(snapshot.Users, "john_doe")
	require.Len(t, users, 1)
	assert.True(t, users[0].IsParticipant)

	// Terminal states are immutable: repeat decisions fail.
	err = h.verification.Decide(ctx, payment.ID, api.VerifyApprove)
	var remote *api.RemoteError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, 409, remote.StatusCode)
	require.ErrorAs(t, h.verification.Decide(ctx, payment.ID, api.VerifyReject), &remote)
}

func TestPaymentRejectionDoesNotVerify(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	_, err := h.registration.Register(ctx, services.RegisterInput{
		FullName:             "Bob Otieno",
		EfootballUsername:    "bob_o",
		Password:             "secret-pass",
		ConfirmPassword:      "secret-pass",
		MpesaTransactionCode: "ZZZZZ99999",
	})
	require.NoError(t, err)
	require.NoError(t, h.sessions.Logout(ctx))

	h.loginSuperAdmin(t)

	snapshot, err := h.directory.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, snapshot.Payments, 1)

	require.NoError(t, h.verification.Decide(ctx, snapshot.Payments[0].ID, api.VerifyReject))

	snapshot, err = h.directory.Snapshot(ctx)
	require.NoError(t, err)
	assert.Empty(t, snapshot.Payments)
	assert.Equal(t, 0, snapshot.Stats.VerifiedParticipants)

	users := services.FilterUsers(snapshot.Users, "bob_o")
	require.Len(t, users, 1)
	assert.False(t, users[0].IsParticipant)
}

func TestAdminProvisioningFlow(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.loginSuperAdmin(t)

	created, err := h.admins.CreateAdmin(ctx, services.CreateAdminInput{
		FullName:          "Jane Doe",
		EfootballUsername: "jane_admin",
		Password:          "jane-secret",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, created.Role)

	snapshot, err := h.directory.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, snapshot.Stats.AdminAccounts)

	// The new admin can log in but holds no super-admin powers.
	require.NoError(t, h.sessions.Logout(ctx))
	_, err = h.registration.Login(ctx, services.LoginInput{
		EfootballUsername: "jane_admin",
		Password:          "wrong-secret",
	})
	assert.ErrorIs(t, err, api.ErrUnauthenticated)

	_, err = h.registration.Login(ctx, services.LoginInput{
		EfootballUsername: "jane_admin",
		Password:          "jane-secret",
	})
	require.NoError(t, err)

	session := h.sessions.Current()
	assert.Equal(t, guard.DecisionAllow, guard.Evaluate(session, guard.TierAdmin))
	assert.Equal(t, guard.DecisionRedirectHome, guard.Evaluate(session, guard.TierSuperAdmin))

	_, err = h.client.PendingPayments(ctx)
	assert.ErrorIs(t, err, api.ErrForbidden)
}

func TestSessionRestoreAcrossRestart(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.loginSuperAdmin(t)
	token := h.sessions.Token()
	require.NotEmpty(t, token)

	// A new process: fresh client and session service sharing only the
	// durable token store.
	client2 := api.NewClient(h.ts.URL+"/api", 5*time.Second)
	sessions2 := services.NewSessionService(client2, h.tokens, slog.New(slog.NewTextHandler(io.Discard, nil)))
	client2.SetTokenSource(sessions2)

	assert.True(t, sessions2.Current().Loading)
	require.NoError(t, sessions2.Load(ctx))

	session := sessions2.Current()
	require.True(t, session.Authenticated())
	assert.Equal(t, models.RoleSuperAdmin, session.User.Role)
	assert.Equal(t, guard.DecisionAllow, guard.Evaluate(session, guard.TierSuperAdmin))
}

func TestBogusTokenIsPurgedOnLoad(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	require.NoError(t, h.tokens.Save(ctx, "not-a-real-token"))
	require.NoError(t, h.sessions.Load(ctx))

	assert.False(t, h.sessions.Current().Authenticated())
	stored, err := h.tokens.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestProfileUpdate(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	_, err := h.registration.Register(ctx, services.RegisterInput{
		FullName:             "John Doe",
		EfootballUsername:    "john_doe",
		Password:             "secret-pass",
		ConfirmPassword:      "secret-pass",
		MpesaTransactionCode: "ABCDE12345",
	})
	require.NoError(t, err)

	newName := "John A. Doe"
	updated, err := h.sessions.UpdateProfile(ctx, models.ProfileUpdate{FullName: &newName})
	require.NoError(t, err)
	assert.Equal(t, newName, updated.FullName)
	assert.Equal(t, newName, h.sessions.Current().User.FullName)
}

func TestGuestsCannotResolveSession(t *testing.T) {
	h := newHarness(t)

	_, err := h.client.Me(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, api.ErrUnauthenticated))
}
