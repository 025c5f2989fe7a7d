package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/phaetex/efootball-client/api"
	"github.com/phaetex/efootball-client/config"
	"github.com/phaetex/efootball-client/guard"
	"github.com/phaetex/efootball-client/models"
	"github.com/phaetex/efootball-client/services"
	"github.com/phaetex/efootball-client/storage"
)

// console is the terminal rendition of the tournament client: the same
// session, guard, intake and admin flows the web client drives, behind
// a small command loop.
type console struct {
	cfg          *config.Config
	log          *slog.Logger
	client       *api.Client
	sessions     *services.SessionService
	registration *services.RegistrationService
	verification *services.VerificationService
	admins       *services.AdminService
	directory    *services.DirectoryService
	in           *bufio.Scanner
}

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	tokens, err := storage.NewSQLiteTokenStore(cfg.TokenDBPath)
	if err != nil {
		logger.Error("failed to open token store", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := tokens.Close(); err != nil {
			logger.Error("failed to close token store", slog.Any("error", err))
		}
	}()

	client := api.NewClient(cfg.APIBaseURL, cfg.RequestTimeout)
	sessions := services.NewSessionService(client, tokens, logger)
	client.SetTokenSource(sessions)

	c := &console{
		cfg:          cfg,
		log:          logger,
		client:       client,
		sessions:     sessions,
		registration: services.NewRegistrationService(client, sessions, cfg.IntakeVariant, cfg.RequireRegNo),
		verification: services.NewVerificationService(client),
		admins:       services.NewAdminService(client),
		directory:    services.NewDirectoryService(client, client),
		in:           bufio.NewScanner(os.Stdin),
	}

	ctx := context.Background()
	if err := sessions.Load(ctx); err != nil {
		logger.Error("failed to restore session", slog.Any("error", err))
	}

	c.printLanding(ctx)
	c.run(ctx)
}

func (c *console) run(ctx context.Context) {
	for {
		fmt.Print("> ")
		if !c.in.Scan() {
			return
		}
		fields := strings.Fields(c.in.Text())
		if len(fields) == 0 {
			continue
		}
		cmd, args := fields[0], fields[1:]

		switch cmd {
		case "help":
			c.printHelp()
		case "landing":
			c.printLanding(ctx)
		case "register":
			c.register(ctx)
		case "login":
			c.login(ctx)
		case "logout":
			if err := c.sessions.Logout(ctx); err != nil {
				fmt.Println("logout failed:", err)
				continue
			}
			fmt.Println("Logged out.")
		case "me":
			c.profile()
		case "rename":
			c.rename(ctx, strings.Join(args, " "))
		case "refresh":
			if err := c.sessions.Refresh(ctx); err != nil {
				fmt.Println("refresh failed:", err)
				continue
			}
			c.profile()
		case "pending":
			c.pending(ctx, strings.Join(args, " "))
		case "approve", "reject":
			c.decide(ctx, cmd, args)
		case "users":
			c.users(ctx, strings.Join(args, " "))
		case "stats":
			c.stats(ctx)
		case "create-admin":
			c.createAdmin(ctx)
		case "exit", "quit":
			return
		default:
			fmt.Printf("unknown command %q, try help\n", cmd)
		}
	}
}

func (c *console) printHelp() {
	fmt.Println(`Commands:
  landing          tournament status and entry details
  register         register as a participant
  login            log in to an existing account
  logout           log out (local only)
  me               show the current profile
  rename <name>    update the profile full name
  refresh          re-resolve the session against the backend
  pending [query]  list pending payments (super admin)
  approve <id>     approve a pending payment (super admin)
  reject <id>      reject a pending payment (super admin)
  users [query]    list registered users (super admin)
  stats            directory headline figures (super admin)
  create-admin     provision a new admin account (super admin)
  exit`)
}

func (c *console) printLanding(ctx context.Context) {
	// Best effort: a failed config fetch falls back to the default
	// rather than blocking the landing view.
	tournament, err := c.client.TournamentConfig(ctx)
	if err != nil {
		c.log.Warn("tournament config fetch failed, using default", slog.Any("error", err))
		tournament = models.DefaultTournamentConfig()
	}

	fmt.Println(tournament.Name)
	if tournament.Status == models.TournamentStarted {
		fmt.Println("The tournament is live.")
	} else {
		fmt.Println("Registration is open. Type 'register' to enter or 'help' for commands.")
	}
}

// gate enforces the required tier before an operation runs, the same
// decision a protected route evaluates before rendering.
func (c *console) gate(tier guard.Tier) bool {
	switch decision := guard.Evaluate(c.sessions.Current(), tier); decision {
	case guard.DecisionAllow:
		return true
	case guard.DecisionPending:
		fmt.Println("Session still resolving, try again in a moment.")
	case guard.DecisionRedirectLogin:
		fmt.Println("You need to log in first.")
	case guard.DecisionRedirectHome:
		fmt.Printf("This requires the %s tier.\n", tier)
	}
	return false
}

func (c *console) prompt(label string) string {
	fmt.Print(label + ": ")
	if !c.in.Scan() {
		return ""
	}
	return c.in.Text()
}

func (c *console) register(ctx context.Context) {
	input := services.RegisterInput{
		FullName:          c.prompt("Full name"),
		EfootballUsername: c.prompt("eFootball username"),
	}
	if c.cfg.RequireRegNo {
		input.RegNo = c.prompt("Registration number")
	}
	input.Password = c.prompt("Password")
	input.ConfirmPassword = c.prompt("Confirm password")

	switch c.cfg.IntakeVariant {
	case models.IntakeTransactionCode:
		input.MpesaTransactionCode = c.prompt("M-Pesa transaction code")
	case models.IntakePhone:
		input.PhoneNumber = c.prompt("M-Pesa phone number")
	}

	if _, err := c.registration.Register(ctx, input); err != nil {
		fmt.Println("Registration failed:", err)
		return
	}
	fmt.Println("Registered. You will be added to the participants list after payment verification.")
	c.profile()
}

func (c *console) login(ctx context.Context) {
	input := services.LoginInput{
		EfootballUsername: c.prompt("eFootball username"),
		Password:          c.prompt("Password"),
	}
	user, err := c.registration.Login(ctx, input)
	if err != nil {
		fmt.Println("Login failed:", err)
		return
	}

	// Post-login destination follows the role, like the web client.
	switch user.Role {
	case models.RoleSuperAdmin:
		fmt.Println("Logged in. Super admin console available: pending, users, stats, create-admin.")
	case models.RoleAdmin:
		fmt.Println("Logged in. Match management opens once the schedule is live.")
	default:
		c.profile()
	}
}

func (c *console) profile() {
	session := c.sessions.Current()
	if !session.Authenticated() {
		fmt.Println("Not logged in.")
		return
	}
	u := session.User
	fmt.Printf("%s (@%s) role=%s\n", u.FullName, u.EfootballUsername, u.Role)
	if session.Verified {
		fmt.Println("You are verified and on the participants list.")
	} else {
		fmt.Println("You are on the waiting list until your payment is verified.")
	}
}

func (c *console) rename(ctx context.Context, name string) {
	if !c.gate(guard.TierParticipant) {
		return
	}
	name = strings.TrimSpace(name)
	if name == "" {
		fmt.Println("usage: rename <new full name>")
		return
	}
	if _, err := c.sessions.UpdateProfile(ctx, models.ProfileUpdate{FullName: &name}); err != nil {
		fmt.Println("Profile update failed:", err)
		return
	}
	c.profile()
}

func (c *console) pending(ctx context.Context, query string) {
	if !c.gate(guard.TierSuperAdmin) {
		return
	}
	snapshot, err := c.directory.Snapshot(ctx)
	if err != nil {
		fmt.Println("Fetch failed:", err)
		return
	}
	payments := services.FilterPayments(snapshot.Payments, query)
	if len(payments) == 0 {
		fmt.Println("No pending payments.")
		return
	}
	for _, p := range payments {
		evidence := p.Evidence()
		if evidence == "" {
			evidence = "reserved"
		}
		fmt.Printf("#%d %s (@%s) %s KSH %d\n", p.ID, p.FullName, p.EfootballUsername, evidence, p.Amount)
	}
}

func (c *console) decide(ctx context.Context, action string, args []string) {
	if !c.gate(guard.TierSuperAdmin) {
		return
	}
	if len(args) != 1 {
		fmt.Printf("usage: %s <payment id>\n", action)
		return
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Println("payment id must be a number")
		return
	}
	if err := c.verification.Decide(ctx, id, api.VerifyAction(action)); err != nil {
		fmt.Println("Decision failed:", err)
		return
	}
	fmt.Printf("Payment #%d %sd. Refreshing pending list:\n", id, action)
	c.pending(ctx, "")
}

func (c *console) users(ctx context.Context, query string) {
	if !c.gate(guard.TierSuperAdmin) {
		return
	}
	snapshot, err := c.directory.Snapshot(ctx)
	if err != nil {
		fmt.Println("Fetch failed:", err)
		return
	}
	for _, u := range services.FilterUsers(snapshot.Users, query) {
		status := "unverified"
		if u.IsParticipant {
			status = "participant"
		}
		fmt.Printf("#%d %s (@%s) %s %s\n", u.ID, u.FullName, u.EfootballUsername, u.Role, status)
	}
}

func (c *console) stats(ctx context.Context) {
	if !c.gate(guard.TierSuperAdmin) {
		return
	}
	snapshot, err := c.directory.Snapshot(ctx)
	if err != nil {
		fmt.Println("Fetch failed:", err)
		return
	}
	s := snapshot.Stats
	fmt.Printf("pending payments: %d\nverified participants: %d\nadmin accounts: %d\ntotal users: %d\n",
		s.PendingPayments, s.VerifiedParticipants, s.AdminAccounts, s.TotalUsers)
}

func (c *console) createAdmin(ctx context.Context) {
	if !c.gate(guard.TierSuperAdmin) {
		return
	}
	input := services.CreateAdminInput{
		FullName:          c.prompt("Full name"),
		EfootballUsername: c.prompt("eFootball username"),
		Password:          c.prompt("Password (min 6 characters)"),
	}
	user, err := c.admins.CreateAdmin(ctx, input)
	if err != nil {
		fmt.Println("Create admin failed:", err)
		return
	}
	fmt.Printf("Admin #%d created. Refreshing directory:\n", user.ID)
	c.users(ctx, "")
}
