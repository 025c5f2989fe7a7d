package services

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/phaetex/efootball-client/api"
	"github.com/phaetex/efootball-client/models"
)

// DirectorySnapshot is one consistent fetch of the collections the
// admin console renders. It is never cached: after any mutation the
// caller takes a fresh snapshot rather than patching this one.
type DirectorySnapshot struct {
	Users    []models.User
	Payments []models.PendingPayment
	Stats    models.DirectoryStats
}

// DirectoryService fetches the admin console collections. Filtering and
// aggregation are pure package-level functions over whatever snapshot
// the caller holds.
type DirectoryService struct {
	users    api.DirectoryAPI
	payments api.PaymentAPI
}

func NewDirectoryService(directoryAPI api.DirectoryAPI, paymentAPI api.PaymentAPI) *DirectoryService {
	return &DirectoryService{
		users:    directoryAPI,
		payments: paymentAPI,
	}
}

// Snapshot fetches users and pending payments concurrently and derives
// the stats from the pair.
func (s *DirectoryService) Snapshot(ctx context.Context) (*DirectorySnapshot, error) {
	var (
		users    []models.User
		payments []models.PendingPayment
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		users, err = s.users.ListUsers(ctx, "")
		return err
	})
	g.Go(func() error {
		var err error
		payments, err = s.payments.PendingPayments(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &DirectorySnapshot{
		Users:    users,
		Payments: payments,
		Stats:    Aggregate(users, payments),
	}, nil
}

// FilterPayments returns the payments whose full name, username, or
// payment evidence contains the trimmed query, case-insensitively. The
// empty query is the identity.
func FilterPayments(payments []models.PendingPayment, query string) []models.PendingPayment {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return payments
	}
	var filtered []models.PendingPayment
	for _, p := range payments {
		haystack := strings.ToLower(strings.Join([]string{
			p.FullName, p.EfootballUsername, p.MpesaTransactionCode, p.PhoneNumber,
		}, " "))
		if strings.Contains(haystack, q) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// FilterUsers is the same contract over full name, username and role.
func FilterUsers(users []models.User, query string) []models.User {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return users
	}
	var filtered []models.User
	for _, u := range users {
		haystack := strings.ToLower(strings.Join([]string{
			u.FullName, u.EfootballUsername, string(u.Role),
		}, " "))
		if strings.Contains(haystack, q) {
			filtered = append(filtered, u)
		}
	}
	return filtered
}

// Aggregate computes the console headline figures. Pure function of its
// inputs; recompute whenever either collection changes.
func Aggregate(users []models.User, payments []models.PendingPayment) models.DirectoryStats {
	stats := models.DirectoryStats{
		TotalUsers:      len(users),
		PendingPayments: len(payments),
	}
	for _, u := range users {
		if u.Role == models.RoleAdmin || u.Role == models.RoleSuperAdmin {
			stats.AdminAccounts++
		}
		if u.IsParticipant {
			stats.VerifiedParticipants++
		}
	}
	return stats
}
