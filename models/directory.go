package models

// DirectoryStats are the admin console headline figures, derived from
// the last-fetched user and pending-payment collections.
type DirectoryStats struct {
	TotalUsers           int `json:"total_users"`
	AdminAccounts        int `json:"admin_accounts"`
	VerifiedParticipants int `json:"verified_participants"`
	PendingPayments      int `json:"pending_payments"`
}
