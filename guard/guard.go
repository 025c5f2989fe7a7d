// Package guard decides whether the current session may see a protected
// view. It is pure: no I/O, no mutation, re-evaluated on every
// navigation and whenever the session changes.
package guard

import "github.com/phaetex/efootball-client/models"

// Tier is the minimum role required to access a view or operation.
type Tier int

const (
	TierNone Tier = iota
	TierParticipant
	TierAdmin
	TierSuperAdmin
)

func (t Tier) String() string {
	switch t {
	case TierNone:
		return "none"
	case TierParticipant:
		return "participant"
	case TierAdmin:
		return "admin"
	case TierSuperAdmin:
		return "super_admin"
	}
	return "unknown"
}

type Decision int

const (
	// DecisionAllow grants access to the protected content.
	DecisionAllow Decision = iota
	// DecisionPending means session resolution is still in flight; the
	// caller must show an interstitial, not content.
	DecisionPending
	// DecisionRedirectLogin means no user is authenticated.
	DecisionRedirectLogin
	// DecisionRedirectHome means the user is authenticated but the role
	// does not satisfy the required tier.
	DecisionRedirectHome
)

func (d Decision) String() string {
	switch d {
	case DecisionAllow:
		return "allow"
	case DecisionPending:
		return "pending"
	case DecisionRedirectLogin:
		return "redirect_login"
	case DecisionRedirectHome:
		return "redirect_home"
	}
	return "unknown"
}

// Evaluate maps (session, required tier) to a decision.
func Evaluate(session models.Session, required Tier) Decision {
	if session.Loading {
		return DecisionPending
	}
	if !session.Authenticated() {
		if required == TierNone {
			return DecisionAllow
		}
		return DecisionRedirectLogin
	}
	if !Satisfies(session.User.Role, required) {
		return DecisionRedirectHome
	}
	return DecisionAllow
}

// Satisfies reports whether a role meets the required tier under the
// hierarchy participant < admin < super_admin. Tier and role ranks share
// a scale, so the single comparison covers every pair.
func Satisfies(role models.Role, required Tier) bool {
	return role.Rank() >= int(required)
}
