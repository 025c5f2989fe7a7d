package models

// Session is the client's current belief about who is authenticated.
// There is exactly one live Session per client process, owned by the
// session service.
type Session struct {
	// User is the resolved identity, nil while unauthenticated.
	User *User `json:"user,omitempty"`
	// Verified mirrors User.IsParticipant at resolution time.
	Verified bool `json:"verified"`
	// Loading is true while a token resolution is in flight. Guards
	// must treat a loading session as undecided.
	Loading bool `json:"loading"`
}

func (s Session) Authenticated() bool {
	return s.User != nil
}
