package models

type TournamentStatus string

const (
	TournamentNotStarted TournamentStatus = "not_started"
	TournamentStarted    TournamentStatus = "started"
)

// TournamentConfig is read-only from the client's perspective; it
// advances only on the backend.
type TournamentConfig struct {
	Status TournamentStatus `json:"tournament_status"`
	Name   string           `json:"tournament_name"`
}

// DefaultTournamentConfig is the fallback when the config fetch fails;
// the landing view renders it rather than blocking on the error.
func DefaultTournamentConfig() TournamentConfig {
	return TournamentConfig{
		Status: TournamentNotStarted,
		Name:   "Machakos University Efootball Tournament",
	}
}
