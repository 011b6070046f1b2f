package match

import "context"

// Filter narrows a league's match list. Zero values mean "any".
type Filter struct {
	Round  int
	Group  string
	Status string
}

// Repository describes match persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, matchID string) (Match, bool, error)
	ListByLeague(ctx context.Context, leagueID string, filter Filter) ([]Match, error)
	// ListByTeam returns the team's matches with the given status, most
	// recently played first. A non-positive limit returns all of them.
	ListByTeam(ctx context.Context, teamID, status string, limit int) ([]Match, error)
	CountByLeague(ctx context.Context, leagueID string) (int, error)
	InsertMany(ctx context.Context, items []Match) error
	Update(ctx context.Context, item Match) error
	DeleteByLeague(ctx context.Context, leagueID string) error
	// ResetByLeague puts every match of the league back into the
	// scheduled/no-score state in one bulk write.
	ResetByLeague(ctx context.Context, leagueID string) error
}
