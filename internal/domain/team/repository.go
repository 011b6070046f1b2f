package team

import "context"

// Repository describes team persistence needs from use cases.
type Repository interface {
	ListByLeague(ctx context.Context, leagueID string) ([]Team, error)
	ListByLeagueAndGroup(ctx context.Context, leagueID, group string) ([]Team, error)
	GetByID(ctx context.Context, teamID string) (Team, bool, error)
	Insert(ctx context.Context, item Team) error
	Update(ctx context.Context, item Team) error
	UpdateMany(ctx context.Context, items []Team) error
	Delete(ctx context.Context, teamID string) error
	DeleteByLeague(ctx context.Context, leagueID string) error
	ResetStatsByLeague(ctx context.Context, leagueID string) error
}
