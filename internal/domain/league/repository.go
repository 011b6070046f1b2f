package league

import "context"

// Repository describes league persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]League, error)
	ListByOwner(ctx context.Context, ownerID string) ([]League, error)
	GetByID(ctx context.Context, leagueID string) (League, bool, error)
	Insert(ctx context.Context, item League) error
	Update(ctx context.Context, item League) error
	Delete(ctx context.Context, leagueID string) error
}
