package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/fleague/fleague-api/internal/domain/team"
)

type TeamRepository struct {
	mu    sync.RWMutex
	teams map[string]team.Team
}

func NewTeamRepository(teams []team.Team) *TeamRepository {
	items := make(map[string]team.Team, len(teams))
	for _, item := range teams {
		items[item.ID] = item
	}

	return &TeamRepository{teams: items}
}

func (r *TeamRepository) ListByLeague(_ context.Context, leagueID string) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, 0)
	for _, item := range r.teams {
		if item.LeagueID == leagueID {
			out = append(out, cloneTeam(item))
		}
	}
	sortTeams(out)

	return out, nil
}

func (r *TeamRepository) ListByLeagueAndGroup(_ context.Context, leagueID, group string) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, 0)
	for _, item := range r.teams {
		if item.LeagueID == leagueID && item.Group == group {
			out = append(out, cloneTeam(item))
		}
	}
	sortTeams(out)

	return out, nil
}

func (r *TeamRepository) GetByID(_ context.Context, teamID string) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.teams[teamID]
	if !ok {
		return team.Team{}, false, nil
	}

	return cloneTeam(item), true, nil
}

func (r *TeamRepository) Insert(_ context.Context, item team.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.teams[item.ID]; exists {
		return fmt.Errorf("team %s already exists", item.ID)
	}
	r.teams[item.ID] = cloneTeam(item)

	return nil
}

func (r *TeamRepository) Update(_ context.Context, item team.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.teams[item.ID]; !exists {
		return fmt.Errorf("team %s does not exist", item.ID)
	}
	r.teams[item.ID] = cloneTeam(item)

	return nil
}

func (r *TeamRepository) UpdateMany(_ context.Context, items []team.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range items {
		if _, exists := r.teams[item.ID]; !exists {
			return fmt.Errorf("team %s does not exist", item.ID)
		}
	}
	for _, item := range items {
		r.teams[item.ID] = cloneTeam(item)
	}

	return nil
}

func (r *TeamRepository) Delete(_ context.Context, teamID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.teams, teamID)

	return nil
}

func (r *TeamRepository) DeleteByLeague(_ context.Context, leagueID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, item := range r.teams {
		if item.LeagueID == leagueID {
			delete(r.teams, id)
		}
	}

	return nil
}

func (r *TeamRepository) ResetStatsByLeague(_ context.Context, leagueID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, item := range r.teams {
		if item.LeagueID == leagueID {
			item.ResetStats()
			r.teams[id] = item
		}
	}

	return nil
}

func cloneTeam(item team.Team) team.Team {
	item.Form = append([]string(nil), item.Form...)
	return item
}

func sortTeams(items []team.Team) {
	sort.Slice(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.Before(items[j].CreatedAt)
		}
		return items[i].ID < items[j].ID
	})
}
