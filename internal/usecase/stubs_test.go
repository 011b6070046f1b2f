package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/fleague/fleague-api/internal/domain/league"
	"github.com/fleague/fleague-api/internal/domain/match"
	"github.com/fleague/fleague-api/internal/domain/team"
)

// In-memory repository stubs shared by the service tests. They hold plain
// maps behind a mutex so concurrent service paths can be exercised too.

type stubLeagueRepo struct {
	mu    sync.Mutex
	items map[string]league.League
}

func newStubLeagueRepo(items ...league.League) *stubLeagueRepo {
	r := &stubLeagueRepo{items: make(map[string]league.League)}
	for _, item := range items {
		r.items[item.ID] = item
	}
	return r
}

func (r *stubLeagueRepo) List(ctx context.Context) ([]league.League, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]league.League, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubLeagueRepo) ListByOwner(ctx context.Context, ownerID string) ([]league.League, error) {
	all, _ := r.List(ctx)
	out := all[:0]
	for _, item := range all {
		if item.OwnerID == ownerID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *stubLeagueRepo) GetByID(ctx context.Context, leagueID string) (league.League, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[leagueID]
	return item, ok, nil
}

func (r *stubLeagueRepo) Insert(ctx context.Context, item league.League) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[item.ID] = item
	return nil
}

func (r *stubLeagueRepo) Update(ctx context.Context, item league.League) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[item.ID]; !ok {
		return fmt.Errorf("league %s does not exist", item.ID)
	}
	r.items[item.ID] = item
	return nil
}

func (r *stubLeagueRepo) Delete(ctx context.Context, leagueID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, leagueID)
	return nil
}

type stubTeamRepo struct {
	mu    sync.Mutex
	items map[string]team.Team
}

func newStubTeamRepo(items ...team.Team) *stubTeamRepo {
	r := &stubTeamRepo{items: make(map[string]team.Team)}
	for _, item := range items {
		r.items[item.ID] = item
	}
	return r
}

func (r *stubTeamRepo) ListByLeague(ctx context.Context, leagueID string) ([]team.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]team.Team, 0, len(r.items))
	for _, item := range r.items {
		if item.LeagueID == leagueID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubTeamRepo) ListByLeagueAndGroup(ctx context.Context, leagueID, group string) ([]team.Team, error) {
	all, _ := r.ListByLeague(ctx, leagueID)
	out := all[:0]
	for _, item := range all {
		if item.Group == group {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *stubTeamRepo) GetByID(ctx context.Context, teamID string) (team.Team, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[teamID]
	return item, ok, nil
}

func (r *stubTeamRepo) Insert(ctx context.Context, item team.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[item.ID] = item
	return nil
}

func (r *stubTeamRepo) Update(ctx context.Context, item team.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[item.ID]; !ok {
		return fmt.Errorf("team %s does not exist", item.ID)
	}
	r.items[item.ID] = item
	return nil
}

func (r *stubTeamRepo) UpdateMany(ctx context.Context, items []team.Team) error {
	for _, item := range items {
		if err := r.Update(ctx, item); err != nil {
			return err
		}
	}
	return nil
}

func (r *stubTeamRepo) Delete(ctx context.Context, teamID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, teamID)
	return nil
}

func (r *stubTeamRepo) DeleteByLeague(ctx context.Context, leagueID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, item := range r.items {
		if item.LeagueID == leagueID {
			delete(r.items, id)
		}
	}
	return nil
}

func (r *stubTeamRepo) ResetStatsByLeague(ctx context.Context, leagueID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, item := range r.items {
		if item.LeagueID == leagueID {
			item.ResetStats()
			r.items[id] = item
		}
	}
	return nil
}

type stubMatchRepo struct {
	mu    sync.Mutex
	items map[string]match.Match
}

func newStubMatchRepo(items ...match.Match) *stubMatchRepo {
	r := &stubMatchRepo{items: make(map[string]match.Match)}
	for _, item := range items {
		r.items[item.ID] = item
	}
	return r
}

func (r *stubMatchRepo) GetByID(ctx context.Context, matchID string) (match.Match, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[matchID]
	return item, ok, nil
}

func (r *stubMatchRepo) ListByLeague(ctx context.Context, leagueID string, filter match.Filter) ([]match.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]match.Match, 0, len(r.items))
	for _, item := range r.items {
		if item.LeagueID != leagueID {
			continue
		}
		if filter.Round != 0 && item.Round != filter.Round {
			continue
		}
		if filter.Group != "" && item.Group != filter.Group {
			continue
		}
		if filter.Status != "" && item.Status != filter.Status {
			continue
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Round != out[j].Round {
			return out[i].Round < out[j].Round
		}
		return out[i].MatchNumber < out[j].MatchNumber
	})
	return out, nil
}

func (r *stubMatchRepo) ListByTeam(ctx context.Context, teamID, status string, limit int) ([]match.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]match.Match, 0)
	for _, item := range r.items {
		if item.HomeTeamID != teamID && item.AwayTeamID != teamID {
			continue
		}
		if status != "" && item.Status != status {
			continue
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		ti, tj := out[i].PlayedDate, out[j].PlayedDate
		switch {
		case ti == nil:
			return false
		case tj == nil:
			return true
		default:
			return ti.After(*tj)
		}
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *stubMatchRepo) CountByLeague(ctx context.Context, leagueID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, item := range r.items {
		if item.LeagueID == leagueID {
			count++
		}
	}
	return count, nil
}

func (r *stubMatchRepo) InsertMany(ctx context.Context, items []match.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range items {
		r.items[item.ID] = item
	}
	return nil
}

func (r *stubMatchRepo) Update(ctx context.Context, item match.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[item.ID]; !ok {
		return fmt.Errorf("match %s does not exist", item.ID)
	}
	r.items[item.ID] = item
	return nil
}

func (r *stubMatchRepo) DeleteByLeague(ctx context.Context, leagueID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, item := range r.items {
		if item.LeagueID == leagueID {
			delete(r.items, id)
		}
	}
	return nil
}

func (r *stubMatchRepo) ResetByLeague(ctx context.Context, leagueID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, item := range r.items {
		if item.LeagueID != leagueID {
			continue
		}
		item.Score = match.Score{}
		item.Status = match.StatusScheduled
		item.PlayedDate = nil
		item.VideoURL = ""
		item.Highlights = nil
		item.Photos = nil
		r.items[id] = item
	}
	return nil
}

// seqIDGen hands out deterministic ids for assertions.
type seqIDGen struct {
	mu   sync.Mutex
	next int
}

func (g *seqIDGen) NewID() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	return fmt.Sprintf("id-%04d", g.next), nil
}

func timePtr(t time.Time) *time.Time { return &t }

func testLeague(id, ownerID string, numberOfTeams int) league.League {
	now := time.Now().UTC()
	return league.League{
		ID:               id,
		OwnerID:          ownerID,
		Name:             "Sunday League",
		Format:           league.FormatRoundRobin,
		Visibility:       league.VisibilityPublic,
		TournamentStatus: league.StatusOngoing,
		NumberOfTeams:    numberOfTeams,
		StartDate:        timePtr(now.AddDate(0, 0, -7)),
		EndDate:          timePtr(now.AddDate(0, 0, 30)),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

func testTeam(id, leagueID, name, short string) team.Team {
	now := time.Now().UTC()
	return team.Team{
		ID:        id,
		LeagueID:  leagueID,
		Name:      name,
		ShortName: short,
		Form:      []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func testMatch(id, leagueID, homeID, awayID string, round int) match.Match {
	now := time.Now().UTC()
	return match.Match{
		ID:          id,
		LeagueID:    leagueID,
		HomeTeamID:  homeID,
		AwayTeamID:  awayID,
		Round:       round,
		MatchNumber: 1,
		Status:      match.StatusScheduled,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
