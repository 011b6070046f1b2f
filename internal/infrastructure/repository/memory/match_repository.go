package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/fleague/fleague-api/internal/domain/match"
)

type MatchRepository struct {
	mu      sync.RWMutex
	matches map[string]match.Match
}

func NewMatchRepository(matches []match.Match) *MatchRepository {
	items := make(map[string]match.Match, len(matches))
	for _, item := range matches {
		items[item.ID] = item
	}

	return &MatchRepository{matches: items}
}

func (r *MatchRepository) GetByID(_ context.Context, matchID string) (match.Match, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.matches[matchID]
	if !ok {
		return match.Match{}, false, nil
	}

	return cloneMatch(item), true, nil
}

func (r *MatchRepository) ListByLeague(_ context.Context, leagueID string, filter match.Filter) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Match, 0)
	for _, item := range r.matches {
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
		out = append(out, cloneMatch(item))
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Group != out[j].Group {
			return out[i].Group < out[j].Group
		}
		if out[i].Round != out[j].Round {
			return out[i].Round < out[j].Round
		}
		return out[i].MatchNumber < out[j].MatchNumber
	})

	return out, nil
}

func (r *MatchRepository) ListByTeam(_ context.Context, teamID, status string, limit int) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Match, 0)
	for _, item := range r.matches {
		if item.HomeTeamID != teamID && item.AwayTeamID != teamID {
			continue
		}
		if status != "" && item.Status != status {
			continue
		}
		out = append(out, cloneMatch(item))
	}

	// Most recently played first; unplayed matches sink to the end.
	sort.Slice(out, func(i, j int) bool {
		pi, pj := out[i].PlayedDate, out[j].PlayedDate
		switch {
		case pi == nil && pj == nil:
			return out[i].Round > out[j].Round
		case pi == nil:
			return false
		case pj == nil:
			return true
		default:
			return pi.After(*pj)
		}
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}

	return out, nil
}

func (r *MatchRepository) CountByLeague(_ context.Context, leagueID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, item := range r.matches {
		if item.LeagueID == leagueID {
			count++
		}
	}

	return count, nil
}

func (r *MatchRepository) InsertMany(_ context.Context, items []match.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range items {
		if _, exists := r.matches[item.ID]; exists {
			return fmt.Errorf("match %s already exists", item.ID)
		}
	}
	for _, item := range items {
		r.matches[item.ID] = cloneMatch(item)
	}

	return nil
}

func (r *MatchRepository) Update(_ context.Context, item match.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.matches[item.ID]; !exists {
		return fmt.Errorf("match %s does not exist", item.ID)
	}
	r.matches[item.ID] = cloneMatch(item)

	return nil
}

func (r *MatchRepository) DeleteByLeague(_ context.Context, leagueID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, item := range r.matches {
		if item.LeagueID == leagueID {
			delete(r.matches, id)
		}
	}

	return nil
}

func (r *MatchRepository) ResetByLeague(_ context.Context, leagueID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, item := range r.matches {
		if item.LeagueID != leagueID {
			continue
		}
		item.Score = match.Score{}
		item.Status = match.StatusScheduled
		item.PlayedDate = nil
		item.VideoURL = ""
		item.Highlights = nil
		item.Photos = nil
		r.matches[id] = item
	}

	return nil
}

func cloneMatch(item match.Match) match.Match {
	item.Highlights = append([]match.Highlight(nil), item.Highlights...)
	item.Photos = append([]string(nil), item.Photos...)
	return item
}
