package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/fleague/fleague-api/internal/domain/league"
	"github.com/fleague/fleague-api/internal/domain/match"
	"github.com/fleague/fleague-api/internal/domain/team"
	"github.com/fleague/fleague-api/internal/platform/logging"
	"github.com/fleague/fleague-api/internal/platform/resilience"
)

// ResultService processes match results and keeps the two teams' cumulative
// statistics in sync with them. Work on a single match is serialized with a
// per-match mutex so a correction never races the result it corrects.
type ResultService struct {
	leagueRepo league.Repository
	teamRepo   team.Repository
	matchRepo  match.Repository
	locks      resilience.KeyedMutex
	logger     *logging.Logger
}

func NewResultService(
	leagueRepo league.Repository,
	teamRepo team.Repository,
	matchRepo match.Repository,
	logger *logging.Logger,
) *ResultService {
	if logger == nil {
		logger = logging.Default()
	}

	return &ResultService{
		leagueRepo: leagueRepo,
		teamRepo:   teamRepo,
		matchRepo:  matchRepo,
		logger:     logger,
	}
}

type ResultInput struct {
	HomeScore int
	AwayScore int
}

// ProcessResult records a final score for a match and marks it finished.
// Submitting a new score for an already-finished match first reverts the old
// score's effect on both teams, then applies the new one, so a correction
// leaves the statistics exactly as if the right score had been entered the
// first time.
func (s *ResultService) ProcessResult(ctx context.Context, ownerID, leagueID, matchID string, input ResultInput) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResultService.ProcessResult")
	defer span.End()

	if input.HomeScore < 0 || input.AwayScore < 0 {
		return match.Match{}, fmt.Errorf("%w: scores cannot be negative", ErrInvalidInput)
	}

	item, err := loadLeague(ctx, s.leagueRepo, leagueID)
	if err != nil {
		return match.Match{}, err
	}
	if err := requireLeagueOwner(item, ownerID); err != nil {
		return match.Match{}, err
	}

	s.locks.Lock(matchID)
	defer s.locks.Unlock(matchID)

	found, err := loadMatch(ctx, s.matchRepo, leagueID, matchID)
	if err != nil {
		return match.Match{}, err
	}
	if found.Status == match.StatusCancelled {
		return match.Match{}, fmt.Errorf("%w: a cancelled match cannot receive a result", ErrStateConflict)
	}

	home, away, err := s.loadMatchTeams(ctx, found)
	if err != nil {
		return match.Match{}, err
	}

	if found.Status == match.StatusFinished {
		oldHome, oldAway := team.DetermineOutcome(found.Score.Home, found.Score.Away)
		home.RevertResult(found.Score.Home, found.Score.Away, oldHome)
		away.RevertResult(found.Score.Away, found.Score.Home, oldAway)
	}

	newHome, newAway := team.DetermineOutcome(input.HomeScore, input.AwayScore)
	home.ApplyResult(input.HomeScore, input.AwayScore, newHome)
	away.ApplyResult(input.AwayScore, input.HomeScore, newAway)

	now := time.Now().UTC()
	home.UpdatedAt = now
	away.UpdatedAt = now

	// Teams first; if the match write fails the result can be resubmitted
	// and the finished-state revert restores consistency.
	if err := s.teamRepo.UpdateMany(ctx, []team.Team{home, away}); err != nil {
		return match.Match{}, fmt.Errorf("update team stats: %w", err)
	}

	found.Score = match.Score{Home: input.HomeScore, Away: input.AwayScore}
	found.Status = match.StatusFinished
	found.PlayedDate = &now
	found.UpdatedAt = now

	if err := s.matchRepo.Update(ctx, found); err != nil {
		return match.Match{}, fmt.Errorf("update match: %w", err)
	}

	s.logger.InfoContext(ctx, "match result processed",
		"league_id", leagueID,
		"match_id", matchID,
		"home_score", input.HomeScore,
		"away_score", input.AwayScore,
	)

	return found, nil
}

// ResetMatch undoes a finished match: both teams' statistics are reverted
// and the match returns to the scheduled state with its score, played date
// and media cleared.
func (s *ResultService) ResetMatch(ctx context.Context, ownerID, leagueID, matchID string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResultService.ResetMatch")
	defer span.End()

	item, err := loadLeague(ctx, s.leagueRepo, leagueID)
	if err != nil {
		return match.Match{}, err
	}
	if err := requireLeagueOwner(item, ownerID); err != nil {
		return match.Match{}, err
	}

	s.locks.Lock(matchID)
	defer s.locks.Unlock(matchID)

	found, err := loadMatch(ctx, s.matchRepo, leagueID, matchID)
	if err != nil {
		return match.Match{}, err
	}
	if found.Status != match.StatusFinished {
		return match.Match{}, fmt.Errorf("%w: only a finished match can be reset", ErrStateConflict)
	}

	home, away, err := s.loadMatchTeams(ctx, found)
	if err != nil {
		return match.Match{}, err
	}

	oldHome, oldAway := team.DetermineOutcome(found.Score.Home, found.Score.Away)
	home.RevertResult(found.Score.Home, found.Score.Away, oldHome)
	away.RevertResult(found.Score.Away, found.Score.Home, oldAway)

	now := time.Now().UTC()
	home.UpdatedAt = now
	away.UpdatedAt = now

	if err := s.teamRepo.UpdateMany(ctx, []team.Team{home, away}); err != nil {
		return match.Match{}, fmt.Errorf("update team stats: %w", err)
	}

	found.Score = match.Score{}
	found.Status = match.StatusScheduled
	found.PlayedDate = nil
	found.VideoURL = ""
	found.Highlights = nil
	found.Photos = nil
	found.UpdatedAt = now

	if err := s.matchRepo.Update(ctx, found); err != nil {
		return match.Match{}, fmt.Errorf("update match: %w", err)
	}

	s.logger.InfoContext(ctx, "match result reset", "league_id", leagueID, "match_id", matchID)

	return found, nil
}

// ResetLeague zeroes every team's statistics and puts the whole schedule
// back into the scheduled state.
func (s *ResultService) ResetLeague(ctx context.Context, ownerID, leagueID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResultService.ResetLeague")
	defer span.End()

	item, err := loadLeague(ctx, s.leagueRepo, leagueID)
	if err != nil {
		return err
	}
	if err := requireLeagueOwner(item, ownerID); err != nil {
		return err
	}

	if err := s.teamRepo.ResetStatsByLeague(ctx, leagueID); err != nil {
		return fmt.Errorf("reset team stats: %w", err)
	}
	if err := s.matchRepo.ResetByLeague(ctx, leagueID); err != nil {
		return fmt.Errorf("reset matches: %w", err)
	}

	s.logger.InfoContext(ctx, "league results reset", "league_id", leagueID)

	return nil
}

// RebuildForms recomputes every team's form trail from its five most
// recently finished matches. Maintenance entry point for stores whose form
// data drifted (e.g. after a manual data fix).
func (s *ResultService) RebuildForms(ctx context.Context, ownerID, leagueID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResultService.RebuildForms")
	defer span.End()

	item, err := loadLeague(ctx, s.leagueRepo, leagueID)
	if err != nil {
		return err
	}
	if err := requireLeagueOwner(item, ownerID); err != nil {
		return err
	}

	teams, err := s.teamRepo.ListByLeague(ctx, leagueID)
	if err != nil {
		return fmt.Errorf("list league teams: %w", err)
	}

	now := time.Now().UTC()
	for i := range teams {
		recent, listErr := s.matchRepo.ListByTeam(ctx, teams[i].ID, match.StatusFinished, team.FormSize)
		if listErr != nil {
			return fmt.Errorf("list finished matches for team %s: %w", teams[i].ID, listErr)
		}

		form := make([]string, 0, len(recent))
		for _, played := range recent {
			homeOutcome, awayOutcome := team.DetermineOutcome(played.Score.Home, played.Score.Away)
			if played.HomeTeamID == teams[i].ID {
				form = append(form, homeOutcome.Marker())
			} else {
				form = append(form, awayOutcome.Marker())
			}
		}

		teams[i].Form = form
		teams[i].UpdatedAt = now
	}

	if err := s.teamRepo.UpdateMany(ctx, teams); err != nil {
		return fmt.Errorf("update team forms: %w", err)
	}

	s.logger.InfoContext(ctx, "team forms rebuilt", "league_id", leagueID, "teams", len(teams))

	return nil
}

func (s *ResultService) loadMatchTeams(ctx context.Context, m match.Match) (home, away team.Team, err error) {
	home, exists, err := s.teamRepo.GetByID(ctx, m.HomeTeamID)
	if err != nil {
		return team.Team{}, team.Team{}, fmt.Errorf("get home team: %w", err)
	}
	if !exists {
		return team.Team{}, team.Team{}, fmt.Errorf("%w: team=%s", ErrNotFound, m.HomeTeamID)
	}

	away, exists, err = s.teamRepo.GetByID(ctx, m.AwayTeamID)
	if err != nil {
		return team.Team{}, team.Team{}, fmt.Errorf("get away team: %w", err)
	}
	if !exists {
		return team.Team{}, team.Team{}, fmt.Errorf("%w: team=%s", ErrNotFound, m.AwayTeamID)
	}

	return home, away, nil
}
