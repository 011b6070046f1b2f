package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/fleague/fleague-api/internal/domain/league"
	"github.com/fleague/fleague-api/internal/domain/match"
	"github.com/fleague/fleague-api/internal/domain/schedule"
	"github.com/fleague/fleague-api/internal/domain/team"
	idgen "github.com/fleague/fleague-api/internal/platform/id"
	"github.com/fleague/fleague-api/internal/platform/logging"
)

type ScheduleService struct {
	leagueRepo league.Repository
	teamRepo   team.Repository
	matchRepo  match.Repository
	idGen      idgen.Generator
	logger     *logging.Logger
}

func NewScheduleService(
	leagueRepo league.Repository,
	teamRepo team.Repository,
	matchRepo match.Repository,
	idGen idgen.Generator,
	logger *logging.Logger,
) *ScheduleService {
	if logger == nil {
		logger = logging.Default()
	}

	return &ScheduleService{
		leagueRepo: leagueRepo,
		teamRepo:   teamRepo,
		matchRepo:  matchRepo,
		idGen:      idGen,
		logger:     logger,
	}
}

// Generate builds the league's full fixture list and persists it. A league
// that already has matches keeps them; generation never runs twice.
func (s *ScheduleService) Generate(ctx context.Context, ownerID, leagueID string) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.Generate")
	defer span.End()

	item, err := loadLeague(ctx, s.leagueRepo, leagueID)
	if err != nil {
		return nil, err
	}
	if err := requireLeagueOwner(item, ownerID); err != nil {
		return nil, err
	}

	count, err := s.matchRepo.CountByLeague(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("count league matches: %w", err)
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: the league already has a schedule", ErrInvalidInput)
	}

	teams, err := s.teamRepo.ListByLeague(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("list league teams: %w", err)
	}
	if err := schedule.ValidateGeneration(item.Format, teams, item.NumberOfTeams); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var fixtures []schedule.Fixture
	switch item.Format {
	case league.FormatGroupStage:
		fixtures, err = schedule.GenerateGroupStage(teams)
	default:
		fixtures, err = schedule.GenerateRoundRobin(teams)
	}
	if err != nil {
		return nil, fmt.Errorf("generate schedule: %w", err)
	}

	now := time.Now().UTC()
	matches := make([]match.Match, 0, len(fixtures))
	for _, fixture := range fixtures {
		matchID, idErr := s.idGen.NewID()
		if idErr != nil {
			return nil, fmt.Errorf("generate match id: %w", idErr)
		}
		matches = append(matches, match.Match{
			ID:          matchID,
			LeagueID:    leagueID,
			HomeTeamID:  fixture.HomeTeamID,
			AwayTeamID:  fixture.AwayTeamID,
			Round:       fixture.Round,
			MatchNumber: fixture.MatchNumber,
			Group:       fixture.Group,
			Status:      match.StatusScheduled,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}

	if err := s.matchRepo.InsertMany(ctx, matches); err != nil {
		return nil, fmt.Errorf("insert matches: %w", err)
	}

	s.logger.InfoContext(ctx, "schedule generated",
		"league_id", leagueID,
		"format", string(item.Format),
		"matches", len(matches),
	)

	return matches, nil
}

// Delete drops the league's entire schedule. Leagues with finished matches
// keep their schedule; results must be reset first.
func (s *ScheduleService) Delete(ctx context.Context, ownerID, leagueID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.Delete")
	defer span.End()

	item, err := loadLeague(ctx, s.leagueRepo, leagueID)
	if err != nil {
		return err
	}
	if err := requireLeagueOwner(item, ownerID); err != nil {
		return err
	}

	finished, err := s.matchRepo.ListByLeague(ctx, leagueID, match.Filter{Status: match.StatusFinished})
	if err != nil {
		return fmt.Errorf("list finished matches: %w", err)
	}
	if len(finished) > 0 {
		return fmt.Errorf("%w: the schedule has finished matches; reset the league results first", ErrStateConflict)
	}

	if err := s.matchRepo.DeleteByLeague(ctx, leagueID); err != nil {
		return fmt.Errorf("delete league matches: %w", err)
	}

	s.logger.InfoContext(ctx, "schedule deleted", "league_id", leagueID)

	return nil
}
