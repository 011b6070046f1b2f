package usecase

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/sourcegraph/conc"

	"github.com/fleague/fleague-api/internal/domain/league"
	"github.com/fleague/fleague-api/internal/domain/match"
	"github.com/fleague/fleague-api/internal/domain/standings"
	"github.com/fleague/fleague-api/internal/domain/team"
	"github.com/fleague/fleague-api/internal/platform/logging"
)

// Leaderboard sizes for the league summary.
const summaryLeaderboardLimit = 5

type StandingsService struct {
	leagueRepo league.Repository
	teamRepo   team.Repository
	matchRepo  match.Repository
	logger     *logging.Logger
}

func NewStandingsService(
	leagueRepo league.Repository,
	teamRepo team.Repository,
	matchRepo match.Repository,
	logger *logging.Logger,
) *StandingsService {
	if logger == nil {
		logger = logging.Default()
	}

	return &StandingsService{
		leagueRepo: leagueRepo,
		teamRepo:   teamRepo,
		matchRepo:  matchRepo,
		logger:     logger,
	}
}

// Table returns the league-wide standings table.
func (s *StandingsService) Table(ctx context.Context, leagueID string, access Access) ([]standings.Row, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.Table")
	defer span.End()

	teams, err := s.authorizedTeams(ctx, leagueID, access)
	if err != nil {
		return nil, err
	}

	return standings.Format(teams), nil
}

// GroupTable returns the standings of one group of a group-stage league.
func (s *StandingsService) GroupTable(ctx context.Context, leagueID, group string, access Access) ([]standings.Row, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.GroupTable")
	defer span.End()

	item, err := loadLeague(ctx, s.leagueRepo, leagueID)
	if err != nil {
		return nil, err
	}
	if err := authorizeLeagueView(item, access); err != nil {
		return nil, err
	}
	if item.Format != league.FormatGroupStage {
		return nil, fmt.Errorf("%w: group tables exist only for group-stage leagues", ErrInvalidInput)
	}

	teams, err := s.teamRepo.ListByLeagueAndGroup(ctx, leagueID, group)
	if err != nil {
		return nil, fmt.Errorf("list group teams: %w", err)
	}
	if len(teams) == 0 {
		return nil, fmt.Errorf("%w: group=%s", ErrNotFound, group)
	}

	return standings.Format(teams), nil
}

// GroupTables holds one group's table within the full group-stage view.
type GroupTables struct {
	Group string
	Rows  []standings.Row
}

// AllGroupTables returns every group's table, in group label order.
func (s *StandingsService) AllGroupTables(ctx context.Context, leagueID string, access Access) ([]GroupTables, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.AllGroupTables")
	defer span.End()

	item, err := loadLeague(ctx, s.leagueRepo, leagueID)
	if err != nil {
		return nil, err
	}
	if err := authorizeLeagueView(item, access); err != nil {
		return nil, err
	}
	if item.Format != league.FormatGroupStage {
		return nil, fmt.Errorf("%w: group tables exist only for group-stage leagues", ErrInvalidInput)
	}

	teams, err := s.teamRepo.ListByLeague(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("list league teams: %w", err)
	}

	grouped := make(map[string][]team.Team)
	for _, t := range teams {
		grouped[t.Group] = append(grouped[t.Group], t)
	}

	groups := make([]string, 0, len(grouped))
	for name := range grouped {
		groups = append(groups, name)
	}
	sort.Strings(groups)

	out := make([]GroupTables, 0, len(groups))
	for _, name := range groups {
		out = append(out, GroupTables{
			Group: name,
			Rows:  standings.Format(grouped[name]),
		})
	}

	return out, nil
}

// Summary aggregates the league's headline numbers and leaderboards.
type Summary struct {
	LeagueID        string
	Status          league.Status
	TeamCount       int
	MatchesPlayed   int
	MatchesTotal    int
	TotalGoals      int
	AvgGoalsPerGame float64
	TopScorers      []standings.Row
	BestDefense     []standings.Row
	BestForm        []standings.Row
}

// Summary builds the league overview. The three leaderboards are independent
// sorts over the same roster, so they run concurrently.
func (s *StandingsService) Summary(ctx context.Context, leagueID string, access Access) (Summary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.Summary")
	defer span.End()

	item, err := loadLeague(ctx, s.leagueRepo, leagueID)
	if err != nil {
		return Summary{}, err
	}
	if err := authorizeLeagueView(item, access); err != nil {
		return Summary{}, err
	}

	teams, err := s.teamRepo.ListByLeague(ctx, leagueID)
	if err != nil {
		return Summary{}, fmt.Errorf("list league teams: %w", err)
	}
	matches, err := s.matchRepo.ListByLeague(ctx, leagueID, match.Filter{})
	if err != nil {
		return Summary{}, fmt.Errorf("list league matches: %w", err)
	}

	summary := Summary{
		LeagueID:     leagueID,
		Status:       item.TournamentStatus,
		TeamCount:    len(teams),
		MatchesTotal: len(matches),
	}
	for _, m := range matches {
		if m.Status == match.StatusFinished {
			summary.MatchesPlayed++
			summary.TotalGoals += m.Score.Home + m.Score.Away
		}
	}
	if summary.MatchesPlayed > 0 {
		avg := float64(summary.TotalGoals) / float64(summary.MatchesPlayed)
		summary.AvgGoalsPerGame = math.Round(avg*100) / 100
	}

	var wg conc.WaitGroup
	wg.Go(func() {
		summary.TopScorers = standings.TopScorers(teams, summaryLeaderboardLimit)
	})
	wg.Go(func() {
		summary.BestDefense = standings.BestDefense(teams, summaryLeaderboardLimit)
	})
	wg.Go(func() {
		summary.BestForm = standings.BestForm(teams, summaryLeaderboardLimit)
	})
	wg.Wait()

	return summary, nil
}

// SideRecord is a team's record restricted to home or away matches.
type SideRecord struct {
	Played       int
	Won          int
	Drawn        int
	Lost         int
	GoalsFor     int
	GoalsAgainst int
}

// TeamDetail is the per-team statistics view: the cumulative record, its
// home/away split and the most recent finished matches.
type TeamDetail struct {
	Team          team.Team
	Home          SideRecord
	Away          SideRecord
	RecentMatches []match.Match
}

const teamDetailRecentLimit = 10

func (s *StandingsService) TeamDetail(ctx context.Context, leagueID, teamID string, access Access) (TeamDetail, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.TeamDetail")
	defer span.End()

	item, err := loadLeague(ctx, s.leagueRepo, leagueID)
	if err != nil {
		return TeamDetail{}, err
	}
	if err := authorizeLeagueView(item, access); err != nil {
		return TeamDetail{}, err
	}

	found, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return TeamDetail{}, fmt.Errorf("get team: %w", err)
	}
	if !exists || found.LeagueID != leagueID {
		return TeamDetail{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}

	finished, err := s.matchRepo.ListByTeam(ctx, teamID, match.StatusFinished, 0)
	if err != nil {
		return TeamDetail{}, fmt.Errorf("list finished matches: %w", err)
	}

	detail := TeamDetail{Team: found}
	for _, played := range finished {
		if played.HomeTeamID == teamID {
			tally(&detail.Home, played.Score.Home, played.Score.Away)
		} else {
			tally(&detail.Away, played.Score.Away, played.Score.Home)
		}
	}

	if len(finished) > teamDetailRecentLimit {
		finished = finished[:teamDetailRecentLimit]
	}
	detail.RecentMatches = finished

	return detail, nil
}

func tally(record *SideRecord, goalsFor, goalsAgainst int) {
	record.Played++
	record.GoalsFor += goalsFor
	record.GoalsAgainst += goalsAgainst
	switch {
	case goalsFor > goalsAgainst:
		record.Won++
	case goalsFor < goalsAgainst:
		record.Lost++
	default:
		record.Drawn++
	}
}

func (s *StandingsService) authorizedTeams(ctx context.Context, leagueID string, access Access) ([]team.Team, error) {
	item, err := loadLeague(ctx, s.leagueRepo, leagueID)
	if err != nil {
		return nil, err
	}
	if err := authorizeLeagueView(item, access); err != nil {
		return nil, err
	}

	teams, err := s.teamRepo.ListByLeague(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("list league teams: %w", err)
	}

	return teams, nil
}
