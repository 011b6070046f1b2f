package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleague/fleague-api/internal/domain/match"
	"github.com/fleague/fleague-api/internal/domain/team"
	"github.com/fleague/fleague-api/internal/platform/logging"
)

func newResultFixture() (*ResultService, *stubLeagueRepo, *stubTeamRepo, *stubMatchRepo) {
	leagueRepo := newStubLeagueRepo(testLeague("league-1", "owner-1", 2))
	teamRepo := newStubTeamRepo(
		testTeam("team-home", "league-1", "Alpha", "ALP"),
		testTeam("team-away", "league-1", "Bravo", "BRV"),
	)
	matchRepo := newStubMatchRepo(testMatch("match-1", "league-1", "team-home", "team-away", 1))
	svc := NewResultService(leagueRepo, teamRepo, matchRepo, logging.NewNop())
	return svc, leagueRepo, teamRepo, matchRepo
}

func TestProcessResultAppliesStatsToBothTeams(t *testing.T) {
	t.Parallel()

	svc, _, teamRepo, _ := newResultFixture()
	ctx := context.Background()

	updated, err := svc.ProcessResult(ctx, "owner-1", "league-1", "match-1", ResultInput{HomeScore: 3, AwayScore: 1})
	require.NoError(t, err)

	assert.Equal(t, match.StatusFinished, updated.Status)
	assert.Equal(t, match.Score{Home: 3, Away: 1}, updated.Score)
	require.NotNil(t, updated.PlayedDate)

	home, _, _ := teamRepo.GetByID(ctx, "team-home")
	away, _, _ := teamRepo.GetByID(ctx, "team-away")

	assert.Equal(t, team.Stats{Played: 1, Won: 1, GoalsFor: 3, GoalsAgainst: 1, GoalDifference: 2, Points: 3}, home.Stats)
	assert.Equal(t, []string{"W"}, home.Form)
	assert.Equal(t, team.Stats{Played: 1, Lost: 1, GoalsFor: 1, GoalsAgainst: 3, GoalDifference: -2}, away.Stats)
	assert.Equal(t, []string{"L"}, away.Form)
}

func TestProcessResultCorrectionRevertsBeforeApplying(t *testing.T) {
	t.Parallel()

	svc, _, teamRepo, _ := newResultFixture()
	ctx := context.Background()

	_, err := svc.ProcessResult(ctx, "owner-1", "league-1", "match-1", ResultInput{HomeScore: 2, AwayScore: 0})
	require.NoError(t, err)

	// Correcting the score must leave the stats as if 1-1 had been
	// entered the first time.
	_, err = svc.ProcessResult(ctx, "owner-1", "league-1", "match-1", ResultInput{HomeScore: 1, AwayScore: 1})
	require.NoError(t, err)

	home, _, _ := teamRepo.GetByID(ctx, "team-home")
	away, _, _ := teamRepo.GetByID(ctx, "team-away")

	assert.Equal(t, team.Stats{Played: 1, Drawn: 1, GoalsFor: 1, GoalsAgainst: 1, Points: 1}, home.Stats)
	assert.Equal(t, team.Stats{Played: 1, Drawn: 1, GoalsFor: 1, GoalsAgainst: 1, Points: 1}, away.Stats)
	assert.Equal(t, []string{"D"}, home.Form)
	assert.Equal(t, []string{"D"}, away.Form)
}

func TestProcessResultRejectsCancelledMatch(t *testing.T) {
	t.Parallel()

	svc, _, _, matchRepo := newResultFixture()
	ctx := context.Background()

	cancelled, _, _ := matchRepo.GetByID(ctx, "match-1")
	cancelled.Status = match.StatusCancelled
	require.NoError(t, matchRepo.Update(ctx, cancelled))

	_, err := svc.ProcessResult(ctx, "owner-1", "league-1", "match-1", ResultInput{HomeScore: 1, AwayScore: 0})
	assert.ErrorIs(t, err, ErrStateConflict)
}

func TestProcessResultRejectsNegativeScores(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newResultFixture()

	_, err := svc.ProcessResult(context.Background(), "owner-1", "league-1", "match-1", ResultInput{HomeScore: -1, AwayScore: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestProcessResultRequiresOwner(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newResultFixture()

	_, err := svc.ProcessResult(context.Background(), "somebody-else", "league-1", "match-1", ResultInput{HomeScore: 1, AwayScore: 0})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestResetMatchRevertsBothTeams(t *testing.T) {
	t.Parallel()

	svc, _, teamRepo, _ := newResultFixture()
	ctx := context.Background()

	_, err := svc.ProcessResult(ctx, "owner-1", "league-1", "match-1", ResultInput{HomeScore: 4, AwayScore: 2})
	require.NoError(t, err)

	reset, err := svc.ResetMatch(ctx, "owner-1", "league-1", "match-1")
	require.NoError(t, err)

	assert.Equal(t, match.StatusScheduled, reset.Status)
	assert.Equal(t, match.Score{}, reset.Score)
	assert.Nil(t, reset.PlayedDate)
	assert.Empty(t, reset.Highlights)
	assert.Empty(t, reset.Photos)

	home, _, _ := teamRepo.GetByID(ctx, "team-home")
	away, _, _ := teamRepo.GetByID(ctx, "team-away")
	assert.Equal(t, team.Stats{}, home.Stats)
	assert.Equal(t, team.Stats{}, away.Stats)
	assert.Empty(t, home.Form)
	assert.Empty(t, away.Form)
}

func TestResetMatchRejectsUnfinishedMatch(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newResultFixture()

	_, err := svc.ResetMatch(context.Background(), "owner-1", "league-1", "match-1")
	assert.ErrorIs(t, err, ErrStateConflict)
}

func TestResetLeagueClearsStatsAndSchedule(t *testing.T) {
	t.Parallel()

	svc, _, teamRepo, matchRepo := newResultFixture()
	ctx := context.Background()

	_, err := svc.ProcessResult(ctx, "owner-1", "league-1", "match-1", ResultInput{HomeScore: 2, AwayScore: 1})
	require.NoError(t, err)

	require.NoError(t, svc.ResetLeague(ctx, "owner-1", "league-1"))

	home, _, _ := teamRepo.GetByID(ctx, "team-home")
	assert.Equal(t, team.Stats{}, home.Stats)
	assert.Empty(t, home.Form)

	reset, _, _ := matchRepo.GetByID(ctx, "match-1")
	assert.Equal(t, match.StatusScheduled, reset.Status)
	assert.Equal(t, match.Score{}, reset.Score)
}

func TestRebuildFormsUsesRecentFinishedMatches(t *testing.T) {
	t.Parallel()

	svc, _, teamRepo, matchRepo := newResultFixture()
	ctx := context.Background()

	// Seven finished rounds; the rebuilt form keeps only the last five.
	for round := 1; round <= 7; round++ {
		m := testMatch(("rebuild-"+string(rune('0'+round))), "league-1", "team-home", "team-away", round)
		require.NoError(t, matchRepo.InsertMany(ctx, []match.Match{m}))

		homeScore := 1
		awayScore := 0
		if round%2 == 0 {
			homeScore, awayScore = 0, 1
		}
		_, err := svc.ProcessResult(ctx, "owner-1", "league-1", m.ID, ResultInput{HomeScore: homeScore, AwayScore: awayScore})
		require.NoError(t, err)
	}

	require.NoError(t, svc.RebuildForms(ctx, "owner-1", "league-1"))

	home, _, _ := teamRepo.GetByID(ctx, "team-home")
	assert.Len(t, home.Form, team.FormSize)
	// Most recent result first: round 7 was a home win.
	assert.Equal(t, "W", home.Form[0])
}
