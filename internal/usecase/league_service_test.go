package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleague/fleague-api/internal/domain/league"
	"github.com/fleague/fleague-api/internal/domain/match"
	"github.com/fleague/fleague-api/internal/platform/logging"
)

func newLeagueFixture(leagues ...league.League) (*LeagueService, *stubLeagueRepo, *stubTeamRepo, *stubMatchRepo) {
	leagueRepo := newStubLeagueRepo(leagues...)
	teamRepo := newStubTeamRepo()
	matchRepo := newStubMatchRepo()
	svc := NewLeagueService(leagueRepo, teamRepo, matchRepo, &seqIDGen{}, logging.NewNop())
	return svc, leagueRepo, teamRepo, matchRepo
}

func TestCreateLeagueDerivesStatusAndToken(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newLeagueFixture()
	now := time.Now().UTC()

	created, err := svc.Create(context.Background(), "owner-1", CreateLeagueInput{
		Name:          "Sunday League",
		Format:        league.FormatRoundRobin,
		Visibility:    league.VisibilityPrivate,
		NumberOfTeams: 6,
		StartDate:     timePtr(now.AddDate(0, 0, 10)),
		EndDate:       timePtr(now.AddDate(0, 0, 40)),
	})
	require.NoError(t, err)

	assert.Equal(t, "owner-1", created.OwnerID)
	assert.Equal(t, league.StatusUpcoming, created.TournamentStatus)
	assert.NotEmpty(t, created.AccessToken, "private leagues get a share token")
}

func TestCreateLeagueRejectsBadTeamCount(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newLeagueFixture()

	_, err := svc.Create(context.Background(), "owner-1", CreateLeagueInput{
		Name:          "Tiny League",
		Format:        league.FormatRoundRobin,
		NumberOfTeams: 1,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestListReturnsOnlyPublicLeagues(t *testing.T) {
	t.Parallel()

	private := testLeague("league-private", "owner-1", 4)
	private.Visibility = league.VisibilityPrivate
	private.AccessToken = "tok"
	svc, _, _, _ := newLeagueFixture(testLeague("league-public", "owner-1", 4), private)

	items, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "league-public", items[0].ID)
}

func TestGetSyncsStaleStatus(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	stale := testLeague("league-1", "owner-1", 4)
	stale.TournamentStatus = league.StatusUpcoming
	stale.StartDate = timePtr(now.AddDate(0, 0, -1))
	stale.EndDate = timePtr(now.AddDate(0, 0, 10))

	svc, leagueRepo, _, _ := newLeagueFixture(stale)

	got, err := svc.Get(context.Background(), "league-1", Access{})
	require.NoError(t, err)
	assert.Equal(t, league.StatusOngoing, got.TournamentStatus)

	persisted, _, _ := leagueRepo.GetByID(context.Background(), "league-1")
	assert.Equal(t, league.StatusOngoing, persisted.TournamentStatus)
}

func TestUpdateCompletedLeagueRejected(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	done := testLeague("league-1", "owner-1", 4)
	done.TournamentStatus = league.StatusCompleted
	done.StartDate = timePtr(now.AddDate(0, 0, -30))
	done.EndDate = timePtr(now.AddDate(0, 0, -2))

	svc, _, _, _ := newLeagueFixture(done)

	name := "Renamed"
	_, err := svc.Update(context.Background(), "owner-1", "league-1", UpdateLeagueInput{Name: &name})
	assert.ErrorIs(t, err, ErrStateConflict)
}

func TestUpdateOngoingLeagueRejectsPastStartDate(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newLeagueFixture(testLeague("league-1", "owner-1", 4))

	_, err := svc.Update(context.Background(), "owner-1", "league-1", UpdateLeagueInput{
		StartDate: timePtr(time.Now().UTC().AddDate(0, 0, -3)),
	})
	assert.ErrorIs(t, err, ErrStateConflict)
}

func TestUpdateRequiresOwner(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newLeagueFixture(testLeague("league-1", "owner-1", 4))

	name := "Renamed"
	_, err := svc.Update(context.Background(), "intruder", "league-1", UpdateLeagueInput{Name: &name})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestDeleteOngoingLeagueRejected(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newLeagueFixture(testLeague("league-1", "owner-1", 4))

	err := svc.Delete(context.Background(), "owner-1", "league-1")
	assert.ErrorIs(t, err, ErrStateConflict)
}

func TestDeleteCascadesToTeamsAndMatches(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	upcoming := testLeague("league-1", "owner-1", 4)
	upcoming.TournamentStatus = league.StatusUpcoming
	upcoming.StartDate = timePtr(now.AddDate(0, 0, 5))
	upcoming.EndDate = timePtr(now.AddDate(0, 0, 30))

	svc, leagueRepo, teamRepo, matchRepo := newLeagueFixture(upcoming)
	ctx := context.Background()

	require.NoError(t, teamRepo.Insert(ctx, testTeam("team-a", "league-1", "Alpha", "ALP")))
	require.NoError(t, matchRepo.InsertMany(ctx, []match.Match{
		testMatch("match-1", "league-1", "team-a", "team-b", 1),
	}))
	require.NoError(t, svc.Delete(ctx, "owner-1", "league-1"))

	_, exists, _ := leagueRepo.GetByID(ctx, "league-1")
	assert.False(t, exists)
	teams, _ := teamRepo.ListByLeague(ctx, "league-1")
	assert.Empty(t, teams)
	count, _ := matchRepo.CountByLeague(ctx, "league-1")
	assert.Equal(t, 0, count)
}

func TestGetUnknownLeague(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newLeagueFixture()

	_, err := svc.Get(context.Background(), "nope", Access{})
	assert.ErrorIs(t, err, ErrNotFound)
}
