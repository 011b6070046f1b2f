package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleague/fleague-api/internal/domain/league"
	"github.com/fleague/fleague-api/internal/platform/logging"
)

func newTeamFixture(leagues ...league.League) (*TeamService, *stubLeagueRepo, *stubTeamRepo) {
	leagueRepo := newStubLeagueRepo(leagues...)
	teamRepo := newStubTeamRepo()
	svc := NewTeamService(leagueRepo, teamRepo, &seqIDGen{}, logging.NewNop())
	return svc, leagueRepo, teamRepo
}

func TestAddTeamNormalizesShortName(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTeamFixture(testLeague("league-1", "owner-1", 4))

	added, err := svc.Add(context.Background(), "owner-1", "league-1", AddTeamInput{
		Name:      "  Alpha FC ",
		ShortName: " alp ",
	})
	require.NoError(t, err)

	assert.Equal(t, "Alpha FC", added.Name)
	assert.Equal(t, "ALP", added.ShortName)
	assert.Empty(t, added.Stats.Points)
	assert.Empty(t, added.Form)
}

func TestAddTeamRejectsDuplicateShortName(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTeamFixture(testLeague("league-1", "owner-1", 4))
	ctx := context.Background()

	_, err := svc.Add(ctx, "owner-1", "league-1", AddTeamInput{Name: "Alpha", ShortName: "ALP"})
	require.NoError(t, err)

	_, err = svc.Add(ctx, "owner-1", "league-1", AddTeamInput{Name: "Alphaville", ShortName: "alp"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAddTeamRejectsFullLeague(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTeamFixture(testLeague("league-1", "owner-1", 2))
	ctx := context.Background()

	_, err := svc.Add(ctx, "owner-1", "league-1", AddTeamInput{Name: "Alpha", ShortName: "ALP"})
	require.NoError(t, err)
	_, err = svc.Add(ctx, "owner-1", "league-1", AddTeamInput{Name: "Bravo", ShortName: "BRV"})
	require.NoError(t, err)

	_, err = svc.Add(ctx, "owner-1", "league-1", AddTeamInput{Name: "Charlie", ShortName: "CHA"})
	assert.ErrorIs(t, err, ErrStateConflict)
}

func TestRemoveTeamOnlyBeforeLeagueStarts(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	upcoming := testLeague("league-up", "owner-1", 4)
	upcoming.TournamentStatus = league.StatusUpcoming
	upcoming.StartDate = timePtr(now.AddDate(0, 0, 5))
	upcoming.EndDate = timePtr(now.AddDate(0, 0, 30))

	svc, _, teamRepo := newTeamFixture(upcoming, testLeague("league-on", "owner-1", 4))
	ctx := context.Background()

	require.NoError(t, teamRepo.Insert(ctx, testTeam("team-up", "league-up", "Alpha", "ALP")))
	require.NoError(t, teamRepo.Insert(ctx, testTeam("team-on", "league-on", "Bravo", "BRV")))

	require.NoError(t, svc.Remove(ctx, "owner-1", "league-up", "team-up"))

	err := svc.Remove(ctx, "owner-1", "league-on", "team-on")
	assert.ErrorIs(t, err, ErrStateConflict)
}

func TestAssignGroupsSpreadsRoundRobin(t *testing.T) {
	t.Parallel()

	item := testLeague("league-1", "owner-1", 4)
	item.Format = league.FormatGroupStage
	item.GroupSettings = &league.GroupSettings{NumberOfGroups: 2, TeamsPerGroup: 2}
	svc, _, teamRepo := newTeamFixture(item)
	ctx := context.Background()

	base := time.Now().UTC()
	for i, name := range []string{"Alpha", "Bravo", "Charlie", "Delta"} {
		member := testTeam("team-"+name, "league-1", name, name[:3])
		member.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, teamRepo.Insert(ctx, member))
	}

	assigned, err := svc.AssignGroups(ctx, "owner-1", "league-1")
	require.NoError(t, err)
	require.Len(t, assigned, 4)

	// Creation order alternates A, B, A, B.
	assert.Equal(t, "A", assigned[0].Group)
	assert.Equal(t, "B", assigned[1].Group)
	assert.Equal(t, "A", assigned[2].Group)
	assert.Equal(t, "B", assigned[3].Group)
}

func TestAssignGroupsRequiresFullRoster(t *testing.T) {
	t.Parallel()

	item := testLeague("league-1", "owner-1", 4)
	item.Format = league.FormatGroupStage
	item.GroupSettings = &league.GroupSettings{NumberOfGroups: 2, TeamsPerGroup: 2}
	svc, _, teamRepo := newTeamFixture(item)
	ctx := context.Background()

	require.NoError(t, teamRepo.Insert(ctx, testTeam("team-a", "league-1", "Alpha", "ALP")))

	_, err := svc.AssignGroups(ctx, "owner-1", "league-1")
	assert.ErrorIs(t, err, ErrStateConflict)
}

func TestAssignGroupsRejectedForRoundRobin(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTeamFixture(testLeague("league-1", "owner-1", 4))

	_, err := svc.AssignGroups(context.Background(), "owner-1", "league-1")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestResetGroupsClearsLabels(t *testing.T) {
	t.Parallel()

	svc, _, teamRepo := newTeamFixture(testLeague("league-1", "owner-1", 4))
	ctx := context.Background()

	grouped := testTeam("team-a", "league-1", "Alpha", "ALP")
	grouped.Group = "A"
	require.NoError(t, teamRepo.Insert(ctx, grouped))

	require.NoError(t, svc.ResetGroups(ctx, "owner-1", "league-1"))

	cleared, _, _ := teamRepo.GetByID(ctx, "team-a")
	assert.Empty(t, cleared.Group)
}
