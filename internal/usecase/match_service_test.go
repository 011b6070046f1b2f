package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleague/fleague-api/internal/domain/match"
	"github.com/fleague/fleague-api/internal/platform/logging"
)

func newMatchFixture(matches ...match.Match) (*MatchService, *stubMatchRepo) {
	leagueRepo := newStubLeagueRepo(testLeague("league-1", "owner-1", 2))
	matchRepo := newStubMatchRepo(matches...)
	svc := NewMatchService(leagueRepo, matchRepo, &seqIDGen{}, logging.NewNop())
	return svc, matchRepo
}

func TestUpdateInfoEditsOrganisationalFields(t *testing.T) {
	t.Parallel()

	svc, _ := newMatchFixture(testMatch("match-1", "league-1", "team-a", "team-b", 1))

	venue := " City Park "
	referee := "R. Collina"
	updated, err := svc.UpdateInfo(context.Background(), "owner-1", "league-1", "match-1", UpdateMatchInfoInput{
		Venue:   &venue,
		Referee: &referee,
	})
	require.NoError(t, err)

	assert.Equal(t, "City Park", updated.Venue)
	assert.Equal(t, "R. Collina", updated.Referee)
	assert.Equal(t, match.StatusScheduled, updated.Status)
}

func TestUpdateStatusCannotFinishDirectly(t *testing.T) {
	t.Parallel()

	svc, _ := newMatchFixture(testMatch("match-1", "league-1", "team-a", "team-b", 1))

	_, err := svc.UpdateStatus(context.Background(), "owner-1", "league-1", "match-1", match.StatusFinished)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateStatusRejectsFinishedMatch(t *testing.T) {
	t.Parallel()

	finished := testMatch("match-1", "league-1", "team-a", "team-b", 1)
	finished.Status = match.StatusFinished
	svc, _ := newMatchFixture(finished)

	_, err := svc.UpdateStatus(context.Background(), "owner-1", "league-1", "match-1", match.StatusPostponed)
	assert.ErrorIs(t, err, ErrStateConflict)
}

func TestUpdateStatusMovesBetweenNonResultStates(t *testing.T) {
	t.Parallel()

	svc, _ := newMatchFixture(testMatch("match-1", "league-1", "team-a", "team-b", 1))

	updated, err := svc.UpdateStatus(context.Background(), "owner-1", "league-1", "match-1", match.StatusPostponed)
	require.NoError(t, err)
	assert.Equal(t, match.StatusPostponed, updated.Status)
}

func TestAddPhotosCapsGallery(t *testing.T) {
	t.Parallel()

	item := testMatch("match-1", "league-1", "team-a", "team-b", 1)
	item.Photos = []string{"p1", "p2", "p3", "p4", "p5", "p6", "p7", "p8", "p9"}
	svc, _ := newMatchFixture(item)
	ctx := context.Background()

	updated, err := svc.AddPhotos(ctx, "owner-1", "league-1", "match-1", []string{"p10"})
	require.NoError(t, err)
	assert.Len(t, updated.Photos, match.MaxPhotos)

	_, err = svc.AddPhotos(ctx, "owner-1", "league-1", "match-1", []string{"p11"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAddHighlightsCappedByGoals(t *testing.T) {
	t.Parallel()

	finished := testMatch("match-1", "league-1", "team-a", "team-b", 1)
	finished.Status = match.StatusFinished
	finished.Score = match.Score{Home: 2, Away: 1}
	svc, _ := newMatchFixture(finished)
	ctx := context.Background()

	updated, err := svc.AddHighlights(ctx, "owner-1", "league-1", "match-1", []HighlightInput{
		{URL: "https://clips/1", Title: "Opener"},
		{URL: "https://clips/2", Title: "Equalizer"},
		{URL: "https://clips/3", Title: "Winner"},
	})
	require.NoError(t, err)
	assert.Len(t, updated.Highlights, 3)

	// A fourth clip would exceed the three goals scored.
	_, err = svc.AddHighlights(ctx, "owner-1", "league-1", "match-1", []HighlightInput{{URL: "https://clips/4"}})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAddHighlightsRequiresFinishedMatch(t *testing.T) {
	t.Parallel()

	svc, _ := newMatchFixture(testMatch("match-1", "league-1", "team-a", "team-b", 1))

	_, err := svc.AddHighlights(context.Background(), "owner-1", "league-1", "match-1", []HighlightInput{{URL: "https://clips/1"}})
	assert.ErrorIs(t, err, ErrStateConflict)
}

func TestRemoveHighlight(t *testing.T) {
	t.Parallel()

	finished := testMatch("match-1", "league-1", "team-a", "team-b", 1)
	finished.Status = match.StatusFinished
	finished.Score = match.Score{Home: 1, Away: 0}
	svc, _ := newMatchFixture(finished)
	ctx := context.Background()

	withClip, err := svc.AddHighlights(ctx, "owner-1", "league-1", "match-1", []HighlightInput{{URL: "https://clips/1"}})
	require.NoError(t, err)
	require.Len(t, withClip.Highlights, 1)

	cleared, err := svc.RemoveHighlight(ctx, "owner-1", "league-1", "match-1", withClip.Highlights[0].ID)
	require.NoError(t, err)
	assert.Empty(t, cleared.Highlights)

	_, err = svc.RemoveHighlight(ctx, "owner-1", "league-1", "match-1", "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListByLeagueFiltersByStatus(t *testing.T) {
	t.Parallel()

	finished := testMatch("match-1", "league-1", "team-a", "team-b", 1)
	finished.Status = match.StatusFinished
	svc, _ := newMatchFixture(finished, testMatch("match-2", "league-1", "team-b", "team-a", 2))

	matches, err := svc.ListByLeague(context.Background(), "league-1", match.Filter{Status: match.StatusFinished}, Access{})
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "match-1", matches[0].ID)

	_, err = svc.ListByLeague(context.Background(), "league-1", match.Filter{Status: "bogus"}, Access{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
