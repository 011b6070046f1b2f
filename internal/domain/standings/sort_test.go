package standings

import (
	"testing"

	"github.com/fleague/fleague-api/internal/domain/team"
)

func sampleTeams() []team.Team {
	return []team.Team{
		{
			ID: "t-a", Name: "Alpha", ShortName: "ALP",
			Stats: team.Stats{Played: 4, Won: 3, Drawn: 1, GoalsFor: 12, GoalsAgainst: 7, GoalDifference: 5, Points: 10},
			Form:  []string{"W", "W", "D", "W"},
		},
		{
			ID: "t-b", Name: "Bravo", ShortName: "BRV",
			Stats: team.Stats{Played: 4, Won: 3, Drawn: 1, GoalsFor: 9, GoalsAgainst: 4, GoalDifference: 5, Points: 10},
			Form:  []string{"W", "D", "W", "L"},
		},
		{
			ID: "t-c", Name: "Charlie", ShortName: "CHA",
			Stats: team.Stats{Played: 4, Won: 1, Drawn: 1, Lost: 2, GoalsFor: 5, GoalsAgainst: 8, GoalDifference: -3, Points: 4},
			Form:  []string{"L", "W", "L", "D"},
		},
		{
			ID: "t-d", Name: "Delta", ShortName: "DEL",
			Stats: team.Stats{Played: 0},
		},
	}
}

func TestFormatRanksByPointsThenGoalDifferenceThenGoalsFor(t *testing.T) {
	t.Parallel()

	rows := Format(sampleTeams())
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(rows))
	}

	// Alpha and Bravo are level on points and goal difference; Alpha's
	// higher goals-for puts it first.
	if rows[0].Team.ID != "t-a" || rows[0].Position != 1 {
		t.Fatalf("unexpected first row: %+v", rows[0])
	}
	if rows[1].Team.ID != "t-b" || rows[1].Position != 2 {
		t.Fatalf("unexpected second row: %+v", rows[1])
	}
	if rows[2].Team.ID != "t-c" {
		t.Fatalf("unexpected third row: %+v", rows[2])
	}
}

func TestFormatBreaksFullTiesByName(t *testing.T) {
	t.Parallel()

	teams := []team.Team{
		{ID: "t-z", Name: "Zulu", Stats: team.Stats{Points: 6, GoalDifference: 1, GoalsFor: 4}},
		{ID: "t-m", Name: "Mike", Stats: team.Stats{Points: 6, GoalDifference: 1, GoalsFor: 4}},
	}

	rows := Format(teams)
	if rows[0].Team.ID != "t-m" || rows[1].Team.ID != "t-z" {
		t.Fatalf("expected name-ascending tie break, got %s then %s", rows[0].Team.ID, rows[1].Team.ID)
	}
}

func TestTopScorersUsesGoalOrderingNotTableOrdering(t *testing.T) {
	t.Parallel()

	rows := TopScorers(sampleTeams(), 2)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Team.ID != "t-a" || rows[1].Team.ID != "t-b" {
		t.Fatalf("unexpected top scorer order: %s, %s", rows[0].Team.ID, rows[1].Team.ID)
	}
	if rows[0].Position != 1 || rows[1].Position != 2 {
		t.Fatalf("positions must be ranks within the goal ordering: %+v", rows)
	}
}

func TestBestDefenseRanksByGoalsConceded(t *testing.T) {
	t.Parallel()

	rows := BestDefense(sampleTeams(), 3)
	// Delta has conceded nothing (played nothing), Bravo 4, Alpha 7.
	want := []string{"t-d", "t-b", "t-a"}
	for i, id := range want {
		if rows[i].Team.ID != id {
			t.Fatalf("row %d: expected %s, got %s", i, id, rows[i].Team.ID)
		}
	}
}

func TestBestFormExcludesTeamsWithoutForm(t *testing.T) {
	t.Parallel()

	teams := sampleTeams()
	// Give the formless team the best cumulative record; it must still be
	// excluded from the form leaderboard.
	teams[3].Stats.Points = 99

	rows := BestForm(teams, 5)
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	for _, row := range rows {
		if row.Team.ID == "t-d" {
			t.Fatal("team without form must not appear in the form leaderboard")
		}
	}
	if rows[0].Team.ID != "t-a" {
		t.Fatalf("expected Alpha (10 form points) first, got %s", rows[0].Team.ID)
	}
	if rows[0].Position != 1 || rows[1].Position != 2 || rows[2].Position != 3 {
		t.Fatalf("form positions must be renumbered from 1: %+v", rows)
	}
}

func TestLeaderboardLimitClamped(t *testing.T) {
	t.Parallel()

	if got := len(TopScorers(sampleTeams(), 100)); got != 4 {
		t.Fatalf("expected all 4 rows, got %d", got)
	}
	if got := len(BestDefense(sampleTeams(), 1)); got != 1 {
		t.Fatalf("expected 1 row, got %d", got)
	}
}
