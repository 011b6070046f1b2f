package schedule

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fleague/fleague-api/internal/domain/league"
	"github.com/fleague/fleague-api/internal/domain/team"
)

func makeTeams(n int, group string) []team.Team {
	teams := make([]team.Team, 0, n)
	for i := 0; i < n; i++ {
		teams = append(teams, team.Team{
			ID:    fmt.Sprintf("%s-team-%02d", groupPrefix(group), i+1),
			Name:  fmt.Sprintf("Team %02d", i+1),
			Group: group,
		})
	}
	return teams
}

func groupPrefix(group string) string {
	if group == "" {
		return "rr"
	}
	return group
}

func TestGenerateRoundRobin_EvenTeamCount(t *testing.T) {
	t.Parallel()

	for _, n := range []int{2, 4, 6, 8, 16} {
		fixtures, err := GenerateRoundRobin(makeTeams(n, ""))
		if err != nil {
			t.Fatalf("n=%d: %v", n, err)
		}

		wantRounds := n - 1
		wantPerRound := n / 2
		if len(fixtures) != wantRounds*wantPerRound {
			t.Fatalf("n=%d: expected %d fixtures, got %d", n, wantRounds*wantPerRound, len(fixtures))
		}

		perRound := make(map[int]int)
		pairs := make(map[string]int)
		for _, fx := range fixtures {
			if fx.Round < 1 || fx.Round > wantRounds {
				t.Fatalf("n=%d: round %d out of range", n, fx.Round)
			}
			perRound[fx.Round]++
			pairs[pairKey(fx.HomeTeamID, fx.AwayTeamID)]++
		}
		for round := 1; round <= wantRounds; round++ {
			if perRound[round] != wantPerRound {
				t.Fatalf("n=%d round=%d: expected %d matches, got %d", n, round, wantPerRound, perRound[round])
			}
		}
		if len(pairs) != n*(n-1)/2 {
			t.Fatalf("n=%d: expected %d distinct pairings, got %d", n, n*(n-1)/2, len(pairs))
		}
		for key, count := range pairs {
			if count != 1 {
				t.Fatalf("n=%d: pairing %s appears %d times", n, key, count)
			}
		}
	}
}

func TestGenerateRoundRobin_OddTeamCountGetsByeRounds(t *testing.T) {
	t.Parallel()

	for _, n := range []int{3, 5, 7, 9} {
		fixtures, err := GenerateRoundRobin(makeTeams(n, ""))
		if err != nil {
			t.Fatalf("n=%d: %v", n, err)
		}

		if len(fixtures) != n*(n-1)/2 {
			t.Fatalf("n=%d: expected %d fixtures, got %d", n, n*(n-1)/2, len(fixtures))
		}

		perRound := make(map[int]map[string]bool)
		for _, fx := range fixtures {
			if fx.Round > n {
				t.Fatalf("n=%d: round %d exceeds %d", n, fx.Round, n)
			}
			if perRound[fx.Round] == nil {
				perRound[fx.Round] = make(map[string]bool)
			}
			perRound[fx.Round][fx.HomeTeamID] = true
			perRound[fx.Round][fx.AwayTeamID] = true
		}
		if len(perRound) != n {
			t.Fatalf("n=%d: expected %d rounds, got %d", n, n, len(perRound))
		}
		for round, present := range perRound {
			if len(present) != n-1 {
				t.Fatalf("n=%d round=%d: expected exactly one idle team, got %d playing", n, round, len(present))
			}
		}
	}
}

func TestGenerateRoundRobin_MatchNumbersRestartPerRound(t *testing.T) {
	t.Parallel()

	fixtures, err := GenerateRoundRobin(makeTeams(6, ""))
	if err != nil {
		t.Fatal(err)
	}

	seen := make(map[int][]int)
	for _, fx := range fixtures {
		seen[fx.Round] = append(seen[fx.Round], fx.MatchNumber)
	}
	for round, numbers := range seen {
		for i, number := range numbers {
			if number != i+1 {
				t.Fatalf("round %d: expected sequential match numbers from 1, got %v", round, numbers)
			}
		}
	}
}

func TestGenerateRoundRobin_TooFewTeams(t *testing.T) {
	t.Parallel()

	if _, err := GenerateRoundRobin(nil); !errors.Is(err, ErrTooFewTeams) {
		t.Fatalf("expected ErrTooFewTeams, got %v", err)
	}
	if _, err := GenerateRoundRobin(makeTeams(1, "")); !errors.Is(err, ErrTooFewTeams) {
		t.Fatalf("expected ErrTooFewTeams, got %v", err)
	}
}

func TestGenerateGroupStage_IndependentGroupSchedules(t *testing.T) {
	t.Parallel()

	teams := append(makeTeams(4, "A"), makeTeams(4, "B")...)
	fixtures, err := GenerateGroupStage(teams)
	if err != nil {
		t.Fatal(err)
	}

	// Each group of 4 plays 3 rounds x 2 matches.
	if len(fixtures) != 12 {
		t.Fatalf("expected 12 fixtures, got %d", len(fixtures))
	}
	for _, fx := range fixtures {
		if fx.Group == "" {
			t.Fatalf("fixture missing group label: %+v", fx)
		}
		wantPrefix := fx.Group + "-"
		if fx.HomeTeamID[:2] != wantPrefix || fx.AwayTeamID[:2] != wantPrefix {
			t.Fatalf("cross-group pairing emitted: %+v", fx)
		}
	}
}

func TestGenerateGroupStage_RejectsUngroupedTeam(t *testing.T) {
	t.Parallel()

	teams := append(makeTeams(4, "A"), team.Team{ID: "loose", Name: "Loose FC"})
	if _, err := GenerateGroupStage(teams); err == nil {
		t.Fatal("expected an error for a team without a group")
	}
}

func TestValidateGeneration(t *testing.T) {
	t.Parallel()

	if err := ValidateGeneration(league.FormatRoundRobin, makeTeams(4, ""), 6); err == nil {
		t.Fatal("expected team count mismatch to be rejected")
	}
	if err := ValidateGeneration(league.FormatRoundRobin, makeTeams(6, ""), 6); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ValidateGeneration(league.FormatGroupStage, makeTeams(6, ""), 6); err == nil {
		t.Fatal("expected ungrouped teams to be rejected for group-stage")
	}
	if err := ValidateGeneration(league.FormatGroupStage, makeTeams(6, "A"), 6); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func pairKey(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + "|" + b
}
