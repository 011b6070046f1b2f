package schedule

import (
	"errors"
	"fmt"
	"sort"

	"github.com/fleague/fleague-api/internal/domain/league"
	"github.com/fleague/fleague-api/internal/domain/team"
)

// ErrTooFewTeams is returned when a round-robin is requested for fewer than
// two teams. That is a caller bug, not bad user input.
var ErrTooFewTeams = errors.New("at least two teams are required to build a schedule")

// Fixture is one generated pairing, persisted verbatim as a match.
type Fixture struct {
	Round       int
	MatchNumber int
	HomeTeamID  string
	AwayTeamID  string
	Group       string
}

// GenerateRoundRobin builds a single round-robin schedule with the circle
// method: position 0 stays fixed while the rest rotate by one after each
// round. An odd team count gets a bye placeholder; its pairings are skipped,
// so one team sits out per round.
func GenerateRoundRobin(teams []team.Team) ([]Fixture, error) {
	if len(teams) < 2 {
		return nil, ErrTooFewTeams
	}

	ring := make([]*team.Team, 0, len(teams)+1)
	for i := range teams {
		ring = append(ring, &teams[i])
	}
	if len(ring)%2 != 0 {
		ring = append(ring, nil)
	}

	total := len(ring)
	rounds := total - 1
	perRound := total / 2

	fixtures := make([]Fixture, 0, rounds*perRound)
	for round := 1; round <= rounds; round++ {
		matchNumber := 1
		for i := 0; i < perRound; i++ {
			home := ring[i]
			away := ring[total-1-i]
			if home == nil || away == nil {
				continue
			}
			fixtures = append(fixtures, Fixture{
				Round:       round,
				MatchNumber: matchNumber,
				HomeTeamID:  home.ID,
				AwayTeamID:  away.ID,
				Group:       home.Group,
			})
			matchNumber++
		}

		last := ring[total-1]
		copy(ring[2:], ring[1:total-1])
		ring[1] = last
	}

	return fixtures, nil
}

// GenerateGroupStage partitions teams by group label and runs an independent
// round-robin per group, concatenated in group order. Every team must
// already carry a group label.
func GenerateGroupStage(teams []team.Team) ([]Fixture, error) {
	grouped := make(map[string][]team.Team)
	for _, t := range teams {
		if t.Group == "" {
			return nil, fmt.Errorf("team %q has no group assignment", t.Name)
		}
		grouped[t.Group] = append(grouped[t.Group], t)
	}

	groups := make([]string, 0, len(grouped))
	for name := range grouped {
		groups = append(groups, name)
	}
	sort.Strings(groups)

	var fixtures []Fixture
	for _, name := range groups {
		groupFixtures, err := GenerateRoundRobin(grouped[name])
		if err != nil {
			return nil, fmt.Errorf("generate schedule for group %s: %w", name, err)
		}
		fixtures = append(fixtures, groupFixtures...)
	}

	return fixtures, nil
}

// ValidateGeneration checks the preconditions for schedule generation and
// returns a descriptive error when they are not met.
func ValidateGeneration(format league.Format, teams []team.Team, numberOfTeams int) error {
	if len(teams) != numberOfTeams {
		return fmt.Errorf("the league needs %d teams to generate a schedule (currently has %d)", numberOfTeams, len(teams))
	}

	if format == league.FormatGroupStage {
		for _, t := range teams {
			if t.Group == "" {
				return fmt.Errorf("all teams must be assigned to a group before generating the schedule")
			}
		}
	}

	return nil
}
