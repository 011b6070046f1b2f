package team

import (
	"fmt"
	"time"
)

// FormSize caps the rolling form trail at the five most recent results.
const FormSize = 5

// Stats is a team's cumulative record inside its league.
type Stats struct {
	Played         int
	Won            int
	Drawn          int
	Lost           int
	GoalsFor       int
	GoalsAgainst   int
	GoalDifference int
	Points         int
}

// Team is one club registered in a league. Statistics mutate only through
// ApplyResult/RevertResult/ResetStats.
type Team struct {
	ID        string
	LeagueID  string
	Name      string
	ShortName string
	Logo      string
	Group     string
	Stats     Stats
	Form      []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.LeagueID == "" {
		return fmt.Errorf("team league id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}
	if len(t.ShortName) < 2 || len(t.ShortName) > 5 {
		return fmt.Errorf("team short name must be between 2 and 5 characters")
	}

	return nil
}
