package match

import (
	"fmt"
	"time"
)

const (
	StatusScheduled = "scheduled"
	StatusLive      = "live"
	StatusFinished  = "finished"
	StatusPostponed = "postponed"
	StatusCancelled = "cancelled"
)

// MaxPhotos caps the photo attachments per match.
const MaxPhotos = 10

func ValidStatus(status string) bool {
	switch status {
	case StatusScheduled, StatusLive, StatusFinished, StatusPostponed, StatusCancelled:
		return true
	default:
		return false
	}
}

// Score is the final score of a match. Meaningful only once finished.
type Score struct {
	Home int
	Away int
}

// Highlight is one uploaded highlight clip attached to a match.
type Highlight struct {
	ID         string
	URL        string
	Title      string
	UploadedAt time.Time
}

// Match is one fixture between two teams of the same league.
// The tuple (league, round, home team, away team) is unique.
type Match struct {
	ID            string
	LeagueID      string
	HomeTeamID    string
	AwayTeamID    string
	Round         int
	MatchNumber   int
	Group         string
	ScheduledDate *time.Time
	PlayedDate    *time.Time
	Score         Score
	Status        string
	Venue         string
	Referee       string
	Notes         string
	VideoURL      string
	Highlights    []Highlight
	Photos        []string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (m Match) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("match id is required")
	}
	if m.LeagueID == "" {
		return fmt.Errorf("match league id is required")
	}
	if m.HomeTeamID == "" || m.AwayTeamID == "" {
		return fmt.Errorf("match requires both a home and an away team")
	}
	if m.HomeTeamID == m.AwayTeamID {
		return fmt.Errorf("a team cannot play itself")
	}
	if m.Round < 1 {
		return fmt.Errorf("match round must be at least 1")
	}
	if m.MatchNumber < 1 {
		return fmt.Errorf("match number must be at least 1")
	}
	if !ValidStatus(m.Status) {
		return fmt.Errorf("invalid match status %q", m.Status)
	}
	if m.Score.Home < 0 || m.Score.Away < 0 {
		return fmt.Errorf("match score cannot be negative")
	}

	return nil
}
