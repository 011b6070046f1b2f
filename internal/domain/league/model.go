package league

import (
	"fmt"
	"time"
)

type Format string

const (
	FormatRoundRobin Format = "round-robin"
	FormatGroupStage Format = "group-stage"
)

type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

const (
	MinTeams = 2
	MaxTeams = 32
)

// GroupSettings describes how a group-stage league is partitioned.
type GroupSettings struct {
	NumberOfGroups int
	TeamsPerGroup  int
}

// League is one amateur tournament managed by an owner.
type League struct {
	ID               string
	OwnerID          string
	Name             string
	Description      string
	Logo             string
	Format           Format
	Visibility       Visibility
	AccessToken      string
	TournamentStatus Status
	NumberOfTeams    int
	GroupSettings    *GroupSettings
	StartDate        *time.Time
	EndDate          *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (l League) Validate() error {
	if l.ID == "" {
		return fmt.Errorf("league id is required")
	}
	if l.OwnerID == "" {
		return fmt.Errorf("league owner is required")
	}
	if len(l.Name) < 3 || len(l.Name) > 100 {
		return fmt.Errorf("league name must be between 3 and 100 characters")
	}
	if l.Format != FormatRoundRobin && l.Format != FormatGroupStage {
		return fmt.Errorf("league format must be %q or %q", FormatRoundRobin, FormatGroupStage)
	}
	if l.Visibility != VisibilityPublic && l.Visibility != VisibilityPrivate {
		return fmt.Errorf("league visibility must be %q or %q", VisibilityPublic, VisibilityPrivate)
	}
	if l.NumberOfTeams < MinTeams || l.NumberOfTeams > MaxTeams {
		return fmt.Errorf("number of teams must be between %d and %d", MinTeams, MaxTeams)
	}
	if l.Format == FormatGroupStage {
		if l.GroupSettings == nil {
			return fmt.Errorf("group settings are required for a group-stage league")
		}
		if err := l.GroupSettings.validate(); err != nil {
			return err
		}
		if l.GroupSettings.NumberOfGroups*l.GroupSettings.TeamsPerGroup != l.NumberOfTeams {
			return fmt.Errorf("groups * teams per group must equal the number of teams")
		}
	}
	if l.StartDate != nil && l.EndDate != nil && l.EndDate.Before(*l.StartDate) {
		return fmt.Errorf("league end date must not be before the start date")
	}

	return nil
}

func (g GroupSettings) validate() error {
	if g.NumberOfGroups < 2 || g.NumberOfGroups > 8 {
		return fmt.Errorf("number of groups must be between 2 and 8")
	}
	if g.TeamsPerGroup < 3 || g.TeamsPerGroup > 6 {
		return fmt.Errorf("teams per group must be between 3 and 6")
	}

	return nil
}
