package memory

import (
	"time"

	"github.com/fleague/fleague-api/internal/domain/league"
	"github.com/fleague/fleague-api/internal/domain/team"
)

const (
	LeagueIDSundayDistrict = "sunday-district-2026"
	SeedOwnerID            = "demo-owner"
)

var seedStart = time.Date(2026, 9, 6, 0, 0, 0, 0, time.UTC)
var seedEnd = time.Date(2026, 12, 13, 0, 0, 0, 0, time.UTC)

// SeedLeagues fills a fresh in-memory store with a small demo league so the
// API is browsable without any setup.
func SeedLeagues() []league.League {
	return []league.League{
		{
			ID:               LeagueIDSundayDistrict,
			OwnerID:          SeedOwnerID,
			Name:             "Sunday District League",
			Description:      "Eight-team amateur round robin, played on Sundays.",
			Format:           league.FormatRoundRobin,
			Visibility:       league.VisibilityPublic,
			TournamentStatus: league.StatusUpcoming,
			NumberOfTeams:    8,
			StartDate:        &seedStart,
			EndDate:          &seedEnd,
			CreatedAt:        seedStart.AddDate(0, -1, 0),
			UpdatedAt:        seedStart.AddDate(0, -1, 0),
		},
	}
}

func SeedTeams() []team.Team {
	names := []struct {
		id    string
		name  string
		short string
	}{
		{"sd-rovers", "Riverside Rovers", "RIV"},
		{"sd-united", "Oakfield United", "OAK"},
		{"sd-wanderers", "Hillcrest Wanderers", "HIL"},
		{"sd-athletic", "Milltown Athletic", "MIL"},
		{"sd-town", "Ashby Town", "ASH"},
		{"sd-rangers", "Clifton Rangers", "CLF"},
		{"sd-albion", "Kings Albion", "KNG"},
		{"sd-county", "Weston County", "WES"},
	}

	created := seedStart.AddDate(0, -1, 0)
	out := make([]team.Team, 0, len(names))
	for i, n := range names {
		out = append(out, team.Team{
			ID:        n.id,
			LeagueID:  LeagueIDSundayDistrict,
			Name:      n.name,
			ShortName: n.short,
			Form:      []string{},
			CreatedAt: created.Add(time.Duration(i) * time.Minute),
			UpdatedAt: created.Add(time.Duration(i) * time.Minute),
		})
	}

	return out
}
