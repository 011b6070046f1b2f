package standings

import (
	"sort"

	"github.com/fleague/fleague-api/internal/domain/team"
)

// SortByStandings orders teams by the league table total order: points,
// then goal difference, then goals scored, all descending, with the team
// name ascending as the final deterministic tie-break. The input slice is
// not modified.
func SortByStandings(teams []team.Team) []team.Team {
	sorted := append([]team.Team(nil), teams...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Stats.Points != b.Stats.Points {
			return a.Stats.Points > b.Stats.Points
		}
		if a.Stats.GoalDifference != b.Stats.GoalDifference {
			return a.Stats.GoalDifference > b.Stats.GoalDifference
		}
		if a.Stats.GoalsFor != b.Stats.GoalsFor {
			return a.Stats.GoalsFor > b.Stats.GoalsFor
		}
		return a.Name < b.Name
	})

	return sorted
}

// Format ranks teams by the league table order and maps them to rows.
func Format(teams []team.Team) []Row {
	return toRows(SortByStandings(teams))
}

// TopScorers ranks by goals scored, tie-broken by goal difference. The
// positions are ranks within this ordering, not the points-based table.
func TopScorers(teams []team.Team, limit int) []Row {
	sorted := append([]team.Team(nil), teams...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Stats.GoalsFor != b.Stats.GoalsFor {
			return a.Stats.GoalsFor > b.Stats.GoalsFor
		}
		return a.Stats.GoalDifference > b.Stats.GoalDifference
	})

	return toRows(clamp(sorted, limit))
}

// BestDefense ranks by fewest goals conceded, tie-broken by points.
func BestDefense(teams []team.Team, limit int) []Row {
	sorted := append([]team.Team(nil), teams...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Stats.GoalsAgainst != b.Stats.GoalsAgainst {
			return a.Stats.GoalsAgainst < b.Stats.GoalsAgainst
		}
		return a.Stats.Points > b.Stats.Points
	})

	return toRows(clamp(sorted, limit))
}

// BestForm ranks by points scored over the rolling form window. Teams with
// no recorded form are excluded regardless of their cumulative record.
func BestForm(teams []team.Team, limit int) []Row {
	withForm := make([]team.Team, 0, len(teams))
	for _, t := range teams {
		if len(t.Form) > 0 {
			withForm = append(withForm, t)
		}
	}
	sort.SliceStable(withForm, func(i, j int) bool {
		return team.FormPoints(withForm[i].Form) > team.FormPoints(withForm[j].Form)
	})

	return toRows(clamp(withForm, limit))
}

func toRows(teams []team.Team) []Row {
	rows := make([]Row, 0, len(teams))
	for i, t := range teams {
		rows = append(rows, Row{
			Position: i + 1,
			Team: TeamRef{
				ID:        t.ID,
				Name:      t.Name,
				ShortName: t.ShortName,
				Logo:      t.Logo,
			},
			Stats: t.Stats,
			Form:  append([]string(nil), t.Form...),
		})
	}

	return rows
}

func clamp(teams []team.Team, limit int) []team.Team {
	if limit > 0 && len(teams) > limit {
		return teams[:limit]
	}
	return teams
}
