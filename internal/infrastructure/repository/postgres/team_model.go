package postgres

import (
	"time"

	"github.com/lib/pq"

	"github.com/fleague/fleague-api/internal/domain/team"
)

type teamTableModel struct {
	ID             int64          `db:"id"`
	PublicID       string         `db:"public_id"`
	LeagueID       string         `db:"league_public_id"`
	Name           string         `db:"name"`
	ShortName      string         `db:"short_name"`
	LogoURL        string         `db:"logo_url"`
	GroupName      string         `db:"group_name"`
	Played         int            `db:"played"`
	Won            int            `db:"won"`
	Drawn          int            `db:"drawn"`
	Lost           int            `db:"lost"`
	GoalsFor       int            `db:"goals_for"`
	GoalsAgainst   int            `db:"goals_against"`
	GoalDifference int            `db:"goal_difference"`
	Points         int            `db:"points"`
	Form           pq.StringArray `db:"form"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
	DeletedAt      *time.Time     `db:"deleted_at"`
}

type teamInsertModel struct {
	PublicID       string         `db:"public_id"`
	LeagueID       string         `db:"league_public_id"`
	Name           string         `db:"name"`
	ShortName      string         `db:"short_name"`
	LogoURL        string         `db:"logo_url"`
	GroupName      string         `db:"group_name"`
	Played         int            `db:"played"`
	Won            int            `db:"won"`
	Drawn          int            `db:"drawn"`
	Lost           int            `db:"lost"`
	GoalsFor       int            `db:"goals_for"`
	GoalsAgainst   int            `db:"goals_against"`
	GoalDifference int            `db:"goal_difference"`
	Points         int            `db:"points"`
	Form           pq.StringArray `db:"form"`
}

func teamFromRow(row teamTableModel) team.Team {
	return team.Team{
		ID:        row.PublicID,
		LeagueID:  row.LeagueID,
		Name:      row.Name,
		ShortName: row.ShortName,
		Logo:      row.LogoURL,
		Group:     row.GroupName,
		Stats: team.Stats{
			Played:         row.Played,
			Won:            row.Won,
			Drawn:          row.Drawn,
			Lost:           row.Lost,
			GoalsFor:       row.GoalsFor,
			GoalsAgainst:   row.GoalsAgainst,
			GoalDifference: row.GoalDifference,
			Points:         row.Points,
		},
		Form:      append([]string(nil), row.Form...),
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

func teamToInsertModel(item team.Team) teamInsertModel {
	return teamInsertModel{
		PublicID:       item.ID,
		LeagueID:       item.LeagueID,
		Name:           item.Name,
		ShortName:      item.ShortName,
		LogoURL:        item.Logo,
		GroupName:      item.Group,
		Played:         item.Stats.Played,
		Won:            item.Stats.Won,
		Drawn:          item.Stats.Drawn,
		Lost:           item.Stats.Lost,
		GoalsFor:       item.Stats.GoalsFor,
		GoalsAgainst:   item.Stats.GoalsAgainst,
		GoalDifference: item.Stats.GoalDifference,
		Points:         item.Stats.Points,
		Form:           pq.StringArray(item.Form),
	}
}
