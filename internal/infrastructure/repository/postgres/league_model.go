package postgres

import (
	"database/sql"
	"time"

	"github.com/fleague/fleague-api/internal/domain/league"
)

type leagueTableModel struct {
	ID               int64         `db:"id"`
	PublicID         string        `db:"public_id"`
	OwnerID          string        `db:"owner_id"`
	Name             string        `db:"name"`
	Description      string        `db:"description"`
	LogoURL          string        `db:"logo_url"`
	Format           string        `db:"format"`
	Visibility       string        `db:"visibility"`
	AccessToken      string        `db:"access_token"`
	TournamentStatus string        `db:"tournament_status"`
	NumberOfTeams    int           `db:"number_of_teams"`
	NumberOfGroups   sql.NullInt64 `db:"number_of_groups"`
	TeamsPerGroup    sql.NullInt64 `db:"teams_per_group"`
	StartDate        *time.Time    `db:"start_date"`
	EndDate          *time.Time    `db:"end_date"`
	CreatedAt        time.Time     `db:"created_at"`
	UpdatedAt        time.Time     `db:"updated_at"`
	DeletedAt        *time.Time    `db:"deleted_at"`
}

type leagueInsertModel struct {
	PublicID         string        `db:"public_id"`
	OwnerID          string        `db:"owner_id"`
	Name             string        `db:"name"`
	Description      string        `db:"description"`
	LogoURL          string        `db:"logo_url"`
	Format           string        `db:"format"`
	Visibility       string        `db:"visibility"`
	AccessToken      string        `db:"access_token"`
	TournamentStatus string        `db:"tournament_status"`
	NumberOfTeams    int           `db:"number_of_teams"`
	NumberOfGroups   sql.NullInt64 `db:"number_of_groups"`
	TeamsPerGroup    sql.NullInt64 `db:"teams_per_group"`
	StartDate        *time.Time    `db:"start_date"`
	EndDate          *time.Time    `db:"end_date"`
}

func leagueFromRow(row leagueTableModel) league.League {
	item := league.League{
		ID:               row.PublicID,
		OwnerID:          row.OwnerID,
		Name:             row.Name,
		Description:      row.Description,
		Logo:             row.LogoURL,
		Format:           league.Format(row.Format),
		Visibility:       league.Visibility(row.Visibility),
		AccessToken:      row.AccessToken,
		TournamentStatus: league.Status(row.TournamentStatus),
		NumberOfTeams:    row.NumberOfTeams,
		StartDate:        row.StartDate,
		EndDate:          row.EndDate,
		CreatedAt:        row.CreatedAt,
		UpdatedAt:        row.UpdatedAt,
	}
	if row.NumberOfGroups.Valid {
		item.GroupSettings = &league.GroupSettings{
			NumberOfGroups: int(row.NumberOfGroups.Int64),
			TeamsPerGroup:  int(row.TeamsPerGroup.Int64),
		}
	}

	return item
}

func leagueToInsertModel(item league.League) leagueInsertModel {
	model := leagueInsertModel{
		PublicID:         item.ID,
		OwnerID:          item.OwnerID,
		Name:             item.Name,
		Description:      item.Description,
		LogoURL:          item.Logo,
		Format:           string(item.Format),
		Visibility:       string(item.Visibility),
		AccessToken:      item.AccessToken,
		TournamentStatus: string(item.TournamentStatus),
		NumberOfTeams:    item.NumberOfTeams,
		StartDate:        item.StartDate,
		EndDate:          item.EndDate,
	}
	if item.GroupSettings != nil {
		model.NumberOfGroups = sql.NullInt64{Int64: int64(item.GroupSettings.NumberOfGroups), Valid: true}
		model.TeamsPerGroup = sql.NullInt64{Int64: int64(item.GroupSettings.TeamsPerGroup), Valid: true}
	}

	return model
}
