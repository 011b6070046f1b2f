package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/fleague/fleague-api/internal/domain/team"
	qb "github.com/fleague/fleague-api/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) ListByLeague(ctx context.Context, leagueID string) ([]team.Team, error) {
	query, args, err := qb.Select("*").From("teams").
		Where(
			qb.Eq("league_public_id", leagueID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select teams by league query: %w", err)
	}

	return r.selectTeams(ctx, query, args)
}

func (r *TeamRepository) ListByLeagueAndGroup(ctx context.Context, leagueID, group string) ([]team.Team, error) {
	query, args, err := qb.Select("*").From("teams").
		Where(
			qb.Eq("league_public_id", leagueID),
			qb.Eq("group_name", group),
			qb.IsNull("deleted_at"),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select teams by group query: %w", err)
	}

	return r.selectTeams(ctx, query, args)
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (team.Team, bool, error) {
	query, args, err := qb.Select("*").From("teams").
		Where(
			qb.Eq("public_id", teamID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build get team by id query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("get team by id: %w", err)
	}

	return teamFromRow(row), true, nil
}

func (r *TeamRepository) Insert(ctx context.Context, item team.Team) error {
	query, args, err := qb.InsertModel("teams", teamToInsertModel(item), "")
	if err != nil {
		return fmt.Errorf("build insert team query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert team: %w", err)
	}

	return nil
}

func (r *TeamRepository) Update(ctx context.Context, item team.Team) error {
	query, args, err := teamUpdateBuilder(item).ToSQL()
	if err != nil {
		return fmt.Errorf("build update team query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update team: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("update team: team %s does not exist", item.ID)
	}

	return nil
}

// UpdateMany writes every team in one transaction so a result's two stat
// updates land together or not at all.
func (r *TeamRepository) UpdateMany(ctx context.Context, items []team.Team) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin update teams tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	for _, item := range items {
		query, args, buildErr := teamUpdateBuilder(item).ToSQL()
		if buildErr != nil {
			return fmt.Errorf("build update team query: %w", buildErr)
		}
		result, execErr := tx.ExecContext(ctx, query, args...)
		if execErr != nil {
			return fmt.Errorf("update team %s: %w", item.ID, execErr)
		}
		if affected, affErr := result.RowsAffected(); affErr == nil && affected == 0 {
			return fmt.Errorf("update team: team %s does not exist", item.ID)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit update teams tx: %w", err)
	}

	return nil
}

func (r *TeamRepository) Delete(ctx context.Context, teamID string) error {
	query, args, err := qb.Update("teams").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("public_id", teamID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete team query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete team: %w", err)
	}

	return nil
}

func (r *TeamRepository) DeleteByLeague(ctx context.Context, leagueID string) error {
	query, args, err := qb.Update("teams").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("league_public_id", leagueID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete teams by league query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete teams by league: %w", err)
	}

	return nil
}

func (r *TeamRepository) ResetStatsByLeague(ctx context.Context, leagueID string) error {
	query, args, err := qb.Update("teams").
		Set("played", 0).
		Set("won", 0).
		Set("drawn", 0).
		Set("lost", 0).
		Set("goals_for", 0).
		Set("goals_against", 0).
		Set("goal_difference", 0).
		Set("points", 0).
		SetExpr("form", "'{}'::text[]").
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("league_public_id", leagueID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build reset team stats query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("reset team stats: %w", err)
	}

	return nil
}

func (r *TeamRepository) selectTeams(ctx context.Context, query string, args []any) ([]team.Team, error) {
	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select teams: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, teamFromRow(row))
	}

	return out, nil
}

func teamUpdateBuilder(item team.Team) *qb.UpdateBuilder {
	model := teamToInsertModel(item)
	return qb.Update("teams").
		Set("name", model.Name).
		Set("short_name", model.ShortName).
		Set("logo_url", model.LogoURL).
		Set("group_name", model.GroupName).
		Set("played", model.Played).
		Set("won", model.Won).
		Set("drawn", model.Drawn).
		Set("lost", model.Lost).
		Set("goals_for", model.GoalsFor).
		Set("goals_against", model.GoalsAgainst).
		Set("goal_difference", model.GoalDifference).
		Set("points", model.Points).
		Set("form", model.Form).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", item.ID),
			qb.IsNull("deleted_at"),
		)
}
