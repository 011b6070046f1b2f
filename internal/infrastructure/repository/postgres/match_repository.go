package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/fleague/fleague-api/internal/domain/match"
	qb "github.com/fleague/fleague-api/internal/platform/querybuilder"
)

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) GetByID(ctx context.Context, matchID string) (match.Match, bool, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(
			qb.Eq("public_id", matchID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return match.Match{}, false, fmt.Errorf("build get match by id query: %w", err)
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("get match by id: %w", err)
	}

	item, err := matchFromRow(row)
	if err != nil {
		return match.Match{}, false, err
	}

	return item, true, nil
}

func (r *MatchRepository) ListByLeague(ctx context.Context, leagueID string, filter match.Filter) ([]match.Match, error) {
	conditions := []qb.Condition{
		qb.Eq("league_public_id", leagueID),
		qb.IsNull("deleted_at"),
	}
	if filter.Round != 0 {
		conditions = append(conditions, qb.Eq("round", filter.Round))
	}
	if filter.Group != "" {
		conditions = append(conditions, qb.Eq("group_name", filter.Group))
	}
	if filter.Status != "" {
		conditions = append(conditions, qb.Eq("status", filter.Status))
	}

	query, args, err := qb.Select("*").From("matches").
		Where(conditions...).
		OrderBy("group_name", "round", "match_number").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select matches by league query: %w", err)
	}

	return r.selectMatches(ctx, query, args)
}

func (r *MatchRepository) ListByTeam(ctx context.Context, teamID, status string, limit int) ([]match.Match, error) {
	conditions := []qb.Condition{
		qb.Expr("(home_team_public_id = ? OR away_team_public_id = ?)", teamID, teamID),
		qb.IsNull("deleted_at"),
	}
	if status != "" {
		conditions = append(conditions, qb.Eq("status", status))
	}

	builder := qb.Select("*").From("matches").
		Where(conditions...).
		OrderBy("played_date DESC NULLS LAST", "round DESC")
	if limit > 0 {
		builder = builder.Limit(limit)
	}

	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select matches by team query: %w", err)
	}

	return r.selectMatches(ctx, query, args)
}

func (r *MatchRepository) CountByLeague(ctx context.Context, leagueID string) (int, error) {
	query, args, err := qb.Select("COUNT(*)").From("matches").
		Where(
			qb.Eq("league_public_id", leagueID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count matches query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count matches: %w", err)
	}

	return count, nil
}

func (r *MatchRepository) InsertMany(ctx context.Context, items []match.Match) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin insert matches tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	for _, item := range items {
		model, modelErr := matchToInsertModel(item)
		if modelErr != nil {
			return modelErr
		}
		query, args, buildErr := qb.InsertModel("matches", model, "")
		if buildErr != nil {
			return fmt.Errorf("build insert match query: %w", buildErr)
		}
		if _, execErr := tx.ExecContext(ctx, query, args...); execErr != nil {
			return fmt.Errorf("insert match %s: %w", item.ID, execErr)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit insert matches tx: %w", err)
	}

	return nil
}

func (r *MatchRepository) Update(ctx context.Context, item match.Match) error {
	model, err := matchToInsertModel(item)
	if err != nil {
		return err
	}

	query, args, err := qb.Update("matches").
		Set("round", model.Round).
		Set("match_number", model.MatchNumber).
		Set("group_name", model.GroupName).
		Set("scheduled_date", model.ScheduledDate).
		Set("played_date", model.PlayedDate).
		Set("home_score", model.HomeScore).
		Set("away_score", model.AwayScore).
		Set("status", model.Status).
		Set("venue", model.Venue).
		Set("referee", model.Referee).
		Set("notes", model.Notes).
		Set("video_url", model.VideoURL).
		Set("highlights", model.Highlights).
		Set("photos", model.Photos).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", item.ID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update match query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update match: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("update match: match %s does not exist", item.ID)
	}

	return nil
}

// DeleteByLeague removes fixtures outright. Soft-deleted rows would trip the
// unique pairing constraint when a schedule is regenerated.
func (r *MatchRepository) DeleteByLeague(ctx context.Context, leagueID string) error {
	query, args, err := qb.DeleteFrom("matches").
		Where(qb.Eq("league_public_id", leagueID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete matches by league query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete matches by league: %w", err)
	}

	return nil
}

func (r *MatchRepository) ResetByLeague(ctx context.Context, leagueID string) error {
	query, args, err := qb.Update("matches").
		Set("home_score", 0).
		Set("away_score", 0).
		Set("status", match.StatusScheduled).
		Set("played_date", nil).
		Set("video_url", "").
		Set("highlights", "[]").
		SetExpr("photos", "'{}'::text[]").
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("league_public_id", leagueID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build reset matches query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("reset matches: %w", err)
	}

	return nil
}

func (r *MatchRepository) selectMatches(ctx context.Context, query string, args []any) ([]match.Match, error) {
	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select matches: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		item, err := matchFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}

	return out, nil
}
