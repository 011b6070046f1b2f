package postgres

import (
	"fmt"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/lib/pq"

	"github.com/fleague/fleague-api/internal/domain/match"
)

type matchTableModel struct {
	ID            int64          `db:"id"`
	PublicID      string         `db:"public_id"`
	LeagueID      string         `db:"league_public_id"`
	HomeTeamID    string         `db:"home_team_public_id"`
	AwayTeamID    string         `db:"away_team_public_id"`
	Round         int            `db:"round"`
	MatchNumber   int            `db:"match_number"`
	GroupName     string         `db:"group_name"`
	ScheduledDate *time.Time     `db:"scheduled_date"`
	PlayedDate    *time.Time     `db:"played_date"`
	HomeScore     int            `db:"home_score"`
	AwayScore     int            `db:"away_score"`
	Status        string         `db:"status"`
	Venue         string         `db:"venue"`
	Referee       string         `db:"referee"`
	Notes         string         `db:"notes"`
	VideoURL      string         `db:"video_url"`
	Highlights    string         `db:"highlights"`
	Photos        pq.StringArray `db:"photos"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
	DeletedAt     *time.Time     `db:"deleted_at"`
}

type matchInsertModel struct {
	PublicID      string         `db:"public_id"`
	LeagueID      string         `db:"league_public_id"`
	HomeTeamID    string         `db:"home_team_public_id"`
	AwayTeamID    string         `db:"away_team_public_id"`
	Round         int            `db:"round"`
	MatchNumber   int            `db:"match_number"`
	GroupName     string         `db:"group_name"`
	ScheduledDate *time.Time     `db:"scheduled_date"`
	PlayedDate    *time.Time     `db:"played_date"`
	HomeScore     int            `db:"home_score"`
	AwayScore     int            `db:"away_score"`
	Status        string         `db:"status"`
	Venue         string         `db:"venue"`
	Referee       string         `db:"referee"`
	Notes         string         `db:"notes"`
	VideoURL      string         `db:"video_url"`
	Highlights    string         `db:"highlights"`
	Photos        pq.StringArray `db:"photos"`
}

type highlightDocument struct {
	ID         string    `json:"id"`
	URL        string    `json:"url"`
	Title      string    `json:"title"`
	UploadedAt time.Time `json:"uploadedAt"`
}

func matchFromRow(row matchTableModel) (match.Match, error) {
	highlights, err := decodeHighlights(row.Highlights)
	if err != nil {
		return match.Match{}, fmt.Errorf("decode highlights for match %s: %w", row.PublicID, err)
	}

	return match.Match{
		ID:            row.PublicID,
		LeagueID:      row.LeagueID,
		HomeTeamID:    row.HomeTeamID,
		AwayTeamID:    row.AwayTeamID,
		Round:         row.Round,
		MatchNumber:   row.MatchNumber,
		Group:         row.GroupName,
		ScheduledDate: row.ScheduledDate,
		PlayedDate:    row.PlayedDate,
		Score:         match.Score{Home: row.HomeScore, Away: row.AwayScore},
		Status:        row.Status,
		Venue:         row.Venue,
		Referee:       row.Referee,
		Notes:         row.Notes,
		VideoURL:      row.VideoURL,
		Highlights:    highlights,
		Photos:        append([]string(nil), row.Photos...),
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}, nil
}

func matchToInsertModel(item match.Match) (matchInsertModel, error) {
	highlights, err := encodeHighlights(item.Highlights)
	if err != nil {
		return matchInsertModel{}, fmt.Errorf("encode highlights for match %s: %w", item.ID, err)
	}

	return matchInsertModel{
		PublicID:      item.ID,
		LeagueID:      item.LeagueID,
		HomeTeamID:    item.HomeTeamID,
		AwayTeamID:    item.AwayTeamID,
		Round:         item.Round,
		MatchNumber:   item.MatchNumber,
		GroupName:     item.Group,
		ScheduledDate: item.ScheduledDate,
		PlayedDate:    item.PlayedDate,
		HomeScore:     item.Score.Home,
		AwayScore:     item.Score.Away,
		Status:        item.Status,
		Venue:         item.Venue,
		Referee:       item.Referee,
		Notes:         item.Notes,
		VideoURL:      item.VideoURL,
		Highlights:    highlights,
		Photos:        pq.StringArray(item.Photos),
	}, nil
}

func encodeHighlights(items []match.Highlight) (string, error) {
	docs := make([]highlightDocument, 0, len(items))
	for _, item := range items {
		docs = append(docs, highlightDocument{
			ID:         item.ID,
			URL:        item.URL,
			Title:      item.Title,
			UploadedAt: item.UploadedAt,
		})
	}

	encoded, err := sonic.Marshal(docs)
	if err != nil {
		return "", err
	}

	return string(encoded), nil
}

func decodeHighlights(raw string) ([]match.Highlight, error) {
	if raw == "" || raw == "null" {
		return nil, nil
	}

	var docs []highlightDocument
	if err := sonic.Unmarshal([]byte(raw), &docs); err != nil {
		return nil, err
	}

	out := make([]match.Highlight, 0, len(docs))
	for _, doc := range docs {
		out = append(out, match.Highlight{
			ID:         doc.ID,
			URL:        doc.URL,
			Title:      doc.Title,
			UploadedAt: doc.UploadedAt,
		})
	}

	return out, nil
}
