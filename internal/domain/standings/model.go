package standings

import "github.com/fleague/fleague-api/internal/domain/team"

// TeamRef carries the public-facing team fields of a table row.
type TeamRef struct {
	ID        string
	Name      string
	ShortName string
	Logo      string
}

// Row is one ranked entry of a standings table or leaderboard. Position is
// 1-based within the ordering the row was produced by.
type Row struct {
	Position int
	Team     TeamRef
	Stats    team.Stats
	Form     []string
}
