package httpapi

import (
	"net/http"
	"strings"

	"github.com/fleague/fleague-api/internal/usecase"
)

func (h *Handler) GetStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetStandings")
	defer span.End()

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	rows, err := h.standingsService.Table(ctx, leagueID, accessFromRequest(r))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, standingsRowsToDTO(rows))
}

type groupTableDTO struct {
	Group string            `json:"group"`
	Rows  []standingsRowDTO `json:"rows"`
}

func (h *Handler) GetGroupStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetGroupStandings")
	defer span.End()

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	group := strings.TrimSpace(r.PathValue("group"))

	rows, err := h.standingsService.GroupTable(ctx, leagueID, group, accessFromRequest(r))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, groupTableDTO{Group: group, Rows: standingsRowsToDTO(rows)})
}

func (h *Handler) GetAllGroupStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetAllGroupStandings")
	defer span.End()

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	tables, err := h.standingsService.AllGroupTables(ctx, leagueID, accessFromRequest(r))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	dtos := make([]groupTableDTO, 0, len(tables))
	for _, table := range tables {
		dtos = append(dtos, groupTableDTO{Group: table.Group, Rows: standingsRowsToDTO(table.Rows)})
	}

	writeSuccess(ctx, w, http.StatusOK, dtos)
}

type summaryDTO struct {
	LeagueID        string            `json:"leagueId"`
	Status          string            `json:"status"`
	TeamCount       int               `json:"teamCount"`
	MatchesPlayed   int               `json:"matchesPlayed"`
	MatchesTotal    int               `json:"matchesTotal"`
	TotalGoals      int               `json:"totalGoals"`
	AvgGoalsPerGame float64           `json:"avgGoalsPerGame"`
	TopScorers      []standingsRowDTO `json:"topScorers"`
	BestDefense     []standingsRowDTO `json:"bestDefense"`
	BestForm        []standingsRowDTO `json:"bestForm"`
}

func (h *Handler) GetLeagueSummary(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeagueSummary")
	defer span.End()

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	summary, err := h.standingsService.Summary(ctx, leagueID, accessFromRequest(r))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, summaryDTO{
		LeagueID:        summary.LeagueID,
		Status:          string(summary.Status),
		TeamCount:       summary.TeamCount,
		MatchesPlayed:   summary.MatchesPlayed,
		MatchesTotal:    summary.MatchesTotal,
		TotalGoals:      summary.TotalGoals,
		AvgGoalsPerGame: summary.AvgGoalsPerGame,
		TopScorers:      standingsRowsToDTO(summary.TopScorers),
		BestDefense:     standingsRowsToDTO(summary.BestDefense),
		BestForm:        standingsRowsToDTO(summary.BestForm),
	})
}

type sideRecordDTO struct {
	Played       int `json:"played"`
	Won          int `json:"won"`
	Drawn        int `json:"drawn"`
	Lost         int `json:"lost"`
	GoalsFor     int `json:"goalsFor"`
	GoalsAgainst int `json:"goalsAgainst"`
}

func sideRecordToDTO(rec usecase.SideRecord) sideRecordDTO {
	return sideRecordDTO{
		Played:       rec.Played,
		Won:          rec.Won,
		Drawn:        rec.Drawn,
		Lost:         rec.Lost,
		GoalsFor:     rec.GoalsFor,
		GoalsAgainst: rec.GoalsAgainst,
	}
}

type teamDetailDTO struct {
	Team          teamDTO       `json:"team"`
	Home          sideRecordDTO `json:"home"`
	Away          sideRecordDTO `json:"away"`
	RecentMatches []matchDTO    `json:"recentMatches"`
}

func (h *Handler) GetTeamDetail(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamDetail")
	defer span.End()

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	teamID := strings.TrimSpace(r.PathValue("teamID"))

	detail, err := h.standingsService.TeamDetail(ctx, leagueID, teamID, accessFromRequest(r))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamDetailDTO{
		Team:          teamToDTO(detail.Team),
		Home:          sideRecordToDTO(detail.Home),
		Away:          sideRecordToDTO(detail.Away),
		RecentMatches: matchesToDTO(detail.RecentMatches),
	})
}
