package httpapi

import (
	"net/http"
	"strings"

	"github.com/fleague/fleague-api/internal/usecase"
)

type addTeamRequest struct {
	Name      string `json:"name" validate:"required,max=100"`
	ShortName string `json:"shortName" validate:"required,min=2,max=5"`
	Logo      string `json:"logo" validate:"omitempty,url"`
}

func (h *Handler) AddTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddTeam")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	var req addTeamRequest
	if err := decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.teamService.Add(ctx, principal.UserID, leagueID, usecase.AddTeamInput{
		Name:      strings.TrimSpace(req.Name),
		ShortName: req.ShortName,
		Logo:      req.Logo,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "add team failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, teamToDTO(item))
}

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	group := strings.TrimSpace(r.URL.Query().Get("group"))

	items, err := h.teamService.ListByLeague(ctx, leagueID, group, accessFromRequest(r))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamsToDTO(items))
}

func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeam")
	defer span.End()

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	teamID := strings.TrimSpace(r.PathValue("teamID"))

	item, err := h.teamService.Get(ctx, leagueID, teamID, accessFromRequest(r))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamToDTO(item))
}

type updateTeamRequest struct {
	Name      *string `json:"name" validate:"omitempty,min=1,max=100"`
	ShortName *string `json:"shortName" validate:"omitempty,min=2,max=5"`
	Logo      *string `json:"logo" validate:"omitempty,url"`
}

func (h *Handler) UpdateTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateTeam")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	teamID := strings.TrimSpace(r.PathValue("teamID"))
	var req updateTeamRequest
	if err := decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.teamService.Update(ctx, principal.UserID, leagueID, teamID, usecase.UpdateTeamInput{
		Name:      req.Name,
		ShortName: req.ShortName,
		Logo:      req.Logo,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update team failed", "league_id", leagueID, "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamToDTO(item))
}

func (h *Handler) RemoveTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RemoveTeam")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	teamID := strings.TrimSpace(r.PathValue("teamID"))
	if err := h.teamService.Remove(ctx, principal.UserID, leagueID, teamID); err != nil {
		h.logger.WarnContext(ctx, "remove team failed", "league_id", leagueID, "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"id": teamID, "deleted": "true"})
}

func (h *Handler) AssignGroups(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AssignGroups")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	items, err := h.teamService.AssignGroups(ctx, principal.UserID, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "assign groups failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamsToDTO(items))
}

func (h *Handler) ResetGroups(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ResetGroups")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	if err := h.teamService.ResetGroups(ctx, principal.UserID, leagueID); err != nil {
		h.logger.WarnContext(ctx, "reset groups failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"leagueId": leagueID, "reset": "true"})
}
