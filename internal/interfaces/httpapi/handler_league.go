package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/fleague/fleague-api/internal/domain/league"
	"github.com/fleague/fleague-api/internal/usecase"
)

type groupSettingsRequest struct {
	NumberOfGroups int `json:"numberOfGroups" validate:"required,min=2,max=8"`
	TeamsPerGroup  int `json:"teamsPerGroup" validate:"required,min=3,max=6"`
}

type createLeagueRequest struct {
	Name          string                `json:"name" validate:"required,min=3,max=100"`
	Description   string                `json:"description" validate:"max=500"`
	Logo          string                `json:"logo" validate:"omitempty,url"`
	Format        string                `json:"format" validate:"required,oneof=round-robin group-stage"`
	Visibility    string                `json:"visibility" validate:"required,oneof=public private"`
	NumberOfTeams int                   `json:"numberOfTeams" validate:"required,min=2,max=32"`
	GroupSettings *groupSettingsRequest `json:"groupSettings"`
	StartDate     *time.Time            `json:"startDate"`
	EndDate       *time.Time            `json:"endDate"`
}

func (h *Handler) CreateLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateLeague")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req createLeagueRequest
	if err := decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	input := usecase.CreateLeagueInput{
		Name:          strings.TrimSpace(req.Name),
		Description:   strings.TrimSpace(req.Description),
		Logo:          req.Logo,
		Format:        league.Format(req.Format),
		Visibility:    league.Visibility(req.Visibility),
		NumberOfTeams: req.NumberOfTeams,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
	}
	if req.GroupSettings != nil {
		input.GroupSettings = &league.GroupSettings{
			NumberOfGroups: req.GroupSettings.NumberOfGroups,
			TeamsPerGroup:  req.GroupSettings.TeamsPerGroup,
		}
	}

	item, err := h.leagueService.Create(ctx, principal.UserID, input)
	if err != nil {
		h.logger.WarnContext(ctx, "create league failed", "owner_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, leagueToDTO(item, principal.UserID))
}

func (h *Handler) ListLeagues(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLeagues")
	defer span.End()

	items, err := h.leagueService.List(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leaguesToDTO(items, accessFromRequest(r).UserID))
}

func (h *Handler) ListMyLeagues(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyLeagues")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.leagueService.ListByOwner(ctx, principal.UserID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leaguesToDTO(items, principal.UserID))
}

func (h *Handler) GetLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeague")
	defer span.End()

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	access := accessFromRequest(r)

	item, err := h.leagueService.Get(ctx, leagueID, access)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leagueToDTO(item, access.UserID))
}

type updateLeagueRequest struct {
	Name        *string    `json:"name" validate:"omitempty,min=3,max=100"`
	Description *string    `json:"description" validate:"omitempty,max=500"`
	Logo        *string    `json:"logo" validate:"omitempty,url"`
	Visibility  *string    `json:"visibility" validate:"omitempty,oneof=public private"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
}

func (h *Handler) UpdateLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateLeague")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	var req updateLeagueRequest
	if err := decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	input := usecase.UpdateLeagueInput{
		Name:        req.Name,
		Description: req.Description,
		Logo:        req.Logo,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	}
	if req.Visibility != nil {
		visibility := league.Visibility(*req.Visibility)
		input.Visibility = &visibility
	}

	item, err := h.leagueService.Update(ctx, principal.UserID, leagueID, input)
	if err != nil {
		h.logger.WarnContext(ctx, "update league failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leagueToDTO(item, principal.UserID))
}

func (h *Handler) DeleteLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteLeague")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	if err := h.leagueService.Delete(ctx, principal.UserID, leagueID); err != nil {
		h.logger.WarnContext(ctx, "delete league failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"id": leagueID, "deleted": "true"})
}

func (h *Handler) GenerateSchedule(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GenerateSchedule")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	items, err := h.scheduleService.Generate(ctx, principal.UserID, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "generate schedule failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, matchesToDTO(items))
}

func (h *Handler) DeleteSchedule(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteSchedule")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	if err := h.scheduleService.Delete(ctx, principal.UserID, leagueID); err != nil {
		h.logger.WarnContext(ctx, "delete schedule failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"leagueId": leagueID, "deleted": "true"})
}

// ResetLeague wipes every result of the league: team statistics go back to
// zero and all matches return to the scheduled state.
func (h *Handler) ResetLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ResetLeague")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	if err := h.resultService.ResetLeague(ctx, principal.UserID, leagueID); err != nil {
		h.logger.WarnContext(ctx, "reset league failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"leagueId": leagueID, "reset": "true"})
}

func (h *Handler) RebuildForms(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RebuildForms")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	if err := h.resultService.RebuildForms(ctx, principal.UserID, leagueID); err != nil {
		h.logger.WarnContext(ctx, "rebuild forms failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"leagueId": leagueID, "rebuilt": "true"})
}
