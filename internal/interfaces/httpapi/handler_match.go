package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/fleague/fleague-api/internal/domain/match"
	"github.com/fleague/fleague-api/internal/usecase"
)

func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatches")
	defer span.End()

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	filter := match.Filter{
		Group:  strings.TrimSpace(r.URL.Query().Get("group")),
		Status: strings.TrimSpace(r.URL.Query().Get("status")),
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("round")); raw != "" {
		round, err := strconv.Atoi(raw)
		if err != nil || round < 1 {
			writeError(ctx, w, fmt.Errorf("%w: round must be a positive integer", usecase.ErrInvalidInput))
			return
		}
		filter.Round = round
	}

	items, err := h.matchService.ListByLeague(ctx, leagueID, filter, accessFromRequest(r))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchesToDTO(items))
}

func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatch")
	defer span.End()

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	matchID := strings.TrimSpace(r.PathValue("matchID"))

	item, err := h.matchService.Get(ctx, leagueID, matchID, accessFromRequest(r))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(item))
}

type updateMatchInfoRequest struct {
	Venue         *string    `json:"venue" validate:"omitempty,max=200"`
	Referee       *string    `json:"referee" validate:"omitempty,max=100"`
	Notes         *string    `json:"notes" validate:"omitempty,max=1000"`
	ScheduledDate *time.Time `json:"scheduledDate"`
}

func (h *Handler) UpdateMatchInfo(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateMatchInfo")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	matchID := strings.TrimSpace(r.PathValue("matchID"))
	var req updateMatchInfoRequest
	if err := decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.matchService.UpdateInfo(ctx, principal.UserID, leagueID, matchID, usecase.UpdateMatchInfoInput{
		Venue:         req.Venue,
		Referee:       req.Referee,
		Notes:         req.Notes,
		ScheduledDate: req.ScheduledDate,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update match info failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(item))
}

type updateMatchStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func (h *Handler) UpdateMatchStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateMatchStatus")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	matchID := strings.TrimSpace(r.PathValue("matchID"))
	var req updateMatchStatusRequest
	if err := decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.matchService.UpdateStatus(ctx, principal.UserID, leagueID, matchID, req.Status)
	if err != nil {
		h.logger.WarnContext(ctx, "update match status failed", "match_id", matchID, "status", req.Status, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(item))
}

type submitResultRequest struct {
	HomeScore int `json:"homeScore" validate:"min=0,max=99"`
	AwayScore int `json:"awayScore" validate:"min=0,max=99"`
}

// SubmitResult records (or corrects) the final score of a match and updates
// both teams' statistics.
func (h *Handler) SubmitResult(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitResult")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	matchID := strings.TrimSpace(r.PathValue("matchID"))
	var req submitResultRequest
	if err := decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.resultService.ProcessResult(ctx, principal.UserID, leagueID, matchID, usecase.ResultInput{
		HomeScore: req.HomeScore,
		AwayScore: req.AwayScore,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "process result failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(item))
}

func (h *Handler) ResetResult(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ResetResult")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	matchID := strings.TrimSpace(r.PathValue("matchID"))

	item, err := h.resultService.ResetMatch(ctx, principal.UserID, leagueID, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "reset result failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(item))
}

type setVideoRequest struct {
	VideoURL string `json:"videoUrl" validate:"required,url"`
}

func (h *Handler) SetMatchVideo(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetMatchVideo")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	matchID := strings.TrimSpace(r.PathValue("matchID"))
	var req setVideoRequest
	if err := decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.matchService.SetVideo(ctx, principal.UserID, leagueID, matchID, req.VideoURL)
	if err != nil {
		h.logger.WarnContext(ctx, "set match video failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(item))
}

type addPhotosRequest struct {
	Photos []string `json:"photos" validate:"required,min=1,max=10,dive,url"`
}

func (h *Handler) AddMatchPhotos(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddMatchPhotos")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	matchID := strings.TrimSpace(r.PathValue("matchID"))
	var req addPhotosRequest
	if err := decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.matchService.AddPhotos(ctx, principal.UserID, leagueID, matchID, req.Photos)
	if err != nil {
		h.logger.WarnContext(ctx, "add match photos failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(item))
}

type highlightRequest struct {
	URL   string `json:"url" validate:"required,url"`
	Title string `json:"title" validate:"max=200"`
}

type addHighlightsRequest struct {
	Highlights []highlightRequest `json:"highlights" validate:"required,min=1,dive"`
}

func (h *Handler) AddMatchHighlights(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddMatchHighlights")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	matchID := strings.TrimSpace(r.PathValue("matchID"))
	var req addHighlightsRequest
	if err := decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	inputs := make([]usecase.HighlightInput, 0, len(req.Highlights))
	for _, hl := range req.Highlights {
		inputs = append(inputs, usecase.HighlightInput{URL: hl.URL, Title: strings.TrimSpace(hl.Title)})
	}

	item, err := h.matchService.AddHighlights(ctx, principal.UserID, leagueID, matchID, inputs)
	if err != nil {
		h.logger.WarnContext(ctx, "add match highlights failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(item))
}

func (h *Handler) RemoveMatchHighlight(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RemoveMatchHighlight")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	matchID := strings.TrimSpace(r.PathValue("matchID"))
	highlightID := strings.TrimSpace(r.PathValue("highlightID"))

	item, err := h.matchService.RemoveHighlight(ctx, principal.UserID, leagueID, matchID, highlightID)
	if err != nil {
		h.logger.WarnContext(ctx, "remove match highlight failed", "match_id", matchID, "highlight_id", highlightID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(item))
}
