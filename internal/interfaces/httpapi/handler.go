package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/fleague/fleague-api/internal/domain/league"
	"github.com/fleague/fleague-api/internal/domain/match"
	"github.com/fleague/fleague-api/internal/domain/standings"
	"github.com/fleague/fleague-api/internal/domain/team"
	"github.com/fleague/fleague-api/internal/domain/user"
	"github.com/fleague/fleague-api/internal/platform/logging"
	"github.com/fleague/fleague-api/internal/usecase"
)

type Handler struct {
	leagueService    *usecase.LeagueService
	teamService      *usecase.TeamService
	scheduleService  *usecase.ScheduleService
	matchService     *usecase.MatchService
	resultService    *usecase.ResultService
	standingsService *usecase.StandingsService
	sweepService     *usecase.StatusSweepService
	logger           *logging.Logger
	validator        *validator.Validate
}

func NewHandler(
	leagueService *usecase.LeagueService,
	teamService *usecase.TeamService,
	scheduleService *usecase.ScheduleService,
	matchService *usecase.MatchService,
	resultService *usecase.ResultService,
	standingsService *usecase.StandingsService,
	sweepService *usecase.StatusSweepService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		leagueService:    leagueService,
		teamService:      teamService,
		scheduleService:  scheduleService,
		matchService:     matchService,
		resultService:    resultService,
		standingsService: standingsService,
		sweepService:     sweepService,
		logger:           logger,
		validator:        validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeSuccess(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func decodeRequest(r *http.Request, dst any) error {
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// accessFromRequest combines the optionally authenticated principal with a
// league share token passed as the "token" query parameter.
func accessFromRequest(r *http.Request) usecase.Access {
	access := usecase.Access{
		LeagueToken: strings.TrimSpace(r.URL.Query().Get("token")),
	}
	if principal, ok := principalFromContext(r.Context()); ok {
		access.UserID = principal.UserID
	}

	return access
}

func requirePrincipal(ctx context.Context) (user.Principal, error) {
	principal, ok := principalFromContext(ctx)
	if !ok || principal.UserID == "" {
		return user.Principal{}, fmt.Errorf("%w: authentication required", usecase.ErrUnauthorized)
	}

	return principal, nil
}

type groupSettingsDTO struct {
	NumberOfGroups int `json:"numberOfGroups"`
	TeamsPerGroup  int `json:"teamsPerGroup"`
}

type leagueDTO struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	Description   string            `json:"description,omitempty"`
	Logo          string            `json:"logo,omitempty"`
	Format        string            `json:"format"`
	Visibility    string            `json:"visibility"`
	Status        string            `json:"status"`
	AccessToken   string            `json:"accessToken,omitempty"`
	NumberOfTeams int               `json:"numberOfTeams"`
	GroupSettings *groupSettingsDTO `json:"groupSettings,omitempty"`
	StartDate     *time.Time        `json:"startDate,omitempty"`
	EndDate       *time.Time        `json:"endDate,omitempty"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

// leagueToDTO renders a league. The private share token is only exposed to
// the league owner.
func leagueToDTO(item league.League, viewerID string) leagueDTO {
	dto := leagueDTO{
		ID:            item.ID,
		Name:          item.Name,
		Description:   item.Description,
		Logo:          item.Logo,
		Format:        string(item.Format),
		Visibility:    string(item.Visibility),
		Status:        string(item.TournamentStatus),
		NumberOfTeams: item.NumberOfTeams,
		StartDate:     item.StartDate,
		EndDate:       item.EndDate,
		CreatedAt:     item.CreatedAt,
		UpdatedAt:     item.UpdatedAt,
	}
	if item.GroupSettings != nil {
		dto.GroupSettings = &groupSettingsDTO{
			NumberOfGroups: item.GroupSettings.NumberOfGroups,
			TeamsPerGroup:  item.GroupSettings.TeamsPerGroup,
		}
	}
	if viewerID != "" && viewerID == item.OwnerID {
		dto.AccessToken = item.AccessToken
	}

	return dto
}

func leaguesToDTO(items []league.League, viewerID string) []leagueDTO {
	dtos := make([]leagueDTO, 0, len(items))
	for _, item := range items {
		dtos = append(dtos, leagueToDTO(item, viewerID))
	}

	return dtos
}

type statsDTO struct {
	Played         int `json:"played"`
	Won            int `json:"won"`
	Drawn          int `json:"drawn"`
	Lost           int `json:"lost"`
	GoalsFor       int `json:"goalsFor"`
	GoalsAgainst   int `json:"goalsAgainst"`
	GoalDifference int `json:"goalDifference"`
	Points         int `json:"points"`
}

func statsToDTO(s team.Stats) statsDTO {
	return statsDTO{
		Played:         s.Played,
		Won:            s.Won,
		Drawn:          s.Drawn,
		Lost:           s.Lost,
		GoalsFor:       s.GoalsFor,
		GoalsAgainst:   s.GoalsAgainst,
		GoalDifference: s.GoalDifference,
		Points:         s.Points,
	}
}

type teamDTO struct {
	ID        string    `json:"id"`
	LeagueID  string    `json:"leagueId"`
	Name      string    `json:"name"`
	ShortName string    `json:"shortName"`
	Logo      string    `json:"logo,omitempty"`
	Group     string    `json:"group,omitempty"`
	Stats     statsDTO  `json:"stats"`
	Form      []string  `json:"form"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func teamToDTO(item team.Team) teamDTO {
	form := item.Form
	if form == nil {
		form = []string{}
	}

	return teamDTO{
		ID:        item.ID,
		LeagueID:  item.LeagueID,
		Name:      item.Name,
		ShortName: item.ShortName,
		Logo:      item.Logo,
		Group:     item.Group,
		Stats:     statsToDTO(item.Stats),
		Form:      form,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
}

func teamsToDTO(items []team.Team) []teamDTO {
	dtos := make([]teamDTO, 0, len(items))
	for _, item := range items {
		dtos = append(dtos, teamToDTO(item))
	}

	return dtos
}

type scoreDTO struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

type highlightDTO struct {
	ID         string    `json:"id"`
	URL        string    `json:"url"`
	Title      string    `json:"title,omitempty"`
	UploadedAt time.Time `json:"uploadedAt"`
}

type matchDTO struct {
	ID            string         `json:"id"`
	LeagueID      string         `json:"leagueId"`
	HomeTeamID    string         `json:"homeTeamId"`
	AwayTeamID    string         `json:"awayTeamId"`
	Round         int            `json:"round"`
	MatchNumber   int            `json:"matchNumber"`
	Group         string         `json:"group,omitempty"`
	ScheduledDate *time.Time     `json:"scheduledDate,omitempty"`
	PlayedDate    *time.Time     `json:"playedDate,omitempty"`
	Score         *scoreDTO      `json:"score,omitempty"`
	Status        string         `json:"status"`
	Venue         string         `json:"venue,omitempty"`
	Referee       string         `json:"referee,omitempty"`
	Notes         string         `json:"notes,omitempty"`
	VideoURL      string         `json:"videoUrl,omitempty"`
	Highlights    []highlightDTO `json:"highlights"`
	Photos        []string       `json:"photos"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

func matchToDTO(item match.Match) matchDTO {
	highlights := make([]highlightDTO, 0, len(item.Highlights))
	for _, hl := range item.Highlights {
		highlights = append(highlights, highlightDTO{
			ID:         hl.ID,
			URL:        hl.URL,
			Title:      hl.Title,
			UploadedAt: hl.UploadedAt,
		})
	}
	photos := item.Photos
	if photos == nil {
		photos = []string{}
	}

	dto := matchDTO{
		ID:            item.ID,
		LeagueID:      item.LeagueID,
		HomeTeamID:    item.HomeTeamID,
		AwayTeamID:    item.AwayTeamID,
		Round:         item.Round,
		MatchNumber:   item.MatchNumber,
		Group:         item.Group,
		ScheduledDate: item.ScheduledDate,
		PlayedDate:    item.PlayedDate,
		Status:        item.Status,
		Venue:         item.Venue,
		Referee:       item.Referee,
		Notes:         item.Notes,
		VideoURL:      item.VideoURL,
		Highlights:    highlights,
		Photos:        photos,
		CreatedAt:     item.CreatedAt,
		UpdatedAt:     item.UpdatedAt,
	}
	if item.Status == match.StatusFinished {
		dto.Score = &scoreDTO{Home: item.Score.Home, Away: item.Score.Away}
	}

	return dto
}

func matchesToDTO(items []match.Match) []matchDTO {
	dtos := make([]matchDTO, 0, len(items))
	for _, item := range items {
		dtos = append(dtos, matchToDTO(item))
	}

	return dtos
}

type teamRefDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"shortName"`
	Logo      string `json:"logo,omitempty"`
}

type standingsRowDTO struct {
	Position int        `json:"position"`
	Team     teamRefDTO `json:"team"`
	Stats    statsDTO   `json:"stats"`
	Form     []string   `json:"form"`
}

func standingsRowsToDTO(rows []standings.Row) []standingsRowDTO {
	dtos := make([]standingsRowDTO, 0, len(rows))
	for _, row := range rows {
		form := row.Form
		if form == nil {
			form = []string{}
		}
		dtos = append(dtos, standingsRowDTO{
			Position: row.Position,
			Team: teamRefDTO{
				ID:        row.Team.ID,
				Name:      row.Team.Name,
				ShortName: row.Team.ShortName,
				Logo:      row.Team.Logo,
			},
			Stats: statsToDTO(row.Stats),
			Form:  form,
		})
	}

	return dtos
}
