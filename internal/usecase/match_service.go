package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fleague/fleague-api/internal/domain/league"
	"github.com/fleague/fleague-api/internal/domain/match"
	idgen "github.com/fleague/fleague-api/internal/platform/id"
	"github.com/fleague/fleague-api/internal/platform/logging"
)

type MatchService struct {
	leagueRepo league.Repository
	matchRepo  match.Repository
	idGen      idgen.Generator
	logger     *logging.Logger
}

func NewMatchService(
	leagueRepo league.Repository,
	matchRepo match.Repository,
	idGen idgen.Generator,
	logger *logging.Logger,
) *MatchService {
	if logger == nil {
		logger = logging.Default()
	}

	return &MatchService{
		leagueRepo: leagueRepo,
		matchRepo:  matchRepo,
		idGen:      idGen,
		logger:     logger,
	}
}

func (s *MatchService) ListByLeague(ctx context.Context, leagueID string, filter match.Filter, access Access) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.ListByLeague")
	defer span.End()

	item, err := loadLeague(ctx, s.leagueRepo, leagueID)
	if err != nil {
		return nil, err
	}
	if err := authorizeLeagueView(item, access); err != nil {
		return nil, err
	}
	if filter.Status != "" && !match.ValidStatus(filter.Status) {
		return nil, fmt.Errorf("%w: invalid match status %q", ErrInvalidInput, filter.Status)
	}

	matches, err := s.matchRepo.ListByLeague(ctx, leagueID, filter)
	if err != nil {
		return nil, fmt.Errorf("list league matches: %w", err)
	}

	return matches, nil
}

func (s *MatchService) Get(ctx context.Context, leagueID, matchID string, access Access) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Get")
	defer span.End()

	item, err := loadLeague(ctx, s.leagueRepo, leagueID)
	if err != nil {
		return match.Match{}, err
	}
	if err := authorizeLeagueView(item, access); err != nil {
		return match.Match{}, err
	}

	found, err := loadMatch(ctx, s.matchRepo, leagueID, matchID)
	if err != nil {
		return match.Match{}, err
	}

	return found, nil
}

type UpdateMatchInfoInput struct {
	Venue         *string
	Referee       *string
	Notes         *string
	ScheduledDate *time.Time
}

// UpdateInfo edits the organisational details of a match without touching
// its competitive state.
func (s *MatchService) UpdateInfo(ctx context.Context, ownerID, leagueID, matchID string, input UpdateMatchInfoInput) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.UpdateInfo")
	defer span.End()

	found, err := s.loadOwnedMatch(ctx, ownerID, leagueID, matchID)
	if err != nil {
		return match.Match{}, err
	}

	if input.Venue != nil {
		found.Venue = strings.TrimSpace(*input.Venue)
	}
	if input.Referee != nil {
		found.Referee = strings.TrimSpace(*input.Referee)
	}
	if input.Notes != nil {
		found.Notes = *input.Notes
	}
	if input.ScheduledDate != nil {
		found.ScheduledDate = input.ScheduledDate
	}
	found.UpdatedAt = time.Now().UTC()

	if err := s.matchRepo.Update(ctx, found); err != nil {
		return match.Match{}, fmt.Errorf("update match: %w", err)
	}

	return found, nil
}

// UpdateStatus moves a match between non-result statuses. Finishing a match
// goes through result processing instead, and a finished match can only
// leave that state through a result reset.
func (s *MatchService) UpdateStatus(ctx context.Context, ownerID, leagueID, matchID, status string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.UpdateStatus")
	defer span.End()

	if !match.ValidStatus(status) {
		return match.Match{}, fmt.Errorf("%w: invalid match status %q", ErrInvalidInput, status)
	}
	if status == match.StatusFinished {
		return match.Match{}, fmt.Errorf("%w: finish a match by submitting its result", ErrInvalidInput)
	}

	found, err := s.loadOwnedMatch(ctx, ownerID, leagueID, matchID)
	if err != nil {
		return match.Match{}, err
	}
	if found.Status == match.StatusFinished {
		return match.Match{}, fmt.Errorf("%w: a finished match must have its result reset first", ErrStateConflict)
	}

	found.Status = status
	found.UpdatedAt = time.Now().UTC()

	if err := s.matchRepo.Update(ctx, found); err != nil {
		return match.Match{}, fmt.Errorf("update match: %w", err)
	}

	return found, nil
}

func (s *MatchService) SetVideo(ctx context.Context, ownerID, leagueID, matchID, videoURL string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.SetVideo")
	defer span.End()

	found, err := s.loadOwnedMatch(ctx, ownerID, leagueID, matchID)
	if err != nil {
		return match.Match{}, err
	}

	found.VideoURL = strings.TrimSpace(videoURL)
	found.UpdatedAt = time.Now().UTC()

	if err := s.matchRepo.Update(ctx, found); err != nil {
		return match.Match{}, fmt.Errorf("update match: %w", err)
	}

	return found, nil
}

// AddPhotos appends photo URLs to the match gallery, bounded by
// match.MaxPhotos in total.
func (s *MatchService) AddPhotos(ctx context.Context, ownerID, leagueID, matchID string, photos []string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.AddPhotos")
	defer span.End()

	if len(photos) == 0 {
		return match.Match{}, fmt.Errorf("%w: at least one photo is required", ErrInvalidInput)
	}

	found, err := s.loadOwnedMatch(ctx, ownerID, leagueID, matchID)
	if err != nil {
		return match.Match{}, err
	}
	if len(found.Photos)+len(photos) > match.MaxPhotos {
		return match.Match{}, fmt.Errorf("%w: a match can hold at most %d photos", ErrInvalidInput, match.MaxPhotos)
	}

	found.Photos = append(found.Photos, photos...)
	found.UpdatedAt = time.Now().UTC()

	if err := s.matchRepo.Update(ctx, found); err != nil {
		return match.Match{}, fmt.Errorf("update match: %w", err)
	}

	return found, nil
}

type HighlightInput struct {
	URL   string
	Title string
}

// AddHighlights attaches highlight clips to a finished match. The number of
// highlights never exceeds the total goals scored in the match.
func (s *MatchService) AddHighlights(ctx context.Context, ownerID, leagueID, matchID string, inputs []HighlightInput) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.AddHighlights")
	defer span.End()

	if len(inputs) == 0 {
		return match.Match{}, fmt.Errorf("%w: at least one highlight is required", ErrInvalidInput)
	}

	found, err := s.loadOwnedMatch(ctx, ownerID, leagueID, matchID)
	if err != nil {
		return match.Match{}, err
	}
	if found.Status != match.StatusFinished {
		return match.Match{}, fmt.Errorf("%w: highlights can only be added to a finished match", ErrStateConflict)
	}

	totalGoals := found.Score.Home + found.Score.Away
	if len(found.Highlights)+len(inputs) > totalGoals {
		return match.Match{}, fmt.Errorf("%w: a match with %d goals can hold at most %d highlights",
			ErrInvalidInput, totalGoals, totalGoals)
	}

	now := time.Now().UTC()
	for _, input := range inputs {
		url := strings.TrimSpace(input.URL)
		if url == "" {
			return match.Match{}, fmt.Errorf("%w: highlight url is required", ErrInvalidInput)
		}
		highlightID, idErr := s.idGen.NewID()
		if idErr != nil {
			return match.Match{}, fmt.Errorf("generate highlight id: %w", idErr)
		}
		found.Highlights = append(found.Highlights, match.Highlight{
			ID:         highlightID,
			URL:        url,
			Title:      strings.TrimSpace(input.Title),
			UploadedAt: now,
		})
	}
	found.UpdatedAt = now

	if err := s.matchRepo.Update(ctx, found); err != nil {
		return match.Match{}, fmt.Errorf("update match: %w", err)
	}

	return found, nil
}

func (s *MatchService) RemoveHighlight(ctx context.Context, ownerID, leagueID, matchID, highlightID string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.RemoveHighlight")
	defer span.End()

	found, err := s.loadOwnedMatch(ctx, ownerID, leagueID, matchID)
	if err != nil {
		return match.Match{}, err
	}

	kept := found.Highlights[:0]
	removed := false
	for _, highlight := range found.Highlights {
		if highlight.ID == highlightID {
			removed = true
			continue
		}
		kept = append(kept, highlight)
	}
	if !removed {
		return match.Match{}, fmt.Errorf("%w: highlight=%s", ErrNotFound, highlightID)
	}

	found.Highlights = kept
	found.UpdatedAt = time.Now().UTC()

	if err := s.matchRepo.Update(ctx, found); err != nil {
		return match.Match{}, fmt.Errorf("update match: %w", err)
	}

	return found, nil
}

func (s *MatchService) loadOwnedMatch(ctx context.Context, ownerID, leagueID, matchID string) (match.Match, error) {
	item, err := loadLeague(ctx, s.leagueRepo, leagueID)
	if err != nil {
		return match.Match{}, err
	}
	if err := requireLeagueOwner(item, ownerID); err != nil {
		return match.Match{}, err
	}

	return loadMatch(ctx, s.matchRepo, leagueID, matchID)
}

func loadMatch(ctx context.Context, repo match.Repository, leagueID, matchID string) (match.Match, error) {
	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return match.Match{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	found, exists, err := repo.GetByID(ctx, matchID)
	if err != nil {
		return match.Match{}, fmt.Errorf("get match: %w", err)
	}
	if !exists || found.LeagueID != leagueID {
		return match.Match{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}

	return found, nil
}
