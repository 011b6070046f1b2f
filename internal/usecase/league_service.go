package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fleague/fleague-api/internal/domain/league"
	"github.com/fleague/fleague-api/internal/domain/match"
	"github.com/fleague/fleague-api/internal/domain/team"
	idgen "github.com/fleague/fleague-api/internal/platform/id"
	"github.com/fleague/fleague-api/internal/platform/logging"
)

// Access identifies the caller on read paths: an authenticated user id
// (may be empty for anonymous calls) and the optional private-league
// access token supplied with the request.
type Access struct {
	UserID      string
	LeagueToken string
}

type LeagueService struct {
	leagueRepo league.Repository
	teamRepo   team.Repository
	matchRepo  match.Repository
	idGen      idgen.Generator
	logger     *logging.Logger
}

func NewLeagueService(
	leagueRepo league.Repository,
	teamRepo team.Repository,
	matchRepo match.Repository,
	idGen idgen.Generator,
	logger *logging.Logger,
) *LeagueService {
	if logger == nil {
		logger = logging.Default()
	}

	return &LeagueService{
		leagueRepo: leagueRepo,
		teamRepo:   teamRepo,
		matchRepo:  matchRepo,
		idGen:      idGen,
		logger:     logger,
	}
}

type CreateLeagueInput struct {
	Name          string
	Description   string
	Logo          string
	Format        league.Format
	Visibility    league.Visibility
	NumberOfTeams int
	GroupSettings *league.GroupSettings
	StartDate     *time.Time
	EndDate       *time.Time
}

func (s *LeagueService) Create(ctx context.Context, ownerID string, input CreateLeagueInput) (league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.Create")
	defer span.End()

	leagueID, err := s.idGen.NewID()
	if err != nil {
		return league.League{}, fmt.Errorf("generate league id: %w", err)
	}

	now := time.Now().UTC()
	item := league.League{
		ID:               leagueID,
		OwnerID:          ownerID,
		Name:             strings.TrimSpace(input.Name),
		Description:      strings.TrimSpace(input.Description),
		Logo:             input.Logo,
		Format:           input.Format,
		Visibility:       input.Visibility,
		TournamentStatus: league.DetermineStatus(input.StartDate, input.EndDate, now),
		NumberOfTeams:    input.NumberOfTeams,
		GroupSettings:    input.GroupSettings,
		StartDate:        input.StartDate,
		EndDate:          input.EndDate,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if item.Visibility == "" {
		item.Visibility = league.VisibilityPublic
	}
	if item.Visibility == league.VisibilityPrivate {
		token, tokenErr := s.idGen.NewID()
		if tokenErr != nil {
			return league.League{}, fmt.Errorf("generate league access token: %w", tokenErr)
		}
		item.AccessToken = token
	}

	if err := item.Validate(); err != nil {
		return league.League{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.leagueRepo.Insert(ctx, item); err != nil {
		return league.League{}, fmt.Errorf("insert league: %w", err)
	}

	s.logger.InfoContext(ctx, "league created",
		"league_id", item.ID,
		"format", string(item.Format),
		"teams", item.NumberOfTeams,
	)

	return item, nil
}

// List returns the public leagues.
func (s *LeagueService) List(ctx context.Context) ([]league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.List")
	defer span.End()

	items, err := s.leagueRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list leagues: %w", err)
	}

	out := make([]league.League, 0, len(items))
	for _, item := range items {
		if item.Visibility == league.VisibilityPublic {
			out = append(out, item)
		}
	}

	return out, nil
}

func (s *LeagueService) ListByOwner(ctx context.Context, ownerID string) ([]league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.ListByOwner")
	defer span.End()

	items, err := s.leagueRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list leagues by owner: %w", err)
	}

	return items, nil
}

func (s *LeagueService) Get(ctx context.Context, leagueID string, access Access) (league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.Get")
	defer span.End()

	item, err := loadLeague(ctx, s.leagueRepo, leagueID)
	if err != nil {
		return league.League{}, err
	}
	if err := authorizeLeagueView(item, access); err != nil {
		return league.League{}, err
	}

	return item, nil
}

type UpdateLeagueInput struct {
	Name        *string
	Description *string
	Logo        *string
	Visibility  *league.Visibility
	StartDate   *time.Time
	EndDate     *time.Time
}

func (s *LeagueService) Update(ctx context.Context, ownerID, leagueID string, input UpdateLeagueInput) (league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.Update")
	defer span.End()

	item, err := loadLeague(ctx, s.leagueRepo, leagueID)
	if err != nil {
		return league.League{}, err
	}
	if err := requireLeagueOwner(item, ownerID); err != nil {
		return league.League{}, err
	}

	now := time.Now().UTC()
	if !league.CanMutate(item.TournamentStatus, input.StartDate, now) {
		return league.League{}, fmt.Errorf("%w: a %s league cannot be updated this way", ErrStateConflict, item.TournamentStatus)
	}

	if input.Name != nil {
		item.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		item.Description = strings.TrimSpace(*input.Description)
	}
	if input.Logo != nil {
		item.Logo = *input.Logo
	}
	if input.Visibility != nil && *input.Visibility != item.Visibility {
		item.Visibility = *input.Visibility
		if item.Visibility == league.VisibilityPrivate && item.AccessToken == "" {
			token, tokenErr := s.idGen.NewID()
			if tokenErr != nil {
				return league.League{}, fmt.Errorf("generate league access token: %w", tokenErr)
			}
			item.AccessToken = token
		}
	}
	if input.StartDate != nil {
		item.StartDate = input.StartDate
	}
	if input.EndDate != nil {
		item.EndDate = input.EndDate
	}

	item.TournamentStatus = league.DetermineStatus(item.StartDate, item.EndDate, now)
	item.UpdatedAt = now

	if err := item.Validate(); err != nil {
		return league.League{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.leagueRepo.Update(ctx, item); err != nil {
		return league.League{}, fmt.Errorf("update league: %w", err)
	}

	return item, nil
}

// Delete removes a league and everything referencing it. An ongoing league
// cannot be deleted.
func (s *LeagueService) Delete(ctx context.Context, ownerID, leagueID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.Delete")
	defer span.End()

	item, err := loadLeague(ctx, s.leagueRepo, leagueID)
	if err != nil {
		return err
	}
	if err := requireLeagueOwner(item, ownerID); err != nil {
		return err
	}
	if item.TournamentStatus == league.StatusOngoing {
		return fmt.Errorf("%w: an ongoing league cannot be deleted", ErrStateConflict)
	}

	if err := s.matchRepo.DeleteByLeague(ctx, leagueID); err != nil {
		return fmt.Errorf("delete league matches: %w", err)
	}
	if err := s.teamRepo.DeleteByLeague(ctx, leagueID); err != nil {
		return fmt.Errorf("delete league teams: %w", err)
	}
	if err := s.leagueRepo.Delete(ctx, leagueID); err != nil {
		return fmt.Errorf("delete league: %w", err)
	}

	s.logger.InfoContext(ctx, "league deleted", "league_id", leagueID)

	return nil
}

// loadLeague fetches a league and lazily re-derives its tournament status,
// persisting the new value when the stored one went stale.
func loadLeague(ctx context.Context, repo league.Repository, leagueID string) (league.League, error) {
	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return league.League{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	item, exists, err := repo.GetByID(ctx, leagueID)
	if err != nil {
		return league.League{}, fmt.Errorf("get league: %w", err)
	}
	if !exists {
		return league.League{}, fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
	}

	now := time.Now().UTC()
	derived := league.DetermineStatus(item.StartDate, item.EndDate, now)
	if derived != item.TournamentStatus {
		item.TournamentStatus = derived
		item.UpdatedAt = now
		if err := repo.Update(ctx, item); err != nil {
			return league.League{}, fmt.Errorf("sync league status: %w", err)
		}
	}

	return item, nil
}

func authorizeLeagueView(item league.League, access Access) error {
	if item.Visibility != league.VisibilityPrivate {
		return nil
	}
	if access.UserID != "" && access.UserID == item.OwnerID {
		return nil
	}
	if access.LeagueToken != "" && access.LeagueToken == item.AccessToken {
		return nil
	}

	return fmt.Errorf("%w: this league is private and requires an access token", ErrForbidden)
}

func requireLeagueOwner(item league.League, ownerID string) error {
	if ownerID == "" || ownerID != item.OwnerID {
		return fmt.Errorf("%w: only the league owner may do this", ErrForbidden)
	}
	return nil
}
