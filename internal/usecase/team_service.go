package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/fleague/fleague-api/internal/domain/league"
	"github.com/fleague/fleague-api/internal/domain/team"
	idgen "github.com/fleague/fleague-api/internal/platform/id"
	"github.com/fleague/fleague-api/internal/platform/logging"
)

type TeamService struct {
	leagueRepo league.Repository
	teamRepo   team.Repository
	idGen      idgen.Generator
	logger     *logging.Logger
}

func NewTeamService(
	leagueRepo league.Repository,
	teamRepo team.Repository,
	idGen idgen.Generator,
	logger *logging.Logger,
) *TeamService {
	if logger == nil {
		logger = logging.Default()
	}

	return &TeamService{
		leagueRepo: leagueRepo,
		teamRepo:   teamRepo,
		idGen:      idGen,
		logger:     logger,
	}
}

type AddTeamInput struct {
	Name      string
	ShortName string
	Logo      string
}

func (s *TeamService) Add(ctx context.Context, ownerID, leagueID string, input AddTeamInput) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Add")
	defer span.End()

	item, err := loadLeague(ctx, s.leagueRepo, leagueID)
	if err != nil {
		return team.Team{}, err
	}
	if err := requireLeagueOwner(item, ownerID); err != nil {
		return team.Team{}, err
	}

	existing, err := s.teamRepo.ListByLeague(ctx, leagueID)
	if err != nil {
		return team.Team{}, fmt.Errorf("list league teams: %w", err)
	}
	if len(existing) >= item.NumberOfTeams {
		return team.Team{}, fmt.Errorf("%w: the league already has its %d teams", ErrStateConflict, item.NumberOfTeams)
	}

	shortName := strings.ToUpper(strings.TrimSpace(input.ShortName))
	for _, other := range existing {
		if strings.EqualFold(other.ShortName, shortName) {
			return team.Team{}, fmt.Errorf("%w: short name %q is already taken", ErrInvalidInput, shortName)
		}
	}

	teamID, err := s.idGen.NewID()
	if err != nil {
		return team.Team{}, fmt.Errorf("generate team id: %w", err)
	}

	now := time.Now().UTC()
	newTeam := team.Team{
		ID:        teamID,
		LeagueID:  leagueID,
		Name:      strings.TrimSpace(input.Name),
		ShortName: shortName,
		Logo:      input.Logo,
		Form:      []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := newTeam.Validate(); err != nil {
		return team.Team{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.teamRepo.Insert(ctx, newTeam); err != nil {
		return team.Team{}, fmt.Errorf("insert team: %w", err)
	}

	s.logger.InfoContext(ctx, "team added", "league_id", leagueID, "team_id", newTeam.ID)

	return newTeam, nil
}

// ListByLeague returns the league's teams, optionally restricted to one group.
func (s *TeamService) ListByLeague(ctx context.Context, leagueID, group string, access Access) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.ListByLeague")
	defer span.End()

	item, err := loadLeague(ctx, s.leagueRepo, leagueID)
	if err != nil {
		return nil, err
	}
	if err := authorizeLeagueView(item, access); err != nil {
		return nil, err
	}

	var teams []team.Team
	if group != "" {
		teams, err = s.teamRepo.ListByLeagueAndGroup(ctx, leagueID, group)
	} else {
		teams, err = s.teamRepo.ListByLeague(ctx, leagueID)
	}
	if err != nil {
		return nil, fmt.Errorf("list league teams: %w", err)
	}

	return teams, nil
}

func (s *TeamService) Get(ctx context.Context, leagueID, teamID string, access Access) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Get")
	defer span.End()

	item, err := loadLeague(ctx, s.leagueRepo, leagueID)
	if err != nil {
		return team.Team{}, err
	}
	if err := authorizeLeagueView(item, access); err != nil {
		return team.Team{}, err
	}

	found, err := s.loadTeam(ctx, leagueID, teamID)
	if err != nil {
		return team.Team{}, err
	}

	return found, nil
}

type UpdateTeamInput struct {
	Name      *string
	ShortName *string
	Logo      *string
}

func (s *TeamService) Update(ctx context.Context, ownerID, leagueID, teamID string, input UpdateTeamInput) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Update")
	defer span.End()

	item, err := loadLeague(ctx, s.leagueRepo, leagueID)
	if err != nil {
		return team.Team{}, err
	}
	if err := requireLeagueOwner(item, ownerID); err != nil {
		return team.Team{}, err
	}

	found, err := s.loadTeam(ctx, leagueID, teamID)
	if err != nil {
		return team.Team{}, err
	}

	if input.Name != nil {
		found.Name = strings.TrimSpace(*input.Name)
	}
	if input.ShortName != nil {
		shortName := strings.ToUpper(strings.TrimSpace(*input.ShortName))
		others, listErr := s.teamRepo.ListByLeague(ctx, leagueID)
		if listErr != nil {
			return team.Team{}, fmt.Errorf("list league teams: %w", listErr)
		}
		for _, other := range others {
			if other.ID != found.ID && strings.EqualFold(other.ShortName, shortName) {
				return team.Team{}, fmt.Errorf("%w: short name %q is already taken", ErrInvalidInput, shortName)
			}
		}
		found.ShortName = shortName
	}
	if input.Logo != nil {
		found.Logo = *input.Logo
	}
	found.UpdatedAt = time.Now().UTC()

	if err := found.Validate(); err != nil {
		return team.Team{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.teamRepo.Update(ctx, found); err != nil {
		return team.Team{}, fmt.Errorf("update team: %w", err)
	}

	return found, nil
}

// Remove deletes a team. Teams cannot leave a league once play has started.
func (s *TeamService) Remove(ctx context.Context, ownerID, leagueID, teamID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Remove")
	defer span.End()

	item, err := loadLeague(ctx, s.leagueRepo, leagueID)
	if err != nil {
		return err
	}
	if err := requireLeagueOwner(item, ownerID); err != nil {
		return err
	}
	if item.TournamentStatus != league.StatusUpcoming {
		return fmt.Errorf("%w: teams can only be removed before the league starts", ErrStateConflict)
	}

	found, err := s.loadTeam(ctx, leagueID, teamID)
	if err != nil {
		return err
	}

	if err := s.teamRepo.Delete(ctx, found.ID); err != nil {
		return fmt.Errorf("delete team: %w", err)
	}

	s.logger.InfoContext(ctx, "team removed", "league_id", leagueID, "team_id", found.ID)

	return nil
}

// AssignGroups spreads the league's teams across groups A, B, C... in a
// round-robin fashion over the roster sorted by creation order.
func (s *TeamService) AssignGroups(ctx context.Context, ownerID, leagueID string) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.AssignGroups")
	defer span.End()

	item, err := loadLeague(ctx, s.leagueRepo, leagueID)
	if err != nil {
		return nil, err
	}
	if err := requireLeagueOwner(item, ownerID); err != nil {
		return nil, err
	}
	if item.Format != league.FormatGroupStage || item.GroupSettings == nil {
		return nil, fmt.Errorf("%w: group assignment requires a group-stage league", ErrInvalidInput)
	}

	teams, err := s.teamRepo.ListByLeague(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("list league teams: %w", err)
	}
	if len(teams) != item.NumberOfTeams {
		return nil, fmt.Errorf("%w: the league needs %d teams before groups can be assigned, has %d",
			ErrStateConflict, item.NumberOfTeams, len(teams))
	}

	sort.SliceStable(teams, func(i, j int) bool {
		return teams[i].CreatedAt.Before(teams[j].CreatedAt)
	})

	now := time.Now().UTC()
	numberOfGroups := item.GroupSettings.NumberOfGroups
	for i := range teams {
		teams[i].Group = groupLabel(i % numberOfGroups)
		teams[i].UpdatedAt = now
	}

	if err := s.teamRepo.UpdateMany(ctx, teams); err != nil {
		return nil, fmt.Errorf("update team groups: %w", err)
	}

	s.logger.InfoContext(ctx, "groups assigned", "league_id", leagueID, "groups", numberOfGroups)

	return teams, nil
}

// ResetGroups clears every team's group label.
func (s *TeamService) ResetGroups(ctx context.Context, ownerID, leagueID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.ResetGroups")
	defer span.End()

	item, err := loadLeague(ctx, s.leagueRepo, leagueID)
	if err != nil {
		return err
	}
	if err := requireLeagueOwner(item, ownerID); err != nil {
		return err
	}

	teams, err := s.teamRepo.ListByLeague(ctx, leagueID)
	if err != nil {
		return fmt.Errorf("list league teams: %w", err)
	}

	now := time.Now().UTC()
	for i := range teams {
		teams[i].Group = ""
		teams[i].UpdatedAt = now
	}

	if err := s.teamRepo.UpdateMany(ctx, teams); err != nil {
		return fmt.Errorf("update team groups: %w", err)
	}

	return nil
}

func (s *TeamService) loadTeam(ctx context.Context, leagueID, teamID string) (team.Team, error) {
	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return team.Team{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	found, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team: %w", err)
	}
	if !exists || found.LeagueID != leagueID {
		return team.Team{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}

	return found, nil
}

func groupLabel(index int) string {
	return string(rune('A' + index))
}
