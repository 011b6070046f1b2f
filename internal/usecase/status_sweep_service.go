package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/fleague/fleague-api/internal/domain/league"
	"github.com/fleague/fleague-api/internal/platform/logging"
)

// StatusSweepService walks every league and re-derives its tournament status
// from the calendar. Statuses are also synced lazily on read, so the sweep
// only exists to keep rarely-read leagues from going stale.
type StatusSweepService struct {
	leagueRepo league.Repository
	workers    int
	logger     *logging.Logger
}

const defaultSweepWorkers = 8

func NewStatusSweepService(leagueRepo league.Repository, workers int, logger *logging.Logger) *StatusSweepService {
	if workers <= 0 {
		workers = defaultSweepWorkers
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &StatusSweepService{
		leagueRepo: leagueRepo,
		workers:    workers,
		logger:     logger,
	}
}

// SweepResult summarizes one status sweep run.
type SweepResult struct {
	Total     int
	Updated   int
	Unchanged int
	Failed    int
}

// Sweep re-derives the tournament status of every league, fanning the
// per-league work out over a bounded pool.
func (s *StatusSweepService) Sweep(ctx context.Context) (SweepResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatusSweepService.Sweep")
	defer span.End()

	leagues, err := s.leagueRepo.List(ctx)
	if err != nil {
		return SweepResult{}, fmt.Errorf("list leagues: %w", err)
	}

	pool, err := ants.NewPool(s.workers)
	if err != nil {
		return SweepResult{}, fmt.Errorf("create sweep pool: %w", err)
	}
	defer pool.Release()

	var (
		mu     sync.Mutex
		wg     sync.WaitGroup
		result = SweepResult{Total: len(leagues)}
	)

	now := time.Now().UTC()
	for _, item := range leagues {
		item := item
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()

			updated, sweepErr := s.sweepOne(ctx, item, now)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case sweepErr != nil:
				result.Failed++
			case updated:
				result.Updated++
			default:
				result.Unchanged++
			}
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			result.Failed++
			mu.Unlock()
		}
	}
	wg.Wait()

	s.logger.InfoContext(ctx, "league status sweep finished",
		"total", result.Total,
		"updated", result.Updated,
		"unchanged", result.Unchanged,
		"failed", result.Failed,
	)

	return result, nil
}

func (s *StatusSweepService) sweepOne(ctx context.Context, item league.League, now time.Time) (bool, error) {
	derived := league.DetermineStatus(item.StartDate, item.EndDate, now)
	if derived == item.TournamentStatus {
		return false, nil
	}

	item.TournamentStatus = derived
	item.UpdatedAt = now
	if err := s.leagueRepo.Update(ctx, item); err != nil {
		s.logger.ErrorContext(ctx, "sweep league status update failed",
			"league_id", item.ID,
			"error", err,
		)
		return false, err
	}

	s.logger.DebugContext(ctx, "league status updated",
		"league_id", item.ID,
		"status", string(derived),
	)

	return true, nil
}
