package league

import "time"

// Status is the lifecycle phase of a tournament, derived from its dates.
type Status string

const (
	StatusUpcoming  Status = "upcoming"
	StatusOngoing   Status = "ongoing"
	StatusCompleted Status = "completed"
)

// DetermineStatus derives the tournament status from the league's start and
// end dates. Comparison is at calendar-day granularity in UTC, so the time
// of day never flips the status: the start day and the end day both count
// as ongoing. A league without any dates stays upcoming.
func DetermineStatus(start, end *time.Time, now time.Time) Status {
	if start == nil && end == nil {
		return StatusUpcoming
	}

	today := truncateToDay(now)
	if start != nil && today.Before(truncateToDay(*start)) {
		return StatusUpcoming
	}
	if end != nil && today.After(truncateToDay(*end)) {
		return StatusCompleted
	}

	return StatusOngoing
}

// CanMutate reports whether a league in the given status accepts an update.
// A completed league is frozen. An ongoing league rejects a new start date
// before today; the proposed date is compared against today, not against
// the original start, so a running tournament cannot be backdated.
func CanMutate(current Status, newStart *time.Time, now time.Time) bool {
	if current == StatusCompleted {
		return false
	}
	if current == StatusOngoing && newStart != nil && truncateToDay(*newStart).Before(truncateToDay(now)) {
		return false
	}

	return true
}

func truncateToDay(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
