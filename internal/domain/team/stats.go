package team

// Outcome is one team's result in a single match.
type Outcome string

const (
	OutcomeWin  Outcome = "win"
	OutcomeDraw Outcome = "draw"
	OutcomeLose Outcome = "lose"
)

const (
	FormWin  = "W"
	FormDraw = "D"
	FormLose = "L"
)

// Marker is the single-letter form entry for the outcome.
func (o Outcome) Marker() string {
	switch o {
	case OutcomeWin:
		return FormWin
	case OutcomeDraw:
		return FormDraw
	default:
		return FormLose
	}
}

// DetermineOutcome derives both sides' outcomes from a final score.
func DetermineOutcome(homeScore, awayScore int) (home, away Outcome) {
	switch {
	case homeScore > awayScore:
		return OutcomeWin, OutcomeLose
	case homeScore < awayScore:
		return OutcomeLose, OutcomeWin
	default:
		return OutcomeDraw, OutcomeDraw
	}
}

// ApplyResult records one finished match in the team's cumulative record.
// The goal difference is recomputed from the new totals rather than
// incremented, so it can never drift from goalsFor-goalsAgainst.
func (t *Team) ApplyResult(goalsFor, goalsAgainst int, outcome Outcome) {
	t.Stats.Played++
	t.Stats.GoalsFor += goalsFor
	t.Stats.GoalsAgainst += goalsAgainst
	t.Stats.GoalDifference = t.Stats.GoalsFor - t.Stats.GoalsAgainst

	switch outcome {
	case OutcomeWin:
		t.Stats.Won++
		t.Stats.Points += 3
	case OutcomeDraw:
		t.Stats.Drawn++
		t.Stats.Points++
	case OutcomeLose:
		t.Stats.Lost++
	}

	t.Form = append([]string{outcome.Marker()}, t.Form...)
	if len(t.Form) > FormSize {
		t.Form = t.Form[:FormSize]
	}
}

// RevertResult is the exact inverse of ApplyResult for the same arguments.
// The form trail only drops its front entry; the marker that was pushed out
// of the five-slot window is not reinserted.
func (t *Team) RevertResult(goalsFor, goalsAgainst int, outcome Outcome) {
	t.Stats.Played--
	t.Stats.GoalsFor -= goalsFor
	t.Stats.GoalsAgainst -= goalsAgainst
	t.Stats.GoalDifference = t.Stats.GoalsFor - t.Stats.GoalsAgainst

	switch outcome {
	case OutcomeWin:
		t.Stats.Won--
		t.Stats.Points -= 3
	case OutcomeDraw:
		t.Stats.Drawn--
		t.Stats.Points--
	case OutcomeLose:
		t.Stats.Lost--
	}

	if len(t.Form) > 0 {
		t.Form = t.Form[1:]
	}
}

// ResetStats zeroes the cumulative record and clears the form trail.
func (t *Team) ResetStats() {
	t.Stats = Stats{}
	t.Form = nil
}

// FormPoints scores a form trail: three per win, one per draw.
func FormPoints(form []string) int {
	points := 0
	for _, marker := range form {
		switch marker {
		case FormWin:
			points += 3
		case FormDraw:
			points++
		}
	}

	return points
}
