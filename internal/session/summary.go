package session

import (
	"time"

	"github.com/abhisek/numa/internal/exercise"
)

// Summary holds the data displayed on the completion screen.
type Summary struct {
	SessionID string
	Duration  time.Duration
	Total     int
	Fails     int
	Successes int
	Precision float64
	Average   time.Duration
	Passes    int
	Missed    []exercise.Exercise
}

// BuildSummary creates a Summary from the session state. elapsed is the
// wall time of the session as measured by the caller.
func BuildSummary(state *State, elapsed time.Duration) *Summary {
	st := state.Stats()
	return &Summary{
		SessionID: state.ID,
		Duration:  elapsed,
		Total:     state.TotalCount,
		Fails:     state.FailCount,
		Successes: state.SuccessCount,
		Precision: st.Precision,
		Average:   st.Average,
		Passes:    state.Passes,
		Missed:    state.Missed(),
	}
}
