package session

import (
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/numa/internal/exercise"
)

// Phase represents the current phase of the session.
type Phase int

const (
	PhaseIdle           Phase = iota // Not started
	PhasePresenting                  // Item shown, input not yet accepted
	PhaseAwaitingAnswer              // Input open for the current item
	PhaseAdvancing                   // Current item resolved, next not yet drawn
	PhaseCompleted                   // Both queues exhausted
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePresenting:
		return "presenting"
	case PhaseAwaitingAnswer:
		return "awaiting"
	case PhaseAdvancing:
		return "advancing"
	case PhaseCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// State tracks the runtime state of a drill session: the active pass, the
// items failed during it, and the first-try counters.
type State struct {
	// ID identifies the session. It changes on every Start and Restart.
	ID string

	// Phase is the current session phase.
	Phase Phase

	// TotalCount is the size of the original sequence.
	TotalCount int

	// FailCount counts first-try misses across all passes.
	FailCount int

	// SuccessCount counts correct answers across all passes.
	SuccessCount int

	// TotalDuration sums the time spent on first-try correct answers.
	TotalDuration time.Duration

	// LastDuration is the time spent on the most recent first-try correct answer.
	LastDuration time.Duration

	// Passes counts traversals of the active queue, starting at 1.
	Passes int

	active   []exercise.Exercise
	failed   []exercise.Exercise
	original []exercise.Exercise
	missed   []exercise.Exercise
	cursor   int
	current  exercise.Exercise
	firstTry bool
}

// NewState returns an idle session.
func NewState() *State {
	return &State{Phase: PhaseIdle}
}

// Start resets the session and stores seq as both the active queue and the
// original snapshot used by Restart.
func (s *State) Start(seq []exercise.Exercise) {
	s.original = slices.Clone(seq)
	s.reset(seq)
}

// Restart begins a fresh session over order while keeping the original
// snapshot. Valid from any phase.
func (s *State) Restart(order []exercise.Exercise) {
	s.reset(order)
}

func (s *State) reset(seq []exercise.Exercise) {
	s.ID = uuid.NewString()
	s.active = slices.Clone(seq)
	s.failed = nil
	s.missed = nil
	s.cursor = 0
	s.current = nil
	s.firstTry = false
	s.TotalCount = len(seq)
	s.FailCount = 0
	s.SuccessCount = 0
	s.TotalDuration = 0
	s.LastDuration = 0
	s.Passes = 1
	s.Phase = PhaseAdvancing
}

// Next draws the next item. When the active queue is exhausted the failed
// queue becomes the new pass. ok is false once both queues are empty; from
// then on Next keeps returning false without touching any counter.
func (s *State) Next() (ex exercise.Exercise, ok bool) {
	if s.Phase == PhaseIdle || s.Phase == PhaseCompleted {
		return nil, false
	}
	for {
		if s.cursor < len(s.active) {
			s.current = s.active[s.cursor]
			s.cursor++
			s.firstTry = true
			s.Phase = PhasePresenting
			return s.current, true
		}
		if len(s.failed) == 0 {
			s.current = nil
			s.firstTry = false
			s.Phase = PhaseCompleted
			return nil, false
		}
		s.active = s.failed
		s.failed = nil
		s.cursor = 0
		s.Passes++
	}
}

// MarkAwaiting opens the current item for input.
func (s *State) MarkAwaiting() {
	if s.Phase == PhasePresenting {
		s.Phase = PhaseAwaitingAnswer
	}
}

// RecordFailure requeues the current item and counts the miss. Only the
// first attempt at a presented item counts; later calls for the same
// presentation report false and change nothing.
func (s *State) RecordFailure() bool {
	if s.current == nil || !s.firstTry {
		return false
	}
	s.failed = append(s.failed, s.current)
	if !slices.Contains(s.missed, s.current) {
		s.missed = append(s.missed, s.current)
	}
	s.FailCount++
	s.firstTry = false
	s.Phase = PhaseAdvancing
	return true
}

// RecordSuccess counts a correct answer. elapsed is added to the timing
// totals only when this was the first attempt at the presented item.
func (s *State) RecordSuccess(elapsed time.Duration) bool {
	if s.current == nil {
		return false
	}
	s.SuccessCount++
	if s.firstTry {
		s.TotalDuration += elapsed
		s.LastDuration = elapsed
	}
	s.firstTry = false
	s.Phase = PhaseAdvancing
	return true
}

// Current returns the presented item, or nil between items.
func (s *State) Current() exercise.Exercise { return s.current }

// FirstTry reports whether the presented item has not been resolved yet.
func (s *State) FirstTry() bool { return s.firstTry }

// Original returns a copy of the snapshot taken at Start.
func (s *State) Original() []exercise.Exercise { return slices.Clone(s.original) }

// Missed returns the distinct items failed at least once, in order of first miss.
func (s *State) Missed() []exercise.Exercise { return slices.Clone(s.missed) }

// Pending is the number of items still to be shown in the active queue
// plus the items waiting for retry. An item on screen that has not been
// resolved yet counts as pending.
func (s *State) Pending() int {
	n := max(len(s.active)-s.cursor, 0) + len(s.failed)
	if s.Phase == PhasePresenting || s.Phase == PhaseAwaitingAnswer {
		n++
	}
	return n
}

// Completed reports whether both queues are exhausted.
func (s *State) Completed() bool { return s.Phase == PhaseCompleted }
