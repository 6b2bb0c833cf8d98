package drill

import (
	"time"

	"github.com/abhisek/numa/internal/exercise"
	"github.com/abhisek/numa/internal/session"
)

// Event is emitted by the engine to the presentation shell.
type Event interface {
	event()
}

// ItemPresented announces a new item. When HideAfter is non-zero the prompt
// must be hidden after that delay and input stays closed until OpenInput is
// called with Generation.
type ItemPresented struct {
	Item           exercise.Exercise
	Prompt         string
	ExpectedLength int
	Numeric        bool
	Reveal         string
	HideAfter      time.Duration
	Generation     int
	Pass           int
}

// PromptHidden reports that the prompt was hidden and input is now open.
type PromptHidden struct {
	Generation int
}

// AnswerResolved reports the outcome of a debounced check.
type AnswerResolved struct {
	Correct  bool
	Value    string
	Text     string
	Elapsed  time.Duration
	FirstTry bool
	History  []session.Line
}

// StatsUpdated carries a fresh HUD snapshot.
type StatsUpdated struct {
	Stats session.Stats
}

// SessionCompleted is emitted once both queues are exhausted.
type SessionCompleted struct {
	Summary *session.Summary
}

func (ItemPresented) event()    {}
func (PromptHidden) event()     {}
func (AnswerResolved) event()   {}
func (StatsUpdated) event()     {}
func (SessionCompleted) event() {}
