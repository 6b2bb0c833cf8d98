// Package drill is the controller that drives a session: it builds the
// working order, presents items, gates and debounces answer checks, and
// reports the outcome as events for the presentation shell.
//
// The engine owns no goroutines or timers. Every delayed action is modelled
// as a token handed to the shell, which schedules it (for instance with
// tea.Tick) and hands it back. A token that has been superseded by newer
// input, a new item, a restart or a teardown is dropped on arrival.
package drill

import (
	"errors"
	"io"
	"log"
	"math/rand/v2"
	"time"

	"github.com/abhisek/numa/internal/answer"
	"github.com/abhisek/numa/internal/exercise"
	"github.com/abhisek/numa/internal/sequence"
	"github.com/abhisek/numa/internal/session"
)

// Default timing values.
const (
	DefaultDebounce        = 300 * time.Millisecond
	DefaultRestartAttempts = 5
)

var (
	// ErrNotStarted is returned when an operation needs a started session.
	ErrNotStarted = errors.New("drill: session not started")

	// ErrCompleted is returned for input after the session has completed.
	ErrCompleted = errors.New("drill: session completed")
)

// Timers is the chronometer/countdown collaborator. The engine stops it
// when the session completes or is torn down and resets it on restart. It
// never reads its state.
type Timers interface {
	Stop()
	Reset()
}

// Options configures an Engine. Zero values select the defaults.
type Options struct {
	Modes           sequence.Modes
	FuguesSpeed     string
	Rand            *rand.Rand
	Now             func() time.Time
	Logger          *log.Logger
	Timers          Timers
	HistoryLimit    int
	MinOpacity      float64
	RestartAttempts int
	Debounce        time.Duration
}

// InputResult describes what the shell must do after a keystroke.
type InputResult struct {
	// Value is the trimmed, possibly truncated input. The shell should
	// display it in place of what was typed.
	Value string

	// Truncated reports that Value is shorter than what was typed.
	Truncated bool

	// Armed reports that a check is scheduled: the shell must call Fire
	// with Token after Delay.
	Armed bool
	Token int
	Delay time.Duration

	// Ignored reports that input is not open yet.
	Ignored bool
}

// Engine drives one drill session at a time. It is not safe for concurrent
// use; the shell calls it from its single update loop.
type Engine struct {
	opts    Options
	rng     *rand.Rand
	now     func() time.Time
	log     *log.Logger
	state   *session.State
	history *session.History
	modes   sequence.Modes

	presented exercise.Exercise
	checker   *answer.Checker
	inputOpen bool

	gen     int
	token   int
	armed   bool
	pending string

	questionStart time.Time
	sessionStart  time.Time
}

// New creates an engine.
func New(opts Options) *Engine {
	if opts.Rand == nil {
		seed := uint64(time.Now().UnixNano())
		opts.Rand = rand.New(rand.NewPCG(seed, seed>>1))
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard, "", 0)
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.RestartAttempts <= 0 {
		opts.RestartAttempts = DefaultRestartAttempts
	}
	opts.FuguesSpeed = NormalizeSpeed(opts.FuguesSpeed)

	return &Engine{
		opts:    opts,
		rng:     opts.Rand,
		now:     opts.Now,
		log:     opts.Logger,
		state:   session.NewState(),
		history: session.NewHistory(opts.HistoryLimit, opts.MinOpacity),
		modes:   opts.Modes,
	}
}

// Start begins a new session over items. A nil modes uses the modes from
// Options. Any previous session is discarded.
func (e *Engine) Start(items []exercise.Exercise, modes sequence.Modes) ([]Event, error) {
	if len(items) == 0 {
		return nil, exercise.ErrEmptySet
	}
	if modes != nil {
		e.modes = modes
	}

	for _, it := range items {
		if err := exercise.Validate(it); err != nil {
			e.log.Printf("warning: exercise %q has no computable answer: %v", it.String(), err)
		}
	}

	seq := sequence.Build(items, e.modes, e.rng)
	e.state.Start(seq)
	e.history.Reset()
	e.sessionStart = e.now()
	e.resetTimers()
	e.log.Printf("session %s started: %d items, modes %s", e.state.ID, len(seq), e.modes)

	return append([]Event{e.statsEvent()}, e.advance()...), nil
}

// Restart reshuffles the original order and starts over. Counters,
// history and timers are reset; pending checks are canceled.
func (e *Engine) Restart() ([]Event, error) {
	if e.state.Phase == session.PhaseIdle {
		return nil, ErrNotStarted
	}
	e.cancel()
	order := sequence.RestartOrder(e.state.Original(), e.rng, e.opts.RestartAttempts)
	e.state.Restart(order)
	e.history.Reset()
	e.sessionStart = e.now()
	e.resetTimers()
	e.log.Printf("session %s restarted", e.state.ID)

	return append([]Event{e.statsEvent()}, e.advance()...), nil
}

// Teardown cancels every outstanding token and stops the timers. The
// engine can be started again afterwards.
func (e *Engine) Teardown() {
	e.cancel()
	e.gen++
	e.inputOpen = false
	if e.opts.Timers != nil {
		e.opts.Timers.Stop()
	}
}

// Input handles the current input value after a keystroke or keypad press.
func (e *Engine) Input(raw string) (InputResult, error) {
	switch {
	case e.state.Phase == session.PhaseIdle:
		return InputResult{}, ErrNotStarted
	case e.state.Completed():
		return InputResult{}, ErrCompleted
	case !e.inputOpen || e.checker == nil:
		return InputResult{Ignored: true}, nil
	}

	// Any keystroke supersedes a pending check.
	e.cancel()

	value, truncated := e.checker.Clamp(raw)
	res := InputResult{Value: value, Truncated: truncated, Token: e.token}
	if e.checker.Ready(value) {
		e.armed = true
		e.pending = value
		res.Armed = true
		res.Delay = e.opts.Debounce
	}
	return res, nil
}

// Fire runs the check scheduled by Input. Stale tokens are ignored.
func (e *Engine) Fire(token int) []Event {
	if !e.armed || token != e.token || e.presented == nil {
		return nil
	}
	e.armed = false

	value := e.pending
	correct := e.checker.Evaluate(value)
	firstTry := e.state.FirstTry()
	elapsed := e.now().Sub(e.questionStart)

	if correct {
		e.state.RecordSuccess(elapsed)
	} else {
		e.state.RecordFailure()
		elapsed = 0
	}

	text := e.presented.PromptText() + value
	if firstTry {
		e.history.Add(session.Entry{Text: text, Correct: correct})
	}

	events := []Event{
		AnswerResolved{
			Correct:  correct,
			Value:    value,
			Text:     text,
			Elapsed:  elapsed,
			FirstTry: firstTry,
			History:  e.history.Lines(),
		},
		e.statsEvent(),
	}
	return append(events, e.advance()...)
}

// OpenInput hides the prompt of generation gen and opens input. It is the
// second half of a Fugues presentation.
func (e *Engine) OpenInput(gen int) []Event {
	if gen != e.gen || e.inputOpen || e.presented == nil {
		return nil
	}
	e.inputOpen = true
	e.state.MarkAwaiting()
	return []Event{PromptHidden{Generation: gen}}
}

// advance cancels pending work and presents the next item, or completes.
func (e *Engine) advance() []Event {
	e.cancel()
	e.gen++

	item, ok := e.state.Next()
	if !ok {
		e.presented = nil
		e.checker = nil
		e.inputOpen = false
		if e.opts.Timers != nil {
			e.opts.Timers.Stop()
		}
		summary := session.BuildSummary(e.state, e.now().Sub(e.sessionStart))
		e.log.Printf("session %s completed: %d fails, precision %.1f%%", summary.SessionID, summary.Fails, summary.Precision)
		return []Event{e.statsEvent(), SessionCompleted{Summary: summary}}
	}

	presented := item
	if e.modes.Has(sequence.ModeMirror) {
		presented = item.Mirror()
		if err := exercise.Validate(presented); err != nil && exercise.Validate(item) == nil {
			e.log.Printf("warning: mirrored exercise %q has no computable answer", presented.String())
		}
	}
	e.presented = presented
	e.checker = answer.NewChecker(presented)
	e.questionStart = e.now()

	ev := ItemPresented{
		Item:           presented,
		Prompt:         presented.PromptText(),
		ExpectedLength: e.checker.MaxLength(),
		Numeric:        e.checker.Numeric(),
		Reveal:         exercise.RevealText(presented),
		Generation:     e.gen,
		Pass:           e.state.Passes,
	}
	if e.modes.Has(sequence.ModeFugues) {
		e.inputOpen = false
		ev.HideAfter = FuguesDelay(e.opts.FuguesSpeed)
	} else {
		e.inputOpen = true
		e.state.MarkAwaiting()
	}
	return []Event{ev}
}

// cancel invalidates any scheduled check.
func (e *Engine) cancel() {
	e.token++
	e.armed = false
	e.pending = ""
}

func (e *Engine) resetTimers() {
	if e.opts.Timers != nil {
		e.opts.Timers.Reset()
	}
}

func (e *Engine) statsEvent() StatsUpdated {
	return StatsUpdated{Stats: e.state.Stats()}
}

// Generation identifies the current presentation. Periodic display ticks
// should carry it and stop when it changes.
func (e *Engine) Generation() int { return e.gen }

// Elapsed returns the time since the current item was presented, for the
// live display only.
func (e *Engine) Elapsed() time.Duration {
	if e.presented == nil {
		return 0
	}
	return e.now().Sub(e.questionStart)
}

// SessionElapsed returns the time since the session started or restarted.
func (e *Engine) SessionElapsed() time.Duration {
	if e.state.Phase == session.PhaseIdle {
		return 0
	}
	return e.now().Sub(e.sessionStart)
}

// Stats returns the current HUD snapshot.
func (e *Engine) Stats() session.Stats { return e.state.Stats() }

// History returns the answer history, newest first.
func (e *Engine) History() []session.Line { return e.history.Lines() }

// Presented returns the item on screen as rendered, or nil.
func (e *Engine) Presented() exercise.Exercise { return e.presented }

// InputOpen reports whether keystrokes are currently accepted.
func (e *Engine) InputOpen() bool { return e.inputOpen }

// Modes returns the active modes.
func (e *Engine) Modes() sequence.Modes { return e.modes }

// SessionID returns the current session identifier.
func (e *Engine) SessionID() string { return e.state.ID }

// Completed reports whether the current session has completed.
func (e *Engine) Completed() bool { return e.state.Completed() }

// Phase returns the session phase.
func (e *Engine) Phase() session.Phase { return e.state.Phase }
