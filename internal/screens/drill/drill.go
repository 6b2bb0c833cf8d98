package drill

import (
	"context"
	"errors"
	"io"
	"log"
	"math/rand/v2"
	"time"

	tea "charm.land/bubbletea/v2"

	engine "github.com/abhisek/numa/internal/drill"
	"github.com/abhisek/numa/internal/exercise"
	"github.com/abhisek/numa/internal/router"
	"github.com/abhisek/numa/internal/screen"
	"github.com/abhisek/numa/internal/screens/summary"
	"github.com/abhisek/numa/internal/sequence"
	"github.com/abhisek/numa/internal/session"
	"github.com/abhisek/numa/internal/store"
	"github.com/abhisek/numa/internal/ui/components"
	"github.com/abhisek/numa/internal/ui/layout"
)

// DefaultTick is the live timer refresh interval.
const DefaultTick = 120 * time.Millisecond

// Options configures a DrillScreen.
type Options struct {
	Set         *exercise.Set
	Modes       sequence.Modes
	FuguesSpeed string

	// Flags receives the reopen flag on exit. Nil disables it.
	Flags  store.FlagRepo
	Logger *log.Logger

	Debounce        time.Duration
	Tick            time.Duration
	HistoryLimit    int
	MinOpacity      float64
	RestartAttempts int
	NarrowWidth     int
	Keypad          bool
	Countdown       time.Duration

	Rand *rand.Rand
	Now  func() time.Time
}

// DrillScreen implements screen.Screen for a running drill session.
type DrillScreen struct {
	opts   Options
	engine *engine.Engine
	chrono *components.Chrono
	log    *log.Logger

	input      components.AnswerInput
	keypad     components.Keypad
	showKeypad bool
	showReveal bool
	hidden     bool
	lastValue  string

	current engine.ItemPresented
	stats   session.Stats
	history []session.Line
	done    bool

	showingQuitConfirm bool
	errMsg             string
}

var _ screen.Screen = (*DrillScreen)(nil)
var _ screen.KeyHintProvider = (*DrillScreen)(nil)
var _ screen.StatusProvider = (*DrillScreen)(nil)
var _ screen.BackHandler = (*DrillScreen)(nil)
var _ screen.Teardowner = (*DrillScreen)(nil)

// New creates a DrillScreen. The session starts in Init.
func New(opts Options) *DrillScreen {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard, "", 0)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Tick <= 0 {
		opts.Tick = DefaultTick
	}

	chrono := components.NewChrono(opts.Countdown, opts.Now)
	eng := engine.New(engine.Options{
		Modes:           opts.Modes,
		FuguesSpeed:     opts.FuguesSpeed,
		Rand:            opts.Rand,
		Now:             opts.Now,
		Logger:          opts.Logger,
		Timers:          chrono,
		HistoryLimit:    opts.HistoryLimit,
		MinOpacity:      opts.MinOpacity,
		RestartAttempts: opts.RestartAttempts,
		Debounce:        opts.Debounce,
	})

	return &DrillScreen{
		opts:       opts,
		engine:     eng,
		chrono:     chrono,
		log:        opts.Logger,
		input:      components.NewAnswerInput(),
		keypad:     components.NewKeypad(),
		showKeypad: opts.Keypad,
	}
}

func (s *DrillScreen) Init() tea.Cmd {
	if s.opts.Set == nil {
		s.errMsg = exercise.ErrEmptySet.Error()
		return nil
	}
	events, err := s.engine.Start(s.opts.Set.Items, s.opts.Modes)
	if err != nil {
		s.errMsg = err.Error()
		return nil
	}
	return tea.Batch(s.input.Init(), s.handleEvents(events))
}

func (s *DrillScreen) Title() string {
	if s.opts.Set != nil && s.opts.Set.Title != "" {
		return s.opts.Set.Title
	}
	return "Drill"
}

// Status lists the active modes for the header.
func (s *DrillScreen) Status() string {
	modes := s.engine.Modes()
	if len(modes.List()) == 0 {
		return ""
	}
	status := modes.String()
	if modes.Has(sequence.ModeFugues) {
		status += " " + engine.NormalizeSpeed(s.opts.FuguesSpeed)
	}
	return status
}

func (s *DrillScreen) HandlesBack() bool { return true }

func (s *DrillScreen) KeyHints() []layout.KeyHint {
	if s.errMsg != "" {
		return []layout.KeyHint{{Key: "any key", Description: "Back"}}
	}
	if s.showingQuitConfirm {
		return []layout.KeyHint{
			{Key: "Y", Description: "Leave"},
			{Key: "N", Description: "Keep going"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "Tab", Description: "Keypad"},
		{Key: "Ctrl+R", Description: "Reveal"},
		{Key: "Esc", Description: "Quit"},
	}
	if s.showKeypad {
		hints = append([]layout.KeyHint{{Key: "←↑↓→ Enter", Description: "Press key"}}, hints...)
	}
	return hints
}

func (s *DrillScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case checkDueMsg:
		return s, s.handleEvents(s.engine.Fire(msg.Token))

	case revealDoneMsg:
		return s, s.handleEvents(s.engine.OpenInput(msg.Generation))

	case liveTickMsg:
		if msg.Generation != s.engine.Generation() || s.engine.Completed() {
			return s, nil
		}
		return s, s.liveTick(msg.Generation)

	case components.KeypadPressMsg:
		s.input.Press(msg.Key)
		return s, s.onInput()

	case summary.RepeatMsg:
		return s.restart()

	case summary.ExitMsg:
		return s, s.exit()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *DrillScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	// Error state: any key goes back.
	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	if s.showingQuitConfirm {
		switch key {
		case "y", "Y":
			s.showingQuitConfirm = false
			return s, s.exit()
		case "n", "N", "esc":
			s.showingQuitConfirm = false
		}
		return s, nil
	}

	if s.done {
		return s, nil
	}

	switch key {
	case "esc":
		s.showingQuitConfirm = true
		return s, nil
	case "tab":
		s.showKeypad = !s.showKeypad
		return s, nil
	case "ctrl+r":
		s.showReveal = !s.showReveal
		return s, nil
	case "up", "down", "left", "right", "enter":
		if s.showKeypad {
			var cmd tea.Cmd
			s.keypad, cmd = s.keypad.Update(msg)
			return s, cmd
		}
		return s, nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, tea.Batch(cmd, s.onInput())
}

// onInput hands a changed value to the engine and schedules the check it
// arms.
func (s *DrillScreen) onInput() tea.Cmd {
	value := s.input.Value()
	if value == s.lastValue {
		return nil
	}
	s.lastValue = value

	res, err := s.engine.Input(value)
	if err != nil {
		if !errors.Is(err, engine.ErrCompleted) {
			s.log.Printf("warning: input rejected: %v", err)
		}
		return nil
	}
	if res.Ignored {
		return nil
	}
	if res.Truncated {
		s.input.SetValue(res.Value)
		s.lastValue = res.Value
	}
	if !res.Armed {
		return nil
	}
	token := res.Token
	return tea.Tick(res.Delay, func(time.Time) tea.Msg {
		return checkDueMsg{Token: token}
	})
}

// handleEvents applies engine events to the view and returns the commands
// they require.
func (s *DrillScreen) handleEvents(events []engine.Event) tea.Cmd {
	var cmds []tea.Cmd
	for _, ev := range events {
		switch ev := ev.(type) {
		case engine.StatsUpdated:
			s.stats = ev.Stats

		case engine.ItemPresented:
			s.current = ev
			s.hidden = false
			s.showReveal = false
			s.lastValue = ""
			s.input.Prepare(ev.ExpectedLength, ev.Numeric, ev.HideAfter > 0)
			cmds = append(cmds, s.liveTick(ev.Generation))
			if ev.HideAfter > 0 {
				gen := ev.Generation
				cmds = append(cmds, tea.Tick(ev.HideAfter, func(time.Time) tea.Msg {
					return revealDoneMsg{Generation: gen}
				}))
			}

		case engine.PromptHidden:
			s.hidden = true
			s.input.Unlock()

		case engine.AnswerResolved:
			s.history = ev.History

		case engine.SessionCompleted:
			s.done = true
			sum := ev.Summary
			cmds = append(cmds, func() tea.Msg {
				return router.PushScreenMsg{Screen: summary.New(sum)}
			})
		}
	}
	return tea.Batch(cmds...)
}

func (s *DrillScreen) liveTick(gen int) tea.Cmd {
	return tea.Tick(s.opts.Tick, func(time.Time) tea.Msg {
		return liveTickMsg{Generation: gen}
	})
}

func (s *DrillScreen) restart() (screen.Screen, tea.Cmd) {
	events, err := s.engine.Restart()
	if err != nil {
		s.errMsg = err.Error()
		return s, nil
	}
	s.done = false
	s.history = nil
	return s, s.handleEvents(events)
}

// exit tears the session down, leaves the reopen flag and pops the screen.
func (s *DrillScreen) exit() tea.Cmd {
	s.Teardown()
	if s.opts.Flags != nil && s.opts.Set != nil {
		if err := store.MarkReopen(context.Background(), s.opts.Flags, s.opts.Set.Path); err != nil {
			s.log.Printf("warning: failed to save reopen flag: %v", err)
		}
	}
	return func() tea.Msg { return router.PopScreenMsg{} }
}

// Teardown cancels every pending timer and stops the chrono. It is safe to
// call more than once.
func (s *DrillScreen) Teardown() {
	s.engine.Teardown()
	s.done = true
}
