package home

import (
	"context"
	"io"
	"log"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	engine "github.com/abhisek/numa/internal/drill"
	"github.com/abhisek/numa/internal/router"
	"github.com/abhisek/numa/internal/screen"
	drillscreen "github.com/abhisek/numa/internal/screens/drill"
	"github.com/abhisek/numa/internal/sequence"
	"github.com/abhisek/numa/internal/store"
	"github.com/abhisek/numa/internal/ui/components"
	"github.com/abhisek/numa/internal/ui/layout"
)

// Menu rows, in display order.
const (
	itemStart = iota
	itemRandom
	itemSurges
	itemMirror
	itemFugues
	itemSpeed
	itemKeypad
	itemExit
)

// modeItems maps the toggle rows to their modes.
var modeItems = map[int]sequence.Mode{
	itemRandom: sequence.ModeRandom,
	itemSurges: sequence.ModeSurges,
	itemMirror: sequence.ModeMirror,
	itemFugues: sequence.ModeFugues,
}

// Options configures the HomeScreen.
type Options struct {
	// Drill is the template for every session started from the menu. Its
	// Modes, FuguesSpeed and Keypad are the initial menu values.
	Drill drillscreen.Options

	// AutoStart pushes the drill immediately, as when a session is reopened.
	AutoStart bool
}

// HomeScreen lets the player pick modes and start a drill.
type HomeScreen struct {
	opts   Options
	menu   components.Menu
	modes  sequence.Modes
	speed  string
	keypad bool
	log    *log.Logger
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(opts Options) *HomeScreen {
	h := &HomeScreen{
		opts:   opts,
		modes:  sequence.NewModes(opts.Drill.Modes.List()...),
		speed:  engine.NormalizeSpeed(opts.Drill.FuguesSpeed),
		keypad: opts.Drill.Keypad,
		log:    opts.Drill.Logger,
	}
	if h.log == nil {
		h.log = log.New(io.Discard, "", 0)
	}

	items := make([]components.MenuItem, itemExit+1)
	items[itemStart] = components.MenuItem{Label: "START", Action: h.start}
	for i, m := range modeItems {
		items[i] = components.MenuItem{Label: string(m), Action: h.toggle(m)}
	}
	items[itemSpeed] = components.MenuItem{Label: "Fugues speed", Action: h.cycleSpeed}
	items[itemKeypad] = components.MenuItem{Label: "Keypad", Action: h.toggleKeypad}
	items[itemExit] = components.MenuItem{Label: "EXIT", Action: func() tea.Cmd { return tea.Quit }}

	h.menu = components.NewMenu(items)
	h.refresh()
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	if h.opts.AutoStart {
		return h.start()
	}
	return nil
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "S", Description: "Start"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "s", "S":
			return h, h.start()
		case "q":
			return h, tea.Quit
		}
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	h.refresh()
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	compact := height < 20 || layout.IsNarrow(width, h.opts.Drill.NarrowWidth)
	cw := contentWidth(width)

	sections := []string{renderBanner(cw, compact)}
	if h.opts.Drill.Set != nil {
		sections = append(sections, renderSetInfo(h.opts.Drill.Set, cw))
	}
	sections = append(sections, lipgloss.NewStyle().Width(cw).Render(h.menu.View()))

	sep := "\n\n"
	if compact {
		sep = "\n"
	}
	content := strings.Join(sections, sep)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

// Modes returns the modes currently selected.
func (h *HomeScreen) Modes() sequence.Modes { return h.modes }

// Speed returns the selected Fugues speed.
func (h *HomeScreen) Speed() string { return h.speed }

func (h *HomeScreen) start() tea.Cmd {
	opts := h.opts.Drill
	opts.Modes = sequence.NewModes(h.modes.List()...)
	opts.FuguesSpeed = h.speed
	opts.Keypad = h.keypad
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: drillscreen.New(opts)}
	}
}

func (h *HomeScreen) toggle(m sequence.Mode) func() tea.Cmd {
	return func() tea.Cmd {
		h.modes.Toggle(m)
		return nil
	}
}

// cycleSpeed moves to the next Fugues speed and persists it.
func (h *HomeScreen) cycleSpeed() tea.Cmd {
	h.speed = engine.NextSpeed(h.speed)
	if flags := h.opts.Drill.Flags; flags != nil {
		if err := flags.Set(context.Background(), store.KeyFuguesSpeed, h.speed); err != nil {
			h.log.Printf("warning: failed to save fugues speed: %v", err)
		}
	}
	return nil
}

func (h *HomeScreen) toggleKeypad() tea.Cmd {
	h.keypad = !h.keypad
	return nil
}

// refresh updates the values shown next to the toggles.
func (h *HomeScreen) refresh() {
	for i, m := range modeItems {
		h.menu.SetValue(i, onOff(h.modes.Has(m)))
	}
	h.menu.SetValue(itemSpeed, h.speed)
	h.menu.SetValue(itemKeypad, onOff(h.keypad))
}

func onOff(b bool) string {
	if b {
		return "[on]"
	}
	return "[off]"
}
