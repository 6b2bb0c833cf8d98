package drill

import (
	"context"
	"math/rand/v2"
	"reflect"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/numa/internal/exercise"
	"github.com/abhisek/numa/internal/router"
	"github.com/abhisek/numa/internal/screen"
	"github.com/abhisek/numa/internal/screens/summary"
	"github.com/abhisek/numa/internal/sequence"
	"github.com/abhisek/numa/internal/store"
	"github.com/abhisek/numa/internal/ui/components"
)

// memFlags implements store.FlagRepo in memory.
type memFlags map[string]string

func (m memFlags) Get(_ context.Context, key string) (string, error) {
	v, ok := m[key]
	if !ok {
		return "", store.ErrNotFound
	}
	return v, nil
}
func (m memFlags) Set(_ context.Context, key, value string) error { m[key] = value; return nil }
func (m memFlags) Delete(_ context.Context, key string) error     { delete(m, key); return nil }
func (m memFlags) Clear(_ context.Context) error {
	for k := range m {
		delete(m, k)
	}
	return nil
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testSet(exprs ...string) *exercise.Set {
	set := &exercise.Set{Path: "/tmp/tables.json", Title: "Tables"}
	for _, e := range exprs {
		set.Items = append(set.Items, exercise.ExpressionItem{Expr: e})
	}
	return set
}

func testDrillScreen(t *testing.T, set *exercise.Set, modes sequence.Modes) (*DrillScreen, memFlags) {
	t.Helper()
	flags := memFlags{}
	s := New(Options{
		Set:      set,
		Modes:    modes,
		Flags:    flags,
		Debounce: time.Millisecond,
		Tick:     time.Millisecond,
		Rand:     rand.New(rand.NewPCG(1, 2)),
	})
	s.Init()
	return s, flags
}

// answer puts value in the input and delivers the debounced check.
func answer(t *testing.T, s *DrillScreen, value string) tea.Cmd {
	t.Helper()
	s.input.SetValue(value)
	cmd := s.onInput()
	if cmd == nil {
		t.Fatalf("value %q did not arm a check", value)
	}
	_, next := s.Update(cmd())
	return next
}

// collect runs cmd and returns the messages it produces, unwrapping
// batches and sequences. Nested commands are run once, never fed back.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	v := reflect.ValueOf(msg)
	if v.Kind() != reflect.Slice {
		return []tea.Msg{msg}
	}
	var out []tea.Msg
	for i := range v.Len() {
		if c, ok := v.Index(i).Interface().(tea.Cmd); ok {
			out = append(out, collect(c)...)
		}
	}
	return out
}

func TestDrillScreen_TitleAndStatus(t *testing.T) {
	s, _ := testDrillScreen(t, testSet("2+2"), sequence.NewModes(sequence.ModeFugues))
	if s.Title() != "Tables" {
		t.Errorf("Title = %q", s.Title())
	}
	if !strings.Contains(s.Status(), "1H") {
		t.Errorf("Status = %q, want the fugues speed", s.Status())
	}
}

func TestDrillScreen_PresentsFirstItem(t *testing.T) {
	s, _ := testDrillScreen(t, testSet("2+2", "3×3"), nil)
	if s.current.Prompt != "2 + 2 = " {
		t.Fatalf("prompt = %q", s.current.Prompt)
	}
	if !strings.Contains(s.View(80, 20), "2 + 2 = ") {
		t.Error("expected prompt in view")
	}
}

func TestDrillScreen_TypedKeysReachEngine(t *testing.T) {
	s, _ := testDrillScreen(t, testSet("2+2"), nil)

	_, cmd := s.Update(keyPress('4'))
	if s.input.Value() != "4" {
		t.Fatalf("input = %q", s.input.Value())
	}
	if cmd == nil {
		t.Fatal("expected the debounce tick to be scheduled")
	}
}

func TestDrillScreen_CorrectAnswerAdvances(t *testing.T) {
	s, _ := testDrillScreen(t, testSet("2+2", "3×3"), nil)

	answer(t, s, "4")

	if s.current.Prompt != "3 × 3 = " {
		t.Errorf("prompt = %q, want second item", s.current.Prompt)
	}
	if len(s.history) != 1 || !s.history[0].Correct || s.history[0].Text != "2 + 2 = 4" {
		t.Errorf("history = %+v", s.history)
	}
	if s.stats.Answered != 1 || s.stats.Pending != 1 {
		t.Errorf("stats = %+v", s.stats)
	}
	if s.input.Value() != "" {
		t.Errorf("input not cleared: %q", s.input.Value())
	}
}

func TestDrillScreen_StaleCheckIgnored(t *testing.T) {
	s, _ := testDrillScreen(t, testSet("12×12"), nil)

	s.input.SetValue("145")
	stale := s.onInput()
	s.input.SetValue("144")
	fresh := s.onInput()

	s.Update(stale())
	if len(s.history) != 0 || s.done {
		t.Fatal("superseded check must not resolve")
	}

	s.Update(fresh())
	if len(s.history) != 1 || !s.history[0].Correct {
		t.Errorf("history = %+v", s.history)
	}
}

func TestDrillScreen_CompletionPushesSummary(t *testing.T) {
	s, _ := testDrillScreen(t, testSet("2+2"), nil)

	cmd := answer(t, s, "4")
	if !s.done {
		t.Fatal("expected session done")
	}

	var pushed screen.Screen
	for _, msg := range collect(cmd) {
		if push, ok := msg.(router.PushScreenMsg); ok {
			pushed = push.Screen
		}
	}
	if _, ok := pushed.(*summary.SummaryScreen); !ok {
		t.Fatalf("pushed %T, want *summary.SummaryScreen", pushed)
	}
}

func TestDrillScreen_RepeatRestarts(t *testing.T) {
	s, _ := testDrillScreen(t, testSet("2+2", "3×3"), nil)
	answer(t, s, "4")
	answer(t, s, "9")
	if !s.done {
		t.Fatal("expected session done")
	}

	s.Update(summary.RepeatMsg{})

	if s.done {
		t.Error("expected a running session after repeat")
	}
	if s.current.Item == nil || s.stats.Answered != 0 || s.stats.Total != 2 {
		t.Errorf("current = %v, stats = %+v", s.current.Item, s.stats)
	}
	if len(s.history) != 0 {
		t.Error("history must be cleared on repeat")
	}
	if !s.chrono.Running() {
		t.Error("chrono must be reset on repeat")
	}
}

func TestDrillScreen_QuitConfirm(t *testing.T) {
	s, _ := testDrillScreen(t, testSet("2+2"), nil)

	var scr screen.Screen = s
	scr, _ = scr.Update(specialKey(tea.KeyEscape))
	ds := scr.(*DrillScreen)
	if !ds.showingQuitConfirm {
		t.Fatal("expected quit confirmation dialog")
	}

	scr, _ = ds.Update(keyPress('n'))
	ds = scr.(*DrillScreen)
	if ds.showingQuitConfirm {
		t.Error("expected quit confirmation to be dismissed")
	}
}

func TestDrillScreen_QuitConfirm_YesWritesReopenFlag(t *testing.T) {
	s, flags := testDrillScreen(t, testSet("2+2"), nil)

	s.Update(specialKey(tea.KeyEscape))
	_, cmd := s.Update(keyPress('y'))
	if cmd == nil {
		t.Fatal("expected a command after quit confirmation")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
	if flags[store.KeyReopen] == "" || flags[store.KeyLastFile] != "/tmp/tables.json" {
		t.Errorf("flags = %v", flags)
	}
	if s.chrono.Running() {
		t.Error("chrono must stop on exit")
	}
}

func TestDrillScreen_SummaryExit(t *testing.T) {
	s, flags := testDrillScreen(t, testSet("2+2"), nil)
	answer(t, s, "4")

	_, cmd := s.Update(summary.ExitMsg{})
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
	if flags[store.KeyLastFile] != "/tmp/tables.json" {
		t.Errorf("flags = %v", flags)
	}
}

func TestDrillScreen_FuguesHidesThenOpens(t *testing.T) {
	s, _ := testDrillScreen(t, testSet("2+2"), sequence.NewModes(sequence.ModeFugues))

	if !s.input.Locked() {
		t.Fatal("input must stay closed while the prompt is shown")
	}
	s.Update(keyPress('4'))
	if s.input.Value() != "" {
		t.Errorf("typed before reveal: %q", s.input.Value())
	}

	s.Update(revealDoneMsg{Generation: s.current.Generation})
	if !s.hidden || s.input.Locked() {
		t.Fatal("expected hidden prompt and open input")
	}
	if strings.Contains(s.View(80, 20), "2 + 2") {
		t.Error("prompt must be hidden")
	}

	s.Update(keyPress('4'))
	if s.input.Value() != "4" {
		t.Errorf("input = %q", s.input.Value())
	}
}

func TestDrillScreen_StaleRevealIgnored(t *testing.T) {
	s, _ := testDrillScreen(t, testSet("2+2"), sequence.NewModes(sequence.ModeFugues))

	s.Update(revealDoneMsg{Generation: s.current.Generation - 1})
	if s.hidden || !s.input.Locked() {
		t.Error("a reveal from another generation must be dropped")
	}
}

func TestDrillScreen_KeypadFeedsInput(t *testing.T) {
	s, _ := testDrillScreen(t, testSet("2+2"), nil)

	s.Update(specialKey(tea.KeyTab))
	if !s.showKeypad {
		t.Fatal("tab must show the keypad")
	}

	_, cmd := s.Update(components.KeypadPressMsg{Key: "4"})
	if s.input.Value() != "4" {
		t.Errorf("input = %q", s.input.Value())
	}
	if cmd == nil {
		t.Error("keypad press must arm the check")
	}
}

func TestDrillScreen_RevealToggleResetsPerItem(t *testing.T) {
	s, _ := testDrillScreen(t, testSet("2+2", "3×3"), nil)

	s.Update(tea.KeyPressMsg{Code: 'r', Mod: tea.ModCtrl})
	if !s.showReveal {
		t.Fatal("ctrl+r must reveal the answers")
	}
	answer(t, s, "4")
	if s.showReveal {
		t.Error("reveal must reset on the next item")
	}
}

func TestDrillScreen_TruncatesLongInput(t *testing.T) {
	s, _ := testDrillScreen(t, testSet("2+2"), nil)

	s.input.SetValue("123456789")
	s.onInput()
	if got := s.input.Value(); len(got) >= len("123456789") {
		t.Errorf("input not truncated: %q", got)
	}
}

func TestDrillScreen_EmptySetShowsError(t *testing.T) {
	s, _ := testDrillScreen(t, &exercise.Set{Path: "x.json"}, nil)
	if s.errMsg == "" {
		t.Fatal("expected an error")
	}
	_, cmd := s.Update(keyPress('x'))
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("any key must go back")
	}
}

func TestDrillScreen_LiveTickStopsOnNewItem(t *testing.T) {
	s, _ := testDrillScreen(t, testSet("2+2", "3×3"), nil)
	gen := s.current.Generation

	_, cmd := s.Update(liveTickMsg{Generation: gen})
	if cmd == nil {
		t.Fatal("current tick must reschedule")
	}

	answer(t, s, "4")
	_, cmd = s.Update(liveTickMsg{Generation: gen})
	if cmd != nil {
		t.Error("tick of a previous item must end its chain")
	}
}
