// Package sequence builds the working order of a drill session.
package sequence

import (
	"cmp"
	"fmt"
	"math"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/abhisek/numa/internal/exercise"
)

// Mode is a session modifier.
type Mode string

const (
	// ModeRandom shuffles the whole sequence.
	ModeRandom Mode = "Random"
	// ModeSurges orders expressions by ascending complexity.
	ModeSurges Mode = "Surges"
	// ModeMirror renders expressions reversed. Presentation only.
	ModeMirror Mode = "Mirror"
	// ModeFugues hides the prompt after a short delay before the input opens.
	ModeFugues Mode = "Fugues"
)

// AllModes lists the known modes in display order.
var AllModes = []Mode{ModeRandom, ModeSurges, ModeMirror, ModeFugues}

// ParseMode resolves a mode name case-insensitively.
func ParseMode(s string) (Mode, error) {
	for _, m := range AllModes {
		if strings.EqualFold(string(m), strings.TrimSpace(s)) {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown mode %q", s)
}

// Modes is a set of active modes.
type Modes map[Mode]bool

// NewModes builds a set from the given modes.
func NewModes(modes ...Mode) Modes {
	set := make(Modes, len(modes))
	for _, m := range modes {
		set[m] = true
	}
	return set
}

// ParseModes resolves a list of names into a set.
func ParseModes(names []string) (Modes, error) {
	set := make(Modes, len(names))
	for _, n := range names {
		if strings.TrimSpace(n) == "" {
			continue
		}
		m, err := ParseMode(n)
		if err != nil {
			return nil, err
		}
		set[m] = true
	}
	return set, nil
}

// Has reports whether m is active. A nil set has no modes.
func (s Modes) Has(m Mode) bool {
	return s[m]
}

// Toggle flips m.
func (s Modes) Toggle(m Mode) {
	if s[m] {
		delete(s, m)
		return
	}
	s[m] = true
}

// List returns the active modes in display order.
func (s Modes) List() []Mode {
	var out []Mode
	for _, m := range AllModes {
		if s[m] {
			out = append(out, m)
		}
	}
	return out
}

func (s Modes) String() string {
	list := s.List()
	if len(list) == 0 {
		return "none"
	}
	names := make([]string, len(list))
	for i, m := range list {
		names[i] = string(m)
	}
	return strings.Join(names, ", ")
}

// Build returns the working order for items under modes. items is never
// modified. Random shuffles first; Surges then reorders the expression
// items by complexity within the positions expressions occupy, leaving
// question items where they are.
func Build(items []exercise.Exercise, modes Modes, rng *rand.Rand) []exercise.Exercise {
	out := slices.Clone(items)
	if modes.Has(ModeRandom) {
		Shuffle(out, rng)
	}
	if modes.Has(ModeSurges) {
		sortExpressions(out)
	}
	return out
}

// Shuffle performs an in-place Fisher–Yates shuffle.
func Shuffle(items []exercise.Exercise, rng *rand.Rand) {
	rng.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})
}

// RestartOrder reshuffles original, retrying up to attempts times to get an
// order that differs from it. When every attempt collides the last shuffle
// is used.
func RestartOrder(original []exercise.Exercise, rng *rand.Rand, attempts int) []exercise.Exercise {
	if attempts < 1 {
		attempts = 1
	}
	order := slices.Clone(original)
	for i := 0; i < attempts; i++ {
		Shuffle(order, rng)
		if !slices.Equal(order, original) {
			break
		}
	}
	return order
}

func sortExpressions(items []exercise.Exercise) {
	var positions []int
	var exprs []exercise.Exercise
	for i, it := range items {
		if it.Kind() == exercise.KindExpression {
			positions = append(positions, i)
			exprs = append(exprs, it)
		}
	}
	slices.SortStableFunc(exprs, func(a, b exercise.Exercise) int {
		return cmp.Compare(score(a), score(b))
	})
	for i, pos := range positions {
		items[pos] = exprs[i]
	}
}

// score maps an uncomputable complexity to the end of the order.
func score(ex exercise.Exercise) float64 {
	c := ex.Complexity()
	if math.IsNaN(c) {
		return math.Inf(1)
	}
	return c
}
